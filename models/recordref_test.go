package models

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
)

func TestRecordRefRoundTrip(t *testing.T) {
	id := uuid.New()

	persisted := PersistedRef(id)
	if persisted.IsDraft() {
		t.Fatal("persisted ref reported as draft")
	}
	b, err := json.Marshal(persisted)
	if err != nil {
		t.Fatal(err)
	}
	var back RecordRef
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatal(err)
	}
	if back.IsDraft() || back.ID() != id {
		t.Fatalf("round trip lost id: %v", back)
	}

	draft := DraftRef("row-3")
	if !draft.IsDraft() {
		t.Fatal("draft ref reported as persisted")
	}
	b, err = json.Marshal(draft)
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatal(err)
	}
	if !back.IsDraft() || back.DraftID() != "row-3" {
		t.Fatalf("round trip lost draft id: %v", back)
	}
}

func TestRecordRefRejectsEmpty(t *testing.T) {
	var ref RecordRef
	if err := json.Unmarshal([]byte(`{}`), &ref); err == nil {
		t.Fatal("expected error for ref with neither id nor draft_id")
	}
}
