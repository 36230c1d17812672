package models

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// RecordRef distinguishes a row the client drafted locally from one already
// persisted, as an explicit tagged value instead of an id-prefix
// convention. Exactly one of the two variants is set.
type RecordRef struct {
	draftID string
	id      uuid.UUID
}

// DraftRef tags an unsaved client-side row by its local identifier.
func DraftRef(localID string) RecordRef {
	return RecordRef{draftID: localID}
}

// PersistedRef tags a stored row by its database id.
func PersistedRef(id uuid.UUID) RecordRef {
	return RecordRef{id: id}
}

// IsDraft reports whether the reference points at an unsaved row.
func (r RecordRef) IsDraft() bool {
	return r.id == uuid.Nil
}

// ID returns the database id; only meaningful when !IsDraft().
func (r RecordRef) ID() uuid.UUID {
	return r.id
}

// DraftID returns the client-local id; only meaningful when IsDraft().
func (r RecordRef) DraftID() string {
	return r.draftID
}

type recordRefJSON struct {
	ID      *uuid.UUID `json:"id,omitempty"`
	DraftID string     `json:"draft_id,omitempty"`
}

func (r RecordRef) MarshalJSON() ([]byte, error) {
	if r.IsDraft() {
		return json.Marshal(recordRefJSON{DraftID: r.draftID})
	}
	id := r.id
	return json.Marshal(recordRefJSON{ID: &id})
}

func (r *RecordRef) UnmarshalJSON(b []byte) error {
	var raw recordRefJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch {
	case raw.ID != nil && *raw.ID != uuid.Nil:
		*r = PersistedRef(*raw.ID)
	case raw.DraftID != "":
		*r = DraftRef(raw.DraftID)
	default:
		return fmt.Errorf("record ref needs either id or draft_id")
	}
	return nil
}
