package ledger

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
)

func seedMaterial(store *MemoryStore, projectID uuid.UUID, estimated, received, used string) MaterialState {
	state := MaterialState{
		MaterialID: uuid.New(),
		ProjectID:  projectID,
		CatalogID:  uuid.New(),
		Estimated:  dec(estimated),
		Received:   dec(received),
		Used:       dec(used),
	}
	store.PutMaterial(state)
	return state
}

func TestLedgerReceptionDeliveryRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	lgr := New(store)
	mat := seedMaterial(store, uuid.New(), "100", "0", "0")

	if _, err := lgr.RecordReception(ReceptionEvent{
		MaterialID: mat.MaterialID,
		Quantity:   dec("45"),
		Status:     QualityGood,
		Date:       day("2024-05-02"),
	}); err != nil {
		t.Fatalf("RecordReception: %v", err)
	}
	if _, err := lgr.RecordDelivery(DeliveryEvent{
		MaterialID: mat.MaterialID,
		Quantity:   dec("30"),
		Recipient:  "crew A",
		Date:       day("2024-05-03"),
	}); err != nil {
		t.Fatalf("RecordDelivery: %v", err)
	}

	available, err := lgr.AvailableQuantity(mat.MaterialID)
	if err != nil {
		t.Fatalf("AvailableQuantity: %v", err)
	}
	if !available.Equal(dec("15")) {
		t.Errorf("available = %s, want 15", available)
	}

	// Over-delivery is rejected and leaves derived figures untouched.
	_, err = lgr.RecordDelivery(DeliveryEvent{
		MaterialID: mat.MaterialID,
		Quantity:   dec("20"),
		Recipient:  "crew B",
		Date:       day("2024-05-04"),
	})
	var insufficient *InsufficientStockError
	if !errors.As(err, &insufficient) {
		t.Fatalf("got %v, want InsufficientStockError", err)
	}
	available, _ = lgr.AvailableQuantity(mat.MaterialID)
	if !available.Equal(dec("15")) {
		t.Errorf("available after rejection = %s, want 15", available)
	}
	deliveries, _ := store.Deliveries(mat.MaterialID)
	if len(deliveries) != 1 {
		t.Errorf("delivery records = %d, want 1 (rejected event must not be recorded)", len(deliveries))
	}
}

func TestLedgerRelocation(t *testing.T) {
	store := NewMemoryStore()
	lgr := New(store)
	projectA, projectB := uuid.New(), uuid.New()

	src := seedMaterial(store, projectA, "50", "20", "0")
	dst := MaterialState{
		MaterialID: uuid.New(),
		ProjectID:  projectB,
		CatalogID:  src.CatalogID, // same catalog entry on both projects
		Estimated:  dec("30"),
	}
	store.PutMaterial(dst)

	if _, err := lgr.RecordDelivery(DeliveryEvent{
		MaterialID: src.MaterialID,
		Quantity:   dec("10"),
		Recipient:  "project B warehouse",
		Date:       day("2024-06-01"),
		Relocation: &Relocation{DestinationProjectID: projectB},
	}); err != nil {
		t.Fatalf("relocation delivery: %v", err)
	}

	srcState, _ := store.Material(src.MaterialID)
	if !srcState.Available().Equal(dec("10")) {
		t.Errorf("source available = %s, want 10", srcState.Available())
	}
	dstState, _ := store.Material(dst.MaterialID)
	if !dstState.Received.Equal(dec("10")) {
		t.Errorf("destination received = %s, want 10", dstState.Received)
	}
	credits, _ := store.Receptions(dst.MaterialID)
	if len(credits) != 1 {
		t.Fatalf("destination credit records = %d, want 1", len(credits))
	}
}

func TestLedgerRelocationUnknownDestinationIsAtomic(t *testing.T) {
	store := NewMemoryStore()
	lgr := New(store)
	src := seedMaterial(store, uuid.New(), "50", "20", "0")
	projectB := uuid.New() // tracks no materials at all

	_, err := lgr.RecordDelivery(DeliveryEvent{
		MaterialID: src.MaterialID,
		Quantity:   dec("10"),
		Date:       day("2024-06-01"),
		Relocation: &Relocation{DestinationProjectID: projectB},
	})
	var unknown *UnknownDestinationMaterialError
	if !errors.As(err, &unknown) {
		t.Fatalf("got %v, want UnknownDestinationMaterialError", err)
	}

	srcState, _ := store.Material(src.MaterialID)
	if !srcState.Used.Equal(dec("0")) || !srcState.Available().Equal(dec("20")) {
		t.Errorf("source mutated by failed relocation: used=%s available=%s",
			srcState.Used, srcState.Available())
	}
	deliveries, _ := store.Deliveries(src.MaterialID)
	if len(deliveries) != 0 {
		t.Errorf("delivery records = %d, want 0", len(deliveries))
	}
}

func TestLedgerExecutionUpdatesProgress(t *testing.T) {
	store := NewMemoryStore()
	lgr := New(store)
	act := ActivityState{
		ActivityID: uuid.New(),
		ProjectID:  uuid.New(),
		Estimated:  dec("150"),
	}
	store.PutActivity(act)

	for _, qty := range []string{"30", "20", "70"} {
		if _, err := lgr.RecordExecution(ExecutionEvent{
			ActivityID: act.ActivityID,
			Quantity:   dec(qty),
			Date:       day("2024-07-01"),
		}); err != nil {
			t.Fatalf("RecordExecution(%s): %v", qty, err)
		}
	}

	progress, err := lgr.ProgressFor(act.ActivityID)
	if err != nil {
		t.Fatalf("ProgressFor: %v", err)
	}
	if progress != 80 {
		t.Errorf("progress = %d, want 80", progress)
	}

	// "Otros" without a description is rejected before any state change.
	_, err = lgr.RecordExecution(ExecutionEvent{
		ActivityID:    act.ActivityID,
		Quantity:      dec("10"),
		Date:          day("2024-07-02"),
		IssueCategory: "Otros",
	})
	var missing *MissingIssueDescriptionError
	if !errors.As(err, &missing) {
		t.Fatalf("got %v, want MissingIssueDescriptionError", err)
	}
	state, _ := store.Activity(act.ActivityID)
	if !state.Executed.Equal(dec("120")) {
		t.Errorf("executed after rejection = %s, want 120", state.Executed)
	}
}

// Two racing deliveries must never jointly overdraw the same material.
func TestLedgerConcurrentDeliveries(t *testing.T) {
	store := NewMemoryStore()
	lgr := New(store)
	mat := seedMaterial(store, uuid.New(), "50", "15", "0")

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := lgr.RecordDelivery(DeliveryEvent{
				MaterialID: mat.MaterialID,
				Quantity:   dec("10"),
				Recipient:  "crew",
				Date:       day("2024-08-01"),
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes, rejections int
	for err := range results {
		switch {
		case err == nil:
			successes++
		default:
			var insufficient *InsufficientStockError
			var conflict *ConcurrencyConflictError
			if !errors.As(err, &insufficient) && !errors.As(err, &conflict) {
				t.Fatalf("unexpected error: %v", err)
			}
			rejections++
		}
	}
	if successes != 1 || rejections != 1 {
		t.Fatalf("successes=%d rejections=%d, want exactly one of each", successes, rejections)
	}

	state, _ := store.Material(mat.MaterialID)
	if state.Available().Sign() < 0 {
		t.Fatalf("available went negative: %s", state.Available())
	}
	if !state.Available().Equal(dec("5")) {
		t.Errorf("available = %s, want 5", state.Available())
	}
}

func TestLedgerHistoryOrderedByDate(t *testing.T) {
	store := NewMemoryStore()
	lgr := New(store)
	mat := seedMaterial(store, uuid.New(), "100", "0", "0")

	for _, d := range []string{"2024-05-10", "2024-05-02", "2024-05-07"} {
		if _, err := lgr.RecordReception(ReceptionEvent{
			MaterialID: mat.MaterialID,
			Quantity:   dec("5"),
			Status:     QualityGood,
			Date:       day(d),
		}); err != nil {
			t.Fatalf("RecordReception(%s): %v", d, err)
		}
	}

	receptions, _, err := lgr.MaterialHistory(mat.MaterialID)
	if err != nil {
		t.Fatalf("MaterialHistory: %v", err)
	}
	if len(receptions) != 3 {
		t.Fatalf("receptions = %d, want 3", len(receptions))
	}
	for i := 1; i < len(receptions); i++ {
		if receptions[i].Date.Before(receptions[i-1].Date) {
			t.Errorf("receptions out of date order at %d", i)
		}
	}
	for _, r := range receptions {
		if r.ID == uuid.Nil {
			t.Error("recorded event missing generated id")
		}
		if r.RecordedAt.IsZero() {
			t.Error("recorded event missing timestamp")
		}
	}
}
