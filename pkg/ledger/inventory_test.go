package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestApplyReception(t *testing.T) {
	state := MaterialState{
		MaterialID: uuid.New(),
		Estimated:  dec("100"),
	}

	next, err := ApplyReception(state, ReceptionEvent{Quantity: dec("45"), Status: QualityGood})
	if err != nil {
		t.Fatalf("ApplyReception: %v", err)
	}
	if !next.Received.Equal(dec("45")) {
		t.Errorf("received = %s, want 45", next.Received)
	}

	// Defective stock still counts as received.
	next, err = ApplyReception(next, ReceptionEvent{Quantity: dec("5"), Status: QualityDefective})
	if err != nil {
		t.Fatalf("ApplyReception defective: %v", err)
	}
	if !next.Received.Equal(dec("50")) {
		t.Errorf("received = %s, want 50", next.Received)
	}

	// Over-receipt beyond the estimate is allowed.
	next, err = ApplyReception(next, ReceptionEvent{Quantity: dec("80"), Status: QualityRegular})
	if err != nil {
		t.Fatalf("ApplyReception over estimate: %v", err)
	}
	if !next.Available().Equal(dec("130")) {
		t.Errorf("available = %s, want 130", next.Available())
	}
}

func TestApplyReceptionRejectsNonPositiveQuantity(t *testing.T) {
	state := MaterialState{MaterialID: uuid.New()}
	for _, qty := range []string{"0", "-1"} {
		_, err := ApplyReception(state, ReceptionEvent{Quantity: dec(qty)})
		var invalid *InvalidQuantityError
		if !errors.As(err, &invalid) {
			t.Errorf("quantity %s: got %v, want InvalidQuantityError", qty, err)
		}
	}
}

func TestApplyDeliveryRejectsOverdraw(t *testing.T) {
	state := MaterialState{
		MaterialID: uuid.New(),
		Received:   dec("45"),
		Used:       dec("30"),
	}

	_, err := ApplyDelivery(state, DeliveryEvent{Quantity: dec("20"), Recipient: "crew A"})
	var insufficient *InsufficientStockError
	if !errors.As(err, &insufficient) {
		t.Fatalf("got %v, want InsufficientStockError", err)
	}
	if !insufficient.Available.Equal(dec("15")) {
		t.Errorf("error available = %s, want 15", insufficient.Available)
	}
	if !insufficient.Requested.Equal(dec("20")) {
		t.Errorf("error requested = %s, want 20", insufficient.Requested)
	}
	// Rejection leaves the state untouched.
	if !state.Used.Equal(dec("30")) || !state.Available().Equal(dec("15")) {
		t.Errorf("state changed after rejection: used=%s available=%s", state.Used, state.Available())
	}
}

func TestApplyDeliveryRejectsNonPositiveQuantity(t *testing.T) {
	state := MaterialState{MaterialID: uuid.New(), Received: dec("10")}
	_, err := ApplyDelivery(state, DeliveryEvent{Quantity: dec("0")})
	var invalid *InvalidQuantityError
	if !errors.As(err, &invalid) {
		t.Fatalf("got %v, want InvalidQuantityError", err)
	}
}

// Available stays non-negative across any accepted event sequence; events
// that would break the invariant are rejected one at a time against the
// state immediately before them.
func TestAvailableNeverNegative(t *testing.T) {
	type step struct {
		kind    string // "in" or "out"
		qty     string
		wantErr bool
	}
	steps := []step{
		{"in", "10", false},
		{"out", "4", false},
		{"out", "7", true}, // only 6 available
		{"out", "6", false},
		{"out", "1", true}, // drained
		{"in", "2", false},
		{"out", "2", false},
	}

	state := MaterialState{MaterialID: uuid.New()}
	for i, st := range steps {
		var err error
		var next MaterialState
		if st.kind == "in" {
			next, err = ApplyReception(state, ReceptionEvent{Quantity: dec(st.qty)})
		} else {
			next, err = ApplyDelivery(state, DeliveryEvent{Quantity: dec(st.qty)})
		}
		if st.wantErr {
			if err == nil {
				t.Fatalf("step %d: expected rejection", i)
			}
			continue // state unchanged
		}
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		state = next
		if state.Available().Sign() < 0 {
			t.Fatalf("step %d: available went negative: %s", i, state.Available())
		}
	}
	if !state.Available().Equal(dec("0")) {
		t.Errorf("final available = %s, want 0", state.Available())
	}
}
