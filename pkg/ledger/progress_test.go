package ledger

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestProgressPercent(t *testing.T) {
	tests := []struct {
		name      string
		estimated string
		executed  string
		want      int
	}{
		{"zero executed", "150", "0", 0},
		{"partial", "150", "120", 80},
		{"rounds half up", "200", "1", 1},    // 0.5 -> 1
		{"rounds down below half", "300", "1", 0}, // 0.33 -> 0
		{"complete", "150", "150", 100},
		{"over-execution caps at 100", "150", "200", 100},
		{"zero estimate reports zero", "0", "50", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProgressPercent(dec(tt.estimated), dec(tt.executed))
			if got != tt.want {
				t.Errorf("ProgressPercent(%s, %s) = %d, want %d", tt.estimated, tt.executed, got, tt.want)
			}
		})
	}
}

func TestApplyExecutionAccumulates(t *testing.T) {
	state := ActivityState{
		ActivityID: uuid.New(),
		Estimated:  dec("150"),
	}

	prev := 0
	for i, qty := range []string{"30", "20", "70"} {
		next, err := ApplyExecution(state, ExecutionEvent{Quantity: dec(qty)}, DefaultOtherCategory)
		if err != nil {
			t.Fatalf("execution %d: %v", i, err)
		}
		if next.Progress < prev {
			t.Errorf("execution %d: progress decreased %d -> %d", i, prev, next.Progress)
		}
		if next.Progress < 0 || next.Progress > 100 {
			t.Errorf("execution %d: progress %d out of range", i, next.Progress)
		}
		prev = next.Progress
		state = next
	}

	if !state.Executed.Equal(dec("120")) {
		t.Errorf("executed = %s, want 120", state.Executed)
	}
	if state.Progress != 80 {
		t.Errorf("progress = %d, want 80", state.Progress)
	}
}

func TestApplyExecutionZeroEstimate(t *testing.T) {
	state := ActivityState{ActivityID: uuid.New()}
	next, err := ApplyExecution(state, ExecutionEvent{Quantity: dec("40")}, DefaultOtherCategory)
	if err != nil {
		t.Fatalf("ApplyExecution: %v", err)
	}
	if next.Progress != 0 {
		t.Errorf("progress = %d, want 0 for zero estimate", next.Progress)
	}
}

func TestApplyExecutionOtherCategoryNeedsDescription(t *testing.T) {
	state := ActivityState{ActivityID: uuid.New(), Estimated: dec("100"), Executed: dec("10"), Progress: 10}

	_, err := ApplyExecution(state, ExecutionEvent{
		Quantity:      dec("5"),
		IssueCategory: "Otros",
	}, "Otros")
	var missing *MissingIssueDescriptionError
	if !errors.As(err, &missing) {
		t.Fatalf("got %v, want MissingIssueDescriptionError", err)
	}
	// Rejection is invisible in the aggregate.
	if !state.Executed.Equal(dec("10")) || state.Progress != 10 {
		t.Errorf("state changed after rejection: executed=%s progress=%d", state.Executed, state.Progress)
	}

	// A whitespace-only description does not count.
	_, err = ApplyExecution(state, ExecutionEvent{
		Quantity:         dec("5"),
		IssueCategory:    "Otros",
		IssueDescription: "   ",
	}, "Otros")
	if !errors.As(err, &missing) {
		t.Fatalf("blank description: got %v, want MissingIssueDescriptionError", err)
	}

	// With a description the event applies; other categories never need one.
	next, err := ApplyExecution(state, ExecutionEvent{
		Quantity:         dec("5"),
		IssueCategory:    "Otros",
		IssueDescription: "road closed by municipality",
	}, "Otros")
	if err != nil {
		t.Fatalf("ApplyExecution with description: %v", err)
	}
	if !next.Executed.Equal(dec("15")) {
		t.Errorf("executed = %s, want 15", next.Executed)
	}
	if _, err := ApplyExecution(state, ExecutionEvent{
		Quantity:      dec("5"),
		IssueCategory: "Lluvia",
	}, "Otros"); err != nil {
		t.Fatalf("non-other category: %v", err)
	}
}

func TestApplyExecutionRejectsNonPositiveQuantity(t *testing.T) {
	state := ActivityState{ActivityID: uuid.New(), Estimated: dec("100")}
	_, err := ApplyExecution(state, ExecutionEvent{Quantity: dec("-3")}, DefaultOtherCategory)
	var invalid *InvalidQuantityError
	if !errors.As(err, &invalid) {
		t.Fatalf("got %v, want InvalidQuantityError", err)
	}
}
