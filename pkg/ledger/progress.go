package ledger

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// ActivityState is the per-activity aggregate: cumulative executed quantity
// plus the progress percentage derived from it. Daily executions are the
// single mutation path; the executed counter is never edited directly.
type ActivityState struct {
	ActivityID uuid.UUID
	ProjectID  uuid.UUID
	Estimated  decimal.Decimal
	Executed   decimal.Decimal
	Progress   int
}

// ExecutionEvent records work performed on an activity on a given date.
// Append-only.
type ExecutionEvent struct {
	ID               uuid.UUID       `json:"id"`
	ActivityID       uuid.UUID       `json:"activity_id"`
	ProjectID        uuid.UUID       `json:"project_id"`
	Quantity         decimal.Decimal `json:"executed_quantity"`
	Date             time.Time       `json:"date"`
	Notes            string          `json:"notes,omitempty"`
	IssueCategory    string          `json:"issue_category,omitempty"`
	IssueDescription string          `json:"issue_description,omitempty"`
	Photos           []string        `json:"photos,omitempty"`
	Latitude         float64         `json:"latitude,omitempty"`
	Longitude        float64         `json:"longitude,omitempty"`
	RecordedBy       string          `json:"recorded_by,omitempty"`
	RecordedAt       time.Time       `json:"recorded_at"`
}

// ProgressPercent derives the integer progress percentage from quantities:
// round-half-up of executed/estimated*100, capped at 100. An activity with
// a zero estimate always reports 0 so the division never happens.
func ProgressPercent(estimated, executed decimal.Decimal) int {
	if estimated.Sign() <= 0 {
		return 0
	}
	pct := executed.Mul(oneHundred).Div(estimated).Round(0)
	if pct.GreaterThan(oneHundred) {
		return 100
	}
	p, _ := pct.Float64()
	return int(p)
}

// ApplyExecution validates an execution event against the current state and
// returns the new state with executed quantity and progress updated
// together. otherCategory is the configured issue category that demands a
// free-text description; the membership of the category set itself is an
// external contract and not checked here.
func ApplyExecution(state ActivityState, ev ExecutionEvent, otherCategory string) (ActivityState, error) {
	if ev.Quantity.Sign() <= 0 {
		return state, &InvalidQuantityError{Op: "execution", Quantity: ev.Quantity}
	}
	if otherCategory != "" && ev.IssueCategory == otherCategory && strings.TrimSpace(ev.IssueDescription) == "" {
		return state, &MissingIssueDescriptionError{ActivityID: state.ActivityID, Category: ev.IssueCategory}
	}
	state.Executed = state.Executed.Add(ev.Quantity)
	state.Progress = ProgressPercent(state.Estimated, state.Executed)
	return state, nil
}
