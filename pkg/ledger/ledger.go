// Package ledger implements the reconciliation model behind the
// construction workflows: the inventory ledger (received/used/available per
// project material), the activity progress tracker (cumulative executed
// quantity and derived progress), and the schedule deviation evaluator.
// All arithmetic lives in pure functions over aggregate state; the Ledger
// type wires those functions to a Store that provides atomic
// read-validate-write per aggregate.
package ledger

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultOtherCategory is the conventional issue category that requires a
// free-text description. The category set itself comes from configuration.
const DefaultOtherCategory = "Otros"

// Ledger coordinates event application against a Store. Validation always
// runs against the state read in the same attempt; when the store reports a
// lost race the whole operation is retried with fresh state.
type Ledger struct {
	store         Store
	otherCategory string
	maxRetries    int
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithOtherCategory overrides the issue category that demands a description.
func WithOtherCategory(category string) Option {
	return func(l *Ledger) { l.otherCategory = category }
}

// WithMaxRetries bounds how many times a lost optimistic race is retried
// before the conflict is surfaced to the caller.
func WithMaxRetries(n int) Option {
	return func(l *Ledger) { l.maxRetries = n }
}

func New(store Store, opts ...Option) *Ledger {
	l := &Ledger{
		store:         store,
		otherCategory: DefaultOtherCategory,
		maxRetries:    3,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func isConflict(err error) bool {
	var conflict *ConcurrencyConflictError
	return errors.As(err, &conflict)
}

// RecordReception applies a reception event to the owning material:
// validates the quantity, increments received and appends the immutable
// record, atomically. All quality statuses count as received stock.
func (l *Ledger) RecordReception(ev ReceptionEvent) (ReceptionEvent, error) {
	var lastErr error
	for attempt := 0; attempt <= l.maxRetries; attempt++ {
		state, err := l.store.Material(ev.MaterialID)
		if err != nil {
			return ReceptionEvent{}, err
		}
		ev.ProjectID = state.ProjectID
		next, err := ApplyReception(state, ev)
		if err != nil {
			return ReceptionEvent{}, err
		}
		recorded, err := l.store.CommitReception(state, next, ev)
		if err == nil {
			return recorded, nil
		}
		if !isConflict(err) {
			return ReceptionEvent{}, err
		}
		lastErr = err
	}
	return ReceptionEvent{}, lastErr
}

// RecordDelivery applies a delivery event: validates quantity and stock
// sufficiency against the state as of immediately before the event, then
// commits counter update and record together. A relocation additionally
// credits the destination project's matching material in the same commit;
// if the destination does not track the material, nothing is recorded on
// either side.
func (l *Ledger) RecordDelivery(ev DeliveryEvent) (DeliveryEvent, error) {
	var lastErr error
	for attempt := 0; attempt <= l.maxRetries; attempt++ {
		state, err := l.store.Material(ev.MaterialID)
		if err != nil {
			return DeliveryEvent{}, err
		}
		ev.ProjectID = state.ProjectID
		next, err := ApplyDelivery(state, ev)
		if err != nil {
			return DeliveryEvent{}, err
		}

		if ev.Relocation == nil {
			recorded, err := l.store.CommitDelivery(state, next, ev)
			if err == nil {
				return recorded, nil
			}
			if !isConflict(err) {
				return DeliveryEvent{}, err
			}
			lastErr = err
			continue
		}

		dst, err := l.store.MaterialInProject(ev.Relocation.DestinationProjectID, state.CatalogID)
		if errors.Is(err, ErrNotFound) {
			return DeliveryEvent{}, &UnknownDestinationMaterialError{
				MaterialID:           state.MaterialID,
				CatalogID:            state.CatalogID,
				DestinationProjectID: ev.Relocation.DestinationProjectID,
			}
		}
		if err != nil {
			return DeliveryEvent{}, err
		}
		credit := ReceptionEvent{
			MaterialID:  dst.MaterialID,
			ProjectID:   dst.ProjectID,
			Quantity:    ev.Quantity,
			Status:      QualityGood,
			Date:        ev.Date,
			Observation: fmt.Sprintf("relocated from project %s", state.ProjectID),
		}
		nextDst, err := ApplyReception(dst, credit)
		if err != nil {
			return DeliveryEvent{}, err
		}
		recorded, err := l.store.CommitRelocation(state, next, ev, dst, nextDst, credit)
		if err == nil {
			return recorded, nil
		}
		if !isConflict(err) {
			return DeliveryEvent{}, err
		}
		lastErr = err
	}
	return DeliveryEvent{}, lastErr
}

// RecordExecution applies a daily execution to the owning activity:
// validates quantity and the other-category description rule, then updates
// executed quantity and derived progress together with the record.
func (l *Ledger) RecordExecution(ev ExecutionEvent) (ExecutionEvent, error) {
	var lastErr error
	for attempt := 0; attempt <= l.maxRetries; attempt++ {
		state, err := l.store.Activity(ev.ActivityID)
		if err != nil {
			return ExecutionEvent{}, err
		}
		ev.ProjectID = state.ProjectID
		next, err := ApplyExecution(state, ev, l.otherCategory)
		if err != nil {
			return ExecutionEvent{}, err
		}
		recorded, err := l.store.CommitExecution(state, next, ev)
		if err == nil {
			return recorded, nil
		}
		if !isConflict(err) {
			return ExecutionEvent{}, err
		}
		lastErr = err
	}
	return ExecutionEvent{}, lastErr
}

// AvailableQuantity is a pure derived read of received - used.
func (l *Ledger) AvailableQuantity(materialID uuid.UUID) (decimal.Decimal, error) {
	state, err := l.store.Material(materialID)
	if err != nil {
		return decimal.Zero, err
	}
	return state.Available(), nil
}

// ProgressFor is a pure derived read of the current progress percentage.
func (l *Ledger) ProgressFor(activityID uuid.UUID) (int, error) {
	state, err := l.store.Activity(activityID)
	if err != nil {
		return 0, err
	}
	return state.Progress, nil
}

// MaterialHistory returns the material's reception and delivery events
// ordered by date, for audit display.
func (l *Ledger) MaterialHistory(materialID uuid.UUID) ([]ReceptionEvent, []DeliveryEvent, error) {
	receptions, err := l.store.Receptions(materialID)
	if err != nil {
		return nil, nil, err
	}
	deliveries, err := l.store.Deliveries(materialID)
	if err != nil {
		return nil, nil, err
	}
	return receptions, deliveries, nil
}

// ExecutionHistory returns the activity's execution events ordered by date.
func (l *Ledger) ExecutionHistory(activityID uuid.UUID) ([]ExecutionEvent, error) {
	return l.store.Executions(activityID)
}
