package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QualityStatus classifies the condition of received material. All three
// statuses count toward received stock; the status is quality tracking only.
type QualityStatus string

const (
	QualityGood      QualityStatus = "good"
	QualityRegular   QualityStatus = "regular"
	QualityDefective QualityStatus = "defective"
)

// MaterialState is the per-project material aggregate: the pair of running
// counters every reception and delivery folds into. It is only ever mutated
// by applying events in submission order.
type MaterialState struct {
	MaterialID uuid.UUID
	ProjectID  uuid.UUID
	CatalogID  uuid.UUID
	Estimated  decimal.Decimal
	Received   decimal.Decimal
	Used       decimal.Decimal
}

// Available is the derived quantity a delivery is validated against.
// Never negative as long as deliveries go through ApplyDelivery.
func (s MaterialState) Available() decimal.Decimal {
	return s.Received.Sub(s.Used)
}

// ReceptionEvent records material arriving from a purchase order.
// Append-only; compensating events are added instead of edits.
type ReceptionEvent struct {
	ID          uuid.UUID       `json:"id"`
	MaterialID  uuid.UUID       `json:"material_id"`
	ProjectID   uuid.UUID       `json:"project_id"`
	OrderID     uuid.UUID       `json:"order_id,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	Status      QualityStatus   `json:"quality_status"`
	Date        time.Time       `json:"date"`
	Observation string          `json:"observation,omitempty"`
	RecordedBy  string          `json:"recorded_by,omitempty"`
	RecordedAt  time.Time       `json:"recorded_at"`
}

// Relocation marks a delivery as a transfer into another project rather
// than a hand-out to a crew. The destination's matching material (same
// catalog entry) is credited atomically with the source debit.
type Relocation struct {
	DestinationProjectID uuid.UUID `json:"destination_project_id"`
}

// DeliveryEvent records material handed out of inventory to a work crew,
// or relocated to another project. Append-only.
type DeliveryEvent struct {
	ID         uuid.UUID       `json:"id"`
	MaterialID uuid.UUID       `json:"material_id"`
	ProjectID  uuid.UUID       `json:"project_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	Recipient  string          `json:"recipient"`
	Date       time.Time       `json:"date"`
	Relocation *Relocation     `json:"relocation,omitempty"`
	RecordedBy string          `json:"recorded_by,omitempty"`
	RecordedAt time.Time       `json:"recorded_at"`
}

// ApplyReception validates a reception against the current state and
// returns the new state. Over-receipt beyond the estimate is allowed; the
// surplus is simply visible as a larger available balance.
func ApplyReception(state MaterialState, ev ReceptionEvent) (MaterialState, error) {
	if ev.Quantity.Sign() <= 0 {
		return state, &InvalidQuantityError{Op: "reception", Quantity: ev.Quantity}
	}
	state.Received = state.Received.Add(ev.Quantity)
	return state, nil
}

// ApplyDelivery validates a delivery against the state as of immediately
// before it and returns the new state. A delivery that would drive
// available below zero is rejected without touching the state.
func ApplyDelivery(state MaterialState, ev DeliveryEvent) (MaterialState, error) {
	if ev.Quantity.Sign() <= 0 {
		return state, &InvalidQuantityError{Op: "delivery", Quantity: ev.Quantity}
	}
	if available := state.Available(); ev.Quantity.GreaterThan(available) {
		return state, &InsufficientStockError{
			MaterialID: state.MaterialID,
			Requested:  ev.Quantity,
			Available:  available,
		}
	}
	state.Used = state.Used.Add(ev.Quantity)
	return state, nil
}
