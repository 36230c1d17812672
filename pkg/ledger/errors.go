package ledger

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned by stores when an aggregate does not exist.
var ErrNotFound = errors.New("ledger: not found")

// InvalidQuantityError is returned when a reception, delivery or execution
// carries a quantity <= 0. Nothing is recorded.
type InvalidQuantityError struct {
	Op       string // "reception", "delivery", "execution"
	Quantity decimal.Decimal
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("invalid %s quantity %s: must be greater than zero", e.Op, e.Quantity)
}

// InsufficientStockError is returned when a delivery asks for more than the
// material's current available quantity (received - used). The delivery is
// not recorded and used is not incremented.
type InsufficientStockError struct {
	MaterialID uuid.UUID
	Requested  decimal.Decimal
	Available  decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for material %s: requested %s, available %s",
		e.MaterialID, e.Requested, e.Available)
}

// UnknownDestinationMaterialError is returned when a relocation delivery
// targets a project that has no material for the same catalog entry. Both
// sides of the relocation are rejected.
type UnknownDestinationMaterialError struct {
	MaterialID           uuid.UUID
	CatalogID            uuid.UUID
	DestinationProjectID uuid.UUID
}

func (e *UnknownDestinationMaterialError) Error() string {
	return fmt.Sprintf("destination project %s has no material matching catalog entry %s",
		e.DestinationProjectID, e.CatalogID)
}

// MissingIssueDescriptionError is returned when an execution selects the
// "other" issue category without a free-text description.
type MissingIssueDescriptionError struct {
	ActivityID uuid.UUID
	Category   string
}

func (e *MissingIssueDescriptionError) Error() string {
	return fmt.Sprintf("issue category %q on activity %s requires a description", e.Category, e.ActivityID)
}

// ConcurrencyConflictError is returned when an optimistic update lost a race
// against a concurrent mutation of the same aggregate. The caller must
// re-read and retry the whole operation; validation re-runs against fresh
// state so the retry is safe.
type ConcurrencyConflictError struct {
	AggregateID uuid.UUID
}

func (e *ConcurrencyConflictError) Error() string {
	return fmt.Sprintf("concurrent update on aggregate %s, retry with fresh state", e.AggregateID)
}
