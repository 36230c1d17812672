package ledger

import "github.com/google/uuid"

// Store is the persistence boundary the ledger drives. Implementations must
// guarantee that each Commit* call is atomic: the aggregate counters move
// and the event record appears together, or neither does. The prev argument
// carries the state the mutation was validated against; a store must refuse
// the commit with a *ConcurrencyConflictError when the stored counters no
// longer match it, so that two racing deliveries can never both spend the
// same available balance.
type Store interface {
	Material(materialID uuid.UUID) (MaterialState, error)
	// MaterialInProject resolves a project's material for a catalog entry,
	// used to find the credit side of a relocation. Returns ErrNotFound
	// when the project does not track that material.
	MaterialInProject(projectID, catalogID uuid.UUID) (MaterialState, error)
	Activity(activityID uuid.UUID) (ActivityState, error)

	CommitReception(prev, next MaterialState, ev ReceptionEvent) (ReceptionEvent, error)
	CommitDelivery(prev, next MaterialState, ev DeliveryEvent) (DeliveryEvent, error)
	// CommitRelocation applies the source debit and the destination credit
	// as one unit: if either side fails, neither is recorded.
	CommitRelocation(prevSrc, nextSrc MaterialState, ev DeliveryEvent,
		prevDst, nextDst MaterialState, credit ReceptionEvent) (DeliveryEvent, error)
	CommitExecution(prev, next ActivityState, ev ExecutionEvent) (ExecutionEvent, error)

	// Event history for audit display, ordered by date.
	Receptions(materialID uuid.UUID) ([]ReceptionEvent, error)
	Deliveries(materialID uuid.UUID) ([]DeliveryEvent, error)
	Executions(activityID uuid.UUID) ([]ExecutionEvent, error)
}
