package ledger

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-process Store backed by maps. It honors the same
// compare-and-swap contract as the database-backed store and is used by
// tests and by tools that replay event histories offline.
type MemoryStore struct {
	mu         sync.Mutex
	materials  map[uuid.UUID]MaterialState
	activities map[uuid.UUID]ActivityState
	receptions map[uuid.UUID][]ReceptionEvent
	deliveries map[uuid.UUID][]DeliveryEvent
	executions map[uuid.UUID][]ExecutionEvent
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		materials:  make(map[uuid.UUID]MaterialState),
		activities: make(map[uuid.UUID]ActivityState),
		receptions: make(map[uuid.UUID][]ReceptionEvent),
		deliveries: make(map[uuid.UUID][]DeliveryEvent),
		executions: make(map[uuid.UUID][]ExecutionEvent),
	}
}

// PutMaterial seeds or replaces a material aggregate.
func (s *MemoryStore) PutMaterial(state MaterialState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.materials[state.MaterialID] = state
}

// PutActivity seeds or replaces an activity aggregate.
func (s *MemoryStore) PutActivity(state ActivityState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activities[state.ActivityID] = state
}

func (s *MemoryStore) Material(materialID uuid.UUID) (MaterialState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.materials[materialID]
	if !ok {
		return MaterialState{}, ErrNotFound
	}
	return state, nil
}

func (s *MemoryStore) MaterialInProject(projectID, catalogID uuid.UUID) (MaterialState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, state := range s.materials {
		if state.ProjectID == projectID && state.CatalogID == catalogID {
			return state, nil
		}
	}
	return MaterialState{}, ErrNotFound
}

func (s *MemoryStore) Activity(activityID uuid.UUID) (ActivityState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.activities[activityID]
	if !ok {
		return ActivityState{}, ErrNotFound
	}
	return state, nil
}

// materialMatches checks the counters the mutation was validated against.
func materialMatches(stored, prev MaterialState) bool {
	return stored.Received.Equal(prev.Received) && stored.Used.Equal(prev.Used)
}

func (s *MemoryStore) CommitReception(prev, next MaterialState, ev ReceptionEvent) (ReceptionEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.materials[prev.MaterialID]
	if !ok {
		return ReceptionEvent{}, ErrNotFound
	}
	if !materialMatches(stored, prev) {
		return ReceptionEvent{}, &ConcurrencyConflictError{AggregateID: prev.MaterialID}
	}
	ev = stampReception(ev)
	s.materials[next.MaterialID] = next
	s.receptions[ev.MaterialID] = append(s.receptions[ev.MaterialID], ev)
	return ev, nil
}

func (s *MemoryStore) CommitDelivery(prev, next MaterialState, ev DeliveryEvent) (DeliveryEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.materials[prev.MaterialID]
	if !ok {
		return DeliveryEvent{}, ErrNotFound
	}
	if !materialMatches(stored, prev) {
		return DeliveryEvent{}, &ConcurrencyConflictError{AggregateID: prev.MaterialID}
	}
	ev = stampDelivery(ev)
	s.materials[next.MaterialID] = next
	s.deliveries[ev.MaterialID] = append(s.deliveries[ev.MaterialID], ev)
	return ev, nil
}

func (s *MemoryStore) CommitRelocation(prevSrc, nextSrc MaterialState, ev DeliveryEvent,
	prevDst, nextDst MaterialState, credit ReceptionEvent) (DeliveryEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	src, ok := s.materials[prevSrc.MaterialID]
	if !ok {
		return DeliveryEvent{}, ErrNotFound
	}
	dst, ok := s.materials[prevDst.MaterialID]
	if !ok {
		return DeliveryEvent{}, &UnknownDestinationMaterialError{
			MaterialID:           prevSrc.MaterialID,
			CatalogID:            prevSrc.CatalogID,
			DestinationProjectID: nextDst.ProjectID,
		}
	}
	if !materialMatches(src, prevSrc) {
		return DeliveryEvent{}, &ConcurrencyConflictError{AggregateID: prevSrc.MaterialID}
	}
	if !materialMatches(dst, prevDst) {
		return DeliveryEvent{}, &ConcurrencyConflictError{AggregateID: prevDst.MaterialID}
	}
	ev = stampDelivery(ev)
	credit = stampReception(credit)
	s.materials[nextSrc.MaterialID] = nextSrc
	s.materials[nextDst.MaterialID] = nextDst
	s.deliveries[ev.MaterialID] = append(s.deliveries[ev.MaterialID], ev)
	s.receptions[credit.MaterialID] = append(s.receptions[credit.MaterialID], credit)
	return ev, nil
}

func (s *MemoryStore) CommitExecution(prev, next ActivityState, ev ExecutionEvent) (ExecutionEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.activities[prev.ActivityID]
	if !ok {
		return ExecutionEvent{}, ErrNotFound
	}
	if !stored.Executed.Equal(prev.Executed) {
		return ExecutionEvent{}, &ConcurrencyConflictError{AggregateID: prev.ActivityID}
	}
	if ev.ID == uuid.Nil {
		ev.ID = uuid.New()
	}
	if ev.RecordedAt.IsZero() {
		ev.RecordedAt = time.Now()
	}
	s.activities[next.ActivityID] = next
	s.executions[ev.ActivityID] = append(s.executions[ev.ActivityID], ev)
	return ev, nil
}

func (s *MemoryStore) Receptions(materialID uuid.UUID) ([]ReceptionEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]ReceptionEvent(nil), s.receptions[materialID]...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (s *MemoryStore) Deliveries(materialID uuid.UUID) ([]DeliveryEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]DeliveryEvent(nil), s.deliveries[materialID]...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (s *MemoryStore) Executions(activityID uuid.UUID) ([]ExecutionEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]ExecutionEvent(nil), s.executions[activityID]...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func stampReception(ev ReceptionEvent) ReceptionEvent {
	if ev.ID == uuid.Nil {
		ev.ID = uuid.New()
	}
	if ev.RecordedAt.IsZero() {
		ev.RecordedAt = time.Now()
	}
	return ev
}

func stampDelivery(ev DeliveryEvent) DeliveryEvent {
	if ev.ID == uuid.Nil {
		ev.ID = uuid.New()
	}
	if ev.RecordedAt.IsZero() {
		ev.RecordedAt = time.Now()
	}
	return ev
}
