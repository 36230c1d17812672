package handlers

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/nvillegase/solenium-construct-flow-sub000/models"
	"github.com/nvillegase/solenium-construct-flow-sub000/pkg/ledger"
)

// GormStore backs the reconciliation ledger with Postgres. Every commit is
// one transaction: a conditional update on the aggregate's prior counters
// (the compare-and-swap) plus the event row. A delivery that lost the race
// sees zero affected rows and surfaces a concurrency conflict so the
// ledger can retry against fresh state.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func materialState(m models.Material) ledger.MaterialState {
	return ledger.MaterialState{
		MaterialID: m.ID,
		ProjectID:  m.ProjectID,
		CatalogID:  m.CatalogID,
		Estimated:  m.EstimatedQuantity,
		Received:   m.ReceivedQuantity,
		Used:       m.UsedQuantity,
	}
}

func (s *GormStore) Material(materialID uuid.UUID) (ledger.MaterialState, error) {
	var m models.Material
	if err := s.db.First(&m, "id = ?", materialID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ledger.MaterialState{}, ledger.ErrNotFound
		}
		return ledger.MaterialState{}, err
	}
	return materialState(m), nil
}

func (s *GormStore) MaterialInProject(projectID, catalogID uuid.UUID) (ledger.MaterialState, error) {
	var m models.Material
	err := s.db.First(&m, "project_id = ? AND catalog_id = ?", projectID, catalogID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ledger.MaterialState{}, ledger.ErrNotFound
		}
		return ledger.MaterialState{}, err
	}
	return materialState(m), nil
}

func (s *GormStore) Activity(activityID uuid.UUID) (ledger.ActivityState, error) {
	var a models.Activity
	if err := s.db.First(&a, "id = ?", activityID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ledger.ActivityState{}, ledger.ErrNotFound
		}
		return ledger.ActivityState{}, err
	}
	return ledger.ActivityState{
		ActivityID: a.ID,
		ProjectID:  a.ProjectID,
		Estimated:  a.EstimatedQuantity,
		Executed:   a.ExecutedQuantity,
		Progress:   a.Progress,
	}, nil
}

// casMaterial applies the counter update only when the stored counters
// still match what the mutation was validated against.
func casMaterial(tx *gorm.DB, prev, next ledger.MaterialState) error {
	res := tx.Model(&models.Material{}).
		Where("id = ? AND received_quantity = ? AND used_quantity = ?",
			prev.MaterialID, prev.Received, prev.Used).
		Updates(map[string]interface{}{
			"received_quantity": next.Received,
			"used_quantity":     next.Used,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return &ledger.ConcurrencyConflictError{AggregateID: prev.MaterialID}
	}
	return nil
}

func receptionRow(ev ledger.ReceptionEvent) models.MaterialReception {
	row := models.MaterialReception{
		ID:            ev.ID,
		ProjectID:     ev.ProjectID,
		MaterialID:    ev.MaterialID,
		Quantity:      ev.Quantity,
		QualityStatus: string(ev.Status),
		Date:          models.DateOnly(ev.Date),
		Observation:   ev.Observation,
		RecordedBy:    ev.RecordedBy,
	}
	if ev.OrderID != uuid.Nil {
		orderID := ev.OrderID
		row.OrderID = &orderID
	}
	return row
}

func deliveryRow(ev ledger.DeliveryEvent) models.MaterialDelivery {
	row := models.MaterialDelivery{
		ID:         ev.ID,
		ProjectID:  ev.ProjectID,
		MaterialID: ev.MaterialID,
		Quantity:   ev.Quantity,
		Recipient:  ev.Recipient,
		Date:       models.DateOnly(ev.Date),
		RecordedBy: ev.RecordedBy,
	}
	if ev.Relocation != nil {
		row.IsRelocation = true
		dst := ev.Relocation.DestinationProjectID
		row.DestinationProjectID = &dst
	}
	return row
}

func stamp(id *uuid.UUID, at *time.Time) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
	if at.IsZero() {
		*at = time.Now()
	}
}

func (s *GormStore) CommitReception(prev, next ledger.MaterialState, ev ledger.ReceptionEvent) (ledger.ReceptionEvent, error) {
	stamp(&ev.ID, &ev.RecordedAt)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := casMaterial(tx, prev, next); err != nil {
			return err
		}
		row := receptionRow(ev)
		return tx.Create(&row).Error
	})
	if err != nil {
		return ledger.ReceptionEvent{}, err
	}
	return ev, nil
}

func (s *GormStore) CommitDelivery(prev, next ledger.MaterialState, ev ledger.DeliveryEvent) (ledger.DeliveryEvent, error) {
	stamp(&ev.ID, &ev.RecordedAt)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := casMaterial(tx, prev, next); err != nil {
			return err
		}
		row := deliveryRow(ev)
		return tx.Create(&row).Error
	})
	if err != nil {
		return ledger.DeliveryEvent{}, err
	}
	return ev, nil
}

func (s *GormStore) CommitRelocation(prevSrc, nextSrc ledger.MaterialState, ev ledger.DeliveryEvent,
	prevDst, nextDst ledger.MaterialState, credit ledger.ReceptionEvent) (ledger.DeliveryEvent, error) {
	stamp(&ev.ID, &ev.RecordedAt)
	stamp(&credit.ID, &credit.RecordedAt)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := casMaterial(tx, prevSrc, nextSrc); err != nil {
			return err
		}
		if err := casMaterial(tx, prevDst, nextDst); err != nil {
			return err
		}
		debit := deliveryRow(ev)
		if err := tx.Create(&debit).Error; err != nil {
			return err
		}
		creditRow := receptionRow(credit)
		return tx.Create(&creditRow).Error
	})
	if err != nil {
		return ledger.DeliveryEvent{}, err
	}
	return ev, nil
}

func (s *GormStore) CommitExecution(prev, next ledger.ActivityState, ev ledger.ExecutionEvent) (ledger.ExecutionEvent, error) {
	stamp(&ev.ID, &ev.RecordedAt)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Activity{}).
			Where("id = ? AND executed_quantity = ?", prev.ActivityID, prev.Executed).
			Updates(map[string]interface{}{
				"executed_quantity": next.Executed,
				"progress":          next.Progress,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &ledger.ConcurrencyConflictError{AggregateID: prev.ActivityID}
		}
		row := models.DailyExecution{
			ID:               ev.ID,
			ProjectID:        ev.ProjectID,
			ActivityID:       ev.ActivityID,
			ExecutedQuantity: ev.Quantity,
			Date:             models.DateOnly(ev.Date),
			Notes:            ev.Notes,
			IssueCategory:    ev.IssueCategory,
			IssueDescription: ev.IssueDescription,
			Photos:           pq.StringArray(ev.Photos),
			Latitude:         ev.Latitude,
			Longitude:        ev.Longitude,
			RecordedBy:       ev.RecordedBy,
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		return ledger.ExecutionEvent{}, err
	}
	return ev, nil
}

func (s *GormStore) Receptions(materialID uuid.UUID) ([]ledger.ReceptionEvent, error) {
	var rows []models.MaterialReception
	if err := s.db.Where("material_id = ?", materialID).Order("date asc, created_at asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]ledger.ReceptionEvent, 0, len(rows))
	for _, r := range rows {
		ev := ledger.ReceptionEvent{
			ID:          r.ID,
			MaterialID:  r.MaterialID,
			ProjectID:   r.ProjectID,
			Quantity:    r.Quantity,
			Status:      ledger.QualityStatus(r.QualityStatus),
			Date:        r.Date.Time(),
			Observation: r.Observation,
			RecordedBy:  r.RecordedBy,
			RecordedAt:  r.CreatedAt,
		}
		if r.OrderID != nil {
			ev.OrderID = *r.OrderID
		}
		out = append(out, ev)
	}
	return out, nil
}

func (s *GormStore) Deliveries(materialID uuid.UUID) ([]ledger.DeliveryEvent, error) {
	var rows []models.MaterialDelivery
	if err := s.db.Where("material_id = ?", materialID).Order("date asc, created_at asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]ledger.DeliveryEvent, 0, len(rows))
	for _, r := range rows {
		ev := ledger.DeliveryEvent{
			ID:         r.ID,
			MaterialID: r.MaterialID,
			ProjectID:  r.ProjectID,
			Quantity:   r.Quantity,
			Recipient:  r.Recipient,
			Date:       r.Date.Time(),
			RecordedBy: r.RecordedBy,
			RecordedAt: r.CreatedAt,
		}
		if r.IsRelocation && r.DestinationProjectID != nil {
			ev.Relocation = &ledger.Relocation{DestinationProjectID: *r.DestinationProjectID}
		}
		out = append(out, ev)
	}
	return out, nil
}

func (s *GormStore) Executions(activityID uuid.UUID) ([]ledger.ExecutionEvent, error) {
	var rows []models.DailyExecution
	if err := s.db.Where("activity_id = ?", activityID).Order("date asc, created_at asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]ledger.ExecutionEvent, 0, len(rows))
	for _, r := range rows {
		out = append(out, ledger.ExecutionEvent{
			ID:               r.ID,
			ActivityID:       r.ActivityID,
			ProjectID:        r.ProjectID,
			Quantity:         r.ExecutedQuantity,
			Date:             r.Date.Time(),
			Notes:            r.Notes,
			IssueCategory:    r.IssueCategory,
			IssueDescription: r.IssueDescription,
			Photos:           []string(r.Photos),
			Latitude:         r.Latitude,
			Longitude:        r.Longitude,
			RecordedBy:       r.RecordedBy,
			RecordedAt:       r.CreatedAt,
		})
	}
	return out, nil
}
