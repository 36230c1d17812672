package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/nvillegase/solenium-construct-flow-sub000/config"
	"github.com/nvillegase/solenium-construct-flow-sub000/models"
	"github.com/nvillegase/solenium-construct-flow-sub000/pkg/ledger"
)

// ProjectSummary is one row of the supervision board: where the project is
// versus where the plan says it should be, plus what is late.
type ProjectSummary struct {
	ProjectID         uuid.UUID `json:"project_id"`
	Code              string    `json:"code"`
	Name              string    `json:"name"`
	Status            string    `json:"status"`
	Progress          float64   `json:"progress"`
	ProjectedProgress float64   `json:"projected_progress"`
	Deviation         float64   `json:"deviation"`

	OverdueActivities []OverdueActivity `json:"overdue_activities"`
	LateOrders        []LateOrder       `json:"late_orders"`
}

// OverdueActivity is an activity whose scope line's expected execution date
// has passed without the activity reaching completion.
type OverdueActivity struct {
	ActivityID   uuid.UUID       `json:"activity_id"`
	Name         string          `json:"name"`
	ContractorID uuid.UUID       `json:"contractor_id"`
	Progress     int             `json:"progress"`
	ExpectedDate models.DateOnly `json:"expected_date"`
	DaysLate     int             `json:"days_late"`
	Severity     string          `json:"severity"`
}

// LateOrder is a purchase order delivered, or still running, past its
// estimated delivery date.
type LateOrder struct {
	OrderID       uuid.UUID `json:"order_id"`
	Supplier      string    `json:"supplier"`
	Status        string    `json:"status"`
	DeviationDays int       `json:"deviation_days"`
	Severity      string    `json:"severity"`
}

func overdueActivities(projectID uuid.UUID, now time.Time) ([]OverdueActivity, error) {
	var activities []models.Activity
	err := config.DB.Preload("WorkQuantity").Where("project_id = ?", projectID).
		Find(&activities).Error
	if err != nil {
		return nil, err
	}
	out := []OverdueActivity{}
	for _, a := range activities {
		if a.WorkQuantity == nil || a.WorkQuantity.ExpectedExecutionDate == nil {
			continue
		}
		expected := a.WorkQuantity.ExpectedExecutionDate.Time()
		if !ledger.IsOverdue(expected, now, a.Progress) {
			continue
		}
		days := ledger.DeviationDays(expected, now)
		out = append(out, OverdueActivity{
			ActivityID:   a.ID,
			Name:         a.Name,
			ContractorID: a.ContractorID,
			Progress:     a.Progress,
			ExpectedDate: *a.WorkQuantity.ExpectedExecutionDate,
			DaysLate:     days,
			Severity:     string(ledger.DeviationSeverity(days)),
		})
	}
	return out, nil
}

func lateOrders(projectID uuid.UUID, now time.Time) ([]LateOrder, error) {
	var orders []models.PurchaseOrder
	err := config.DB.Where("project_id = ? AND status <> ?", projectID, models.OrderCancelled).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	out := []LateOrder{}
	for _, o := range orders {
		reference := now
		if o.ActualDeliveryDate != nil {
			reference = o.ActualDeliveryDate.Time()
		}
		days := ledger.DeviationDays(o.EstimatedDeliveryDate.Time(), reference)
		if days <= 0 {
			continue
		}
		out = append(out, LateOrder{
			OrderID:       o.ID,
			Supplier:      o.Supplier,
			Status:        o.Status,
			DeviationDays: days,
			Severity:      string(ledger.DeviationSeverity(days)),
		})
	}
	return out, nil
}

func buildProjectSummaries(now time.Time) ([]ProjectSummary, error) {
	var projects []models.Project
	err := config.DB.Where("status IN ?", []string{models.ProjectInExecution, models.ProjectPaused}).
		Order("code asc").Find(&projects).Error
	if err != nil {
		return nil, err
	}
	summaries := make([]ProjectSummary, 0, len(projects))
	for _, p := range projects {
		if err := recalculateProjectProgress(p.ID); err != nil {
			return nil, err
		}
		if err := config.DB.First(&p, "id = ?", p.ID).Error; err != nil {
			return nil, err
		}
		overdue, err := overdueActivities(p.ID, now)
		if err != nil {
			return nil, err
		}
		late, err := lateOrders(p.ID, now)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, ProjectSummary{
			ProjectID:         p.ID,
			Code:              p.Code,
			Name:              p.Name,
			Status:            p.Status,
			Progress:          p.Progress,
			ProjectedProgress: p.ProjectedProgress,
			Deviation:         p.Progress - p.ProjectedProgress,
			OverdueActivities: overdue,
			LateOrders:        late,
		})
	}
	return summaries, nil
}

// GetSupervisionBoard returns the cross-project status board for active
// projects: actual vs projected progress plus overdue work and late supply.
func GetSupervisionBoard(w http.ResponseWriter, r *http.Request) {
	summaries, err := buildProjectSummaries(time.Now().UTC())
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summaries)
}
