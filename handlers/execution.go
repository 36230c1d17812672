package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/nvillegase/solenium-construct-flow-sub000/config"
	"github.com/nvillegase/solenium-construct-flow-sub000/middleware"
	"github.com/nvillegase/solenium-construct-flow-sub000/models"
	"github.com/nvillegase/solenium-construct-flow-sub000/pkg/ledger"
	"github.com/nvillegase/solenium-construct-flow-sub000/utils"
)

type CreateActivityRequest struct {
	ProjectID         uuid.UUID       `json:"project_id"`
	WorkQuantityID    uuid.UUID       `json:"work_quantity_id"`
	Name              string          `json:"name"`
	ContractorID      uuid.UUID       `json:"contractor_id"`
	EstimatedQuantity decimal.Decimal `json:"estimated_quantity"`
	Notes             string          `json:"notes"`
}

func CreateActivity(w http.ResponseWriter, r *http.Request) {
	var req CreateActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.EstimatedQuantity.Sign() < 0 {
		http.Error(w, "estimated quantity must not be negative", http.StatusBadRequest)
		return
	}
	var wq models.WorkQuantity
	if err := config.DB.First(&wq, "id = ?", req.WorkQuantityID).Error; err != nil {
		http.Error(w, "unknown work quantity", http.StatusBadRequest)
		return
	}
	if wq.ProjectID != req.ProjectID {
		http.Error(w, "work quantity belongs to another project", http.StatusBadRequest)
		return
	}
	var contractor models.Contractor
	if err := config.DB.First(&contractor, "id = ?", req.ContractorID).Error; err != nil {
		http.Error(w, "unknown contractor", http.StatusBadRequest)
		return
	}

	name := req.Name
	if name == "" {
		name = wq.Description
	}
	activity := models.Activity{
		ProjectID:         req.ProjectID,
		WorkQuantityID:    req.WorkQuantityID,
		Name:              name,
		ContractorID:      req.ContractorID,
		EstimatedQuantity: req.EstimatedQuantity,
		Unit:              wq.Unit,
		Notes:             req.Notes,
	}
	if err := config.DB.Create(&activity).Error; err != nil {
		http.Error(w, "failed to create activity", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(activity)
}

func GetProjectActivities(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid project id", http.StatusBadRequest)
		return
	}
	var activities []models.Activity
	q := config.DB.Preload("Contractor").Where("project_id = ?", projectID)
	if contractor := r.URL.Query().Get("contractor_id"); contractor != "" {
		q = q.Where("contractor_id = ?", contractor)
	}
	if err := q.Order("created_at asc").Find(&activities).Error; err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(activities)
}

func GetActivity(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid activity id", http.StatusBadRequest)
		return
	}
	var activity models.Activity
	if err := config.DB.Preload("Contractor").Preload("WorkQuantity").
		First(&activity, "id = ?", id).Error; err != nil {
		http.Error(w, "activity not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(activity)
}

// CreateExecutionRequest is a field crew's daily report for one activity.
type CreateExecutionRequest struct {
	ActivityID       uuid.UUID       `json:"activity_id"`
	ExecutedQuantity decimal.Decimal `json:"executed_quantity"`
	Date             models.DateOnly `json:"date"`
	Notes            string          `json:"notes"`
	IssueCategory    string          `json:"issue_category"`
	IssueDescription string          `json:"issue_description"`
	Photos           []string        `json:"photos"`
	Latitude         float64         `json:"latitude"`
	Longitude        float64         `json:"longitude"`
}

func CreateExecution(w http.ResponseWriter, r *http.Request) {
	var req CreateExecutionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.IssueCategory != "" && !config.ValidIssueCategory(req.IssueCategory) {
		http.Error(w, "unknown issue category", http.StatusBadRequest)
		return
	}

	var activity models.Activity
	if err := config.DB.First(&activity, "id = ?", req.ActivityID).Error; err != nil {
		http.Error(w, "activity not found", http.StatusNotFound)
		return
	}
	if req.Latitude != 0 || req.Longitude != 0 {
		if err := checkOnSite(activity.ProjectID, req.Latitude, req.Longitude); err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
	}

	ev := ledger.ExecutionEvent{
		ActivityID:       req.ActivityID,
		Quantity:         req.ExecutedQuantity,
		Date:             req.Date.Time(),
		Notes:            req.Notes,
		IssueCategory:    req.IssueCategory,
		IssueDescription: req.IssueDescription,
		Photos:           req.Photos,
		Latitude:         req.Latitude,
		Longitude:        req.Longitude,
	}
	if claims := middleware.GetClaims(r); claims != nil {
		ev.RecordedBy = claims.UserID
	}
	recorded, err := newLedger().RecordExecution(ev)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	// Keep the denormalized project roll-up fresh; the event is already
	// committed so a failed roll-up is only logged downstream.
	_ = recalculateProjectProgress(activity.ProjectID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(recorded)
}

// checkOnSite rejects a GPS-stamped submission recorded outside the project
// boundary, when the project has one.
func checkOnSite(projectID uuid.UUID, lat, lng float64) error {
	var project models.Project
	if err := config.DB.First(&project, "id = ?", projectID).Error; err != nil {
		return nil
	}
	boundary, err := utils.ParseSiteBoundary(project.SiteBoundary)
	if err != nil || boundary == nil {
		return nil
	}
	if !boundary.Contains(lat, lng) {
		return errOffSite
	}
	return nil
}

var errOffSite = errors.New("submission location is outside the project site boundary")

func GetActivityExecutions(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid activity id", http.StatusBadRequest)
		return
	}
	executions, err := newLedger().ExecutionHistory(id)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(executions)
}

func GetActivityProgress(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid activity id", http.StatusBadRequest)
		return
	}
	progress, err := newLedger().ProgressFor(id)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"activity_id": id,
		"progress":    progress,
	})
}
