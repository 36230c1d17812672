package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/nvillegase/solenium-construct-flow-sub000/config"
	"github.com/nvillegase/solenium-construct-flow-sub000/middleware"
	"github.com/nvillegase/solenium-construct-flow-sub000/models"
	"github.com/nvillegase/solenium-construct-flow-sub000/utils"
)

// Allowed project status transitions. Completed and cancelled are terminal.
var projectTransitions = map[string][]string{
	models.ProjectPlanning:    {models.ProjectInExecution, models.ProjectCancelled},
	models.ProjectInExecution: {models.ProjectPaused, models.ProjectCompleted, models.ProjectCancelled},
	models.ProjectPaused:      {models.ProjectInExecution, models.ProjectCancelled},
}

func transitionAllowed(from, to string) bool {
	for _, s := range projectTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type CreateProjectRequest struct {
	Code            string           `json:"code"`
	Name            string           `json:"name"`
	Location        string           `json:"location"`
	Latitude        float64          `json:"latitude"`
	Longitude       float64          `json:"longitude"`
	SiteBoundary    json.RawMessage  `json:"site_boundary"`
	StartDate       *models.DateOnly `json:"start_date"`
	ExpectedEndDate *models.DateOnly `json:"expected_end_date"`
}

func CreateProject(w http.ResponseWriter, r *http.Request) {
	var req CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Code == "" || req.Name == "" {
		http.Error(w, "code and name are required", http.StatusBadRequest)
		return
	}
	if len(req.SiteBoundary) > 0 {
		if _, err := utils.ParseSiteBoundary(req.SiteBoundary); err != nil {
			http.Error(w, "invalid site boundary: "+err.Error(), http.StatusBadRequest)
			return
		}
	}
	project := models.Project{
		Code:            req.Code,
		Name:            req.Name,
		Location:        req.Location,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		SiteBoundary:    datatypes.JSON(req.SiteBoundary),
		StartDate:       req.StartDate,
		ExpectedEndDate: req.ExpectedEndDate,
		Status:          models.ProjectPlanning,
	}
	if claims := middleware.GetClaims(r); claims != nil {
		project.CreatedBy = claims.UserID
	}
	if err := config.DB.Create(&project).Error; err != nil {
		http.Error(w, "failed to create project (duplicate code?)", http.StatusConflict)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(project)
}

func GetProjects(w http.ResponseWriter, r *http.Request) {
	var projects []models.Project
	q := config.DB.Order("code asc")
	if status := r.URL.Query().Get("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Find(&projects).Error; err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(projects)
}

func GetProject(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid project id", http.StatusBadRequest)
		return
	}
	var project models.Project
	if err := config.DB.Preload("WorkQuantities").Preload("Materials").
		Preload("Activities").First(&project, "id = ?", id).Error; err != nil {
		http.Error(w, "project not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(project)
}

func UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid project id", http.StatusBadRequest)
		return
	}
	var project models.Project
	if err := config.DB.First(&project, "id = ?", id).Error; err != nil {
		http.Error(w, "project not found", http.StatusNotFound)
		return
	}
	var req CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if len(req.SiteBoundary) > 0 {
		if _, err := utils.ParseSiteBoundary(req.SiteBoundary); err != nil {
			http.Error(w, "invalid site boundary: "+err.Error(), http.StatusBadRequest)
			return
		}
		project.SiteBoundary = datatypes.JSON(req.SiteBoundary)
	}
	if req.Name != "" {
		project.Name = req.Name
	}
	if req.Location != "" {
		project.Location = req.Location
	}
	if req.Latitude != 0 {
		project.Latitude = req.Latitude
	}
	if req.Longitude != 0 {
		project.Longitude = req.Longitude
	}
	if req.StartDate != nil {
		project.StartDate = req.StartDate
	}
	if req.ExpectedEndDate != nil {
		project.ExpectedEndDate = req.ExpectedEndDate
	}
	if err := config.DB.Save(&project).Error; err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(project)
}

func UpdateProjectStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid project id", http.StatusBadRequest)
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	var project models.Project
	if err := config.DB.First(&project, "id = ?", id).Error; err != nil {
		http.Error(w, "project not found", http.StatusNotFound)
		return
	}
	if !transitionAllowed(project.Status, req.Status) {
		http.Error(w, "invalid status transition", http.StatusConflict)
		return
	}
	if err := config.DB.Model(&project).Update("status", req.Status).Error; err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(project)
}

// recalculateProjectProgress rolls activity progress up to the project:
// actual progress is the executed share of the summed estimates, projected
// progress the planned share from daily projections dated up to today. Both
// are stored denormalized for list views; this is the only writer.
func recalculateProjectProgress(projectID uuid.UUID) error {
	var activities []models.Activity
	if err := config.DB.Where("project_id = ?", projectID).Find(&activities).Error; err != nil {
		return err
	}

	totalEstimated := decimal.Zero
	totalExecuted := decimal.Zero
	for _, a := range activities {
		totalEstimated = totalEstimated.Add(a.EstimatedQuantity)
		executed := a.ExecutedQuantity
		if executed.GreaterThan(a.EstimatedQuantity) {
			executed = a.EstimatedQuantity
		}
		totalExecuted = totalExecuted.Add(executed)
	}

	actual := 0.0
	if totalEstimated.Sign() > 0 {
		actual, _ = totalExecuted.Mul(decimal.NewFromInt(100)).Div(totalEstimated).Float64()
		if actual > 100 {
			actual = 100
		}
	}

	// Planned share: projection entries dated up to today, against the same
	// estimate base.
	today := time.Now().UTC().Format("2006-01-02")
	var entries []models.ProjectionActivity
	err := config.DB.
		Joins("JOIN daily_projections ON daily_projections.id = projection_activities.projection_id").
		Where("daily_projections.project_id = ? AND daily_projections.date <= ? AND daily_projections.deleted_at IS NULL", projectID, today).
		Find(&entries).Error
	if err != nil {
		return err
	}
	totalPlanned := decimal.Zero
	for _, e := range entries {
		totalPlanned = totalPlanned.Add(e.PlannedQuantity)
	}
	projected := 0.0
	if totalEstimated.Sign() > 0 {
		projected, _ = totalPlanned.Mul(decimal.NewFromInt(100)).Div(totalEstimated).Float64()
		if projected > 100 {
			projected = 100
		}
	}

	return config.DB.Model(&models.Project{}).Where("id = ?", projectID).
		Updates(map[string]interface{}{
			"progress":           actual,
			"projected_progress": projected,
		}).Error
}

func GetProjectProgress(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid project id", http.StatusBadRequest)
		return
	}
	if err := recalculateProjectProgress(id); err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	var project models.Project
	if err := config.DB.First(&project, "id = ?", id).Error; err != nil {
		http.Error(w, "project not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"project_id":         project.ID,
		"progress":           project.Progress,
		"projected_progress": project.ProjectedProgress,
		"deviation":          project.Progress - project.ProjectedProgress,
	})
}
