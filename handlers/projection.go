package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/nvillegase/solenium-construct-flow-sub000/config"
	"github.com/nvillegase/solenium-construct-flow-sub000/middleware"
	"github.com/nvillegase/solenium-construct-flow-sub000/models"
)

// ProjectionEntryRequest is one planned line in a projection save. A draft
// ref inserts a new row; a persisted ref updates the existing one.
type ProjectionEntryRequest struct {
	Ref             models.RecordRef `json:"ref"`
	ActivityID      uuid.UUID        `json:"activity_id"`
	ContractorID    uuid.UUID        `json:"contractor_id"`
	PlannedQuantity decimal.Decimal  `json:"planned_quantity"`
	Unit            string           `json:"unit"`
}

type SaveProjectionRequest struct {
	ProjectID uuid.UUID                `json:"project_id"`
	Date      models.DateOnly          `json:"date"`
	Completed bool                     `json:"completed"`
	Entries   []ProjectionEntryRequest `json:"entries"`
}

// SaveProjection creates or replaces the plan for one project-day. Entry
// upserts are keyed by record ref, and every draft ref in the request is
// echoed back mapped to the id it was stored under.
func SaveProjection(w http.ResponseWriter, r *http.Request) {
	var req SaveProjectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	for _, e := range req.Entries {
		if e.PlannedQuantity.Sign() <= 0 {
			http.Error(w, "planned quantities must be positive", http.StatusBadRequest)
			return
		}
	}

	var projection models.DailyProjection
	err := config.DB.Where("project_id = ? AND date = ?", req.ProjectID, req.Date).
		First(&projection).Error
	if err != nil {
		projection = models.DailyProjection{
			ProjectID: req.ProjectID,
			Date:      req.Date,
		}
		if claims := middleware.GetClaims(r); claims != nil {
			projection.CreatedBy = claims.UserID
		}
		if err := config.DB.Create(&projection).Error; err != nil {
			http.Error(w, "failed to create projection", http.StatusInternalServerError)
			return
		}
	}
	if projection.Completed {
		http.Error(w, "projection already marked complete", http.StatusConflict)
		return
	}

	draftIDs := map[string]uuid.UUID{}
	for _, e := range req.Entries {
		if e.Ref.IsDraft() {
			entry := models.ProjectionActivity{
				ProjectionID:    projection.ID,
				ActivityID:      e.ActivityID,
				ContractorID:    e.ContractorID,
				PlannedQuantity: e.PlannedQuantity,
				Unit:            e.Unit,
			}
			if err := config.DB.Create(&entry).Error; err != nil {
				http.Error(w, "failed to save entry", http.StatusInternalServerError)
				return
			}
			draftIDs[e.Ref.DraftID()] = entry.ID
			continue
		}
		res := config.DB.Model(&models.ProjectionActivity{}).
			Where("id = ? AND projection_id = ?", e.Ref.ID(), projection.ID).
			Updates(map[string]interface{}{
				"activity_id":      e.ActivityID,
				"contractor_id":    e.ContractorID,
				"planned_quantity": e.PlannedQuantity,
				"unit":             e.Unit,
			})
		if res.Error != nil {
			http.Error(w, "failed to save entry", http.StatusInternalServerError)
			return
		}
		if res.RowsAffected == 0 {
			http.Error(w, "entry not found in this projection", http.StatusNotFound)
			return
		}
	}

	if req.Completed {
		if err := config.DB.Model(&projection).Update("completed", true).Error; err != nil {
			http.Error(w, "db error", http.StatusInternalServerError)
			return
		}
	}

	if err := config.DB.Preload("Entries").First(&projection, "id = ?", projection.ID).Error; err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"projection": projection,
		"draft_ids":  draftIDs,
	})
}

func GetProjectProjections(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid project id", http.StatusBadRequest)
		return
	}
	q := config.DB.Preload("Entries").Where("project_id = ?", projectID)
	if date := r.URL.Query().Get("date"); date != "" {
		q = q.Where("date = ?", date)
	}
	var projections []models.DailyProjection
	if err := q.Order("date asc").Find(&projections).Error; err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(projections)
}

func DeleteProjectionEntry(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid entry id", http.StatusBadRequest)
		return
	}
	var entry models.ProjectionActivity
	if err := config.DB.First(&entry, "id = ?", id).Error; err != nil {
		http.Error(w, "entry not found", http.StatusNotFound)
		return
	}
	var projection models.DailyProjection
	if err := config.DB.First(&projection, "id = ?", entry.ProjectionID).Error; err == nil && projection.Completed {
		http.Error(w, "projection already marked complete", http.StatusConflict)
		return
	}
	if err := config.DB.Delete(&entry).Error; err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
