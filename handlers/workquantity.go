package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/nvillegase/solenium-construct-flow-sub000/config"
	"github.com/nvillegase/solenium-construct-flow-sub000/middleware"
	"github.com/nvillegase/solenium-construct-flow-sub000/models"
)

type CreateWorkQuantityRequest struct {
	ProjectID             uuid.UUID        `json:"project_id"`
	CatalogID             uuid.UUID        `json:"catalog_id"`
	Description           string           `json:"description"`
	Quantity              float64          `json:"quantity"`
	ExpectedExecutionDate *models.DateOnly `json:"expected_execution_date"`
	MaterialIDs           []uuid.UUID      `json:"material_ids"`
}

func CreateWorkQuantity(w http.ResponseWriter, r *http.Request) {
	var req CreateWorkQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Quantity < 0 {
		http.Error(w, "quantity must not be negative", http.StatusBadRequest)
		return
	}
	var entry models.WorkQuantityCatalog
	if err := config.DB.First(&entry, "id = ?", req.CatalogID).Error; err != nil {
		http.Error(w, "unknown catalog entry", http.StatusBadRequest)
		return
	}

	description := req.Description
	if description == "" {
		description = entry.Description
	}
	materialIDs, err := json.Marshal(req.MaterialIDs)
	if err != nil {
		http.Error(w, "invalid material ids", http.StatusBadRequest)
		return
	}
	wq := models.WorkQuantity{
		ProjectID:             req.ProjectID,
		CatalogID:             req.CatalogID,
		Description:           description,
		Unit:                  entry.Unit,
		Quantity:              req.Quantity,
		ExpectedExecutionDate: req.ExpectedExecutionDate,
		MaterialIDs:           materialIDs,
	}
	if err := config.DB.Create(&wq).Error; err != nil {
		http.Error(w, "failed to create work quantity", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(wq)
}

func GetProjectWorkQuantities(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid project id", http.StatusBadRequest)
		return
	}
	var items []models.WorkQuantity
	if err := config.DB.Where("project_id = ?", projectID).
		Order("created_at asc").Find(&items).Error; err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}

// UpdateWorkQuantity edits a scope line. The expected execution date is the
// schedule commitment overdue checks run against, so changing it is held to
// the supervisor role even when other fields are open to design.
func UpdateWorkQuantity(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid work quantity id", http.StatusBadRequest)
		return
	}
	var wq models.WorkQuantity
	if err := config.DB.First(&wq, "id = ?", id).Error; err != nil {
		http.Error(w, "work quantity not found", http.StatusNotFound)
		return
	}
	var req CreateWorkQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	if req.ExpectedExecutionDate != nil {
		role := middleware.GetRole(r)
		if role != models.RoleAdmin && role != models.RoleSupervisor {
			http.Error(w, "only a supervisor may change the expected execution date", http.StatusForbidden)
			return
		}
		wq.ExpectedExecutionDate = req.ExpectedExecutionDate
	}
	if req.Description != "" {
		wq.Description = req.Description
	}
	if req.Quantity > 0 {
		wq.Quantity = req.Quantity
	}
	if req.MaterialIDs != nil {
		materialIDs, err := json.Marshal(req.MaterialIDs)
		if err != nil {
			http.Error(w, "invalid material ids", http.StatusBadRequest)
			return
		}
		wq.MaterialIDs = materialIDs
	}
	if err := config.DB.Save(&wq).Error; err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(wq)
}

func DeleteWorkQuantity(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid work quantity id", http.StatusBadRequest)
		return
	}
	var count int64
	config.DB.Model(&models.Activity{}).Where("work_quantity_id = ?", id).Count(&count)
	if count > 0 {
		http.Error(w, "work quantity has activities", http.StatusConflict)
		return
	}
	res := config.DB.Delete(&models.WorkQuantity{}, "id = ?", id)
	if res.Error != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	if res.RowsAffected == 0 {
		http.Error(w, "work quantity not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
