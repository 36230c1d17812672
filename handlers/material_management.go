package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/nvillegase/solenium-construct-flow-sub000/config"
	"github.com/nvillegase/solenium-construct-flow-sub000/models"
)

// CreateMaterialRequest registers a catalog material on a project. Name
// and unit are copied from the catalog entry; received/used start at zero
// and only move through reception and delivery events.
type CreateMaterialRequest struct {
	ProjectID         uuid.UUID       `json:"project_id"`
	CatalogID         uuid.UUID       `json:"catalog_id"`
	EstimatedQuantity decimal.Decimal `json:"estimated_quantity"`
}

func CreateMaterial(w http.ResponseWriter, r *http.Request) {
	var req CreateMaterialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.EstimatedQuantity.Sign() < 0 {
		http.Error(w, "estimated quantity must not be negative", http.StatusBadRequest)
		return
	}

	var entry models.MaterialCatalog
	if err := config.DB.First(&entry, "id = ?", req.CatalogID).Error; err != nil {
		http.Error(w, "unknown catalog entry", http.StatusBadRequest)
		return
	}
	var project models.Project
	if err := config.DB.First(&project, "id = ?", req.ProjectID).Error; err != nil {
		http.Error(w, "unknown project", http.StatusBadRequest)
		return
	}

	material := models.Material{
		ProjectID:         req.ProjectID,
		CatalogID:         req.CatalogID,
		Name:              entry.Name,
		Unit:              entry.Unit,
		EstimatedQuantity: req.EstimatedQuantity,
	}
	if err := config.DB.Create(&material).Error; err != nil {
		http.Error(w, "failed to create material", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(material)
}

func GetProjectMaterials(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid project id", http.StatusBadRequest)
		return
	}
	var materials []models.Material
	if err := config.DB.Where("project_id = ?", projectID).Order("name asc").Find(&materials).Error; err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}

	type materialView struct {
		models.Material
		AvailableQuantity decimal.Decimal `json:"available_quantity"`
	}
	out := make([]materialView, 0, len(materials))
	for _, m := range materials {
		out = append(out, materialView{Material: m, AvailableQuantity: m.AvailableQuantity()})
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

func GetMaterial(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid material id", http.StatusBadRequest)
		return
	}
	var material models.Material
	if err := config.DB.Preload("Catalog").First(&material, "id = ?", id).Error; err != nil {
		http.Error(w, "material not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"material":           material,
		"available_quantity": material.AvailableQuantity(),
	})
}

// UpdateMaterialEstimate adjusts the design estimate. The received/used
// counters are deliberately not updatable here; they move only through
// events.
func UpdateMaterialEstimate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid material id", http.StatusBadRequest)
		return
	}
	var req struct {
		EstimatedQuantity decimal.Decimal `json:"estimated_quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.EstimatedQuantity.Sign() < 0 {
		http.Error(w, "estimated quantity must not be negative", http.StatusBadRequest)
		return
	}
	res := config.DB.Model(&models.Material{}).Where("id = ?", id).
		Update("estimated_quantity", req.EstimatedQuantity)
	if res.Error != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	if res.RowsAffected == 0 {
		http.Error(w, "material not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
