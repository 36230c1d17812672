package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/nvillegase/solenium-construct-flow-sub000/config"
	"github.com/nvillegase/solenium-construct-flow-sub000/models"
)

func CreateContractor(w http.ResponseWriter, r *http.Request) {
	var contractor models.Contractor
	if err := json.NewDecoder(r.Body).Decode(&contractor); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if contractor.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	contractor.ID = uuid.Nil
	if err := config.DB.Create(&contractor).Error; err != nil {
		http.Error(w, "failed to create contractor", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(contractor)
}

func GetContractors(w http.ResponseWriter, r *http.Request) {
	var contractors []models.Contractor
	if err := config.DB.Order("name asc").Find(&contractors).Error; err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(contractors)
}

func UpdateContractor(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid contractor id", http.StatusBadRequest)
		return
	}
	var contractor models.Contractor
	if err := config.DB.First(&contractor, "id = ?", id).Error; err != nil {
		http.Error(w, "contractor not found", http.StatusNotFound)
		return
	}
	var req models.Contractor
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Name != "" {
		contractor.Name = req.Name
	}
	if req.Phone != "" {
		contractor.Phone = req.Phone
	}
	if req.Email != "" {
		contractor.Email = req.Email
	}
	if err := config.DB.Save(&contractor).Error; err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(contractor)
}

func GetMaterialCatalog(w http.ResponseWriter, r *http.Request) {
	var entries []models.MaterialCatalog
	q := config.DB.Order("code asc")
	if r.URL.Query().Get("include_inactive") != "true" {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Find(&entries).Error; err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

func CreateMaterialCatalogEntry(w http.ResponseWriter, r *http.Request) {
	var entry models.MaterialCatalog
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if entry.Code == "" || entry.Name == "" || entry.Unit == "" {
		http.Error(w, "code, name and unit are required", http.StatusBadRequest)
		return
	}
	entry.ID = uuid.Nil
	entry.IsActive = true
	if err := config.DB.Create(&entry).Error; err != nil {
		http.Error(w, "failed to create entry (duplicate code?)", http.StatusConflict)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(entry)
}

func GetWorkQuantityCatalog(w http.ResponseWriter, r *http.Request) {
	var entries []models.WorkQuantityCatalog
	q := config.DB.Order("code asc")
	if r.URL.Query().Get("include_inactive") != "true" {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Find(&entries).Error; err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

func CreateWorkQuantityCatalogEntry(w http.ResponseWriter, r *http.Request) {
	var entry models.WorkQuantityCatalog
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if entry.Code == "" || entry.Description == "" || entry.Unit == "" {
		http.Error(w, "code, description and unit are required", http.StatusBadRequest)
		return
	}
	entry.ID = uuid.Nil
	entry.IsActive = true
	if err := config.DB.Create(&entry).Error; err != nil {
		http.Error(w, "failed to create entry (duplicate code?)", http.StatusConflict)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(entry)
}

// GetIssueCategories exposes the configured delay/incident category set so
// field clients can render the picker.
func GetIssueCategories(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"categories":     config.IssueCategories(),
		"other_category": config.OtherIssueCategory(),
	})
}
