package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/nvillegase/solenium-construct-flow-sub000/config"
	"github.com/nvillegase/solenium-construct-flow-sub000/middleware"
	"github.com/nvillegase/solenium-construct-flow-sub000/models"
	"github.com/nvillegase/solenium-construct-flow-sub000/pkg/ledger"
)

// newLedger builds the reconciliation ledger over the live database.
func newLedger() *ledger.Ledger {
	return ledger.New(NewGormStore(config.DB),
		ledger.WithOtherCategory(config.OtherIssueCategory()))
}

// writeLedgerError maps the ledger's typed failures onto HTTP responses
// with enough context for the client to render a message. Every one of
// these leaves the aggregates untouched.
func writeLedgerError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")

	var invalid *ledger.InvalidQuantityError
	var insufficient *ledger.InsufficientStockError
	var unknownDst *ledger.UnknownDestinationMaterialError
	var missingDesc *ledger.MissingIssueDescriptionError
	var conflict *ledger.ConcurrencyConflictError

	switch {
	case errors.Is(err, ledger.ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]interface{}{"error": "not found"})
	case errors.As(err, &invalid):
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error":    "invalid_quantity",
			"op":       invalid.Op,
			"quantity": invalid.Quantity,
		})
	case errors.As(err, &insufficient):
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error":       "insufficient_stock",
			"material_id": insufficient.MaterialID,
			"requested":   insufficient.Requested,
			"available":   insufficient.Available,
		})
	case errors.As(err, &unknownDst):
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error":                  "unknown_destination_material",
			"material_id":            unknownDst.MaterialID,
			"catalog_id":             unknownDst.CatalogID,
			"destination_project_id": unknownDst.DestinationProjectID,
		})
	case errors.As(err, &missingDesc):
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error":       "missing_issue_description",
			"activity_id": missingDesc.ActivityID,
			"category":    missingDesc.Category,
		})
	case errors.As(err, &conflict):
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error":        "concurrency_conflict",
			"aggregate_id": conflict.AggregateID,
		})
	default:
		log.Printf("ledger operation failed: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{"error": "internal error"})
	}
}

// CreateReceptionRequest records material arriving from a purchase order.
type CreateReceptionRequest struct {
	MaterialID    uuid.UUID       `json:"material_id"`
	OrderID       *uuid.UUID      `json:"order_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	QualityStatus string          `json:"quality_status"`
	Date          models.DateOnly `json:"date"`
	Observation   string          `json:"observation"`
}

func CreateReception(w http.ResponseWriter, r *http.Request) {
	var req CreateReceptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.QualityStatus == "" {
		req.QualityStatus = models.QualityGood
	}
	claims := middleware.GetClaims(r)

	ev := ledger.ReceptionEvent{
		MaterialID:  req.MaterialID,
		Quantity:    req.Quantity,
		Status:      ledger.QualityStatus(req.QualityStatus),
		Date:        req.Date.Time(),
		Observation: req.Observation,
		RecordedBy:  claims.UserID,
	}
	if req.OrderID != nil {
		ev.OrderID = *req.OrderID
	}

	recorded, err := newLedger().RecordReception(ev)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	if req.OrderID != nil {
		refreshOrderStatus(*req.OrderID)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(recorded)
}

// CreateDeliveryRequest hands material out of inventory, or relocates it
// to another project when destination_project_id is set.
type CreateDeliveryRequest struct {
	MaterialID           uuid.UUID       `json:"material_id"`
	Quantity             decimal.Decimal `json:"quantity"`
	Recipient            string          `json:"recipient"`
	Date                 models.DateOnly `json:"date"`
	DestinationProjectID *uuid.UUID      `json:"destination_project_id"`
}

func CreateDelivery(w http.ResponseWriter, r *http.Request) {
	var req CreateDeliveryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	claims := middleware.GetClaims(r)

	ev := ledger.DeliveryEvent{
		MaterialID: req.MaterialID,
		Quantity:   req.Quantity,
		Recipient:  req.Recipient,
		Date:       req.Date.Time(),
		RecordedBy: claims.UserID,
	}
	if req.DestinationProjectID != nil {
		ev.Relocation = &ledger.Relocation{DestinationProjectID: *req.DestinationProjectID}
	}

	recorded, err := newLedger().RecordDelivery(ev)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(recorded)
}

// GetMaterialAvailability returns the derived available balance.
func GetMaterialAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid material id", http.StatusBadRequest)
		return
	}
	available, err := newLedger().AvailableQuantity(id)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"material_id": id,
		"available":   available,
	})
}

// GetMaterialHistory returns receptions and deliveries ordered by date,
// for the audit view.
func GetMaterialHistory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid material id", http.StatusBadRequest)
		return
	}
	receptions, deliveries, err := newLedger().MaterialHistory(id)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"material_id": id,
		"receptions":  receptions,
		"deliveries":  deliveries,
	})
}
