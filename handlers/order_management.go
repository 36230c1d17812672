package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/nvillegase/solenium-construct-flow-sub000/config"
	"github.com/nvillegase/solenium-construct-flow-sub000/middleware"
	"github.com/nvillegase/solenium-construct-flow-sub000/models"
	"github.com/nvillegase/solenium-construct-flow-sub000/pkg/ledger"
)

// CreateOrderRequest opens a purchase order with its material lines.
type CreateOrderRequest struct {
	ProjectID             uuid.UUID       `json:"project_id"`
	Supplier              string          `json:"supplier"`
	OrderDate             models.DateOnly `json:"order_date"`
	EstimatedDeliveryDate models.DateOnly `json:"estimated_delivery_date"`
	Items                 []struct {
		MaterialID uuid.UUID       `json:"material_id"`
		Quantity   decimal.Decimal `json:"quantity"`
		Unit       string          `json:"unit"`
	} `json:"items"`
}

func CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Supplier == "" {
		http.Error(w, "supplier is required", http.StatusBadRequest)
		return
	}
	if len(req.Items) == 0 {
		http.Error(w, "order needs at least one item", http.StatusBadRequest)
		return
	}
	for _, it := range req.Items {
		if it.Quantity.Sign() <= 0 {
			http.Error(w, "item quantities must be positive", http.StatusBadRequest)
			return
		}
	}

	order := models.PurchaseOrder{
		ProjectID:             req.ProjectID,
		Supplier:              req.Supplier,
		OrderDate:             req.OrderDate,
		EstimatedDeliveryDate: req.EstimatedDeliveryDate,
		Status:                models.OrderPending,
	}
	if claims := middleware.GetClaims(r); claims != nil {
		order.CreatedBy = claims.UserID
	}
	for _, it := range req.Items {
		order.Items = append(order.Items, models.PurchaseOrderItem{
			MaterialID: it.MaterialID,
			Quantity:   it.Quantity,
			Unit:       it.Unit,
		})
	}
	if err := config.DB.Create(&order).Error; err != nil {
		http.Error(w, "failed to create order", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(order)
}

func GetProjectOrders(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid project id", http.StatusBadRequest)
		return
	}
	var orders []models.PurchaseOrder
	q := config.DB.Preload("Items").Where("project_id = ?", projectID)
	if status := r.URL.Query().Get("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Order("order_date asc, created_at asc").Find(&orders).Error; err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(orders)
}

func GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)
		return
	}
	var order models.PurchaseOrder
	if err := config.DB.Preload("Items.Material").First(&order, "id = ?", id).Error; err != nil {
		http.Error(w, "order not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(order)
}

// CancelOrder marks a pending or partially received order cancelled.
// Receptions already recorded against it are kept; cancellation only stops
// the order from counting as outstanding supply.
func CancelOrder(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)
		return
	}
	var order models.PurchaseOrder
	if err := config.DB.First(&order, "id = ?", id).Error; err != nil {
		http.Error(w, "order not found", http.StatusNotFound)
		return
	}
	if order.Status == models.OrderReceived {
		http.Error(w, "order already fully received", http.StatusConflict)
		return
	}
	if err := config.DB.Model(&order).Update("status", models.OrderCancelled).Error; err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// refreshOrderStatus recomputes an order's status from the receptions
// recorded against it. Fully received sets actual_delivery_date to the
// latest reception date; a cancelled order is left alone.
func refreshOrderStatus(orderID uuid.UUID) {
	var order models.PurchaseOrder
	if err := config.DB.Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
		log.Printf("refresh order status: load %s: %v", orderID, err)
		return
	}
	if order.Status == models.OrderCancelled {
		return
	}

	var receptions []models.MaterialReception
	if err := config.DB.Where("order_id = ?", orderID).Find(&receptions).Error; err != nil {
		log.Printf("refresh order status: receptions %s: %v", orderID, err)
		return
	}

	receivedByMaterial := map[uuid.UUID]decimal.Decimal{}
	lastDate := time.Time{}
	for _, rec := range receptions {
		receivedByMaterial[rec.MaterialID] = receivedByMaterial[rec.MaterialID].Add(rec.Quantity)
		if d := rec.Date.Time(); d.After(lastDate) {
			lastDate = d
		}
	}

	anyReceived := len(receptions) > 0
	allReceived := true
	for _, item := range order.Items {
		if receivedByMaterial[item.MaterialID].LessThan(item.Quantity) {
			allReceived = false
			break
		}
	}

	updates := map[string]interface{}{}
	switch {
	case allReceived && anyReceived:
		updates["status"] = models.OrderReceived
		actual := models.DateOnly(lastDate)
		updates["actual_delivery_date"] = actual
	case anyReceived:
		updates["status"] = models.OrderPartial
	default:
		updates["status"] = models.OrderPending
	}
	if err := config.DB.Model(&order).Updates(updates).Error; err != nil {
		log.Printf("refresh order status: update %s: %v", orderID, err)
	}
}

// GetOrderDeviations reports, per order, how late (or early) delivery ran
// against the estimate. Open orders are measured against today.
func GetOrderDeviations(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid project id", http.StatusBadRequest)
		return
	}
	var orders []models.PurchaseOrder
	if err := config.DB.Where("project_id = ? AND status <> ?", projectID, models.OrderCancelled).
		Order("estimated_delivery_date asc").Find(&orders).Error; err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}

	type deviationView struct {
		OrderID               uuid.UUID        `json:"order_id"`
		Supplier              string           `json:"supplier"`
		Status                string           `json:"status"`
		EstimatedDeliveryDate models.DateOnly  `json:"estimated_delivery_date"`
		ActualDeliveryDate    *models.DateOnly `json:"actual_delivery_date,omitempty"`
		DeviationDays         int              `json:"deviation_days"`
		Severity              string           `json:"severity"`
	}
	now := time.Now().UTC()
	out := make([]deviationView, 0, len(orders))
	for _, o := range orders {
		reference := now
		if o.ActualDeliveryDate != nil {
			reference = o.ActualDeliveryDate.Time()
		}
		days := ledger.DeviationDays(o.EstimatedDeliveryDate.Time(), reference)
		out = append(out, deviationView{
			OrderID:               o.ID,
			Supplier:              o.Supplier,
			Status:                o.Status,
			EstimatedDeliveryDate: o.EstimatedDeliveryDate,
			ActualDeliveryDate:    o.ActualDeliveryDate,
			DeviationDays:         days,
			Severity:              string(ledger.DeviationSeverity(days)),
		})
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}
