package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Purchase order statuses.
const (
	OrderPending   = "pending"
	OrderPartial   = "partially-received"
	OrderReceived  = "received"
	OrderCancelled = "cancelled"
)

// PurchaseOrder is a supply-workflow order against which receptions are
// recorded. Delivery deviation = actual vs estimated delivery date.
type PurchaseOrder struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index" json:"project_id"`
	Project   *Project  `gorm:"foreignKey:ProjectID" json:"project,omitempty"`

	Supplier string `gorm:"size:255;not null" json:"supplier"`

	OrderDate             DateOnly  `gorm:"type:date;not null" json:"order_date"`
	EstimatedDeliveryDate DateOnly  `gorm:"type:date;not null" json:"estimated_delivery_date"`
	ActualDeliveryDate    *DateOnly `gorm:"type:date" json:"actual_delivery_date,omitempty"`

	Status string `gorm:"size:50;not null;default:'pending';index" json:"status"`

	CreatedBy string         `gorm:"size:255" json:"created_by,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Items []PurchaseOrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// PurchaseOrderItem is one material line on a purchase order.
type PurchaseOrderItem struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	MaterialID uuid.UUID `gorm:"type:uuid;not null;index" json:"material_id"`
	Material   *Material `gorm:"foreignKey:MaterialID" json:"material,omitempty"`

	Quantity decimal.Decimal `gorm:"type:decimal(15,4);not null" json:"quantity"`
	Unit     string          `gorm:"size:50;not null" json:"unit"`

	CreatedAt time.Time `json:"created_at"`
}

func (PurchaseOrderItem) TableName() string {
	return "purchase_order_items"
}
