package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Quality statuses for received material. All three count toward received
// stock; the status is tracked for quality follow-up only.
const (
	QualityGood      = "good"
	QualityRegular   = "regular"
	QualityDefective = "defective"
)

// Material is a material type tracked for one project, drawn from the
// material catalog. received and used are only ever moved by reception and
// delivery events applied in submission order; available = received - used.
type Material struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index" json:"project_id"`
	Project   *Project  `gorm:"foreignKey:ProjectID" json:"project,omitempty"`

	CatalogID uuid.UUID        `gorm:"type:uuid;not null;index" json:"catalog_id"`
	Catalog   *MaterialCatalog `gorm:"foreignKey:CatalogID" json:"catalog,omitempty"`

	Name string `gorm:"size:255;not null" json:"name"`
	Unit string `gorm:"size:50;not null" json:"unit"`

	EstimatedQuantity decimal.Decimal `gorm:"type:decimal(15,4);not null;default:0" json:"estimated_quantity"`
	ReceivedQuantity  decimal.Decimal `gorm:"type:decimal(15,4);not null;default:0" json:"received_quantity"`
	UsedQuantity      decimal.Decimal `gorm:"type:decimal(15,4);not null;default:0" json:"used_quantity"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Material) TableName() string {
	return "materials"
}

// AvailableQuantity is the derived balance deliveries are gated on.
func (m *Material) AvailableQuantity() decimal.Decimal {
	return m.ReceivedQuantity.Sub(m.UsedQuantity)
}

// MaterialReception records material arriving from a purchase order.
// Append-only: rows are never updated, only compensated by new events.
type MaterialReception struct {
	ID         uuid.UUID     `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProjectID  uuid.UUID     `gorm:"type:uuid;not null;index" json:"project_id"`
	OrderID    *uuid.UUID    `gorm:"type:uuid;index" json:"order_id,omitempty"`
	MaterialID uuid.UUID     `gorm:"type:uuid;not null;index" json:"material_id"`
	Material   *Material     `gorm:"foreignKey:MaterialID" json:"material,omitempty"`

	Quantity      decimal.Decimal `gorm:"type:decimal(15,4);not null" json:"quantity"`
	QualityStatus string          `gorm:"size:20;not null;default:'good'" json:"quality_status"`
	Date          DateOnly        `gorm:"type:date;not null;index" json:"date"`
	Observation   string          `gorm:"type:text" json:"observation,omitempty"`

	RecordedBy string    `gorm:"size:255" json:"recorded_by,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (MaterialReception) TableName() string {
	return "material_receptions"
}

// MaterialDelivery records material handed out of inventory to a work
// crew, or relocated to another project. Append-only.
type MaterialDelivery struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProjectID  uuid.UUID `gorm:"type:uuid;not null;index" json:"project_id"`
	MaterialID uuid.UUID `gorm:"type:uuid;not null;index" json:"material_id"`
	Material   *Material `gorm:"foreignKey:MaterialID" json:"material,omitempty"`

	Quantity  decimal.Decimal `gorm:"type:decimal(15,4);not null" json:"quantity"`
	Recipient string          `gorm:"size:255;not null" json:"recipient"`
	Date      DateOnly        `gorm:"type:date;not null;index" json:"date"`

	IsRelocation         bool       `gorm:"default:false" json:"is_relocation"`
	DestinationProjectID *uuid.UUID `gorm:"type:uuid" json:"destination_project_id,omitempty"`

	RecordedBy string    `gorm:"size:255" json:"recorded_by,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (MaterialDelivery) TableName() string {
	return "material_deliveries"
}
