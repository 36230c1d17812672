package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DailyProjection is the plan for a specific date: which activities each
// contractor should advance and by how much. Compared against the day's
// executions; it never feeds the reconciliation counters itself.
type DailyProjection struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index" json:"project_id"`
	Project   *Project  `gorm:"foreignKey:ProjectID" json:"project,omitempty"`

	Date      DateOnly `gorm:"type:date;not null;index" json:"date"`
	Completed bool     `gorm:"default:false" json:"completed"`

	CreatedBy string         `gorm:"size:255" json:"created_by,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Entries []ProjectionActivity `gorm:"foreignKey:ProjectionID" json:"entries,omitempty"`
}

func (DailyProjection) TableName() string {
	return "daily_projections"
}

// ProjectionActivity is one planned line inside a daily projection.
type ProjectionActivity struct {
	ID           uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProjectionID uuid.UUID   `gorm:"type:uuid;not null;index" json:"projection_id"`
	ActivityID   uuid.UUID   `gorm:"type:uuid;not null;index" json:"activity_id"`
	Activity     *Activity   `gorm:"foreignKey:ActivityID" json:"activity,omitempty"`
	ContractorID uuid.UUID   `gorm:"type:uuid;not null;index" json:"contractor_id"`
	Contractor   *Contractor `gorm:"foreignKey:ContractorID" json:"contractor,omitempty"`

	PlannedQuantity decimal.Decimal `gorm:"type:decimal(15,4);not null" json:"planned_quantity"`
	Unit            string          `gorm:"size:50;not null" json:"unit"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ProjectionActivity) TableName() string {
	return "projection_activities"
}

// Contractor is a work-performing entity referenced by activities and
// projection entries. No derived state.
type Contractor struct {
	ID    uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name  string    `gorm:"size:255;not null" json:"name"`
	Phone string    `gorm:"size:30" json:"phone,omitempty"`
	Email string    `gorm:"size:100" json:"email,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Contractor) TableName() string {
	return "contractors"
}
