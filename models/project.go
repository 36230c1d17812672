package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Project statuses.
const (
	ProjectPlanning    = "planning"
	ProjectInExecution = "in-execution"
	ProjectPaused      = "paused"
	ProjectCompleted   = "completed"
	ProjectCancelled   = "cancelled"
)

// Project represents a construction site.
type Project struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Code     string    `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Name     string    `gorm:"size:255;not null" json:"name"`
	Location string    `gorm:"size:255" json:"location,omitempty"`

	// Optional site polygon used to check that field submissions were
	// recorded on site. GeoJSON-style [[lng,lat],...] ring.
	Latitude     float64         `gorm:"type:decimal(10,8)" json:"latitude,omitempty"`
	Longitude    float64         `gorm:"type:decimal(11,8)" json:"longitude,omitempty"`
	SiteBoundary datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"site_boundary,omitempty"`

	StartDate       *DateOnly `gorm:"type:date" json:"start_date,omitempty"`
	ExpectedEndDate *DateOnly `gorm:"type:date" json:"expected_end_date,omitempty"`

	Status string `gorm:"size:50;not null;default:'planning';index" json:"status"`

	// Actual vs projected progress, both 0-100. Actual is rolled up from
	// activity executions; projected from daily projections.
	Progress          float64 `gorm:"type:decimal(5,2);default:0" json:"progress"`
	ProjectedProgress float64 `gorm:"type:decimal(5,2);default:0" json:"projected_progress"`

	CreatedBy string         `gorm:"size:255;not null" json:"created_by"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	WorkQuantities []WorkQuantity `gorm:"foreignKey:ProjectID" json:"work_quantities,omitempty"`
	Materials      []Material     `gorm:"foreignKey:ProjectID" json:"materials,omitempty"`
	Activities     []Activity     `gorm:"foreignKey:ProjectID" json:"activities,omitempty"`
}

func (Project) TableName() string {
	return "projects"
}

// WorkQuantity is a planned scope-of-work line item within a project,
// drawn from the work-quantity catalog.
type WorkQuantity struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index" json:"project_id"`
	Project   *Project  `gorm:"foreignKey:ProjectID" json:"project,omitempty"`

	CatalogID   uuid.UUID `gorm:"type:uuid;not null;index" json:"catalog_id"`
	Description string    `gorm:"size:500;not null" json:"description"`
	Unit        string    `gorm:"size:50;not null" json:"unit"`
	Quantity    float64   `gorm:"type:decimal(15,4);not null;default:0" json:"quantity"`

	ExpectedExecutionDate *DateOnly `gorm:"type:date" json:"expected_execution_date,omitempty"`

	// Materials this line item consumes, as a uuid list.
	MaterialIDs datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"material_ids"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (WorkQuantity) TableName() string {
	return "work_quantities"
}
