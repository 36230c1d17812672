package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Activity is an instance of a WorkQuantity assigned to a contractor and
// tracked day to day. executed_quantity and progress move together and only
// through daily execution events.
type Activity struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index" json:"project_id"`
	Project   *Project  `gorm:"foreignKey:ProjectID" json:"project,omitempty"`

	WorkQuantityID uuid.UUID     `gorm:"type:uuid;not null;index" json:"work_quantity_id"`
	WorkQuantity   *WorkQuantity `gorm:"foreignKey:WorkQuantityID" json:"work_quantity,omitempty"`

	Name         string      `gorm:"size:255;not null" json:"name"`
	ContractorID uuid.UUID   `gorm:"type:uuid;not null;index" json:"contractor_id"`
	Contractor   *Contractor `gorm:"foreignKey:ContractorID" json:"contractor,omitempty"`

	EstimatedQuantity decimal.Decimal `gorm:"type:decimal(15,4);not null;default:0" json:"estimated_quantity"`
	ExecutedQuantity  decimal.Decimal `gorm:"type:decimal(15,4);not null;default:0" json:"executed_quantity"`
	Unit              string          `gorm:"size:50;not null" json:"unit"`
	Progress          int             `gorm:"not null;default:0" json:"progress"` // 0-100, derived
	Notes             string          `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Activity) TableName() string {
	return "activities"
}

// DailyExecution records work performed on an activity on a given date.
// Append-only; the single mutation path for activity progress.
type DailyExecution struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProjectID  uuid.UUID `gorm:"type:uuid;not null;index" json:"project_id"`
	ActivityID uuid.UUID `gorm:"type:uuid;not null;index" json:"activity_id"`
	Activity   *Activity `gorm:"foreignKey:ActivityID" json:"activity,omitempty"`

	ExecutedQuantity decimal.Decimal `gorm:"type:decimal(15,4);not null" json:"executed_quantity"`
	Date             DateOnly        `gorm:"type:date;not null;index" json:"date"`
	Notes            string          `gorm:"type:text" json:"notes,omitempty"`

	// Optional delay/incident cause from the configured category set; the
	// "other" category requires a free-text description.
	IssueCategory    string `gorm:"size:100" json:"issue_category,omitempty"`
	IssueDescription string `gorm:"type:text" json:"issue_description,omitempty"`

	Photos pq.StringArray `gorm:"type:text[]" json:"photos,omitempty"`

	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`

	RecordedBy string    `gorm:"size:255" json:"recorded_by,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (DailyExecution) TableName() string {
	return "daily_executions"
}
