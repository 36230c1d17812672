package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaterialCatalog supplies the canonical name and unit for a material.
// Project-scoped materials copy these as opaque strings at creation time.
type MaterialCatalog struct {
	ID   uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Code string    `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Name string    `gorm:"size:255;not null" json:"name"`
	Unit string    `gorm:"size:50;not null" json:"unit"`

	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (MaterialCatalog) TableName() string {
	return "material_catalog"
}

// WorkQuantityCatalog supplies the canonical description and unit for a
// scope-of-work line item.
type WorkQuantityCatalog struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Code        string    `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Description string    `gorm:"size:500;not null" json:"description"`
	Unit        string    `gorm:"size:50;not null" json:"unit"`

	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (WorkQuantityCatalog) TableName() string {
	return "work_quantity_catalog"
}
