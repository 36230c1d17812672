package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Application roles. The reconciliation core never checks roles itself;
// handlers gate role-sensitive operations: receptions/deliveries need the
// warehouse role, daily executions the field role, expected-date edits the
// supervisor role.
const (
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor"
	RoleDesign     = "design"
	RoleSupply     = "supply"
	RoleWarehouse  = "warehouse"
	RoleField      = "field"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone        string    `gorm:"size:15;uniqueIndex" json:"phone,omitempty"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         string    `gorm:"size:50;not null;default:'field'" json:"role"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return
}
