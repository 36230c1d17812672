package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"github.com/nvillegase/solenium-construct-flow-sub000/models"
)

func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20250301_create_core_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.User{}, &models.Project{}, &models.Contractor{},
					&models.MaterialCatalog{}, &models.WorkQuantityCatalog{},
					&models.WorkQuantity{}, &models.Material{})
			},
		},
		{
			ID: "20250301_create_event_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.MaterialReception{}, &models.MaterialDelivery{},
					&models.Activity{}, &models.DailyExecution{})
			},
		},
		{
			ID: "20250315_create_supply_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.PurchaseOrder{}, &models.PurchaseOrderItem{})
			},
		},
		{
			ID: "20250402_create_projection_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.DailyProjection{}, &models.ProjectionActivity{})
			},
		},
		{
			ID: "20250522_add_projected_progress",
			Migrate: func(tx *gorm.DB) error {
				return tx.Exec("ALTER TABLE projects ADD COLUMN IF NOT EXISTS projected_progress decimal(5,2) DEFAULT 0").Error
			},
		},
	})

	return m.Migrate()
}
