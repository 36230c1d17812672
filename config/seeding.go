package config

import (
	"log"

	"github.com/nvillegase/solenium-construct-flow-sub000/models"
)

// SeedCatalogs loads the baseline material and work-quantity catalogs.
// Skips silently when data already exists.
func SeedCatalogs() {
	var count int64
	DB.Model(&models.MaterialCatalog{}).Count(&count)
	if count == 0 {
		materials := []models.MaterialCatalog{
			{Code: "CBL-35", Name: "Cable solar 35mm2", Unit: "m"},
			{Code: "PNL-550", Name: "Panel fotovoltaico 550W", Unit: "und"},
			{Code: "EST-GAL", Name: "Estructura galvanizada", Unit: "und"},
			{Code: "CON-MK2", Name: "Conector MC4", Unit: "und"},
			{Code: "TUB-EMT", Name: "Tuberia EMT 3/4", Unit: "m"},
			{Code: "CEM-50", Name: "Cemento gris 50kg", Unit: "bulto"},
		}
		if err := DB.Create(&materials).Error; err != nil {
			log.Printf("Warning: material catalog seeding failed: %v", err)
		} else {
			log.Printf("Seeded %d material catalog entries", len(materials))
		}
	}

	DB.Model(&models.WorkQuantityCatalog{}).Count(&count)
	if count == 0 {
		works := []models.WorkQuantityCatalog{
			{Code: "EXC-ZNJ", Description: "Excavacion de zanja", Unit: "m"},
			{Code: "HNC-PIL", Description: "Hincado de pilotes", Unit: "und"},
			{Code: "MNT-EST", Description: "Montaje de estructura", Unit: "und"},
			{Code: "MNT-PNL", Description: "Montaje de paneles", Unit: "und"},
			{Code: "TND-CBL", Description: "Tendido de cable", Unit: "m"},
			{Code: "CNX-STR", Description: "Conexionado de strings", Unit: "und"},
		}
		if err := DB.Create(&works).Error; err != nil {
			log.Printf("Warning: work quantity catalog seeding failed: %v", err)
		} else {
			log.Printf("Seeded %d work quantity catalog entries", len(works))
		}
	}
}
