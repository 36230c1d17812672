package routes

import (
	"github.com/gorilla/mux"

	"github.com/nvillegase/solenium-construct-flow-sub000/handlers"
	"github.com/nvillegase/solenium-construct-flow-sub000/middleware"
	"github.com/nvillegase/solenium-construct-flow-sub000/models"
)

// RegisterInventoryRoutes wires material and stock-movement endpoints.
// Receptions and deliveries need the warehouse role; material setup is a
// design concern.
func RegisterInventoryRoutes(api *mux.Router) {
	design := []string{models.RoleDesign}
	warehouse := []string{models.RoleWarehouse}

	api.HandleFunc("/materials", middleware.RequireRoleFunc(design, handlers.CreateMaterial)).Methods("POST")
	api.HandleFunc("/materials/{id}", handlers.GetMaterial).Methods("GET")
	api.HandleFunc("/materials/{id}", middleware.RequireRoleFunc(design, handlers.UpdateMaterialEstimate)).Methods("PUT")
	api.HandleFunc("/materials/{id}/availability", handlers.GetMaterialAvailability).Methods("GET")
	api.HandleFunc("/materials/{id}/history", handlers.GetMaterialHistory).Methods("GET")
	api.HandleFunc("/materials/{id}/export", handlers.ExportMaterialLedger).Methods("GET")
	api.HandleFunc("/projects/{id}/materials", handlers.GetProjectMaterials).Methods("GET")

	api.HandleFunc("/receptions", middleware.RequireRoleFunc(warehouse, handlers.CreateReception)).Methods("POST")
	api.HandleFunc("/deliveries", middleware.RequireRoleFunc(warehouse, handlers.CreateDelivery)).Methods("POST")
}
