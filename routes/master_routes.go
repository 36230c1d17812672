package routes

import (
	"github.com/gorilla/mux"

	"github.com/nvillegase/solenium-construct-flow-sub000/handlers"
	"github.com/nvillegase/solenium-construct-flow-sub000/middleware"
	"github.com/nvillegase/solenium-construct-flow-sub000/models"
)

// RegisterMasterRoutes wires catalog and contractor maintenance. Reads are
// open to any authenticated user; writes are admin-only.
func RegisterMasterRoutes(api *mux.Router) {
	admin := []string{models.RoleAdmin}

	api.HandleFunc("/contractors", handlers.GetContractors).Methods("GET")
	api.HandleFunc("/contractors", middleware.RequireRoleFunc(admin, handlers.CreateContractor)).Methods("POST")
	api.HandleFunc("/contractors/{id}", middleware.RequireRoleFunc(admin, handlers.UpdateContractor)).Methods("PUT")

	api.HandleFunc("/catalog/materials", handlers.GetMaterialCatalog).Methods("GET")
	api.HandleFunc("/catalog/materials", middleware.RequireRoleFunc(admin, handlers.CreateMaterialCatalogEntry)).Methods("POST")
	api.HandleFunc("/catalog/work-quantities", handlers.GetWorkQuantityCatalog).Methods("GET")
	api.HandleFunc("/catalog/work-quantities", middleware.RequireRoleFunc(admin, handlers.CreateWorkQuantityCatalogEntry)).Methods("POST")
}
