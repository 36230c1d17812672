package routes

import (
	"github.com/gorilla/mux"

	"github.com/nvillegase/solenium-construct-flow-sub000/handlers"
	"github.com/nvillegase/solenium-construct-flow-sub000/middleware"
	"github.com/nvillegase/solenium-construct-flow-sub000/models"
)

// RegisterSupplyRoutes wires purchase-order endpoints for the supply role.
func RegisterSupplyRoutes(api *mux.Router) {
	supply := []string{models.RoleSupply}

	api.HandleFunc("/orders", middleware.RequireRoleFunc(supply, handlers.CreateOrder)).Methods("POST")
	api.HandleFunc("/orders/{id}", handlers.GetOrder).Methods("GET")
	api.HandleFunc("/orders/{id}", middleware.RequireRoleFunc(supply, handlers.CancelOrder)).Methods("DELETE")
	api.HandleFunc("/projects/{id}/orders", handlers.GetProjectOrders).Methods("GET")
	api.HandleFunc("/projects/{id}/order-deviations", handlers.GetOrderDeviations).Methods("GET")
}
