package routes

import (
	"github.com/gorilla/mux"

	"github.com/nvillegase/solenium-construct-flow-sub000/handlers"
	"github.com/nvillegase/solenium-construct-flow-sub000/middleware"
	"github.com/nvillegase/solenium-construct-flow-sub000/models"
)

// RegisterExecutionRoutes wires activity and daily-execution endpoints.
// Daily reports come from field crews; activity setup from supervisors.
func RegisterExecutionRoutes(api *mux.Router) {
	supervisor := []string{models.RoleSupervisor}
	field := []string{models.RoleField}

	api.HandleFunc("/activities", middleware.RequireRoleFunc(supervisor, handlers.CreateActivity)).Methods("POST")
	api.HandleFunc("/activities/{id}", handlers.GetActivity).Methods("GET")
	api.HandleFunc("/activities/{id}/progress", handlers.GetActivityProgress).Methods("GET")
	api.HandleFunc("/activities/{id}/executions", handlers.GetActivityExecutions).Methods("GET")
	api.HandleFunc("/projects/{id}/activities", handlers.GetProjectActivities).Methods("GET")

	api.HandleFunc("/executions", middleware.RequireRoleFunc(field, handlers.CreateExecution)).Methods("POST")
}
