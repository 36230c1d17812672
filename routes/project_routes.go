package routes

import (
	"github.com/gorilla/mux"

	"github.com/nvillegase/solenium-construct-flow-sub000/handlers"
	"github.com/nvillegase/solenium-construct-flow-sub000/middleware"
	"github.com/nvillegase/solenium-construct-flow-sub000/models"
)

// RegisterProjectRoutes wires project, scope and projection endpoints.
// Design owns project setup and scope lines; supervisors own schedule
// commitments, projections and the supervision board.
func RegisterProjectRoutes(api *mux.Router) {
	design := []string{models.RoleDesign}
	supervisor := []string{models.RoleSupervisor}
	planner := []string{models.RoleDesign, models.RoleSupervisor}

	api.HandleFunc("/projects", handlers.GetProjects).Methods("GET")
	api.HandleFunc("/projects", middleware.RequireRoleFunc(design, handlers.CreateProject)).Methods("POST")
	api.HandleFunc("/projects/{id}", handlers.GetProject).Methods("GET")
	api.HandleFunc("/projects/{id}", middleware.RequireRoleFunc(design, handlers.UpdateProject)).Methods("PUT")
	api.HandleFunc("/projects/{id}/status", middleware.RequireRoleFunc(supervisor, handlers.UpdateProjectStatus)).Methods("PUT")
	api.HandleFunc("/projects/{id}/progress", handlers.GetProjectProgress).Methods("GET")

	api.HandleFunc("/projects/{id}/work-quantities", handlers.GetProjectWorkQuantities).Methods("GET")
	api.HandleFunc("/work-quantities", middleware.RequireRoleFunc(design, handlers.CreateWorkQuantity)).Methods("POST")
	api.HandleFunc("/work-quantities/{id}", middleware.RequireRoleFunc(planner, handlers.UpdateWorkQuantity)).Methods("PUT")
	api.HandleFunc("/work-quantities/{id}", middleware.RequireRoleFunc(design, handlers.DeleteWorkQuantity)).Methods("DELETE")

	api.HandleFunc("/projects/{id}/projections", handlers.GetProjectProjections).Methods("GET")
	api.HandleFunc("/projections", middleware.RequirePermission("projection:create", handlers.SaveProjection)).Methods("POST")
	api.HandleFunc("/projection-entries/{id}", middleware.RequirePermission("projection:delete", handlers.DeleteProjectionEntry)).Methods("DELETE")

	api.HandleFunc("/supervision/board", middleware.RequirePermission("supervision:read", handlers.GetSupervisionBoard)).Methods("GET")
	api.HandleFunc("/supervision/board/export", middleware.RequirePermission("supervision:export", handlers.ExportSupervisionBoard)).Methods("GET")
}
