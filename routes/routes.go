package routes

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nvillegase/solenium-construct-flow-sub000/handlers"
	"github.com/nvillegase/solenium-construct-flow-sub000/middleware"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	// Public routes (no authentication)
	r.HandleFunc("/register", handlers.Register).Methods("POST")
	r.HandleFunc("/login", handlers.Login).Methods("POST")
	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir("./uploads"))),
	)
	r.HandleFunc("/health", handleHealth).Methods("GET")

	// Protected API routes
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.JWTMiddleware)

	api.HandleFunc("/me", handlers.GetCurrentUser).Methods("GET")
	api.HandleFunc("/issue-categories", handlers.GetIssueCategories).Methods("GET")
	api.HandleFunc("/photos", handlers.UploadPhoto).Methods("POST")

	RegisterProjectRoutes(api)
	RegisterInventoryRoutes(api)
	RegisterExecutionRoutes(api)
	RegisterSupplyRoutes(api)
	RegisterMasterRoutes(api)

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
