package app

import (
	"net/http"

	"github.com/finboard/finboard/internal/config"
	"github.com/finboard/finboard/internal/rest"
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Expenses
	r.HandleFunc("/api/expense", deps.ExpenseHandler.List).Methods("GET")
	r.HandleFunc("/api/expense", deps.ExpenseHandler.Create).Methods("POST")
	r.HandleFunc("/api/expense/{id}", deps.ExpenseHandler.Update).Methods("PUT")
	r.HandleFunc("/api/expense/{id}", deps.ExpenseHandler.Delete).Methods("DELETE")
	r.HandleFunc("/api/expense/{id}/paid", deps.ExpenseHandler.TogglePaid).Methods("PATCH")

	// Incomes
	r.HandleFunc("/api/income", deps.IncomeHandler.List).Methods("GET")
	r.HandleFunc("/api/income", deps.IncomeHandler.Create).Methods("POST")
	r.HandleFunc("/api/income/{id}", deps.IncomeHandler.Update).Methods("PUT")
	r.HandleFunc("/api/income/{id}", deps.IncomeHandler.Delete).Methods("DELETE")

	// Categories
	r.HandleFunc("/api/category", deps.CategoryHandler.List).Methods("GET")

	// Goals
	r.HandleFunc("/api/goal", deps.GoalHandler.List).Methods("GET")
	r.HandleFunc("/api/goal", deps.GoalHandler.Create).Methods("POST")
	r.HandleFunc("/api/goal/{id}", deps.GoalHandler.Update).Methods("PUT")
	r.HandleFunc("/api/goal/{id}", deps.GoalHandler.Delete).Methods("DELETE")

	// Dashboard
	r.HandleFunc("/api/dashboard", deps.DashboardHandler.GetSummary).Methods("GET")
	r.HandleFunc("/api/dashboard/comparison", deps.DashboardHandler.GetComparison).Methods("GET")

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		rest.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	// Frontend
	if cfg.Frontend.Enabled {
		r.PathPrefix("/").Handler(rest.NewFrontendHandler(cfg.Frontend.Dir, "index.html"))
	}
}
