package app

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Weeks
	r.HandleFunc("/api/weeks", deps.WeekHandler.ListWeeks).Methods("GET")
	r.HandleFunc("/api/weeks", deps.WeekHandler.CreateWeek).Methods("POST")
	r.HandleFunc("/api/weeks/selected", deps.WeekHandler.GetSelectedWeek).Methods("GET")
	r.HandleFunc("/api/weeks/{weekId}", deps.WeekHandler.GetWeek).Methods("GET")
	r.HandleFunc("/api/weeks/{weekId}", deps.WeekHandler.UpdateWeek).Methods("PUT")
	r.HandleFunc("/api/weeks/{weekId}", deps.WeekHandler.DeleteWeek).Methods("DELETE")
	r.HandleFunc("/api/weeks/{weekId}/selection", deps.WeekHandler.SelectWeek).Methods("PUT")

	// Week cells
	r.HandleFunc("/api/weeks/{weekId}/habits/{itemId}/days/{day}", deps.WeekHandler.ToggleHabitDay).Methods("PATCH")
	r.HandleFunc("/api/weeks/{weekId}/metrics/{itemId}/days/{day}", deps.WeekHandler.SetMetricDay).Methods("PUT")

	// Stats
	r.HandleFunc("/api/weeks/{weekId}/stats", deps.StatsHandler.GetWeekStats).Methods("GET")

	// Backup
	r.HandleFunc("/api/export", deps.WeekHandler.ExportWeeks).Methods("GET")
	r.HandleFunc("/api/import", deps.WeekHandler.ImportWeeks).Methods("POST")

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")
}
