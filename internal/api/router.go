package api

import (
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Dawn-Fighter/Mandi-Counter/internal/api/recovery"
	"github.com/Dawn-Fighter/Mandi-Counter/internal/events"
	"github.com/Dawn-Fighter/Mandi-Counter/internal/health"
	"github.com/Dawn-Fighter/Mandi-Counter/internal/services"
)

// NewRouter wires all API routes.
func NewRouter(svc *services.EntryService, bus *events.Bus, checker *health.ServiceHealthChecker, log zerolog.Logger) *mux.Router {
	router := mux.NewRouter()
	router.Use(recovery.Middleware)

	entryHandler := NewEntryHandler(svc)
	statsHandler := NewStatsHandler(svc)
	eventsHandler := NewEventsHandler(bus, log)
	healthHandler := NewHealthHandler(checker)

	// Health
	router.HandleFunc("/api/health", healthHandler.CheckHealth).Methods("GET")

	// Entries
	router.HandleFunc("/api/owners/{ownerId}/entries", entryHandler.CreateEntry).Methods("POST")
	router.HandleFunc("/api/owners/{ownerId}/entries", entryHandler.ListEntries).Methods("GET")
	router.HandleFunc("/api/owners/{ownerId}/entries/{entryId}", entryHandler.GetEntry).Methods("GET")
	router.HandleFunc("/api/owners/{ownerId}/entries/{entryId}", entryHandler.UpdateEntry).Methods("PATCH")
	router.HandleFunc("/api/owners/{ownerId}/entries/{entryId}", entryHandler.DeleteEntry).Methods("DELETE")

	// Stats
	router.HandleFunc("/api/owners/{ownerId}/stats", statsHandler.GetStats).Methods("GET")

	// Change feed
	router.HandleFunc("/api/entries/events", eventsHandler.Stream).Methods("GET")

	return router
}
