package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Dawn-Fighter/Mandi-Counter/internal/api/respond"
	"github.com/Dawn-Fighter/Mandi-Counter/internal/dates"
	"github.com/Dawn-Fighter/Mandi-Counter/internal/model"
	"github.com/Dawn-Fighter/Mandi-Counter/internal/services"
)

type StatsHandler struct {
	svc *services.EntryService
}

func NewStatsHandler(svc *services.EntryService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

// GetStats GET /api/owners/{ownerId}/stats?period=weekly|monthly|yearly
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	period := dates.Period(r.URL.Query().Get("period"))
	if period == "" {
		period = dates.Monthly
	}

	summary, byLocation, err := h.svc.Stats(r.Context(), vars["ownerId"], period)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if byLocation == nil {
		byLocation = []model.LocationStats{}
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"period":    period,
		"summary":   summary,
		"locations": byLocation,
	})
}
