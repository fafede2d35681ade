package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Dawn-Fighter/Mandi-Counter/internal/api/respond"
	"github.com/Dawn-Fighter/Mandi-Counter/internal/model"
	"github.com/Dawn-Fighter/Mandi-Counter/internal/services"
)

type EntryHandler struct {
	svc *services.EntryService
}

func NewEntryHandler(svc *services.EntryService) *EntryHandler {
	return &EntryHandler{svc: svc}
}

// CreateEntry POST /api/owners/{ownerId}/entries
func (h *EntryHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var ins model.EntryInsert
	if err := json.NewDecoder(r.Body).Decode(&ins); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	// The path owner wins over whatever the body says.
	ins.OwnerID = vars["ownerId"]

	out, err := h.svc.CreateEntry(r.Context(), ins)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}

// ListEntries GET /api/owners/{ownerId}/entries
func (h *EntryHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	out, err := h.svc.ListEntries(r.Context(), vars["ownerId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if out == nil {
		out = []*model.Entry{}
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"entries": out, "count": len(out)})
}

// GetEntry GET /api/owners/{ownerId}/entries/{entryId}
func (h *EntryHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	out, err := h.svc.GetEntry(r.Context(), vars["ownerId"], vars["entryId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// UpdateEntry PATCH /api/owners/{ownerId}/entries/{entryId}
func (h *EntryHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var patch model.EntryPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}

	out, err := h.svc.UpdateEntry(r.Context(), vars["ownerId"], vars["entryId"], patch)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// DeleteEntry DELETE /api/owners/{ownerId}/entries/{entryId}
func (h *EntryHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.svc.DeleteEntry(r.Context(), vars["ownerId"], vars["entryId"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeServiceError maps service sentinel errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		respond.WriteNotFound(w, "entry not found")
	case errors.Is(err, model.ErrValidation):
		respond.WriteBadRequest(w, err.Error())
	default:
		respond.WriteInternalError(w, err.Error())
	}
}
