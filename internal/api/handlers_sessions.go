package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iammorganparry/working-memory/internal/models"
	"github.com/iammorganparry/working-memory/internal/session"
	"github.com/iammorganparry/working-memory/internal/tracker"
)

// SessionHandler handles session CRUD HTTP requests.
type SessionHandler struct {
	svc *tracker.Service
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(svc *tracker.Service) *SessionHandler {
	return &SessionHandler{svc: svc}
}

// List handles GET /sessions. Sessions are most recent first.
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	sessions := h.svc.List()
	if sessions == nil {
		sessions = []*models.Session{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"sessions": sessions,
	})
}

// Get handles GET /sessions/{id}.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	sess, err := h.svc.Get(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// Update handles PATCH /sessions/{id}.
func (h *SessionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch models.SessionPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	sess, err := h.svc.UpdateSession(id, patch)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// Delete handles DELETE /sessions/{id}.
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.svc.Delete(id); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, session.ErrNotFound) {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}
