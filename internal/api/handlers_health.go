package api

import (
	"net/http"

	"github.com/iammorganparry/working-memory/internal/models"
	"github.com/iammorganparry/working-memory/internal/tracker"
)

// HealthHandler reports liveness and basic state.
type HealthHandler struct {
	svc *tracker.Service
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(svc *tracker.Service) *HealthHandler {
	return &HealthHandler{svc: svc}
}

// Health handles GET /health.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.HealthResponse{
		Status:       "ok",
		Active:       h.svc.State().Active,
		SessionCount: h.svc.SessionCount(),
	})
}
