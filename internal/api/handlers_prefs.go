package api

import (
	"errors"
	"net/http"

	"github.com/iammorganparry/working-memory/internal/models"
	"github.com/iammorganparry/working-memory/internal/prefs"
)

// PrefsHandler handles the theme preference endpoints.
type PrefsHandler struct {
	store *prefs.Store
}

// NewPrefsHandler creates a new preferences handler.
func NewPrefsHandler(store *prefs.Store) *PrefsHandler {
	return &PrefsHandler{store: store}
}

// GetTheme handles GET /preferences/theme.
func (h *PrefsHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.ThemePreference{Theme: h.store.Theme()})
}

// SetTheme handles PUT /preferences/theme.
func (h *PrefsHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	var req models.ThemePreference
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := h.store.SetTheme(req.Theme); err != nil {
		if errors.Is(err, prefs.ErrInvalidTheme) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, models.ThemePreference{Theme: req.Theme})
}
