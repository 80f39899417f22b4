package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/iammorganparry/working-memory/internal/models"
	"github.com/iammorganparry/working-memory/internal/summary"
	"github.com/iammorganparry/working-memory/internal/timer"
	"github.com/iammorganparry/working-memory/internal/tracker"
)

// TimerHandler handles timer lifecycle HTTP requests.
type TimerHandler struct {
	svc *tracker.Service
}

// NewTimerHandler creates a new timer handler.
func NewTimerHandler(svc *tracker.Service) *TimerHandler {
	return &TimerHandler{svc: svc}
}

// State handles GET /timer.
func (h *TimerHandler) State(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.State())
}

// Start handles POST /timer/start.
func (h *TimerHandler) Start(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Start(); err != nil {
		writeTransitionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.svc.State())
}

// Stop handles POST /timer/stop. The session is committed even when the
// summarization backend fails; that case is a 200 with summaryAvailable=false.
func (h *TimerHandler) Stop(w http.ResponseWriter, r *http.Request) {
	var req models.StopRequest
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	sess, err := h.svc.Stop(r.Context(), req.TaskDescription)
	if err != nil && !errors.Is(err, summary.ErrUnavailable) {
		writeTransitionError(w, err)
		return
	}

	resp := models.StopResponse{Session: sess, SummaryAvailable: err == nil}
	if err != nil {
		resp.Message = "summary unavailable, session saved without notes"
	}
	writeJSON(w, http.StatusOK, resp)
}

// Cancel handles POST /timer/cancel.
func (h *TimerHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Cancel(); err != nil {
		writeTransitionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.svc.State())
}

func writeTransitionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, timer.ErrInvalidTransition):
		writeError(w, http.StatusConflict, "invalid transition: "+err.Error())
	case errors.Is(err, tracker.ErrFinalizing):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
