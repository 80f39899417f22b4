package agent

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/iammorganparry/working-memory/internal/api"
)

// WorkflowEndRequest is the payload for POST /api/v1/workflow/end.
type WorkflowEndRequest struct {
	UserID          string `json:"user_id"`
	TaskDescription string `json:"task_description"`
	ProjectPath     string `json:"project_path"`
}

// WorkflowEndResponse is returned from POST /api/v1/workflow/end.
type WorkflowEndResponse struct {
	SummaryTitle    string `json:"summary_title"`
	SummaryMarkdown string `json:"summary_markdown"`
}

// HeartbeatRequest is the payload for POST /api/v1/heartbeat.
type HeartbeatRequest struct {
	UserID        string `json:"user_id"`
	AppName       string `json:"app_name"`
	WindowTitle   string `json:"window_title"`
	WorkspacePath string `json:"workspace_path"`
}

// SummaryGenerator produces a markdown summary from a task description and a
// git status report.
type SummaryGenerator interface {
	Summarize(ctx context.Context, taskDescription, gitReport string) (string, error)
}

// ReportFunc collects the git status report for a workspace path.
type ReportFunc func(ctx context.Context, workspacePath string) (string, error)

// Handler serves the agent's HTTP surface.
type Handler struct {
	summarizer SummaryGenerator
	report     ReportFunc
	logger     *slog.Logger
}

// NewHandler creates the agent handler.
func NewHandler(summarizer SummaryGenerator, report ReportFunc, logger *slog.Logger) *Handler {
	return &Handler{summarizer: summarizer, report: report, logger: logger}
}

// NewRouter wires the agent routes with the shared middleware stack.
func NewRouter(h *Handler, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(api.CORS)
	r.Use(api.RequestID)
	r.Use(api.Logger(logger))
	r.Use(api.Recovery(logger))

	r.Get("/", h.Root)
	r.Post("/api/v1/heartbeat", h.Heartbeat)
	r.Post("/api/v1/workflow/end", h.WorkflowEnd)

	return r
}

// Root handles GET /.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]string{"service": "context-agent"})
}

// Heartbeat handles POST /api/v1/heartbeat. Log-only.
func (h *Handler) Heartbeat(w http.ResponseWriter, r *http.Request) {
	var req HeartbeatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	h.logger.Info("heartbeat",
		"user", req.UserID,
		"app", req.AppName,
		"window", req.WindowTitle,
	)
	respond(w, http.StatusOK, map[string]string{"status": "received"})
}

// WorkflowEnd handles POST /api/v1/workflow/end: collect the git report,
// summarize it, and return the markdown. Any failure is a 502 so the tracker
// can fall back to empty notes.
func (h *Handler) WorkflowEnd(w http.ResponseWriter, r *http.Request) {
	var req WorkflowEndRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.UserID == "" || req.ProjectPath == "" {
		respond(w, http.StatusBadRequest, map[string]string{"error": "user_id and project_path are required"})
		return
	}

	task := strings.TrimSpace(req.TaskDescription)
	h.logger.Info("workflow end", "user", req.UserID, "project", req.ProjectPath, "hasTask", task != "")

	report, err := h.report(r.Context(), req.ProjectPath)
	if err != nil {
		h.logger.Error("git report failed", "project", req.ProjectPath, "error", err)
		respond(w, http.StatusBadGateway, map[string]string{"error": "could not read workspace state"})
		return
	}

	summary, err := h.summarizer.Summarize(r.Context(), task, report)
	if err != nil {
		h.logger.Error("summarization failed", "error", err)
		respond(w, http.StatusBadGateway, map[string]string{"error": "summary generation failed"})
		return
	}

	title := task
	if title == "" {
		title = "Automated Context Summary"
	}
	respond(w, http.StatusOK, WorkflowEndResponse{
		SummaryTitle:    title,
		SummaryMarkdown: summary,
	})
}

func respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
