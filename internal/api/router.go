package api

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iammorganparry/working-memory/internal/prefs"
	"github.com/iammorganparry/working-memory/internal/tracker"
)

// NewRouter creates the Chi router with all routes and middleware.
func NewRouter(
	svc *tracker.Service,
	prefStore *prefs.Store,
	loc *time.Location,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(CORS)
	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recovery(logger))

	healthH := NewHealthHandler(svc)
	timerH := NewTimerHandler(svc)
	sessionH := NewSessionHandler(svc)
	calendarH := NewCalendarHandler(svc, loc)
	prefsH := NewPrefsHandler(prefStore)

	r.Get("/health", healthH.Health)

	r.Route("/timer", func(r chi.Router) {
		r.Get("/", timerH.State)
		r.Post("/start", timerH.Start)
		r.Post("/stop", timerH.Stop)
		r.Post("/cancel", timerH.Cancel)
	})

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", sessionH.List)
		r.Get("/{id}", sessionH.Get)
		r.Patch("/{id}", sessionH.Update)
		r.Delete("/{id}", sessionH.Delete)
	})

	r.Get("/calendar", calendarH.Month)

	r.Route("/preferences", func(r chi.Router) {
		r.Get("/theme", prefsH.GetTheme)
		r.Put("/theme", prefsH.SetTheme)
	})

	return r
}
