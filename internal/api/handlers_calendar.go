package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/iammorganparry/working-memory/internal/calendar"
	"github.com/iammorganparry/working-memory/internal/models"
	"github.com/iammorganparry/working-memory/internal/tracker"
)

// CalendarHandler serves the derived calendar view. The index is recomputed
// from the store on every read; it is never stored.
type CalendarHandler struct {
	svc *tracker.Service
	loc *time.Location
}

// NewCalendarHandler creates a calendar handler bucketing by days in loc.
func NewCalendarHandler(svc *tracker.Service, loc *time.Location) *CalendarHandler {
	return &CalendarHandler{svc: svc, loc: loc}
}

// Month handles GET /calendar?offset=N. The base month is the month of the
// most recent session, else the current month; offset moves the cursor in
// whole months.
func (h *CalendarHandler) Month(w http.ResponseWriter, r *http.Request) {
	offset := 0
	if v := r.URL.Query().Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "offset must be an integer")
			return
		}
		offset = n
	}

	sessions := h.svc.List()
	base := calendar.DefaultBase(sessions, time.Now(), h.loc)
	year, month := calendar.MonthCursor(base, offset)
	grid := calendar.MonthOf(year, month, h.loc)

	prefix := fmt.Sprintf("%04d-%02d-", year, int(month))
	buckets := make(map[string][]*models.Session)
	for key, daySessions := range calendar.IndexByDay(sessions, h.loc) {
		if strings.HasPrefix(key, prefix) {
			buckets[key] = daySessions
		}
	}

	writeJSON(w, http.StatusOK, models.CalendarMonth{
		Year:         grid.Year,
		Month:        int(grid.Month),
		Days:         grid.Days,
		StartWeekday: int(grid.StartWeekday),
		Buckets:      buckets,
	})
}
