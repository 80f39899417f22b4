package models

// Session is one completed timed work interval with metadata and an optional
// backend-generated summary.
type Session struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Notes       string   `json:"notes"`
	StartedAt   int64    `json:"startedAt"`
	EndedAt     int64    `json:"endedAt"`
	Tags        []string `json:"tags"`
	Highlights  []string `json:"highlights"`
}

// DurationMs returns the recorded interval length in milliseconds.
func (s *Session) DurationMs() int64 {
	return s.EndedAt - s.StartedAt
}

// SessionPatch is the payload for PATCH /sessions/{id}. Identity and interval
// fields are not patchable; notes are written only by the summarization flow.
type SessionPatch struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
	Highlights  *[]string `json:"highlights,omitempty"`
}

// TimerState is returned from GET /timer.
type TimerState struct {
	Active    bool   `json:"active"`
	StartedAt *int64 `json:"startedAt,omitempty"`
	ElapsedMs int64  `json:"elapsedMs"`
}

// StopRequest is the payload for POST /timer/stop.
type StopRequest struct {
	TaskDescription string `json:"taskDescription"`
}

// StopResponse is returned from POST /timer/stop. SummaryAvailable is false
// when the session was committed with empty notes because the summarization
// backend was unreachable or disabled.
type StopResponse struct {
	Session          *Session `json:"session"`
	SummaryAvailable bool     `json:"summaryAvailable"`
	Message          string   `json:"message,omitempty"`
}

// CalendarMonth is returned from GET /calendar.
type CalendarMonth struct {
	Year         int                   `json:"year"`
	Month        int                   `json:"month"`
	Days         int                   `json:"days"`
	StartWeekday int                   `json:"startWeekday"`
	Buckets      map[string][]*Session `json:"buckets"`
}

// ThemePreference is the body for GET/PUT /preferences/theme.
type ThemePreference struct {
	Theme string `json:"theme"`
}

// HealthResponse is returned from GET /health.
type HealthResponse struct {
	Status       string `json:"status"`
	Active       bool   `json:"active"`
	SessionCount int    `json:"sessionCount"`
}
