// Package tracker orchestrates the session lifecycle: timer transitions,
// the summarization call on stop, and the store commit. Stopping is a
// two-phase commit: the interval is fixed before any network I/O, and the
// store commit happens regardless of the summarization outcome, so the
// recorded time is never lost to a backend failure.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/iammorganparry/working-memory/internal/models"
	"github.com/iammorganparry/working-memory/internal/session"
	"github.com/iammorganparry/working-memory/internal/summary"
	"github.com/iammorganparry/working-memory/internal/timer"
)

// ErrFinalizing is returned when start or stop is attempted while a prior
// stop is still waiting on the summarization backend.
var ErrFinalizing = errors.New("previous session is still finalizing")

// defaultTitle matches the reference UI's label for an untitled session.
const defaultTitle = "Focused session"

// Gateway is the summarization boundary the orchestrator calls on stop.
type Gateway interface {
	EndWorkflow(ctx context.Context, req summary.EndWorkflowRequest) (*summary.EndWorkflowResponse, error)
}

// Persister saves and loads session snapshots to durable storage. The
// in-memory store remains the source of truth while the process runs.
type Persister interface {
	Load() ([]*models.Session, error)
	Save(sessions []*models.Session) error
}

// Service composes the timer controller, session store and backend gateway.
type Service struct {
	mu          sync.Mutex
	timer       *timer.Controller
	store       *session.Store
	gateway     Gateway
	persister   Persister
	userID      string
	projectPath string
	summariesOn bool
	finalizing  bool
	logger      *slog.Logger
}

// New creates the lifecycle service. persister may be nil for a purely
// in-memory tracker; gateway is only consulted when summariesOn is true.
func New(
	tc *timer.Controller,
	store *session.Store,
	gateway Gateway,
	persister Persister,
	userID string,
	projectPath string,
	summariesOn bool,
	logger *slog.Logger,
) *Service {
	return &Service{
		timer:       tc,
		store:       store,
		gateway:     gateway,
		persister:   persister,
		userID:      userID,
		projectPath: projectPath,
		summariesOn: summariesOn,
		logger:      logger,
	}
}

// LoadPersisted replaces the store contents with the persisted snapshot.
// Called once at startup, before the server accepts requests.
func (s *Service) LoadPersisted() error {
	if s.persister == nil {
		return nil
	}
	sessions, err := s.persister.Load()
	if err != nil {
		return fmt.Errorf("load sessions: %w", err)
	}
	s.store.Replace(sessions)
	return nil
}

// Start begins a new session. Rejected while running or finalizing.
func (s *Service) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finalizing {
		return ErrFinalizing
	}
	return s.timer.Start()
}

// Stop fixes the interval, attempts summarization, and always commits the
// session. The committed session is returned even when summarization fails;
// in that case the error wraps summary.ErrUnavailable and the session's notes
// are empty. Rejected while idle or finalizing.
func (s *Service) Stop(ctx context.Context, taskDescription string) (*models.Session, error) {
	s.mu.Lock()
	if s.finalizing {
		s.mu.Unlock()
		return nil, ErrFinalizing
	}
	interval, err := s.timer.Stop()
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	// Interval is fixed from here on; backend latency cannot inflate it.
	s.finalizing = true
	s.mu.Unlock()

	task := strings.TrimSpace(taskDescription)

	var notes, title string
	var summaryErr error
	if s.summariesOn {
		resp, err := s.gateway.EndWorkflow(ctx, summary.EndWorkflowRequest{
			UserID:          s.userID,
			ProjectPath:     s.projectPath,
			TaskDescription: task,
		})
		if err != nil {
			summaryErr = err
			s.logger.Warn("summarization failed, committing session with empty notes", "error", err)
		} else {
			notes = resp.SummaryMarkdown
			title = resp.SummaryTitle
		}
	}

	sess := &models.Session{
		ID:          uuid.New().String(),
		Title:       sessionTitle(task, title),
		Description: "",
		Notes:       notes,
		StartedAt:   interval.StartedAt,
		EndedAt:     interval.EndedAt,
		Tags:        []string{},
		Highlights:  []string{},
	}

	s.mu.Lock()
	insertErr := s.store.Insert(sess)
	s.finalizing = false
	s.mu.Unlock()

	if insertErr != nil {
		// Generated ids should never collide; treat as a programmer error.
		s.logger.Error("session commit failed", "id", sess.ID, "error", insertErr)
		return nil, fmt.Errorf("commit session: %w", insertErr)
	}
	s.persist()

	s.logger.Info("session committed",
		"id", sess.ID,
		"durationMs", sess.DurationMs(),
		"summarized", notes != "",
	)
	return sess, summaryErr
}

// Cancel abandons the running session: no store mutation, no backend call.
// While finalizing the timer is already idle, so cancel is rejected there too.
func (s *Service) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer.Cancel()
}

// Delete removes a stored session.
func (s *Service) Delete(id string) error {
	if err := s.store.Delete(id); err != nil {
		return err
	}
	s.persist()
	return nil
}

// UpdateSession merges a metadata patch into a stored session.
func (s *Service) UpdateSession(id string, patch models.SessionPatch) (*models.Session, error) {
	sess, err := s.store.Update(id, patch)
	if err != nil {
		return nil, err
	}
	s.persist()
	return sess, nil
}

// Get returns one stored session.
func (s *Service) Get(id string) (*models.Session, error) {
	return s.store.Get(id)
}

// List returns all stored sessions, most recent first.
func (s *Service) List() []*models.Session {
	return s.store.List()
}

// SessionCount returns the number of stored sessions.
func (s *Service) SessionCount() int {
	return s.store.Len()
}

// State samples the timer for display. Sampling is side-effect free and safe
// at any cadence; once idle it reports zero elapsed.
func (s *Service) State() models.TimerState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.timer.Running() {
		return models.TimerState{Active: false, ElapsedMs: 0}
	}
	elapsed, err := s.timer.Sample()
	if err != nil {
		return models.TimerState{Active: false, ElapsedMs: 0}
	}
	started := s.timer.StartedAtMs()
	return models.TimerState{Active: true, StartedAt: &started, ElapsedMs: elapsed}
}

func (s *Service) persist() {
	if s.persister == nil {
		return
	}
	if err := s.persister.Save(s.store.List()); err != nil {
		s.logger.Warn("failed to persist session snapshot", "error", err)
	}
}

func sessionTitle(task, summaryTitle string) string {
	if task != "" {
		return task
	}
	if t := strings.TrimSpace(summaryTitle); t != "" {
		return t
	}
	return defaultTitle
}
