package session

import (
	"errors"
	"sort"
	"sync"

	"github.com/iammorganparry/working-memory/internal/models"
)

var (
	// ErrNotFound is returned when no session exists for the given id.
	ErrNotFound = errors.New("session not found")
	// ErrDuplicateID is returned when inserting an id that is already present.
	// ID generation should make this unreachable, but it is guarded anyway.
	ErrDuplicateID = errors.New("duplicate session id")
)

// Store holds all sessions in process memory, keyed by id. Mutations are
// serialized by a mutex; the reverse-chronological List guarantee depends on it.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*models.Session)}
}

// Insert adds a new session record.
func (s *Store) Insert(sess *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sess.ID]; ok {
		return ErrDuplicateID
	}
	s.sessions[sess.ID] = sess
	return nil
}

// Get returns the session with the given id.
func (s *Store) Get(id string) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return sess, nil
}

// Update merges the patch into the existing record. Id, startedAt and endedAt
// are not representable in the patch and therefore cannot change.
func (s *Store) Update(id string, patch models.SessionPatch) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if patch.Title != nil {
		sess.Title = *patch.Title
	}
	if patch.Description != nil {
		sess.Description = *patch.Description
	}
	if patch.Tags != nil {
		sess.Tags = append([]string(nil), (*patch.Tags)...)
	}
	if patch.Highlights != nil {
		sess.Highlights = append([]string(nil), (*patch.Highlights)...)
	}
	return sess, nil
}

// SetNotes attaches backend summary text to a session. Reserved for the
// lifecycle flow; notes are read-only through the patch surface.
func (s *Store) SetNotes(id, notes string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return ErrNotFound
	}
	sess.Notes = notes
	return nil
}

// Delete removes the session with the given id.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(s.sessions, id)
	return nil
}

// List returns all sessions most recent first by startedAt. The ordering is a
// stated guarantee of the store, not a presentation choice; ties break by id
// so repeated calls are deterministic.
func (s *Store) List() []*models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, sess)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartedAt != out[j].StartedAt {
			return out[i].StartedAt > out[j].StartedAt
		}
		return out[i].ID > out[j].ID
	})
	return out
}

// Len returns the number of stored sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Replace swaps the store contents for the given sessions, used when loading
// a persisted snapshot at startup.
func (s *Store) Replace(sessions []*models.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions = make(map[string]*models.Session, len(sessions))
	for _, sess := range sessions {
		s.sessions[sess.ID] = sess
	}
}
