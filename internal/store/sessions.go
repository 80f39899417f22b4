package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/iammorganparry/working-memory/internal/models"
)

// SessionStore persists session snapshots to SQLite. It implements the
// tracker's Persister interface: the in-memory store stays authoritative
// while the process runs, and the snapshot is replaced wholesale on save.
type SessionStore struct {
	db *DB
}

// NewSessionStore creates a new snapshot store.
func NewSessionStore(db *DB) *SessionStore {
	return &SessionStore{db: db}
}

// Load returns all persisted sessions, most recent first.
func (s *SessionStore) Load() ([]*models.Session, error) {
	rows, err := s.db.Query(`
		SELECT id, title, description, notes, started_at, ended_at, tags, highlights
		FROM sessions
		ORDER BY started_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*models.Session
	for rows.Next() {
		var sess models.Session
		var tags, highlights sql.NullString

		if err := rows.Scan(&sess.ID, &sess.Title, &sess.Description, &sess.Notes,
			&sess.StartedAt, &sess.EndedAt, &tags, &highlights); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sess.Tags = decodeStrings(tags)
		sess.Highlights = decodeStrings(highlights)
		sessions = append(sessions, &sess)
	}
	return sessions, rows.Err()
}

// Save replaces the persisted snapshot with the given sessions in one
// transaction.
func (s *SessionStore) Save(sessions []*models.Session) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin snapshot tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM sessions`); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO sessions (id, title, description, notes, started_at, ended_at, tags, highlights)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare snapshot insert: %w", err)
	}
	defer stmt.Close()

	for _, sess := range sessions {
		if _, err := stmt.Exec(sess.ID, sess.Title, sess.Description, sess.Notes,
			sess.StartedAt, sess.EndedAt, encodeStrings(sess.Tags), encodeStrings(sess.Highlights)); err != nil {
			return fmt.Errorf("insert session %s: %w", sess.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

func encodeStrings(values []string) string {
	if len(values) == 0 {
		return "[]"
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func decodeStrings(v sql.NullString) []string {
	if !v.Valid || v.String == "" {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal([]byte(v.String), &out); err != nil {
		return []string{}
	}
	if out == nil {
		out = []string{}
	}
	return out
}
