package session

import (
	"errors"
	"testing"

	"github.com/iammorganparry/working-memory/internal/models"
)

func newSession(id string, startedAt int64) *models.Session {
	return &models.Session{
		ID:         id,
		Title:      "Focused session",
		StartedAt:  startedAt,
		EndedAt:    startedAt + 1000,
		Tags:       []string{},
		Highlights: []string{},
	}
}

func TestInsertAndGet(t *testing.T) {
	s := NewStore()

	if err := s.Insert(newSession("a", 100)); err != nil {
		t.Fatalf("insert: %v", err)
	}
	got, err := s.Get("a")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != "a" {
		t.Errorf("id = %s, want a", got.ID)
	}
}

func TestInsertDuplicate(t *testing.T) {
	s := NewStore()

	if err := s.Insert(newSession("a", 100)); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := s.Insert(newSession("a", 200)); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("duplicate insert: got %v, want ErrDuplicateID", err)
	}
}

func TestUpdateMergesPatchOnly(t *testing.T) {
	s := NewStore()
	sess := newSession("a", 100)
	sess.Description = "before"
	if err := s.Insert(sess); err != nil {
		t.Fatalf("insert: %v", err)
	}

	title := "Renamed"
	tags := []string{"deep-work"}
	got, err := s.Update("a", models.SessionPatch{Title: &title, Tags: &tags})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Title != "Renamed" {
		t.Errorf("title = %s, want Renamed", got.Title)
	}
	if got.Description != "before" {
		t.Errorf("description changed to %q, want untouched", got.Description)
	}
	if len(got.Tags) != 1 || got.Tags[0] != "deep-work" {
		t.Errorf("tags = %v, want [deep-work]", got.Tags)
	}
	if got.StartedAt != 100 || got.EndedAt != 1100 {
		t.Errorf("interval changed: %d-%d", got.StartedAt, got.EndedAt)
	}
}

func TestUpdateNotFound(t *testing.T) {
	s := NewStore()
	title := "x"
	if _, err := s.Update("missing", models.SessionPatch{Title: &title}); !errors.Is(err, ErrNotFound) {
		t.Errorf("update missing: got %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	s := NewStore()
	if err := s.Insert(newSession("a", 100)); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := s.Delete("a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Get("a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("get after delete: got %v, want ErrNotFound", err)
	}
	if err := s.Delete("a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("repeat delete: got %v, want ErrNotFound", err)
	}
}

func TestListReverseChronological(t *testing.T) {
	s := NewStore()
	for _, sess := range []*models.Session{
		newSession("old", 100),
		newSession("newest", 300),
		newSession("middle", 200),
	} {
		if err := s.Insert(sess); err != nil {
			t.Fatalf("insert %s: %v", sess.ID, err)
		}
	}

	got := s.List()
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	want := []string{"newest", "middle", "old"}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("list[%d] = %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestReplace(t *testing.T) {
	s := NewStore()
	if err := s.Insert(newSession("a", 100)); err != nil {
		t.Fatalf("insert: %v", err)
	}

	s.Replace([]*models.Session{newSession("b", 200), newSession("c", 300)})

	if _, err := s.Get("a"); !errors.Is(err, ErrNotFound) {
		t.Error("expected old contents to be replaced")
	}
	if s.Len() != 2 {
		t.Errorf("len = %d, want 2", s.Len())
	}
}
