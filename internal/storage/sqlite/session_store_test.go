package sqlite

import (
	"errors"
	"testing"
	"time"

	"github.com/felixgeelhaar/codelearn/internal/domain"
	"github.com/felixgeelhaar/codelearn/internal/session"
	"github.com/felixgeelhaar/codelearn/internal/workbench"
)

func TestSessionStore_SaveGet(t *testing.T) {
	store := NewSessionStore(openTestDB(t))

	sess := session.NewSession(workbench.NewState("", "javascript-functions"))
	sess.State.View = domain.ViewLearn
	sess.State.Step.Index = 2
	sess.State.Step.ShowHint = true

	if err := store.Save(sess); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.Get(sess.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.State != sess.State {
		t.Errorf("State = %+v; want %+v", got.State, sess.State)
	}
	if got.LastRunAt != nil {
		t.Error("LastRunAt should be nil")
	}
	if !got.CreatedAt.Equal(sess.CreatedAt) {
		t.Errorf("CreatedAt = %v; want %v", got.CreatedAt, sess.CreatedAt)
	}
}

func TestSessionStore_Update(t *testing.T) {
	store := NewSessionStore(openTestDB(t))

	sess := session.NewSession(workbench.NewState("a", "t"))
	store.Save(sess)

	sess.State.Code = "b"
	sess.RecordRun()
	if err := store.Save(sess); err != nil {
		t.Fatalf("Save() update error = %v", err)
	}

	got, _ := store.Get(sess.ID)
	if got.State.Code != "b" {
		t.Errorf("Code = %q; want b", got.State.Code)
	}
	if got.RunCount != 1 || got.LastRunAt == nil {
		t.Errorf("RunCount = %d, LastRunAt = %v", got.RunCount, got.LastRunAt)
	}
}

func TestSessionStore_NotFound(t *testing.T) {
	store := NewSessionStore(openTestDB(t))

	if _, err := store.Get("missing"); !errors.Is(err, session.ErrNotFound) {
		t.Errorf("Get() error = %v; want ErrNotFound", err)
	}
	if err := store.Delete("missing"); !errors.Is(err, session.ErrNotFound) {
		t.Errorf("Delete() error = %v; want ErrNotFound", err)
	}
}

func TestSessionStore_ListDelete(t *testing.T) {
	store := NewSessionStore(openTestDB(t))

	first := session.NewSession(workbench.NewState("", "t"))
	second := session.NewSession(workbench.NewState("", "t"))
	second.CreatedAt = first.CreatedAt.Add(time.Second)
	store.Save(second)
	store.Save(first)

	list, err := store.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 2 || list[0].ID != first.ID {
		t.Fatalf("List() order wrong: %d sessions", len(list))
	}

	if err := store.Delete(first.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	list, _ = store.List()
	if len(list) != 1 {
		t.Errorf("List() after delete = %d; want 1", len(list))
	}
}
