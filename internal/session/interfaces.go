package session

import (
	"context"

	"github.com/felixgeelhaar/codelearn/internal/domain"
	"github.com/felixgeelhaar/codelearn/internal/workbench"
)

// SessionService defines the interface for session management operations
// used by the daemon handlers
type SessionService interface {
	// Create starts a new workbench session
	Create(ctx context.Context) (*Session, error)

	// Get retrieves a session by ID
	Get(ctx context.Context, id string) (*Session, error)

	// List returns all sessions
	List(ctx context.Context) ([]*Session, error)

	// Delete removes a session
	Delete(ctx context.Context, id string) error

	// Dispatch applies an action to a session's workbench
	Dispatch(ctx context.Context, id string, action workbench.Action) (*Session, error)

	// SelectRandom selects a random exercise honouring the session's filter
	SelectRandom(ctx context.Context, id string) (*Session, error)

	// Screen composes the session's active view
	Screen(ctx context.Context, id string) (*workbench.Screen, error)

	// RecordRun counts a completed run
	RecordRun(ctx context.Context, id string) error
}

// Ensure Service implements SessionService
var _ SessionService = (*Service)(nil)

// SessionStore defines the persistence interface for sessions.
// The memory, file and SQLite stores implement this.
type SessionStore interface {
	Save(session *Session) error
	Get(id string) (*Session, error)
	Delete(id string) error
	List() ([]*Session, error)
}

var (
	_ SessionStore = (*MemoryStore)(nil)
	_ SessionStore = (*FileStore)(nil)
)

// RandomPicker chooses an exercise from a filtered catalogue
type RandomPicker interface {
	Random(filter domain.ExerciseFilter) (*domain.Exercise, error)
}

// RunState reports whether a session has a run in flight
type RunState interface {
	IsRunning(sessionID string) bool
}
