package session

import (
	"time"

	"github.com/felixgeelhaar/codelearn/internal/workbench"
	"github.com/google/uuid"
)

// Session is one learner's workbench. The daemon creates one per browser
// or client and keeps it until deleted.
type Session struct {
	ID        string          `json:"id"`
	State     workbench.State `json:"state"`
	RunCount  int             `json:"run_count"`
	LastRunAt *time.Time      `json:"last_run_at,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// NewSession creates a session in the initial workbench state
func NewSession(state workbench.State) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.New().String(),
		State:     state,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Apply replaces the workbench state
func (s *Session) Apply(state workbench.State) {
	s.State = state
	s.UpdatedAt = time.Now()
}

// RecordRun increments the run count
func (s *Session) RecordRun() {
	now := time.Now()
	s.RunCount++
	s.LastRunAt = &now
	s.UpdatedAt = now
}
