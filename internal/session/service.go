// Package session manages workbench sessions: creation, persistence and the
// serialized application of workbench actions.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/felixgeelhaar/codelearn/internal/profile"
	"github.com/felixgeelhaar/codelearn/internal/workbench"
)

var ErrSessionNotFound = errors.New("session not found")

// Options configures new sessions
type Options struct {
	InitialCode string
	TutorialID  string
	Settings    []workbench.Setting
}

// Service manages workbench sessions
type Service struct {
	mu       sync.Mutex
	store    SessionStore
	reducer  *workbench.Reducer
	composer *workbench.Composer
	picker   RandomPicker
	opts     Options

	profileService *profile.Service // Optional: records activity
	runState       RunState         // Optional: reports in-flight runs
}

// NewService creates a new session service
func NewService(store SessionStore, reducer *workbench.Reducer, composer *workbench.Composer, picker RandomPicker, opts Options) *Service {
	return &Service{
		store:    store,
		reducer:  reducer,
		composer: composer,
		picker:   picker,
		opts:     opts,
	}
}

// SetProfileService sets the profile service for activity tracking
func (s *Service) SetProfileService(ps *profile.Service) {
	s.profileService = ps
}

// SetRunState sets the source of the editor's running indicator
func (s *Service) SetRunState(rs RunState) {
	s.runState = rs
}

// Create starts a new workbench session
func (s *Service) Create(ctx context.Context) (*Session, error) {
	session := NewSession(workbench.NewState(s.opts.InitialCode, s.opts.TutorialID))

	if err := s.store.Save(session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	slog.Info("session created", "session_id", session.ID)
	return session, nil
}

// Get retrieves a session by ID
func (s *Service) Get(ctx context.Context, id string) (*Session, error) {
	session, err := s.store.Get(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

// List returns all sessions
func (s *Service) List(ctx context.Context) ([]*Session, error) {
	return s.store.List()
}

// Delete removes a session. It waits for an in-flight Dispatch on the
// service so the dispatch cannot save the session back.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrSessionNotFound
		}
		return err
	}
	return nil
}

// Dispatch applies an action to the session's workbench and persists the
// result. Actions on one service are applied one at a time.
func (s *Service) Dispatch(ctx context.Context, id string, action workbench.Action) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	before := session.State
	after, err := s.reducer.Reduce(before, action)
	if err != nil {
		return nil, err
	}
	session.Apply(after)

	if err := s.store.Save(session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	if s.profileService != nil {
		if err := s.profileService.OnTransition(ctx, id, before, after, action); err != nil {
			slog.Warn("failed to record activity", "session_id", id, "action", action.Type, "error", err)
		}
	}

	slog.Debug("action applied", "session_id", id, "action", action.String(), "view", after.View)
	return session, nil
}

// SelectRandom picks a random exercise from the session's filtered set,
// falling back to the whole catalogue, and selects it.
func (s *Service) SelectRandom(ctx context.Context, id string) (*Session, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	ex, err := s.picker.Random(session.State.Filter)
	if err != nil {
		return nil, fmt.Errorf("pick exercise: %w", err)
	}
	return s.Dispatch(ctx, id, workbench.SelectExercise(ex.ID))
}

// Screen composes the session's active view
func (s *Service) Screen(ctx context.Context, id string) (*workbench.Screen, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var x workbench.Extras
	if s.profileService != nil {
		x = s.profileService.Extras(ctx)
	}
	if s.runState != nil {
		x.Running = s.runState.IsRunning(id)
	}
	x.Settings = s.opts.Settings

	return s.composer.Compose(session.State, x), nil
}

// RecordRun counts a completed run against the session
func (s *Service) RecordRun(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	session.RecordRun()
	if err := s.store.Save(session); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	if s.profileService != nil {
		title := "Code run"
		if session.State.ExerciseID != "" {
			title = "Code run (exercise " + session.State.ExerciseID + ")"
		}
		if err := s.profileService.OnRun(ctx, id, title); err != nil {
			slog.Warn("failed to record run activity", "session_id", id, "error", err)
		}
	}
	return nil
}
