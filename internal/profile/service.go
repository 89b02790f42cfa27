// Package profile records what the learner does and summarizes it for the
// dashboard and progress screens.
package profile

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/codelearn/internal/domain"
	"github.com/felixgeelhaar/codelearn/internal/workbench"
	"github.com/google/uuid"
)

// DefaultRecentLimit is how many entries the dashboard shows
const DefaultRecentLimit = 3

// Service derives activity entries from workbench transitions
type Service struct {
	store     ActivityStore
	exercises workbench.ExerciseLookup
	tutorials workbench.TutorialLookup
	now       func() time.Time
}

// NewService creates a new profile service
func NewService(store ActivityStore, exercises workbench.ExerciseLookup, tutorials workbench.TutorialLookup) *Service {
	return &Service{
		store:     store,
		exercises: exercises,
		tutorials: tutorials,
		now:       time.Now,
	}
}

// OnTransition records the activity implied by moving from before to after
// via a. Transitions with no learning content record nothing.
func (s *Service) OnTransition(ctx context.Context, sessionID string, before, after workbench.State, a workbench.Action) error {
	var entry *domain.Activity

	switch a.Type {
	case workbench.ActionSelectExercise:
		ex, err := s.exercises.GetExercise(after.ExerciseID)
		if err != nil {
			return fmt.Errorf("resolve exercise: %w", err)
		}
		kind := domain.ActivityExercise
		if before.View == domain.ViewChallenges {
			kind = domain.ActivityChallenge
		}
		entry = &domain.Activity{Kind: kind, Title: ex.Title, Points: ex.Points}

	case workbench.ActionNextStep, workbench.ActionPreviousStep:
		if before.Step.Index == after.Step.Index {
			return nil
		}
		t, err := s.tutorials.Get(after.TutorialID)
		if err != nil {
			return fmt.Errorf("resolve tutorial: %w", err)
		}
		step, ok := after.Step.Step(t)
		if !ok {
			return nil
		}
		entry = &domain.Activity{Kind: domain.ActivityLesson, Title: t.Title + ": " + step.Title}
	}

	if entry == nil {
		return nil
	}
	return s.record(ctx, sessionID, *entry)
}

// OnRun records a completed simulated run
func (s *Service) OnRun(ctx context.Context, sessionID, title string) error {
	return s.record(ctx, sessionID, domain.Activity{Kind: domain.ActivityRun, Title: title})
}

func (s *Service) record(ctx context.Context, sessionID string, a domain.Activity) error {
	a.ID = uuid.New().String()
	a.SessionID = sessionID
	a.CreatedAt = s.now()

	if err := s.store.Append(ctx, a); err != nil {
		return fmt.Errorf("append activity: %w", err)
	}
	slog.Debug("activity recorded", "kind", a.Kind, "title", a.Title, "session_id", sessionID)
	return nil
}

// Recent returns the newest entries
func (s *Service) Recent(ctx context.Context, limit int) ([]domain.Activity, error) {
	return s.store.Recent(ctx, limit)
}

// Overview returns aggregate counts
func (s *Service) Overview(ctx context.Context) (domain.ActivityOverview, error) {
	return s.store.Overview(ctx)
}

// Extras loads the dashboard and progress data for a screen. Failures are
// logged and yield empty data.
func (s *Service) Extras(ctx context.Context) workbench.Extras {
	var x workbench.Extras

	recent, err := s.store.Recent(ctx, DefaultRecentLimit)
	if err != nil {
		slog.Warn("failed to load recent activity", "error", err)
	}
	x.Recent = recent

	overview, err := s.store.Overview(ctx)
	if err != nil {
		slog.Warn("failed to load activity overview", "error", err)
	}
	x.Overview = overview
	return x
}

// Since formats the age of an activity the way the dashboard shows it
func Since(now, t time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d/time.Minute), "minute") + " ago"
	case d < 24*time.Hour:
		return plural(int(d/time.Hour), "hour") + " ago"
	default:
		return plural(int(d/(24*time.Hour)), "day") + " ago"
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
