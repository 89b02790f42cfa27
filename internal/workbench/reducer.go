package workbench

import (
	"fmt"

	"github.com/felixgeelhaar/codelearn/internal/domain"
)

var (
	ErrUnknownAction = domain.ErrUnknownAction
	ErrUnknownView   = domain.ErrUnknownView
)

// ExerciseLookup resolves exercise IDs
type ExerciseLookup interface {
	GetExercise(id string) (*domain.Exercise, error)
}

// TutorialLookup resolves tutorial IDs
type TutorialLookup interface {
	Get(id string) (*domain.Tutorial, error)
}

// Reducer applies actions to states. It holds read-only content and no
// state of its own.
type Reducer struct {
	exercises ExerciseLookup
	tutorials TutorialLookup
}

// NewReducer creates a reducer over the given content
func NewReducer(exercises ExerciseLookup, tutorials TutorialLookup) *Reducer {
	return &Reducer{exercises: exercises, tutorials: tutorials}
}

// Reduce returns the state that results from applying a to s. s is not
// modified. On error the returned state is s.
func (r *Reducer) Reduce(s State, a Action) (State, error) {
	next := s

	switch a.Type {
	case ActionNavigate:
		// Any value is accepted; Compose falls back to the dashboard
		// for values outside the known set.
		next.View = a.View
		if a.View != domain.ViewLearn {
			next.Step.ShowHint = false
		}

	case ActionEdit:
		next.Code = a.Code

	case ActionSelectExercise:
		ex, err := r.exercises.GetExercise(a.ExerciseID)
		if err != nil {
			return s, fmt.Errorf("select exercise: %w", err)
		}
		next.Code = ex.StarterCode
		next.ExerciseID = ex.ID
		next.View = domain.ViewPractice
		next.Step.ShowHint = false

	case ActionNextStep, ActionPreviousStep, ActionInsertExample:
		t, err := r.tutorials.Get(s.TutorialID)
		if err != nil {
			return s, fmt.Errorf("%s: %w", a.Type, err)
		}
		switch a.Type {
		case ActionNextStep:
			next.Step = s.Step.Next(t)
		case ActionPreviousStep:
			next.Step = s.Step.Previous(t)
		default:
			next.Code = s.Step.InsertExample(t, s.Code)
		}

	case ActionToggleHint:
		next.Step = s.Step.ToggleHint()

	case ActionToggleSidebar:
		next.SidebarCollapsed = !s.SidebarCollapsed

	case ActionFilter:
		if a.Difficulty != "" && string(a.Difficulty) != domain.FilterAll && !a.Difficulty.Valid() {
			return s, fmt.Errorf("filter: %w: difficulty %q", domain.ErrInvalidInput, a.Difficulty)
		}
		next.Filter = domain.ExerciseFilter{
			Difficulty: domain.Difficulty(orAll(string(a.Difficulty))),
			Topic:      orAll(a.Topic),
		}

	default:
		return s, fmt.Errorf("%w: %q", ErrUnknownAction, a.Type)
	}

	return next, nil
}

func orAll(v string) string {
	if v == "" {
		return domain.FilterAll
	}
	return v
}

// Resolve maps a view to the one that is actually composed. Unknown views
// resolve to the dashboard and return ErrUnknownView.
func Resolve(v domain.View) (domain.View, error) {
	if v.Valid() {
		return v, nil
	}
	return domain.DefaultView, fmt.Errorf("%w: %q", ErrUnknownView, v)
}
