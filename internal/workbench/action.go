package workbench

import (
	"fmt"

	"github.com/felixgeelhaar/codelearn/internal/domain"
)

// ActionType names a workbench transition
type ActionType string

const (
	ActionNavigate       ActionType = "navigate"
	ActionEdit           ActionType = "edit"
	ActionSelectExercise ActionType = "select_exercise"
	ActionNextStep       ActionType = "next_step"
	ActionPreviousStep   ActionType = "previous_step"
	ActionInsertExample  ActionType = "insert_example"
	ActionToggleHint     ActionType = "toggle_hint"
	ActionToggleSidebar  ActionType = "toggle_sidebar"
	ActionFilter         ActionType = "filter"
)

// Action is a request to change the workbench state
type Action struct {
	Type       ActionType        `json:"type"`
	View       domain.View       `json:"view,omitempty"`
	Code       string            `json:"code,omitempty"`
	ExerciseID string            `json:"exercise_id,omitempty"`
	Difficulty domain.Difficulty `json:"difficulty,omitempty"`
	Topic      string            `json:"topic,omitempty"`
}

// Navigate builds a navigate action
func Navigate(v domain.View) Action {
	return Action{Type: ActionNavigate, View: v}
}

// Edit builds an edit action
func Edit(code string) Action {
	return Action{Type: ActionEdit, Code: code}
}

// SelectExercise builds a select_exercise action
func SelectExercise(id string) Action {
	return Action{Type: ActionSelectExercise, ExerciseID: id}
}

func (a Action) String() string {
	switch a.Type {
	case ActionNavigate:
		return fmt.Sprintf("%s(%s)", a.Type, a.View)
	case ActionSelectExercise:
		return fmt.Sprintf("%s(%s)", a.Type, a.ExerciseID)
	default:
		return string(a.Type)
	}
}
