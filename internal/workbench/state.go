// Package workbench holds the learner's UI state and the pure reducer that
// moves it between screens.
package workbench

import (
	"github.com/felixgeelhaar/codelearn/internal/domain"
	"github.com/felixgeelhaar/codelearn/internal/tutorial"
)

// DefaultCode is the buffer a new workbench starts with
const DefaultCode = "// Welcome to CodeLearn!\n// Start writing your code here...\n\nfunction hello() {\n  console.log('Hello, World!');\n}\n\nhello();"

// State is everything one learner sees. Values are replaced, never shared.
type State struct {
	View             domain.View           `json:"view"`
	Code             string                `json:"code"`
	TutorialID       string                `json:"tutorial_id"`
	Step             tutorial.Cursor       `json:"step"`
	SidebarCollapsed bool                  `json:"sidebar_collapsed"`
	ExerciseID       string                `json:"exercise_id,omitempty"`
	Filter           domain.ExerciseFilter `json:"filter"`
}

// NewState returns the initial workbench state. An empty initialCode uses
// DefaultCode.
func NewState(initialCode, tutorialID string) State {
	if initialCode == "" {
		initialCode = DefaultCode
	}
	return State{
		View:       domain.DefaultView,
		Code:       initialCode,
		TutorialID: tutorialID,
		Filter:     domain.ExerciseFilter{Difficulty: domain.FilterAll, Topic: domain.FilterAll},
	}
}
