package workbench

import (
	"github.com/felixgeelhaar/codelearn/internal/domain"
	"github.com/felixgeelhaar/codelearn/internal/lint"
)

// Screen is the composed content of one view. Exactly the panels the view
// uses are non-nil.
type Screen struct {
	View      domain.View `json:"view"`
	Requested domain.View `json:"requested"`
	Fallback  bool        `json:"fallback,omitempty"`
	Title     string      `json:"title"`
	Sidebar   Sidebar     `json:"sidebar"`

	Dashboard *DashboardPanel `json:"dashboard,omitempty"`
	Tutorial  *TutorialPanel  `json:"tutorial,omitempty"`
	Editor    *EditorPanel    `json:"editor,omitempty"`
	Exercises *ExercisePanel  `json:"exercises,omitempty"`
	Notice    *NoticePanel    `json:"notice,omitempty"`
	Progress  *ProgressPanel  `json:"progress,omitempty"`
	Settings  *SettingsPanel  `json:"settings,omitempty"`
}

// Sidebar is the navigation column
type Sidebar struct {
	Collapsed bool          `json:"collapsed"`
	Items     []SidebarItem `json:"items"`
	Footer    SidebarItem   `json:"footer"`
}

// SidebarItem is one navigation entry
type SidebarItem struct {
	View   domain.View `json:"view"`
	Label  string      `json:"label"`
	Badge  string      `json:"badge,omitempty"`
	Active bool        `json:"active"`
}

// DashboardPanel is the landing screen
type DashboardPanel struct {
	Greeting     string                  `json:"greeting"`
	Tagline      string                  `json:"tagline"`
	QuickActions []QuickAction           `json:"quick_actions"`
	Recent       []domain.Activity       `json:"recent"`
	Overview     domain.ActivityOverview `json:"overview"`
}

// QuickAction is a dashboard shortcut to another view
type QuickAction struct {
	View  domain.View `json:"view"`
	Label string      `json:"label"`
}

// EditorPanel is the code editor with its annotations
type EditorPanel struct {
	Code        string              `json:"code"`
	Language    string              `json:"language"`
	LineNumbers []int               `json:"line_numbers"`
	Markup      string              `json:"markup"`
	Diagnostics []domain.Diagnostic `json:"diagnostics"`
	Markers     []lint.Marker       `json:"markers"`
	Summary     string              `json:"summary"`
	Running     bool                `json:"running"`
}

// TutorialPanel is the step viewer
type TutorialPanel struct {
	TutorialID  string              `json:"tutorial_id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Step        domain.TutorialStep `json:"step"`
	Index       int                 `json:"index"`
	Total       int                 `json:"total"`
	Label       string              `json:"label"`
	Progress    float64             `json:"progress"`
	ShowHint    bool                `json:"show_hint"`
	HasPrevious bool                `json:"has_previous"`
	HasNext     bool                `json:"has_next"`
}

// ExercisePanel is the exercise browser
type ExercisePanel struct {
	Exercises    []*domain.Exercise    `json:"exercises"`
	Topics       []string              `json:"topics"`
	Difficulties []domain.Difficulty   `json:"difficulties"`
	Filter       domain.ExerciseFilter `json:"filter"`
	SelectedID   string                `json:"selected_id,omitempty"`
}

// NoticePanel is a static informational card
type NoticePanel struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// ProgressPanel summarizes the activity log
type ProgressPanel struct {
	Overview domain.ActivityOverview `json:"overview"`
	Recent   []domain.Activity       `json:"recent"`
}

// SettingsPanel lists the effective configuration
type SettingsPanel struct {
	Entries []Setting `json:"entries"`
}

// Setting is one configuration key and its effective value
type Setting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
