package workbench

import (
	"strings"

	"github.com/felixgeelhaar/codelearn/internal/domain"
	"github.com/felixgeelhaar/codelearn/internal/highlight"
	"github.com/felixgeelhaar/codelearn/internal/lint"
	"github.com/felixgeelhaar/codelearn/internal/tutorial"
)

// Catalog is the exercise content a screen can browse
type Catalog interface {
	ExerciseLookup
	ListExercises(filter domain.ExerciseFilter) []*domain.Exercise
	Topics() []string
}

// Extras carries data that lives outside the workbench state
type Extras struct {
	Running  bool
	Recent   []domain.Activity
	Overview domain.ActivityOverview
	Settings []Setting
}

// Composer builds screens from states
type Composer struct {
	catalog   Catalog
	tutorials TutorialLookup
	linter    *lint.Linter
	geometry  lint.Geometry
	language  string
}

// ComposerOption configures a Composer
type ComposerOption func(*Composer)

// WithLinter replaces the default linter
func WithLinter(l *lint.Linter) ComposerOption {
	return func(c *Composer) { c.linter = l }
}

// WithGeometry sets the editor line geometry used for markers
func WithGeometry(g lint.Geometry) ComposerOption {
	return func(c *Composer) { c.geometry = g }
}

// WithLanguage sets the editor language badge
func WithLanguage(lang string) ComposerOption {
	return func(c *Composer) { c.language = lang }
}

// NewComposer creates a composer
func NewComposer(catalog Catalog, tutorials TutorialLookup, opts ...ComposerOption) *Composer {
	c := &Composer{
		catalog:   catalog,
		tutorials: tutorials,
		linter:    lint.New(),
		geometry:  lint.DefaultGeometry(),
		language:  "javascript",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose builds the screen for s. An unrecognized view composes the
// dashboard with Fallback set.
func (c *Composer) Compose(s State, x Extras) *Screen {
	view, err := Resolve(s.View)

	screen := &Screen{
		View:      view,
		Requested: s.View,
		Fallback:  err != nil,
		Title:     view.Label(),
		Sidebar:   sidebar(view, s.SidebarCollapsed),
	}

	switch view {
	case domain.ViewLearn:
		screen.Tutorial = c.tutorialPanel(s)
		screen.Editor = c.Editor(s.Code, x.Running)
	case domain.ViewPractice:
		screen.Editor = c.Editor(s.Code, x.Running)
		screen.Exercises = c.exercisePanel(s)
	case domain.ViewChallenges:
		screen.Title = "Coding Challenges"
		screen.Exercises = c.exercisePanel(s)
	case domain.ViewAIHelp:
		screen.Notice = &NoticePanel{
			Heading: "AI-Powered Coding Help",
			Body:    "Get instant help with debugging, code explanations, and programming concepts!",
		}
	case domain.ViewProgress:
		screen.Title = "Your Progress"
		screen.Notice = &NoticePanel{
			Heading: "Track Your Learning Journey",
			Body:    "View detailed analytics of your coding progress and achievements.",
		}
		screen.Progress = &ProgressPanel{Overview: x.Overview, Recent: x.Recent}
	case domain.ViewSettings:
		screen.Settings = &SettingsPanel{Entries: x.Settings}
	default:
		screen.Dashboard = &DashboardPanel{
			Greeting:     "Welcome back, Coder!",
			Tagline:      "Ready to level up your programming skills today?",
			QuickActions: quickActions,
			Recent:       x.Recent,
			Overview:     x.Overview,
		}
	}

	return screen
}

var quickActions = []QuickAction{
	{View: domain.ViewLearn, Label: "Continue Learning"},
	{View: domain.ViewPractice, Label: "Practice Coding"},
	{View: domain.ViewChallenges, Label: "Take Challenge"},
	{View: domain.ViewAIHelp, Label: "AI Assistant"},
}

func sidebar(active domain.View, collapsed bool) Sidebar {
	sb := Sidebar{Collapsed: collapsed}
	for _, v := range domain.Views {
		item := SidebarItem{View: v, Label: v.Label(), Active: v == active}
		if v == domain.ViewAIHelp {
			item.Badge = "New"
		}
		if v == domain.ViewSettings {
			sb.Footer = item
			continue
		}
		sb.Items = append(sb.Items, item)
	}
	return sb
}

// Editor annotates code for display
func (c *Composer) Editor(code string, running bool) *EditorPanel {
	diags := c.linter.Scan(code)
	lines := strings.Count(code, "\n") + 1
	numbers := make([]int, lines)
	for i := range numbers {
		numbers[i] = i + 1
	}
	return &EditorPanel{
		Code:        code,
		Language:    c.language,
		LineNumbers: numbers,
		Markup:      highlight.Render(code),
		Diagnostics: diags,
		Markers:     lint.Markers(diags, c.geometry),
		Summary:     lint.Summary(diags),
		Running:     running,
	}
}

func (c *Composer) tutorialPanel(s State) *TutorialPanel {
	t, err := c.tutorials.Get(s.TutorialID)
	if err != nil {
		return nil
	}
	step, ok := s.Step.Step(t)
	if !ok {
		return nil
	}
	cur := tutorial.Cursor{Index: t.Clamp(s.Step.Index), ShowHint: s.Step.ShowHint}
	return &TutorialPanel{
		TutorialID:  t.ID,
		Title:       t.Title,
		Description: t.Description,
		Step:        step,
		Index:       cur.Index,
		Total:       t.Len(),
		Label:       cur.Label(t),
		Progress:    cur.Progress(t),
		ShowHint:    cur.ShowHint && step.HasHint(),
		HasPrevious: !cur.IsFirst(),
		HasNext:     !cur.IsLast(t),
	}
}

func (c *Composer) exercisePanel(s State) *ExercisePanel {
	return &ExercisePanel{
		Exercises: c.catalog.ListExercises(s.Filter),
		Topics:    c.catalog.Topics(),
		Difficulties: []domain.Difficulty{
			domain.DifficultyBeginner,
			domain.DifficultyIntermediate,
			domain.DifficultyAdvanced,
		},
		Filter:     s.Filter,
		SelectedID: s.ExerciseID,
	}
}
