package workbench_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/felixgeelhaar/codelearn/internal/domain"
	"github.com/felixgeelhaar/codelearn/internal/exercise"
	"github.com/felixgeelhaar/codelearn/internal/fixtures"
	"github.com/felixgeelhaar/codelearn/internal/tutorial"
	"github.com/felixgeelhaar/codelearn/internal/workbench"
)

const tutorialID = "javascript-functions"

func setup(t *testing.T) (*workbench.Reducer, *workbench.Composer) {
	t.Helper()

	exercises := exercise.NewRegistry(exercise.NewLoader(fixtures.Exercises()))
	if err := exercises.Load(); err != nil {
		t.Fatalf("load exercises: %v", err)
	}
	tutorials := tutorial.NewRegistry(fixtures.Tutorials())
	if err := tutorials.Load(); err != nil {
		t.Fatalf("load tutorials: %v", err)
	}

	return workbench.NewReducer(exercises, tutorials), workbench.NewComposer(exercises, tutorials)
}

func apply(t *testing.T, r *workbench.Reducer, s workbench.State, actions ...workbench.Action) workbench.State {
	t.Helper()
	for _, a := range actions {
		var err error
		s, err = r.Reduce(s, a)
		if err != nil {
			t.Fatalf("Reduce(%s) error = %v", a, err)
		}
	}
	return s
}

func TestNewState(t *testing.T) {
	s := workbench.NewState("", tutorialID)

	if s.View != domain.ViewDashboard {
		t.Errorf("View = %q, want dashboard", s.View)
	}
	if s.Code != workbench.DefaultCode {
		t.Errorf("Code = %q, want the default buffer", s.Code)
	}
	if s.Step.Index != 0 {
		t.Errorf("Step.Index = %d, want 0", s.Step.Index)
	}
	if s.SidebarCollapsed {
		t.Error("sidebar should start expanded")
	}
}

func TestReduce_NavigateAnyToAny(t *testing.T) {
	r, _ := setup(t)

	for _, from := range domain.Views {
		for _, to := range domain.Views {
			s := workbench.NewState("", tutorialID)
			s.View = from
			next := apply(t, r, s, workbench.Navigate(to))
			if next.View != to {
				t.Errorf("%s -> %s: View = %q", from, to, next.View)
			}
			if next.Code != s.Code {
				t.Errorf("%s -> %s: navigation changed the buffer", from, to)
			}
		}
	}
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	r, _ := setup(t)
	s := workbench.NewState("", tutorialID)

	_ = apply(t, r, s, workbench.Navigate(domain.ViewLearn), workbench.Edit("x"))

	if s.View != domain.ViewDashboard || s.Code != workbench.DefaultCode {
		t.Errorf("input state was modified: %+v", s)
	}
}

func TestReduce_SelectExercise(t *testing.T) {
	r, _ := setup(t)
	s := workbench.NewState("", tutorialID)
	s.View = domain.ViewChallenges

	next := apply(t, r, s, workbench.SelectExercise("2"))

	if next.View != domain.ViewPractice {
		t.Errorf("View = %q, want practice", next.View)
	}
	if want := "function sum(a, b) {\n  // Your code here\n}"; next.Code != want {
		t.Errorf("Code = %q, want %q", next.Code, want)
	}
	if next.ExerciseID != "2" {
		t.Errorf("ExerciseID = %q, want 2", next.ExerciseID)
	}
}

func TestReduce_SelectUnknownExercise(t *testing.T) {
	r, _ := setup(t)
	s := workbench.NewState("", tutorialID)

	next, err := r.Reduce(s, workbench.SelectExercise("99"))
	if !errors.Is(err, exercise.ErrExerciseNotFound) {
		t.Errorf("error = %v, want ErrExerciseNotFound", err)
	}
	if next != s {
		t.Errorf("state changed on error: %+v", next)
	}
}

func TestReduce_TutorialSteps(t *testing.T) {
	r, _ := setup(t)
	s := workbench.NewState("", tutorialID)
	next := workbench.Action{Type: workbench.ActionNextStep}
	prev := workbench.Action{Type: workbench.ActionPreviousStep}

	if got := apply(t, r, s, prev).Step.Index; got != 0 {
		t.Errorf("previous at first step: Index = %d, want 0", got)
	}

	last := apply(t, r, s, next, next, next)
	if last.Step.Index != 2 {
		t.Errorf("next past last step: Index = %d, want 2", last.Step.Index)
	}

	if got := apply(t, r, last, prev).Step.Index; got != 1 {
		t.Errorf("previous from last: Index = %d, want 1", got)
	}
}

func TestReduce_HintToggleAndReset(t *testing.T) {
	r, _ := setup(t)
	s := apply(t, r, workbench.NewState("", tutorialID), workbench.Navigate(domain.ViewLearn))
	toggle := workbench.Action{Type: workbench.ActionToggleHint}

	tests := []struct {
		name   string
		action workbench.Action
		shown  bool
	}{
		{"next step", workbench.Action{Type: workbench.ActionNextStep}, false},
		{"stay on learn", workbench.Navigate(domain.ViewLearn), true},
		{"navigate away", workbench.Navigate(domain.ViewPractice), false},
		{"unknown view", workbench.Navigate("leaderboard"), false},
		{"select exercise", workbench.SelectExercise("1"), false},
		{"edit", workbench.Edit("x"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shown := apply(t, r, s, toggle)
			if !shown.Step.ShowHint {
				t.Fatal("toggle should show the hint")
			}
			if got := apply(t, r, shown, tt.action).Step.ShowHint; got != tt.shown {
				t.Errorf("ShowHint = %v, want %v", got, tt.shown)
			}
		})
	}
}

func TestReduce_HintHiddenAfterReturningToLearn(t *testing.T) {
	r, c := setup(t)

	s := apply(t, r, workbench.NewState("", tutorialID),
		workbench.Navigate(domain.ViewLearn),
		workbench.Action{Type: workbench.ActionToggleHint},
		workbench.Navigate(domain.ViewDashboard),
		workbench.Navigate(domain.ViewLearn),
	)

	p := c.Compose(s, workbench.Extras{}).Tutorial
	if p == nil {
		t.Fatal("expected tutorial panel")
	}
	if p.ShowHint {
		t.Error("hint should be hidden after leaving the tutorial")
	}
}

func TestReduce_InsertExample(t *testing.T) {
	r, _ := setup(t)
	s := workbench.NewState("old buffer", tutorialID)

	next := apply(t, r, s, workbench.Action{Type: workbench.ActionInsertExample})
	want := "function greet(name) {\n  return `Hello, ${name}!`;\n}\n\nconsole.log(greet('World'));"
	if next.Code != want {
		t.Errorf("Code = %q, want %q", next.Code, want)
	}
}

func TestReduce_ToggleSidebar(t *testing.T) {
	r, _ := setup(t)
	s := workbench.NewState("", tutorialID)

	once := apply(t, r, s, workbench.Action{Type: workbench.ActionToggleSidebar})
	twice := apply(t, r, once, workbench.Action{Type: workbench.ActionToggleSidebar})
	if !once.SidebarCollapsed || twice.SidebarCollapsed {
		t.Errorf("collapsed after one, two toggles = %v, %v", once.SidebarCollapsed, twice.SidebarCollapsed)
	}
}

func TestReduce_Filter(t *testing.T) {
	r, _ := setup(t)
	s := workbench.NewState("", tutorialID)

	next := apply(t, r, s, workbench.Action{Type: workbench.ActionFilter, Difficulty: domain.DifficultyBeginner})
	if next.Filter.Difficulty != domain.DifficultyBeginner {
		t.Errorf("Difficulty = %q, want beginner", next.Filter.Difficulty)
	}
	if next.Filter.Topic != domain.FilterAll {
		t.Errorf("Topic = %q, want all", next.Filter.Topic)
	}

	_, err := r.Reduce(s, workbench.Action{Type: workbench.ActionFilter, Difficulty: "expert"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}
}

func TestReduce_UnknownAction(t *testing.T) {
	r, _ := setup(t)

	_, err := r.Reduce(workbench.NewState("", tutorialID), workbench.Action{Type: "teleport"})
	if !errors.Is(err, workbench.ErrUnknownAction) {
		t.Errorf("error = %v, want ErrUnknownAction", err)
	}
}

func TestReduce_UnknownTutorial(t *testing.T) {
	r, _ := setup(t)

	_, err := r.Reduce(workbench.NewState("", "missing"), workbench.Action{Type: workbench.ActionNextStep})
	if !errors.Is(err, tutorial.ErrTutorialNotFound) {
		t.Errorf("error = %v, want ErrTutorialNotFound", err)
	}
}

func TestCompose_EveryViewRendersItsScreen(t *testing.T) {
	r, c := setup(t)

	tests := []struct {
		view  domain.View
		check func(t *testing.T, s *workbench.Screen)
	}{
		{domain.ViewDashboard, func(t *testing.T, s *workbench.Screen) {
			if s.Dashboard == nil {
				t.Error("expected dashboard panel")
			}
		}},
		{domain.ViewLearn, func(t *testing.T, s *workbench.Screen) {
			if s.Tutorial == nil || s.Editor == nil {
				t.Error("expected tutorial and editor panels")
			}
		}},
		{domain.ViewPractice, func(t *testing.T, s *workbench.Screen) {
			if s.Editor == nil || s.Exercises == nil {
				t.Error("expected editor and exercise panels")
			}
		}},
		{domain.ViewChallenges, func(t *testing.T, s *workbench.Screen) {
			if s.Editor != nil {
				t.Error("challenges has no editor")
			}
			if s.Exercises == nil {
				t.Error("expected exercise panel")
			}
			if s.Title != "Coding Challenges" {
				t.Errorf("Title = %q", s.Title)
			}
		}},
		{domain.ViewAIHelp, func(t *testing.T, s *workbench.Screen) {
			if s.Notice == nil {
				t.Fatal("expected notice panel")
			}
			if s.Notice.Heading != "AI-Powered Coding Help" {
				t.Errorf("Heading = %q", s.Notice.Heading)
			}
		}},
		{domain.ViewProgress, func(t *testing.T, s *workbench.Screen) {
			if s.Progress == nil {
				t.Error("expected progress panel")
			}
		}},
		{domain.ViewSettings, func(t *testing.T, s *workbench.Screen) {
			if s.Settings == nil {
				t.Error("expected settings panel")
			}
		}},
	}

	for _, tt := range tests {
		t.Run(string(tt.view), func(t *testing.T) {
			s := apply(t, r, workbench.NewState("", tutorialID), workbench.Navigate(tt.view))
			screen := c.Compose(s, workbench.Extras{})

			if screen.View != tt.view {
				t.Errorf("View = %q, want %q", screen.View, tt.view)
			}
			if screen.Fallback {
				t.Error("known view should not fall back")
			}
			if tt.view != domain.ViewDashboard && screen.Dashboard != nil {
				t.Error("dashboard panel composed on another view")
			}
			tt.check(t, screen)
		})
	}
}

func TestCompose_UnknownViewFallsBackToDashboard(t *testing.T) {
	r, c := setup(t)
	s := apply(t, r, workbench.NewState("", tutorialID), workbench.Navigate("leaderboard"))

	screen := c.Compose(s, workbench.Extras{})
	if screen.View != domain.ViewDashboard {
		t.Errorf("View = %q, want dashboard", screen.View)
	}
	if screen.Requested != "leaderboard" {
		t.Errorf("Requested = %q, want leaderboard", screen.Requested)
	}
	if !screen.Fallback || screen.Dashboard == nil {
		t.Error("expected the dashboard fallback")
	}
}

func TestCompose_Sidebar(t *testing.T) {
	_, c := setup(t)
	s := workbench.NewState("", tutorialID)
	s.View = domain.ViewAIHelp

	sb := c.Compose(s, workbench.Extras{}).Sidebar
	if len(sb.Items) != 6 {
		t.Fatalf("len(Items) = %d, want 6", len(sb.Items))
	}
	if sb.Footer.View != domain.ViewSettings {
		t.Errorf("Footer.View = %q, want settings", sb.Footer.View)
	}
	for _, item := range sb.Items {
		if item.Active != (item.View == domain.ViewAIHelp) {
			t.Errorf("%s: Active = %v", item.View, item.Active)
		}
		if item.View == domain.ViewAIHelp && item.Badge != "New" {
			t.Errorf("ai-help badge = %q, want New", item.Badge)
		}
	}
}

func TestCompose_EditorAnnotations(t *testing.T) {
	_, c := setup(t)

	ed := c.Editor("function f()\nconsole.log(1)", false)
	if !reflect.DeepEqual(ed.LineNumbers, []int{1, 2}) {
		t.Errorf("LineNumbers = %v, want [1 2]", ed.LineNumbers)
	}
	if ed.Summary != "2 issues" {
		t.Errorf("Summary = %q, want 2 issues", ed.Summary)
	}
	if len(ed.Markers) != 2 {
		t.Fatalf("len(Markers) = %d, want 2", len(ed.Markers))
	}
	if ed.Markers[0].Top != 16 || ed.Markers[1].Top != 40 {
		t.Errorf("marker tops = %d, %d, want 16, 40", ed.Markers[0].Top, ed.Markers[1].Top)
	}
	if !strings.Contains(ed.Markup, `<span class="keyword">function</span>`) {
		t.Errorf("Markup missing keyword span: %q", ed.Markup)
	}
	if ed.Language != "javascript" {
		t.Errorf("Language = %q, want javascript", ed.Language)
	}
}

func TestCompose_TutorialPanel(t *testing.T) {
	r, c := setup(t)
	s := apply(t, r, workbench.NewState("", tutorialID),
		workbench.Navigate(domain.ViewLearn),
		workbench.Action{Type: workbench.ActionNextStep},
		workbench.Action{Type: workbench.ActionToggleHint},
	)

	p := c.Compose(s, workbench.Extras{}).Tutorial
	if p == nil {
		t.Fatal("expected tutorial panel")
	}
	if p.Step.Title != "Function Parameters" {
		t.Errorf("Step.Title = %q", p.Step.Title)
	}
	if p.Label != "Step 2 of 3" {
		t.Errorf("Label = %q, want Step 2 of 3", p.Label)
	}
	if !p.ShowHint || !p.HasPrevious || !p.HasNext {
		t.Errorf("ShowHint/HasPrevious/HasNext = %v/%v/%v, want all true", p.ShowHint, p.HasPrevious, p.HasNext)
	}
}

func TestCompose_ExercisePanelHonoursFilter(t *testing.T) {
	r, c := setup(t)
	s := apply(t, r, workbench.NewState("", tutorialID),
		workbench.Navigate(domain.ViewChallenges),
		workbench.Action{Type: workbench.ActionFilter, Topic: "Functions"},
	)

	p := c.Compose(s, workbench.Extras{}).Exercises
	if p == nil {
		t.Fatal("expected exercise panel")
	}
	if len(p.Exercises) != 2 {
		t.Fatalf("len(Exercises) = %d, want 2", len(p.Exercises))
	}
	if want := []string{"Functions", "Arrays", "Algorithms"}; !reflect.DeepEqual(p.Topics, want) {
		t.Errorf("Topics = %v, want %v", p.Topics, want)
	}
}
