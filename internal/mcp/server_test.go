package mcp

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/felixgeelhaar/codelearn/internal/domain"
	"github.com/felixgeelhaar/codelearn/internal/exercise"
	"github.com/felixgeelhaar/codelearn/internal/fixtures"
	"github.com/felixgeelhaar/codelearn/internal/tutorial"
)

// setupTestServer creates a test MCP server over the embedded content
func setupTestServer(t *testing.T) *Server {
	t.Helper()

	exercises := exercise.NewRegistry(exercise.NewLoader(fixtures.Exercises()))
	if err := exercises.Load(); err != nil {
		t.Fatalf("load exercises: %v", err)
	}

	tutorials := tutorial.NewRegistry(fixtures.Tutorials())
	if err := tutorials.Load(); err != nil {
		t.Fatalf("load tutorials: %v", err)
	}

	return NewServer(Config{
		Exercises: exercises,
		Tutorials: tutorials,
	})
}

func TestNewServer(t *testing.T) {
	server := setupTestServer(t)

	if server.mcpServer == nil {
		t.Fatal("expected non-nil MCP server")
	}
	if server.linter == nil {
		t.Fatal("expected default linter")
	}
	if server.GetMCPServer() == nil {
		t.Fatal("expected non-nil underlying MCP server")
	}
}

func TestServerConfig(t *testing.T) {
	// Nil registries should not panic
	server := NewServer(Config{})
	if server == nil {
		t.Fatal("expected non-nil server even with empty config")
	}

	ctx := context.Background()
	if _, err := server.handleExercises(ctx, ExercisesInput{}); err == nil {
		t.Error("expected error without exercise registry")
	}
	if _, err := server.handleExercise(ctx, ExerciseInput{ID: "1"}); err == nil {
		t.Error("expected error without exercise registry")
	}
	if _, err := server.handleTutorialStep(ctx, TutorialStepInput{}); err == nil {
		t.Error("expected error without tutorial registry")
	}
}

func TestHandleLint(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		code     string
		summary  string
		errors   int
		warnings int
	}{
		{"clean", "function hello() {\n  console.log('hi');\n}", "No issues", 0, 0},
		{"missing semicolon", "console.log('hi')", "1 issue", 0, 1},
		{"missing brace", "function f()\n{\n}", "1 issue", 1, 0},
		{"both", "function f() console.log(1)", "2 issues", 1, 1},
		{"empty", "", "No issues", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := server.handleLint(ctx, CodeInput{Code: tt.code})
			if err != nil {
				t.Fatalf("handleLint() error = %v", err)
			}
			if out.Summary != tt.summary {
				t.Errorf("Summary = %q, want %q", out.Summary, tt.summary)
			}
			if out.Errors != tt.errors || out.Warnings != tt.warnings {
				t.Errorf("counts = %d/%d, want %d/%d", out.Errors, out.Warnings, tt.errors, tt.warnings)
			}
			if len(out.Diagnostics) != tt.errors+tt.warnings {
				t.Errorf("len(Diagnostics) = %d, want %d", len(out.Diagnostics), tt.errors+tt.warnings)
			}
		})
	}
}

func TestHandleHighlight(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	out, err := server.handleHighlight(ctx, HighlightInput{Code: "return 42; // <b>"})
	if err != nil {
		t.Fatalf("handleHighlight() error = %v", err)
	}

	if !strings.Contains(out.Markup, `<span class="keyword">return</span>`) {
		t.Errorf("Markup missing keyword span: %q", out.Markup)
	}
	if !strings.Contains(out.Markup, `<span class="number">42</span>`) {
		t.Errorf("Markup missing number span: %q", out.Markup)
	}
	if strings.Contains(out.Markup, "<b>") {
		t.Errorf("Markup not escaped: %q", out.Markup)
	}
	if out.Spans != nil {
		t.Errorf("Spans = %v, want nil when not requested", out.Spans)
	}

	out, err = server.handleHighlight(ctx, HighlightInput{Code: "let x", Spans: true})
	if err != nil {
		t.Fatalf("handleHighlight() error = %v", err)
	}
	if len(out.Spans) == 0 {
		t.Fatal("expected spans when requested")
	}
	var joined strings.Builder
	for _, s := range out.Spans {
		joined.WriteString(s.Text)
	}
	if joined.String() != "let x" {
		t.Errorf("joined spans = %q, want %q", joined.String(), "let x")
	}
}

func TestHandleExercises(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input ExercisesInput
		ids   []string
	}{
		{"all", ExercisesInput{}, []string{"1", "2", "3", "4"}},
		{"all sentinel", ExercisesInput{Difficulty: "all", Topic: "all"}, []string{"1", "2", "3", "4"}},
		{"beginner", ExercisesInput{Difficulty: "beginner"}, []string{"1", "2"}},
		{"topic", ExercisesInput{Topic: "Algorithms"}, []string{"4"}},
		{"no match", ExercisesInput{Difficulty: "advanced", Topic: "Functions"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := server.handleExercises(ctx, tt.input)
			if err != nil {
				t.Fatalf("handleExercises() error = %v", err)
			}
			if out.Count != len(tt.ids) {
				t.Fatalf("Count = %d, want %d", out.Count, len(tt.ids))
			}
			for i, id := range tt.ids {
				if out.Exercises[i].ID != id {
					t.Errorf("Exercises[%d].ID = %q, want %q", i, out.Exercises[i].ID, id)
				}
			}
		})
	}
}

func TestHandleExercises_InvalidDifficulty(t *testing.T) {
	server := setupTestServer(t)

	_, err := server.handleExercises(context.Background(), ExercisesInput{Difficulty: "expert"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}
}

func TestHandleExercise(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	out, err := server.handleExercise(ctx, ExerciseInput{ID: "1"})
	if err != nil {
		t.Fatalf("handleExercise() error = %v", err)
	}
	if out.Exercise.Title != "Hello World Function" {
		t.Errorf("Title = %q, want %q", out.Exercise.Title, "Hello World Function")
	}
	if out.TestCases != "1 test case" {
		t.Errorf("TestCases = %q, want %q", out.TestCases, "1 test case")
	}

	_, err = server.handleExercise(ctx, ExerciseInput{ID: "missing"})
	if !errors.Is(err, domain.ErrExerciseNotFound) {
		t.Errorf("error = %v, want ErrExerciseNotFound", err)
	}
}

func TestHandleTutorialStep(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input TutorialStepInput
		label string
		title string
		first bool
		last  bool
	}{
		{"default tutorial", TutorialStepInput{}, "Step 1 of 3", "Function Declaration", true, false},
		{"middle", TutorialStepInput{TutorialID: "javascript-functions", Step: 1}, "Step 2 of 3", "Function Parameters", false, false},
		{"clamped high", TutorialStepInput{TutorialID: "javascript-functions", Step: 9}, "Step 3 of 3", "Return Values", false, true},
		{"clamped low", TutorialStepInput{Step: -4}, "Step 1 of 3", "Function Declaration", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := server.handleTutorialStep(ctx, tt.input)
			if err != nil {
				t.Fatalf("handleTutorialStep() error = %v", err)
			}
			if out.TutorialID != "javascript-functions" {
				t.Errorf("TutorialID = %q", out.TutorialID)
			}
			if out.Label != tt.label {
				t.Errorf("Label = %q, want %q", out.Label, tt.label)
			}
			if out.Step.Title != tt.title {
				t.Errorf("Step.Title = %q, want %q", out.Step.Title, tt.title)
			}
			if out.First != tt.first || out.Last != tt.last {
				t.Errorf("First/Last = %v/%v, want %v/%v", out.First, out.Last, tt.first, tt.last)
			}
		})
	}

	_, err := server.handleTutorialStep(ctx, TutorialStepInput{TutorialID: "rust-basics"})
	if !errors.Is(err, domain.ErrTutorialNotFound) {
		t.Errorf("error = %v, want ErrTutorialNotFound", err)
	}
}
