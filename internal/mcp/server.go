package mcp

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/codelearn/internal/domain"
	"github.com/felixgeelhaar/codelearn/internal/exercise"
	"github.com/felixgeelhaar/codelearn/internal/highlight"
	"github.com/felixgeelhaar/codelearn/internal/lint"
	"github.com/felixgeelhaar/codelearn/internal/tutorial"
	mcp "github.com/felixgeelhaar/mcp-go"
	"github.com/felixgeelhaar/mcp-go/server"
)

// Version is reported to MCP clients
const Version = "0.1.0"

// Server wraps the MCP server with CodeLearn functionality
type Server struct {
	mcpServer *server.Server
	exercises *exercise.Registry
	tutorials *tutorial.Registry
	linter    *lint.Linter
}

// Config contains configuration for the MCP server
type Config struct {
	Exercises *exercise.Registry
	Tutorials *tutorial.Registry
	Linter    *lint.Linter
}

// NewServer creates a new MCP server for CodeLearn
func NewServer(cfg Config) *Server {
	s := &Server{
		exercises: cfg.Exercises,
		tutorials: cfg.Tutorials,
		linter:    cfg.Linter,
	}
	if s.linter == nil {
		s.linter = lint.New()
	}

	s.mcpServer = server.New(server.Info{
		Name:    "codelearn",
		Version: Version,
	}, server.WithInstructions(`
CodeLearn is a practice workbench for learning JavaScript.
Its annotations are advisory line checks, not a parser.

Available tools:
- codelearn_lint: Scan a buffer for line diagnostics
- codelearn_highlight: Render a buffer as highlighted markup
- codelearn_exercises: List practice exercises, optionally filtered
- codelearn_exercise: Show one exercise with its starter code
- codelearn_tutorial_step: Show a tutorial step
`))

	s.registerTools()

	return s
}

func (s *Server) registerTools() {
	s.mcpServer.Tool("codelearn_lint").
		Description("Scan code for line diagnostics (missing semicolons after console.log, functions without an opening brace).").
		Handler(s.handleLint)

	s.mcpServer.Tool("codelearn_highlight").
		Description("Render code as escaped, highlighted markup.").
		Handler(s.handleHighlight)

	s.mcpServer.Tool("codelearn_exercises").
		Description("List practice exercises filtered by difficulty and topic.").
		Handler(s.handleExercises)

	s.mcpServer.Tool("codelearn_exercise").
		Description("Get a single exercise by ID.").
		Handler(s.handleExercise)

	s.mcpServer.Tool("codelearn_tutorial_step").
		Description("Get a tutorial step. Out-of-range indexes are clamped.").
		Handler(s.handleTutorialStep)
}

// Input/Output types for tools

type CodeInput struct {
	Code string `json:"code" jsonschema:"description=Editor buffer contents"`
}

type LintOutput struct {
	Summary     string              `json:"summary"`
	Errors      int                 `json:"errors"`
	Warnings    int                 `json:"warnings"`
	Diagnostics []domain.Diagnostic `json:"diagnostics"`
}

type HighlightInput struct {
	Code  string `json:"code" jsonschema:"description=Editor buffer contents"`
	Spans bool   `json:"spans,omitempty" jsonschema:"description=Also return the typed spans"`
}

type HighlightOutput struct {
	Markup string           `json:"markup"`
	Spans  []highlight.Span `json:"spans,omitempty"`
}

type ExercisesInput struct {
	Difficulty string `json:"difficulty,omitempty" jsonschema:"description=Difficulty filter,enum=all,enum=beginner,enum=intermediate,enum=advanced"`
	Topic      string `json:"topic,omitempty" jsonschema:"description=Topic filter or all"`
}

type ExerciseSummary struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Difficulty    string `json:"difficulty"`
	Topic         string `json:"topic"`
	Points        int    `json:"points"`
	EstimatedTime string `json:"estimated_time"`
}

type ExercisesOutput struct {
	Count     int               `json:"count"`
	Exercises []ExerciseSummary `json:"exercises"`
}

type ExerciseInput struct {
	ID string `json:"id" jsonschema:"description=Exercise ID"`
}

type ExerciseOutput struct {
	Exercise  *domain.Exercise `json:"exercise"`
	TestCases string           `json:"test_cases"`
}

type TutorialStepInput struct {
	TutorialID string `json:"tutorial_id,omitempty" jsonschema:"description=Tutorial ID (defaults to the first tutorial)"`
	Step       int    `json:"step,omitempty" jsonschema:"description=Zero-based step index"`
}

type TutorialStepOutput struct {
	TutorialID string              `json:"tutorial_id"`
	Title      string              `json:"title"`
	Label      string              `json:"label"`
	Progress   float64             `json:"progress"`
	Step       domain.TutorialStep `json:"step"`
	First      bool                `json:"first"`
	Last       bool                `json:"last"`
}

// Tool handlers

func (s *Server) handleLint(ctx context.Context, input CodeInput) (LintOutput, error) {
	diags := s.linter.Scan(input.Code)
	errs, warns := lint.Count(diags)
	return LintOutput{
		Summary:     lint.Summary(diags),
		Errors:      errs,
		Warnings:    warns,
		Diagnostics: diags,
	}, nil
}

func (s *Server) handleHighlight(ctx context.Context, input HighlightInput) (HighlightOutput, error) {
	out := HighlightOutput{Markup: highlight.Render(input.Code)}
	if input.Spans {
		out.Spans = highlight.Tokenize(input.Code)
	}
	return out, nil
}

func (s *Server) handleExercises(ctx context.Context, input ExercisesInput) (ExercisesOutput, error) {
	if s.exercises == nil {
		return ExercisesOutput{}, fmt.Errorf("exercises not loaded")
	}

	filter := domain.ExerciseFilter{
		Difficulty: domain.Difficulty(input.Difficulty),
		Topic:      input.Topic,
	}
	if filter.Difficulty != "" && filter.Difficulty != domain.FilterAll && !filter.Difficulty.Valid() {
		return ExercisesOutput{}, fmt.Errorf("%w: difficulty %q", domain.ErrInvalidInput, input.Difficulty)
	}

	list := s.exercises.ListExercises(filter)
	out := ExercisesOutput{
		Count:     len(list),
		Exercises: make([]ExerciseSummary, 0, len(list)),
	}
	for _, e := range list {
		out.Exercises = append(out.Exercises, ExerciseSummary{
			ID:            e.ID,
			Title:         e.Title,
			Difficulty:    string(e.Difficulty),
			Topic:         e.Topic,
			Points:        e.Points,
			EstimatedTime: e.EstimatedTime,
		})
	}
	return out, nil
}

func (s *Server) handleExercise(ctx context.Context, input ExerciseInput) (ExerciseOutput, error) {
	if s.exercises == nil {
		return ExerciseOutput{}, fmt.Errorf("exercises not loaded")
	}

	ex, err := s.exercises.GetExercise(input.ID)
	if err != nil {
		return ExerciseOutput{}, err
	}
	return ExerciseOutput{Exercise: ex, TestCases: ex.TestCaseLabel()}, nil
}

func (s *Server) handleTutorialStep(ctx context.Context, input TutorialStepInput) (TutorialStepOutput, error) {
	if s.tutorials == nil {
		return TutorialStepOutput{}, fmt.Errorf("tutorials not loaded")
	}

	var (
		t   *domain.Tutorial
		err error
	)
	if input.TutorialID == "" {
		t, err = s.tutorials.Default()
	} else {
		t, err = s.tutorials.Get(input.TutorialID)
	}
	if err != nil {
		return TutorialStepOutput{}, err
	}

	cur := tutorial.Cursor{Index: t.Clamp(input.Step)}
	step, ok := cur.Step(t)
	if !ok {
		return TutorialStepOutput{}, fmt.Errorf("tutorial %s has no steps", t.ID)
	}

	return TutorialStepOutput{
		TutorialID: t.ID,
		Title:      t.Title,
		Label:      cur.Label(t),
		Progress:   cur.Progress(t),
		Step:       step,
		First:      cur.IsFirst(),
		Last:       cur.IsLast(t),
	}, nil
}

// ServeStdio starts the MCP server on stdio
func (s *Server) ServeStdio(ctx context.Context) error {
	return mcp.ServeStdio(ctx, s.mcpServer)
}

// ServeHTTP starts the MCP server on HTTP
func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	return mcp.ServeHTTP(ctx, s.mcpServer, addr)
}

// GetMCPServer returns the underlying MCP server (for testing)
func (s *Server) GetMCPServer() *server.Server {
	return s.mcpServer
}
