// Package content loads the exercise and tutorial registries.
package content

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/felixgeelhaar/codelearn/internal/config"
	"github.com/felixgeelhaar/codelearn/internal/exercise"
	"github.com/felixgeelhaar/codelearn/internal/fixtures"
	"github.com/felixgeelhaar/codelearn/internal/tutorial"
)

// Content holds the loaded registries
type Content struct {
	Exercises *exercise.Registry
	Tutorials *tutorial.Registry
}

// Load reads exercises and tutorials from the configured directories, or
// from the embedded fixtures when none are set
func Load(cfg config.ContentConfig) (*Content, error) {
	return LoadFS(dirOr(cfg.ExercisesPath, fixtures.Exercises()), dirOr(cfg.TutorialsPath, fixtures.Tutorials()))
}

// LoadFS reads both registries from the given filesystems
func LoadFS(exercises, tutorials fs.FS) (*Content, error) {
	c := &Content{
		Exercises: exercise.NewRegistry(exercise.NewLoader(exercises)),
		Tutorials: tutorial.NewRegistry(tutorials),
	}
	if err := c.Exercises.Load(); err != nil {
		return nil, fmt.Errorf("load exercises: %w", err)
	}
	if err := c.Tutorials.Load(); err != nil {
		return nil, fmt.Errorf("load tutorials: %w", err)
	}

	stats := c.Exercises.Stats()
	slog.Debug("content loaded",
		"exercises", stats.ExerciseCount,
		"topics", stats.TopicCount,
		"tutorials", len(c.Tutorials.List()),
	)
	return c, nil
}

func dirOr(path string, fallback fs.FS) fs.FS {
	if path == "" {
		return fallback
	}
	return os.DirFS(path)
}
