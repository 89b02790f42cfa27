package exercise

import (
	"fmt"
	"io/fs"
	"path"

	"github.com/felixgeelhaar/codelearn/internal/domain"
	"gopkg.in/yaml.v3"
)

// PackFile represents the YAML structure of pack.yaml
type PackFile struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Version     string   `yaml:"version"`
	Description string   `yaml:"description"`
	Language    string   `yaml:"language"`
	Exercises   []string `yaml:"exercises"`
}

// ExerciseFile represents the YAML structure for an exercise
type ExerciseFile struct {
	ID            string `yaml:"id"`
	Title         string `yaml:"title"`
	Description   string `yaml:"description"`
	Difficulty    string `yaml:"difficulty"`
	Topic         string `yaml:"topic"`
	EstimatedTime string `yaml:"estimated_time"`
	Points        int    `yaml:"points"`
	Starter       string `yaml:"starter"`
	Solution      string `yaml:"solution"`
	TestCases     []struct {
		Input          string `yaml:"input"`
		ExpectedOutput string `yaml:"expected_output"`
	} `yaml:"test_cases"`
}

// Pack is the parsed pack manifest
type Pack struct {
	ID          string
	Name        string
	Version     string
	Description string
	Language    string
	Slugs       []string
}

// Loader reads an exercise pack from a filesystem: a pack.yaml manifest
// plus one <slug>.yaml file per exercise.
type Loader struct {
	fsys fs.FS
}

// NewLoader creates a new exercise loader
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// LoadPack loads the pack manifest
func (l *Loader) LoadPack() (*Pack, error) {
	data, err := fs.ReadFile(l.fsys, "pack.yaml")
	if err != nil {
		return nil, fmt.Errorf("read pack file: %w", err)
	}

	var packFile PackFile
	if err := yaml.Unmarshal(data, &packFile); err != nil {
		return nil, fmt.Errorf("parse pack file: %w", err)
	}

	return &Pack{
		ID:          packFile.ID,
		Name:        packFile.Name,
		Version:     packFile.Version,
		Description: packFile.Description,
		Language:    packFile.Language,
		Slugs:       packFile.Exercises,
	}, nil
}

// LoadExercise loads a single exercise from <slug>.yaml
func (l *Loader) LoadExercise(slug string) (*domain.Exercise, error) {
	data, err := fs.ReadFile(l.fsys, path.Clean(slug)+".yaml")
	if err != nil {
		return nil, fmt.Errorf("read exercise file: %w", err)
	}

	var exFile ExerciseFile
	if err := yaml.Unmarshal(data, &exFile); err != nil {
		return nil, fmt.Errorf("parse exercise file: %w", err)
	}

	if exFile.ID == "" {
		return nil, fmt.Errorf("exercise %s: missing id", slug)
	}
	difficulty := domain.Difficulty(exFile.Difficulty)
	if !difficulty.Valid() {
		return nil, fmt.Errorf("exercise %s: unknown difficulty %q", slug, exFile.Difficulty)
	}

	exercise := &domain.Exercise{
		ID:            exFile.ID,
		Title:         exFile.Title,
		Description:   exFile.Description,
		Difficulty:    difficulty,
		Topic:         exFile.Topic,
		EstimatedTime: exFile.EstimatedTime,
		Points:        exFile.Points,
		StarterCode:   exFile.Starter,
		Solution:      exFile.Solution,
		TestCases:     make([]domain.TestCase, len(exFile.TestCases)),
	}
	for i, tc := range exFile.TestCases {
		exercise.TestCases[i] = domain.TestCase{
			Input:          tc.Input,
			ExpectedOutput: tc.ExpectedOutput,
		}
	}

	return exercise, nil
}

// LoadAll loads every exercise listed in the manifest, in manifest order
func (l *Loader) LoadAll() (*Pack, []*domain.Exercise, error) {
	pack, err := l.LoadPack()
	if err != nil {
		return nil, nil, err
	}

	exercises := make([]*domain.Exercise, 0, len(pack.Slugs))
	for _, slug := range pack.Slugs {
		exercise, err := l.LoadExercise(slug)
		if err != nil {
			return nil, nil, fmt.Errorf("load exercise %s: %w", slug, err)
		}
		exercises = append(exercises, exercise)
	}

	return pack, exercises, nil
}
