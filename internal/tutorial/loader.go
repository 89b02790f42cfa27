// Package tutorial loads step-by-step tutorials and tracks a reader's
// position within one.
package tutorial

import (
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"

	"github.com/felixgeelhaar/codelearn/internal/domain"
	"gopkg.in/yaml.v3"
)

// ErrTutorialNotFound is returned when a tutorial ID is unknown
var ErrTutorialNotFound = domain.ErrTutorialNotFound

// TutorialFile represents the YAML structure for a tutorial
type TutorialFile struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Steps       []struct {
		ID         string `yaml:"id"`
		Title      string `yaml:"title"`
		Content    string `yaml:"content"`
		Code       string `yaml:"code"`
		Hint       string `yaml:"hint"`
		Difficulty string `yaml:"difficulty"`
	} `yaml:"steps"`
}

// Load parses every *.yaml file at the root of fsys, sorted by file name
func Load(fsys fs.FS) ([]*domain.Tutorial, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read tutorials directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	tutorials := make([]*domain.Tutorial, 0, len(names))
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read tutorial file %s: %w", name, err)
		}
		t, err := parse(data)
		if err != nil {
			return nil, fmt.Errorf("parse tutorial file %s: %w", name, err)
		}
		tutorials = append(tutorials, t)
	}
	return tutorials, nil
}

func parse(data []byte) (*domain.Tutorial, error) {
	var f TutorialFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if f.ID == "" {
		return nil, fmt.Errorf("missing id")
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("tutorial %s has no steps", f.ID)
	}

	t := &domain.Tutorial{
		ID:          f.ID,
		Title:       f.Title,
		Description: f.Description,
		Steps:       make([]domain.TutorialStep, len(f.Steps)),
	}
	for i, s := range f.Steps {
		difficulty := domain.Difficulty(s.Difficulty)
		if difficulty == "" {
			difficulty = domain.DifficultyBeginner
		}
		if !difficulty.Valid() {
			return nil, fmt.Errorf("step %s: unknown difficulty %q", s.ID, s.Difficulty)
		}
		t.Steps[i] = domain.TutorialStep{
			ID:         s.ID,
			Title:      s.Title,
			Content:    s.Content,
			Code:       s.Code,
			Hint:       s.Hint,
			Difficulty: difficulty,
		}
	}
	return t, nil
}

// Registry holds the loaded tutorials
type Registry struct {
	fsys      fs.FS
	mu        sync.RWMutex
	ordered   []*domain.Tutorial
	tutorials map[string]*domain.Tutorial
}

// NewRegistry creates a registry reading from fsys
func NewRegistry(fsys fs.FS) *Registry {
	return &Registry{
		fsys:      fsys,
		tutorials: make(map[string]*domain.Tutorial),
	}
}

// Load reads all tutorials into memory
func (r *Registry) Load() error {
	tutorials, err := Load(r.fsys)
	if err != nil {
		return err
	}

	index := make(map[string]*domain.Tutorial, len(tutorials))
	for _, t := range tutorials {
		index[t.ID] = t
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.ordered = tutorials
	r.tutorials = index
	return nil
}

// List returns all tutorials in load order
func (r *Registry) List() []*domain.Tutorial {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Tutorial, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Get returns a tutorial by ID
func (r *Registry) Get(id string) (*domain.Tutorial, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tutorials[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTutorialNotFound, id)
	}
	return t, nil
}

// Default returns the first tutorial, which the learn view shows
func (r *Registry) Default() (*domain.Tutorial, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.ordered) == 0 {
		return nil, fmt.Errorf("%w: no tutorials loaded", ErrTutorialNotFound)
	}
	return r.ordered[0], nil
}
