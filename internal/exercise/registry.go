package exercise

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/felixgeelhaar/codelearn/internal/domain"
)

// ErrExerciseNotFound is returned when an exercise ID is unknown
var ErrExerciseNotFound = domain.ErrExerciseNotFound

// Registry provides ordered, read-only access to the exercise catalogue
type Registry struct {
	loader    *Loader
	mu        sync.RWMutex
	pack      *Pack
	ordered   []*domain.Exercise
	exercises map[string]*domain.Exercise
	loaded    bool
}

// NewRegistry creates a new exercise registry
func NewRegistry(loader *Loader) *Registry {
	return &Registry{
		loader:    loader,
		exercises: make(map[string]*domain.Exercise),
	}
}

// Load loads the pack and its exercises into memory
func (r *Registry) Load() error {
	pack, exercises, err := r.loader.LoadAll()
	if err != nil {
		return fmt.Errorf("load exercises: %w", err)
	}

	index := make(map[string]*domain.Exercise, len(exercises))
	for _, ex := range exercises {
		if _, dup := index[ex.ID]; dup {
			return fmt.Errorf("duplicate exercise id %q", ex.ID)
		}
		index[ex.ID] = ex
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.pack = pack
	r.ordered = exercises
	r.exercises = index
	r.loaded = true
	return nil
}

// Reload reloads all exercises (useful when editing fixture files)
func (r *Registry) Reload() error {
	r.mu.Lock()
	r.loaded = false
	r.mu.Unlock()

	return r.Load()
}

// Pack returns the loaded pack manifest, or nil before Load
func (r *Registry) Pack() *Pack {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.pack
}

// GetExercise returns an exercise by ID
func (r *Registry) GetExercise(id string) (*domain.Exercise, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exercise, ok := r.exercises[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrExerciseNotFound, id)
	}
	return exercise, nil
}

// ListExercises returns the exercises matching filter, in catalogue order
func (r *Registry) ListExercises(filter domain.ExerciseFilter) []*domain.Exercise {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exercises := make([]*domain.Exercise, 0, len(r.ordered))
	for _, ex := range r.ordered {
		if filter.Matches(ex) {
			exercises = append(exercises, ex)
		}
	}
	return exercises
}

// Topics returns the distinct topics in first-seen order
func (r *Registry) Topics() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	topics := make([]string, 0)
	for _, ex := range r.ordered {
		if !seen[ex.Topic] {
			seen[ex.Topic] = true
			topics = append(topics, ex.Topic)
		}
	}
	return topics
}

// Random picks an exercise from the filtered set. When the filter matches
// nothing it picks from the whole catalogue.
func (r *Registry) Random(filter domain.ExerciseFilter) (*domain.Exercise, error) {
	candidates := r.ListExercises(filter)
	if len(candidates) == 0 {
		candidates = r.ListExercises(domain.ExerciseFilter{})
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: catalogue is empty", ErrExerciseNotFound)
	}
	return candidates[rand.IntN(len(candidates))], nil
}

// RegistryStats contains registry statistics
type RegistryStats struct {
	ExerciseCount int
	TopicCount    int
	ByDifficulty  map[domain.Difficulty]int
	TotalPoints   int
}

// Stats returns registry statistics
func (r *Registry) Stats() RegistryStats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := RegistryStats{
		ExerciseCount: len(r.ordered),
		ByDifficulty:  make(map[domain.Difficulty]int),
	}
	topics := make(map[string]bool)
	for _, ex := range r.ordered {
		stats.ByDifficulty[ex.Difficulty]++
		stats.TotalPoints += ex.Points
		topics[ex.Topic] = true
	}
	stats.TopicCount = len(topics)
	return stats
}
