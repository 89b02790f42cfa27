package profile

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/felixgeelhaar/codelearn/internal/domain"
	"github.com/felixgeelhaar/codelearn/internal/storage/local"
)

const activityLog = "activity"

// MemoryStore keeps the activity log in process memory
type MemoryStore struct {
	mu      sync.RWMutex
	entries []domain.Activity
}

// NewMemoryStore creates an empty in-memory activity log
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Append adds an entry
func (s *MemoryStore) Append(ctx context.Context, a domain.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, a)
	return nil
}

// Recent returns up to limit entries, newest first
func (s *MemoryStore) Recent(ctx context.Context, limit int) ([]domain.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return newestFirst(s.entries, limit), nil
}

// Overview aggregates every entry
func (s *MemoryStore) Overview(ctx context.Context) (domain.ActivityOverview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var o domain.ActivityOverview
	for _, a := range s.entries {
		o.Add(a)
	}
	return o, nil
}

// FileStore keeps the activity log as JSON lines in a local store
type FileStore struct {
	store *local.Store
}

// NewFileStore creates an activity log under basePath
func NewFileStore(basePath string) (*FileStore, error) {
	store, err := local.NewStore(basePath)
	if err != nil {
		return nil, err
	}
	return &FileStore{store: store}, nil
}

// Append adds an entry
func (s *FileStore) Append(ctx context.Context, a domain.Activity) error {
	return s.store.Append(activityLog, a)
}

func (s *FileStore) all() ([]domain.Activity, error) {
	var out []domain.Activity
	err := s.store.Scan(activityLog, func(raw json.RawMessage) error {
		var a domain.Activity
		if err := json.Unmarshal(raw, &a); err != nil {
			return err
		}
		out = append(out, a)
		return nil
	})
	return out, err
}

// Recent returns up to limit entries, newest first
func (s *FileStore) Recent(ctx context.Context, limit int) ([]domain.Activity, error) {
	all, err := s.all()
	if err != nil {
		return nil, err
	}
	return newestFirst(all, limit), nil
}

// Overview aggregates every entry
func (s *FileStore) Overview(ctx context.Context) (domain.ActivityOverview, error) {
	all, err := s.all()
	if err != nil {
		return domain.ActivityOverview{}, err
	}
	var o domain.ActivityOverview
	for _, a := range all {
		o.Add(a)
	}
	return o, nil
}

func newestFirst(entries []domain.Activity, limit int) []domain.Activity {
	if limit <= 0 || limit > len(entries) {
		limit = len(entries)
	}
	out := make([]domain.Activity, 0, limit)
	for i := len(entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, entries[i])
	}
	return out
}
