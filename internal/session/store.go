package session

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/felixgeelhaar/codelearn/internal/storage/local"
)

const collectionSessions = "sessions"

var ErrNotFound = errors.New("session not found")

// MemoryStore keeps sessions in process memory. Stored values are copies.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]Session)}
}

// Save persists a session
func (s *MemoryStore) Save(session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = *session
	return nil
}

// Get retrieves a session by ID
func (s *MemoryStore) Get(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &session, nil
}

// Delete removes a session
func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(s.sessions, id)
	return nil
}

// List returns all sessions, oldest first
func (s *MemoryStore) List() ([]*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		session := session
		out = append(out, &session)
	}
	sortByCreated(out)
	return out, nil
}

// FileStore persists sessions as JSON documents
type FileStore struct {
	store *local.Store
}

// NewFileStore creates a new session store under basePath
func NewFileStore(basePath string) (*FileStore, error) {
	store, err := local.NewStore(basePath)
	if err != nil {
		return nil, fmt.Errorf("create local store: %w", err)
	}
	return &FileStore{store: store}, nil
}

// Save persists a session
func (s *FileStore) Save(session *Session) error {
	return s.store.Save(collectionSessions, session.ID, session)
}

// Get retrieves a session by ID
func (s *FileStore) Get(id string) (*Session, error) {
	var session Session
	if err := s.store.Load(collectionSessions, id, &session); err != nil {
		if errors.Is(err, local.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// Delete removes a session
func (s *FileStore) Delete(id string) error {
	if err := s.store.Delete(collectionSessions, id); err != nil {
		if errors.Is(err, local.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// List returns all sessions, oldest first
func (s *FileStore) List() ([]*Session, error) {
	ids, err := s.store.List(collectionSessions)
	if err != nil {
		return nil, err
	}

	out := make([]*Session, 0, len(ids))
	for _, id := range ids {
		session, err := s.Get(id)
		if err != nil {
			continue
		}
		out = append(out, session)
	}
	sortByCreated(out)
	return out, nil
}

func sortByCreated(sessions []*Session) {
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})
}
