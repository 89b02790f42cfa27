package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/codelearn/internal/session"
	"github.com/felixgeelhaar/codelearn/internal/workbench"
)

// SessionStore implements session persistence backed by SQLite.
type SessionStore struct {
	db *DB
}

// NewSessionStore creates a new SQLite-backed session store.
func NewSessionStore(db *DB) *SessionStore {
	return &SessionStore{db: db}
}

// Save persists a session (insert or update).
func (s *SessionStore) Save(sess *session.Session) error {
	state, err := json.Marshal(sess.State)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO sessions (id, view, exercise_id, state, run_count, last_run_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			view=excluded.view, exercise_id=excluded.exercise_id,
			state=excluded.state, run_count=excluded.run_count,
			last_run_at=excluded.last_run_at, updated_at=excluded.updated_at`,
		sess.ID, string(sess.State.View), sess.State.ExerciseID, string(state),
		sess.RunCount, nullTime(sess.LastRunAt),
		sess.CreatedAt.UTC(), sess.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

// Get retrieves a session by ID.
func (s *SessionStore) Get(id string) (*session.Session, error) {
	row := s.db.QueryRow(`
		SELECT id, state, run_count, last_run_at, created_at, updated_at
		FROM sessions WHERE id = ?`, id)
	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, session.ErrNotFound
	}
	return sess, err
}

// Delete removes a session.
func (s *SessionStore) Delete(id string) error {
	result, err := s.db.Exec("DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return session.ErrNotFound
	}
	return nil
}

// List returns all sessions, oldest first.
func (s *SessionStore) List() ([]*session.Session, error) {
	rows, err := s.db.Query(`
		SELECT id, state, run_count, last_run_at, created_at, updated_at
		FROM sessions ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []*session.Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sess)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (*session.Session, error) {
	var (
		sess      session.Session
		state     string
		lastRunAt sql.NullTime
	)
	if err := row.Scan(&sess.ID, &state, &sess.RunCount, &lastRunAt, &sess.CreatedAt, &sess.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan session: %w", err)
	}

	var st workbench.State
	if err := json.Unmarshal([]byte(state), &st); err != nil {
		return nil, fmt.Errorf("unmarshal state: %w", err)
	}
	sess.State = st
	if lastRunAt.Valid {
		t := lastRunAt.Time
		sess.LastRunAt = &t
	}
	return &sess, nil
}

// nullTime converts a *time.Time to sql.NullTime.
func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
