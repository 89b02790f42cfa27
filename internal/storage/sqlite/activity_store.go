package sqlite

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/codelearn/internal/domain"
)

// ActivityStore implements the activity log backed by SQLite.
type ActivityStore struct {
	db *DB
}

// NewActivityStore creates a new SQLite-backed activity store.
func NewActivityStore(db *DB) *ActivityStore {
	return &ActivityStore{db: db}
}

// Append inserts an activity entry.
func (s *ActivityStore) Append(ctx context.Context, a domain.Activity) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO activities (id, session_id, kind, title, points, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, a.SessionID, string(a.Kind), a.Title, a.Points, a.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first. A non-positive limit
// returns everything.
func (s *ActivityStore) Recent(ctx context.Context, limit int) ([]domain.Activity, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, kind, title, points, created_at
		FROM activities ORDER BY seq DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query activities: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Activity, 0)
	for rows.Next() {
		var (
			a    domain.Activity
			kind string
		)
		if err := rows.Scan(&a.ID, &a.SessionID, &kind, &a.Title, &a.Points, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		a.Kind = domain.ActivityKind(kind)
		out = append(out, a)
	}
	return out, rows.Err()
}

// Overview aggregates the whole log.
func (s *ActivityStore) Overview(ctx context.Context) (domain.ActivityOverview, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT kind, COUNT(*), COALESCE(SUM(points), 0)
		FROM activities GROUP BY kind`)
	if err != nil {
		return domain.ActivityOverview{}, fmt.Errorf("query overview: %w", err)
	}
	defer rows.Close()

	var o domain.ActivityOverview
	for rows.Next() {
		var (
			kind          string
			count, points int
		)
		if err := rows.Scan(&kind, &count, &points); err != nil {
			return domain.ActivityOverview{}, fmt.Errorf("scan overview: %w", err)
		}
		o.TotalPoints += points
		switch domain.ActivityKind(kind) {
		case domain.ActivityLesson:
			o.Lessons = count
		case domain.ActivityExercise:
			o.Exercises = count
		case domain.ActivityChallenge:
			o.Challenges = count
		case domain.ActivityRun:
			o.Runs = count
		}
	}
	return o, rows.Err()
}
