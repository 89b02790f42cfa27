package profile

import (
	"context"

	"github.com/felixgeelhaar/codelearn/internal/domain"
)

// ActivityStore defines the persistence interface for the activity log.
// The memory, file and SQLite stores implement this.
type ActivityStore interface {
	Append(ctx context.Context, a domain.Activity) error
	Recent(ctx context.Context, limit int) ([]domain.Activity, error)
	Overview(ctx context.Context) (domain.ActivityOverview, error)
}

var (
	_ ActivityStore = (*MemoryStore)(nil)
	_ ActivityStore = (*FileStore)(nil)
)
