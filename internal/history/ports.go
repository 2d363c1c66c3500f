package history

import (
	"context"
	"time"
)

const (
	DefaultSource = "webapp"
	DefaultPage   = "dashboard"

	// RetentionWindow bounds how long a turn stays readable. Reads
	// apply the cutoff themselves so expiry holds between purges.
	RetentionWindow = 48 * time.Hour

	DefaultLimit = 50
	MaxLimit     = 100
)

// Turn is one persisted query/response pair. Immutable once created.
type Turn struct {
	ID        string    `json:"_id"`
	UserID    string    `json:"userId"`
	Query     string    `json:"query"`
	Response  string    `json:"response"`
	Source    string    `json:"source"`
	Page      string    `json:"page"`
	CreatedAt time.Time `json:"createdAt"`
}

// Repo is the persistence port for conversation turns.
type Repo interface {
	Save(ctx context.Context, turn *Turn) error
	// List returns up to limit turns strictly older than before, in
	// chronological (oldest-first) order within the returned page.
	List(ctx context.Context, userID string, limit int, before time.Time) ([]Turn, error)
	DeleteAll(ctx context.Context, userID string) (int64, error)
	Count(ctx context.Context, userID string) (int64, error)
	PurgeExpired(ctx context.Context) (int64, error)
}

// Service applies the request-level rules (limit clamping, metadata
// defaults) on top of the repo.
type Service interface {
	Save(ctx context.Context, userID, query, response string, metadata map[string]any) (*Turn, error)
	List(ctx context.Context, userID string, limit int, before time.Time) ([]Turn, error)
	DeleteAll(ctx context.Context, userID string) (int64, error)
	Count(ctx context.Context, userID string) (int64, error)
}
