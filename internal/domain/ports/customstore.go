package ports

import (
	"context"

	"github.com/ersonp/register-graph/internal/domain/entities"
)

// CustomStore persists manually supplied entities and per-run progress so
// a rerun neither re-asks the operator nor replays resolved records.
type CustomStore interface {
	// EnsureSchema creates the store schema if it doesn't exist.
	EnsureSchema(ctx context.Context) error

	// Close closes the store.
	Close() error

	// SaveCustomEntity saves or updates a manually supplied entity.
	SaveCustomEntity(ctx context.Context, entity *entities.Entity) error

	// FindCustomEntity finds a manually supplied entity by name and type.
	// Returns nil when absent.
	FindCustomEntity(ctx context.Context, name string, entityType entities.EntityType) (*entities.Entity, error)

	// ListCustomEntities returns every manually supplied entity.
	ListCustomEntities(ctx context.Context) ([]*entities.Entity, error)

	// SaveCheckpoint records the last fully processed record index for a run.
	SaveCheckpoint(ctx context.Context, runID string, recordIndex int) error

	// LastCheckpoint returns the last checkpointed record index for a run,
	// or -1 when the run has no checkpoint.
	LastCheckpoint(ctx context.Context, runID string) (int, error)
}
