// Package sqlite provides a SQLite implementation of the CustomStore
// interface. Manually supplied entities and run checkpoints live here so
// they survive reruns.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ersonp/register-graph/internal/domain/entities"
	"github.com/ersonp/register-graph/internal/infrastructure/config"
	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Repository implements ports.CustomStore using SQLite.
type Repository struct {
	db   *sql.DB
	path string
}

// NewRepository creates a new SQLite repository.
func NewRepository(cfg config.SQLiteConfig) (*Repository, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path is required")
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// Enable WAL mode for better concurrent read/write performance
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Set busy timeout to avoid "database is locked" errors
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	return &Repository{
		db:   db,
		path: cfg.Path,
	}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Path returns the database file path.
func (r *Repository) Path() string {
	return r.path
}

// EnsureSchema creates the database schema if it doesn't exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	schema := `
	-- Manually supplied entities (survive reruns)
	CREATE TABLE IF NOT EXISTS custom_entities (
		id TEXT PRIMARY KEY,
		entity_type TEXT NOT NULL,
		name TEXT NOT NULL,
		data TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(entity_type, name)
	);
	CREATE INDEX IF NOT EXISTS idx_custom_entities_name ON custom_entities(name);

	-- Per-run progress markers
	CREATE TABLE IF NOT EXISTS checkpoints (
		run_id TEXT PRIMARY KEY,
		record_index INTEGER NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`

	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// SaveCustomEntity saves or updates a manually supplied entity. The full
// entity is stored as JSON alongside the (type, name) key.
func (r *Repository) SaveCustomEntity(ctx context.Context, entity *entities.Entity) error {
	data, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("encoding entity %s: %w", entity.Name, err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO custom_entities (id, entity_type, name, data)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(entity_type, name) DO UPDATE SET data = excluded.data`,
		uuid.New().String(), string(entity.Type), entity.Name, string(data),
	)
	if err != nil {
		return fmt.Errorf("saving custom entity %s: %w", entity.Name, err)
	}
	return nil
}

// FindCustomEntity finds a manually supplied entity by name and type.
// Returns nil when absent.
func (r *Repository) FindCustomEntity(ctx context.Context, name string, entityType entities.EntityType) (*entities.Entity, error) {
	var data string
	err := r.db.QueryRowContext(ctx, `
		SELECT data FROM custom_entities WHERE entity_type = ? AND name = ?`,
		string(entityType), entities.CanonicalName(name),
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding custom entity %s: %w", name, err)
	}
	return decodeEntity(data)
}

// ListCustomEntities returns every manually supplied entity in insertion
// order.
func (r *Repository) ListCustomEntities(ctx context.Context) ([]*entities.Entity, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT data FROM custom_entities ORDER BY created_at, name`)
	if err != nil {
		return nil, fmt.Errorf("listing custom entities: %w", err)
	}
	defer rows.Close()

	var out []*entities.Entity
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scanning custom entity: %w", err)
		}
		entity, err := decodeEntity(data)
		if err != nil {
			return nil, err
		}
		out = append(out, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating custom entities: %w", err)
	}
	return out, nil
}

// SaveCheckpoint records the last fully processed record index for a run.
func (r *Repository) SaveCheckpoint(ctx context.Context, runID string, recordIndex int) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO checkpoints (run_id, record_index, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(run_id) DO UPDATE SET
			record_index = excluded.record_index,
			updated_at = excluded.updated_at`,
		runID, recordIndex,
	)
	if err != nil {
		return fmt.Errorf("saving checkpoint for run %s: %w", runID, err)
	}
	return nil
}

// LastCheckpoint returns the last checkpointed record index for a run, or
// -1 when the run has no checkpoint.
func (r *Repository) LastCheckpoint(ctx context.Context, runID string) (int, error) {
	var index int
	err := r.db.QueryRowContext(ctx, `
		SELECT record_index FROM checkpoints WHERE run_id = ?`, runID,
	).Scan(&index)
	if errors.Is(err, sql.ErrNoRows) {
		return -1, nil
	}
	if err != nil {
		return -1, fmt.Errorf("reading checkpoint for run %s: %w", runID, err)
	}
	return index, nil
}

func decodeEntity(data string) (*entities.Entity, error) {
	var entity entities.Entity
	if err := json.Unmarshal([]byte(data), &entity); err != nil {
		return nil, fmt.Errorf("decoding custom entity: %w", err)
	}
	return &entity, nil
}
