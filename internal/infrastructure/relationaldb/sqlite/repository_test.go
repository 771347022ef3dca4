package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/ersonp/register-graph/internal/domain/entities"
	"github.com/ersonp/register-graph/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(config.SQLiteConfig{
		Path: filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	require.NoError(t, repo.EnsureSchema(context.Background()))
	return repo
}

func TestNewRepository_RequiresPath(t *testing.T) {
	_, err := NewRepository(config.SQLiteConfig{})
	assert.Error(t, err)
}

func TestRepository_SaveAndFindCustomEntity(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	entity := entities.NewEntity(entities.TypeAssociation, "Anytown Rotary Club", "rotary")
	entity.Address = "1 Club Lane"
	require.NoError(t, repo.SaveCustomEntity(ctx, entity))

	found, err := repo.FindCustomEntity(ctx, "ANYTOWN ROTARY CLUB", entities.TypeAssociation)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "ANYTOWN ROTARY CLUB", found.Name)
	assert.Equal(t, "1 Club Lane", found.Address)
	assert.True(t, found.HasAlias("rotary"))

	// Absent entities come back nil, not as an error.
	missing, err := repo.FindCustomEntity(ctx, "NOBODY", entities.TypeAssociation)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRepository_SaveCustomEntity_Upserts(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	first := entities.NewEntity(entities.TypeCompany, "Acme Ltd")
	require.NoError(t, repo.SaveCustomEntity(ctx, first))

	second := entities.NewEntity(entities.TypeCompany, "Acme Ltd", "acme holdings")
	require.NoError(t, repo.SaveCustomEntity(ctx, second))

	list, err := repo.ListCustomEntities(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].HasAlias("acme holdings"))
}

func TestRepository_ListCustomEntities(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveCustomEntity(ctx, entities.NewEntity(entities.TypeCompany, "Acme Ltd")))
	require.NoError(t, repo.SaveCustomEntity(ctx, entities.NewEntity(entities.TypeCharity, "Shelter")))

	list, err := repo.ListCustomEntities(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestRepository_Checkpoints(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	// A run with no checkpoint reports -1.
	last, err := repo.LastCheckpoint(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, -1, last)

	require.NoError(t, repo.SaveCheckpoint(ctx, "run-1", 0))
	require.NoError(t, repo.SaveCheckpoint(ctx, "run-1", 41))

	last, err = repo.LastCheckpoint(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, 41, last)

	// Runs are isolated from each other.
	last, err = repo.LastCheckpoint(ctx, "run-2")
	require.NoError(t, err)
	assert.Equal(t, -1, last)
}

func TestRepository_EnsureSchema_Idempotent(t *testing.T) {
	repo := newTestRepository(t)
	assert.NoError(t, repo.EnsureSchema(context.Background()))
}
