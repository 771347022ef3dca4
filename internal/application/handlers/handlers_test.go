package handlers

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ersonp/register-graph/internal/domain/entities"
	"github.com/ersonp/register-graph/internal/domain/mocks"
	"github.com/ersonp/register-graph/internal/domain/services"
	"github.com/ersonp/register-graph/internal/infrastructure/logger"
	"github.com/ersonp/register-graph/internal/infrastructure/parsers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestResolveHandler_Handle(t *testing.T) {
	dir := t.TempDir()

	entitiesFile := writeFile(t, dir, "entities.csv", strings.Join([]string{
		"entity_type,name,aliases",
		"politician,JOHN SMITH,N/A",
		"company,ACME HOLDINGS LTD,acme",
	}, "\n"))
	relationshipsFile := writeFile(t, dir, "relationships.csv", strings.Join([]string{
		"source,relationship_type,target,date,amount,text,link,resolved",
		`JOHN SMITH,director_of,UNKNOWN,N/A,N/A,"Director, Acme Holdings Ltd",N/A,false`,
		`JOHN SMITH,member_of,UNKNOWN,N/A,N/A,Member of an unknown society,N/A,false`,
	}, "\n"))

	log := logger.Nop()
	store := services.NewEntityStore(log)
	resolver := services.NewResolverService(&mocks.CorporateRegistry{}, &mocks.CharityRegistry{}, &mocks.CompanyNumberLookup{}, log)
	pipeline := services.NewPipelineService(store, resolver, &mocks.EntityTagger{}, &mocks.AddressParser{}, nil, nil, nil, log)
	handler := NewResolveHandler(pipeline, store)

	result, err := handler.Handle(context.Background(), ResolveOptions{
		EntitiesFile:      entitiesFile,
		RelationshipsFile: relationshipsFile,
		OutputDir:         filepath.Join(dir, "out"),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 1, result.Resolved)
	assert.InDelta(t, 50.0, result.PercentResolved, 0.01)

	// The output files parse back under the same contract.
	outFile, err := os.Open(result.RelationshipsFile)
	require.NoError(t, err)
	defer outFile.Close()

	rels, err := parsers.ReadRelationships(outFile)
	require.NoError(t, err)
	require.Len(t, rels, 2)
	assert.Equal(t, "ACME HOLDINGS LTD", rels[0].Target)
	assert.True(t, rels[0].Resolved)
	assert.Equal(t, entities.UnknownTarget, rels[1].Target)
	assert.False(t, rels[1].Resolved)

	entFile, err := os.Open(result.EntitiesFile)
	require.NoError(t, err)
	defer entFile.Close()

	ents, err := parsers.ReadEntities(entFile)
	require.NoError(t, err)
	assert.Len(t, ents, 2)
}

func TestResolveHandler_Handle_MissingInput(t *testing.T) {
	store := services.NewEntityStore(logger.Nop())
	pipeline := services.NewPipelineService(store, nil, nil, nil, nil, nil, nil, logger.Nop())
	handler := NewResolveHandler(pipeline, store)

	_, err := handler.Handle(context.Background(), ResolveOptions{
		EntitiesFile:      "/nonexistent/entities.csv",
		RelationshipsFile: "/nonexistent/relationships.csv",
	})
	assert.Error(t, err)
}

// fakeGraphLoader records loads for LoadHandler tests.
type fakeGraphLoader struct {
	cleaned       bool
	entities      []*entities.Entity
	relationships []*entities.Relationship
}

func (f *fakeGraphLoader) Clean(_ context.Context) error { f.cleaned = true; return nil }

func (f *fakeGraphLoader) LoadEntities(_ context.Context, list []*entities.Entity) error {
	f.entities = list
	return nil
}

func (f *fakeGraphLoader) LoadRelationships(_ context.Context, list []*entities.Relationship) error {
	f.relationships = list
	return nil
}

func TestLoadHandler_Handle(t *testing.T) {
	dir := t.TempDir()

	entitiesFile := writeFile(t, dir, "entities.csv", strings.Join([]string{
		"entity_type,name,aliases",
		"politician,JOHN SMITH,N/A",
		"company,ACME HOLDINGS LTD,acme",
	}, "\n"))
	relationshipsFile := writeFile(t, dir, "relationships.csv", strings.Join([]string{
		"source,relationship_type,target,date,amount,text,link,resolved",
		`JOHN SMITH,director_of,ACME HOLDINGS LTD,N/A,N/A,"Director, Acme Holdings Ltd",N/A,true`,
	}, "\n"))

	loader := &fakeGraphLoader{}
	handler := NewLoadHandler(loader)

	result, err := handler.Handle(context.Background(), LoadOptions{
		EntitiesFile:      entitiesFile,
		RelationshipsFile: relationshipsFile,
		Clean:             true,
	})
	require.NoError(t, err)

	assert.True(t, loader.cleaned)
	assert.Equal(t, 2, result.Entities)
	assert.Equal(t, 1, result.Relationships)
	require.Len(t, loader.entities, 2)
	require.Len(t, loader.relationships, 1)
}

func TestLoadHandler_Handle_NoClean(t *testing.T) {
	dir := t.TempDir()

	entitiesFile := writeFile(t, dir, "entities.csv", "entity_type,name\ncompany,ACME LTD\n")
	relationshipsFile := writeFile(t, dir, "relationships.csv",
		"source,relationship_type,target,text\nJOHN SMITH,director_of,ACME LTD,Director\n")

	loader := &fakeGraphLoader{}
	_, err := NewLoadHandler(loader).Handle(context.Background(), LoadOptions{
		EntitiesFile:      entitiesFile,
		RelationshipsFile: relationshipsFile,
	})
	require.NoError(t, err)
	assert.False(t, loader.cleaned)
}
