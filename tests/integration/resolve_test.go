package integration

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ersonp/register-graph/internal/application/handlers"
	"github.com/ersonp/register-graph/internal/domain/entities"
	"github.com/ersonp/register-graph/internal/domain/mocks"
	"github.com/ersonp/register-graph/internal/domain/ports"
	"github.com/ersonp/register-graph/internal/domain/services"
	"github.com/ersonp/register-graph/internal/infrastructure/config"
	"github.com/ersonp/register-graph/internal/infrastructure/logger"
	"github.com/ersonp/register-graph/internal/infrastructure/parsers"
	"github.com/ersonp/register-graph/internal/infrastructure/postal"
	"github.com/ersonp/register-graph/internal/infrastructure/relationaldb/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestResolveEndToEnd drives a full resolution run through the handler
// layer: CSV inputs, a live SQLite custom store, mocked registries and
// tagger, CSV outputs.
func TestResolveEndToEnd(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	entitiesFile := filepath.Join(dir, "entities.csv")
	require.NoError(t, os.WriteFile(entitiesFile, []byte(strings.Join([]string{
		"entity_type,name,aliases",
		"politician,JOHN SMITH,N/A",
		"company,ACME HOLDINGS LTD,acme holdings",
		"political_party,LABOUR PARTY,N/A",
	}, "\n")), 0o644))

	relationshipsFile := filepath.Join(dir, "relationships.csv")
	require.NoError(t, os.WriteFile(relationshipsFile, []byte(strings.Join([]string{
		"source,relationship_type,target,date,amount,text,link,resolved",
		`JOHN SMITH,director_of,UNKNOWN,N/A,N/A,"Director, Acme Holdings Ltd (until March 2019)",N/A,false`,
		`JOHN SMITH,member_of,UNKNOWN,N/A,N/A,Member of the Labour Party,N/A,false`,
		`JOHN SMITH,gift_from,UNKNOWN,N/A,N/A,"[""Name: Jane Doe"", ""Amount: £500"", ""Status: individual""]",N/A,false`,
		`JOHN SMITH,owner_of,UNKNOWN,N/A,N/A,Two flats in London: (i) and (ii),N/A,false`,
		`JOHN SMITH,employed_by,UNKNOWN,N/A,N/A,Consultancy engagement with Mystery Engagements Ltd,N/A,false`,
	}, "\n")), 0o644))

	repo, err := sqlite.NewRepository(config.SQLiteConfig{Path: filepath.Join(dir, "custom.db")})
	require.NoError(t, err)
	defer repo.Close()
	require.NoError(t, repo.EnsureSchema(ctx))

	tagger := &mocks.EntityTagger{
		ByText: map[string][]ports.TaggedSpan{
			"£500": {{Text: "£500", Label: ports.LabelMoney}},
		},
	}
	callback := &mocks.UnresolvedCallback{
		Entity: entities.NewEntity(entities.TypeCompany, "Mystery Engagements Ltd"),
	}

	log := logger.Nop()
	store := services.NewEntityStore(log)
	resolver := services.NewResolverService(&mocks.CorporateRegistry{}, &mocks.CharityRegistry{}, &mocks.CompanyNumberLookup{}, log)
	pipeline := services.NewPipelineService(store, resolver, tagger, postal.New(), callback, repo, nil, log)
	handler := handlers.NewResolveHandler(pipeline, store)

	result, err := handler.Handle(ctx, handlers.ResolveOptions{
		EntitiesFile:      entitiesFile,
		RelationshipsFile: relationshipsFile,
		OutputDir:         filepath.Join(dir, "out"),
		RunID:             "integration-run",
	})
	require.NoError(t, err)

	assert.Equal(t, 5, result.Total)
	assert.Equal(t, 5, result.Resolved)
	assert.Equal(t, 1, result.CustomEntities)
	assert.Equal(t, 1, callback.Calls)

	outFile, err := os.Open(result.RelationshipsFile)
	require.NoError(t, err)
	defer outFile.Close()

	rels, err := parsers.ReadRelationships(outFile)
	require.NoError(t, err)

	// The two-flat property record fans out to two outputs.
	require.Len(t, rels, 6)
	assert.Equal(t, "ACME HOLDINGS LTD", rels[0].Target)
	assert.Equal(t, "LABOUR PARTY", rels[1].Target)
	assert.Equal(t, "JANE DOE", rels[2].Target)
	assert.Equal(t, entities.NewAmount(500), rels[2].Amount)
	assert.Equal(t, "PROPERTY", rels[3].Target)
	assert.Equal(t, "PROPERTY", rels[4].Target)
	assert.Equal(t, entities.NewAmount(10000), rels[3].Amount)
	assert.Equal(t, "MYSTERY ENGAGEMENTS LTD", rels[5].Target)
	for _, rel := range rels {
		assert.True(t, rel.Resolved, rel.Text)
	}

	// The manual entity survived into the durable store.
	saved, err := repo.FindCustomEntity(ctx, "MYSTERY ENGAGEMENTS LTD", entities.TypeCompany)
	require.NoError(t, err)
	require.NotNil(t, saved)

	// A rerun never re-asks the operator for it.
	store2 := services.NewEntityStore(log)
	callback2 := &mocks.UnresolvedCallback{}
	pipeline2 := services.NewPipelineService(store2, resolver, tagger, postal.New(), callback2, repo, nil, log)
	handler2 := handlers.NewResolveHandler(pipeline2, store2)

	result2, err := handler2.Handle(ctx, handlers.ResolveOptions{
		EntitiesFile:      entitiesFile,
		RelationshipsFile: relationshipsFile,
		OutputDir:         filepath.Join(dir, "out2"),
		RunID:             "integration-rerun",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, result2.Resolved)
	assert.Equal(t, 0, callback2.Calls)

	last, err := repo.LastCheckpoint(ctx, "integration-run")
	require.NoError(t, err)
	assert.Equal(t, 4, last)
}
