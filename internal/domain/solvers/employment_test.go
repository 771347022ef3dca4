package solvers_test

import (
	"context"
	"testing"

	"github.com/ersonp/register-graph/internal/domain/entities"
	"github.com/ersonp/register-graph/internal/domain/mocks"
	"github.com/ersonp/register-graph/internal/domain/ports"
	"github.com/ersonp/register-graph/internal/domain/services"
	"github.com/ersonp/register-graph/internal/domain/solvers"
	"github.com/ersonp/register-graph/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEmploymentSolver(t *testing.T, env solvers.Env) solvers.Solver {
	t.Helper()
	solver, err := solvers.New(entities.RelationEmployedBy, env)
	require.NoError(t, err)
	return solver
}

func TestEmploymentSolver_PrefersKnownAlias(t *testing.T) {
	store := services.NewEntityStore(logger.Nop())
	store.Upsert(entities.NewEntity(entities.TypePollster, "YouGov"))

	resolver := &fakeResolver{}
	solver := newEmploymentSolver(t, newEnv(store, resolver, nil))

	rel := &entities.Relationship{
		Source: "JOHN SMITH",
		Type:   entities.RelationEmployedBy,
		Target: entities.UnknownTarget,
		Text:   "Polling adviser to YouGov until further notice",
	}

	res, err := solver.Solve(context.Background(), rel)
	require.NoError(t, err)

	require.Len(t, res.Entities, 1)
	assert.Equal(t, "YOUGOV", res.Entities[0].Name)
	assert.Equal(t, entities.TypePollster, res.Entities[0].Type)
	assert.Empty(t, resolver.corporateQueries)
}

func TestEmploymentSolver_RegistrationNumberOutranksSearch(t *testing.T) {
	raw := "Consultant to Acme, registration 640531"
	resolver := &fakeResolver{
		byNumberText: map[string]*solvers.Resolution{
			raw: {
				Name:         "ACME HOLDINGS LIMITED",
				Registration: "00640531",
				Type:         entities.TypeCompany,
			},
		},
	}
	solver := newEmploymentSolver(t, newEnv(nil, resolver, nil))

	rel := &entities.Relationship{
		Source: "JOHN SMITH",
		Type:   entities.RelationEmployedBy,
		Target: entities.UnknownTarget,
		Text:   raw,
	}

	res, err := solver.Solve(context.Background(), rel)
	require.NoError(t, err)

	require.Len(t, res.Entities, 1)
	assert.Equal(t, "ACME HOLDINGS LIMITED", res.Entities[0].Name)
	assert.Equal(t, "00640531", res.Entities[0].CompanyRegistration)
	assert.Empty(t, resolver.corporateQueries)
	assert.Empty(t, resolver.charityQueries)
}

func TestEmploymentSolver_LexicalCueScopesTheSearch(t *testing.T) {
	resolver := &fakeResolver{
		charity: map[string]*solvers.Resolution{
			"Anytown University": {
				Name:         "THE UNIVERSITY OF ANYTOWN",
				Registration: "GB-EDU-133800",
				Type:         entities.TypeUniversity,
			},
		},
	}
	solver := newEmploymentSolver(t, newEnv(nil, resolver, nil))

	rel := &entities.Relationship{
		Source: "JOHN SMITH",
		Type:   entities.RelationEmployedBy,
		Target: entities.UnknownTarget,
		Text:   "Member, Anytown University",
	}

	res, err := solver.Solve(context.Background(), rel)
	require.NoError(t, err)

	require.Len(t, res.Entities, 1)
	assert.Equal(t, "THE UNIVERSITY OF ANYTOWN", res.Entities[0].Name)
	assert.Equal(t, entities.TypeUniversity, res.Entities[0].Type)
	assert.Equal(t, "GB-EDU-133800", res.Entities[0].CharityRegistration)
}

func TestEmploymentSolver_RecurringAmountFromLexicalCue(t *testing.T) {
	tagger := &mocks.EntityTagger{
		Spans: []ports.TaggedSpan{{Text: "£20,000", Label: ports.LabelMoney}},
	}
	solver := newEmploymentSolver(t, newEnv(nil, nil, tagger))

	rel := &entities.Relationship{
		Source: "JOHN SMITH",
		Type:   entities.RelationEmployedBy,
		Target: entities.UnknownTarget,
		Text:   "Advisory work, £20,000 per annum",
	}

	res, err := solver.Solve(context.Background(), rel)
	require.NoError(t, err)

	// The recurring cue overrides the tagged money value.
	assert.True(t, res.Amount.IsRecurring())
}

func TestEmploymentSolver_ProfessionFallback(t *testing.T) {
	solver := newEmploymentSolver(t, newEnv(nil, nil, nil))

	rel := &entities.Relationship{
		Source: "JOHN SMITH",
		Type:   entities.RelationEmployedBy,
		Target: entities.UnknownTarget,
		Text:   "Self-employed barrister",
	}

	res, err := solver.Solve(context.Background(), rel)
	require.NoError(t, err)

	require.Len(t, res.Entities, 1)
	assert.Equal(t, entities.TypeProfession, res.Entities[0].Type)
	assert.Equal(t, "BARRISTER", res.Entities[0].Name)
}
