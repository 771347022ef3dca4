// Package solvers implements the per-relationship-type resolution
// strategies. Each solver owns the full recipe for turning one disclosure
// record into zero or more canonical entities plus date and amount
// metadata, composing the text cleanup primitives, the alias index, the
// registry resolvers and the entity tagger.
package solvers

import (
	"context"
	"fmt"

	"github.com/ersonp/register-graph/internal/domain/entities"
	"github.com/ersonp/register-graph/internal/domain/ports"
	"github.com/ersonp/register-graph/internal/infrastructure/logger"
)

// Resolution is a registry-backed canonical entity candidate.
type Resolution struct {
	Name         string
	Registration string
	Type         entities.EntityType
}

// AliasIndex looks up entities of the accumulated set by alias occurrence
// in free text.
type AliasIndex interface {
	// FindAlias returns the canonical name of the first entity whose alias
	// occurs in the query text, restricted to candidateTypes, preferring
	// preferredTypes when given. Returns "" for no match.
	FindAlias(query string, candidateTypes, preferredTypes []entities.EntityType) string

	// FindAliasEntity is FindAlias returning the full entity.
	FindAliasEntity(query string, candidateTypes, preferredTypes []entities.EntityType) *entities.Entity
}

// EntityResolver is the layered registry lookup cascade.
type EntityResolver interface {
	// ResolveByRegistrationNumber resolves a registration number embedded
	// in the text directly against the company register.
	ResolveByRegistrationNumber(ctx context.Context, text string) (*Resolution, error)

	// ResolveCharityLike fuzzy-reconciles against the charity / university /
	// local-authority / government registry scoped by category.
	ResolveCharityLike(ctx context.Context, text, category string) (*Resolution, error)

	// ResolveCorporate fuzzy-reconciles against the company registry.
	ResolveCorporate(ctx context.Context, text string) (*Resolution, error)

	// ResolveOrganisation is the wide-net fallback: charity-like across all
	// categories, then corporate.
	ResolveOrganisation(ctx context.Context, text string) (*Resolution, error)
}

// SiblingIndex consults already-emitted relationships of the same source
// and type, used to infer recurring-payment continuity.
type SiblingIndex interface {
	// RecurringSiblingTarget returns the resolved target of a sibling
	// relationship whose amount is the recurring sentinel, or "".
	RecurringSiblingTarget(source string, relType entities.RelationshipType) string
}

// Env bundles the collaborators a solver needs. The pipeline constructs
// one per run; solvers only read through it.
type Env struct {
	Aliases   AliasIndex
	Resolver  EntityResolver
	Tagger    ports.EntityTagger
	Addresses ports.AddressParser
	Siblings  SiblingIndex
	Log       *logger.Logger
}

// Result is what a solver extracts from one record.
type Result struct {
	Entities []*entities.Entity
	Date     string
	Amount   entities.Amount
}

// Solver resolves one disclosure record. Instances are single-shot: the
// pipeline constructs one per record via New.
type Solver interface {
	Solve(ctx context.Context, rel *entities.Relationship) (*Result, error)
}

// New returns the solver bound to the relationship type. The switch is
// exhaustive over the taxonomy; an unknown type is an error the pipeline
// downgrades to a warn-and-skip.
func New(relType entities.RelationshipType, env Env) (Solver, error) {
	switch relType {
	case entities.RelationMemberOf:
		return &membershipSolver{env: env}, nil
	case entities.RelationDirectorOf:
		return &directorshipSolver{env: env}, nil
	case entities.RelationShareholderOf:
		return &shareholderSolver{env: env}, nil
	case entities.RelationSignificantControl:
		return &significantControlSolver{env: env}, nil
	case entities.RelationEmployedBy:
		return &employmentSolver{env: env}, nil
	case entities.RelationSponsoredBy:
		return &sponsorshipSolver{env: env}, nil
	case entities.RelationDonationFrom:
		return &compoundSolver{env: env, relType: entities.RelationDonationFrom}, nil
	case entities.RelationGiftFrom:
		return &compoundSolver{env: env, relType: entities.RelationGiftFrom}, nil
	case entities.RelationVisited:
		return &compoundSolver{env: env, relType: entities.RelationVisited}, nil
	case entities.RelationOwnerOf:
		return &propertyOwnerSolver{env: env}, nil
	case entities.RelationRelatedTo:
		return &relationSolver{env: env}, nil
	case entities.RelationMiscellaneous:
		return &miscellaneousSolver{env: env}, nil
	default:
		return nil, fmt.Errorf("no solver for relationship type %q", relType)
	}
}
