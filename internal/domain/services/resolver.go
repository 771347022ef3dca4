package services

import (
	"context"
	"fmt"

	"github.com/ersonp/register-graph/internal/domain/entities"
	"github.com/ersonp/register-graph/internal/domain/ports"
	"github.com/ersonp/register-graph/internal/domain/solvers"
	"github.com/ersonp/register-graph/internal/domain/text"
	"github.com/ersonp/register-graph/internal/infrastructure/logger"
)

// Registry score thresholds. The two registries score on different
// scales, so each gets its own acceptance bar.
const (
	charityScoreThreshold   = 85.0
	corporateScoreThreshold = 60.0
)

// charityCategoryTypes maps registry categories onto the entity taxonomy.
var charityCategoryTypes = map[string]entities.EntityType{
	"registered-charity":      entities.TypeCharity,
	"university":              entities.TypeUniversity,
	"education":               entities.TypeEducation,
	"local-authority":         entities.TypeLocalAuthority,
	"health":                  entities.TypeHealthBody,
	"government":              entities.TypeGovernment,
	"government-organisation": entities.TypeGovernmentBody,
}

// ResolverService is the layered registry lookup cascade: deterministic
// number lookup, charity-like reconciliation, corporate reconciliation.
// A reconciliation candidate is accepted only when its score clears the
// per-registry threshold and its name survives the similarity policy;
// near-misses are logged for audit and never auto-accepted.
type ResolverService struct {
	corporate CorporateRegistry
	charity   CharityRegistry
	numbers   CompanyNumberLookup
	log       *logger.Logger
}

// Aliases for the port interfaces keep the constructor signature readable.
type (
	CorporateRegistry   = ports.CorporateRegistry
	CharityRegistry     = ports.CharityRegistry
	CompanyNumberLookup = ports.CompanyNumberLookup
)

// NewResolverService creates a new ResolverService.
func NewResolverService(
	corporate CorporateRegistry,
	charity CharityRegistry,
	numbers CompanyNumberLookup,
	log *logger.Logger,
) *ResolverService {
	return &ResolverService{
		corporate: corporate,
		charity:   charity,
		numbers:   numbers,
		log:       log,
	}
}

// ResolveByRegistrationNumber extracts a company registration number from
// the text and resolves it directly against the company register. Returns
// nil with no error when the text carries no plausible number.
func (s *ResolverService) ResolveByRegistrationNumber(ctx context.Context, raw string) (*solvers.Resolution, error) {
	number := text.ExtractRegistrationNumber(raw)
	if number == "" {
		return nil, nil
	}
	name, err := s.numbers.LookupByNumber(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("looking up company number %s: %w", number, err)
	}
	if name == "" {
		return nil, nil
	}
	return &solvers.Resolution{
		Name:         name,
		Registration: number,
		Type:         entities.TypeCompany,
	}, nil
}

// ResolveCharityLike fuzzy-reconciles against the charity-like registry
// scoped by category.
func (s *ResolverService) ResolveCharityLike(ctx context.Context, query, category string) (*solvers.Resolution, error) {
	matches, err := s.charity.ReconcileByName(ctx, query, category)
	if err != nil {
		return nil, fmt.Errorf("reconciling %q against charity registry: %w", query, err)
	}
	for _, match := range matches {
		if match.Score < charityScoreThreshold {
			continue
		}
		if !NamesSimilar(match.Name, query) {
			s.log.Warn("possible charity match rejected by name policy",
				"query", query,
				"candidate", match.Name,
				"score", match.Score,
			)
			continue
		}
		return &solvers.Resolution{
			Name:         match.Name,
			Registration: match.ID,
			Type:         charityEntityType(match, category),
		}, nil
	}
	return nil, nil
}

// ResolveCorporate fuzzy-reconciles against the company registry.
func (s *ResolverService) ResolveCorporate(ctx context.Context, query string) (*solvers.Resolution, error) {
	matches, err := s.corporate.ReconcileByName(ctx, query, "gb")
	if err != nil {
		return nil, fmt.Errorf("reconciling %q against company registry: %w", query, err)
	}
	for _, match := range matches {
		if match.Score < corporateScoreThreshold {
			continue
		}
		if !NamesSimilar(match.Name, query) {
			s.log.Warn("possible company match rejected by name policy",
				"query", query,
				"candidate", match.Name,
				"score", match.Score,
			)
			continue
		}
		return &solvers.Resolution{
			Name:         match.Name,
			Registration: match.ID,
			Type:         entities.TypeCompany,
		}, nil
	}
	return nil, nil
}

// ResolveOrganisation is the wide-net fallback: an unscoped charity-like
// search, then the company registry. First hit wins.
func (s *ResolverService) ResolveOrganisation(ctx context.Context, query string) (*solvers.Resolution, error) {
	resolution, err := s.ResolveCharityLike(ctx, query, "all")
	if err != nil {
		return nil, err
	}
	if resolution != nil {
		return resolution, nil
	}
	return s.ResolveCorporate(ctx, query)
}

func charityEntityType(match ports.RegistryMatch, category string) entities.EntityType {
	if t, ok := charityCategoryTypes[match.Type]; ok {
		return t
	}
	if t, ok := charityCategoryTypes[category]; ok {
		return t
	}
	return entities.TypeCharity
}
