package solvers

import (
	"context"

	"github.com/ersonp/register-graph/internal/domain/entities"
	"github.com/ersonp/register-graph/internal/domain/text"
)

// shareholderSolver resolves shareholding entries. The splitter list is
// long: shareholding text trails off into free-form descriptions of the
// holding far more often than other categories.
type shareholderSolver struct {
	env Env
}

func (s *shareholderSolver) cleanup(raw string) string {
	cfg := shareholderConfig
	t := raw
	t = text.StripCategoryReference(t)
	t = text.StripRegisteredMarker(t)
	t = text.StripJobTitles(t)
	t = text.StripDateRangePrefix(t)
	t = text.StripParenthetical(t)
	t = text.StripShareClass(t)

	t = text.SplitOnDelimiters(t, cfg.Splitters, 0)
	t = text.StripLeadingTokens(t, cfg.Starters)
	t = text.StripTrailingTokens(t, cfg.Enders)
	t = text.ApplyReplacements(t, cfg.Replacements)
	return t
}

func (s *shareholderSolver) Solve(ctx context.Context, rel *entities.Relationship) (*Result, error) {
	cleaned := s.cleanup(rel.FirstLine())

	res := &Result{
		Date:   extractDate(ctx, s.env.Tagger, rel.Text),
		Amount: extractAmount(ctx, s.env.Tagger, rel.Text),
	}

	resolved, err := s.env.Resolver.ResolveCorporate(ctx, cleaned)
	if err != nil {
		return nil, err
	}
	if resolved != nil {
		res.Entities = append(res.Entities, resolutionEntity(resolved, cleaned))
		return res, nil
	}

	aliasTypes := append(append([]entities.EntityType{}, entities.OrganisationEntities...), entities.PoliticalEntities...)
	if match := s.env.Aliases.FindAliasEntity(rel.Text, aliasTypes, nil); match != nil {
		res.Entities = append(res.Entities, entities.NewEntity(match.Type, match.Name))
	}
	return res, nil
}

// significantControlSolver resolves person-with-significant-control
// entries. These are near-canonical already; only descriptive
// parentheticals like "(dormant company)" are stripped.
type significantControlSolver struct {
	env Env
}

func (s *significantControlSolver) cleanup(raw string) string {
	t := text.StripDescribedParenthetical(raw)
	return text.ApplyReplacements(t, significantControlConfig.Replacements)
}

func (s *significantControlSolver) Solve(ctx context.Context, rel *entities.Relationship) (*Result, error) {
	cleaned := s.cleanup(rel.FirstLine())

	res := &Result{
		Date:   extractDate(ctx, s.env.Tagger, rel.Text),
		Amount: extractAmount(ctx, s.env.Tagger, rel.Text),
	}

	resolved, err := s.env.Resolver.ResolveCorporate(ctx, cleaned)
	if err != nil {
		return nil, err
	}
	if resolved != nil {
		res.Entities = append(res.Entities, resolutionEntity(resolved, cleaned))
		return res, nil
	}

	if match := s.env.Aliases.FindAliasEntity(rel.Text, entities.OrganisationEntities, nil); match != nil {
		res.Entities = append(res.Entities, entities.NewEntity(match.Type, match.Name))
	}
	return res, nil
}

// miscellaneousSolver covers the catch-all category: try a corporate
// match, then the full alias index.
type miscellaneousSolver struct {
	env Env
}

func (s *miscellaneousSolver) cleanup(raw string) string {
	cfg := miscellaneousConfig
	t := raw
	t = text.StripCategoryReference(t)
	t = text.StripRegisteredMarker(t)
	t = text.StripJobTitles(t)
	t = text.StripDateRangePrefix(t)
	t = text.StripParenthetical(t)

	t = text.SplitOnDelimiters(t, cfg.Splitters, 0)
	t = text.StripLeadingTokens(t, cfg.Starters)
	t = text.StripTrailingTokens(t, cfg.Enders)
	t = text.ApplyReplacements(t, cfg.Replacements)
	return t
}

func (s *miscellaneousSolver) Solve(ctx context.Context, rel *entities.Relationship) (*Result, error) {
	cleaned := s.cleanup(rel.FirstLine())

	res := &Result{
		Date:   extractDate(ctx, s.env.Tagger, rel.Text),
		Amount: extractAmount(ctx, s.env.Tagger, rel.Text),
	}

	resolved, err := s.env.Resolver.ResolveOrganisation(ctx, cleaned)
	if err != nil {
		return nil, err
	}
	if resolved != nil {
		res.Entities = append(res.Entities, resolutionEntity(resolved, cleaned))
		return res, nil
	}

	if match := s.env.Aliases.FindAliasEntity(rel.Text, entities.AllEntityTypes, nil); match != nil {
		res.Entities = append(res.Entities, entities.NewEntity(match.Type, match.Name))
	}
	return res, nil
}

// membershipSolver resolves organisation memberships. Most membership
// records arrive with a known target from upstream ingestion; the solver
// only handles the free-text remainder via the alias index.
type membershipSolver struct {
	env Env
}

func (s *membershipSolver) Solve(ctx context.Context, rel *entities.Relationship) (*Result, error) {
	res := &Result{
		Date:   extractDate(ctx, s.env.Tagger, rel.Text),
		Amount: extractAmount(ctx, s.env.Tagger, rel.Text),
	}

	preferred := []entities.EntityType{entities.TypePoliticalParty, entities.TypeUnion, entities.TypeAssociation}
	if match := s.env.Aliases.FindAliasEntity(rel.Text, entities.NonHumanEntities, preferred); match != nil {
		res.Entities = append(res.Entities, entities.NewEntity(match.Type, match.Name))
	}
	return res, nil
}
