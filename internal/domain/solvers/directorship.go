package solvers

import (
	"context"
	"strings"

	"github.com/ersonp/register-graph/internal/domain/entities"
	"github.com/ersonp/register-graph/internal/domain/ports"
	"github.com/ersonp/register-graph/internal/domain/text"
)

// directorshipSolver resolves "Director, Acme Holdings Ltd (until March
// 2019)" style entries to companies.
type directorshipSolver struct {
	env Env
}

func (s *directorshipSolver) cleanup(raw string) string {
	cfg := directorshipConfig
	t := raw
	t = text.StripCategoryReference(t)
	t = text.StripParenthetical(t)
	t = text.StripRegisteredMarker(t)
	t = text.StripJobTitles(t)
	t = text.StripDateRangePrefix(t)

	t = text.SplitOnDelimiters(t, cfg.Splitters, 0)
	t = text.StripLeadingTokens(t, cfg.Starters)
	t = text.StripTrailingTokens(t, cfg.Enders)
	t = text.ApplyReplacements(t, cfg.Replacements)
	return t
}

func (s *directorshipSolver) Solve(ctx context.Context, rel *entities.Relationship) (*Result, error) {
	raw := rel.FirstLine()
	cleaned := s.cleanup(raw)

	res := &Result{
		Date:   extractDate(ctx, s.env.Tagger, rel.Text),
		Amount: extractAmount(ctx, s.env.Tagger, rel.Text),
	}

	// The raw text may contain a distinguishing token cleanup would
	// destroy, so the alias index sees it first.
	aliasTypes := append(append([]entities.EntityType{}, entities.PoliticalEntities...), entities.OrganisationEntities...)
	if match := s.env.Aliases.FindAliasEntity(rel.Text, aliasTypes, nil); match != nil {
		res.Entities = append(res.Entities, entities.NewEntity(match.Type, match.Name))
		return res, nil
	}

	names := candidateNames(cleaned, taggedNames(ctx, s.env.Tagger, raw, []ports.SpanLabel{ports.LabelOrg, ports.LabelPerson}))
	for _, name := range names {
		if excludeFromSearching[strings.ToLower(name)] {
			continue
		}
		resolved, err := s.env.Resolver.ResolveOrganisation(ctx, name)
		if err != nil {
			return nil, err
		}
		if resolved != nil {
			res.Entities = append(res.Entities, resolutionEntity(resolved, name))
			return res, nil
		}
	}

	return res, nil
}

// candidateNames orders the cleaned text first, then tagger-harvested
// names, without duplicates.
func candidateNames(cleaned string, tagged []string) []string {
	var names []string
	seen := map[string]bool{}
	for _, name := range append([]string{cleaned}, tagged...) {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}
