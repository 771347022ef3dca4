package solvers

import (
	"context"
	"strings"

	"github.com/ersonp/register-graph/internal/domain/entities"
	"github.com/ersonp/register-graph/internal/domain/ports"
	"github.com/ersonp/register-graph/internal/domain/text"
)

// employmentSolver resolves employment and earnings entries. This is the
// widest recipe: employment text ranges from "Partner, Smith & Co LLP"
// through ad hoc speaking engagements to bare payment lines with no
// employer named at all.
type employmentSolver struct {
	env Env
}

func (s *employmentSolver) cleanup(raw string) string {
	cfg := employmentConfig
	t := raw
	t = text.StripCategoryReference(t)
	t = text.StripRegisteredMarker(t)
	t = text.StripDateRangePrefix(t)
	t = text.StripParenthetical(t)
	t = text.StripJobTitles(t)
	if s.env.Addresses != nil {
		t = text.StripSpans(t, s.env.Addresses.ParseAddresses(t, "GB"))
	}

	t = text.SplitOnDelimiters(t, cfg.Splitters, 0)
	t = text.StripLeadingTokens(t, cfg.Starters)
	t = text.StripTrailingTokens(t, cfg.Enders)
	t = text.ApplyReplacements(t, cfg.Replacements)
	t = text.StripLeadingTokens(t, cfg.Starters)
	t = text.StripTrailingTokens(t, cfg.Enders)
	return t
}

// guessCategories scans the identifier vocabularies against the raw text
// and returns every category with a lexical cue, in declared order.
func (s *employmentSolver) guessCategories(raw string) []string {
	lower := strings.ToLower(raw)
	var categories []string
	for _, guess := range employmentGuesses {
		for _, id := range guess.Identifiers {
			if strings.Contains(lower, id) {
				categories = append(categories, guess.Category)
				break
			}
		}
	}
	return categories
}

func (s *employmentSolver) Solve(ctx context.Context, rel *entities.Relationship) (*Result, error) {
	raw := rel.FirstLine()
	cleaned := s.cleanup(raw)

	res := &Result{
		Date:   extractDate(ctx, s.env.Tagger, rel.Text),
		Amount: extractAmount(ctx, s.env.Tagger, rel.Text),
	}

	names := candidateNames(cleaned, taggedNames(ctx, s.env.Tagger, raw, []ports.SpanLabel{ports.LabelOrg, ports.LabelPerson}))

	// A bare payment line with no nouns: check the recurring sibling
	// before spending registry queries.
	if len(names) < 2 {
		if sibling := recurringSiblingEntity(s.env.Siblings, rel, res.Amount); sibling != nil {
			res.Entities = append(res.Entities, sibling)
			return res, nil
		}
	}

	preferred := []entities.EntityType{entities.TypeCompany, entities.TypePollster}
	if match := s.env.Aliases.FindAliasEntity(rel.Text, entities.AllEntityTypes, preferred); match != nil {
		res.Entities = append(res.Entities, entities.NewEntity(match.Type, match.Name))
		return res, nil
	}

	// Registration-number-first: employment text sometimes carries one,
	// and the numeric lookup outranks any fuzzy search.
	resolved, err := s.env.Resolver.ResolveByRegistrationNumber(ctx, raw)
	if err != nil {
		return nil, err
	}
	if resolved != nil {
		res.Entities = append(res.Entities, resolutionEntity(resolved, cleaned))
		return res, nil
	}

	// Scoped lookups for every lexical cue, then the wide net.
	for _, category := range s.guessCategories(rel.Text) {
		for _, name := range names {
			var r *Resolution
			var rerr error
			if category == "company" {
				r, rerr = s.env.Resolver.ResolveCorporate(ctx, name)
			} else {
				r, rerr = s.env.Resolver.ResolveCharityLike(ctx, name, category)
			}
			if rerr != nil {
				return nil, rerr
			}
			if r != nil {
				res.Entities = append(res.Entities, resolutionEntity(r, name))
				return res, nil
			}
		}
	}

	for _, name := range names {
		if excludeFromSearching[strings.ToLower(name)] {
			continue
		}
		r, rerr := s.env.Resolver.ResolveOrganisation(ctx, name)
		if rerr != nil {
			return nil, rerr
		}
		if r != nil {
			res.Entities = append(res.Entities, resolutionEntity(r, name))
			return res, nil
		}
	}

	if sibling := recurringSiblingEntity(s.env.Siblings, rel, res.Amount); sibling != nil {
		res.Entities = append(res.Entities, sibling)
		return res, nil
	}

	if profession := professionEntity(rel.Text); profession != nil {
		res.Entities = append(res.Entities, profession)
		return res, nil
	}

	if property := propertyEntity(s.env.Aliases, rel.Text); property != nil {
		res.Entities = append(res.Entities, entities.NewEntity(property.Type, property.Name))
		return res, nil
	}

	return res, nil
}
