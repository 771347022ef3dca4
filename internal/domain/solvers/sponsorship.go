package solvers

import (
	"context"
	"strings"

	"github.com/ersonp/register-graph/internal/domain/entities"
	"github.com/ersonp/register-graph/internal/domain/ports"
)

// sponsorshipSolver resolves sponsorship entries, which name either the
// sponsoring organisation or the individual donor behind it, sometimes
// both. Spans naming the chamber itself are discarded.
type sponsorshipSolver struct {
	env Env
}

func (s *sponsorshipSolver) Solve(ctx context.Context, rel *entities.Relationship) (*Result, error) {
	raw := rel.FirstLine()

	res := &Result{
		Date:   extractDate(ctx, s.env.Tagger, rel.Text),
		Amount: extractAmount(ctx, s.env.Tagger, rel.Text),
	}

	spans, err := s.env.Tagger.ExtractEntities(ctx, raw)
	if err != nil {
		spans = nil
	}
	for _, span := range spans {
		switch span.Label {
		case ports.LabelPerson:
			name := strings.TrimSpace(span.Text)
			if len(strings.Fields(name)) > 1 {
				res.Entities = append(res.Entities, entities.NewEntity(entities.TypePerson, name, name))
			}

		case ports.LabelOrg:
			name := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(span.Text), "the "))
			if sponsorshipExcluded[strings.ToLower(name)] {
				continue
			}
			r, rerr := s.env.Resolver.ResolveCorporate(ctx, name)
			if rerr != nil {
				return nil, rerr
			}
			if r != nil {
				res.Entities = append(res.Entities, resolutionEntity(r, name))
			}
		}
	}
	if len(res.Entities) > 0 {
		return res, nil
	}

	if match := s.env.Aliases.FindAliasEntity(rel.Text, entities.NonHumanEntities, nil); match != nil {
		res.Entities = append(res.Entities, entities.NewEntity(match.Type, match.Name))
	}
	if name := s.env.Aliases.FindAlias(rel.Text, []entities.EntityType{entities.TypePerson}, nil); name != "" {
		res.Entities = append(res.Entities, entities.NewEntity(entities.TypePerson, name))
	}
	return res, nil
}
