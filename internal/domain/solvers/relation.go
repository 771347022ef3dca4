package solvers

import (
	"context"
	"strings"

	"github.com/ersonp/register-graph/internal/domain/entities"
	"github.com/ersonp/register-graph/internal/domain/ports"
)

// relationSolver resolves family-relation entries, which name a person
// rather than an organisation. No registry backs people, so resolution is
// tagger spans first, then the alias index over the human types.
type relationSolver struct {
	env Env
}

func (s *relationSolver) Solve(ctx context.Context, rel *entities.Relationship) (*Result, error) {
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
		if span.Label != ports.LabelPerson {
			continue
		}
		name := strings.TrimSpace(span.Text)
		if len(strings.Fields(name)) > 1 {
			res.Entities = append(res.Entities, entities.NewEntity(entities.TypePerson, name, name))
		}
	}
	if len(res.Entities) > 0 {
		return res, nil
	}

	if name := s.env.Aliases.FindAlias(rel.Text, entities.HumanEntities, nil); name != "" {
		res.Entities = append(res.Entities, entities.NewEntity(entities.TypePerson, name, name))
	}
	return res, nil
}
