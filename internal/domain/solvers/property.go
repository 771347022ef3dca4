package solvers

import (
	"context"
	"math"
	"strings"

	"github.com/ersonp/register-graph/internal/domain/entities"
	"github.com/ersonp/register-graph/internal/domain/text"
)

// propertyOwnerSolver resolves land-and-property entries. The register
// bands these coarsely: marker "(i)" declares wealth with no income and
// "(ii)" declares rental income at a flat banding, and a lexical
// multiplier ("half share", "two flats") scales the holding. No registry
// backs property, so each holding becomes a plain property entity.
type propertyOwnerSolver struct {
	env Env
}

const rentalIncomeBanding = 10000

func (s *propertyOwnerSolver) Solve(ctx context.Context, rel *entities.Relationship) (*Result, error) {
	res := &Result{
		Date: extractDate(ctx, s.env.Tagger, rel.Text),
	}

	amount := 0
	if strings.Contains(rel.Text, "(ii)") {
		amount = rentalIncomeBanding
	}
	multiplier := text.PropertyMultiplier(rel.Text)
	if multiplier < 1 {
		amount = int(float64(amount) * multiplier)
	}
	res.Amount = entities.NewAmount(amount)

	for i := 0; i < int(math.Ceil(multiplier)); i++ {
		res.Entities = append(res.Entities, entities.NewEntity(entities.TypeProperty, "Property"))
	}
	return res, nil
}
