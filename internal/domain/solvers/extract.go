package solvers

import (
	"context"
	"regexp"
	"strings"

	"github.com/ersonp/register-graph/internal/domain/entities"
	"github.com/ersonp/register-graph/internal/domain/ports"
	"github.com/ersonp/register-graph/internal/domain/text"
)

var reDigits = regexp.MustCompile(`[0-9]`)

// extractDate returns the first DATE span in the text, verbatim. Source
// dates are too inconsistent to normalize, so none is attempted.
func extractDate(ctx context.Context, tagger ports.EntityTagger, s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	spans, err := tagger.ExtractEntities(ctx, s)
	if err != nil {
		return ""
	}
	for _, span := range spans {
		if span.Label == ports.LabelDate {
			return span.Text
		}
	}
	return ""
}

// extractAmount collects every MONEY span, strips fractional pence, keeps
// digits only, and returns the largest value found. Disclosures sometimes
// list a range; the upper bound is the informative one. A recurring-payment
// lexical cue overrides any value with the recurring sentinel.
func extractAmount(ctx context.Context, tagger ports.EntityTagger, s string) entities.Amount {
	if text.ReRecurringPayment.MatchString(s) {
		return entities.RecurringAmount()
	}
	if strings.TrimSpace(s) == "" {
		return entities.Amount{}
	}

	spans, err := tagger.ExtractEntities(ctx, s)
	if err != nil {
		return entities.Amount{}
	}

	found := false
	max := 0
	for _, span := range spans {
		if span.Label != ports.LabelMoney {
			continue
		}
		pounds := strings.SplitN(span.Text, ".", 2)[0]
		digits := strings.Join(reDigits.FindAllString(pounds, -1), "")
		if digits == "" {
			continue
		}
		value := 0
		for _, r := range digits {
			value = value*10 + int(r-'0')
		}
		if !found || value > max {
			max = value
			found = true
		}
	}
	if !found {
		return entities.NewAmount(0)
	}
	return entities.NewAmount(max)
}

// taggedNames harvests multi-word spans of the wanted labels from the raw
// text, skipping position titles and the generic-organisation exclusions.
// Each surviving span contributes its lowercase form and a
// punctuation-stripped variant.
func taggedNames(ctx context.Context, tagger ports.EntityTagger, raw string, labels []ports.SpanLabel) []string {
	spans, err := tagger.ExtractEntities(ctx, raw)
	if err != nil {
		return nil
	}

	var names []string
	seen := map[string]bool{}
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	for _, span := range spans {
		if !labelIn(span.Label, labels) {
			continue
		}
		lower := strings.ToLower(strings.TrimSpace(span.Text))
		if len(strings.Fields(lower)) < 2 {
			continue
		}
		if excludeFromTagging[lower] || isPosition(span.Text) {
			continue
		}
		add(text.StripPunctuation(lower))
		add(lower)
	}
	return names
}

func labelIn(label ports.SpanLabel, labels []ports.SpanLabel) bool {
	for _, l := range labels {
		if label == l {
			return true
		}
	}
	return false
}

func isPosition(s string) bool {
	for _, p := range text.Positions {
		if strings.EqualFold(s, p) {
			return true
		}
	}
	return false
}

// resolutionEntity converts a registry resolution into an entity carrying
// the query text and the registered name as aliases.
func resolutionEntity(res *Resolution, queried string) *entities.Entity {
	e := entities.NewEntity(res.Type, res.Name, queried)
	switch res.Type {
	case entities.TypeCompany, entities.TypeOffshore:
		e.CompanyRegistration = res.Registration
	default:
		e.CharityRegistration = res.Registration
	}
	return e
}

// professionEntity matches the text against the profession vocabulary,
// yielding a profession entity when the disclosure names a trade instead
// of an employer.
func professionEntity(raw string) *entities.Entity {
	lower := strings.ToLower(raw)
	for _, profession := range professionVocabulary {
		if strings.Contains(lower, profession) {
			return entities.NewEntity(entities.TypeProfession, profession)
		}
	}
	return nil
}

// propertyEntity matches the text against already-known property entities.
func propertyEntity(aliases AliasIndex, raw string) *entities.Entity {
	return aliases.FindAliasEntity(raw, []entities.EntityType{entities.TypeProperty}, nil)
}

// recurringSiblingEntity reuses the resolved target of a recurring sibling
// relationship when the current record reads as a one-off payment with no
// organisation named: the same payer is implied.
func recurringSiblingEntity(siblings SiblingIndex, rel *entities.Relationship, amount entities.Amount) *entities.Entity {
	if siblings == nil {
		return nil
	}
	if amount.Kind != entities.AmountValue || amount.Value == 0 {
		return nil
	}
	if !text.ReSinglePayment.MatchString(rel.Text) {
		return nil
	}
	target := siblings.RecurringSiblingTarget(rel.Source, rel.Type)
	if target == "" {
		return nil
	}
	return entities.NewEntity(entities.TypeCompany, target)
}
