package solvers

import (
	"context"
	"strings"

	"github.com/ersonp/register-graph/internal/domain/entities"
	"github.com/ersonp/register-graph/internal/domain/text"
)

// compoundSolver resolves the key:value block types: donations, gifts and
// overseas visits. The record text is a list of "Key: value" lines rather
// than one free-text sentence, and the donor's declared status guides
// which resolution path applies. One block may carry several "(N) name"
// entries, each resolved independently.
type compoundSolver struct {
	env     Env
	relType entities.RelationshipType
}

// compoundFields is the parsed key:value block.
type compoundFields struct {
	Name        string
	Amount      string
	Status      string
	Address     string
	Date        string
	Destination string
	Purpose     string
}

// parseCompound splits the record into its labelled fields. A block with
// no key:value structure degrades to every field holding the whole text,
// which keeps malformed rows flowing through the name path.
func parseCompound(rel *entities.Relationship) compoundFields {
	lines := rel.TextLines()
	if len(lines) <= 1 {
		whole := rel.FirstLine()
		return compoundFields{
			Name: whole, Amount: whole, Status: whole,
			Address: whole, Date: whole, Destination: whole, Purpose: whole,
		}
	}

	var f compoundFields
	for _, line := range lines {
		if idx := strings.Index(line, ":"); idx >= 0 {
			key := strings.ToLower(strings.TrimSpace(line[:idx]))
			value := strings.TrimSpace(line[strings.LastIndex(line, ":")+1:])

			switch {
			case strings.Contains(key, "name"):
				f.Name = value
			case strings.Contains(key, "amount"), strings.Contains(key, "value"):
				f.Amount = value
			case strings.Contains(key, "status"):
				f.Status = value
			case strings.Contains(key, "address"):
				f.Address = value
			case strings.Contains(key, "destination"):
				f.Destination = value
			case strings.Contains(key, "purpose"):
				f.Purpose = value
			}
		}
		if strings.Contains(strings.ToLower(line), "registered") {
			f.Date = line
		}
	}
	return f
}

// entityTypeFromStatus maps the declared donor status onto the taxonomy.
// Empty when no cue matches.
func entityTypeFromStatus(status string) entities.EntityType {
	lower := strings.ToLower(status)
	switch {
	case strings.Contains(lower, "individual"), strings.Contains(lower, "private"):
		return entities.TypePerson
	case strings.Contains(lower, "charity"):
		return entities.TypeCharity
	case strings.Contains(lower, "trade union"):
		return entities.TypeUnion
	case strings.Contains(lower, "society"), strings.Contains(lower, "association"):
		return entities.TypeAssociation
	case strings.Contains(lower, "trust"), strings.Contains(lower, "other"):
		return entities.TypeMiscellaneous
	case strings.Contains(lower, "company"), strings.Contains(lower, "limited liability"):
		return entities.TypeCompany
	}
	return ""
}

// entries splits a multi-entry name field into its "(N) name" parts, or
// returns the whole name as the single entry.
func (s *compoundSolver) entries(name string) []string {
	matches := text.ReMultiEntry.FindAllStringSubmatch(name, -1)
	if len(matches) == 0 {
		return []string{name}
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, strings.TrimSpace(m[1]))
	}
	return out
}

func (s *compoundSolver) Solve(ctx context.Context, rel *entities.Relationship) (*Result, error) {
	fields := parseCompound(rel)
	fields.Name = strings.ReplaceAll(fields.Name, " & ", " and ")

	entityType := entityTypeFromStatus(fields.Status)
	if s.relType == entities.RelationVisited {
		// Visit blocks carry no donor status; the funder is an organisation.
		entityType = entities.TypeCompany
	}

	res := &Result{
		Date:   extractDate(ctx, s.env.Tagger, fields.Date),
		Amount: extractAmount(ctx, s.env.Tagger, fields.Amount),
	}

	for _, entry := range s.entries(fields.Name) {
		switch entityType {
		case entities.TypePerson:
			res.Entities = append(res.Entities, entities.NewEntity(entities.TypePerson, entry, entry))

		case entities.TypeCompany:
			// The status line sometimes carries the registration number,
			// which outranks a fuzzy name search.
			r, err := s.env.Resolver.ResolveByRegistrationNumber(ctx, fields.Status)
			if err != nil {
				return nil, err
			}
			if r == nil {
				r, err = s.env.Resolver.ResolveCorporate(ctx, fields.Name)
				if err != nil {
					return nil, err
				}
			}
			if r != nil {
				res.Entities = append(res.Entities, resolutionEntity(r, entry))
				continue
			}
			if name := s.env.Aliases.FindAlias(entry, entities.AllEntityTypes, nil); name != "" {
				res.Entities = append(res.Entities, entities.NewEntity(entities.TypeCompany, name))
			}

		default:
			candidateTypes := entities.AllEntityTypes
			resolvedType := entityType
			if resolvedType == "" {
				resolvedType = entities.TypeMiscellaneous
			}
			if name := s.env.Aliases.FindAlias(entry, candidateTypes, nil); name != "" {
				res.Entities = append(res.Entities, entities.NewEntity(resolvedType, name))
			}
		}
	}
	return res, nil
}
