package services

import (
	"strings"

	"github.com/ersonp/register-graph/internal/domain/entities"
	"github.com/ersonp/register-graph/internal/infrastructure/logger"
)

// shortAliasTypes may match on a single-word alias. Everything else needs
// at least two words, which keeps one-word aliases like "labour" from
// matching every text that mentions labour markets.
var shortAliasTypes = map[entities.EntityType]bool{
	entities.TypeUnion:          true,
	entities.TypePollster:       true,
	entities.TypeMedia:          true,
	entities.TypeGovernmentBody: true,
	entities.TypeProperty:       true,
}

// aliasBoundaries are the punctuation contexts under which an alias counts
// as a word-boundary-safe occurrence inside longer text.
var aliasBoundaries = []struct{ before, after string }{
	{" ", " "},
	{" ", ","},
	{" ", "."},
	{" ", ";"},
	{" ", "'"},
	{"", ")"},
	{"", ";"},
	{"", "."},
	{"", ","},
	{"", `"`},
}

// EntityStore holds the accumulated entity set in insertion order. The
// pipeline is the sole writer; solvers read through the alias lookups.
// Iteration order is stable, so alias matches are deterministic for a
// given input order.
type EntityStore struct {
	log     *logger.Logger
	ordered []*entities.Entity
}

// NewEntityStore creates an empty store.
func NewEntityStore(log *logger.Logger) *EntityStore {
	return &EntityStore{log: log}
}

// All returns the entities in insertion order. Callers must not mutate
// the slice.
func (s *EntityStore) All() []*entities.Entity {
	return s.ordered
}

// Len returns the number of entities held.
func (s *EntityStore) Len() int {
	return len(s.ordered)
}

// Find returns the entity with the given canonical name and type, or nil.
func (s *EntityStore) Find(name string, entityType entities.EntityType) *entities.Entity {
	canonical := entities.CanonicalName(name)
	for _, e := range s.ordered {
		if e.Type == entityType && e.Name == canonical {
			return e
		}
	}
	return nil
}

// FindByName returns the first entity with the given canonical name
// regardless of type, or nil.
func (s *EntityStore) FindByName(name string) *entities.Entity {
	canonical := entities.CanonicalName(name)
	for _, e := range s.ordered {
		if e.Name == canonical {
			return e
		}
	}
	return nil
}

// Upsert merges the entity into the store. A new (name, type) pair is
// appended; an existing one has its alias set unioned, never overwritten.
// Returns the stored entity.
func (s *EntityStore) Upsert(e *entities.Entity) *entities.Entity {
	existing := s.Find(e.Name, e.Type)
	if existing == nil {
		s.ordered = append(s.ordered, e)
		return e
	}
	if existing.MergeAliases(e.Aliases) {
		s.log.Debug("entity alias set widened",
			"name", existing.Name,
			"type", existing.Type,
			"aliases", len(existing.Aliases),
		)
	}
	return existing
}

// FindAlias returns the canonical name of the first entity whose alias
// occurs in the query text, or "".
func (s *EntityStore) FindAlias(query string, candidateTypes, preferredTypes []entities.EntityType) string {
	if e := s.FindAliasEntity(query, candidateTypes, preferredTypes); e != nil {
		return e.Name
	}
	return ""
}

// FindAliasEntity scans the live entity set for an alias occurrence in the
// query text, restricted to candidateTypes. When preferredTypes is given,
// all matches are collected and the first of a preferred type wins; with
// no preferred match the first match found wins.
func (s *EntityStore) FindAliasEntity(query string, candidateTypes, preferredTypes []entities.EntityType) *entities.Entity {
	lower := strings.ToLower(query)

	var matches []*entities.Entity
	for _, e := range s.ordered {
		if !typeIn(e.Type, candidateTypes) {
			continue
		}
		for _, alias := range e.Aliases {
			if aliasOccurs(lower, alias, e.Type) {
				matches = append(matches, e)
				break
			}
		}
		if len(preferredTypes) == 0 && len(matches) > 0 {
			break
		}
	}
	if len(matches) == 0 {
		return nil
	}
	for _, m := range matches {
		if typeIn(m.Type, preferredTypes) {
			return m
		}
	}
	return matches[0]
}

// aliasOccurs tests the boundary-safe occurrence patterns: exact equality,
// alias-at-start, alias-at-end, then alias framed by boundary punctuation.
// Single-word aliases only qualify for the short-alias types.
func aliasOccurs(query, alias string, entityType entities.EntityType) bool {
	alias = strings.TrimSpace(strings.ToLower(alias))
	if alias == "" {
		return false
	}
	if len(strings.Fields(alias)) < 2 && !shortAliasTypes[entityType] {
		return false
	}
	if query == alias {
		return true
	}
	if strings.HasPrefix(query, alias+" ") {
		return true
	}
	if strings.HasSuffix(query, " "+alias) {
		return true
	}
	for _, b := range aliasBoundaries {
		if strings.Contains(query, b.before+alias+b.after) {
			return true
		}
	}
	return false
}

func typeIn(t entities.EntityType, types []entities.EntityType) bool {
	for _, candidate := range types {
		if t == candidate {
			return true
		}
	}
	return false
}
