// Package entities contains the domain model for the register graph:
// canonical entities, disclosure relationships and their classification.
package entities

import (
	"sort"
	"strings"
)

// EntityType classifies a canonical entity. The taxonomy follows the
// register conventions: people, political bodies, organisations, arms of
// the state and physical property.
type EntityType string

// Human entity types.
const (
	TypePerson     EntityType = "person"
	TypeAdvisor    EntityType = "advisor"
	TypePolitician EntityType = "politician"
)

// Political entity types.
const (
	TypePoliticalParty    EntityType = "political_party"
	TypePolitical         EntityType = "political"
	TypePollster          EntityType = "pollster"
	TypeThinkLobby        EntityType = "think_lobby"
	TypeForeignGovernment EntityType = "foreign_government"
)

// State power entity types.
const (
	TypeGovernment     EntityType = "government"
	TypeGovernmentBody EntityType = "government_body"
	TypeLocalAuthority EntityType = "local_authority"
	TypeHealthBody     EntityType = "health"
	TypeEducation      EntityType = "education"
	TypeUniversity     EntityType = "university"
)

// Organisational entity types.
const (
	TypeCompany       EntityType = "company"
	TypeAssociation   EntityType = "association"
	TypeCharity       EntityType = "charity"
	TypeUnion         EntityType = "union"
	TypeMedia         EntityType = "media"
	TypeSport         EntityType = "sport"
	TypeOffshore      EntityType = "offshore"
	TypeProfession    EntityType = "profession"
	TypeMiscellaneous EntityType = "miscellaneous"
)

// TypeProperty is land or buildings disclosed in the property category.
const TypeProperty EntityType = "property"

// HumanEntities are the types that map to people.
var HumanEntities = []EntityType{TypePerson, TypeAdvisor, TypePolitician}

// PoliticalEntities are party-political and lobbying bodies.
var PoliticalEntities = []EntityType{
	TypePoliticalParty, TypePolitical, TypePollster, TypeThinkLobby,
	TypeForeignGovernment,
}

// StatePowerEntities are arms of the state.
var StatePowerEntities = []EntityType{
	TypeGovernment, TypeGovernmentBody, TypeLocalAuthority, TypeHealthBody,
	TypeEducation, TypeUniversity,
}

// OrganisationEntities are private and civil-society organisations.
var OrganisationEntities = []EntityType{
	TypeCompany, TypeAssociation, TypeCharity, TypeUnion, TypeMedia,
	TypeSport, TypeOffshore, TypeProfession, TypeMiscellaneous,
}

// NonHumanEntities is every type that is not a person.
var NonHumanEntities = concatTypes(
	PoliticalEntities, StatePowerEntities, OrganisationEntities,
	[]EntityType{TypeProperty},
)

// AllEntityTypes is the full taxonomy.
var AllEntityTypes = concatTypes(HumanEntities, NonHumanEntities)

func concatTypes(groups ...[]EntityType) []EntityType {
	var out []EntityType
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// IsHuman reports whether the type maps to a person node.
func (t EntityType) IsHuman() bool {
	for _, h := range HumanEntities {
		if t == h {
			return true
		}
	}
	return false
}

// Valid reports whether the type is part of the taxonomy.
func (t EntityType) Valid() bool {
	for _, known := range AllEntityTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Entity represents a canonical real-world thing (person, company, charity,
// property, state institution) appearing as a graph node.
//
// Name is the canonical upper-case form; Name+Type is unique within a run.
// Aliases are lowercase alternate text forms and always include the
// canonical name itself.
type Entity struct {
	Type                EntityType `json:"entity_type"`
	Name                string     `json:"name"`
	CompanyRegistration string     `json:"company_registration,omitempty"`
	CharityRegistration string     `json:"charity_registration,omitempty"`
	Address             string     `json:"address,omitempty"`
	DateOfBirth         string     `json:"date_of_birth,omitempty"`
	Email               string     `json:"email,omitempty"`
	Twitter             string     `json:"twitter,omitempty"`
	Facebook            string     `json:"facebook,omitempty"`
	LinkedIn            string     `json:"linkedin,omitempty"`
	Aliases             []string   `json:"aliases"`
}

// NewEntity creates an entity with a canonical upper-case name and the
// given aliases plus the name itself, normalized.
func NewEntity(entityType EntityType, name string, aliases ...string) *Entity {
	e := &Entity{
		Type: entityType,
		Name: CanonicalName(name),
	}
	e.AddAlias(name)
	for _, alias := range aliases {
		e.AddAlias(alias)
	}
	return e
}

// CanonicalName converts a name to its canonical upper-case form.
func CanonicalName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// NormalizeAlias lowercases and trims an alias for case-insensitive matching.
func NormalizeAlias(alias string) string {
	return strings.ToLower(strings.TrimSpace(alias))
}

// aliasForms returns the normalized alias plus its ampersand counterpart,
// so that "Marks & Spencer" and "Marks and Spencer" both match.
func aliasForms(alias string) []string {
	norm := NormalizeAlias(alias)
	if norm == "" {
		return nil
	}
	forms := []string{norm}
	if strings.Contains(norm, " & ") {
		forms = append(forms, strings.ReplaceAll(norm, " & ", " and "))
	}
	if strings.Contains(norm, " and ") {
		forms = append(forms, strings.ReplaceAll(norm, " and ", " & "))
	}
	return forms
}

// AddAlias adds an alias (and its ampersand variants) to the entity.
// Returns true if the alias set grew.
func (e *Entity) AddAlias(alias string) bool {
	grew := false
	for _, form := range aliasForms(alias) {
		if !e.hasNormalizedAlias(form) {
			e.Aliases = append(e.Aliases, form)
			grew = true
		}
	}
	return grew
}

// HasAlias reports whether the normalized alias is already present.
func (e *Entity) HasAlias(alias string) bool {
	return e.hasNormalizedAlias(NormalizeAlias(alias))
}

func (e *Entity) hasNormalizedAlias(norm string) bool {
	for _, existing := range e.Aliases {
		if existing == norm {
			return true
		}
	}
	return false
}

// MergeAliases unions the incoming aliases into the entity. The resulting
// set is always a superset of both inputs. Returns true if the set grew.
func (e *Entity) MergeAliases(incoming []string) bool {
	grew := false
	for _, alias := range incoming {
		if e.AddAlias(alias) {
			grew = true
		}
	}
	return grew
}

// SortedAliases returns the alias set in a stable order for serialization.
func (e *Entity) SortedAliases() []string {
	out := make([]string, len(e.Aliases))
	copy(out, e.Aliases)
	sort.Strings(out)
	return out
}

// SameIdentity reports whether two entities refer to the same canonical
// thing: equal name and type.
func (e *Entity) SameIdentity(other *Entity) bool {
	return e.Type == other.Type && e.Name == CanonicalName(other.Name)
}
