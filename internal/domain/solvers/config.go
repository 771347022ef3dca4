package solvers

import (
	"github.com/ersonp/register-graph/internal/domain/text"
)

// cleanupConfig is the per-type text cleanup configuration: which
// delimiters split the entry, which marker words are trimmed from either
// end, and which literal substitutions run last. Solvers hold these as
// immutable package-level records rather than inheriting them.
type cleanupConfig struct {
	Splitters    []string
	Starters     []string
	Enders       []string
	Replacements []text.Replacement
}

// defaultReplacements run for every type: collapse double spaces and
// normalize ampersands.
var defaultReplacements = []text.Replacement{
	{From: "  ", To: " "},
	{From: " & ", To: " and "},
}

var directorshipConfig = cleanupConfig{
	Splitters:    []string{"trading as ", "investee companies", ";"},
	Starters:     []string{"and", ",", "of"},
	Enders:       []string{"."},
	Replacements: defaultReplacements,
}

var shareholderConfig = cleanupConfig{
	Splitters: []string{
		"trading as ", "investee companies", ";", ":", ", a",
		", marketing consultancy", ", financial services company",
		", psychology assessment", ", tour operator", ", shares co-owned",
		". UK property company", ", management of", "family business",
		"SIPP", "per cent ownership", "% ownership",
	},
	Starters:     []string{"and", ",", "of", "in"},
	Enders:       []string{"."},
	Replacements: defaultReplacements,
}

var employmentConfig = cleanupConfig{
	Splitters: []string{"speaker", "engagement", "speaking"},
	Starters:  []string{"and", ",", "of", "in", "group"},
	Enders:    []string{".", "board"},
	Replacements: append([]text.Replacement{
		{From: "unpaid", To: ""},
	}, defaultReplacements...),
}

var miscellaneousConfig = cleanupConfig{
	Splitters: []string{"trading as ", "investee companies", ";"},
	Starters:  []string{"and", "of", "of the", "member of the"},
	Enders:    []string{"."},
	Replacements: append([]text.Replacement{
		{From: "unpaid", To: ""},
	}, defaultReplacements...),
}

var significantControlConfig = cleanupConfig{
	Replacements: defaultReplacements,
}

// guessedCategory pairs a registry category with the lexical cues that
// select it. Scanned in declared order; every hit is attempted.
type guessedCategory struct {
	Category    string
	Identifiers []string
}

// employmentGuesses are the scoped lookups tried before the wide-net
// search when a strong lexical cue is present in the raw text.
var employmentGuesses = []guessedCategory{
	{Category: "university", Identifiers: text.UniversityIdentifiers},
	{Category: "education", Identifiers: text.EducationIdentifiers},
	{Category: "registered-charity", Identifiers: text.CharityIdentifiers},
	{Category: "local-authority", Identifiers: text.LocalGovernmentIdentifiers},
	{Category: "health", Identifiers: text.HealthIdentifiers},
	{Category: "company", Identifiers: text.CompanyIdentifiers},
}

// excludeFromTagging drops generic suffix-only organisation spans the
// tagger tends to produce from truncated names.
var excludeFromTagging = map[string]bool{
	"house limited":    true,
	"limited":          true,
	"ltd":              true,
	"llp":              true,
	"plc":              true,
	"the company":      true,
	"the board":        true,
	"group limited":    true,
	"holdings":         true,
	"holdings limited": true,
}

// excludeFromSearching skips registry queries that can only produce noise.
var excludeFromSearching = map[string]bool{
	"pension":       true,
	"pensions":      true,
	"rental income": true,
	"self employed": true,
	"self-employed": true,
	"none":          true,
	"shares":        true,
	"salary":        true,
}

// sponsorshipExcluded organisation spans name the chamber itself, never a
// sponsor.
var sponsorshipExcluded = map[string]bool{
	"house":            true,
	"parliament":       true,
	"co-chair":         true,
	"house of lords":   true,
	"house of commons": true,
}

// professionVocabulary backs the profession fallback: a disclosure that
// names only the member's trade resolves to a profession entity.
var professionVocabulary = []string{
	"author",
	"barrister",
	"broadcaster",
	"dentist",
	"doctor",
	"farmer",
	"farming",
	"journalist",
	"lecturer",
	"medical practitioner",
	"solicitor",
	"writer",
}
