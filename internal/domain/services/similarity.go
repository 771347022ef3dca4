package services

import (
	"strings"

	"github.com/ersonp/register-graph/internal/domain/text"
)

// organisationSuffixes are dropped when normalizing names for comparison.
// Registries and disclosures disagree on legal-form suffixes far more
// often than on the distinctive part of a name.
var organisationSuffixes = []string{
	"incorporated",
	"international",
	"partnership",
	"limited",
	"holdings",
	"services",
	"group",
	"ltd",
	"llp",
	"plc",
	"inc",
	"uk",
	"co",
}

// nameStopwords are dropped alongside the suffixes.
var nameStopwords = []string{"the", "of", "and", "for"}

// relaxedGuardNames may match on a single normalized word. "care" covers
// the common "X Care" charity naming pattern.
var relaxedGuardNames = map[string]bool{
	"care": true,
}

// NamesSimilar decides whether a registry name is close enough to the
// query text to accept the reconciliation. Anything failing every rule is
// a possible match at best and stays unaccepted.
func NamesSimilar(registryName, query string) bool {
	registry := strings.ToLower(strings.TrimSpace(registryName))
	queried := strings.ToLower(strings.TrimSpace(query))
	if registry == "" || queried == "" {
		return false
	}

	queryWords := len(strings.Fields(queried))

	if text.StripPunctuation(registry) == text.StripPunctuation(queried) && queryWords >= 2 {
		return true
	}

	normRegistry := normalizeName(registry)
	normQuery := normalizeName(queried)
	if normRegistry != "" && normRegistry == normQuery {
		if queryWords >= 2 || relaxedGuardNames[normQuery] {
			return true
		}
	}

	shorter, longer := normRegistry, normQuery
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if shorter != "" && strings.Contains(longer, shorter) && len(strings.Fields(shorter)) > 2 {
		return true
	}

	if text.AlphaNumeric(registry) != "" && text.AlphaNumeric(registry) == text.AlphaNumeric(queried) {
		return true
	}

	// Registries wrap some names as "The X" or "X (The)".
	unwrapped := registry
	unwrapped = strings.TrimPrefix(unwrapped, "the ")
	unwrapped = strings.TrimSuffix(unwrapped, " (the)")
	if unwrapped != registry && strings.TrimSpace(unwrapped) == queried {
		return true
	}

	return false
}

// normalizeName strips punctuation, organisation suffixes and stopwords,
// and collapses whitespace.
func normalizeName(name string) string {
	stripped := text.StripPunctuation(strings.ToLower(name))
	var kept []string
	for _, word := range strings.Fields(stripped) {
		if wordIn(word, organisationSuffixes) || wordIn(word, nameStopwords) {
			continue
		}
		kept = append(kept, word)
	}
	return strings.Join(kept, " ")
}

func wordIn(word string, words []string) bool {
	for _, w := range words {
		if word == w {
			return true
		}
	}
	return false
}
