// Package text provides the stateless cleanup primitives applied to
// disclosure text before entity resolution. All functions are pure and
// idempotent: applying one twice yields the same result as applying it
// once, and every function is safe to call on text it does not match.
package text

import (
	"sort"
	"strings"
)

// StripCategoryReference removes "(see category N)" and "(see category
// N(a))" markers.
func StripCategoryReference(s string) string {
	return CollapseWhitespace(reCategoryReference.ReplaceAllString(s, ""))
}

// StripRegisteredMarker removes "(Registered ...)" and "(Updated ...)"
// parentheticals.
func StripRegisteredMarker(s string) string {
	return CollapseWhitespace(reRegisteredMarker.ReplaceAllString(s, ""))
}

// StripJobTitles removes position titles ("Director,", "Chairman" etc.)
// from the text. The vocabulary is matched longest-first so compound titles
// are consumed whole.
func StripJobTitles(s string) string {
	return CollapseWhitespace(rePositions.ReplaceAllString(s, ""))
}

// StripDateRangePrefix removes "until <tokens>," and "from <tokens>,"
// spans, case-insensitive.
func StripDateRangePrefix(s string) string {
	return CollapseWhitespace(reDateRangePrefix.ReplaceAllString(s, ""))
}

// StripParenthetical removes any non-nested "(...)" span that is not an
// all-caps/digits token of length >= 2. Legal suffixes like "(UK)" survive;
// descriptive asides like "(dormant company)" do not.
func StripParenthetical(s string) string {
	out := reParenthetical.ReplaceAllStringFunc(s, func(match string) string {
		if reLegalSuffixParen.MatchString(match) {
			return match
		}
		return ""
	})
	return CollapseWhitespace(out)
}

// StripDescribedParenthetical removes only "(...)" spans containing one of
// the descriptive markers (ceased, dormant, until...), leaving all other
// parentheticals alone. Used by the significant-control cleanup, whose
// entries are otherwise near-canonical.
func StripDescribedParenthetical(s string) string {
	out := reParenthetical.ReplaceAllStringFunc(s, func(match string) string {
		lower := strings.ToLower(match)
		for _, marker := range inParenthesisMarkers {
			if strings.Contains(lower, marker) {
				return ""
			}
		}
		return match
	})
	return CollapseWhitespace(out)
}

// StripShareClass removes share-class boilerplate such as ", ordinary
// shares" or "£1 preference shares".
func StripShareClass(s string) string {
	return CollapseWhitespace(reShareClass.ReplaceAllString(s, ""))
}

// StripSpans removes each given span from the text. Used with the postal
// address extractor: the caller finds address spans, this drops them.
func StripSpans(s string, spans []string) string {
	for _, span := range spans {
		if span == "" {
			continue
		}
		s = strings.ReplaceAll(s, span, "")
	}
	return CollapseWhitespace(s)
}

// SplitOnDelimiters splits the text on each contained delimiter, longest
// delimiter first, keeping segment `which` each time.
func SplitOnDelimiters(s string, delimiters []string, which int) string {
	sorted := make([]string, len(delimiters))
	copy(sorted, delimiters)
	sort.Slice(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })

	for _, delim := range sorted {
		if !strings.Contains(s, delim) {
			continue
		}
		parts := strings.Split(s, delim)
		idx := which
		if idx < 0 || idx >= len(parts) {
			idx = 0
		}
		s = parts[idx]
	}
	return strings.TrimSpace(s)
}

// StripLeadingTokens removes configured marker words from the start of the
// text, case-insensitive, longest-first, until none apply.
func StripLeadingTokens(s string, starters []string) string {
	sorted := make([]string, len(starters))
	copy(sorted, starters)
	sort.Slice(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })

	s = strings.TrimSpace(s)
	for {
		stripped := false
		for _, starter := range sorted {
			prefix := starter
			if !strings.HasSuffix(prefix, " ") && !strings.HasSuffix(prefix, ",") {
				prefix += " "
			}
			if len(s) > len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
				s = strings.TrimSpace(s[len(prefix):])
				stripped = true
			}
		}
		if !stripped {
			return s
		}
	}
}

// StripTrailingTokens removes configured marker words from the end of the
// text, case-insensitive, longest-first, until none apply.
func StripTrailingTokens(s string, enders []string) string {
	sorted := make([]string, len(enders))
	copy(sorted, enders)
	sort.Slice(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })

	s = strings.TrimSpace(s)
	for {
		stripped := false
		for _, ender := range sorted {
			// An ender only binds as a whole trailing token, never as the
			// tail of a word.
			suffix := " " + ender
			if len(s) > len(suffix) && strings.EqualFold(s[len(s)-len(suffix):], suffix) {
				s = strings.TrimSpace(s[:len(s)-len(suffix)])
				stripped = true
			}
		}
		if !stripped {
			return s
		}
	}
}

// Replacement is one ordered literal substitution.
type Replacement struct {
	From string
	To   string
}

// ApplyReplacements applies each literal substitution in order, repeating
// until the text is stable so collapsing substitutions (like double-space
// to space) fully settle.
func ApplyReplacements(s string, replacements []Replacement) string {
	for {
		before := s
		for _, r := range replacements {
			s = strings.ReplaceAll(s, r.From, r.To)
		}
		if s == before {
			return strings.TrimSpace(s)
		}
	}
}
