package text

import (
	"regexp"
	"sort"
	"strings"
)

// Positions is the fixed vocabulary of job / position titles stripped from
// disclosure text before entity resolution.
var Positions = []string{
	"Adviser",
	"Advisor",
	"Ambassador",
	"Chair",
	"Chairman",
	"Chairperson",
	"Chief Executive",
	"Chief Executive Officer",
	"Columnist",
	"Commissioner",
	"Consultant",
	"Co-Chair",
	"Deputy Chairman",
	"Director",
	"Executive Director",
	"Fellow",
	"Governor",
	"Honorary Fellow",
	"Member",
	"Non-executive Chairman",
	"Non-executive Director",
	"Non-Executive Director",
	"Partner",
	"Patron",
	"Presenter",
	"President",
	"Secretary",
	"Senior Adviser",
	"Treasurer",
	"Trustee",
	"Vice Chairman",
	"Vice President",
}

// inParenthesisMarkers flag parenthetical asides that describe the interest
// rather than name the organisation, e.g. "(dormant company)" or
// "(interest ceased 10 December 2019)".
var inParenthesisMarkers = []string{
	"ceased",
	"dormant",
	"interest",
	"registered",
	"resigned",
	"until",
	"updated",
}

// Identifier vocabularies: a lexical cue in the raw text selects a scoped
// registry category before falling back to a blanket search.
var (
	UniversityIdentifiers      = []string{"university", "college"}
	EducationIdentifiers       = []string{"school", "academy", "education"}
	CharityIdentifiers         = []string{"charity", "charitable", "foundation", "society"}
	LocalGovernmentIdentifiers = []string{"council", "borough", "local authority"}
	HealthIdentifiers          = []string{"nhs", "hospital", "health"}
	CompanyIdentifiers         = []string{"ltd", "limited", "plc", "llp", "company"}
)

var (
	reCategoryReference = regexp.MustCompile(`(?i)\(see category [0-9]+(\([a-z]\))?\)`)
	reRegisteredMarker  = regexp.MustCompile(`(?i)\((registered|updated)[^()]*\)`)
	reDateRangePrefix   = regexp.MustCompile(`(?i)\b(until|from) [^,]+, ?`)
	reParenthetical     = regexp.MustCompile(`\([^()]+\)`)
	reLegalSuffixParen  = regexp.MustCompile(`^\([A-Z0-9 ]{2,}\)$`)
	reShareClass        = regexp.MustCompile(`(?i),? ?\b(ordinary|preference|deferred|redeemable)( [a-z0-9£.]+)? shares?\b`)
	reWhitespaceRun     = regexp.MustCompile(`\s{2,}`)
	rePunctuation       = regexp.MustCompile(`[^\w\s]`)
	reNonAlphaNumeric   = regexp.MustCompile(`[^a-z0-9]`)

	rePositions = compilePositionsPattern()

	// ReRecurringPayment matches the lexical cues for a periodic payment.
	ReRecurringPayment = regexp.MustCompile(`(?i)\b(per (year|annum|month|week|day|hour)|a (year|month|week)|p\.a\.|annually|monthly|quarterly|weekly|daily|each (year|month|week))\b`)

	// ReSinglePayment matches the lexical cues for a one-off payment.
	ReSinglePayment = regexp.MustCompile(`(?i)\b(payment of|fee (of|received)|received a payment|in payment|single payment)\b`)

	// ReMultiEntry matches "(1) Some Name" style multi-entries inside one
	// compound name value.
	ReMultiEntry = regexp.MustCompile(`\([0-9]+\) ([a-zA-Z ]+)`)
)

// compilePositionsPattern builds a single alternation of the position
// vocabulary, longest first, so that "Non-executive Director" is consumed
// before "Director" can clobber part of it.
func compilePositionsPattern() *regexp.Regexp {
	sorted := make([]string, len(Positions))
	copy(sorted, Positions)
	sort.Slice(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })

	quoted := make([]string, len(sorted))
	for i, p := range sorted {
		quoted[i] = regexp.QuoteMeta(p)
	}
	return regexp.MustCompile(`(?i)\b(` + strings.Join(quoted, "|") + `),? `)
}

// PropertyMultipliers maps lexical share/count markers in property
// disclosures to an entity-count multiplier.
var PropertyMultipliers = map[string]float64{
	"a third share": 0.33,
	"third share":   0.33,
	"a half share":  0.5,
	"half share":    0.5,
	"half":          0.5,
	"two":           2,
	"various":       2,
	"flats":         2,
	"houses":        2,
	"properties":    2,
	"three":         3,
	"four":          4,
	"five":          5,
	"six":           6,
	"seven":         7,
	"eight":         8,
	"nine":          9,
	"ten":           10,
}

// PropertyMultiplier returns the multiplier encoded in property disclosure
// text, or 1 when no marker is present. Longest marker wins.
func PropertyMultiplier(s string) float64 {
	lower := strings.ToLower(s)
	best := ""
	for marker := range PropertyMultipliers {
		if strings.Contains(lower, marker) && len(marker) > len(best) {
			best = marker
		}
	}
	if best == "" {
		return 1
	}
	return PropertyMultipliers[best]
}

// CompaniesHousePrefixes are the two-letter jurisdiction prefixes a company
// registration number may carry.
var CompaniesHousePrefixes = []string{
	"AC", "ZC", "FC", "GE", "LP", "OC", "SE", "SA", "SZ", "SF", "GS", "SL",
	"SO", "SC", "ES", "NA", "NZ", "NF", "GN", "NL", "NC", "RO", "NI", "EN",
	"IP", "SP", "IC", "SI", "NP", "NV", "RC", "SR", "NR", "NO",
}

var reRegistrationNumber = regexp.MustCompile(
	`\b((?:` + strings.Join(CompaniesHousePrefixes, "|") + `)[0-9]{1,6}|[0-9]{6,8})\b`)

var reRegistrationSplit = regexp.MustCompile(`(?i)registration( number)?:? ?`)

// ExtractRegistrationNumber finds a company-style registration number in
// the text and zero-pads the numeric part to 8 characters. Returns "" when
// no plausible number is present.
func ExtractRegistrationNumber(s string) string {
	parts := reRegistrationSplit.Split(s, -1)
	candidate := strings.TrimSpace(parts[len(parts)-1])
	candidate = strings.ReplaceAll(candidate, " ", "")

	match := reRegistrationNumber.FindStringSubmatch(candidate)
	if match == nil {
		return ""
	}
	number := match[1]
	for len(number) < 8 {
		number = "0" + number
	}
	return number
}

// StripPunctuation removes punctuation characters, collapsing whitespace.
func StripPunctuation(s string) string {
	return CollapseWhitespace(rePunctuation.ReplaceAllString(s, ""))
}

// AlphaNumeric reduces the text to its lowercase alphanumeric characters.
func AlphaNumeric(s string) string {
	return reNonAlphaNumeric.ReplaceAllString(strings.ToLower(s), "")
}

// CollapseWhitespace folds runs of whitespace to single spaces and trims.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(reWhitespaceRun.ReplaceAllString(s, " "))
}
