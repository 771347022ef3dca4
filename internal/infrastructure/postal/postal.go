// Package postal implements postal-address span extraction. Disclosure
// text embeds addresses inline ("of 12 High Street, London SW1A 1AA"),
// and the employment cleanup strips them before name resolution.
package postal

import (
	"regexp"
	"strings"
)

// A UK address span is approximated as a short run of comma-separated
// segments ending in a postcode. The postcode anchors the match; without
// one, prose that merely mentions a street is left alone.
var (
	rePostcode = regexp.MustCompile(`\b[A-Z]{1,2}[0-9][A-Z0-9]?\s*[0-9][A-Z]{2}\b`)
	reSegment  = regexp.MustCompile(`(?i)(?:[0-9]+[a-z]?\s+)?[a-z0-9' .-]+`)
)

// maxSegments bounds how far back from a postcode a span may reach.
const maxSegments = 4

// Parser extracts UK address spans. Implements ports.AddressParser.
type Parser struct{}

// New creates a Parser.
func New() *Parser {
	return &Parser{}
}

// ParseAddresses returns every address span found in the text. Only "GB"
// is supported; other country codes yield no spans.
func (p *Parser) ParseAddresses(text, country string) []string {
	if !strings.EqualFold(country, "GB") && !strings.EqualFold(country, "UK") {
		return nil
	}

	var spans []string
	for _, loc := range rePostcode.FindAllStringIndex(text, -1) {
		span := expandSpan(text, loc[0], loc[1])
		if span != "" {
			spans = append(spans, span)
		}
	}
	return spans
}

// expandSpan walks backwards from the postcode over comma-separated
// address segments.
func expandSpan(text string, start, end int) string {
	prefix := text[:start]
	segments := 0
	cut := start

	for segments < maxSegments {
		trimmed := strings.TrimRight(prefix[:cut], " ")
		comma := strings.LastIndex(trimmed, ",")
		if comma < 0 {
			break
		}
		segment := strings.TrimSpace(trimmed[comma+1:])
		if segment == "" || !reSegment.MatchString(segment) || len(strings.Fields(segment)) > 5 {
			break
		}
		cut = comma
		segments++
	}

	span := strings.TrimSpace(strings.Trim(text[cut:end], ","))
	if span == "" {
		return ""
	}
	return span
}
