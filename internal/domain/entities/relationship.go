package entities

import (
	"encoding/json"
	"strings"
)

// RelationshipType classifies a disclosure relationship. Each type is bound
// to exactly one solver strategy.
type RelationshipType string

const (
	RelationMemberOf           RelationshipType = "member_of"
	RelationDirectorOf         RelationshipType = "director_of"
	RelationShareholderOf      RelationshipType = "shareholder_of"
	RelationSignificantControl RelationshipType = "significant_control_of"
	RelationEmployedBy         RelationshipType = "employed_by"
	RelationSponsoredBy        RelationshipType = "sponsored_by"
	RelationDonationFrom       RelationshipType = "donation_from"
	RelationGiftFrom           RelationshipType = "gift_from"
	RelationVisited            RelationshipType = "visited"
	RelationOwnerOf            RelationshipType = "owner_of"
	RelationRelatedTo          RelationshipType = "related_to"
	RelationMiscellaneous      RelationshipType = "miscellaneous"
)

// AllRelationshipTypes lists every relationship type with a bound solver.
var AllRelationshipTypes = []RelationshipType{
	RelationMemberOf,
	RelationDirectorOf,
	RelationShareholderOf,
	RelationSignificantControl,
	RelationEmployedBy,
	RelationSponsoredBy,
	RelationDonationFrom,
	RelationGiftFrom,
	RelationVisited,
	RelationOwnerOf,
	RelationRelatedTo,
	RelationMiscellaneous,
}

// Known reports whether the type has a bound solver.
func (t RelationshipType) Known() bool {
	for _, known := range AllRelationshipTypes {
		if t == known {
			return true
		}
	}
	return false
}

// UnknownTarget is the sentinel target for unresolved relationships.
const UnknownTarget = "UNKNOWN"

// Relationship is one disclosure record. Before resolution Target is
// usually UnknownTarget; the pipeline writes back Target, Date, Amount and
// Resolved to produce the resolved form. Text holds the raw disclosure
// text, either a single line or a JSON-encoded list of lines.
type Relationship struct {
	Source   string           `json:"source"`
	Type     RelationshipType `json:"relationship_type"`
	Target   string           `json:"target"`
	Date     string           `json:"date,omitempty"`
	Amount   Amount           `json:"amount"`
	Text     string           `json:"text"`
	Link     string           `json:"link,omitempty"`
	Resolved bool             `json:"resolved"`
}

// TextLines decodes the raw text into its constituent lines. Compound
// entries arrive as a JSON array of strings; plain entries as a single
// line, possibly with embedded newlines.
func (r *Relationship) TextLines() []string {
	raw := strings.TrimSpace(r.Text)
	if raw == "" {
		return nil
	}
	if strings.HasPrefix(raw, "[") {
		var lines []string
		if err := json.Unmarshal([]byte(raw), &lines); err == nil {
			for i := range lines {
				lines[i] = strings.TrimSpace(lines[i])
			}
			return lines
		}
	}
	parts := strings.Split(raw, "\n")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// FirstLine returns the first text line, or "" for empty text.
func (r *Relationship) FirstLine() string {
	lines := r.TextLines()
	if len(lines) == 0 {
		return ""
	}
	return lines[0]
}

// IsResolvedTo reports whether the record already names a real target.
func (r *Relationship) IsResolvedTo() bool {
	return r.Target != "" && r.Target != UnknownTarget
}
