// Package registries holds helpers shared by the registry adapters.
package registries

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/ersonp/register-graph/internal/domain/entities"
)

// LinkResolution is a registration reference recovered from a pasted
// registry URL.
type LinkResolution struct {
	Registration string
	Type         entities.EntityType
}

var (
	reOpenCorporates = regexp.MustCompile(`^/companies/[a-z_]+/([A-Za-z0-9]+)`)
	reCompaniesHouse = regexp.MustCompile(`^/company/([A-Za-z0-9]+)`)
	reFindThatOrgID  = regexp.MustCompile(`^/orgid/GB-([A-Z]+)-([A-Za-z0-9-]+)`)
)

// ParseLink sniffs a registry URL for a registration identifier. It
// recognizes OpenCorporates and Companies House company pages and
// Find that Charity org-id pages; anything else returns nil. Operators
// paste these links when supplying an entity manually, which pins the
// entity to a registry record instead of free text.
func ParseLink(link string) *LinkResolution {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil || u.Host == "" {
		return nil
	}
	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")

	switch {
	case host == "opencorporates.com":
		if m := reOpenCorporates.FindStringSubmatch(u.Path); m != nil {
			return &LinkResolution{Registration: m[1], Type: entities.TypeCompany}
		}

	case strings.HasSuffix(host, "company-information.service.gov.uk"):
		if m := reCompaniesHouse.FindStringSubmatch(u.Path); m != nil {
			return &LinkResolution{Registration: m[1], Type: entities.TypeCompany}
		}

	case host == "findthatcharity.uk":
		if m := reFindThatOrgID.FindStringSubmatch(u.Path); m != nil {
			entityType := entities.TypeCharity
			if m[1] == "LAE" || m[1] == "LAS" || m[1] == "LANI" {
				entityType = entities.TypeLocalAuthority
			}
			return &LinkResolution{Registration: m[2], Type: entityType}
		}
	}
	return nil
}
