package ports

import "context"

// RegistryMatch is one candidate returned by a registry reconciliation
// query. Score scales differ per registry; callers apply per-source
// thresholds.
type RegistryMatch struct {
	Name  string  `json:"name"`
	ID    string  `json:"id"`
	Score float64 `json:"score"`
	Type  string  `json:"type,omitempty"`
}

// CorporateRegistry is a company registry reachable by fuzzy name
// reconciliation, optionally scoped to a jurisdiction.
type CorporateRegistry interface {
	// ReconcileByName returns candidate companies for the name, best
	// score first. jurisdiction may be empty for a global search.
	ReconcileByName(ctx context.Context, name, jurisdiction string) ([]RegistryMatch, error)
}

// CharityRegistry reconciles against the charity / university /
// local-authority / government registry, scoped by category ("all" for an
// unscoped search).
type CharityRegistry interface {
	ReconcileByName(ctx context.Context, name, category string) ([]RegistryMatch, error)
}

// CompanyNumberLookup resolves a registration number directly to a company
// name. This is the deterministic, highest-confidence resolution path.
type CompanyNumberLookup interface {
	// LookupByNumber returns the registered company name, or "" when the
	// number is unknown.
	LookupByNumber(ctx context.Context, number string) (string, error)
}
