package mocks

import (
	"context"
	"strings"

	"github.com/ersonp/register-graph/internal/domain/ports"
)

// CorporateRegistry is a mock implementation of ports.CorporateRegistry.
type CorporateRegistry struct {
	// ByName maps lowercase query names to matches; checked before Matches.
	ByName map[string][]ports.RegistryMatch

	// Matches is the fallback return value.
	Matches []ports.RegistryMatch

	// Err is returned when set.
	Err error

	// Queries records every (name, jurisdiction) pair.
	Queries [][2]string
}

// ReconcileByName returns the configured matches or error.
func (m *CorporateRegistry) ReconcileByName(_ context.Context, name, jurisdiction string) ([]ports.RegistryMatch, error) {
	m.Queries = append(m.Queries, [2]string{name, jurisdiction})
	if m.Err != nil {
		return nil, m.Err
	}
	if matches, ok := m.ByName[strings.ToLower(name)]; ok {
		return matches, nil
	}
	return m.Matches, nil
}

// CharityRegistry is a mock implementation of ports.CharityRegistry.
type CharityRegistry struct {
	ByName  map[string][]ports.RegistryMatch
	Matches []ports.RegistryMatch
	Err     error

	// Queries records every (name, category) pair.
	Queries [][2]string
}

// ReconcileByName returns the configured matches or error.
func (m *CharityRegistry) ReconcileByName(_ context.Context, name, category string) ([]ports.RegistryMatch, error) {
	m.Queries = append(m.Queries, [2]string{name, category})
	if m.Err != nil {
		return nil, m.Err
	}
	if matches, ok := m.ByName[strings.ToLower(name)]; ok {
		return matches, nil
	}
	return m.Matches, nil
}

// CompanyNumberLookup is a mock implementation of ports.CompanyNumberLookup.
type CompanyNumberLookup struct {
	// Names maps registration numbers to company names.
	Names map[string]string

	// Err is returned when set.
	Err error
}

// LookupByNumber returns the configured name or error.
func (m *CompanyNumberLookup) LookupByNumber(_ context.Context, number string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return m.Names[number], nil
}
