package mocks

import (
	"context"

	"github.com/ersonp/register-graph/internal/domain/entities"
)

// AddressParser is a mock implementation of ports.AddressParser.
type AddressParser struct {
	// Spans is returned for every input.
	Spans []string
}

// ParseAddresses returns the configured spans.
func (m *AddressParser) ParseAddresses(_, _ string) []string {
	return m.Spans
}

// UnresolvedCallback is a mock implementation of ports.UnresolvedCallback.
type UnresolvedCallback struct {
	// Entity is returned for every record; nil declines to resolve.
	Entity *entities.Entity

	// Err is returned when set.
	Err error

	// Calls counts invocations.
	Calls int
}

// ResolveManually returns the configured entity or error.
func (m *UnresolvedCallback) ResolveManually(_ context.Context, _ *entities.Relationship) (*entities.Entity, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Entity, nil
}
