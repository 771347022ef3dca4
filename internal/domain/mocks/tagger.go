// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"

	"github.com/ersonp/register-graph/internal/domain/ports"
)

// EntityTagger is a mock implementation of ports.EntityTagger.
type EntityTagger struct {
	// ByText maps exact input text to spans; checked before Spans.
	ByText map[string][]ports.TaggedSpan

	// Spans is the fallback return value.
	Spans []ports.TaggedSpan

	// Err is returned when set.
	Err error

	// Calls records every input text, in order.
	Calls []string
}

// ExtractEntities returns the configured spans or error.
func (m *EntityTagger) ExtractEntities(_ context.Context, text string) ([]ports.TaggedSpan, error) {
	m.Calls = append(m.Calls, text)
	if m.Err != nil {
		return nil, m.Err
	}
	if spans, ok := m.ByText[text]; ok {
		return spans, nil
	}
	return m.Spans, nil
}
