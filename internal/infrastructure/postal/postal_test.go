package postal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_ParseAddresses(t *testing.T) {
	p := New()

	spans := p.ParseAddresses("Consultant at Acme Ltd, 12 High Street, London SW1A 1AA, paid monthly", "GB")
	require.Len(t, spans, 1)
	assert.Equal(t, "12 High Street, London SW1A 1AA", spans[0])
}

func TestParser_ParseAddresses_PostcodeAnchorsTheSpan(t *testing.T) {
	p := New()

	// Prose that mentions a street with no postcode is left alone.
	assert.Empty(t, p.ParseAddresses("We discussed the High Street economy", "GB"))
}

func TestParser_ParseAddresses_CountryGate(t *testing.T) {
	p := New()

	text := "Acme Ltd, 12 High Street, London SW1A 1AA"
	assert.Empty(t, p.ParseAddresses(text, "FR"))
	assert.NotEmpty(t, p.ParseAddresses(text, "GB"))
	assert.NotEmpty(t, p.ParseAddresses(text, "uk"))
}
