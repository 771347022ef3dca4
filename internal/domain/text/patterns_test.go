package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractRegistrationNumber(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"five digits is too short", "Acme Ltd, registration number 64053", ""},
		{"six digit number", "Acme Ltd, registration 640531", "00640531"},
		{"eight digit number", "Registration: 01234567", "01234567"},
		{"prefixed number", "OC304323", "OC304323"},
		{"number with internal space", "registration 0123 4567", "01234567"},
		{"no number", "Acme Holdings Ltd", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractRegistrationNumber(tt.in))
		})
	}
}

func TestPropertyMultiplier(t *testing.T) {
	assert.Equal(t, 1.0, PropertyMultiplier("House in Somerset: (i)"))
	assert.Equal(t, 2.0, PropertyMultiplier("Two flats in London: (i) and (ii)"))
	assert.Equal(t, 0.5, PropertyMultiplier("A half share in a cottage"))
	// Longest marker wins over its substrings.
	assert.Equal(t, 0.33, PropertyMultiplier("a third share of a farmhouse"))
	assert.Equal(t, 4.0, PropertyMultiplier("four adjoining cottages in Bristol"))
}

func TestRecurringPaymentPattern(t *testing.T) {
	assert.True(t, ReRecurringPayment.MatchString("£20,000 per annum for advisory work"))
	assert.True(t, ReRecurringPayment.MatchString("paid monthly"))
	assert.True(t, ReRecurringPayment.MatchString("£500 a month"))
	assert.False(t, ReRecurringPayment.MatchString("received a payment of £500"))
}

func TestSinglePaymentPattern(t *testing.T) {
	assert.True(t, ReSinglePayment.MatchString("received a payment of £500"))
	assert.True(t, ReSinglePayment.MatchString("fee of £1,000 for an article"))
	assert.False(t, ReSinglePayment.MatchString("£20,000 per annum"))
}

func TestMultiEntryPattern(t *testing.T) {
	matches := ReMultiEntry.FindAllStringSubmatch("(1) Acme Holdings (2) Widget Group", -1)
	assert.Len(t, matches, 2)
	assert.Equal(t, "Acme Holdings ", matches[0][1])
	assert.Equal(t, "Widget Group", matches[1][1])
}

func TestStripPunctuation(t *testing.T) {
	assert.Equal(t, "Acme Holdings Ltd", StripPunctuation("Acme, Holdings. Ltd!"))
}

func TestAlphaNumeric(t *testing.T) {
	assert.Equal(t, "acmeholdingsltd", AlphaNumeric("Acme Holdings, Ltd."))
}
