package entities

import (
	"encoding/json"
	"strconv"
)

// AmountKind discriminates the three legal amount states.
type AmountKind int

const (
	// AmountUnset serializes as the "N/A" sentinel.
	AmountUnset AmountKind = iota
	// AmountValue is a non-negative integer number of pounds.
	AmountValue
	// AmountRecurring marks a periodic payment rather than a one-off sum.
	AmountRecurring
)

// AmountNA is the serialized form of an unset amount. Downstream graph
// loading treats exactly this literal as "no value".
const AmountNA = "N/A"

// AmountRecurringLiteral is the serialized form of a recurring payment.
const AmountRecurringLiteral = "recurring"

// Amount is a disclosed monetary amount: a non-negative integer, the
// recurring sentinel, or unset.
type Amount struct {
	Kind  AmountKind
	Value int
}

// NewAmount returns a concrete integer amount. Negative inputs clamp to 0.
func NewAmount(value int) Amount {
	if value < 0 {
		value = 0
	}
	return Amount{Kind: AmountValue, Value: value}
}

// RecurringAmount returns the recurring-payment sentinel.
func RecurringAmount() Amount {
	return Amount{Kind: AmountRecurring}
}

// ParseAmount parses a serialized amount column value.
func ParseAmount(s string) Amount {
	switch s {
	case "", AmountNA:
		return Amount{}
	case AmountRecurringLiteral:
		return RecurringAmount()
	}
	if v, err := strconv.Atoi(s); err == nil {
		return NewAmount(v)
	}
	return Amount{}
}

// String renders the amount in its column form.
func (a Amount) String() string {
	switch a.Kind {
	case AmountValue:
		return strconv.Itoa(a.Value)
	case AmountRecurring:
		return AmountRecurringLiteral
	default:
		return AmountNA
	}
}

// IsRecurring reports whether the amount is the recurring sentinel.
func (a Amount) IsRecurring() bool {
	return a.Kind == AmountRecurring
}

// MarshalJSON serializes the amount as its column form.
func (a Amount) MarshalJSON() ([]byte, error) {
	if a.Kind == AmountValue {
		return json.Marshal(a.Value)
	}
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts either a number or a sentinel string.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*a = NewAmount(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*a = ParseAmount(s)
	return nil
}
