package services

import (
	"strings"

	"github.com/ersonp/register-graph/internal/infrastructure/logger"
)

// OverrideTable maps known-bad source values onto corrected ones. The
// register contains recurring misspellings and renamed organisations that
// no registry lookup can fix; operators maintain the corrections as a
// from/to table loaded at startup.
type OverrideTable struct {
	log   *logger.Logger
	swaps map[string]string
}

// NewOverrideTable creates a table from from/to pairs. Lookup is
// case-insensitive on the from side.
func NewOverrideTable(pairs map[string]string, log *logger.Logger) *OverrideTable {
	swaps := make(map[string]string, len(pairs))
	for from, to := range pairs {
		swaps[strings.ToLower(strings.TrimSpace(from))] = to
	}
	return &OverrideTable{log: log, swaps: swaps}
}

// Swap returns the corrected value, or the input unchanged when no
// correction is configured.
func (t *OverrideTable) Swap(value string) string {
	if t == nil || len(t.swaps) == 0 {
		return value
	}
	if to, ok := t.swaps[strings.ToLower(strings.TrimSpace(value))]; ok {
		t.log.Info("value overridden", "from", value, "to", to)
		return to
	}
	return value
}
