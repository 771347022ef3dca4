// Package parsers reads and writes the CSV record contracts: entity
// files, relationship files and the operator override table. Unset fields
// serialize as the literal sentinel "N/A", never as an empty string; the
// graph loader treats "N/A" as no value and anything else as real.
package parsers

// NA is the unset-field sentinel used across all CSV contracts.
const NA = "N/A"

// fromNA maps the sentinel to the empty string on read.
func fromNA(value string) string {
	if value == NA {
		return ""
	}
	return value
}

// toNA maps the empty string to the sentinel on write.
func toNA(value string) string {
	if value == "" {
		return NA
	}
	return value
}

// column safely retrieves a column value from a record.
func column(record []string, colIndex map[string]int, col string) string {
	if idx, ok := colIndex[col]; ok && idx < len(record) {
		return record[idx]
	}
	return ""
}
