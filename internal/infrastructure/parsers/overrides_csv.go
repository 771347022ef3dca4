package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
)

// ReadOverrides parses the operator override table: a two-column from/to
// CSV. Later rows win on duplicate from values.
func ReadOverrides(r io.Reader) (map[string]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	colIndex, err := readHeader(reader, "from", "to")
	if err != nil {
		return nil, err
	}

	overrides := make(map[string]string)
	line := 1
	for {
		line++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		from := column(record, colIndex, "from")
		if from == "" {
			continue
		}
		overrides[from] = column(record, colIndex, "to")
	}
	return overrides, nil
}
