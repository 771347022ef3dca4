package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/ersonp/register-graph/internal/domain/entities"
)

// entityColumns is the entity file contract, in column order.
var entityColumns = []string{
	"entity_type",
	"name",
	"company_registration",
	"findthatcharity_registration",
	"address",
	"date_of_birth",
	"email",
	"twitter",
	"facebook",
	"linkedin",
	"aliases",
}

// ReadEntities parses an entity CSV file.
func ReadEntities(r io.Reader) ([]*entities.Entity, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	colIndex, err := readHeader(reader, "entity_type", "name")
	if err != nil {
		return nil, err
	}

	var out []*entities.Entity
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

		entityType := entities.EntityType(column(record, colIndex, "entity_type"))
		if !entityType.Valid() {
			return nil, fmt.Errorf("line %d: unknown entity type %q", line, entityType)
		}

		e := entities.NewEntity(entityType, column(record, colIndex, "name"))
		e.CompanyRegistration = fromNA(column(record, colIndex, "company_registration"))
		e.CharityRegistration = fromNA(column(record, colIndex, "findthatcharity_registration"))
		e.Address = fromNA(column(record, colIndex, "address"))
		e.DateOfBirth = fromNA(column(record, colIndex, "date_of_birth"))
		e.Email = fromNA(column(record, colIndex, "email"))
		e.Twitter = fromNA(column(record, colIndex, "twitter"))
		e.Facebook = fromNA(column(record, colIndex, "facebook"))
		e.LinkedIn = fromNA(column(record, colIndex, "linkedin"))

		if aliases := fromNA(column(record, colIndex, "aliases")); aliases != "" {
			for _, alias := range strings.Split(aliases, ";") {
				e.AddAlias(alias)
			}
		}
		out = append(out, e)
	}
	return out, nil
}

// WriteEntities writes the entity CSV file, aliases semicolon-joined.
func WriteEntities(w io.Writer, list []*entities.Entity) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(entityColumns); err != nil {
		return fmt.Errorf("writing entity header: %w", err)
	}

	for _, e := range list {
		record := []string{
			string(e.Type),
			e.Name,
			toNA(e.CompanyRegistration),
			toNA(e.CharityRegistration),
			toNA(e.Address),
			toNA(e.DateOfBirth),
			toNA(e.Email),
			toNA(e.Twitter),
			toNA(e.Facebook),
			toNA(e.LinkedIn),
			toNA(strings.Join(e.SortedAliases(), ";")),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("writing entity %s: %w", e.Name, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// readHeader reads the header row and checks the required columns.
func readHeader(reader *csv.Reader, required ...string) (map[string]int, error) {
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	colIndex := make(map[string]int, len(header))
	for i, col := range header {
		colIndex[strings.TrimSpace(col)] = i
	}
	for _, col := range required {
		if _, ok := colIndex[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}
	return colIndex, nil
}
