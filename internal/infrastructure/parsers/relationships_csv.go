package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/ersonp/register-graph/internal/domain/entities"
)

// relationshipColumns is the relationship file contract, in column order.
var relationshipColumns = []string{
	"source",
	"relationship_type",
	"target",
	"date",
	"amount",
	"text",
	"link",
	"resolved",
}

// ReadRelationships parses a relationship CSV file in file order.
func ReadRelationships(r io.Reader) ([]*entities.Relationship, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	colIndex, err := readHeader(reader, "source", "relationship_type", "target", "text")
	if err != nil {
		return nil, err
	}

	var out []*entities.Relationship
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

		rel := &entities.Relationship{
			Source:   column(record, colIndex, "source"),
			Type:     relationshipType(column(record, colIndex, "relationship_type")),
			Target:   column(record, colIndex, "target"),
			Date:     fromNA(column(record, colIndex, "date")),
			Amount:   entities.ParseAmount(column(record, colIndex, "amount")),
			Text:     column(record, colIndex, "text"),
			Link:     fromNA(column(record, colIndex, "link")),
			Resolved: column(record, colIndex, "resolved") == "true",
		}
		out = append(out, rel)
	}
	return out, nil
}

// relationshipType maps the column value onto the taxonomy. Raw register
// rows carry the Commons category number or the Lords category label
// instead of a relationship type.
func relationshipType(value string) entities.RelationshipType {
	if mapped, ok := entities.CommonsCategories[value]; ok {
		return mapped
	}
	if mapped, ok := entities.LordsCategories[value]; ok {
		return mapped
	}
	return entities.RelationshipType(value)
}

// WriteRelationships writes the relationship CSV file.
func WriteRelationships(w io.Writer, list []*entities.Relationship) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(relationshipColumns); err != nil {
		return fmt.Errorf("writing relationship header: %w", err)
	}

	for _, rel := range list {
		record := []string{
			rel.Source,
			string(rel.Type),
			rel.Target,
			toNA(rel.Date),
			rel.Amount.String(),
			rel.Text,
			toNA(rel.Link),
			strconv.FormatBool(rel.Resolved),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("writing relationship for %s: %w", rel.Source, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
