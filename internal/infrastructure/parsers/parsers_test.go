package parsers

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ersonp/register-graph/internal/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadEntities(t *testing.T) {
	in := strings.NewReader(strings.Join([]string{
		"entity_type,name,company_registration,findthatcharity_registration,address,date_of_birth,email,twitter,facebook,linkedin,aliases",
		`company,ACME HOLDINGS LTD,00640531,N/A,N/A,N/A,N/A,N/A,N/A,N/A,acme;acme holdings`,
		`politician,JOHN SMITH,N/A,N/A,N/A,1970-01-01,N/A,@jsmith,N/A,N/A,N/A`,
	}, "\n"))

	list, err := ReadEntities(in)
	require.NoError(t, err)
	require.Len(t, list, 2)

	acme := list[0]
	assert.Equal(t, entities.TypeCompany, acme.Type)
	assert.Equal(t, "ACME HOLDINGS LTD", acme.Name)
	assert.Equal(t, "00640531", acme.CompanyRegistration)
	assert.Empty(t, acme.CharityRegistration)
	assert.True(t, acme.HasAlias("acme"))
	assert.True(t, acme.HasAlias("acme holdings"))
	assert.True(t, acme.HasAlias("acme holdings ltd"))

	smith := list[1]
	assert.Equal(t, entities.TypePolitician, smith.Type)
	assert.Equal(t, "1970-01-01", smith.DateOfBirth)
	assert.Equal(t, "@jsmith", smith.Twitter)
}

func TestReadEntities_UnknownType(t *testing.T) {
	in := strings.NewReader("entity_type,name\nspaceship,APOLLO\n")

	_, err := ReadEntities(in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown entity type")
}

func TestReadEntities_MissingRequiredColumn(t *testing.T) {
	in := strings.NewReader("name,aliases\nACME,N/A\n")

	_, err := ReadEntities(in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required column")
}

func TestWriteEntities_RoundTrip(t *testing.T) {
	original := []*entities.Entity{
		entities.NewEntity(entities.TypeCompany, "Acme Holdings Ltd", "acme"),
	}
	original[0].CompanyRegistration = "00640531"

	var buf bytes.Buffer
	require.NoError(t, WriteEntities(&buf, original))

	// Unset fields carry the sentinel, never an empty cell.
	assert.Contains(t, buf.String(), "N/A")

	parsed, err := ReadEntities(&buf)
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.Equal(t, "ACME HOLDINGS LTD", parsed[0].Name)
	assert.Equal(t, "00640531", parsed[0].CompanyRegistration)
	assert.True(t, parsed[0].HasAlias("acme"))
}

func TestReadRelationships(t *testing.T) {
	in := strings.NewReader(strings.Join([]string{
		"source,relationship_type,target,date,amount,text,link,resolved",
		`JOHN SMITH,director_of,UNKNOWN,N/A,N/A,"Director, Acme Holdings Ltd",N/A,false`,
		`JOHN SMITH,employed_by,ACME LTD,14 May 2019,recurring,Consultancy,https://example.org/r1,true`,
		`JOHN SMITH,gift_from,JANE DOE,N/A,500,Gift of tickets,N/A,true`,
	}, "\n"))

	list, err := ReadRelationships(in)
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, entities.RelationDirectorOf, list[0].Type)
	assert.Equal(t, entities.AmountUnset, list[0].Amount.Kind)
	assert.False(t, list[0].Resolved)
	assert.Empty(t, list[0].Date)

	assert.True(t, list[1].Amount.IsRecurring())
	assert.True(t, list[1].Resolved)
	assert.Equal(t, "https://example.org/r1", list[1].Link)

	assert.Equal(t, entities.NewAmount(500), list[2].Amount)
}

func TestReadRelationships_MapsRegisterCategories(t *testing.T) {
	in := strings.NewReader(strings.Join([]string{
		"source,relationship_type,target,date,amount,text,link,resolved",
		`JOHN SMITH,4,UNKNOWN,N/A,N/A,Visit to Brussels,N/A,false`,
		`LORD EXAMPLE,Category 1,UNKNOWN,N/A,N/A,"Director, Acme Holdings Ltd",N/A,false`,
		`JOHN SMITH,7,UNKNOWN,N/A,N/A,Shareholding in Widget plc,N/A,false`,
	}, "\n"))

	list, err := ReadRelationships(in)
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, entities.RelationVisited, list[0].Type)
	assert.Equal(t, entities.RelationDirectorOf, list[1].Type)
	assert.Equal(t, entities.RelationShareholderOf, list[2].Type)
}

func TestWriteRelationships_RoundTrip(t *testing.T) {
	original := []*entities.Relationship{
		{
			Source:   "JOHN SMITH",
			Type:     entities.RelationEmployedBy,
			Target:   "ACME LTD",
			Amount:   entities.RecurringAmount(),
			Text:     "Consultancy work",
			Resolved: true,
		},
		{
			Source: "JOHN SMITH",
			Type:   entities.RelationMemberOf,
			Target: entities.UnknownTarget,
			Text:   "Member of a local club",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteRelationships(&buf, original))

	parsed, err := ReadRelationships(&buf)
	require.NoError(t, err)
	require.Len(t, parsed, 2)

	assert.True(t, parsed[0].Amount.IsRecurring())
	assert.True(t, parsed[0].Resolved)
	assert.Equal(t, entities.AmountUnset, parsed[1].Amount.Kind)
	assert.False(t, parsed[1].Resolved)
	assert.Equal(t, entities.UnknownTarget, parsed[1].Target)
}

func TestReadOverrides(t *testing.T) {
	in := strings.NewReader("from,to\nBritsh Gas,British Gas\nBritsh Gas,British Gas plc\n,ignored\n")

	overrides, err := ReadOverrides(in)
	require.NoError(t, err)

	// Later rows win; empty from values are skipped.
	assert.Equal(t, map[string]string{"Britsh Gas": "British Gas plc"}, overrides)
}
