package xlsxreport

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/domain"
)

func sampleRun() (domain.FullConceptResource, []domain.PartitionedResource) {
	roa := domain.ConceptClass{Code: "ROA", DisplayName: "Route of administration"}
	full := domain.FullConceptResource{
		Meta: domain.ResourceMeta{URL: "https://fhir.example.org/CodeSystem/edqm-standard-terms", Version: "20240301"},
		Concepts: []domain.TransformedConcept{
			{
				Code:       "20053000",
				Display:    "Oral use",
				Definition: "Administration by mouth.",
				Class:      roa,
				Designations: []domain.Designation{
					{Language: "en", Value: "Oral use"},
					{Language: "de", Value: "Zum Einnehmen"},
				},
				Properties: []domain.ConceptProperty{
					domain.StringProperty(domain.PropDomain, "Human and Veterinary"),
					domain.CodeProperty(domain.PropStatus, "Current"),
				},
			},
			{
				Code:    "20066000",
				Display: "Subcutaneous use",
				Class:   roa,
				Properties: []domain.ConceptProperty{
					domain.CodeProperty(domain.PropStatus, "Deprecated"),
					domain.BoolProperty(domain.PropInactive, true),
				},
			},
		},
	}
	parts := []domain.PartitionedResource{
		{
			Meta:           domain.ResourceMeta{ID: "edqm-standard-terms-routes", URL: "https://fhir.example.org/ValueSet/edqm-standard-terms-routes", Version: "20240301"},
			DefinitionName: "Routes",
			ClassCode:      "ROA",
			Source:         domain.SourceRef{URL: full.Meta.URL, Version: full.Meta.Version},
			Members: []domain.PartitionMember{
				{Code: "20053000", Display: "Oral use"},
				{Code: "20066000", Display: "Subcutaneous use"},
			},
		},
	}
	return full, parts
}

func TestWriteReport_WritesSheets(t *testing.T) {
	full, parts := sampleRun()
	warnings := []domain.Warning{{Concept: "20066000", Element: "domain", Message: "empty value"}}

	path := filepath.Join(t.TempDir(), "reports", "run.xlsx")
	w := NewWriter(path)
	require.NoError(t, w.WriteReport(full, parts, warnings))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetConcepts, SheetValueSets, SheetWarnings}, f.GetSheetList())

	rows, err := f.GetRows(SheetConcepts)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, conceptHeader, rows[0])
	assert.Equal(t, []string{
		"20053000",
		"Oral use",
		"ROA",
		"Human and Veterinary",
		"Current",
		"No",
		"Administration by mouth.",
		"de: Zum Einnehmen; en: Oral use",
		"Routes",
	}, rows[1])
	assert.Equal(t, "Yes", rows[2][5])

	rows, err = f.GetRows(SheetValueSets)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Routes", rows[1][0])
	assert.Equal(t, "https://fhir.example.org/CodeSystem/edqm-standard-terms|20240301", rows[1][5])
	assert.Equal(t, "2", rows[1][6])

	rows, err = f.GetRows(SheetWarnings)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"20066000", "domain", "empty value"}, rows[1])
}

func TestBuild_OmitsWarningsSheetWhenClean(t *testing.T) {
	full, parts := sampleRun()

	f, err := Build(full, parts, nil)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetConcepts, SheetValueSets}, f.GetSheetList())
}
