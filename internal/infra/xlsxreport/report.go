// Package xlsxreport writes a review workbook of a conversion run.
package xlsxreport

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/domain"
	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/ports"
)

const (
	SheetConcepts  = "Concepts"
	SheetValueSets = "Value Sets"
	SheetWarnings  = "Warnings"
)

var conceptHeader = []string{
	"Code",
	"Display",
	"Class",
	"Domain",
	"Status",
	"Inactive",
	"Definition",
	"Designations",
	"Value Sets",
}

var valueSetHeader = []string{
	"Name",
	"Class",
	"ID",
	"URL",
	"Version",
	"Source",
	"Members",
}

var warningHeader = []string{
	"Concept",
	"Element",
	"Message",
}

type Writer struct {
	path string
}

var _ ports.ReportWriter = (*Writer)(nil)

func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

func (w *Writer) Path() string { return w.path }

// WriteReport writes one row per concept and per value set. The warnings
// sheet is only added when there is something to report.
func (w *Writer) WriteReport(full domain.FullConceptResource, parts []domain.PartitionedResource, warnings []domain.Warning) error {
	f, err := Build(full, parts, warnings)
	if err != nil {
		return &domain.OpError{Op: "xlsxreport.build", Kind: domain.KindExecution, Path: w.path, Err: err}
	}
	defer f.Close()

	if err := os.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
		return &domain.OpError{Op: "xlsxreport.write", Kind: domain.KindExecution, Path: w.path, Err: err}
	}
	if err := f.SaveAs(w.path); err != nil {
		return &domain.OpError{Op: "xlsxreport.write", Kind: domain.KindExecution, Path: w.path, Err: err}
	}
	return nil
}

// Build assembles the workbook in memory. The caller owns the returned file.
func Build(full domain.FullConceptResource, parts []domain.PartitionedResource, warnings []domain.Warning) (*excelize.File, error) {
	f := excelize.NewFile()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	memberOf := map[string][]string{}
	for _, p := range parts {
		for _, m := range p.Members {
			memberOf[m.Code] = append(memberOf[m.Code], p.DefinitionName)
		}
	}

	conceptRows := make([][]any, 0, len(full.Concepts))
	for _, c := range full.Concepts {
		conceptRows = append(conceptRows, []any{
			c.Code,
			c.Display,
			c.Class.Code,
			propertyValue(c, domain.PropDomain),
			propertyValue(c, domain.PropStatus),
			yesNo(hasInactive(c)),
			c.Definition,
			designationList(c.Designations),
			strings.Join(memberOf[c.Code], "; "),
		})
	}
	if err := writeSheet(f, SheetConcepts, conceptHeader, conceptRows, headerStyle, []float64{18, 40, 10, 22, 14, 10, 50, 60, 40}); err != nil {
		f.Close()
		return nil, err
	}

	vsRows := make([][]any, 0, len(parts))
	for _, p := range parts {
		vsRows = append(vsRows, []any{
			p.DefinitionName,
			p.ClassCode,
			p.Meta.ID,
			p.Meta.URL,
			p.Meta.Version,
			p.Source.URL + "|" + p.Source.Version,
			len(p.Members),
		})
	}
	if err := writeSheet(f, SheetValueSets, valueSetHeader, vsRows, headerStyle, []float64{36, 10, 40, 60, 12, 70, 10}); err != nil {
		f.Close()
		return nil, err
	}

	if len(warnings) > 0 {
		wRows := make([][]any, 0, len(warnings))
		for _, w := range warnings {
			wRows = append(wRows, []any{w.Concept, w.Element, w.Message})
		}
		if err := writeSheet(f, SheetWarnings, warningHeader, wRows, headerStyle, []float64{18, 24, 80}); err != nil {
			f.Close()
			return nil, err
		}
	}

	// the default sheet is only deleted once another one exists
	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to delete default sheet: %w", err)
	}
	if idx, err := f.GetSheetIndex(SheetConcepts); err == nil {
		f.SetActiveSheet(idx)
	}
	return f, nil
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]any, headerStyle int, widths []float64) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("failed to set header style: %w", err)
		}
	}

	for i := 0; i < len(headers) && i < len(widths); i++ {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("failed to convert column number: %w", err)
		}
		if err := f.SetColWidth(sheet, col, col, widths[i]); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for r, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", r+2, sheet, err)
		}
	}

	if len(rows) > 0 {
		if err := f.SetPanes(sheet, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		}); err != nil {
			return fmt.Errorf("failed to freeze header of %s: %w", sheet, err)
		}
	}
	return nil
}

func propertyValue(c domain.TransformedConcept, code domain.PropertyCode) string {
	for _, p := range c.Properties {
		if p.Code == code {
			return p.Value
		}
	}
	return ""
}

func hasInactive(c domain.TransformedConcept) bool {
	for _, p := range c.Properties {
		if p.Code == domain.PropInactive && p.Bool {
			return true
		}
	}
	return false
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// designationList renders designations as "lang: value" pairs sorted by language.
func designationList(ds []domain.Designation) string {
	if len(ds) == 0 {
		return ""
	}
	parts := make([]string, 0, len(ds))
	for _, d := range ds {
		parts = append(parts, d.Language+": "+d.Value)
	}
	sort.Strings(parts)
	return strings.Join(parts, "; ")
}
