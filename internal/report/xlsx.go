package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/alexiusacademia/gorcd/internal/engine"
	"github.com/alexiusacademia/gorcd/internal/fem"
)

// WriteSamplesXLSX writes the diagram samples and reactions to a workbook
func WriteSamplesXLSX(path string, d *engine.Diagrams, reactions []fem.Reaction) error {
	if d == nil {
		return fmt.Errorf("no diagrams to export")
	}
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Diagrams"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, "A1", &[]any{"x (m)", "V (kN)", "M (kN-m)", "deflection (mm)"}); err != nil {
		return err
	}
	for i := range d.Shear {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{d.Shear[i].X, d.Shear[i].Value, d.Moment[i].Value, d.Deflection[i].Value}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	if len(reactions) > 0 {
		const rs = "Reactions"
		if _, err := f.NewSheet(rs); err != nil {
			return err
		}
		if err := f.SetSheetRow(rs, "A1", &[]any{"x (m)", "support", "R (kN)", "M (kN-m)"}); err != nil {
			return err
		}
		for i, r := range reactions {
			cell, err := excelize.CoordinatesToCellName(1, i+2)
			if err != nil {
				return err
			}
			row := []any{r.X, string(r.Kind), r.Force, r.Moment}
			if err := f.SetSheetRow(rs, cell, &row); err != nil {
				return err
			}
		}
	}
	return f.SaveAs(path)
}

// BeamRow is one simply supported beam of a batch sheet
type BeamRow struct {
	Row    int // sheet row number, 1-based
	Name   string
	Span   float64 // m
	Width  float64 // cm
	Height float64 // cm
	Load   float64 // kN/m, uniform over the span
	Fck    float64 // MPa
	Bar    float64 // mm, 0 for the default
}

// ReadBeamRows reads beams from the first sheet. The first row is a header;
// columns are name, span, width, height, load, fck and an optional bar
// diameter. Rows that cannot be parsed are returned as errors and skipped.
func ReadBeamRows(r io.Reader) ([]BeamRow, []error, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, nil, err
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("sheet has no beam rows")
	}

	var beams []BeamRow
	var skipped []error
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if blank(row) {
			continue
		}
		b, err := parseBeamRow(row)
		if err != nil {
			skipped = append(skipped, fmt.Errorf("row %d: %w", i+1, err))
			continue
		}
		b.Row = i + 1
		beams = append(beams, b)
	}
	return beams, skipped, nil
}

func parseBeamRow(row []string) (BeamRow, error) {
	if len(row) < 6 {
		return BeamRow{}, fmt.Errorf("need 6 columns, got %d", len(row))
	}
	b := BeamRow{Name: strings.TrimSpace(row[0])}
	fields := []*float64{&b.Span, &b.Width, &b.Height, &b.Load, &b.Fck}
	for j, dst := range fields {
		v, err := toFloat(row[j+1])
		if err != nil {
			return BeamRow{}, fmt.Errorf("column %d: %w", j+2, err)
		}
		*dst = v
	}
	if len(row) > 6 && strings.TrimSpace(row[6]) != "" {
		v, err := toFloat(row[6])
		if err != nil {
			return BeamRow{}, fmt.Errorf("column 7: %w", err)
		}
		b.Bar = v
	}
	return b, nil
}

func toFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
