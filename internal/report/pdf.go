// Package report writes calculation results to documents: the calculation
// memory as PDF and diagram samples as a spreadsheet. It also reads beam
// rows from a spreadsheet for batch runs.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/phpdave11/gofpdf"

	"github.com/alexiusacademia/gorcd/internal/engine"
)

// Memo is the content of a calculation memory document
type Memo struct {
	Title   string
	Project string
	Date    string // printed as given; empty omits the line

	Valid    bool
	Summary  []string
	Messages []engine.Message
	Lines    []string
}

// WritePDF renders the memo as an A4 PDF
func WritePDF(w io.Writer, m Memo) error {
	if m.Title == "" {
		m.Title = "Calculation Memory"
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(m.Title, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(m.Title))
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	if m.Project != "" {
		pdf.Cell(0, 6, tr(fmt.Sprintf("Project: %s", m.Project)))
		pdf.Ln(6)
	}
	if m.Date != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Date: %s", m.Date))
		pdf.Ln(6)
	}

	verdict := "Result: ADEQUATE"
	if !m.Valid {
		verdict = "Result: NOT ADEQUATE"
		pdf.SetTextColor(200, 30, 30)
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, verdict)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 11)
	for _, s := range m.Summary {
		pdf.Cell(0, 6, tr(s))
		pdf.Ln(6)
	}

	if len(m.Messages) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Messages")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 10)
		for _, msg := range m.Messages {
			pdf.MultiCell(0, 5, tr(fmt.Sprintf("[%s] %s", msg.Kind, msg.Text)), "", "L", false)
		}
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Calculation")
	pdf.Ln(8)
	for _, line := range m.Lines {
		if isHeading(line) {
			pdf.Ln(2)
			pdf.SetFont("Helvetica", "B", 10)
		} else {
			pdf.SetFont("Courier", "", 9)
		}
		pdf.MultiCell(0, 5, tr(line), "", "L", false)
	}

	return pdf.Output(w)
}

// WritePDFFile writes the memo to path
func WritePDFFile(path string, m Memo) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WritePDF(f, m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// isHeading reports whether a memory line is a section heading ("3. Title")
func isHeading(line string) bool {
	for i, r := range line {
		switch {
		case r >= '0' && r <= '9':
		case r == '.':
			return i > 0 && i+1 < len(line) && line[i+1] == ' '
		default:
			return false
		}
	}
	return false
}
