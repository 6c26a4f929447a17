package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/gorcd/internal/beam"
	"github.com/alexiusacademia/gorcd/internal/diagram"
	"github.com/alexiusacademia/gorcd/internal/engine"
	"github.com/alexiusacademia/gorcd/internal/report"
)

func printVerdict(member string, valid bool, summary []string, msgs []engine.Message) {
	fmt.Println("DESIGN RESULT:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	title := member + " DESIGN ADEQUATE"
	if !valid {
		title = member + " DESIGN NOT ADEQUATE"
	}
	fmt.Println(diagram.SummaryBox(title, valid, summary))
	fmt.Println()

	if len(msgs) > 0 {
		fmt.Println("MESSAGES:")
		fmt.Println("───────────────────────────────────────────────────────────────")
		for _, m := range msgs {
			fmt.Printf("  [%s] %s\n", m.Kind, m.String())
		}
		fmt.Println()
	}
}

func printAlternatives(face string, alts []beam.Alternative) {
	if len(alts) == 0 {
		return
	}
	fmt.Printf("ALTERNATIVE ARRANGEMENTS (%s):\n", face)
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Bars\tLayers\tAs prov (cm²)\n")
	fmt.Fprintf(w, "  ────\t──────\t─────────────\n")
	for _, a := range alts {
		fmt.Fprintf(w, "  %d Ø%g\t%d\t%.3f\n", a.Bars, a.Diameter, a.Layers, a.Provided)
	}
	w.Flush()
	fmt.Println()
}

func printMemory(lines []string) {
	fmt.Println("CALCULATION MEMORY:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	for _, l := range lines {
		fmt.Printf("  %s\n", l)
	}
	fmt.Println()
}

func exportBeam(title string, out *engine.BeamOutput) error {
	if beamPNG != "" {
		if out.Diagrams == nil {
			logger.Warn("no diagrams to export, structure is unstable")
		} else {
			prefix := outputPath(beamPNG)
			for _, d := range []struct {
				name, title, unit string
				pts               []engine.Point
				invert            bool
			}{
				{"shear", "Shear", "kN", out.Diagrams.Shear, false},
				{"moment", "Bending moment", "kN-m", out.Diagrams.Moment, true},
				{"deflection", "Deflection", "mm", out.Diagrams.Deflection, true},
			} {
				file := fmt.Sprintf("%s-%s.png", prefix, d.name)
				if err := diagram.ExportDiagram(d.title, d.unit, d.pts, d.invert, file); err != nil {
					logger.Error("diagram export failed", "file", file, "err", err)
					return err
				}
				logger.Info("diagram exported", "file", file)
			}
			file := prefix + "-section.png"
			if err := diagram.ExportSection(out.Layout, file); err != nil {
				logger.Error("section export failed", "file", file, "err", err)
				return err
			}
			logger.Info("section exported", "file", file)
		}
	}

	if beamXLSX != "" {
		file := outputPath(beamXLSX)
		if err := report.WriteSamplesXLSX(file, out.Diagrams, out.Reactions); err != nil {
			logger.Error("spreadsheet export failed", "file", file, "err", err)
			return err
		}
		logger.Info("samples exported", "file", file)
	}

	if beamPDF != "" {
		return exportMemo(beamPDF, report.Memo{
			Title:    title,
			Valid:    out.Valid,
			Summary:  beamSummary(out),
			Messages: out.Messages,
			Lines:    out.Memory,
		})
	}
	return nil
}

func beamSummary(out *engine.BeamOutput) []string {
	if out.Diagrams == nil {
		return nil
	}
	m := out.Metrics
	return []string{
		fmt.Sprintf("M+ = %.2f kN-m, M- = %.2f kN-m, V = %.2f kN", m.MaxMoment, m.MinMoment, m.MaxShear),
		fmt.Sprintf("deflection = %.2f mm (limit %.2f mm)", m.Deflection, m.DeflectionLimit),
		fmt.Sprintf("As bottom = %.2f cm2, As top = %.2f cm2", m.AsBottom, m.AsTop),
		out.Layout.Describe(),
	}
}

func exportMemo(path string, memo report.Memo) error {
	file := outputPath(path)
	if err := report.WritePDFFile(file, memo); err != nil {
		logger.Error("memory export failed", "file", file, "err", err)
		return err
	}
	logger.Info("calculation memory exported", "file", file)
	return nil
}
