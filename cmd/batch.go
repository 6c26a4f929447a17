package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/gorcd/internal/config"
	"github.com/alexiusacademia/gorcd/internal/fem"
	"github.com/alexiusacademia/gorcd/internal/report"
	"github.com/alexiusacademia/gorcd/internal/section"
	"github.com/spf13/cobra"
)

var (
	batchFile       string
	batchSteel      string
	batchSelfWeight bool
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Design simply supported beams listed in a spreadsheet",
	Long: `Read beams from the first sheet of an XLSX workbook and design each one
as a simply supported beam under a uniform load.

The first row is a header. Columns, in order:
  name, span (m), width (cm), height (cm), load (kN/m), fck (MPa), bar (mm, optional)

Rows that cannot be read are reported and skipped.

Examples:
  gorcd batch --file beams.xlsx
  gorcd batch --file beams.xlsx --self-weight --steel CA-60`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVarP(&batchFile, "file", "f", "", "Workbook with one beam per row [required]")
	batchCmd.Flags().StringVar(&batchSteel, "steel", "CA-50", "Longitudinal steel grade")
	batchCmd.Flags().BoolVar(&batchSelfWeight, "self-weight", false, "Add the concrete self weight to every beam")

	cobra.CheckErr(batchCmd.MarkFlagRequired("file"))
}

func runBatch(cmd *cobra.Command, args []string) error {
	f, err := os.Open(batchFile)
	if err != nil {
		return err
	}
	defer f.Close()

	rows, skipped, err := report.ReadBeamRows(f)
	if err != nil {
		return fmt.Errorf("reading %s: %w", batchFile, err)
	}
	for _, e := range skipped {
		logger.Warn("row skipped", "file", batchFile, "err", e)
	}

	eng := newEngine()

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("           BATCH BEAM DESIGN - NBR 6118")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Row\tName\tL (m)\tb x h (cm)\tq (kN/m)\tM+ (kN-m)\tAs (cm²)\tBars\tStatus\n")
	fmt.Fprintf(w, "  ───\t────\t─────\t──────────\t────────\t─────────\t────────\t────\t──────\n")
	failed := 0
	for _, r := range rows {
		in, err := batchRequest(r).Input(defaults)
		if err != nil {
			return fmt.Errorf("row %d: %w", r.Row, err)
		}
		out, err := eng.Beam(in)
		if err != nil {
			fmt.Fprintf(w, "  %d\t%s\t%.2f\t%gx%g\t%.2f\t-\t-\t-\tinvalid: %v\n", r.Row, r.Name, r.Span, r.Width, r.Height, r.Load, err)
			failed++
			continue
		}
		status := "OK"
		if !out.Valid {
			status = "NOT OK"
			failed++
		}
		fmt.Fprintf(w, "  %d\t%s\t%.2f\t%gx%g\t%.2f\t%.2f\t%.2f\t%s\t%s\n",
			r.Row, r.Name, r.Span, r.Width, r.Height, r.Load,
			out.Metrics.MaxMoment, out.Metrics.AsBottom, bottomBars(out.Layout), status)
	}
	w.Flush()
	fmt.Println()
	fmt.Printf("  %d beams, %d not adequate, %d rows skipped\n", len(rows), failed, len(skipped))
	fmt.Println()
	return nil
}

// batchRequest describes a spreadsheet row as a simply supported beam
func batchRequest(r report.BeamRow) *config.BeamRequest {
	return &config.BeamRequest{
		Name: r.Name,
		Span: r.Span,
		Supports: []config.SupportSpec{
			{X: 0, Type: fem.Pin},
			{X: r.Span, Type: fem.Roller},
		},
		DistributedLoads: []config.DistributedLoadSpec{
			{Start: 0, End: r.Span, Q1: r.Load},
		},
		SelfWeight: batchSelfWeight,
		Section:    section.Rect{Width: r.Width, Height: r.Height},
		Fck:        r.Fck,
		Steel:      batchSteel,
		Bars:       config.BarSpec{Bottom: r.Bar},
	}
}

func bottomBars(l section.Layout) string {
	n := 0
	for _, c := range l.Bottom {
		n += c
	}
	return fmt.Sprintf("%d Ø%g", n, l.BottomDiameter)
}
