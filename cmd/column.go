package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/gorcd/internal/column"
	"github.com/alexiusacademia/gorcd/internal/config"
	"github.com/alexiusacademia/gorcd/internal/diagram"
	"github.com/alexiusacademia/gorcd/internal/engine"
	"github.com/alexiusacademia/gorcd/internal/report"
	"github.com/spf13/cobra"
)

var (
	colFile string

	colAxial      float64
	colWidth      float64
	colHeight     float64
	colLength     float64
	colEnds       string
	colCover      float64
	colFck        float64
	colSteel      string
	colBar        float64
	colStirrup    float64
	colSpacing    float64
	colLoadFactor float64

	colShowDiagram bool
	colShowMemory  bool
	colPNG         string
	colPDF         string
)

var columnCmd = &cobra.Command{
	Use:   "column",
	Short: "Design a rectangular column for an axial load",
	Long: `Design a rectangular reinforced concrete column for a characteristic
axial load according to NBR 6118.

Minimum eccentricity moments act about both axes. Second order effects
are added by the standard column method when the slenderness exceeds 35;
columns more slender than 140 are rejected.

End conditions: pinned-pinned (k = 1.0), fixed-free (2.0),
fixed-pinned (0.7), fixed-fixed (0.5).

Examples:
  # 20x40 cm column, 3 m high, 800 kN
  gorcd column --axial 800 -b 20 --height 40 --length 3

  # Cantilever column with 16 mm bars
  gorcd column --axial 400 -b 25 --height 25 --length 3 --ends fixed-free --bar 16

  # From a request file
  gorcd column --file column.yaml --pdf column.pdf`,
	RunE: runColumn,
}

func init() {
	rootCmd.AddCommand(columnCmd)

	columnCmd.Flags().StringVarP(&colFile, "file", "f", "", "Column request file (YAML or JSON)")

	columnCmd.Flags().Float64VarP(&colAxial, "axial", "n", 0, "Characteristic axial load Nk (kN)")
	columnCmd.Flags().Float64VarP(&colWidth, "width", "b", 0, "Section width (cm)")
	columnCmd.Flags().Float64Var(&colHeight, "height", 0, "Section height (cm)")
	columnCmd.Flags().Float64VarP(&colLength, "length", "L", 0, "Column length (m)")
	columnCmd.Flags().StringVar(&colEnds, "ends", string(column.PinnedPinned), "End condition")
	columnCmd.Flags().Float64VarP(&colCover, "cover", "c", config.DefaultColumnCover, "Concrete cover to the stirrup (cm)")

	columnCmd.Flags().Float64Var(&colFck, "fck", config.DefaultFck, "Concrete characteristic strength fck (MPa)")
	columnCmd.Flags().StringVar(&colSteel, "steel", "CA-50", "Longitudinal steel grade (CA-25, CA-50, CA-60)")
	columnCmd.Flags().Float64Var(&colBar, "bar", config.DefaultColumnBar, "Longitudinal bar diameter (mm)")
	columnCmd.Flags().Float64Var(&colStirrup, "stirrup", config.DefaultStirrup, "Stirrup diameter (mm)")
	columnCmd.Flags().Float64Var(&colSpacing, "spacing", config.DefaultStirrupSpacing, "Stirrup spacing (cm)")
	columnCmd.Flags().Float64Var(&colLoadFactor, "load-factor", 0, "Load factor (default from GORCD_LOAD_FACTOR)")

	columnCmd.Flags().BoolVar(&colShowDiagram, "diagram", false, "Show an ASCII drawing of the section")
	columnCmd.Flags().BoolVar(&colShowMemory, "memory", false, "Print the calculation memory")
	columnCmd.Flags().StringVar(&colPNG, "png", "", "Export the section drawing as <prefix>-section.png")
	columnCmd.Flags().StringVar(&colPDF, "pdf", "", "Export the calculation memory to a PDF file")
}

func runColumn(cmd *cobra.Command, args []string) error {
	req := &config.ColumnRequest{}
	if colFile != "" {
		var err error
		if req, err = config.LoadColumnRequest(colFile); err != nil {
			return err
		}
	}
	applyColumnFlags(cmd, req)
	if colFile == "" && req.Axial == 0 {
		return fmt.Errorf("provide a request with --file or at least --axial, --width, --height and --length")
	}

	in, err := req.Input(defaults)
	if err != nil {
		return err
	}
	out, err := newEngine().Column(in)
	if err != nil {
		return err
	}

	printColumn(req.Name, in, out)

	if colShowDiagram {
		fmt.Println(diagram.DrawSection(out.Layout, 0))
	}
	if colShowMemory {
		printMemory(out.Memory)
	}

	if colPNG != "" && out.Layout.Count() > 0 {
		file := outputPath(colPNG) + "-section.png"
		if err := diagram.ExportSection(out.Layout, file); err != nil {
			logger.Error("section export failed", "file", file, "err", err)
			return err
		}
		logger.Info("section exported", "file", file)
	}
	if colPDF != "" {
		title := "Column calculation memory"
		if req.Name != "" {
			title += ": " + req.Name
		}
		return exportMemo(colPDF, report.Memo{
			Title:    title,
			Valid:    out.Valid,
			Summary:  columnSummary(out),
			Messages: out.Messages,
			Lines:    out.Memory,
		})
	}
	return nil
}

func applyColumnFlags(cmd *cobra.Command, req *config.ColumnRequest) {
	f := cmd.Flags()
	file := colFile != ""
	set := func(name string) bool {
		return f.Changed(name) || !file
	}

	if f.Changed("axial") {
		req.Axial = colAxial
	}
	if f.Changed("width") {
		req.Section.Width = colWidth
	}
	if f.Changed("height") {
		req.Section.Height = colHeight
	}
	if f.Changed("length") {
		req.Height = colLength
	}
	if set("ends") {
		req.Ends = column.EndCondition(colEnds)
	}
	if set("cover") {
		cover := colCover
		req.Cover = &cover
	}
	if set("fck") {
		req.Fck = colFck
	}
	if set("steel") {
		req.Steel = colSteel
	}
	if set("bar") {
		req.Bars.Main = colBar
	}
	if set("stirrup") {
		req.Bars.Stirrup = colStirrup
	}
	if set("spacing") {
		req.Bars.Spacing = colSpacing
	}
	if f.Changed("load-factor") {
		req.LoadFactor = colLoadFactor
	}
}

func printColumn(name string, in engine.ColumnInput, out *engine.ColumnOutput) {
	r := out.Design

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("           RECTANGULAR COLUMN DESIGN - NBR 6118")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("INPUT DATA:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if name != "" {
		fmt.Fprintf(w, "  Name:\t%s\n", name)
	}
	fmt.Fprintf(w, "  Section (b x h):\t%.1f x %.1f cm\n", in.Section.Width, in.Section.Height)
	fmt.Fprintf(w, "  Length:\t%.2f m\n", in.Length)
	fmt.Fprintf(w, "  Effective length (k = %.1f):\t%.1f cm\n", r.K, r.Le)
	fmt.Fprintf(w, "  fck / fyk:\t%.1f / %.0f MPa\n", in.Fck, in.Fyk)
	fmt.Fprintf(w, "  Nk / Nd:\t%.2f / %.2f kN\n", r.Nk, r.Nd)
	w.Flush()
	fmt.Println()

	fmt.Println("SLENDERNESS AND MOMENTS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Axis\tSide (cm)\tλ\te_min (cm)\tM1d,min (kN-cm)\tMd,tot (kN-cm)\n")
	fmt.Fprintf(w, "  ────\t─────────\t─\t──────────\t───────────────\t──────────────\n")
	for _, a := range []struct {
		name string
		axis *column.Axis
	}{{"x", r.X}, {"y", r.Y}} {
		if a.axis == nil {
			continue
		}
		fmt.Fprintf(w, "  %s\t%.1f\t%.1f\t%.2f\t%.1f\t%.1f\n", a.name, a.axis.Side, a.axis.Lambda, a.axis.Emin, a.axis.M1min, a.axis.Mtotal)
	}
	w.Flush()
	fmt.Println()

	var summary []string
	if !r.Slender && !r.Crushed {
		fmt.Println("LONGITUDINAL REINFORCEMENT:")
		fmt.Println("───────────────────────────────────────────────────────────────")
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  ν / ω:\t%.3f / %.3f\n", r.Nu, r.Omega)
		fmt.Fprintf(w, "  As,calc:\t%.2f cm²\n", r.AsCalc)
		fmt.Fprintf(w, "  As,min / As,max:\t%.2f / %.2f cm²\n", r.AsMin, r.AsMax)
		fmt.Fprintf(w, "  As,required:\t%.2f cm²\n", r.As)
		fmt.Fprintf(w, "  Bars:\t%d Ø%g (%.2f cm²)\n", r.Bars, in.BarDiameter, r.Provided)
		fmt.Fprintf(w, "  Stirrups:\tØ%g c/%g cm (min Ø%g, max s %.1f cm)\n", in.StirrupDiameter, in.StirrupSpacing, r.Stirrups.MinDiameter, r.Stirrups.MaxSpacing)
		w.Flush()
		fmt.Printf("  Layout: %s\n", out.Layout.Describe())
		fmt.Println()
		summary = columnSummary(out)
	}
	printVerdict("COLUMN", out.Valid, summary, out.Messages)
}

func columnSummary(out *engine.ColumnOutput) []string {
	r := out.Design
	if r == nil || r.Slender || r.Crushed {
		return nil
	}
	return []string{
		fmt.Sprintf("Nd = %.2f kN, nu = %.3f, omega = %.3f", r.Nd, r.Nu, r.Omega),
		fmt.Sprintf("As = %.2f cm2, provided %.2f cm2", r.As, r.Provided),
		out.Layout.Describe(),
	}
}
