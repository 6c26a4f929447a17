package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/alexiusacademia/gorcd/internal/config"
	"github.com/alexiusacademia/gorcd/internal/diagram"
	"github.com/alexiusacademia/gorcd/internal/engine"
	"github.com/alexiusacademia/gorcd/internal/fem"
	"github.com/spf13/cobra"
)

var (
	beamFile string

	// Structure and loads
	beamSpan       float64
	beamSupports   []string
	beamPoints     []string
	beamDistLoads  []string
	beamSelfWeight bool

	// Section and materials
	beamWidth      float64
	beamHeight     float64
	beamCover      float64
	beamFck        float64
	beamSteel      string
	beamStirSteel  string
	beamBottomBar  float64
	beamTopBar     float64
	beamStirrup    float64
	beamSpacing    float64
	beamLegs       int
	beamMaxLayers  int
	beamAggregate  float64
	beamLoadFactor float64
	beamSamples    int

	// Output options
	beamShowDiagram bool
	beamShowMemory  bool
	beamPNG         string
	beamPDF         string
	beamXLSX        string
)

var beamCmd = &cobra.Command{
	Use:   "beam",
	Short: "Analyze a continuous beam and design its section",
	Long: `Analyze a rectangular reinforced concrete beam over any number of
supports and design its bottom and top reinforcement, stirrups and
deflection according to NBR 6118.

The beam may be described in a YAML (or JSON) request file, on the
command line, or both. Flags override values read from the file.

Loads are characteristic: forces downward positive in kN, distributed
loads in kN/m, positions in m. Section dimensions are in cm and bar
diameters in mm.

Examples:
  # Simply supported 6 m beam, 20x50 cm, 15 kN/m
  gorcd beam --span 6 --support 0:pin --support 6:roller --udl 0:6:15 -b 20 --height 50

  # Two spans with a point load, self weight and terminal diagrams
  gorcd beam --span 10 --support 0:pin --support 5:roller --support 10:roller \
    --point 2.5:40 --udl 0:10:12 --self-weight -b 20 --height 45 --diagram

  # From a request file, exporting the calculation memory
  gorcd beam --file beam.yaml --pdf beam.pdf --png beam`,
	RunE: runBeam,
}

func init() {
	rootCmd.AddCommand(beamCmd)

	beamCmd.Flags().StringVarP(&beamFile, "file", "f", "", "Beam request file (YAML or JSON)")

	// Structure flags
	beamCmd.Flags().Float64VarP(&beamSpan, "span", "L", 0, "Beam length (m)")
	beamCmd.Flags().StringArrayVarP(&beamSupports, "support", "s", nil, "Support as x:type, type pin, roller or fixed (repeatable)")
	beamCmd.Flags().StringArrayVarP(&beamPoints, "point", "p", nil, "Point load as x:P in m and kN (repeatable)")
	beamCmd.Flags().StringArrayVarP(&beamDistLoads, "udl", "q", nil, "Distributed load as start:end:q1[:q2] in m and kN/m (repeatable)")
	beamCmd.Flags().BoolVar(&beamSelfWeight, "self-weight", false, "Add the concrete self weight over the whole span")

	// Section flags
	beamCmd.Flags().Float64VarP(&beamWidth, "width", "b", 0, "Section width (cm)")
	beamCmd.Flags().Float64Var(&beamHeight, "height", 0, "Section height (cm)")
	beamCmd.Flags().Float64VarP(&beamCover, "cover", "c", config.DefaultBeamCover, "Concrete cover to the stirrup (cm)")

	// Material flags
	beamCmd.Flags().Float64Var(&beamFck, "fck", config.DefaultFck, "Concrete characteristic strength fck (MPa)")
	beamCmd.Flags().StringVar(&beamSteel, "steel", "CA-50", "Longitudinal steel grade (CA-25, CA-50, CA-60)")
	beamCmd.Flags().StringVar(&beamStirSteel, "stirrup-steel", "CA-50", "Stirrup steel grade")

	// Detailing flags
	beamCmd.Flags().Float64Var(&beamBottomBar, "bottom", config.DefaultBottomBar, "Bottom bar diameter (mm)")
	beamCmd.Flags().Float64Var(&beamTopBar, "top", config.DefaultTopBar, "Top bar diameter (mm)")
	beamCmd.Flags().Float64Var(&beamStirrup, "stirrup", config.DefaultStirrup, "Stirrup diameter (mm)")
	beamCmd.Flags().Float64Var(&beamSpacing, "spacing", config.DefaultStirrupSpacing, "Stirrup spacing (cm)")
	beamCmd.Flags().IntVar(&beamLegs, "legs", 2, "Stirrup legs")
	beamCmd.Flags().IntVar(&beamMaxLayers, "max-layers", 0, "Maximum bar layers per face (default from GORCD_MAX_LAYERS)")
	beamCmd.Flags().Float64Var(&beamAggregate, "aggregate", 0, "Maximum aggregate size (mm, default from GORCD_AGGREGATE_MM)")
	beamCmd.Flags().Float64Var(&beamLoadFactor, "load-factor", 0, "Load factor applied to moments and shear (default from GORCD_LOAD_FACTOR)")
	beamCmd.Flags().IntVar(&beamSamples, "samples", 0, "Diagram intervals, at least 10 (default from GORCD_SAMPLES)")

	// Output options
	beamCmd.Flags().BoolVar(&beamShowDiagram, "diagram", false, "Show ASCII shear, moment and deflection diagrams")
	beamCmd.Flags().BoolVar(&beamShowMemory, "memory", false, "Print the calculation memory")
	beamCmd.Flags().StringVar(&beamPNG, "png", "", "Export diagrams and the section drawing as <prefix>-*.png")
	beamCmd.Flags().StringVar(&beamPDF, "pdf", "", "Export the calculation memory to a PDF file")
	beamCmd.Flags().StringVar(&beamXLSX, "xlsx", "", "Export the diagram samples to an XLSX file")
}

func runBeam(cmd *cobra.Command, args []string) error {
	req := &config.BeamRequest{}
	if beamFile != "" {
		var err error
		if req, err = config.LoadBeamRequest(beamFile); err != nil {
			return err
		}
	}
	if err := applyBeamFlags(cmd, req); err != nil {
		return err
	}
	if beamFile == "" && req.Span == 0 {
		return fmt.Errorf("provide a request with --file or at least --span, --support, --width and --height")
	}

	in, err := req.Input(defaults)
	if err != nil {
		return err
	}
	out, err := newEngine().Beam(in)
	if err != nil {
		return err
	}

	printBeam(req.Name, in, out)

	if beamShowDiagram && out.Diagrams != nil {
		fmt.Println(diagram.Curves(out.Diagrams))
		fmt.Println(diagram.DrawSection(out.Layout, stressBlock(out)))
	}
	if beamShowMemory {
		printMemory(out.Memory)
	}

	title := "Beam calculation memory"
	if req.Name != "" {
		title += ": " + req.Name
	}
	return exportBeam(title, out)
}

// applyBeamFlags overrides request values with the flags given on the command line
func applyBeamFlags(cmd *cobra.Command, req *config.BeamRequest) error {
	f := cmd.Flags()
	file := beamFile != ""
	set := func(name string) bool {
		// Without a file every flag default applies
		return f.Changed(name) || !file
	}

	if f.Changed("span") {
		req.Span = beamSpan
	}
	if f.Changed("support") {
		req.Supports = nil
		for _, s := range beamSupports {
			spec, err := parseSupport(s)
			if err != nil {
				return err
			}
			req.Supports = append(req.Supports, spec)
		}
	}
	if f.Changed("point") {
		req.PointLoads = nil
		for _, s := range beamPoints {
			spec, err := parsePointLoad(s)
			if err != nil {
				return err
			}
			req.PointLoads = append(req.PointLoads, spec)
		}
	}
	if f.Changed("udl") {
		req.DistributedLoads = nil
		for _, s := range beamDistLoads {
			spec, err := parseDistributedLoad(s)
			if err != nil {
				return err
			}
			req.DistributedLoads = append(req.DistributedLoads, spec)
		}
	}
	if f.Changed("self-weight") {
		req.SelfWeight = beamSelfWeight
	}
	if f.Changed("width") {
		req.Section.Width = beamWidth
	}
	if f.Changed("height") {
		req.Section.Height = beamHeight
	}
	if set("cover") {
		cover := beamCover
		req.Cover = &cover
	}
	if set("fck") {
		req.Fck = beamFck
	}
	if set("steel") {
		req.Steel = beamSteel
	}
	if set("stirrup-steel") {
		req.StirrupSteel = beamStirSteel
	}
	if set("bottom") {
		req.Bars.Bottom = beamBottomBar
	}
	if set("top") {
		req.Bars.Top = beamTopBar
	}
	if set("stirrup") {
		req.Bars.Stirrup = beamStirrup
	}
	if set("spacing") {
		req.Bars.Spacing = beamSpacing
	}
	if set("legs") {
		req.Bars.Legs = beamLegs
	}
	if f.Changed("max-layers") {
		req.MaxLayers = beamMaxLayers
	}
	if f.Changed("aggregate") {
		req.Aggregate = beamAggregate
	}
	if f.Changed("load-factor") {
		req.LoadFactor = beamLoadFactor
	}
	if f.Changed("samples") {
		req.Samples = beamSamples
	}
	return nil
}

func printBeam(name string, in engine.BeamInput, out *engine.BeamOutput) {
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("        CONTINUOUS BEAM ANALYSIS AND DESIGN - NBR 6118")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("INPUT DATA:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if name != "" {
		fmt.Fprintf(w, "  Name:\t%s\n", name)
	}
	fmt.Fprintf(w, "  Span (L):\t%.3f m\n", in.Span)
	fmt.Fprintf(w, "  Section (b x h):\t%.1f x %.1f cm\n", in.Section.Width, in.Section.Height)
	fmt.Fprintf(w, "  Cover:\t%.1f cm\n", in.Cover)
	fmt.Fprintf(w, "  fck:\t%.1f MPa\n", in.Fck)
	fmt.Fprintf(w, "  fyk / fywk:\t%.0f / %.0f MPa\n", in.Fyk, in.StirrupFyk)
	fmt.Fprintf(w, "  Load factor:\t%.2f\n", in.LoadFactor)
	fmt.Fprintf(w, "  Supports:\t%d\n", len(in.Supports))
	fmt.Fprintf(w, "  Point / distributed loads:\t%d / %d\n", len(in.PointLoads), len(in.DistributedLoads))
	w.Flush()
	fmt.Println()

	if out.Diagrams == nil {
		printVerdict("BEAM", out.Valid, nil, out.Messages)
		return
	}

	fmt.Println("REACTIONS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  x (m)\tSupport\tR (kN)\tM (kN-m)\n")
	fmt.Fprintf(w, "  ─────\t───────\t──────\t────────\n")
	for _, r := range out.Reactions {
		moment := "-"
		if r.Kind == fem.Fixed {
			moment = fmt.Sprintf("%.3f", r.Moment)
		}
		fmt.Fprintf(w, "  %.3f\t%s\t%.3f\t%s\n", r.X, r.Kind, r.Force, moment)
	}
	w.Flush()
	fmt.Println()

	m := out.Metrics
	fmt.Println("INTERNAL FORCES (characteristic):")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Max sagging moment:\t%.3f kN-m\tat x = %.3f m\n", m.MaxMoment, m.MaxMomentX)
	fmt.Fprintf(w, "  Max hogging moment:\t%.3f kN-m\tat x = %.3f m\n", m.MinMoment, m.MinMomentX)
	fmt.Fprintf(w, "  Max shear:\t%.3f kN\tat x = %.3f m\n", m.MaxShear, m.MaxShearX)
	fmt.Fprintf(w, "  Max deflection:\t%.3f mm\tat x = %.3f m (limit %.2f mm)\n", m.Deflection, m.DeflectionX, m.DeflectionLimit)
	w.Flush()
	fmt.Println()

	fmt.Println("REINFORCEMENT:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Face\tAs req (cm²)\tBars\tLayers\tAs prov (cm²)\n")
	fmt.Fprintf(w, "  ────\t────────────\t────\t──────\t─────────────\n")
	for _, fr := range []struct {
		face     string
		req      float64
		diameter float64
		bars     int
		layers   []int
		provided float64
	}{
		{"bottom", m.AsBottom, out.Layout.BottomDiameter, out.Design.Bottom.Bars, out.Layout.Bottom, m.ProvidedBottom},
		{"top", m.AsTop, out.Layout.TopDiameter, out.Design.Top.Bars, out.Layout.Top, m.ProvidedTop},
	} {
		fmt.Fprintf(w, "  %s\t%.3f\t%d Ø%g\t%s\t%.3f\n", fr.face, fr.req, fr.bars, fr.diameter, layerCounts(fr.layers), fr.provided)
	}
	w.Flush()
	fmt.Printf("  Layout: %s\n", out.Layout.Describe())
	fmt.Println()

	printAlternatives("bottom", out.Alternatives.Bottom)
	printAlternatives("top", out.Alternatives.Top)

	summary := []string{
		fmt.Sprintf("M+ = %.2f kN-m   M- = %.2f kN-m   V = %.2f kN", m.MaxMoment, m.MinMoment, m.MaxShear),
		fmt.Sprintf("As bottom = %.2f cm²   As top = %.2f cm²", m.AsBottom, m.AsTop),
		out.Layout.Describe(),
	}
	printVerdict("BEAM", out.Valid, summary, out.Messages)
}

// stressBlock returns the sagging compression block depth 0.8x (cm)
func stressBlock(out *engine.BeamOutput) float64 {
	if out.Design == nil || out.Design.Bottom.Insufficient {
		return 0
	}
	f := out.Design.Bottom
	return 0.8 * f.Bx * f.D
}

func layerCounts(layers []int) string {
	s := make([]string, len(layers))
	for i, n := range layers {
		s[i] = fmt.Sprint(n)
	}
	return strings.Join(s, "+")
}
