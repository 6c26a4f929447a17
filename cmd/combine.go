package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/gorcd/internal/nbr"
	"github.com/spf13/cobra"
)

var (
	// Characteristic effects
	combinePermanent float64
	combineVariable  float64
	combineWind      float64
	combineUnit      string

	// Options
	combineAll     bool
	combineGravity bool
)

var combineCmd = &cobra.Command{
	Use:   "combine",
	Short: "Combine characteristic effects into the governing design value",
	Long: `Combine characteristic effects (moments, shears or axial loads) with the
NBR 6118 normal ultimate combinations and report the governing design
value together with the equivalent single load factor.

The equivalent factor may be passed to 'gorcd beam' or 'gorcd column'
with --load-factor.

Action types:
  G  - Permanent actions (self weight, finishes, walls)
  Q  - Variable imposed actions
  W  - Wind

Examples:
  # Gravity loads only
  gorcd combine --permanent 50 --variable 30

  # With wind, showing every combination
  gorcd combine -g 50 -q 30 -w 20 --all`,
	RunE: runCombine,
}

func init() {
	rootCmd.AddCommand(combineCmd)

	combineCmd.Flags().Float64VarP(&combinePermanent, "permanent", "g", 0, "Effect of permanent actions G")
	combineCmd.Flags().Float64VarP(&combineVariable, "variable", "q", 0, "Effect of variable actions Q")
	combineCmd.Flags().Float64VarP(&combineWind, "wind", "w", 0, "Effect of wind W")
	combineCmd.Flags().StringVarP(&combineUnit, "unit", "u", "kN-m", "Unit printed with the effects")

	combineCmd.Flags().BoolVarP(&combineAll, "all", "a", false, "Show all combination results")
	combineCmd.Flags().BoolVar(&combineGravity, "gravity", false, "Use gravity combinations only (1.4G + 1.4Q)")
}

func runCombine(cmd *cobra.Command, args []string) error {
	actions := nbr.Actions{
		Permanent: combinePermanent,
		Variable:  combineVariable,
		Wind:      combineWind,
	}
	if actions.Permanent == 0 && actions.Variable == 0 && actions.Wind == 0 {
		return fmt.Errorf("provide at least one characteristic effect, see 'gorcd combine --help'")
	}

	combinations := nbr.Combinations
	if combineGravity {
		combinations = nbr.GravityCombinations
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("          NBR 6118 ULTIMATE LOAD COMBINATIONS")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Printf("CHARACTERISTIC EFFECTS (%s):\n", combineUnit)
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if actions.Permanent != 0 {
		fmt.Fprintf(w, "  Permanent (G):\t%.2f\n", actions.Permanent)
	}
	if actions.Variable != 0 {
		fmt.Fprintf(w, "  Variable (Q):\t%.2f\n", actions.Variable)
	}
	if actions.Wind != 0 {
		fmt.Fprintf(w, "  Wind (W):\t%.2f\n", actions.Wind)
	}
	w.Flush()
	fmt.Println()

	design, governing, factor := nbr.Governing(actions, combinations)

	if combineAll {
		fmt.Println("LOAD COMBINATIONS:")
		fmt.Println("───────────────────────────────────────────────────────────────")
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  #\tCombination\tDesign (%s)\n", combineUnit)
		fmt.Fprintf(w, "  ─\t───────────\t──────\n")
		for _, combo := range combinations {
			marker := ""
			if combo.ID == governing.ID {
				marker = " ← GOVERNS"
			}
			fmt.Fprintf(w, "  %s\t%s\t%.2f%s\n", combo.ID, combo.Description, combo.Factored(actions), marker)
		}
		w.Flush()
		fmt.Println()
	}

	fmt.Println("RESULT:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	fmt.Printf("  Governing Combination: %s (%s)\n", governing.ID, governing.Description)
	fmt.Println()
	fmt.Printf("  ╔═══════════════════════════════════╗\n")
	fmt.Printf("  ║  DESIGN VALUE = %.2f %s\n", design, combineUnit)
	fmt.Printf("  ║  EQUIVALENT FACTOR = %.3f\n", factor)
	fmt.Printf("  ╚═══════════════════════════════════╝\n")
	fmt.Println()
	return nil
}
