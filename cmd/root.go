package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alexiusacademia/gorcd/internal/config"
	"github.com/alexiusacademia/gorcd/internal/engine"
	"github.com/alexiusacademia/gorcd/internal/version"
	"github.com/spf13/cobra"
)

var (
	envFile  string
	logLevel string

	// Resolved in PersistentPreRunE
	defaults config.Defaults
	logger   *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "gorcd",
	Short: "Reinforced Concrete Beam and Column Design Tool",
	Long: `gorcd - Go Reinforced Concrete Designer

A CLI tool for the analysis and design of reinforced concrete members
based on NBR 6118.

This tool helps structural engineers perform:
  - Continuous beam analysis (reactions, shear, moment, deflection)
  - Flexural design of both faces with bar packing and alternatives
  - Minimum shear reinforcement and deflection checks
  - Rectangular column design with slenderness and minimum eccentricity
  - Calculation memory export to PDF, diagrams to PNG and XLSX

Defaults may be set through GORCD_* environment variables or a .env file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		d, err := config.LoadDefaults(envFile)
		if err != nil {
			return err
		}
		if logLevel != "" {
			d.LogLevel = logLevel
		}
		level, err := config.ParseLevel(d.LogLevel)
		if err != nil {
			return err
		}
		defaults = d
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   gorcd v%-49s║\n", version.Version)
		fmt.Println("  ║   Go Reinforced Concrete Designer                         ║")
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  A CLI tool for the analysis and design of reinforced concrete")
		fmt.Println("  beams and columns based on NBR 6118.")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Continuous beam analysis by the stiffness method")
		fmt.Println("    • Beam flexure, shear and deflection design")
		fmt.Println("    • Column design with second order effects")
		fmt.Println("    • Ultimate limit state load combinations")
		fmt.Println("    • Batch beam design from a spreadsheet")
		fmt.Println()
		fmt.Println("  Use 'gorcd --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "Environment file with GORCD_* defaults")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default from GORCD_LOG_LEVEL)")
}

func newEngine() *engine.Engine {
	return engine.New(logger)
}

// outputPath places relative export paths under the configured output directory
func outputPath(name string) string {
	if name == "" || filepath.IsAbs(name) || defaults.OutputDir == "" {
		return name
	}
	return filepath.Join(defaults.OutputDir, name)
}
