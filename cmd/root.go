package cmd

import (
	"fmt"
	"os"

	"github.com/alexiusacademia/gotruss/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gotruss",
	Short: "3D Truss Analysis Tool",
	Long: `gotruss - Go Space Truss Analyzer

A CLI tool for the static analysis of pin-jointed 3D trusses
using the direct stiffness method.

This tool computes:
  - Nodal displacements
  - Support reactions
  - Member axial forces and stresses
  - Member lengths and the global stiffness matrix
  - Force envelopes over NSCP 2015 load combinations

Member forces are positive in compression and negative in tension.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintf(out, "  ║   gotruss v%-47s║\n", version.Version)
		fmt.Fprintln(out, "  ║   Go Space Truss Analyzer                                 ║")
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintln(out, "  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  A CLI tool for the linear static analysis of 3D trusses.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Features:")
		fmt.Fprintln(out, "    • Displacements, reactions, member forces and stresses")
		fmt.Fprintln(out, "    • JSON and YAML model files")
		fmt.Fprintln(out, "    • NSCP load combinations and member force envelopes")
		fmt.Fprintln(out, "    • ASCII and image force diagrams")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Use 'gotruss --help' to see available commands.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ─────────────────────────────────────────────────────────────")
		fmt.Fprintf(out, "  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Fprintln(out)
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
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
}
