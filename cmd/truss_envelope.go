package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/alexiusacademia/gotruss/internal/nscp"
	"github.com/spf13/cobra"
)

var envelopeSimplified bool

var trussEnvelopeCmd = &cobra.Command{
	Use:   "envelope",
	Short: "Member force envelope over NSCP load combinations",
	Long: `Solve the truss for every NSCP 2015 load combination of the
load cases in the model file and report the governing compression
and tension of each member.

Load cases are given under "load_cases", keyed by load type:
  D  - Dead load
  L  - Live load
  Lr - Roof live load
  W  - Wind load
  E  - Earthquake load
  R  - Rain load

Examples:
  gotruss truss envelope --file roof.json
  gotruss truss envelope -f roof.yaml --simplified`,
	RunE: runTrussEnvelope,
}

func init() {
	trussCmd.AddCommand(trussEnvelopeCmd)

	trussEnvelopeCmd.Flags().BoolVarP(&envelopeSimplified, "simplified", "s", false, "Use simplified combinations (gravity only: 1.4D and 1.2D+1.6L)")
}

func runTrussEnvelope(cmd *cobra.Command, args []string) error {
	def, s, err := loadStructure()
	if err != nil {
		return fmt.Errorf("loading truss: %w", err)
	}

	combinations := nscp.LoadCombinations
	if envelopeSimplified {
		combinations = nscp.SimplifiedCombinations
	}

	env, err := s.SolveEnvelope(combinations)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out, "     MEMBER FORCE ENVELOPE - NSCP 2015 LOAD COMBINATIONS")
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out)
	if def.Name != "" {
		fmt.Fprintf(out, "  Truss: %s\n\n", def.Name)
	}

	fmt.Fprintln(out, "LOAD CASES:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	for _, t := range nscp.LoadTypes {
		if _, ok := s.LoadCases()[t]; ok {
			fmt.Fprintf(out, "  ✓ %s\n", t)
		}
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "COMBINATIONS:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Combo\tDescription\tMax |Force|\n")
	fmt.Fprintf(w, "  ─────\t───────────\t───────────\n")
	for i, combo := range env.Combinations {
		var largest float64
		for _, m := range env.Results[i].Members {
			largest = max(largest, m.Force, -m.Force)
		}
		fmt.Fprintf(w, "  %s\t%s\t%.4f\n", combo.ID, combo.Description, largest)
	}
	w.Flush()
	fmt.Fprintln(out)

	fmt.Fprintln(out, "MEMBER ENVELOPE:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Member\tMax Compression\tCombo\tMax Tension\tCombo\n")
	fmt.Fprintf(w, "  ──────\t───────────────\t─────\t───────────\t─────\n")
	for _, m := range env.Members {
		fmt.Fprintf(w, "  %s\t%.4f\t%s\t%.4f\t%s\n", m.ID,
			m.MaxCompression, governing(m.CompressionGoverning),
			m.MaxTension, governing(m.TensionGoverning))
	}
	w.Flush()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "  Sign convention: + compression, - tension")
	fmt.Fprintln(out)

	return nil
}

func governing(id string) string {
	if id == "" {
		return "-"
	}
	return id
}
