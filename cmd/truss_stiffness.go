package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var trussStiffnessCmd = &cobra.Command{
	Use:   "stiffness",
	Short: "Print the assembled global stiffness matrix",
	Long: `Assemble and print the 3N x 3N global stiffness matrix before
supports are applied. Rows and columns are labelled node.axis in
node order.

Examples:
  gotruss truss stiffness --file tripod.json`,
	RunE: runTrussStiffness,
}

func init() {
	trussCmd.AddCommand(trussStiffnessCmd)
}

func runTrussStiffness(cmd *cobra.Command, args []string) error {
	_, s, err := loadStructure()
	if err != nil {
		return fmt.Errorf("loading truss: %w", err)
	}

	k, err := s.Stiffness()
	if err != nil {
		return fmt.Errorf("assembling stiffness: %w", err)
	}

	var labels []string
	for _, n := range s.Nodes() {
		for _, axis := range []string{"x", "y", "z"} {
			labels = append(labels, n.ID+"."+axis)
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintf(out, "GLOBAL STIFFNESS MATRIX (%d x %d):\n", len(labels), len(labels))
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "\t%s\t\n", strings.Join(labels, "\t"))
	for r, label := range labels {
		cells := make([]string, len(labels))
		for c := range labels {
			cells[c] = fmt.Sprintf("%.6g", k.At(r, c))
		}
		fmt.Fprintf(w, "%s\t%s\t\n", label, strings.Join(cells, "\t"))
	}
	w.Flush()
	fmt.Fprintln(out)

	return nil
}
