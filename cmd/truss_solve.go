package cmd

import (
	"fmt"
	"math"
	"text/tabwriter"

	"github.com/alexiusacademia/gotruss/internal/diagram"
	"github.com/alexiusacademia/gotruss/internal/nscp"
	"github.com/alexiusacademia/gotruss/internal/truss"
	"github.com/spf13/cobra"
)

var (
	solveCombination string
	solveShowDiagram bool
	solveShowChart   bool
	solveExportFile  string
	solvePlane       string
	solveScale       float64
)

var trussSolveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve a truss for displacements, reactions and member forces",
	Long: `Assemble the global stiffness matrix, apply supports, solve for
nodal displacements and derive reactions, member forces and stresses.

By default reactions are rounded to whole numbers and member end
displacements to 5 decimal places before forces are derived; use
--exact to keep full precision.

Examples:
  gotruss truss solve --file tripod.json
  gotruss truss solve -f tower.yaml --diagram --chart
  gotruss truss solve -f tower.yaml --combination 2 -o forces.png --plane xz`,
	RunE: runTrussSolve,
}

func init() {
	trussCmd.AddCommand(trussSolveCmd)

	trussSolveCmd.Flags().StringVarP(&solveCombination, "combination", "c", "", "Solve an NSCP load combination (ID 1-7) of the file's load cases")
	trussSolveCmd.Flags().BoolVar(&solveShowDiagram, "diagram", false, "Show ASCII member force diagram")
	trussSolveCmd.Flags().BoolVar(&solveShowChart, "chart", false, "Show ASCII chart of nodal displacements")
	trussSolveCmd.Flags().StringVarP(&solveExportFile, "output", "o", "", "Export force diagram to file (png, svg, pdf)")
	trussSolveCmd.Flags().StringVar(&solvePlane, "plane", "xy", "Projection plane of the exported diagram (xy, xz, yz)")
	trussSolveCmd.Flags().Float64Var(&solveScale, "scale", 0, "Displacement magnification of the exported diagram (0 = automatic)")
}

func runTrussSolve(cmd *cobra.Command, args []string) error {
	def, s, err := loadStructure()
	if err != nil {
		return fmt.Errorf("loading truss: %w", err)
	}

	var res *truss.Result
	loading := "Applied forces"
	if solveCombination != "" {
		combo, ok := nscp.FindCombination(solveCombination, nscp.LoadCombinations)
		if !ok {
			return fmt.Errorf("unknown load combination %q", solveCombination)
		}
		loading = fmt.Sprintf("Combination %s: %s", combo.ID, combo.Description)
		res, err = s.SolveCombination(combo)
	} else {
		res, err = s.Solve()
	}
	if err != nil {
		return fmt.Errorf("solving truss: %w", err)
	}

	out := cmd.OutOrStdout()

	fmt.Fprintln(out)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out, "     3D TRUSS ANALYSIS - DIRECT STIFFNESS METHOD")
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out)

	if def.Name != "" {
		fmt.Fprintf(out, "  Truss: %s\n", def.Name)
	}
	if def.Description != "" {
		fmt.Fprintf(out, "  Description: %s\n", def.Description)
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "MODEL:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Nodes:\t%d\n", len(s.Nodes()))
	fmt.Fprintf(w, "  Elements:\t%d\n", len(s.Elements()))
	fmt.Fprintf(w, "  Degrees of freedom:\t%d\n", 3*len(s.Nodes()))
	fmt.Fprintf(w, "  Restrained DOFs:\t%d\n", len(res.Restrained))
	fmt.Fprintf(w, "  Loading:\t%s\n", loading)
	w.Flush()
	fmt.Fprintln(out)

	fmt.Fprintln(out, "NODAL DISPLACEMENTS:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Node\tux\tuy\tuz\n")
	fmt.Fprintf(w, "  ────\t──\t──\t──\n")
	for _, id := range res.NodeIDs() {
		u, _ := res.NodeDisplacement(id)
		fmt.Fprintf(w, "  %s\t%.6f\t%.6f\t%.6f\n", id, u[0], u[1], u[2])
	}
	w.Flush()
	fmt.Fprintln(out)

	fmt.Fprintln(out, "SUPPORT REACTIONS:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Node\tRx\tRy\tRz\n")
	fmt.Fprintf(w, "  ────\t──\t──\t──\n")
	var sum [3]float64
	for i, id := range res.NodeIDs() {
		if !res.IsRestrained(3*i) && !res.IsRestrained(3*i+1) && !res.IsRestrained(3*i+2) {
			continue
		}
		r, _ := res.NodeReaction(id)
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", id,
			reactionCell(res, 3*i, r[0]), reactionCell(res, 3*i+1, r[1]), reactionCell(res, 3*i+2, r[2]))
		for a := 0; a < 3; a++ {
			if res.IsRestrained(3*i + a) {
				sum[a] += r[a]
			}
		}
	}
	fmt.Fprintf(w, "  Σ\t%.4g\t%.4g\t%.4g\n", sum[0], sum[1], sum[2])
	w.Flush()
	fmt.Fprintln(out)

	fmt.Fprintln(out, "MEMBER RESULTS:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Member\tLength\tForce\tStress\tState\n")
	fmt.Fprintf(w, "  ──────\t──────\t─────\t──────\t─────\n")
	var maxC, maxT truss.MemberResult
	for _, m := range res.Members {
		fmt.Fprintf(w, "  %s\t%.4f\t%.4f\t%.4f\t%s\n", m.ID, m.Length, m.Force, m.Stress, forceState(m.Force))
		if m.Force > maxC.Force {
			maxC = m
		}
		if m.Force < maxT.Force {
			maxT = m
		}
	}
	w.Flush()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "  Sign convention: + compression, - tension")
	fmt.Fprintln(out)

	summary := []string{
		fmt.Sprintf("Max compression: %s", memberSummary(maxC)),
		fmt.Sprintf("Max tension:     %s", memberSummary(maxT)),
		fmt.Sprintf("Max displacement: %.6f", maxDisplacement(res)),
	}
	fmt.Fprint(out, diagram.DrawSummaryBox("RESULTS", summary))
	fmt.Fprintln(out)

	data := diagramData(s, res)
	if solveShowDiagram {
		fmt.Fprint(out, diagram.DrawForceBars(data))
		fmt.Fprintln(out)
	}
	if solveShowChart {
		fmt.Fprintln(out, diagram.DisplacementChart(data))
		fmt.Fprintln(out)
	}
	if solveExportFile != "" {
		data.Plane = solvePlane
		data.Scale = solveScale
		if err := diagram.ExportTrussDiagram(data, solveExportFile); err != nil {
			return fmt.Errorf("exporting diagram: %w", err)
		}
		fmt.Fprintf(out, "  ✓ Diagram exported to: %s\n\n", solveExportFile)
	}

	return nil
}

func reactionCell(res *truss.Result, dof int, v float64) string {
	if !res.IsRestrained(dof) {
		return "-"
	}
	return fmt.Sprintf("%.4g", v)
}

func memberSummary(m truss.MemberResult) string {
	if m.ID == "" {
		return "none"
	}
	return fmt.Sprintf("%s (%.4f)", m.ID, m.Force)
}

func maxDisplacement(res *truss.Result) float64 {
	var largest float64
	for i := 0; i+2 < len(res.Displacements); i += 3 {
		d := res.Displacements[i : i+3]
		largest = math.Max(largest, math.Sqrt(d[0]*d[0]+d[1]*d[1]+d[2]*d[2]))
	}
	return largest
}
