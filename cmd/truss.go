package cmd

import (
	"github.com/alexiusacademia/gotruss/internal/diagram"
	"github.com/alexiusacademia/gotruss/internal/model"
	"github.com/alexiusacademia/gotruss/internal/truss"
	"github.com/spf13/cobra"
)

var trussCmd = &cobra.Command{
	Use:   "truss",
	Short: "3D pin-jointed truss analysis",
	Long: `Analyze pin-jointed space trusses defined in JSON or YAML files
with the direct stiffness method.

Subcommands:
  solve      - Displacements, reactions, member forces and stresses
  stiffness  - Print the assembled global stiffness matrix
  envelope   - Member force envelope over NSCP load combinations

Example JSON file structure:
{
  "name": "Tripod",
  "nodes": [
    {"id": "A", "x": 0, "y": 0, "z": 0},
    {"id": "B", "x": 4, "y": 0, "z": 0},
    {"id": "C", "x": 0, "y": 4, "z": 0},
    {"id": "D", "x": 1, "y": 1, "z": 3}
  ],
  "elements": [
    {"id": "1", "from": "A", "to": "D"},
    {"id": "2", "from": "B", "to": "D"},
    {"id": "3", "from": "C", "to": "D"}
  ],
  "supports": {"A": [1, 1, 1], "B": [1, 1, 1], "C": [1, 1, 1]},
  "forces": {"D": [10, -5, -20]},
  "elasticity": {"1": 200000, "2": 200000},
  "materials": {"3": "aluminum"},
  "cross_area": {"1": 100, "2": 150, "3": 120}
}

Sign convention: member forces and stresses are positive in
compression and negative in tension.`,
}

// Options shared by the truss subcommands
var (
	trussFile            string
	reactionDecimals     int
	displacementDecimals int
	exactResults         bool
	maxCondition         float64
	workers              int
)

func init() {
	rootCmd.AddCommand(trussCmd)

	trussCmd.PersistentFlags().StringVarP(&trussFile, "file", "f", "", "Path to truss JSON or YAML file [required]")
	trussCmd.PersistentFlags().IntVar(&reactionDecimals, "reaction-decimals", 0, "Decimal places for reactions")
	trussCmd.PersistentFlags().IntVar(&displacementDecimals, "displacement-decimals", 5, "Decimal places for member end displacements")
	trussCmd.PersistentFlags().BoolVar(&exactResults, "exact", false, "Keep full precision (no rounding of reactions or end displacements)")
	trussCmd.PersistentFlags().Float64Var(&maxCondition, "max-cond", truss.DefaultMaxCondition, "Largest accepted condition number of the reduced stiffness matrix")
	trussCmd.PersistentFlags().IntVar(&workers, "workers", 1, "Goroutines used to build element stiffness matrices")
	trussCmd.MarkPersistentFlagRequired("file")
}

func solveOptions() truss.Options {
	opts := truss.DefaultOptions()
	opts.ReactionDecimals = reactionDecimals
	opts.DisplacementDecimals = displacementDecimals
	if exactResults {
		opts.ReactionDecimals = truss.NoRounding
		opts.DisplacementDecimals = truss.NoRounding
	}
	opts.MaxCondition = maxCondition
	opts.Workers = workers
	return opts
}

// loadStructure reads the model file and resolves it into a structure
func loadStructure() (*model.Definition, *truss.Structure, error) {
	def, err := model.LoadFromFile(trussFile)
	if err != nil {
		return nil, nil, err
	}
	s, err := truss.New(def, solveOptions())
	if err != nil {
		return nil, nil, err
	}
	return def, s, nil
}

// diagramData converts a solved structure for the diagram package
func diagramData(s *truss.Structure, res *truss.Result) diagram.TrussDiagramData {
	data := diagram.TrussDiagramData{Title: s.Name}
	for i, n := range s.Nodes() {
		data.Nodes = append(data.Nodes, diagram.NodePoint{
			ID: n.ID,
			X:  n.X,
			Y:  n.Y,
			Z:  n.Z,
			DX: res.Displacements[3*i],
			DY: res.Displacements[3*i+1],
			DZ: res.Displacements[3*i+2],
		})
	}
	for i, e := range s.Elements() {
		data.Members = append(data.Members, diagram.MemberLine{
			ID:    e.ID,
			From:  e.I,
			To:    e.J,
			Force: res.Members[i].Force,
		})
	}
	return data
}

// forceState names the sign of a member force
func forceState(force float64) string {
	switch {
	case force > 0:
		return "Compression"
	case force < 0:
		return "Tension"
	}
	return "Zero"
}
