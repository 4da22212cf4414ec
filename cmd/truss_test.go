package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexiusacademia/gotruss/internal/truss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	// flag variables outlive a single Execute
	trussFile = ""
	reactionDecimals, displacementDecimals, exactResults = 0, 5, false
	maxCondition, workers = truss.DefaultMaxCondition, 1
	solveCombination, solveShowDiagram, solveShowChart = "", false, false
	solveExportFile, solvePlane, solveScale = "", "xy", 0
	envelopeSimplified = false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestSolveCommand(t *testing.T) {
	out, err := run(t, "truss", "solve", "-f", "../examples/tripod.json", "--diagram", "--chart")
	require.NoError(t, err)

	assert.Contains(t, out, "Truss: Tripod")
	assert.Contains(t, out, "NODAL DISPLACEMENTS:")
	assert.Contains(t, out, "SUPPORT REACTIONS:")
	assert.Contains(t, out, "MEMBER RESULTS:")
	assert.Contains(t, out, "Sign convention: + compression, - tension")
	assert.Contains(t, out, "MEMBER FORCES (C = compression, T = tension)")
	assert.Contains(t, out, "nodal displacement magnitude")
}

func TestSolveCommandCombination(t *testing.T) {
	out, err := run(t, "truss", "solve", "-f", "../examples/pyramid.yaml", "--combination", "2", "--exact")
	require.NoError(t, err)
	assert.Contains(t, out, "Combination 2: 1.2D + 1.6L + 0.5(Lr or R)")

	_, err = run(t, "truss", "solve", "-f", "../examples/pyramid.yaml", "--combination", "42")
	assert.ErrorContains(t, err, "unknown load combination")
}

func TestSolveCommandExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pyramid.svg")
	out, err := run(t, "truss", "solve", "-f", "../examples/pyramid.yaml", "-o", path, "--plane", "xz")
	require.NoError(t, err)
	assert.Contains(t, out, "Diagram exported to")

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestSolveCommandErrors(t *testing.T) {
	_, err := run(t, "truss", "solve", "-f", "does-not-exist.json")
	assert.ErrorContains(t, err, "loading truss")

	_, err = run(t, "truss", "solve")
	assert.Error(t, err)
}

func TestStiffnessCommand(t *testing.T) {
	out, err := run(t, "truss", "stiffness", "-f", "../examples/tripod.json")
	require.NoError(t, err)
	assert.Contains(t, out, "GLOBAL STIFFNESS MATRIX (12 x 12):")
	assert.Contains(t, out, "D.z")
}

func TestEnvelopeCommand(t *testing.T) {
	out, err := run(t, "truss", "envelope", "-f", "../examples/pyramid.yaml", "--simplified")
	require.NoError(t, err)
	assert.Contains(t, out, "MEMBER ENVELOPE:")
	assert.Contains(t, out, "1.2D + 1.6L")

	_, err = run(t, "truss", "envelope", "-f", "../examples/tripod.json")
	assert.ErrorIs(t, err, truss.ErrNoLoadCases)
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "gotruss v")
}
