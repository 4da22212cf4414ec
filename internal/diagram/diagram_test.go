package diagram

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() TrussDiagramData {
	return TrussDiagramData{
		Title: "sample",
		Nodes: []NodePoint{
			{ID: "A"},
			{ID: "B", X: 4},
			{ID: "C", X: 2, Y: 3, DY: -0.01, DX: 0.002},
		},
		Members: []MemberLine{
			{ID: "AC", From: 0, To: 2, Force: 12.5},
			{ID: "BC", From: 1, To: 2, Force: -6.25},
			{ID: "AB", From: 0, To: 1, Force: 0},
		},
	}
}

func TestDrawForceBars(t *testing.T) {
	out := DrawForceBars(sample())

	lines := strings.Split(out, "\n")
	var ac, bc string
	for _, l := range lines {
		switch {
		case strings.Contains(l, "AC "):
			ac = l
		case strings.Contains(l, "BC "):
			bc = l
		}
	}
	require.NotEmpty(t, ac)
	require.NotEmpty(t, bc)

	assert.Contains(t, ac, " C 12.500")
	assert.Equal(t, 25, strings.Count(ac, "█"))
	assert.Contains(t, bc, " T 6.250")
	assert.Equal(t, 13, strings.Count(bc, "░"))
}

func TestDisplacementChart(t *testing.T) {
	out := DisplacementChart(sample())
	assert.Contains(t, out, "nodal displacement magnitude")

	assert.Empty(t, DisplacementChart(TrussDiagramData{}))
}

func TestDrawSummaryBox(t *testing.T) {
	out := DrawSummaryBox("Title", []string{"a much longer line", "b"})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 6)

	width := len([]rune(lines[0]))
	for _, l := range lines {
		assert.Equal(t, width, len([]rune(l)), l)
	}
}

func TestDeformationScale(t *testing.T) {
	data := sample()
	// extent 4, largest in-plane displacement ~0.0102
	s := deformationScale(data)
	assert.InDelta(t, 0.4/0.010198039, s, 1e-3)

	data.Scale = 50
	assert.Equal(t, 50.0, deformationScale(data))
}

func TestExportTrussDiagram(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "truss.png")

	require.NoError(t, ExportTrussDiagram(sample(), path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	bad := sample()
	bad.Members[0].To = 9
	assert.Error(t, ExportTrussDiagram(bad, filepath.Join(dir, "bad.png")))
}
