package diagram

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"
)

// NodePoint is a node position with its displacement
type NodePoint struct {
	ID         string
	X, Y, Z    float64
	DX, DY, DZ float64
}

// MemberLine is a member between two nodes (indices into Nodes) with its
// axial force, positive in compression
type MemberLine struct {
	ID       string
	From, To int
	Force    float64
}

// TrussDiagramData holds data for drawing a solved truss
type TrussDiagramData struct {
	Title   string
	Nodes   []NodePoint
	Members []MemberLine

	// Projection plane for images: "xy", "xz" or "yz"
	Plane string

	// Displacement magnification for the deformed shape, 0 picks one
	Scale float64
}

// DrawForceBars creates an ASCII bar chart of member forces.
// Compression bars grow right, tension bars grow left.
func DrawForceBars(data TrussDiagramData) string {
	var sb strings.Builder

	const half = 25

	maxForce := 0.0
	idWidth := 2
	for _, m := range data.Members {
		maxForce = math.Max(maxForce, math.Abs(m.Force))
		idWidth = max(idWidth, len(m.ID))
	}

	sb.WriteString("\n")
	sb.WriteString("  MEMBER FORCES (C = compression, T = tension)\n")
	sb.WriteString("  ────────────────────────────────────────────\n\n")

	for _, m := range data.Members {
		barLen := 0
		if maxForce > 0 {
			barLen = int(math.Round(math.Abs(m.Force) / maxForce * half))
		}

		left := strings.Repeat(" ", half)
		right := strings.Repeat(" ", half)
		kind := " "
		switch {
		case m.Force > 0:
			right = strings.Repeat("█", barLen) + strings.Repeat(" ", half-barLen)
			kind = "C"
		case m.Force < 0:
			left = strings.Repeat(" ", half-barLen) + strings.Repeat("░", barLen)
			kind = "T"
		}

		sb.WriteString(fmt.Sprintf("  %-*s %s│%s %s %.3f\n", idWidth, m.ID, left, right, kind, math.Abs(m.Force)))
	}

	sb.WriteString(fmt.Sprintf("\n  %*s %s┴%s\n", idWidth, "", strings.Repeat("─", half), strings.Repeat("─", half)))
	sb.WriteString(fmt.Sprintf("  %*s %-*s0%*s\n", idWidth, "", half, "tension", half, "compression"))

	return sb.String()
}

// DisplacementChart plots the displacement magnitude of every node, in
// node order, as a terminal line chart.
func DisplacementChart(data TrussDiagramData) string {
	if len(data.Nodes) == 0 {
		return ""
	}

	series := make([]float64, len(data.Nodes))
	for i, n := range data.Nodes {
		series[i] = math.Sqrt(n.DX*n.DX + n.DY*n.DY + n.DZ*n.DZ)
	}
	if len(series) == 1 {
		series = append(series, series[0])
	}

	return asciigraph.Plot(series,
		asciigraph.Height(10),
		asciigraph.Width(max(30, 4*len(data.Nodes))),
		asciigraph.Precision(5),
		asciigraph.Caption("nodal displacement magnitude (node order)"),
	)
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := len([]rune(title))
	for _, line := range lines {
		maxLen = max(maxLen, len([]rune(line)))
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-4, title))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-4, line))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}
