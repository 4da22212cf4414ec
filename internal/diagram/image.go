package diagram

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	compressionColor = color.RGBA{R: 200, G: 30, B: 30, A: 255}
	tensionColor     = color.RGBA{R: 30, G: 60, B: 200, A: 255}
	zeroColor        = color.Gray{Y: 128}
	deformedColor    = color.RGBA{R: 0, G: 140, B: 0, A: 255}
)

// project returns the two in-plane coordinates of a point
func project(plane string, x, y, z float64) (float64, float64) {
	switch plane {
	case "xz":
		return x, z
	case "yz":
		return y, z
	default:
		return x, y
	}
}

func axisLabels(plane string) (string, string) {
	switch plane {
	case "xz":
		return "X", "Z"
	case "yz":
		return "Y", "Z"
	default:
		return "X", "Y"
	}
}

// deformationScale picks a magnification so the largest displacement is
// drawn at a tenth of the model extent
func deformationScale(data TrussDiagramData) float64 {
	if data.Scale > 0 {
		return data.Scale
	}
	var maxD, minX, maxX, minY, maxY float64
	for i, n := range data.Nodes {
		px, py := project(data.Plane, n.X, n.Y, n.Z)
		if i == 0 {
			minX, maxX, minY, maxY = px, px, py, py
		}
		minX, maxX = math.Min(minX, px), math.Max(maxX, px)
		minY, maxY = math.Min(minY, py), math.Max(maxY, py)
		dx, dy := project(data.Plane, n.DX, n.DY, n.DZ)
		maxD = math.Max(maxD, math.Hypot(dx, dy))
	}
	extent := math.Max(maxX-minX, maxY-minY)
	if maxD == 0 || extent == 0 {
		return 0
	}
	return 0.1 * extent / maxD
}

// ExportTrussDiagram exports a projection of the solved truss to an image
// file. Members are colored by force sign with width proportional to the
// force; the deformed shape is drawn dashed.
func ExportTrussDiagram(data TrussDiagramData, filename string) error {
	p := plot.New()
	p.Title.Text = data.Title
	if p.Title.Text == "" {
		p.Title.Text = "Truss Member Forces"
	}
	p.X.Label.Text, p.Y.Label.Text = axisLabels(data.Plane)

	maxForce := 0.0
	for _, m := range data.Members {
		maxForce = math.Max(maxForce, math.Abs(m.Force))
	}

	scale := deformationScale(data)

	for _, m := range data.Members {
		if m.From < 0 || m.From >= len(data.Nodes) || m.To < 0 || m.To >= len(data.Nodes) {
			return fmt.Errorf("member %q references a node outside the diagram", m.ID)
		}
		a, b := data.Nodes[m.From], data.Nodes[m.To]

		ax, ay := project(data.Plane, a.X, a.Y, a.Z)
		bx, by := project(data.Plane, b.X, b.Y, b.Z)
		line, err := plotter.NewLine(plotter.XYs{{X: ax, Y: ay}, {X: bx, Y: by}})
		if err != nil {
			return err
		}
		line.LineStyle.Width = vg.Points(1)
		line.LineStyle.Color = zeroColor
		if maxForce > 0 && m.Force != 0 {
			line.LineStyle.Width = vg.Points(1 + 4*math.Abs(m.Force)/maxForce)
			line.LineStyle.Color = tensionColor
			if m.Force > 0 {
				line.LineStyle.Color = compressionColor
			}
		}
		p.Add(line)

		if scale > 0 {
			adx, ady := project(data.Plane, a.DX, a.DY, a.DZ)
			bdx, bdy := project(data.Plane, b.DX, b.DY, b.DZ)
			deformed, err := plotter.NewLine(plotter.XYs{
				{X: ax + scale*adx, Y: ay + scale*ady},
				{X: bx + scale*bdx, Y: by + scale*bdy},
			})
			if err != nil {
				return err
			}
			deformed.LineStyle.Width = vg.Points(1)
			deformed.LineStyle.Color = deformedColor
			deformed.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
			p.Add(deformed)
		}

		label, err := plotter.NewLabels(plotter.XYLabels{
			XYs:    []plotter.XY{{X: (ax + bx) / 2, Y: (ay + by) / 2}},
			Labels: []string{fmt.Sprintf("%s: %.2f", m.ID, m.Force)},
		})
		if err != nil {
			return err
		}
		p.Add(label)
	}

	if len(data.Nodes) > 0 {
		pts := make(plotter.XYs, len(data.Nodes))
		ids := make([]string, len(data.Nodes))
		for i, n := range data.Nodes {
			pts[i].X, pts[i].Y = project(data.Plane, n.X, n.Y, n.Z)
			ids[i] = n.ID
		}

		joints, err := plotter.NewScatter(pts)
		if err != nil {
			return err
		}
		joints.GlyphStyle.Color = color.Black
		joints.GlyphStyle.Radius = vg.Points(3)
		joints.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(joints)

		labels, err := plotter.NewLabels(plotter.XYLabels{XYs: pts, Labels: ids})
		if err != nil {
			return err
		}
		p.Add(labels)
	}

	// Create directory if needed
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	width := 8 * vg.Inch
	height := 6 * vg.Inch

	switch filepath.Ext(filename) {
	case ".png", ".svg", ".pdf", ".jpg", ".jpeg", ".tif", ".tiff", ".eps":
		return p.Save(width, height, filename)
	default:
		return p.Save(width, height, filename+".png")
	}
}
