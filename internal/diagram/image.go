package diagram

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/alexiusacademia/gorcd/internal/engine"
	"github.com/alexiusacademia/gorcd/internal/section"
)

var (
	curveColor   = color.RGBA{R: 0, G: 0, B: 139, A: 255}
	fillColor    = color.RGBA{R: 100, G: 149, B: 237, A: 120}
	steelColor   = color.RGBA{R: 139, G: 69, B: 19, A: 255}
	stirrupColor = color.RGBA{R: 90, G: 90, B: 90, A: 255}
)

// ExportDiagram exports one internal-force diagram to an image file.
// Moment diagrams are usually drawn with sagging downward; pass invert to do so.
func ExportDiagram(title, unit string, pts []engine.Point, invert bool, filename string) error {
	if len(pts) < 2 {
		return fmt.Errorf("diagram %q has no samples", title)
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x (m)"
	p.Y.Label.Text = fmt.Sprintf("%s (%s)", title, unit)

	sign := 1.0
	if invert {
		sign = -1
	}
	line := make(plotter.XYs, len(pts))
	area := make(plotter.XYs, 0, len(pts)+2)
	area = append(area, plotter.XY{X: pts[0].X, Y: 0})
	for i, pt := range pts {
		line[i] = plotter.XY{X: pt.X, Y: sign * pt.Value}
		area = append(area, line[i])
	}
	area = append(area, plotter.XY{X: pts[len(pts)-1].X, Y: 0})

	fill, err := plotter.NewPolygon(area)
	if err != nil {
		return err
	}
	fill.Color = fillColor
	fill.LineStyle.Width = 0
	p.Add(fill)

	curve, err := plotter.NewLine(line)
	if err != nil {
		return err
	}
	curve.LineStyle.Width = vg.Points(2)
	curve.LineStyle.Color = curveColor
	p.Add(curve)

	axis, err := plotter.NewLine(plotter.XYs{{X: pts[0].X, Y: 0}, {X: pts[len(pts)-1].X, Y: 0}})
	if err != nil {
		return err
	}
	axis.LineStyle.Width = vg.Points(1)
	axis.LineStyle.Color = color.Black
	p.Add(axis)

	return save(p, 8*vg.Inch, 4*vg.Inch, filename)
}

// ExportSection exports the cross-section layout to an image file
func ExportSection(l section.Layout, filename string) error {
	p := plot.New()
	p.Title.Text = "Cross Section"
	p.X.Label.Text = "Width (cm)"
	p.Y.Label.Text = "Height (cm)"

	outline := plotter.XYs{}
	for _, v := range l.Outline() {
		outline = append(outline, plotter.XY{X: v.X, Y: v.Y})
	}
	outline = append(outline, outline[0])
	concrete, err := plotter.NewLine(outline)
	if err != nil {
		return err
	}
	concrete.LineStyle.Width = vg.Points(2)
	concrete.LineStyle.Color = color.Black
	p.Add(concrete)

	if l.StirrupDiameter > 0 {
		c := l.Cover + l.StirrupDiameter/20
		stirrup, err := plotter.NewLine(plotter.XYs{
			{X: c, Y: c}, {X: l.Width - c, Y: c},
			{X: l.Width - c, Y: l.Height - c}, {X: c, Y: l.Height - c},
			{X: c, Y: c},
		})
		if err != nil {
			return err
		}
		stirrup.LineStyle.Width = vg.Points(1.5)
		stirrup.LineStyle.Color = stirrupColor
		p.Add(stirrup)
	}

	bars := l.Bars()
	if len(bars) > 0 {
		xys := make(plotter.XYs, len(bars))
		for i, b := range bars {
			xys[i] = plotter.XY{X: b.Center.X, Y: b.Center.Y}
		}
		steel, err := plotter.NewScatter(xys)
		if err != nil {
			return err
		}
		steel.GlyphStyle.Color = steelColor
		steel.GlyphStyle.Radius = vg.Points(5)
		steel.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(steel)
	}

	label, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: 0, Y: -0.12 * l.Height}},
		Labels: []string{fmt.Sprintf("%.3g cm2 of steel", l.SteelArea())},
	})
	if err != nil {
		return err
	}
	p.Add(label)

	// Equal scales so the section is not distorted
	side := max(l.Width, l.Height) * 1.25
	p.X.Min, p.X.Max = -0.125*side, side-0.125*side
	p.Y.Min, p.Y.Max = -0.2*side, side-0.2*side

	return save(p, 6*vg.Inch, 6*vg.Inch, filename)
}

// save writes the plot, choosing the format from the extension (.png, .svg
// or .pdf). Names without a known extension get .png.
func save(p *plot.Plot, width, height vg.Length, filename string) error {
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	switch filepath.Ext(filename) {
	case ".png", ".svg", ".pdf":
		return p.Save(width, height, filename)
	default:
		return p.Save(width, height, filename+".png")
	}
}
