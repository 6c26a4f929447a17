package section

import "math"

// MinClearSpacing returns the minimum clear distance between parallel bars (cm):
// the largest of 2 cm, the bar diameter and 1.2 times the aggregate size.
func MinClearSpacing(barMM, aggregateMM float64) float64 {
	return math.Max(2, math.Max(barMM/10, 1.2*aggregateMM/10))
}

// ClearWidth returns the width available to longitudinal bars inside the
// stirrups (cm)
func ClearWidth(width, cover, stirrupMM float64) float64 {
	return width - 2*cover - 2*stirrupMM/10
}

// BarsPerLayer returns how many bars of the given diameter fit side by side,
// never less than one.
func BarsPerLayer(clearWidth, barMM, aggregateMM float64) int {
	n := int(math.Floor(clearWidth / (barMM/10 + MinClearSpacing(barMM, aggregateMM))))
	return max(1, n)
}

// Bar is one longitudinal bar placed in the section
type Bar struct {
	Center   Point
	Diameter float64 // mm
}

// Bars returns the position of every longitudinal bar for drawing.
// Bottom and top layers are spread evenly between the stirrup legs;
// side bars are spread evenly between the corner bars.
func (l *Layout) Bars() []Bar {
	var bars []Bar
	inner := l.Cover + l.StirrupDiameter/10

	place := func(counts []int, phiMM float64, fromTop bool) {
		phi := phiMM / 10
		step := phi + math.Max(2, phi)
		for k, n := range counts {
			y := inner + phi/2 + float64(k)*step
			if fromTop {
				y = l.Height - y
			}
			for _, x := range spread(n, inner+phi/2, l.Width-inner-phi/2) {
				bars = append(bars, Bar{Center: Point{X: x, Y: y}, Diameter: phiMM})
			}
		}
	}
	place(l.Bottom, l.BottomDiameter, false)
	place(l.Top, l.TopDiameter, true)

	if l.Left+l.Right > 0 {
		phi := l.SideDiameter / 10
		lo := inner + phi/2
		hi := l.Height - inner - phi/2
		for _, side := range []struct {
			n int
			x float64
		}{{l.Left, lo}, {l.Right, l.Width - lo}} {
			ys := spread(side.n+2, lo, hi)
			for _, y := range ys[1 : len(ys)-1] {
				bars = append(bars, Bar{Center: Point{X: side.x, Y: y}, Diameter: l.SideDiameter})
			}
		}
	}
	return bars
}

// spread returns n evenly spaced positions from lo to hi inclusive.
// A single position is centred.
func spread(n int, lo, hi float64) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{(lo + hi) / 2}
	}
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = lo + (hi-lo)*float64(i)/float64(n-1)
	}
	return xs
}
