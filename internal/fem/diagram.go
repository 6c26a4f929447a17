package fem

import (
	"math"
	"sort"
)

// DefaultSamples is the number of sub-intervals the span is walked in
const DefaultSamples = 200

// Sample is one point of the internal-force diagrams.
// Moment is sagging positive; Deflection is downward positive.
type Sample struct {
	X          float64 // m
	Shear      float64 // kN
	Moment     float64 // kN·m
	Deflection float64 // mm
}

// Peaks are the governing values found while walking the span
type Peaks struct {
	MaxMoment  float64 // largest sagging moment, >= 0 (kN·m)
	MaxMomentX float64
	MinMoment  float64 // largest hogging moment, <= 0 (kN·m)
	MinMomentX float64
	MaxShear   float64 // largest |V| (kN)
	MaxShearX  float64

	Deflection  float64 // signed value with the largest magnitude (mm)
	DeflectionX float64
}

// event is an instantaneous jump in shear and moment
type event struct {
	x      float64
	force  float64 // added to V
	moment float64 // subtracted from M
}

// Walker folds the span left to right over equal sub-intervals, carrying
// the running shear and moment. It yields each sample once.
type Walker struct {
	m      *Model
	d      []float64
	events []event
	cursor int

	n int
	i int

	x, v, mo float64
	peaks    Peaks
}

// NewWalker prepares a walk over n equal sub-intervals of the span
func NewWalker(m *Model, d []float64, reactions []Reaction, n int) *Walker {
	if n < 1 {
		n = DefaultSamples
	}
	w := &Walker{m: m, d: d, n: n}
	for _, r := range reactions {
		w.events = append(w.events, event{x: r.X, force: r.Force, moment: r.Moment})
	}
	for _, p := range m.PointLoads {
		w.events = append(w.events, event{x: p.X, force: -p.Magnitude})
	}
	sort.SliceStable(w.events, func(i, j int) bool { return w.events[i].x < w.events[j].x })
	return w
}

// Next returns the next sample, or false once the span end has been passed
func (w *Walker) Next() (Sample, bool) {
	if w.i > w.n {
		return Sample{}, false
	}
	if w.i == 0 {
		w.applyEvents(0)
	} else {
		x := w.m.Span * float64(w.i) / float64(w.n)
		if w.i == w.n {
			x = w.m.Span
		}
		c := w.x
		for w.cursor < len(w.events) && w.events[w.cursor].x <= x+Tolerance {
			to := math.Min(w.events[w.cursor].x, x)
			w.integrate(c, to)
			c = math.Max(c, to)
			w.applyEvents(to)
		}
		w.integrate(c, x)
		w.x = x
	}

	s := Sample{X: w.x, Shear: w.v, Moment: w.mo, Deflection: -w.m.Displacement(w.d, w.x) * 1000}
	if math.Abs(s.Deflection) > math.Abs(w.peaks.Deflection) {
		w.peaks.Deflection = s.Deflection
		w.peaks.DeflectionX = s.X
	}
	w.i++
	return s, true
}

// Peaks returns the governing values seen so far
func (w *Walker) Peaks() Peaks {
	return w.peaks
}

// applyEvents applies every jump at position x as one discontinuity
func (w *Walker) applyEvents(x float64) {
	w.track(x)
	for w.cursor < len(w.events) && w.events[w.cursor].x <= x+Tolerance {
		e := w.events[w.cursor]
		w.v += e.force
		w.mo -= e.moment
		w.cursor++
	}
	w.track(x)
}

// integrate advances V and M from a to b with the trapezoidal rule
func (w *Walker) integrate(a, b float64) {
	if b <= a {
		return
	}
	before := w.v
	for _, d := range w.m.DistributedLoads {
		w.v -= d.areaBetween(a, b)
	}
	w.mo += (before + w.v) / 2 * (b - a)
	w.track(b)
}

func (w *Walker) track(x float64) {
	if w.mo > w.peaks.MaxMoment {
		w.peaks.MaxMoment = w.mo
		w.peaks.MaxMomentX = x
	}
	if w.mo < w.peaks.MinMoment {
		w.peaks.MinMoment = w.mo
		w.peaks.MinMomentX = x
	}
	if math.Abs(w.v) > w.peaks.MaxShear {
		w.peaks.MaxShear = math.Abs(w.v)
		w.peaks.MaxShearX = x
	}
}

// Displacement returns the vertical displacement (m, upward positive) at x
// from the cubic Hermite interpolation of the containing element.
func (m *Model) Displacement(d []float64, x float64) float64 {
	if len(d) < m.Dofs() {
		return 0
	}
	e := sort.SearchFloat64s(m.Nodes, x) - 1
	if e < 0 {
		e = 0
	}
	if e > len(m.Nodes)-2 {
		e = len(m.Nodes) - 2
	}
	x1, x2 := m.Nodes[e], m.Nodes[e+1]
	l := x2 - x1
	xi := (x - x1) / l
	xi2 := xi * xi
	xi3 := xi2 * xi

	n1 := 1 - 3*xi2 + 2*xi3
	n2 := (xi - 2*xi2 + xi3) * l
	n3 := 3*xi2 - 2*xi3
	n4 := (-xi2 + xi3) * l
	return n1*d[2*e] + n2*d[2*e+1] + n3*d[2*e+2] + n4*d[2*e+3]
}

// Diagram is the complete walk of the span
type Diagram struct {
	Samples []Sample
	Peaks   Peaks
}

// Walk runs a Walker to completion
func Walk(m *Model, d []float64, reactions []Reaction, n int) *Diagram {
	w := NewWalker(m, d, reactions, n)
	diag := &Diagram{}
	for s, ok := w.Next(); ok; s, ok = w.Next() {
		diag.Samples = append(diag.Samples, s)
	}
	diag.Peaks = w.Peaks()
	return diag
}
