// Package fem solves continuous beams with 2-node Euler-Bernoulli elements.
//
// Each node carries two degrees of freedom: vertical translation (upward
// positive) and rotation (counter-clockwise positive). Loads are given as
// downward-positive magnitudes in kN and kN/m, positions in metres.
package fem

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/alexiusacademia/gorcd/internal/nbr"
	"github.com/alexiusacademia/gorcd/internal/section"
)

// Numerical constants. These are correctness constants, not settings.
const (
	// Tolerance for node snapping and position matching (m)
	Tolerance = 1e-5

	// Penalty stiffness added to restrained DOF diagonals. Must dominate
	// EI/L³ terms (~1e3..1e6 kN/m) while leaving the solve well posed.
	Penalty = 1e20

	// PivotFloor below which an elimination column is treated as done
	PivotFloor = 1e-10
)

// ErrUnstable is returned when the supports cannot hold the beam
var ErrUnstable = errors.New("structure is unstable: need at least two supports or one fixed support")

// SupportKind is the restraint provided by a support
type SupportKind string

const (
	Pin    SupportKind = "pin"    // restrains vertical translation
	Roller SupportKind = "roller" // restrains vertical translation
	Fixed  SupportKind = "fixed"  // restrains vertical translation and rotation
)

// Support is a restraint at a position along the span
type Support struct {
	X    float64 // m
	Kind SupportKind
}

// PointLoad is a concentrated downward force
type PointLoad struct {
	X         float64 // m
	Magnitude float64 // kN, downward positive
}

// DistributedLoad is a trapezoidal downward load between Start and End
type DistributedLoad struct {
	Start          float64 // m
	End            float64 // m
	StartMagnitude float64 // kN/m
	EndMagnitude   float64 // kN/m
}

// intensity returns q(x) assuming Start < End
func (d DistributedLoad) intensity(x float64) float64 {
	return d.StartMagnitude + (d.EndMagnitude-d.StartMagnitude)*(x-d.Start)/(d.End-d.Start)
}

// areaBetween returns the exact resultant of the load over [a, b] ∩ [Start, End]
func (d DistributedLoad) areaBetween(a, b float64) float64 {
	lo := math.Max(a, d.Start)
	hi := math.Min(b, d.End)
	if hi <= lo {
		return 0
	}
	return (d.intensity(lo) + d.intensity(hi)) / 2 * (hi - lo)
}

// Resultant returns the total load in kN
func (d DistributedLoad) Resultant() float64 {
	return (d.StartMagnitude + d.EndMagnitude) / 2 * (d.End - d.Start)
}

// Beam is the raw calculation input for the solver
type Beam struct {
	Span             float64 // m
	Supports         []Support
	PointLoads       []PointLoad
	DistributedLoads []DistributedLoad

	// Section (cm) and concrete strength (MPa)
	Width  float64
	Height float64
	Fck    float64
}

// Model is the node set and derived constants for one calculation
type Model struct {
	Span  float64
	Nodes []float64 // strictly ascending positions (m)

	E  float64 // secant modulus (MPa)
	I  float64 // moment of inertia (m⁴)
	EI float64 // flexural rigidity (kN·m²)

	Supports         []Support
	PointLoads       []PointLoad
	DistributedLoads []DistributedLoad

	// Discarded holds notes about loads dropped or clipped while building
	Discarded []string
}

// Validate checks the input for values with no recoverable interpretation
func (b *Beam) Validate() error {
	if !(b.Span > 0) || math.IsInf(b.Span, 0) {
		return section.Invalidf("span must be positive, got %g", b.Span)
	}
	if !(b.Width > 0 && b.Height > 0) || !section.Finite(b.Width, b.Height) {
		return section.Invalidf("section must have positive width and height, got %gx%g cm", b.Width, b.Height)
	}
	if !(b.Fck > 0) || !section.Finite(b.Fck) {
		return section.Invalidf("fck must be positive, got %g", b.Fck)
	}
	for i, s := range b.Supports {
		switch s.Kind {
		case Pin, Roller, Fixed:
		default:
			return section.Invalidf("support %d: unknown kind %q", i+1, s.Kind)
		}
		if !b.within(s.X) {
			return section.Invalidf("support %d at %g m is outside the span [0, %g]", i+1, s.X, b.Span)
		}
	}
	for i, p := range b.PointLoads {
		if !b.within(p.X) {
			return section.Invalidf("point load %d at %g m is outside the span [0, %g]", i+1, p.X, b.Span)
		}
		if !section.Finite(p.Magnitude) {
			return section.Invalidf("point load %d has a non-finite magnitude", i+1)
		}
	}
	for i, d := range b.DistributedLoads {
		if !section.Finite(d.Start, d.End) {
			return section.Invalidf("distributed load %d has a non-finite extent [%g, %g]", i+1, d.Start, d.End)
		}
		if !section.Finite(d.StartMagnitude, d.EndMagnitude) {
			return section.Invalidf("distributed load %d has a non-finite magnitude", i+1)
		}
		if d.Start > d.End {
			return section.Invalidf("distributed load %d: start %g m is after end %g m", i+1, d.Start, d.End)
		}
	}
	return nil
}

// within reports whether x lies on the span within Tolerance; NaN never does
func (b *Beam) within(x float64) bool {
	return x >= -Tolerance && x <= b.Span+Tolerance
}

// Stable reports whether the supports can carry the beam
func Stable(supports []Support) bool {
	if len(supports) >= 2 {
		return true
	}
	return len(supports) == 1 && supports[0].Kind == Fixed
}

// Build validates the input and creates the FEM model.
// Returns ErrUnstable (unwrapped) if the supports cannot hold the beam.
func Build(b Beam) (*Model, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if !Stable(b.Supports) {
		return nil, ErrUnstable
	}

	m := &Model{Span: b.Span}

	// Supports snap to the span ends
	for _, s := range b.Supports {
		s.X = clamp(s.X, 0, b.Span)
		m.Supports = append(m.Supports, s)
	}
	for _, p := range b.PointLoads {
		p.X = clamp(p.X, 0, b.Span)
		m.PointLoads = append(m.PointLoads, p)
	}
	for i, d := range b.DistributedLoads {
		if d.End-d.Start < Tolerance {
			m.Discarded = append(m.Discarded, fmt.Sprintf("distributed load %d has zero length and was ignored", i+1))
			continue
		}
		if d.End <= 0 || d.Start >= b.Span {
			m.Discarded = append(m.Discarded, fmt.Sprintf("distributed load %d lies outside the span and was ignored", i+1))
			continue
		}
		if d.Start < 0 || d.End > b.Span {
			lo, hi := math.Max(d.Start, 0), math.Min(d.End, b.Span)
			clipped := DistributedLoad{Start: lo, End: hi, StartMagnitude: d.intensity(lo), EndMagnitude: d.intensity(hi)}
			m.Discarded = append(m.Discarded, fmt.Sprintf("distributed load %d was clipped to [%.3f, %.3f] m", i+1, lo, hi))
			d = clipped
		}
		m.DistributedLoads = append(m.DistributedLoads, d)
	}

	// Node set: ends and supports, ascending, deduplicated
	positions := []float64{0, b.Span}
	for _, s := range m.Supports {
		positions = append(positions, s.X)
	}
	sort.Float64s(positions)
	for _, x := range positions {
		if n := len(m.Nodes); n > 0 && x-m.Nodes[n-1] < Tolerance {
			continue
		}
		m.Nodes = append(m.Nodes, x)
	}
	// The last node must be the span end exactly
	m.Nodes[len(m.Nodes)-1] = b.Span

	// Section properties: cm → m
	bw := b.Width / 100
	h := b.Height / 100
	m.E = nbr.Ecs(b.Fck)
	m.I = bw * h * h * h / 12
	m.EI = m.E * 1000 * m.I

	return m, nil
}

// NodeIndex returns the node at position x within Tolerance
func (m *Model) NodeIndex(x float64) (int, bool) {
	i := sort.SearchFloat64s(m.Nodes, x-Tolerance)
	if i < len(m.Nodes) && math.Abs(m.Nodes[i]-x) <= Tolerance {
		return i, true
	}
	return -1, false
}

// Dofs returns the size of the global system
func (m *Model) Dofs() int {
	return 2 * len(m.Nodes)
}

// TotalLoad returns the sum of all applied downward loads (kN)
func (m *Model) TotalLoad() float64 {
	var total float64
	for _, p := range m.PointLoads {
		total += p.Magnitude
	}
	for _, d := range m.DistributedLoads {
		total += d.Resultant()
	}
	return total
}

// IsCantilever reports whether the beam is held by a single fixed support
func (m *Model) IsCantilever() bool {
	return len(m.Supports) == 1 && m.Supports[0].Kind == Fixed
}

func clamp(x, lo, hi float64) float64 {
	return math.Min(math.Max(x, lo), hi)
}
