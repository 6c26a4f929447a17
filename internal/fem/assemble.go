package fem

import (
	"gonum.org/v1/gonum/mat"

	"github.com/alexiusacademia/gorcd/internal/section"
)

// Subsegments is the number of point loads each distributed-load overlap
// is lumped into per element.
const Subsegments = 5

// Element spans two consecutive nodes
type Element struct {
	Index  int
	Left   int     // left node index
	Right  int     // right node index
	X1, X2 float64 // m
}

// Length of the element (m)
func (e Element) Length() float64 {
	return e.X2 - e.X1
}

// Dofs returns the global indices of (v1, θ1, v2, θ2)
func (e Element) Dofs() [4]int {
	return [4]int{2 * e.Left, 2*e.Left + 1, 2 * e.Right, 2*e.Right + 1}
}

// Elements returns one element per pair of consecutive nodes
func (m *Model) Elements() []Element {
	els := make([]Element, 0, len(m.Nodes)-1)
	for i := 0; i+1 < len(m.Nodes); i++ {
		els = append(els, Element{Index: i, Left: i, Right: i + 1, X1: m.Nodes[i], X2: m.Nodes[i+1]})
	}
	return els
}

// Stiffness returns the 4x4 bending stiffness of an element
func Stiffness(ei, l float64) [4][4]float64 {
	c := ei / (l * l * l)
	return [4][4]float64{
		{12 * c, 6 * l * c, -12 * c, 6 * l * c},
		{6 * l * c, 4 * l * l * c, -6 * l * c, 2 * l * l * c},
		{-12 * c, -6 * l * c, 12 * c, -6 * l * c},
		{6 * l * c, 2 * l * l * c, -6 * l * c, 4 * l * l * c},
	}
}

// ElementLoads returns the point loads acting strictly inside the element:
// user point loads plus the lumped sub-segments of every distributed load
// overlapping [X1, X2]. Positions are relative to the element's left end.
func (m *Model) ElementLoads(e Element) []PointLoad {
	var loads []PointLoad
	l := e.Length()
	for _, p := range m.PointLoads {
		a := p.X - e.X1
		if a > Tolerance && a < l-Tolerance {
			loads = append(loads, PointLoad{X: a, Magnitude: p.Magnitude})
		}
	}
	for _, d := range m.DistributedLoads {
		lo := max(d.Start, e.X1)
		hi := min(d.End, e.X2)
		if hi-lo < Tolerance {
			continue
		}
		h := (hi - lo) / Subsegments
		for k := 0; k < Subsegments; k++ {
			u := lo + float64(k)*h
			w := u + h
			loads = append(loads, lump(d.intensity(u), d.intensity(w), u-e.X1, h)...)
		}
	}
	return loads
}

// lump converts a trapezoidal strip starting at a (relative) with width h
// into a point load at its centroid. Strips whose centroid falls outside the
// strip (intensity changing sign) are split into rectangle and triangle.
func lump(qu, qw, a, h float64) []PointLoad {
	area := (qu + qw) / 2 * h
	if area == 0 && qu == 0 {
		return nil
	}
	if qu+qw != 0 {
		c := h * (qu + 2*qw) / (3 * (qu + qw))
		if c >= 0 && c <= h {
			return []PointLoad{{X: a + c, Magnitude: area}}
		}
	}
	return []PointLoad{
		{X: a + h/2, Magnitude: qu * h},
		{X: a + 2*h/3, Magnitude: (qw - qu) * h / 2},
	}
}

// FixedEndActions returns (R1, M1, R2, M2), the forces and moments a fully
// restrained element exerts on its supports under the given interior loads.
// Loads are downward magnitudes at positions relative to the left end.
// R upward, M counter-clockwise.
func FixedEndActions(l float64, loads []PointLoad) [4]float64 {
	var fea [4]float64
	l2 := l * l
	l3 := l2 * l
	for _, p := range loads {
		a := p.X
		b := l - a
		fea[0] += p.Magnitude * b * b * (3*a + b) / l3
		fea[1] += p.Magnitude * a * b * b / l2
		fea[2] += p.Magnitude * a * a * (a + 3*b) / l3
		fea[3] -= p.Magnitude * a * a * b / l2
	}
	return fea
}

// System is the global linear system K·d = F
type System struct {
	K *mat.Dense
	F *mat.VecDense
	D *mat.VecDense // nil until solved

	// NodalLoads holds point loads applied directly at node positions (kN)
	NodalLoads []float64
}

// Assemble builds the global stiffness matrix and equivalent load vector
func Assemble(m *Model) *System {
	n := m.Dofs()
	sys := &System{
		K:          mat.NewDense(n, n, nil),
		F:          mat.NewVecDense(n, nil),
		NodalLoads: make([]float64, len(m.Nodes)),
	}

	for _, e := range m.Elements() {
		k := Stiffness(m.EI, e.Length())
		dofs := e.Dofs()
		for i := 0; i < 4; i++ {
			for j := 0; j < 4; j++ {
				sys.K.Set(dofs[i], dofs[j], sys.K.At(dofs[i], dofs[j])+k[i][j])
			}
		}
		fea := FixedEndActions(e.Length(), m.ElementLoads(e))
		for i := 0; i < 4; i++ {
			sys.F.SetVec(dofs[i], sys.F.AtVec(dofs[i])-fea[i])
		}
	}

	// Point loads landing on a node bypass the element loop
	for _, p := range m.PointLoads {
		if i, ok := m.NodeIndex(p.X); ok {
			sys.NodalLoads[i] += p.Magnitude
			sys.F.SetVec(2*i, sys.F.AtVec(2*i)-p.Magnitude)
		}
	}
	return sys
}

// ApplySupports adds the penalty stiffness for every support restraint
func ApplySupports(m *Model, sys *System) error {
	for i, s := range m.Supports {
		node, ok := m.NodeIndex(s.X)
		if !ok {
			return section.Invalidf("support %d at %g m does not match any node", i+1, s.X)
		}
		v := 2 * node
		sys.K.Set(v, v, sys.K.At(v, v)+Penalty)
		if s.Kind == Fixed {
			sys.K.Set(v+1, v+1, sys.K.At(v+1, v+1)+Penalty)
		}
	}
	return nil
}
