package section

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gorcd/internal/nbr"
)

// Rect is a rectangular concrete section.
// The local coordinate system has its origin at the bottom-left corner,
// X to the right and Y upward.
type Rect struct {
	Width  float64 `json:"width" yaml:"width"`   // cm
	Height float64 `json:"height" yaml:"height"` // cm
}

// Area returns the gross area (cm²)
func (r Rect) Area() float64 {
	return r.Width * r.Height
}

// Inertia returns the second moment of area about the horizontal centroidal axis (cm⁴)
func (r Rect) Inertia() float64 {
	return r.Width * r.Height * r.Height * r.Height / 12
}

// Validate checks that both sides are positive and finite
func (r Rect) Validate() error {
	if !(r.Width > 0 && r.Height > 0) || !Finite(r.Width, r.Height) {
		return Invalidf("section must have positive width and height, got %gx%g cm", r.Width, r.Height)
	}
	return nil
}

// Point represents a 2D coordinate
type Point struct {
	X float64 // cm
	Y float64 // cm
}

// Outline returns the section vertices counter-clockwise from the origin
func (r Rect) Outline() []Point {
	return []Point{{0, 0}, {r.Width, 0}, {r.Width, r.Height}, {0, r.Height}}
}

// Layout describes the reinforcement arrangement of a section. It is output
// only: rendering and reporting read it, nothing feeds it back.
type Layout struct {
	Rect

	Cover float64 // cm, to the stirrup face

	StirrupDiameter float64 // mm
	StirrupSpacing  float64 // cm
	StirrupLegs     int

	BottomDiameter float64 // mm
	TopDiameter    float64 // mm
	SideDiameter   float64 // mm

	// Bars per layer, the first layer nearest the face
	Bottom []int
	Top    []int

	// Intermediate bars on the vertical faces (columns), corners excluded
	Left  int
	Right int
}

// Count returns the total number of longitudinal bars
func (l *Layout) Count() int {
	n := l.Left + l.Right
	for _, c := range l.Bottom {
		n += c
	}
	for _, c := range l.Top {
		n += c
	}
	return n
}

// SteelArea returns the total longitudinal steel area (cm²)
func (l *Layout) SteelArea() float64 {
	var area float64
	for _, c := range l.Bottom {
		area += float64(c) * nbr.BarArea(l.BottomDiameter)
	}
	for _, c := range l.Top {
		area += float64(c) * nbr.BarArea(l.TopDiameter)
	}
	area += float64(l.Left+l.Right) * nbr.BarArea(l.SideDiameter)
	return area
}

// Describe returns a short bar schedule like "(3+2) Ø16 bottom, 2 Ø10 top"
func (l *Layout) Describe() string {
	var s string
	add := func(part string) {
		if s != "" {
			s += ", "
		}
		s += part
	}
	if sum(l.Bottom) > 0 {
		add(fmt.Sprintf("%s %s bottom", layers(l.Bottom), diameter(l.BottomDiameter)))
	}
	if sum(l.Top) > 0 {
		add(fmt.Sprintf("%s %s top", layers(l.Top), diameter(l.TopDiameter)))
	}
	if l.Left+l.Right > 0 {
		add(fmt.Sprintf("%d+%d %s sides", l.Left, l.Right, diameter(l.SideDiameter)))
	}
	if l.StirrupSpacing > 0 {
		add(fmt.Sprintf("stirrups Ø%g c/%g cm", l.StirrupDiameter, l.StirrupSpacing))
	}
	return s
}

func layers(counts []int) string {
	if len(counts) == 1 {
		return fmt.Sprintf("%d", counts[0])
	}
	s := ""
	for i, c := range counts {
		if i > 0 {
			s += "+"
		}
		s += fmt.Sprintf("%d", c)
	}
	return "(" + s + ")"
}

func diameter(mm float64) string {
	return fmt.Sprintf("Ø%g", mm)
}

func sum(counts []int) int {
	n := 0
	for _, c := range counts {
		n += c
	}
	return n
}

// Finite reports whether no value is NaN or infinite
func Finite(xs ...float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// ValidationError represents malformed calculation input
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

// Invalidf returns a *ValidationError with a formatted message
func Invalidf(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}
