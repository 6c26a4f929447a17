// Package beam sizes the flexural and transverse reinforcement of a
// rectangular beam from the governing internal forces of a span.
package beam

import (
	"github.com/alexiusacademia/gorcd/internal/nbr"
	"github.com/alexiusacademia/gorcd/internal/section"
)

// Face of the section a longitudinal reinforcement set is placed on
type Face string

const (
	Bottom Face = "bottom" // sagging moment
	Top    Face = "top"    // hogging moment
)

// Beam holds the section, materials and detailing choices of a beam
type Beam struct {
	section.Rect
	Cover float64 // cm, to the stirrup face

	// Materials (MPa)
	Fck        float64
	Fyk        float64
	StirrupFyk float64

	// Detailing
	BottomDiameter  float64 // mm
	TopDiameter     float64 // mm
	StirrupDiameter float64 // mm
	StirrupSpacing  float64 // cm
	StirrupLegs     int
	MaxLayers       int
	AggregateSize   float64 // mm

	LoadFactor float64

	Span       float64 // m
	Cantilever bool
}

// Demand is the governing output of the span analysis (characteristic values)
type Demand struct {
	PositiveMoment float64 // kN-m, sagging, >= 0
	NegativeMoment float64 // kN-m, hogging magnitude, >= 0
	Shear          float64 // kN, peak |V|
	Deflection     float64 // mm, peak |δ|
}

// Result holds the results of beam design
type Result struct {
	Bottom     *FaceResult
	Top        *FaceResult
	Shear      *ShearResult
	Deflection *DeflectionResult
	Layout     section.Layout

	// IsAdequate is false when a face is insufficient, a face cannot be
	// detailed or the stirrups are below the minimum ratio. Excess
	// deflection does not change it.
	IsAdequate bool
}

// Validate checks the beam for values with no recoverable interpretation
func (b *Beam) Validate() error {
	if err := b.Rect.Validate(); err != nil {
		return err
	}
	if !section.Finite(b.Cover, b.Fck, b.Fyk, b.StirrupFyk, b.StirrupSpacing, b.LoadFactor, b.AggregateSize) {
		return section.Invalidf("beam values must be finite: cover=%g cm, fck=%g, fyk=%g, fywk=%g, spacing=%g cm, load factor=%g, aggregate=%g mm",
			b.Cover, b.Fck, b.Fyk, b.StirrupFyk, b.StirrupSpacing, b.LoadFactor, b.AggregateSize)
	}
	switch {
	case b.Cover < 0:
		return section.Invalidf("cover must not be negative, got %g cm", b.Cover)
	case b.Fck <= 0 || b.Fyk <= 0 || b.StirrupFyk <= 0:
		return section.Invalidf("material strengths must be positive: fck=%g, fyk=%g, fywk=%g", b.Fck, b.Fyk, b.StirrupFyk)
	case b.StirrupSpacing <= 0:
		return section.Invalidf("stirrup spacing must be positive, got %g cm", b.StirrupSpacing)
	case b.StirrupLegs < 2:
		return section.Invalidf("stirrups need at least 2 legs, got %d", b.StirrupLegs)
	case b.MaxLayers < 1:
		return section.Invalidf("at least one bar layer must be allowed, got %d", b.MaxLayers)
	case b.LoadFactor <= 0:
		return section.Invalidf("load factor must be positive, got %g", b.LoadFactor)
	case b.AggregateSize <= 0:
		return section.Invalidf("aggregate size must be positive, got %g mm", b.AggregateSize)
	}
	for _, d := range []float64{b.BottomDiameter, b.TopDiameter, b.StirrupDiameter} {
		if !nbr.ValidDiameter(d) {
			return section.Invalidf("%g mm is not a commercial bar diameter", d)
		}
	}
	for _, d := range []float64{b.BottomDiameter, b.TopDiameter} {
		if EffectiveDepth(b.Height, b.Cover, b.StirrupDiameter, d) <= 0 {
			return section.Invalidf("cover and bars leave no effective depth in a %g cm section", b.Height)
		}
	}
	return nil
}

// Design sizes both faces, checks the stirrups and the deflection
func (b *Beam) Design(dem Demand) (*Result, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	r := &Result{
		Bottom:     b.DesignFace(Bottom, dem.PositiveMoment),
		Top:        b.DesignFace(Top, dem.NegativeMoment),
		Shear:      b.CheckShear(dem.Shear),
		Deflection: b.CheckDeflection(dem.Deflection),
	}
	r.IsAdequate = !r.Bottom.Insufficient && !r.Bottom.Infeasible &&
		!r.Top.Insufficient && !r.Top.Infeasible && r.Shear.IsAdequate

	r.Layout = section.Layout{
		Rect:            b.Rect,
		Cover:           b.Cover,
		StirrupDiameter: b.StirrupDiameter,
		StirrupSpacing:  b.StirrupSpacing,
		StirrupLegs:     b.StirrupLegs,
		BottomDiameter:  b.BottomDiameter,
		TopDiameter:     b.TopDiameter,
		Bottom:          r.Bottom.Layers,
		Top:             r.Top.Layers,
	}
	return r, nil
}

// ClearWidth is the width available to longitudinal bars (cm)
func (b *Beam) ClearWidth() float64 {
	return section.ClearWidth(b.Width, b.Cover, b.StirrupDiameter)
}
