package beam

import (
	"math"

	"github.com/alexiusacademia/gorcd/internal/nbr"
)

// ShearResult holds the minimum transverse reinforcement check
type ShearResult struct {
	Vk float64 // characteristic peak shear (kN)
	Vd float64 // design shear (kN)

	Asw        float64 // area of all stirrup legs (cm²)
	Rho        float64 // provided ρsw = Asw/(s·b)
	RhoMin     float64 // 0.2·fctm/fywk
	MaxSpacing float64 // largest spacing meeting RhoMin (cm)

	IsAdequate bool
}

// CheckShear compares the provided stirrup ratio with the minimum
func (b *Beam) CheckShear(shear float64) *ShearResult {
	r := &ShearResult{
		Vk:     shear,
		Vd:     shear * b.LoadFactor,
		Asw:    float64(b.StirrupLegs) * nbr.BarArea(b.StirrupDiameter),
		RhoMin: nbr.RhoSwMin(b.Fck, b.StirrupFyk),
	}
	r.Rho = r.Asw / (b.StirrupSpacing * b.Width)
	r.MaxSpacing = r.Asw / (r.RhoMin * b.Width)
	r.IsAdequate = r.Rho >= r.RhoMin
	return r
}

// DeflectionResult holds the serviceability check
type DeflectionResult struct {
	Deflection float64 // peak |δ| (mm)
	Limit      float64 // mm
	Ratio      int     // 250, or 125 for cantilevers

	Exceeded bool
}

// CheckDeflection compares the peak deflection with span/250 (span/125 for a
// cantilever)
func (b *Beam) CheckDeflection(deflection float64) *DeflectionResult {
	r := &DeflectionResult{Deflection: math.Abs(deflection), Ratio: 250}
	if b.Cantilever {
		r.Ratio = 125
	}
	r.Limit = b.Span * 1000 / float64(r.Ratio)
	r.Exceeded = r.Deflection > r.Limit
	return r
}
