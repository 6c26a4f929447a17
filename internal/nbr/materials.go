package nbr

import (
	"fmt"
	"math"
	"sort"
)

// Partial safety factors and material constants for the limit-state method.

const (
	// GammaC is the partial factor for concrete
	GammaC = 1.4
	// GammaS is the partial factor for reinforcing steel
	GammaS = 1.15

	// Stress block parameters for fck <= 50 MPa
	StressBlockCoefficient = 0.85 // αc applied to fcd
	StressBlockDepth       = 0.8  // λ applied to the neutral axis depth

	// KmdLimit is the largest design moment ratio accepted for a single-face design
	KmdLimit = 0.45

	// NegligibleMoment below which only constructive reinforcement is placed (kN-m)
	NegligibleMoment = 0.5

	// ConcreteUnitWeight for self-weight (kN/m³)
	ConcreteUnitWeight = 25.0

	// Es is the modulus of elasticity of reinforcing steel (MPa)
	Es = 210000.0
)

// Steel grades (characteristic yield strength, MPa)
const (
	CA25 = 250.0
	CA50 = 500.0
	CA60 = 600.0
)

// Fcd returns the design compressive strength of concrete in kN/cm²
func Fcd(fck float64) float64 {
	return fck / GammaC / 10
}

// Fyd returns the design yield strength of steel in kN/cm²
func Fyd(fyk float64) float64 {
	return fyk / GammaS / 10
}

// Eci returns the initial tangent modulus (MPa) for granite aggregate.
func Eci(fck float64) float64 {
	if fck <= 50 {
		return 5600 * math.Sqrt(fck)
	}
	return 21500 * math.Cbrt(fck/10+1.25)
}

// Ecs returns the secant modulus of elasticity (MPa)
// Ecs = αi·Eci, αi = 0.8 + 0.2·fck/80 <= 1.0
func Ecs(fck float64) float64 {
	alphaI := math.Min(0.8+0.2*fck/80, 1.0)
	return alphaI * Eci(fck)
}

// Fctm returns the mean tensile strength of concrete (MPa)
func Fctm(fck float64) float64 {
	return 0.3 * math.Pow(fck, 2.0/3.0)
}

// rhoMinTable maps concrete grade (MPa) to the minimum flexural ratio (%)
var rhoMinTable = []struct {
	Fck float64
	Rho float64
}{
	{20, 0.150}, {25, 0.150}, {30, 0.150}, {35, 0.164}, {40, 0.179},
	{45, 0.194}, {50, 0.208}, {55, 0.211}, {60, 0.219}, {65, 0.226},
	{70, 0.233}, {75, 0.239}, {80, 0.245}, {85, 0.251}, {90, 0.256},
}

// RhoMin returns the tabulated minimum flexural reinforcement ratio (as a fraction).
// Grades between table rows take the next higher grade; grades outside the
// table are clamped to its ends.
func RhoMin(fck float64) float64 {
	i := sort.Search(len(rhoMinTable), func(i int) bool {
		return rhoMinTable[i].Fck >= fck-1e-9
	})
	if i == len(rhoMinTable) {
		i--
	}
	return rhoMinTable[i].Rho / 100
}

// RhoSwMin returns the minimum transverse reinforcement ratio
// ρsw,min = 0.2·fctm/fywk
func RhoSwMin(fck, fywk float64) float64 {
	return 0.2 * Fctm(fck) / fywk
}

// BarDiameters lists the commercial bar diameters in mm
var BarDiameters = []float64{5, 6.3, 8, 10, 12.5, 16, 20, 25, 32, 40}

// BarArea returns the cross-sectional area of one bar in cm²
func BarArea(diameterMM float64) float64 {
	d := diameterMM / 10
	return math.Pi * d * d / 4
}

// ValidDiameter reports whether the diameter is a commercial bar size
func ValidDiameter(diameterMM float64) bool {
	for _, d := range BarDiameters {
		if math.Abs(d-diameterMM) < 1e-9 {
			return true
		}
	}
	return false
}

// SteelGrade parses a grade name ("CA-50", "CA50", "50") into fyk (MPa)
func SteelGrade(name string) (float64, error) {
	switch name {
	case "CA-25", "CA25", "25":
		return CA25, nil
	case "CA-50", "CA50", "50", "":
		return CA50, nil
	case "CA-60", "CA60", "60":
		return CA60, nil
	}
	return 0, fmt.Errorf("unknown steel grade %q", name)
}
