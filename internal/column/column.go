// Package column sizes the longitudinal and transverse reinforcement of a
// rectangular column under axial load with minimum eccentricities and
// approximate second-order effects.
package column

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gorcd/internal/nbr"
	"github.com/alexiusacademia/gorcd/internal/section"
)

// Slenderness limits
const (
	LambdaSecondOrder = 35.0  // above this second-order effects are added
	LambdaMax         = 140.0 // above this the column is rejected
)

// Reinforcement limits as fractions of the gross area
const (
	MinRatio = 0.004
	MaxRatio = 0.04
	// MinAxialSteel is the fraction of Nd/fyd the steel must carry
	MinAxialSteel = 0.15
)

// Empirical linear fit of the mechanical reinforcement ratio:
// ω = OmegaAxial·ν + OmegaMoment·(μx + μy) - OmegaOffset, never negative.
// It approximates a biaxial interaction surface and is not a table lookup.
const (
	OmegaAxial  = 1.0
	OmegaMoment = 2.0
	OmegaOffset = 0.8
)

// EndCondition is the restraint at both ends of the column
type EndCondition string

const (
	PinnedPinned EndCondition = "pinned-pinned"
	FixedFree    EndCondition = "fixed-free"
	FixedPinned  EndCondition = "fixed-pinned"
	FixedFixed   EndCondition = "fixed-fixed"
)

// K returns the effective length factor
func (e EndCondition) K() (float64, error) {
	switch e {
	case PinnedPinned, "":
		return 1.0, nil
	case FixedFree:
		return 2.0, nil
	case FixedPinned:
		return 0.7, nil
	case FixedFixed:
		return 0.5, nil
	}
	return 0, fmt.Errorf("unknown end condition %q", e)
}

// Column represents a rectangular column. Width is the side along x,
// Height the side along y.
type Column struct {
	section.Rect
	Length float64 // m
	Ends   EndCondition
	Cover  float64 // cm

	Fck float64 // MPa
	Fyk float64 // MPa

	BarDiameter     float64 // mm
	StirrupDiameter float64 // mm
	StirrupSpacing  float64 // cm

	LoadFactor float64
}

// Axis holds the slenderness and moments about one bending direction
type Axis struct {
	Side   float64 // section side in the bending direction (cm)
	Lambda float64

	Emin  float64 // cm
	M1min float64 // kN-cm

	SecondOrder bool
	Curvature   float64 // 1/cm
	E2          float64 // cm
	Mtotal      float64 // kN-cm

	Mu float64 // μ = Mtotal/(Ac·side·fcd)
}

// StirrupCheck holds the transverse detailing limits
type StirrupCheck struct {
	MinDiameter float64 // mm
	MaxSpacing  float64 // cm
	DiameterOK  bool
	SpacingOK   bool
}

// Result holds the results of column design
type Result struct {
	Nk float64 // kN
	Nd float64 // kN

	Ac  float64 // cm²
	Fcd float64 // kN/cm²
	Fyd float64 // kN/cm²
	K   float64
	Le  float64 // effective length (cm)

	X *Axis
	Y *Axis

	Nu    float64
	Omega float64

	AsCalc float64 // cm²
	AsMin  float64
	AsMax  float64
	As     float64

	Bars     int
	PairX    int // bars added on the faces along x
	PairY    int // bars added on the faces along y
	Forced   bool
	Provided float64 // cm²

	Stirrups StirrupCheck

	Slender        bool // λ above LambdaMax
	Crushed        bool // ν above 1
	OverReinforced bool

	IsAdequate bool
	Layout     section.Layout
}

// Validate checks the column for values with no recoverable interpretation
func (c *Column) Validate() error {
	if err := c.Rect.Validate(); err != nil {
		return err
	}
	if _, err := c.Ends.K(); err != nil {
		return section.Invalidf("%v", err)
	}
	if !section.Finite(c.Length, c.Cover, c.Fck, c.Fyk, c.StirrupSpacing, c.LoadFactor) {
		return section.Invalidf("column values must be finite: length=%g m, cover=%g cm, fck=%g, fyk=%g, spacing=%g cm, load factor=%g",
			c.Length, c.Cover, c.Fck, c.Fyk, c.StirrupSpacing, c.LoadFactor)
	}
	switch {
	case c.Length <= 0:
		return section.Invalidf("column height must be positive, got %g m", c.Length)
	case c.Cover < 0:
		return section.Invalidf("cover must not be negative, got %g cm", c.Cover)
	case c.Fck <= 0 || c.Fyk <= 0:
		return section.Invalidf("material strengths must be positive: fck=%g, fyk=%g", c.Fck, c.Fyk)
	case c.StirrupSpacing <= 0:
		return section.Invalidf("stirrup spacing must be positive, got %g cm", c.StirrupSpacing)
	case c.LoadFactor <= 0:
		return section.Invalidf("load factor must be positive, got %g", c.LoadFactor)
	}
	for _, d := range []float64{c.BarDiameter, c.StirrupDiameter} {
		if !nbr.ValidDiameter(d) {
			return section.Invalidf("%g mm is not a commercial bar diameter", d)
		}
	}
	return nil
}

// Design sizes the column for a characteristic axial load nk (kN, compression positive)
func (c *Column) Design(nk float64) (*Result, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if nk < 0 || math.IsNaN(nk) || math.IsInf(nk, 0) {
		return nil, section.Invalidf("axial load must be a non-negative compression, got %g kN", nk)
	}

	k, _ := c.Ends.K()
	r := &Result{
		Nk:  nk,
		Nd:  nk * c.LoadFactor,
		Ac:  c.Area(),
		Fcd: nbr.Fcd(c.Fck),
		Fyd: nbr.Fyd(c.Fyk),
		K:   k,
		Le:  k * c.Length * 100,
		Layout: section.Layout{
			Rect:            c.Rect,
			Cover:           c.Cover,
			StirrupDiameter: c.StirrupDiameter,
			StirrupSpacing:  c.StirrupSpacing,
			StirrupLegs:     2,
		},
	}
	r.X = &Axis{Side: c.Width, Lambda: Slenderness(r.Le, c.Width)}
	r.Y = &Axis{Side: c.Height, Lambda: Slenderness(r.Le, c.Height)}

	if math.Max(r.X.Lambda, r.Y.Lambda) > LambdaMax {
		r.Slender = true
		return r, nil
	}

	r.Nu = r.Nd / (r.Ac * r.Fcd)
	for _, a := range []*Axis{r.X, r.Y} {
		r.moments(a)
	}

	if r.Nu > 1 {
		r.Crushed = true
		return r, nil
	}

	r.Omega = math.Max(0, OmegaAxial*r.Nu+OmegaMoment*(r.X.Mu+r.Y.Mu)-OmegaOffset)
	r.AsCalc = r.Omega * r.Ac * r.Fcd / r.Fyd
	r.AsMin = math.Max(MinAxialSteel*r.Nd/r.Fyd, MinRatio*r.Ac)
	r.AsMax = MaxRatio * r.Ac
	r.As = math.Max(r.AsCalc, r.AsMin)
	if r.As > r.AsMax {
		r.OverReinforced = true
	}

	n := max(4, int(math.Ceil(r.As/nbr.BarArea(c.BarDiameter)-1e-9)))
	r.PairX, r.PairY, r.Forced = Distribute(n, c.Width, c.Height)
	r.Bars = 4 + r.PairX + r.PairY
	r.Provided = float64(r.Bars) * nbr.BarArea(c.BarDiameter)

	r.Layout.BottomDiameter = c.BarDiameter
	r.Layout.TopDiameter = c.BarDiameter
	r.Layout.SideDiameter = c.BarDiameter
	r.Layout.Bottom = []int{2 + r.PairX/2}
	r.Layout.Top = []int{2 + r.PairX/2}
	r.Layout.Left = r.PairY / 2
	r.Layout.Right = r.PairY / 2

	r.Stirrups = c.CheckStirrups()
	r.IsAdequate = !r.OverReinforced && r.Stirrups.DiameterOK && r.Stirrups.SpacingOK
	return r, nil
}

// moments fills the eccentricities and design moments of one axis
func (r *Result) moments(a *Axis) {
	a.Emin = 1.5 + 0.03*a.Side
	a.M1min = r.Nd * a.Emin
	if a.Lambda > LambdaSecondOrder {
		a.SecondOrder = true
		a.Curvature = math.Max(0.005/(a.Side*(r.Nu+0.5)), 0.005/a.Side)
		a.E2 = r.Le * r.Le / 10 * a.Curvature
		a.Mtotal = a.M1min + r.Nd*a.E2
	} else {
		a.Mtotal = a.M1min
	}
	a.Mu = a.Mtotal / (r.Ac * a.Side * r.Fcd)
}

// Slenderness returns λ = le·√12/side for effective length le and side in cm
func Slenderness(le, side float64) float64 {
	return le * math.Sqrt(12) / side
}

// Distribute splits n bars into the 4 corners and symmetric pairs on the
// faces along x and y, proportional to the side lengths. When rounding
// leaves an odd count a bar is added and forced is set.
func Distribute(n int, width, height float64) (pairX, pairY int, forced bool) {
	rest := max(0, n-4)
	pairX = 2 * int(math.Round(float64(rest)*width/(width+height)/2))
	pairY = rest - pairX
	if pairY%2 != 0 {
		pairY++
		forced = true
	}
	return pairX, pairY, forced
}

// CheckStirrups checks Øt >= max(5 mm, Øl/4) and s <= min(20 cm, smallest side, 12·Øl)
func (c *Column) CheckStirrups() StirrupCheck {
	s := StirrupCheck{
		MinDiameter: math.Max(5, c.BarDiameter/4),
		MaxSpacing:  math.Min(20, math.Min(math.Min(c.Width, c.Height), 12*c.BarDiameter/10)),
	}
	s.DiameterOK = c.StirrupDiameter >= s.MinDiameter
	s.SpacingOK = c.StirrupSpacing <= s.MaxSpacing
	return s
}
