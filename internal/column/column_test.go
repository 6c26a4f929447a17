package column

import (
	"errors"
	"math"
	"testing"

	"github.com/alexiusacademia/gorcd/internal/nbr"
	"github.com/alexiusacademia/gorcd/internal/section"
)

func newColumn() *Column {
	return &Column{
		Rect:            section.Rect{Width: 30, Height: 30},
		Length:          2.8,
		Ends:            PinnedPinned,
		Cover:           3,
		Fck:             30,
		Fyk:             nbr.CA50,
		BarDiameter:     16,
		StirrupDiameter: 5,
		StirrupSpacing:  19,
		LoadFactor:      1.4,
	}
}

func TestShortColumnHasNoMagnification(t *testing.T) {
	c := newColumn()
	r, err := c.Design(800)
	if err != nil {
		t.Fatal(err)
	}
	for _, a := range []*Axis{r.X, r.Y} {
		if a.Lambda > LambdaSecondOrder {
			t.Fatalf("λ = %v, test needs a short column", a.Lambda)
		}
		if a.SecondOrder || a.E2 != 0 {
			t.Errorf("second order applied at λ = %v", a.Lambda)
		}
		if a.Mtotal != a.M1min {
			t.Errorf("Mtotal = %v, want exactly M1min = %v", a.Mtotal, a.M1min)
		}
	}
	if math.Abs(r.X.Emin-2.4) > 1e-12 {
		t.Errorf("e_min = %v, want 2.4 cm", r.X.Emin)
	}
	if math.Abs(r.Nu-0.580741) > 1e-5 {
		t.Errorf("ν = %v", r.Nu)
	}
	// minimum steel governs: 0.15·Nd/fyd
	if r.AsCalc != 0 || math.Abs(r.As-0.15*1120/nbr.Fyd(500)) > 1e-9 {
		t.Errorf("As = %v (calc %v)", r.As, r.AsCalc)
	}
	if r.Bars != 4 || !r.IsAdequate {
		t.Errorf("bars = %d, adequate = %v", r.Bars, r.IsAdequate)
	}
}

func TestSecondOrderOnSlenderAxis(t *testing.T) {
	c := newColumn()
	c.Rect = section.Rect{Width: 20, Height: 40}
	c.Length = 3
	r, err := c.Design(500)
	if err != nil {
		t.Fatal(err)
	}
	if !r.X.SecondOrder || r.Y.SecondOrder {
		t.Fatalf("λx = %v, λy = %v", r.X.Lambda, r.Y.Lambda)
	}
	curv := math.Max(0.005/(20*(r.Nu+0.5)), 0.005/20)
	e2 := 300.0 * 300 / 10 * curv
	if math.Abs(r.X.E2-e2) > 1e-12 {
		t.Errorf("e2 = %v, want %v", r.X.E2, e2)
	}
	if want := r.X.M1min + r.Nd*e2; math.Abs(r.X.Mtotal-want) > 1e-9 {
		t.Errorf("Mtotal = %v, want %v", r.X.Mtotal, want)
	}
}

func TestExcessiveSlendernessIsRejected(t *testing.T) {
	for _, nk := range []float64{1, 100, 5000} {
		c := newColumn()
		c.Rect = section.Rect{Width: 20, Height: 20}
		c.Length = 5
		c.Ends = FixedFree
		r, err := c.Design(nk)
		if err != nil {
			t.Fatal(err)
		}
		if !r.Slender || r.IsAdequate {
			t.Errorf("N = %v: λ = %v accepted", nk, r.X.Lambda)
		}
	}
}

func TestCrushedSection(t *testing.T) {
	c := newColumn()
	c.Rect = section.Rect{Width: 20, Height: 20}
	c.Length = 2
	r, err := c.Design(2000)
	if err != nil {
		t.Fatal(err)
	}
	if !r.Crushed || r.IsAdequate || r.Nu <= 1 {
		t.Errorf("ν = %v, crushed = %v", r.Nu, r.Crushed)
	}
}

func TestOverReinforced(t *testing.T) {
	c := newColumn()
	c.Rect = section.Rect{Width: 20, Height: 20}
	c.Length = 3.5
	c.Ends = FixedFree
	c.Fck = 25
	r, err := c.Design(480)
	if err != nil {
		t.Fatal(err)
	}
	if r.Slender || r.Crushed {
		t.Fatalf("λ = %v, ν = %v", r.X.Lambda, r.Nu)
	}
	if !r.OverReinforced || r.IsAdequate {
		t.Errorf("As = %v > As,max = %v should be over-reinforced", r.As, r.AsMax)
	}
}

func TestDistribute(t *testing.T) {
	tests := []struct {
		n             int
		width, height float64
		pairX, pairY  int
		forced        bool
	}{
		{4, 30, 30, 0, 0, false},
		{6, 20, 40, 0, 2, false},
		{7, 30, 30, 2, 2, true},
		{10, 30, 30, 4, 2, false},
		{12, 60, 20, 6, 2, false},
	}
	for _, tt := range tests {
		x, y, forced := Distribute(tt.n, tt.width, tt.height)
		if x != tt.pairX || y != tt.pairY || forced != tt.forced {
			t.Errorf("Distribute(%d, %v, %v) = %d, %d, %v; want %d, %d, %v",
				tt.n, tt.width, tt.height, x, y, forced, tt.pairX, tt.pairY, tt.forced)
		}
		if x%2 != 0 || y%2 != 0 {
			t.Errorf("n = %d: pairs %d, %d are not symmetric", tt.n, x, y)
		}
		if 4+x+y < tt.n {
			t.Errorf("n = %d: only %d bars placed", tt.n, 4+x+y)
		}
	}
}

func TestLayoutMatchesBars(t *testing.T) {
	c := newColumn()
	r, err := c.Design(1300)
	if err != nil {
		t.Fatal(err)
	}
	if r.Bars != 10 || r.Forced {
		t.Fatalf("bars = %d, forced = %v", r.Bars, r.Forced)
	}
	if r.Layout.Count() != r.Bars {
		t.Errorf("layout holds %d bars, result says %d", r.Layout.Count(), r.Bars)
	}
	if math.Abs(r.Layout.SteelArea()-r.Provided) > 1e-9 {
		t.Errorf("layout area %v, provided %v", r.Layout.SteelArea(), r.Provided)
	}
}

func TestCheckStirrups(t *testing.T) {
	c := newColumn()
	s := c.CheckStirrups()
	if !s.DiameterOK || !s.SpacingOK || s.MaxSpacing != 19.2 {
		t.Errorf("Ø5 c/19 with Ø16: %+v", s)
	}

	c.BarDiameter = 25
	c.StirrupSpacing = 25
	s = c.CheckStirrups()
	if s.DiameterOK || s.MinDiameter != 6.25 {
		t.Errorf("Ø5 with Ø25 bars: %+v", s)
	}
	if s.SpacingOK || s.MaxSpacing != 20 {
		t.Errorf("c/25: %+v", s)
	}

	r, err := c.Design(500)
	if err != nil {
		t.Fatal(err)
	}
	if r.IsAdequate {
		t.Error("stirrup violations must invalidate the design")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Column)
		nk     float64
	}{
		{"unknown ends", func(c *Column) { c.Ends = "free-free" }, 100},
		{"zero height", func(c *Column) { c.Length = 0 }, 100},
		{"odd bar", func(c *Column) { c.BarDiameter = 13 }, 100},
		{"tension", func(c *Column) {}, -10},
		{"NaN axial", func(c *Column) {}, math.NaN()},
		{"NaN height", func(c *Column) { c.Length = math.NaN() }, 100},
		{"NaN cover", func(c *Column) { c.Cover = math.NaN() }, 100},
		{"infinite load factor", func(c *Column) { c.LoadFactor = math.Inf(1) }, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newColumn()
			tt.modify(c)
			_, err := c.Design(tt.nk)
			var verr *section.ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("want *section.ValidationError, got %v", err)
			}
		})
	}
}
