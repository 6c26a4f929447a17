package beam

import (
	"errors"
	"math"
	"testing"

	"github.com/alexiusacademia/gorcd/internal/nbr"
	"github.com/alexiusacademia/gorcd/internal/section"
)

func newBeam() *Beam {
	return &Beam{
		Rect:            section.Rect{Width: 20, Height: 50},
		Cover:           2.5,
		Fck:             25,
		Fyk:             nbr.CA50,
		StirrupFyk:      nbr.CA50,
		BottomDiameter:  16,
		TopDiameter:     10,
		StirrupDiameter: 5,
		StirrupSpacing:  15,
		StirrupLegs:     2,
		MaxLayers:       2,
		AggregateSize:   19,
		LoadFactor:      1.4,
		Span:            5,
	}
}

func TestDesignFace(t *testing.T) {
	b := newBeam()
	fr := b.DesignFace(Bottom, 100)

	if math.Abs(fr.D-46.2) > 1e-9 {
		t.Errorf("d = %v, want 46.2", fr.D)
	}
	if math.Abs(fr.Kmd-0.183655) > 1e-6 {
		t.Errorf("Kmd = %v", fr.Kmd)
	}
	if math.Abs(fr.Bz-0.897709) > 1e-6 {
		t.Errorf("βz = %v", fr.Bz)
	}
	if math.Abs(fr.As-7.76387) > 1e-4 {
		t.Errorf("As = %v, want 7.764", fr.As)
	}
	if fr.Bars != 4 || len(fr.Layers) != 2 || fr.Layers[0] != 3 || fr.Layers[1] != 1 {
		t.Errorf("packing = %d bars in %v", fr.Bars, fr.Layers)
	}
	if fr.Infeasible || fr.Insufficient || fr.Constructive {
		t.Errorf("unexpected flags: %+v", fr.Packing)
	}
}

func TestKmdBoundaryIsInclusive(t *testing.T) {
	// d = 35.5 - 2.5 - 0.5 - 0.5 = 32, fcd = 28/1.4/10 = 2
	s := section.Rect{Width: 16, Height: 35.5}
	d := EffectiveDepth(s.Height, 2.5, 5, 10)
	if d != 32 || nbr.Fcd(28) != 2 {
		t.Fatalf("d = %v, fcd = %v", d, nbr.Fcd(28))
	}
	md := nbr.KmdLimit * s.Width * d * d * 2

	at := DesignFlexure(s, d, 28, nbr.CA50, md)
	if at.Kmd != nbr.KmdLimit {
		t.Fatalf("Kmd = %v, want exactly %v", at.Kmd, nbr.KmdLimit)
	}
	if at.Insufficient || at.As <= 0 {
		t.Errorf("at the limit reinforcement must be computed: %+v", at)
	}

	above := DesignFlexure(s, d, 28, nbr.CA50, md*1.001)
	if !above.Insufficient {
		t.Error("above the limit the face must be insufficient")
	}
	if above.As != 0 || above.AsCalc != 0 {
		t.Errorf("no area may be computed above the limit, got %v", above.As)
	}
}

func TestConstructiveReinforcement(t *testing.T) {
	b := newBeam()
	fr := b.DesignFace(Top, 0.3) // 0.42 kN-m design
	if !fr.Constructive {
		t.Fatal("expected constructive reinforcement")
	}
	want := nbr.RhoMin(25) * 20 * 50
	if fr.As != want {
		t.Errorf("As = %v, want As,min %v", fr.As, want)
	}
	if fr.Bars != MinBars {
		t.Errorf("bars = %d, want %d", fr.Bars, MinBars)
	}
}

func TestMinimumGoverns(t *testing.T) {
	b := newBeam()
	fr := b.DesignFace(Bottom, 5)
	if fr.AsCalc >= fr.AsMin {
		t.Fatalf("test needs AsCalc < AsMin: %v >= %v", fr.AsCalc, fr.AsMin)
	}
	if fr.As != fr.AsMin {
		t.Errorf("As = %v, want %v", fr.As, fr.AsMin)
	}
}

func TestPackOverflow(t *testing.T) {
	tests := []struct {
		name       string
		as         float64
		maxLayers  int
		want       []int
		infeasible bool
	}{
		{"fits one layer", 4, 2, []int{2}, false},
		{"two layers", 7.7, 2, []int{3, 1}, false},
		{"overflow stays in last layer", 7.7, 1, []int{4}, true},
		{"overflow across layers", 20, 2, []int{3, 7}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Pack(tt.as, 16, 14, 19, tt.maxLayers)
			if len(p.Layers) != len(tt.want) {
				t.Fatalf("layers = %v, want %v", p.Layers, tt.want)
			}
			total := 0
			for i, n := range p.Layers {
				if n != tt.want[i] {
					t.Errorf("layers = %v, want %v", p.Layers, tt.want)
				}
				total += n
			}
			if total != p.Bars {
				t.Errorf("layers hold %d bars, total says %d", total, p.Bars)
			}
			if p.Infeasible != tt.infeasible {
				t.Errorf("infeasible = %v", p.Infeasible)
			}
		})
	}
}

func TestAlternatives(t *testing.T) {
	as := 7.76387
	alts := Alternatives(as, 14, 19)
	if len(alts) != 7 {
		t.Fatalf("got %d alternatives: %+v", len(alts), alts)
	}
	if alts[0].Diameter != 10 || alts[0].Bars != 10 {
		t.Errorf("best = %+v, want 10 Ø10", alts[0])
	}
	for i, a := range alts {
		if a.Diameter < MinAlternativeBar {
			t.Errorf("%v mm below the smallest alternative", a.Diameter)
		}
		if a.Bars > MaxAlternativeBars || a.Layers > MaxAlternativeRows {
			t.Errorf("%+v exceeds the alternative limits", a)
		}
		if a.Provided < as {
			t.Errorf("%+v does not meet %v cm²", a, as)
		}
		if i > 0 && a.Provided < alts[i-1].Provided {
			t.Errorf("alternatives not ordered by area at %d", i)
		}
	}
}

func TestCheckShear(t *testing.T) {
	b := newBeam()
	r := b.CheckShear(50)
	if !r.IsAdequate {
		t.Errorf("Ø5 c/15: ρ = %v < %v", r.Rho, r.RhoMin)
	}
	if r.Vd != 70 {
		t.Errorf("Vd = %v", r.Vd)
	}

	b.StirrupSpacing = 20
	r = b.CheckShear(50)
	if r.IsAdequate {
		t.Errorf("Ø5 c/20: ρ = %v should be below %v", r.Rho, r.RhoMin)
	}
	if r.MaxSpacing <= 15 || r.MaxSpacing >= 20 {
		t.Errorf("max spacing = %v", r.MaxSpacing)
	}
}

func TestCheckDeflection(t *testing.T) {
	b := newBeam()
	r := b.CheckDeflection(-21)
	if r.Limit != 20 || !r.Exceeded {
		t.Errorf("span/250: %+v", r)
	}
	b.Cantilever = true
	r = b.CheckDeflection(21)
	if r.Limit != 40 || r.Exceeded {
		t.Errorf("span/125: %+v", r)
	}
}

func TestDesignValidity(t *testing.T) {
	b := newBeam()
	r, err := b.Design(Demand{PositiveMoment: 100, NegativeMoment: 0, Shear: 80, Deflection: 30})
	if err != nil {
		t.Fatal(err)
	}
	if !r.IsAdequate {
		t.Error("excess deflection must not invalidate the design")
	}
	if !r.Deflection.Exceeded {
		t.Error("deflection should exceed span/250")
	}
	if r.Layout.Count() != r.Bottom.Bars+r.Top.Bars {
		t.Errorf("layout holds %d bars", r.Layout.Count())
	}

	r, err = b.Design(Demand{PositiveMoment: 1000})
	if err != nil {
		t.Fatal(err)
	}
	if r.IsAdequate || !r.Bottom.Insufficient {
		t.Error("1000 kN-m on 20x50 must be insufficient")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Beam)
	}{
		{"zero width", func(b *Beam) { b.Width = 0 }},
		{"negative cover", func(b *Beam) { b.Cover = -1 }},
		{"odd bar", func(b *Beam) { b.BottomDiameter = 11 }},
		{"no layers", func(b *Beam) { b.MaxLayers = 0 }},
		{"zero spacing", func(b *Beam) { b.StirrupSpacing = 0 }},
		{"no depth", func(b *Beam) { b.Cover = 49 }},
		{"NaN cover", func(b *Beam) { b.Cover = math.NaN() }},
		{"NaN height", func(b *Beam) { b.Height = math.NaN() }},
		{"infinite load factor", func(b *Beam) { b.LoadFactor = math.Inf(1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBeam()
			tt.modify(b)
			_, err := b.Design(Demand{})
			var verr *section.ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("want *section.ValidationError, got %v", err)
			}
		})
	}
}
