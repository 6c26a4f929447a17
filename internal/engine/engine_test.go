package engine

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/alexiusacademia/gorcd/internal/column"
	"github.com/alexiusacademia/gorcd/internal/fem"
	"github.com/alexiusacademia/gorcd/internal/nbr"
	"github.com/alexiusacademia/gorcd/internal/section"
)

func beamInput() BeamInput {
	return BeamInput{
		Span:     5,
		Supports: []fem.Support{{X: 0, Kind: fem.Pin}, {X: 5, Kind: fem.Roller}},
		DistributedLoads: []fem.DistributedLoad{
			{Start: 0, End: 5, StartMagnitude: 10, EndMagnitude: 10},
		},
		Section:         section.Rect{Width: 20, Height: 50},
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
	}
}

func hasKind(msgs []Message, k Kind) bool {
	for _, m := range msgs {
		if m.Kind == k {
			return true
		}
	}
	return false
}

func TestBeamUniformLoad(t *testing.T) {
	out, err := New(nil).Beam(beamInput())
	if err != nil {
		t.Fatal(err)
	}
	if !out.Valid {
		t.Fatalf("expected a valid design: %v", out.Messages)
	}
	if math.Abs(out.Metrics.MaxMoment-31.25) > 0.05 {
		t.Errorf("M+max = %v, want 31.25", out.Metrics.MaxMoment)
	}
	if math.Abs(out.Metrics.MaxShear-25) > 1e-6 {
		t.Errorf("Vmax = %v, want 25", out.Metrics.MaxShear)
	}
	if n := len(out.Diagrams.Moment); n != fem.DefaultSamples+1 {
		t.Errorf("got %d moment samples", n)
	}
	if out.Layout.Count() != out.Design.Bottom.Bars+out.Design.Top.Bars {
		t.Errorf("layout holds %d bars", out.Layout.Count())
	}
	if len(out.Alternatives.Bottom) == 0 {
		t.Error("no bottom alternatives")
	}
	if !hasKind(out.Messages, Info) {
		t.Error("constructive top face should be noted")
	}
}

func TestBeamMemoryNumbering(t *testing.T) {
	out, err := New(nil).Beam(beamInput())
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"1. Input", "2. Model", "3. Reactions", "4. Internal forces",
		"5. Flexure, bottom face", "6. Flexure, top face", "7. Shear", "8. Serviceability",
	}
	var got []string
	for _, l := range out.Memory {
		if !strings.Contains(strings.SplitN(l, " ", 2)[0], ".") {
			t.Errorf("unnumbered line %q", l)
		}
		if strings.HasSuffix(strings.SplitN(l, " ", 2)[0], ".") {
			got = append(got, l)
		}
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("sections = %q", got)
	}
}

func TestBeamIsIdempotent(t *testing.T) {
	in := beamInput()
	in.PointLoads = []fem.PointLoad{{X: 1.7, Magnitude: 30}}
	in.Supports = append(in.Supports, fem.Support{X: 3, Kind: fem.Pin})
	e := New(nil)
	a, err := e.Beam(in)
	if err != nil {
		t.Fatal(err)
	}
	b, err := e.Beam(in)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("identical input produced different output")
	}
}

func TestBeamUnstable(t *testing.T) {
	in := beamInput()
	in.Supports = []fem.Support{{X: 0, Kind: fem.Pin}}
	out, err := New(nil).Beam(in)
	if err != nil {
		t.Fatalf("instability is not a hard error: %v", err)
	}
	if out.Valid || out.Diagrams != nil {
		t.Error("unstable structure must be invalid with no diagrams")
	}
	if len(out.Messages) != 1 || out.Messages[0].Kind != StructuralInstability {
		t.Errorf("messages = %v", out.Messages)
	}
}

func TestBeamSectionInsufficient(t *testing.T) {
	in := beamInput()
	in.DistributedLoads[0].StartMagnitude = 200
	in.DistributedLoads[0].EndMagnitude = 200
	out, err := New(nil).Beam(in)
	if err != nil {
		t.Fatal(err)
	}
	if out.Valid || !hasKind(out.Messages, SectionInsufficient) {
		t.Errorf("valid = %v, messages = %v", out.Valid, out.Messages)
	}
	if out.Diagrams == nil {
		t.Error("diagrams should still be produced")
	}
}

func TestCantileverDeflectionWarningKeepsValidity(t *testing.T) {
	in := beamInput()
	in.Supports = []fem.Support{{X: 0, Kind: fem.Fixed}}
	in.DistributedLoads = nil
	in.PointLoads = []fem.PointLoad{{X: 5, Magnitude: 14}}
	in.Section = section.Rect{Width: 20, Height: 30}
	in.TopDiameter = 20
	out, err := New(nil).Beam(in)
	if err != nil {
		t.Fatal(err)
	}
	// span/125 for a cantilever
	if out.Metrics.DeflectionLimit != 40 {
		t.Errorf("limit = %v mm, want 40", out.Metrics.DeflectionLimit)
	}
	if !hasKind(out.Messages, ServiceabilityExceeded) {
		t.Errorf("deflection %v mm: missing serviceability warning", out.Metrics.Deflection)
	}
	if !out.Valid {
		t.Errorf("deflection alone must not invalidate: %v", out.Messages)
	}
}

func TestBeamSelfWeight(t *testing.T) {
	in := beamInput()
	in.DistributedLoads = nil
	in.SelfWeight = true
	out, err := New(nil).Beam(in)
	if err != nil {
		t.Fatal(err)
	}
	var total float64
	for _, r := range out.Reactions {
		total += r.Force
	}
	// 25 kN/m³ x 0.2 x 0.5 x 5
	if math.Abs(total-12.5) > 1e-6 {
		t.Errorf("reactions = %v, want 12.5", total)
	}
}

func TestBeamDiscardedLoadIsNoted(t *testing.T) {
	in := beamInput()
	in.DistributedLoads = append(in.DistributedLoads, fem.DistributedLoad{Start: 2, End: 2, StartMagnitude: 5, EndMagnitude: 5})
	out, err := New(nil).Beam(in)
	if err != nil {
		t.Fatal(err)
	}
	if !out.Valid {
		t.Errorf("messages = %v", out.Messages)
	}
	found := false
	for _, m := range out.Messages {
		if m.Kind == Info && strings.Contains(m.Text, "zero length") {
			found = true
		}
	}
	if !found {
		t.Errorf("no note for the zero-length load: %v", out.Messages)
	}
}

func TestBeamHardErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*BeamInput)
	}{
		{"zero span", func(in *BeamInput) { in.Span = 0 }},
		{"reversed load", func(in *BeamInput) { in.DistributedLoads[0].Start = 4; in.DistributedLoads[0].End = 1 }},
		{"few samples", func(in *BeamInput) { in.Samples = 5 }},
		{"bad bar", func(in *BeamInput) { in.BottomDiameter = 17 }},
		{"unknown support", func(in *BeamInput) { in.Supports[0].Kind = "hinge" }},
		{"NaN point load position", func(in *BeamInput) {
			in.PointLoads = []fem.PointLoad{{X: math.NaN(), Magnitude: 10}}
		}},
		{"NaN load magnitude", func(in *BeamInput) { in.DistributedLoads[0].StartMagnitude = math.NaN() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := beamInput()
			tt.modify(&in)
			_, err := New(nil).Beam(in)
			var verr *section.ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("want *section.ValidationError, got %v", err)
			}
		})
	}
}

func columnInput() ColumnInput {
	return ColumnInput{
		Axial:           800,
		Section:         section.Rect{Width: 30, Height: 30},
		Length:          2.8,
		Ends:            column.PinnedPinned,
		Cover:           3,
		Fck:             30,
		Fyk:             nbr.CA50,
		BarDiameter:     16,
		StirrupDiameter: 5,
		StirrupSpacing:  19,
		LoadFactor:      1.4,
	}
}

func TestColumn(t *testing.T) {
	out, err := New(nil).Column(columnInput())
	if err != nil {
		t.Fatal(err)
	}
	if !out.Valid || len(out.Messages) != 0 {
		t.Errorf("valid = %v, messages = %v", out.Valid, out.Messages)
	}
	if out.Memory[0] != "1. Input" {
		t.Errorf("memory starts with %q", out.Memory[0])
	}
	if out.Layout.Count() != out.Design.Bars {
		t.Errorf("layout holds %d bars, want %d", out.Layout.Count(), out.Design.Bars)
	}
}

func TestColumnSlender(t *testing.T) {
	in := columnInput()
	in.Section = section.Rect{Width: 20, Height: 20}
	in.Length = 5
	in.Ends = column.FixedFree
	out, err := New(nil).Column(in)
	if err != nil {
		t.Fatal(err)
	}
	if out.Valid || !hasKind(out.Messages, SectionInsufficient) {
		t.Errorf("valid = %v, messages = %v", out.Valid, out.Messages)
	}
}

func TestColumnStirrupWarning(t *testing.T) {
	in := columnInput()
	in.StirrupSpacing = 25
	out, err := New(nil).Column(in)
	if err != nil {
		t.Fatal(err)
	}
	if out.Valid || !hasKind(out.Messages, DetailingInfeasible) {
		t.Errorf("valid = %v, messages = %v", out.Valid, out.Messages)
	}
}
