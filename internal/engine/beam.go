package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexiusacademia/gorcd/internal/beam"
	"github.com/alexiusacademia/gorcd/internal/fem"
	"github.com/alexiusacademia/gorcd/internal/nbr"
	"github.com/alexiusacademia/gorcd/internal/section"
)

// MinSamples is the smallest accepted number of diagram intervals
const MinSamples = 10

// BeamInput is the beam calculation request
type BeamInput struct {
	Span             float64 // m
	Supports         []fem.Support
	PointLoads       []fem.PointLoad
	DistributedLoads []fem.DistributedLoad

	// SelfWeight adds γc·b·h over the whole span
	SelfWeight bool

	Section section.Rect
	Cover   float64 // cm

	Fck        float64 // MPa
	Fyk        float64 // MPa
	StirrupFyk float64 // MPa

	BottomDiameter  float64 // mm
	TopDiameter     float64 // mm
	StirrupDiameter float64 // mm
	StirrupSpacing  float64 // cm
	StirrupLegs     int
	MaxLayers       int
	AggregateSize   float64 // mm

	LoadFactor float64
	Samples    int
}

// Point is one (position, value) pair of a diagram
type Point struct {
	X     float64
	Value float64
}

// Diagrams are the sampled internal-force curves
type Diagrams struct {
	Shear      []Point // kN
	Moment     []Point // kN-m
	Deflection []Point // mm, downward positive
}

// BeamMetrics summarises the governing values
type BeamMetrics struct {
	fem.Peaks

	AsBottom       float64 // required (cm²)
	AsTop          float64
	ProvidedBottom float64 // placed (cm²)
	ProvidedTop    float64

	DeflectionLimit float64 // mm
}

// Alternatives per face
type Alternatives struct {
	Bottom []beam.Alternative
	Top    []beam.Alternative
}

// BeamOutput is the beam calculation result
type BeamOutput struct {
	Valid    bool
	Messages []Message

	Diagrams  *Diagrams // nil when the structure is unstable
	Reactions []fem.Reaction
	Metrics   BeamMetrics
	Layout    section.Layout

	Alternatives Alternatives
	Memory       []string

	Design *beam.Result
}

// Beam analyses the span and designs the section. Malformed input returns
// an error wrapping a *section.ValidationError; expected non-conformance is
// reported through Valid and Messages.
func (e *Engine) Beam(in BeamInput) (*BeamOutput, error) {
	if in.Samples == 0 {
		in.Samples = fem.DefaultSamples
	}
	if in.Samples < MinSamples {
		return nil, fmt.Errorf("beam: %w", section.Invalidf("at least %d diagram intervals are needed, got %d", MinSamples, in.Samples))
	}

	bm := &beam.Beam{
		Rect:            in.Section,
		Cover:           in.Cover,
		Fck:             in.Fck,
		Fyk:             in.Fyk,
		StirrupFyk:      in.StirrupFyk,
		BottomDiameter:  in.BottomDiameter,
		TopDiameter:     in.TopDiameter,
		StirrupDiameter: in.StirrupDiameter,
		StirrupSpacing:  in.StirrupSpacing,
		StirrupLegs:     in.StirrupLegs,
		MaxLayers:       in.MaxLayers,
		AggregateSize:   in.AggregateSize,
		LoadFactor:      in.LoadFactor,
		Span:            in.Span,
	}
	if err := bm.Validate(); err != nil {
		return nil, fmt.Errorf("beam: %w", err)
	}

	out := &BeamOutput{}
	var msgs messages
	mem := &Memory{}

	loads := append([]fem.DistributedLoad(nil), in.DistributedLoads...)
	mem.Section("Input")
	mem.Add("span L = %.3f m, section b x h = %.1f x %.1f cm, cover = %.1f cm", in.Span, in.Section.Width, in.Section.Height, in.Cover)
	mem.Add("fck = %.1f MPa, fyk = %.0f MPa, fywk = %.0f MPa, load factor = %.2f", in.Fck, in.Fyk, in.StirrupFyk, in.LoadFactor)
	mem.Add("supports = %d, point loads = %d, distributed loads = %d", len(in.Supports), len(in.PointLoads), len(in.DistributedLoads))
	if in.SelfWeight {
		q := nbr.ConcreteUnitWeight * in.Section.Area() / 1e4
		loads = append(loads, fem.DistributedLoad{Start: 0, End: in.Span, StartMagnitude: q, EndMagnitude: q})
		mem.Add("self weight g = 25 x %.2f x %.2f = %.3f kN/m", in.Section.Width/100, in.Section.Height/100, q)
	}

	a, err := fem.Analyze(fem.Beam{
		Span:             in.Span,
		Supports:         in.Supports,
		PointLoads:       in.PointLoads,
		DistributedLoads: loads,
		Width:            in.Section.Width,
		Height:           in.Section.Height,
		Fck:              in.Fck,
	}, in.Samples)
	if errors.Is(err, fem.ErrUnstable) {
		e.log.Debug("unstable structure", "supports", len(in.Supports))
		msgs.add(SeverityError, StructuralInstability, err.Error())
		out.Messages = msgs
		out.Memory = mem.Lines
		return out, nil
	}
	if err != nil {
		return nil, fmt.Errorf("beam: %w", err)
	}
	m := a.Model
	for _, note := range m.Discarded {
		msgs.add(SeverityInfo, Info, note)
	}
	e.log.Debug("beam solved", "nodes", len(m.Nodes), "dofs", m.Dofs(), "samples", len(a.Diagram.Samples))

	mem.Section("Model")
	mem.Add("nodes at %s m", joinPositions(m.Nodes))
	mem.Add("Ecs = %.0f MPa", m.E)
	mem.Add("I = b h^3 / 12 = %.6e m4", m.I)
	mem.Add("EI = %.2f kN.m2", m.EI)
	mem.Add("total applied load = %.3f kN", m.TotalLoad())

	mem.Section("Reactions")
	for _, r := range a.Reactions {
		if r.Kind == fem.Fixed {
			mem.Add("%s at x = %.3f m: R = %.3f kN, M = %.3f kN.m", r.Kind, r.X, r.Force, r.Moment)
		} else {
			mem.Add("%s at x = %.3f m: R = %.3f kN", r.Kind, r.X, r.Force)
		}
	}
	mem.Add("sum of reactions = %.3f kN", a.ReactionTotal())
	out.Reactions = a.Reactions

	pk := a.Diagram.Peaks
	out.Diagrams = diagrams(a.Diagram)
	mem.Section("Internal forces")
	mem.Add("M+max = %.3f kN.m at x = %.3f m", pk.MaxMoment, pk.MaxMomentX)
	mem.Add("M-max = %.3f kN.m at x = %.3f m", pk.MinMoment, pk.MinMomentX)
	mem.Add("Vmax = %.3f kN at x = %.3f m", pk.MaxShear, pk.MaxShearX)
	mem.Add("deflection max = %.3f mm at x = %.3f m", pk.Deflection, pk.DeflectionX)
	e.log.Debug("peaks", "mmax", pk.MaxMoment, "mmin", pk.MinMoment, "vmax", pk.MaxShear, "deflection", pk.Deflection)

	bm.Cantilever = m.IsCantilever()
	res, err := bm.Design(beam.Demand{
		PositiveMoment: pk.MaxMoment,
		NegativeMoment: -pk.MinMoment,
		Shear:          pk.MaxShear,
		Deflection:     pk.Deflection,
	})
	if err != nil {
		return nil, fmt.Errorf("beam: %w", err)
	}
	out.Design = res
	out.Layout = res.Layout

	for _, fr := range []*beam.FaceResult{res.Bottom, res.Top} {
		faceMemory(mem, fr, in.Section)
		faceMessages(&msgs, fr, in.MaxLayers)
	}

	sh := res.Shear
	mem.Section("Shear")
	mem.Add("Vd = %.3f x %.2f = %.3f kN", sh.Vk, in.LoadFactor, sh.Vd)
	mem.Add("Asw = %d x %.3f = %.3f cm2", in.StirrupLegs, nbr.BarArea(in.StirrupDiameter), sh.Asw)
	mem.Add("rho_sw = Asw / (s bw) = %.5f", sh.Rho)
	mem.Add("rho_sw,min = 0.2 fctm / fywk = 0.2 x %.3f / %.0f = %.5f", nbr.Fctm(in.Fck), in.StirrupFyk, sh.RhoMin)
	if sh.IsAdequate {
		mem.Add("rho_sw >= rho_sw,min: OK")
	} else {
		mem.Add("rho_sw < rho_sw,min: stirrup spacing must not exceed %.1f cm", sh.MaxSpacing)
		msgs.add(SeverityError, DetailingInfeasible, fmt.Sprintf(
			"stirrups Ø%g c/%g cm give rho_sw = %.5f below the minimum %.5f; use spacing <= %.1f cm",
			in.StirrupDiameter, in.StirrupSpacing, sh.Rho, sh.RhoMin, sh.MaxSpacing))
	}

	df := res.Deflection
	mem.Section("Serviceability")
	mem.Add("limit = L / %d = %.2f mm", df.Ratio, df.Limit)
	mem.Add("deflection = %.2f mm", df.Deflection)
	if df.Exceeded {
		mem.Add("deflection > limit: NOT OK")
		msgs.add(SeverityWarning, ServiceabilityExceeded, fmt.Sprintf(
			"deflection %.2f mm exceeds L/%d = %.2f mm", df.Deflection, df.Ratio, df.Limit))
	} else {
		mem.Add("deflection <= limit: OK")
	}

	out.Metrics = BeamMetrics{
		Peaks:           pk,
		AsBottom:        res.Bottom.As,
		AsTop:           res.Top.As,
		ProvidedBottom:  res.Bottom.Provided,
		ProvidedTop:     res.Top.Provided,
		DeflectionLimit: df.Limit,
	}
	out.Alternatives = Alternatives{Bottom: res.Bottom.Alternatives, Top: res.Top.Alternatives}
	out.Messages = msgs
	out.Valid = msgs.valid()
	out.Memory = mem.Lines
	return out, nil
}

func faceMemory(mem *Memory, fr *beam.FaceResult, s section.Rect) {
	mem.Section(fmt.Sprintf("Flexure, %s face", fr.Face))
	mem.Add("Mk = %.3f kN.m, Md = %.1f kN.cm", fr.Moment, fr.Md)
	mem.Add("d = %.2f cm (bar %g mm)", fr.D, fr.Diameter)
	mem.Add("fcd = %.4f kN/cm2, fyd = %.3f kN/cm2", fr.Fcd, fr.Fyd)
	mem.Add("As,min = rho_min b h = %.5f x %.1f x %.1f = %.3f cm2", fr.AsMin/(s.Width*s.Height), s.Width, s.Height, fr.AsMin)
	switch {
	case fr.Constructive:
		mem.Add("Md below %.0f kN.cm: constructive reinforcement As = As,min", nbr.NegligibleMoment*100)
	case fr.Insufficient:
		mem.Add("Kmd = Md / (b d2 fcd) = %.4f > %.2f: section insufficient", fr.Kmd, nbr.KmdLimit)
		return
	default:
		mem.Add("Kmd = Md / (b d2 fcd) = %.4f <= %.2f", fr.Kmd, nbr.KmdLimit)
		mem.Add("bx = 1.25 (1 - sqrt(1 - 2 Kmd)) = %.4f", fr.Bx)
		mem.Add("bz = 1 - 0.4 bx = %.4f", fr.Bz)
		mem.Add("As,calc = Md / (bz d fyd) = %.3f cm2", fr.AsCalc)
		mem.Add("As = max(As,calc, As,min) = %.3f cm2", fr.As)
	}
	mem.Add("%d bars of %g mm, %d per layer, layers %v, As,prov = %.3f cm2", fr.Bars, fr.Diameter, fr.PerLayer, fr.Layers, fr.Provided)
}

func faceMessages(msgs *messages, fr *beam.FaceResult, maxLayers int) {
	if fr.Insufficient {
		msgs.add(SeverityError, SectionInsufficient, fmt.Sprintf(
			"%s face: Kmd = %.4f exceeds %.2f, increase the section", fr.Face, fr.Kmd, nbr.KmdLimit))
		return
	}
	if fr.Infeasible {
		msgs.add(SeverityError, DetailingInfeasible, fmt.Sprintf(
			"%s face: %d bars of %g mm do not fit in %d layer(s) of %d", fr.Face, fr.Bars, fr.Diameter, maxLayers, fr.PerLayer))
	}
	if fr.Constructive {
		msgs.add(SeverityInfo, Info, fmt.Sprintf("%s face: negligible moment, minimum reinforcement placed", fr.Face))
	}
}

func diagrams(d *fem.Diagram) *Diagrams {
	n := len(d.Samples)
	out := &Diagrams{
		Shear:      make([]Point, n),
		Moment:     make([]Point, n),
		Deflection: make([]Point, n),
	}
	for i, s := range d.Samples {
		out.Shear[i] = Point{s.X, s.Shear}
		out.Moment[i] = Point{s.X, s.Moment}
		out.Deflection[i] = Point{s.X, s.Deflection}
	}
	return out
}

func joinPositions(xs []float64) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = fmt.Sprintf("%.3f", x)
	}
	return strings.Join(parts, ", ")
}
