package engine

import (
	"fmt"

	"github.com/alexiusacademia/gorcd/internal/column"
	"github.com/alexiusacademia/gorcd/internal/section"
)

// ColumnInput is the column calculation request
type ColumnInput struct {
	Axial   float64 // characteristic axial load (kN)
	Section section.Rect
	Length  float64 // m
	Ends    column.EndCondition
	Cover   float64 // cm

	Fck float64 // MPa
	Fyk float64 // MPa

	BarDiameter     float64 // mm
	StirrupDiameter float64 // mm
	StirrupSpacing  float64 // cm

	LoadFactor float64
}

// ColumnOutput is the column calculation result
type ColumnOutput struct {
	Valid    bool
	Messages []Message
	Layout   section.Layout
	Memory   []string

	Design *column.Result
}

// Column designs a rectangular column for an axial load
func (e *Engine) Column(in ColumnInput) (*ColumnOutput, error) {
	c := &column.Column{
		Rect:            in.Section,
		Length:          in.Length,
		Ends:            in.Ends,
		Cover:           in.Cover,
		Fck:             in.Fck,
		Fyk:             in.Fyk,
		BarDiameter:     in.BarDiameter,
		StirrupDiameter: in.StirrupDiameter,
		StirrupSpacing:  in.StirrupSpacing,
		LoadFactor:      in.LoadFactor,
	}
	r, err := c.Design(in.Axial)
	if err != nil {
		return nil, fmt.Errorf("column: %w", err)
	}
	e.log.Debug("column designed", "lambda_x", r.X.Lambda, "lambda_y", r.Y.Lambda, "nu", r.Nu, "bars", r.Bars)

	out := &ColumnOutput{Design: r, Layout: r.Layout}
	var msgs messages
	mem := &Memory{}

	mem.Section("Input")
	mem.Add("Nk = %.2f kN, Nd = %.2f x %.2f = %.2f kN", r.Nk, r.Nk, in.LoadFactor, r.Nd)
	mem.Add("section %.1f x %.1f cm, Ac = %.1f cm2, height = %.2f m", in.Section.Width, in.Section.Height, r.Ac, in.Length)
	mem.Add("fcd = %.4f kN/cm2, fyd = %.3f kN/cm2", r.Fcd, r.Fyd)

	mem.Section("Slenderness")
	mem.Add("%s: k = %.1f, le = %.1f cm", endName(in.Ends), r.K, r.Le)
	mem.Add("lambda_x = le sqrt(12) / %.1f = %.2f", r.X.Side, r.X.Lambda)
	mem.Add("lambda_y = le sqrt(12) / %.1f = %.2f", r.Y.Side, r.Y.Lambda)
	if r.Slender {
		mem.Add("lambda > %.0f: column rejected", column.LambdaMax)
		msgs.add(SeverityError, SectionInsufficient, fmt.Sprintf(
			"excessive slenderness: lambda = %.1f exceeds %.0f", max(r.X.Lambda, r.Y.Lambda), column.LambdaMax))
		return finishColumn(out, msgs, mem), nil
	}

	mem.Section("Moments")
	mem.Add("nu = Nd / (Ac fcd) = %.4f", r.Nu)
	for _, ax := range []struct {
		name string
		a    *column.Axis
	}{{"x", r.X}, {"y", r.Y}} {
		a := ax.a
		mem.Add("e_min,%s = 1.5 + 0.03 x %.1f = %.2f cm, M1min = %.1f kN.cm", ax.name, a.Side, a.Emin, a.M1min)
		if a.SecondOrder {
			mem.Add("lambda_%s > %.0f: 1/r = %.6f 1/cm, e2 = le2/10 x 1/r = %.3f cm", ax.name, column.LambdaSecondOrder, a.Curvature, a.E2)
		} else {
			mem.Add("lambda_%s <= %.0f: no second-order effects", ax.name, column.LambdaSecondOrder)
		}
		mem.Add("Md,%s = %.1f kN.cm, mu_%s = %.4f", ax.name, a.Mtotal, ax.name, a.Mu)
	}
	if r.Crushed {
		mem.Add("nu > 1: section crushed")
		msgs.add(SeverityError, SectionInsufficient, fmt.Sprintf(
			"axial ratio nu = %.3f exceeds 1.0, the concrete section is crushed", r.Nu))
		return finishColumn(out, msgs, mem), nil
	}

	mem.Section("Longitudinal reinforcement")
	mem.Add("omega = %.1f nu + %.1f (mu_x + mu_y) - %.1f = %.4f", column.OmegaAxial, column.OmegaMoment, column.OmegaOffset, r.Omega)
	mem.Add("As,calc = omega Ac fcd / fyd = %.3f cm2", r.AsCalc)
	mem.Add("As,min = max(0.15 Nd / fyd, 0.004 Ac) = %.3f cm2", r.AsMin)
	mem.Add("As,max = 0.04 Ac = %.3f cm2", r.AsMax)
	mem.Add("As = %.3f cm2", r.As)
	mem.Add("%d bars of %g mm (4 corners + %d along x + %d along y), As,prov = %.3f cm2",
		r.Bars, in.BarDiameter, r.PairX, r.PairY, r.Provided)
	if r.OverReinforced {
		msgs.add(SeverityError, SectionInsufficient, fmt.Sprintf(
			"required steel %.2f cm2 exceeds the maximum %.2f cm2, increase the section", r.As, r.AsMax))
	}
	if r.Forced {
		msgs.add(SeverityInfo, Info, "one bar added to keep the arrangement symmetric")
	}

	st := r.Stirrups
	mem.Section("Stirrups")
	mem.Add("diameter %g mm >= max(5, %g/4) = %.2f mm: %s", in.StirrupDiameter, in.BarDiameter, st.MinDiameter, okText(st.DiameterOK))
	mem.Add("spacing %g cm <= min(20, %.0f, 12 x %g/10) = %.1f cm: %s", in.StirrupSpacing, min(in.Section.Width, in.Section.Height), in.BarDiameter, st.MaxSpacing, okText(st.SpacingOK))
	if !st.DiameterOK {
		msgs.add(SeverityWarning, DetailingInfeasible, fmt.Sprintf(
			"stirrup diameter %g mm is below the minimum %.2f mm", in.StirrupDiameter, st.MinDiameter))
	}
	if !st.SpacingOK {
		msgs.add(SeverityWarning, DetailingInfeasible, fmt.Sprintf(
			"stirrup spacing %g cm exceeds the maximum %.1f cm", in.StirrupSpacing, st.MaxSpacing))
	}
	return finishColumn(out, msgs, mem), nil
}

func finishColumn(out *ColumnOutput, msgs messages, mem *Memory) *ColumnOutput {
	out.Messages = msgs
	out.Valid = msgs.valid()
	out.Memory = mem.Lines
	return out
}

func endName(e column.EndCondition) string {
	if e == "" {
		return string(column.PinnedPinned)
	}
	return string(e)
}

func okText(ok bool) string {
	if ok {
		return "OK"
	}
	return "NOT OK"
}
