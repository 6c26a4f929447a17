package beam

import (
	"math"

	"github.com/alexiusacademia/gorcd/internal/nbr"
	"github.com/alexiusacademia/gorcd/internal/section"
)

// Flexure holds the rectangular stress-block design of one face.
// Units: kN, cm.
type Flexure struct {
	Md  float64 // design moment (kN-cm)
	D   float64 // effective depth (cm)
	Fcd float64 // kN/cm²
	Fyd float64 // kN/cm²

	Kmd float64
	Bx  float64 // βx, neutral axis depth ratio x/d
	Bz  float64 // βz, lever arm ratio z/d

	AsCalc float64 // from the moment (cm²)
	AsMin  float64 // ρmin·b·h (cm²)
	As     float64 // required, max(AsCalc, AsMin) (cm²)

	// Constructive is set when the moment is negligible and only the
	// minimum area is placed
	Constructive bool

	// Insufficient is set when Kmd exceeds the limit; no area is computed
	Insufficient bool
}

// EffectiveDepth returns d = h - cover - stirrup - bar/2 (cm)
func EffectiveDepth(h, cover, stirrupMM, barMM float64) float64 {
	return h - cover - stirrupMM/10 - barMM/20
}

// DesignFlexure computes the required tension steel for a design moment md (kN-cm)
// acting on a rectangular section with effective depth d.
func DesignFlexure(s section.Rect, d, fck, fyk, md float64) *Flexure {
	f := &Flexure{
		Md:    md,
		D:     d,
		Fcd:   nbr.Fcd(fck),
		Fyd:   nbr.Fyd(fyk),
		AsMin: nbr.RhoMin(fck) * s.Width * s.Height,
	}

	if md < nbr.NegligibleMoment*100 {
		f.Constructive = true
		f.As = f.AsMin
		return f
	}

	f.Kmd = md / (s.Width * d * d * f.Fcd)
	if f.Kmd > nbr.KmdLimit {
		f.Insufficient = true
		return f
	}

	f.Bx = 1.25 * (1 - math.Sqrt(1-2*f.Kmd))
	f.Bz = 1 - 0.4*f.Bx
	f.AsCalc = md / (f.Bz * d * f.Fyd)
	f.As = math.Max(f.AsCalc, f.AsMin)
	return f
}

// FaceResult is the complete design of one face: stress block, bars and
// alternative arrangements.
type FaceResult struct {
	Face     Face
	Moment   float64 // characteristic (kN-m)
	Diameter float64 // mm

	*Flexure
	Packing

	Alternatives []Alternative
}

// DesignFace sizes the bars of one face for a characteristic moment magnitude
func (b *Beam) DesignFace(face Face, moment float64) *FaceResult {
	phi := b.BottomDiameter
	if face == Top {
		phi = b.TopDiameter
	}
	d := EffectiveDepth(b.Height, b.Cover, b.StirrupDiameter, phi)
	md := math.Abs(moment) * b.LoadFactor * 100

	fr := &FaceResult{
		Face:     face,
		Moment:   math.Abs(moment),
		Diameter: phi,
		Flexure:  DesignFlexure(b.Rect, d, b.Fck, b.Fyk, md),
	}
	if fr.Insufficient {
		return fr
	}
	fr.Packing = Pack(fr.As, phi, b.ClearWidth(), b.AggregateSize, b.MaxLayers)
	fr.Alternatives = Alternatives(fr.As, b.ClearWidth(), b.AggregateSize)
	return fr
}
