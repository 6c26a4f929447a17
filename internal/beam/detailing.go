package beam

import (
	"math"
	"sort"

	"github.com/alexiusacademia/gorcd/internal/nbr"
	"github.com/alexiusacademia/gorcd/internal/section"
)

// Detailing limits for alternative arrangements
const (
	MinBars            = 2
	MaxAlternativeBars = 16
	MaxAlternativeRows = 3
	MinAlternativeBar  = 6.3 // mm
)

// Packing is an arrangement of whole bars in layers
type Packing struct {
	Bars       int
	PerLayer   int
	Layers     []int   // bars per layer, first layer nearest the face
	Provided   float64 // cm²
	Infeasible bool    // bars overflowed the allowed layers
}

// BarCount returns the number of bars of the given diameter needed for
// area as (cm²), never less than MinBars.
func BarCount(as, barMM float64) int {
	n := int(math.Ceil(as/nbr.BarArea(barMM) - 1e-9))
	return max(MinBars, n)
}

// Pack distributes the bars needed for as over at most maxLayers layers.
// When they do not fit the overflow stays in the last layer, so the total is
// still reported, and the packing is marked infeasible.
func Pack(as, barMM, clearWidth, aggregateMM float64, maxLayers int) Packing {
	p := Packing{
		Bars:     BarCount(as, barMM),
		PerLayer: section.BarsPerLayer(clearWidth, barMM, aggregateMM),
	}
	p.Provided = float64(p.Bars) * nbr.BarArea(barMM)

	left := p.Bars
	for left > 0 {
		n := min(left, p.PerLayer)
		if len(p.Layers) == maxLayers-1 && left > p.PerLayer {
			n = left
			p.Infeasible = true
		}
		p.Layers = append(p.Layers, n)
		left -= n
	}
	return p
}

// Alternative is another bar diameter that meets the same area
type Alternative struct {
	Diameter float64 // mm
	Bars     int
	Layers   int
	Provided float64 // cm²
}

// Alternatives lists, for every commercial diameter from 6.3 mm up, the
// arrangement meeting as. Arrangements needing more than 3 layers or more
// than 16 bars are left out. The list is ordered by excess area, then by
// bar count.
func Alternatives(as, clearWidth, aggregateMM float64) []Alternative {
	var alts []Alternative
	for _, phi := range nbr.BarDiameters {
		if phi < MinAlternativeBar {
			continue
		}
		n := BarCount(as, phi)
		per := section.BarsPerLayer(clearWidth, phi, aggregateMM)
		rows := (n + per - 1) / per
		if rows > MaxAlternativeRows || n > MaxAlternativeBars {
			continue
		}
		alts = append(alts, Alternative{
			Diameter: phi,
			Bars:     n,
			Layers:   rows,
			Provided: float64(n) * nbr.BarArea(phi),
		})
	}
	sort.SliceStable(alts, func(i, j int) bool {
		if alts[i].Provided != alts[j].Provided {
			return alts[i].Provided < alts[j].Provided
		}
		return alts[i].Bars < alts[j].Bars
	})
	return alts
}
