package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/alexiusacademia/gorcd/internal/column"
	"github.com/alexiusacademia/gorcd/internal/engine"
	"github.com/alexiusacademia/gorcd/internal/fem"
	"github.com/alexiusacademia/gorcd/internal/nbr"
	"github.com/alexiusacademia/gorcd/internal/section"
)

// Values used when a request leaves a detailing choice out
const (
	DefaultBeamCover      = 2.5  // cm
	DefaultColumnCover    = 3.0  // cm
	DefaultFck            = 25.0 // MPa
	DefaultBottomBar      = 12.5 // mm
	DefaultTopBar         = 10.0 // mm
	DefaultColumnBar      = 12.5 // mm
	DefaultStirrup        = 5.0  // mm
	DefaultStirrupSpacing = 15.0 // cm
)

// SupportSpec is a support in a request file
type SupportSpec struct {
	X    float64         `yaml:"x"`
	Type fem.SupportKind `yaml:"type"`
}

// PointLoadSpec is a point load in a request file
type PointLoadSpec struct {
	X float64 `yaml:"x"`
	P float64 `yaml:"p"`
}

// DistributedLoadSpec is a trapezoidal load in a request file. Q2 defaults
// to Q1 for uniform loads.
type DistributedLoadSpec struct {
	Start float64  `yaml:"start"`
	End   float64  `yaml:"end"`
	Q1    float64  `yaml:"q1"`
	Q2    *float64 `yaml:"q2"`
}

// BarSpec holds the bar and stirrup choices of a request
type BarSpec struct {
	Bottom  float64 `yaml:"bottom"`  // mm
	Top     float64 `yaml:"top"`     // mm
	Main    float64 `yaml:"main"`    // mm, columns
	Stirrup float64 `yaml:"stirrup"` // mm
	Spacing float64 `yaml:"spacing"` // cm
	Legs    int     `yaml:"legs"`
}

// BeamRequest models a beam request file
type BeamRequest struct {
	Name             string                `yaml:"name"`
	Span             float64               `yaml:"span"`
	Supports         []SupportSpec         `yaml:"supports"`
	PointLoads       []PointLoadSpec       `yaml:"pointLoads"`
	DistributedLoads []DistributedLoadSpec `yaml:"distributedLoads"`
	SelfWeight       bool                  `yaml:"selfWeight"`

	Section      section.Rect `yaml:"section"`
	Cover        *float64     `yaml:"cover"` // cm, nil for the default; 0 is kept
	Fck          float64      `yaml:"fck"`
	Steel        string       `yaml:"steel"`
	StirrupSteel string       `yaml:"stirrupSteel"`
	Bars         BarSpec      `yaml:"bars"`
	MaxLayers    int          `yaml:"maxLayers"`
	Aggregate    float64      `yaml:"aggregate"`
	LoadFactor   float64      `yaml:"loadFactor"`
	Samples      int          `yaml:"samples"`
}

// ColumnRequest models a column request file
type ColumnRequest struct {
	Name       string              `yaml:"name"`
	Axial      float64             `yaml:"axial"`
	Section    section.Rect        `yaml:"section"`
	Height     float64             `yaml:"height"`
	Ends       column.EndCondition `yaml:"ends"`
	Cover      *float64            `yaml:"cover"` // cm, nil for the default; 0 is kept
	Fck        float64             `yaml:"fck"`
	Steel      string              `yaml:"steel"`
	Bars       BarSpec             `yaml:"bars"`
	LoadFactor float64             `yaml:"loadFactor"`
}

// DecodeBeamRequest decodes a YAML (or JSON) beam request. Unknown keys are rejected.
func DecodeBeamRequest(r io.Reader) (*BeamRequest, error) {
	var req BeamRequest
	if err := decode(r, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

// DecodeColumnRequest decodes a YAML (or JSON) column request. Unknown keys are rejected.
func DecodeColumnRequest(r io.Reader) (*ColumnRequest, error) {
	var req ColumnRequest
	if err := decode(r, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

// LoadBeamRequest reads a beam request file
func LoadBeamRequest(path string) (*BeamRequest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	req, err := DecodeBeamRequest(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return req, nil
}

// LoadColumnRequest reads a column request file
func LoadColumnRequest(path string) (*ColumnRequest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	req, err := DecodeColumnRequest(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return req, nil
}

func decode(r io.Reader, v any) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("empty request")
		}
		return err
	}
	return nil
}

// Input converts the request into an engine input, filling what it leaves
// out from d and the package defaults.
func (r *BeamRequest) Input(d Defaults) (engine.BeamInput, error) {
	fyk, err := nbr.SteelGrade(r.Steel)
	if err != nil {
		return engine.BeamInput{}, section.Invalidf("%v", err)
	}
	fywk, err := nbr.SteelGrade(r.StirrupSteel)
	if err != nil {
		return engine.BeamInput{}, section.Invalidf("%v", err)
	}

	in := engine.BeamInput{
		Span:            r.Span,
		SelfWeight:      r.SelfWeight,
		Section:         r.Section,
		Cover:           orDefault(r.Cover, DefaultBeamCover),
		Fck:             or(r.Fck, DefaultFck),
		Fyk:             fyk,
		StirrupFyk:      fywk,
		BottomDiameter:  or(r.Bars.Bottom, DefaultBottomBar),
		TopDiameter:     or(r.Bars.Top, DefaultTopBar),
		StirrupDiameter: or(r.Bars.Stirrup, DefaultStirrup),
		StirrupSpacing:  or(r.Bars.Spacing, DefaultStirrupSpacing),
		StirrupLegs:     r.Bars.Legs,
		MaxLayers:       r.MaxLayers,
		AggregateSize:   or(r.Aggregate, d.AggregateSize),
		LoadFactor:      or(r.LoadFactor, d.LoadFactor),
		Samples:         r.Samples,
	}
	if in.StirrupLegs == 0 {
		in.StirrupLegs = 2
	}
	if in.MaxLayers == 0 {
		in.MaxLayers = d.MaxLayers
	}
	if in.Samples == 0 {
		in.Samples = d.Samples
	}
	for _, s := range r.Supports {
		in.Supports = append(in.Supports, fem.Support{X: s.X, Kind: s.Type})
	}
	for _, p := range r.PointLoads {
		in.PointLoads = append(in.PointLoads, fem.PointLoad{X: p.X, Magnitude: p.P})
	}
	for _, q := range r.DistributedLoads {
		q2 := q.Q1
		if q.Q2 != nil {
			q2 = *q.Q2
		}
		in.DistributedLoads = append(in.DistributedLoads, fem.DistributedLoad{
			Start: q.Start, End: q.End, StartMagnitude: q.Q1, EndMagnitude: q2,
		})
	}
	return in, nil
}

// Input converts the request into an engine input
func (r *ColumnRequest) Input(d Defaults) (engine.ColumnInput, error) {
	fyk, err := nbr.SteelGrade(r.Steel)
	if err != nil {
		return engine.ColumnInput{}, section.Invalidf("%v", err)
	}
	return engine.ColumnInput{
		Axial:           r.Axial,
		Section:         r.Section,
		Length:          r.Height,
		Ends:            r.Ends,
		Cover:           orDefault(r.Cover, DefaultColumnCover),
		Fck:             or(r.Fck, DefaultFck),
		Fyk:             fyk,
		BarDiameter:     or(r.Bars.Main, DefaultColumnBar),
		StirrupDiameter: or(r.Bars.Stirrup, DefaultStirrup),
		StirrupSpacing:  or(r.Bars.Spacing, DefaultStirrupSpacing),
		LoadFactor:      or(r.LoadFactor, d.LoadFactor),
	}, nil
}

// or treats zero as unset; used for values where zero is never valid
func or(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
