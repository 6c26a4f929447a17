package fem

// Analysis is the full solver output for one beam
type Analysis struct {
	Model     *Model
	System    *System
	EndForces []EndForces
	Reactions []Reaction
	Diagram   *Diagram
}

// Analyze builds, assembles, restrains and solves the beam, then walks the
// span with n sub-intervals. ErrUnstable is returned unwrapped.
func Analyze(b Beam, n int) (*Analysis, error) {
	m, err := Build(b)
	if err != nil {
		return nil, err
	}
	sys := Assemble(m)
	if err := ApplySupports(m, sys); err != nil {
		return nil, err
	}
	sys.D = Solve(sys.K, sys.F)

	d := sys.D.RawVector().Data
	forces := MemberEndForces(m, d)
	reactions := Reactions(m, forces, sys.NodalLoads)

	return &Analysis{
		Model:     m,
		System:    sys,
		EndForces: forces,
		Reactions: reactions,
		Diagram:   Walk(m, d, reactions, n),
	}, nil
}

// ReactionTotal returns the sum of vertical reactions (kN)
func (a *Analysis) ReactionTotal() float64 {
	var total float64
	for _, r := range a.Reactions {
		total += r.Force
	}
	return total
}
