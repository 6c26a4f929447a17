package fem

// EndForces holds the forces acting at an element's ends, in global sign
// convention: (V1, M1, V2, M2), V upward and M counter-clockwise.
type EndForces struct {
	Element Element
	V1, M1  float64 // kN, kN·m
	V2, M2  float64
}

// Reaction at a supported node
type Reaction struct {
	Node   int
	X      float64 // m
	Kind   SupportKind
	Force  float64 // kN, upward positive
	Moment float64 // kN·m, counter-clockwise positive; zero unless fixed
}

// MemberEndForces recovers end forces for every element from the solved
// displacements: f = k·d + fixed-end actions.
func MemberEndForces(m *Model, d []float64) []EndForces {
	els := m.Elements()
	out := make([]EndForces, 0, len(els))
	for _, e := range els {
		k := Stiffness(m.EI, e.Length())
		fea := FixedEndActions(e.Length(), m.ElementLoads(e))
		dofs := e.Dofs()
		var f [4]float64
		for i := 0; i < 4; i++ {
			f[i] = fea[i]
			for j := 0; j < 4; j++ {
				f[i] += k[i][j] * d[dofs[j]]
			}
		}
		out = append(out, EndForces{Element: e, V1: f[0], M1: f[1], V2: f[2], M2: f[3]})
	}
	return out
}

// Reactions sums the end forces of the elements meeting at each supported
// node. Point loads sitting on a support node go straight into it.
func Reactions(m *Model, forces []EndForces, nodalLoads []float64) []Reaction {
	var out []Reaction
	seen := make(map[int]int)
	for _, s := range m.Supports {
		node, ok := m.NodeIndex(s.X)
		if !ok {
			continue
		}
		if idx, dup := seen[node]; dup {
			// Two supports on one node act as the stronger restraint
			if s.Kind == Fixed {
				out[idx].Kind = Fixed
			}
			continue
		}
		seen[node] = len(out)
		out = append(out, Reaction{Node: node, X: m.Nodes[node], Kind: s.Kind})
	}

	for i := range out {
		node := out[i].Node
		var force, moment float64
		if node > 0 {
			f := forces[node-1]
			force += f.V2
			moment += f.M2
		}
		if node < len(forces) {
			f := forces[node]
			force += f.V1
			moment += f.M1
		}
		if nodalLoads != nil {
			force += nodalLoads[node]
		}
		out[i].Force = force
		if out[i].Kind == Fixed {
			out[i].Moment = moment
		}
	}
	return out
}
