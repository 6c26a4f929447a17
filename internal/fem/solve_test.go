package fem

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func TestSolveNeedsPivoting(t *testing.T) {
	k := mat.NewDense(2, 2, []float64{0, 1, 1, 0})
	f := mat.NewVecDense(2, []float64{2, 3})
	d := Solve(k, f)
	if d.AtVec(0) != 3 || d.AtVec(1) != 2 {
		t.Errorf("got %v, want [3 2]", d.RawVector().Data)
	}
	// inputs untouched
	if k.At(0, 0) != 0 || f.AtVec(0) != 2 {
		t.Error("Solve modified its inputs")
	}
}

func TestSolveMatchesLU(t *testing.T) {
	n := 6
	data := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			data[i*n+j] = 1 / float64(i+j+1)
		}
		data[i*n+i] += float64(n)
	}
	k := mat.NewDense(n, n, data)
	f := mat.NewVecDense(n, []float64{1, -2, 3, -4, 5, -6})

	got := Solve(k, f)

	var want mat.VecDense
	if err := want.SolveVec(k, f); err != nil {
		t.Fatal(err)
	}
	if !floats.EqualApprox(got.RawVector().Data, want.RawVector().Data, 1e-12) {
		t.Errorf("got %v, want %v", got.RawVector().Data, want.RawVector().Data)
	}
}

func TestSolveSkipsSingularColumn(t *testing.T) {
	// Second unknown is unconstrained
	k := mat.NewDense(2, 2, []float64{4, 0, 0, 0})
	f := mat.NewVecDense(2, []float64{8, 0})
	d := Solve(k, f)
	if d.AtVec(0) != 2 || d.AtVec(1) != 0 {
		t.Errorf("got %v", d.RawVector().Data)
	}
}

func TestPenaltySuppressesSupportDisplacement(t *testing.T) {
	b := simplySupported(5)
	b.PointLoads = []PointLoad{{X: 2, Magnitude: 50}}
	a, err := Analyze(b, 50)
	if err != nil {
		t.Fatal(err)
	}
	d := a.System.D
	for _, s := range a.Model.Supports {
		i, _ := a.Model.NodeIndex(s.X)
		if v := d.AtVec(2 * i); math.Abs(v) > 1e-12 {
			t.Errorf("support at %v moved by %v m", s.X, v)
		}
	}
	// free rotations are not suppressed
	if d.AtVec(1) == 0 {
		t.Error("pinned end should rotate")
	}
}

func TestStiffnessIsSymmetric(t *testing.T) {
	k := Stiffness(1234, 2.5)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if k[i][j] != k[j][i] {
				t.Fatalf("k[%d][%d] != k[%d][%d]", i, j, j, i)
			}
		}
	}
	// rigid-body translation produces no force
	for i := 0; i < 4; i++ {
		if s := k[i][0] + k[i][2]; math.Abs(s) > 1e-9 {
			t.Errorf("row %d: translation force %v", i, s)
		}
	}
}
