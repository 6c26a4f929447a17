package fem

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Solve solves K·d = F by Gaussian elimination with partial pivoting.
// K and F are not modified. Columns whose best pivot is below PivotFloor
// are skipped and the corresponding unknown is left at zero.
func Solve(k *mat.Dense, f *mat.VecDense) *mat.VecDense {
	n, _ := k.Dims()
	a := mat.DenseCopyOf(k)
	b := mat.VecDenseCopyOf(f)

	for col := 0; col < n; col++ {
		// Partial pivoting: largest magnitude in this column from the remaining rows
		pivot := col
		best := math.Abs(a.At(col, col))
		for r := col + 1; r < n; r++ {
			if v := math.Abs(a.At(r, col)); v > best {
				best = v
				pivot = r
			}
		}
		if best < PivotFloor {
			continue
		}
		if pivot != col {
			swapRows(a, col, pivot)
			bc, bp := b.AtVec(col), b.AtVec(pivot)
			b.SetVec(col, bp)
			b.SetVec(pivot, bc)
		}

		p := a.At(col, col)
		for r := col + 1; r < n; r++ {
			factor := a.At(r, col) / p
			if factor == 0 {
				continue
			}
			for c := col; c < n; c++ {
				a.Set(r, c, a.At(r, c)-factor*a.At(col, c))
			}
			b.SetVec(r, b.AtVec(r)-factor*b.AtVec(col))
		}
	}

	// Back substitution
	d := mat.NewVecDense(n, nil)
	for r := n - 1; r >= 0; r-- {
		p := a.At(r, r)
		if math.Abs(p) < PivotFloor {
			continue
		}
		sum := b.AtVec(r)
		for c := r + 1; c < n; c++ {
			sum -= a.At(r, c) * d.AtVec(c)
		}
		d.SetVec(r, sum/p)
	}
	return d
}

func swapRows(a *mat.Dense, i, j int) {
	_, n := a.Dims()
	for c := 0; c < n; c++ {
		vi, vj := a.At(i, c), a.At(j, c)
		a.Set(i, c, vj)
		a.Set(j, c, vi)
	}
}
