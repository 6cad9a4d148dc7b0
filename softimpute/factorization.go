// Package softimpute: the truncated factorization produced by the solver.

package softimpute

import (
	"gonum.org/v1/gonum/mat"
)

// Factorization is the shrunken thin SVD of a completed matrix:
// U·diag(D)·Vᵀ. Only components with strictly positive shrunken singular
// values are stored, so len(D) may be smaller than min(rows, cols); a rank-0
// model stores no components at all (U and V are nil, D is empty).
type Factorization struct {
	// U holds the kept left singular vectors, rows×k. Nil when k==0.
	U *mat.Dense

	// D holds the kept shrunken singular values, descending. Empty when k==0.
	D []float64

	// V holds the kept right singular vectors, cols×k. Nil when k==0.
	V *mat.Dense

	rows, cols int

	// Iterations is the number of impute-refit iterations consumed.
	Iterations int

	// Converged reports whether the spectrum stabilized within the iteration
	// budget. A false value is a warning, not an error: the factorization is
	// still usable.
	Converged bool
}

// Dims returns the shape of the matrix this factorization models.
func (f *Factorization) Dims() (rows, cols int) {
	return f.rows, f.cols
}

// Rank counts the singular values strictly above eps. With the solver's
// RankEpsilon this is the effective rank of the model; components at or
// below eps are numerical residue, not structure.
//
// Complexity: O(k).
func (f *Factorization) Rank(eps float64) int {
	var n, i int
	for i = 0; i < len(f.D); i++ { // D is descending; count the active prefix
		if f.D[i] > eps {
			n++
		}
	}

	return n
}

// ValueAt returns the model's prediction for cell (row, col):
// Σₖ U[row,k]·D[k]·V[col,k]. A rank-0 model predicts 0 everywhere.
//
// Contract: indices must be within Dims; out-of-range access panics with
// gonum's usual index error (programmer error, not user input).
//
// Complexity: O(k).
func (f *Factorization) ValueAt(row, col int) float64 {
	var (
		sum float64
		k   int
	)
	for k = 0; k < len(f.D); k++ {
		sum += f.U.At(row, k) * f.D[k] * f.V.At(col, k)
	}

	return sum
}

// Reconstruct materializes the full rows×cols model matrix U·diag(D)·Vᵀ.
// A rank-0 model reconstructs to the zero matrix.
//
// Complexity: O(rows·cols·k) time, O(rows·cols) space.
func (f *Factorization) Reconstruct() *mat.Dense {
	out := mat.NewDense(f.rows, f.cols, nil)
	if len(f.D) == 0 {
		return out // rank-0: all predictions are zero
	}

	// Scale U's columns by D once, then a single dense multiply.
	scaled := mat.NewDense(f.rows, len(f.D), nil)

	var i, k int
	for i = 0; i < f.rows; i++ {
		for k = 0; k < len(f.D); k++ {
			scaled.Set(i, k, f.U.At(i, k)*f.D[k])
		}
	}
	out.Mul(scaled, f.V.T())

	return out
}
