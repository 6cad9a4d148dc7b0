// SPDX-License-Identifier: MIT
// Package softimpute: SVD plumbing and spectrum helpers.
//
// The factorization itself is delegated to gonum's mat.SVD (thin mode);
// this file owns the glue: zero-filled assembly, soft-thresholding,
// truncation, spectrum distance and the NaN/Inf tripwire.

package softimpute

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/rankfill/matrix"
)

// spectrumFloor guards the convergence ratio's denominator so an all-zero
// previous spectrum (rank-0 regime) still yields a well-defined ratio.
const spectrumFloor = 1e-12

// zeroFilled builds the solver's starting point: a dense rows×cols matrix
// holding x's value at every cell the training mask selects and 0 elsewhere.
// In z-score units, 0 is the column mean, so the fill is the neutral guess.
//
// Complexity: O(r*c).
func zeroFilled(x *matrix.Masked, train *matrix.Mask) *mat.Dense {
	var (
		rows = x.Rows()
		cols = x.Cols()
		out  = mat.NewDense(rows, cols, nil)
	)

	var (
		i, j int
		on   bool
		v    float64
	)
	for i = 0; i < rows; i++ { // fixed row-major order
		for j = 0; j < cols; j++ {
			on, _ = train.At(i, j) // shapes validated upstream
			if !on {
				continue // missing cells keep the zero fill
			}
			v, _ = x.At(i, j)
			out.Set(i, j, v)
		}
	}

	return out
}

// thinSVD factorizes w into U·diag(d)·Vᵀ with min(r,c) components.
// gonum returns singular values in descending order; we rely on that.
//
// Errors: ErrNumericalInstability when the factorization fails to converge.
//
// Complexity: O(r·c·min(r,c)).
func thinSVD(w *mat.Dense) (u *mat.Dense, d []float64, v *mat.Dense, err error) {
	var svd mat.SVD
	if ok := svd.Factorize(w, mat.SVDThin); !ok {
		return nil, nil, nil, ErrNumericalInstability
	}

	var uu, vv mat.Dense
	svd.UTo(&uu)
	svd.VTo(&vv)

	return &uu, svd.Values(nil), &vv, nil
}

// softThreshold returns the shrunken spectrum max(dᵢ−lambda, 0), optionally
// truncated to the first maxRank components (0 = no cap). d is descending,
// so zeroing the tail is exactly the best-rank truncation.
//
// Complexity: O(len(d)) time and space.
func softThreshold(d []float64, lambda float64, maxRank int) []float64 {
	out := make([]float64, len(d))

	var i int
	for i = 0; i < len(d); i++ {
		if maxRank > 0 && i >= maxRank {
			break // tail stays zero
		}
		if d[i] > lambda {
			out[i] = d[i] - lambda
		}
	}

	return out
}

// positiveCount returns the number of strictly positive leading entries of a
// descending spectrum.
//
// Complexity: O(len(d)).
func positiveCount(d []float64) int {
	var n, i int
	for i = 0; i < len(d); i++ {
		if d[i] > 0 {
			n++
		}
	}

	return n
}

// spectrumDelta measures the relative squared change between two descending
// spectra: ‖cur−prev‖² / max(‖prev‖², spectrumFloor). Spectra of different
// lengths are compared as if zero-padded.
//
// Complexity: O(max(len(prev), len(cur))).
func spectrumDelta(prev, cur []float64) float64 {
	var (
		n = len(prev)
		i int
	)
	if len(cur) > n {
		n = len(cur)
	}

	var num, den, p, c float64
	for i = 0; i < n; i++ {
		p, c = 0, 0
		if i < len(prev) {
			p = prev[i]
		}
		if i < len(cur) {
			c = cur[i]
		}
		num += (c - p) * (c - p)
		den += p * p
	}
	if den < spectrumFloor {
		den = spectrumFloor
	}

	return num / den
}

// scanNonFinite reports whether w contains NaN or ±Inf anywhere.
//
// Complexity: O(r*c).
func scanNonFinite(w *mat.Dense) bool {
	raw := w.RawMatrix()

	var i, j int
	for i = 0; i < raw.Rows; i++ {
		for j = 0; j < raw.Cols; j++ { // honor the stride; padding is not data
			v := raw.Data[i*raw.Stride+j]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return true
			}
		}
	}

	return false
}

// truncatedFactorization packages the strictly positive prefix of a shrunken
// spectrum into a Factorization, slicing U and V to the kept components.
// A fully annihilated spectrum yields the rank-0 factorization.
//
// Complexity: O(r·k + c·k) for the column copies.
func truncatedFactorization(u *mat.Dense, d []float64, v *mat.Dense, rows, cols, iters int, converged bool) *Factorization {
	k := positiveCount(d)
	f := &Factorization{
		rows:       rows,
		cols:       cols,
		Iterations: iters,
		Converged:  converged,
	}
	if k == 0 {
		return f // rank-0 model: no components stored
	}

	// Copy the kept columns so the factorization owns its storage.
	f.U = mat.DenseCopyOf(u.Slice(0, rows, 0, k))
	f.V = mat.DenseCopyOf(v.Slice(0, cols, 0, k))
	f.D = append([]float64(nil), d[:k]...)

	return f
}
