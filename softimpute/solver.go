// SPDX-License-Identifier: MIT
// Package softimpute: the impute-refit solver for a single shrinkage level.
//
// Design principles:
//   - Deterministic: fixed loop orders, no randomness, no time dependence.
//   - Strict sentinels: only errors from types.go and the matrix package.
//   - Hot-path discipline: training positions and values are gathered once;
//     each iteration costs one thin SVD plus two O(r*c) passes.

package softimpute

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/rankfill/matrix"
)

// Complete runs soft-thresholded SVD imputation on x restricted to the
// training mask, at a single shrinkage level lambda, and returns the
// shrunken factorization of the fitted low-rank model.
//
// Contracts:
//   - x non-nil; train same shape, selecting only observed cells of x.
//   - lambda ≥ 0 and finite. λ at or above the largest singular value of the
//     zero-filled matrix yields a valid rank-0 factorization, not an error.
//   - Values observed per train are restored exactly after every iteration;
//     the model never overwrites its training data.
//   - Exhausting MaxIterations returns a usable factorization with
//     Converged=false. Only NaN/Inf or SVD breakdown is an error.
//
// Errors: ErrBadOptions, ErrBadLambda, ErrNumericalInstability, plus
// matrix sentinels for structural problems.
//
// Complexity: O(MaxIterations · r·c·min(r,c)).
func Complete(x *matrix.Masked, train *matrix.Mask, lambda float64, opts Options) (*Factorization, error) {
	// Stage 1 - validation.
	if err := validateOptions(opts); err != nil {
		return nil, err
	}
	if err := validateLambda(lambda); err != nil {
		return nil, err
	}
	if err := validateInstance(x, train); err != nil {
		return nil, err
	}

	var (
		rows = x.Rows()
		cols = x.Cols()
	)

	// Stage 2 - gather the training cells once; the re-imposition loop runs
	// every iteration and must not re-walk the mask.
	trainPos := train.Positions()
	trainVal := make([]float64, len(trainPos))

	var (
		t int
		p matrix.Pos
	)
	for t, p = range trainPos {
		trainVal[t], _ = x.At(p.Row, p.Col) // subset contract validated above
	}

	// Stage 3 - zero-filled start: observed values in place, 0 elsewhere.
	working := zeroFilled(x, train)

	// Stage 4 - the impute-refit loop.
	var (
		u, v      *mat.Dense
		d, shrunk []float64
		prev      []float64
		iter      int
		converged bool
		err       error
	)
	for iter = 1; iter <= opts.MaxIterations; iter++ {
		// 4a. Thin SVD of the current working matrix.
		u, d, v, err = thinSVD(working)
		if err != nil {
			return nil, fmt.Errorf("Complete: iteration %d: %w", iter, err)
		}

		// 4b. Shrink the spectrum and apply the structural rank cap.
		shrunk = softThreshold(d, lambda, opts.MaxRank)

		// 4c. Rebuild the working matrix from the shrunken factorization,
		// then restore the training values exactly.
		working = rebuild(u, shrunk, v, rows, cols)
		for t, p = range trainPos {
			working.Set(p.Row, p.Col, trainVal[t])
		}

		// 4d. Numerical tripwire: a poisoned matrix would silently corrupt
		// every later iteration, so fail here with the iteration number.
		if scanNonFinite(working) {
			return nil, fmt.Errorf("Complete: iteration %d: %w", iter, ErrNumericalInstability)
		}

		// 4e. Convergence on the relative spectrum change (needs a previous
		// spectrum, so the first iteration only records).
		if prev != nil && spectrumDelta(prev, shrunk) <= opts.Tolerance {
			converged = true
			break
		}
		prev = append(prev[:0], shrunk...)
	}
	if iter > opts.MaxIterations {
		iter = opts.MaxIterations // loop exhausted; report the budget, not budget+1
	}

	// Stage 5 - package the positive components of the last refit.
	return truncatedFactorization(u, shrunk, v, rows, cols, iter, converged), nil
}

// rebuild materializes U·diag(d)·Vᵀ keeping only strictly positive entries
// of d. An annihilated spectrum rebuilds to the zero matrix.
//
// Complexity: O(r·c·k).
func rebuild(u *mat.Dense, d []float64, v *mat.Dense, rows, cols int) *mat.Dense {
	out := mat.NewDense(rows, cols, nil)

	k := positiveCount(d)
	if k == 0 {
		return out
	}

	// Scale U's kept columns by d once, then one dense multiply.
	scaled := mat.NewDense(rows, k, nil)

	var i, c int
	for i = 0; i < rows; i++ {
		for c = 0; c < k; c++ {
			scaled.Set(i, c, u.At(i, c)*d[c])
		}
	}

	vk := v.Slice(0, cols, 0, k)
	out.Mul(scaled, vk.T())

	return out
}
