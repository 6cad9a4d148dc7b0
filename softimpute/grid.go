// SPDX-License-Identifier: MIT
// Package softimpute: shrinkage-grid construction.
//
// The regularization path is explored on a descending geometric grid from
// λmax (the level at which the model collapses to rank 0) down to a fixed
// floor. Log-spacing matches how singular values decay in practice; a linear
// grid would waste most of its points on the flat high-λ plateau.

package softimpute

import (
	"fmt"
	"math"

	"github.com/katalvlaran/rankfill/matrix"
)

// LambdaMax returns the largest singular value of the zero-filled training
// matrix. At shrinkage λ ≥ LambdaMax every singular value is annihilated,
// so this is the exact upper endpoint of any useful grid.
//
// Errors: matrix sentinels for structural problems, ErrNumericalInstability
// when the SVD fails to factorize.
//
// Complexity: O(r·c·min(r,c)) for one thin SVD.
func LambdaMax(x *matrix.Masked, train *matrix.Mask) (float64, error) {
	// Stage 1 - structural validation (nil, shape, mask subset).
	if err := validateInstance(x, train); err != nil {
		return 0, err
	}

	// Stage 2 - one SVD of the zero-filled start point.
	_, d, _, err := thinSVD(zeroFilled(x, train))
	if err != nil {
		return 0, fmt.Errorf("LambdaMax: %w", err)
	}
	if len(d) == 0 {
		return 0, nil
	}

	return d[0], nil // gonum returns the spectrum in descending order
}

// Grid builds a descending geometric grid of size points from lambdaMax down
// to floor. Both endpoints are exact grid members; interior points are
// log-spaced. When lambdaMax ≤ floor the path degenerates to the single
// point {lambdaMax}: sweeping below the collapse level is meaningless.
//
// Errors: ErrBadGrid for size < 1 or a non-positive/non-finite floor,
// ErrBadLambda for a negative or non-finite lambdaMax.
func Grid(lambdaMax, floor float64, size int) ([]float64, error) {
	// Stage 1 - validation.
	if err := validateLambda(lambdaMax); err != nil {
		return nil, err
	}
	if size < 1 {
		return nil, fmt.Errorf("Grid: size %d < 1: %w", size, ErrBadGrid)
	}
	if floor <= 0 || math.IsInf(floor, 0) || math.IsNaN(floor) {
		return nil, fmt.Errorf("Grid: floor %v must be positive and finite: %w", floor, ErrBadGrid)
	}

	// Stage 2 - degenerate paths. A collapse level at or below the floor
	// leaves nothing to sweep; a single-point request returns the top.
	if lambdaMax <= floor || size == 1 {
		return []float64{lambdaMax}, nil
	}

	// Stage 3 - log-space interpolation with exact endpoints.
	var (
		out  = make([]float64, size)
		logT = math.Log(lambdaMax)
		logF = math.Log(floor)
		step = (logT - logF) / float64(size-1)
		i    int
	)
	out[0] = lambdaMax
	for i = 1; i < size-1; i++ {
		out[i] = math.Exp(logT - float64(i)*step)
	}
	out[size-1] = floor

	return out, nil
}
