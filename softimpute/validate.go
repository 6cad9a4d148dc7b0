// Package softimpute - validation utilities shared by all entry points.
//
// Design principles:
//   - Deterministic, side-effect free functions.
//   - No logging, no panics on user input - only sentinel errors from types.go
//     (plus matrix sentinels for structural problems).
//   - O(r*c) worst-case; no hidden allocations.
package softimpute

import (
	"fmt"
	"math"

	"github.com/katalvlaran/rankfill/matrix"
)

// validateOptions checks every Options field against its documented domain.
//
// Complexity: O(1).
func validateOptions(opts Options) error {
	if opts.MaxRank < 0 {
		return fmt.Errorf("validateOptions: MaxRank=%d: %w", opts.MaxRank, ErrBadOptions)
	}
	if opts.MaxIterations < 1 {
		return fmt.Errorf("validateOptions: MaxIterations=%d: %w", opts.MaxIterations, ErrBadOptions)
	}
	if !(opts.Tolerance > 0) || math.IsInf(opts.Tolerance, 0) {
		return fmt.Errorf("validateOptions: Tolerance=%g: %w", opts.Tolerance, ErrBadOptions)
	}
	if opts.GridSize < 2 {
		return fmt.Errorf("validateOptions: GridSize=%d: %w", opts.GridSize, ErrBadOptions)
	}
	if !(opts.LambdaFloor > 0) || math.IsInf(opts.LambdaFloor, 0) {
		return fmt.Errorf("validateOptions: LambdaFloor=%g: %w", opts.LambdaFloor, ErrBadOptions)
	}
	if opts.FinalLambda < 0 || math.IsNaN(opts.FinalLambda) || math.IsInf(opts.FinalLambda, 0) {
		return fmt.Errorf("validateOptions: FinalLambda=%g: %w", opts.FinalLambda, ErrBadOptions)
	}
	if !(opts.RankEpsilon > 0) || math.IsInf(opts.RankEpsilon, 0) {
		return fmt.Errorf("validateOptions: RankEpsilon=%g: %w", opts.RankEpsilon, ErrBadOptions)
	}
	if math.IsNaN(opts.HoldoutFraction) || opts.HoldoutFraction <= 0 || opts.HoldoutFraction >= 1 {
		return fmt.Errorf("validateOptions: HoldoutFraction=%g: %w", opts.HoldoutFraction, ErrBadOptions)
	}
	if opts.Workers < 0 {
		return fmt.Errorf("validateOptions: Workers=%d: %w", opts.Workers, ErrBadOptions)
	}

	return nil
}

// validateLambda rejects negative or non-finite shrinkage levels.
//
// Complexity: O(1).
func validateLambda(lambda float64) error {
	if lambda < 0 || math.IsNaN(lambda) || math.IsInf(lambda, 0) {
		return fmt.Errorf("validateLambda: lambda=%g: %w", lambda, ErrBadLambda)
	}

	return nil
}

// validateInstance checks the solver's structural inputs: a non-nil matrix
// and a training mask of the same shape selecting only observed cells.
//
// Errors: matrix.ErrNilMatrix, matrix.ErrDimensionMismatch,
// matrix.ErrMaskMismatch.
//
// Complexity: O(r*c).
func validateInstance(x *matrix.Masked, train *matrix.Mask) error {
	return matrix.ValidateTrainMask(x, train)
}
