// SPDX-License-Identifier: MIT
// Package softimpute: options, result types and the sentinel error set.
// All solver entry points return ONLY these sentinels (plus sentinels from
// the matrix, zscore and holdout packages they delegate to); tests match
// them via errors.Is. No entry point panics on user input.

package softimpute

import (
	"errors"

	"github.com/katalvlaran/rankfill/holdout"
	"github.com/katalvlaran/rankfill/matrix"
	"github.com/katalvlaran/rankfill/zscore"
)

// Sentinel errors for solver execution.
var (
	// ErrBadOptions is returned when an Options field is out of its domain.
	ErrBadOptions = errors.New("softimpute: invalid options")

	// ErrBadLambda is returned when a shrinkage level is negative or non-finite.
	ErrBadLambda = errors.New("softimpute: invalid lambda")

	// ErrBadGrid is returned when a λ-grid is empty or cannot be constructed.
	ErrBadGrid = errors.New("softimpute: invalid lambda grid")

	// ErrBadRank is returned when a requested rank cap is negative or exceeds
	// the smaller matrix dimension.
	ErrBadRank = errors.New("softimpute: invalid rank")

	// ErrNoHeldOut is returned when model selection is attempted without
	// held-out cells to score against.
	ErrNoHeldOut = errors.New("softimpute: no held-out cells")

	// ErrNumericalInstability is returned when NaN or ±Inf appears in the
	// working matrix or the SVD fails to factorize. Fatal: the result would
	// be garbage.
	ErrNumericalInstability = errors.New("softimpute: numerical instability detected")
)

// DEFAULTS - single source of truth for zero-value behavior.
// These constants MUST reflect the intended defaults in DefaultOptions.
const (
	// DefaultMaxIterations bounds the impute-refit loop per λ.
	DefaultMaxIterations = 100

	// DefaultTolerance is the relative spectrum-change threshold declaring
	// convergence.
	DefaultTolerance = 1e-5

	// DefaultGridSize is the number of λ-grid points in a path sweep.
	DefaultGridSize = 10

	// DefaultLambdaFloor is the smallest λ a grid reaches.
	DefaultLambdaFloor = 1e-2

	// DefaultFinalLambda is the negligible shrinkage used by the final refit;
	// the structural rank cap does the real regularization there.
	DefaultFinalLambda = 1e-9

	// DefaultRankEpsilon separates numerically-zero singular values from real
	// components when counting effective rank.
	DefaultRankEpsilon = 1e-7

	// DefaultHoldoutFraction is the share of observed cells held out for
	// validation.
	DefaultHoldoutFraction = 0.2
)

// Options holds the solver and pipeline parameters. The zero value is NOT
// usable; start from DefaultOptions and override fields explicitly.
type Options struct {
	// MaxRank caps the number of SVD components kept per iteration.
	// 0 means no structural cap (min(rows, cols) components).
	MaxRank int

	// MaxIterations bounds the impute-refit loop. Exhausting it yields a
	// usable result with Converged=false, never an error.
	MaxIterations int

	// Tolerance is the relative spectrum-change threshold for convergence.
	Tolerance float64

	// GridSize is the number of points on the descending geometric λ-grid.
	GridSize int

	// LambdaFloor is the smallest λ on the grid.
	LambdaFloor float64

	// FinalLambda is the negligible shrinkage applied during the final refit.
	FinalLambda float64

	// RankEpsilon is the threshold above which a singular value counts toward
	// the effective rank.
	RankEpsilon float64

	// HoldoutFraction is the share of observed cells removed for validation.
	HoldoutFraction float64

	// Seed drives the holdout split, the pipeline's only source of
	// randomness. 0 selects a fixed default stream (reproducible).
	Seed int64

	// Workers bounds the number of concurrent λ-trials in a path sweep.
	// 0 or 1 means sequential.
	Workers int
}

// DefaultOptions returns the documented defaults (single source of truth).
func DefaultOptions() Options {
	return Options{
		MaxRank:         0, // no structural cap
		MaxIterations:   DefaultMaxIterations,
		Tolerance:       DefaultTolerance,
		GridSize:        DefaultGridSize,
		LambdaFloor:     DefaultLambdaFloor,
		FinalLambda:     DefaultFinalLambda,
		RankEpsilon:     DefaultRankEpsilon,
		HoldoutFraction: DefaultHoldoutFraction,
		Seed:            0, // fixed default stream
		Workers:         0, // sequential
	}
}

// Trial records one λ-grid evaluation during model selection.
type Trial struct {
	// Lambda is the shrinkage level of this trial.
	Lambda float64

	// RMSE is the root-mean-square error over held-out cells, in
	// standardized units.
	RMSE float64

	// Rank is the effective rank of the fitted model (singular values above
	// RankEpsilon).
	Rank int

	// Iterations is the number of solver iterations this trial consumed.
	Iterations int

	// Converged reports whether the trial met Tolerance within
	// MaxIterations.
	Converged bool
}

// PathResult holds the full regularization path and the selected trial.
type PathResult struct {
	// Trials is the per-λ curve, in grid order.
	Trials []Trial

	// Best is the selected trial: minimum RMSE, ties resolved toward the
	// larger λ.
	Best Trial

	// BestIndex is Best's position within Trials.
	BestIndex int
}

// Result is the outcome of the full Estimate pipeline.
type Result struct {
	// Completed is the fully observed matrix in standardized units:
	// observed cells carry their standardized input values exactly,
	// missing cells carry model predictions.
	Completed *matrix.Masked

	// Stats is the per-column standardization transform; use Stats.Invert
	// to map Completed back to original units.
	Stats *zscore.Stats

	// Model is the final refit factorization.
	Model *Factorization

	// Path is the full selection curve.
	Path *PathResult

	// Held lists the validation cells the path was scored on.
	Held []holdout.Cell

	// LambdaMax is the top of the λ-grid (largest singular value of the
	// zero-filled training matrix).
	LambdaMax float64

	// Grid is the descending λ-grid that was swept.
	Grid []float64

	// Lambda, Rank and RMSE summarize the selected trial.
	Lambda float64
	Rank   int
	RMSE   float64

	// Converged reports whether the final refit met Tolerance.
	Converged bool
}
