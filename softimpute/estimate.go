// SPDX-License-Identifier: MIT
// Package softimpute: the end-to-end estimation pipeline.
//
// Estimate chains the whole procedure: validate → standardize → hold out →
// build the λ-grid → sweep and select → final refit → assemble the completed
// matrix. Every stage is deterministic given Options.Seed, so two runs with
// equal inputs and options agree bit for bit.

package softimpute

import (
	"fmt"

	"github.com/katalvlaran/rankfill/holdout"
	"github.com/katalvlaran/rankfill/matrix"
	"github.com/katalvlaran/rankfill/zscore"
)

// Estimate completes a partially observed matrix end to end and returns the
// standardized completion together with everything needed to audit it: the
// per-column transform, the final model, the full selection path and the
// held-out cells the path was scored on.
//
// Unit contract: Completed, Held, the path RMSEs and the λ values all live
// in standardized (z-score) units. Use Result.Stats.Invert to map the
// completion back to the input's original units; keeping the inverse
// explicit lets callers compare runs on a common scale first.
//
// Observed cells pass through exactly: for every cell observed in x,
// Completed carries the standardized input value, never a model smoothing
// of it. Only missing cells are filled from the model.
//
// Errors:
//   - ErrBadOptions for an out-of-domain Options field.
//   - matrix.ErrNilMatrix / ErrEmptyRow / ErrEmptyCol for structural gaps.
//   - zscore.ErrDegenerateColumn when a column cannot be standardized.
//   - holdout.ErrInsufficientData when a split would starve a row or column.
//   - ErrNumericalInstability if the numerics break down. Non-convergence
//     is NOT an error; check Result.Converged and the per-trial flags.
//
// Complexity: O(GridSize · MaxIterations · r·c·min(r,c)).
func Estimate(x *matrix.Masked, opts Options) (*Result, error) {
	// Stage 1 (Validate) - options first, then the instance: a nil matrix,
	// an empty row or an empty column can never be completed.
	if err := validateOptions(opts); err != nil {
		return nil, err
	}
	if err := matrix.ValidateMasked(x); err != nil {
		return nil, err
	}
	if err := matrix.ValidateCoverage(x); err != nil {
		return nil, err
	}

	// Stage 2 (Standardize) - per-column z-scores over observed cells only.
	// Shrinkage treats all columns through one λ, so they must share a scale.
	z, stats, err := zscore.Standardize(x)
	if err != nil {
		return nil, fmt.Errorf("Estimate: %w", err)
	}

	// Stage 3 (Hold out) - reproducible validation split driven by Seed.
	train, held, err := holdout.Split(z, opts.HoldoutFraction, holdout.NewRNG(opts.Seed))
	if err != nil {
		return nil, fmt.Errorf("Estimate: %w", err)
	}

	// Stage 4 (Grid) - anchor the sweep at the exact collapse level λmax.
	lambdaMax, err := LambdaMax(z, train)
	if err != nil {
		return nil, fmt.Errorf("Estimate: %w", err)
	}
	grid, err := Grid(lambdaMax, opts.LambdaFloor, opts.GridSize)
	if err != nil {
		return nil, fmt.Errorf("Estimate: %w", err)
	}

	// Stage 5 (Select) - sweep the path, score on held-out cells.
	path, err := SelectRank(z, train, held, grid, opts)
	if err != nil {
		return nil, err
	}

	// Stage 6 (Refit) - rebuild at the selected rank on ALL observed cells;
	// the held-out fifth rejoins the fit once selection is done.
	model, err := Finalize(z, path.Best.Rank, opts)
	if err != nil {
		return nil, err
	}

	// Stage 7 (Assemble) - observed values pass through, gaps come from the
	// model.
	completed, err := assembleCompleted(z, model)
	if err != nil {
		return nil, err
	}

	return &Result{
		Completed: completed,
		Stats:     stats,
		Model:     model,
		Path:      path,
		Held:      held,
		LambdaMax: lambdaMax,
		Grid:      grid,
		Lambda:    path.Best.Lambda,
		Rank:      path.Best.Rank,
		RMSE:      path.Best.RMSE,
		Converged: model.Converged,
	}, nil
}

// assembleCompleted merges the standardized observations with model
// predictions into a fully observed matrix. Masked.Set rejects NaN/±Inf,
// so a poisoned prediction surfaces here as ErrNumericalInstability rather
// than escaping into caller code.
//
// Complexity: O(r·c·k).
func assembleCompleted(z *matrix.Masked, model *Factorization) (*matrix.Masked, error) {
	var (
		rows = z.Rows()
		cols = z.Cols()
	)

	out, err := matrix.NewMasked(rows, cols)
	if err != nil {
		return nil, err
	}

	var (
		i, j int
		obs  bool
		v    float64
	)
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			obs, _ = z.Observed(i, j) // in-range by construction
			if obs {
				v, _ = z.At(i, j)
			} else {
				v = model.ValueAt(i, j)
			}
			if err = out.Set(i, j, v); err != nil {
				return nil, fmt.Errorf("Estimate: completed(%d,%d): %v: %w", i, j, err, ErrNumericalInstability)
			}
		}
	}

	return out, nil
}
