// SPDX-License-Identifier: MIT
// Package softimpute: regularization-path sweep and model selection.
//
// Each grid point is an independent, deterministic Complete run, so the
// sweep parallelizes trivially: workers write disjoint slots of the trial
// slice by grid index, and the selection scan below is order-invariant.
// Sequential and parallel sweeps therefore pick the same model, bit for bit.

package softimpute

import (
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/rankfill/holdout"
	"github.com/katalvlaran/rankfill/matrix"
)

// SelectRank sweeps the shrinkage grid, scores every fitted model on the
// held-out cells, and returns the full path plus the winning trial.
//
// Selection rule: minimum held-out RMSE; exact ties go to the larger λ
// (the simpler model). The scan compares values, not positions, so the
// outcome does not depend on trial completion order.
//
// Contracts:
//   - grid non-empty, strictly descending, every level a valid λ.
//   - held non-empty: with nothing to score, selection is undefined.
//   - held cells must lie inside the matrix and outside the training mask.
//
// Errors: ErrBadGrid, ErrNoHeldOut, ErrBadOptions, plus anything Complete
// returns for an individual level.
func SelectRank(x *matrix.Masked, train *matrix.Mask, held []holdout.Cell, grid []float64, opts Options) (*PathResult, error) {
	// Stage 1 - validation.
	if err := validateOptions(opts); err != nil {
		return nil, err
	}
	if err := validateInstance(x, train); err != nil {
		return nil, err
	}
	if err := validateGrid(grid); err != nil {
		return nil, err
	}
	if len(held) == 0 {
		return nil, fmt.Errorf("SelectRank: no held-out cells: %w", ErrNoHeldOut)
	}
	if err := validateHeld(x, train, held); err != nil {
		return nil, err
	}

	// Stage 2 - sweep. Trials land in their grid slot regardless of which
	// worker finishes first.
	trials := make([]Trial, len(grid))

	runOne := func(i int) error {
		model, err := Complete(x, train, grid[i], opts)
		if err != nil {
			return fmt.Errorf("SelectRank: λ[%d]=%v: %w", i, grid[i], err)
		}
		trials[i] = Trial{
			Lambda:     grid[i],
			RMSE:       heldRMSE(model, held),
			Rank:       model.Rank(opts.RankEpsilon),
			Iterations: model.Iterations,
			Converged:  model.Converged,
		}
		return nil
	}

	if opts.Workers > 1 {
		var g errgroup.Group
		g.SetLimit(opts.Workers)

		for i := 0; i < len(grid); i++ {
			i := i // per-iteration copy; required for pre-1.22 loopvar semantics
			g.Go(func() error { return runOne(i) })
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		var i int
		for i = 0; i < len(grid); i++ {
			if err := runOne(i); err != nil {
				return nil, err
			}
		}
	}

	// Stage 3 - order-invariant argmin with the tie toward larger λ.
	best := 0

	var i int
	for i = 1; i < len(trials); i++ {
		if trials[i].RMSE < trials[best].RMSE ||
			(trials[i].RMSE == trials[best].RMSE && trials[i].Lambda > trials[best].Lambda) {
			best = i
		}
	}

	return &PathResult{Trials: trials, Best: trials[best], BestIndex: best}, nil
}

// heldRMSE scores a fitted model against held-out cells: the root of the
// mean squared gap between the held value and the model's prediction.
func heldRMSE(model *Factorization, held []holdout.Cell) float64 {
	var (
		sum float64
		c   holdout.Cell
		gap float64
	)
	for _, c = range held {
		gap = c.Value - model.ValueAt(c.Row, c.Col)
		sum += gap * gap
	}

	return math.Sqrt(sum / float64(len(held)))
}

// validateGrid rejects an empty or non-descending grid and re-checks each
// level with the single-λ validator.
func validateGrid(grid []float64) error {
	if len(grid) == 0 {
		return fmt.Errorf("SelectRank: empty grid: %w", ErrBadGrid)
	}

	var i int
	for i = 0; i < len(grid); i++ {
		if err := validateLambda(grid[i]); err != nil {
			return fmt.Errorf("SelectRank: grid[%d]: %w", i, err)
		}
		if i > 0 && grid[i] >= grid[i-1] {
			return fmt.Errorf("SelectRank: grid[%d]=%v not below grid[%d]=%v: %w",
				i, grid[i], i-1, grid[i-1], ErrBadGrid)
		}
	}

	return nil
}

// validateHeld confirms every held cell is inside the matrix, finite, and
// not in the training mask; a cell the model trained on would leak into
// its own score.
func validateHeld(x *matrix.Masked, train *matrix.Mask, held []holdout.Cell) error {
	var (
		i int
		c holdout.Cell
	)
	for i, c = range held {
		if c.Row < 0 || c.Row >= x.Rows() || c.Col < 0 || c.Col >= x.Cols() {
			return fmt.Errorf("SelectRank: held[%d] at (%d,%d): %w", i, c.Row, c.Col, matrix.ErrOutOfRange)
		}
		if math.IsNaN(c.Value) || math.IsInf(c.Value, 0) {
			return fmt.Errorf("SelectRank: held[%d] at (%d,%d): %w", i, c.Row, c.Col, matrix.ErrNaNInf)
		}
		on, _ := train.At(c.Row, c.Col)
		if on {
			return fmt.Errorf("SelectRank: held[%d] at (%d,%d) also in training mask: %w",
				i, c.Row, c.Col, ErrNoHeldOut)
		}
	}

	return nil
}
