// SPDX-License-Identifier: MIT
// Package softimpute: final refit at the selected rank.

package softimpute

import (
	"fmt"

	"github.com/katalvlaran/rankfill/matrix"
)

// Finalize refits the model on every observed cell of x at the rank chosen
// by the path sweep. The shrinkage that guided selection has done its job;
// the refit runs at FinalLambda (effectively zero) with the structural cap
// MaxRank=rank, so the selected rank is kept while the bias the shrinkage
// introduced into the fitted values is removed.
//
// A selected rank of 0 short-circuits: the best model predicts the column
// means (all zeros in standardized units), and no SVD can improve on that.
//
// Errors: ErrBadOptions, ErrBadRank, plus anything Complete returns.
//
// Complexity: O(MaxIterations · r·c·min(r,c)), rank 0 in O(1).
func Finalize(x *matrix.Masked, rank int, opts Options) (*Factorization, error) {
	// Stage 1 - validation.
	if err := validateOptions(opts); err != nil {
		return nil, err
	}
	if err := matrix.ValidateMasked(x); err != nil {
		return nil, err
	}
	if rank < 0 {
		return nil, fmt.Errorf("Finalize: rank %d < 0: %w", rank, ErrBadRank)
	}
	if m := min(x.Rows(), x.Cols()); rank > m {
		return nil, fmt.Errorf("Finalize: rank %d exceeds min dimension %d: %w", rank, m, ErrBadRank)
	}

	// Stage 2 - the rank-0 model needs no refit.
	if rank == 0 {
		return &Factorization{rows: x.Rows(), cols: x.Cols(), Iterations: 0, Converged: true}, nil
	}

	// Stage 3 - refit on the full observed mask with the rank cap active.
	refit := opts
	refit.MaxRank = rank

	model, err := Complete(x, x.Mask(), opts.FinalLambda, refit)
	if err != nil {
		return nil, fmt.Errorf("Finalize: %w", err)
	}

	return model, nil
}
