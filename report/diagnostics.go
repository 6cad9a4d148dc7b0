// SPDX-License-Identifier: MIT
// Package report: the run record.

package report

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/rankfill/matrix"
	"github.com/katalvlaran/rankfill/softimpute"
)

// CurvePoint is one λ-grid evaluation in serialized form.
type CurvePoint struct {
	Lambda     float64 `json:"lambda"`
	RMSE       float64 `json:"rmse"`
	Rank       int     `json:"rank"`
	Iterations int     `json:"iterations"`
	Converged  bool    `json:"converged"`
}

// Diagnostics is the complete record of one completion run. Field order is
// the serialization order of WriteJSON.
type Diagnostics struct {
	// RunID and CreatedAt identify the run; FromResult stamps both.
	RunID     uuid.UUID `json:"run_id"`
	CreatedAt time.Time `json:"created_at"`

	// Rows, Cols and ObservedFraction describe the input matrix;
	// HeldOut is the validation-cell count, Seed the split seed.
	Rows             int     `json:"rows"`
	Cols             int     `json:"cols"`
	ObservedFraction float64 `json:"observed_fraction"`
	HeldOut          int     `json:"held_out"`
	Seed             int64   `json:"seed"`

	// LambdaMax through Converged summarize model selection and the final
	// refit. RMSE is in standardized units.
	LambdaMax float64 `json:"lambda_max"`
	Lambda    float64 `json:"lambda"`
	Rank      int     `json:"rank"`
	RMSE      float64 `json:"rmse"`
	Converged bool    `json:"converged"`

	// Curve is the full (λ, rmse, rank) path in grid order, with per-trial
	// iteration counts and convergence flags.
	Curve []CurvePoint `json:"curve"`
}

// FromResult assembles a Diagnostics record for an Estimate outcome on the
// given input matrix, stamped with a fresh RunID and the current UTC time.
//
// Errors: matrix.ErrNilMatrix for a nil input, ErrNilResult for a nil or
// path-less result.
//
// Complexity: O(grid) time and memory.
func FromResult(input *matrix.Masked, res *softimpute.Result, opts softimpute.Options) (*Diagnostics, error) {
	if err := matrix.ValidateMasked(input); err != nil {
		return nil, fmt.Errorf("FromResult: %w", err)
	}
	if res == nil || res.Path == nil {
		return nil, fmt.Errorf("FromResult: %w", ErrNilResult)
	}

	d := &Diagnostics{
		RunID:            uuid.New(),
		CreatedAt:        time.Now().UTC(),
		Rows:             input.Rows(),
		Cols:             input.Cols(),
		ObservedFraction: float64(input.ObservedCount()) / float64(input.Rows()*input.Cols()),
		HeldOut:          len(res.Held),
		Seed:             opts.Seed,
		LambdaMax:        res.LambdaMax,
		Lambda:           res.Lambda,
		Rank:             res.Rank,
		RMSE:             res.RMSE,
		Converged:        res.Converged,
		Curve:            CurveFromTrials(res.Path.Trials),
	}

	return d, nil
}

// CurveFromTrials converts a sweep's trials into serialized curve points,
// preserving grid order.
func CurveFromTrials(trials []softimpute.Trial) []CurvePoint {
	curve := make([]CurvePoint, len(trials))

	var t softimpute.Trial
	for i := range trials {
		t = trials[i]
		curve[i] = CurvePoint{
			Lambda:     t.Lambda,
			RMSE:       t.RMSE,
			Rank:       t.Rank,
			Iterations: t.Iterations,
			Converged:  t.Converged,
		}
	}

	return curve
}
