// SPDX-License-Identifier: MIT
// Package zscore: column standardization over observed entries.
//
// Design principles:
//   - Deterministic, side-effect free functions; inputs are never mutated.
//   - Only sentinel errors (ErrDegenerateColumn plus matrix sentinels); no panics
//     on user input.
//   - One O(r*c) gather pass per column; statistics delegated to gonum/stat.

package zscore

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/rankfill/matrix"
)

// minColumnSamples is the smallest observed count for which a sample standard
// deviation (n−1 denominator) is defined.
const minColumnSamples = 2

// degenerateErrorf tags ErrDegenerateColumn with the offending column and reason.
func degenerateErrorf(col int, reason string) error {
	return fmt.Errorf("Standardize: column %d: %s: %w", col, reason, ErrDegenerateColumn)
}

// Standardize maps every observed entry of m to a z-score using per-column
// sample statistics, and returns the standardized copy together with the
// fitted Stats.
//
// Contracts:
//   - m must be non-nil.
//   - Every column needs at least minColumnSamples observed entries and
//     nonzero variance; otherwise ErrDegenerateColumn.
//   - The observation mask of the result equals the mask of m.
//
// Errors: matrix.ErrNilMatrix, ErrDegenerateColumn.
//
// Complexity: O(r*c) time, O(r*c) space for the standardized copy.
func Standardize(m *matrix.Masked) (*matrix.Masked, *Stats, error) {
	// Stage 1 - validate input.
	if err := matrix.ValidateMasked(m); err != nil {
		return nil, nil, err
	}

	var (
		rows = m.Rows()
		cols = m.Cols()
	)

	// Stage 2 - fit per-column statistics over observed entries only.
	stats := &Stats{
		Mean: make([]float64, cols),
		Std:  make([]float64, cols),
	}
	vals := make([]float64, 0, rows) // scratch, reused across columns

	var (
		i, j      int
		v         float64
		seen      bool
		mean, std float64
	)
	for j = 0; j < cols; j++ { // columns ascending; deterministic
		vals = vals[:0]
		for i = 0; i < rows; i++ { // gather observed values of column j
			seen, _ = m.Observed(i, j) // bounds are valid by construction
			if !seen {
				continue
			}
			v, _ = m.At(i, j)
			vals = append(vals, v)
		}

		if len(vals) == 0 {
			return nil, nil, degenerateErrorf(j, "no observed entries")
		}
		if len(vals) < minColumnSamples {
			return nil, nil, degenerateErrorf(j, "fewer than 2 observed entries")
		}

		mean, std = stat.MeanStdDev(vals, nil) // sample std, n−1 denominator
		if std == 0 {
			return nil, nil, degenerateErrorf(j, "zero variance")
		}
		if math.IsNaN(mean) || math.IsInf(mean, 0) || math.IsNaN(std) || math.IsInf(std, 0) {
			return nil, nil, degenerateErrorf(j, "non-finite statistics")
		}

		stats.Mean[j] = mean
		stats.Std[j] = std
	}

	// Stage 3 - apply the fitted transform to a fresh copy.
	out, err := stats.Apply(m)
	if err != nil {
		return nil, nil, err
	}

	return out, stats, nil
}

// Apply standardizes m's observed entries with the already-fitted transform.
// Use it to push fresh observations into the frame of a previous fit.
//
// Contracts:
//   - m must be non-nil with m.Cols() == s.Columns().
//   - Mask-preserving; m is not mutated.
//
// Errors: matrix.ErrNilMatrix, matrix.ErrDimensionMismatch.
//
// Complexity: O(r*c).
func (s *Stats) Apply(m *matrix.Masked) (*matrix.Masked, error) {
	if err := matrix.ValidateMasked(m); err != nil {
		return nil, err
	}
	if m.Cols() != s.Columns() {
		return nil, fmt.Errorf("Stats.Apply: %w", matrix.ErrDimensionMismatch)
	}

	out, err := matrix.NewMasked(m.Rows(), m.Cols())
	if err != nil {
		return nil, err
	}

	var (
		i, j int
		v    float64
		seen bool
	)
	for i = 0; i < m.Rows(); i++ { // fixed row-major order
		for j = 0; j < m.Cols(); j++ {
			seen, _ = m.Observed(i, j)
			if !seen {
				continue // missing stays missing
			}
			v, _ = m.At(i, j)
			if err = out.Set(i, j, (v-s.Mean[j])/s.Std[j]); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}

// Invert maps standardized values back to original units, cell by cell:
// x = z*std_j + mean_j. Mask-preserving; m is not mutated.
//
// Errors: matrix.ErrNilMatrix, matrix.ErrDimensionMismatch.
//
// Complexity: O(r*c).
func (s *Stats) Invert(m *matrix.Masked) (*matrix.Masked, error) {
	if err := matrix.ValidateMasked(m); err != nil {
		return nil, err
	}
	if m.Cols() != s.Columns() {
		return nil, fmt.Errorf("Stats.Invert: %w", matrix.ErrDimensionMismatch)
	}

	out, err := matrix.NewMasked(m.Rows(), m.Cols())
	if err != nil {
		return nil, err
	}

	var (
		i, j int
		v    float64
		seen bool
	)
	for i = 0; i < m.Rows(); i++ {
		for j = 0; j < m.Cols(); j++ {
			seen, _ = m.Observed(i, j)
			if !seen {
				continue
			}
			v, _ = m.At(i, j)
			if err = out.Set(i, j, v*s.Std[j]+s.Mean[j]); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}

// InvertAt maps a single standardized value in column col back to original
// units. Useful when exporting completed cells one at a time.
//
// Errors: matrix.ErrOutOfRange for an invalid column index.
//
// Complexity: O(1).
func (s *Stats) InvertAt(col int, z float64) (float64, error) {
	if col < 0 || col >= s.Columns() {
		return 0, fmt.Errorf("Stats.InvertAt: column %d: %w", col, matrix.ErrOutOfRange)
	}

	return z*s.Std[col] + s.Mean[col], nil
}
