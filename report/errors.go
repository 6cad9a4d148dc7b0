// SPDX-License-Identifier: MIT
// Package report: sentinel error set.
//
// NOTE ON NAMING & PREFIXING
//   - Messages carry the "report: " package prefix so a wrapped chain reads
//     cleanly; match with errors.Is, never by string.
//   - Shape and coverage violations reuse the matrix package sentinels; a
//     degenerate (zero-variance) column reuses zscore.ErrDegenerateColumn,
//     the same condition callers already match at standardization time.

package report

import "errors"

var (
	// ErrNilResult is returned when a diagnostics record is requested for a
	// missing or incomplete pipeline result.
	ErrNilResult = errors.New("report: nil result")

	// ErrNotCompleted is returned when a computation requires a fully
	// observed matrix but found an unobserved cell.
	ErrNotCompleted = errors.New("report: matrix has unobserved cells")

	// ErrTooFewRows is returned when a statistic needs more rows than the
	// matrix has (correlation requires at least two samples).
	ErrTooFewRows = errors.New("report: too few rows")
)
