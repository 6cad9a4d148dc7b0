// SPDX-License-Identifier: MIT
// Package report: event-by-event correlation of a completed matrix.

package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/rankfill/matrix"
	"github.com/katalvlaran/rankfill/zscore"
)

const (
	methodCorrelations = "EventCorrelations"

	// minCorrRows is the fewest samples Pearson correlation is defined on.
	minCorrRows = 2

	// corrHeaderEvent labels the first CSV column; corrPrecision is the
	// fixed fraction-digit count of the exported coefficients.
	corrHeaderEvent = "event"
	corrPrecision   = 6
)

// CorrMatrix is a labeled Pearson correlation matrix between event columns.
type CorrMatrix struct {
	// Events holds the column labels, in input order.
	Events []string

	vals *mat.SymDense
}

// EventCorrelations computes pairwise Pearson correlations between the
// columns of a fully observed matrix. Competitors are the samples, events
// the variables. Correlations are invariant under per-column affine maps,
// so standardized and original units give the same answer.
//
// Errors: matrix.ErrNilMatrix, ErrTooFewRows, matrix.ErrDimensionMismatch
// when labels do not match the column count, ErrNotCompleted on the first
// unobserved cell, zscore.ErrDegenerateColumn when a zero-variance column
// makes a coefficient undefined.
//
// Complexity: O(r·c²) time, O(c²) space.
func EventCorrelations(m *matrix.Masked, events []string) (*CorrMatrix, error) {
	// Stage 1 - validation.
	if err := matrix.ValidateMasked(m); err != nil {
		return nil, fmt.Errorf("%s: %w", methodCorrelations, err)
	}
	if m.Rows() < minCorrRows {
		return nil, fmt.Errorf("%s: %d rows: %w", methodCorrelations, m.Rows(), ErrTooFewRows)
	}
	if len(events) != m.Cols() {
		return nil, fmt.Errorf("%s: %d labels for %d columns: %w",
			methodCorrelations, len(events), m.Cols(), matrix.ErrDimensionMismatch)
	}

	// Stage 2 - dense view; every cell must be present.
	var (
		rows  = m.Rows()
		cols  = m.Cols()
		dense = mat.NewDense(rows, cols, nil)
		on    bool
		v     float64
		i, j  int
	)
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			on, _ = m.Observed(i, j)
			if !on {
				return nil, fmt.Errorf("%s: (%d,%d): %w", methodCorrelations, i, j, ErrNotCompleted)
			}
			v, _ = m.At(i, j)
			dense.Set(i, j, v)
		}
	}

	// Stage 3 - reject zero-variance columns before the kernel: their
	// coefficients are undefined and would surface as NaN.
	colBuf := make([]float64, rows)
	for j = 0; j < cols; j++ {
		mat.Col(colBuf, j, dense)
		if stat.Variance(colBuf, nil) == 0 {
			return nil, fmt.Errorf("%s: column %d: %w", methodCorrelations, j, zscore.ErrDegenerateColumn)
		}
	}

	// Stage 4 - correlation kernel.
	out := mat.NewSymDense(cols, nil)
	stat.CorrelationMatrix(out, dense, nil)

	// Stage 5 - numerical backstop: no non-finite coefficient may leak into
	// artifacts.
	for i = 0; i < cols; i++ {
		for j = i; j < cols; j++ {
			v = out.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%s: (%d,%d) non-finite: %w", methodCorrelations, i, j, zscore.ErrDegenerateColumn)
			}
		}
	}

	return &CorrMatrix{Events: events, vals: out}, nil
}

// Dim returns the number of events.
func (c *CorrMatrix) Dim() int {
	return len(c.Events)
}

// At returns the correlation between events i and j. Indices must be in
// [0, Dim); out-of-range indices panic, as on the underlying matrix.
func (c *CorrMatrix) At(i, j int) float64 {
	return c.vals.At(i, j)
}

// WriteCSV serializes the matrix with event labels on both axes, fixed
// 6-decimal coefficients.
//
// Complexity: O(c²).
func (c *CorrMatrix) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	head := append([]string{corrHeaderEvent}, c.Events...)
	if err := cw.Write(head); err != nil {
		return fmt.Errorf("WriteCSV: header: %w", err)
	}

	var (
		rec  = make([]string, 1+len(c.Events))
		i, j int
	)
	for i = 0; i < len(c.Events); i++ {
		rec[0] = c.Events[i]
		for j = 0; j < len(c.Events); j++ {
			rec[1+j] = strconv.FormatFloat(c.vals.At(i, j), 'f', corrPrecision, 64)
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("WriteCSV: row %s: %w", c.Events[i], err)
		}
	}
	cw.Flush()

	return cw.Error()
}
