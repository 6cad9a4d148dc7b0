// SPDX-License-Identifier: MIT
// Package dataset: observation-stream → matrix assembly and CSV export.
//
// Ordering contract: rows follow the first appearance of each competitor in
// the stream, columns the first appearance of each event. Identical input
// always produces the identical table, so downstream artifacts (CSV, run
// archive) are reproducible byte for byte.

package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/katalvlaran/rankfill/matrix"
)

// Table binds a masked matrix to the identifiers that label it.
type Table struct {
	// Competitors holds the row labels in first-appearance order.
	Competitors []string

	// Events holds the column labels in first-appearance order.
	Events []string

	// Matrix is the assembled observation matrix: one row per competitor,
	// one column per event, unobserved where no record exists.
	Matrix *matrix.Masked

	rowOf map[string]int // competitor → row index
	colOf map[string]int // event → column index
}

// Pivot assembles observations into a Table. Repeated (competitor, event)
// pairs are averaged, which is the conventional reduction when a competitor
// faced the same event several times.
//
// Errors: ErrEmptyDataset for no input, matrix sentinels if assembly fails.
//
// Complexity: O(n + r·c) time, O(r·c) space.
func Pivot(obs []Observation) (*Table, error) {
	// Stage 1 - validation.
	if len(obs) == 0 {
		return nil, fmt.Errorf("Pivot: %w", ErrEmptyDataset)
	}

	// Stage 2 - identifier discovery in first-appearance order.
	t := &Table{rowOf: map[string]int{}, colOf: map[string]int{}}

	var o Observation
	for _, o = range obs {
		if _, ok := t.rowOf[o.Competitor]; !ok {
			t.rowOf[o.Competitor] = len(t.Competitors)
			t.Competitors = append(t.Competitors, o.Competitor)
		}
		if _, ok := t.colOf[o.Event]; !ok {
			t.colOf[o.Event] = len(t.Events)
			t.Events = append(t.Events, o.Event)
		}
	}

	// Stage 3 - accumulate duplicates, then average.
	var (
		cols  = len(t.Events)
		sums  = make([]float64, len(t.Competitors)*cols)
		hits  = make([]int, len(t.Competitors)*cols)
		idx   int
		cells int
	)
	for _, o = range obs {
		idx = t.rowOf[o.Competitor]*cols + t.colOf[o.Event]
		if hits[idx] == 0 {
			cells++
		}
		sums[idx] += o.Score
		hits[idx]++
	}

	// Stage 4 - materialize the masked matrix.
	m, err := matrix.NewMasked(len(t.Competitors), cols)
	if err != nil {
		return nil, fmt.Errorf("Pivot: %w", err)
	}

	var r, c int
	for r = 0; r < len(t.Competitors); r++ {
		for c = 0; c < cols; c++ {
			idx = r*cols + c
			if hits[idx] == 0 {
				continue // never observed
			}
			if err = m.Set(r, c, sums[idx]/float64(hits[idx])); err != nil {
				return nil, fmt.Errorf("Pivot: %s/%s: %w", t.Competitors[r], t.Events[c], err)
			}
		}
	}
	t.Matrix = m

	return t, nil
}

// RowOf returns the row index of a competitor.
func (t *Table) RowOf(competitor string) (int, bool) {
	i, ok := t.rowOf[competitor]

	return i, ok
}

// ColOf returns the column index of an event.
func (t *Table) ColOf(event string) (int, bool) {
	i, ok := t.colOf[event]

	return i, ok
}

// WriteCompleted serializes a matrix under this table's labels: a header of
// "competitor" plus the event names, then one row per competitor with fixed
// 6-decimal values. Unobserved cells serialize as empty fields, so partial
// matrices (the raw input) and completions share one exporter.
//
// Errors: matrix.ErrNilMatrix, matrix.ErrDimensionMismatch when the matrix
// does not match the table's shape.
//
// Complexity: O(r·c).
func (t *Table) WriteCompleted(w io.Writer, m *matrix.Masked) error {
	// Stage 1 - shape guard against label mismatch.
	if err := matrix.ValidateMasked(m); err != nil {
		return fmt.Errorf("WriteCompleted: %w", err)
	}
	if m.Rows() != len(t.Competitors) || m.Cols() != len(t.Events) {
		return fmt.Errorf("WriteCompleted: matrix %dx%d vs table %dx%d: %w",
			m.Rows(), m.Cols(), len(t.Competitors), len(t.Events), matrix.ErrDimensionMismatch)
	}

	// Stage 2 - header.
	cw := csv.NewWriter(w)
	head := append([]string{headerCompetitor}, t.Events...)
	if err := cw.Write(head); err != nil {
		return fmt.Errorf("WriteCompleted: header: %w", err)
	}

	// Stage 3 - one row per competitor.
	var (
		rec = make([]string, 1+len(t.Events))
		r   = 0
		c   int
		on  bool
		v   float64
	)
	for r = 0; r < len(t.Competitors); r++ {
		rec[0] = t.Competitors[r]
		for c = 0; c < len(t.Events); c++ {
			on, _ = m.Observed(r, c)
			if !on {
				rec[1+c] = "" // unobserved stays blank
				continue
			}
			v, _ = m.At(r, c)
			rec[1+c] = strconv.FormatFloat(v, 'f', scorePrecision, 64)
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("WriteCompleted: row %s: %w", t.Competitors[r], err)
		}
	}
	cw.Flush()

	return cw.Error()
}
