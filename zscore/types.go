package zscore

import "errors"

// ErrDegenerateColumn is returned when a column cannot be standardized:
// zero observed entries, a single observed entry, zero variance, or
// non-finite statistics. Callers match it via errors.Is; the wrapped
// message names the offending column and the reason.
var ErrDegenerateColumn = errors.New("zscore: degenerate column")

// Stats holds the per-column standardization transform fitted by
// Standardize. Mean and Std have one entry per column; Std entries are
// strictly positive by construction.
type Stats struct {
	Mean []float64
	Std  []float64
}

// Columns returns the number of columns the transform was fitted on.
func (s *Stats) Columns() int {
	return len(s.Mean)
}
