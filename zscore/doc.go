// Package zscore standardizes partially observed matrices column by column.
//
// Scores from different events live on different scales; before any low-rank
// reasoning they are mapped to z-scores using only the observed entries of
// each column:
//
//	z = (x - mean_j) / std_j
//
// where mean_j and std_j are the sample mean and sample standard deviation
// (n−1 denominator) of column j's observed values. Missing entries remain
// missing: standardization is mask-preserving and never invents data.
//
// The returned Stats captures the per-column transform so callers can map
// model output back to original units (Invert) or push new observations into
// the same standardized frame (Apply).
//
// Errors:
//   - ErrDegenerateColumn — a column cannot be standardized: it has no
//     observed entries, fewer than two observed entries, zero variance, or
//     non-finite statistics. The error message names the offending column.
//     This is fatal; nothing is silently dropped.
//
// All functions are pure: inputs are never mutated.
package zscore
