// Package matrix provides the masked-matrix primitives shared by the
// completion pipeline.
//
// It defines two storage types:
//
//   - Masked — a dense, row-major float64 matrix paired with an observation
//     mask. A cell is either observed (holds a finite value) or missing.
//     Missingness is explicit: there are no NaN sentinels, and every numeric
//     consumer consults the mask before using a value.
//   - Mask — a standalone boolean grid with the same flat indexing, used to
//     describe training subsets of observed cells.
//
// Numeric policy:
//   - Set rejects NaN and ±Inf (ErrNaNInf), so observed cells are always finite.
//   - At on a missing cell returns the storage default 0; consult Observed.
//
// All public indexers return sentinel errors and never panic on user input;
// callers match them via errors.Is. See errors.go for the full sentinel set.
//
// Use this package when an algorithm needs partial observation semantics on
// top of plain dense storage (standardization, holdout splitting, iterative
// imputation).
package matrix
