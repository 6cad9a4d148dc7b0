// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set (unified, consistent).
// This file defines ONLY package-level sentinel errors used across the matrix
// package. All methods MUST return these sentinels and tests MUST check them
// via errors.Is. No method should panic on user-triggered error conditions.
// Panics are reserved for programmer errors in private helpers (if any).

package matrix

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for consistency and to allow
// easy grepping across logs. DO NOT %w wrap these sentinels when returning
// directly; if context is essential, wrap with fmt.Errorf("ctx: %w", ErrX)
// at the outer boundary — callers will still use errors.Is to match.

var (
	// ErrBadShape is returned when a requested shape is invalid (r<=0 or c<=0).
	// Constructors must validate before allocation.
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Public indexers (At/Set/Clear/Observed) MUST return this, not panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g. a mask paired with a matrix of a different shape.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNaNInf signals a NaN or ±Inf value was passed where finite values
	// are required by the numeric policy (Set, ingestion).
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil *Masked or *Mask (receiver or argument)
	// was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrEmptyRow signals a row with zero observed entries where coverage is
	// required (standardization, solver input).
	ErrEmptyRow = errors.New("matrix: row has no observed entries")

	// ErrEmptyCol signals a column with zero observed entries where coverage is
	// required (standardization, solver input).
	ErrEmptyCol = errors.New("matrix: column has no observed entries")

	// ErrMaskMismatch signals that a training mask selects a cell the matrix
	// does not observe. Training masks must be subsets of the observation mask.
	ErrMaskMismatch = errors.New("matrix: mask selects unobserved cell")
)
