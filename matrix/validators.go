// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for common validation checks.
//  - Keep numeric pipelines minimal by delegating shape/nil/coverage checks here.
//  - Return sentinel errors (lightly tagged) so call sites can match uniformly.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate at most O(r+c).
//  - Coverage checks run one O(r*c) pass over the mask.
//
// Note:
//  - Each composite validator follows a fixed sequence (e.g. NotNil → Shape).
//  - Validators state what they assume (e.g. no nil check) in their contracts.

package matrix

import "fmt"

// Shaped is the minimal read surface shared by Masked and Mask; validators
// that only compare dimensions accept it.
type Shaped interface {
	Rows() int
	Cols() int
}

// validatorErrorf wraps an underlying error with the given validator tag.
// Used internally to maintain consistent labeling of sentinel violations.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateMasked ensures the matrix reference is non-nil.
//
// Returns ErrNilMatrix if m == nil.
// Complexity: O(1).
func ValidateMasked(m *Masked) error {
	if m == nil {
		return validatorErrorf("ValidateMasked", ErrNilMatrix)
	}

	return nil
}

// ValidateMask ensures the mask reference is non-nil.
//
// Returns ErrNilMatrix if k == nil.
// Complexity: O(1).
func ValidateMask(k *Mask) error {
	if k == nil {
		return validatorErrorf("ValidateMask", ErrNilMatrix)
	}

	return nil
}

// ValidateSameShape ensures operands a and b have equal dimensions.
//
// Implementation: assumes a and b are not nil (caller must ensure).
// Returns nil or wrapped ErrDimensionMismatch.
// Complexity: O(1).
func ValidateSameShape(a, b Shaped) error {
	if a.Rows() != b.Rows() {
		return validatorErrorf("ValidateSameShape: Rows", ErrDimensionMismatch)
	}
	if a.Cols() != b.Cols() {
		return validatorErrorf("ValidateSameShape: Columns", ErrDimensionMismatch)
	}

	return nil
}

// ValidateCoverage checks that every row and every column of m has at least
// one observed cell. Standardization and the solver both require it: an
// empty column has no statistics, an empty row has no anchor for imputation.
//
// Errors: ErrEmptyRow / ErrEmptyCol, wrapped with the offending index.
// Complexity: O(r*c) time, O(r+c) space.
func ValidateCoverage(m *Masked) error {
	if err := ValidateMasked(m); err != nil {
		return validatorErrorf("ValidateCoverage", err)
	}

	// One mask pass yields both tallies; deterministic ascending scan order
	// guarantees the first offending index is always the same one reported.
	rows := m.RowCounts()
	cols := m.ColCounts()

	var i int
	for i = 0; i < len(rows); i++ {
		if rows[i] == 0 {
			return fmt.Errorf("ValidateCoverage: row %d: %w", i, ErrEmptyRow)
		}
	}
	for i = 0; i < len(cols); i++ {
		if cols[i] == 0 {
			return fmt.Errorf("ValidateCoverage: column %d: %w", i, ErrEmptyCol)
		}
	}

	return nil
}

// ValidateTrainMask — Composite: NotNil(m) → NotNil(k) → SameShape → Subset.
// A training mask must only select cells the matrix actually observes;
// selecting an unobserved cell would feed storage defaults into the model.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch, ErrMaskMismatch (wrapped with
// the first offending position in row-major order).
// Complexity: O(r*c).
func ValidateTrainMask(m *Masked, k *Mask) error {
	if err := ValidateMasked(m); err != nil {
		return validatorErrorf("ValidateTrainMask", err)
	}
	if err := ValidateMask(k); err != nil {
		return validatorErrorf("ValidateTrainMask", err)
	}
	if err := ValidateSameShape(m, k); err != nil {
		return validatorErrorf("ValidateTrainMask", err)
	}

	// Subset scan in fixed row-major order.
	var (
		i, j int
		sel  bool
		seen bool
	)
	for i = 0; i < m.Rows(); i++ {
		for j = 0; j < m.Cols(); j++ {
			sel, _ = k.At(i, j)  // bounds already validated via shape check
			seen, _ = m.Observed(i, j)
			if sel && !seen {
				return fmt.Errorf("ValidateTrainMask: (%d,%d): %w", i, j, ErrMaskMismatch)
			}
		}
	}

	return nil
}
