// Package matrix_test contains unit tests for the centralized validators.
package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/rankfill/matrix"
)

// fullRect returns an r×c Masked with every cell observed (value = flat index).
func fullRect(t *testing.T, rows, cols int) *matrix.Masked {
	t.Helper()

	m, err := matrix.NewMasked(rows, cols)
	require.NoError(t, err)

	var i, j int
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			require.NoError(t, m.Set(i, j, float64(i*cols+j)))
		}
	}

	return m
}

// TestValidateMaskedNil verifies the nil guard sentinel.
func TestValidateMaskedNil(t *testing.T) {
	require.ErrorIs(t, matrix.ValidateMasked(nil), matrix.ErrNilMatrix)
	require.NoError(t, matrix.ValidateMasked(fullRect(t, 1, 1)))
}

// TestValidateMaskNil verifies the nil guard sentinel for masks.
func TestValidateMaskNil(t *testing.T) {
	require.ErrorIs(t, matrix.ValidateMask(nil), matrix.ErrNilMatrix)

	k, err := matrix.NewMask(1, 1)
	require.NoError(t, err)
	require.NoError(t, matrix.ValidateMask(k))
}

// TestValidateSameShape covers row and column mismatches between operands.
func TestValidateSameShape(t *testing.T) {
	a := fullRect(t, 2, 3)
	b := fullRect(t, 2, 3)
	require.NoError(t, matrix.ValidateSameShape(a, b))

	c := fullRect(t, 3, 3) // row mismatch
	require.ErrorIs(t, matrix.ValidateSameShape(a, c), matrix.ErrDimensionMismatch)

	d := fullRect(t, 2, 2) // column mismatch
	require.ErrorIs(t, matrix.ValidateSameShape(a, d), matrix.ErrDimensionMismatch)

	// Mask vs Masked comparison goes through the same Shaped surface.
	k, err := matrix.NewMask(2, 3)
	require.NoError(t, err)
	require.NoError(t, matrix.ValidateSameShape(a, k))
}

// TestValidateCoverage flags empty rows and empty columns with their index.
func TestValidateCoverage(t *testing.T) {
	require.ErrorIs(t, matrix.ValidateCoverage(nil), matrix.ErrNilMatrix)

	full := fullRect(t, 2, 2)
	require.NoError(t, matrix.ValidateCoverage(full))

	// Clear all of row 1 → ErrEmptyRow.
	rowGap := fullRect(t, 2, 2)
	require.NoError(t, rowGap.Clear(1, 0))
	require.NoError(t, rowGap.Clear(1, 1))
	err := matrix.ValidateCoverage(rowGap)
	require.ErrorIs(t, err, matrix.ErrEmptyRow)
	require.Contains(t, err.Error(), "row 1") // offending index is reported

	// Clear all of column 0 → ErrEmptyCol.
	colGap := fullRect(t, 2, 2)
	require.NoError(t, colGap.Clear(0, 0))
	require.NoError(t, colGap.Clear(1, 0))
	err = matrix.ValidateCoverage(colGap)
	require.ErrorIs(t, err, matrix.ErrEmptyCol)
	require.Contains(t, err.Error(), "column 0")
}

// TestValidateTrainMask enforces shape agreement and the subset contract.
func TestValidateTrainMask(t *testing.T) {
	m := fullRect(t, 2, 2)
	require.NoError(t, m.Clear(1, 1)) // (1,1) is missing in the matrix

	require.ErrorIs(t, matrix.ValidateTrainMask(nil, nil), matrix.ErrNilMatrix)
	require.ErrorIs(t, matrix.ValidateTrainMask(m, nil), matrix.ErrNilMatrix)

	wrong, err := matrix.NewMask(3, 2) // shape mismatch
	require.NoError(t, err)
	require.ErrorIs(t, matrix.ValidateTrainMask(m, wrong), matrix.ErrDimensionMismatch)

	ok, err := matrix.NewMask(2, 2) // selects only observed cells
	require.NoError(t, err)
	require.NoError(t, ok.Set(0, 0))
	require.NoError(t, ok.Set(1, 0))
	require.NoError(t, matrix.ValidateTrainMask(m, ok))

	bad := ok.Clone() // additionally selects the missing cell
	require.NoError(t, bad.Set(1, 1))
	err = matrix.ValidateTrainMask(m, bad)
	require.ErrorIs(t, err, matrix.ErrMaskMismatch)
	require.Contains(t, err.Error(), "(1,1)")
}
