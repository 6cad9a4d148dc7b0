// Package matrix_test contains unit tests for the Masked observation matrix.
package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/rankfill/matrix"
)

// TestNewMaskedInvalidShape ensures that NewMasked rejects non-positive dimensions.
func TestNewMaskedInvalidShape(t *testing.T) {
	_, err := matrix.NewMasked(0, 5)             // attempt to create with zero rows
	require.ErrorIs(t, err, matrix.ErrBadShape)  // expect ErrBadShape

	_, err = matrix.NewMasked(5, -1)             // attempt to create with negative columns
	require.ErrorIs(t, err, matrix.ErrBadShape)  // expect ErrBadShape
}

// TestMaskedRowsCols verifies that Rows() and Cols() return the requested shape.
func TestMaskedRowsCols(t *testing.T) {
	m, err := matrix.NewMasked(3, 4) // create a 3x4 matrix
	require.NoError(t, err)          // assert creation succeeded

	require.Equal(t, 3, m.Rows()) // assert Rows() equals expected rows
	require.Equal(t, 4, m.Cols()) // assert Cols() equals expected cols
}

// TestMaskedStartsAllMissing verifies that a fresh matrix observes nothing.
func TestMaskedStartsAllMissing(t *testing.T) {
	m, err := matrix.NewMasked(2, 2)
	require.NoError(t, err)

	require.Equal(t, 0, m.ObservedCount()) // no cell observed yet

	seen, err := m.Observed(1, 1)
	require.NoError(t, err)
	require.False(t, seen) // every cell starts missing
}

// TestMaskedOutOfRange ensures indexers return ErrOutOfRange on invalid access.
func TestMaskedOutOfRange(t *testing.T) {
	m, err := matrix.NewMasked(2, 2)
	require.NoError(t, err)

	_, err = m.At(-1, 0)                          // negative row index
	require.ErrorIs(t, err, matrix.ErrOutOfRange) // expect ErrOutOfRange

	_, err = m.Observed(0, 2)                     // column index out of range
	require.ErrorIs(t, err, matrix.ErrOutOfRange) // expect ErrOutOfRange

	err = m.Set(2, 0, 1.23)                       // row index out of range
	require.ErrorIs(t, err, matrix.ErrOutOfRange) // expect ErrOutOfRange

	err = m.Clear(0, -1)                          // negative column index
	require.ErrorIs(t, err, matrix.ErrOutOfRange) // expect ErrOutOfRange
}

// TestMaskedSetObserveClear validates the observe/clear lifecycle of a cell.
func TestMaskedSetObserveClear(t *testing.T) {
	m, err := matrix.NewMasked(2, 3)
	require.NoError(t, err)

	err = m.Set(1, 2, 7.89) // observe cell (1,2)
	require.NoError(t, err)

	val, err := m.At(1, 2)
	require.NoError(t, err)
	require.Equal(t, 7.89, val) // stored value round-trips

	seen, err := m.Observed(1, 2)
	require.NoError(t, err)
	require.True(t, seen) // cell is now observed

	err = m.Clear(1, 2) // forget the cell again
	require.NoError(t, err)

	seen, err = m.Observed(1, 2)
	require.NoError(t, err)
	require.False(t, seen) // cell is missing again

	val, err = m.At(1, 2)
	require.NoError(t, err)
	require.Equal(t, 0.0, val) // storage reset to the default
}

// TestMaskedSetRejectsNonFinite enforces the finite-value policy on Set.
func TestMaskedSetRejectsNonFinite(t *testing.T) {
	m, err := matrix.NewMasked(2, 2)
	require.NoError(t, err)

	err = m.Set(0, 0, math.NaN())             // NaN violates the policy
	require.ErrorIs(t, err, matrix.ErrNaNInf) // expect ErrNaNInf

	err = m.Set(0, 0, math.Inf(1))            // +Inf violates the policy
	require.ErrorIs(t, err, matrix.ErrNaNInf) // expect ErrNaNInf

	err = m.Set(0, 0, math.Inf(-1))           // -Inf violates the policy
	require.ErrorIs(t, err, matrix.ErrNaNInf) // expect ErrNaNInf

	seen, err := m.Observed(0, 0)
	require.NoError(t, err)
	require.False(t, seen) // rejected writes must not mark the cell observed
}

// TestMaskedCounts verifies ObservedCount, RowCounts and ColCounts tallies.
func TestMaskedCounts(t *testing.T) {
	m, err := matrix.NewMasked(2, 3)
	require.NoError(t, err)

	// Observe an L-shaped pattern:
	//   [x, x, .]
	//   [x, ., .]
	require.NoError(t, m.Set(0, 0, 1))
	require.NoError(t, m.Set(0, 1, 2))
	require.NoError(t, m.Set(1, 0, 3))

	require.Equal(t, 3, m.ObservedCount())
	require.Equal(t, []int{2, 1}, m.RowCounts())
	require.Equal(t, []int{2, 1, 0}, m.ColCounts())
}

// TestMaskedObservedPositionsOrder pins the stable row-major enumeration order.
func TestMaskedObservedPositionsOrder(t *testing.T) {
	m, err := matrix.NewMasked(2, 3)
	require.NoError(t, err)

	// Observe cells deliberately out of order; enumeration must not care.
	require.NoError(t, m.Set(1, 2, 1))
	require.NoError(t, m.Set(0, 1, 2))
	require.NoError(t, m.Set(1, 0, 3))

	want := []matrix.Pos{{Row: 0, Col: 1}, {Row: 1, Col: 0}, {Row: 1, Col: 2}}
	require.Equal(t, want, m.ObservedPositions()) // row-major: (0,1) < (1,0) < (1,2)
}

// TestMaskedCloneIndependence ensures Clone() returns a deep copy with its own mask.
func TestMaskedCloneIndependence(t *testing.T) {
	m, err := matrix.NewMasked(2, 2)
	require.NoError(t, err)
	require.NoError(t, m.Set(0, 0, 1.0))

	clone := m.Clone()                  // deep copy
	require.NoError(t, clone.Set(0, 0, 3.0))
	require.NoError(t, clone.Set(1, 1, 4.0))

	origVal, err := m.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, 1.0, origVal) // original value untouched

	seen, err := m.Observed(1, 1)
	require.NoError(t, err)
	require.False(t, seen) // original mask untouched
}

// TestMaskedString renders observed values and "." for missing cells.
func TestMaskedString(t *testing.T) {
	m, err := matrix.NewMasked(2, 2)
	require.NoError(t, err)
	require.NoError(t, m.Set(0, 0, 1.5))

	require.Equal(t, "[1.5, .]\n[., .]\n", m.String())
}
