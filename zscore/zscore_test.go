// Package zscore_test contains unit tests for column standardization.
package zscore_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/rankfill/matrix"
	"github.com/katalvlaran/rankfill/zscore"
)

const tol = 1e-12

// buildMasked fills a matrix from a value grid; NaN in the grid means missing.
func buildMasked(t *testing.T, grid [][]float64) *matrix.Masked {
	t.Helper()

	m, err := matrix.NewMasked(len(grid), len(grid[0]))
	require.NoError(t, err)
	for i, row := range grid {
		for j, v := range row {
			if math.IsNaN(v) {
				continue // leave the cell missing
			}
			require.NoError(t, m.Set(i, j, v))
		}
	}

	return m
}

// TestStandardizeKnownStats checks the transform against hand-computed statistics.
func TestStandardizeKnownStats(t *testing.T) {
	// Column 0: {1, 3}  → mean 2, sample std √2.
	// Column 1: {10, 20} → mean 15, sample std √50.
	m := buildMasked(t, [][]float64{
		{1, 10},
		{3, 20},
	})

	out, stats, err := zscore.Standardize(m)
	require.NoError(t, err)

	assert.InDelta(t, 2.0, stats.Mean[0], tol)
	assert.InDelta(t, math.Sqrt2, stats.Std[0], tol)
	assert.InDelta(t, 15.0, stats.Mean[1], tol)
	assert.InDelta(t, math.Sqrt(50), stats.Std[1], tol)

	v, err := out.At(0, 0)
	require.NoError(t, err)
	assert.InDelta(t, -1/math.Sqrt2, v, tol) // (1-2)/√2

	v, err = out.At(1, 0)
	require.NoError(t, err)
	assert.InDelta(t, 1/math.Sqrt2, v, tol) // (3-2)/√2
}

// TestStandardizeMaskPreserved verifies that missing cells stay missing and
// the input matrix is not mutated.
func TestStandardizeMaskPreserved(t *testing.T) {
	nan := math.NaN()
	m := buildMasked(t, [][]float64{
		{1, 5},
		{3, nan},
		{5, 7},
	})

	out, _, err := zscore.Standardize(m)
	require.NoError(t, err)

	seen, err := out.Observed(1, 1)
	require.NoError(t, err)
	assert.False(t, seen) // (1,1) stays missing

	assert.Equal(t, m.ObservedCount(), out.ObservedCount())

	// Purity: original values untouched.
	v, err := m.At(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)
}

// TestStandardizeRoundTrip verifies Invert(Standardize(m)) ≈ m on observed cells.
func TestStandardizeRoundTrip(t *testing.T) {
	nan := math.NaN()
	m := buildMasked(t, [][]float64{
		{12.5, -3, 800},
		{7.25, nan, 640},
		{nan, 4.5, 1022},
		{9.75, 2.25, nan},
	})

	out, stats, err := zscore.Standardize(m)
	require.NoError(t, err)

	back, err := stats.Invert(out)
	require.NoError(t, err)

	for _, p := range m.ObservedPositions() {
		want, aerr := m.At(p.Row, p.Col)
		require.NoError(t, aerr)
		got, berr := back.At(p.Row, p.Col)
		require.NoError(t, berr)
		assert.InDelta(t, want, got, 1e-9, "cell (%d,%d)", p.Row, p.Col)
	}
	assert.Equal(t, m.ObservedCount(), back.ObservedCount()) // mask preserved both ways
}

// TestStandardizedColumnsAreZScores checks mean≈0 and sample std≈1 per column.
func TestStandardizedColumnsAreZScores(t *testing.T) {
	nan := math.NaN()
	m := buildMasked(t, [][]float64{
		{4, 100},
		{8, nan},
		{6, 300},
		{2, 260},
	})

	out, _, err := zscore.Standardize(m)
	require.NoError(t, err)

	for j := 0; j < out.Cols(); j++ {
		var sum, sumSq float64
		var n int
		for i := 0; i < out.Rows(); i++ {
			seen, oerr := out.Observed(i, j)
			require.NoError(t, oerr)
			if !seen {
				continue
			}
			v, aerr := out.At(i, j)
			require.NoError(t, aerr)
			sum += v
			sumSq += v * v
			n++
		}
		mean := sum / float64(n)
		assert.InDelta(t, 0.0, mean, tol, "column %d mean", j)
		sampleVar := (sumSq - float64(n)*mean*mean) / float64(n-1)
		assert.InDelta(t, 1.0, sampleVar, 1e-9, "column %d variance", j)
	}
}

// TestStandardizeDegenerateColumns covers every degeneracy reason.
func TestStandardizeDegenerateColumns(t *testing.T) {
	nan := math.NaN()

	// Column 1 has zero observed entries.
	empty := buildMasked(t, [][]float64{
		{1, nan},
		{3, nan},
	})
	_, _, err := zscore.Standardize(empty)
	require.ErrorIs(t, err, zscore.ErrDegenerateColumn)
	assert.Contains(t, err.Error(), "column 1")

	// Column 0 has a single observed entry: sample std undefined.
	single := buildMasked(t, [][]float64{
		{1, 4},
		{nan, 6},
	})
	_, _, err = zscore.Standardize(single)
	require.ErrorIs(t, err, zscore.ErrDegenerateColumn)
	assert.Contains(t, err.Error(), "column 0")

	// Column 0 observed values are all identical: zero variance.
	flat := buildMasked(t, [][]float64{
		{5, 1},
		{5, 2},
		{5, 3},
	})
	_, _, err = zscore.Standardize(flat)
	require.ErrorIs(t, err, zscore.ErrDegenerateColumn)
	assert.Contains(t, err.Error(), "zero variance")
}

// TestStandardizeNilMatrix verifies the nil guard.
func TestStandardizeNilMatrix(t *testing.T) {
	_, _, err := zscore.Standardize(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// TestApplyShapeMismatch rejects a matrix with a different column count.
func TestApplyShapeMismatch(t *testing.T) {
	m := buildMasked(t, [][]float64{
		{1, 10},
		{3, 20},
	})
	_, stats, err := zscore.Standardize(m)
	require.NoError(t, err)

	narrow := buildMasked(t, [][]float64{{1}, {2}})
	_, err = stats.Apply(narrow)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = stats.Invert(narrow)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// TestInvertAt checks the scalar inverse and its bounds guard.
func TestInvertAt(t *testing.T) {
	m := buildMasked(t, [][]float64{
		{1, 10},
		{3, 20},
	})
	_, stats, err := zscore.Standardize(m)
	require.NoError(t, err)

	// z=1 in column 0 → mean + std = 2 + √2.
	v, err := stats.InvertAt(0, 1)
	require.NoError(t, err)
	assert.InDelta(t, 2+math.Sqrt2, v, tol)

	_, err = stats.InvertAt(2, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)

	_, err = stats.InvertAt(-1, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
}
