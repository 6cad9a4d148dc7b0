// SPDX-License-Identifier: MIT
// Package softimpute_test: the end-to-end pipeline on a planted 6×4
// instance. The scenario mirrors real survey data: a rank-1 skill matrix
// with one missing cell per column, standardized, swept and refit.

package softimpute_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/rankfill/holdout"
	"github.com/katalvlaran/rankfill/matrix"
	"github.com/katalvlaran/rankfill/softimpute"
	"github.com/katalvlaran/rankfill/synth"
	"github.com/katalvlaran/rankfill/zscore"
)

// planted6x4 builds u⊗v for u=(1..6), v=(2,1,0.5,0.25) with exactly one
// cell removed per column, each in a different row. 20 of 24 cells remain;
// every row keeps ≥3 and every column exactly 5.
func planted6x4(t *testing.T) (x *matrix.Masked, truth []float64, missing []matrix.Pos) {
	t.Helper()

	var (
		u = []float64{1, 2, 3, 4, 5, 6}
		v = []float64{2, 1, 0.5, 0.25}
	)
	truth = make([]float64, len(u)*len(v))

	var i, j int
	for i = 0; i < len(u); i++ {
		for j = 0; j < len(v); j++ {
			truth[i*len(v)+j] = u[i] * v[j]
		}
	}

	missing = []matrix.Pos{{Row: 1, Col: 0}, {Row: 3, Col: 1}, {Row: 4, Col: 2}, {Row: 0, Col: 3}}

	m, err := matrix.NewMasked(len(u), len(v))
	require.NoError(t, err)

	var skip bool
	for i = 0; i < len(u); i++ {
		for j = 0; j < len(v); j++ {
			skip = false
			for _, p := range missing {
				if p.Row == i && p.Col == j {
					skip = true
					break
				}
			}
			if !skip {
				require.NoError(t, m.Set(i, j, truth[i*len(v)+j]))
			}
		}
	}

	return m, truth, missing
}

// plantedOptions keeps the holdout small (2 of 20 cells) so the split can
// never starve a row, and gives the near-zero-λ refits a roomy budget.
func plantedOptions() softimpute.Options {
	opts := softimpute.DefaultOptions()
	opts.HoldoutFraction = 0.1
	opts.MaxIterations = 300
	opts.Seed = 1

	return opts
}

// TestEstimate_PlantedRankOne: the flagship scenario. The pipeline must
// fill all four removed cells close to the planted values (in original
// units, via Stats.Invert) while passing observed cells through untouched.
func TestEstimate_PlantedRankOne(t *testing.T) {
	x, truth, missing := planted6x4(t)

	res, err := softimpute.Estimate(x, plantedOptions())
	require.NoError(t, err)

	// Shape of the outcome: fully observed completion, audit trail intact.
	require.NotNil(t, res.Model)
	require.NotNil(t, res.Stats)
	assert.Equal(t, 6*4, res.Completed.ObservedCount())
	assert.Len(t, res.Held, 2) // round(0.1 · 20)
	assert.Greater(t, res.LambdaMax, 0.0)
	require.Len(t, res.Grid, softimpute.DefaultGridSize)

	// Per-column standardization turns a planted rank-1 matrix into rank ≤ 2
	// (column means differ across observation subsets), so selection lands
	// on 1 or 2, never higher.
	assert.Contains(t, []int{1, 2}, res.Rank)
	assert.True(t, res.Converged)

	// The top of the grid always collapses: rank 0 on the second iteration.
	require.NotEmpty(t, res.Path.Trials)
	assert.Equal(t, 0, res.Path.Trials[0].Rank)
	assert.Equal(t, 2, res.Path.Trials[0].Iterations)

	// Observed cells pass through exactly in standardized units.
	z, _, err := zscore.Standardize(x)
	require.NoError(t, err)

	var (
		i, j   int
		obs    bool
		zv, cv float64
	)
	for i = 0; i < 6; i++ {
		for j = 0; j < 4; j++ {
			obs, _ = x.Observed(i, j)
			if !obs {
				continue
			}
			zv, _ = z.At(i, j)
			cv, _ = res.Completed.At(i, j)
			require.Equal(t, zv, cv, "observed cell (%d,%d) must pass through", i, j)
		}
	}

	// Back in original units: observed cells round-trip, removed cells land
	// near the planted truth.
	inv, err := res.Stats.Invert(res.Completed)
	require.NoError(t, err)

	var iv, tv float64
	for i = 0; i < 6; i++ {
		for j = 0; j < 4; j++ {
			obs, _ = x.Observed(i, j)
			if !obs {
				continue
			}
			iv, _ = inv.At(i, j)
			tv, _ = x.At(i, j)
			assert.InDelta(t, tv, iv, 1e-9, "round-trip at (%d,%d)", i, j)
		}
	}
	for _, p := range missing {
		iv, _ = inv.At(p.Row, p.Col)
		assert.InDelta(t, truth[p.Row*4+p.Col], iv, 0.25, "recovered cell (%d,%d)", p.Row, p.Col)
	}
}

// TestEstimate_Determinism: equal inputs and options agree bit for bit;
// a different seed draws a different holdout.
func TestEstimate_Determinism(t *testing.T) {
	inst, err := synth.PlantedLowRank(24, 10, 2, 0.85, 0.05, rand.New(rand.NewSource(5)))
	require.NoError(t, err)

	opts := softimpute.DefaultOptions()
	opts.Seed = 42

	a, err := softimpute.Estimate(inst.Observed, opts)
	require.NoError(t, err)
	b, err := softimpute.Estimate(inst.Observed, opts)
	require.NoError(t, err)

	assert.Equal(t, a.Rank, b.Rank)
	assert.Equal(t, a.Lambda, b.Lambda)
	assert.Equal(t, a.RMSE, b.RMSE)
	require.Equal(t, a.Held, b.Held)
	require.Equal(t, a.Path.Trials, b.Path.Trials)

	var (
		i, j   int
		av, bv float64
	)
	for i = 0; i < 24; i++ {
		for j = 0; j < 10; j++ {
			av, _ = a.Completed.At(i, j)
			bv, _ = b.Completed.At(i, j)
			require.Equal(t, av, bv, "completion (%d,%d)", i, j)
		}
	}

	// A different seed must hold out a different cell set.
	opts.Seed = 43
	c, err := softimpute.Estimate(inst.Observed, opts)
	require.NoError(t, err)
	assert.NotEqual(t, a.Held, c.Held)
}

// TestEstimate_WorkersDoNotChangeTheAnswer: the parallel sweep is a
// throughput knob end to end as well.
func TestEstimate_WorkersDoNotChangeTheAnswer(t *testing.T) {
	x, _, _ := planted6x4(t)

	seqOpts := plantedOptions()
	seq, err := softimpute.Estimate(x, seqOpts)
	require.NoError(t, err)

	parOpts := plantedOptions()
	parOpts.Workers = 4
	par, err := softimpute.Estimate(x, parOpts)
	require.NoError(t, err)

	assert.Equal(t, seq.Rank, par.Rank)
	assert.Equal(t, seq.Lambda, par.Lambda)
	require.Equal(t, seq.Path.Trials, par.Path.Trials)
}

// TestEstimate_Validation: every failure mode surfaces as its own sentinel.
func TestEstimate_Validation(t *testing.T) {
	t.Run("nil matrix", func(t *testing.T) {
		_, err := softimpute.Estimate(nil, softimpute.DefaultOptions())
		require.ErrorIs(t, err, matrix.ErrNilMatrix)
	})

	t.Run("empty row", func(t *testing.T) {
		m, err := matrix.NewMasked(3, 3)
		require.NoError(t, err)
		for _, row := range []int{0, 2} { // row 1 stays empty
			for col := 0; col < 3; col++ {
				require.NoError(t, m.Set(row, col, float64(row*3+col+1)))
			}
		}
		_, err = softimpute.Estimate(m, softimpute.DefaultOptions())
		require.ErrorIs(t, err, matrix.ErrEmptyRow)
	})

	t.Run("empty column", func(t *testing.T) {
		m, err := matrix.NewMasked(3, 3)
		require.NoError(t, err)
		for row := 0; row < 3; row++ {
			for _, col := range []int{0, 2} { // column 1 stays empty
				require.NoError(t, m.Set(row, col, float64(row*3+col+1)))
			}
		}
		_, err = softimpute.Estimate(m, softimpute.DefaultOptions())
		require.ErrorIs(t, err, matrix.ErrEmptyCol)
	})

	t.Run("constant column cannot standardize", func(t *testing.T) {
		m, err := matrix.NewMasked(4, 3)
		require.NoError(t, err)
		for row := 0; row < 4; row++ {
			require.NoError(t, m.Set(row, 0, 5)) // zero variance
			require.NoError(t, m.Set(row, 1, float64(row)))
			require.NoError(t, m.Set(row, 2, float64(row*row)))
		}
		_, err = softimpute.Estimate(m, softimpute.DefaultOptions())
		require.ErrorIs(t, err, zscore.ErrDegenerateColumn)
	})

	t.Run("split starves a single-cell row", func(t *testing.T) {
		// Each row owns exactly one observed cell, so ANY held-out cell
		// leaves its row without training data.
		m, err := matrix.NewMasked(4, 2)
		require.NoError(t, err)
		require.NoError(t, m.Set(0, 0, 1))
		require.NoError(t, m.Set(1, 0, 2))
		require.NoError(t, m.Set(2, 1, 3))
		require.NoError(t, m.Set(3, 1, 7))

		_, err = softimpute.Estimate(m, softimpute.DefaultOptions())
		require.ErrorIs(t, err, holdout.ErrInsufficientData)
	})

	t.Run("bad holdout fraction", func(t *testing.T) {
		x, _, _ := planted6x4(t)
		opts := softimpute.DefaultOptions()
		opts.HoldoutFraction = 0
		_, err := softimpute.Estimate(x, opts)
		require.ErrorIs(t, err, softimpute.ErrBadOptions)
	})
}
