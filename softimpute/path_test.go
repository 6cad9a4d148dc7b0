// SPDX-License-Identifier: MIT
// Package softimpute_test: grid sweep and model selection. The tie-break
// test engineers a genuine exact tie: every λ at or above the collapse
// level yields the same rank-0 model, hence bit-identical RMSE.

package softimpute_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/rankfill/holdout"
	"github.com/katalvlaran/rankfill/matrix"
	"github.com/katalvlaran/rankfill/softimpute"
	"github.com/katalvlaran/rankfill/synth"
)

// splitRankOne returns the fixture with a reproducible 2-cell holdout.
// Every row keeps at least 3 training cells, so the split cannot starve.
func splitRankOne(t *testing.T) (*matrix.Masked, *matrix.Mask, []holdout.Cell) {
	t.Helper()

	x := rankOneInstance(t)
	train, held, err := holdout.Split(x, 0.1, holdout.NewRNG(3))
	require.NoError(t, err)
	require.Len(t, held, 2) // round(0.1 · 18)

	return x, train, held
}

// TestSelectRank_TieGoesToLargerLambda: four levels at or above λmax all
// collapse to rank 0 and predict zero everywhere, so their held-out RMSEs
// are exactly equal. The documented rule must pick the largest λ.
func TestSelectRank_TieGoesToLargerLambda(t *testing.T) {
	x, train, held := splitRankOne(t)

	lm, err := softimpute.LambdaMax(x, train)
	require.NoError(t, err)

	grid := []float64{4 * lm, 3 * lm, 2 * lm, lm}

	path, err := softimpute.SelectRank(x, train, held, grid, softimpute.DefaultOptions())
	require.NoError(t, err)
	require.Len(t, path.Trials, 4)

	// All four trials are the same rank-0 model.
	var i int
	for i = 0; i < 4; i++ {
		require.Equal(t, 0, path.Trials[i].Rank, "trial %d", i)
		require.Equal(t, path.Trials[0].RMSE, path.Trials[i].RMSE, "trial %d must tie exactly", i)
	}

	assert.Equal(t, 0, path.BestIndex, "exact ties resolve toward the larger λ")
	assert.Equal(t, 4*lm, path.Best.Lambda)
}

// TestSelectRank_PicksMinimumRMSE: on a real descending grid the winner is
// the argmin of the curve, per the documented comparison.
func TestSelectRank_PicksMinimumRMSE(t *testing.T) {
	x, train, held := splitRankOne(t)

	lm, err := softimpute.LambdaMax(x, train)
	require.NoError(t, err)

	grid, err := softimpute.Grid(lm, softimpute.DefaultLambdaFloor, 8)
	require.NoError(t, err)

	path, err := softimpute.SelectRank(x, train, held, grid, softimpute.DefaultOptions())
	require.NoError(t, err)
	require.Len(t, path.Trials, len(grid))

	// Trials stay in grid order whatever order they completed in.
	var i int
	for i = 0; i < len(grid); i++ {
		require.Equal(t, grid[i], path.Trials[i].Lambda, "slot %d", i)
	}

	// Reference scan with the published rule: smaller RMSE wins, exact ties
	// go to the larger λ.
	ref := 0
	for i = 1; i < len(path.Trials); i++ {
		if path.Trials[i].RMSE < path.Trials[ref].RMSE ||
			(path.Trials[i].RMSE == path.Trials[ref].RMSE && path.Trials[i].Lambda > path.Trials[ref].Lambda) {
			ref = i
		}
	}
	assert.Equal(t, ref, path.BestIndex)
	assert.Equal(t, path.Trials[ref], path.Best)

	// Fitting beats predicting all zeros on an exactly low-rank instance.
	assert.Greater(t, path.Best.Rank, 0)
	assert.Less(t, path.Best.RMSE, path.Trials[0].RMSE, "the collapse-level trial must not win here")
}

// TestSelectRank_RankMonotoneAlongPath: on exact low-rank data, effective
// rank never drops as λ descends the grid. The instance is noiseless and
// fully observed so every trial converges cleanly, and the four-cell
// holdout cannot starve a six-cell row whatever the generator draws.
func TestSelectRank_RankMonotoneAlongPath(t *testing.T) {
	inst, err := synth.PlantedLowRank(12, 6, 3, 1.0, 0, rand.New(rand.NewSource(13)))
	require.NoError(t, err)

	train, held, err := holdout.Split(inst.Observed, 0.05, holdout.NewRNG(8))
	require.NoError(t, err)

	lm, err := softimpute.LambdaMax(inst.Observed, train)
	require.NoError(t, err)

	grid, err := softimpute.Grid(lm, softimpute.DefaultLambdaFloor, 10)
	require.NoError(t, err)

	opts := softimpute.DefaultOptions()
	opts.MaxIterations = 300

	path, err := softimpute.SelectRank(inst.Observed, train, held, grid, opts)
	require.NoError(t, err)

	require.Equal(t, 0, path.Trials[0].Rank, "grid top is the collapse level")

	var i int
	for i = 1; i < len(path.Trials); i++ {
		assert.GreaterOrEqual(t, path.Trials[i].Rank, path.Trials[i-1].Rank,
			"rank fell between λ=%v and λ=%v", path.Trials[i-1].Lambda, path.Trials[i].Lambda)
	}
}

// TestSelectRank_ParallelMatchesSequential: worker count is a throughput
// knob, never a semantics knob.
func TestSelectRank_ParallelMatchesSequential(t *testing.T) {
	x, train, held := splitRankOne(t)

	lm, err := softimpute.LambdaMax(x, train)
	require.NoError(t, err)

	grid, err := softimpute.Grid(lm, softimpute.DefaultLambdaFloor, 8)
	require.NoError(t, err)

	seq, err := softimpute.SelectRank(x, train, held, grid, softimpute.DefaultOptions())
	require.NoError(t, err)

	par := softimpute.DefaultOptions()
	par.Workers = 4
	got, err := softimpute.SelectRank(x, train, held, grid, par)
	require.NoError(t, err)

	require.Equal(t, seq.Trials, got.Trials, "per-trial results must agree bit for bit")
	assert.Equal(t, seq.BestIndex, got.BestIndex)
	assert.Equal(t, seq.Best, got.Best)
}

// TestSelectRank_Validation: grid shape, held-out emptiness and leaky or
// malformed held cells.
func TestSelectRank_Validation(t *testing.T) {
	x, train, held := splitRankOne(t)

	t.Run("empty grid", func(t *testing.T) {
		_, err := softimpute.SelectRank(x, train, held, nil, softimpute.DefaultOptions())
		require.ErrorIs(t, err, softimpute.ErrBadGrid)
	})

	t.Run("ascending grid", func(t *testing.T) {
		_, err := softimpute.SelectRank(x, train, held, []float64{1, 2}, softimpute.DefaultOptions())
		require.ErrorIs(t, err, softimpute.ErrBadGrid)
	})

	t.Run("repeated level", func(t *testing.T) {
		_, err := softimpute.SelectRank(x, train, held, []float64{2, 2}, softimpute.DefaultOptions())
		require.ErrorIs(t, err, softimpute.ErrBadGrid)
	})

	t.Run("negative level", func(t *testing.T) {
		_, err := softimpute.SelectRank(x, train, held, []float64{2, -1}, softimpute.DefaultOptions())
		require.ErrorIs(t, err, softimpute.ErrBadLambda)
	})

	t.Run("no held-out cells", func(t *testing.T) {
		_, err := softimpute.SelectRank(x, train, nil, []float64{2, 1}, softimpute.DefaultOptions())
		require.ErrorIs(t, err, softimpute.ErrNoHeldOut)
	})

	t.Run("held cell inside training mask", func(t *testing.T) {
		pos := train.Positions()[0] // any surviving training cell
		leaky := []holdout.Cell{{Row: pos.Row, Col: pos.Col, Value: 1}}

		_, err := softimpute.SelectRank(x, train, leaky, []float64{2, 1}, softimpute.DefaultOptions())
		require.ErrorIs(t, err, softimpute.ErrNoHeldOut)
	})

	t.Run("held cell out of range", func(t *testing.T) {
		bad := []holdout.Cell{{Row: 9, Col: 0, Value: 1}}
		_, err := softimpute.SelectRank(x, train, bad, []float64{2, 1}, softimpute.DefaultOptions())
		require.ErrorIs(t, err, matrix.ErrOutOfRange)
	})

	t.Run("held cell with NaN value", func(t *testing.T) {
		held := []holdout.Cell{{Row: 1, Col: 2, Value: math.NaN()}} // (1,2) is missing, so not in train
		_, err := softimpute.SelectRank(x, train, held, []float64{2, 1}, softimpute.DefaultOptions())
		require.ErrorIs(t, err, matrix.ErrNaNInf)
	})
}
