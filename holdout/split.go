// SPDX-License-Identifier: MIT
// Package holdout: the validation split itself.
//
// Design principles:
//   - Deterministic given the generator state: stable row-major enumeration of
//     observed cells, one Fisher–Yates shuffle, first-k selection.
//   - Strict sentinels from types.go; no logging, no panics on user input.
//   - The input matrix is never mutated; the training mask is a fresh copy.

package holdout

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/katalvlaran/rankfill/matrix"
)

// Split samples round(fraction·observed) cells without replacement, clears
// them from a copy of m's observation mask, and returns the resulting
// training mask together with the held-out cells (sorted row-major, values
// taken from m).
//
// Contracts:
//   - m must be non-nil; fraction must be finite and in (0,1).
//   - rng==nil selects the deterministic default stream (NewRNG(0));
//     otherwise rng is the only source of randomness consumed.
//   - Every row and column must keep at least one training cell after the
//     split; otherwise the split is rejected.
//
// Errors: matrix.ErrNilMatrix, ErrBadFraction, ErrInsufficientData.
//
// Complexity: O(r*c + k log k) time, O(k) space for k observed cells.
func Split(m *matrix.Masked, fraction float64, rng *rand.Rand) (*matrix.Mask, []Cell, error) {
	// Stage 1 - validate inputs.
	if err := matrix.ValidateMasked(m); err != nil {
		return nil, nil, err
	}
	if math.IsNaN(fraction) || math.IsInf(fraction, 0) || fraction <= 0 || fraction >= 1 {
		return nil, nil, fmt.Errorf("Split: fraction=%g: %w", fraction, ErrBadFraction)
	}

	// Stage 2 - enumerate observed cells in the stable row-major order.
	positions := m.ObservedPositions()
	total := len(positions)
	if total == 0 {
		return nil, nil, fmt.Errorf("Split: no observed cells: %w", ErrInsufficientData)
	}

	// Stage 3 - size the holdout; round half away from zero, per contract.
	k := int(math.Round(fraction * float64(total)))
	if k == 0 {
		return nil, nil, fmt.Errorf("Split: fraction=%g of %d cells rounds to zero: %w",
			fraction, total, ErrInsufficientData)
	}
	if k == total {
		return nil, nil, fmt.Errorf("Split: fraction=%g would hold out all %d cells: %w",
			fraction, total, ErrInsufficientData)
	}

	// Stage 4 - select k cells: one full Fisher–Yates pass, take the prefix.
	shufflePositionsInPlace(positions, rng)
	selected := positions[:k]

	// Stage 5 - build the training mask and collect held-out values.
	train := m.Mask()
	held := make([]Cell, 0, k)

	var (
		p   matrix.Pos
		v   float64
		err error
	)
	for _, p = range selected {
		if err = train.Clear(p.Row, p.Col); err != nil {
			return nil, nil, err
		}
		v, _ = m.At(p.Row, p.Col) // position came from m; bounds are valid
		held = append(held, Cell{Row: p.Row, Col: p.Col, Value: v})
	}

	// Stage 6 - feasibility: no row or column may lose all training data.
	rows := train.RowCounts()
	var i int
	for i = 0; i < len(rows); i++ {
		if rows[i] == 0 {
			return nil, nil, fmt.Errorf("Split: row %d left without training data: %w",
				i, ErrInsufficientData)
		}
	}
	cols := train.ColCounts()
	for i = 0; i < len(cols); i++ {
		if cols[i] == 0 {
			return nil, nil, fmt.Errorf("Split: column %d left without training data: %w",
				i, ErrInsufficientData)
		}
	}

	// Stage 7 - sort held cells row-major so downstream reports are stable
	// regardless of the shuffle order that selected them.
	sort.Slice(held, func(a, b int) bool {
		if held[a].Row != held[b].Row {
			return held[a].Row < held[b].Row
		}
		return held[a].Col < held[b].Col
	})

	return train, held, nil
}
