// SPDX-License-Identifier: MIT
// Package synth: the planted low-rank generator.
//
// Canonical model:
//   - Truth = U·Vᵀ + noise·E, with U (rows×rank), V (cols×rank) and E all
//     drawn i.i.d. standard normal from the injected RNG.
//   - Mask: include each cell independently with probability density, then
//     repair coverage (≥1 observed per row, ≥2 per column).
//
// Contract:
//   - rows ≥ 2 and cols ≥ 2 (else ErrBadShape).
//   - 1 ≤ rank ≤ min(rows, cols) (else ErrBadRank).
//   - 0 < density ≤ 1 (else ErrBadDensity).
//   - noise ≥ 0 and finite (else ErrBadNoise).
//   - rng non-nil (else ErrNeedRandSource); no implicit default source.
//   - Returns only sentinel errors; never panics at runtime.
//
// Determinism: for a fixed seed the RNG is consumed in a fixed order -
// U row-major, V row-major, noise row-major, mask trials row-major, row
// repairs by ascending row, column repairs by ascending column.
//
// Complexity:
//   - Time: O(rows·cols·rank) for the product, O(rows·cols) everything else.
//   - Space: O(rows·cols) for the two matrices.

package synth

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/rankfill/matrix"
)

// File-local constants (no magic literals; stable method tag and domains).
const (
	methodPlanted  = "PlantedLowRank"
	minPlantedRows = 2
	minPlantedCols = 2
	minPlantedRank = 1
	densityMax     = 1.0
	minRowCover    = 1 // coverage floor per row after repair
	minColCover    = 2 // coverage floor per column after repair (standardizable)
)

// Instance bundles a generated problem with its provenance.
type Instance struct {
	// Truth is the fully observed ground-truth matrix.
	Truth *matrix.Masked

	// Observed is Truth restricted to the sampled-and-repaired mask.
	Observed *matrix.Masked

	// Rank is the planted rank (before noise).
	Rank int

	// Noise is the standard deviation of the additive Gaussian noise.
	Noise float64
}

// PlantedLowRank generates a rows×cols instance of known rank: i.i.d.
// normal factors, optional Gaussian noise, and a Bernoulli(density) mask
// repaired so the instance survives coverage validation and per-column
// standardization downstream.
func PlantedLowRank(rows, cols, rank int, density, noise float64, rng *rand.Rand) (*Instance, error) {
	// 1) Validate parameters early (fail fast, zero side-effects on invalid input).
	if rows < minPlantedRows || cols < minPlantedCols {
		return nil, fmt.Errorf("%s: shape %dx%d below %dx%d: %w",
			methodPlanted, rows, cols, minPlantedRows, minPlantedCols, ErrBadShape)
	}
	if rank < minPlantedRank || rank > min(rows, cols) {
		return nil, fmt.Errorf("%s: rank=%d not in [%d,%d]: %w",
			methodPlanted, rank, minPlantedRank, min(rows, cols), ErrBadRank)
	}
	if !(density > 0) || density > densityMax {
		return nil, fmt.Errorf("%s: density=%.6f not in (0,%.1f]: %w",
			methodPlanted, density, densityMax, ErrBadDensity)
	}
	if noise < 0 || math.IsNaN(noise) || math.IsInf(noise, 0) {
		return nil, fmt.Errorf("%s: noise=%v: %w", methodPlanted, noise, ErrBadNoise)
	}
	if rng == nil {
		return nil, fmt.Errorf("%s: rng is required: %w", methodPlanted, ErrNeedRandSource)
	}

	// 2) Draw the factors in a stable order: U row-major, then V row-major.
	var (
		u = make([]float64, rows*rank) // left factor, row-major
		v = make([]float64, cols*rank) // right factor, row-major
		i int
	)
	for i = 0; i < len(u); i++ {
		u[i] = rng.NormFloat64()
	}
	for i = 0; i < len(v); i++ {
		v[i] = rng.NormFloat64()
	}

	// 3) Materialize Truth = U·Vᵀ (+ noise), row-major noise draws.
	truth, err := matrix.NewMasked(rows, cols)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodPlanted, err)
	}

	var (
		r, c, k int
		sum     float64
	)
	for r = 0; r < rows; r++ { // stable outer loop: rows asc
		for c = 0; c < cols; c++ { // inner loop: cols asc
			sum = 0
			for k = 0; k < rank; k++ {
				sum += u[r*rank+k] * v[c*rank+k]
			}
			if noise > 0 {
				sum += noise * rng.NormFloat64()
			}
			if err = truth.Set(r, c, sum); err != nil {
				return nil, fmt.Errorf("%s: truth(%d,%d): %w", methodPlanted, r, c, err)
			}
		}
	}

	// 4) Sample the mask: one Bernoulli trial per cell, row-major.
	var (
		keep      = make([]bool, rows*cols)
		rowCounts = make([]int, rows)
		colCounts = make([]int, cols)
	)
	for r = 0; r < rows; r++ {
		for c = 0; c < cols; c++ {
			if rng.Float64() < density {
				keep[r*cols+c] = true
				rowCounts[r]++
				colCounts[c]++
			}
		}
	}

	// 5) Repair coverage. Starved rows first (ascending), then starved
	// columns (ascending); each repair picks uniformly among the still
	// unobserved cells of its line, so the pass is bounded and cannot stall.
	var cand []int
	for r = 0; r < rows; r++ {
		for rowCounts[r] < minRowCover {
			cand = cand[:0]
			for c = 0; c < cols; c++ {
				if !keep[r*cols+c] {
					cand = append(cand, c)
				}
			}
			c = cand[rng.Intn(len(cand))]
			keep[r*cols+c] = true
			rowCounts[r]++
			colCounts[c]++
		}
	}
	for c = 0; c < cols; c++ {
		for colCounts[c] < minColCover { // reachable: minColCover ≤ rows
			cand = cand[:0]
			for r = 0; r < rows; r++ {
				if !keep[r*cols+c] {
					cand = append(cand, r)
				}
			}
			r = cand[rng.Intn(len(cand))]
			keep[r*cols+c] = true
			rowCounts[r]++
			colCounts[c]++
		}
	}

	// 6) Project Truth through the repaired mask.
	observed, err := matrix.NewMasked(rows, cols)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodPlanted, err)
	}

	var val float64
	for r = 0; r < rows; r++ {
		for c = 0; c < cols; c++ {
			if !keep[r*cols+c] {
				continue
			}
			val, _ = truth.At(r, c) // in-range by construction
			if err = observed.Set(r, c, val); err != nil {
				return nil, fmt.Errorf("%s: observed(%d,%d): %w", methodPlanted, r, c, err)
			}
		}
	}

	return &Instance{Truth: truth, Observed: observed, Rank: rank, Noise: noise}, nil
}
