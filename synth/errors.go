// SPDX-License-Identifier: MIT
// Package synth: sentinel errors.
//
// NOTE ON NAMING & PREFIXING
// Messages carry the "synth: " prefix so a wrapped chain reads cleanly in
// logs; tests must match identity via errors.Is, never message text.

package synth

import "errors"

var (
	// ErrBadShape is returned when rows or cols is below the generator's
	// minimum (2×2).
	ErrBadShape = errors.New("synth: invalid shape")

	// ErrBadRank is returned when the planted rank is outside
	// [1, min(rows, cols)].
	ErrBadRank = errors.New("synth: invalid planted rank")

	// ErrBadDensity is returned when the observation density is outside
	// (0, 1].
	ErrBadDensity = errors.New("synth: invalid density")

	// ErrBadNoise is returned when the noise level is negative or non-finite.
	ErrBadNoise = errors.New("synth: invalid noise level")

	// ErrNeedRandSource is returned when no random source is supplied.
	// Generation is stochastic by definition; there is no implicit default.
	ErrNeedRandSource = errors.New("synth: rand source is required")
)
