// SPDX-License-Identifier: MIT
// Package report assembles the diagnostic artifacts of a completion run:
// a provenance record with the full regularization curve, and descriptive
// statistics over the completed matrix.
//
// Diagnostics is the unit of record. FromResult stamps it with a fresh
// RunID and timestamp and copies everything a later reader needs to judge
// the run: input shape and coverage, the seed, the λ-grid curve with
// per-trial convergence, and the selected model. WriteCurveCSV and
// WriteJSON serialize it; the archive package persists it.
//
// EventCorrelations computes the Pearson correlation matrix between event
// columns of a fully observed matrix, the conventional follow-up question
// once the holes are filled ("which events move together?"). It is a thin
// wrapper over gonum's correlation kernel plus label bookkeeping.
//
// Units: completed matrices arrive in standardized (per-column z-score)
// units, and every figure here stays in those units. RMSE in standardized
// units is comparable across datasets, and correlations are invariant
// under the affine standardization map, so nothing is lost. Callers who
// want original-unit exports invert through zscore.Stats first.
package report
