// Package rankfill completes partially observed competitor-by-event score
// matrices — from raw CSV records to a fully filled scoreboard with audited
// model selection along the way.
//
// 🚀 What is rankfill?
//
//	A pipeline that turns sparse scoreboards into full ones:
//		• Ingestion: competitor,event,score[,date] records → labeled matrix
//		• Eligibility: event whitelists, recency windows, participation floors
//		• Standardization: per-column z-scores over observed cells only
//		• Selection: a descending λ-grid scored on held-out cells
//		• Completion: soft-threshold SVD, refit at the selected rank
//		• Reporting: selection curves, run diagnostics, event correlations
//		• History: every run appended to a SQLite archive
//
// ✨ Why choose rankfill?
//
//   - Reproducible – one seed drives the only random choice (the holdout split)
//   - Honest – observed scores pass through exactly, never smoothed
//   - Auditable – the full λ-path, the held-out cells and the selected model
//     travel with every result
//   - Composable – each stage is a plain function you can call on its own
//
// Everything is organized under focused subpackages:
//
//	matrix/      — the masked matrix: values plus an observation mask
//	dataset/     — CSV ingestion, eligibility rules, pivoting
//	zscore/      — per-column standardization and its exact inverse
//	holdout/     — reproducible validation splits
//	softimpute/  — the solver: grid, sweep, final refit, assembly
//	synth/       — planted low-rank generators for tests and benchmarks
//	report/      — run records, curve/JSON exports, correlations
//	archive/     — the SQLite run history
//	cmd/rankfill — the command-line pipeline
//
// Quick ASCII example:
//
//	        sprint  hurdles  relay
//	  ada    12.50     9.25      ?
//	  bob    11.00        ?   5.50
//	  cyd        ?    10.75   6.00
//
//	three competitors, three events, three gaps for the model to fill.
//
//	go get github.com/katalvlaran/rankfill
package rankfill
