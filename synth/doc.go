// SPDX-License-Identifier: MIT
// Package synth generates planted low-rank instances for benchmarks and
// tests: a ground-truth matrix with known rank, an observation mask sampled
// at a requested density, and the partially observed matrix the solver sees.
//
// What you get:
//   - Truth: rows×cols, exactly the planted rank plus optional Gaussian noise.
//   - Observed: Truth restricted to a Bernoulli(density) mask, then repaired
//     so every row keeps at least one observed cell and every column at least
//     two. Repaired instances always pass coverage validation and per-column
//     standardization.
//
// Determinism: generation consumes the injected *rand.Rand in a fixed,
// documented order (factor entries, then noise, then mask trials, then
// repairs), so a fixed seed reproduces the instance bit for bit.
//
// The package never panics on user input; constructors return sentinel
// errors matched via errors.Is.
package synth
