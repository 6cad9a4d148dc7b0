// Package softimpute completes partially observed matrices by iterative
// soft-thresholded SVD with cross-validated shrinkage.
//
// The model: a standardized competitor×event score matrix is approximately
// low-rank (a few latent skill dimensions explain most variation), so missing
// cells can be predicted from the observed ones. The solver is the classic
// impute-then-refit loop:
//
//  1. Fill missing training cells with 0 (the column mean in z-score units).
//  2. Take a thin SVD of the working matrix, truncated to at most MaxRank
//     components.
//  3. Soft-threshold the singular values: dᵢ ← max(dᵢ−λ, 0).
//  4. Rebuild the matrix from the shrunken factorization, then restore every
//     observed training value exactly (ground truth is never overwritten).
//  5. Repeat until the singular value spectrum stabilizes:
//     ‖d⁽ᵏ⁺¹⁾−d⁽ᵏ⁾‖² / max(‖d⁽ᵏ⁾‖², ε) ≤ Tolerance.
//
// λ controls model complexity. Shrinking with λ ≥ the largest singular value
// annihilates every component: the rank-0 model (all predictions 0) is a
// valid, non-error outcome. SelectRank sweeps a descending geometric λ-grid,
// scores each candidate on held-out cells (RMSE), and picks the minimizer,
// preferring the larger λ on ties. Finalize then refits on every observed
// cell with the selected rank as a hard cap and negligible shrinkage.
// Estimate chains the whole pipeline:
//
//	standardize → split → λ-grid → sweep → refit → assemble
//
// Exhausting MaxIterations is NOT an error: the result is usable and the
// Converged flag records the fact. Genuine numerical failure (NaN/±Inf in
// the working matrix, SVD breakdown) is ErrNumericalInstability and fatal.
//
// All entry points are deterministic for a fixed Options.Seed: the only
// consumer of randomness is the holdout split. Parallel sweeps (Workers > 1)
// write trials by grid index, so scheduling never changes the outcome.
//
// Completed matrices are in standardized units; Result.Stats carries the
// per-column transform for callers who need original units.
//
// Complexity per solver iteration: one thin SVD, O(r·c·min(r,c)).
package softimpute
