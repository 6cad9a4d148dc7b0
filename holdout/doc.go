// Package holdout carves a validation set out of a partially observed matrix.
//
// Split samples a fraction of the observed cells uniformly at random without
// replacement, removes them from a copy of the observation mask (the training
// mask), and returns them as held-out cells with their true values. Model
// selection scores candidate models by their error on exactly these cells.
//
// Reproducibility contract:
//   - All randomness flows through the *rand.Rand passed to Split; nothing
//     else in the pipeline consumes random state. Same generator state, same
//     matrix ⇒ identical split, on every platform.
//   - NewRNG(seed) builds the canonical generator (seed==0 selects a fixed
//     default stream); DeriveRNG branches independent substreams for parallel
//     experiment harnesses.
//
// Errors:
//   - ErrBadFraction — fraction outside (0,1) or non-finite.
//   - ErrInsufficientData — the requested fraction rounds to zero cells,
//     would hold out every observation, or would leave a row or column with
//     no training data. Fatal: a split that silently degrades validation is
//     worse than no split.
//
// Complexity: Split is O(k) in observed cells plus the O(k) shuffle.
package holdout
