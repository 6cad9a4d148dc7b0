// SPDX-License-Identifier: MIT
// Package dataset turns raw performance records into the matrix the solver
// consumes and back again.
//
// The pipeline is three steps, each usable on its own:
//
//   - ReadCSV parses competitor,event,score records, with an optional
//     fourth date column (2006-01-02). Parsing is strict: a malformed
//     header, a wrong-arity row, a non-numeric or non-finite score, an
//     unparseable date, or a blank identifier fails fast with the offending
//     row number.
//   - Filter applies eligibility rules (event whitelist, recency window,
//     minimum distinct events per competitor, minimum distinct competitors
//     per event). The floors run to a fixpoint: dropping an event can push
//     a competitor below threshold and vice versa, so passes repeat until
//     nothing changes. The report lists everything dropped and why.
//   - Pivot assembles a matrix.Masked with competitors as rows and events
//     as columns, both ordered by first appearance in the record stream.
//     Repeated (competitor, event) pairs are averaged.
//
// Table.WriteCompleted serializes a completion back to CSV with the original
// identifiers, one row per competitor, fixed 6-decimal formatting.
//
// Filtering optionally logs per-pass decisions through a logrus entry; a nil
// logger keeps the package silent.
package dataset
