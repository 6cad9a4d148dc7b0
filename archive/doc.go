// SPDX-License-Identifier: MIT
// Package archive persists completion runs in a local SQLite database so
// past model selections stay inspectable after the process exits.
//
// One run is one row in the runs table (identity, input shape, seed, the
// selected model, and the completed-matrix CSV as a blob) plus its λ-grid
// trials in the trials table, keyed by grid position. Save writes both in
// a single transaction; Load reassembles the exact report.Diagnostics that
// was saved, and List summarizes runs newest-first.
//
// The database is opened with WAL journaling, NORMAL synchronous mode, a
// 5-second busy timeout and foreign keys on. SQLite allows one writer at a
// time, so the connection pool is capped at a single connection. The schema
// ships embedded and is applied idempotently; PRAGMA user_version tracks
// migrations.
//
// Timestamps are stored as UTC nanoseconds, which keeps ordering exact and
// round-trips report.Diagnostics.CreatedAt bit for bit.
package archive
