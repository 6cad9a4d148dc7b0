// SPDX-License-Identifier: MIT
// Package archive: sentinel error set.
//
// NOTE ON NAMING & PREFIXING
//   - Messages carry the "archive: " package prefix; match with errors.Is.
//   - Driver-level failures are wrapped verbatim; only conditions a caller
//     can act on get their own sentinel.

package archive

import "errors"

var (
	// ErrNilDiagnostics is returned when Save is handed a nil record.
	ErrNilDiagnostics = errors.New("archive: nil diagnostics")

	// ErrEmptyArtifact is returned when Save is handed no completed-matrix
	// bytes; an archived run without its artifact cannot be inspected.
	ErrEmptyArtifact = errors.New("archive: empty completed artifact")

	// ErrDuplicateRun is returned when a run ID is already archived.
	ErrDuplicateRun = errors.New("archive: run already archived")

	// ErrNotFound is returned when no archived run has the requested ID.
	ErrNotFound = errors.New("archive: run not found")
)
