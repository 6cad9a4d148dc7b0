// SPDX-License-Identifier: MIT
// Package dataset: sentinel errors.
//
// NOTE ON NAMING & PREFIXING
// Messages carry the "dataset: " prefix; wrapping adds row numbers and
// identifiers. Tests must match identity via errors.Is, never message text.

package dataset

import "errors"

var (
	// ErrBadHeader is returned when the CSV header is neither
	// competitor,event,score nor competitor,event,score,date
	// (case-insensitive).
	ErrBadHeader = errors.New("dataset: malformed header")

	// ErrBadRecord is returned for a row with the wrong field count, a blank
	// identifier, a score that does not parse to a finite number, or an
	// unparseable date. The wrap carries the 1-based row number.
	ErrBadRecord = errors.New("dataset: malformed record")

	// ErrEmptyDataset is returned when no observations remain to work with.
	ErrEmptyDataset = errors.New("dataset: no observations")

	// ErrBadRules is returned when a filter threshold is negative.
	ErrBadRules = errors.New("dataset: invalid filter rules")
)
