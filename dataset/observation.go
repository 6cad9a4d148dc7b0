// SPDX-License-Identifier: MIT
// Package dataset: the observation record and strict CSV ingestion.
//
// Contract:
//   - Header row required: competitor,event,score or competitor,event,score,date
//     (case-insensitive, surrounding whitespace ignored).
//   - Every data row matches the header's arity, with non-blank identifiers,
//     a finite numeric score, and (when the date column is present) a
//     parseable 2006-01-02 date.
//   - Errors carry the 1-based row number (header is row 1).
//   - At least one data row, else ErrEmptyDataset.

package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"
)

// Column layout of the interchange format.
const (
	headerCompetitor = "competitor"
	headerEvent      = "event"
	headerScore      = "score"
	headerDate       = "date"

	fieldCountBare  = 3 // competitor,event,score
	fieldCountDated = 4 // competitor,event,score,date

	// dateLayout is the only accepted date format.
	dateLayout = "2006-01-02"

	// scorePrecision is the fixed fraction-digit count used on export.
	scorePrecision = 6
)

// Observation is one performance record: a competitor's score at an event.
// Date is the zero time when the stream carried no date column; only the
// recency rule in Filter consults it.
type Observation struct {
	Competitor string
	Event      string
	Score      float64
	Date       time.Time
}

// ReadCSV parses an entire competitor,event,score[,date] stream. The header
// decides whether the date column is present; when it is, every row must
// carry a valid date.
//
// Errors: ErrBadHeader, ErrBadRecord (wrapped with the row number),
// ErrEmptyDataset, or the reader's own I/O error.
//
// Complexity: O(rows) time and memory.
func ReadCSV(r io.Reader) ([]Observation, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 0 // lock arity to the header's
	cr.TrimLeadingSpace = true

	// Stage 1 - header.
	head, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("ReadCSV: empty input: %w", ErrBadHeader)
		}

		return nil, fmt.Errorf("ReadCSV: header: %v: %w", err, ErrBadHeader)
	}
	dated, err := validateHeader(head)
	if err != nil {
		return nil, err
	}

	// Stage 2 - data rows, strictly validated, row numbers 1-based.
	var (
		out []Observation
		rec []string
		row = 1 // header consumed above
	)
	for {
		rec, err = cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		row++
		if err != nil {
			return nil, fmt.Errorf("ReadCSV: row %d: %v: %w", row, err, ErrBadRecord)
		}

		obs, err := parseRecord(rec, row, dated)
		if err != nil {
			return nil, err
		}
		out = append(out, obs)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("ReadCSV: header only: %w", ErrEmptyDataset)
	}

	return out, nil
}

// validateHeader accepts the bare or the dated layout and reports which.
func validateHeader(head []string) (dated bool, err error) {
	if len(head) != fieldCountBare && len(head) != fieldCountDated {
		return false, fmt.Errorf("ReadCSV: header %q: %w", strings.Join(head, ","), ErrBadHeader)
	}
	if !strings.EqualFold(strings.TrimSpace(head[0]), headerCompetitor) ||
		!strings.EqualFold(strings.TrimSpace(head[1]), headerEvent) ||
		!strings.EqualFold(strings.TrimSpace(head[2]), headerScore) {
		return false, fmt.Errorf("ReadCSV: header %q: %w", strings.Join(head, ","), ErrBadHeader)
	}
	if len(head) == fieldCountDated && !strings.EqualFold(strings.TrimSpace(head[3]), headerDate) {
		return false, fmt.Errorf("ReadCSV: header %q: %w", strings.Join(head, ","), ErrBadHeader)
	}

	return len(head) == fieldCountDated, nil
}

// parseRecord validates one data row into an Observation.
func parseRecord(rec []string, row int, dated bool) (Observation, error) {
	var (
		competitor = strings.TrimSpace(rec[0])
		event      = strings.TrimSpace(rec[1])
		rawScore   = strings.TrimSpace(rec[2])
	)
	if competitor == "" {
		return Observation{}, fmt.Errorf("ReadCSV: row %d: blank competitor: %w", row, ErrBadRecord)
	}
	if event == "" {
		return Observation{}, fmt.Errorf("ReadCSV: row %d: blank event: %w", row, ErrBadRecord)
	}

	score, err := strconv.ParseFloat(rawScore, 64)
	if err != nil {
		return Observation{}, fmt.Errorf("ReadCSV: row %d: score %q: %w", row, rawScore, ErrBadRecord)
	}
	// ParseFloat accepts "NaN" and "Inf"; the matrix layer never will.
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return Observation{}, fmt.Errorf("ReadCSV: row %d: non-finite score %q: %w", row, rawScore, ErrBadRecord)
	}

	o := Observation{Competitor: competitor, Event: event, Score: score}
	if dated {
		o.Date, err = time.Parse(dateLayout, strings.TrimSpace(rec[3]))
		if err != nil {
			return Observation{}, fmt.Errorf("ReadCSV: row %d: date %q: %w", row, strings.TrimSpace(rec[3]), ErrBadRecord)
		}
	}

	return o, nil
}

// WriteCSV serializes observations in the bare triple layout, scores with
// fixed 6-decimal formatting. Dates inform ingestion-time filtering only and
// are not re-exported. Round-trips through ReadCSV.
//
// Complexity: O(rows).
func WriteCSV(w io.Writer, obs []Observation) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{headerCompetitor, headerEvent, headerScore}); err != nil {
		return fmt.Errorf("WriteCSV: header: %w", err)
	}

	var o Observation
	for _, o = range obs {
		rec := []string{o.Competitor, o.Event, strconv.FormatFloat(o.Score, 'f', scorePrecision, 64)}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("WriteCSV: %s/%s: %w", o.Competitor, o.Event, err)
		}
	}
	cw.Flush()

	return cw.Error()
}
