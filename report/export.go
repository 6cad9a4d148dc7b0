// SPDX-License-Identifier: MIT
// Package report: serialization of the run record.
//
// Both writers are deterministic for a fixed record: float fields use the
// shortest exact decimal form, so a re-parsed curve is bit-identical to the
// one that was fitted.

package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// Curve CSV column layout.
const (
	curveHeaderLambda = "lambda"
	curveHeaderRMSE   = "rmse"
	curveHeaderRank   = "rank"
)

// WriteCurveCSV serializes the regularization curve as lambda,rmse,rank
// rows in grid order.
//
// Complexity: O(grid).
func (d *Diagnostics) WriteCurveCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{curveHeaderLambda, curveHeaderRMSE, curveHeaderRank}); err != nil {
		return fmt.Errorf("WriteCurveCSV: header: %w", err)
	}

	var p CurvePoint
	for i := range d.Curve {
		p = d.Curve[i]
		rec := []string{
			strconv.FormatFloat(p.Lambda, 'g', -1, 64),
			strconv.FormatFloat(p.RMSE, 'g', -1, 64),
			strconv.Itoa(p.Rank),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("WriteCurveCSV: point %d: %w", i, err)
		}
	}
	cw.Flush()

	return cw.Error()
}

// WriteJSON serializes the full record as indented JSON with a trailing
// newline, in the Diagnostics field order.
//
// Complexity: O(grid).
func (d *Diagnostics) WriteJSON(w io.Writer) error {
	buf, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("WriteJSON: %w", err)
	}
	buf = append(buf, '\n')

	if _, err = w.Write(buf); err != nil {
		return fmt.Errorf("WriteJSON: %w", err)
	}

	return nil
}
