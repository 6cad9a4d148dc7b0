// SPDX-License-Identifier: MIT
// Package archive: persisting and reading runs.

package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"

	"github.com/katalvlaran/rankfill/report"
)

// RunSummary is one List entry: enough to pick a run worth loading.
type RunSummary struct {
	RunID     uuid.UUID
	CreatedAt time.Time
	Rows      int
	Cols      int
	Lambda    float64
	Rank      int
	RMSE      float64
	Converged bool
}

// Save archives one run: the diagnostics record, its λ-grid trials and the
// completed-matrix CSV, atomically.
//
// Errors: ErrNilDiagnostics, ErrEmptyArtifact, ErrDuplicateRun when the
// run ID is already archived, otherwise the driver's error.
//
// Complexity: O(grid) statements inside one transaction.
func (s *Store) Save(ctx context.Context, d *report.Diagnostics, completedCSV []byte) error {
	// Stage 1 - validation.
	if d == nil {
		return fmt.Errorf("Save: %w", ErrNilDiagnostics)
	}
	if len(completedCSV) == 0 {
		return fmt.Errorf("Save: %w", ErrEmptyArtifact)
	}

	// Stage 2 - single transaction for the run and its trials.
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("Save: begin: %w", err)
	}
	defer tx.Rollback() // no-op after Commit

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, created_unix_ns, row_count, col_count, observed_fraction,
		 held_out, seed, lambda_max, lambda, rank, rmse, converged,
		 completed_csv)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		d.RunID.String(),
		d.CreatedAt.UnixNano(),
		d.Rows,
		d.Cols,
		d.ObservedFraction,
		d.HeldOut,
		d.Seed,
		d.LambdaMax,
		d.Lambda,
		d.Rank,
		d.RMSE,
		d.Converged,
		completedCSV,
	)
	if err != nil {
		var sqlErr sqlite3.Error
		if errors.As(err, &sqlErr) && sqlErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
			return fmt.Errorf("Save: run %s: %w", d.RunID, ErrDuplicateRun)
		}

		return fmt.Errorf("Save: run %s: %w", d.RunID, err)
	}

	for i, p := range d.Curve {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO trials
			(run_id, position, lambda, rmse, rank, iterations, converged)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`,
			d.RunID.String(), i, p.Lambda, p.RMSE, p.Rank, p.Iterations, p.Converged,
		)
		if err != nil {
			return fmt.Errorf("Save: trial %d: %w", i, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("Save: commit: %w", err)
	}

	return nil
}

// List returns run summaries newest-first. limit <= 0 returns all runs.
//
// Complexity: O(runs).
func (s *Store) List(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_unix_ns, row_count, col_count, lambda, rank, rmse, converged
		FROM runs
		ORDER BY created_unix_ns DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer rows.Close()

	var (
		out []RunSummary
		id  string
		ns  int64
	)
	for rows.Next() {
		var r RunSummary
		if err = rows.Scan(&id, &ns, &r.Rows, &r.Cols, &r.Lambda, &r.Rank, &r.RMSE, &r.Converged); err != nil {
			return nil, fmt.Errorf("List: scan: %w", err)
		}
		if r.RunID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("List: run id %q: %w", id, err)
		}
		r.CreatedAt = time.Unix(0, ns).UTC()
		out = append(out, r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}

	return out, nil
}

// Load reassembles the archived diagnostics record and the completed-matrix
// CSV for one run.
//
// Errors: ErrNotFound when the ID is not archived.
//
// Complexity: O(grid).
func (s *Store) Load(ctx context.Context, id uuid.UUID) (*report.Diagnostics, []byte, error) {
	// Stage 1 - the run row.
	var (
		d   = &report.Diagnostics{RunID: id}
		ns  int64
		csv []byte
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT created_unix_ns, row_count, col_count, observed_fraction,
		       held_out, seed, lambda_max, lambda, rank, rmse, converged,
		       completed_csv
		FROM runs
		WHERE id = ?
	`, id.String()).Scan(
		&ns, &d.Rows, &d.Cols, &d.ObservedFraction,
		&d.HeldOut, &d.Seed, &d.LambdaMax, &d.Lambda, &d.Rank, &d.RMSE, &d.Converged,
		&csv,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, fmt.Errorf("Load: run %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("Load: run %s: %w", id, err)
	}
	d.CreatedAt = time.Unix(0, ns).UTC()

	// Stage 2 - the trials, in grid order.
	rows, err := s.db.QueryContext(ctx, `
		SELECT lambda, rmse, rank, iterations, converged
		FROM trials
		WHERE run_id = ?
		ORDER BY position
	`, id.String())
	if err != nil {
		return nil, nil, fmt.Errorf("Load: trials: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p report.CurvePoint
		if err = rows.Scan(&p.Lambda, &p.RMSE, &p.Rank, &p.Iterations, &p.Converged); err != nil {
			return nil, nil, fmt.Errorf("Load: trials scan: %w", err)
		}
		d.Curve = append(d.Curve, p)
	}
	if err = rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("Load: trials: %w", err)
	}

	return d, csv, nil
}
