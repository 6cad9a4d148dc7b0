// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/rankfill/archive"
	"github.com/katalvlaran/rankfill/report"
	"github.com/katalvlaran/rankfill/softimpute"
)

// completeOptions carries the complete command's flag values.
type completeOptions struct {
	root *rootOptions

	input         string
	output        string
	curveOut      string
	jsonOut       string
	correlOut     string
	archivePath   string
	configPath    string
	originalUnits bool

	seed            int64
	workers         int
	holdoutFraction float64
	gridSize        int
}

// newCompleteCommand builds the end-to-end pipeline command: ingest a CSV of
// scores, fit the low-rank model over a λ-grid, and export the completed
// matrix plus diagnostics.
func newCompleteCommand(root *rootOptions) *cobra.Command {
	opts := &completeOptions{root: root}

	cmd := &cobra.Command{
		Use:   "complete",
		Short: "Fill a sparse score matrix and export the result",
		Long: `Complete runs the whole pipeline: read competitor,event,score records,
apply the eligibility rules, pivot into a matrix, fit a low-rank model with
the solver, and write the completed matrix as CSV.

The completed matrix goes to stdout unless --output names a file. Curve,
diagnostics, and event-correlation exports are written only when requested.

Examples:
  rankfill complete --input scores.csv
  rankfill complete --input scores.csv --output filled.csv --original-units
  rankfill complete --input scores.csv --json diag.json --archive runs.db`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runComplete(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.input, "input", "", "CSV of competitor,event,score[,date] records (required)")
	_ = cmd.MarkFlagRequired("input")
	cmd.Flags().StringVar(&opts.output, "output", "", "write the completed matrix here (default stdout)")
	cmd.Flags().StringVar(&opts.curveOut, "curve", "", "write the lambda,rmse,rank curve CSV here")
	cmd.Flags().StringVar(&opts.jsonOut, "json", "", "write the run diagnostics JSON here")
	cmd.Flags().StringVar(&opts.correlOut, "correlations", "", "write the event-correlation matrix CSV here")
	cmd.Flags().StringVar(&opts.archivePath, "archive", "", "append the run to this SQLite archive")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "YAML file with filter rules and solver options")
	cmd.Flags().BoolVar(&opts.originalUnits, "original-units", false, "undo standardization before exporting the matrix")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "seed for the holdout split")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "concurrent lambda trials (0 = sequential)")
	cmd.Flags().Float64Var(&opts.holdoutFraction, "holdout-fraction", 0, "share of observed cells held out for selection")
	cmd.Flags().IntVar(&opts.gridSize, "grid-size", 0, "number of lambda grid points")

	return cmd
}

// applyCompleteFlags overlays explicitly set flags onto the loaded config.
// Precedence is flags over file over defaults.
func applyCompleteFlags(cmd *cobra.Command, opts *completeOptions, cfg *Config) {
	if cmd.Flags().Changed("original-units") {
		cfg.Output.OriginalUnits = opts.originalUnits
	}
	if cmd.Flags().Changed("seed") {
		cfg.Solver.Seed = opts.seed
	}
	if cmd.Flags().Changed("workers") {
		cfg.Solver.Workers = opts.workers
	}
	if cmd.Flags().Changed("holdout-fraction") {
		cfg.Solver.HoldoutFraction = opts.holdoutFraction
	}
	if cmd.Flags().Changed("grid-size") {
		cfg.Solver.GridSize = opts.gridSize
	}
}

func runComplete(cmd *cobra.Command, opts *completeOptions) error {
	logger := newLogger(opts.root, "complete")

	cfg, err := LoadConfig(opts.configPath)
	if err != nil {
		return err
	}
	applyCompleteFlags(cmd, opts, &cfg)

	table, err := loadTable(logger, opts.input, cfg.Filter)
	if err != nil {
		return err
	}

	solver := cfg.Solver.options()
	logger.WithFields(logrus.Fields{
		"grid_size":        solver.GridSize,
		"holdout_fraction": solver.HoldoutFraction,
		"seed":             solver.Seed,
		"workers":          solver.Workers,
	}).Info("fit started")

	res, err := softimpute.Estimate(table.Matrix, solver)
	if err != nil {
		return err
	}
	warnStale(logger, res, solver)

	diag, err := report.FromResult(table.Matrix, res, solver)
	if err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{
		"run_id": diag.RunID,
		"lambda": res.Lambda,
		"rank":   res.Rank,
		"rmse":   res.RMSE,
	}).Info("model selected")

	// Render the completed matrix once; the same bytes feed the export
	// target and the archive.
	exported := res.Completed
	if cfg.Output.OriginalUnits {
		if exported, err = res.Stats.Invert(res.Completed); err != nil {
			return err
		}
	}
	var buf bytes.Buffer
	if err = table.WriteCompleted(&buf, exported); err != nil {
		return err
	}

	if err = writeTo(opts.output, cmd.OutOrStdout(), func(w io.Writer) error {
		_, werr := w.Write(buf.Bytes())

		return werr
	}); err != nil {
		return err
	}

	if opts.curveOut != "" {
		if err = writeTo(opts.curveOut, cmd.OutOrStdout(), diag.WriteCurveCSV); err != nil {
			return err
		}
	}
	if opts.jsonOut != "" {
		if err = writeTo(opts.jsonOut, cmd.OutOrStdout(), diag.WriteJSON); err != nil {
			return err
		}
	}
	if opts.correlOut != "" {
		var corr *report.CorrMatrix
		if corr, err = report.EventCorrelations(res.Completed, table.Events); err != nil {
			return err
		}
		if err = writeTo(opts.correlOut, cmd.OutOrStdout(), corr.WriteCSV); err != nil {
			return err
		}
	}

	if opts.archivePath != "" {
		if err = archiveRun(cmd, opts.archivePath, diag, buf.Bytes()); err != nil {
			return err
		}
		logger.WithFields(logrus.Fields{
			"run_id":  diag.RunID,
			"archive": opts.archivePath,
		}).Info("run archived")
	}

	return nil
}

// warnStale logs when the refit or any grid trial ran out of iterations.
// Exhausted budgets are reported, not fatal: the model is still usable.
func warnStale(logger *logrus.Entry, res *softimpute.Result, solver softimpute.Options) {
	if !res.Converged {
		logger.WithFields(logrus.Fields{
			"lambda":         res.Lambda,
			"max_iterations": solver.MaxIterations,
		}).Warn("final refit exhausted its iteration budget")
	}

	var stale int
	for _, tr := range res.Path.Trials {
		if !tr.Converged {
			stale++
		}
	}
	if stale > 0 {
		logger.WithFields(logrus.Fields{
			"trials":         stale,
			"max_iterations": solver.MaxIterations,
		}).Warn("lambda trials exhausted their iteration budget")
	}
}

// archiveRun appends one finished run to the SQLite archive at path.
func archiveRun(cmd *cobra.Command, path string, diag *report.Diagnostics, completed []byte) error {
	st, err := archive.Open(path)
	if err != nil {
		return err
	}
	defer st.Close()

	return st.Save(cmd.Context(), diag, completed)
}
