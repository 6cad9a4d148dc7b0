// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/rankfill/archive"
)

// runsOptions carries the runs subtree's flag values.
type runsOptions struct {
	root *rootOptions

	archivePath  string
	limit        int
	completedOut string
	curveOut     string
}

// newRunsCommand builds the archive-inspection subtree: list past runs and
// show one run's full record.
func newRunsCommand(root *rootOptions) *cobra.Command {
	opts := &runsOptions{root: root}

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect archived completion runs",
		Long: `Runs reads the SQLite archive that complete --archive writes to.

Examples:
  rankfill runs list --archive runs.db
  rankfill runs show 0f1e2d3c-4b5a-6978-8796-a5b4c3d2e1f0 --archive runs.db`,
	}
	cmd.PersistentFlags().StringVar(&opts.archivePath, "archive", "", "SQLite run archive (required)")
	_ = cmd.MarkPersistentFlagRequired("archive")

	list := &cobra.Command{
		Use:   "list",
		Short: "Summarize archived runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRunsList(cmd, opts)
		},
	}
	list.Flags().IntVar(&opts.limit, "limit", 0, "max runs to print (0 = all)")

	show := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Print one archived run's diagnostics as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRunsShow(cmd, opts, args[0])
		},
	}
	show.Flags().StringVar(&opts.completedOut, "output", "", "also write the archived completed matrix here")
	show.Flags().StringVar(&opts.curveOut, "curve", "", "also write the curve CSV here")

	cmd.AddCommand(list, show)

	return cmd
}

func runRunsList(cmd *cobra.Command, opts *runsOptions) error {
	st, err := archive.Open(opts.archivePath)
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.List(cmd.Context(), opts.limit)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(w, "no archived runs")

		return nil
	}

	fmt.Fprintf(w, "%-36s  %-20s  %-9s  %4s  %10s  %8s  %s\n",
		"RUN", "CREATED", "SIZE", "RANK", "LAMBDA", "RMSE", "CONVERGED")
	for _, r := range runs {
		fmt.Fprintf(w, "%-36s  %-20s  %-9s  %4d  %10.4g  %8.4f  %t\n",
			r.RunID,
			r.CreatedAt.Format(time.RFC3339),
			fmt.Sprintf("%dx%d", r.Rows, r.Cols),
			r.Rank, r.Lambda, r.RMSE, r.Converged)
	}

	return nil
}

func runRunsShow(cmd *cobra.Command, opts *runsOptions, rawID string) error {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return fmt.Errorf("run id %q: %w", rawID, err)
	}

	st, err := archive.Open(opts.archivePath)
	if err != nil {
		return err
	}
	defer st.Close()

	diag, completed, err := st.Load(cmd.Context(), id)
	if err != nil {
		return err
	}

	if opts.completedOut != "" {
		if err = os.WriteFile(opts.completedOut, completed, 0o644); err != nil {
			return err
		}
	}
	if opts.curveOut != "" {
		if err = writeTo(opts.curveOut, cmd.OutOrStdout(), diag.WriteCurveCSV); err != nil {
			return err
		}
	}

	return diag.WriteJSON(cmd.OutOrStdout())
}
