// SPDX-License-Identifier: MIT

package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// rootOptions holds the flags shared by every subcommand.
type rootOptions struct {
	Verbose bool
}

// newRootCommand assembles the CLI tree.
func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "rankfill",
		Short: "Low-rank completion of competitor-by-event skill matrices",
		Long: `rankfill estimates the scores competitors never posted.

It assembles a partially observed competitor-by-event matrix from raw
records, standardizes each event column, selects the shrinkage strength on
held-out cells and fills the gaps with a low-rank model. Matrix exports go
to stdout or files; logs go to stderr.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug-level logging")

	cmd.AddCommand(newCompleteCommand(opts))
	cmd.AddCommand(newPathCommand(opts))
	cmd.AddCommand(newRunsCommand(opts))

	return cmd
}

// newLogger builds the stderr logger; stdout stays clean for exports.
func newLogger(opts *rootOptions, component string) *logrus.Entry {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	if opts.Verbose {
		l.SetLevel(logrus.DebugLevel)
	}

	return l.WithField("component", component)
}
