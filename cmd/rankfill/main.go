// SPDX-License-Identifier: MIT
// rankfill - skill-matrix completion pipeline.
//
// Ingests competitor,event,score records, filters them by eligibility
// rules, fits a low-rank completion with cross-validated shrinkage and
// exports the completed matrix plus run diagnostics. See each subcommand's
// help for details.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "rankfill:", err)
		os.Exit(1)
	}
}
