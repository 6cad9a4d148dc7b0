// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/rankfill/dataset"
)

// loadTable runs the ingestion front half shared by complete and path:
// read records, apply eligibility rules, pivot to a labeled matrix.
func loadTable(logger *logrus.Entry, path string, fc FilterConfig) (*dataset.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("input: %w", err)
	}
	defer f.Close()

	obs, err := dataset.ReadCSV(f)
	if err != nil {
		return nil, err
	}
	logger.WithFields(logrus.Fields{
		"path":    path,
		"records": len(obs),
	}).Info("records ingested")

	rules, err := fc.rules(logger)
	if err != nil {
		return nil, err
	}
	kept, _, err := dataset.Filter(obs, rules)
	if err != nil {
		return nil, err
	}

	table, err := dataset.Pivot(kept)
	if err != nil {
		return nil, err
	}
	logger.WithFields(logrus.Fields{
		"competitors": len(table.Competitors),
		"events":      len(table.Events),
		"observed":    table.Matrix.ObservedCount(),
	}).Info("matrix assembled")

	return table, nil
}

// writeTo streams fn into the file at path, or into w when path is empty.
func writeTo(path string, w io.Writer, fn func(io.Writer) error) error {
	if path == "" {
		return fn(w)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = fn(f); err != nil {
		f.Close()

		return err
	}

	return f.Close()
}
