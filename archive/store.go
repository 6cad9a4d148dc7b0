// SPDX-License-Identifier: MIT
// Package archive: database lifecycle.

package archive

import (
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Schema version history:
//
//	0 - empty database (pre-migration)
//	1 - initial runs + trials tables
const currentSchemaVersion = 1

// Store is a run archive backed by a single SQLite file.
type Store struct {
	db *sql.DB
}

// Open creates or opens the archive at path and applies pragmas and the
// schema. Idempotent: reopening an existing archive is a no-op beyond
// version stamping.
//
// SQLite admits one writer at a time, so the pool is capped at a single
// connection; WAL mode keeps readers unblocked during writes.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("Open: %w", err)
	}
	if err = db.Ping(); err != nil {
		db.Close()

		return nil, fmt.Errorf("Open: ping: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err = applyPragmas(db); err != nil {
		db.Close()

		return nil, fmt.Errorf("Open: %w", err)
	}
	if err = applySchema(db); err != nil {
		db.Close()

		return nil, fmt.Errorf("Open: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database handle. Safe on a nil or closed store.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}

	return s.db.Close()
}

// DB exposes the underlying handle for ad-hoc inspection queries. Prefer
// the Store methods for anything the archive already answers.
func (s *Store) DB() *sql.DB {
	return s.db
}

// applyPragmas sets the required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("pragma %q: %w", pragma, err)
		}
	}

	return nil
}

// applySchema creates missing tables and stamps the schema version.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("schema: %w", err)
	}

	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("schema: read user_version: %w", err)
	}
	if version > currentSchemaVersion {
		return fmt.Errorf("schema: archive version %d is newer than this build supports (%d)",
			version, currentSchemaVersion)
	}

	// Incremental migrations slot in here as versions accrue; v1 is fully
	// covered by the CREATE IF NOT EXISTS statements above.
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("schema: stamp user_version: %w", err)
	}

	return nil
}
