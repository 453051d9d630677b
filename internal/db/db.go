package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// OpenDB opens the SQLite database at the given path, creating parent
// directories as needed. ":memory:" gives an in-memory database. WAL mode
// and foreign keys are enabled and migrations run before returning.
func OpenDB(path string) (*sql.DB, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	sdb, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := sdb.Exec("PRAGMA journal_mode = WAL"); err != nil {
		sdb.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}
	if _, err := sdb.Exec("PRAGMA foreign_keys = ON"); err != nil {
		sdb.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	if err := Migrate(sdb); err != nil {
		sdb.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return sdb, nil
}
