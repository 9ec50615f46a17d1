package db

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory schedule database.
const MemoryPath = ":memory:"

// schedulePragmas are applied by the driver to every new connection.
var schedulePragmas = []string{
	"foreign_keys(1)",
	"busy_timeout(5000)",
	"journal_mode(WAL)",
}

// dsn builds a modernc.org/sqlite connection string for path.
func dsn(path string) string {
	q := url.Values{}
	for _, p := range schedulePragmas {
		if path == MemoryPath && p == "journal_mode(WAL)" {
			continue
		}
		q.Add("_pragma", p)
	}
	if path == MemoryPath {
		return "file::memory:?" + q.Encode()
	}
	return "file:" + path + "?" + q.Encode()
}

// OpenDB opens the schedule database at path, creating its directory, and
// brings the schema up to date. Phases cascade with their project, so foreign
// keys are always on.
func OpenDB(path string) (*sql.DB, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating schedule db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("opening schedule db %s: %w", path, err)
	}
	// Every ":memory:" connection is its own database.
	db.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating schedule db: %w", err)
	}
	return db, nil
}
