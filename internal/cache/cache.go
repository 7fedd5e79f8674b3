// Package cache implements the sqlite-backed incremental store
// internal/frontend.Cache asks for: "has this exact (module, view,
// content hash) already been checked clean, so Check can skip
// re-running the validator at all". Grounded on the teacher's
// internal/ext.Cache content-addressed build-artifact cache (sha256 of
// the relevant inputs as the lookup key, a Lookup/Store pair, a
// project-scoped cache directory) — generalized from a single
// filesystem-path cache keyed by one hash into a relational table
// keyed by (module, view) pairs, each row holding the content hash last
// checked clean, since a project has many modules and two independent
// views rather than one build output.
package cache

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Store is a sqlite-backed persistence layer satisfying
// internal/frontend.Cache. One Store is scoped to one project; Path
// is typically "<projectDir>/.luaucheck/cache.db".
type Store struct {
	db *sql.DB
}

// Open creates (or reuses) the sqlite database at path and ensures its
// schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("cache: opening %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: creating schema: %w", err)
	}
	return &Store{db: db}, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS check_results (
	module       TEXT NOT NULL,
	view         INTEGER NOT NULL,
	content_hash TEXT NOT NULL,
	PRIMARY KEY (module, view)
);
`

// Get reports whether module under view was last recorded clean at
// exactly contentHash — a stale row (a different hash) is treated as a
// miss, matching internal/frontend.Cache's contract.
func (s *Store) Get(module string, view int, contentHash string) bool {
	var stored string
	err := s.db.QueryRow(
		`SELECT content_hash FROM check_results WHERE module = ? AND view = ?`,
		module, view,
	).Scan(&stored)
	if err != nil {
		return false
	}
	return stored == contentHash
}

// Put records module/view as checked clean at contentHash, replacing
// any prior row for the same (module, view) key.
func (s *Store) Put(module string, view int, contentHash string) {
	_, _ = s.db.Exec(
		`INSERT INTO check_results (module, view, content_hash) VALUES (?, ?, ?)
		 ON CONFLICT(module, view) DO UPDATE SET content_hash = excluded.content_hash`,
		module, view, contentHash,
	)
}

// Invalidate drops module's cached rows for every view. It is not part
// of internal/frontend.Cache, and internal/frontend never calls it;
// re-registered source is caught by Get's content-hash comparison.
func (s *Store) Invalidate(module string) {
	_, _ = s.db.Exec(`DELETE FROM check_results WHERE module = ?`, module)
}

// Close releases the underlying sqlite connection.
func (s *Store) Close() error {
	return s.db.Close()
}
