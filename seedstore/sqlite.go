package seedstore

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

// migrations is an ordered list of SQL statements applied on startup.
// Each entry is idempotent (IF NOT EXISTS) so re-running is safe.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS seed (
		id   INTEGER PRIMARY KEY CHECK (id = 1),
		blob BLOB NOT NULL
	)`,
}

// SQLite persists the seed in a SQLite database, for deployments that
// already carry one for other state. The NVS-class backend.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (or creates) a SQLite database at path and runs
// migrations.
func NewSQLite(path string) (*SQLite, error) {
	dsn := fmt.Sprintf("%s?_journal=WAL&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite handles one writer at a time.

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		db.Close() //nolint:errcheck
		return nil, err
	}
	return s, nil
}

func (s *SQLite) migrate() error {
	for _, stmt := range migrations {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migration: %w", err)
		}
	}
	return nil
}

// Close releases database resources.
func (s *SQLite) Close() error { return s.db.Close() }

func (s *SQLite) Load() ([]byte, error) {
	var blob []byte
	err := s.db.QueryRow(`SELECT blob FROM seed WHERE id = 1`).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSeed
	}
	return blob, err
}

func (s *SQLite) Save(seed []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO seed (id, blob) VALUES (1, ?)
		 ON CONFLICT (id) DO UPDATE SET blob = excluded.blob`, seed)
	return err
}

func (s *SQLite) Erase() error {
	// Blank the row before deleting it so the old bytes are not left
	// behind in free pages, then vacuum to rewrite the file.
	if _, err := s.db.Exec(`UPDATE seed SET blob = zeroblob(length(blob)) WHERE id = 1`); err != nil {
		return err
	}
	if _, err := s.db.Exec(`DELETE FROM seed WHERE id = 1`); err != nil {
		return err
	}
	_, err := s.db.Exec(`VACUUM`)
	return err
}
