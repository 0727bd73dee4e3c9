// Package exercisedb holds the bulk-imported, read-only exercise
// catalog in a local sqlite database, separate from the file-backed
// custom exercises.
package exercisedb

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a catalog slug does not exist.
var ErrNotFound = errors.New("catalog exercise not found")

// DB wraps the catalog database and provides its query methods.
type DB struct {
	sql *sql.DB
}

// Open opens (or creates) the catalog database at path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging catalog db: %w", err)
	}
	// One writer at a time keeps modernc's sqlite happy under load.
	db.SetMaxOpenConns(1)
	return &DB{sql: db}, nil
}

// Close closes the underlying database.
func (db *DB) Close() error {
	return db.sql.Close()
}

// RunMigrations applies all pending migrations from the given directory.
func RunMigrations(dbPath, migrationsPath string) error {
	m, err := migrate.New("file://"+migrationsPath, "sqlite://"+dbPath)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}
