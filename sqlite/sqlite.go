// Package sqlite reads docset index databases. Docsets embed their
// search index as a SQLite file; this package opens those files
// read-only, detects their table layout, and runs the matching query
// plan.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a read-only SQLite connection to one index database.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance for the index database at path.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open opens the database read-only. The index file belongs to the
// docset and is never written.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", "file:"+db.path+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection is plenty for index lookups and keeps the
	// handle cache small.
	conn.SetMaxOpenConns(1)

	// Verify the file is actually a database.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Wait out transient locks held by a docset manager updating the
	// index instead of failing immediately.
	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	db.db = conn
	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}
