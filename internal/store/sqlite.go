// ABOUTME: SQLite backend for the remote document store (offline mode).
// ABOUTME: Uses modernc.org/sqlite (pure Go, no CGO required).
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/harperreed/healthlog/internal/models"
	_ "modernc.org/sqlite"
)

const documentsSchema = `
CREATE TABLE IF NOT EXISTS documents (
	category  TEXT NOT NULL,
	date_key  TEXT NOT NULL,
	record_id TEXT NOT NULL,
	doc       BLOB NOT NULL,
	PRIMARY KEY (category, date_key, record_id)
);
CREATE INDEX IF NOT EXISTS idx_documents_bucket ON documents(category, date_key);
`

// SQLiteStore keeps date-bucketed documents in a local SQLite file.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// OpenSQLite opens or creates a SQLite-backed store at the given path.
func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	// Ensure parent directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Set file permissions
	if err := os.Chmod(dbPath, 0600); err != nil && !os.IsNotExist(err) {
		_ = db.Close()
		return nil, fmt.Errorf("set database permissions: %w", err)
	}

	s := &SQLiteStore{db: db, dbPath: dbPath}

	// Configure pragmas for better performance
	if err := s.configurePragmas(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("configure pragmas: %w", err)
	}

	if _, err := db.Exec(documentsSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return s, nil
}

// DataDir returns the default data directory following XDG spec.
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "healthlog")
}

// DefaultSQLitePath returns the default database path following XDG spec.
func DefaultSQLitePath() string {
	return filepath.Join(DataDir(), "healthlog.db")
}

// configurePragmas sets up SQLite for optimal performance.
func (s *SQLiteStore) configurePragmas() error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := s.db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %s: %w", pragma, err)
		}
	}
	return nil
}

// Put upserts one document in its date bucket.
func (s *SQLiteStore) Put(ctx context.Context, category models.Category, dateKey, recordID string, doc []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (category, date_key, record_id, doc)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (category, date_key, record_id) DO UPDATE SET doc = excluded.doc`,
		string(category), dateKey, recordID, doc)
	if err != nil {
		return NewError(KindNetwork, "put", err)
	}
	return nil
}

// Delete removes one document. Absent documents are not an error.
func (s *SQLiteStore) Delete(ctx context.Context, category models.Category, dateKey, recordID string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM documents WHERE category = ? AND date_key = ? AND record_id = ?`,
		string(category), dateKey, recordID)
	if err != nil {
		return NewError(KindNetwork, "delete", err)
	}
	return nil
}

// ListUnder returns every document in a date bucket by record ID.
func (s *SQLiteStore) ListUnder(ctx context.Context, category models.Category, dateKey string) (map[string][]byte, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT record_id, doc FROM documents WHERE category = ? AND date_key = ?`,
		string(category), dateKey)
	if err != nil {
		return nil, NewError(KindNetwork, "list", err)
	}
	defer rows.Close()

	results := make(map[string][]byte)
	for rows.Next() {
		var id string
		var doc []byte
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, NewError(KindSerialization, "list", err)
		}
		results[id] = doc
	}
	if err := rows.Err(); err != nil {
		return nil, NewError(KindNetwork, "list", err)
	}
	return results, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
