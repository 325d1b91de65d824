// Package sqlite provides a SQLite-backed implementation of storage.KV.
//
// WAL mode is enabled on Open so that readers never block writers and vice
// versa: the HTTP handlers read collections while mutating calls write them.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// Register the pure-Go SQLite driver.
	// modernc.org/sqlite avoids CGO requirements, making it easier to build
	// and run in Docker (Alpine).
	_ "modernc.org/sqlite"
)

// schema is the DDL executed once on startup. One row per collection key;
// the value column holds the JSON document for that collection.
const schema = `
CREATE TABLE IF NOT EXISTS kv_entries (
    key         TEXT PRIMARY KEY,
    value       BLOB NOT NULL,

    -- Wall-clock time of the last write (RFC3339 stored as TEXT, SQLite idiom).
    updated_at  TEXT NOT NULL
);
`

// KV is the SQLite implementation of storage.KV.
type KV struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at the given path and applies
// the schema.
//
//	kv, err := sqlite.Open("./data/store.db")
func Open(path string) (*KV, error) {
	// The pure-Go driver uses _pragma query parameters to configure connection
	// state. WAL enables concurrent readers. busy_timeout waits for locks
	// instead of failing immediately.
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)

	// Use "sqlite", not "sqlite3" for the modernc driver.
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}

	// SQLite performs best with a single writer connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: apply schema: %w", err)
	}

	return &KV{db: db}, nil
}

// Close releases the database connection. Call it with defer in main().
func (k *KV) Close() error {
	return k.db.Close()
}

// DB exposes the underlying handle so sibling repositories (e.g. the checkout
// audit log) can share the same database file.
func (k *KV) DB() *sql.DB {
	return k.db
}

func (k *KV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	const q = `SELECT value FROM kv_entries WHERE key = ?`

	var value []byte
	err := k.db.QueryRowContext(ctx, q, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("sqlite: get %q: %w", key, err)
	}
	return value, true, nil
}

func (k *KV) Put(ctx context.Context, key string, value []byte) error {
	const q = `
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	_, err := k.db.ExecContext(ctx, q, key, value,
		time.Now().UTC().Format("2006-01-02T15:04:05.999999999Z"))
	if err != nil {
		return fmt.Errorf("sqlite: put %q: %w", key, err)
	}
	return nil
}

func (k *KV) Delete(ctx context.Context, key string) error {
	const q = `DELETE FROM kv_entries WHERE key = ?`

	if _, err := k.db.ExecContext(ctx, q, key); err != nil {
		return fmt.Errorf("sqlite: delete %q: %w", key, err)
	}
	return nil
}
