// Package sqlite implements repository.Store on SQLite (modernc.org/sqlite,
// pure Go, no CGo).
//
// SCHEMA AND CASCADES:
// Every child table references its parent with ON DELETE CASCADE, but the
// store does not rely on it. Each delete walks the foreign references itself
// inside one transaction (see cascade.go); the FK actions only guard against a
// path that was missed.
//
// CONNECTIONS:
// The pool is limited to one connection. SQLite serializes writers anyway, a
// ":memory:" database exists per connection, and PRAGMA foreign_keys is
// per-connection state.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/realspace/realspace/internal/repository"
)

// Page sizes applied to repository.ListOptions.
const (
	defaultLimit = 50
	maxLimit     = 200
)

// DB wraps a sql.DB connection pool and implements repository.Store.
type DB struct {
	conn *sql.DB
}

var _ repository.Store = (*DB)(nil)

// New opens (creating if needed) the database at dbPath and runs migrations.
// Use ":memory:" for a throwaway database.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets readers proceed during a write. In-memory databases ignore it.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}
	return db, nil
}

// Close closes the connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema. CREATE ... IF NOT EXISTS makes it idempotent.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id                TEXT PRIMARY KEY,
			username          TEXT NOT NULL UNIQUE COLLATE NOCASE,
			display_name      TEXT NOT NULL,
			email             TEXT NOT NULL UNIQUE,
			password_hash     TEXT NOT NULL,
			bio               TEXT NOT NULL DEFAULT '',
			profile_image_url TEXT,
			created_at        DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS posts (
			id         TEXT PRIMARY KEY,
			author_id  TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			action     TEXT NOT NULL,
			subject    TEXT NOT NULL,
			content    TEXT,
			image_url  TEXT,
			created_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_posts_author_id ON posts(author_id);
		CREATE INDEX IF NOT EXISTS idx_posts_created_at ON posts(created_at);

		CREATE TABLE IF NOT EXISTS post_likes (
			post_id TEXT NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
			user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			PRIMARY KEY (post_id, user_id)
		);

		CREATE TABLE IF NOT EXISTS topics (
			id          TEXT PRIMARY KEY,
			name        TEXT NOT NULL UNIQUE COLLATE NOCASE,
			description TEXT NOT NULL DEFAULT '',
			created_at  DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS topic_posts (
			id         TEXT PRIMARY KEY,
			topic_id   TEXT NOT NULL REFERENCES topics(id) ON DELETE CASCADE,
			author_id  TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			content    TEXT NOT NULL,
			created_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_topic_posts_topic_id ON topic_posts(topic_id);
		CREATE INDEX IF NOT EXISTS idx_topic_posts_author_id ON topic_posts(author_id);

		CREATE TABLE IF NOT EXISTS topic_post_likes (
			topic_post_id TEXT NOT NULL REFERENCES topic_posts(id) ON DELETE CASCADE,
			user_id       TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			PRIMARY KEY (topic_post_id, user_id)
		);

		CREATE TABLE IF NOT EXISTS comments (
			id            TEXT PRIMARY KEY,
			author_id     TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			post_id       TEXT REFERENCES posts(id) ON DELETE CASCADE,
			topic_post_id TEXT REFERENCES topic_posts(id) ON DELETE CASCADE,
			content       TEXT NOT NULL,
			created_at    DATETIME NOT NULL,
			CHECK ((post_id IS NULL) <> (topic_post_id IS NULL))
		);
		CREATE INDEX IF NOT EXISTS idx_comments_post_id ON comments(post_id);
		CREATE INDEX IF NOT EXISTS idx_comments_topic_post_id ON comments(topic_post_id);

		CREATE TABLE IF NOT EXISTS entities (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			address    TEXT NOT NULL,
			image_url  TEXT,
			created_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS events (
			id          TEXT PRIMARY KEY,
			entity_id   TEXT NOT NULL REFERENCES entities(id) ON DELETE CASCADE,
			name        TEXT NOT NULL,
			date        DATETIME NOT NULL,
			description TEXT,
			link        TEXT,
			image_url   TEXT,
			created_at  DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_events_entity_id ON events(entity_id);

		CREATE TABLE IF NOT EXISTS list_items (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			action     TEXT NOT NULL,
			subject    TEXT NOT NULL,
			is_public  BOOLEAN NOT NULL DEFAULT FALSE,
			created_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_list_items_user_id ON list_items(user_id);
	`)
	if err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}
	return nil
}

// withTx runs fn in a transaction, committing when it returns nil.
func (db *DB) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing transaction: %w", err)
	}
	return nil
}

// now is the creation timestamp for new rows. UTC keeps the stored text
// sortable.
func now() time.Time {
	return time.Now().UTC()
}

func page(opts repository.ListOptions) (limit, offset int) {
	limit = opts.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	offset = max(opts.Offset, 0)
	return limit, offset
}

// nullable maps an optional string to a SQL value.
func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// ptr maps a scanned optional column back to *string.
func ptr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure on column.
func isUniqueViolation(err error, column string) bool {
	return err != nil &&
		strings.Contains(err.Error(), "UNIQUE constraint failed") &&
		strings.Contains(err.Error(), column)
}

// affected turns a zero-row result into a not-found error.
func affected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}

func noRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
