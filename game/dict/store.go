package dict

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

const schema = `
CREATE TABLE IF NOT EXISTS words (
	word       TEXT PRIMARY KEY,
	definition TEXT NOT NULL DEFAULT ''
);`

// SQLiteStore keeps dictionary entries in a SQLite database so large word
// lists can be imported once and reopened without reparsing.
type SQLiteStore struct {
	db *sql.DB
}

// OpenStore opens (and creates if missing) the SQLite database at dsn and
// applies the schema.
func OpenStore(dsn string) (*SQLiteStore, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open dictionary db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply dictionary schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Import upserts every entry in a single transaction and returns the number
// of rows written. Invalid words are rejected before anything is written.
func (s *SQLiteStore) Import(ctx context.Context, definitions map[string]string) (int, error) {
	for w := range definitions {
		if !isUpperAlpha(w) {
			return 0, fmt.Errorf("%w: %q", ErrInvalidWord, w)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO words (word, definition) VALUES (?, ?)
		 ON CONFLICT(word) DO UPDATE SET definition = excluded.definition`)
	if err != nil {
		return 0, fmt.Errorf("prepare import: %w", err)
	}
	defer stmt.Close()

	n := 0
	for w, def := range definitions {
		if _, err := stmt.ExecContext(ctx, w, def); err != nil {
			return n, fmt.Errorf("import %s: %w", w, err)
		}
		n++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}
	log.Info().Int("words", n).Msg("imported dictionary into sqlite")
	return n, nil
}

// Definitions returns the full word -> definition mapping.
func (s *SQLiteStore) Definitions(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT word, definition FROM words`)
	if err != nil {
		return nil, fmt.Errorf("query words: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var w, def string
		if err := rows.Scan(&w, &def); err != nil {
			return nil, fmt.Errorf("scan word: %w", err)
		}
		out[w] = def
	}
	return out, rows.Err()
}

// Define looks up a single word (any case).
func (s *SQLiteStore) Define(ctx context.Context, word string) (*Entry, error) {
	w := strings.ToUpper(strings.TrimSpace(word))
	var def string
	err := s.db.QueryRowContext(ctx, `SELECT definition FROM words WHERE word = ?`, w).Scan(&def)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrWordNotFound, w)
	}
	if err != nil {
		return nil, fmt.Errorf("define %s: %w", w, err)
	}
	return &Entry{Word: w, Definition: def}, nil
}

// Count returns the number of stored words.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM words`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count words: %w", err)
	}
	return n, nil
}

// Load builds a Dictionary from everything in the store.
func (s *SQLiteStore) Load(ctx context.Context) (*Dictionary, error) {
	defs, err := s.Definitions(ctx)
	if err != nil {
		return nil, err
	}
	return New(defs)
}
