package prefstore

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strconv"

	_ "embed"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var Schema string

// KeyDebugMode stores the user's persisted debug preference.
const KeyDebugMode = "debug_mode"

// Store is a small sqlite-backed key/value store for preferences that
// survive across runs.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	_, err := db.Exec(Schema)
	if err != nil {
		return Store{}, err
	}
	return Store{db: db}, nil
}

// Open opens (creating if necessary) a preference database at the
// given path.
func Open(path string) (Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Store{}, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return Store{}, err
	}
	return NewStore(db)
}

func (s Store) Close() error {
	return s.db.Close()
}

func (s Store) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(
		ctx,
		`SELECT value FROM preference WHERE key = ?`,
		key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s Store) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO preference (key, value) VALUES (?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

// GetBool returns false for missing or unparseable values.
func (s Store) GetBool(ctx context.Context, key string) (bool, error) {
	value, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, nil
	}
	return parsed, nil
}

func (s Store) SetBool(ctx context.Context, key string, value bool) error {
	return s.Set(ctx, key, strconv.FormatBool(value))
}
