package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nikhilv/quizstack/internal/quiz"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Collection keys. Each holds one JSON array in the collections table.
const (
	keyQuestionSets  = "questionSets"
	keyQuizAttempts  = "quizAttempts"
	keyQuestionStats = "questionStats"
)

const schema = `
CREATE TABLE IF NOT EXISTS collections (
    name TEXT PRIMARY KEY,
    data TEXT NOT NULL
);
`

// Store is the SQLite-backed quiz.Repository. Every collection is a
// single JSON array stored under a fixed key; writes replace the whole
// array in one statement, so each save is atomic per collection.
type Store struct {
	db *sql.DB
}

var _ quiz.Repository = (*Store)(nil)

// Open connects to the SQLite database at dsn, applies recommended
// pragmas, and creates the schema.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Reset deletes all stored collections.
func (s *Store) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM collections`); err != nil {
		return fmt.Errorf("reset collections: %w", err)
	}
	return nil
}

func (s *Store) SaveQuestionSet(ctx context.Context, set quiz.QuestionSet) error {
	var sets []quiz.QuestionSet
	if err := s.read(ctx, keyQuestionSets, &sets); err != nil {
		return err
	}
	sets = append(sets, set)
	return s.write(ctx, keyQuestionSets, sets)
}

func (s *Store) QuestionSets(ctx context.Context) ([]quiz.QuestionSet, error) {
	var sets []quiz.QuestionSet
	if err := s.read(ctx, keyQuestionSets, &sets); err != nil {
		return nil, err
	}
	return sets, nil
}

func (s *Store) SaveAttempt(ctx context.Context, att quiz.Attempt) error {
	var attempts []quiz.Attempt
	if err := s.read(ctx, keyQuizAttempts, &attempts); err != nil {
		return err
	}
	attempts = append(attempts, att)
	return s.write(ctx, keyQuizAttempts, attempts)
}

func (s *Store) Attempts(ctx context.Context) ([]quiz.Attempt, error) {
	var attempts []quiz.Attempt
	if err := s.read(ctx, keyQuizAttempts, &attempts); err != nil {
		return nil, err
	}
	return attempts, nil
}

func (s *Store) SaveQuestionStats(ctx context.Context, stats quiz.QuestionStats) error {
	var all []quiz.QuestionStats
	if err := s.read(ctx, keyQuestionStats, &all); err != nil {
		return err
	}
	replaced := false
	for i := range all {
		if all[i].ID == stats.ID {
			all[i] = stats
			replaced = true
			break
		}
	}
	if !replaced {
		all = append(all, stats)
	}
	return s.write(ctx, keyQuestionStats, all)
}

func (s *Store) QuestionStats(ctx context.Context) ([]quiz.QuestionStats, error) {
	var all []quiz.QuestionStats
	if err := s.read(ctx, keyQuestionStats, &all); err != nil {
		return nil, err
	}
	return all, nil
}

// read unmarshals the named collection into out. A missing row or a
// value that fails to unmarshal leaves out untouched, so callers see
// an empty collection rather than an error.
func (s *Store) read(ctx context.Context, name string, out any) error {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM collections WHERE name = ?`, name).Scan(&data)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read collection %s: %w", name, err)
	}
	if err := json.Unmarshal([]byte(data), out); err != nil {
		// Corrupt stored value: treated as no data.
		return nil
	}
	return nil
}

// write replaces the named collection with the serialized value.
func (s *Store) write(ctx context.Context, name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal collection %s: %w", name, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO collections (name, data) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET data = excluded.data`,
		name, string(data))
	if err != nil {
		return fmt.Errorf("write collection %s: %w", name, err)
	}
	return nil
}

// applyPragmas configures SQLite for single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. QUIZSTACK_DB environment variable
// 2. $XDG_DATA_HOME/quizstack/quizstack.db
// 3. ~/.local/share/quizstack/quizstack.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("QUIZSTACK_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "quizstack", "quizstack.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
