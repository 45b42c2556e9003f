// Package store handles SQLite persistence of the server question bank.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver.
)

// GeneralMode is the bank served when a mode has no questions of its own.
const GeneralMode = "general"

// ErrEmptyQuestion is returned when adding a blank question.
var ErrEmptyQuestion = errors.New("question text is empty")

// Question is a stored question row.
type Question struct {
	ID        int64
	Mode      string
	Text      string
	CreatedAt time.Time
}

// Store wraps SQLite access for questions.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db, now: time.Now}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS questions (
			id INTEGER PRIMARY KEY,
			mode TEXT NOT NULL,
			text TEXT NOT NULL,
			position INTEGER NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_questions_mode ON questions(mode, position);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// SeedIfEmpty inserts banks when the table holds no rows yet. It reports
// whether anything was inserted.
func (s *Store) SeedIfEmpty(ctx context.Context, banks map[string][]string) (bool, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM questions`).Scan(&count); err != nil {
		return false, err
	}
	if count > 0 || len(banks) == 0 {
		return false, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	modes := make([]string, 0, len(banks))
	for mode := range banks {
		modes = append(modes, mode)
	}
	sort.Strings(modes)
	createdAt := s.now().UTC().Format(time.RFC3339Nano)
	for _, mode := range modes {
		for i, text := range banks[mode] {
			if _, err = tx.ExecContext(ctx,
				`INSERT INTO questions (mode, text, position, created_at) VALUES (?, ?, ?, ?)`,
				normalizeMode(mode), text, i, createdAt); err != nil {
				return false, err
			}
		}
	}
	if err = tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

// AddQuestion appends text to the bank of mode.
func (s *Store) AddQuestion(ctx context.Context, mode, text string) (int64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, ErrEmptyQuestion
	}
	mode = normalizeMode(mode)
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO questions (mode, text, position, created_at)
		 VALUES (?, ?, (SELECT COALESCE(MAX(position), -1) + 1 FROM questions WHERE mode = ?), ?)`,
		mode, text, mode, s.now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return 0, fmt.Errorf("failed to insert question: %w", err)
	}
	return res.LastInsertId()
}

// ListQuestions returns the question texts of mode in insertion order,
// falling back to the general bank when mode has none.
func (s *Store) ListQuestions(ctx context.Context, mode string) ([]string, error) {
	mode = normalizeMode(mode)
	rows, err := s.List(ctx, mode)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 && mode != GeneralMode {
		rows, err = s.List(ctx, GeneralMode)
		if err != nil {
			return nil, err
		}
	}
	texts := make([]string, len(rows))
	for i, q := range rows {
		texts[i] = q.Text
	}
	return texts, nil
}

// List returns stored rows for mode, or every row when mode is empty.
func (s *Store) List(ctx context.Context, mode string) ([]Question, error) {
	query := `SELECT id, mode, text, created_at FROM questions`
	args := []any{}
	if strings.TrimSpace(mode) != "" {
		query += ` WHERE mode = ?`
		args = append(args, normalizeMode(mode))
	}
	query += ` ORDER BY mode ASC, position ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []Question
	for rows.Next() {
		var q Question
		var createdAt string
		if err := rows.Scan(&q.ID, &q.Mode, &q.Text, &createdAt); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, err
		}
		q.CreatedAt = parsed
		result = append(result, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func normalizeMode(mode string) string {
	mode = strings.ToLower(strings.TrimSpace(mode))
	if mode == "" {
		return GeneralMode
	}
	return mode
}
