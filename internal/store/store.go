// Package store handles SQLite persistence for the submission archive.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Shasha12oly/growth-tracker/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for archived submissions.
type Store struct {
	db *sql.DB
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
	store := &Store{db: db}
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
		`CREATE TABLE IF NOT EXISTS submissions (
			id INTEGER PRIMARY KEY,
			username TEXT NOT NULL,
			submitted_at TEXT NOT NULL,
			physics INTEGER NOT NULL,
			additional_subject INTEGER NOT NULL,
			exercise INTEGER NOT NULL,
			wake_up INTEGER NOT NULL,
			screen_control INTEGER NOT NULL,
			UNIQUE (username, submitted_at)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_submissions_submitted_at ON submissions(submitted_at);`,
		`CREATE INDEX IF NOT EXISTS idx_submissions_username ON submissions(username);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// ImportSubmissions archives submissions, skipping rows already present for
// the same (username, submitted_at). Re-importing an export is a no-op.
func (s *Store) ImportSubmissions(ctx context.Context, submissions []model.Submission) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	// Rollback is a no-op after a successful commit.
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO submissions (username, submitted_at, physics, additional_subject, exercise, wake_up, screen_control)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()

	var inserted int64
	for _, sub := range submissions {
		res, err := stmt.ExecContext(ctx,
			sub.Username,
			sub.Timestamp.Format(time.RFC3339Nano),
			boolToInt(sub.Habits[model.HabitPhysics]),
			boolToInt(sub.Habits[model.HabitAdditionalSubject]),
			boolToInt(sub.Habits[model.HabitExercise]),
			boolToInt(sub.Habits[model.HabitWakeUp]),
			boolToInt(sub.Habits[model.HabitScreenControl]),
		)
		if err != nil {
			return 0, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, err
		}
		inserted += n
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

// ListFilter narrows ListSubmissions output.
type ListFilter struct {
	Username string
	Since    *time.Time
}

// ListSubmissions returns archived submissions ordered by submission time.
func (s *Store) ListSubmissions(ctx context.Context, filter ListFilter) ([]model.Submission, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if filter.Username != "" {
		clauses = append(clauses, "username = ?")
		args = append(args, filter.Username)
	}
	if filter.Since != nil {
		clauses = append(clauses, "submitted_at >= ?")
		args = append(args, filter.Since.Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT username, submitted_at, physics, additional_subject, exercise, wake_up, screen_control
		FROM submissions
		WHERE %s
		ORDER BY submitted_at ASC`, strings.Join(clauses, " AND "))
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

	var submissions []model.Submission
	for rows.Next() {
		var (
			username    string
			submittedAt string
			flags       [5]int
		)
		if err := rows.Scan(&username, &submittedAt, &flags[0], &flags[1], &flags[2], &flags[3], &flags[4]); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, submittedAt)
		if err != nil {
			return nil, err
		}
		submissions = append(submissions, model.Submission{
			Username:  username,
			Timestamp: parsed,
			Habits: model.HabitFlags{
				model.HabitPhysics:           flags[0] != 0,
				model.HabitAdditionalSubject: flags[1] != 0,
				model.HabitExercise:          flags[2] != 0,
				model.HabitWakeUp:            flags[3] != 0,
				model.HabitScreenControl:     flags[4] != 0,
			},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return submissions, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
