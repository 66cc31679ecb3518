package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Shasha12oly/growth-tracker/internal/model"
)

func submission(username string, ts time.Time, done ...model.Habit) model.Submission {
	flags := make(model.HabitFlags, len(model.AllHabits))
	for _, h := range model.AllHabits {
		flags[h] = false
	}
	for _, h := range done {
		flags[h] = true
	}
	return model.Submission{Username: username, Timestamp: ts, Habits: flags}
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "growth.db")
	st, err := Open(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestImportAndList(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	subs := []model.Submission{
		submission("alice", time.Date(2023, time.October, 25, 8, 30, 0, 0, time.UTC), model.HabitPhysics, model.HabitWakeUp),
		submission("bob", time.Date(2023, time.October, 24, 9, 0, 0, 0, time.UTC), model.HabitExercise),
	}
	inserted, err := st.ImportSubmissions(ctx, subs)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if inserted != 2 {
		t.Fatalf("expected 2 inserted, got %d", inserted)
	}

	listed, err := st.ListSubmissions(ctx, ListFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 submissions, got %d", len(listed))
	}
	// Ordered by submission time.
	if listed[0].Username != "bob" || listed[1].Username != "alice" {
		t.Fatalf("unexpected order: %s, %s", listed[0].Username, listed[1].Username)
	}
	if !listed[1].Habits[model.HabitPhysics] || listed[1].Habits[model.HabitExercise] {
		t.Fatalf("unexpected flags: %+v", listed[1].Habits)
	}
}

func TestImportIdempotent(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	subs := []model.Submission{
		submission("alice", time.Date(2023, time.October, 25, 8, 30, 0, 0, time.UTC), model.HabitPhysics),
	}
	if _, err := st.ImportSubmissions(ctx, subs); err != nil {
		t.Fatalf("import: %v", err)
	}
	inserted, err := st.ImportSubmissions(ctx, subs)
	if err != nil {
		t.Fatalf("re-import: %v", err)
	}
	if inserted != 0 {
		t.Fatalf("expected 0 inserted on re-import, got %d", inserted)
	}
	listed, err := st.ListSubmissions(ctx, ListFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected 1 submission after re-import, got %d", len(listed))
	}
}

func TestListFilters(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	subs := []model.Submission{
		submission("alice", time.Date(2023, time.October, 20, 8, 0, 0, 0, time.UTC)),
		submission("alice", time.Date(2023, time.October, 25, 8, 0, 0, 0, time.UTC)),
		submission("bob", time.Date(2023, time.October, 25, 9, 0, 0, 0, time.UTC)),
	}
	if _, err := st.ImportSubmissions(ctx, subs); err != nil {
		t.Fatalf("import: %v", err)
	}

	byUser, err := st.ListSubmissions(ctx, ListFilter{Username: "alice"})
	if err != nil {
		t.Fatalf("list by user: %v", err)
	}
	if len(byUser) != 2 {
		t.Fatalf("expected 2 alice submissions, got %d", len(byUser))
	}

	since := time.Date(2023, time.October, 23, 0, 0, 0, 0, time.UTC)
	recent, err := st.ListSubmissions(ctx, ListFilter{Since: &since})
	if err != nil {
		t.Fatalf("list since: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 recent submissions, got %d", len(recent))
	}
}
