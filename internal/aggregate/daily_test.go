package aggregate

import (
	"reflect"
	"testing"
	"time"

	"github.com/Shasha12oly/growth-tracker/internal/model"
)

func submission(username string, ts time.Time, done ...model.Habit) model.Submission {
	flags := make(model.HabitFlags, len(model.AllHabits))
	for _, h := range done {
		flags[h] = true
	}
	return model.Submission{Username: username, Timestamp: ts, Habits: flags}
}

func TestCollapseORsSameDay(t *testing.T) {
	day := time.Date(2023, time.October, 10, 0, 0, 0, 0, time.UTC)
	subs := []model.Submission{
		submission("alice", day.Add(8*time.Hour), model.HabitPhysics),
		submission("alice", day.Add(20*time.Hour), model.HabitExercise),
	}
	daily := Collapse(subs)
	records := daily["alice"]
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	rec := records[0]
	if !rec.Habits[model.HabitPhysics] || !rec.Habits[model.HabitExercise] {
		t.Fatalf("expected OR-merged flags, got %+v", rec.Habits)
	}
	if rec.Habits[model.HabitWakeUp] {
		t.Fatalf("expected wake_up to stay false")
	}
	if !rec.Date.Equal(day) {
		t.Fatalf("expected date %v, got %v", day, rec.Date)
	}
}

func TestCollapseSeparatesUsersAndDays(t *testing.T) {
	day1 := time.Date(2023, time.October, 10, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2023, time.October, 12, 9, 0, 0, 0, time.UTC)
	subs := []model.Submission{
		submission("alice", day1, model.HabitPhysics),
		submission("alice", day2, model.HabitPhysics),
		submission("bob", day1, model.HabitExercise),
	}
	daily := Collapse(subs)
	if len(daily) != 2 {
		t.Fatalf("expected 2 users, got %d", len(daily))
	}
	if len(daily["alice"]) != 2 {
		t.Fatalf("expected 2 records for alice, got %d", len(daily["alice"]))
	}
	if !daily["alice"][0].Date.Before(daily["alice"][1].Date) {
		t.Fatalf("expected date-sorted records")
	}
	if len(daily["bob"]) != 1 {
		t.Fatalf("expected 1 record for bob, got %d", len(daily["bob"]))
	}
}

func TestCollapseIdempotent(t *testing.T) {
	day := time.Date(2023, time.October, 10, 0, 0, 0, 0, time.UTC)
	subs := []model.Submission{
		submission("alice", day.Add(8*time.Hour), model.HabitPhysics),
		submission("alice", day.Add(9*time.Hour), model.HabitWakeUp),
		submission("bob", day.Add(10*time.Hour)),
	}
	first := Collapse(subs)
	second := Collapse(subs)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical tables on repeated runs")
	}
}

func TestComputeWindow(t *testing.T) {
	subs := []model.Submission{
		submission("alice", time.Date(2023, time.October, 12, 9, 0, 0, 0, time.UTC)),
		submission("bob", time.Date(2023, time.October, 10, 23, 0, 0, 0, time.UTC)),
		submission("alice", time.Date(2023, time.October, 14, 7, 0, 0, 0, time.UTC)),
	}
	window, ok := ComputeWindow(subs, nil)
	if !ok {
		t.Fatalf("expected a window")
	}
	if window.Start.Day() != 10 || window.End.Day() != 14 {
		t.Fatalf("unexpected window: %+v", window)
	}
	if window.TotalDays() != 5 {
		t.Fatalf("expected 5 total days, got %d", window.TotalDays())
	}
}

func TestComputeWindowWithOverride(t *testing.T) {
	subs := []model.Submission{
		submission("alice", time.Date(2023, time.October, 12, 9, 0, 0, 0, time.UTC)),
	}
	start := time.Date(2023, time.October, 1, 0, 0, 0, 0, time.UTC)
	window, ok := ComputeWindow(subs, &start)
	if !ok {
		t.Fatalf("expected a window")
	}
	if window.Start.Day() != 1 {
		t.Fatalf("expected overridden start, got %v", window.Start)
	}
	if window.TotalDays() != 12 {
		t.Fatalf("expected 12 total days, got %d", window.TotalDays())
	}
}

func TestComputeWindowEmpty(t *testing.T) {
	if _, ok := ComputeWindow(nil, nil); ok {
		t.Fatalf("expected no window for empty input")
	}
}

func TestWindowTotalDaysFloor(t *testing.T) {
	// A start date after the last observed date must not yield a zero or
	// negative denominator.
	window := model.Window{
		Start: time.Date(2023, time.November, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2023, time.October, 1, 0, 0, 0, 0, time.UTC),
	}
	if window.TotalDays() != 1 {
		t.Fatalf("expected floor of 1, got %d", window.TotalDays())
	}
}
