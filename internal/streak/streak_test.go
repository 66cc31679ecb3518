package streak

import (
	"testing"
	"time"

	"github.com/Shasha12oly/growth-tracker/internal/model"
)

func date(day int) time.Time {
	return time.Date(2023, time.October, day, 0, 0, 0, 0, time.UTC)
}

func record(day int, done ...model.Habit) model.DailyRecord {
	flags := make(model.HabitFlags, len(model.AllHabits))
	for _, h := range done {
		flags[h] = true
	}
	return model.DailyRecord{Username: "u", Date: date(day), Habits: flags}
}

func allDone(day int) model.DailyRecord {
	return record(day, model.AllHabits...)
}

func TestComputeNoRecords(t *testing.T) {
	window := model.Window{Start: date(1), End: date(14)}
	if got := Compute(nil, model.AcademicHabits, window, DefaultMercyDays); got != 0 {
		t.Fatalf("expected 0 for empty history, got %d", got)
	}
}

func TestComputeHardBreakPrecedence(t *testing.T) {
	// Valid Oct 10-12, logged-but-invalid Oct 13, valid Oct 14. The walk
	// must stop at the hard break even with unused mercy, counting only
	// Oct 14.
	records := []model.DailyRecord{
		allDone(10),
		allDone(11),
		allDone(12),
		record(13, model.HabitExercise), // logged, academic habits not done
		allDone(14),
	}
	window := model.Window{Start: date(1), End: date(14)}
	if got := Compute(records, model.AcademicHabits, window, DefaultMercyDays); got != 1 {
		t.Fatalf("expected streak 1, got %d", got)
	}
}

func TestComputeMercyBoundary(t *testing.T) {
	// A gap of exactly mercyDays missing days does not break the streak.
	records := []model.DailyRecord{
		allDone(1),
		allDone(4),
	}
	window := model.Window{Start: date(1), End: date(4)}
	if got := Compute(records, model.PhysicalHabits, window, 2); got != 2 {
		t.Fatalf("expected streak 2 across a 2-day gap, got %d", got)
	}
}

func TestComputeMercyExceeded(t *testing.T) {
	// A gap of mercyDays+1 stops the walk; the earlier valid day is never
	// reached.
	records := []model.DailyRecord{
		allDone(1),
		allDone(5),
	}
	window := model.Window{Start: date(1), End: date(5)}
	if got := Compute(records, model.PhysicalHabits, window, 2); got != 1 {
		t.Fatalf("expected streak 1 after a 3-day gap, got %d", got)
	}
}

func TestComputeStaleUser(t *testing.T) {
	records := []model.DailyRecord{
		allDone(1),
		allDone(2),
		allDone(3),
	}
	window := model.Window{Start: date(1), End: date(10)}
	if got := Compute(records, model.MentalHabits, window, 2); got != 0 {
		t.Fatalf("expected 0 for a stale user, got %d", got)
	}
}

func TestComputeLastLogExactlyAtMercy(t *testing.T) {
	records := []model.DailyRecord{
		allDone(11),
		allDone(12),
	}
	window := model.Window{Start: date(1), End: date(14)}
	if got := Compute(records, model.PhysicalHabits, window, 2); got != 2 {
		t.Fatalf("expected streak 2 when last log is exactly mercy days old, got %d", got)
	}
}

func TestComputeStopsAtWindowStart(t *testing.T) {
	records := []model.DailyRecord{
		allDone(1),
		allDone(2),
		allDone(3),
		allDone(4),
		allDone(5),
	}
	window := model.Window{Start: date(3), End: date(5)}
	if got := Compute(records, model.AcademicHabits, window, 2); got != 3 {
		t.Fatalf("expected streak 3 clipped to window start, got %d", got)
	}
}

func TestComputeSubsetsIndependent(t *testing.T) {
	// Exercise done every day, academics only on the last. The physical
	// streak runs long while the academic streak is cut by hard breaks.
	records := []model.DailyRecord{
		record(12, model.HabitExercise),
		record(13, model.HabitExercise),
		record(14, model.HabitExercise, model.HabitPhysics, model.HabitAdditionalSubject),
	}
	window := model.Window{Start: date(1), End: date(14)}
	if got := Compute(records, model.PhysicalHabits, window, 2); got != 3 {
		t.Fatalf("expected physical streak 3, got %d", got)
	}
	if got := Compute(records, model.AcademicHabits, window, 2); got != 1 {
		t.Fatalf("expected academic streak 1, got %d", got)
	}
}

func TestComputeDeterministic(t *testing.T) {
	records := []model.DailyRecord{
		allDone(10),
		allDone(12),
		allDone(14),
	}
	window := model.Window{Start: date(1), End: date(14)}
	first := Compute(records, model.MentalHabits, window, 2)
	for i := 0; i < 5; i++ {
		if got := Compute(records, model.MentalHabits, window, 2); got != first {
			t.Fatalf("expected deterministic result %d, got %d", first, got)
		}
	}
	if first != 3 {
		t.Fatalf("expected streak 3 with alternating gaps, got %d", first)
	}
}

func TestComputeZeroMercy(t *testing.T) {
	records := []model.DailyRecord{
		allDone(12),
		allDone(14),
	}
	window := model.Window{Start: date(1), End: date(14)}
	if got := Compute(records, model.PhysicalHabits, window, 0); got != 1 {
		t.Fatalf("expected streak 1 with zero mercy, got %d", got)
	}
}
