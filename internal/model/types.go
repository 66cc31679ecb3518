// Package model defines shared data structures.
package model

import "time"

// Habit identifies one of the tracked daily habits.
type Habit string

// Tracked habits, in display order.
const (
	HabitPhysics           Habit = "physics"
	HabitAdditionalSubject Habit = "additional_subject"
	HabitExercise          Habit = "exercise"
	HabitWakeUp            Habit = "wake_up"
	HabitScreenControl     Habit = "screen_control"
)

// AllHabits lists the tracked habits in display order.
var AllHabits = []Habit{
	HabitPhysics,
	HabitAdditionalSubject,
	HabitExercise,
	HabitWakeUp,
	HabitScreenControl,
}

// Required-habit subsets for the three streak types.
var (
	AcademicHabits = []Habit{HabitPhysics, HabitAdditionalSubject}
	PhysicalHabits = []Habit{HabitExercise}
	MentalHabits   = []Habit{HabitWakeUp, HabitScreenControl}
)

// HabitFlags maps each habit to whether it was completed.
type HabitFlags map[Habit]bool

// AllDone reports whether every habit in required is marked done.
func (f HabitFlags) AllDone(required []Habit) bool {
	for _, h := range required {
		if !f[h] {
			return false
		}
	}
	return true
}

// Or merges other into f, keeping a habit done if either side marks it done.
func (f HabitFlags) Or(other HabitFlags) {
	for h, done := range other {
		if done {
			f[h] = true
		}
	}
}

// Clone returns an independent copy of the flags.
func (f HabitFlags) Clone() HabitFlags {
	out := make(HabitFlags, len(f))
	for h, done := range f {
		out[h] = done
	}
	return out
}

// Submission is one raw habit check-in event for a user at a timestamp.
type Submission struct {
	Username  string
	Timestamp time.Time
	Habits    HabitFlags
}

// DailyRecord is the OR-collapsed habit state for one user on one calendar date.
type DailyRecord struct {
	Username string
	Date     time.Time // midnight UTC
	Habits   HabitFlags
}

// DateOf truncates a timestamp to its calendar date (midnight UTC).
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Window is the competition date range shared by all per-user computations.
type Window struct {
	Start time.Time
	End   time.Time
}

// TotalDays returns the inclusive day count of the window, never below 1.
func (w Window) TotalDays() int {
	days := int(w.End.Sub(w.Start).Hours()/24) + 1
	if days < 1 {
		return 1
	}
	return days
}

// StreakEntry is the persisted per-user streak snapshot.
type StreakEntry struct {
	AcademicStreak int    `json:"academic_streak"`
	PhysicalStreak int    `json:"physical_streak"`
	MentalStreak   int    `json:"mental_streak"`
	SavedOn        string `json:"saved_on"`
}

// UserSummary aggregates one user's scores and streaks for the leaderboard.
// DaysLogged counts raw submissions, not distinct days; streaks operate on
// the day-collapsed view. The asymmetry rewards frequent logging.
type UserSummary struct {
	Username       string
	TotalScore     float64
	AverageScore   float64
	DaysLogged     int
	DaysCounted    int
	AcademicStreak int
	PhysicalStreak int
	MentalStreak   int
}

// AnalysisConfig defines analysis settings after config and flag resolution.
type AnalysisConfig struct {
	CSVPath   string
	DBPath    string
	StatePath string
	StartDate *time.Time // nil: earliest observed submission date
	MercyDays int
	FromDB    bool
}
