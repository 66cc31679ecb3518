// Package summary builds the per-user leaderboard.
package summary

import (
	"sort"
	"time"

	"github.com/Shasha12oly/growth-tracker/internal/aggregate"
	"github.com/Shasha12oly/growth-tracker/internal/model"
	"github.com/Shasha12oly/growth-tracker/internal/score"
	"github.com/Shasha12oly/growth-tracker/internal/state"
	"github.com/Shasha12oly/growth-tracker/internal/streak"
)

// Result contains the leaderboard and the data it was derived from.
type Result struct {
	Summaries []model.UserSummary
	Window    model.Window
	Daily     map[string][]model.DailyRecord
	Snapshot  state.Snapshot
}

// Build runs the full pipeline: collapse submissions to daily records,
// score each user, compute the three streaks against the competition
// window, and sort the leaderboard by average score descending with
// username ascending as the tie-break. The returned snapshot carries the
// streak triples stamped with now's date.
func Build(submissions []model.Submission, startOverride *time.Time, mercyDays int, now time.Time) Result {
	window, ok := aggregate.ComputeWindow(submissions, startOverride)
	if !ok {
		return Result{Daily: map[string][]model.DailyRecord{}, Snapshot: state.Snapshot{}}
	}
	totalDays := window.TotalDays()
	daily := aggregate.Collapse(submissions)

	byUser := map[string][]model.Submission{}
	for _, sub := range submissions {
		byUser[sub.Username] = append(byUser[sub.Username], sub)
	}

	summaries := make([]model.UserSummary, 0, len(byUser))
	snapshot := make(state.Snapshot, len(byUser))
	savedOn := model.DateOf(now).Format("2006-01-02")
	for username, userSubs := range byUser {
		total := score.Total(userSubs)
		records := daily[username]
		s := model.UserSummary{
			Username:       username,
			TotalScore:     score.Round2(total),
			AverageScore:   score.Round2(score.Average(total, totalDays)),
			DaysLogged:     len(userSubs),
			DaysCounted:    totalDays,
			AcademicStreak: streak.Compute(records, model.AcademicHabits, window, mercyDays),
			PhysicalStreak: streak.Compute(records, model.PhysicalHabits, window, mercyDays),
			MentalStreak:   streak.Compute(records, model.MentalHabits, window, mercyDays),
		}
		summaries = append(summaries, s)
		snapshot[username] = model.StreakEntry{
			AcademicStreak: s.AcademicStreak,
			PhysicalStreak: s.PhysicalStreak,
			MentalStreak:   s.MentalStreak,
			SavedOn:        savedOn,
		}
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].AverageScore == summaries[j].AverageScore {
			return summaries[i].Username < summaries[j].Username
		}
		return summaries[i].AverageScore > summaries[j].AverageScore
	})

	return Result{
		Summaries: summaries,
		Window:    window,
		Daily:     daily,
		Snapshot:  snapshot,
	}
}
