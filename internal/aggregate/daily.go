// Package aggregate collapses raw submissions into per-day records.
package aggregate

import (
	"sort"
	"time"

	"github.com/Shasha12oly/growth-tracker/internal/model"
)

// Collapse groups submissions by (username, calendar date) and ORs the habit
// flags within each group: a habit counts for the day if any submission that
// day marked it done. The result maps each username to its date-sorted
// records. Pure and order-independent; days with no submissions have no
// record.
func Collapse(submissions []model.Submission) map[string][]model.DailyRecord {
	type key struct {
		username string
		date     time.Time
	}
	merged := map[key]model.HabitFlags{}
	for _, sub := range submissions {
		k := key{username: sub.Username, date: model.DateOf(sub.Timestamp)}
		if flags, ok := merged[k]; ok {
			flags.Or(sub.Habits)
			continue
		}
		merged[k] = sub.Habits.Clone()
	}

	byUser := map[string][]model.DailyRecord{}
	for k, flags := range merged {
		byUser[k.username] = append(byUser[k.username], model.DailyRecord{
			Username: k.username,
			Date:     k.date,
			Habits:   flags,
		})
	}
	for _, records := range byUser {
		sort.Slice(records, func(i, j int) bool {
			return records[i].Date.Before(records[j].Date)
		})
	}
	return byUser
}

// ComputeWindow derives the competition window from the full submission set.
// The start is the configured start date when given, otherwise the earliest
// observed date; the end is the latest observed date. Returns false when
// there are no submissions.
func ComputeWindow(submissions []model.Submission, startOverride *time.Time) (model.Window, bool) {
	if len(submissions) == 0 {
		return model.Window{}, false
	}
	earliest := model.DateOf(submissions[0].Timestamp)
	latest := earliest
	for _, sub := range submissions[1:] {
		date := model.DateOf(sub.Timestamp)
		if date.Before(earliest) {
			earliest = date
		}
		if date.After(latest) {
			latest = date
		}
	}
	start := earliest
	if startOverride != nil {
		start = model.DateOf(*startOverride)
	}
	return model.Window{Start: start, End: latest}, true
}
