// Package streak computes mercy-tolerant habit streaks.
package streak

import (
	"time"

	"github.com/Shasha12oly/growth-tracker/internal/model"
)

// DefaultMercyDays is the number of consecutive missing days tolerated
// before a streak breaks.
const DefaultMercyDays = 2

// Compute returns the length of a user's active streak for the given
// required-habit subset.
//
// The walk starts at the most recent logged date and moves one day backward
// at a time down to the window start:
//   - a logged day with all required habits done extends the streak and
//     resets the missing-day counter;
//   - a logged day missing any required habit breaks the streak immediately,
//     mercy notwithstanding;
//   - a day with no record consumes tolerance, breaking once more than
//     mercyDays missing days occur in a row.
//
// A user whose most recent log is more than mercyDays before the window end
// has no visible streak, regardless of history.
func Compute(records []model.DailyRecord, required []model.Habit, window model.Window, mercyDays int) int {
	if len(records) == 0 {
		return 0
	}

	logged := make(map[time.Time]struct{}, len(records))
	valid := make(map[time.Time]struct{}, len(records))
	lastLog := model.DateOf(records[0].Date)
	for _, rec := range records {
		date := model.DateOf(rec.Date)
		logged[date] = struct{}{}
		if rec.Habits.AllDone(required) {
			valid[date] = struct{}{}
		}
		if date.After(lastLog) {
			lastLog = date
		}
	}

	end := model.DateOf(window.End)
	if daysBetween(lastLog, end) > mercyDays {
		return 0
	}

	start := model.DateOf(window.Start)
	streak := 0
	missingInARow := 0
	for cur := lastLog; !cur.Before(start); cur = cur.AddDate(0, 0, -1) {
		if _, ok := logged[cur]; ok {
			if _, ok := valid[cur]; !ok {
				break
			}
			streak++
			missingInARow = 0
			continue
		}
		missingInARow++
		if missingInARow > mercyDays {
			break
		}
	}
	return streak
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
