package report

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/Shasha12oly/growth-tracker/internal/model"
	"github.com/Shasha12oly/growth-tracker/internal/score"
)

// WeekBounds returns the Monday start of now's week and the exclusive end
// one week later.
func WeekBounds(now time.Time) (time.Time, time.Time) {
	date := model.DateOf(now)
	offset := (int(date.Weekday()) + 6) % 7 // days since Monday
	start := date.AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 7)
}

// FilterWeek returns submissions whose timestamps fall in [start, end).
func FilterWeek(submissions []model.Submission, start, end time.Time) []model.Submission {
	var out []model.Submission
	for _, sub := range submissions {
		ts := model.DateOf(sub.Timestamp)
		if ts.Before(start) || !ts.Before(end) {
			continue
		}
		out = append(out, sub)
	}
	return out
}

type weeklyRow struct {
	username   string
	totalScore float64
	daysLogged int
}

// RenderWeekly prints the weekly league table and cumulative score curves
// for the week containing now.
func RenderWeekly(w io.Writer, submissions []model.Submission, now time.Time, width int) error {
	start, end := WeekBounds(now)
	week := FilterWeek(submissions, start, end)
	if len(week) == 0 {
		_, err := fmt.Fprintln(w, "No data for this week.")
		return err
	}

	byUser := map[string][]model.Submission{}
	for _, sub := range week {
		byUser[sub.Username] = append(byUser[sub.Username], sub)
	}
	league := make([]weeklyRow, 0, len(byUser))
	for username, subs := range byUser {
		league = append(league, weeklyRow{
			username:   username,
			totalScore: score.Total(subs),
			daysLogged: len(subs),
		})
	}
	// Weekly league ranks by total score, unlike the overall leaderboard.
	sort.Slice(league, func(i, j int) bool {
		if league[i].totalScore == league[j].totalScore {
			return league[i].username < league[j].username
		}
		return league[i].totalScore > league[j].totalScore
	})

	if _, err := fmt.Fprintf(w, "Weekly league (%s to %s)\n\n",
		start.Format("2006-01-02"), end.AddDate(0, 0, -1).Format("2006-01-02")); err != nil {
		return err
	}
	headers := []string{"User", "Total", "Logged", "Avg"}
	rows := make([][]string, 0, len(league))
	for _, row := range league {
		avg := score.Round2(row.totalScore / float64(row.daysLogged))
		rows = append(rows, []string{
			row.username,
			fmt.Sprintf("%.2f", row.totalScore),
			fmt.Sprintf("%d", row.daysLogged),
			fmt.Sprintf("%.2f", avg),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}

	series := make([]Series, 0, len(league))
	for _, row := range league {
		subs := byUser[row.username]
		sort.Slice(subs, func(i, j int) bool {
			return subs[i].Timestamp.Before(subs[j].Timestamp)
		})
		values := make([]float64, len(subs))
		var cum float64
		for i, sub := range subs {
			cum += score.Submission(sub)
			values[i] = cum
		}
		series = append(series, Series{Name: row.username, Values: values})
	}
	return PlotSeries(w, "Cumulative scores", series, plotWidthArg(width), 0)
}
