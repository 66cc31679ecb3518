package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/Shasha12oly/growth-tracker/internal/model"
	"github.com/Shasha12oly/growth-tracker/internal/score"
)

// RenderUserReport prints one user's summary, daily-score trend, and
// per-habit completion rates.
func RenderUserReport(w io.Writer, s model.UserSummary, submissions []model.Submission, width int) error {
	if _, err := fmt.Fprintf(w, "Growth report for %s\n\n", s.Username); err != nil {
		return err
	}
	lines := []string{
		fmt.Sprintf("Total score:     %.2f", s.TotalScore),
		fmt.Sprintf("Average score:   %.2f", s.AverageScore),
		fmt.Sprintf("Days logged:     %d", s.DaysLogged),
		fmt.Sprintf("Days counted:    %d", s.DaysCounted),
		fmt.Sprintf("Academic streak: %d", s.AcademicStreak),
		fmt.Sprintf("Physical streak: %d", s.PhysicalStreak),
		fmt.Sprintf("Mental streak:   %d", s.MentalStreak),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}

	if len(submissions) == 0 {
		_, err := fmt.Fprintln(w, "No submissions for this user.")
		return err
	}

	sorted := make([]model.Submission, len(submissions))
	copy(sorted, submissions)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})
	scores := make([]float64, len(sorted))
	for i, sub := range sorted {
		scores[i] = score.Submission(sub)
	}
	if err := PlotSeries(w, "Daily Score Trend", []Series{{Name: "Score", Values: scores}}, plotWidthArg(width), 0); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Trend: %s\n\n", Sparkline(scores)); err != nil {
		return err
	}

	return renderHabitRates(w, sorted)
}

// renderHabitRates prints per-habit completion rates across submissions.
func renderHabitRates(w io.Writer, submissions []model.Submission) error {
	if _, err := fmt.Fprintln(w, "Habit completion"); err != nil {
		return err
	}
	headers := []string{"Habit", "Done", "Rate"}
	rows := make([][]string, 0, len(model.AllHabits))
	for _, habit := range model.AllHabits {
		done := 0
		for _, sub := range submissions {
			if sub.Habits[habit] {
				done++
			}
		}
		rate := float64(done) / float64(len(submissions))
		rows = append(rows, []string{
			string(habit),
			fmt.Sprintf("%d/%d", done, len(submissions)),
			fmt.Sprintf("%.0f%%", rate*100),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func plotWidthArg(totalWidth int) int {
	if totalWidth <= 0 {
		return 0
	}
	return plotWidthFor(totalWidth)
}
