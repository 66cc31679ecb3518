package report

import (
	"fmt"
	"io"

	"github.com/Shasha12oly/growth-tracker/internal/model"
)

// RenderLeaderboard prints the competition window and the summary table.
func RenderLeaderboard(w io.Writer, summaries []model.UserSummary, window model.Window) error {
	if len(summaries) == 0 {
		_, err := fmt.Fprintln(w, "No submissions found.")
		return err
	}
	if _, err := fmt.Fprintf(w, "Competition start: %s\n", window.Start.Format("2006-01-02")); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Latest data point: %s\n", window.End.Format("2006-01-02")); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Days counted: %d\n\n", window.TotalDays()); err != nil {
		return err
	}

	headers := []string{"Rank", "User", "Total", "Avg", "Logged", "Academic", "Physical", "Mental"}
	rows := make([][]string, 0, len(summaries))
	for i, s := range summaries {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			s.Username,
			fmt.Sprintf("%.2f", s.TotalScore),
			fmt.Sprintf("%.2f", s.AverageScore),
			fmt.Sprintf("%d", s.DaysLogged),
			fmt.Sprintf("%d", s.AcademicStreak),
			fmt.Sprintf("%d", s.PhysicalStreak),
			fmt.Sprintf("%d", s.MentalStreak),
		})
	}
	rightAlign := map[int]bool{0: true, 2: true, 3: true, 4: true, 5: true, 6: true, 7: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
