// Package ingest loads and normalizes habit submissions from CSV form exports.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/Shasha12oly/growth-tracker/internal/model"
)

// Timestamp layouts accepted in form exports, tried in order.
var timestampLayouts = []string{
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006/01/02 15:04:05",
	"2006-01-02",
}

// Result holds parsed submissions plus operator warnings.
type Result struct {
	Submissions       []model.Submission
	DroppedTimestamps int
	DroppedDuplicates int
	TypoWarnings      []string
}

// LoadCSV reads and normalizes a submission CSV from disk.
func LoadCSV(path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to open csv: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			// Best-effort close of a read-only file.
			_ = cerr
		}
	}()
	return Parse(f)
}

// Parse normalizes a submission CSV: form-style headers are mapped to
// canonical columns, habit values are coerced to booleans, rows with
// unparseable timestamps are dropped and counted, and exact duplicates on
// (username, timestamp) are dropped keeping the first occurrence.
func Parse(r io.Reader) (Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return Result{}, fmt.Errorf("csv is empty")
	}
	if err != nil {
		return Result{}, fmt.Errorf("failed to read csv header: %w", err)
	}

	columns := mapColumns(header)
	if _, ok := columns["username"]; !ok {
		return Result{}, fmt.Errorf("csv has no username column")
	}
	if _, ok := columns["timestamp"]; !ok {
		return Result{}, fmt.Errorf("csv has no timestamp column")
	}

	var result Result
	seen := map[string]struct{}{}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Result{}, fmt.Errorf("failed to read csv row: %w", err)
		}

		username := strings.TrimSpace(field(row, columns["username"]))
		if username == "" {
			continue
		}
		ts, ok := parseTimestamp(field(row, columns["timestamp"]))
		if !ok {
			result.DroppedTimestamps++
			continue
		}

		key := username + "\x00" + ts.Format(time.RFC3339)
		if _, dup := seen[key]; dup {
			result.DroppedDuplicates++
			continue
		}
		seen[key] = struct{}{}

		flags := make(model.HabitFlags, len(model.AllHabits))
		for _, habit := range model.AllHabits {
			idx, ok := columns[string(habit)]
			if !ok {
				// Missing habit column counts as not done.
				flags[habit] = false
				continue
			}
			flags[habit] = coerceDone(field(row, idx))
		}

		result.Submissions = append(result.Submissions, model.Submission{
			Username:  username,
			Timestamp: ts,
			Habits:    flags,
		})
	}

	result.TypoWarnings = typoWarnings(result.Submissions)
	return result, nil
}

func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// mapColumns matches normalized form headers to canonical column names.
// Form exports carry the full question text as the header, so matching is
// by prefix after normalization.
func mapColumns(header []string) map[string]int {
	columns := map[string]int{}
	prefixes := []struct {
		prefix string
		name   string
	}{
		{"username", "username"},
		{"timestamp", "timestamp"},
		{"physics", string(model.HabitPhysics)},
		{"additional_subject", string(model.HabitAdditionalSubject)},
		{"exercise", string(model.HabitExercise)},
		{"wake_up", string(model.HabitWakeUp)},
		{"screen_control", string(model.HabitScreenControl)},
	}
	for i, raw := range header {
		normalized := normalizeHeader(raw)
		for _, p := range prefixes {
			if strings.HasPrefix(normalized, p.prefix) {
				if _, exists := columns[p.name]; !exists {
					columns[p.name] = i
				}
				break
			}
		}
	}
	return columns
}

func normalizeHeader(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.NewReplacer("(", "", ")", "", "/", "", ".", "", ":", "", "\n", "").Replace(s)
	return s
}

// coerceDone maps a habit cell to a boolean. Only "done" and "yes" count;
// anything else, including unset or unknown values, is not done.
func coerceDone(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "done", "yes":
		return true
	default:
		return false
	}
}

func parseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// typoWarnings flags username pairs where one name contains the other
// case-insensitively. Cosmetic only; nothing is merged or renamed.
func typoWarnings(submissions []model.Submission) []string {
	unique := map[string]struct{}{}
	for _, s := range submissions {
		unique[s.Username] = struct{}{}
	}
	names := make([]string, 0, len(unique))
	for name := range unique {
		names = append(names, name)
	}
	sort.Strings(names)

	var warnings []string
	for _, name := range names {
		lower := strings.ToLower(name)
		var similar []string
		for _, other := range names {
			if other == name {
				continue
			}
			otherLower := strings.ToLower(other)
			if strings.Contains(lower, otherLower) || strings.Contains(otherLower, lower) {
				similar = append(similar, other)
			}
		}
		if len(similar) > 0 {
			warnings = append(warnings, fmt.Sprintf("potential typo for %q: similar usernames %s", name, strings.Join(similar, ", ")))
		}
	}
	return warnings
}
