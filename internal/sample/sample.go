// Package sample generates form-style sample datasets.
package sample

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"time"
)

// Form headers as exported by the submission form; ingestion normalizes
// these back to canonical columns, so generated files exercise the full
// pipeline.
var formHeaders = []string{
	"Timestamp",
	"Username (Use same username always. It is case sensitive so keep that also in mind)",
	"Physics (45 minutes is minimum)",
	"Additional subject (Do any one out of chemistry or maths for at least 45 minutes)",
	"Exercise (Do 50 pushups and 50 situps or run 2km or do whatever you can accept as doing something physical)",
	"Wake up ( Wake up before 6:00 AM)",
	"Screen control (The wasteful screen time must be less than 1 hour )",
}

// DefaultUsers are the sample participants.
var DefaultUsers = []string{"Zenx", "Kritarth", "exe", "DharmXveer"}

// Generator produces randomized sample submissions.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator for the given seed; a zero seed uses the clock.
func New(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// WriteCSV emits a sample dataset: each user logs a random number of
// entries on random days within the window, with random habit outcomes.
func (g *Generator) WriteCSV(w io.Writer, users []string, start time.Time, days int) error {
	if len(users) == 0 {
		return fmt.Errorf("no users given")
	}
	if days <= 0 {
		return fmt.Errorf("days must be > 0")
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(formHeaders); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, user := range users {
		entries := days - g.rnd.Intn(days/4+1)
		for i := 0; i < entries; i++ {
			day := start.AddDate(0, 0, g.rnd.Intn(days))
			ts := time.Date(day.Year(), day.Month(), day.Day(),
				8+g.rnd.Intn(15), g.rnd.Intn(60), 0, 0, time.UTC)
			row := []string{ts.Format("1/2/2006 15:04:05"), user}
			for range formHeaders[2:] {
				row = append(row, g.pickOutcome())
			}
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("failed to write row: %w", err)
			}
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

func (g *Generator) pickOutcome() string {
	if g.rnd.Float64() < 0.6 {
		return "Done"
	}
	return "Not done"
}
