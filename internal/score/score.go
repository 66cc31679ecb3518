// Package score applies habit weights to submissions.
package score

import (
	"math"

	"github.com/Shasha12oly/growth-tracker/internal/model"
)

// Weights assigns points per completed habit. Harder habits score more.
var Weights = map[model.Habit]float64{
	model.HabitPhysics:           2.0,
	model.HabitAdditionalSubject: 2.0,
	model.HabitExercise:          1.5,
	model.HabitWakeUp:            1.0,
	model.HabitScreenControl:     1.0,
}

// Submission returns the weighted score of one submission.
func Submission(sub model.Submission) float64 {
	var total float64
	for habit, weight := range Weights {
		if sub.Habits[habit] {
			total += weight
		}
	}
	return total
}

// Total sums the scores of all submissions. Same-day submissions each
// contribute; totals are not deduplicated by calendar day.
func Total(submissions []model.Submission) float64 {
	var total float64
	for _, sub := range submissions {
		total += Submission(sub)
	}
	return total
}

// Average divides a total score by the competition day count.
func Average(total float64, totalDays int) float64 {
	if totalDays < 1 {
		totalDays = 1
	}
	return total / float64(totalDays)
}

// Round2 rounds to two decimal places for display.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
