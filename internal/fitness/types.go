package fitness

import (
	"strings"
	"time"
)

// DateLayout is the layout of all record and goal dates in storage. Records
// carry day granularity only, and the fixed-width layout keeps text dates
// comparable with plain string ordering.
const DateLayout = time.DateOnly

// Exercise type labels used across the store and the reconciliation engine.
// Records accept any non-empty label, these are the ones goal matching and
// metrics care about.
const (
	ExerciseRun           = "run"
	ExerciseStrength      = "strength"
	ExerciseWeightlifting = "weightlifting"
	ExercisePushup        = "pushup"
	ExerciseSquat         = "squat"
)

// IsStrengthExercise says whether an exercise type counts as a strength
// session for goal progress purposes.
func IsStrengthExercise(exerciseType string) bool {
	switch strings.ToLower(strings.TrimSpace(exerciseType)) {
	case ExerciseStrength, ExerciseWeightlifting, ExercisePushup, ExerciseSquat:
		return true
	}
	return false
}

// Day truncates a timestamp to day granularity in UTC.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
