package goals

import (
	"fmt"
	"strings"
	"time"

	"github.com/index-create7/self-health-mis/internal/fitness"
)

// GoalType is the closed set of supported goal kinds. Each type defines both
// which records affect it and how progress is aggregated from them.
type GoalType string

const (
	// GoalWeeklyRunCount counts run records in the goal window.
	GoalWeeklyRunCount GoalType = "weekly_run_count"
	// GoalWeeklyTotalDuration sums the duration of all records in the window.
	GoalWeeklyTotalDuration GoalType = "weekly_total_duration"
	// GoalMonthlyRunDistance sums the distance of run records that carry one.
	GoalMonthlyRunDistance GoalType = "monthly_run_distance"
	// GoalStrengthSessionCount counts strength type sessions in the window.
	GoalStrengthSessionCount GoalType = "strength_session_count"
)

func ParseGoalType(s string) (GoalType, error) {
	gt := GoalType(strings.ToLower(strings.TrimSpace(s)))
	if !gt.Valid() {
		return "", fmt.Errorf("unknown goal type: %q", s)
	}
	return gt, nil
}

func (gt GoalType) Valid() bool {
	switch gt {
	case GoalWeeklyRunCount, GoalWeeklyTotalDuration, GoalMonthlyRunDistance, GoalStrengthSessionCount:
		return true
	}
	return false
}

// AffectedBy says whether a record of the given exercise type can move this
// goal's progress. Distance goals need the record to actually carry a
// distance.
func (gt GoalType) AffectedBy(exerciseType string, distanceKm *float64) bool {
	switch gt {
	case GoalWeeklyRunCount:
		return exerciseType == fitness.ExerciseRun
	case GoalWeeklyTotalDuration:
		return true
	case GoalMonthlyRunDistance:
		return exerciseType == fitness.ExerciseRun && distanceKm != nil
	case GoalStrengthSessionCount:
		return fitness.IsStrengthExercise(exerciseType)
	}
	return false
}

// Goal tracks progress toward a target over an inclusive date window.
// CurrentValue is always clamped to [0, TargetValue].
type Goal struct {
	ID           int       `json:"id"`
	AccountID    int       `json:"accountId"`
	Type         GoalType  `json:"type"`
	TargetValue  float64   `json:"targetValue"`
	CurrentValue float64   `json:"currentValue"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	Completed    bool      `json:"completed"`
}

// GoalParams filters goal listings.
type GoalParams struct {
	AccountID        int
	IncludeCompleted bool
}
