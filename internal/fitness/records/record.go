package records

import "time"

// Record is one logged workout. Date carries day granularity only, optional
// measurements stay nil when not provided.
type Record struct {
	ID              int       `json:"id"`
	AccountID       int       `json:"accountId"`
	Date            time.Time `json:"date"`
	ExerciseType    string    `json:"exerciseType"`
	DurationMinutes float64   `json:"durationMinutes"`
	DistanceKm      *float64  `json:"distanceKm,omitempty"`
	Calories        *int      `json:"calories,omitempty"`
	Official        bool      `json:"official"`
	CheckedIn       bool      `json:"checkedIn"`
	Intensity       *float64  `json:"intensity,omitempty"`
	RecoveryQuality *float64  `json:"recoveryQuality,omitempty"`
	Notes           *string   `json:"notes,omitempty"`
}

// RecordParams filters record listings. Nil range bounds mean unbounded,
// nil Official means both official and casual records.
type RecordParams struct {
	AccountID int
	From      *time.Time
	To        *time.Time
	Official  *bool
}

// AnnotationsUpdate is a partial update of the wellness annotations of a
// record. Nil fields keep their stored value.
type AnnotationsUpdate struct {
	CheckedIn       *bool    `json:"checkedIn,omitempty"`
	Intensity       *float64 `json:"intensity,omitempty"`
	RecoveryQuality *float64 `json:"recoveryQuality,omitempty"`
	Notes           *string  `json:"notes,omitempty"`
}

func (u AnnotationsUpdate) Empty() bool {
	return u.CheckedIn == nil && u.Intensity == nil && u.RecoveryQuality == nil && u.Notes == nil
}
