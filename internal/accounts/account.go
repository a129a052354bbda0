package accounts

import (
	"strings"
	"time"
)

// FitnessLevel is the self-declared training level on a profile.
type FitnessLevel string

const (
	FitnessLevelBeginner     FitnessLevel = "beginner"
	FitnessLevelIntermediate FitnessLevel = "intermediate"
	FitnessLevelAdvanced     FitnessLevel = "advanced"
	FitnessLevelProfessional FitnessLevel = "professional"
)

func (fl FitnessLevel) Valid() bool {
	switch fl {
	case FitnessLevelBeginner, FitnessLevelIntermediate, FitnessLevelAdvanced, FitnessLevelProfessional:
		return true
	}
	return false
}

type Account struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Profile is the 1:1 companion row of an account. Updates replace the whole
// profile, there are no partial profile updates.
type Profile struct {
	ID                 int          `json:"id"`
	AccountID          int          `json:"accountId"`
	Name               string       `json:"name"`
	StudentID          *string      `json:"studentId,omitempty"`
	Age                *int         `json:"age,omitempty"`
	HeightCm           *float64     `json:"heightCm,omitempty"`
	WeightKg           *float64     `json:"weightKg,omitempty"`
	FitnessLevel       FitnessLevel `json:"fitnessLevel"`
	PreferredExercises []string     `json:"preferredExercises"`
}

// preferred exercises are persisted as one comma separated text column
func joinPreferredExercises(preferred []string) string {
	cleaned := make([]string, 0, len(preferred))
	for _, p := range preferred {
		if p = strings.TrimSpace(p); p != "" {
			cleaned = append(cleaned, strings.ToLower(p))
		}
	}
	return strings.Join(cleaned, ",")
}

func splitPreferredExercises(raw string) []string {
	if raw == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	preferred := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			preferred = append(preferred, p)
		}
	}
	return preferred
}
