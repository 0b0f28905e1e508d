package domain

import "time"

// Training intensities a profile may declare. An empty value means unset.
const (
	IntensityLight  = "light"
	IntensityMedium = "medium"
	IntensityHard   = "hard"
)

const (
	MinSkillLevel = 1
	MaxSkillLevel = 10
)

type Profile struct {
	ID                string    `json:"id" db:"id"`
	UserID            string    `json:"user_id" db:"user_id"`
	Name              string    `json:"name" db:"name"`
	Age               *int      `json:"age" db:"age"`
	Weight            *float64  `json:"weight" db:"weight"`
	Height            *float64  `json:"height" db:"height"`
	Sport             string    `json:"sport" db:"sport"`
	SkillLevel        int       `json:"skill_level" db:"skill_level"`
	ExperienceYears   *int      `json:"experience_years" db:"experience_years"`
	Goals             *string   `json:"goals" db:"goals"`
	TrainingIntensity *string   `json:"training_intensity" db:"training_intensity"`
	City              *string   `json:"city" db:"city"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

// IsValidIntensity reports whether s is one of the supported training intensities.
func IsValidIntensity(s string) bool {
	switch s {
	case IntensityLight, IntensityMedium, IntensityHard:
		return true
	}
	return false
}
