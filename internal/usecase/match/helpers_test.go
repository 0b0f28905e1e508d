package match

import (
	"github.com/gdugdh24/sparring-backend/internal/domain"
)

func strPtr(s string) *string     { return &s }
func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

// boxer returns a fully populated profile; opts tweak it.
func boxer(userID string, opts ...func(*domain.Profile)) *domain.Profile {
	p := &domain.Profile{
		ID:                "profile-" + userID,
		UserID:            userID,
		Name:              "Athlete " + userID,
		Sport:             "boxing",
		SkillLevel:        5,
		ExperienceYears:   intPtr(3),
		Weight:            floatPtr(70),
		Goals:             strPtr("improve cardio"),
		TrainingIntensity: strPtr(domain.IntensityMedium),
		City:              strPtr("paris"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func slot(day int, start, end string) *domain.AvailabilitySlot {
	return &domain.AvailabilitySlot{DayOfWeek: day, StartTime: start, EndTime: end}
}
