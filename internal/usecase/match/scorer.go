package match

import (
	"math"
	"strings"

	"github.com/gdugdh24/sparring-backend/internal/domain"
)

// Sub-score weights; they sum to 1.
const (
	WeightSkill      = 0.30
	WeightGoals      = 0.20
	WeightSchedule   = 0.20
	WeightBodyWeight = 0.15
	WeightExperience = 0.15
)

// neutralScore is substituted when either side lacks the data a sub-score needs.
const neutralScore = 50.0

// Breakdown holds the individual 0-100 sub-scores of a rule score.
type Breakdown struct {
	Skill      float64 `json:"skill"`
	Goals      float64 `json:"goals"`
	Schedule   float64 `json:"schedule"`
	BodyWeight float64 `json:"weight"`
	Experience float64 `json:"experience"`
}

// Total combines the sub-scores with their fixed weights.
func (b Breakdown) Total() float64 {
	return WeightSkill*b.Skill +
		WeightGoals*b.Goals +
		WeightSchedule*b.Schedule +
		WeightBodyWeight*b.BodyWeight +
		WeightExperience*b.Experience
}

// RuleScore returns the deterministic 0-100 compatibility of two athletes.
func RuleScore(a, b *domain.Profile, aSlots, bSlots []*domain.AvailabilitySlot) float64 {
	return ScoreBreakdown(a, b, aSlots, bSlots).Total()
}

// ScoreBreakdown returns the per-component scores behind RuleScore.
func ScoreBreakdown(a, b *domain.Profile, aSlots, bSlots []*domain.AvailabilitySlot) Breakdown {
	return Breakdown{
		Skill:      skillScore(a, b),
		Goals:      goalScore(a, b),
		Schedule:   scheduleScore(aSlots, bSlots),
		BodyWeight: weightScore(a, b),
		Experience: experienceScore(a, b),
	}
}

// skillScore is 100 for equal levels and 0 once the gap reaches 2.
func skillScore(a, b *domain.Profile) float64 {
	diff := math.Abs(float64(a.SkillLevel - b.SkillLevel))
	return math.Max(0, 1-diff/2) * 100
}

func goalScore(a, b *domain.Profile) float64 {
	if a.Goals == nil || b.Goals == nil {
		return neutralScore
	}
	aWords := wordSet(*a.Goals)
	bWords := wordSet(*b.Goals)
	if len(aWords) == 0 || len(bWords) == 0 {
		return neutralScore
	}
	return jaccard(aWords, bWords) * 100
}

// scheduleScore compares slots by exact (day, start, end) tuples, not by
// interval overlap.
func scheduleScore(aSlots, bSlots []*domain.AvailabilitySlot) float64 {
	if len(aSlots) == 0 || len(bSlots) == 0 {
		return 0
	}
	return jaccard(slotSet(aSlots), slotSet(bSlots)) * 100
}

// weightScore is 100 for equal weights and 0 at a 25 kg difference.
func weightScore(a, b *domain.Profile) float64 {
	if a.Weight == nil || b.Weight == nil {
		return neutralScore
	}
	diff := math.Abs(*a.Weight - *b.Weight)
	return math.Max(0, 1-diff/25) * 100
}

func experienceScore(a, b *domain.Profile) float64 {
	if a.ExperienceYears == nil || b.ExperienceYears == nil {
		return neutralScore
	}
	diff := math.Abs(float64(*a.ExperienceYears - *b.ExperienceYears))
	return math.Max(0, 1-diff/10) * 100
}

func wordSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(text)) {
		set[w] = struct{}{}
	}
	return set
}

func slotSet(slots []*domain.AvailabilitySlot) map[domain.SlotKey]struct{} {
	set := make(map[domain.SlotKey]struct{}, len(slots))
	for _, s := range slots {
		if s == nil {
			continue
		}
		set[s.Key()] = struct{}{}
	}
	return set
}

func jaccard[K comparable](a, b map[K]struct{}) float64 {
	common := 0
	for k := range a {
		if _, ok := b[k]; ok {
			common++
		}
	}
	union := len(a) + len(b) - common
	if union == 0 {
		return 0
	}
	return float64(common) / float64(union)
}
