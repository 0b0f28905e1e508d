package match

import (
	"strings"

	"github.com/gdugdh24/sparring-backend/internal/domain"
)

// MaxSkillGap is the widest skill-level difference two athletes may have
// and still be paired.
const MaxSkillGap = 2

// IsEligible applies the hard filters: same sport, skill gap of at most
// MaxSkillGap and, when both athletes set a city, the same city.
// Comparisons are case-insensitive and the result does not depend on
// argument order.
func IsEligible(a, b *domain.Profile) bool {
	if a == nil || b == nil {
		return false
	}
	if !strings.EqualFold(a.Sport, b.Sport) {
		return false
	}
	if absInt(a.SkillLevel-b.SkillLevel) > MaxSkillGap {
		return false
	}
	if isSet(a.City) && isSet(b.City) && !strings.EqualFold(*a.City, *b.City) {
		return false
	}
	return true
}

func isSet(s *string) bool {
	return s != nil && *s != ""
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
