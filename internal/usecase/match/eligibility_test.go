package match

import (
	"testing"

	"github.com/gdugdh24/sparring-backend/internal/domain"
)

func TestIsEligibleSkillGap(t *testing.T) {
	for gap := 0; gap <= 3; gap++ {
		a := boxer("a", func(p *domain.Profile) { p.SkillLevel = 5 })
		b := boxer("b", func(p *domain.Profile) { p.SkillLevel = 5 + gap })
		want := gap <= MaxSkillGap
		if got := IsEligible(a, b); got != want {
			t.Errorf("gap %d: IsEligible = %v, want %v", gap, got, want)
		}
	}
}

func TestIsEligible(t *testing.T) {
	cases := []struct {
		name string
		a, b *domain.Profile
		want bool
	}{
		{
			name: "identical profiles",
			a:    boxer("a"),
			b:    boxer("b"),
			want: true,
		},
		{
			name: "different sport",
			a:    boxer("a"),
			b:    boxer("b", func(p *domain.Profile) { p.Sport = "judo" }),
			want: false,
		},
		{
			name: "sport differs only by case",
			a:    boxer("a"),
			b:    boxer("b", func(p *domain.Profile) { p.Sport = "Boxing" }),
			want: true,
		},
		{
			name: "different city",
			a:    boxer("a"),
			b:    boxer("b", func(p *domain.Profile) { p.City = strPtr("lyon") }),
			want: false,
		},
		{
			name: "city differs only by case",
			a:    boxer("a"),
			b:    boxer("b", func(p *domain.Profile) { p.City = strPtr("PARIS") }),
			want: true,
		},
		{
			name: "one city unset",
			a:    boxer("a", func(p *domain.Profile) { p.City = nil }),
			b:    boxer("b", func(p *domain.Profile) { p.City = strPtr("lyon") }),
			want: true,
		},
		{
			name: "empty city treated as unset",
			a:    boxer("a", func(p *domain.Profile) { p.City = strPtr("") }),
			b:    boxer("b", func(p *domain.Profile) { p.City = strPtr("lyon") }),
			want: true,
		},
		{
			name: "skill gap of three",
			a:    boxer("a", func(p *domain.Profile) { p.SkillLevel = 1 }),
			b:    boxer("b", func(p *domain.Profile) { p.SkillLevel = 4 }),
			want: false,
		},
		{
			name: "nil profile",
			a:    boxer("a"),
			b:    nil,
			want: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsEligible(tc.a, tc.b); got != tc.want {
				t.Fatalf("IsEligible(a, b) = %v, want %v", got, tc.want)
			}
			if got := IsEligible(tc.b, tc.a); got != tc.want {
				t.Fatalf("IsEligible(b, a) = %v, want %v", got, tc.want)
			}
		})
	}
}
