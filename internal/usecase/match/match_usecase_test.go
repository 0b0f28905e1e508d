package match

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/gdugdh24/sparring-backend/internal/domain"
	"go.uber.org/zap"
)

type fakeProfiles struct {
	byUser map[string]*domain.Profile
	order  []string
}

func newFakeProfiles(profiles ...*domain.Profile) *fakeProfiles {
	f := &fakeProfiles{byUser: make(map[string]*domain.Profile)}
	for _, p := range profiles {
		f.byUser[p.UserID] = p
		f.order = append(f.order, p.UserID)
	}
	return f
}

func (f *fakeProfiles) Create(_ context.Context, p *domain.Profile) error {
	f.byUser[p.UserID] = p
	f.order = append(f.order, p.UserID)
	return nil
}

func (f *fakeProfiles) GetByUserID(_ context.Context, userID string) (*domain.Profile, error) {
	p, ok := f.byUser[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeProfiles) Update(_ context.Context, p *domain.Profile) error {
	f.byUser[p.UserID] = p
	return nil
}

func (f *fakeProfiles) FindBySport(_ context.Context, sport, excludeUserID string) ([]*domain.Profile, error) {
	var out []*domain.Profile
	for _, id := range f.order {
		p := f.byUser[id]
		if id != excludeUserID && strings.EqualFold(p.Sport, sport) {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeSlots struct {
	byUser map[string][]*domain.AvailabilitySlot
}

func (f *fakeSlots) ListByUser(_ context.Context, userID string) ([]*domain.AvailabilitySlot, error) {
	return f.byUser[userID], nil
}

func (f *fakeSlots) Create(_ context.Context, s *domain.AvailabilitySlot) error {
	f.byUser[s.UserID] = append(f.byUser[s.UserID], s)
	return nil
}

func (f *fakeSlots) DeleteForUser(context.Context, string, string) error { return nil }

type fakeMatches struct {
	mu      sync.Mutex
	byID    map[string]*domain.Match
	seq     int
	creates int
	// raceWith is inserted just before the first Create, simulating a concurrent requester.
	raceWith *domain.Match
	// beforeUpdate runs at the start of UpdateStatus, outside the lock.
	beforeUpdate func()
}

func newFakeMatches() *fakeMatches {
	return &fakeMatches{byID: make(map[string]*domain.Match)}
}

func (f *fakeMatches) findPair(u1, u2 string) *domain.Match {
	a, b := domain.CanonicalPair(u1, u2)
	for _, m := range f.byID {
		if m.UserAID == a && m.UserBID == b {
			return m
		}
	}
	return nil
}

func (f *fakeMatches) Create(_ context.Context, m *domain.Match) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.raceWith != nil {
		f.byID[f.raceWith.ID] = f.raceWith
		f.raceWith = nil
	}
	if f.findPair(m.UserAID, m.UserBID) != nil {
		return domain.ErrMatchAlreadyExists
	}
	f.seq++
	f.creates++
	m.ID = fmt.Sprintf("m%d", f.seq)
	m.UserAID, m.UserBID = domain.CanonicalPair(m.UserAID, m.UserBID)
	stored := *m
	f.byID[m.ID] = &stored
	return nil
}

func (f *fakeMatches) GetByID(_ context.Context, id string) (*domain.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m, ok := f.byID[id]; ok {
		c := *m
		return &c, nil
	}
	return nil, domain.ErrMatchNotFound
}

func (f *fakeMatches) GetByUsers(_ context.Context, u1, u2 string) (*domain.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m := f.findPair(u1, u2); m != nil {
		c := *m
		return &c, nil
	}
	return nil, domain.ErrMatchNotFound
}

func (f *fakeMatches) GetForParticipant(_ context.Context, id, userID string) (*domain.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m, ok := f.byID[id]; ok && m.HasUser(userID) {
		c := *m
		return &c, nil
	}
	return nil, domain.ErrMatchNotFound
}

func (f *fakeMatches) GetPendingForUser(_ context.Context, userID string) ([]*domain.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Match
	for i := 1; i <= f.seq; i++ {
		m, ok := f.byID[fmt.Sprintf("m%d", i)]
		if ok && m.HasUser(userID) && m.Status == domain.MatchStatusPending {
			c := *m
			out = append(out, &c)
		}
	}
	return out, nil
}

func (f *fakeMatches) UpdateStatus(_ context.Context, id string, status domain.MatchStatus) (bool, error) {
	if f.beforeUpdate != nil {
		f.beforeUpdate()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.byID[id]
	if !ok || m.Status != domain.MatchStatusPending {
		return false, nil
	}
	m.Status = status
	return true, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.MatchEvent
	err    error
}

func (p *recordingPublisher) PublishMatchEvent(_ context.Context, e domain.MatchEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

type fixture struct {
	uc        *MatchUseCase
	profiles  *fakeProfiles
	slots     *fakeSlots
	matches   *fakeMatches
	publisher *recordingPublisher
	gen       *stubGenerator
}

func newFixture(gen *stubGenerator, profiles ...*domain.Profile) *fixture {
	f := &fixture{
		profiles:  newFakeProfiles(profiles...),
		slots:     &fakeSlots{byUser: make(map[string][]*domain.AvailabilitySlot)},
		matches:   newFakeMatches(),
		publisher: &recordingPublisher{},
		gen:       gen,
	}
	var refiner *Refiner
	if gen != nil {
		refiner = NewRefiner(gen, "gemini-test", 0, zap.NewNop())
	}
	f.uc = NewMatchUseCase(f.profiles, f.slots, f.matches, refiner, f.publisher, zap.NewNop())
	return f
}

func TestFindMatchesRequiresProfile(t *testing.T) {
	f := newFixture(nil)

	_, err := f.uc.FindMatches(context.Background(), "ghost")
	if !errors.Is(err, domain.ErrProfileIncomplete) {
		t.Fatalf("expected ErrProfileIncomplete, got %v", err)
	}
}

func TestFindMatchesFiltersScoresAndRanks(t *testing.T) {
	f := newFixture(nil,
		boxer("me"),
		// Weaker partner: heavier and less experienced.
		boxer("u1", func(p *domain.Profile) { p.SkillLevel = 6; p.Weight = floatPtr(85); p.ExperienceYears = intPtr(8) }),
		boxer("u2"),
		boxer("u3", func(p *domain.Profile) { p.SkillLevel = 9 }),
		boxer("u4", func(p *domain.Profile) { p.Sport = "judo" }),
		boxer("u5", func(p *domain.Profile) { p.City = strPtr("berlin") }),
		boxer("u6", func(p *domain.Profile) { p.Sport = "BOXING" }),
	)

	got, err := f.uc.FindMatches(context.Background(), "me")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(got))
	}
	// u2 and u6 are identical to me (score 80) and keep shortlist order; u1 scores lower.
	wantOrder := []string{"u2", "u6", "u1"}
	for i, m := range got {
		other, ok := m.GetOtherUserID("me")
		if !ok || other != wantOrder[i] {
			t.Fatalf("position %d: expected %s, got %s", i, wantOrder[i], other)
		}
		if m.Status != domain.MatchStatusPending {
			t.Fatalf("expected pending status, got %s", m.Status)
		}
	}
	if got[0].Score() != 80 {
		t.Fatalf("expected top score 80, got %v", got[0].Score())
	}
	if *got[0].Risks != "AI unavailable — no API key configured." {
		t.Fatalf("unexpected risks text: %q", *got[0].Risks)
	}
	if len(f.publisher.events) != 3 || f.publisher.events[0].Type != domain.EventMatchCreated {
		t.Fatalf("expected 3 created events, got %+v", f.publisher.events)
	}
}

func TestFindMatchesIsIdempotentForExistingPairs(t *testing.T) {
	gen := &stubGenerator{response: validReply}
	f := newFixture(gen, boxer("me"), boxer("u1"), boxer("u2"))

	first, err := f.uc.FindMatches(context.Background(), "me")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	callsAfterFirst := gen.calls

	// A profile change must not trigger rescoring of existing matches.
	f.profiles.byUser["u1"].Weight = floatPtr(120)

	second, err := f.uc.FindMatches(context.Background(), "me")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f.matches.creates != 2 {
		t.Fatalf("expected 2 created matches, got %d", f.matches.creates)
	}
	if gen.calls != callsAfterFirst {
		t.Fatalf("existing matches were rescored: %d calls", gen.calls)
	}
	if len(second) != len(first) {
		t.Fatalf("expected %d matches, got %d", len(first), len(second))
	}
	ids := map[string]bool{}
	for _, m := range first {
		ids[m.ID] = true
	}
	for _, m := range second {
		if !ids[m.ID] {
			t.Fatalf("unexpected new match id %s on second run", m.ID)
		}
		if m.Score() != 83 {
			t.Fatalf("expected stored AI score 83, got %v", m.Score())
		}
	}
}

func TestFindMatchesFromOtherSideReusesMatch(t *testing.T) {
	f := newFixture(nil, boxer("me"), boxer("u1"))

	mine, err := f.uc.FindMatches(context.Background(), "me")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	theirs, err := f.uc.FindMatches(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mine) != 1 || len(theirs) != 1 || mine[0].ID != theirs[0].ID {
		t.Fatalf("expected the same match from both sides, got %+v / %+v", mine, theirs)
	}
}

func TestFindMatchesResolvesConcurrentCreate(t *testing.T) {
	f := newFixture(nil, boxer("me"), boxer("u1"))
	score := 55.0
	a, b := domain.CanonicalPair("me", "u1")
	f.matches.raceWith = &domain.Match{ID: "other", UserAID: a, UserBID: b, CompatibilityScore: &score, Status: domain.MatchStatusPending}

	got, err := f.uc.FindMatches(context.Background(), "me")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "other" {
		t.Fatalf("expected the concurrently created match, got %+v", got)
	}
	if len(f.publisher.events) != 0 {
		t.Fatalf("no event expected for a match created elsewhere, got %d", len(f.publisher.events))
	}
}

func TestFindMatchesIgnoresPublisherFailure(t *testing.T) {
	f := newFixture(nil, boxer("me"), boxer("u1"))
	f.publisher.err = errors.New("redis down")

	got, err := f.uc.FindMatches(context.Background(), "me")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 match, got %d", len(got))
	}
}

func TestListRecommendedSortsPendingByScore(t *testing.T) {
	f := newFixture(nil, boxer("me"))
	low, high := 40.0, 90.0
	for _, m := range []*domain.Match{
		{UserAID: "me", UserBID: "u1", CompatibilityScore: &low, Status: domain.MatchStatusPending},
		{UserAID: "me", UserBID: "u2", Status: domain.MatchStatusPending},
		{UserAID: "me", UserBID: "u3", CompatibilityScore: &high, Status: domain.MatchStatusPending},
		{UserAID: "me", UserBID: "u4", CompatibilityScore: &high, Status: domain.MatchStatusAccepted},
		{UserAID: "x", UserBID: "y", CompatibilityScore: &high, Status: domain.MatchStatusPending},
	} {
		if err := f.matches.Create(context.Background(), m); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	got, err := f.uc.ListRecommended(context.Background(), "me")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 pending matches, got %d", len(got))
	}
	scores := []float64{got[0].Score(), got[1].Score(), got[2].Score()}
	if scores[0] != 90 || scores[1] != 40 || scores[2] != 0 {
		t.Fatalf("unexpected order: %v", scores)
	}
}

func TestRespondToMatch(t *testing.T) {
	ctx := context.Background()
	f := newFixture(nil, boxer("me"), boxer("u1"))
	created, err := f.uc.FindMatches(ctx, "me")
	if err != nil || len(created) != 1 {
		t.Fatalf("setup failed: %v", err)
	}
	id := created[0].ID

	if _, err := f.uc.RespondToMatch(ctx, "me", id, domain.MatchStatusPending); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if _, err := f.uc.RespondToMatch(ctx, "stranger", id, domain.MatchStatusAccepted); !errors.Is(err, domain.ErrMatchNotFound) {
		t.Fatalf("expected ErrMatchNotFound for non participant, got %v", err)
	}
	if _, err := f.uc.RespondToMatch(ctx, "me", "missing", domain.MatchStatusAccepted); !errors.Is(err, domain.ErrMatchNotFound) {
		t.Fatalf("expected ErrMatchNotFound, got %v", err)
	}

	m, err := f.uc.RespondToMatch(ctx, "u1", id, domain.MatchStatusAccepted)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Status != domain.MatchStatusAccepted {
		t.Fatalf("expected accepted, got %s", m.Status)
	}
	stored, _ := f.matches.GetByID(ctx, id)
	if stored.Status != domain.MatchStatusAccepted {
		t.Fatalf("status not persisted: %s", stored.Status)
	}

	if _, err := f.uc.RespondToMatch(ctx, "me", id, domain.MatchStatusAccepted); err != nil {
		t.Fatalf("repeating the same answer should succeed, got %v", err)
	}
	if _, err := f.uc.RespondToMatch(ctx, "me", id, domain.MatchStatusRejected); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	last := f.publisher.events[len(f.publisher.events)-1]
	if last.Type != domain.EventMatchResponded || last.ActorID != "u1" {
		t.Fatalf("unexpected last event: %+v", last)
	}

	recommended, _ := f.uc.ListRecommended(ctx, "me")
	if len(recommended) != 0 {
		t.Fatalf("accepted match should leave the recommended list, got %d", len(recommended))
	}
}

func TestRespondToMatchConcurrentAnswers(t *testing.T) {
	tests := []struct {
		name       string
		mine       domain.MatchStatus
		theirs     domain.MatchStatus
		wantFailed int
	}{
		{name: "conflicting answers", mine: domain.MatchStatusAccepted, theirs: domain.MatchStatusRejected, wantFailed: 1},
		{name: "same answer", mine: domain.MatchStatusAccepted, theirs: domain.MatchStatusAccepted, wantFailed: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			f := newFixture(nil, boxer("me"), boxer("u1"))
			created, err := f.uc.FindMatches(ctx, "me")
			if err != nil || len(created) != 1 {
				t.Fatalf("setup failed: %v", err)
			}
			id := created[0].ID
			f.publisher.events = nil

			// Both callers must have read the pending match before either writes.
			var barrier sync.WaitGroup
			barrier.Add(2)
			f.matches.beforeUpdate = func() {
				barrier.Done()
				barrier.Wait()
			}

			var (
				wg   sync.WaitGroup
				errs [2]error
			)
			answers := [2]struct {
				user   string
				status domain.MatchStatus
			}{{"me", tt.mine}, {"u1", tt.theirs}}
			for i, a := range answers {
				wg.Add(1)
				go func(i int, user string, status domain.MatchStatus) {
					defer wg.Done()
					_, errs[i] = f.uc.RespondToMatch(ctx, user, id, status)
				}(i, a.user, a.status)
			}
			wg.Wait()

			failed := 0
			var winner domain.MatchStatus
			for i, err := range errs {
				switch {
				case err == nil:
					winner = answers[i].status
				case errors.Is(err, domain.ErrInvalidTransition):
					failed++
				default:
					t.Fatalf("unexpected error: %v", err)
				}
			}
			if failed != tt.wantFailed {
				t.Fatalf("expected %d rejected answers, got %d (%v)", tt.wantFailed, failed, errs)
			}

			stored, _ := f.matches.GetByID(ctx, id)
			if stored.Status != winner {
				t.Fatalf("stored status %s does not match the successful answer %s", stored.Status, winner)
			}
			if len(f.publisher.events) != 1 {
				t.Fatalf("expected one responded event, got %d", len(f.publisher.events))
			}
		})
	}
}
