// Package match scores athletes against each other and manages the
// resulting matches.
package match

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/gdugdh24/sparring-backend/internal/domain"
	"github.com/gdugdh24/sparring-backend/internal/infrastructure/logger"
	"github.com/gdugdh24/sparring-backend/internal/repository"
	"go.uber.org/zap"
)

// EventPublisher announces match lifecycle events. Failures are logged, never returned to callers.
type EventPublisher interface {
	PublishMatchEvent(ctx context.Context, event domain.MatchEvent) error
}

type nopPublisher struct{}

func (nopPublisher) PublishMatchEvent(context.Context, domain.MatchEvent) error { return nil }

type MatchUseCase struct {
	profileRepo      repository.ProfileRepository
	availabilityRepo repository.AvailabilityRepository
	matchRepo        repository.MatchRepository
	refiner          *Refiner
	publisher        EventPublisher
	logger           *zap.Logger
}

func NewMatchUseCase(
	profileRepo repository.ProfileRepository,
	availabilityRepo repository.AvailabilityRepository,
	matchRepo repository.MatchRepository,
	refiner *Refiner,
	publisher EventPublisher,
	log *zap.Logger,
) *MatchUseCase {
	log = logger.OrNop(log)
	if refiner == nil {
		refiner = NewRefiner(nil, "", 0, log)
	}
	if publisher == nil {
		publisher = nopPublisher{}
	}
	return &MatchUseCase{
		profileRepo:      profileRepo,
		availabilityRepo: availabilityRepo,
		matchRepo:        matchRepo,
		refiner:          refiner,
		publisher:        publisher,
		logger:           log,
	}
}

// FindMatches scores the requester against every eligible athlete of the same
// sport. Pairs that already have a match are returned as stored, never rescored.
// The result is ordered by compatibility score, highest first; ties keep
// shortlist order.
func (uc *MatchUseCase) FindMatches(ctx context.Context, requesterID string) ([]*domain.Match, error) {
	me, err := uc.profileRepo.GetByUserID(ctx, requesterID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil, domain.ErrProfileIncomplete
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	mySlots, err := uc.availabilityRepo.ListByUser(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("failed to get availability: %w", err)
	}

	candidates, err := uc.profileRepo.FindBySport(ctx, me.Sport, requesterID)
	if err != nil {
		return nil, fmt.Errorf("failed to search profiles: %w", err)
	}

	uc.logger.Debug("match search started",
		zap.String("user_id", requesterID),
		zap.String("sport", me.Sport),
		zap.Int("candidates", len(candidates)),
	)

	results := make([]*domain.Match, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate.UserID == requesterID || !IsEligible(me, candidate) {
			continue
		}

		existing, err := uc.matchRepo.GetByUsers(ctx, requesterID, candidate.UserID)
		if err == nil {
			results = append(results, existing)
			continue
		}
		if !errors.Is(err, domain.ErrMatchNotFound) {
			return nil, fmt.Errorf("failed to look up match: %w", err)
		}

		m, err := uc.scoreAndCreate(ctx, me, candidate, mySlots)
		if err != nil {
			return nil, err
		}
		results = append(results, m)
	}

	sortByScore(results)

	uc.logger.Info("match search finished",
		zap.String("user_id", requesterID),
		zap.Int("matches", len(results)),
	)
	return results, nil
}

func (uc *MatchUseCase) scoreAndCreate(ctx context.Context, me, candidate *domain.Profile, mySlots []*domain.AvailabilitySlot) (*domain.Match, error) {
	theirSlots, err := uc.availabilityRepo.ListByUser(ctx, candidate.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get candidate availability: %w", err)
	}

	ruleScore := RuleScore(me, candidate, mySlots, theirSlots)
	refinement := uc.refiner.Refine(ctx, me, candidate, ruleScore)

	score := float64(refinement.Score)
	m := &domain.Match{
		UserAID:            me.UserID,
		UserBID:            candidate.UserID,
		CompatibilityScore: &score,
		AIReasoning:        &refinement.Reasoning,
		Risks:              &refinement.Risks,
		Strengths:          &refinement.Strengths,
		Status:             domain.MatchStatusPending,
	}

	if err := uc.matchRepo.Create(ctx, m); err != nil {
		if !errors.Is(err, domain.ErrMatchAlreadyExists) {
			return nil, fmt.Errorf("failed to create match: %w", err)
		}
		// Another request created the pair first; keep its record.
		existing, err := uc.matchRepo.GetByUsers(ctx, me.UserID, candidate.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to load concurrent match: %w", err)
		}
		return existing, nil
	}

	uc.logger.Debug("match created",
		zap.String("match_id", m.ID),
		zap.Float64("rule_score", ruleScore),
		zap.Int("final_score", refinement.Score),
	)
	uc.publish(ctx, domain.NewMatchEvent(domain.EventMatchCreated, m, me.UserID))
	return m, nil
}

// ListRecommended returns the user's pending matches, best first.
func (uc *MatchUseCase) ListRecommended(ctx context.Context, userID string) ([]*domain.Match, error) {
	matches, err := uc.matchRepo.GetPendingForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending matches: %w", err)
	}
	sortByScore(matches)
	return matches, nil
}

// RespondToMatch records a participant's answer to a pending match.
func (uc *MatchUseCase) RespondToMatch(ctx context.Context, userID, matchID string, status domain.MatchStatus) (*domain.Match, error) {
	if !status.IsResponse() {
		return nil, domain.ErrInvalidStatus
	}

	m, err := uc.matchRepo.GetForParticipant(ctx, matchID, userID)
	if err != nil {
		return nil, err
	}

	if m.Status == status {
		return m, nil
	}
	if m.Status != domain.MatchStatusPending {
		return nil, domain.ErrInvalidTransition
	}

	updated, err := uc.matchRepo.UpdateStatus(ctx, m.ID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update match: %w", err)
	}
	if !updated {
		// The other participant answered between our read and write.
		current, err := uc.matchRepo.GetByID(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		if current.Status == status {
			return current, nil
		}
		return nil, domain.ErrInvalidTransition
	}
	m.Status = status

	partnerID, _ := m.GetOtherUserID(userID)
	uc.logger.Info("match answered",
		zap.String("match_id", m.ID),
		zap.String("user_id", userID),
		zap.String("partner_id", partnerID),
		zap.String("status", string(status)),
	)
	uc.publish(ctx, domain.NewMatchEvent(domain.EventMatchResponded, m, userID))
	return m, nil
}

func (uc *MatchUseCase) publish(ctx context.Context, event domain.MatchEvent) {
	if err := uc.publisher.PublishMatchEvent(ctx, event); err != nil {
		uc.logger.Warn("failed to publish match event",
			zap.String("type", event.Type),
			zap.String("match_id", event.MatchID),
			zap.Error(err),
		)
	}
}

func sortByScore(matches []*domain.Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score() > matches[j].Score()
	})
}
