package repository

import (
	"context"

	"github.com/gdugdh24/sparring-backend/internal/domain"
)

type MatchRepository interface {
	// Create stores a new match for the canonical pair. It returns
	// domain.ErrMatchAlreadyExists when the pair already has a match.
	Create(ctx context.Context, match *domain.Match) error
	GetByID(ctx context.Context, id string) (*domain.Match, error)
	GetByUsers(ctx context.Context, user1ID, user2ID string) (*domain.Match, error)
	GetForParticipant(ctx context.Context, id, userID string) (*domain.Match, error)
	GetPendingForUser(ctx context.Context, userID string) ([]*domain.Match, error)
	// UpdateStatus sets the status only while the match is still pending and
	// reports whether it did.
	UpdateStatus(ctx context.Context, id string, status domain.MatchStatus) (bool, error)
}
