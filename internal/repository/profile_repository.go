package repository

import (
	"context"

	"github.com/gdugdh24/sparring-backend/internal/domain"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByUserID(ctx context.Context, userID string) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
	// FindBySport returns every profile practising sport, compared
	// case-insensitively, except the one owned by excludeUserID.
	FindBySport(ctx context.Context, sport, excludeUserID string) ([]*domain.Profile, error)
}
