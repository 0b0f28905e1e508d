package repository

import (
	"context"

	"github.com/gdugdh24/sparring-backend/internal/domain"
)

type AvailabilityRepository interface {
	ListByUser(ctx context.Context, userID string) ([]*domain.AvailabilitySlot, error)
	Create(ctx context.Context, slot *domain.AvailabilitySlot) error
	DeleteForUser(ctx context.Context, id, userID string) error
}
