package repository

import (
	"context"
	"time"
)

// TokenBlacklist remembers revoked token ids until they would have expired anyway.
type TokenBlacklist interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
