package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdugdh24/sparring-backend/internal/repository"
	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "auth:revoked:"

type tokenBlacklist struct {
	rdb *redis.Client
}

func NewTokenBlacklist(rdb *redis.Client) repository.TokenBlacklist {
	return &tokenBlacklist{rdb: rdb}
}

func (b *tokenBlacklist) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := b.rdb.Set(ctx, revokedKeyPrefix+tokenID, 1, ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (b *tokenBlacklist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := b.rdb.Get(ctx, revokedKeyPrefix+tokenID).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check token: %w", err)
	}
	return true, nil
}
