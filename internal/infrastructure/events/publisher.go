package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gdugdh24/sparring-backend/internal/domain"
	"github.com/redis/go-redis/v9"
)

// MatchChannel is the pub/sub channel carrying match lifecycle events.
const MatchChannel = "match.events"

// RedisPublisher publishes match events as JSON on a Redis channel.
type RedisPublisher struct {
	rdb     *redis.Client
	channel string
}

func NewRedisPublisher(rdb *redis.Client) *RedisPublisher {
	return &RedisPublisher{rdb: rdb, channel: MatchChannel}
}

func (p *RedisPublisher) PublishMatchEvent(ctx context.Context, event domain.MatchEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", event.Type, err)
	}
	if err := p.rdb.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}
	return nil
}
