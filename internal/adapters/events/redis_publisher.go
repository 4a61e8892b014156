package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
	"github.com/redis/go-redis/v9"
)

// redisPublishClient is the slice of the go-redis client the publisher uses.
type redisPublishClient interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisPublisher fans ledger events out on a pub/sub channel. Delivery is
// at-most-once: subscribers that are offline miss the event.
type RedisPublisher struct {
	client  redisPublishClient
	channel string
}

// NewRedisPublisher publishes to channel using client. The client is owned by the caller.
func NewRedisPublisher(client redisPublishClient, channel string) *RedisPublisher {
	return &RedisPublisher{client: client, channel: channel}
}

func (p *RedisPublisher) Publish(ctx context.Context, event domain.LedgerEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := p.client.Publish(ctx, p.channel, body).Err(); err != nil {
		return fmt.Errorf("failed to publish event to redis channel %s: %w", p.channel, err)
	}
	return nil
}

func (p *RedisPublisher) Close() error { return nil }
