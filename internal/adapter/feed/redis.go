// Package feed carries change notifications between repositories and
// live subscriptions over redis pub/sub. Events are collection-level
// pings, not payloads: watchers re-query the store for a fresh snapshot,
// so a dropped message costs latency, never correctness.
package feed

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/Ganderlu/taskmate/internal/config"
	"github.com/Ganderlu/taskmate/internal/core/ports"
)

const channelPrefix = "taskmate:changes:"

type RedisBus struct {
	client *redis.Client
}

var _ ports.ChangeBus = (*RedisBus)(nil)

func ConnectRedis(conf *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     conf.RedisAddr,
		Password: conf.RedisPassword,
		DB:       conf.RedisDB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func NewRedisBus(client *redis.Client) *RedisBus {
	return &RedisBus{client: client}
}

func (b *RedisBus) Publish(ctx context.Context, collection string) error {
	return b.client.Publish(ctx, channelPrefix+collection, "1").Err()
}

func (b *RedisBus) Changes(ctx context.Context, collection string) (<-chan struct{}, func(), error) {
	pubsub := b.client.Subscribe(ctx, channelPrefix+collection)

	// Force the SUBSCRIBE round trip so a broken connection fails here
	// instead of silently never delivering.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, nil, fmt.Errorf("subscribe to %s changes: %w", collection, err)
	}

	ticks := make(chan struct{}, 1)
	go func() {
		defer close(ticks)
		for range pubsub.Channel() {
			select {
			case ticks <- struct{}{}:
			default:
				// A tick is already pending; coalesce.
			}
		}
	}()

	stop := func() {
		if err := pubsub.Close(); err != nil {
			zap.L().Debug("failed to close pubsub", zap.String("collection", collection), zap.Error(err))
		}
	}
	return ticks, stop, nil
}
