package leaderboard

import (
	"context"
	"fmt"
	"time"

	"github.com/eapache/go-resiliency/breaker"
	"github.com/redis/go-redis/v9"

	"github.com/outletfc/club-treasury/internal/domain/ranking"
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Key      string
	// Consecutive failures before publishing is skipped for BreakerTimeout.
	BreakerFailures int
	BreakerTimeout  time.Duration
}

// RedisPublisher mirrors the computed leaderboard into a sorted set scored by
// total points, plus a hash of display names keyed by player id.
type RedisPublisher struct {
	client  *redis.Client
	key     string
	breaker *breaker.Breaker
}

func NewRedisPublisher(ctx context.Context, cfg RedisConfig) (*RedisPublisher, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	if cfg.BreakerFailures < 1 {
		cfg.BreakerFailures = 5
	}
	if cfg.BreakerTimeout <= 0 {
		cfg.BreakerTimeout = 15 * time.Second
	}

	return &RedisPublisher{
		client:  client,
		key:     cfg.Key,
		breaker: breaker.New(cfg.BreakerFailures, 1, cfg.BreakerTimeout),
	}, nil
}

func (p *RedisPublisher) Close() error {
	return p.client.Close()
}

func (p *RedisPublisher) namesKey() string {
	return p.key + ":names"
}

// Publish replaces the stored standings atomically. While the breaker is open
// it fails fast with breaker.ErrBreakerOpen.
func (p *RedisPublisher) Publish(ctx context.Context, entries []ranking.Entry) error {
	return p.breaker.Run(func() error {
		return p.publish(ctx, entries)
	})
}

func (p *RedisPublisher) publish(ctx context.Context, entries []ranking.Entry) error {
	members, names := toMembers(entries)

	_, err := p.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, p.key, p.namesKey())
		if len(members) == 0 {
			return nil
		}
		pipe.ZAdd(ctx, p.key, members...)
		pipe.HSet(ctx, p.namesKey(), names)
		return nil
	})
	if err != nil {
		return fmt.Errorf("publishing leaderboard: %w", err)
	}
	return nil
}

func toMembers(entries []ranking.Entry) ([]redis.Z, map[string]any) {
	members := make([]redis.Z, 0, len(entries))
	names := make(map[string]any, len(entries))
	for _, e := range entries {
		members = append(members, redis.Z{Score: float64(e.TotalPoints), Member: e.PlayerID})
		names[e.PlayerID] = e.Name
	}
	return members, names
}
