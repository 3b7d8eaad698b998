package kvstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/redis/go-redis/v9"
)

var _ port.KVStore = (*Redis)(nil)

type Redis struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedis checks the connection before returning. A zero ttl keeps
// snapshots forever.
func NewRedis(
	ctx context.Context, opts *redis.Options, ttl time.Duration,
) (*Redis, error) {
	const op = "kvstore.NewRedis"

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("%s: redis unavailable: %w", op, err)
	}
	slog.Info("redis is available", "op", op, "addr", opts.Addr)
	return &Redis{rdb: rdb, ttl: ttl}, nil
}

func (s *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	const op = "Redis.Get"

	b, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return b, nil
}

func (s *Redis) Set(ctx context.Context, key string, value []byte) error {
	const op = "Redis.Set"

	if err := s.rdb.Set(ctx, key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Redis) Delete(ctx context.Context, key string) error {
	const op = "Redis.Delete"

	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Redis) Close() {
	const op = "Redis.Close"
	log := slog.With("op", op)

	if err := s.rdb.Close(); err != nil {
		log.Error("failed to close", "err", err)
		return
	}
	log.Info("redis client is closed")
}
