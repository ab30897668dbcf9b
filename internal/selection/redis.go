package selection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"galaxy-server/internal/procgen"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "galaxy:selection:"

type RedisStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisStore(client redis.Cmdable, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func key(explorerID string) string {
	return keyPrefix + explorerID
}

func (s *RedisStore) Get(ctx context.Context, explorerID string) (procgen.Coordinate, bool, error) {
	value, err := s.client.Get(ctx, key(explorerID)).Result()
	if errors.Is(err, redis.Nil) {
		return procgen.Coordinate{}, false, nil
	}
	if err != nil {
		return procgen.Coordinate{}, false, fmt.Errorf("failed to read selection: %w", err)
	}

	coord, err := decode(value)
	if err != nil {
		slog.With("component", "selection", "operation", "get").
			Warn("Discarding unreadable selection", "explorer_id", explorerID, "error", err)
		return procgen.Coordinate{}, false, nil
	}
	return coord, true, nil
}

func (s *RedisStore) Set(ctx context.Context, explorerID string, coord procgen.Coordinate) error {
	if err := s.client.Set(ctx, key(explorerID), encode(coord), s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store selection: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context, explorerID string) error {
	if err := s.client.Del(ctx, key(explorerID)).Err(); err != nil {
		return fmt.Errorf("failed to clear selection: %w", err)
	}
	return nil
}
