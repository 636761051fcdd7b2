package blacklist

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "revoked"

// RedisStore keeps one key per revoked jti with a TTL matching the token's
// remaining lifetime.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
	now    func() time.Time
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb, prefix: redisKeyPrefix, now: time.Now}
}

func (s *RedisStore) key(jti string) string {
	return s.prefix + ":" + jti
}

func (s *RedisStore) Revoke(ctx context.Context, jti string, userID int64, until time.Time) (bool, error) {
	ttl := until.Sub(s.now())
	if ttl <= 0 {
		return false, nil
	}
	first, err := s.rdb.SetNX(ctx, s.key(jti), strconv.FormatInt(userID, 10), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis error: %w", err)
	}
	return first, nil
}

func (s *RedisStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	err := s.rdb.Get(ctx, s.key(jti)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis error: %w", err)
	}
	return true, nil
}
