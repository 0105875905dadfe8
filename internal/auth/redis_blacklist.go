package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
)

const blacklistKeyPrefix = "gradlinkup:jwt:blacklist:"

// RedisBlacklistStore share blacklist between instances. Entries expire with the token.
type RedisBlacklistStore struct {
	client redis.UniversalClient
}

// NewRedisBlacklistStore wrap an existing redis client
func NewRedisBlacklistStore(client redis.UniversalClient) *RedisBlacklistStore {
	return &RedisBlacklistStore{client: client}
}

func blacklistKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return blacklistKeyPrefix + hex.EncodeToString(sum[:])
}

// IsBlacklisted implements JwtBlacklistStore
func (s *RedisBlacklistStore) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	n, err := s.client.Exists(ctx, blacklistKey(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// AddToBlacklist implements JwtBlacklistStore. Already expired token is not stored.
func (s *RedisBlacklistStore) AddToBlacklist(ctx context.Context, token string, exp time.Time) error {
	ttl := time.Until(exp)
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, blacklistKey(token), exp.Unix(), ttl).Err()
}
