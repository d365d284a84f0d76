package blacklist

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Blacklist revokes JWT tokens by recording them in Redis until their
// natural expiry. Keeping the set external means revocations survive
// process restarts and are shared across instances.
type Blacklist struct {
	client *redis.Client
}

// New creates a blacklist backed by the given Redis client
func New(client *redis.Client) *Blacklist {
	return &Blacklist{client: client}
}

// key hashes the token so raw credentials are never stored
func key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "blacklist:" + hex.EncodeToString(sum[:])
}

// Add records the token as revoked for the given duration
func (b *Blacklist) Add(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := b.client.Set(ctx, key(token), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}
	return nil
}

// Contains reports whether the token has been revoked
func (b *Blacklist) Contains(ctx context.Context, token string) (bool, error) {
	n, err := b.client.Exists(ctx, key(token)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check blacklist: %w", err)
	}
	return n > 0, nil
}
