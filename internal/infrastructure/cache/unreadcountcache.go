package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"servonix/internal/shared/config"
	"servonix/internal/shared/logger"
)

const (
	unreadKeyPrefix  = "msg:unread:"
	defaultUnreadTTL = 30 * time.Second
)

// RedisUnreadCountCache keeps per-head unread counters in Redis so the
// inbox badge poll does not hit the database on every tick. Entries are
// short-lived and invalidated on every message mutation.
type RedisUnreadCountCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Interface
}

// NewRedisUnreadCountCache creates a new Redis-based unread count cache.
func NewRedisUnreadCountCache(client *redis.Client, cfg *config.MessagingConfig, logger logger.Interface) *RedisUnreadCountCache {
	ttl := defaultUnreadTTL
	if cfg != nil && cfg.UnreadCacheTTLSecs > 0 {
		ttl = cfg.UnreadCacheTTL()
	}

	return &RedisUnreadCountCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *RedisUnreadCountCache) key(headID uint) string {
	return fmt.Sprintf("%s%d", unreadKeyPrefix, headID)
}

// GetUnreadCount returns the cached counter and whether it was present.
func (c *RedisUnreadCountCache) GetUnreadCount(ctx context.Context, headID uint) (int64, bool, error) {
	result, err := c.client.Get(ctx, c.key(headID)).Result()
	if err == redis.Nil {
		return 0, false, nil // Cache miss
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get unread count from cache: %w", err)
	}

	count, err := strconv.ParseInt(result, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("corrupt unread count in cache (head=%d): %w", headID, err)
	}

	return count, true, nil
}

// SetUnreadCount caches the counter with the configured TTL.
func (c *RedisUnreadCountCache) SetUnreadCount(ctx context.Context, headID uint, count int64) error {
	if err := c.client.Set(ctx, c.key(headID), strconv.FormatInt(count, 10), c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache unread count: %w", err)
	}
	return nil
}

// InvalidateUnreadCount drops the counter after a mutation touching the head's inbox.
func (c *RedisUnreadCountCache) InvalidateUnreadCount(ctx context.Context, headID uint) error {
	if err := c.client.Del(ctx, c.key(headID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate unread count: %w", err)
	}
	return nil
}
