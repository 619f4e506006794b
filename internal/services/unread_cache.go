package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const unreadCountTTL = 5 * time.Minute

// UnreadCountCache keeps per-user unread notification counts in Redis
// so the badge endpoint does not hit the database on every poll.
type UnreadCountCache struct {
	client *redis.Client
	logger *zap.Logger
}

func NewUnreadCountCache(client *redis.Client, logger *zap.Logger) *UnreadCountCache {
	return &UnreadCountCache{client: client, logger: logger}
}

func unreadCountKey(userID uint64) string {
	return fmt.Sprintf("notifications:unread:%d", userID)
}

// Get returns the cached count, or ok=false on miss or Redis error.
func (c *UnreadCountCache) Get(ctx context.Context, userID uint64) (int64, bool) {
	val, err := c.client.Get(ctx, unreadCountKey(userID)).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("unread count cache read failed", zap.Uint64("user_id", userID), zap.Error(err))
		}
		return 0, false
	}
	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false
	}
	return count, true
}

func (c *UnreadCountCache) Set(ctx context.Context, userID uint64, count int64) {
	if err := c.client.Set(ctx, unreadCountKey(userID), count, unreadCountTTL).Err(); err != nil {
		c.logger.Warn("unread count cache write failed", zap.Uint64("user_id", userID), zap.Error(err))
	}
}

// Invalidate drops the cached count after any write that may change it.
func (c *UnreadCountCache) Invalidate(ctx context.Context, userID uint64) {
	if err := c.client.Del(ctx, unreadCountKey(userID)).Err(); err != nil {
		c.logger.Warn("unread count cache invalidation failed", zap.Uint64("user_id", userID), zap.Error(err))
	}
}
