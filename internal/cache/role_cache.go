package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const roleKeyPrefix = "dashboard:authz:roles:"

// RoleCache stores the role tags of an account for a bounded time.
type RoleCache interface {
	Get(ctx context.Context, accountID string) ([]string, bool, error)
	Set(ctx context.Context, accountID string, roles []string) error
	Invalidate(ctx context.Context, accountID string) error
}

type redisRoleCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisRoleCache returns a RoleCache backed by Redis. A nil client yields a
// cache that always misses.
func NewRedisRoleCache(client *redis.Client, ttl time.Duration) RoleCache {
	if client == nil || ttl <= 0 {
		return noopRoleCache{}
	}
	return &redisRoleCache{client: client, ttl: ttl}
}

func (c *redisRoleCache) Get(ctx context.Context, accountID string) ([]string, bool, error) {
	raw, err := c.client.Get(ctx, RoleKey(accountID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var roles []string
	if err := json.Unmarshal(raw, &roles); err != nil {
		return nil, false, fmt.Errorf("decode cached roles: %w", err)
	}
	return roles, true, nil
}

func (c *redisRoleCache) Set(ctx context.Context, accountID string, roles []string) error {
	if roles == nil {
		roles = []string{}
	}
	raw, err := json.Marshal(roles)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, RoleKey(accountID), raw, c.ttl).Err()
}

func (c *redisRoleCache) Invalidate(ctx context.Context, accountID string) error {
	return c.client.Del(ctx, RoleKey(accountID)).Err()
}

// RoleKey is the Redis key holding an account's roles.
func RoleKey(accountID string) string {
	return roleKeyPrefix + accountID
}

type noopRoleCache struct{}

func (noopRoleCache) Get(context.Context, string) ([]string, bool, error) { return nil, false, nil }
func (noopRoleCache) Set(context.Context, string, []string) error         { return nil }
func (noopRoleCache) Invalidate(context.Context, string) error            { return nil }
