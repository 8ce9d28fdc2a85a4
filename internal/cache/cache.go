package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/RafiurRahmanSaikat/house-rent-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned when a key is absent or expired.
var ErrMiss = errors.New("cache miss")

const approvedPrefix = "advertisements:approved:"

// ApprovedKey is the key of the public advertisement list for one category.
// Category 0 stands for the unfiltered list.
func ApprovedKey(categoryID uint) string {
	return fmt.Sprintf("%scategory:%d", approvedPrefix, categoryID)
}

// Noop never stores anything. Used when no Redis address is configured.
type Noop struct{}

func (Noop) GetApproved(ctx context.Context, categoryID uint) ([]byte, error) {
	return nil, ErrMiss
}

func (Noop) SetApproved(ctx context.Context, categoryID uint, payload []byte) error {
	return nil
}

func (Noop) InvalidateApproved(ctx context.Context) error {
	return nil
}

// RedisCache keeps serialized advertisement lists in Redis with a TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

// Connect opens a client and checks the server answers.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Redis connected", "addr", addr, "db", db)
	return client, nil
}

func (c *RedisCache) GetApproved(ctx context.Context, categoryID uint) ([]byte, error) {
	payload, err := c.client.Get(ctx, ApprovedKey(categoryID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return payload, nil
}

func (c *RedisCache) SetApproved(ctx context.Context, categoryID uint, payload []byte) error {
	if err := c.client.Set(ctx, ApprovedKey(categoryID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// InvalidateApproved drops every cached advertisement list.
func (c *RedisCache) InvalidateApproved(ctx context.Context) error {
	var keys []string
	iter := c.client.Scan(ctx, 0, approvedPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
