package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"chatbot-svc/src/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Service stores JSON-encoded values under string keys.
type Service interface {
	// Get decodes the value at key into dest and reports whether it was present.
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

type cacheService struct {
	client *redis.Client
}

func NewCacheService(client *redis.Client) Service {
	return &cacheService{client: client}
}

func (c *cacheService) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			logrus.WithField("key", key).Debug("Key not found in cache")
			return false, nil
		}
		logrus.WithError(err).WithField("key", key).Error("Failed to get value from cache")
		return false, models.ErrRedisGet
	}

	if err := json.Unmarshal(data, dest); err != nil {
		logrus.WithError(err).WithField("key", key).Error("Failed to unmarshal cached value")
		return false, models.ErrRedisGet
	}

	logrus.WithField("key", key).Debug("Value retrieved from cache")
	return true, nil
}

func (c *cacheService) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		logrus.WithError(err).WithField("key", key).Error("Failed to marshal value for cache")
		return models.ErrRedisSet
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		logrus.WithError(err).WithField("key", key).Error("Failed to cache value")
		return models.ErrRedisSet
	}

	logrus.WithFields(logrus.Fields{
		"key": key,
		"ttl": ttl.String(),
	}).Debug("Value cached")
	return nil
}

func (c *cacheService) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		logrus.WithError(err).WithField("key", key).Error("Failed to delete cached value")
		return models.ErrRedisDelete
	}
	return nil
}

func (c *cacheService) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

type noopCache struct{}

// NewNoopCache is used when Redis is not configured; every lookup misses.
func NewNoopCache() Service {
	return noopCache{}
}

func (noopCache) Get(context.Context, string, any) (bool, error) { return false, nil }

func (noopCache) Set(context.Context, string, any, time.Duration) error { return nil }

func (noopCache) Delete(context.Context, string) error { return nil }

func (noopCache) Ping(context.Context) error { return nil }
