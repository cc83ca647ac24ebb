package clients

import (
	"context"
	"fmt"
	"strings"
	"time"

	"chatbot-svc/src/internal/config"
	"chatbot-svc/src/internal/models"

	"github.com/redis/go-redis/v9"
)

type RedisClient struct {
	Client *redis.Client
}

func NewRedisClient(cfg *config.Redis) (*RedisClient, error) {
	opts, err := redisOptions(cfg)
	if err != nil {
		log.WithError(err).Error("Invalid Redis url")
		return nil, fmt.Errorf("%w: %v", models.ErrRedisConnection, err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.WithError(err).WithField("addr", opts.Addr).Error("Failed to connect to Redis")
		_ = client.Close()
		return nil, fmt.Errorf("%w: %v", models.ErrRedisConnection, err)
	}

	log.WithField("addr", opts.Addr).Info("Connected to Redis")
	return &RedisClient{Client: client}, nil
}

// redisOptions accepts either a redis:// or rediss:// URL or a bare host:port.
// Password and db from config fill in what the URL leaves out.
func redisOptions(cfg *config.Redis) (*redis.Options, error) {
	if !strings.Contains(cfg.Url, "://") {
		return &redis.Options{
			Addr:     cfg.Url,
			Password: cfg.Password,
			DB:       cfg.Db,
		}, nil
	}

	opts, err := redis.ParseURL(cfg.Url)
	if err != nil {
		return nil, err
	}
	if opts.Password == "" {
		opts.Password = cfg.Password
	}
	if opts.DB == 0 {
		opts.DB = cfg.Db
	}
	return opts, nil
}

func (r *RedisClient) Close() error {
	if err := r.Client.Close(); err != nil {
		log.WithError(err).Error("Failed to close Redis client")
		return err
	}
	log.Info("Redis connection closed")
	return nil
}
