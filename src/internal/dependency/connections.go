package dependency

import (
	"context"
	"errors"

	"chatbot-svc/src/clients"
	"chatbot-svc/src/internal/config"
)

// Connections holds the external clients. Only the configured store is set;
// Redis and RabbitMQ are nil when their url is empty.
type Connections struct {
	Database *clients.Database
	Mongodb  *clients.MongoDB
	Redis    *clients.RedisClient
	RabbitMQ *clients.RabbitMQ
}

func Connect(cfg *config.Configuration) (*Connections, error) {
	conns := &Connections{}

	if cfg.Database.IsMongo() {
		mongodb, err := clients.NewMongoDB(&cfg.Database)
		if err != nil {
			return nil, err
		}
		conns.Mongodb = mongodb
	} else {
		database, err := clients.NewDatabase(&cfg.Database)
		if err != nil {
			return nil, err
		}
		conns.Database = database
	}

	if cfg.Redis.Url != "" {
		redisClient, err := clients.NewRedisClient(&cfg.Redis)
		if err != nil {
			_ = conns.Close(context.Background())
			return nil, err
		}
		conns.Redis = redisClient
	} else {
		log.Info("Redis url not set, user cache disabled")
	}

	if cfg.Queue.RabbitMQ.Url != "" {
		rabbitMQ, err := clients.NewRabbitMQ(&cfg.Queue.RabbitMQ, cfg.App.Name)
		if err != nil {
			_ = conns.Close(context.Background())
			return nil, err
		}
		conns.RabbitMQ = rabbitMQ
		if err := clients.DeclareActivityExchange(rabbitMQ.Channel, &cfg.Queue.RabbitMQ); err != nil {
			_ = conns.Close(context.Background())
			return nil, err
		}
	} else {
		log.Info("RabbitMQ url not set, activity publishing disabled")
	}

	return conns, nil
}

// Close releases every open client and joins their errors.
func (c *Connections) Close(ctx context.Context) error {
	var errs []error
	if c.RabbitMQ != nil {
		errs = append(errs, c.RabbitMQ.Close())
	}
	if c.Redis != nil {
		errs = append(errs, c.Redis.Close())
	}
	if c.Mongodb != nil {
		errs = append(errs, c.Mongodb.Close(ctx))
	}
	if c.Database != nil {
		errs = append(errs, c.Database.Close())
	}
	return errors.Join(errs...)
}

// Ping checks the configured store.
func (c *Connections) Ping(ctx context.Context) error {
	if c.Mongodb != nil {
		return c.Mongodb.Ping(ctx)
	}
	if c.Database != nil {
		return c.Database.Ping(ctx)
	}
	return errors.New("no store configured")
}
