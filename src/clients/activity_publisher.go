package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"chatbot-svc/src/internal/config"
	"chatbot-svc/src/internal/models"

	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
)

// ActivityPublisher emits activity messages about user and session changes.
type ActivityPublisher interface {
	PublishActivity(ctx context.Context, message models.ActivityMessage) error
}

// AMQPChannel is the subset of *amqp.Channel used for publishing.
type AMQPChannel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// ExchangeDeclarer is the subset of *amqp.Channel used to declare the activity exchange.
type ExchangeDeclarer interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
}

// DeclareActivityExchange declares the exchange activity events are published to.
// Redeclaring with the same settings is a no-op on the broker.
func DeclareActivityExchange(channel ExchangeDeclarer, cfg *config.RabbitMQConfig) error {
	kind := cfg.ExchangeType
	if kind == "" {
		kind = amqp.ExchangeTopic
	}

	err := channel.ExchangeDeclare(
		cfg.Exchange,
		kind,
		cfg.Durable,
		cfg.AutoDelete,
		cfg.Internal,
		cfg.NoWait,
		nil,
	)
	if err != nil {
		logrus.WithError(err).WithField("exchange", cfg.Exchange).Error("Failed to declare activity exchange")
		return fmt.Errorf("%w: declare exchange %q: %v", models.ErrQueueConnection, cfg.Exchange, err)
	}

	logrus.WithFields(logrus.Fields{
		"exchange": cfg.Exchange,
		"type":     kind,
	}).Info("Activity exchange declared")
	return nil
}

type amqpPublisher struct {
	channel AMQPChannel
	cfg     *config.RabbitMQConfig
}

func NewActivityPublisher(channel AMQPChannel, cfg *config.RabbitMQConfig) ActivityPublisher {
	return &amqpPublisher{
		channel: channel,
		cfg:     cfg,
	}
}

func (p *amqpPublisher) PublishActivity(ctx context.Context, message models.ActivityMessage) error {
	if message.Timestamp.IsZero() {
		message.Timestamp = time.Now().UTC()
	}
	if message.RequestID == "" {
		message.RequestID = models.RequestIDFrom(ctx)
	}

	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal activity message: %w", err)
	}

	err = p.channel.Publish(
		p.cfg.Exchange,
		p.cfg.RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:   "application/json",
			CorrelationId: message.RequestID,
			Body:          body,
			Timestamp:     message.Timestamp,
		},
	)

	if err != nil {
		logrus.WithError(err).Error("Failed to publish activity message")
		return fmt.Errorf("%w: %v", models.ErrQueuePublish, err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id":     message.UserID,
		"session_id":  message.SessionID,
		"service":     message.ServiceName,
		"action":      message.Action,
		"exchange":    p.cfg.Exchange,
		"routing_key": p.cfg.RoutingKey,
	}).Debug("Activity message published")

	return nil
}

type noopPublisher struct{}

// NewNoopPublisher is used when no message broker is configured.
func NewNoopPublisher() ActivityPublisher {
	return noopPublisher{}
}

func (noopPublisher) PublishActivity(_ context.Context, message models.ActivityMessage) error {
	logrus.WithFields(logrus.Fields{
		"user_id":    message.UserID,
		"session_id": message.SessionID,
		"action":     message.Action,
	}).Debug("Activity publishing disabled, message dropped")
	return nil
}
