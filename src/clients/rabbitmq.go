package clients

import (
	"errors"
	"fmt"
	"time"

	"chatbot-svc/src/internal/config"
	"chatbot-svc/src/internal/models"

	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
)

const amqpHeartbeat = 10 * time.Second

// RabbitMQ holds the broker connection and the one channel activity events go out on.
type RabbitMQ struct {
	Conn    *amqp.Connection
	Channel *amqp.Channel
}

func NewRabbitMQ(cfg *config.RabbitMQConfig, connectionName string) (*RabbitMQ, error) {
	log.WithField("exchange", cfg.Exchange).Info("Connecting to RabbitMQ...")
	conn, err := amqp.DialConfig(cfg.Url, amqp.Config{
		Heartbeat:  amqpHeartbeat,
		Properties: amqp.Table{"connection_name": connectionName},
	})
	if err != nil {
		log.WithError(err).Error("Failed to connect to RabbitMQ")
		return nil, fmt.Errorf("%w: %v", models.ErrQueueConnection, err)
	}

	channel, err := conn.Channel()
	if err != nil {
		log.WithError(err).Error("Failed to open RabbitMQ channel")
		_ = conn.Close()
		return nil, fmt.Errorf("%w: %v", models.ErrQueueConnection, err)
	}

	r := &RabbitMQ{Conn: conn, Channel: channel}
	go r.watch(conn.NotifyClose(make(chan *amqp.Error, 1)))

	log.WithField("exchange", cfg.Exchange).Info("Connected to RabbitMQ")
	return r, nil
}

// watch logs a broker-side close. Events are best-effort, so the service keeps
// running and /health reports the queue as closed.
func (r *RabbitMQ) watch(closed <-chan *amqp.Error) {
	if amqpErr, ok := <-closed; ok && amqpErr != nil {
		log.WithFields(logrus.Fields{
			"code":   amqpErr.Code,
			"reason": amqpErr.Reason,
		}).Warn("RabbitMQ connection closed by broker, activity events will be dropped")
	}
}

func (r *RabbitMQ) Healthy() bool {
	return r.Conn != nil && !r.Conn.IsClosed()
}

// Close closes the channel and then the connection.
func (r *RabbitMQ) Close() error {
	if r.Channel != nil {
		if err := r.Channel.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			log.WithError(err).Error("Failed to close RabbitMQ channel")
			return err
		}
	}

	if r.Conn != nil {
		if err := r.Conn.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			log.WithError(err).Error("Failed to close RabbitMQ connection")
			return err
		}
	}

	log.Info("RabbitMQ connection closed")
	return nil
}
