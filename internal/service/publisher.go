package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/somang-church/website-api/internal/config"
	"github.com/somang-church/website-api/internal/models"
	"github.com/somang-church/website-api/pkg/logger"
)

// DecisionPublisher publishes review decisions to RabbitMQ so the operator
// can be notified out-of-band. It is optional; a nil publisher is a no-op
// at the call sites.
type DecisionPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	config  *config.RabbitMQConfig
	mu      sync.RWMutex
}

// NewDecisionPublisher connects to RabbitMQ and declares the decision
// exchange and queue.
func NewDecisionPublisher(cfg *config.RabbitMQConfig) (*DecisionPublisher, error) {
	dp := &DecisionPublisher{
		config: cfg,
	}

	if err := dp.connect(); err != nil {
		return nil, err
	}

	return dp, nil
}

func (dp *DecisionPublisher) connect() error {
	dp.mu.Lock()
	defer dp.mu.Unlock()

	connURL := fmt.Sprintf("amqp://%s:%s@%s:%d/",
		dp.config.User, dp.config.Password, dp.config.Host, dp.config.Port)

	conn, err := amqp.Dial(connURL)
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("failed to open channel: %w", err)
	}

	// Enable publisher confirms
	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("failed to enable publisher confirms: %w", err)
	}

	if err := ch.ExchangeDeclare(
		dp.config.Exchange, // name
		"topic",            // type
		true,               // durable
		false,              // auto-deleted
		false,              // internal
		false,              // no-wait
		nil,                // arguments
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	_, err = ch.QueueDeclare(
		dp.config.Queue, // name
		true,            // durable
		false,           // delete when unused
		false,           // exclusive
		false,           // no-wait
		nil,             // arguments
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	if err := ch.QueueBind(
		dp.config.Queue,      // queue name
		dp.config.RoutingKey, // routing key
		dp.config.Exchange,   // exchange
		false,
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("failed to bind queue: %w", err)
	}

	dp.conn = conn
	dp.channel = ch

	logger.Log.Info("Connected to RabbitMQ",
		zap.String("exchange", dp.config.Exchange),
		zap.String("queue", dp.config.Queue),
	)

	return nil
}

// PublishDecision publishes a review decision event. The caller treats
// failures as log-only; a reviewer must never see a broker error.
func (dp *DecisionPublisher) PublishDecision(ctx context.Context, event *models.ReviewDecidedEvent) error {
	dp.mu.RLock()
	defer dp.mu.RUnlock()

	if dp.channel == nil {
		return fmt.Errorf("channel is not initialized")
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// Publish with confirmation
	confirms := dp.channel.NotifyPublish(make(chan amqp.Confirmation, 1))

	err = dp.channel.PublishWithContext(
		ctx,
		dp.config.Exchange,   // exchange
		dp.config.RoutingKey, // routing key
		true,                 // mandatory
		false,                // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			MessageId:    event.ReviewID.String(),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	// Wait for confirmation with timeout
	select {
	case confirm := <-confirms:
		if !confirm.Ack {
			return fmt.Errorf("message was not acknowledged by broker")
		}
	case <-time.After(5 * time.Second):
		return fmt.Errorf("timeout waiting for publish confirmation")
	case <-ctx.Done():
		return ctx.Err()
	}

	logger.Log.Debug("Published review decision",
		zap.String("reviewId", event.ReviewID.String()),
		zap.String("routingKey", dp.config.RoutingKey),
	)

	return nil
}

func (dp *DecisionPublisher) Close() error {
	dp.mu.Lock()
	defer dp.mu.Unlock()

	var errs []error
	if dp.channel != nil {
		if err := dp.channel.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if dp.conn != nil {
		if err := dp.conn.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors closing publisher: %v", errs)
	}

	logger.Log.Info("RabbitMQ publisher closed")
	return nil
}

func (dp *DecisionPublisher) IsHealthy() bool {
	dp.mu.RLock()
	defer dp.mu.RUnlock()

	return dp.conn != nil && !dp.conn.IsClosed() && dp.channel != nil
}
