package rabbit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/easygen/auth-service/internal/domain/models"
	wrap "github.com/easygen/auth-service/pkg/logger/wrapper"
	"github.com/easygen/auth-service/pkg/metrics"
	"github.com/easygen/auth-service/pkg/rabbit"
	"github.com/rabbitmq/amqp091-go"
)

const (
	exchangeName = "auth.events"
	serviceName  = "auth-service"
)

// AuthProducer publishes auth lifecycle events to the auth.events topic
// exchange with routing keys like "user.registered".
type AuthProducer struct {
	client *rabbit.RabbitMQ
}

// NewAuthProducer declares the exchange and returns the producer.
func NewAuthProducer(client *rabbit.RabbitMQ) (*AuthProducer, error) {
	if err := client.Channel.ExchangeDeclare(
		exchangeName, // name
		"topic",      // kind
		true,         // durable
		false,        // auto-delete
		false,        // internal
		false,        // no-wait
		nil,          // args
	); err != nil {
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchangeName, err)
	}

	return &AuthProducer{
		client: client,
	}, nil
}

// PublishAuthEvent publishes a single auth event. The caller treats failures
// as non-fatal; no retry happens here.
func (p *AuthProducer) PublishAuthEvent(ctx context.Context, event models.AuthEvent) (err error) {
	const op = "AuthProducer.PublishAuthEvent"
	defer func() { metrics.RecordRabbitMQPublish(serviceName, exchangeName, err) }()

	if err = p.client.EnsureConnection(ctx); err != nil {
		return wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	body, err := json.Marshal(event)
	if err != nil {
		ctx = wrap.WithAction(ctx, "marshal_auth_event")
		return wrap.Error(ctx, fmt.Errorf("%s: failed to marshal event: %w", op, err))
	}

	key := fmt.Sprintf("user.%s", event.Kind)

	if err = p.client.Channel.PublishWithContext(
		ctx,
		exchangeName, // exchange
		key,          // routing key
		false,        // mandatory
		false,        // immediate
		amqp091.Publishing{
			ContentType: "application/json",
			Body:        body,
			Timestamp:   time.Now(),
		},
	); err != nil {
		ctx = wrap.WithAction(ctx, "publish_auth_event")
		return wrap.Error(ctx, fmt.Errorf("%s: failed to publish with context: %w", op, err))
	}

	return nil
}
