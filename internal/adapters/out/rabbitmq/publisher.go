package rabbitmq

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"bazaarlink/internal/core/domain/events"
	"bazaarlink/internal/pkg/metrics"

	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 5 * time.Second

// Publisher sends domain events to the topic exchange. Messages are
// persistent so a broker restart does not lose committed facts.
type Publisher struct {
	client *Client
	logger *slog.Logger
}

// NewPublisher creates an event publisher on the shared client.
func NewPublisher(client *Client, logger *slog.Logger) *Publisher {
	return &Publisher{
		client: client,
		logger: logger.With("component", "event-publisher"),
	}
}

// Publish marshals the event and sends it with the topic as routing key.
func (p *Publisher) Publish(ctx context.Context, event events.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.client.Channel().PublishWithContext(
		ctx,
		ExchangeName,
		event.Topic(),
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		metrics.EventsPublished.WithLabelValues(event.Topic(), "error").Inc()
		return err
	}

	metrics.EventsPublished.WithLabelValues(event.Topic(), "ok").Inc()
	p.logger.Debug("event published", "topic", event.Topic())
	return nil
}
