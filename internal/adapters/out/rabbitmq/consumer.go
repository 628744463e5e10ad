package rabbitmq

import (
	"context"
	"fmt"
	"log/slog"

	"bazaarlink/internal/pkg/metrics"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Handler processes one message body. A nil return acknowledges the
// message.
type Handler func(ctx context.Context, body []byte) error

// Consumer binds a durable queue to one topic and feeds messages to a
// handler one at a time (prefetch 1, manual ack).
//
// Failure policy: a message that fails on first delivery is requeued once;
// a redelivered message that fails again is dropped. Events here announce
// state that already lives in the database, so clients recover the truth on
// their next read and an endless redelivery loop would be strictly worse.
type Consumer struct {
	channel *amqp.Channel
	queue   amqp.Queue
	topic   string
	logger  *slog.Logger
}

// NewConsumer opens a dedicated channel, declares the durable queue
// <queueName> and binds it to the topic.
func NewConsumer(client *Client, queueName, topic string, logger *slog.Logger) (*Consumer, error) {
	channel, err := client.Connection().Channel()
	if err != nil {
		return nil, fmt.Errorf("open consumer channel: %w", err)
	}

	if err := channel.Qos(1, 0, false); err != nil {
		_ = channel.Close()
		return nil, fmt.Errorf("set qos: %w", err)
	}

	queue, err := channel.QueueDeclare(
		queueName,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = channel.Close()
		return nil, fmt.Errorf("declare queue %s: %w", queueName, err)
	}

	if err := channel.QueueBind(queue.Name, topic, ExchangeName, false, nil); err != nil {
		_ = channel.Close()
		return nil, fmt.Errorf("bind queue %s to %s: %w", queueName, topic, err)
	}

	return &Consumer{
		channel: channel,
		queue:   queue,
		topic:   topic,
		logger:  logger.With("component", "event-consumer", "queue", queueName),
	}, nil
}

// Run consumes until the context is cancelled or the channel closes.
func (c *Consumer) Run(ctx context.Context, handler Handler) error {
	deliveries, err := c.channel.Consume(
		c.queue.Name,
		"",
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("consume %s: %w", c.queue.Name, err)
	}

	c.logger.Info("consuming", "topic", c.topic)

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel for %s closed", c.queue.Name)
			}
			c.handle(ctx, msg, handler)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, msg amqp.Delivery, handler Handler) {
	err := handler(ctx, msg.Body)
	if err == nil {
		if ackErr := msg.Ack(false); ackErr != nil {
			c.logger.Error("failed to ack", "error", ackErr)
		}
		metrics.EventsConsumed.WithLabelValues(c.topic, "ok").Inc()
		return
	}

	if msg.Redelivered {
		c.logger.Error("dropping message after redelivery", "topic", c.topic, "error", err)
		if rejectErr := msg.Reject(false); rejectErr != nil {
			c.logger.Error("failed to reject", "error", rejectErr)
		}
		metrics.EventsConsumed.WithLabelValues(c.topic, "dropped").Inc()
		return
	}

	c.logger.Warn("requeueing message", "topic", c.topic, "error", err)
	if nackErr := msg.Nack(false, true); nackErr != nil {
		c.logger.Error("failed to nack", "error", nackErr)
	}
	metrics.EventsConsumed.WithLabelValues(c.topic, "requeued").Inc()
}

// Close releases the consumer's channel.
func (c *Consumer) Close() error {
	return c.channel.Close()
}
