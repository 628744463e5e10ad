// Package rabbitmq connects the delivery core to the message broker. Every
// state change leaves the service as a JSON message on a topic exchange;
// other services (and this service's own live bridge) bind durable queues
// to the topics they care about.
package rabbitmq

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ExchangeName is the topic exchange all delivery events go through.
const ExchangeName = "bazaarlink.events"

// Client owns the AMQP connection and channel shared by the publisher and
// consumers.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// NewClient dials the broker and declares the topic exchange.
func NewClient(url string) (*Client, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		ExchangeName,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &Client{conn: conn, channel: channel}, nil
}

// Channel returns the shared channel.
func (c *Client) Channel() *amqp.Channel {
	return c.channel
}

// Connection returns the underlying connection, used by consumers to open
// their own channels.
func (c *Client) Connection() *amqp.Connection {
	return c.conn
}

// Close releases the channel and connection.
func (c *Client) Close() error {
	if c.channel != nil {
		_ = c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
