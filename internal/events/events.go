// Package events publishes chat session status updates to RabbitMQ.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/streadway/amqp"

	"github.com/muhammadolammi/hrworkflow/internal/conversation"
)

const Exchange = "session_updates"

type channel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher implements conversation.Notifier over a topic exchange.
type Publisher struct {
	conn *amqp.Connection
	ch   channel
}

// Dial connects and declares the exchange.
func Dial(url string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("error connecting to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("error opening channel: %w", err)
	}
	if err := ch.ExchangeDeclare(
		Exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("error declaring exchange: %w", err)
	}
	return &Publisher{conn: conn, ch: ch}, nil
}

// RoutingKey is the key updates for a session are published under.
func RoutingKey(e conversation.Event) string {
	return fmt.Sprintf("session.%s", e.SessionID)
}

type update struct {
	conversation.Event
	Timestamp time.Time `json:"timestamp"`
}

// Notify implements conversation.Notifier.
func (p *Publisher) Notify(_ context.Context, e conversation.Event) error {
	body, err := json.Marshal(update{Event: e, Timestamp: time.Now().UTC()})
	if err != nil {
		return err
	}
	return p.ch.Publish(
		Exchange, // exchange
		RoutingKey(e),
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

// Close releases the channel and the connection.
func (p *Publisher) Close() error {
	if err := p.ch.Close(); err != nil {
		return err
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
