// Package notify publishes storefront events (order.created, order.paid,
// contact.received) to a RabbitMQ topic exchange. A downstream worker turns
// them into customer and vendor mails; the API itself never blocks on
// notification delivery.
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

const exchange = "storefront.events"

type message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Publisher is nil-safe: a nil *Publisher drops every event, so event
// publishing can be switched off by simply not configuring RabbitMQ.
type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *zap.Logger
}

// NewPublisher connects to the broker. An empty URL returns a nil publisher,
// which disables event publishing.
func NewPublisher(amqpURL string, logger *zap.Logger) (*Publisher, error) {
	if amqpURL == "" {
		return nil, nil
	}

	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %v", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %v", err)
	}

	if err := channel.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %v", err)
	}

	return &Publisher{conn: conn, channel: channel, logger: logger}, nil
}

// Publish emits one event under the given routing key ("order.created", ...).
func (p *Publisher) Publish(ctx context.Context, event string, data interface{}) error {
	if p == nil {
		return nil
	}

	body, err := json.Marshal(message{Event: event, Data: data})
	if err != nil {
		return fmt.Errorf("failed to marshal message: %v", err)
	}

	err = p.channel.Publish(exchange, event, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish message: %v", err)
	}

	p.logger.Info("event published", zap.String("event", event))
	return nil
}

func (p *Publisher) Close() {
	if p == nil {
		return
	}
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}
