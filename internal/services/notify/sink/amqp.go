package sink

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rabbitmq/amqp091-go"

	"github.com/crmspace/crm/internal/services/notify/domain"
)

// ExchangeName is the topic exchange notifications are published to.
const ExchangeName = "notifications"

// AMQP publishes envelopes to a RabbitMQ topic exchange, routed by
// message variant (notify.email, notify.sms, notify.in_app).
type AMQP struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

// NewAMQP connects to the broker and declares the notifications
// exchange.
func NewAMQP(url string) (*AMQP, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := channel.ExchangeDeclare(ExchangeName, "topic", true, false, false, false, nil); err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &AMQP{conn: conn, channel: channel}, nil
}

type amqpEnvelope struct {
	MessageID string        `json:"message_id"`
	Variant   string        `json:"variant"`
	Email     *domain.Email `json:"email,omitempty"`
	SMS       *domain.SMS   `json:"sms,omitempty"`
	InApp     *domain.InApp `json:"in_app,omitempty"`
}

// Deliver implements domain.Sink.
func (s *AMQP) Deliver(ctx context.Context, env domain.Envelope) error {
	payload := amqpEnvelope{MessageID: env.MessageID, Variant: env.Message.Variant()}
	switch msg := env.Message.(type) {
	case domain.Email:
		payload.Email = &msg
	case domain.SMS:
		payload.SMS = &msg
	case domain.InApp:
		payload.InApp = &msg
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}
	routingKey := "notify." + env.Message.Variant()
	err = s.channel.PublishWithContext(ctx, ExchangeName, routingKey, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp091.Persistent,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", routingKey, err)
	}
	return nil
}

// Close releases the channel and connection.
func (s *AMQP) Close() {
	if s.channel != nil {
		_ = s.channel.Close()
	}
	if s.conn != nil {
		_ = s.conn.Close()
	}
}
