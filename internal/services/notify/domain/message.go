// Package domain implements the notification router: a closed message
// union, immediate acknowledgement, and handoff to a delivery sink.
package domain

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrMissingPayload indicates a send request with no message variant.
	ErrMissingPayload = errors.New("notification payload is required")
	// ErrSinkUnavailable indicates the delivery sink refused the handoff.
	ErrSinkUnavailable = errors.New("delivery sink unavailable")
)

// Message is the closed union of notification variants. Only the three
// types in this package implement it.
type Message interface {
	// Variant names the message kind for logging and metrics.
	Variant() string
}

// Email is the email notification variant.
type Email struct {
	Subject string
	From    string
	To      []string
	Body    string
}

// Variant implements Message.
func (Email) Variant() string { return "email" }

// SMS is the text-message notification variant.
type SMS struct {
	Sender     string
	Recipients []string
	Body       string
}

// Variant implements Message.
func (SMS) Variant() string { return "sms" }

// InApp is the in-app notification variant.
type InApp struct {
	Title    string
	Body     string
	DeviceID string
}

// Variant implements Message.
func (InApp) Variant() string { return "in_app" }

// Envelope wraps one accepted message with its correlation id for the
// delivery sink.
type Envelope struct {
	MessageID string
	Message   Message
}

// Acknowledgement certifies acceptance for delivery, not delivery
// itself.
type Acknowledgement struct {
	MessageID string
	Timestamp time.Time
}

// Sink is the delivery boundary. Deliver returns once the envelope has
// been handed to the sink's intake; actual delivery is best effort and
// happens after the call returns.
type Sink interface {
	Deliver(ctx context.Context, env Envelope) error
}
