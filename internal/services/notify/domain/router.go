package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Router accepts notification messages and forwards them to the shared
// delivery sink.
type Router struct {
	sink   Sink
	clock  func() time.Time
	newID  func() string
	logger *zap.Logger
}

// NewRouter creates a Router over the given sink. clock and newID may be
// nil; they default to time.Now and uuid generation.
func NewRouter(sink Sink, clock func() time.Time, newID func() string, logger *zap.Logger) *Router {
	if clock == nil {
		clock = time.Now
	}
	if newID == nil {
		newID = func() string { return uuid.NewString() }
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{sink: sink, clock: clock, newID: newID, logger: logger}
}

// Route stamps an acknowledgement for the message and hands it to the
// delivery sink. The acknowledgement certifies acceptance only: it is
// constructed before the handoff, and a sink failure converts into an
// error for this one message without invalidating the correlation id.
func (r *Router) Route(ctx context.Context, messageID string, msg Message) (Acknowledgement, error) {
	if msg == nil {
		return Acknowledgement{}, ErrMissingPayload
	}
	if messageID == "" {
		messageID = r.newID()
	}
	ack := Acknowledgement{MessageID: messageID, Timestamp: r.clock().UTC()}

	if err := r.sink.Deliver(ctx, Envelope{MessageID: messageID, Message: msg}); err != nil {
		r.logger.Warn("delivery handoff failed",
			zap.String("message_id", messageID),
			zap.String("variant", msg.Variant()),
			zap.Error(err))
		return ack, fmt.Errorf("%w: %s", ErrSinkUnavailable, err)
	}
	return ack, nil
}
