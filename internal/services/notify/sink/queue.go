// Package sink provides delivery-sink implementations for the
// notification router: a bounded intake queue, a logging consumer, and
// an AMQP publisher.
package sink

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/crmspace/crm/internal/services/notify/domain"
)

// DefaultQueueCapacity bounds the intake channel of a Queue sink.
const DefaultQueueCapacity = 1024

// ErrClosed indicates a handoff to a closed queue.
var ErrClosed = errors.New("delivery queue closed")

// Queue decouples acceptance from delivery: Deliver hands the envelope
// to a bounded intake channel and returns; a single consumer goroutine
// drains the channel into the inner sink. Delivery order across
// concurrent producers is unordered. Inner sink failures are logged and
// dropped; the at-most-once contract ends at the intake.
type Queue struct {
	intake  chan domain.Envelope
	inner   domain.Sink
	logger  *zap.Logger
	closing chan struct{}
	done    chan struct{}

	closeOnce sync.Once
}

// NewQueue starts the consumer goroutine and returns the queue sink.
// capacity <= 0 selects DefaultQueueCapacity.
func NewQueue(inner domain.Sink, capacity int, logger *zap.Logger) *Queue {
	if capacity <= 0 {
		capacity = DefaultQueueCapacity
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	q := &Queue{
		intake:  make(chan domain.Envelope, capacity),
		inner:   inner,
		logger:  logger,
		closing: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go q.consume()
	return q
}

func (q *Queue) consume() {
	defer close(q.done)
	for {
		select {
		case <-q.closing:
			// Drain what is already buffered, then stop. Envelopes racing
			// into the intake after this point are dropped.
			for {
				select {
				case env := <-q.intake:
					q.deliver(env)
				default:
					return
				}
			}
		case env := <-q.intake:
			q.deliver(env)
		}
	}
}

func (q *Queue) deliver(env domain.Envelope) {
	if err := q.inner.Deliver(context.Background(), env); err != nil {
		q.logger.Warn("delivery failed",
			zap.String("message_id", env.MessageID),
			zap.String("variant", env.Message.Variant()),
			zap.Error(err))
	}
}

// Deliver hands one envelope to the intake channel, blocking while the
// queue is full.
func (q *Queue) Deliver(ctx context.Context, env domain.Envelope) error {
	select {
	case <-q.closing:
		return ErrClosed
	default:
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-q.closing:
		return ErrClosed
	case q.intake <- env:
		return nil
	}
}

// Close stops accepting envelopes and waits for queued deliveries to
// drain. The wait is bounded by ctx: when the inner sink hangs, Close
// returns the context error and abandons the consumer.
func (q *Queue) Close(ctx context.Context) error {
	q.closeOnce.Do(func() { close(q.closing) })
	select {
	case <-q.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
