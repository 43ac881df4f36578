// Package relay pumps an inbound request stream through a per-item
// handler into a bounded outbound channel.
//
// The bounded channel is the backpressure mechanism shared by every
// streaming RPC in the system: when the consumer of the outbound channel
// is slow, the pump blocks instead of buffering unbounded state, which in
// turn stops it from receiving further inbound items.
package relay

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// DefaultCapacity is the outbound channel capacity used when Options does
// not override it.
const DefaultCapacity = 1024

// Source yields the next inbound item. It returns io.EOF once the inbound
// stream is exhausted; any other error is treated as a transport fault
// that ends the relay. grpc stream Recv methods satisfy this shape
// directly.
type Source[Req any] func() (Req, error)

// Handler processes one inbound item into one outbound value. A handler
// error is delivered as a per-item Result and never terminates the relay.
type Handler[Req, Resp any] func(ctx context.Context, req Req) (Resp, error)

// Result is one outbound item. When Err is non-nil the item failed;
// Value may still carry partial output (e.g. an acknowledgement shell
// identifying the failed item).
type Result[Resp any] struct {
	Value Resp
	Err   error
}

// TransportError wraps a fatal inbound-stream fault. It is delivered as
// the final Result before the outbound channel closes, so consumers can
// tell a dead stream apart from normal exhaustion.
type TransportError struct {
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("relay transport fault: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransportError reports whether err is a fatal relay transport fault
// rather than a per-item handler failure.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// Options tunes one relay instance.
type Options struct {
	// Capacity bounds the outbound channel. Zero means DefaultCapacity.
	Capacity int
}

// Run starts the relay and returns its outbound channel. The channel is
// closed when the inbound stream is exhausted, when the source reports a
// transport fault, or when ctx is cancelled. Items are emitted in inbound
// order. A relay is single-pass: once the channel closes it cannot be
// restarted.
//
// Cancellation: when ctx ends the relay stops receiving new items. The
// item currently being handled is abandoned; its result is not delivered.
func Run[Req, Resp any](ctx context.Context, source Source[Req], handle Handler[Req, Resp], opts Options) <-chan Result[Resp] {
	capacity := opts.Capacity
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	out := make(chan Result[Resp], capacity)

	go func() {
		defer close(out)
		for {
			if ctx.Err() != nil {
				return
			}
			req, err := source()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				select {
				case out <- Result[Resp]{Err: &TransportError{Err: err}}:
				case <-ctx.Done():
				}
				return
			}
			resp, err := handle(ctx, req)
			select {
			case out <- Result[Resp]{Value: resp, Err: err}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}
