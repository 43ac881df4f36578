package grpc

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	gogrpc "google.golang.org/grpc"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

func TestDialWithHealthServingBackend(t *testing.T) {
	backend := newHealthBackend(t, grpc_health_v1.HealthCheckResponse_SERVING)
	logger, logs := observedLogger()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	conn, err := DialWithHealth(ctx, nil, backend.addr, time.Second, logger, DefaultClientDialOptions()...)
	if err != nil {
		t.Fatalf("dial with health: %v", err)
	}
	defer conn.Close()

	if logs.FilterMessage("gRPC health check is SERVING").Len() != 1 {
		t.Fatal("expected the health wait to log through the provided logger")
	}
}

func TestDialWithHealthNotServingBackend(t *testing.T) {
	backend := newHealthBackend(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	logger, logs := observedLogger()

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	conn, err := DialWithHealth(ctx, nil, backend.addr, time.Second, logger, DefaultClientDialOptions()...)
	if conn != nil {
		_ = conn.Close()
		t.Fatal("expected nil connection on error")
	}
	var dialErr *DialError
	if !errors.As(err, &dialErr) {
		t.Fatalf("expected DialError, got %T: %v", err, err)
	}
	if dialErr.Stage != DialStageHealth {
		t.Fatalf("expected stage %q, got %q", DialStageHealth, dialErr.Stage)
	}
	if logs.FilterMessage("waiting for gRPC health").Len() == 0 {
		t.Fatal("expected wait entries from the not-serving backend")
	}
}

func TestDialWithHealthTimeoutBoundsHealthWait(t *testing.T) {
	backend := newHealthBackend(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := DialWithHealth(ctx, nil, backend.addr, 150*time.Millisecond, nil, DefaultClientDialOptions()...)
	if err == nil {
		t.Fatal("expected error")
	}
	if elapsed := time.Since(start); elapsed > 400*time.Millisecond {
		t.Fatalf("expected the dial timeout to bound the health wait, took %v", elapsed)
	}
}

func TestDialWithHealthConnectStage(t *testing.T) {
	refused := errors.New("connection refused")
	dialer := DialerFunc(func(context.Context, string, ...gogrpc.DialOption) (*gogrpc.ClientConn, error) {
		return nil, refused
	})

	_, err := DialWithHealth(context.Background(), dialer, "unused", time.Second, nil)
	var dialErr *DialError
	if !errors.As(err, &dialErr) {
		t.Fatalf("expected DialError, got %T: %v", err, err)
	}
	if dialErr.Stage != DialStageConnect {
		t.Fatalf("expected stage %q, got %q", DialStageConnect, dialErr.Stage)
	}
	if !errors.Is(err, refused) {
		t.Fatal("expected the dial failure preserved in the chain")
	}
}

func TestDialErrorMessage(t *testing.T) {
	wrapped := &DialError{Stage: DialStageConnect, Err: fmt.Errorf("boom")}
	if !strings.Contains(wrapped.Error(), "gRPC connect") {
		t.Fatalf("unexpected message: %s", wrapped.Error())
	}
	if wrapped.Unwrap() == nil {
		t.Fatal("expected wrapped error")
	}

	var nilErr *DialError
	if nilErr.Error() == "" {
		t.Fatal("expected fallback message from nil receiver")
	}
	if nilErr.Unwrap() != nil {
		t.Fatal("expected nil unwrap from nil receiver")
	}
}

func TestDialerFuncDelegates(t *testing.T) {
	var gotAddr string
	dialer := DialerFunc(func(_ context.Context, addr string, _ ...gogrpc.DialOption) (*gogrpc.ClientConn, error) {
		gotAddr = addr
		return nil, nil
	})

	if _, err := dialer.DialContext(context.Background(), "userstats:50051"); err != nil {
		t.Fatalf("dial context: %v", err)
	}
	if gotAddr != "userstats:50051" {
		t.Fatalf("expected the address forwarded, got %q", gotAddr)
	}
}

func TestDefaultClientDialOptionsCarryStandardSet(t *testing.T) {
	opts := DefaultClientDialOptions()
	// Plaintext credentials, blocking connect, OTel stats handler.
	if len(opts) != 3 {
		t.Fatalf("expected 3 standard dial options, got %d", len(opts))
	}
}
