package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

// healthBackend is a throwaway gRPC server exposing only the health
// service; its status can be flipped mid-test.
type healthBackend struct {
	addr   string
	server *health.Server
}

func newHealthBackend(t *testing.T, status grpc_health_v1.HealthCheckResponse_ServingStatus) *healthBackend {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	grpcServer := gogrpc.NewServer()
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", status)

	go func() { _ = grpcServer.Serve(listener) }()
	t.Cleanup(func() {
		grpcServer.Stop()
		_ = listener.Close()
	})

	return &healthBackend{addr: listener.Addr().String(), server: healthServer}
}

func (b *healthBackend) setStatus(status grpc_health_v1.HealthCheckResponse_ServingStatus) {
	b.server.SetServingStatus("", status)
}

func (b *healthBackend) dial(t *testing.T) *gogrpc.ClientConn {
	t.Helper()

	conn, err := gogrpc.NewClient(b.addr, gogrpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatalf("dial backend: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func TestWaitForHealthServing(t *testing.T) {
	backend := newHealthBackend(t, grpc_health_v1.HealthCheckResponse_SERVING)
	logger, logs := observedLogger()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := WaitForHealth(ctx, backend.dial(t), "", logger); err != nil {
		t.Fatalf("wait for health: %v", err)
	}
	if logs.FilterMessage("gRPC health check is SERVING").Len() != 1 {
		t.Fatalf("expected one SERVING log entry, got %d", logs.FilterMessage("gRPC health check is SERVING").Len())
	}
}

func TestWaitForHealthLogsWhileWaiting(t *testing.T) {
	backend := newHealthBackend(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	logger, logs := observedLogger()

	go func() {
		time.Sleep(300 * time.Millisecond)
		backend.setStatus(grpc_health_v1.HealthCheckResponse_SERVING)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := WaitForHealth(ctx, backend.dial(t), "", logger); err != nil {
		t.Fatalf("wait for health after transition: %v", err)
	}

	waiting := logs.FilterMessage("waiting for gRPC health")
	if waiting.Len() == 0 {
		t.Fatal("expected the wait loop to log while not serving")
	}
	entry := waiting.All()[0]
	if _, ok := entry.ContextMap()["service"]; !ok {
		t.Fatalf("expected the service field on wait entries, got %v", entry.ContextMap())
	}
}

func TestWaitForHealthBoundedByContext(t *testing.T) {
	backend := newHealthBackend(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	if err := WaitForHealth(ctx, backend.dial(t), "", nil); err == nil {
		t.Fatal("expected context error, got nil")
	}
}

func TestWaitForHealthRequiresConnection(t *testing.T) {
	if err := WaitForHealth(context.Background(), nil, "", nil); err == nil {
		t.Fatal("expected nil connection to be rejected")
	}
}
