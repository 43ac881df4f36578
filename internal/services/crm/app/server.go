// Package app wires the crm runtime: downstream client connections, the
// campaign workflow, and the gRPC lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/crmspace/crm/api/crmv1"
	platformgrpc "github.com/crmspace/crm/internal/platform/grpc"
	"github.com/crmspace/crm/internal/platform/metrics"
	crmservice "github.com/crmspace/crm/internal/services/crm/api/grpc/crm"
	"github.com/crmspace/crm/internal/services/crm/workflow"
)

// DefaultDialTimeout bounds each downstream dial plus health check.
const DefaultDialTimeout = 30 * time.Second

// Config holds crm server configuration.
type Config struct {
	Port          int
	UserStatsAddr string
	MetadataAddr  string
	NotifyAddr    string
	Sender        string
	MetricsAddr   string
}

// Server hosts the crm gRPC API and the downstream connections.
type Server struct {
	listener    net.Listener
	grpcServer  *grpc.Server
	health      *health.Server
	conns       []*grpc.ClientConn
	logger      *zap.Logger
	metricsAddr string
}

// New dials the three downstream services, waits for each to report
// healthy, and returns a configured crm server.
func New(ctx context.Context, cfg Config, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Port))
	if err != nil {
		return nil, fmt.Errorf("listen on port %d: %w", cfg.Port, err)
	}

	dialOpts := append(platformgrpc.DefaultClientDialOptions(),
		grpc.WithDefaultCallOptions(crmv1.DefaultCallOptions()...))

	var conns []*grpc.ClientConn
	closeAll := func() {
		for _, conn := range conns {
			_ = conn.Close()
		}
		_ = listener.Close()
	}
	dial := func(name, addr string) (*grpc.ClientConn, error) {
		conn, err := platformgrpc.DialWithHealth(ctx, nil, addr, DefaultDialTimeout, logger, dialOpts...)
		if err != nil {
			return nil, fmt.Errorf("dial %s at %s: %w", name, addr, err)
		}
		conns = append(conns, conn)
		return conn, nil
	}

	userStatsConn, err := dial("userstats", cfg.UserStatsAddr)
	if err != nil {
		closeAll()
		return nil, err
	}
	metadataConn, err := dial("metadata", cfg.MetadataAddr)
	if err != nil {
		closeAll()
		return nil, err
	}
	notifyConn, err := dial("notify", cfg.NotifyAddr)
	if err != nil {
		closeAll()
		return nil, err
	}

	wf := workflow.New(
		crmv1.NewUserStatsClient(userStatsConn),
		crmv1.NewMetadataClient(metadataConn),
		crmv1.NewNotificationClient(notifyConn),
		workflow.Config{Sender: cfg.Sender},
		logger,
	)

	grpcServer := grpc.NewServer(grpc.StatsHandler(otelgrpc.NewServerHandler()))
	crmv1.RegisterCrmServer(grpcServer, crmservice.NewService(wf, logger))

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(crmv1.CrmServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	return &Server{
		listener:    listener,
		grpcServer:  grpcServer,
		health:      healthServer,
		conns:       conns,
		logger:      logger,
		metricsAddr: cfg.MetricsAddr,
	}, nil
}

// Addr returns the listener address for the server.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Run creates and serves a crm server until context cancellation.
func Run(ctx context.Context, cfg Config, logger *zap.Logger) error {
	server, err := New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// Serve starts the gRPC server until context cancellation.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil {
		return errors.New("server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.Close()

	go func() {
		if err := metrics.Serve(ctx, s.metricsAddr); err != nil {
			s.logger.Warn("metrics endpoint failed", zap.Error(err))
		}
	}()

	s.logger.Info("crm server listening", zap.String("addr", s.listener.Addr().String()))
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.grpcServer.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		s.health.Shutdown()
		s.grpcServer.GracefulStop()
		err := <-serveErr
		if err == nil || errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return err
	case err := <-serveErr:
		if err == nil || errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return fmt.Errorf("serve crm: %w", err)
	}
}

// Close releases the server's resources, including the downstream
// connections.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.health != nil {
		s.health.Shutdown()
	}
	if s.grpcServer != nil {
		s.grpcServer.Stop()
	}
	if s.listener != nil {
		_ = s.listener.Close()
	}
	for _, conn := range s.conns {
		_ = conn.Close()
	}
}
