// Package app wires the notify runtime: sink selection, the bounded
// delivery queue, and the gRPC lifecycle.
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
	"github.com/crmspace/crm/internal/platform/metrics"
	notifyservice "github.com/crmspace/crm/internal/services/notify/api/grpc/notify"
	"github.com/crmspace/crm/internal/services/notify/domain"
	"github.com/crmspace/crm/internal/services/notify/sink"
)

// queueDrainTimeout bounds the delivery-queue drain during shutdown.
const queueDrainTimeout = 5 * time.Second

// Config holds notify server configuration. AMQPURL selects the AMQP
// delivery sink when set; otherwise accepted notifications are logged.
type Config struct {
	Port          int
	AMQPURL       string
	QueueCapacity int
	MetricsAddr   string
}

// Server hosts the notify gRPC API and the delivery queue lifecycle.
type Server struct {
	listener    net.Listener
	grpcServer  *grpc.Server
	health      *health.Server
	queue       *sink.Queue
	amqp        *sink.AMQP
	logger      *zap.Logger
	metricsAddr string
}

// New creates a configured notify server.
func New(cfg Config, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Port))
	if err != nil {
		return nil, fmt.Errorf("listen on port %d: %w", cfg.Port, err)
	}

	var inner domain.Sink
	var amqpSink *sink.AMQP
	if cfg.AMQPURL != "" {
		amqpSink, err = sink.NewAMQP(cfg.AMQPURL)
		if err != nil {
			_ = listener.Close()
			return nil, err
		}
		inner = amqpSink
	} else {
		inner = sink.NewLog(logger)
	}
	queue := sink.NewQueue(inner, cfg.QueueCapacity, logger)
	router := domain.NewRouter(queue, nil, nil, logger)

	grpcServer := grpc.NewServer(grpc.StatsHandler(otelgrpc.NewServerHandler()))
	crmv1.RegisterNotificationServer(grpcServer, notifyservice.NewService(router, logger))

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(crmv1.NotificationServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	return &Server{
		listener:    listener,
		grpcServer:  grpcServer,
		health:      healthServer,
		queue:       queue,
		amqp:        amqpSink,
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

// Run creates and serves a notify server until context cancellation.
func Run(ctx context.Context, cfg Config, logger *zap.Logger) error {
	server, err := New(cfg, logger)
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

	s.logger.Info("notify server listening", zap.String("addr", s.listener.Addr().String()))
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
		return fmt.Errorf("serve notify: %w", err)
	}
}

// Close stops the gRPC server, drains the delivery queue, and releases
// the sink. The queue drain is bounded so a hung sink cannot stall
// shutdown.
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
	if s.queue != nil {
		drainCtx, cancel := context.WithTimeout(context.Background(), queueDrainTimeout)
		defer cancel()
		if err := s.queue.Close(drainCtx); err != nil {
			s.logger.Warn("delivery queue drain abandoned", zap.Error(err))
		}
	}
	if s.amqp != nil {
		s.amqp.Close()
	}
}
