// Package userstats implements the crm.v1.UserStats gRPC API.
package userstats

import (
	"context"
	"errors"
	"io"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/crmspace/crm/api/crmv1"
	"github.com/crmspace/crm/internal/platform/metrics"
	"github.com/crmspace/crm/internal/services/userstats/domain"
)

// Service implements the crm.v1.UserStats gRPC API over a behavior-table
// source.
type Service struct {
	crmv1.UnimplementedUserStatsServer
	users  domain.Source
	logger *zap.Logger
}

// NewService creates a configured UserStats handler.
func NewService(users domain.Source, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{users: users, logger: logger}
}

// Query compiles a structured predicate set and streams matching rows.
func (s *Service) Query(in *crmv1.QueryRequest, stream grpc.ServerStreamingServer[crmv1.User]) error {
	if in == nil {
		return status.Error(codes.InvalidArgument, "query request is required")
	}
	filter, err := domain.Compile(predicateSetFromWire(in))
	if err != nil {
		if errors.Is(err, domain.ErrEmptyWindow) || errors.Is(err, domain.ErrUnknownColumn) {
			return status.Error(codes.InvalidArgument, err.Error())
		}
		return status.Errorf(codes.Internal, "compile predicates: %v", err)
	}

	ctx := stream.Context()
	it, err := s.users.QueryUsers(ctx, filter)
	if err != nil {
		metrics.UserQueries.WithLabelValues("query", "error").Inc()
		s.logger.Error("behavior query failed", zap.String("filter", filter.Clause), zap.Error(err))
		return status.Errorf(codes.Internal, "failed to fetch data, filter: %s", filter.Clause)
	}
	if err := s.streamUsers(ctx, it, stream); err != nil {
		metrics.UserQueries.WithLabelValues("query", "error").Inc()
		return err
	}
	metrics.UserQueries.WithLabelValues("query", "ok").Inc()
	return nil
}

// RawQuery streams rows matching a caller-supplied filter expression.
// The expression is echoed into the query unvalidated; the method exists
// for diagnostics and must not be exposed to untrusted callers.
func (s *Service) RawQuery(in *crmv1.RawQueryRequest, stream grpc.ServerStreamingServer[crmv1.User]) error {
	if in == nil || strings.TrimSpace(in.Query) == "" {
		return status.Error(codes.InvalidArgument, "filter expression is required")
	}
	s.logger.Warn("raw query requested", zap.String("expression", in.Query))

	ctx := stream.Context()
	it, err := s.users.RawQueryUsers(ctx, in.Query)
	if err != nil {
		metrics.UserQueries.WithLabelValues("raw_query", "error").Inc()
		return status.Errorf(codes.Internal, "failed to fetch data, query: %s", in.Query)
	}
	if err := s.streamUsers(ctx, it, stream); err != nil {
		metrics.UserQueries.WithLabelValues("raw_query", "error").Inc()
		return err
	}
	metrics.UserQueries.WithLabelValues("raw_query", "ok").Inc()
	return nil
}

func (s *Service) streamUsers(ctx context.Context, it domain.UserIterator, stream grpc.ServerStreamingServer[crmv1.User]) error {
	defer it.Close()
	for {
		user, err := it.Next(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			s.logger.Error("behavior row stream failed", zap.Error(err))
			return status.Errorf(codes.Internal, "stream rows: %v", err)
		}
		if err := stream.Send(&crmv1.User{Email: user.Email, Name: user.Name}); err != nil {
			return err
		}
		metrics.UsersStreamed.Inc()
	}
}

func predicateSetFromWire(in *crmv1.QueryRequest) domain.PredicateSet {
	set := domain.PredicateSet{}
	if len(in.TimeWindows) > 0 {
		set.TimeWindows = make(map[string]domain.TimeWindow, len(in.TimeWindows))
		for col, window := range in.TimeWindows {
			set.TimeWindows[col] = domain.TimeWindow{After: window.After, Before: window.Before}
		}
	}
	if len(in.IDSets) > 0 {
		set.IDSets = make(map[string][]int64, len(in.IDSets))
		for col, ids := range in.IDSets {
			set.IDSets[col] = ids.IDs
		}
	}
	return set
}
