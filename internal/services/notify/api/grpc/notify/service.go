// Package notify implements the crm.v1.Notification gRPC API.
package notify

import (
	"context"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/crmspace/crm/api/crmv1"
	"github.com/crmspace/crm/internal/platform/metrics"
	"github.com/crmspace/crm/internal/relay"
	"github.com/crmspace/crm/internal/services/notify/domain"
)

// Service implements the crm.v1.Notification gRPC API.
type Service struct {
	crmv1.UnimplementedNotificationServer
	router *domain.Router
	logger *zap.Logger
}

// NewService creates a configured Notification handler over the router.
func NewService(router *domain.Router, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{router: router, logger: logger}
}

// Send acknowledges each notification request in order. A request that
// fails (missing payload, sink handoff refused) is answered with an
// error-bearing response for that one item; only an inbound transport
// fault ends the stream.
func (s *Service) Send(stream grpc.BidiStreamingServer[crmv1.SendRequest, crmv1.SendResponse]) error {
	ctx := stream.Context()

	results := relay.Run(ctx, stream.Recv, s.route, relay.Options{})
	for result := range results {
		if relay.IsTransportError(result.Err) {
			s.logger.Warn("send inbound stream failed", zap.Error(result.Err))
			return status.Errorf(codes.Internal, "receive send request: %v", result.Err)
		}
		resp := result.Value
		if result.Err != nil {
			if resp == nil {
				resp = &crmv1.SendResponse{}
			}
			resp.Error = crmv1.WireErrorFromError(result.Err)
		}
		if err := stream.Send(resp); err != nil {
			return err
		}
	}
	return ctx.Err()
}

func (s *Service) route(ctx context.Context, req *crmv1.SendRequest) (*crmv1.SendResponse, error) {
	msg, err := messageFromWire(req)
	if err != nil {
		metrics.Notifications.WithLabelValues("none", "rejected").Inc()
		return nil, err
	}

	ack, err := s.router.Route(ctx, req.MessageID, msg)
	resp := &crmv1.SendResponse{MessageID: ack.MessageID, Timestamp: ack.Timestamp}
	if err != nil {
		metrics.Notifications.WithLabelValues(msg.Variant(), "failed").Inc()
		return resp, status.Errorf(codes.Unavailable, "route %s notification: %v", msg.Variant(), err)
	}
	metrics.Notifications.WithLabelValues(msg.Variant(), "accepted").Inc()
	return resp, nil
}

func messageFromWire(req *crmv1.SendRequest) (domain.Message, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "notification message is required")
	}
	switch {
	case req.Email != nil:
		return domain.Email{
			Subject: req.Email.Subject,
			From:    req.Email.From,
			To:      req.Email.To,
			Body:    req.Email.Body,
		}, nil
	case req.SMS != nil:
		return domain.SMS{
			Sender:     req.SMS.Sender,
			Recipients: req.SMS.Recipients,
			Body:       req.SMS.Body,
		}, nil
	case req.InApp != nil:
		return domain.InApp{
			Title:    req.InApp.Title,
			Body:     req.InApp.Body,
			DeviceID: req.InApp.DeviceID,
		}, nil
	default:
		return nil, status.Error(codes.InvalidArgument, "notification message is required")
	}
}
