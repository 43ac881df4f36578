// Package metadata implements the crm.v1.Metadata gRPC API.
package metadata

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/crmspace/crm/api/crmv1"
	"github.com/crmspace/crm/internal/platform/metrics"
	"github.com/crmspace/crm/internal/relay"
	"github.com/crmspace/crm/internal/services/metadata/domain"
)

// Service implements the crm.v1.Metadata gRPC API.
type Service struct {
	crmv1.UnimplementedMetadataServer
	clock  func() time.Time
	logger *zap.Logger
}

// NewService creates a configured Metadata handler.
func NewService(logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{clock: time.Now, logger: logger}
}

// Materialize answers each requested id with one synthesized content
// record, in request order. Requests with a non-positive id are answered
// with an error-bearing record for that item; only an inbound transport
// fault ends the stream.
func (s *Service) Materialize(stream grpc.BidiStreamingServer[crmv1.MaterializeRequest, crmv1.Content]) error {
	ctx := stream.Context()

	results := relay.Run(ctx, stream.Recv, s.materialize, relay.Options{})
	for result := range results {
		if relay.IsTransportError(result.Err) {
			s.logger.Warn("materialize inbound stream failed", zap.Error(result.Err))
			return status.Errorf(codes.Internal, "receive materialize request: %v", result.Err)
		}
		resp := result.Value
		if result.Err != nil {
			s.logger.Warn("materialize item rejected", zap.Error(result.Err))
			if resp == nil {
				resp = &crmv1.Content{}
			}
			resp.Error = crmv1.WireErrorFromError(result.Err)
		}
		if err := stream.Send(resp); err != nil {
			return err
		}
		if result.Err == nil {
			metrics.ContentMaterialized.Inc()
		}
	}
	return ctx.Err()
}

func (s *Service) materialize(_ context.Context, req *crmv1.MaterializeRequest) (*crmv1.Content, error) {
	if req == nil || req.ID <= 0 {
		var id int64
		if req != nil {
			id = req.ID
		}
		return &crmv1.Content{ID: id}, status.Error(codes.InvalidArgument, "content id must be positive")
	}
	content := domain.Materialize(req.ID, s.clock())
	return contentToWire(content), nil
}

func contentToWire(content domain.Content) *crmv1.Content {
	publishers := make([]crmv1.Publisher, len(content.Publishers))
	for i, p := range content.Publishers {
		publishers[i] = crmv1.Publisher{ID: p.ID, Name: p.Name, Avatar: p.Avatar}
	}
	return &crmv1.Content{
		ID:          content.ID,
		Name:        content.Name,
		Description: content.Description,
		Publishers:  publishers,
		URL:         content.URL,
		Image:       content.Image,
		ContentType: string(content.ContentType),
		CreatedAt:   content.CreatedAt,
		Views:       content.Views,
		Likes:       content.Likes,
		Dislikes:    content.Dislikes,
	}
}
