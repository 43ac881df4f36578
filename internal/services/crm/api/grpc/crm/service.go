// Package crm implements the crm.v1.Crm gRPC API.
package crm

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/crmspace/crm/api/crmv1"
	"github.com/crmspace/crm/internal/services/crm/workflow"
)

// Service implements the crm.v1.Crm gRPC API.
type Service struct {
	crmv1.UnimplementedCrmServer
	workflow *workflow.Workflow
	logger   *zap.Logger
}

// NewService creates a configured Crm handler over the campaign
// workflow.
func NewService(wf *workflow.Workflow, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{workflow: wf, logger: logger}
}

// Welcome runs the welcome campaign and reports the acknowledgement
// count. A missing campaign id is generated server side.
func (s *Service) Welcome(ctx context.Context, req *crmv1.WelcomeRequest) (*crmv1.WelcomeResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "welcome request is required")
	}
	if req.IntervalDays <= 0 {
		return nil, status.Error(codes.InvalidArgument, "interval days must be positive")
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	s.logger.Info("welcome campaign starting",
		zap.String("campaign_id", req.ID),
		zap.Int32("interval_days", req.IntervalDays),
		zap.Int("content_ids", len(req.ContentIDs)))
	return s.workflow.Welcome(ctx, req)
}

// Recall is declared in the contract but not implemented.
func (s *Service) Recall(context.Context, *crmv1.RecallRequest) (*crmv1.RecallResponse, error) {
	return nil, status.Error(codes.Unimplemented, "recall campaign is not implemented")
}

// Remind is declared in the contract but not implemented.
func (s *Service) Remind(context.Context, *crmv1.RemindRequest) (*crmv1.RemindResponse, error) {
	return nil, status.Error(codes.Unimplemented, "remind campaign is not implemented")
}
