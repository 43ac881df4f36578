// Package workflow implements the campaign orchestrations behind the
// crm.v1.Crm API. A workflow owns no state of its own; each run borrows
// the shared downstream clients and is self-contained.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/crmspace/crm/api/crmv1"
	"github.com/crmspace/crm/internal/platform/metrics"
	"github.com/crmspace/crm/internal/relay"
)

// DefaultSender is the from-address stamped on campaign emails when the
// configuration does not override it.
const DefaultSender = "welcome@crm.example.com"

// registrationColumn is the behavior-table column the welcome window
// applies to.
const registrationColumn = "created_at"

// Config tunes a campaign workflow.
type Config struct {
	// Sender is the from-address for campaign emails. Empty selects
	// DefaultSender.
	Sender string
	// Capacity bounds the candidate-user channel between the query
	// consumer and the fan-out loop. Zero selects relay.DefaultCapacity.
	Capacity int
}

// Workflow runs campaigns against the three downstream services.
type Workflow struct {
	userStats    crmv1.UserStatsClient
	metadata     crmv1.MetadataClient
	notification crmv1.NotificationClient

	sender   string
	capacity int
	clock    func() time.Time
	logger   *zap.Logger
}

// New creates a campaign workflow over established downstream clients.
func New(userStats crmv1.UserStatsClient, metadata crmv1.MetadataClient, notification crmv1.NotificationClient, cfg Config, logger *zap.Logger) *Workflow {
	if cfg.Sender == "" {
		cfg.Sender = DefaultSender
	}
	if cfg.Capacity <= 0 {
		cfg.Capacity = relay.DefaultCapacity
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Workflow{
		userStats:    userStats,
		metadata:     metadata,
		notification: notification,
		sender:       cfg.Sender,
		capacity:     cfg.Capacity,
		clock:        time.Now,
		logger:       logger,
	}
}

// Welcome runs the welcome campaign: query users registered inside the
// interval, materialize the campaign's content snapshot, and fan an
// email per user into the notification stream. Per-user failures are
// logged and skipped; the response reports how many notifications were
// acknowledged.
func (w *Workflow) Welcome(ctx context.Context, req *crmv1.WelcomeRequest) (*crmv1.WelcomeResponse, error) {
	started := w.clock()
	defer func() {
		metrics.ObserveCampaign("welcome", w.clock().Sub(started))
	}()

	// Phase 1: registration window [now - interval, now].
	now := w.clock().UTC()
	after := now.AddDate(0, 0, -int(req.IntervalDays))
	query := &crmv1.QueryRequest{
		TimeWindows: map[string]crmv1.TimeWindow{
			registrationColumn: {After: &after, Before: &now},
		},
	}

	// Phase 2: candidate stream, consumed off the handler goroutine so a
	// slow fan-out backpressures the query instead of buffering it.
	userStream, err := w.userStats.Query(ctx, query)
	if err != nil {
		return nil, status.Errorf(codes.Unavailable, "query campaign candidates: %v", err)
	}
	users := make(chan crmv1.User, w.capacity)
	go func() {
		defer close(users)
		for {
			user, err := userStream.Recv()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				w.logger.Warn("candidate stream ended early",
					zap.String("campaign_id", req.ID), zap.Error(err))
				return
			}
			select {
			case users <- *user:
			case <-ctx.Done():
				return
			}
		}
	}()

	// Phase 3: content snapshot. Fully drained before fan-out begins so
	// every recipient sees the identical snapshot.
	snapshot, err := w.materializeSnapshot(ctx, req.ContentIDs)
	if err != nil {
		return nil, err
	}
	body := renderSnapshot(snapshot)

	// Phase 4: fan-out and acknowledgement drain.
	acknowledged, err := w.fanOut(ctx, req.ID, body, users)
	if err != nil {
		return nil, err
	}

	w.logger.Info("welcome campaign finished",
		zap.String("campaign_id", req.ID),
		zap.Int64("acknowledged", acknowledged),
		zap.Int("contents", len(snapshot)))
	return &crmv1.WelcomeResponse{ID: req.ID, Acknowledged: acknowledged}, nil
}

// materializeSnapshot drains the metadata stream for the deduplicated
// content ids into an in-memory snapshot.
func (w *Workflow) materializeSnapshot(ctx context.Context, contentIDs []int64) ([]crmv1.Content, error) {
	ids := dedupeIDs(contentIDs)
	if len(ids) == 0 {
		return nil, nil
	}

	stream, err := w.metadata.Materialize(ctx)
	if err != nil {
		return nil, status.Errorf(codes.Unavailable, "open content stream: %v", err)
	}
	for _, id := range ids {
		if err := stream.Send(&crmv1.MaterializeRequest{ID: id}); err != nil {
			return nil, status.Errorf(codes.Unavailable, "request content %d: %v", id, err)
		}
	}
	if err := stream.CloseSend(); err != nil {
		return nil, status.Errorf(codes.Unavailable, "close content request stream: %v", err)
	}

	snapshot := make([]crmv1.Content, 0, len(ids))
	for {
		content, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return snapshot, nil
		}
		if err != nil {
			return nil, status.Errorf(codes.Unavailable, "materialize content snapshot: %v", err)
		}
		if content.Error != nil {
			w.logger.Warn("content id rejected by materializer",
				zap.Int64("content_id", content.ID),
				zap.Uint32("code", content.Error.Code),
				zap.String("reason", content.Error.Message))
			continue
		}
		snapshot = append(snapshot, *content)
	}
}

// fanOut sends one welcome email per candidate user and drains the
// acknowledgement stream to completion.
func (w *Workflow) fanOut(ctx context.Context, campaignID, body string, users <-chan crmv1.User) (int64, error) {
	stream, err := w.notification.Send(ctx)
	if err != nil {
		return 0, status.Errorf(codes.Unavailable, "open notification stream: %v", err)
	}

	sendErr := make(chan error, 1)
	go func() {
		defer close(sendErr)
		for user := range users {
			if strings.TrimSpace(user.Email) == "" {
				w.logger.Warn("skipping candidate without address",
					zap.String("campaign_id", campaignID), zap.String("name", user.Name))
				continue
			}
			req := &crmv1.SendRequest{
				MessageID: campaignID,
				Email: &crmv1.EmailMessage{
					Subject: fmt.Sprintf("Welcome to our platform, %s", user.Name),
					From:    w.sender,
					To:      []string{user.Email},
					Body:    body,
				},
			}
			if err := stream.Send(req); err != nil {
				sendErr <- err
				return
			}
		}
		sendErr <- stream.CloseSend()
	}()

	var acknowledged int64
	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return acknowledged, status.Errorf(codes.Unavailable, "drain acknowledgements: %v", err)
		}
		if resp.Error != nil {
			w.logger.Warn("notification rejected",
				zap.String("campaign_id", campaignID),
				zap.Uint32("code", resp.Error.Code),
				zap.String("reason", resp.Error.Message))
			continue
		}
		acknowledged++
	}
	if err := <-sendErr; err != nil {
		return acknowledged, status.Errorf(codes.Unavailable, "send campaign notifications: %v", err)
	}
	return acknowledged, nil
}

// renderSnapshot formats the content snapshot into the shared email
// body. The result is identical for every recipient of one run.
func renderSnapshot(snapshot []crmv1.Content) string {
	var b strings.Builder
	b.WriteString("Check out what's new on the platform:\n")
	for _, content := range snapshot {
		fmt.Fprintf(&b, "- %s (%s): %s\n  %s\n",
			content.Name, content.ContentType, content.Description, content.URL)
	}
	return b.String()
}

// dedupeIDs drops duplicate content ids, returning the survivors in
// ascending order.
func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
