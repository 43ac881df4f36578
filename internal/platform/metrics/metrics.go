// Package metrics registers the Prometheus collectors shared by the CRM
// services and serves the scrape endpoint.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// UserQueries counts behavior-store queries by entry point and outcome.
	UserQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_user_queries_total",
			Help: "Behavior-store queries executed, by path and status",
		},
		[]string{"path", "status"}, // path: query, raw_query; status: ok, error
	)

	// UsersStreamed counts behavior-table rows streamed back to callers.
	UsersStreamed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "crm_users_streamed_total",
			Help: "User rows streamed to query callers",
		},
	)

	// ContentMaterialized counts synthesized content records.
	ContentMaterialized = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "crm_content_materialized_total",
			Help: "Content records synthesized by the metadata service",
		},
	)

	// Notifications counts routed notifications by variant and outcome.
	Notifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_notifications_total",
			Help: "Notifications routed, by variant and status",
		},
		[]string{"variant", "status"}, // status: accepted, rejected, failed
	)

	// CampaignDuration observes end-to-end campaign run latency.
	CampaignDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "crm_campaign_duration_seconds",
			Help:    "Campaign workflow duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		},
		[]string{"campaign"},
	)
)

// ObserveCampaign records one campaign run duration.
func ObserveCampaign(campaign string, d time.Duration) {
	CampaignDuration.WithLabelValues(campaign).Observe(d.Seconds())
}

// Serve exposes /metrics on addr until ctx is cancelled. An empty addr
// disables the endpoint and returns immediately.
func Serve(ctx context.Context, addr string) error {
	if addr == "" {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{Addr: addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
