// Package userstats parses userstats command flags and starts the
// service runtime.
package userstats

import (
	"context"
	"flag"

	entrypoint "github.com/crmspace/crm/internal/platform/cmd"
	"github.com/crmspace/crm/internal/platform/logging"
	server "github.com/crmspace/crm/internal/services/userstats/app"
)

// Config holds userstats command configuration.
type Config struct {
	Port        int    `env:"CRM_USERSTATS_PORT" envDefault:"50051"`
	DatabaseURL string `env:"CRM_DATABASE_URL"`
	MetricsAddr string `env:"CRM_USERSTATS_METRICS_ADDR"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The userstats server port")
	fs.StringVar(&cfg.DatabaseURL, "database-url", cfg.DatabaseURL, "The behavior-store connection string")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "The Prometheus scrape address (empty disables)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the userstats query service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceUserStats, func(ctx context.Context) error {
		logger := logging.New(entrypoint.ServiceUserStats)
		defer func() { _ = logger.Sync() }()
		return server.Run(ctx, server.Config{
			Port:        cfg.Port,
			DatabaseURL: cfg.DatabaseURL,
			MetricsAddr: cfg.MetricsAddr,
		}, logger)
	})
}
