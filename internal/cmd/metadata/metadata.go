// Package metadata parses metadata command flags and starts the service
// runtime.
package metadata

import (
	"context"
	"flag"

	entrypoint "github.com/crmspace/crm/internal/platform/cmd"
	"github.com/crmspace/crm/internal/platform/logging"
	server "github.com/crmspace/crm/internal/services/metadata/app"
)

// Config holds metadata command configuration.
type Config struct {
	Port        int    `env:"CRM_METADATA_PORT" envDefault:"50052"`
	MetricsAddr string `env:"CRM_METADATA_METRICS_ADDR"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The metadata server port")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "The Prometheus scrape address (empty disables)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the metadata materializer service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMetadata, func(ctx context.Context) error {
		logger := logging.New(entrypoint.ServiceMetadata)
		defer func() { _ = logger.Sync() }()
		return server.Run(ctx, server.Config{
			Port:        cfg.Port,
			MetricsAddr: cfg.MetricsAddr,
		}, logger)
	})
}
