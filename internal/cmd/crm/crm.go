// Package crm parses crm command flags and starts the orchestrator
// runtime.
package crm

import (
	"context"
	"flag"

	entrypoint "github.com/crmspace/crm/internal/platform/cmd"
	"github.com/crmspace/crm/internal/platform/logging"
	server "github.com/crmspace/crm/internal/services/crm/app"
)

// Config holds crm command configuration.
type Config struct {
	Port          int    `env:"CRM_PORT" envDefault:"50050"`
	UserStatsAddr string `env:"CRM_USERSTATS_ADDR" envDefault:"localhost:50051"`
	MetadataAddr  string `env:"CRM_METADATA_ADDR" envDefault:"localhost:50052"`
	NotifyAddr    string `env:"CRM_NOTIFY_ADDR" envDefault:"localhost:50053"`
	Sender        string `env:"CRM_SENDER"`
	MetricsAddr   string `env:"CRM_METRICS_ADDR"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The crm server port")
	fs.StringVar(&cfg.UserStatsAddr, "userstats-addr", cfg.UserStatsAddr, "The userstats service address")
	fs.StringVar(&cfg.MetadataAddr, "metadata-addr", cfg.MetadataAddr, "The metadata service address")
	fs.StringVar(&cfg.NotifyAddr, "notify-addr", cfg.NotifyAddr, "The notify service address")
	fs.StringVar(&cfg.Sender, "sender", cfg.Sender, "The campaign email from-address")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "The Prometheus scrape address (empty disables)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the campaign orchestrator service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceCrm, func(ctx context.Context) error {
		logger := logging.New(entrypoint.ServiceCrm)
		defer func() { _ = logger.Sync() }()
		return server.Run(ctx, server.Config{
			Port:          cfg.Port,
			UserStatsAddr: cfg.UserStatsAddr,
			MetadataAddr:  cfg.MetadataAddr,
			NotifyAddr:    cfg.NotifyAddr,
			Sender:        cfg.Sender,
			MetricsAddr:   cfg.MetricsAddr,
		}, logger)
	})
}
