// Package notify parses notify command flags and starts the service
// runtime.
package notify

import (
	"context"
	"flag"

	entrypoint "github.com/crmspace/crm/internal/platform/cmd"
	"github.com/crmspace/crm/internal/platform/logging"
	server "github.com/crmspace/crm/internal/services/notify/app"
)

// Config holds notify command configuration.
type Config struct {
	Port          int    `env:"CRM_NOTIFY_PORT" envDefault:"50053"`
	AMQPURL       string `env:"CRM_NOTIFY_AMQP_URL"`
	QueueCapacity int    `env:"CRM_NOTIFY_QUEUE_CAPACITY"`
	MetricsAddr   string `env:"CRM_NOTIFY_METRICS_ADDR"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The notify server port")
	fs.StringVar(&cfg.AMQPURL, "amqp-url", cfg.AMQPURL, "The broker URL for the AMQP sink (empty selects the log sink)")
	fs.IntVar(&cfg.QueueCapacity, "queue-capacity", cfg.QueueCapacity, "The delivery queue capacity (0 selects the default)")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "The Prometheus scrape address (empty disables)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the notification router service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceNotify, func(ctx context.Context) error {
		logger := logging.New(entrypoint.ServiceNotify)
		defer func() { _ = logger.Sync() }()
		return server.Run(ctx, server.Config{
			Port:          cfg.Port,
			AMQPURL:       cfg.AMQPURL,
			QueueCapacity: cfg.QueueCapacity,
			MetricsAddr:   cfg.MetricsAddr,
		}, logger)
	})
}
