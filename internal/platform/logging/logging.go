// Package logging constructs the shared zap logger used by the CRM
// services.
package logging

import (
	"go.uber.org/zap"
)

// New builds a production zap logger tagged with the service name. It
// falls back to a no-op logger on construction failure so callers never
// receive a nil logger.
func New(service string) *zap.Logger {
	logger, err := zap.NewProduction()
	if err != nil {
		return zap.NewNop()
	}
	return logger.With(zap.String("service", service))
}
