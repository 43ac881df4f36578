package sink

import (
	"context"

	"go.uber.org/zap"

	"github.com/crmspace/crm/internal/services/notify/domain"
)

// Log is the minimal delivery consumer: it records each envelope and
// drops it. Useful as the default sink and in development.
type Log struct {
	logger *zap.Logger
}

// NewLog creates a logging sink.
func NewLog(logger *zap.Logger) *Log {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Log{logger: logger}
}

// Deliver implements domain.Sink.
func (s *Log) Deliver(_ context.Context, env domain.Envelope) error {
	fields := []zap.Field{
		zap.String("message_id", env.MessageID),
		zap.String("variant", env.Message.Variant()),
	}
	switch msg := env.Message.(type) {
	case domain.Email:
		fields = append(fields, zap.Strings("to", msg.To), zap.String("subject", msg.Subject))
	case domain.SMS:
		fields = append(fields, zap.Strings("recipients", msg.Recipients))
	case domain.InApp:
		fields = append(fields, zap.String("device_id", msg.DeviceID), zap.String("title", msg.Title))
	}
	s.logger.Info("delivered notification", fields...)
	return nil
}
