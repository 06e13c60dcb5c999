package notifications

import (
	"context"

	"campus-portal.backend/internal/domain/entities"
	"campus-portal.backend/pkg/logger"
	"go.uber.org/zap"
)

// LogSender writes codes to the application log instead of delivering
// them. Default in development and for the phone channel, where no SMS
// gateway is configured.
type LogSender struct{}

// NewLogSender creates a new log code sender
func NewLogSender() *LogSender {
	return &LogSender{}
}

// Send logs the code and destination
func (s *LogSender) Send(ctx context.Context, destination string, method entities.RecoveryMethod, code string) error {
	logger.Info(ctx, "verification code dispatched",
		zap.String("method", string(method)),
		zap.String("destination", destination),
		zap.String("code", code),
	)
	return nil
}
