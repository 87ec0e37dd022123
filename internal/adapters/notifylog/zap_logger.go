package notifylog

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/kevin07696/payment-reconciler/internal/domain/ports"
)

// ZapLogger writes gateway notifications to a zap logger
type ZapLogger struct {
	logger *zap.Logger
}

// NewZapLogger creates a ZapLogger under the "gateway_notification" name
func NewZapLogger(logger *zap.Logger) *ZapLogger {
	return &ZapLogger{logger: logger.Named("gateway_notification")}
}

// Log writes one entry at info level
func (z *ZapLogger) Log(ctx context.Context, entry ports.NotificationEntry) error {
	z.logger.Info("Gateway notification",
		zap.String("channel", string(entry.Channel)),
		zap.String("method", string(entry.Method)),
		zap.String("order_id", entry.OrderID),
		zap.String("status", entry.Status),
		zap.String("outcome", string(entry.Outcome)),
		zap.String("reason", entry.Reason),
		zap.Any("payload", entry.Payload),
		zap.Time("received_at", entry.ReceivedAt),
	)
	return nil
}

// FanOut sends each entry to every sink, joining their errors
type FanOut []ports.NotificationLogger

// Log implements ports.NotificationLogger
func (f FanOut) Log(ctx context.Context, entry ports.NotificationEntry) error {
	var errs []error
	for _, sink := range f {
		if err := sink.Log(ctx, entry); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
