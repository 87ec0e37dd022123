package reconciliation

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kevin07696/payment-reconciler/internal/config"
	"github.com/kevin07696/payment-reconciler/internal/domain"
	"github.com/kevin07696/payment-reconciler/internal/domain/ports"
	"github.com/kevin07696/payment-reconciler/pkg/observability"
)

// Engine reconciles gateway results from the return and webhook channels
// against the order ledger. It keeps no state between calls; serializing
// writes to one order is left to the OrderGateway.
type Engine struct {
	orders    ports.OrderGateway
	notifyLog ports.NotificationLogger
	cfg       config.GatewayConfig
	logger    *zap.Logger
	now       func() time.Time
}

// NewEngine creates a reconciliation engine. notifyLog may be nil.
func NewEngine(
	orders ports.OrderGateway,
	notifyLog ports.NotificationLogger,
	cfg config.GatewayConfig,
	logger *zap.Logger,
) *Engine {
	return &Engine{
		orders:    orders,
		notifyLog: notifyLog,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

// apply writes an outcome to the order ledger. Ignored outcomes are a no-op.
func (e *Engine) apply(ctx context.Context, order *domain.Order, outcome domain.Outcome) error {
	if !outcome.Applies() {
		return nil
	}

	err := e.orders.SetStatus(ctx, order.ID, outcome.TargetStatus, outcome.Note)
	if domain.IsDomainError(err, domain.ErrorCodeTransitionSuperseded) {
		e.logger.Info("Order already settled, transition skipped",
			zap.String("order_id", order.ID),
			zap.String("method", string(order.SettlementMethod)),
			zap.String("target_status", string(outcome.TargetStatus)),
		)
		return nil
	}
	observability.RecordOrderTransition(string(order.SettlementMethod), string(outcome.TargetStatus), err)
	if err != nil {
		e.logger.Error("Failed to apply order transition",
			zap.String("order_id", order.ID),
			zap.String("method", string(order.SettlementMethod)),
			zap.String("target_status", string(outcome.TargetStatus)),
			zap.Error(err),
		)
		return domain.WrapError(domain.ErrorCodeDatabaseError, "apply order transition", err)
	}

	e.logger.Info("Order transition applied",
		zap.String("order_id", order.ID),
		zap.String("method", string(order.SettlementMethod)),
		zap.String("outcome", string(outcome.Kind)),
		zap.String("target_status", string(outcome.TargetStatus)),
	)
	return nil
}

// JobCodeAuth is the gateway job code for authorize-only settlement
const JobCodeAuth = "AUTH"

// outcomeFor turns a mapped outcome kind into a concrete outcome for order
func (e *Engine) outcomeFor(kind domain.OutcomeKind, profile domain.MethodProfile, result *domain.GatewayResult) domain.Outcome {
	title := e.cfg.Title(profile.Method)

	switch kind {
	case domain.OutcomeCompleted:
		return domain.Outcome{
			Kind:         domain.OutcomeCompleted,
			TargetStatus: e.cfg.SuccessTarget(),
			Note:         buildNote(title+completedHeadline(e.cfg.Methods[profile.Method].JobCode), result, profile),
		}
	case domain.OutcomeOnHold:
		return domain.Outcome{
			Kind:         domain.OutcomeOnHold,
			TargetStatus: domain.OrderStatusOnHold,
			Note:         buildNote(title+" payment requested", result, profile),
		}
	case domain.OutcomeFailed:
		return domain.Outcome{
			Kind:         domain.OutcomeFailed,
			TargetStatus: domain.OrderStatusFailed,
			Reason:       "payment failed",
			Note:         buildNote(title+" payment failed", result, profile),
		}
	case domain.OutcomeCanceled:
		return domain.Outcome{
			Kind:         domain.OutcomeCanceled,
			TargetStatus: domain.OrderStatusCancelled,
			Reason:       "payment canceled",
			Note:         buildNote(title+" payment canceled", result, profile),
		}
	}

	return domain.Ignored(domain.ErrGatewayDeclinedTransition)
}

// completedHeadline distinguishes authorize-only card setups from captures
func completedHeadline(jobCode string) string {
	if jobCode == JobCodeAuth {
		return " payment authorized"
	}
	return " payment completed"
}

// record writes the payload to the notification log when logging is on.
// Failures are logged and swallowed.
func (e *Engine) record(ctx context.Context, entry ports.NotificationEntry) {
	if !e.cfg.LogEnabled || e.notifyLog == nil {
		return
	}
	entry.ReceivedAt = e.now()
	if err := e.notifyLog.Log(ctx, entry); err != nil {
		e.logger.Warn("Failed to record gateway notification",
			zap.String("channel", string(entry.Channel)),
			zap.String("order_id", entry.OrderID),
			zap.Error(err),
		)
	}
}

func (e *Engine) observe(channel domain.Channel, method domain.SettlementMethod, outcome domain.Outcome) {
	observability.RecordReconciliation(string(channel), string(method), string(outcome.Kind), string(outcome.Code))
}
