package reconciliation

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/kevin07696/payment-reconciler/internal/adapters/gmo"
	"github.com/kevin07696/payment-reconciler/internal/domain"
	"github.com/kevin07696/payment-reconciler/internal/domain/ports"
	"github.com/kevin07696/payment-reconciler/pkg/observability"
)

// WebhookAck is the only response body the gateway ever receives
const WebhookAck = "0"

// ApplyWebhookChannel reconciles one server-to-server notification.
// Every gate failure yields an Ignored outcome and the raw payload is
// recorded either way. The returned error is non-nil only when the order
// ledger failed; callers still acknowledge with WebhookAck.
func (e *Engine) ApplyWebhookChannel(ctx context.Context, form map[string][]string) (domain.Outcome, error) {
	result, parseErr := gmo.ParseWebhookFields(form)

	order, outcome, err := e.applyWebhook(ctx, result, parseErr)

	method := domain.SettlementMethod("")
	if order != nil {
		method = order.SettlementMethod
	}

	entry := ports.NotificationEntry{
		Channel: domain.ChannelWebhook,
		Method:  method,
		Outcome: outcome.Kind,
		Reason:  outcome.Reason,
		Payload: flatten(form),
	}
	if result != nil {
		entry.OrderID = result.OrderID
		entry.Status = result.Status
	}
	e.record(ctx, entry)

	status := ""
	if result != nil {
		status = result.Status
	}
	observability.RecordWebhookNotification(status, domain.IsKnownGatewayStatus(status))
	e.observe(domain.ChannelWebhook, method, outcome)

	if outcome.Kind == domain.OutcomeIgnored {
		e.logger.Warn("Webhook notification ignored",
			zap.String("order_id", entry.OrderID),
			zap.String("status", status),
			zap.String("code", string(outcome.Code)),
		)
	}

	return outcome, err
}

// applyWebhook runs the gates in order. The order is returned once resolved.
func (e *Engine) applyWebhook(ctx context.Context, result *domain.GatewayResult, parseErr error) (*domain.Order, domain.Outcome, error) {
	if parseErr != nil {
		return nil, domain.Ignored(parseErr), nil
	}

	// Gate 1: merchant id and status present and matching
	if result.ShopID == "" || e.cfg.ShopID == "" || result.ShopID != e.cfg.ShopID || result.Status == "" {
		return nil, domain.Ignored(domain.ErrUnauthenticatedNotification), nil
	}

	// Gate 2: status within the known vocabulary
	if !domain.IsKnownGatewayStatus(result.Status) {
		return nil, domain.Ignored(domain.ErrUnknownStatus), nil
	}

	// Gate 3: order resolves once the merchant prefix is removed
	orderID := strings.TrimPrefix(result.OrderID, e.cfg.OrderIDPrefix)
	if orderID == "" {
		return nil, domain.Ignored(domain.ErrOrderNotFound), nil
	}
	order, err := e.orders.FindOrder(ctx, orderID)
	if err != nil {
		if domain.IsNotFoundError(err) {
			return nil, domain.Ignored(domain.ErrOrderNotFound), nil
		}
		return nil, domain.Ignored(err), err
	}

	// Gate 4: dispatch on the order's recorded settlement method
	outcome := e.resolveWebhook(order, result)

	// Gate 5: apply
	return order, outcome, e.apply(ctx, order, outcome)
}

// resolveWebhook maps a notification for an already resolved order
func (e *Engine) resolveWebhook(order *domain.Order, result *domain.GatewayResult) domain.Outcome {
	profile, ok := order.SettlementMethod.Profile()
	if !ok {
		return domain.Ignored(domain.ErrUnsupportedSettlementMethod)
	}

	// The webhook is unauthenticated beyond the shop id, so the amount is
	// the only cross-check with the order for gated methods.
	if profile.AmountGated && !order.AmountMatches(result.Amount) {
		reported := "none"
		if result.Amount != nil {
			reported = result.Amount.String()
		}
		return domain.Outcome{
			Kind:         domain.OutcomeFailed,
			TargetStatus: domain.OrderStatusFailed,
			Reason:       domain.ErrAmountMismatch.Message,
			Code:         domain.ErrorCodeAmountMismatch,
			Note: buildNote(
				domain.ErrAmountMismatch.Message+" (notified "+reported+", order total "+order.Total.String()+")",
				result, profile,
			),
		}
	}

	kind := MapStatus(order.SettlementMethod, result.Status)
	if kind == domain.OutcomeIgnored {
		return domain.Ignored(domain.ErrGatewayDeclinedTransition)
	}
	return e.outcomeFor(kind, profile, result)
}

func flatten(form map[string][]string) map[string]string {
	out := make(map[string]string, len(form))
	for key, values := range form {
		out[key] = strings.Join(values, ",")
	}
	return out
}
