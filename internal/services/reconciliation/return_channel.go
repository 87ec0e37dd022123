package reconciliation

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/kevin07696/payment-reconciler/internal/adapters/gmo"
	"github.com/kevin07696/payment-reconciler/internal/domain"
	"github.com/kevin07696/payment-reconciler/internal/domain/ports"
)

// settlementCanceled is the reason recorded when the shopper never
// finished paying at the gateway.
const settlementCanceled = "settlement canceled"

// ReturnRequest is one shopper browser returning from the gateway
type ReturnRequest struct {
	OrderID string
	// Method is the settlement method whose return route was hit
	Method domain.SettlementMethod
	// Token is the raw "<payload>.<hash>" result token
	Token string
}

// ApplyReturnChannel reconciles a browser return. The returned error is
// non-nil only when the order ledger could not be read or written; every
// payload problem is folded into the outcome.
func (e *Engine) ApplyReturnChannel(ctx context.Context, req ReturnRequest) (domain.Outcome, error) {
	outcome, err := e.applyReturn(ctx, req)
	e.observe(domain.ChannelReturn, req.Method, outcome)

	if outcome.Kind == domain.OutcomeIgnored {
		e.logger.Warn("Return channel result ignored",
			zap.String("order_id", req.OrderID),
			zap.String("method", string(req.Method)),
			zap.String("reason", outcome.Reason),
		)
	}
	return outcome, err
}

func (e *Engine) applyReturn(ctx context.Context, req ReturnRequest) (domain.Outcome, error) {
	profile, ok := req.Method.Profile()
	if !ok {
		return domain.Ignored(domain.ErrUnsupportedSettlementMethod), nil
	}

	// No result token means the gateway has not reported anything yet.
	if strings.TrimSpace(req.Token) == "" {
		return domain.Ignored(domain.ErrMissingResultToken), nil
	}

	order, err := e.orders.FindOrder(ctx, req.OrderID)
	if err != nil {
		if domain.IsNotFoundError(err) {
			return domain.Ignored(domain.ErrOrderNotFound), nil
		}
		return domain.Ignored(err), err
	}

	// Each method's return route only reacts to its own orders.
	if order.SettlementMethod != req.Method {
		return domain.Ignored(domain.ErrSettlementMethodMismatch), nil
	}

	result, decodeErr := gmo.DecodeReturnToken(req.Token)
	outcome := e.resolveReturn(profile, result, decodeErr)

	entry := ports.NotificationEntry{
		Channel: domain.ChannelReturn,
		Method:  req.Method,
		OrderID: order.ID,
		Outcome: outcome.Kind,
		Reason:  outcome.Reason,
	}
	if result != nil {
		entry.Status = result.Status
		entry.Payload = result.Fields
	} else {
		entry.Payload = map[string]string{"result": req.Token}
	}
	e.record(ctx, entry)

	return outcome, e.apply(ctx, order, outcome)
}

// resolveReturn decides the outcome of a decoded (or undecodable) token
func (e *Engine) resolveReturn(profile domain.MethodProfile, result *domain.GatewayResult, decodeErr error) domain.Outcome {
	title := e.cfg.Title(profile.Method)

	if decodeErr != nil || result.Status == domain.GatewayStatusPayStart {
		outcome := domain.Outcome{
			Kind:               domain.OutcomeFailed,
			TargetStatus:       domain.OrderStatusFailed,
			Reason:             settlementCanceled,
			Note:               title + ": " + settlementCanceled,
			RedirectToCheckout: true,
		}
		if decodeErr != nil {
			outcome.Code = domain.ErrorCodeMalformedPayload
		}
		return outcome
	}

	if result.HasError() {
		reason := errorReason(result)
		return domain.Outcome{
			Kind:               domain.OutcomeFailed,
			TargetStatus:       domain.OrderStatusFailed,
			Reason:             reason,
			Note:               buildNote(title+" payment error: "+reason, result, profile),
			RedirectToCheckout: profile.ReturnError == domain.ReturnErrorRetry,
		}
	}

	if profile.Pending {
		return e.outcomeFor(domain.OutcomeOnHold, profile, result)
	}
	return e.outcomeFor(domain.OutcomeCompleted, profile, result)
}
