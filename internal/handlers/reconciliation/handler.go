package reconciliation

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/kevin07696/payment-reconciler/internal/config"
	"github.com/kevin07696/payment-reconciler/internal/domain"
	"github.com/kevin07696/payment-reconciler/internal/services/reconciliation"
	"github.com/kevin07696/payment-reconciler/pkg/observability"
)

// Form fields read by the return route
const (
	returnOrderIDField = "order_id"
	returnResultField  = "result"
)

// Reconciler is the engine surface the HTTP handlers call
type Reconciler interface {
	ApplyReturnChannel(ctx context.Context, req reconciliation.ReturnRequest) (domain.Outcome, error)
	ApplyWebhookChannel(ctx context.Context, form map[string][]string) (domain.Outcome, error)
}

// Handler exposes the gateway's return redirect and webhook endpoints
type Handler struct {
	engine Reconciler
	cfg    config.GatewayConfig
	logger *zap.Logger
}

// NewHandler creates a new reconciliation HTTP handler
func NewHandler(engine Reconciler, cfg config.GatewayConfig, logger *zap.Logger) *Handler {
	return &Handler{
		engine: engine,
		cfg:    cfg,
		logger: logger,
	}
}

// RouteGuards holds optional per-route middleware
type RouteGuards struct {
	Webhook mux.MiddlewareFunc
	Return  mux.MiddlewareFunc
}

// Register mounts the routes on router
func (h *Handler) Register(router *mux.Router, guards RouteGuards) {
	router.Handle("/payments/notify", guard(guards.Webhook, h.HandleWebhook)).Methods(http.MethodPost)
	router.Handle("/payments/{method}/return", guard(guards.Return, h.HandleReturn)).Methods(http.MethodGet, http.MethodPost)
}

func guard(mw mux.MiddlewareFunc, fn http.HandlerFunc) http.Handler {
	if mw == nil {
		return fn
	}
	return mw(fn)
}

// HandleReturn processes a shopper's browser coming back from the gateway.
// Endpoint: GET|POST /payments/{method}/return?order_id=1001&result=<token>
func (h *Handler) HandleReturn(w http.ResponseWriter, r *http.Request) {
	method, ok := domain.ParseSettlementMethod(mux.Vars(r)["method"])
	if !ok || !h.cfg.MethodEnabled(method) {
		h.logger.Warn("Return received for unknown or disabled settlement method",
			zap.String("method", mux.Vars(r)["method"]),
		)
		http.NotFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.logger.Warn("Failed to parse return form", zap.Error(err))
	}

	orderID := strings.TrimSpace(r.Form.Get(returnOrderIDField))
	if orderID == "" {
		h.logger.Warn("Return request missing order_id", zap.String("method", string(method)))
		h.redirect(w, r, h.cfg.CheckoutURL, "")
		return
	}

	outcome, err := h.engine.ApplyReturnChannel(r.Context(), reconciliation.ReturnRequest{
		OrderID: orderID,
		Method:  method,
		Token:   r.Form.Get(returnResultField),
	})
	if err != nil {
		h.logger.Error("Return channel could not reach the order ledger",
			zap.String("order_id", orderID),
			zap.String("method", string(method)),
			zap.Error(err),
		)
	}

	h.logger.Info("Return channel reconciled",
		zap.String("order_id", orderID),
		zap.String("method", string(method)),
		zap.String("outcome", string(outcome.Kind)),
		zap.Bool("redirect_to_checkout", outcome.RedirectToCheckout),
	)

	// Ignored outcomes left the order untouched and land on the thank-you page.
	switch {
	case outcome.RedirectToCheckout, err != nil:
		observability.RecordCheckoutRedirect(string(method))
		h.redirect(w, r, h.cfg.CheckoutURL, orderID)
	default:
		h.redirect(w, r, h.cfg.ThankYouURL, orderID)
	}
}

// HandleWebhook processes a server-to-server gateway notification.
// The gateway only needs a 2xx with body "0"; nothing else is ever returned.
// Endpoint: POST /payments/notify
func (h *Handler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.logger.Warn("Failed to parse webhook form", zap.Error(err))
	}

	outcome, err := h.engine.ApplyWebhookChannel(r.Context(), r.Form)
	if err != nil {
		h.logger.Error("Webhook could not reach the order ledger",
			zap.String("order_id", r.Form.Get("OrderID")),
			zap.String("status", r.Form.Get("Status")),
			zap.Error(err),
		)
	} else {
		h.logger.Info("Webhook reconciled",
			zap.String("order_id", r.Form.Get("OrderID")),
			zap.String("status", r.Form.Get("Status")),
			zap.String("outcome", string(outcome.Kind)),
		)
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(reconciliation.WebhookAck))
}

// redirect sends the shopper to target, carrying the order id when known
func (h *Handler) redirect(w http.ResponseWriter, r *http.Request, target, orderID string) {
	u, err := url.Parse(target)
	if err != nil {
		h.logger.Error("Invalid redirect target", zap.String("target", target), zap.Error(err))
		u = &url.URL{Path: "/"}
	}
	if orderID != "" {
		q := u.Query()
		q.Set(returnOrderIDField, orderID)
		u.RawQuery = q.Encode()
	}
	http.Redirect(w, r, u.String(), http.StatusFound)
}
