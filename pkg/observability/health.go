package observability

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"

	// orderLedgerCheck names the order ledger entry in HealthStatus.Checks
	orderLedgerCheck  = "order_ledger"
	ledgerPingTimeout = 2 * time.Second
)

// Pinger is the order ledger connection, normally a *pgxpool.Pool
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthStatus is the body served on /health
type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

// HealthChecker reports whether the reconciler can reach its order ledger.
// A reconciler without a ledger connection (memory ledger) is healthy.
type HealthChecker struct {
	ledger Pinger
	now    func() time.Time
}

func NewHealthChecker(ledger Pinger) *HealthChecker {
	return &HealthChecker{ledger: ledger, now: time.Now}
}

// Check pings the order ledger
func (h *HealthChecker) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    statusHealthy,
		Timestamp: h.now(),
		Checks:    map[string]string{orderLedgerCheck: "not configured"},
	}
	if h.ledger == nil {
		return status
	}

	pingCtx, cancel := context.WithTimeout(ctx, ledgerPingTimeout)
	defer cancel()

	if err := h.ledger.Ping(pingCtx); err != nil {
		status.Status = statusUnhealthy
		status.Checks[orderLedgerCheck] = statusUnhealthy + ": " + err.Error()
		return status
	}
	status.Checks[orderLedgerCheck] = statusHealthy
	return status
}

// HealthHandler serves Check as JSON, with 503 when the ledger is down
func (h *HealthChecker) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := h.Check(r.Context())

		w.Header().Set("Content-Type", "application/json")
		if status.Status != statusHealthy {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(status)
	}
}
