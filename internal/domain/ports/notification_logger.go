package ports

import (
	"context"
	"time"

	"github.com/kevin07696/payment-reconciler/internal/domain"
)

// NotificationEntry is one raw or decoded gateway payload kept for forensics
type NotificationEntry struct {
	Channel    domain.Channel
	Method     domain.SettlementMethod
	OrderID    string
	Status     string
	Outcome    domain.OutcomeKind
	Reason     string
	Payload    map[string]string
	ReceivedAt time.Time
}

// NotificationLogger records gateway payloads. Callers gate it with the
// installation's logging flag.
type NotificationLogger interface {
	Log(ctx context.Context, entry NotificationEntry) error
}
