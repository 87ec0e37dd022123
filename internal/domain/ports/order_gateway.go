package ports

import (
	"context"

	"github.com/kevin07696/payment-reconciler/internal/domain"
)

// OrderGateway is the merchant order ledger as seen by reconciliation.
//
// SetStatus must behave as "set to status", so replaying the same
// transition leaves the order unchanged. Serializing concurrent writers
// for one order is the implementation's job.
type OrderGateway interface {
	// FindOrder returns domain.ErrOrderNotFound when id does not resolve
	FindOrder(ctx context.Context, id string) (*domain.Order, error)

	// SetStatus moves the order to status and records note in its audit trail
	SetStatus(ctx context.Context, id string, status domain.OrderStatus, note string) error
}
