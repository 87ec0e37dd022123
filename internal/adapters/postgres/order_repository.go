package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/kevin07696/payment-reconciler/internal/domain"
	"github.com/kevin07696/payment-reconciler/internal/domain/ports"
)

const (
	getOrderByID = `
SELECT id, settlement_method, total, currency, status
FROM orders
WHERE id = $1`

	// Row lock on the update serializes concurrent reconcilers for one order.
	// A settled order is never moved back to on-hold.
	setOrderStatus = `
UPDATE orders
SET status = $2, updated_at = now()
WHERE id = $1
  AND NOT (status IN ('processing', 'completed') AND $2::text = 'on-hold')`

	orderExists = `
SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`

	insertOrderNote = `
INSERT INTO order_notes (id, order_id, status, note, created_at)
VALUES ($1, $2, $3, $4, now())`
)

// OrderRepository implements ports.OrderGateway on the orders table
type OrderRepository struct {
	db ports.DBPort
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db ports.DBPort) *OrderRepository {
	return &OrderRepository{db: db}
}

// FindOrder retrieves an order by its merchant id
func (r *OrderRepository) FindOrder(ctx context.Context, id string) (*domain.Order, error) {
	var (
		order  domain.Order
		method string
		status string
		total  pgtype.Numeric
	)

	err := r.db.GetDB().QueryRow(ctx, getOrderByID, id).Scan(
		&order.ID,
		&method,
		&total,
		&order.Currency,
		&status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order by id: %w", err)
	}

	order.Total, err = pgNumericToDecimal(total)
	if err != nil {
		return nil, fmt.Errorf("convert order total: %w", err)
	}
	order.SettlementMethod = domain.SettlementMethod(method)
	order.Status = domain.OrderStatus(status)

	return &order, nil
}

// SetStatus sets the order status and appends the audit note in one transaction.
// It returns domain.ErrTransitionSuperseded when the order is already settled
// and status is on-hold.
func (r *OrderRepository) SetStatus(ctx context.Context, id string, status domain.OrderStatus, note string) error {
	if !status.IsValid() {
		return fmt.Errorf("invalid order status %q", status)
	}

	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, setOrderStatus, id, string(status))
		if err != nil {
			return fmt.Errorf("update order status: %w", err)
		}
		if tag.RowsAffected() == 0 {
			var exists bool
			if err := tx.QueryRow(ctx, orderExists, id).Scan(&exists); err != nil {
				return fmt.Errorf("check order exists: %w", err)
			}
			if exists {
				return domain.ErrTransitionSuperseded
			}
			return domain.ErrOrderNotFound
		}

		if _, err := tx.Exec(ctx, insertOrderNote, uuid.New(), id, string(status), nullText(note)); err != nil {
			return fmt.Errorf("insert order note: %w", err)
		}
		return nil
	})
}
