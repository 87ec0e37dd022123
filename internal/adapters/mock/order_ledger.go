package mock

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/kevin07696/payment-reconciler/internal/domain"
)

// Note is one audit entry written by SetStatus
type Note struct {
	Status domain.OrderStatus
	Text   string
}

// MemoryOrderLedger is an in-process order ledger for local development
// and tests. Orders must be seeded with Put.
type MemoryOrderLedger struct {
	logger *zap.Logger
	mu     sync.Mutex
	orders map[string]domain.Order
	notes  map[string][]Note
}

// NewMemoryOrderLedger creates an empty ledger
func NewMemoryOrderLedger(logger *zap.Logger) *MemoryOrderLedger {
	return &MemoryOrderLedger{
		logger: logger,
		orders: make(map[string]domain.Order),
		notes:  make(map[string][]Note),
	}
}

// Put stores or replaces an order
func (l *MemoryOrderLedger) Put(order domain.Order) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.orders[order.ID] = order
}

// FindOrder returns a copy of the stored order
func (l *MemoryOrderLedger) FindOrder(ctx context.Context, id string) (*domain.Order, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	order, ok := l.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return &order, nil
}

// SetStatus sets the order status and appends the audit note. Like the
// postgres ledger it refuses to move a settled order back to on-hold.
func (l *MemoryOrderLedger) SetStatus(ctx context.Context, id string, status domain.OrderStatus, note string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	order, ok := l.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	if order.Status.Supersedes(status) {
		return domain.ErrTransitionSuperseded
	}
	order.Status = status
	l.orders[id] = order
	l.notes[id] = append(l.notes[id], Note{Status: status, Text: note})

	l.logger.Debug("Memory ledger status set",
		zap.String("order_id", id),
		zap.String("status", string(status)),
	)
	return nil
}

// Notes returns the audit trail for an order
func (l *MemoryOrderLedger) Notes(id string) []Note {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Note(nil), l.notes[id]...)
}
