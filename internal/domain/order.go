package domain

import "github.com/shopspring/decimal"

// OrderStatus represents the merchant-side lifecycle state of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusOnHold     OrderStatus = "on-hold"
	OrderStatusFailed     OrderStatus = "failed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// IsValid checks if the order status is valid
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted,
		OrderStatusOnHold, OrderStatusFailed, OrderStatusCancelled:
		return true
	}
	return false
}

// IsSuccessTarget reports whether the status can be configured as the state
// a settled payment moves its order to.
func (s OrderStatus) IsSuccessTarget() bool {
	return s == OrderStatusProcessing || s == OrderStatusCompleted
}

// Supersedes reports whether an order already in s must not be moved to
// next. A settled order never drops back to on-hold.
func (s OrderStatus) Supersedes(next OrderStatus) bool {
	return s.IsSuccessTarget() && next == OrderStatusOnHold
}

// Order is the slice of a merchant order the reconciler reads.
// The order ledger owns it; reconciliation never creates one.
type Order struct {
	ID               string
	SettlementMethod SettlementMethod
	Total            decimal.Decimal
	Currency         string
	Status           OrderStatus
}

// AmountMatches compares a reported amount to the order total exactly.
// A missing amount never matches.
func (o *Order) AmountMatches(amount *decimal.Decimal) bool {
	if amount == nil {
		return false
	}
	return o.Total.Equal(*amount)
}
