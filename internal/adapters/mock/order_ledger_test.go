package mock

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/kevin07696/payment-reconciler/internal/domain"
)

func TestMemoryOrderLedger_SetStatus(t *testing.T) {
	tests := []struct {
		name    string
		current domain.OrderStatus
		next    domain.OrderStatus
		wantErr domain.ErrorCode
		want    domain.OrderStatus
	}{
		{name: "pending to on-hold", current: domain.OrderStatusPending, next: domain.OrderStatusOnHold, want: domain.OrderStatusOnHold},
		{name: "on-hold to processing", current: domain.OrderStatusOnHold, next: domain.OrderStatusProcessing, want: domain.OrderStatusProcessing},
		{name: "processing stays settled", current: domain.OrderStatusProcessing, next: domain.OrderStatusOnHold, wantErr: domain.ErrorCodeTransitionSuperseded, want: domain.OrderStatusProcessing},
		{name: "completed stays settled", current: domain.OrderStatusCompleted, next: domain.OrderStatusOnHold, wantErr: domain.ErrorCodeTransitionSuperseded, want: domain.OrderStatusCompleted},
		{name: "processing can still fail", current: domain.OrderStatusProcessing, next: domain.OrderStatusFailed, want: domain.OrderStatusFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := NewMemoryOrderLedger(zaptest.NewLogger(t))
			ledger.Put(domain.Order{ID: "1", SettlementMethod: domain.SettlementCVS, Total: decimal.NewFromInt(100), Status: tt.current})

			err := ledger.SetStatus(context.Background(), "1", tt.next, "note")
			if tt.wantErr != "" {
				assert.True(t, domain.IsDomainError(err, tt.wantErr))
				assert.Empty(t, ledger.Notes("1"))
			} else {
				require.NoError(t, err)
				assert.Len(t, ledger.Notes("1"), 1)
			}

			order, err := ledger.FindOrder(context.Background(), "1")
			require.NoError(t, err)
			assert.Equal(t, tt.want, order.Status)
		})
	}
}

func TestMemoryOrderLedger_UnknownOrder(t *testing.T) {
	ledger := NewMemoryOrderLedger(zaptest.NewLogger(t))

	_, err := ledger.FindOrder(context.Background(), "404")
	assert.True(t, domain.IsNotFoundError(err))
	assert.True(t, domain.IsNotFoundError(ledger.SetStatus(context.Background(), "404", domain.OrderStatusFailed, "")))
}
