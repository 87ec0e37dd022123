package reconciliation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"

	"github.com/kevin07696/payment-reconciler/internal/config"
	"github.com/kevin07696/payment-reconciler/internal/domain"
	"github.com/kevin07696/payment-reconciler/internal/domain/ports"
)

const testShopID = "tshop00012345"

func testGatewayConfig() config.GatewayConfig {
	return config.GatewayConfig{
		ShopID:        testShopID,
		OrderIDPrefix: "wc-",
		SuccessStatus: domain.OrderStatusProcessing,
		CheckoutURL:   "/checkout",
		ThankYouURL:   "/checkout/order-received",
		Methods: map[domain.SettlementMethod]config.MethodConfig{
			domain.SettlementCredit: {Enabled: true, JobCode: "CAPTURE"},
			domain.SettlementCVS:    {Enabled: true, Title: "Konbini"},
			domain.SettlementPayPay: {Enabled: true},
		},
	}
}

func newTestEngine(t *testing.T, orders ports.OrderGateway, notifyLog ports.NotificationLogger, cfg config.GatewayConfig) *Engine {
	t.Helper()
	return NewEngine(orders, notifyLog, cfg, zaptest.NewLogger(t))
}

func TestOutcomeFor_AuthOnlyJobCode(t *testing.T) {
	cfg := testGatewayConfig()
	cfg.Methods[domain.SettlementCredit] = config.MethodConfig{Enabled: true, JobCode: JobCodeAuth}
	engine := newTestEngine(t, nil, nil, cfg)

	profile, _ := domain.SettlementCredit.Profile()
	result := &domain.GatewayResult{Status: domain.GatewayStatusAuth, Fields: map[string]string{"TranID": "t-1"}}

	outcome := engine.outcomeFor(domain.OutcomeCompleted, profile, result)

	assert.Equal(t, domain.OrderStatusProcessing, outcome.TargetStatus)
	assert.Equal(t, "Credit card payment authorized (Status=AUTH). TranID: t-1", outcome.Note)
}

func TestOutcomeFor_Headlines(t *testing.T) {
	engine := newTestEngine(t, nil, nil, testGatewayConfig())
	profile, _ := domain.SettlementCVS.Profile()
	result := &domain.GatewayResult{Status: domain.GatewayStatusReqSuccess, Fields: map[string]string{"CvsConfNo": "1234"}}

	tests := []struct {
		kind       domain.OutcomeKind
		wantStatus domain.OrderStatus
		wantNote   string
	}{
		{domain.OutcomeCompleted, domain.OrderStatusProcessing, "Konbini payment completed (Status=REQSUCCESS). CvsConfNo: 1234"},
		{domain.OutcomeOnHold, domain.OrderStatusOnHold, "Konbini payment requested (Status=REQSUCCESS). CvsConfNo: 1234"},
		{domain.OutcomeFailed, domain.OrderStatusFailed, "Konbini payment failed (Status=REQSUCCESS). CvsConfNo: 1234"},
		{domain.OutcomeCanceled, domain.OrderStatusCancelled, "Konbini payment canceled (Status=REQSUCCESS). CvsConfNo: 1234"},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			outcome := engine.outcomeFor(tt.kind, profile, result)
			assert.Equal(t, tt.kind, outcome.Kind)
			assert.Equal(t, tt.wantStatus, outcome.TargetStatus)
			assert.Equal(t, tt.wantNote, outcome.Note)
		})
	}

	ignored := engine.outcomeFor(domain.OutcomeIgnored, profile, result)
	assert.False(t, ignored.Applies())
	assert.Equal(t, domain.ErrorCodeGatewayDeclinedTransition, ignored.Code)
}
