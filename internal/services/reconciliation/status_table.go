package reconciliation

import "github.com/kevin07696/payment-reconciler/internal/domain"

// statusTable maps each settlement method's gateway statuses onto outcome
// kinds. OutcomeCompleted stands for the configured success state.
var statusTable = map[domain.SettlementMethod]map[string]domain.OutcomeKind{
	domain.SettlementCredit: {
		domain.GatewayStatusCapture: domain.OutcomeCompleted,
		domain.GatewayStatusAuth:    domain.OutcomeCompleted,
	},
	domain.SettlementCVS:      deferredPaymentStatuses,
	domain.SettlementPayEasy:  deferredPaymentStatuses,
	domain.SettlementDocomo:   carrierStatuses,
	domain.SettlementAu:       carrierStatuses,
	domain.SettlementSoftBank: carrierStatuses,
	domain.SettlementAuPay:    carrierStatuses,
	domain.SettlementEposPay: {
		domain.GatewayStatusAuth:        domain.OutcomeCompleted,
		domain.GatewayStatusPayFail:     domain.OutcomeFailed,
		domain.GatewayStatusAuthProcess: domain.OutcomeFailed,
	},
	domain.SettlementDCC: {
		domain.GatewayStatusCapture:     domain.OutcomeCompleted,
		domain.GatewayStatusUnprosessed: domain.OutcomeFailed,
	},
	domain.SettlementFamiPay: {
		domain.GatewayStatusPaySuccess: domain.OutcomeCompleted,
		domain.GatewayStatusPayFail:    domain.OutcomeFailed,
	},
	domain.SettlementMerpay: {
		domain.GatewayStatusReqSuccess: domain.OutcomeOnHold,
		domain.GatewayStatusAuth:       domain.OutcomeCompleted,
		domain.GatewayStatusCapture:    domain.OutcomeCompleted,
		domain.GatewayStatusPayFail:    domain.OutcomeFailed,
	},
	domain.SettlementRakutenPayV2: {
		domain.GatewayStatusAuth:    domain.OutcomeCompleted,
		domain.GatewayStatusCapture: domain.OutcomeCompleted,
		domain.GatewayStatusPayFail: domain.OutcomeFailed,
	},
	domain.SettlementPayPay: {
		domain.GatewayStatusAuth:    domain.OutcomeCompleted,
		domain.GatewayStatusSales:   domain.OutcomeCompleted,
		domain.GatewayStatusCapture: domain.OutcomeCompleted,
		domain.GatewayStatusPayFail: domain.OutcomeFailed,
		domain.GatewayStatusCancel:  domain.OutcomeCanceled,
	},
	domain.SettlementLinePay: {
		domain.GatewayStatusAuth:      domain.OutcomeCompleted,
		domain.GatewayStatusCapture:   domain.OutcomeCompleted,
		domain.GatewayStatusPayFail:   domain.OutcomeFailed,
		domain.GatewayStatusPayCancel: domain.OutcomeCanceled,
	},
}

// Convenience store and Pay-easy: requested first, paid later at the counter/bank
var deferredPaymentStatuses = map[string]domain.OutcomeKind{
	domain.GatewayStatusReqSuccess: domain.OutcomeOnHold,
	domain.GatewayStatusPaySuccess: domain.OutcomeCompleted,
	domain.GatewayStatusExpired:    domain.OutcomeFailed,
	domain.GatewayStatusCancel:     domain.OutcomeFailed,
}

var carrierStatuses = map[string]domain.OutcomeKind{
	domain.GatewayStatusAuth:        domain.OutcomeCompleted,
	domain.GatewayStatusCapture:     domain.OutcomeCompleted,
	domain.GatewayStatusPayFail:     domain.OutcomeFailed,
	domain.GatewayStatusUnprocessed: domain.OutcomeFailed,
	domain.GatewayStatusAuthProcess: domain.OutcomeFailed,
}

// MapStatus resolves a gateway status for a settlement method.
// Pairs the table does not list resolve to OutcomeIgnored.
func MapStatus(method domain.SettlementMethod, status string) domain.OutcomeKind {
	if kind, ok := statusTable[method][status]; ok {
		return kind
	}
	return domain.OutcomeIgnored
}
