package domain

import "strings"

// SettlementMethod identifies a payment rail offered by the gateway
type SettlementMethod string

const (
	SettlementCredit       SettlementMethod = "credit"
	SettlementCVS          SettlementMethod = "cvs"
	SettlementPayEasy      SettlementMethod = "payeasy"
	SettlementDocomo       SettlementMethod = "docomo"
	SettlementAu           SettlementMethod = "au"
	SettlementSoftBank     SettlementMethod = "softbank"
	SettlementEposPay      SettlementMethod = "epospay"
	SettlementDCC          SettlementMethod = "dcc"
	SettlementFamiPay      SettlementMethod = "famipay"
	SettlementRakutenPayV2 SettlementMethod = "rakutenpay_v2"
	SettlementPayPay       SettlementMethod = "paypay"
	SettlementAuPay        SettlementMethod = "aupay"
	SettlementMerpay       SettlementMethod = "merpay"
	SettlementLinePay      SettlementMethod = "linepay"
)

// ReturnErrorPolicy decides what the return channel does with an order
// whose token carries ErrCode/ErrInfo. Either way the order fails.
type ReturnErrorPolicy int

const (
	// ReturnErrorRetry sends the shopper back to checkout to pay again
	ReturnErrorRetry ReturnErrorPolicy = iota
	// ReturnErrorStay keeps the shopper on the thank-you page
	ReturnErrorStay
)

// MethodProfile carries the per-method differences the reconciliation
// engine needs. Everything else is shared.
type MethodProfile struct {
	Method SettlementMethod
	Label  string

	// ReferenceField is the gateway field holding the transaction reference
	// surfaced in audit notes.
	ReferenceField string

	// StatusReferenceFields overrides ReferenceField for specific statuses.
	StatusReferenceFields map[string]string

	// DetailFields are extra gateway fields copied into audit notes.
	DetailFields []string

	// AmountGated methods only succeed on the webhook when Amount equals
	// the recorded order total.
	AmountGated bool

	// Pending methods finish the return channel on hold ("requested")
	// instead of the success state.
	Pending bool

	ReturnError ReturnErrorPolicy
}

// ReferenceFieldFor returns the reference field name used for status
func (p MethodProfile) ReferenceFieldFor(status string) string {
	if field, ok := p.StatusReferenceFields[status]; ok {
		return field
	}
	return p.ReferenceField
}

var methodProfiles = map[SettlementMethod]MethodProfile{
	SettlementCredit: {
		Method:         SettlementCredit,
		Label:          "Credit card",
		ReferenceField: "TranID",
		DetailFields:   []string{"Approve", "Forward"},
		AmountGated:    true,
		ReturnError:    ReturnErrorRetry,
	},
	SettlementCVS: {
		Method:         SettlementCVS,
		Label:          "Convenience store",
		ReferenceField: "TranID",
		DetailFields:   []string{"CvsCode", "CvsConfNo", "CvsReceiptNo", "PaymentTerm"},
		Pending:        true,
		ReturnError:    ReturnErrorStay,
	},
	SettlementPayEasy: {
		Method:         SettlementPayEasy,
		Label:          "Pay-easy",
		ReferenceField: "TranID",
		DetailFields:   []string{"CustID", "BkCode", "ConfNo", "PaymentTerm"},
		Pending:        true,
		ReturnError:    ReturnErrorRetry,
	},
	SettlementDocomo: {
		Method:         SettlementDocomo,
		Label:          "d-payment (docomo)",
		ReferenceField: "DocomoSettlementCode",
		ReturnError:    ReturnErrorRetry,
	},
	SettlementAu: {
		Method:         SettlementAu,
		Label:          "au Easy Payment",
		ReferenceField: "AuPayInfoNo",
		ReturnError:    ReturnErrorStay,
	},
	SettlementSoftBank: {
		Method:         SettlementSoftBank,
		Label:          "SoftBank carrier billing",
		ReferenceField: "SbTrackingId",
		ReturnError:    ReturnErrorStay,
	},
	SettlementEposPay: {
		Method:         SettlementEposPay,
		Label:          "Epos Pay",
		ReferenceField: "EposTradeId",
		ReturnError:    ReturnErrorStay,
	},
	SettlementDCC: {
		Method:         SettlementDCC,
		Label:          "Foreign card (DCC)",
		ReferenceField: "DccFtn",
		ReturnError:    ReturnErrorStay,
	},
	SettlementFamiPay: {
		Method:         SettlementFamiPay,
		Label:          "FamiPay",
		ReferenceField: "UriageNO",
		ReturnError:    ReturnErrorStay,
	},
	SettlementRakutenPayV2: {
		Method:         SettlementRakutenPayV2,
		Label:          "Rakuten Pay",
		ReferenceField: "RakutenChargeID",
		ReturnError:    ReturnErrorStay,
	},
	SettlementPayPay: {
		Method:         SettlementPayPay,
		Label:          "PayPay",
		ReferenceField: "PayPayTrackingID",
		ReturnError:    ReturnErrorStay,
	},
	SettlementAuPay: {
		Method:         SettlementAuPay,
		Label:          "au PAY",
		ReferenceField: "DocomoSettlementCode",
		ReturnError:    ReturnErrorStay,
	},
	SettlementMerpay: {
		Method:         SettlementMerpay,
		Label:          "Merpay",
		ReferenceField: "DocomoSettlementCode",
		StatusReferenceFields: map[string]string{
			GatewayStatusReqSuccess: "MerpayInquiryCode",
		},
		ReturnError: ReturnErrorStay,
	},
	SettlementLinePay: {
		Method:         SettlementLinePay,
		Label:          "LINE Pay",
		ReferenceField: "TranID",
		ReturnError:    ReturnErrorStay,
	},
}

// Profile returns the profile for a settlement method
func (m SettlementMethod) Profile() (MethodProfile, bool) {
	p, ok := methodProfiles[m]
	return p, ok
}

// IsValid checks if the settlement method is one the gateway supports
func (m SettlementMethod) IsValid() bool {
	_, ok := methodProfiles[m]
	return ok
}

// ParseSettlementMethod normalizes user/config input into a SettlementMethod
func ParseSettlementMethod(s string) (SettlementMethod, bool) {
	m := SettlementMethod(strings.ToLower(strings.TrimSpace(s)))
	return m, m.IsValid()
}

// AllSettlementMethods lists every supported method in a stable order
func AllSettlementMethods() []SettlementMethod {
	return []SettlementMethod{
		SettlementCredit,
		SettlementCVS,
		SettlementPayEasy,
		SettlementDocomo,
		SettlementAu,
		SettlementSoftBank,
		SettlementEposPay,
		SettlementDCC,
		SettlementFamiPay,
		SettlementRakutenPayV2,
		SettlementPayPay,
		SettlementAuPay,
		SettlementMerpay,
		SettlementLinePay,
	}
}
