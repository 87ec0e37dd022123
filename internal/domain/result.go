package domain

import "github.com/shopspring/decimal"

// Gateway status codes. The vocabulary is shared across settlement
// methods, each method reacting to its own subset.
const (
	GatewayStatusCapture     = "CAPTURE"
	GatewayStatusAuth        = "AUTH"
	GatewayStatusCheck       = "CHECK"
	GatewayStatusSales       = "SALES"
	GatewayStatusReqSuccess  = "REQSUCCESS"
	GatewayStatusPaySuccess  = "PAYSUCCESS"
	GatewayStatusPayStart    = "PAYSTART"
	GatewayStatusExpired     = "EXPIRED"
	GatewayStatusCancel      = "CANCEL"
	GatewayStatusPayCancel   = "PAYCANCEL"
	GatewayStatusPayFail     = "PAYFAIL"
	GatewayStatusUnprocessed = "UNPROCESSED"
	GatewayStatusAuthProcess = "AUTHPROCESS"

	// GatewayStatusUnprosessed is the gateway's own spelling for
	// unprocessed foreign-card (DCC) payments.
	GatewayStatusUnprosessed = "UNPROSESSED"
)

var knownGatewayStatuses = map[string]struct{}{
	GatewayStatusCapture:     {},
	GatewayStatusAuth:        {},
	GatewayStatusCheck:       {},
	GatewayStatusSales:       {},
	GatewayStatusReqSuccess:  {},
	GatewayStatusPaySuccess:  {},
	GatewayStatusExpired:     {},
	GatewayStatusCancel:      {},
	GatewayStatusPayCancel:   {},
	GatewayStatusPayFail:     {},
	GatewayStatusUnprocessed: {},
	GatewayStatusAuthProcess: {},
	GatewayStatusUnprosessed: {},
}

// IsKnownGatewayStatus reports whether the webhook channel accepts status
func IsKnownGatewayStatus(status string) bool {
	_, ok := knownGatewayStatuses[status]
	return ok
}

// Channel names the route a gateway result arrived on
type Channel string

const (
	ChannelReturn  Channel = "return"
	ChannelWebhook Channel = "webhook"
)

// GatewayResult is one decoded payment result from either channel.
// It lives for a single request and is never persisted.
type GatewayResult struct {
	Channel Channel
	Status  string
	ErrCode string
	ErrInfo string

	// OrderID is the raw gateway order id, still carrying the merchant prefix
	// on the webhook channel.
	OrderID string
	ShopID  string
	Amount  *decimal.Decimal

	// Fields holds every decoded field, including method-specific
	// reference and detail fields.
	Fields map[string]string
}

// Field returns a decoded field, or "" when absent
func (r *GatewayResult) Field(name string) string {
	if r == nil || r.Fields == nil {
		return ""
	}
	return r.Fields[name]
}

// Reference returns the transaction reference for the given method,
// honoring status-specific reference fields
func (r *GatewayResult) Reference(profile MethodProfile) string {
	if r == nil {
		return ""
	}
	return r.Field(profile.ReferenceFieldFor(r.Status))
}

// HasError reports whether the gateway attached both an error code and info
func (r *GatewayResult) HasError() bool {
	return r.ErrCode != "" && r.ErrInfo != ""
}
