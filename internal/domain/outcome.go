package domain

// OutcomeKind classifies what reconciliation decided for one result
type OutcomeKind string

const (
	OutcomeCompleted OutcomeKind = "completed"
	OutcomeOnHold    OutcomeKind = "on_hold"
	OutcomeFailed    OutcomeKind = "failed"
	OutcomeCanceled  OutcomeKind = "canceled"
	OutcomeIgnored   OutcomeKind = "ignored"
)

// Outcome is the decision for one GatewayResult. Applying an outcome sets
// the order to TargetStatus; it never advances from the current status.
type Outcome struct {
	Kind         OutcomeKind
	TargetStatus OrderStatus
	Note         string

	// Reason explains Failed and Ignored outcomes
	Reason string
	Code   ErrorCode

	// RedirectToCheckout asks the return channel to send the shopper back
	// to the checkout page.
	RedirectToCheckout bool
}

// Applies reports whether the outcome mutates the order
func (o Outcome) Applies() bool {
	return o.Kind != OutcomeIgnored && o.TargetStatus != ""
}

// Ignored builds a no-op outcome from a rejection error
func Ignored(err error) Outcome {
	reason := ""
	if err != nil {
		reason = err.Error()
	}
	return Outcome{
		Kind:   OutcomeIgnored,
		Reason: reason,
		Code:   GetErrorCode(err),
	}
}
