package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// TestDomainErrors_Codes checks each sentinel carries its code and message
func TestDomainErrors_Codes(t *testing.T) {
	tests := []struct {
		name     string
		err      *DomainError
		code     ErrorCode
		contains string
	}{
		{name: "malformed_payload", err: ErrMalformedPayload, code: ErrorCodeMalformedPayload, contains: "malformed gateway payload"},
		{name: "missing_result_token", err: ErrMissingResultToken, code: ErrorCodeMissingResultToken, contains: "no result token"},
		{name: "unauthenticated_notification", err: ErrUnauthenticatedNotification, code: ErrorCodeUnauthenticatedNotification, contains: "merchant check"},
		{name: "unknown_status", err: ErrUnknownStatus, code: ErrorCodeUnknownStatus, contains: "unknown gateway status"},
		{name: "gateway_declined_transition", err: ErrGatewayDeclinedTransition, code: ErrorCodeGatewayDeclinedTransition, contains: "no transition"},
		{name: "settlement_method_mismatch", err: ErrSettlementMethodMismatch, code: ErrorCodeSettlementMethodMismatch, contains: "another settlement method"},
		{name: "order_not_found", err: ErrOrderNotFound, code: ErrorCodeOrderNotFound, contains: "order not found"},
		{name: "amount_mismatch", err: ErrAmountMismatch, code: ErrorCodeAmountMismatch, contains: "total amount does not match"},
		{name: "database_error", err: ErrDatabaseError, code: ErrorCodeDatabaseError, contains: "database error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("Code = %q, want %q", tt.err.Code, tt.code)
			}
			if !strings.Contains(tt.err.Error(), tt.contains) {
				t.Errorf("error %q does not contain %q", tt.err.Error(), tt.contains)
			}
			if !strings.HasPrefix(tt.err.Error(), string(tt.code)) {
				t.Errorf("error %q does not start with its code", tt.err.Error())
			}
		})
	}
}

// TestDomainErrors_IsByCode tests that errors.Is matches on code, through wrapping
func TestDomainErrors_IsByCode(t *testing.T) {
	cause := errors.New("connection refused")
	wrapped := WrapError(ErrorCodeDatabaseError, "failed to set order status", cause)

	if !errors.Is(wrapped, ErrDatabaseError) {
		t.Error("wrapped database error should match ErrDatabaseError")
	}
	if !errors.Is(wrapped, cause) {
		t.Error("wrapped database error should unwrap to its cause")
	}
	if errors.Is(wrapped, ErrOrderNotFound) {
		t.Error("database error should not match ErrOrderNotFound")
	}

	outer := fmt.Errorf("reconcile order 1001: %w", ErrOrderNotFound)
	if !errors.Is(outer, ErrOrderNotFound) {
		t.Error("fmt wrapped sentinel should match itself")
	}
	if !IsNotFoundError(outer) {
		t.Error("IsNotFoundError should see through fmt wrapping")
	}
}

func TestDomainErrors_GetErrorCode(t *testing.T) {
	if got := GetErrorCode(ErrUnknownStatus); got != ErrorCodeUnknownStatus {
		t.Errorf("GetErrorCode = %q, want %q", got, ErrorCodeUnknownStatus)
	}
	if got := GetErrorCode(errors.New("plain")); got != "" {
		t.Errorf("GetErrorCode(plain) = %q, want empty", got)
	}
	if got := GetErrorCode(nil); got != "" {
		t.Errorf("GetErrorCode(nil) = %q, want empty", got)
	}
	if !IsDomainError(ErrAmountMismatch, ErrorCodeAmountMismatch) {
		t.Error("IsDomainError should match the sentinel's own code")
	}
}

func TestDomainErrors_IsRejection(t *testing.T) {
	rejections := []error{
		ErrMalformedPayload,
		ErrMissingResultToken,
		ErrUnauthenticatedNotification,
		ErrUnknownStatus,
		ErrOrderNotFound,
		ErrSettlementMethodMismatch,
		ErrGatewayDeclinedTransition,
	}
	for _, err := range rejections {
		if !IsRejection(err) {
			t.Errorf("IsRejection(%v) = false, want true", err)
		}
	}

	others := []error{ErrAmountMismatch, ErrDatabaseError, errors.New("plain"), nil}
	for _, err := range others {
		if IsRejection(err) {
			t.Errorf("IsRejection(%v) = true, want false", err)
		}
	}
}

func TestDomainErrors_WithDetailOnFreshError(t *testing.T) {
	err := NewDomainError(ErrorCodeAmountMismatch, "total amount does not match").
		WithDetail("order_id", "1001").
		WithDetail("amount", "5000")

	if err.Details["order_id"] != "1001" || err.Details["amount"] != "5000" {
		t.Errorf("Details = %v, want order_id and amount", err.Details)
	}
	if len(ErrAmountMismatch.Details) != 0 {
		t.Error("detail on a fresh error must not leak into the sentinel")
	}
}
