package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a machine-readable error code
type ErrorCode string

const (
	// Payload Errors
	ErrorCodeMalformedPayload   ErrorCode = "MALFORMED_PAYLOAD"
	ErrorCodeMissingResultToken ErrorCode = "MISSING_RESULT_TOKEN"

	// Notification Authentication Errors
	ErrorCodeUnauthenticatedNotification ErrorCode = "UNAUTHENTICATED_NOTIFICATION"

	// Status Errors
	ErrorCodeUnknownStatus               ErrorCode = "UNKNOWN_STATUS"
	ErrorCodeGatewayDeclinedTransition   ErrorCode = "GATEWAY_DECLINED_TRANSITION"
	ErrorCodeSettlementMethodMismatch    ErrorCode = "SETTLEMENT_METHOD_MISMATCH"
	ErrorCodeUnsupportedSettlementMethod ErrorCode = "UNSUPPORTED_SETTLEMENT_METHOD"

	// Order Errors
	ErrorCodeOrderNotFound        ErrorCode = "ORDER_NOT_FOUND"
	ErrorCodeAmountMismatch       ErrorCode = "AMOUNT_MISMATCH"
	ErrorCodeTransitionSuperseded ErrorCode = "TRANSITION_SUPERSEDED"

	// Internal Errors
	ErrorCodeInternalError ErrorCode = "INTERNAL_ERROR"
	ErrorCodeDatabaseError ErrorCode = "INTERNAL_DATABASE_ERROR"
)

// DomainError represents a structured domain error with error code and context
type DomainError struct {
	Err     error
	Details map[string]interface{}
	Code    ErrorCode
	Message string
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches any DomainError carrying the same code, so wrapped
// copies of the sentinels below still satisfy errors.Is.
func (e *DomainError) Is(target error) bool {
	var other *DomainError
	if errors.As(target, &other) {
		return other.Code == e.Code
	}
	return false
}

// WithDetail adds a detail field to the error
func (e *DomainError) WithDetail(key string, value interface{}) *DomainError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// NewDomainError creates a new domain error
func NewDomainError(code ErrorCode, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// WrapError wraps an existing error with a domain error code
func WrapError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Err:     err,
	}
}

// IsDomainError checks if an error is a DomainError with the given code
func IsDomainError(err error, code ErrorCode) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error, returns empty string if not a DomainError
func GetErrorCode(err error) ErrorCode {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return ""
}

// IsNotFoundError checks if an error represents a "not found" condition
func IsNotFoundError(err error) bool {
	return GetErrorCode(err) == ErrorCodeOrderNotFound
}

// IsRejection reports whether err is one of the codes a notification is
// dropped for without touching the order.
func IsRejection(err error) bool {
	switch GetErrorCode(err) {
	case ErrorCodeMalformedPayload,
		ErrorCodeMissingResultToken,
		ErrorCodeUnauthenticatedNotification,
		ErrorCodeUnknownStatus,
		ErrorCodeOrderNotFound,
		ErrorCodeSettlementMethodMismatch,
		ErrorCodeGatewayDeclinedTransition:
		return true
	}
	return false
}

var (
	ErrMalformedPayload            = NewDomainError(ErrorCodeMalformedPayload, "malformed gateway payload")
	ErrMissingResultToken          = NewDomainError(ErrorCodeMissingResultToken, "return carried no result token")
	ErrUnauthenticatedNotification = NewDomainError(ErrorCodeUnauthenticatedNotification, "notification failed merchant check")
	ErrUnknownStatus               = NewDomainError(ErrorCodeUnknownStatus, "unknown gateway status")
	ErrGatewayDeclinedTransition   = NewDomainError(ErrorCodeGatewayDeclinedTransition, "no transition for gateway status")
	ErrSettlementMethodMismatch    = NewDomainError(ErrorCodeSettlementMethodMismatch, "order belongs to another settlement method")
	ErrUnsupportedSettlementMethod = NewDomainError(ErrorCodeUnsupportedSettlementMethod, "unsupported settlement method")
	ErrOrderNotFound               = NewDomainError(ErrorCodeOrderNotFound, "order not found")
	ErrAmountMismatch              = NewDomainError(ErrorCodeAmountMismatch, "total amount does not match")
	ErrTransitionSuperseded        = NewDomainError(ErrorCodeTransitionSuperseded, "order already settled")
	ErrInternalError               = NewDomainError(ErrorCodeInternalError, "internal server error")
	ErrDatabaseError               = NewDomainError(ErrorCodeDatabaseError, "database error")
)
