// Package errors provides the error taxonomy of the dashboard API.
// Service-layer errors use AppError so responses carry a stable code and
// never leak internal details to clients. The aggregation engine itself
// never returns errors.
package errors

import (
	stderrors "errors"
	"net/http"
)

// AppError is an error with a stable code, a client-facing message and the
// HTTP status it maps to. Internal holds the cause and is never rendered.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

func newSentinel(code, message string, status int) *AppError {
	return &AppError{Code: code, Message: message, StatusCode: status}
}

func (e *AppError) Error() string { return e.Message }

func (e *AppError) Unwrap() error { return e.Internal }

// Is matches by code, so a wrapped copy still compares equal to its sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && e.Code == t.Code
}

// Wrap copies sentinel and attaches the underlying cause.
func Wrap(sentinel *AppError, internal error) *AppError {
	err := *sentinel
	err.Internal = internal
	return &err
}

// WithMessage copies sentinel with a more specific client message.
func WithMessage(sentinel *AppError, message string) *AppError {
	err := *sentinel
	err.Message = message
	return &err
}

// From finds the AppError in err's chain. Anything else is reported as
// ErrInternalServer with ok set to false.
func From(err error) (appErr *AppError, ok bool) {
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return ErrInternalServer, false
}

// General errors.
var (
	ErrInvalidInput   = newSentinel("INVALID_INPUT", "Invalid input", http.StatusBadRequest)
	ErrNotFound       = newSentinel("NOT_FOUND", "Resource not found", http.StatusNotFound)
	ErrInternalServer = newSentinel("INTERNAL_ERROR", "An internal error occurred", http.StatusInternalServerError)
)

// Family errors.
var (
	ErrMemberNotFound = newSentinel("MEMBER_NOT_FOUND", "Family member not found", http.StatusNotFound)
)

// Account and card errors.
var (
	ErrBankAccountNotFound    = newSentinel("BANK_ACCOUNT_NOT_FOUND", "Bank account not found", http.StatusNotFound)
	ErrCreditCardNotFound     = newSentinel("CREDIT_CARD_NOT_FOUND", "Credit card not found", http.StatusNotFound)
	ErrPaymentSourceNotFound  = newSentinel("PAYMENT_SOURCE_NOT_FOUND", "No bank account or credit card with this id", http.StatusNotFound)
	ErrInvalidPaymentSource   = newSentinel("INVALID_PAYMENT_SOURCE", "Transaction must reference an existing bank account or credit card", http.StatusBadRequest)
	ErrInvalidMemberReference = newSentinel("INVALID_MEMBER_REFERENCE", "Transaction references an unknown family member", http.StatusBadRequest)
)

// Transaction errors.
var (
	ErrTransactionNotFound    = newSentinel("TRANSACTION_NOT_FOUND", "Transaction not found", http.StatusNotFound)
	ErrTransactionAlreadyPaid = newSentinel("TRANSACTION_ALREADY_PAID", "Transaction is already paid", http.StatusConflict)
	ErrInvalidInstallment     = newSentinel("INVALID_INSTALLMENT", "Current installment cannot exceed the number of installments", http.StatusBadRequest)
)

// Goal errors.
var (
	ErrGoalNotFound = newSentinel("GOAL_NOT_FOUND", "Goal not found", http.StatusNotFound)
)
