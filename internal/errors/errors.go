package errors

import (
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	AccountNotFound         ErrorCode = "account_not_found"
	DepositAlreadyExists    ErrorCode = "deposit_already_exists"
	WithdrawalAlreadyExists ErrorCode = "withdrawal_already_exists"
	InsufficientFunds       ErrorCode = "insufficient_funds"
	InvalidInput            ErrorCode = "invalid_input"
	InternalError           ErrorCode = "internal_error"
)

type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewAppError(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

func NewAppErrorf(code ErrorCode, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// HTTPStatus maps an error code to the status used when no operation-specific
// mapping applies.
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case AccountNotFound:
		return http.StatusNotFound
	case DepositAlreadyExists, WithdrawalAlreadyExists:
		return http.StatusConflict
	case InsufficientFunds, InvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Predefined errors for common cases
var (
	ErrAccountNotFound         = NewAppError(AccountNotFound, "account not found")
	ErrDepositAlreadyExists    = NewAppError(DepositAlreadyExists, "deposit already exists")
	ErrWithdrawalAlreadyExists = NewAppError(WithdrawalAlreadyExists, "withdrawal already exists")
	ErrInsufficientFunds       = NewAppError(InsufficientFunds, "insufficient funds to complete withdrawal")
)
