package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ResponseCode enumerates the outcomes the service reports to its callers.
// Transport layers map these to HTTP statuses per operation.
type ResponseCode string

const (
	Success                   ResponseCode = "Success"
	RequestValidationFailed   ResponseCode = "RequestValidationFailed"
	AccountNotFound           ResponseCode = "AccountNotFound"
	DepositAlreadyExisting    ResponseCode = "DepositAlreadyExisting"
	WithdrawalAlreadyExisting ResponseCode = "WithdrawalAlreadyExisting"
	InsufficientFunds         ResponseCode = "InsufficientFunds"
)

type PostDepositResponse struct {
	ResponseCode  ResponseCode
	Notes         string
	CorrelationID uuid.UUID
}

type PostWithdrawalResponse struct {
	ResponseCode  ResponseCode
	Notes         string
	CorrelationID uuid.UUID
}

type GetCurrentBalanceResponse struct {
	Data          *decimal.Decimal
	ResponseCode  ResponseCode
	Notes         string
	CorrelationID uuid.UUID
}

type GetTransactionHistoryResponse struct {
	Data          *TransactionHistory
	ResponseCode  ResponseCode
	Notes         string
	CorrelationID uuid.UUID
}

type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "Deposit"
	TransactionTypeWithdrawal TransactionType = "Withdrawal"
)

// HistoryEntry is one deposit or withdrawal tagged with its kind for display.
type HistoryEntry struct {
	TransactionType TransactionType
	ReferenceID     uuid.UUID
	Amount          decimal.Decimal
	TransactionDate time.Time
	Reference       string
}

type TransactionHistory struct {
	AccountID    uuid.UUID
	Transactions []HistoryEntry
}
