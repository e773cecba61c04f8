package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionDetails carries the caller-supplied fields of one deposit or
// withdrawal. The request correlation id doubles as the transaction's
// reference id.
type TransactionDetails struct {
	Amount          decimal.Decimal
	TransactionDate time.Time
	Reference       string
}

type PostDepositRequest struct {
	AccountID     uuid.UUID
	Deposit       TransactionDetails
	CorrelationID uuid.UUID
}

type PostWithdrawalRequest struct {
	AccountID     uuid.UUID
	Withdrawal    TransactionDetails
	CorrelationID uuid.UUID
}

type GetCurrentBalanceRequest struct {
	AccountID     uuid.UUID
	CorrelationID uuid.UUID
}

type GetTransactionHistoryRequest struct {
	AccountID     uuid.UUID
	CorrelationID uuid.UUID
}
