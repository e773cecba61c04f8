package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"simple-ledger/internal/errors"
)

// Account is the aggregate root for one party's ledger. It owns its two
// transaction collections and enforces the balance and duplicate-reference
// invariants at mutation time.
type Account struct {
	AccountID   uuid.UUID `json:"account_id"`
	Deposits    *Ledger   `json:"-"`
	Withdrawals *Ledger   `json:"-"`
}

func NewAccount(accountID uuid.UUID) *Account {
	return &Account{
		AccountID:   accountID,
		Deposits:    NewLedger(),
		Withdrawals: NewLedger(),
	}
}

// TryAddDeposit appends the deposit to the account's deposit ledger.
// Duplicate reference ids are silently dropped by the ledger's
// insert-if-absent semantic; deposits carry no explicit duplicate check.
func (a *Account) TryAddDeposit(deposit Transaction) error {
	a.Deposits.Add(deposit)
	return nil
}

// TryAddWithdrawal appends the withdrawal after checking the duplicate and
// balance invariants. On failure nothing is mutated.
func (a *Account) TryAddWithdrawal(withdrawal Transaction) error {
	if a.Withdrawals.Exists(withdrawal.ReferenceID) {
		return errors.ErrWithdrawalAlreadyExists
	}

	if withdrawal.Amount.GreaterThan(a.CurrentBalance()) {
		return errors.ErrInsufficientFunds
	}

	a.Withdrawals.Add(withdrawal)
	return nil
}

// CurrentBalance is the sum of deposit amounts minus the sum of withdrawal
// amounts, zero for an account with no transactions.
func (a *Account) CurrentBalance() decimal.Decimal {
	return a.Deposits.Sum().Sub(a.Withdrawals.Sum())
}

// Clone deep-copies the account so each request works on its own aggregate.
func (a *Account) Clone() *Account {
	return &Account{
		AccountID:   a.AccountID,
		Deposits:    a.Deposits.clone(),
		Withdrawals: a.Withdrawals.clone(),
	}
}

// AccountRepository is the single point of truth for accounts. A miss on
// GetAccount is a normal outcome and returns (nil, nil).
type AccountRepository interface {
	GetAccount(accountID uuid.UUID) (*Account, error)
	AddOrUpdateAccount(account *Account) error
}
