package service

import (
	stderrors "errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RequestValidator validates one request type. Implementations are injected
// into the service so tests and callers can substitute their own rules.
type RequestValidator[R any] interface {
	Validate(r R) error
}

// Validators bundles one validator per service operation.
type Validators struct {
	PostDeposit           RequestValidator[PostDepositRequest]
	PostWithdrawal        RequestValidator[PostWithdrawalRequest]
	GetCurrentBalance     RequestValidator[GetCurrentBalanceRequest]
	GetTransactionHistory RequestValidator[GetTransactionHistoryRequest]
}

func DefaultValidators() Validators {
	return Validators{
		PostDeposit:           PostDepositRequestValidator{},
		PostWithdrawal:        PostWithdrawalRequestValidator{},
		GetCurrentBalance:     GetCurrentBalanceRequestValidator{},
		GetTransactionHistory: GetTransactionHistoryRequestValidator{},
	}
}

func requiredUUID(value interface{}) error {
	id, _ := value.(uuid.UUID)
	if id == uuid.Nil {
		return stderrors.New("is required")
	}
	return nil
}

func positiveAmount(value interface{}) error {
	amount, _ := value.(decimal.Decimal)
	if !amount.IsPositive() {
		return stderrors.New("must be greater than zero")
	}
	return nil
}

// validateField runs the rules for one field, prefixing any failure with the
// field name. Fields are checked in declaration order and validation stops at
// the first failure.
func validateField(name string, value interface{}, rules ...validation.Rule) error {
	if err := validation.Validate(value, rules...); err != nil {
		return fmt.Errorf("%s %s", name, err)
	}
	return nil
}

type PostDepositRequestValidator struct{}

func (PostDepositRequestValidator) Validate(r PostDepositRequest) error {
	if err := validateField("correlationId", r.CorrelationID, validation.By(requiredUUID)); err != nil {
		return err
	}
	if err := validateField("accountId", r.AccountID, validation.By(requiredUUID)); err != nil {
		return err
	}
	return validateField("deposit amount", r.Deposit.Amount, validation.By(positiveAmount))
}

type PostWithdrawalRequestValidator struct{}

func (PostWithdrawalRequestValidator) Validate(r PostWithdrawalRequest) error {
	if err := validateField("correlationId", r.CorrelationID, validation.By(requiredUUID)); err != nil {
		return err
	}
	if err := validateField("accountId", r.AccountID, validation.By(requiredUUID)); err != nil {
		return err
	}
	return validateField("withdrawal amount", r.Withdrawal.Amount, validation.By(positiveAmount))
}

type GetCurrentBalanceRequestValidator struct{}

func (GetCurrentBalanceRequestValidator) Validate(r GetCurrentBalanceRequest) error {
	if err := validateField("correlationId", r.CorrelationID, validation.By(requiredUUID)); err != nil {
		return err
	}
	return validateField("accountId", r.AccountID, validation.By(requiredUUID))
}

type GetTransactionHistoryRequestValidator struct{}

func (GetTransactionHistoryRequestValidator) Validate(r GetTransactionHistoryRequest) error {
	if err := validateField("correlationId", r.CorrelationID, validation.By(requiredUUID)); err != nil {
		return err
	}
	return validateField("accountId", r.AccountID, validation.By(requiredUUID))
}
