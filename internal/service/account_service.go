package service

import (
	"log/slog"
	"sort"

	"simple-ledger/internal/domain"
	"simple-ledger/internal/errors"
)

// AccountService orchestrates one logical operation per public method:
// validate, load or create the account, mutate the aggregate, persist, and
// map the outcome to a response code. Domain rejections become response
// codes; only unexpected repository failures are returned as errors.
type AccountService struct {
	repo       domain.AccountRepository
	validators Validators
	locks      keyedMutex
	logger     *slog.Logger
}

func NewAccountService(repo domain.AccountRepository, validators Validators, logger *slog.Logger) *AccountService {
	return &AccountService{
		repo:       repo,
		validators: validators,
		logger:     logger,
	}
}

func (s *AccountService) PostDeposit(req PostDepositRequest) (*PostDepositResponse, error) {
	if err := s.validators.PostDeposit.Validate(req); err != nil {
		s.logger.Warn("Deposit request validation failed", "correlation_id", req.CorrelationID, "error", err)
		return &PostDepositResponse{
			ResponseCode:  RequestValidationFailed,
			Notes:         err.Error(),
			CorrelationID: req.CorrelationID,
		}, nil
	}

	s.logger.Info("Processing deposit",
		"account_id", req.AccountID,
		"amount", req.Deposit.Amount,
		"correlation_id", req.CorrelationID)

	unlock := s.locks.lock(req.AccountID)
	defer unlock()

	account, err := s.repo.GetAccount(req.AccountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		account = domain.NewAccount(req.AccountID)
	}

	deposit := domain.Transaction{
		ReferenceID:     req.CorrelationID,
		Amount:          req.Deposit.Amount,
		TransactionDate: req.Deposit.TransactionDate,
		Reference:       req.Deposit.Reference,
	}

	if err := account.TryAddDeposit(deposit); err != nil {
		if err == errors.ErrDepositAlreadyExists {
			s.logger.Warn("Deposit already exists", "account_id", req.AccountID, "reference_id", deposit.ReferenceID)
			return &PostDepositResponse{
				ResponseCode:  DepositAlreadyExisting,
				Notes:         "Deposit already exists.",
				CorrelationID: req.CorrelationID,
			}, nil
		}
		return nil, err
	}

	if err := s.repo.AddOrUpdateAccount(account); err != nil {
		return nil, err
	}

	s.logger.Info("Deposit recorded", "account_id", req.AccountID, "correlation_id", req.CorrelationID)
	return &PostDepositResponse{
		ResponseCode:  Success,
		CorrelationID: req.CorrelationID,
	}, nil
}

func (s *AccountService) PostWithdrawal(req PostWithdrawalRequest) (*PostWithdrawalResponse, error) {
	if err := s.validators.PostWithdrawal.Validate(req); err != nil {
		s.logger.Warn("Withdrawal request validation failed", "correlation_id", req.CorrelationID, "error", err)
		return &PostWithdrawalResponse{
			ResponseCode:  RequestValidationFailed,
			Notes:         err.Error(),
			CorrelationID: req.CorrelationID,
		}, nil
	}

	s.logger.Info("Processing withdrawal",
		"account_id", req.AccountID,
		"amount", req.Withdrawal.Amount,
		"correlation_id", req.CorrelationID)

	unlock := s.locks.lock(req.AccountID)
	defer unlock()

	account, err := s.repo.GetAccount(req.AccountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return &PostWithdrawalResponse{
			ResponseCode:  AccountNotFound,
			Notes:         "Account not found.",
			CorrelationID: req.CorrelationID,
		}, nil
	}

	withdrawal := domain.Transaction{
		ReferenceID:     req.CorrelationID,
		Amount:          req.Withdrawal.Amount,
		TransactionDate: req.Withdrawal.TransactionDate,
		Reference:       req.Withdrawal.Reference,
	}

	switch err := account.TryAddWithdrawal(withdrawal); err {
	case nil:
	case errors.ErrWithdrawalAlreadyExists:
		s.logger.Warn("Withdrawal already exists", "account_id", req.AccountID, "reference_id", withdrawal.ReferenceID)
		return &PostWithdrawalResponse{
			ResponseCode:  WithdrawalAlreadyExisting,
			Notes:         "Withdrawal already exists.",
			CorrelationID: req.CorrelationID,
		}, nil
	case errors.ErrInsufficientFunds:
		s.logger.Warn("Insufficient funds for withdrawal",
			"account_id", req.AccountID,
			"amount", withdrawal.Amount,
			"balance", account.CurrentBalance())
		return &PostWithdrawalResponse{
			ResponseCode:  InsufficientFunds,
			Notes:         "Insufficient funds.",
			CorrelationID: req.CorrelationID,
		}, nil
	default:
		return nil, err
	}

	if err := s.repo.AddOrUpdateAccount(account); err != nil {
		return nil, err
	}

	s.logger.Info("Withdrawal recorded", "account_id", req.AccountID, "correlation_id", req.CorrelationID)
	return &PostWithdrawalResponse{
		ResponseCode:  Success,
		CorrelationID: req.CorrelationID,
	}, nil
}

func (s *AccountService) GetCurrentBalance(req GetCurrentBalanceRequest) (*GetCurrentBalanceResponse, error) {
	if err := s.validators.GetCurrentBalance.Validate(req); err != nil {
		return &GetCurrentBalanceResponse{
			ResponseCode:  RequestValidationFailed,
			Notes:         err.Error(),
			CorrelationID: req.CorrelationID,
		}, nil
	}

	account, err := s.repo.GetAccount(req.AccountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return &GetCurrentBalanceResponse{
			ResponseCode:  AccountNotFound,
			Notes:         "Account not found.",
			CorrelationID: req.CorrelationID,
		}, nil
	}

	balance := account.CurrentBalance()
	return &GetCurrentBalanceResponse{
		Data:          &balance,
		ResponseCode:  Success,
		CorrelationID: req.CorrelationID,
	}, nil
}

func (s *AccountService) GetTransactionHistory(req GetTransactionHistoryRequest) (*GetTransactionHistoryResponse, error) {
	if err := s.validators.GetTransactionHistory.Validate(req); err != nil {
		return &GetTransactionHistoryResponse{
			ResponseCode:  RequestValidationFailed,
			Notes:         err.Error(),
			CorrelationID: req.CorrelationID,
		}, nil
	}

	account, err := s.repo.GetAccount(req.AccountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return &GetTransactionHistoryResponse{
			ResponseCode:  AccountNotFound,
			Notes:         "Account not found.",
			CorrelationID: req.CorrelationID,
		}, nil
	}

	transactions := make([]HistoryEntry, 0, account.Deposits.Len()+account.Withdrawals.Len())
	for _, d := range account.Deposits.All() {
		transactions = append(transactions, historyEntry(TransactionTypeDeposit, d))
	}
	for _, w := range account.Withdrawals.All() {
		transactions = append(transactions, historyEntry(TransactionTypeWithdrawal, w))
	}

	// Newest first; merge order (deposits before withdrawals) breaks ties.
	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].TransactionDate.After(transactions[j].TransactionDate)
	})

	return &GetTransactionHistoryResponse{
		Data: &TransactionHistory{
			AccountID:    req.AccountID,
			Transactions: transactions,
		},
		ResponseCode:  Success,
		CorrelationID: req.CorrelationID,
	}, nil
}

func historyEntry(kind TransactionType, tx domain.Transaction) HistoryEntry {
	return HistoryEntry{
		TransactionType: kind,
		ReferenceID:     tx.ReferenceID,
		Amount:          tx.Amount,
		TransactionDate: tx.TransactionDate,
		Reference:       tx.Reference,
	}
}
