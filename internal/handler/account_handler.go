package handler

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"simple-ledger/internal/service"
)

type AccountHandler struct {
	accountService *service.AccountService
}

func NewAccountHandler(accountService *service.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
	}
}

type TransactionPayload struct {
	Amount          decimal.Decimal `json:"amount"`
	TransactionDate time.Time       `json:"transactionDate"`
	Reference       string          `json:"reference"`
}

type PostDepositRequest struct {
	AccountID     uuid.UUID          `json:"accountId"`
	Deposit       TransactionPayload `json:"deposit"`
	CorrelationID uuid.UUID          `json:"correlationId"`
}

type PostWithdrawalRequest struct {
	AccountID     uuid.UUID          `json:"accountId"`
	Withdrawal    TransactionPayload `json:"withdrawal"`
	CorrelationID uuid.UUID          `json:"correlationId"`
}

type OperationResponse struct {
	ResponseCode  string    `json:"responseCode"`
	Notes         string    `json:"notes"`
	CorrelationID uuid.UUID `json:"correlationId"`
}

type BalanceResponse struct {
	Data          *decimal.Decimal `json:"data"`
	ResponseCode  string           `json:"responseCode"`
	Notes         string           `json:"notes"`
	CorrelationID uuid.UUID        `json:"correlationId"`
}

type TransactionRecord struct {
	TransactionType string          `json:"type"`
	ReferenceID     uuid.UUID       `json:"referenceId"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionDate time.Time       `json:"transactionDate"`
	Reference       string          `json:"reference"`
}

type TransactionHistory struct {
	AccountID    uuid.UUID           `json:"accountId"`
	Transactions []TransactionRecord `json:"transactions"`
}

type TransactionHistoryResponse struct {
	Data          *TransactionHistory `json:"data"`
	ResponseCode  string              `json:"responseCode"`
	Notes         string              `json:"notes"`
	CorrelationID uuid.UUID           `json:"correlationId"`
}

func (h *AccountHandler) PostDeposit(w http.ResponseWriter, r *http.Request) {
	var req PostDepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, OperationResponse{
			ResponseCode: string(service.RequestValidationFailed),
			Notes:        "invalid request body",
		})
		return
	}

	response, err := h.accountService.PostDeposit(service.PostDepositRequest{
		AccountID: req.AccountID,
		Deposit: service.TransactionDetails{
			Amount:          req.Deposit.Amount,
			TransactionDate: req.Deposit.TransactionDate,
			Reference:       req.Deposit.Reference,
		},
		CorrelationID: req.CorrelationID,
	})
	if err != nil {
		writeInternalError(w)
		return
	}

	status := http.StatusOK
	switch response.ResponseCode {
	case service.RequestValidationFailed:
		status = http.StatusBadRequest
	case service.DepositAlreadyExisting:
		status = http.StatusConflict
	}

	writeJSON(w, status, OperationResponse{
		ResponseCode:  string(response.ResponseCode),
		Notes:         response.Notes,
		CorrelationID: response.CorrelationID,
	})
}

func (h *AccountHandler) PostWithdrawal(w http.ResponseWriter, r *http.Request) {
	var req PostWithdrawalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, OperationResponse{
			ResponseCode: string(service.RequestValidationFailed),
			Notes:        "invalid request body",
		})
		return
	}

	response, err := h.accountService.PostWithdrawal(service.PostWithdrawalRequest{
		AccountID: req.AccountID,
		Withdrawal: service.TransactionDetails{
			Amount:          req.Withdrawal.Amount,
			TransactionDate: req.Withdrawal.TransactionDate,
			Reference:       req.Withdrawal.Reference,
		},
		CorrelationID: req.CorrelationID,
	})
	if err != nil {
		writeInternalError(w)
		return
	}

	status := http.StatusOK
	switch response.ResponseCode {
	case service.RequestValidationFailed, service.InsufficientFunds:
		status = http.StatusBadRequest
	case service.AccountNotFound:
		status = http.StatusNotFound
	case service.WithdrawalAlreadyExisting:
		status = http.StatusConflict
	}

	writeJSON(w, status, OperationResponse{
		ResponseCode:  string(response.ResponseCode),
		Notes:         response.Notes,
		CorrelationID: response.CorrelationID,
	})
}

func (h *AccountHandler) GetCurrentBalance(w http.ResponseWriter, r *http.Request) {
	accountID, correlationID, idErr := readIdentifiers(r)
	if idErr != nil {
		writeJSON(w, http.StatusBadRequest, BalanceResponse{
			ResponseCode:  string(service.RequestValidationFailed),
			Notes:         idErr.Error(),
			CorrelationID: correlationID,
		})
		return
	}

	response, err := h.accountService.GetCurrentBalance(service.GetCurrentBalanceRequest{
		AccountID:     accountID,
		CorrelationID: correlationID,
	})
	if err != nil {
		writeInternalError(w)
		return
	}

	status := http.StatusOK
	switch response.ResponseCode {
	case service.RequestValidationFailed:
		status = http.StatusBadRequest
	case service.AccountNotFound:
		status = http.StatusNotFound
	}

	writeJSON(w, status, BalanceResponse{
		Data:          response.Data,
		ResponseCode:  string(response.ResponseCode),
		Notes:         response.Notes,
		CorrelationID: response.CorrelationID,
	})
}

func (h *AccountHandler) GetTransactionHistory(w http.ResponseWriter, r *http.Request) {
	accountID, correlationID, idErr := readIdentifiers(r)
	if idErr != nil {
		writeJSON(w, http.StatusBadRequest, TransactionHistoryResponse{
			ResponseCode:  string(service.RequestValidationFailed),
			Notes:         idErr.Error(),
			CorrelationID: correlationID,
		})
		return
	}

	response, err := h.accountService.GetTransactionHistory(service.GetTransactionHistoryRequest{
		AccountID:     accountID,
		CorrelationID: correlationID,
	})
	if err != nil {
		writeInternalError(w)
		return
	}

	status := http.StatusOK
	switch response.ResponseCode {
	case service.RequestValidationFailed:
		status = http.StatusBadRequest
	case service.AccountNotFound:
		status = http.StatusNotFound
	}

	var data *TransactionHistory
	if response.Data != nil {
		records := make([]TransactionRecord, 0, len(response.Data.Transactions))
		for _, tx := range response.Data.Transactions {
			records = append(records, TransactionRecord{
				TransactionType: string(tx.TransactionType),
				ReferenceID:     tx.ReferenceID,
				Amount:          tx.Amount,
				TransactionDate: tx.TransactionDate,
				Reference:       tx.Reference,
			})
		}
		data = &TransactionHistory{
			AccountID:    response.Data.AccountID,
			Transactions: records,
		}
	}

	writeJSON(w, status, TransactionHistoryResponse{
		Data:          data,
		ResponseCode:  string(response.ResponseCode),
		Notes:         response.Notes,
		CorrelationID: response.CorrelationID,
	})
}

// readIdentifiers pulls the account id from the path and the correlation id
// from the query string. Absent values come back as the nil uuid and are
// rejected by the request validators; present-but-unparsable values are an
// error of their own.
func readIdentifiers(r *http.Request) (accountID, correlationID uuid.UUID, err error) {
	if raw := mux.Vars(r)["account_id"]; raw != "" {
		accountID, err = uuid.Parse(raw)
		if err != nil {
			return uuid.Nil, uuid.Nil, stderrors.New("accountId must be a valid uuid")
		}
	}
	if raw := r.URL.Query().Get("correlationId"); raw != "" {
		correlationID, err = uuid.Parse(raw)
		if err != nil {
			return accountID, uuid.Nil, stderrors.New("correlationId must be a valid uuid")
		}
	}
	return accountID, correlationID, nil
}
