package repository

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"simple-ledger/internal/domain"
)

// Memory is the reference account store: a mutex-guarded map. Individual
// get/put calls are thread-safe; reads hand out deep copies so no aggregate
// is shared across concurrent requests.
type Memory struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]*domain.Account
	logger   *slog.Logger
}

func NewMemory(logger *slog.Logger) *Memory {
	return &Memory{
		accounts: make(map[uuid.UUID]*domain.Account),
		logger:   logger,
	}
}

func (m *Memory) GetAccount(accountID uuid.UUID) (*domain.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	account, ok := m.accounts[accountID]
	if !ok {
		return nil, nil
	}
	return account.Clone(), nil
}

// AddOrUpdateAccount stores a full replacement of the account's state,
// last writer wins.
func (m *Memory) AddOrUpdateAccount(account *domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.accounts[account.AccountID] = account.Clone()
	return nil
}

// Ping reports the store as always available.
func (m *Memory) Ping() error {
	return nil
}
