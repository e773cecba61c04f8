package repository

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"

	"simple-ledger/internal/domain"
	"simple-ledger/internal/errors"
)

const (
	kindDeposit    = "deposit"
	kindWithdrawal = "withdrawal"
)

// sqlExecutor covers both sql.DB and sql.Tx so ledger reads and writes can
// run inside or outside a transaction.
type sqlExecutor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// Postgres persists accounts in two tables: an accounts row per aggregate and
// one ledger_entries row per transaction. AddOrUpdateAccount is a full
// replacement of the stored state inside a database transaction.
type Postgres struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewPostgres(db *sql.DB, logger *slog.Logger) *Postgres {
	return &Postgres{
		db:     db,
		logger: logger,
	}
}

// OpenPostgres connects and configures the pool the way the service expects.
func OpenPostgres(dsn string, logger *slog.Logger) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	return NewPostgres(db, logger), nil
}

func (p *Postgres) GetAccount(accountID uuid.UUID) (*domain.Account, error) {
	var exists bool
	err := p.db.QueryRow(`SELECT EXISTS (SELECT 1 FROM accounts WHERE id = $1)`, accountID).Scan(&exists)
	if err != nil {
		p.logger.Error("Failed to look up account", "account_id", accountID, "error", err)
		return nil, errors.NewAppError(errors.InternalError, "failed to get account").WithDetails(err.Error())
	}
	if !exists {
		return nil, nil
	}

	account := domain.NewAccount(accountID)
	if err := p.loadEntries(p.db, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (p *Postgres) loadEntries(exec sqlExecutor, account *domain.Account) error {
	query := `
		SELECT kind, reference_id, amount, transaction_date, reference
		FROM ledger_entries WHERE account_id = $1
		ORDER BY position
	`

	rows, err := exec.Query(query, account.AccountID)
	if err != nil {
		p.logger.Error("Failed to load ledger entries", "account_id", account.AccountID, "error", err)
		return errors.NewAppError(errors.InternalError, "failed to load ledger entries").WithDetails(err.Error())
	}
	defer rows.Close()

	for rows.Next() {
		var (
			kind      string
			tx        domain.Transaction
			amountStr string
		)
		if err := rows.Scan(&kind, &tx.ReferenceID, &amountStr, &tx.TransactionDate, &tx.Reference); err != nil {
			return errors.NewAppError(errors.InternalError, "failed to scan ledger entry").WithDetails(err.Error())
		}

		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return errors.NewAppError(errors.InternalError, "failed to parse amount").WithDetails(err.Error())
		}
		tx.Amount = amount

		switch kind {
		case kindDeposit:
			account.Deposits.Add(tx)
		case kindWithdrawal:
			account.Withdrawals.Add(tx)
		}
	}
	return rows.Err()
}

// AddOrUpdateAccount replaces the stored account wholesale: upsert the
// accounts row, drop its entries, and re-insert the aggregate's ledgers.
// Last writer wins, matching the in-memory store.
func (p *Postgres) AddOrUpdateAccount(account *domain.Account) error {
	tx, err := p.db.Begin()
	if err != nil {
		return errors.NewAppError(errors.InternalError, "failed to begin transaction").WithDetails(err.Error())
	}
	defer tx.Rollback()

	now := time.Now()
	_, err = tx.Exec(`
		INSERT INTO accounts (id, created_at, updated_at) VALUES ($1, $2, $2)
		ON CONFLICT (id) DO UPDATE SET updated_at = $2
	`, account.AccountID, now)
	if err != nil {
		p.logger.Error("Failed to upsert account", "account_id", account.AccountID, "error", err)
		return errors.NewAppError(errors.InternalError, "failed to upsert account").WithDetails(err.Error())
	}

	if _, err := tx.Exec(`DELETE FROM ledger_entries WHERE account_id = $1`, account.AccountID); err != nil {
		return errors.NewAppError(errors.InternalError, "failed to clear ledger entries").WithDetails(err.Error())
	}

	if err := p.insertEntries(tx, account.AccountID, kindDeposit, account.Deposits.All()); err != nil {
		return err
	}
	if err := p.insertEntries(tx, account.AccountID, kindWithdrawal, account.Withdrawals.All()); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.NewAppError(errors.InternalError, "failed to commit account update").WithDetails(err.Error())
	}

	p.logger.Info("Account saved", "account_id", account.AccountID,
		"deposits", account.Deposits.Len(), "withdrawals", account.Withdrawals.Len())
	return nil
}

func (p *Postgres) insertEntries(exec sqlExecutor, accountID uuid.UUID, kind string, entries []domain.Transaction) error {
	query := `
		INSERT INTO ledger_entries (account_id, kind, reference_id, amount, transaction_date, reference)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	for _, entry := range entries {
		_, err := exec.Exec(query, accountID, kind, entry.ReferenceID,
			entry.Amount.String(), entry.TransactionDate, entry.Reference)
		if err != nil {
			p.logger.Error("Failed to insert ledger entry",
				"account_id", accountID, "kind", kind, "reference_id", entry.ReferenceID, "error", err)
			return errors.NewAppError(errors.InternalError, "failed to insert ledger entry").WithDetails(err.Error())
		}
	}
	return nil
}

func (p *Postgres) Ping() error {
	return p.db.Ping()
}

func (p *Postgres) Close() error {
	return p.db.Close()
}
