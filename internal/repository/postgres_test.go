package repository

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"simple-ledger/internal/domain"
)

const migrationsDir = "../../migrations"

type PostgresSuite struct {
	suite.Suite
	container testcontainers.Container
	store     *Postgres
	db        *sql.DB
}

func (s *PostgresSuite) SetupSuite() {
	ctx := context.Background()

	containerReq := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "simple_ledger",
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "password",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: containerReq,
		Started:          true,
	})
	if err != nil {
		s.T().Fatalf("Failed to start postgres container: %s", err)
	}
	s.container = container

	host, err := container.Host(ctx)
	if err != nil {
		s.T().Fatalf("Failed to get container host: %s", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		s.T().Fatalf("Failed to get mapped port: %s", err)
	}

	dsn := fmt.Sprintf("host=%s port=%s user=postgres password=password dbname=simple_ledger sslmode=disable",
		host, port.Port())

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		s.T().Fatalf("Failed to connect: %s", err)
	}
	s.db = db

	if err := s.runMigrations(); err != nil {
		s.T().Fatalf("Failed to run migrations: %s", err)
	}

	s.store = NewPostgres(db, discardLogger())
}

func (s *PostgresSuite) runMigrations() error {
	entries, err := os.ReadDir(migrationsDir)
	if err != nil {
		return err
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		content, err := os.ReadFile(filepath.Join(migrationsDir, entry.Name()))
		if err != nil {
			return err
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("migration %s: %w", entry.Name(), err)
		}
	}
	return nil
}

func (s *PostgresSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
	if s.container != nil {
		s.container.Terminate(context.Background())
	}
}

func (s *PostgresSuite) TestMissIsNormalOutcome() {
	account, err := s.store.GetAccount(uuid.New())

	s.NoError(err)
	s.Nil(account)
}

func (s *PostgresSuite) TestRoundTripPreservesLedgers() {
	accountID := uuid.New()
	account := domain.NewAccount(accountID)

	depositRef := uuid.New()
	s.Require().NoError(account.TryAddDeposit(domain.Transaction{
		ReferenceID:     depositRef,
		Amount:          decimal.RequireFromString("10.50"),
		TransactionDate: time.Now().UTC().Truncate(time.Microsecond),
		Reference:       "pay day",
	}))
	s.Require().NoError(account.TryAddWithdrawal(domain.Transaction{
		ReferenceID:     uuid.New(),
		Amount:          decimal.RequireFromString("4.25"),
		TransactionDate: time.Now().UTC().Truncate(time.Microsecond),
		Reference:       "groceries",
	}))

	s.Require().NoError(s.store.AddOrUpdateAccount(account))

	got, err := s.store.GetAccount(accountID)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(1, got.Deposits.Len())
	s.Equal(1, got.Withdrawals.Len())
	s.True(got.Deposits.Exists(depositRef))
	s.True(decimal.RequireFromString("6.25").Equal(got.CurrentBalance()))
	s.Equal("pay day", got.Deposits.All()[0].Reference)
}

func (s *PostgresSuite) TestUpdateReplacesWholesale() {
	accountID := uuid.New()

	first := domain.NewAccount(accountID)
	s.Require().NoError(first.TryAddDeposit(domain.Transaction{
		ReferenceID:     uuid.New(),
		Amount:          decimal.NewFromInt(10),
		TransactionDate: time.Now().UTC(),
	}))
	s.Require().NoError(s.store.AddOrUpdateAccount(first))

	replacement := domain.NewAccount(accountID)
	s.Require().NoError(replacement.TryAddDeposit(domain.Transaction{
		ReferenceID:     uuid.New(),
		Amount:          decimal.NewFromInt(99),
		TransactionDate: time.Now().UTC(),
	}))
	s.Require().NoError(s.store.AddOrUpdateAccount(replacement))

	got, err := s.store.GetAccount(accountID)
	s.Require().NoError(err)
	s.Equal(1, got.Deposits.Len(), "last writer wins, no merge")
	s.True(decimal.NewFromInt(99).Equal(got.CurrentBalance()))
}

func TestPostgresSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres store tests in short mode")
	}
	suite.Run(t, new(PostgresSuite))
}
