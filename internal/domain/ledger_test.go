package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLedger_AddIsInsertIfAbsent(t *testing.T) {
	ledger := NewLedger()

	tx := newTransaction(10)
	ledger.Add(tx)

	dup := tx
	dup.Amount = decimal.NewFromInt(50)
	ledger.Add(dup)

	assert.Equal(t, 1, ledger.Len())
	assert.True(t, decimal.NewFromInt(10).Equal(ledger.Sum()), "first insert wins")
	assert.True(t, ledger.Exists(tx.ReferenceID))
}

func TestLedger_SumEmpty(t *testing.T) {
	assert.True(t, NewLedger().Sum().IsZero())
}

func TestLedger_AllPreservesInsertionOrder(t *testing.T) {
	first := newTransaction(1)
	second := newTransaction(2)
	third := newTransaction(3)

	ledger := NewLedger(first, second, third)

	all := ledger.All()
	assert.Equal(t, []Transaction{first, second, third}, all)
}
