package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is a single deposit or withdrawal entry. The reference id is
// supplied by the caller and dedupes the transaction within its ledger.
type Transaction struct {
	ReferenceID     uuid.UUID       `json:"reference_id"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionDate time.Time       `json:"transaction_date"`
	Reference       string          `json:"reference"`
}

// Ledger is an append-only collection of transactions of one kind, keyed by
// reference id. Insertion order is preserved for history display.
type Ledger struct {
	byRef map[uuid.UUID]Transaction
	order []uuid.UUID
}

func NewLedger(transactions ...Transaction) *Ledger {
	l := &Ledger{byRef: make(map[uuid.UUID]Transaction)}
	for _, tx := range transactions {
		l.Add(tx)
	}
	return l
}

func (l *Ledger) Exists(referenceID uuid.UUID) bool {
	_, ok := l.byRef[referenceID]
	return ok
}

// Add inserts the transaction if its reference id is absent. A duplicate
// reference id is a no-op.
func (l *Ledger) Add(tx Transaction) {
	if l.Exists(tx.ReferenceID) {
		return
	}
	l.byRef[tx.ReferenceID] = tx
	l.order = append(l.order, tx.ReferenceID)
}

// All returns the transactions in insertion order.
func (l *Ledger) All() []Transaction {
	out := make([]Transaction, 0, len(l.order))
	for _, ref := range l.order {
		out = append(out, l.byRef[ref])
	}
	return out
}

func (l *Ledger) Len() int {
	return len(l.byRef)
}

// Sum returns the total of all amounts, zero for an empty ledger.
func (l *Ledger) Sum() decimal.Decimal {
	total := decimal.Zero
	for _, tx := range l.byRef {
		total = total.Add(tx.Amount)
	}
	return total
}

func (l *Ledger) clone() *Ledger {
	c := &Ledger{
		byRef: make(map[uuid.UUID]Transaction, len(l.byRef)),
		order: make([]uuid.UUID, len(l.order)),
	}
	for ref, tx := range l.byRef {
		c.byRef[ref] = tx
	}
	copy(c.order, l.order)
	return c
}
