package domain

import (
	"time"

	"github.com/google/uuid"
)

// TransactionStatus represents the lifecycle state of a purchase attempt.
type TransactionStatus string

const (
	TransactionStatusSelecting         TransactionStatus = "SELECTING"
	TransactionStatusCollecting        TransactionStatus = "COLLECTING"
	TransactionStatusFulfilled         TransactionStatus = "FULFILLED"
	TransactionStatusCancelled         TransactionStatus = "CANCELLED"
	TransactionStatusInsufficientStock TransactionStatus = "INSUFFICIENT_STOCK"
)

// Transaction is the transient state of one purchase attempt, from selection
// to resolution.
type Transaction struct {
	ID         uuid.UUID         `json:"id"`
	ItemName   string            `json:"item_name,omitempty"`
	Price      Money             `json:"price"`
	Balance    Money             `json:"balance"` // Coins accepted so far
	Change     Money             `json:"change"`  // Set on FULFILLED
	Refund     Money             `json:"refund"`  // Balance handed back when not fulfilled
	Coins      []Denomination    `json:"coins,omitempty"`
	Status     TransactionStatus `json:"status"`
	StartedAt  time.Time         `json:"started_at"`
	ResolvedAt *time.Time        `json:"resolved_at,omitempty"`
}

// NewTransaction starts a purchase attempt in SELECTING.
func NewTransaction(now time.Time) *Transaction {
	return &Transaction{
		ID:        uuid.New(),
		Status:    TransactionStatusSelecting,
		StartedAt: now,
	}
}

// IsTerminal returns true if the transaction is in a final state.
func (t *Transaction) IsTerminal() bool {
	return t.Status == TransactionStatusFulfilled ||
		t.Status == TransactionStatusCancelled ||
		t.Status == TransactionStatusInsufficientStock
}

// Covered returns true once the balance meets the price.
func (t *Transaction) Covered() bool {
	return t.Balance >= t.Price
}

// Outstanding is how much is still owed, never negative.
func (t *Transaction) Outstanding() Money {
	if t.Covered() {
		return 0
	}
	return t.Price - t.Balance
}

// Clone returns a copy that shares nothing mutable with t.
func (t *Transaction) Clone() *Transaction {
	c := *t
	if t.Coins != nil {
		c.Coins = make([]Denomination, len(t.Coins))
		copy(c.Coins, t.Coins)
	}
	if t.ResolvedAt != nil {
		at := *t.ResolvedAt
		c.ResolvedAt = &at
	}
	return &c
}
