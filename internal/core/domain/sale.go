package domain

import (
	"time"

	"github.com/google/uuid"
)

// Sale is the ledger record of one resolved transaction, whatever its outcome.
type Sale struct {
	ID            uuid.UUID         `json:"id"`
	TransactionID uuid.UUID         `json:"transaction_id"`
	ItemName      string            `json:"item_name"`
	Price         Money             `json:"price"`
	Paid          Money             `json:"paid"`
	Change        Money             `json:"change"`
	Refund        Money             `json:"refund"`
	Status        TransactionStatus `json:"status"`
	CreatedAt     time.Time         `json:"created_at"`
}

// NewSale builds the record for a resolved transaction.
func NewSale(tx *Transaction, now time.Time) *Sale {
	return &Sale{
		ID:            uuid.New(),
		TransactionID: tx.ID,
		ItemName:      tx.ItemName,
		Price:         tx.Price,
		Paid:          tx.Balance,
		Change:        tx.Change,
		Refund:        tx.Refund,
		Status:        tx.Status,
		CreatedAt:     now,
	}
}

// Revenue is what the machine kept: the price on a fulfilled sale, zero otherwise.
func (s *Sale) Revenue() Money {
	if s.Status != TransactionStatusFulfilled {
		return 0
	}
	return s.Price
}

// SalesSummary totals a set of sales by outcome.
type SalesSummary struct {
	Count             int   `json:"count"`
	Fulfilled         int   `json:"fulfilled"`
	Cancelled         int   `json:"cancelled"`
	InsufficientStock int   `json:"insufficient_stock"`
	Revenue           Money `json:"revenue"`
	Refunded          Money `json:"refunded"`
}

// Summarize totals sales.
func Summarize(sales []Sale) SalesSummary {
	var sum SalesSummary
	for i := range sales {
		s := &sales[i]
		sum.Count++
		switch s.Status {
		case TransactionStatusFulfilled:
			sum.Fulfilled++
		case TransactionStatusCancelled:
			sum.Cancelled++
		case TransactionStatusInsufficientStock:
			sum.InsufficientStock++
		}
		sum.Revenue += s.Revenue()
		sum.Refunded += s.Refund
	}
	return sum
}
