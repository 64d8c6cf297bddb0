package service

import (
	"context"
	"time"

	"vending-machine/internal/core/domain"
	"vending-machine/internal/core/ports"

	"github.com/rs/zerolog"
)

type saleRecorder struct {
	repo ports.SaleRepository
	log  zerolog.Logger
	now  func() time.Time
}

// NewSaleRecorder creates a sale recorder.
// If repo is nil, sales are only written to the logger.
func NewSaleRecorder(repo ports.SaleRepository, log zerolog.Logger) ports.SaleRecorder {
	return &saleRecorder{repo: repo, log: log, now: time.Now}
}

// Record logs the sale for a resolved transaction and persists it.
// Persistence failures are logged and never reach the customer.
func (s *saleRecorder) Record(ctx context.Context, tx *domain.Transaction) {
	sale := domain.NewSale(tx, s.now().UTC())

	s.log.Info().
		Str("sale_id", sale.ID.String()).
		Str("transaction_id", sale.TransactionID.String()).
		Str("item", sale.ItemName).
		Str("status", string(sale.Status)).
		Str("price", sale.Price.String()).
		Str("paid", sale.Paid.String()).
		Str("change", sale.Change.String()).
		Str("refund", sale.Refund.String()).
		Msg("sale recorded")

	if s.repo == nil {
		return
	}
	if err := s.repo.Create(ctx, sale); err != nil {
		s.log.Warn().Err(err).Str("sale_id", sale.ID.String()).Msg("failed to persist sale")
	}
}
