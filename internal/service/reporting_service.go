package service

import (
	"context"

	"vending-machine/internal/core/domain"
	"vending-machine/internal/core/ports"
	"vending-machine/pkg/apperror"
)

// ReportingService reads the sale ledger.
type ReportingService struct {
	repo ports.SaleRepository
}

// NewReportingService creates a new reporting service.
func NewReportingService(repo ports.SaleRepository) *ReportingService {
	return &ReportingService{repo: repo}
}

// RecentSales returns the newest sales with totals over them.
func (s *ReportingService) RecentSales(ctx context.Context, limit int) ([]domain.Sale, domain.SalesSummary, error) {
	if limit < 0 {
		return nil, domain.SalesSummary{}, apperror.ErrInvalidQuantity(limit)
	}
	sales, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, domain.SalesSummary{}, apperror.InternalError(err)
	}
	return sales, domain.Summarize(sales), nil
}

// StockSummary totals an inventory.
type StockSummary struct {
	Items   int          `json:"items"`
	Units   int          `json:"units"`
	SoldOut int          `json:"sold_out"`
	Value   domain.Money `json:"value"`
}

// SummarizeStock totals the units and value held in inv.
func SummarizeStock(inv *domain.Inventory) StockSummary {
	items := inv.Items()
	sum := StockSummary{Items: len(items)}
	for _, item := range items {
		sum.Units += item.Quantity
		sum.Value += item.StockValue()
		if !item.InStock() {
			sum.SoldOut++
		}
	}
	return sum
}
