package ports

//go:generate mockgen -source=services.go -destination=mocks/mock_services.go -package=mocks

import (
	"context"

	"vending-machine/internal/core/domain"
)

// Purchase is one purchase attempt, driven by a dispatcher.
type Purchase interface {
	SelectItem(ctx context.Context, name string) error
	InsertCoin(ctx context.Context, code int) error
	Cancel(ctx context.Context) error
	Snapshot() *domain.Transaction
}

// VendingService is what a dispatcher needs from the machine.
type VendingService interface {
	Begin() Purchase
	Items() []domain.Item
	Coins() []domain.Denomination
	InventoryPath() string
}

// SaleRecorder writes a record of each resolved transaction.
type SaleRecorder interface {
	Record(ctx context.Context, tx *domain.Transaction)
}
