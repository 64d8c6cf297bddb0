package ports

//go:generate mockgen -source=repositories.go -destination=mocks/mock_repositories.go -package=mocks

import (
	"context"
	"time"

	"vending-machine/internal/core/domain"
)

// InventoryReader is the read side of the inventory, used by the status server.
type InventoryReader interface {
	Get(name string) (domain.Item, error)
	Snapshot() *domain.Inventory
	Path() string
}

// InventoryStore is the single source of truth for stock and pricing.
// Get and DecrementStock work on the in-memory copy; Load and Save touch the
// backing file. Save adopts inv as the in-memory copy only once it is on disk.
type InventoryStore interface {
	InventoryReader
	Load(ctx context.Context) (*domain.Inventory, error)
	DecrementStock(name string) (domain.Item, error)
	Save(ctx context.Context, inv *domain.Inventory) error
}

// SaleRepository defines persistence operations for the sale ledger.
type SaleRepository interface {
	Create(ctx context.Context, sale *domain.Sale) error
	ListRecent(ctx context.Context, limit int) ([]domain.Sale, error)
}

// SessionLock guards a machine against two interactive sessions at once.
type SessionLock interface {
	// Acquire takes the lock for owner. Returns false if someone else holds it.
	Acquire(ctx context.Context, owner string, ttl time.Duration) (bool, error)
	// Release drops the lock if owner still holds it.
	Release(ctx context.Context, owner string) error
}
