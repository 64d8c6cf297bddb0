package integration

import (
	"context"
	"sort"
	"sync"

	"vending-machine/internal/core/domain"
	"vending-machine/internal/core/ports"
)

// inMemorySaleRepo stands in for the Postgres ledger.
type inMemorySaleRepo struct {
	mu    sync.RWMutex
	sales []domain.Sale
}

var _ ports.SaleRepository = (*inMemorySaleRepo)(nil)

func newInMemorySaleRepo() *inMemorySaleRepo {
	return &inMemorySaleRepo{}
}

func (r *inMemorySaleRepo) Create(ctx context.Context, s *domain.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sales = append(r.sales, *s)
	return nil
}

// ListRecent returns the newest sales first, matching ORDER BY created_at DESC.
func (r *inMemorySaleRepo) ListRecent(ctx context.Context, limit int) ([]domain.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Sale, len(r.sales))
	copy(out, r.sales)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
