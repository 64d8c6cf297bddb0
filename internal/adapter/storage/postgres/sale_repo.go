package postgres

import (
	"context"
	"fmt"

	"vending-machine/internal/core/domain"
)

// DefaultListLimit caps ListRecent when no positive limit is given.
const DefaultListLimit = 20

const schemaSQL = `CREATE TABLE IF NOT EXISTS sales (
	id             UUID PRIMARY KEY,
	transaction_id UUID        NOT NULL,
	item_name      TEXT        NOT NULL DEFAULT '',
	price_pence    BIGINT      NOT NULL,
	paid_pence     BIGINT      NOT NULL,
	change_pence   BIGINT      NOT NULL,
	refund_pence   BIGINT      NOT NULL,
	status         TEXT        NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sales_created_at ON sales (created_at DESC)`

// SaleRepo implements ports.SaleRepository.
type SaleRepo struct {
	pool Pool
}

// NewSaleRepo creates a new SaleRepo.
func NewSaleRepo(pool Pool) *SaleRepo {
	return &SaleRepo{pool: pool}
}

// EnsureSchema creates the sales table if it does not exist.
func (r *SaleRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure sales schema: %w", err)
	}
	return nil
}

// Create inserts a sale record.
func (r *SaleRepo) Create(ctx context.Context, s *domain.Sale) error {
	query := `INSERT INTO sales (id, transaction_id, item_name, price_pence, paid_pence,
		change_pence, refund_pence, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.pool.Exec(ctx, query,
		s.ID, s.TransactionID, s.ItemName,
		int64(s.Price), int64(s.Paid), int64(s.Change), int64(s.Refund),
		string(s.Status), s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// ListRecent fetches the newest sales first.
func (r *SaleRepo) ListRecent(ctx context.Context, limit int) ([]domain.Sale, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	query := `SELECT id, transaction_id, item_name, price_pence, paid_pence,
		change_pence, refund_pence, status, created_at
		FROM sales ORDER BY created_at DESC LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var sales []domain.Sale
	for rows.Next() {
		var (
			s                           domain.Sale
			price, paid, change, refund int64
			status                      string
		)
		err := rows.Scan(
			&s.ID, &s.TransactionID, &s.ItemName,
			&price, &paid, &change, &refund,
			&status, &s.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan sale row: %w", err)
		}
		s.Price = domain.Money(price)
		s.Paid = domain.Money(paid)
		s.Change = domain.Money(change)
		s.Refund = domain.Money(refund)
		s.Status = domain.TransactionStatus(status)
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sale rows: %w", err)
	}
	return sales, nil
}
