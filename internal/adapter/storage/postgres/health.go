package postgres

import (
	"context"
	"errors"
	"fmt"
)

const ledgerExistsSQL = `SELECT to_regclass('sales') IS NOT NULL`

var errLedgerMissing = errors.New("sales table does not exist")

// HealthCheck implements ports.HealthChecker for the sale ledger. It fails
// when the database is unreachable or EnsureSchema has not run against it.
type HealthCheck struct {
	pool Pool
}

// NewHealthCheck creates a sale ledger health checker.
func NewHealthCheck(pool Pool) *HealthCheck {
	return &HealthCheck{pool: pool}
}

// Ping checks connectivity and the presence of the sales table.
func (h *HealthCheck) Ping(ctx context.Context) error {
	var exists bool
	if err := h.pool.QueryRow(ctx, ledgerExistsSQL).Scan(&exists); err != nil {
		return fmt.Errorf("querying sale ledger: %w", err)
	}
	if !exists {
		return errLedgerMissing
	}
	return nil
}

// Name returns the dependency name.
func (h *HealthCheck) Name() string {
	return "sale_ledger"
}
