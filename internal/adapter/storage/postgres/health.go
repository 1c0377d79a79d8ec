package postgres

import (
	"context"
	"errors"
	"fmt"
)

// HealthCheck implements ports.HealthChecker for PostgreSQL. A reachable
// database without the delivery tables counts as unhealthy.
type HealthCheck struct {
	pool Pool
}

func NewHealthCheck(pool Pool) *HealthCheck {
	return &HealthCheck{pool: pool}
}

const healthQuery = `SELECT to_regclass('webhook_endpoints') IS NOT NULL AND to_regclass('webhook_deliveries') IS NOT NULL`

func (h *HealthCheck) Ping(ctx context.Context) error {
	var ready bool
	if err := h.pool.QueryRow(ctx, healthQuery).Scan(&ready); err != nil {
		return fmt.Errorf("query: %w", err)
	}
	if !ready {
		return errors.New("webhook tables missing")
	}
	return nil
}

func (h *HealthCheck) Name() string {
	return "postgresql"
}
