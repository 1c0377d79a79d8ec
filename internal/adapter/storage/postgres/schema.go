package postgres

import (
	"context"
	"fmt"
)

// schemaStatements create the tables this service owns. Each is idempotent.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS webhook_endpoints (
		id              UUID PRIMARY KEY,
		owner_id        TEXT NOT NULL,
		name            TEXT NOT NULL,
		url             TEXT NOT NULL,
		secret_hash_enc TEXT NOT NULL,
		events          TEXT[] NOT NULL DEFAULT '{}',
		is_active       BOOLEAN NOT NULL DEFAULT TRUE,
		failure_count   INTEGER NOT NULL DEFAULT 0,
		last_success_at TIMESTAMPTZ,
		last_failure_at TIMESTAMPTZ,
		created_at      TIMESTAMPTZ NOT NULL,
		updated_at      TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_webhook_endpoints_owner ON webhook_endpoints (owner_id)`,
	`CREATE INDEX IF NOT EXISTS idx_webhook_endpoints_events ON webhook_endpoints USING GIN (events)`,
	`CREATE TABLE IF NOT EXISTS webhook_deliveries (
		id              UUID PRIMARY KEY,
		endpoint_id     UUID NOT NULL REFERENCES webhook_endpoints (id) ON DELETE CASCADE,
		event_type      TEXT NOT NULL,
		payload         JSONB NOT NULL,
		status          TEXT NOT NULL,
		attempts        INTEGER NOT NULL DEFAULT 0,
		max_attempts    INTEGER NOT NULL,
		response_status INTEGER,
		response_body   TEXT,
		error_message   TEXT,
		next_retry_at   TIMESTAMPTZ,
		created_at      TIMESTAMPTZ NOT NULL,
		updated_at      TIMESTAMPTZ NOT NULL,
		delivered_at    TIMESTAMPTZ,
		CONSTRAINT chk_attempts CHECK (attempts <= max_attempts)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_webhook_deliveries_due ON webhook_deliveries (status, next_retry_at)`,
	`CREATE INDEX IF NOT EXISTS idx_webhook_deliveries_endpoint ON webhook_deliveries (endpoint_id, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS audit_logs (
		id            UUID PRIMARY KEY,
		actor         TEXT NOT NULL,
		action        TEXT NOT NULL,
		resource_type TEXT NOT NULL,
		resource_id   TEXT,
		details       JSONB,
		ip_address    TEXT,
		created_at    TIMESTAMPTZ NOT NULL
	)`,
}

// EnsureSchema applies the table definitions.
func EnsureSchema(ctx context.Context, pool Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
