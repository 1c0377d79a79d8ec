package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"webhook-gateway/internal/core/domain"
	"webhook-gateway/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const endpointColumns = `id, owner_id, name, url, secret_hash_enc, events, is_active, failure_count,
		last_success_at, last_failure_at, created_at, updated_at`

// EndpointRepo implements ports.EndpointRepository.
type EndpointRepo struct {
	pool Pool
}

// NewEndpointRepo creates a new EndpointRepo.
func NewEndpointRepo(pool Pool) *EndpointRepo {
	return &EndpointRepo{pool: pool}
}

// Create inserts a new endpoint.
func (r *EndpointRepo) Create(ctx context.Context, e *domain.Endpoint) error {
	query := `INSERT INTO webhook_endpoints (` + endpointColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.pool.Exec(ctx, query,
		e.ID, e.OwnerID, e.Name, e.URL, e.SecretHashEnc, e.Events, e.IsActive, e.FailureCount,
		e.LastSuccessAt, e.LastFailureAt, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert endpoint: %w", err)
	}
	return nil
}

// GetByID fetches an endpoint by UUID.
func (r *EndpointRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Endpoint, error) {
	query := `SELECT ` + endpointColumns + ` FROM webhook_endpoints WHERE id = $1`
	return r.scanEndpoint(r.pool.QueryRow(ctx, query, id))
}

// Update persists name, url and events.
func (r *EndpointRepo) Update(ctx context.Context, e *domain.Endpoint) error {
	query := `UPDATE webhook_endpoints SET name = $1, url = $2, events = $3, updated_at = $4 WHERE id = $5`

	tag, err := r.pool.Exec(ctx, query, e.Name, e.URL, e.Events, e.UpdatedAt, e.ID)
	if err != nil {
		return fmt.Errorf("update endpoint: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("endpoint not found: %s", e.ID)
	}
	return nil
}

// SetActive enables or disables an endpoint. Enabling clears the failure streak.
func (r *EndpointRepo) SetActive(ctx context.Context, id uuid.UUID, active bool, at time.Time) (*domain.Endpoint, error) {
	query := `UPDATE webhook_endpoints
		SET is_active = $1,
			failure_count = CASE WHEN $1 THEN 0 ELSE failure_count END,
			updated_at = $2
		WHERE id = $3
		RETURNING ` + endpointColumns

	e, err := r.scanEndpoint(r.pool.QueryRow(ctx, query, active, at, id))
	if err != nil {
		return nil, fmt.Errorf("set endpoint active: %w", err)
	}
	return e, nil
}

// UpdateSecret stores a new encrypted signing key.
func (r *EndpointRepo) UpdateSecret(ctx context.Context, id uuid.UUID, secretHashEnc string, at time.Time) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE webhook_endpoints SET secret_hash_enc = $1, updated_at = $2 WHERE id = $3`, secretHashEnc, at, id)
	if err != nil {
		return fmt.Errorf("update endpoint secret: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("endpoint not found: %s", id)
	}
	return nil
}

// Delete removes an endpoint. Its deliveries go with it (ON DELETE CASCADE).
func (r *EndpointRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM webhook_endpoints WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete endpoint: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// List fetches endpoints with filtering and optional pagination.
func (r *EndpointRepo) List(ctx context.Context, params ports.EndpointListParams) ([]domain.Endpoint, int64, error) {
	var conditions []string
	var args []any
	argIdx := 1

	if params.OwnerID != "" {
		conditions = append(conditions, fmt.Sprintf("owner_id = $%d", argIdx))
		args = append(args, params.OwnerID)
		argIdx++
	}
	if params.Active != nil {
		conditions = append(conditions, fmt.Sprintf("is_active = $%d", argIdx))
		args = append(args, *params.Active)
		argIdx++
	}
	if params.EventType != "" {
		conditions = append(conditions, fmt.Sprintf("$%d = ANY(events)", argIdx))
		args = append(args, params.EventType)
		argIdx++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := r.pool.QueryRow(ctx, fmt.Sprintf("SELECT COUNT(*) FROM webhook_endpoints %s", where), args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count endpoints: %w", err)
	}

	dataQuery := fmt.Sprintf(`SELECT %s FROM webhook_endpoints %s ORDER BY created_at DESC`, endpointColumns, where)
	if params.PageSize > 0 {
		page := params.Page
		if page < 1 {
			page = 1
		}
		dataQuery += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
		args = append(args, params.PageSize, (page-1)*params.PageSize)
	}

	endpoints, err := r.queryEndpoints(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	return endpoints, total, nil
}

// ListActiveForEvent returns active endpoints subscribed to eventType.
func (r *EndpointRepo) ListActiveForEvent(ctx context.Context, eventType string) ([]domain.Endpoint, error) {
	query := `SELECT ` + endpointColumns + ` FROM webhook_endpoints
		WHERE is_active = TRUE AND $1 = ANY(events) ORDER BY created_at`
	return r.queryEndpoints(ctx, query, eventType)
}

// RecordSuccess resets the consecutive failure count.
func (r *EndpointRepo) RecordSuccess(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `UPDATE webhook_endpoints SET failure_count = 0, last_success_at = $1, updated_at = $1 WHERE id = $2`
	if _, err := r.pool.Exec(ctx, query, at, id); err != nil {
		return fmt.Errorf("record endpoint success: %w", err)
	}
	return nil
}

// RecordFailure increments the failure count and deactivates at threshold.
// SET expressions see the pre-update row, so the CASE compares the new count.
func (r *EndpointRepo) RecordFailure(ctx context.Context, id uuid.UUID, at time.Time, threshold int) (*domain.EndpointHealth, error) {
	query := `UPDATE webhook_endpoints
		SET failure_count = failure_count + 1,
			last_failure_at = $1,
			is_active = CASE WHEN failure_count + 1 >= $2 THEN FALSE ELSE is_active END,
			updated_at = $1
		WHERE id = $3
		RETURNING failure_count, is_active`

	h := &domain.EndpointHealth{}
	if err := r.pool.QueryRow(ctx, query, at, threshold, id).Scan(&h.FailureCount, &h.IsActive); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("record endpoint failure: %w", err)
	}
	return h, nil
}

// Counts aggregates endpoint health for the admin dashboard.
func (r *EndpointRepo) Counts(ctx context.Context) (*ports.EndpointCounts, error) {
	query := `SELECT
		COUNT(*) AS total,
		COUNT(*) FILTER (WHERE is_active) AS active,
		COUNT(*) FILTER (WHERE failure_count > 0) AS with_failures
		FROM webhook_endpoints`

	c := &ports.EndpointCounts{}
	if err := r.pool.QueryRow(ctx, query).Scan(&c.Total, &c.Active, &c.WithFailures); err != nil {
		return nil, fmt.Errorf("count endpoint health: %w", err)
	}
	return c, nil
}

func (r *EndpointRepo) queryEndpoints(ctx context.Context, query string, args ...any) ([]domain.Endpoint, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list endpoints: %w", err)
	}
	defer rows.Close()

	var endpoints []domain.Endpoint
	for rows.Next() {
		e, err := r.scanEndpoint(rows)
		if err != nil {
			return nil, err
		}
		endpoints = append(endpoints, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate endpoint rows: %w", err)
	}
	return endpoints, nil
}

// scanEndpoint scans a single row into an Endpoint.
func (r *EndpointRepo) scanEndpoint(row pgx.Row) (*domain.Endpoint, error) {
	e := &domain.Endpoint{}
	err := row.Scan(
		&e.ID, &e.OwnerID, &e.Name, &e.URL, &e.SecretHashEnc, &e.Events, &e.IsActive, &e.FailureCount,
		&e.LastSuccessAt, &e.LastFailureAt, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan endpoint: %w", err)
	}
	return e, nil
}
