package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"webhook-gateway/internal/core/domain"
	"webhook-gateway/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const deliveryColumns = `id, endpoint_id, event_type, payload, status, attempts, max_attempts,
		response_status, response_body, error_message, next_retry_at, created_at, updated_at, delivered_at`

const insertDelivery = `INSERT INTO webhook_deliveries (` + deliveryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

// DeliveryRepo implements ports.DeliveryRepository.
type DeliveryRepo struct {
	pool Pool
}

// NewDeliveryRepo creates a new DeliveryRepo.
func NewDeliveryRepo(pool Pool) *DeliveryRepo {
	return &DeliveryRepo{pool: pool}
}

func deliveryArgs(d *domain.Delivery) []any {
	return []any{
		d.ID, d.EndpointID, d.EventType, []byte(d.Payload), string(d.Status), d.Attempts, d.MaxAttempts,
		d.ResponseStatus, d.ResponseBody, d.ErrorMessage, d.NextRetryAt, d.CreatedAt, d.UpdatedAt, d.DeliveredAt,
	}
}

// Create inserts a single delivery.
func (r *DeliveryRepo) Create(ctx context.Context, d *domain.Delivery) error {
	if _, err := r.pool.Exec(ctx, insertDelivery, deliveryArgs(d)...); err != nil {
		return fmt.Errorf("insert delivery: %w", err)
	}
	return nil
}

// CreateBatch inserts every delivery of one dispatch atomically.
func (r *DeliveryRepo) CreateBatch(ctx context.Context, deliveries []*domain.Delivery) (err error) {
	if len(deliveries) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin delivery batch: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	for _, d := range deliveries {
		if _, err = tx.Exec(ctx, insertDelivery, deliveryArgs(d)...); err != nil {
			return fmt.Errorf("insert delivery %s: %w", d.ID, err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit delivery batch: %w", err)
	}
	return nil
}

// GetByID fetches a delivery by UUID.
func (r *DeliveryRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Delivery, error) {
	query := `SELECT ` + deliveryColumns + ` FROM webhook_deliveries WHERE id = $1`
	return r.scanDelivery(r.pool.QueryRow(ctx, query, id))
}

// Update persists status, attempts, response and scheduling fields.
func (r *DeliveryRepo) Update(ctx context.Context, d *domain.Delivery) error {
	query := `UPDATE webhook_deliveries
		SET status = $1, attempts = $2, response_status = $3, response_body = $4, error_message = $5,
			next_retry_at = $6, delivered_at = $7, updated_at = $8
		WHERE id = $9`

	tag, err := r.pool.Exec(ctx, query,
		string(d.Status), d.Attempts, d.ResponseStatus, d.ResponseBody, d.ErrorMessage,
		d.NextRetryAt, d.DeliveredAt, d.UpdatedAt, d.ID,
	)
	if err != nil {
		return fmt.Errorf("update delivery: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delivery not found: %s", d.ID)
	}
	return nil
}

// MarkSending claims a due PENDING delivery and returns the claimed row.
// Only one concurrent caller gets a row; a stale listing that reaches a row
// already rescheduled into the future gets nil.
func (r *DeliveryRepo) MarkSending(ctx context.Context, id uuid.UUID, at time.Time) (*domain.Delivery, error) {
	query := `UPDATE webhook_deliveries
		SET status = 'SENDING', attempts = attempts + 1, updated_at = $1
		WHERE id = $2 AND status = 'PENDING' AND attempts < max_attempts
			AND (next_retry_at IS NULL OR next_retry_at <= $1)
		RETURNING ` + deliveryColumns

	d, err := r.scanDelivery(r.pool.QueryRow(ctx, query, at, id))
	if err != nil {
		return nil, fmt.Errorf("claim delivery: %w", err)
	}
	return d, nil
}

// ReleaseStale recovers deliveries left in SENDING by a process that died
// mid-attempt. The attempt already counted, so rows without attempts left fail.
func (r *DeliveryRepo) ReleaseStale(ctx context.Context, cutoff, at time.Time) (int64, error) {
	query := `UPDATE webhook_deliveries
		SET status = CASE WHEN attempts < max_attempts THEN 'PENDING' ELSE 'FAILED' END,
			next_retry_at = NULL, error_message = $1, updated_at = $2
		WHERE status = 'SENDING' AND updated_at < $3`

	tag, err := r.pool.Exec(ctx, query, domain.InterruptedMessage, at, cutoff)
	if err != nil {
		return 0, fmt.Errorf("release stale deliveries: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Cancel fails a PENDING delivery without sending it.
func (r *DeliveryRepo) Cancel(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	query := `UPDATE webhook_deliveries
		SET status = 'FAILED', error_message = $1, next_retry_at = NULL, updated_at = $2
		WHERE id = $3 AND status = 'PENDING'`

	tag, err := r.pool.Exec(ctx, query, domain.CancelledMessage, at, id)
	if err != nil {
		return false, fmt.Errorf("cancel delivery: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// activeEndpointFilter keeps deliveries of disabled endpoints from filling every batch.
const activeEndpointFilter = `endpoint_id IN (SELECT id FROM webhook_endpoints WHERE is_active = TRUE)`

// ListDue returns PENDING deliveries ready to send, oldest first.
func (r *DeliveryRepo) ListDue(ctx context.Context, now time.Time, limit int) ([]domain.Delivery, error) {
	query := `SELECT ` + deliveryColumns + ` FROM webhook_deliveries
		WHERE status = 'PENDING' AND (next_retry_at IS NULL OR next_retry_at <= $1)
			AND ` + activeEndpointFilter + `
		ORDER BY created_at LIMIT $2`
	return r.queryDeliveries(ctx, query, now, limit)
}

// ListRetryable returns scheduled retries that are due and still have attempts left.
func (r *DeliveryRepo) ListRetryable(ctx context.Context, now time.Time, limit int) ([]domain.Delivery, error) {
	query := `SELECT ` + deliveryColumns + ` FROM webhook_deliveries
		WHERE status = 'PENDING' AND next_retry_at IS NOT NULL AND next_retry_at <= $1
			AND attempts < max_attempts AND ` + activeEndpointFilter + `
		ORDER BY next_retry_at LIMIT $2`
	return r.queryDeliveries(ctx, query, now, limit)
}

// List fetches deliveries with filtering and pagination.
func (r *DeliveryRepo) List(ctx context.Context, params ports.DeliveryListParams) ([]domain.Delivery, int64, error) {
	var conditions []string
	var args []any
	argIdx := 1

	if params.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, string(*params.Status))
		argIdx++
	}
	if params.EventType != "" {
		conditions = append(conditions, fmt.Sprintf("event_type = $%d", argIdx))
		args = append(args, params.EventType)
		argIdx++
	}
	if params.EndpointID != nil {
		conditions = append(conditions, fmt.Sprintf("endpoint_id = $%d", argIdx))
		args = append(args, *params.EndpointID)
		argIdx++
	}
	if params.OwnerID != "" {
		conditions = append(conditions, fmt.Sprintf("endpoint_id IN (SELECT id FROM webhook_endpoints WHERE owner_id = $%d)", argIdx))
		args = append(args, params.OwnerID)
		argIdx++
	}
	if params.From != nil {
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", argIdx))
		args = append(args, *params.From)
		argIdx++
	}
	if params.To != nil {
		conditions = append(conditions, fmt.Sprintf("created_at <= $%d", argIdx))
		args = append(args, *params.To)
		argIdx++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := r.pool.QueryRow(ctx, fmt.Sprintf("SELECT COUNT(*) FROM webhook_deliveries %s", where), args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count deliveries: %w", err)
	}

	dataQuery := fmt.Sprintf(`SELECT %s FROM webhook_deliveries %s ORDER BY created_at DESC`, deliveryColumns, where)
	if params.PageSize > 0 {
		page := params.Page
		if page < 1 {
			page = 1
		}
		dataQuery += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
		args = append(args, params.PageSize, (page-1)*params.PageSize)
	}

	deliveries, err := r.queryDeliveries(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	return deliveries, total, nil
}

// CountByEndpoints returns the number of deliveries per endpoint.
// Endpoints without deliveries are absent from the map.
func (r *DeliveryRepo) CountByEndpoints(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}

	rows, err := r.pool.Query(ctx,
		`SELECT endpoint_id, COUNT(*) FROM webhook_deliveries WHERE endpoint_id = ANY($1) GROUP BY endpoint_id`, ids)
	if err != nil {
		return nil, fmt.Errorf("count deliveries by endpoint: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var n int64
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("scan delivery count: %w", err)
		}
		counts[id] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate delivery counts: %w", err)
	}
	return counts, nil
}

// DeleteOlderThan purges terminal deliveries created before cutoff.
func (r *DeliveryRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM webhook_deliveries WHERE status IN ('DELIVERED', 'FAILED') AND created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge deliveries: %w", err)
	}
	return tag.RowsAffected(), nil
}

// GetStats counts deliveries by status.
func (r *DeliveryRepo) GetStats(ctx context.Context) (*ports.DeliveryStats, error) {
	query := `SELECT
		COUNT(*) AS total,
		COUNT(*) FILTER (WHERE status = 'PENDING') AS pending,
		COUNT(*) FILTER (WHERE status = 'SENDING') AS sending,
		COUNT(*) FILTER (WHERE status = 'DELIVERED') AS delivered,
		COUNT(*) FILTER (WHERE status = 'FAILED') AS failed
		FROM webhook_deliveries`

	s := &ports.DeliveryStats{}
	if err := r.pool.QueryRow(ctx, query).Scan(&s.Total, &s.Pending, &s.Sending, &s.Delivered, &s.Failed); err != nil {
		return nil, fmt.Errorf("get delivery stats: %w", err)
	}
	return s, nil
}

func (r *DeliveryRepo) queryDeliveries(ctx context.Context, query string, args ...any) ([]domain.Delivery, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	defer rows.Close()

	var deliveries []domain.Delivery
	for rows.Next() {
		d, err := r.scanDelivery(rows)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate delivery rows: %w", err)
	}
	return deliveries, nil
}

// scanDelivery scans a single row into a Delivery.
func (r *DeliveryRepo) scanDelivery(row pgx.Row) (*domain.Delivery, error) {
	d := &domain.Delivery{}
	var payload []byte
	var status string
	err := row.Scan(
		&d.ID, &d.EndpointID, &d.EventType, &payload, &status, &d.Attempts, &d.MaxAttempts,
		&d.ResponseStatus, &d.ResponseBody, &d.ErrorMessage, &d.NextRetryAt, &d.CreatedAt, &d.UpdatedAt, &d.DeliveredAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan delivery: %w", err)
	}
	d.Payload = json.RawMessage(payload)
	d.Status = domain.DeliveryStatus(status)
	return d, nil
}
