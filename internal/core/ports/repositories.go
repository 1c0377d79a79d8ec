package ports

//go:generate mockgen -source=repositories.go -destination=mocks/repositories.go -package=mocks

import (
	"context"
	"time"

	"webhook-gateway/internal/core/domain"

	"github.com/google/uuid"
)

// EndpointRepository defines persistence operations for webhook endpoints.
// Lookups return (nil, nil) when the row does not exist.
type EndpointRepository interface {
	Create(ctx context.Context, endpoint *domain.Endpoint) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Endpoint, error)
	// Update persists name, url and events only; it never touches the
	// health or secret columns.
	Update(ctx context.Context, endpoint *domain.Endpoint) error
	// SetActive sets is_active; enabling also resets failure_count to zero.
	// It returns the updated row, or nil when the endpoint does not exist.
	SetActive(ctx context.Context, id uuid.UUID, active bool, at time.Time) (*domain.Endpoint, error)
	// UpdateSecret replaces the encrypted signing key.
	UpdateSecret(ctx context.Context, id uuid.UUID, secretHashEnc string, at time.Time) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context, params EndpointListParams) ([]domain.Endpoint, int64, error)
	ListActiveForEvent(ctx context.Context, eventType string) ([]domain.Endpoint, error)
	// RecordSuccess sets last_success_at and resets failure_count to zero.
	RecordSuccess(ctx context.Context, id uuid.UUID, at time.Time) error
	// RecordFailure increments failure_count, sets last_failure_at and deactivates
	// the endpoint once the count reaches threshold, in one atomic statement.
	RecordFailure(ctx context.Context, id uuid.UUID, at time.Time, threshold int) (*domain.EndpointHealth, error)
	Counts(ctx context.Context) (*EndpointCounts, error)
}

// EndpointListParams holds filter + pagination for listing endpoints.
// A zero PageSize returns every match.
type EndpointListParams struct {
	OwnerID   string
	Active    *bool
	EventType string
	Page      int
	PageSize  int
}

// EndpointCounts holds aggregated endpoint health.
type EndpointCounts struct {
	Total        int64
	Active       int64
	WithFailures int64
}

// DeliveryRepository defines persistence operations for deliveries.
type DeliveryRepository interface {
	Create(ctx context.Context, delivery *domain.Delivery) error
	// CreateBatch inserts all deliveries in a single database transaction.
	CreateBatch(ctx context.Context, deliveries []*domain.Delivery) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Delivery, error)
	// Update persists the mutable delivery state.
	Update(ctx context.Context, delivery *domain.Delivery) error
	// MarkSending claims a due PENDING delivery with attempts left and
	// increments attempts. It returns the claimed row, or nil when the
	// delivery was claimed elsewhere, is not due yet or has no attempts left.
	MarkSending(ctx context.Context, id uuid.UUID, at time.Time) (*domain.Delivery, error)
	// ReleaseStale puts SENDING deliveries last updated before cutoff back to
	// PENDING, or to FAILED when they have no attempts left.
	ReleaseStale(ctx context.Context, cutoff, at time.Time) (int64, error)
	// Cancel moves a PENDING delivery to FAILED. Returns false for any other status.
	Cancel(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
	// ListDue returns PENDING deliveries with no retry time or a retry time <= now, oldest first.
	ListDue(ctx context.Context, now time.Time, limit int) ([]domain.Delivery, error)
	// ListRetryable returns PENDING deliveries whose retry time is <= now and
	// whose attempts are below their own max_attempts.
	ListRetryable(ctx context.Context, now time.Time, limit int) ([]domain.Delivery, error)
	List(ctx context.Context, params DeliveryListParams) ([]domain.Delivery, int64, error)
	CountByEndpoints(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int64, error)
	// DeleteOlderThan removes DELIVERED and FAILED deliveries created before cutoff.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	GetStats(ctx context.Context) (*DeliveryStats, error)
}

// DeliveryListParams holds filter + pagination for listing deliveries.
type DeliveryListParams struct {
	Status     *domain.DeliveryStatus
	EventType  string
	EndpointID *uuid.UUID
	OwnerID    string
	From       *time.Time
	To         *time.Time
	Page       int
	PageSize   int
}

// DeliveryStats holds aggregated delivery counts.
type DeliveryStats struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Sending   int64 `json:"sending"`
	Delivered int64 `json:"delivered"`
	Failed    int64 `json:"failed"`
}

// AuditRepository persists audit log entries.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
}
