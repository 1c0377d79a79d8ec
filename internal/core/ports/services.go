package ports

//go:generate mockgen -source=services.go -destination=mocks/services.go -package=mocks

import (
	"context"
	"time"

	"webhook-gateway/internal/core/domain"

	"github.com/google/uuid"
)

// EncryptionService handles AES-256-GCM encryption/decryption.
type EncryptionService interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// SignatureService builds and checks webhook signature headers
// of the form "t=<unix>,v1=<hex hmac>".
type SignatureService interface {
	Sign(body []byte, key string, at time.Time) string
	Verify(body []byte, header string, key string, tolerance time.Duration) error
}

// HashService handles Argon2id hashing of operator credentials.
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// TokenService handles owner bearer tokens.
type TokenService interface {
	Generate(ownerID string, ttl time.Duration) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	OwnerID string
}

// EndpointCache caches active endpoint resolution per event type.
type EndpointCache interface {
	// Get returns ok=false on a miss.
	Get(ctx context.Context, eventType string) (endpoints []domain.Endpoint, ok bool, err error)
	Set(ctx context.Context, eventType string, endpoints []domain.Endpoint, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}

// RateLimitStore implements fixed-window request counting.
type RateLimitStore interface {
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (*RateLimitResult, error)
}

// RateLimitResult holds the outcome of a rate limit check.
type RateLimitResult struct {
	Allowed   bool
	Limit     int64
	Remaining int64
	ResetAt   int64 // Unix timestamp
}

// TaskLock is a cross-instance lease on a named scheduler task.
type TaskLock interface {
	Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, name string) error
}

// --- Service Ports (Business Logic) ---

// EndpointService is the owner-facing endpoint registry.
// Every method scoped by ownerID reports not found for endpoints the owner does not hold.
type EndpointService interface {
	Create(ctx context.Context, req CreateEndpointRequest) (*EndpointWithSecret, error)
	Get(ctx context.Context, id uuid.UUID, ownerID string) (*domain.Endpoint, error)
	List(ctx context.Context, ownerID string) ([]domain.Endpoint, error)
	Update(ctx context.Context, id uuid.UUID, ownerID string, req UpdateEndpointRequest) (*domain.Endpoint, error)
	Delete(ctx context.Context, id uuid.UUID, ownerID string) error
	Enable(ctx context.Context, id uuid.UUID, ownerID string) (*domain.Endpoint, error)
	Disable(ctx context.Context, id uuid.UUID, ownerID string) (*domain.Endpoint, error)
	RotateSecret(ctx context.Context, id uuid.UUID, ownerID string) (*EndpointWithSecret, error)
	ListDeliveries(ctx context.Context, id uuid.UUID, ownerID string, params DeliveryListParams) ([]domain.Delivery, int64, error)
	GetDelivery(ctx context.Context, endpointID, deliveryID uuid.UUID, ownerID string) (*domain.Delivery, error)
}

// CreateEndpointRequest holds input for endpoint registration.
type CreateEndpointRequest struct {
	OwnerID string
	Name    string
	URL     string
	Events  []string
	Secret  string // optional, generated when empty
}

// UpdateEndpointRequest is a partial update; nil fields are left unchanged.
type UpdateEndpointRequest struct {
	Name     *string
	URL      *string
	Events   []string
	IsActive *bool
}

// EndpointWithSecret carries the plaintext secret, shown only at creation and rotation.
type EndpointWithSecret struct {
	Endpoint *domain.Endpoint
	Secret   string
}

// ActorInfo identifies who triggered an audited action.
type ActorInfo struct {
	ID string
	IP string
}

type actorCtxKey struct{}

// ContextWithActor attaches the caller identity used for audit entries.
func ContextWithActor(ctx context.Context, actor ActorInfo) context.Context {
	return context.WithValue(ctx, actorCtxKey{}, actor)
}

// ActorFromContext returns the caller attached by ContextWithActor.
func ActorFromContext(ctx context.Context) (ActorInfo, bool) {
	a, ok := ctx.Value(actorCtxKey{}).(ActorInfo)
	return a, ok
}

// DispatcherService fans events out to subscribed endpoints.
type DispatcherService interface {
	// Dispatch enqueues one delivery per active subscribed endpoint and returns
	// how many were enqueued. It never waits for delivery.
	Dispatch(ctx context.Context, eventType string, payload any, actor string) (int, error)
	// SendTest enqueues and immediately delivers a webhook.test event to an owned endpoint.
	SendTest(ctx context.Context, endpointID uuid.UUID, ownerID string) (*domain.Delivery, error)
}

// DeliveryWorker sends deliveries and applies the retry policy.
type DeliveryWorker interface {
	Deliver(ctx context.Context, delivery *domain.Delivery) (*domain.Delivery, error)
	ProcessBatch(ctx context.Context, deliveries []domain.Delivery) BatchResult
	Retry(ctx context.Context, id uuid.UUID) (*domain.Delivery, error)
	// RetryForOwner retries a delivery of an endpoint held by ownerID.
	RetryForOwner(ctx context.Context, endpointID, deliveryID uuid.UUID, ownerID string) (*domain.Delivery, error)
	Cancel(ctx context.Context, id uuid.UUID) (bool, error)
}

// BatchResult summarises one ProcessBatch call.
type BatchResult struct {
	Processed int
	Delivered int
	Retrying  int
	Failed    int
	Skipped   int
	Errors    int
}

// AdminService is the operator-facing surface.
type AdminService interface {
	ListEndpoints(ctx context.Context, params EndpointListParams) ([]domain.Endpoint, int64, error)
	GetEndpoint(ctx context.Context, id uuid.UUID) (*domain.Endpoint, error)
	SetEndpointActive(ctx context.Context, id uuid.UUID, active bool) (*domain.Endpoint, error)
	DeleteEndpoint(ctx context.Context, id uuid.UUID) error
	ListDeliveries(ctx context.Context, params DeliveryListParams) ([]domain.Delivery, int64, error)
	GetDelivery(ctx context.Context, id uuid.UUID) (*domain.Delivery, error)
	RetryDelivery(ctx context.Context, id uuid.UUID) (*domain.Delivery, error)
	CancelDelivery(ctx context.Context, id uuid.UUID) error
	Purge(ctx context.Context, daysOld int) (int64, error)
	Stats(ctx context.Context) (*WebhookStats, error)
}

// WebhookStats is the operator dashboard summary.
type WebhookStats struct {
	Deliveries            DeliveryStats `json:"deliveries"`
	SuccessRate           float64       `json:"success_rate"`
	TotalEndpoints        int64         `json:"total_endpoints"`
	ActiveEndpoints       int64         `json:"active_endpoints"`
	EndpointsWithFailures int64         `json:"endpoints_with_failures"`
}

// AuditService records audited actions without blocking the caller.
type AuditService interface {
	Log(ctx context.Context, entry AuditEntry)
}

// AuditEntry holds input for one audit record.
type AuditEntry struct {
	Actor        string
	Action       domain.AuditAction
	ResourceType string
	ResourceID   string
	Details      map[string]any
	IPAddress    string
}

// Scheduler runs the periodic queue, retry and purge tasks.
type Scheduler interface {
	Start(ctx context.Context) error
	Stop()
	IsRunning() bool
	Status() SchedulerStatus
	Trigger(ctx context.Context, task string) error
}

// SchedulerStatus reports the scheduler and its tasks.
type SchedulerStatus struct {
	Running bool         `json:"running"`
	Tasks   []TaskStatus `json:"tasks"`
}

// TaskStatus reports one scheduler task.
type TaskStatus struct {
	Name      string     `json:"name"`
	Schedule  string     `json:"schedule"`
	Busy      bool       `json:"busy"`
	Runs      int64      `json:"runs"`
	Skipped   int64      `json:"skipped"`
	LastRunAt *time.Time `json:"last_run_at,omitempty"`
	LastError string     `json:"last_error,omitempty"`
}
