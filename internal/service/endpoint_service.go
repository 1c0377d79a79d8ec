package service

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"slices"
	"strings"
	"time"

	"webhook-gateway/config"
	"webhook-gateway/internal/core/domain"
	"webhook-gateway/internal/core/ports"
	"webhook-gateway/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	resourceEndpoint = "webhook_endpoint"
	maxNameLength    = 255
	minCustomSecret  = 16
)

type endpointService struct {
	endpoints  ports.EndpointRepository
	deliveries ports.DeliveryRepository
	encSvc     ports.EncryptionService
	cache      ports.EndpointCache
	auditSvc   ports.AuditService
	cfg        config.WebhookConfig
	log        zerolog.Logger
	now        func() time.Time
}

// NewEndpointService creates the owner-facing endpoint registry.
// cache and auditSvc may be nil.
func NewEndpointService(
	endpoints ports.EndpointRepository,
	deliveries ports.DeliveryRepository,
	encSvc ports.EncryptionService,
	cache ports.EndpointCache,
	auditSvc ports.AuditService,
	cfg config.WebhookConfig,
	log zerolog.Logger,
) ports.EndpointService {
	return &endpointService{
		endpoints:  endpoints,
		deliveries: deliveries,
		encSvc:     encSvc,
		cache:      cache,
		auditSvc:   auditSvc,
		cfg:        cfg,
		log:        log,
		now:        time.Now,
	}
}

func (s *endpointService) Create(ctx context.Context, req ports.CreateEndpointRequest) (*ports.EndpointWithSecret, error) {
	name, err := validateName(req.Name)
	if err != nil {
		return nil, err
	}
	events, err := normalizeEvents(req.Events)
	if err != nil {
		return nil, err
	}
	if err := ValidateEndpointURL(req.URL, s.cfg.AllowInsecureURLs); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.OwnerID) == "" {
		return nil, apperror.Validation("owner is required")
	}

	secret := req.Secret
	if secret == "" {
		secret, err = GenerateSecret(s.cfg.SecretLength)
		if err != nil {
			return nil, apperror.InternalError(err)
		}
	} else if len(secret) < minCustomSecret {
		return nil, apperror.Validation(fmt.Sprintf("secret must be at least %d characters", minCustomSecret))
	}

	sealed, err := s.encSvc.Encrypt(HashSecret(secret))
	if err != nil {
		return nil, apperror.ErrEncryptionFailure(err)
	}

	now := s.now().UTC()
	endpoint := &domain.Endpoint{
		ID:            uuid.New(),
		OwnerID:       req.OwnerID,
		Name:          name,
		URL:           req.URL,
		SecretHashEnc: sealed,
		Events:        events,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.endpoints.Create(ctx, endpoint); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	s.invalidate(ctx)
	recordAudit(ctx, s.auditSvc, req.OwnerID, domain.AuditActionCreateEndpoint, resourceEndpoint, endpoint.ID.String(),
		map[string]any{"url": endpoint.URL, "events": endpoint.Events})

	return &ports.EndpointWithSecret{Endpoint: endpoint, Secret: secret}, nil
}

func (s *endpointService) Get(ctx context.Context, id uuid.UUID, ownerID string) (*domain.Endpoint, error) {
	endpoint, err := s.owned(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if err := s.attachCounts(ctx, []*domain.Endpoint{endpoint}); err != nil {
		return nil, err
	}
	return endpoint, nil
}

func (s *endpointService) List(ctx context.Context, ownerID string) ([]domain.Endpoint, error) {
	items, _, err := s.endpoints.List(ctx, ports.EndpointListParams{OwnerID: ownerID})
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	ptrs := make([]*domain.Endpoint, len(items))
	for i := range items {
		ptrs[i] = &items[i]
	}
	if err := s.attachCounts(ctx, ptrs); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *endpointService) Update(ctx context.Context, id uuid.UUID, ownerID string, req ports.UpdateEndpointRequest) (*domain.Endpoint, error) {
	endpoint, err := s.owned(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	changed := map[string]any{}
	if req.Name != nil {
		name, err := validateName(*req.Name)
		if err != nil {
			return nil, err
		}
		endpoint.Name = name
		changed["name"] = name
	}
	if req.URL != nil && *req.URL != endpoint.URL {
		if err := ValidateEndpointURL(*req.URL, s.cfg.AllowInsecureURLs); err != nil {
			return nil, err
		}
		endpoint.URL = *req.URL
		changed["url"] = endpoint.URL
	}
	if req.Events != nil {
		events, err := normalizeEvents(req.Events)
		if err != nil {
			return nil, err
		}
		endpoint.Events = events
		changed["events"] = events
	}
	fieldsChanged := len(changed) > 0
	if req.IsActive != nil {
		changed["is_active"] = *req.IsActive
	}

	if len(changed) == 0 {
		return endpoint, nil
	}

	now := s.now().UTC()
	if fieldsChanged {
		endpoint.UpdatedAt = now
		if err := s.endpoints.Update(ctx, endpoint); err != nil {
			return nil, apperror.ErrDatabaseError(err)
		}
	}
	if req.IsActive != nil {
		updated, err := s.endpoints.SetActive(ctx, id, *req.IsActive, now)
		if err != nil {
			return nil, apperror.ErrDatabaseError(err)
		}
		if updated == nil {
			return nil, apperror.ErrEndpointNotFound()
		}
		endpoint = updated
	}

	s.invalidate(ctx)
	recordAudit(ctx, s.auditSvc, ownerID, domain.AuditActionUpdateEndpoint, resourceEndpoint, id.String(), changed)
	return endpoint, nil
}

func (s *endpointService) Delete(ctx context.Context, id uuid.UUID, ownerID string) error {
	if _, err := s.owned(ctx, id, ownerID); err != nil {
		return err
	}
	deleted, err := s.endpoints.Delete(ctx, id)
	if err != nil {
		return apperror.ErrDatabaseError(err)
	}
	if !deleted {
		return apperror.ErrEndpointNotFound()
	}

	s.invalidate(ctx)
	recordAudit(ctx, s.auditSvc, ownerID, domain.AuditActionDeleteEndpoint, resourceEndpoint, id.String(), nil)
	return nil
}

func (s *endpointService) Enable(ctx context.Context, id uuid.UUID, ownerID string) (*domain.Endpoint, error) {
	return s.setActive(ctx, id, ownerID, true)
}

func (s *endpointService) Disable(ctx context.Context, id uuid.UUID, ownerID string) (*domain.Endpoint, error) {
	return s.setActive(ctx, id, ownerID, false)
}

func (s *endpointService) setActive(ctx context.Context, id uuid.UUID, ownerID string, active bool) (*domain.Endpoint, error) {
	if _, err := s.owned(ctx, id, ownerID); err != nil {
		return nil, err
	}

	endpoint, err := s.endpoints.SetActive(ctx, id, active, s.now().UTC())
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if endpoint == nil {
		return nil, apperror.ErrEndpointNotFound()
	}

	s.invalidate(ctx)
	action := domain.AuditActionDisableEndpoint
	if active {
		action = domain.AuditActionEnableEndpoint
	}
	recordAudit(ctx, s.auditSvc, ownerID, action, resourceEndpoint, id.String(), nil)
	return endpoint, nil
}

func (s *endpointService) RotateSecret(ctx context.Context, id uuid.UUID, ownerID string) (*ports.EndpointWithSecret, error) {
	endpoint, err := s.owned(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	secret, err := GenerateSecret(s.cfg.SecretLength)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	sealed, err := s.encSvc.Encrypt(HashSecret(secret))
	if err != nil {
		return nil, apperror.ErrEncryptionFailure(err)
	}

	now := s.now().UTC()
	if err := s.endpoints.UpdateSecret(ctx, id, sealed, now); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	endpoint.SecretHashEnc = sealed
	endpoint.UpdatedAt = now

	s.invalidate(ctx)
	recordAudit(ctx, s.auditSvc, ownerID, domain.AuditActionRotateSecret, resourceEndpoint, id.String(), nil)
	return &ports.EndpointWithSecret{Endpoint: endpoint, Secret: secret}, nil
}

func (s *endpointService) ListDeliveries(ctx context.Context, id uuid.UUID, ownerID string, params ports.DeliveryListParams) ([]domain.Delivery, int64, error) {
	if _, err := s.owned(ctx, id, ownerID); err != nil {
		return nil, 0, err
	}
	params.EndpointID = &id
	params.OwnerID = ""
	items, total, err := s.deliveries.List(ctx, params)
	if err != nil {
		return nil, 0, apperror.ErrDatabaseError(err)
	}
	return items, total, nil
}

func (s *endpointService) GetDelivery(ctx context.Context, endpointID, deliveryID uuid.UUID, ownerID string) (*domain.Delivery, error) {
	if _, err := s.owned(ctx, endpointID, ownerID); err != nil {
		return nil, err
	}
	d, err := s.deliveries.GetByID(ctx, deliveryID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if d == nil || d.EndpointID != endpointID {
		return nil, apperror.ErrDeliveryNotFound()
	}
	return d, nil
}

// owned loads an endpoint and hides endpoints held by other owners.
func (s *endpointService) owned(ctx context.Context, id uuid.UUID, ownerID string) (*domain.Endpoint, error) {
	endpoint, err := s.endpoints.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if endpoint == nil || endpoint.OwnerID != ownerID {
		return nil, apperror.ErrEndpointNotFound()
	}
	return endpoint, nil
}

func (s *endpointService) attachCounts(ctx context.Context, endpoints []*domain.Endpoint) error {
	return attachDeliveryCounts(ctx, s.deliveries, endpoints)
}

func (s *endpointService) invalidate(ctx context.Context) {
	invalidateCache(ctx, s.cache, s.log)
}

func attachDeliveryCounts(ctx context.Context, deliveries ports.DeliveryRepository, endpoints []*domain.Endpoint) error {
	if len(endpoints) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(endpoints))
	for i, e := range endpoints {
		ids[i] = e.ID
	}
	counts, err := deliveries.CountByEndpoints(ctx, ids)
	if err != nil {
		return apperror.ErrDatabaseError(err)
	}
	for _, e := range endpoints {
		e.DeliveryCount = counts[e.ID]
	}
	return nil
}

// invalidateCache drops cached endpoint resolution. Failures only delay
// visibility until the TTL expires, so they are logged and ignored.
func invalidateCache(ctx context.Context, cache ports.EndpointCache, log zerolog.Logger) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("endpoint cache invalidation failed")
	}
}

// ValidateEndpointURL enforces https. allowInsecure additionally permits
// http and loopback hosts for local development.
func ValidateEndpointURL(raw string, allowInsecure bool) error {
	if strings.TrimSpace(raw) == "" {
		return apperror.ErrInvalidURL("url is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return apperror.ErrInvalidURL("cannot parse url")
	}
	if u.Host == "" || u.Hostname() == "" {
		return apperror.ErrInvalidURL("host is required")
	}
	if u.User != nil {
		return apperror.ErrInvalidURL("credentials in url are not allowed")
	}

	switch u.Scheme {
	case "https":
	case "http":
		if !allowInsecure {
			return apperror.ErrInvalidURL("https is required")
		}
	default:
		return apperror.ErrInvalidURL("unsupported scheme " + u.Scheme)
	}

	if !allowInsecure && isLoopbackHost(u.Hostname()) {
		return apperror.ErrInvalidURL("localhost is not allowed")
	}
	return nil
}

func isLoopbackHost(host string) bool {
	host = strings.ToLower(host)
	if host == "localhost" || strings.HasSuffix(host, ".localhost") {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && (ip.IsLoopback() || ip.IsUnspecified())
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperror.Validation("name is required")
	}
	if len(name) > maxNameLength {
		return "", apperror.Validation(fmt.Sprintf("name must be at most %d characters", maxNameLength))
	}
	return name, nil
}

// normalizeEvents trims, de-duplicates and rejects empty subscriptions.
func normalizeEvents(events []string) ([]string, error) {
	out := make([]string, 0, len(events))
	for _, ev := range events {
		ev = strings.TrimSpace(ev)
		if ev == "" {
			return nil, apperror.Validation("event types must not be empty")
		}
		if !slices.Contains(out, ev) {
			out = append(out, ev)
		}
	}
	if len(out) == 0 {
		return nil, apperror.Validation("at least one event type is required")
	}
	return out, nil
}
