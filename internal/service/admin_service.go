package service

import (
	"context"
	"math"
	"time"

	"webhook-gateway/internal/core/domain"
	"webhook-gateway/internal/core/ports"
	"webhook-gateway/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// adminService implements ports.AdminService. Operators see every owner's data.
type adminService struct {
	endpoints  ports.EndpointRepository
	deliveries ports.DeliveryRepository
	worker     ports.DeliveryWorker
	cache      ports.EndpointCache
	auditSvc   ports.AuditService
	log        zerolog.Logger
	now        func() time.Time
}

// NewAdminService creates the operator service.
func NewAdminService(
	endpoints ports.EndpointRepository,
	deliveries ports.DeliveryRepository,
	worker ports.DeliveryWorker,
	cache ports.EndpointCache,
	auditSvc ports.AuditService,
	log zerolog.Logger,
) ports.AdminService {
	return &adminService{
		endpoints:  endpoints,
		deliveries: deliveries,
		worker:     worker,
		cache:      cache,
		auditSvc:   auditSvc,
		log:        log,
		now:        time.Now,
	}
}

// ListEndpoints returns a page of endpoints with their delivery counts.
func (s *adminService) ListEndpoints(ctx context.Context, params ports.EndpointListParams) ([]domain.Endpoint, int64, error) {
	items, total, err := s.endpoints.List(ctx, params)
	if err != nil {
		return nil, 0, apperror.ErrDatabaseError(err)
	}
	ptrs := make([]*domain.Endpoint, len(items))
	for i := range items {
		ptrs[i] = &items[i]
	}
	if err := attachDeliveryCounts(ctx, s.deliveries, ptrs); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *adminService) GetEndpoint(ctx context.Context, id uuid.UUID) (*domain.Endpoint, error) {
	endpoint, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := attachDeliveryCounts(ctx, s.deliveries, []*domain.Endpoint{endpoint}); err != nil {
		return nil, err
	}
	return endpoint, nil
}

// SetEndpointActive enables or disables any endpoint. Enabling clears the failure streak.
func (s *adminService) SetEndpointActive(ctx context.Context, id uuid.UUID, active bool) (*domain.Endpoint, error) {
	endpoint, err := s.endpoints.SetActive(ctx, id, active, s.now().UTC())
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if endpoint == nil {
		return nil, apperror.ErrEndpointNotFound()
	}

	invalidateCache(ctx, s.cache, s.log)
	action := domain.AuditActionDisableEndpoint
	if active {
		action = domain.AuditActionEnableEndpoint
	}
	recordAudit(ctx, s.auditSvc, domain.AdminActor, action, resourceEndpoint, id.String(), nil)
	return endpoint, nil
}

func (s *adminService) DeleteEndpoint(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.endpoints.Delete(ctx, id)
	if err != nil {
		return apperror.ErrDatabaseError(err)
	}
	if !deleted {
		return apperror.ErrEndpointNotFound()
	}

	invalidateCache(ctx, s.cache, s.log)
	recordAudit(ctx, s.auditSvc, domain.AdminActor, domain.AuditActionDeleteEndpoint, resourceEndpoint, id.String(), nil)
	return nil
}

func (s *adminService) ListDeliveries(ctx context.Context, params ports.DeliveryListParams) ([]domain.Delivery, int64, error) {
	if params.Status != nil && !params.Status.Valid() {
		return nil, 0, apperror.Validation("invalid status filter")
	}
	items, total, err := s.deliveries.List(ctx, params)
	if err != nil {
		return nil, 0, apperror.ErrDatabaseError(err)
	}
	return items, total, nil
}

func (s *adminService) GetDelivery(ctx context.Context, id uuid.UUID) (*domain.Delivery, error) {
	d, err := s.deliveries.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if d == nil {
		return nil, apperror.ErrDeliveryNotFound()
	}
	return d, nil
}

func (s *adminService) RetryDelivery(ctx context.Context, id uuid.UUID) (*domain.Delivery, error) {
	return s.worker.Retry(ctx, id)
}

// CancelDelivery fails a PENDING delivery.
func (s *adminService) CancelDelivery(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetDelivery(ctx, id); err != nil {
		return err
	}
	ok, err := s.worker.Cancel(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.ErrDeliveryNotCancellable()
	}
	return nil
}

// Purge deletes finished deliveries created more than daysOld days ago.
func (s *adminService) Purge(ctx context.Context, daysOld int) (int64, error) {
	if daysOld < 1 {
		return 0, apperror.Validation("days must be at least 1")
	}
	cutoff := s.now().UTC().AddDate(0, 0, -daysOld)
	n, err := s.deliveries.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, apperror.ErrDatabaseError(err)
	}

	s.log.Info().Int("days_old", daysOld).Int64("deleted", n).Msg("deliveries purged")
	recordAudit(ctx, s.auditSvc, domain.AdminActor, domain.AuditActionPurge, resourceDelivery, "",
		map[string]any{"days_old": daysOld, "deleted": n})
	return n, nil
}

// Stats summarises delivery outcomes and endpoint health.
// SuccessRate is a percentage of finished deliveries, rounded to two decimals.
func (s *adminService) Stats(ctx context.Context) (*ports.WebhookStats, error) {
	deliveries, err := s.deliveries.GetStats(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	endpoints, err := s.endpoints.Counts(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	out := &ports.WebhookStats{
		Deliveries:            *deliveries,
		TotalEndpoints:        endpoints.Total,
		ActiveEndpoints:       endpoints.Active,
		EndpointsWithFailures: endpoints.WithFailures,
	}
	if finished := deliveries.Delivered + deliveries.Failed; finished > 0 {
		rate := float64(deliveries.Delivered) / float64(finished) * 100
		out.SuccessRate = math.Round(rate*100) / 100
	}
	return out, nil
}

func (s *adminService) load(ctx context.Context, id uuid.UUID) (*domain.Endpoint, error) {
	endpoint, err := s.endpoints.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if endpoint == nil {
		return nil, apperror.ErrEndpointNotFound()
	}
	return endpoint, nil
}
