package service

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	"webhook-gateway/config"
	"webhook-gateway/internal/core/domain"
	"webhook-gateway/internal/core/ports"
	"webhook-gateway/internal/metrics"
	"webhook-gateway/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// sensitiveKeys are matched case-insensitively as substrings of payload keys,
// after dropping '_' and '-'.
var sensitiveKeys = []string{
	"password",
	"secret",
	"token",
	"accesstoken",
	"refreshtoken",
	"apikey",
	"privatekey",
}

type dispatcherService struct {
	endpoints  ports.EndpointRepository
	deliveries ports.DeliveryRepository
	cache      ports.EndpointCache
	worker     ports.DeliveryWorker
	auditSvc   ports.AuditService
	cfg        config.WebhookConfig
	log        zerolog.Logger
	now        func() time.Time
}

// NewDispatcherService creates the event fan-out service. cache and auditSvc may be nil.
func NewDispatcherService(
	endpoints ports.EndpointRepository,
	deliveries ports.DeliveryRepository,
	cache ports.EndpointCache,
	worker ports.DeliveryWorker,
	auditSvc ports.AuditService,
	cfg config.WebhookConfig,
	log zerolog.Logger,
) ports.DispatcherService {
	return &dispatcherService{
		endpoints:  endpoints,
		deliveries: deliveries,
		cache:      cache,
		worker:     worker,
		auditSvc:   auditSvc,
		cfg:        cfg,
		log:        log,
		now:        time.Now,
	}
}

func (s *dispatcherService) Dispatch(ctx context.Context, eventType string, payload any, actor string) (int, error) {
	if !s.cfg.Enabled {
		return 0, nil
	}
	eventType = strings.TrimSpace(eventType)
	if eventType == "" {
		return 0, apperror.ErrInvalidEvent()
	}

	targets, err := s.resolve(ctx, eventType)
	if err != nil {
		return 0, apperror.ErrDatabaseError(err)
	}
	if len(targets) == 0 {
		s.log.Debug().Str("event", eventType).Msg("no subscribed endpoints")
		return 0, nil
	}

	snapshot, err := SanitizePayload(payload)
	if err != nil {
		return 0, apperror.Validation("payload must be JSON serializable")
	}

	now := s.now().UTC()
	batch := make([]*domain.Delivery, 0, len(targets))
	for _, e := range targets {
		batch = append(batch, &domain.Delivery{
			ID:          uuid.New(),
			EndpointID:  e.ID,
			EventType:   eventType,
			Payload:     snapshot,
			Status:      domain.DeliveryStatusPending,
			MaxAttempts: s.cfg.MaxAttempts,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	if err := s.deliveries.CreateBatch(ctx, batch); err != nil {
		return 0, apperror.ErrDatabaseError(err)
	}

	metrics.EventsDispatched.WithLabelValues(eventType).Add(float64(len(batch)))
	s.log.Info().Str("event", eventType).Str("actor", actor).Int("deliveries", len(batch)).Msg("event dispatched")
	return len(batch), nil
}

// resolve returns active endpoints subscribed to eventType, cache first.
func (s *dispatcherService) resolve(ctx context.Context, eventType string) ([]domain.Endpoint, error) {
	var (
		endpoints []domain.Endpoint
		hit       bool
	)
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, eventType)
		if err != nil {
			s.log.Warn().Err(err).Msg("endpoint cache read failed")
		}
		endpoints, hit = cached, ok && err == nil
	}

	if !hit {
		fresh, err := s.endpoints.ListActiveForEvent(ctx, eventType)
		if err != nil {
			return nil, err
		}
		endpoints = fresh
		if s.cache != nil {
			if err := s.cache.Set(ctx, eventType, fresh, s.cfg.CacheTTL); err != nil {
				s.log.Warn().Err(err).Msg("endpoint cache write failed")
			}
		}
	}

	out := endpoints[:0:0]
	for _, e := range endpoints {
		if e.IsActive && e.Subscribes(eventType) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *dispatcherService) SendTest(ctx context.Context, endpointID uuid.UUID, ownerID string) (*domain.Delivery, error) {
	endpoint, err := s.endpoints.GetByID(ctx, endpointID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if endpoint == nil || endpoint.OwnerID != ownerID {
		return nil, apperror.ErrEndpointNotFound()
	}
	if !endpoint.IsActive {
		return nil, apperror.Validation("endpoint is disabled")
	}

	now := s.now().UTC()
	snapshot, err := json.Marshal(map[string]any{
		"message":     "This is a test webhook",
		"endpoint_id": endpoint.ID,
		"timestamp":   now,
	})
	if err != nil {
		return nil, apperror.InternalError(err)
	}

	d := &domain.Delivery{
		ID:          uuid.New(),
		EndpointID:  endpoint.ID,
		EventType:   domain.TestEventType,
		Payload:     snapshot,
		Status:      domain.DeliveryStatusPending,
		MaxAttempts: s.cfg.MaxAttempts,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.deliveries.Create(ctx, d); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	recordAudit(ctx, s.auditSvc, ownerID, domain.AuditActionTestEndpoint, resourceEndpoint, endpoint.ID.String(),
		map[string]any{"delivery_id": d.ID})

	out, err := s.worker.Deliver(ctx, d)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	return out, nil
}

// SanitizePayload snapshots payload as JSON with sensitive keys removed from
// every nested object. Arrays and time values are kept as they are.
func SanitizePayload(payload any) (json.RawMessage, error) {
	value, err := normalize(payload)
	if err != nil {
		return nil, err
	}
	if m, ok := value.(map[string]any); ok {
		value = sanitizeMap(m)
	}
	out, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	return out, nil
}

// normalize turns structs, typed maps and raw JSON into generic values.
func normalize(v any) (any, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return t, nil
	case json.RawMessage:
		return decodeGeneric(t)
	case []byte:
		if json.Valid(t) {
			return decodeGeneric(t)
		}
		return t, nil
	case time.Time, *time.Time:
		return t, nil
	}

	switch reflect.Indirect(reflect.ValueOf(v)).Kind() {
	case reflect.Struct, reflect.Map:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode payload: %w", err)
		}
		return decodeGeneric(b)
	}
	return v, nil
}

func decodeGeneric(b []byte) (any, error) {
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	return out, nil
}

func sanitizeMap(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		if isSensitiveKey(k) {
			continue
		}
		switch t := v.(type) {
		case map[string]any:
			out[k] = sanitizeMap(t)
			continue
		case time.Time, *time.Time, []any:
			out[k] = t
			continue
		}
		if nested, err := normalize(v); err == nil {
			if m, ok := nested.(map[string]any); ok {
				out[k] = sanitizeMap(m)
				continue
			}
		}
		out[k] = v
	}
	return out
}

func isSensitiveKey(key string) bool {
	k := strings.NewReplacer("_", "", "-", "").Replace(strings.ToLower(key))
	for _, s := range sensitiveKeys {
		if strings.Contains(k, s) {
			return true
		}
	}
	return false
}
