package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"webhook-gateway/config"
	"webhook-gateway/internal/core/domain"
	"webhook-gateway/internal/core/ports"
	"webhook-gateway/internal/metrics"
	"webhook-gateway/internal/telemetry"
	"webhook-gateway/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.10.0"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const (
	HeaderEvent      = "X-Webhook-Event"
	HeaderDeliveryID = "X-Webhook-Delivery-Id"

	maxErrorLength   = 512
	resourceDelivery = "webhook_delivery"

	outcomeDelivered = "delivered"
	outcomeRetrying  = "retrying"
	outcomeFailed    = "failed"
	outcomeSkipped   = "skipped"
)

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type deliveryWorker struct {
	endpoints  ports.EndpointRepository
	deliveries ports.DeliveryRepository
	encSvc     ports.EncryptionService
	sigSvc     ports.SignatureService
	cache      ports.EndpointCache
	auditSvc   ports.AuditService
	httpClient HTTPClient
	cfg        config.WebhookConfig
	delays     []time.Duration
	tracer     trace.Tracer
	log        zerolog.Logger
	now        func() time.Time
}

// NewDeliveryWorker creates the worker that sends deliveries and applies the
// retry policy. cache and auditSvc may be nil.
func NewDeliveryWorker(
	endpoints ports.EndpointRepository,
	deliveries ports.DeliveryRepository,
	encSvc ports.EncryptionService,
	sigSvc ports.SignatureService,
	cache ports.EndpointCache,
	auditSvc ports.AuditService,
	httpClient HTTPClient,
	cfg config.WebhookConfig,
	log zerolog.Logger,
) ports.DeliveryWorker {
	return &deliveryWorker{
		endpoints:  endpoints,
		deliveries: deliveries,
		encSvc:     encSvc,
		sigSvc:     sigSvc,
		cache:      cache,
		auditSvc:   auditSvc,
		httpClient: httpClient,
		cfg:        cfg,
		delays:     cfg.Delays(),
		tracer:     otel.Tracer(telemetry.TracerName),
		log:        log,
		now:        time.Now,
	}
}

// Deliver runs one attempt. Missing or inactive endpoints and deliveries
// already claimed elsewhere are skipped and returned unchanged.
func (w *deliveryWorker) Deliver(ctx context.Context, delivery *domain.Delivery) (*domain.Delivery, error) {
	log := w.log.With().
		Str("delivery_id", delivery.ID.String()).
		Str("endpoint_id", delivery.EndpointID.String()).
		Str("event", delivery.EventType).
		Logger()

	endpoint, err := w.endpoints.GetByID(ctx, delivery.EndpointID)
	if err != nil {
		return nil, fmt.Errorf("load endpoint: %w", err)
	}
	if endpoint == nil || !endpoint.IsActive {
		log.Debug().Msg("endpoint missing or inactive, skipping")
		metrics.WebhookDeliveries.WithLabelValues(delivery.EventType, outcomeSkipped).Inc()
		return delivery, nil
	}

	claimed, err := w.deliveries.MarkSending(ctx, delivery.ID, w.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("claim delivery: %w", err)
	}
	if claimed == nil {
		log.Debug().Msg("delivery claimed elsewhere or not due, skipping")
		metrics.WebhookDeliveries.WithLabelValues(delivery.EventType, outcomeSkipped).Inc()
		return delivery, nil
	}

	// A claimed attempt always reaches a recorded result. Caller cancellation
	// (shutdown, client disconnect) must not strand the row in SENDING; the
	// send itself is bounded by the webhook timeout.
	ctx = context.WithoutCancel(ctx)
	cur := *claimed

	ctx, span := w.tracer.Start(ctx, "webhook.deliver", trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("webhook.delivery_id", cur.ID.String()),
			attribute.String("webhook.event", cur.EventType),
			attribute.Int("webhook.attempt", cur.Attempts),
			semconv.HTTPMethodKey.String(http.MethodPost),
			semconv.HTTPURLKey.String(endpoint.URL),
		))
	defer span.End()

	started := w.now()
	res := w.send(ctx, endpoint, &cur)
	elapsed := w.now().Sub(started)

	if res.status > 0 {
		span.SetAttributes(semconv.HTTPStatusCodeKey.Int(res.status))
	}
	if res.err != nil {
		span.RecordError(res.err)
		span.SetStatus(codes.Error, res.err.Error())
	}

	now := w.now().UTC()
	cur.UpdatedAt = now
	if res.status > 0 {
		status := res.status
		cur.ResponseStatus = &status
		body := res.body
		cur.ResponseBody = &body
	} else {
		cur.ResponseStatus = nil
		cur.ResponseBody = nil
	}

	var outcome string
	if res.ok() {
		outcome = outcomeDelivered
		cur.Status = domain.DeliveryStatusDelivered
		cur.DeliveredAt = &now
		cur.NextRetryAt = nil
		cur.ErrorMessage = nil
	} else {
		msg := storableText(res.errorMessage(), maxErrorLength)
		cur.ErrorMessage = &msg
		if cur.CanRetry() {
			outcome = outcomeRetrying
			next := now.Add(w.retryDelay(cur.Attempts))
			cur.Status = domain.DeliveryStatusPending
			cur.NextRetryAt = &next
		} else {
			outcome = outcomeFailed
			cur.Status = domain.DeliveryStatusFailed
			cur.NextRetryAt = nil
		}
	}

	if err := w.deliveries.Update(ctx, &cur); err != nil {
		log.Error().Err(err).Msg("failed to persist delivery result")
		return nil, fmt.Errorf("update delivery: %w", err)
	}

	metrics.WebhookDeliveries.WithLabelValues(cur.EventType, outcome).Inc()
	metrics.WebhookDuration.WithLabelValues(cur.EventType, outcome).Observe(elapsed.Seconds())

	switch {
	case res.ok():
		if err := w.endpoints.RecordSuccess(ctx, endpoint.ID, now); err != nil {
			log.Warn().Err(err).Msg("failed to record endpoint success")
		}
		log.Info().Int("status", res.status).Int("attempt", cur.Attempts).Msg("webhook delivered")
	case res.blameEndpoint:
		w.recordFailure(ctx, endpoint, now, log)
		ev := log.Warn().Int("attempt", cur.Attempts).Str("outcome", outcome).Str("error", *cur.ErrorMessage)
		if cur.NextRetryAt != nil {
			ev = ev.Time("next_retry_at", *cur.NextRetryAt)
		}
		ev.Msg("webhook delivery failed")
	default:
		log.Error().Err(res.err).Int("attempt", cur.Attempts).Msg("webhook delivery aborted before sending")
	}

	return &cur, nil
}

func (w *deliveryWorker) recordFailure(ctx context.Context, endpoint *domain.Endpoint, at time.Time, log zerolog.Logger) {
	health, err := w.endpoints.RecordFailure(ctx, endpoint.ID, at, w.cfg.FailureThreshold)
	if err != nil {
		log.Warn().Err(err).Msg("failed to record endpoint failure")
		return
	}
	if health == nil || health.IsActive || !endpoint.IsActive {
		return
	}

	metrics.EndpointsAutoDisabled.Inc()
	log.Warn().Int("failure_count", health.FailureCount).Msg("endpoint disabled after repeated failures")
	invalidateCache(ctx, w.cache, log)
	recordAudit(ctx, w.auditSvc, domain.SystemActor, domain.AuditActionAutoDisable, resourceEndpoint, endpoint.ID.String(),
		map[string]any{"failure_count": health.FailureCount, "threshold": w.cfg.FailureThreshold})
}

type sendResult struct {
	status int
	body   string
	err    error
	// blameEndpoint is false when the request never left this service.
	blameEndpoint bool
}

func (r sendResult) ok() bool {
	return r.err == nil && r.status >= 200 && r.status < 300
}

func (r sendResult) errorMessage() string {
	if r.err != nil {
		return r.err.Error()
	}
	return fmt.Sprintf("HTTP %d", r.status)
}

func (w *deliveryWorker) send(ctx context.Context, endpoint *domain.Endpoint, d *domain.Delivery) sendResult {
	key, err := w.encSvc.Decrypt(endpoint.SecretHashEnc)
	if err != nil {
		return sendResult{err: fmt.Errorf("signing key unavailable: %w", err)}
	}

	body, err := json.Marshal(domain.NewEnvelope(d))
	if err != nil {
		return sendResult{err: fmt.Errorf("encode envelope: %w", err)}
	}

	ctx, cancel := context.WithTimeout(ctx, w.cfg.Timeout())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.URL, bytes.NewReader(body))
	if err != nil {
		return sendResult{err: fmt.Errorf("build request: %w", err), blameEndpoint: true}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", w.cfg.UserAgent())
	req.Header.Set(w.cfg.SignatureHeader, w.sigSvc.Sign(body, key, w.now()))
	req.Header.Set(HeaderEvent, d.EventType)
	req.Header.Set(HeaderDeliveryID, d.ID.String())
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := w.httpClient.Do(req)
	if err != nil {
		// Cancellation without a deadline never came from the receiver.
		return sendResult{err: err, blameEndpoint: !errors.Is(err, context.Canceled)}
	}
	defer resp.Body.Close()

	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, int64(w.cfg.ResponseSnippet)))
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	return sendResult{
		status:        resp.StatusCode,
		body:          storableText(string(snippet), w.cfg.ResponseSnippet),
		blameEndpoint: true,
	}
}

// retryDelay reuses the last table entry once attempts exceed the table.
func (w *deliveryWorker) retryDelay(attempts int) time.Duration {
	if len(w.delays) == 0 {
		return time.Minute
	}
	idx := attempts - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(w.delays) {
		idx = len(w.delays) - 1
	}
	return w.delays[idx]
}

// ProcessBatch delivers concurrently, bounded by webhook.concurrency.
// A failing delivery never stops its siblings.
func (w *deliveryWorker) ProcessBatch(ctx context.Context, deliveries []domain.Delivery) ports.BatchResult {
	var (
		mu     sync.Mutex
		result = ports.BatchResult{Processed: len(deliveries)}
		g      errgroup.Group
	)
	limit := w.cfg.Concurrency
	if limit <= 0 {
		limit = 1
	}
	g.SetLimit(limit)

	for i := range deliveries {
		d := deliveries[i]
		g.Go(func() error {
			out, err := w.Deliver(ctx, &d)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				result.Errors++
				w.log.Error().Err(err).Str("delivery_id", d.ID.String()).Msg("delivery attempt errored")
			case out.Status == domain.DeliveryStatusDelivered:
				result.Delivered++
			case out.Status == domain.DeliveryStatusFailed:
				result.Failed++
			case out.Status == domain.DeliveryStatusPending && out.Attempts > d.Attempts:
				result.Retrying++
			default:
				result.Skipped++
			}
			return nil
		})
	}
	_ = g.Wait()
	return result
}

// Retry resets a delivery to a fresh PENDING state and sends it now.
func (w *deliveryWorker) Retry(ctx context.Context, id uuid.UUID) (*domain.Delivery, error) {
	d, err := w.deliveries.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if d == nil {
		return nil, apperror.ErrDeliveryNotFound()
	}
	return w.retry(ctx, d)
}

func (w *deliveryWorker) RetryForOwner(ctx context.Context, endpointID, deliveryID uuid.UUID, ownerID string) (*domain.Delivery, error) {
	endpoint, err := w.endpoints.GetByID(ctx, endpointID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if endpoint == nil || endpoint.OwnerID != ownerID {
		return nil, apperror.ErrEndpointNotFound()
	}
	d, err := w.deliveries.GetByID(ctx, deliveryID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if d == nil || d.EndpointID != endpointID {
		return nil, apperror.ErrDeliveryNotFound()
	}
	return w.retry(ctx, d)
}

func (w *deliveryWorker) retry(ctx context.Context, d *domain.Delivery) (*domain.Delivery, error) {
	if d.Status == domain.DeliveryStatusSending {
		return nil, apperror.Validation("delivery is currently being sent")
	}

	d.Status = domain.DeliveryStatusPending
	d.Attempts = 0
	d.NextRetryAt = nil
	d.ErrorMessage = nil
	d.ResponseStatus = nil
	d.ResponseBody = nil
	d.DeliveredAt = nil
	d.UpdatedAt = w.now().UTC()
	if err := w.deliveries.Update(ctx, d); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	recordAudit(ctx, w.auditSvc, domain.AdminActor, domain.AuditActionRetryDelivery, resourceDelivery, d.ID.String(), nil)

	out, err := w.Deliver(ctx, d)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	return out, nil
}

// Cancel fails a PENDING delivery. It reports false for any other status.
func (w *deliveryWorker) Cancel(ctx context.Context, id uuid.UUID) (bool, error) {
	ok, err := w.deliveries.Cancel(ctx, id, w.now().UTC())
	if err != nil {
		return false, apperror.ErrDatabaseError(err)
	}
	if ok {
		recordAudit(ctx, w.auditSvc, domain.AdminActor, domain.AuditActionCancelDelivery, resourceDelivery, id.String(), nil)
	}
	return ok, nil
}

// storableText cuts s to at most n bytes of valid UTF-8 without NUL bytes,
// which PostgreSQL TEXT columns reject.
func storableText(s string, n int) string {
	if len(s) > n {
		s = s[:n]
	}
	s = strings.ToValidUTF8(s, "")
	return strings.ReplaceAll(s, "\x00", "")
}
