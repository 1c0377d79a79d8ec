// Package memory is a process-local implementation of the repository ports.
// It backs tests and the "memory" database driver. Records are copied on the
// way in and out so callers never alias stored state.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"webhook-gateway/internal/core/domain"
	"webhook-gateway/internal/core/ports"

	"github.com/google/uuid"
)

// Store holds every table behind one lock so cascades stay consistent.
type Store struct {
	mu         sync.RWMutex
	endpoints  map[uuid.UUID]domain.Endpoint
	deliveries map[uuid.UUID]domain.Delivery
	audit      []domain.AuditLog
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		endpoints:  make(map[uuid.UUID]domain.Endpoint),
		deliveries: make(map[uuid.UUID]domain.Delivery),
	}
}

// Endpoints returns the endpoint repository view.
func (s *Store) Endpoints() *EndpointRepo { return &EndpointRepo{s: s} }

// Deliveries returns the delivery repository view.
func (s *Store) Deliveries() *DeliveryRepo { return &DeliveryRepo{s: s} }

// Audit returns the audit repository view.
func (s *Store) Audit() *AuditRepo { return &AuditRepo{s: s} }

func copyEndpoint(e domain.Endpoint) domain.Endpoint {
	e.Events = slices.Clone(e.Events)
	return e
}

func copyDelivery(d domain.Delivery) domain.Delivery {
	d.Payload = slices.Clone(d.Payload)
	return d
}

func paginate[T any](items []T, page, pageSize int) []T {
	if pageSize <= 0 {
		return items
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// --- Endpoints ---

// EndpointRepo implements ports.EndpointRepository.
type EndpointRepo struct {
	s *Store
}

func (r *EndpointRepo) Create(ctx context.Context, e *domain.Endpoint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.endpoints[e.ID]; ok {
		return fmt.Errorf("insert endpoint: duplicate id %s", e.ID)
	}
	r.s.endpoints[e.ID] = copyEndpoint(*e)
	return nil
}

func (r *EndpointRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Endpoint, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.endpoints[id]
	if !ok {
		return nil, nil
	}
	out := copyEndpoint(e)
	return &out, nil
}

func (r *EndpointRepo) Update(ctx context.Context, e *domain.Endpoint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.endpoints[e.ID]
	if !ok {
		return fmt.Errorf("endpoint not found: %s", e.ID)
	}
	cur.Name = e.Name
	cur.URL = e.URL
	cur.Events = slices.Clone(e.Events)
	cur.UpdatedAt = e.UpdatedAt
	r.s.endpoints[e.ID] = cur
	return nil
}

func (r *EndpointRepo) SetActive(ctx context.Context, id uuid.UUID, active bool, at time.Time) (*domain.Endpoint, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.endpoints[id]
	if !ok {
		return nil, nil
	}
	e.IsActive = active
	if active {
		e.FailureCount = 0
	}
	e.UpdatedAt = at
	r.s.endpoints[id] = e
	out := copyEndpoint(e)
	return &out, nil
}

func (r *EndpointRepo) UpdateSecret(ctx context.Context, id uuid.UUID, secretHashEnc string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.endpoints[id]
	if !ok {
		return fmt.Errorf("endpoint not found: %s", id)
	}
	e.SecretHashEnc = secretHashEnc
	e.UpdatedAt = at
	r.s.endpoints[id] = e
	return nil
}

func (r *EndpointRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.endpoints[id]; !ok {
		return false, nil
	}
	delete(r.s.endpoints, id)
	for did, d := range r.s.deliveries {
		if d.EndpointID == id {
			delete(r.s.deliveries, did)
		}
	}
	return true, nil
}

func (r *EndpointRepo) List(ctx context.Context, params ports.EndpointListParams) ([]domain.Endpoint, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []domain.Endpoint
	for _, e := range r.s.endpoints {
		if params.OwnerID != "" && e.OwnerID != params.OwnerID {
			continue
		}
		if params.Active != nil && e.IsActive != *params.Active {
			continue
		}
		if params.EventType != "" && !e.Subscribes(params.EventType) {
			continue
		}
		out = append(out, copyEndpoint(e))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, params.Page, params.PageSize), int64(len(out)), nil
}

func (r *EndpointRepo) ListActiveForEvent(ctx context.Context, eventType string) ([]domain.Endpoint, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []domain.Endpoint
	for _, e := range r.s.endpoints {
		if e.IsActive && e.Subscribes(eventType) {
			out = append(out, copyEndpoint(e))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *EndpointRepo) RecordSuccess(ctx context.Context, id uuid.UUID, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.endpoints[id]
	if !ok {
		return nil
	}
	e.FailureCount = 0
	e.LastSuccessAt = &at
	e.UpdatedAt = at
	r.s.endpoints[id] = e
	return nil
}

func (r *EndpointRepo) RecordFailure(ctx context.Context, id uuid.UUID, at time.Time, threshold int) (*domain.EndpointHealth, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.endpoints[id]
	if !ok {
		return nil, nil
	}
	e.FailureCount++
	e.LastFailureAt = &at
	e.UpdatedAt = at
	if e.FailureCount >= threshold {
		e.IsActive = false
	}
	r.s.endpoints[id] = e
	return &domain.EndpointHealth{FailureCount: e.FailureCount, IsActive: e.IsActive}, nil
}

func (r *EndpointRepo) Counts(ctx context.Context) (*ports.EndpointCounts, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c := &ports.EndpointCounts{Total: int64(len(r.s.endpoints))}
	for _, e := range r.s.endpoints {
		if e.IsActive {
			c.Active++
		}
		if e.FailureCount > 0 {
			c.WithFailures++
		}
	}
	return c, nil
}

// --- Deliveries ---

// DeliveryRepo implements ports.DeliveryRepository.
type DeliveryRepo struct {
	s *Store
}

func (r *DeliveryRepo) Create(ctx context.Context, d *domain.Delivery) error {
	return r.CreateBatch(ctx, []*domain.Delivery{d})
}

func (r *DeliveryRepo) CreateBatch(ctx context.Context, deliveries []*domain.Delivery) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, d := range deliveries {
		if _, ok := r.s.endpoints[d.EndpointID]; !ok {
			return fmt.Errorf("insert delivery %s: unknown endpoint %s", d.ID, d.EndpointID)
		}
		if _, ok := r.s.deliveries[d.ID]; ok {
			return fmt.Errorf("insert delivery %s: duplicate id", d.ID)
		}
	}
	for _, d := range deliveries {
		r.s.deliveries[d.ID] = copyDelivery(*d)
	}
	return nil
}

func (r *DeliveryRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Delivery, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	d, ok := r.s.deliveries[id]
	if !ok {
		return nil, nil
	}
	out := copyDelivery(d)
	return &out, nil
}

func (r *DeliveryRepo) Update(ctx context.Context, d *domain.Delivery) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.deliveries[d.ID]
	if !ok {
		return fmt.Errorf("delivery not found: %s", d.ID)
	}
	cur.Status = d.Status
	cur.Attempts = d.Attempts
	cur.ResponseStatus = d.ResponseStatus
	cur.ResponseBody = d.ResponseBody
	cur.ErrorMessage = d.ErrorMessage
	cur.NextRetryAt = d.NextRetryAt
	cur.DeliveredAt = d.DeliveredAt
	cur.UpdatedAt = d.UpdatedAt
	r.s.deliveries[d.ID] = cur
	return nil
}

func (r *DeliveryRepo) MarkSending(ctx context.Context, id uuid.UUID, at time.Time) (*domain.Delivery, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.deliveries[id]
	if !ok || d.Status != domain.DeliveryStatusPending || d.Attempts >= d.MaxAttempts || !d.IsDue(at) {
		return nil, nil
	}
	d.Status = domain.DeliveryStatusSending
	d.Attempts++
	d.UpdatedAt = at
	r.s.deliveries[id] = d
	out := copyDelivery(d)
	return &out, nil
}

func (r *DeliveryRepo) ReleaseStale(ctx context.Context, cutoff, at time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, d := range r.s.deliveries {
		if d.Status != domain.DeliveryStatusSending || !d.UpdatedAt.Before(cutoff) {
			continue
		}
		msg := domain.InterruptedMessage
		d.ErrorMessage = &msg
		d.NextRetryAt = nil
		d.UpdatedAt = at
		if d.Attempts < d.MaxAttempts {
			d.Status = domain.DeliveryStatusPending
		} else {
			d.Status = domain.DeliveryStatusFailed
		}
		r.s.deliveries[id] = d
		n++
	}
	return n, nil
}

func (r *DeliveryRepo) Cancel(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.deliveries[id]
	if !ok || d.Status != domain.DeliveryStatusPending {
		return false, nil
	}
	msg := domain.CancelledMessage
	d.Status = domain.DeliveryStatusFailed
	d.ErrorMessage = &msg
	d.NextRetryAt = nil
	d.UpdatedAt = at
	r.s.deliveries[id] = d
	return true, nil
}

func (r *DeliveryRepo) ListDue(ctx context.Context, now time.Time, limit int) ([]domain.Delivery, error) {
	return r.selectPending(func(d domain.Delivery) bool {
		return d.IsDue(now)
	}, func(a, b domain.Delivery) bool {
		return a.CreatedAt.Before(b.CreatedAt)
	}, limit), nil
}

func (r *DeliveryRepo) ListRetryable(ctx context.Context, now time.Time, limit int) ([]domain.Delivery, error) {
	return r.selectPending(func(d domain.Delivery) bool {
		return d.NextRetryAt != nil && !d.NextRetryAt.After(now) && d.Attempts < d.MaxAttempts
	}, func(a, b domain.Delivery) bool {
		return a.NextRetryAt.Before(*b.NextRetryAt)
	}, limit), nil
}

func (r *DeliveryRepo) selectPending(match func(domain.Delivery) bool, less func(a, b domain.Delivery) bool, limit int) []domain.Delivery {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []domain.Delivery
	for _, d := range r.s.deliveries {
		if e, ok := r.s.endpoints[d.EndpointID]; !ok || !e.IsActive {
			continue
		}
		if d.Status == domain.DeliveryStatusPending && match(d) {
			out = append(out, copyDelivery(d))
		}
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (r *DeliveryRepo) List(ctx context.Context, params ports.DeliveryListParams) ([]domain.Delivery, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []domain.Delivery
	for _, d := range r.s.deliveries {
		if params.Status != nil && d.Status != *params.Status {
			continue
		}
		if params.EventType != "" && d.EventType != params.EventType {
			continue
		}
		if params.EndpointID != nil && d.EndpointID != *params.EndpointID {
			continue
		}
		if params.OwnerID != "" && r.s.endpoints[d.EndpointID].OwnerID != params.OwnerID {
			continue
		}
		if params.From != nil && d.CreatedAt.Before(*params.From) {
			continue
		}
		if params.To != nil && d.CreatedAt.After(*params.To) {
			continue
		}
		out = append(out, copyDelivery(d))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, params.Page, params.PageSize), int64(len(out)), nil
}

func (r *DeliveryRepo) CountByEndpoints(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	counts := make(map[uuid.UUID]int64, len(ids))
	for _, d := range r.s.deliveries {
		if slices.Contains(ids, d.EndpointID) {
			counts[d.EndpointID]++
		}
	}
	return counts, nil
}

func (r *DeliveryRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, d := range r.s.deliveries {
		if d.Status.IsTerminal() && d.CreatedAt.Before(cutoff) {
			delete(r.s.deliveries, id)
			n++
		}
	}
	return n, nil
}

func (r *DeliveryRepo) GetStats(ctx context.Context) (*ports.DeliveryStats, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	s := &ports.DeliveryStats{Total: int64(len(r.s.deliveries))}
	for _, d := range r.s.deliveries {
		switch d.Status {
		case domain.DeliveryStatusPending:
			s.Pending++
		case domain.DeliveryStatusSending:
			s.Sending++
		case domain.DeliveryStatusDelivered:
			s.Delivered++
		case domain.DeliveryStatusFailed:
			s.Failed++
		}
	}
	return s, nil
}

// --- Audit ---

// AuditRepo implements ports.AuditRepository.
type AuditRepo struct {
	s *Store
}

func (r *AuditRepo) Create(ctx context.Context, log *domain.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.audit = append(r.s.audit, *log)
	return nil
}

// Entries returns a snapshot of recorded audit logs.
func (r *AuditRepo) Entries() []domain.AuditLog {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return slices.Clone(r.s.audit)
}
