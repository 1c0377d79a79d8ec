package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"webhook-gateway/internal/core/domain"
	"webhook-gateway/internal/core/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AuditService records audit entries in the background.
type AuditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
	now  func() time.Time
	wg   sync.WaitGroup
}

// NewAuditService creates a new audit service.
// If repo is nil, audit entries are only written to the logger.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) *AuditService {
	return &AuditService{repo: repo, log: log, now: time.Now}
}

// Log records entry asynchronously. Persistence failures are logged and dropped.
func (s *AuditService) Log(ctx context.Context, entry ports.AuditEntry) {
	record := &domain.AuditLog{
		ID:           uuid.New(),
		Actor:        entry.Actor,
		Action:       entry.Action,
		ResourceType: entry.ResourceType,
		ResourceID:   entry.ResourceID,
		IPAddress:    entry.IPAddress,
		CreatedAt:    s.now().UTC(),
	}
	if len(entry.Details) > 0 {
		if b, err := json.Marshal(entry.Details); err == nil {
			record.Details = string(b)
		}
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		s.log.Info().
			Str("actor", record.Actor).
			Str("action", string(record.Action)).
			Str("resource_type", record.ResourceType).
			Str("resource_id", record.ResourceID).
			Str("ip", record.IPAddress).
			Msg("audit")

		if s.repo == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := s.repo.Create(ctx, record); err != nil {
			s.log.Warn().Err(err).Str("action", string(record.Action)).Msg("failed to persist audit log")
		}
	}()
}

// Wait blocks until pending audit writes finish.
func (s *AuditService) Wait() {
	s.wg.Wait()
}

// recordAudit logs an entry attributed to the caller in ctx, or to fallbackActor.
func recordAudit(ctx context.Context, svc ports.AuditService, fallbackActor string, action domain.AuditAction, resourceType, resourceID string, details map[string]any) {
	if svc == nil {
		return
	}
	actor, _ := ports.ActorFromContext(ctx)
	if actor.ID == "" {
		actor.ID = fallbackActor
	}
	svc.Log(ctx, ports.AuditEntry{
		Actor:        actor.ID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Details:      details,
		IPAddress:    actor.IP,
	})
}
