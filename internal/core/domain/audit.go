package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the type of audited action.
type AuditAction string

const (
	AuditActionCreateEndpoint  AuditAction = "CREATE_ENDPOINT"
	AuditActionUpdateEndpoint  AuditAction = "UPDATE_ENDPOINT"
	AuditActionDeleteEndpoint  AuditAction = "DELETE_ENDPOINT"
	AuditActionEnableEndpoint  AuditAction = "ENABLE_ENDPOINT"
	AuditActionDisableEndpoint AuditAction = "DISABLE_ENDPOINT"
	AuditActionRotateSecret    AuditAction = "ROTATE_SECRET"
	AuditActionTestEndpoint    AuditAction = "TEST_ENDPOINT"
	AuditActionAutoDisable     AuditAction = "AUTO_DISABLE"
	AuditActionRetryDelivery   AuditAction = "RETRY_DELIVERY"
	AuditActionCancelDelivery  AuditAction = "CANCEL_DELIVERY"
	AuditActionPurge           AuditAction = "PURGE_DELIVERIES"
	AuditActionIngestEvent     AuditAction = "INGEST_EVENT"
	AuditActionScheduler       AuditAction = "SCHEDULER_CONTROL"
)

// AdminActor is recorded as the actor of operator actions.
const AdminActor = "admin"

// SystemActor is recorded for actions taken by the worker itself.
const SystemActor = "system"

// AuditLog records a single audited action in the system.
type AuditLog struct {
	ID           uuid.UUID   `json:"id"`
	Actor        string      `json:"actor"`
	Action       AuditAction `json:"action"`
	ResourceType string      `json:"resource_type"`
	ResourceID   string      `json:"resource_id,omitempty"`
	Details      string      `json:"details,omitempty"` // JSON string
	IPAddress    string      `json:"ip_address"`
	CreatedAt    time.Time   `json:"created_at"`
}
