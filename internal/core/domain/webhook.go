package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// DeliveryStatus represents the state of a webhook delivery.
type DeliveryStatus string

const (
	DeliveryStatusPending   DeliveryStatus = "PENDING"
	DeliveryStatusSending   DeliveryStatus = "SENDING"
	DeliveryStatusDelivered DeliveryStatus = "DELIVERED"
	DeliveryStatusFailed    DeliveryStatus = "FAILED"
)

// TestEventType is the event type used by endpoint test deliveries.
const TestEventType = "webhook.test"

// CancelledMessage is recorded as the error of a cancelled delivery.
const CancelledMessage = "cancelled"

// InterruptedMessage is recorded when a delivery stuck in SENDING is released.
const InterruptedMessage = "delivery interrupted before its result was recorded"

var deliveryTransitions = map[DeliveryStatus][]DeliveryStatus{
	DeliveryStatusPending: {DeliveryStatusSending, DeliveryStatusFailed},
	DeliveryStatusSending: {DeliveryStatusDelivered, DeliveryStatusPending, DeliveryStatusFailed},
}

// Valid reports whether s is a known status.
func (s DeliveryStatus) Valid() bool {
	switch s {
	case DeliveryStatusPending, DeliveryStatusSending, DeliveryStatusDelivered, DeliveryStatusFailed:
		return true
	}
	return false
}

// IsTerminal returns true for DELIVERED and FAILED.
func (s DeliveryStatus) IsTerminal() bool {
	return s == DeliveryStatusDelivered || s == DeliveryStatusFailed
}

// CanTransitionTo reports whether the worker may move a delivery from s to next.
// Manual retry resets a delivery to PENDING and is not subject to this table.
func (s DeliveryStatus) CanTransitionTo(next DeliveryStatus) bool {
	for _, allowed := range deliveryTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Delivery is one attempt-tracked transmission of one event to one endpoint.
// Its ID is sent to receivers as the idempotency key.
type Delivery struct {
	ID             uuid.UUID       `json:"id"`
	EndpointID     uuid.UUID       `json:"endpoint_id"`
	EventType      string          `json:"event_type"`
	Payload        json.RawMessage `json:"payload"`
	Status         DeliveryStatus  `json:"status"`
	Attempts       int             `json:"attempts"`
	MaxAttempts    int             `json:"max_attempts"`
	ResponseStatus *int            `json:"response_status,omitempty"`
	ResponseBody   *string         `json:"response_body,omitempty"`
	ErrorMessage   *string         `json:"error_message,omitempty"`
	NextRetryAt    *time.Time      `json:"next_retry_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeliveredAt    *time.Time      `json:"delivered_at,omitempty"`
}

// IsDue reports whether a pending delivery may be sent at now.
func (d *Delivery) IsDue(now time.Time) bool {
	if d.Status != DeliveryStatusPending {
		return false
	}
	return d.NextRetryAt == nil || !d.NextRetryAt.After(now)
}

// CanRetry reports whether another attempt is allowed after the current one.
func (d *Delivery) CanRetry() bool {
	return d.Attempts < d.MaxAttempts
}

// Envelope is the JSON body POSTed to an endpoint.
type Envelope struct {
	ID        uuid.UUID       `json:"id"`
	Event     string          `json:"event"`
	CreatedAt time.Time       `json:"created_at"`
	Data      json.RawMessage `json:"data"`
}

// NewEnvelope builds the outbound body for d.
func NewEnvelope(d *Delivery) Envelope {
	data := d.Payload
	if len(data) == 0 {
		data = json.RawMessage("null")
	}
	return Envelope{
		ID:        d.ID,
		Event:     d.EventType,
		CreatedAt: d.CreatedAt.UTC(),
		Data:      data,
	}
}
