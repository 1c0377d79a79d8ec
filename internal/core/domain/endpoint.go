package domain

import (
	"time"

	"github.com/google/uuid"
)

// Endpoint is an owner-registered URL that receives signed event notifications.
type Endpoint struct {
	ID            uuid.UUID  `json:"id"`
	OwnerID       string     `json:"owner_id"`
	Name          string     `json:"name"`
	URL           string     `json:"url"`
	SecretHashEnc string     `json:"-"` // Encrypted signing key, never expose
	Events        []string   `json:"events"`
	IsActive      bool       `json:"is_active"`
	FailureCount  int        `json:"failure_count"`
	LastSuccessAt *time.Time `json:"last_success_at,omitempty"`
	LastFailureAt *time.Time `json:"last_failure_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Computed on read.
	DeliveryCount int64 `json:"delivery_count"`
}

// Subscribes reports whether the endpoint is subscribed to eventType.
func (e *Endpoint) Subscribes(eventType string) bool {
	for _, ev := range e.Events {
		if ev == eventType {
			return true
		}
	}
	return false
}

// EndpointHealth is the bookkeeping state returned after a recorded attempt.
type EndpointHealth struct {
	FailureCount int
	IsActive     bool
}
