package dto

import (
	"encoding/json"
	"time"

	"webhook-gateway/internal/core/domain"
)

// CreateEndpointRequest is the request body for endpoint registration.
// URL rules are enforced by the endpoint service so that every caller gets
// the same WHK_001 error.
type CreateEndpointRequest struct {
	Name   string   `json:"name" binding:"required,max=255" sanitize:"html"`
	URL    string   `json:"url" binding:"required,max=2048"`
	Events []string `json:"events" binding:"required,min=1,max=50,dive,event_type"`
	Secret string   `json:"secret,omitempty" binding:"omitempty,min=16,max=255"`
}

// UpdateEndpointRequest is a partial update. Omitted fields are unchanged.
type UpdateEndpointRequest struct {
	Name     *string  `json:"name,omitempty" binding:"omitempty,max=255" sanitize:"html"`
	URL      *string  `json:"url,omitempty" binding:"omitempty,max=2048"`
	Events   []string `json:"events,omitempty" binding:"omitempty,min=1,max=50,dive,event_type"`
	IsActive *bool    `json:"is_active,omitempty"`
}

// IngestEventRequest is the request body for POST /api/v1/events.
type IngestEventRequest struct {
	Event string          `json:"event" binding:"required,event_type"`
	Data  json.RawMessage `json:"data,omitempty"`
	Actor string          `json:"actor,omitempty" binding:"omitempty,max=100,safe_id"`
}

// EndpointResponse is an endpoint as shown to owners and operators.
// The signing secret is never part of it.
type EndpointResponse struct {
	ID            string     `json:"id"`
	OwnerID       string     `json:"owner_id"`
	Name          string     `json:"name"`
	URL           string     `json:"url"`
	Events        []string   `json:"events"`
	IsActive      bool       `json:"is_active"`
	FailureCount  int        `json:"failure_count"`
	DeliveryCount int64      `json:"delivery_count"`
	LastSuccessAt *time.Time `json:"last_success_at,omitempty"`
	LastFailureAt *time.Time `json:"last_failure_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// EndpointSecretResponse is returned by create and rotate-secret, the only
// times the plaintext secret leaves the service.
type EndpointSecretResponse struct {
	EndpointResponse
	Secret string `json:"secret"`
}

// DeliveryResponse is one delivery with its last attempt outcome.
type DeliveryResponse struct {
	ID             string          `json:"id"`
	EndpointID     string          `json:"endpoint_id"`
	EventType      string          `json:"event_type"`
	Payload        json.RawMessage `json:"payload"`
	Status         string          `json:"status"`
	Attempts       int             `json:"attempts"`
	MaxAttempts    int             `json:"max_attempts"`
	ResponseStatus *int            `json:"response_status,omitempty"`
	ResponseBody   *string         `json:"response_body,omitempty"`
	ErrorMessage   *string         `json:"error_message,omitempty"`
	NextRetryAt    *time.Time      `json:"next_retry_at,omitempty"`
	DeliveredAt    *time.Time      `json:"delivered_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// DispatchResponse reports how many deliveries an event produced.
type DispatchResponse struct {
	Event      string `json:"event"`
	Deliveries int    `json:"deliveries"`
}

// PurgeResponse reports a manual purge.
type PurgeResponse struct {
	DaysOld int   `json:"days_old"`
	Deleted int64 `json:"deleted"`
}

// NewEndpointResponse maps a domain endpoint.
func NewEndpointResponse(e *domain.Endpoint) EndpointResponse {
	events := e.Events
	if events == nil {
		events = []string{}
	}
	return EndpointResponse{
		ID:            e.ID.String(),
		OwnerID:       e.OwnerID,
		Name:          e.Name,
		URL:           e.URL,
		Events:        events,
		IsActive:      e.IsActive,
		FailureCount:  e.FailureCount,
		DeliveryCount: e.DeliveryCount,
		LastSuccessAt: e.LastSuccessAt,
		LastFailureAt: e.LastFailureAt,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func NewEndpointResponses(items []domain.Endpoint) []EndpointResponse {
	out := make([]EndpointResponse, 0, len(items))
	for i := range items {
		out = append(out, NewEndpointResponse(&items[i]))
	}
	return out
}

func NewEndpointSecretResponse(e *domain.Endpoint, secret string) EndpointSecretResponse {
	return EndpointSecretResponse{EndpointResponse: NewEndpointResponse(e), Secret: secret}
}

// NewDeliveryResponse maps a domain delivery.
func NewDeliveryResponse(d *domain.Delivery) DeliveryResponse {
	return DeliveryResponse{
		ID:             d.ID.String(),
		EndpointID:     d.EndpointID.String(),
		EventType:      d.EventType,
		Payload:        d.Payload,
		Status:         string(d.Status),
		Attempts:       d.Attempts,
		MaxAttempts:    d.MaxAttempts,
		ResponseStatus: d.ResponseStatus,
		ResponseBody:   d.ResponseBody,
		ErrorMessage:   d.ErrorMessage,
		NextRetryAt:    d.NextRetryAt,
		DeliveredAt:    d.DeliveredAt,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

func NewDeliveryResponses(items []domain.Delivery) []DeliveryResponse {
	out := make([]DeliveryResponse, 0, len(items))
	for i := range items {
		out = append(out, NewDeliveryResponse(&items[i]))
	}
	return out
}
