package handler

import (
	"webhook-gateway/internal/adapter/http/dto"
	"webhook-gateway/internal/core/ports"
	"webhook-gateway/pkg/response"

	"github.com/gin-gonic/gin"
)

// WebhookHandler serves the owner-facing endpoint registry.
// Every route is scoped to the owner from the bearer token.
type WebhookHandler struct {
	endpointSvc ports.EndpointService
	dispatcher  ports.DispatcherService
	worker      ports.DeliveryWorker
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(endpointSvc ports.EndpointService, dispatcher ports.DispatcherService, worker ports.DeliveryWorker) *WebhookHandler {
	return &WebhookHandler{endpointSvc: endpointSvc, dispatcher: dispatcher, worker: worker}
}

// Create handles POST /api/v1/webhooks.
func (h *WebhookHandler) Create(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	var req dto.CreateEndpointRequest
	if !bindJSON(c, &req) {
		return
	}

	created, err := h.endpointSvc.Create(c.Request.Context(), ports.CreateEndpointRequest{
		OwnerID: owner,
		Name:    req.Name,
		URL:     req.URL,
		Events:  req.Events,
		Secret:  req.Secret,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewEndpointSecretResponse(created.Endpoint, created.Secret))
}

// List handles GET /api/v1/webhooks.
func (h *WebhookHandler) List(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	items, err := h.endpointSvc.List(c.Request.Context(), owner)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewEndpointResponses(items))
}

// Get handles GET /api/v1/webhooks/:id.
func (h *WebhookHandler) Get(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	endpoint, err := h.endpointSvc.Get(c.Request.Context(), id, owner)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewEndpointResponse(endpoint))
}

// Update handles PATCH /api/v1/webhooks/:id.
func (h *WebhookHandler) Update(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateEndpointRequest
	if !bindJSON(c, &req) {
		return
	}

	endpoint, err := h.endpointSvc.Update(c.Request.Context(), id, owner, ports.UpdateEndpointRequest{
		Name:     req.Name,
		URL:      req.URL,
		Events:   req.Events,
		IsActive: req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewEndpointResponse(endpoint))
}

// Delete handles DELETE /api/v1/webhooks/:id.
func (h *WebhookHandler) Delete(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.endpointSvc.Delete(c.Request.Context(), id, owner); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "endpoint deleted"})
}

// Enable handles POST /api/v1/webhooks/:id/enable.
func (h *WebhookHandler) Enable(c *gin.Context) {
	h.setActive(c, true)
}

// Disable handles POST /api/v1/webhooks/:id/disable.
func (h *WebhookHandler) Disable(c *gin.Context) {
	h.setActive(c, false)
}

func (h *WebhookHandler) setActive(c *gin.Context, active bool) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	toggle := h.endpointSvc.Disable
	if active {
		toggle = h.endpointSvc.Enable
	}
	endpoint, err := toggle(c.Request.Context(), id, owner)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewEndpointResponse(endpoint))
}

// RotateSecret handles POST /api/v1/webhooks/:id/rotate-secret.
// The previous secret stops verifying immediately.
func (h *WebhookHandler) RotateSecret(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	rotated, err := h.endpointSvc.RotateSecret(c.Request.Context(), id, owner)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewEndpointSecretResponse(rotated.Endpoint, rotated.Secret))
}

// Test handles POST /api/v1/webhooks/:id/test and returns the attempt outcome.
func (h *WebhookHandler) Test(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	delivery, err := h.dispatcher.SendTest(c.Request.Context(), id, owner)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewDeliveryResponse(delivery))
}

// ListDeliveries handles GET /api/v1/webhooks/:id/deliveries.
func (h *WebhookHandler) ListDeliveries(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	params, err := deliveryFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	items, total, err := h.endpointSvc.ListDeliveries(c.Request.Context(), id, owner, params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, dto.NewDeliveryResponses(items), total, params.Page, params.PageSize)
}

// GetDelivery handles GET /api/v1/webhooks/:id/deliveries/:deliveryId.
func (h *WebhookHandler) GetDelivery(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	deliveryID, ok := uuidParam(c, "deliveryId")
	if !ok {
		return
	}
	delivery, err := h.endpointSvc.GetDelivery(c.Request.Context(), id, deliveryID, owner)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewDeliveryResponse(delivery))
}

// RetryDelivery handles POST /api/v1/webhooks/:id/deliveries/:deliveryId/retry.
func (h *WebhookHandler) RetryDelivery(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	deliveryID, ok := uuidParam(c, "deliveryId")
	if !ok {
		return
	}
	delivery, err := h.worker.RetryForOwner(c.Request.Context(), id, deliveryID, owner)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewDeliveryResponse(delivery))
}
