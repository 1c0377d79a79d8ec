package handler

import (
	"webhook-gateway/internal/adapter/http/dto"
	"webhook-gateway/internal/adapter/http/middleware"
	"webhook-gateway/internal/core/domain"
	"webhook-gateway/internal/core/ports"
	"webhook-gateway/pkg/response"

	"github.com/gin-gonic/gin"
)

// EventHandler accepts domain events from trusted producers over HTTP.
type EventHandler struct {
	dispatcher ports.DispatcherService
}

func NewEventHandler(dispatcher ports.DispatcherService) *EventHandler {
	return &EventHandler{dispatcher: dispatcher}
}

// Ingest handles POST /api/v1/events. It answers 202 once deliveries are
// queued; sending happens on the scheduler.
func (h *EventHandler) Ingest(c *gin.Context) {
	var req dto.IngestEventRequest
	if !bindJSON(c, &req) {
		return
	}
	c.Set(middleware.CtxEventType, req.Event)

	actor := req.Actor
	if actor == "" {
		actor = domain.AdminActor
	}
	var payload any
	if len(req.Data) > 0 {
		payload = req.Data
	}

	n, err := h.dispatcher.Dispatch(c.Request.Context(), req.Event, payload, actor)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Accepted(c, dto.DispatchResponse{Event: req.Event, Deliveries: n})
}
