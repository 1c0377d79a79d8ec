package handler

import (
	"context"
	"strconv"

	"webhook-gateway/internal/adapter/http/dto"
	"webhook-gateway/internal/core/ports"
	"webhook-gateway/pkg/apperror"
	"webhook-gateway/pkg/response"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the operator surface: endpoints and deliveries across
// all owners, housekeeping and scheduler control.
type AdminHandler struct {
	adminSvc  ports.AdminService
	scheduler ports.Scheduler
	// baseCtx outlives requests; a scheduler started from a request must not
	// stop when that request ends.
	baseCtx context.Context
}

func NewAdminHandler(baseCtx context.Context, adminSvc ports.AdminService, scheduler ports.Scheduler) *AdminHandler {
	if baseCtx == nil {
		baseCtx = context.Background()
	}
	return &AdminHandler{adminSvc: adminSvc, scheduler: scheduler, baseCtx: baseCtx}
}

// ListEndpoints handles GET /api/v1/admin/endpoints.
func (h *AdminHandler) ListEndpoints(c *gin.Context) {
	params, err := endpointFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	items, total, err := h.adminSvc.ListEndpoints(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, dto.NewEndpointResponses(items), total, params.Page, params.PageSize)
}

// GetEndpoint handles GET /api/v1/admin/endpoints/:id.
func (h *AdminHandler) GetEndpoint(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	endpoint, err := h.adminSvc.GetEndpoint(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewEndpointResponse(endpoint))
}

// EnableEndpoint handles POST /api/v1/admin/endpoints/:id/enable.
func (h *AdminHandler) EnableEndpoint(c *gin.Context) {
	h.setActive(c, true)
}

// DisableEndpoint handles POST /api/v1/admin/endpoints/:id/disable.
func (h *AdminHandler) DisableEndpoint(c *gin.Context) {
	h.setActive(c, false)
}

func (h *AdminHandler) setActive(c *gin.Context, active bool) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	endpoint, err := h.adminSvc.SetEndpointActive(c.Request.Context(), id, active)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewEndpointResponse(endpoint))
}

// DeleteEndpoint handles DELETE /api/v1/admin/endpoints/:id.
func (h *AdminHandler) DeleteEndpoint(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.adminSvc.DeleteEndpoint(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "endpoint deleted"})
}

// ListDeliveries handles GET /api/v1/admin/deliveries.
func (h *AdminHandler) ListDeliveries(c *gin.Context) {
	params, err := deliveryFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	items, total, err := h.adminSvc.ListDeliveries(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, dto.NewDeliveryResponses(items), total, params.Page, params.PageSize)
}

// GetDelivery handles GET /api/v1/admin/deliveries/:id.
func (h *AdminHandler) GetDelivery(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	delivery, err := h.adminSvc.GetDelivery(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewDeliveryResponse(delivery))
}

// RetryDelivery handles POST /api/v1/admin/deliveries/:id/retry.
func (h *AdminHandler) RetryDelivery(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	delivery, err := h.adminSvc.RetryDelivery(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewDeliveryResponse(delivery))
}

// CancelDelivery handles POST /api/v1/admin/deliveries/:id/cancel.
func (h *AdminHandler) CancelDelivery(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.adminSvc.CancelDelivery(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "delivery cancelled"})
}

// Purge handles POST /api/v1/admin/deliveries/purge?days=N.
func (h *AdminHandler) Purge(c *gin.Context) {
	days, err := strconv.Atoi(c.Query("days"))
	if err != nil {
		response.Error(c, apperror.Validation("days must be a positive integer"))
		return
	}
	deleted, err := h.adminSvc.Purge(c.Request.Context(), days)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.PurgeResponse{DaysOld: days, Deleted: deleted})
}

// Stats handles GET /api/v1/admin/stats.
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminSvc.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, stats)
}

// SchedulerStatus handles GET /api/v1/admin/scheduler.
func (h *AdminHandler) SchedulerStatus(c *gin.Context) {
	response.OK(c, h.scheduler.Status())
}

// StartScheduler handles POST /api/v1/admin/scheduler/start.
func (h *AdminHandler) StartScheduler(c *gin.Context) {
	if err := h.scheduler.Start(h.baseCtx); err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}
	response.OK(c, h.scheduler.Status())
}

// StopScheduler handles POST /api/v1/admin/scheduler/stop. It returns once
// in-flight runs have finished.
func (h *AdminHandler) StopScheduler(c *gin.Context) {
	h.scheduler.Stop()
	response.OK(c, h.scheduler.Status())
}

// TriggerTask handles POST /api/v1/admin/scheduler/trigger/:task and runs
// the task on the request goroutine.
func (h *AdminHandler) TriggerTask(c *gin.Context) {
	if err := h.scheduler.Trigger(c.Request.Context(), c.Param("task")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, h.scheduler.Status())
}
