package middleware

import (
	"net/http"

	"webhook-gateway/internal/core/domain"
	"webhook-gateway/internal/core/ports"

	"github.com/gin-gonic/gin"
)

// AuditLog records successful writes on routes whose handlers do not audit
// themselves. Endpoint and delivery changes are audited by the services.
func AuditLog(auditSvc ports.AuditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Only audit successful write operations (status 2xx)
		if c.Writer.Status() < 200 || c.Writer.Status() >= 300 {
			return
		}
		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead || c.Request.Method == http.MethodOptions {
			return
		}

		action, resourceType, resourceID := mapRouteToAction(c)
		if action == "" {
			return
		}

		actor := domain.AdminActor
		if a, ok := ports.ActorFromContext(c.Request.Context()); ok && a.ID != "" {
			actor = a.ID
		}

		auditSvc.Log(c.Request.Context(), ports.AuditEntry{
			Actor:        actor,
			Action:       action,
			ResourceType: resourceType,
			ResourceID:   resourceID,
			IPAddress:    c.ClientIP(),
			Details: map[string]any{
				"method": c.Request.Method,
				"path":   c.Request.URL.Path,
				"status": c.Writer.Status(),
			},
		})
	}
}

func mapRouteToAction(c *gin.Context) (domain.AuditAction, string, string) {
	switch c.FullPath() {
	case "/api/v1/events":
		return domain.AuditActionIngestEvent, "event", c.GetString(CtxEventType)
	case "/api/v1/admin/scheduler/start":
		return domain.AuditActionScheduler, "scheduler", "start"
	case "/api/v1/admin/scheduler/stop":
		return domain.AuditActionScheduler, "scheduler", "stop"
	case "/api/v1/admin/scheduler/trigger/:task":
		return domain.AuditActionScheduler, "scheduler", "trigger:" + c.Param("task")
	}
	return "", "", ""
}
