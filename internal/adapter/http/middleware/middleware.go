package middleware

import (
	"crypto/sha256"
	"net/http"
	"strings"
	"sync"
	"time"

	"webhook-gateway/internal/core/domain"
	"webhook-gateway/internal/core/ports"
	"webhook-gateway/pkg/apperror"
	"webhook-gateway/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	HeaderAdminKey  = "X-Admin-Key"
	HeaderRequestID = "X-Request-Id"

	// Context keys
	CtxOwnerID   = "owner_id"
	CtxRequestID = "request_id"
	CtxAdmin     = "admin"
	CtxEventType = "event_type"
)

// RequestID propagates the caller's X-Request-Id or assigns a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > 64 {
			id = uuid.New().String()
		}
		c.Set(CtxRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// JWTAuth validates owner bearer tokens. The token subject becomes the owner id
// for every owner-scoped route and the actor of audited changes.
func JWTAuth(tokenSvc ports.TokenService, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if len(authHeader) < 8 || !strings.EqualFold(authHeader[:7], "Bearer ") {
			response.Error(c, apperror.ErrInvalidToken())
			c.Abort()
			return
		}

		claims, err := tokenSvc.Validate(authHeader[7:])
		if err != nil || claims.OwnerID == "" {
			log.Debug().Err(err).Str("client_ip", c.ClientIP()).Msg("bearer token rejected")
			response.Error(c, apperror.ErrInvalidToken())
			c.Abort()
			return
		}

		c.Set(CtxOwnerID, claims.OwnerID)
		withActor(c, claims.OwnerID)
		c.Next()
	}
}

// AdminAuth checks X-Admin-Key against the configured Argon2id hash.
// An empty hash disables the admin surface entirely.
//
// Keys that verified once are remembered by SHA-256 digest so the Argon2
// cost is paid once per key rather than once per request.
func AdminAuth(hashSvc ports.HashService, keyHash string, log zerolog.Logger) gin.HandlerFunc {
	var verified sync.Map // [32]byte -> struct{}

	return func(c *gin.Context) {
		key := c.GetHeader(HeaderAdminKey)
		if key == "" || keyHash == "" {
			response.Error(c, apperror.ErrInvalidAdminKey())
			c.Abort()
			return
		}

		digest := sha256.Sum256([]byte(key))
		if _, ok := verified.Load(digest); !ok {
			match, err := hashSvc.Verify(key, keyHash)
			if err != nil {
				log.Error().Err(err).Msg("admin key hash is malformed")
			}
			if !match {
				log.Warn().Str("client_ip", c.ClientIP()).Str("path", c.Request.URL.Path).Msg("admin key rejected")
				response.Error(c, apperror.ErrInvalidAdminKey())
				c.Abort()
				return
			}
			verified.Store(digest, struct{}{})
		}

		c.Set(CtxAdmin, true)
		withActor(c, domain.AdminActor)
		c.Next()
	}
}

func withActor(c *gin.Context, id string) {
	ctx := ports.ContextWithActor(c.Request.Context(), ports.ActorInfo{ID: id, IP: c.ClientIP()})
	c.Request = c.Request.WithContext(ctx)
}

// RequestLogger creates a middleware that logs every HTTP request.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		event := log.Info()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		} else if status >= http.StatusBadRequest {
			event = log.Warn()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", latency).
			Str("client_ip", c.ClientIP()).
			Str("request_id", c.GetString(CtxRequestID)).
			Msg("http request")
	}
}

// Recovery creates a panic recovery middleware.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Str("path", c.Request.URL.Path).Msg("panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error_code": "SYS_001",
					"message":    "Internal server error",
					"request_id": c.GetString(CtxRequestID),
				})
			}
		}()
		c.Next()
	}
}
