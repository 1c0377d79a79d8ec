package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"webhook-gateway/internal/adapter/http/dto"
	"webhook-gateway/internal/adapter/http/middleware"
	"webhook-gateway/internal/core/domain"
	"webhook-gateway/internal/core/ports"
	"webhook-gateway/pkg/apperror"
	"webhook-gateway/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// bindJSON binds and sanitizes a request body, writing the error response
// itself when binding fails.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, apperror.ErrPayloadTooLarge())
			return false
		}
		response.Error(c, apperror.Validation(err.Error()))
		return false
	}
	dto.SanitizeStruct(dst)
	return true
}

// uuidParam parses a path parameter, writing a 400 when it is malformed.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.Error(c, apperror.Validation("invalid "+name))
		return uuid.Nil, false
	}
	return id, true
}

// ownerID returns the authenticated owner set by JWTAuth.
func ownerID(c *gin.Context) (string, bool) {
	owner := c.GetString(middleware.CtxOwnerID)
	if owner == "" {
		response.Error(c, apperror.ErrInvalidToken())
		return "", false
	}
	return owner, true
}

// pagination reads page and page_size, falling back to defaults on bad input.
func pagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}
	return page, pageSize
}

// deliveryFilter parses the delivery list query: status, event, endpoint_id,
// owner, from and to. Times are RFC 3339 or unix seconds.
func deliveryFilter(c *gin.Context) (ports.DeliveryListParams, error) {
	params := ports.DeliveryListParams{
		EventType: c.Query("event"),
		OwnerID:   c.Query("owner"),
	}
	params.Page, params.PageSize = pagination(c)

	if s := c.Query("status"); s != "" {
		status := domain.DeliveryStatus(strings.ToUpper(s))
		if !status.Valid() {
			return params, apperror.Validation("invalid status " + s)
		}
		params.Status = &status
	}
	if s := c.Query("endpoint_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return params, apperror.Validation("invalid endpoint_id")
		}
		params.EndpointID = &id
	}
	var err error
	if params.From, err = timeQuery(c, "from"); err != nil {
		return params, err
	}
	if params.To, err = timeQuery(c, "to"); err != nil {
		return params, err
	}
	return params, nil
}

// endpointFilter parses the admin endpoint list query: owner, active and event.
func endpointFilter(c *gin.Context) (ports.EndpointListParams, error) {
	params := ports.EndpointListParams{
		OwnerID:   c.Query("owner"),
		EventType: c.Query("event"),
	}
	params.Page, params.PageSize = pagination(c)

	if s := c.Query("active"); s != "" {
		active, err := strconv.ParseBool(s)
		if err != nil {
			return params, apperror.Validation("active must be true or false")
		}
		params.Active = &active
	}
	return params, nil
}

func timeQuery(c *gin.Context, name string) (*time.Time, error) {
	s := c.Query(name)
	if s == "" {
		return nil, nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		t := time.Unix(unix, 0).UTC()
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, apperror.Validation(name + " must be RFC 3339 or unix seconds")
	}
	return &t, nil
}
