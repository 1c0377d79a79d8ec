package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Webhooks (WHK) ----

func ErrInvalidURL(reason string) *AppError {
	return New("WHK_001", "Invalid endpoint URL: "+reason, http.StatusBadRequest)
}

// Validation returns a WHK_002 validation error.
func Validation(message string) *AppError {
	return New("WHK_002", message, http.StatusBadRequest)
}

func ErrEndpointNotFound() *AppError {
	return New("WHK_003", "Webhook endpoint not found", http.StatusNotFound)
}

func ErrDeliveryNotFound() *AppError {
	return New("WHK_004", "Webhook delivery not found", http.StatusNotFound)
}

func ErrDeliveryNotCancellable() *AppError {
	return New("WHK_005", "Only pending deliveries can be cancelled", http.StatusConflict)
}

func ErrInvalidEvent() *AppError {
	return New("WHK_006", "Invalid event type", http.StatusBadRequest)
}

func ErrWebhooksDisabled() *AppError {
	return New("WHK_007", "Webhook delivery is disabled", http.StatusServiceUnavailable)
}

func ErrUnknownTask(name string) *AppError {
	return New("WHK_008", fmt.Sprintf("Unknown scheduler task %q", name), http.StatusBadRequest)
}

func ErrTaskBusy(name string) *AppError {
	return New("WHK_009", fmt.Sprintf("Scheduler task %q is already running", name), http.StatusConflict)
}

func ErrPayloadTooLarge() *AppError {
	return New("WHK_010", "Request body too large", http.StatusRequestEntityTooLarge)
}

// ---- Authentication (AUTH) ----

func ErrInvalidToken() *AppError {
	return New("AUTH_001", "Invalid or expired token", http.StatusUnauthorized)
}

func ErrInvalidAdminKey() *AppError {
	return New("AUTH_002", "Invalid admin key", http.StatusUnauthorized)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

func ErrEncryptionFailure(err error) *AppError {
	return Wrap("SYS_003", "Encryption service failure", http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}
