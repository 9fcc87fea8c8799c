package errors

import (
	"fmt"
	"net/http"

	"github.com/go-chi/render"
)

// APIError is an HTTP-layer failure that never reached the pipeline:
// bad query parameters, throttling, disabled endpoints
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

// Render implements render.Renderer
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// ValidationError names one rejected field and why
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewWithDetails creates an APIError with a details payload
func NewWithDetails(statusCode int, errorCode, message string, details interface{}) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
		Details:    details,
	}
}

// ErrRateLimitExceeded is returned by the rate limiter
var ErrRateLimitExceeded = NewWithDetails(http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "Rate limit exceeded", nil)

// InvalidParameter rejects one query parameter, such as a paging offset that is not a number
func InvalidParameter(field string, err error) *APIError {
	return NewWithDetails(http.StatusBadRequest, "INVALID_PARAMETER", fmt.Sprintf("invalid value for %s", field), ValidationError{
		Field:   field,
		Message: err.Error(),
	})
}
