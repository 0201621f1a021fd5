package errors

import "fmt"

// ErrorCode represents a Glance error code.
type ErrorCode string

const (
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST" // 400
	ErrNotFound       ErrorCode = "NOT_FOUND"       // 404
	ErrCaptureFailed  ErrorCode = "CAPTURE_FAILED"  // 500
	ErrWebhookFailed  ErrorCode = "WEBHOOK_FAILED"  // 502
	ErrInternal       ErrorCode = "INTERNAL"        // 500
)

// GlanceError represents a structured error with code, status, and details.
type GlanceError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *GlanceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *GlanceError {
	return &GlanceError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for when a capture cannot be found.
func NewNotFound(id string) *GlanceError {
	return &GlanceError{
		Code:    ErrNotFound,
		Status:  404,
		Message: "Capture not found",
		Details: map[string]any{"id": id},
	}
}

// NewCaptureFailed creates a 500 error for assembly or persistence failures.
// Source-adapter degradation never produces this; only blob/index writes do.
func NewCaptureFailed(err error) *GlanceError {
	msg := "capture failed"
	if err != nil {
		msg = fmt.Sprintf("capture failed: %v", err)
	}
	return &GlanceError{
		Code:    ErrCaptureFailed,
		Status:  500,
		Message: msg,
	}
}

// NewWebhookFailed creates a 502 error carrying the delivery failure detail.
func NewWebhookFailed(msg string, statusCode int) *GlanceError {
	details := map[string]any{}
	if statusCode != 0 {
		details["status_code"] = statusCode
	}
	return &GlanceError{
		Code:    ErrWebhookFailed,
		Status:  502,
		Message: msg,
		Details: details,
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *GlanceError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &GlanceError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is a GlanceError with the given code.
func Is(err error, code ErrorCode) bool {
	if gErr, ok := err.(*GlanceError); ok {
		return gErr.Code == code
	}
	return false
}
