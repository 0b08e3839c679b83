package routes

import (
	"errors"
	"net/http"

	"evaluation-backend/internal/evaluation"
	"evaluation-backend/internal/jwt"
	"evaluation-backend/internal/storage"
)

// HTTPError represents an error with an associated HTTP status code and user message
type HTTPError struct {
	Err        error    // The underlying error
	StatusCode int      // HTTP status code
	Message    string   // User-friendly message
	StopCodes  []string // Optional stop codes for client-side handling
	Internal   bool     // Whether this is an internal error (hide details from user)
}

// ErrorInfo contains error metadata for user-facing errors
type ErrorInfo struct {
	Message   string   // User-friendly message
	StopCodes []string // Optional stop codes for client-side application
}

// Error implements the error interface
func (e *HTTPError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *HTTPError) Unwrap() error {
	return e.Err
}

// NewHTTPError creates a new HTTPError
func NewHTTPError(statusCode int, err error, message string, stopCodes ...string) *HTTPError {
	return &HTTPError{
		Err:        err,
		StatusCode: statusCode,
		Message:    message,
		StopCodes:  stopCodes,
		Internal:   statusCode >= 500,
	}
}

// Routes-specific errors (that don't conflict with other packages)
var (
	// Validation errors
	ErrInvalidRequest   = errors.New("invalid request")
	ErrMissingParameter = errors.New("missing required parameter")
	ErrDeviceIDRequired = errors.New("device id is required")

	// Authorization errors
	ErrUnauthorized = errors.New("unauthorized")

	// Internal errors
	ErrInternalServer      = errors.New("internal server error")
	ErrDatabaseError       = errors.New("database error")
	ErrServiceNotAvailable = errors.New("evaluation service not available")
)

// errorStatusMap maps errors to HTTP status codes
var errorStatusMap = map[error]int{
	// 400 Bad Request
	ErrInvalidRequest:   http.StatusBadRequest,
	ErrMissingParameter: http.StatusBadRequest,
	ErrDeviceIDRequired: http.StatusBadRequest,

	// 401 Unauthorized
	ErrUnauthorized:      http.StatusUnauthorized,
	jwt.ErrNonValidToken: http.StatusUnauthorized,

	// 403 Forbidden
	jwt.ErrNotAdminToken: http.StatusForbidden,

	// 409 Conflict
	evaluation.ErrAlreadyVoted: http.StatusConflict,

	// 500 Internal Server Error
	ErrInternalServer:              http.StatusInternalServerError,
	ErrDatabaseError:               http.StatusInternalServerError,
	ErrServiceNotAvailable:         http.StatusInternalServerError,
	storage.ErrDuplicateEvaluation: http.StatusInternalServerError,
}

// errorInfoMap maps errors to user-friendly messages and optional stop codes
var errorInfoMap = map[error]ErrorInfo{
	ErrInvalidRequest: {
		Message:   "Invalid request format",
		StopCodes: []string{"INVALID_REQUEST"},
	},
	ErrMissingParameter: {
		Message:   "Required parameter is missing",
		StopCodes: []string{"MISSING_PARAMETER"},
	},
	ErrDeviceIDRequired: {
		Message:   "Device ID is required",
		StopCodes: []string{"DEVICE_ID_REQUIRED"},
	},

	ErrUnauthorized: {
		Message:   "Authentication required",
		StopCodes: []string{"AUTH_REQUIRED"},
	},
	jwt.ErrNonValidToken: {
		Message:   "Invalid or expired admin token",
		StopCodes: []string{"AUTH_INVALID_TOKEN"},
	},
	jwt.ErrNotAdminToken: {
		Message:   "Admin role required",
		StopCodes: []string{"ADMIN_REQUIRED"},
	},

	evaluation.ErrAlreadyVoted: {
		Message:   "Device already voted today",
		StopCodes: []string{"ALREADY_VOTED"},
	},

	// Internal (no stop codes, details stay server-side)
	ErrInternalServer: {
		Message: "An internal error occurred",
	},
	ErrDatabaseError: {
		Message: "Database operation failed",
	},
	ErrServiceNotAvailable: {
		Message: "Service is temporarily unavailable",
	},
	storage.ErrDuplicateEvaluation: {
		Message: "An internal error occurred",
	},
}

// GetErrorStatus returns the HTTP status code for an error
func GetErrorStatus(err error) int {
	// Check if it's already an HTTPError
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}

	// Validation errors from the submission service are client faults
	if evaluation.IsValidationError(err) {
		return http.StatusBadRequest
	}

	// Check direct match
	if status, ok := errorStatusMap[err]; ok {
		return status
	}

	// Check if error wraps a known error
	for knownErr, status := range errorStatusMap {
		if errors.Is(err, knownErr) {
			return status
		}
	}

	// Default to 500 Internal Server Error
	return http.StatusInternalServerError
}

// GetErrorInfo returns error information including message and stop codes
func GetErrorInfo(err error) ErrorInfo {
	// Check if it's an HTTPError with custom info
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return ErrorInfo{
			Message:   httpErr.Message,
			StopCodes: httpErr.StopCodes,
		}
	}

	// Validation errors carry the missing field name in the message
	if evaluation.IsValidationError(err) {
		return ErrorInfo{
			Message:   err.Error(),
			StopCodes: []string{"MISSING_FIELD"},
		}
	}

	// Check direct match
	if info, ok := errorInfoMap[err]; ok {
		return info
	}

	// Check if error wraps a known error
	for knownErr, info := range errorInfoMap {
		if errors.Is(err, knownErr) {
			return info
		}
	}

	// For unknown errors, return a generic message for 5xx, specific for others
	status := GetErrorStatus(err)
	if status >= 500 {
		return ErrorInfo{Message: "An internal error occurred"}
	}
	return ErrorInfo{Message: err.Error()}
}

// GetErrorMessage returns a user-friendly message for an error
func GetErrorMessage(err error) string {
	return GetErrorInfo(err).Message
}
