package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNoCredential is returned when a protected request carries no token.
	ErrNoCredential = errors.New("No token provided")
	// ErrUnauthorized is returned when a token is malformed, tampered with, expired or revoked.
	ErrUnauthorized = errors.New("Unauthorized")
	// ErrForbidden is returned when the principal does not own the resource.
	ErrForbidden = errors.New("Forbidden")
	// ErrAdminRequired is returned when an admin-only action is attempted without the admin role.
	ErrAdminRequired = errors.New("Require Admin Role!")

	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("User not found")
	// ErrInvalidPassword is returned when the supplied password does not match the stored hash.
	ErrInvalidPassword = errors.New("Invalid password")
	// ErrEmailExists is returned when the email is already registered to another user.
	ErrEmailExists = errors.New("Email already exists")

	// ErrProductNotFound is returned when a catalog package does not exist.
	ErrProductNotFound = errors.New("Product not found")
	// ErrBookingNotFound is returned when no booking has the requested id.
	ErrBookingNotFound = errors.New("Booking not found")
	// ErrNoPendingBooking is returned when the booking exists but is no longer Pending,
	// or when no Pending booking matches a cancellation.
	ErrNoPendingBooking = errors.New("No matching pending booking")
	// ErrNotificationNotFound is returned when the notification does not exist for the caller.
	ErrNotificationNotFound = errors.New("Notification not found")
)

// ValidationError reports missing or malformed input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a validation error with a client-facing message.
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Error   string `json:"error,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Internal   error
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse. Internal detail is
// only attached when withDetail is set.
func (e *HTTPError) ToErrorResponse(withDetail bool) ErrorResponse {
	resp := ErrorResponse{
		Message: e.Message,
		Code:    e.Code,
	}
	if withDetail && e.Internal != nil {
		resp.Error = e.Internal.Error()
	}
	return resp
}

var mapping = []struct {
	err    error
	status int
	code   string
}{
	{ErrNoCredential, http.StatusForbidden, "NO_CREDENTIAL"},
	{ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
	{ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
	{ErrAdminRequired, http.StatusForbidden, "FORBIDDEN"},
	{ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
	{ErrInvalidPassword, http.StatusUnauthorized, "INVALID_PASSWORD"},
	{ErrEmailExists, http.StatusBadRequest, "DUPLICATE_KEY"},
	{ErrProductNotFound, http.StatusNotFound, "PRODUCT_NOT_FOUND"},
	{ErrBookingNotFound, http.StatusNotFound, "BOOKING_NOT_FOUND"},
	{ErrNoPendingBooking, http.StatusNotFound, "NO_PENDING_BOOKING"},
	{ErrNotificationNotFound, http.StatusNotFound, "NOTIFICATION_NOT_FOUND"},
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors are store
// failures and map to 500 with the cause kept as internal detail.
func MapErrorToHTTP(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return NewHTTPError(http.StatusBadRequest, validationErr.Message, "VALIDATION_ERROR")
	}

	for _, m := range mapping {
		if errors.Is(err, m.err) {
			return NewHTTPError(m.status, m.err.Error(), m.code)
		}
	}

	return &HTTPError{
		StatusCode: http.StatusInternalServerError,
		Message:    "Internal server error",
		Code:       "STORE_ERROR",
		Internal:   err,
	}
}
