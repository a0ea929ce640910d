package navigation

import "fmt"

// Error codes for navigation failures.
const (
	ErrCodeValidation          = "VALIDATION_ERROR"
	ErrCodeInvalidState        = "INVALID_STATE"
	ErrCodeInvalidCoordinates  = "INVALID_COORDINATES"
	ErrCodePlaceNotFound       = "PLACE_NOT_FOUND"
	ErrCodeNoRouteFound        = "NO_ROUTE_FOUND"
	ErrCodeRequestTimeout      = "REQUEST_TIMEOUT"
	ErrCodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
)

// DomainError is a navigation failure with a machine-readable code and a
// message suitable for direct speech output.
type DomainError struct {
	Code    string
	Message string
	cause   error
}

// Error returns the speakable message.
func (e *DomainError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause, if any.
func (e *DomainError) Unwrap() error {
	return e.cause
}

// NewValidationError creates an error for invalid caller input.
func NewValidationError(message string) *DomainError {
	return &DomainError{Code: ErrCodeValidation, Message: message}
}

// NewInvalidStateError creates an error for a disallowed status transition.
func NewInvalidStateError(from, to string) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidState,
		Message: fmt.Sprintf("cannot transition session from %s to %s", from, to),
	}
}

// NewInvalidCoordinatesError creates an error for an out-of-range position.
func NewInvalidCoordinatesError(lat, lon float64) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidCoordinates,
		Message: fmt.Sprintf("I couldn't read your position (%.4f, %.4f doesn't look like a valid location).", lat, lon),
	}
}

// NewPlaceNotFoundError creates an error for a destination the geocoder
// could not resolve.
func NewPlaceNotFoundError(query string) *DomainError {
	return &DomainError{
		Code:    ErrCodePlaceNotFound,
		Message: fmt.Sprintf("I couldn't find a place called %s. Could you try a different name?", query),
	}
}

// NewNoRouteFoundError creates an error for a destination with no usable
// walking route.
func NewNoRouteFoundError(query string) *DomainError {
	return &DomainError{
		Code:    ErrCodeNoRouteFound,
		Message: fmt.Sprintf("I couldn't find a walking route to %s. It might be too far or unreachable on foot.", query),
	}
}

// NewRequestTimeoutError creates an error for an upstream call that exceeded
// the configured deadline.
func NewRequestTimeoutError(cause error) *DomainError {
	return &DomainError{
		Code:    ErrCodeRequestTimeout,
		Message: "The navigation service took too long to respond. Please try again.",
		cause:   cause,
	}
}

// NewUpstreamUnavailableError creates an error for a transport-level upstream
// failure other than a timeout.
func NewUpstreamUnavailableError(cause error) *DomainError {
	return &DomainError{
		Code:    ErrCodeUpstreamUnavailable,
		Message: "I couldn't reach the navigation service. Please check the connection and try again.",
		cause:   cause,
	}
}
