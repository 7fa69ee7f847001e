package errs

import (
	"net/http"
)

// Messages shared between the router, middleware and handlers.
const (
	MessageRouteNotFound   = "Route not found"
	MessageInternalError   = "Internal server error"
	MessageTooManyRequests = "Too many requests"
	MessageBodyTooLarge    = "Request body too large"
)

func newHTTPError(status int, message string, code *string) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(status))
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:    formattedCode,
		Message: message,
		Status:  status,
	}
}

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
// code optionally replaces the default "BAD_REQUEST".
func NewBadRequestError(message string, code *string) *HTTPError {
	return newHTTPError(http.StatusBadRequest, message, code)
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(message string, code *string) *HTTPError {
	return newHTTPError(http.StatusNotFound, message, code)
}

// NewTooManyRequestsError creates a 429 Too Many Requests HTTPError.
func NewTooManyRequestsError() *HTTPError {
	return newHTTPError(http.StatusTooManyRequests, MessageTooManyRequests, nil)
}

// NewPayloadTooLargeError creates a 413 Request Entity Too Large HTTPError.
func NewPayloadTooLargeError() *HTTPError {
	return newHTTPError(http.StatusRequestEntityTooLarge, MessageBodyTooLarge, nil)
}

// NewInternalServerError creates a 500 Internal Server Error HTTPError.
//
// The message is always the generic one: the real cause is logged by the
// global error handler and never sent to the client.
func NewInternalServerError() *HTTPError {
	return newHTTPError(http.StatusInternalServerError, MessageInternalError, nil)
}

// ValidationError converts a generic validation error into a 400 Bad Request.
func ValidationError(err error) *HTTPError {
	return NewBadRequestError(err.Error(), nil)
}
