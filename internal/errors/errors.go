package errors

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Domain errors. The messages double as the client-facing response bodies.
var (
	// ErrInvalidCredentials is returned on login for an unknown email or a
	// wrong password alike, so responses cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("Invalid email or password")
	// ErrUserExists is returned when email or username is already taken.
	ErrUserExists = errors.New("User with this email or username already exists")
	// ErrUserNotFound is returned when the user record is absent.
	ErrUserNotFound = errors.New("User not found")
	// ErrPostNotFound is returned when the post record is absent.
	ErrPostNotFound = errors.New("Post not found")
	// ErrUpdateForbidden is returned for updates by anyone but the author.
	// There is deliberately no admin override on update.
	ErrUpdateForbidden = errors.New("You can only update your own posts")
	// ErrDeleteForbidden is returned for deletes by non-authors without the
	// admin role.
	ErrDeleteForbidden = errors.New("You can only delete your own posts")
)

// ErrorResponse is the body of every failure response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
	}
}

// Validation creates a 400 error carrying a validation message.
func Validation(message string) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message)
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors collapse
// to a generic 500 so internals never reach the client.
func MapErrorToHTTP(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrUserExists):
		return NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrPostNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrUpdateForbidden), errors.Is(err, ErrDeleteForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error())
	default:
		return NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
}

// JSONErrorHandler is the central Echo error responder. Every failure ends
// up as a flat {"error": message} body; unexpected errors are logged
// server-side and surface a sanitized message.
func JSONErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "Internal server error"

	var echoErr *echo.HTTPError
	var httpErr *HTTPError
	switch {
	case errors.As(err, &echoErr):
		status = echoErr.Code
		if m, ok := echoErr.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(status)
		}
	case errors.As(err, &httpErr):
		status = httpErr.StatusCode
		message = httpErr.Message
	default:
		c.Logger().Error(err)
	}

	if jsonErr := c.JSON(status, ErrorResponse{Error: message}); jsonErr != nil {
		c.Logger().Error(jsonErr)
	}
}
