// Package middleware holds the request guards. Authenticate resolves a
// bearer token into a stored user and attaches it under a typed accessor;
// handlers read it back through CurrentUser instead of poking at raw
// context keys.
package middleware

import (
	"net/http"
	"strings"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"blogapi/internal/auth"
	"blogapi/internal/model"
	"blogapi/internal/repository"
)

const (
	claimsContextKey   = "token_claims"
	identityContextKey = "identity"
)

// MsgAuthRequired is the response body for any request reaching a guarded
// route without a resolvable identity. Handlers reuse it for their own
// missing-identity fallback so the message stays uniform.
const MsgAuthRequired = "Authentication required. Please provide a valid token."

// Guard failure messages. Verification failures are deliberately generic so
// a caller cannot tell a malformed token from an expired one.
const (
	msgInvalidToken  = "Invalid or expired token"
	msgSubjectGone   = "User not found. Token is invalid."
	msgAdminRequired = "Access denied. Admin privileges required."
)

// Authenticate returns middleware that extracts a bearer token from the
// Authorization header, verifies it and loads the subject from the user
// store. Absent or malformed headers, failed verification and a missing
// subject all yield 401.
func Authenticate(tokens *auth.JWTService, users repository.UserRepository) echo.MiddlewareFunc {
	verify := echojwt.WithConfig(echojwt.Config{
		ContextKey: claimsContextKey,
		// The trailing "Bearer " is the cut-prefix; without it the raw
		// header value, scheme included, reaches ParseTokenFunc.
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, raw string) (interface{}, error) {
			return tokens.ValidateToken(raw)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				return echo.NewHTTPError(http.StatusUnauthorized, MsgAuthRequired)
			}
			return echo.NewHTTPError(http.StatusUnauthorized, msgInvalidToken)
		},
	})

	loadIdentity := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(claimsContextKey).(*auth.Claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, msgInvalidToken)
			}

			user, err := users.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, msgSubjectGone)
			}

			SetCurrentUser(c, user)
			return next(c)
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return verify(loadIdentity(next))
	}
}

// RequireAdmin rejects requests whose resolved identity is not an admin.
// It must run after Authenticate.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := CurrentUser(c)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, MsgAuthRequired)
		}
		if !user.IsAdmin() {
			return echo.NewHTTPError(http.StatusForbidden, msgAdminRequired)
		}
		return next(c)
	}
}

// CurrentUser returns the identity resolved by Authenticate, if any.
func CurrentUser(c echo.Context) (*model.User, bool) {
	user, ok := c.Get(identityContextKey).(*model.User)
	return user, ok
}

// SetCurrentUser attaches a resolved identity to the request.
func SetCurrentUser(c echo.Context, user *model.User) {
	c.Set(identityContextKey, user)
}
