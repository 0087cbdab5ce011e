package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/loopdesk/chat-api/internal/api/metrics"
	"github.com/loopdesk/chat-api/internal/core/auth"
	"github.com/loopdesk/chat-api/internal/core/domain"
	"github.com/loopdesk/chat-api/internal/core/ports"
)

// userContextKey is where the guard stores the resolved user on the request
// context. Handlers read it back through handler.CurrentUser.
const userContextKey = "auth.user"

// Guard authenticates every request on the routes it wraps: it extracts the
// bearer token, verifies signature and expiry, and resolves the subject to a
// stored user. Resolving through the credential store (rather than trusting
// the claim) denies tokens whose account was removed after issuance. All
// failure modes return the same 401; the distinction is kept only in metrics.
func Guard(issuer *auth.TokenIssuer, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return reject("missing_header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return reject("missing_header")
			}

			subject, err := issuer.Verify(parts[1])
			if err != nil {
				if errors.Is(err, auth.ErrTokenExpired) {
					return reject("expired")
				}
				return reject("invalid")
			}

			user, err := users.FindByEmail(c.Request().Context(), subject)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return reject("unknown_user")
				}
				return err
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// UserFromContext returns the user stored by Guard, or nil when the guard did
// not run on this route.
func UserFromContext(c echo.Context) *domain.User {
	user, _ := c.Get(userContextKey).(*domain.User)
	return user
}

// SetUser stores user the way Guard does. For handler tests that bypass the
// middleware chain.
func SetUser(c echo.Context, user *domain.User) {
	c.Set(userContextKey, user)
}

func reject(reason string) error {
	metrics.AuthRejectionsTotal.WithLabelValues(reason).Inc()
	return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
}
