package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/loopdesk/chat-api/internal/api/middleware"
	"github.com/loopdesk/chat-api/internal/core/domain"
)

// CurrentUser extracts the user resolved by the auth guard and fast-fails
// before any service call when it is absent. Absence means the route was
// wired without the guard; reject with 401 rather than proceed unscoped.
func CurrentUser(c echo.Context) (*domain.User, error) {
	user := middleware.UserFromContext(c)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return user, nil
}
