package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ShkryumDev/pizza-delivery-api/internal/core/domain"
	"github.com/ShkryumDev/pizza-delivery-api/internal/core/ports"
)

// CtxUser is the context key under which Identity stores the resolved user.
const CtxUser = "user"

// Identity resolves the verified token subject to a user record. The lookup
// happens on every request — role flags are never cached across requests —
// so revoking is_active or is_staff takes effect immediately.
func Identity(users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			username, _ := c.Get(CtxUsername).(string)
			if username == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}

			user, err := users.FindByUsername(c.Request().Context(), username)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					// Token is valid but its subject no longer exists.
					return echo.NewHTTPError(http.StatusUnauthorized, "unknown token subject")
				}
				return err
			}
			if !user.IsActive {
				return fmt.Errorf("%w: %s", domain.ErrForbidden, domain.ErrUserInactive)
			}

			c.Set(CtxUser, user)
			return next(c)
		}
	}
}
