package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ShkryumDev/pizza-delivery-api/internal/api/middleware"
	"github.com/ShkryumDev/pizza-delivery-api/internal/core/domain"
)

// ctxActor extracts the user resolved by the Identity middleware. A nil user
// here means the route was registered without the auth chain — fail closed.
func ctxActor(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(middleware.CtxUser).(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return user, nil
}
