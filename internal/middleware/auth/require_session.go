package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/ecommerce_api/internal/service"
)

// SessionCookie is the name of the cookie carrying the opaque session
// token.
const SessionCookie = "session_token"

// RequireSession gates protected routes. Any failure (missing cookie,
// bad signature, revoked or expired session) yields a uniform 401 with
// no internal detail.
func RequireSession(svc *service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookie)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}

			userID, err := svc.Authenticate(c.Request().Context(), cookie.Value)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}

			c.Set("userID", userID)
			return next(c)
		}
	}
}
