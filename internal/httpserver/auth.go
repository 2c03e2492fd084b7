package httpserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/ecommerce_api/internal/logging"
	authmw "github.com/Skotchmaster/ecommerce_api/internal/middleware/auth"
	"github.com/Skotchmaster/ecommerce_api/internal/service"
	"github.com/Skotchmaster/ecommerce_api/internal/transport"
)

type AuthHandler struct {
	Svc *service.AuthService
}

func createCookie(name, value, path string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Expires:  expires,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.CredentialsRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_failed", "status", 400, "reason", "invalid body", "error", err)
		return message(c, http.StatusBadRequest, "Invalid credentials")
	}

	user, err := h.Svc.Register(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			l.Warn("register_failed", "status", 400, "reason", "empty username or password")
			return message(c, http.StatusBadRequest, "Invalid credentials")
		case errors.Is(err, service.ErrUserExists):
			l.Warn("register_failed", "status", 409, "username", req.Username)
			return message(c, http.StatusConflict, "User already exists")
		default:
			l.Error("register_failed", "status", 500, "error", err)
			return message(c, http.StatusInternalServerError, "Could not register user")
		}
	}

	l.Info("register_success", "userID", user.ID)
	return message(c, http.StatusOK, "User created successfully!")
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.CredentialsRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_failed", "status", 401, "reason", "invalid body", "error", err)
		return message(c, http.StatusUnauthorized, "Invalid credentials")
	}

	result, err := h.Svc.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			l.Warn("login_failed", "status", 401, "username", req.Username)
			return message(c, http.StatusUnauthorized, "Invalid credentials")
		}
		l.Error("login_failed", "status", 500, "error", err)
		return message(c, http.StatusInternalServerError, "Could not log in")
	}

	c.SetCookie(createCookie(authmw.SessionCookie, result.Token, "/", result.ExpiresAt))

	l.Info("login_success", "username", req.Username)
	return message(c, http.StatusOK, "Logged in successfully!")
}

func (h *AuthHandler) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.logout")

	cookie, err := c.Cookie(authmw.SessionCookie)
	if err != nil {
		l.Warn("logout_failed", "status", 401, "reason", "no session cookie")
		return message(c, http.StatusUnauthorized, "Unauthorized")
	}

	if err := h.Svc.Logout(ctx, cookie.Value); err != nil {
		l.Warn("logout_failed", "status", 401, "reason", "invalid session")
		return message(c, http.StatusUnauthorized, "Unauthorized")
	}

	expired := time.Now().Add(-1 * time.Hour)
	c.SetCookie(createCookie(authmw.SessionCookie, "", "/", expired))

	l.Info("logout_success")
	return message(c, http.StatusOK, "Logout successfully!")
}
