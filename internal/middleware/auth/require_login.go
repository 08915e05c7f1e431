package auth

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/marketplace/internal/logging"
	"github.com/Skotchmaster/marketplace/internal/tokens"
)

type PrincipalMiddleware struct {
	JWTSecret    []byte
	RequireToken bool
}

func NewPrincipalMiddleware(secret []byte, requireToken bool) *PrincipalMiddleware {
	return &PrincipalMiddleware{JWTSecret: secret, RequireToken: requireToken}
}

// Authenticate resolves the access token, if any, into a principal.
// Requests without a usable token pass through anonymously unless
// RequireToken is set, in which case they get 401.
func (m *PrincipalMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		l := logging.FromContext(c.Request().Context()).With("middleware", "auth.authenticate")

		raw := rawToken(c)
		if raw == "" {
			if m.RequireToken {
				l.Warn("auth_failed", "status", 401, "reason", "missing access token")
				return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
			}
			return next(c)
		}

		claims, err := tokens.AccessClaimsFromToken(raw, m.JWTSecret)
		if err != nil {
			c.SetCookie(tokens.DeleteCookie(tokens.AccessCookieName, "/"))
			return m.invalidToken(c, next, l, "invalid or expired token", err)
		}

		userID, err := claims.UserID()
		if err != nil {
			return m.invalidToken(c, next, l, "bad subject", err)
		}

		setUserContext(c, userID, claims)
		return next(c)
	}
}

func (m *PrincipalMiddleware) invalidToken(c echo.Context, next echo.HandlerFunc, l *slog.Logger, reason string, err error) error {
	if !m.RequireToken {
		l.Info("auth_token_ignored", "reason", reason, "error", err)
		return next(c)
	}
	l.Warn("auth_failed", "status", 401, "reason", reason, "error", err)
	return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
}
