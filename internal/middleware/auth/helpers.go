package auth

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/marketplace/internal/tokens"
)

const (
	userIDKey = "user_id"
	roleKey   = "role"
)

// Principal returns the authenticated user id set by Authenticate.
func Principal(c echo.Context) (uint, bool) {
	id, ok := c.Get(userIDKey).(uint)
	return id, ok
}

func PrincipalRole(c echo.Context) string {
	role, _ := c.Get(roleKey).(string)
	return role
}

func setUserContext(c echo.Context, userID uint, claims *tokens.AccessClaims) {
	c.Set(userIDKey, userID)
	c.Set(roleKey, claims.Role)
}

// rawToken prefers the Authorization bearer header over the cookie.
func rawToken(c echo.Context) string {
	if h := c.Request().Header.Get(echo.HeaderAuthorization); h != "" {
		if after, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(after)
		}
	}
	if ck, err := c.Cookie(tokens.AccessCookieName); err == nil {
		return ck.Value
	}
	return ""
}
