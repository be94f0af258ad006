package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "github.com/a-shrinked-org/plato-unchained/errors"
	"github.com/a-shrinked-org/plato-unchained/internal/adapter/dto/common"
	pkgjwt "github.com/a-shrinked-org/plato-unchained/pkg/jwt"
)

// ContextKey is the type for context keys
type ContextKey string

const (
	// ClientContextKey is the echo context key for the authenticated client id
	ClientContextKey = "client_id"
)

// EchoAuth returns an Echo middleware that validates bearer tokens and sets
// the client id into the Echo context.
func EchoAuth(manager *pkgjwt.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return respondUnauthenticated(c, "missing authorization token")
			}

			claims, err := manager.ValidateToken(token)
			if err != nil {
				return respondUnauthenticated(c, "invalid or expired token")
			}

			c.Set(ClientContextKey, claims.ClientID)
			return next(c)
		}
	}
}

func respondUnauthenticated(c echo.Context, message string) error {
	appErr := apperrors.ErrUnauthenticated(message)
	return c.JSON(appErr.HTTPCode, common.ErrorResponse{
		Code:    appErr.Code.String(),
		Message: appErr.Message,
	})
}

// extractToken pulls the bearer token from the Authorization header.
func extractToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
