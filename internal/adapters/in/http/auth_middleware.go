package http

import (
	"net/http"
	"strings"

	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"

	"github.com/labstack/echo/v4"
)

const callerContextKey = "caller"

// AuthMiddleware verifies the bearer token and stores the resulting caller
// identity in the request context. Missing or invalid tokens fail with 401;
// business-level authorization stays with the use cases.
func AuthMiddleware(identity ports.IdentityProvider) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			token, ok := bearerToken(ctx.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return unauthorized(ctx, "missing bearer token")
			}

			claims, err := identity.Verify(token)
			if err != nil {
				return unauthorized(ctx, "invalid or expired token")
			}

			caller, err := services.NewCaller(claims.UserID, claims.Role)
			if err != nil {
				return unauthorized(ctx, "invalid token claims")
			}

			ctx.Set(callerContextKey, caller)
			return next(ctx)
		}
	}
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}

	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

func unauthorized(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusUnauthorized, envelope{
		Success: false,
		Error:   &errorBody{Code: CodeInvalidCredentials, Message: message},
	})
}

// CallerFromContext retrieves the authenticated caller stored by AuthMiddleware.
func CallerFromContext(ctx echo.Context) (services.Caller, bool) {
	caller, ok := ctx.Get(callerContextKey).(services.Caller)
	return caller, ok
}
