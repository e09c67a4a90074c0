package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/reservaa/hall-booking-service/internal/service"
)

const claimsContextKey = "auth_claims"

// TokenValidator parses and verifies a bearer token.
type TokenValidator interface {
	ValidateToken(token string) (*service.Claims, error)
}

// RequireAuth rejects requests without a valid faculty or admin bearer token
// and stores the claims on the echo context.
func RequireAuth(validator TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}
			claims, err := validator.ValidateToken(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}
			c.Set(claimsContextKey, claims)
			return next(c)
		}
	}
}

// RequireAdmin additionally rejects tokens without the admin claim. It must
// run after RequireAuth.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := CurrentClaims(c)
			if claims == nil || !claims.IsAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "admin access required")
			}
			return next(c)
		}
	}
}

// CurrentClaims returns the claims stored by RequireAuth, or nil.
func CurrentClaims(c echo.Context) *service.Claims {
	claims, _ := c.Get(claimsContextKey).(*service.Claims)
	return claims
}

func bearerToken(c echo.Context) (string, bool) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
