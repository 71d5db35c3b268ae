// Package middleware provides HTTP middleware components for the application.
package middleware

import (
	"strings"

	"github.com/mahadebmondal004/BrohealBackend/internal/utils"
	"github.com/mahadebmondal004/BrohealBackend/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthMiddleware validates bearer tokens issued by the auth module and puts
// the claims in the request context.
type AuthMiddleware struct {
	secret string
	log    *zap.Logger
}

func NewAuthMiddleware(secret string, log *zap.Logger) *AuthMiddleware {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthMiddleware{secret: secret, log: log.Named("auth")}
}

// Handler checks for:
// - Presence of Authorization header with Bearer token
// - Valid JWT signature
// - Token expiration
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return response.Error(c, fiber.StatusUnauthorized, "missing authorization header")
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return response.Error(c, fiber.StatusUnauthorized, "invalid authorization format")
	}

	claims, err := utils.ParseToken(strings.TrimPrefix(authHeader, "Bearer "), m.secret)
	if err != nil {
		m.log.Debug("token rejected", zap.String("path", c.Path()), zap.Error(err))
		return response.Error(c, fiber.StatusUnauthorized, "invalid token")
	}

	c.Locals(utils.ClaimsKey, claims)
	c.Locals("userID", claims.UserID)
	return c.Next()
}

// RequireRole allows the request through when the caller has one of roles.
// Admins always pass.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := utils.GetUserClaims(c)
		if err != nil {
			return response.Unauthorized(c)
		}
		if !claims.HasRole(roles...) {
			return response.Forbidden(c)
		}
		return c.Next()
	}
}
