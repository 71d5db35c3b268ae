package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mahadebmondal004/BrohealBackend/internal/models"
	"github.com/mahadebmondal004/BrohealBackend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func token(t *testing.T, role string) string {
	t.Helper()
	tok, err := utils.GenerateToken(models.UserClaims{UserID: "id-" + role, Role: role}, secret, time.Minute)
	require.NoError(t, err)
	return tok
}

func newApp() *fiber.App {
	app := fiber.New()
	auth := NewAuthMiddleware(secret, nil)
	app.Get("/therapist", auth.Handler, RequireRole(models.RoleTherapist), func(c *fiber.Ctx) error {
		claims, _ := utils.GetUserClaims(c)
		return c.SendString(claims.UserID)
	})
	return app
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"missing header", "", fiber.StatusUnauthorized},
		{"not bearer", "Basic abc", fiber.StatusUnauthorized},
		{"bad token", "Bearer nope", fiber.StatusUnauthorized},
		{"wrong role", "Bearer " + token(t, models.RoleUser), fiber.StatusForbidden},
		{"therapist", "Bearer " + token(t, models.RoleTherapist), fiber.StatusOK},
		{"admin passes", "Bearer " + token(t, models.RoleAdmin), fiber.StatusOK},
	}

	app := newApp()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/therapist", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestRequireRole_WithoutClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/", RequireRole(models.RoleUser), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
