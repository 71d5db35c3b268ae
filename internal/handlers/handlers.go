// Package handlers adapts HTTP requests to the settlement and wallet
// services.
package handlers

import (
	"context"

	"github.com/mahadebmondal004/BrohealBackend/internal/models"
	"github.com/mahadebmondal004/BrohealBackend/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// SettingsReader is the part of the settings service the handlers read.
type SettingsReader interface {
	FrontendURL(ctx context.Context) (string, error)
	PublicSettings(ctx context.Context) (map[string]string, error)
}

// extractUserClaims is a helper function to reduce duplication
func extractUserClaims(c *fiber.Ctx) (*models.UserClaims, bool) {
	claims, err := utils.GetUserClaims(c)
	return claims, err == nil
}
