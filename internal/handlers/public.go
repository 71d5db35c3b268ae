package handlers

import (
	"github.com/mahadebmondal004/BrohealBackend/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// PublicSettings lists the settings flagged public. Gateway secrets are
// never included.
func PublicSettings(settings SettingsReader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		values, err := settings.PublicSettings(c.UserContext())
		if err != nil {
			return response.Fail(c, err)
		}
		return response.Success(c, fiber.Map{"settings": values})
	}
}
