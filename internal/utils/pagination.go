package utils

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// GetLimit reads the "limit" query parameter. Missing or non-positive values
// give def and values above max are clamped.
func GetLimit(c *fiber.Ctx, def, max int) int {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit < 1 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}
