// Package response writes the JSON envelopes shared by every handler.
package response

import (
	"errors"

	appErrors "github.com/mahadebmondal004/BrohealBackend/internal/errors"

	"github.com/gofiber/fiber/v2"
)

// Success writes 200 with data merged into {"success": true}.
func Success(c *fiber.Ctx, data fiber.Map) error {
	body := fiber.Map{"success": true}
	for k, v := range data {
		body[k] = v
	}
	return c.Status(fiber.StatusOK).JSON(body)
}

func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

func ServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}

func Unauthorized(c *fiber.Ctx) error {
	return Error(c, fiber.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *fiber.Ctx) error {
	return Error(c, fiber.StatusForbidden, "Insufficient permissions")
}

func ValidationError(c *fiber.Ctx, errs map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": "validation failed",
		"errors":  errs,
	})
}

// Fail writes err using the status of its domain code. Errors outside the
// taxonomy become 500 with a generic message.
func Fail(c *fiber.Ctx, err error) error {
	var de *appErrors.DomainError
	if !errors.As(err, &de) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": appErrors.ErrUnexpected.Message,
			"code":    appErrors.ErrUnexpected.Code,
		})
	}
	return c.Status(StatusOf(err)).JSON(fiber.Map{
		"success": false,
		"message": de.Message,
		"code":    de.Code,
	})
}

// StatusOf maps a domain error to its HTTP status.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, appErrors.ErrNotEligible),
		errors.Is(err, appErrors.ErrNotFound),
		errors.Is(err, appErrors.ErrWalletNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, appErrors.ErrInvalidAmount),
		errors.Is(err, appErrors.ErrInsufficientBalance),
		errors.Is(err, appErrors.ErrInvalidSignature):
		return fiber.StatusBadRequest
	case errors.Is(err, appErrors.ErrGatewayUnavailable):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}
