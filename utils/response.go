package utils

import (
	"github.com/gofiber/fiber/v2"
)

// ErrorResponse writes the {"msg": ...} body every API error shares.
func ErrorResponse(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"msg": message,
	})
}

func MessageResponse(c *fiber.Ctx, message string) error {
	return c.JSON(fiber.Map{
		"msg": message,
	})
}
