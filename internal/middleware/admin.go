package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ilywak/autosales-hub/internal/dto"
	"github.com/ilywak/autosales-hub/internal/tenant"
)

// AdminRequired rejects callers without the admin role assignment.
// Runs after CallerContext.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, ok := tenant.GetCaller(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}
		if !caller.IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Admin access required",
			})
		}
		return c.Next()
	}
}
