package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ilywak/autosales-hub/internal/authz"
	"github.com/ilywak/autosales-hub/internal/dto"
	"github.com/ilywak/autosales-hub/internal/models"
	"github.com/ilywak/autosales-hub/internal/tenant"
	"gorm.io/gorm"
)

// CallerContext resolves the authenticated identity into an authz.Caller
// (profile garage + role set) and stores it in locals. Runs after
// JWTProtected. A missing profile yields a caller with no garage; such a
// caller is denied all garage-scoped operations by the decision function
// unless it holds the admin role.
func CallerContext(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := tenant.GetUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		caller := authz.Caller{UserID: userID}

		var profile models.Profile
		if err := db.Where("user_id = ?", userID).First(&profile).Error; err == nil {
			caller.GarageID = profile.GarageID
		}

		var assignments []models.UserRole
		if err := db.Where("user_id = ?", userID).Find(&assignments).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Internal server error",
			})
		}
		for _, a := range assignments {
			caller.Roles = append(caller.Roles, authz.Role(a.Role))
		}

		tenant.SetCaller(c, caller)
		return c.Next()
	}
}
