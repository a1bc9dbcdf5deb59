package tenant

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/ilywak/autosales-hub/internal/authz"
)

const callerLocal = "caller"

// GetUserID extracts the user UUID from JWT claims in context.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing sub claim")
	}

	return uuid.Parse(sub)
}

// SetCaller stores the resolved caller context in Fiber locals.
func SetCaller(c *fiber.Ctx, caller authz.Caller) {
	c.Locals(callerLocal, caller)
}

// GetCaller returns the resolved caller context set by the caller middleware.
func GetCaller(c *fiber.Ctx) (authz.Caller, bool) {
	caller, ok := c.Locals(callerLocal).(authz.Caller)
	return caller, ok
}
