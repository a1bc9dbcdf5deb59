package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/ilywak/autosales-hub/internal/dto"
	"github.com/ilywak/autosales-hub/internal/services"
	"github.com/ilywak/autosales-hub/internal/tenant"
)

type RoleHandler struct {
	roleService *services.RoleService
}

func NewRoleHandler(roleService *services.RoleService) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

// ListOwn returns the caller's own role assignments.
func (h *RoleHandler) ListOwn(c *fiber.Ctx) error {
	caller, ok := tenant.GetCaller(c)
	if !ok {
		return unauthorized(c)
	}

	roles, err := h.roleService.ListForUser(caller, caller.UserID)
	if err != nil {
		return serviceError(c, err, "Failed to fetch roles")
	}
	return c.JSON(fiber.Map{"roles": roles})
}

// Admin endpoints.

func (h *RoleHandler) ListForUser(c *fiber.Ctx) error {
	caller, ok := tenant.GetCaller(c)
	if !ok {
		return unauthorized(c)
	}
	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid user ID"})
	}

	roles, err := h.roleService.ListForUser(caller, userID)
	if err != nil {
		return serviceError(c, err, "Failed to fetch roles")
	}
	return c.JSON(fiber.Map{"roles": roles})
}

func (h *RoleHandler) Grant(c *fiber.Ctx) error {
	caller, ok := tenant.GetCaller(c)
	if !ok {
		return unauthorized(c)
	}
	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid user ID"})
	}

	var req dto.GrantRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	assignment, err := h.roleService.Grant(caller, userID, req.Role)
	if err != nil {
		return serviceError(c, err, "Failed to grant role")
	}
	return c.Status(fiber.StatusCreated).JSON(assignment)
}

func (h *RoleHandler) Revoke(c *fiber.Ctx) error {
	caller, ok := tenant.GetCaller(c)
	if !ok {
		return unauthorized(c)
	}
	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid user ID"})
	}

	if err := h.roleService.Revoke(caller, userID, c.Params("role")); err != nil {
		return serviceError(c, err, "Failed to revoke role")
	}
	return c.JSON(fiber.Map{"message": "Role revoked"})
}
