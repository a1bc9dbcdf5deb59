package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/ilywak/autosales-hub/internal/dto"
	"github.com/ilywak/autosales-hub/internal/services"
	"github.com/ilywak/autosales-hub/internal/tenant"
)

type ProfileHandler struct {
	profileService *services.ProfileService
}

func NewProfileHandler(profileService *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func (h *ProfileHandler) GetOwn(c *fiber.Ctx) error {
	caller, ok := tenant.GetCaller(c)
	if !ok {
		return unauthorized(c)
	}

	profile, err := h.profileService.GetOwn(caller)
	if err != nil {
		return serviceError(c, err, "Failed to fetch profile")
	}
	return c.JSON(profile)
}

func (h *ProfileHandler) UpdateOwn(c *fiber.Ctx) error {
	caller, ok := tenant.GetCaller(c)
	if !ok {
		return unauthorized(c)
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	profile, err := h.profileService.UpdateOwn(caller, &req)
	if err != nil {
		return serviceError(c, err, "Failed to update profile")
	}
	return c.JSON(profile)
}

// Admin endpoints.

func (h *ProfileHandler) List(c *fiber.Ctx) error {
	caller, ok := tenant.GetCaller(c)
	if !ok {
		return unauthorized(c)
	}

	profiles, err := h.profileService.List(caller)
	if err != nil {
		return serviceError(c, err, "Failed to fetch profiles")
	}
	return c.JSON(fiber.Map{"profiles": profiles})
}

func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	caller, ok := tenant.GetCaller(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid profile ID"})
	}

	profile, err := h.profileService.Get(caller, id)
	if err != nil {
		return serviceError(c, err, "Failed to fetch profile")
	}
	return c.JSON(profile)
}

func (h *ProfileHandler) AdminUpdate(c *fiber.Ctx) error {
	caller, ok := tenant.GetCaller(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid profile ID"})
	}

	var req dto.AdminUpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	profile, err := h.profileService.AdminUpdate(caller, id, &req)
	if err != nil {
		return serviceError(c, err, "Failed to update profile")
	}
	return c.JSON(profile)
}
