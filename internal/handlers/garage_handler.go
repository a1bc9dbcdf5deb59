package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/ilywak/autosales-hub/internal/dto"
	"github.com/ilywak/autosales-hub/internal/services"
	"github.com/ilywak/autosales-hub/internal/tenant"
)

type GarageHandler struct {
	garageService *services.GarageService
}

func NewGarageHandler(garageService *services.GarageService) *GarageHandler {
	return &GarageHandler{garageService: garageService}
}

func (h *GarageHandler) List(c *fiber.Ctx) error {
	caller, ok := tenant.GetCaller(c)
	if !ok {
		return unauthorized(c)
	}

	garages, err := h.garageService.List(caller)
	if err != nil {
		return serviceError(c, err, "Failed to fetch garages")
	}
	return c.JSON(fiber.Map{"garages": garages})
}

func (h *GarageHandler) Get(c *fiber.Ctx) error {
	caller, ok := tenant.GetCaller(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid garage ID"})
	}

	garage, err := h.garageService.Get(caller, id)
	if err != nil {
		return serviceError(c, err, "Failed to fetch garage")
	}
	return c.JSON(garage)
}

func (h *GarageHandler) Create(c *fiber.Ctx) error {
	caller, ok := tenant.GetCaller(c)
	if !ok {
		return unauthorized(c)
	}

	var req dto.CreateGarageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	garage, err := h.garageService.Create(caller, &req)
	if err != nil {
		return serviceError(c, err, "Failed to create garage")
	}
	return c.Status(fiber.StatusCreated).JSON(garage)
}

func (h *GarageHandler) Update(c *fiber.Ctx) error {
	caller, ok := tenant.GetCaller(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid garage ID"})
	}

	var req dto.UpdateGarageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	garage, err := h.garageService.Update(caller, id, &req)
	if err != nil {
		return serviceError(c, err, "Failed to update garage")
	}
	return c.JSON(garage)
}

func (h *GarageHandler) Delete(c *fiber.Ctx) error {
	caller, ok := tenant.GetCaller(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid garage ID"})
	}

	if err := h.garageService.Delete(caller, id); err != nil {
		return serviceError(c, err, "Failed to delete garage")
	}
	return c.JSON(fiber.Map{"message": "Garage deleted successfully"})
}

func (h *GarageHandler) ListSettings(c *fiber.Ctx) error {
	caller, ok := tenant.GetCaller(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid garage ID"})
	}

	settings, err := h.garageService.ListSettings(caller, id)
	if err != nil {
		return serviceError(c, err, "Failed to fetch settings")
	}
	return c.JSON(fiber.Map{"settings": settings})
}

func (h *GarageHandler) SetSetting(c *fiber.Ctx) error {
	caller, ok := tenant.GetCaller(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid garage ID"})
	}

	var req dto.SetGarageSettingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	if err := h.garageService.SetSetting(caller, id, c.Params("key"), req.Value); err != nil {
		return serviceError(c, err, "Failed to set setting")
	}
	return c.JSON(fiber.Map{"message": "Setting saved"})
}

func (h *GarageHandler) DeleteSetting(c *fiber.Ctx) error {
	caller, ok := tenant.GetCaller(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid garage ID"})
	}

	if err := h.garageService.DeleteSetting(caller, id, c.Params("key")); err != nil {
		return serviceError(c, err, "Failed to delete setting")
	}
	return c.JSON(fiber.Map{"message": "Setting deleted"})
}
