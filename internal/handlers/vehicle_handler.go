package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/ilywak/autosales-hub/internal/dto"
	"github.com/ilywak/autosales-hub/internal/services"
	"github.com/ilywak/autosales-hub/internal/tenant"
)

type VehicleHandler struct {
	vehicleService *services.VehicleService
}

func NewVehicleHandler(vehicleService *services.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleService: vehicleService}
}

func (h *VehicleHandler) List(c *fiber.Ctx) error {
	caller, ok := tenant.GetCaller(c)
	if !ok {
		return unauthorized(c)
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	filter := services.VehicleFilter{
		FuelType:  c.Query("fuel_type"),
		Condition: c.Query("condition"),
		Search:    c.Query("search"),
	}
	if g := c.Query("garage_id"); g != "" {
		garageID, err := uuid.Parse(g)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid garage_id filter"})
		}
		filter.GarageID = &garageID
	}
	if a := c.Query("available"); a != "" {
		available := a == "true"
		filter.Available = &available
	}

	vehicles, err := h.vehicleService.List(caller, filter, page, limit)
	if err != nil {
		return serviceError(c, err, "Failed to fetch vehicles")
	}
	return c.JSON(vehicles)
}

func (h *VehicleHandler) Get(c *fiber.Ctx) error {
	caller, ok := tenant.GetCaller(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid vehicle ID"})
	}

	vehicle, err := h.vehicleService.Get(caller, id)
	if err != nil {
		return serviceError(c, err, "Failed to fetch vehicle")
	}
	return c.JSON(vehicle)
}

func (h *VehicleHandler) Create(c *fiber.Ctx) error {
	caller, ok := tenant.GetCaller(c)
	if !ok {
		return unauthorized(c)
	}

	var req dto.CreateVehicleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	vehicle, err := h.vehicleService.Create(caller, &req)
	if err != nil {
		return serviceError(c, err, "Failed to create vehicle")
	}
	return c.Status(fiber.StatusCreated).JSON(vehicle)
}

func (h *VehicleHandler) Update(c *fiber.Ctx) error {
	caller, ok := tenant.GetCaller(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid vehicle ID"})
	}

	var req dto.UpdateVehicleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	vehicle, err := h.vehicleService.Update(caller, id, &req)
	if err != nil {
		return serviceError(c, err, "Failed to update vehicle")
	}
	return c.JSON(vehicle)
}

func (h *VehicleHandler) Delete(c *fiber.Ctx) error {
	caller, ok := tenant.GetCaller(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid vehicle ID"})
	}

	if err := h.vehicleService.Delete(caller, id); err != nil {
		return serviceError(c, err, "Failed to delete vehicle")
	}
	return c.JSON(fiber.Map{"message": "Vehicle deleted successfully"})
}
