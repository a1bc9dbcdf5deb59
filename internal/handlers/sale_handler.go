package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/ilywak/autosales-hub/internal/dto"
	"github.com/ilywak/autosales-hub/internal/services"
	"github.com/ilywak/autosales-hub/internal/tenant"
)

// SaleHandler exposes list/get/create/update. Sales have no delete endpoint:
// once recorded they are permanent.
type SaleHandler struct {
	saleService *services.SaleService
}

func NewSaleHandler(saleService *services.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

func (h *SaleHandler) List(c *fiber.Ctx) error {
	caller, ok := tenant.GetCaller(c)
	if !ok {
		return unauthorized(c)
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	sales, err := h.saleService.List(caller, page, limit)
	if err != nil {
		return serviceError(c, err, "Failed to fetch sales")
	}
	return c.JSON(sales)
}

func (h *SaleHandler) Get(c *fiber.Ctx) error {
	caller, ok := tenant.GetCaller(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid sale ID"})
	}

	sale, err := h.saleService.Get(caller, id)
	if err != nil {
		return serviceError(c, err, "Failed to fetch sale")
	}
	return c.JSON(sale)
}

func (h *SaleHandler) Create(c *fiber.Ctx) error {
	caller, ok := tenant.GetCaller(c)
	if !ok {
		return unauthorized(c)
	}

	var req dto.CreateSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	sale, err := h.saleService.Create(caller, &req)
	if err != nil {
		return serviceError(c, err, "Failed to create sale")
	}
	return c.Status(fiber.StatusCreated).JSON(sale)
}

func (h *SaleHandler) Update(c *fiber.Ctx) error {
	caller, ok := tenant.GetCaller(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid sale ID"})
	}

	var req dto.UpdateSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	sale, err := h.saleService.Update(caller, id, &req)
	if err != nil {
		return serviceError(c, err, "Failed to update sale")
	}
	return c.JSON(sale)
}
