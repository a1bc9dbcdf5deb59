package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/ilywak/autosales-hub/internal/dto"
	"github.com/ilywak/autosales-hub/internal/services"
	"github.com/ilywak/autosales-hub/internal/tenant"
)

type ClientHandler struct {
	clientService *services.ClientService
}

func NewClientHandler(clientService *services.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

func (h *ClientHandler) List(c *fiber.Ctx) error {
	caller, ok := tenant.GetCaller(c)
	if !ok {
		return unauthorized(c)
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	search := c.Query("search", "")

	clients, err := h.clientService.List(caller, search, page, limit)
	if err != nil {
		return serviceError(c, err, "Failed to fetch clients")
	}
	return c.JSON(clients)
}

func (h *ClientHandler) Get(c *fiber.Ctx) error {
	caller, ok := tenant.GetCaller(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid client ID"})
	}

	client, err := h.clientService.Get(caller, id)
	if err != nil {
		return serviceError(c, err, "Failed to fetch client")
	}
	return c.JSON(client)
}

func (h *ClientHandler) Create(c *fiber.Ctx) error {
	caller, ok := tenant.GetCaller(c)
	if !ok {
		return unauthorized(c)
	}

	var req dto.CreateClientRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	client, err := h.clientService.Create(caller, &req)
	if err != nil {
		return serviceError(c, err, "Failed to create client")
	}
	return c.Status(fiber.StatusCreated).JSON(client)
}

func (h *ClientHandler) Update(c *fiber.Ctx) error {
	caller, ok := tenant.GetCaller(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid client ID"})
	}

	var req dto.UpdateClientRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	client, err := h.clientService.Update(caller, id, &req)
	if err != nil {
		return serviceError(c, err, "Failed to update client")
	}
	return c.JSON(client)
}

func (h *ClientHandler) Delete(c *fiber.Ctx) error {
	caller, ok := tenant.GetCaller(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid client ID"})
	}

	if err := h.clientService.Delete(caller, id); err != nil {
		return serviceError(c, err, "Failed to delete client")
	}
	return c.JSON(fiber.Map{"message": "Client deleted successfully"})
}
