package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/ilywak/autosales-hub/internal/dto"
	"github.com/ilywak/autosales-hub/internal/services"
	"github.com/ilywak/autosales-hub/internal/tenant"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	caller, ok := tenant.GetCaller(c)
	if !ok {
		return unauthorized(c)
	}

	var garageID *uuid.UUID
	if g := c.Query("garage_id"); g != "" {
		id, err := uuid.Parse(g)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid garage_id"})
		}
		garageID = &id
	}

	dashboard, err := h.reportService.Dashboard(caller, garageID)
	if err != nil {
		return serviceError(c, err, "Failed to build dashboard")
	}
	return c.JSON(dashboard)
}
