package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/ilywak/autosales-hub/internal/dto"
	"github.com/ilywak/autosales-hub/internal/services"
)

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Unauthorized",
	})
}

// notFoundErrs are surfaced as 404: either the row is missing or it is not
// visible to the caller, which must look identical.
var notFoundErrs = []error{
	services.ErrGarageNotFound,
	services.ErrProfileNotFound,
	services.ErrVehicleNotFound,
	services.ErrClientNotFound,
	services.ErrSaleNotFound,
	services.ErrSettingNotFound,
	services.ErrRoleNotFound,
	services.ErrUserNotFound,
}

// badRequestErrs are validation and constraint failures surfaced as-is.
var badRequestErrs = []error{
	services.ErrNameRequired,
	services.ErrInvalidFuelType,
	services.ErrInvalidCondition,
	services.ErrInvalidYear,
	services.ErrInvalidPrice,
	services.ErrInvalidSalePrice,
	services.ErrInvalidRole,
	services.ErrInvalidJSON,
}

// conflictErrs are uniqueness/reference violations surfaced as 409.
var conflictErrs = []error{
	services.ErrVehicleHasSales,
	services.ErrClientHasSales,
	services.ErrRoleAlreadyGranted,
}

// serviceError maps a service error to the matching HTTP response. fallback
// names the operation for the opaque 500 case.
func serviceError(c *fiber.Ctx, err error, fallback string) error {
	if errors.Is(err, services.ErrAccessDenied) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	for _, known := range notFoundErrs {
		if errors.Is(err, known) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
	}
	for _, known := range badRequestErrs {
		if errors.Is(err, known) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
	}
	for _, known := range conflictErrs {
		if errors.Is(err, known) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: fallback,
	})
}
