package handler

import (
	"errors"

	"checkpoint-tracker/internal/core/logger"
	"checkpoint-tracker/internal/core/server"
	routing "checkpoint-tracker/internal/features/routing/domain"
	"checkpoint-tracker/internal/features/shipments/domain"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrShipmentNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrShipmentExists),
		errors.Is(err, domain.ErrDuplicateCheckpoint):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrShipmentDelivered),
		errors.Is(err, domain.ErrNotOnRoute),
		errors.Is(err, domain.ErrOutOfOrder),
		errors.Is(err, domain.ErrInvalidShipment),
		errors.Is(err, domain.ErrInvalidCheckpoint),
		errors.Is(err, domain.ErrInvalidAnomalyType),
		errors.Is(err, routing.ErrNoRouteFound):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// fail writes the mapped error. Internal errors are logged and their text is not exposed.
func fail(c *fiber.Ctx, err error, msg string) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		logger.Get().Error(msg, zap.String("ray_id", server.RayID(c)), zap.Error(err))
		return server.Fail(c, status, "internal server error")
	}
	return server.Fail(c, status, err.Error())
}
