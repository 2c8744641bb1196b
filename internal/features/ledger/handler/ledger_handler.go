package handler

import (
	"errors"

	"checkpoint-tracker/internal/core/logger"
	"checkpoint-tracker/internal/core/server"
	"checkpoint-tracker/internal/features/ledger/domain"
	"checkpoint-tracker/internal/features/ledger/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// LedgerHandler handles HTTP requests for ledger entries.
type LedgerHandler struct {
	ledgerService *service.LedgerService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerService *service.LedgerService) *LedgerHandler {
	return &LedgerHandler{
		ledgerService: ledgerService,
	}
}

// EntriesResponse lists the ledger entries of a shipment.
type EntriesResponse struct {
	ShipmentID string         `json:"shipment_id"`
	Entries    []domain.Entry `json:"entries"`
}

// GetEntries godoc
// @Summary List ledger anchors of a shipment
// @Tags ledger
// @Produce json
// @Param shipmentId path string true "Shipment ID"
// @Success 200 {object} EntriesResponse
// @Failure 503 {object} server.ErrorResponse
// @Router /ledger/{shipmentId} [get]
func (h *LedgerHandler) GetEntries(c *fiber.Ctx) error {
	shipmentID := c.Params("shipmentId")

	entries, err := h.ledgerService.Entries(c.UserContext(), shipmentID)
	if err != nil {
		logger.ForShipment(shipmentID).Error("Failed to list ledger entries", zap.Error(err))
		if errors.Is(err, domain.ErrLedgerUnavailable) {
			return server.Fail(c, fiber.StatusServiceUnavailable, "ledger unavailable")
		}
		return server.Fail(c, fiber.StatusInternalServerError, "internal server error")
	}

	return c.JSON(EntriesResponse{ShipmentID: shipmentID, Entries: entries})
}
