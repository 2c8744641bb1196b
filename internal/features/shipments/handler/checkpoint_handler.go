package handler

import (
	"checkpoint-tracker/internal/core/server"
	"checkpoint-tracker/internal/features/shipments/domain"
	"checkpoint-tracker/internal/features/shipments/ports"

	"github.com/gofiber/fiber/v2"
)

// CheckpointHandler handles checkpoint submissions.
type CheckpointHandler struct {
	checkpointService ports.CheckpointService
}

// NewCheckpointHandler creates a new CheckpointHandler.
func NewCheckpointHandler(checkpointService ports.CheckpointService) *CheckpointHandler {
	return &CheckpointHandler{
		checkpointService: checkpointService,
	}
}

// Register mounts the checkpoint endpoint on router.
func (h *CheckpointHandler) Register(router fiber.Router) {
	router.Post("/checkpoints", h.SubmitCheckpoint)
}

// SubmitCheckpoint godoc
// @Summary Submit a checkpoint
// @Description Checks the shipment in at the next stop of its route. Ledger and interpretation failures are reported in the result, not as errors.
// @Tags checkpoints
// @Accept json
// @Produce json
// @Param request body domain.CheckpointEvent true "Checkpoint"
// @Success 200 {object} domain.CheckpointResult
// @Failure 400 {object} server.ErrorResponse
// @Failure 404 {object} server.ErrorResponse
// @Failure 409 {object} server.ErrorResponse
// @Failure 500 {object} server.ErrorResponse
// @Router /checkpoints [post]
func (h *CheckpointHandler) SubmitCheckpoint(c *fiber.Ctx) error {
	var event domain.CheckpointEvent
	if err := c.BodyParser(&event); err != nil {
		return server.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.checkpointService.Submit(c.UserContext(), event)
	if err != nil {
		return fail(c, err, "Failed to process checkpoint")
	}
	return c.JSON(result)
}
