package server

import (
	"github.com/gofiber/fiber/v2"
)

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// RayID returns the request id assigned by the requestid middleware, if any.
func RayID(c *fiber.Ctx) string {
	id, _ := c.Locals("requestid").(string)
	return id
}

// Fail writes an ErrorResponse with the given status.
func Fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(ErrorResponse{
		Message: message,
		RayID:   RayID(c),
	})
}
