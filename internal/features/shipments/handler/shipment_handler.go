package handler

import (
	"checkpoint-tracker/internal/core/server"
	risk "checkpoint-tracker/internal/features/risk/domain"
	"checkpoint-tracker/internal/features/shipments/domain"
	"checkpoint-tracker/internal/features/shipments/ports"

	"github.com/gofiber/fiber/v2"
)

// ShipmentHandler handles HTTP requests for shipments and their anomalies.
type ShipmentHandler struct {
	shipmentService ports.ShipmentService
}

// NewShipmentHandler creates a new ShipmentHandler.
func NewShipmentHandler(shipmentService ports.ShipmentService) *ShipmentHandler {
	return &ShipmentHandler{
		shipmentService: shipmentService,
	}
}

// ResolveRequest is the body of POST /anomalies/{shipmentId}/resolve.
type ResolveRequest struct {
	AnomalyType risk.AnomalyType `json:"anomaly_type"`
}

// ResolveResponse reports how many anomalies were resolved.
type ResolveResponse struct {
	ShipmentID  string           `json:"shipment_id"`
	AnomalyType risk.AnomalyType `json:"anomaly_type"`
	Resolved    int              `json:"resolved"`
}

// Register mounts the shipment and anomaly endpoints on router.
func (h *ShipmentHandler) Register(router fiber.Router) {
	router.Post("/shipments", h.CreateShipment)
	router.Get("/shipments", h.ListShipments)
	router.Get("/shipments/:id", h.GetShipment)
	router.Put("/shipments/:id/documents", h.UpdateDocuments)

	router.Get("/anomalies", h.ListAnomalies)
	router.Get("/anomalies/:shipmentId", h.GetAnomalies)
	router.Post("/anomalies/:shipmentId/resolve", h.ResolveAnomalies)
}

// CreateShipment godoc
// @Summary Create a shipment
// @Description Materializes the route, classifies the documents when no risk profile is given and anchors the document hash
// @Tags shipments
// @Accept json
// @Produce json
// @Param request body ports.CreateShipmentInput true "Shipment"
// @Success 201 {object} ports.CreateShipmentResult
// @Failure 400 {object} server.ErrorResponse
// @Failure 409 {object} server.ErrorResponse
// @Failure 500 {object} server.ErrorResponse
// @Router /shipments [post]
func (h *ShipmentHandler) CreateShipment(c *fiber.Ctx) error {
	var in ports.CreateShipmentInput
	if err := c.BodyParser(&in); err != nil {
		return server.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.shipmentService.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, err, "Failed to create shipment")
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// ListShipments godoc
// @Summary List shipments
// @Tags shipments
// @Produce json
// @Success 200 {array} domain.Shipment
// @Failure 500 {object} server.ErrorResponse
// @Router /shipments [get]
func (h *ShipmentHandler) ListShipments(c *fiber.Ctx) error {
	shipments, err := h.shipmentService.List(c.UserContext())
	if err != nil {
		return fail(c, err, "Failed to list shipments")
	}
	return c.JSON(shipments)
}

// GetShipment godoc
// @Summary Get a shipment
// @Tags shipments
// @Produce json
// @Param id path string true "Shipment ID"
// @Success 200 {object} domain.Shipment
// @Failure 404 {object} server.ErrorResponse
// @Router /shipments/{id} [get]
func (h *ShipmentHandler) GetShipment(c *fiber.Ctx) error {
	shipment, err := h.shipmentService.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err, "Failed to get shipment")
	}
	return c.JSON(shipment)
}

// UpdateDocuments godoc
// @Summary Replace shipment document texts
// @Description The ledger is not updated; the next checkpoint verifies the new texts against the last anchor
// @Tags shipments
// @Accept json
// @Produce json
// @Param id path string true "Shipment ID"
// @Param request body ports.DocumentsUpdate true "Document texts"
// @Success 200 {object} domain.Shipment
// @Failure 400 {object} server.ErrorResponse
// @Failure 404 {object} server.ErrorResponse
// @Router /shipments/{id}/documents [put]
func (h *ShipmentHandler) UpdateDocuments(c *fiber.Ctx) error {
	var update ports.DocumentsUpdate
	if err := c.BodyParser(&update); err != nil {
		return server.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	shipment, err := h.shipmentService.UpdateDocuments(c.UserContext(), c.Params("id"), update)
	if err != nil {
		return fail(c, err, "Failed to update documents")
	}
	return c.JSON(shipment)
}

// ListAnomalies godoc
// @Summary List anomalies of every shipment
// @Tags anomalies
// @Produce json
// @Success 200 {array} domain.AnomalyRecord
// @Router /anomalies [get]
func (h *ShipmentHandler) ListAnomalies(c *fiber.Ctx) error {
	records, err := h.shipmentService.AllAnomalies(c.UserContext())
	if err != nil {
		return fail(c, err, "Failed to list anomalies")
	}
	return c.JSON(records)
}

// GetAnomalies godoc
// @Summary List anomalies of a shipment
// @Tags anomalies
// @Produce json
// @Param shipmentId path string true "Shipment ID"
// @Success 200 {array} domain.AnomalyRecord
// @Failure 404 {object} server.ErrorResponse
// @Router /anomalies/{shipmentId} [get]
func (h *ShipmentHandler) GetAnomalies(c *fiber.Ctx) error {
	records, err := h.shipmentService.Anomalies(c.UserContext(), c.Params("shipmentId"))
	if err != nil {
		return fail(c, err, "Failed to get anomalies")
	}
	if records == nil {
		records = []domain.AnomalyRecord{}
	}
	return c.JSON(records)
}

// ResolveAnomalies godoc
// @Summary Resolve anomalies of one type
// @Tags anomalies
// @Accept json
// @Produce json
// @Param shipmentId path string true "Shipment ID"
// @Param request body ResolveRequest true "Anomaly type"
// @Success 200 {object} ResolveResponse
// @Failure 400 {object} server.ErrorResponse
// @Failure 404 {object} server.ErrorResponse
// @Router /anomalies/{shipmentId}/resolve [post]
func (h *ShipmentHandler) ResolveAnomalies(c *fiber.Ctx) error {
	var req ResolveRequest
	if err := c.BodyParser(&req); err != nil {
		return server.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	shipmentID := c.Params("shipmentId")
	n, err := h.shipmentService.ResolveAnomalies(c.UserContext(), shipmentID, req.AnomalyType)
	if err != nil {
		return fail(c, err, "Failed to resolve anomalies")
	}
	return c.JSON(ResolveResponse{ShipmentID: shipmentID, AnomalyType: req.AnomalyType, Resolved: n})
}
