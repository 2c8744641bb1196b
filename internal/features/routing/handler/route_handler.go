package handler

import (
	"errors"

	"checkpoint-tracker/internal/core/server"
	"checkpoint-tracker/internal/features/routing/domain"
	"checkpoint-tracker/internal/features/routing/service"

	"github.com/gofiber/fiber/v2"
)

// RouteHandler handles HTTP requests for the transit network.
type RouteHandler struct {
	routeService *service.RouteService
}

// NewRouteHandler creates a new RouteHandler.
func NewRouteHandler(routeService *service.RouteService) *RouteHandler {
	return &RouteHandler{
		routeService: routeService,
	}
}

// OptimalRouteRequest is the body of POST /routes/optimal.
type OptimalRouteRequest struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

// OptimalRouteResponse is a planned route with its total travel time.
type OptimalRouteResponse struct {
	Route      []domain.RouteNode `json:"route"`
	TotalHours float64            `json:"total_hours"`
}

// Register mounts the routing endpoints on router.
func (h *RouteHandler) Register(router fiber.Router) {
	router.Get("/routes/nodes", h.GetNodes)
	router.Get("/routes/graph", h.GetGraph)
	router.Post("/routes/optimal", h.GetOptimalRoute)
}

// GetNodes godoc
// @Summary List transit nodes
// @Tags routes
// @Produce json
// @Success 200 {array} domain.TransitNode
// @Router /routes/nodes [get]
func (h *RouteHandler) GetNodes(c *fiber.Ctx) error {
	return c.JSON(h.routeService.Nodes())
}

// GetGraph godoc
// @Summary Get the transit network
// @Description Returns every node and every edge labelled with its travel time
// @Tags routes
// @Produce json
// @Success 200 {object} service.GraphView
// @Router /routes/graph [get]
func (h *RouteHandler) GetGraph(c *fiber.Ctx) error {
	return c.JSON(h.routeService.View())
}

// GetOptimalRoute godoc
// @Summary Compute the fastest route
// @Tags routes
// @Accept json
// @Produce json
// @Param request body OptimalRouteRequest true "Route endpoints"
// @Success 200 {object} OptimalRouteResponse
// @Failure 400 {object} server.ErrorResponse
// @Router /routes/optimal [post]
func (h *RouteHandler) GetOptimalRoute(c *fiber.Ctx) error {
	var req OptimalRouteRequest
	if err := c.BodyParser(&req); err != nil {
		return server.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.Origin == "" || req.Destination == "" {
		return server.Fail(c, fiber.StatusBadRequest, "origin and destination are required")
	}

	route, err := h.routeService.Optimal(req.Origin, req.Destination)
	if err != nil {
		if errors.Is(err, domain.ErrNoRouteFound) {
			return server.Fail(c, fiber.StatusBadRequest, err.Error())
		}
		return server.Fail(c, fiber.StatusInternalServerError, err.Error())
	}

	resp := OptimalRouteResponse{Route: route}
	if first, last := route[0].ETA, route[len(route)-1].ETA; first != nil && last != nil {
		resp.TotalHours = last.Sub(*first).Hours()
	}
	return c.JSON(resp)
}
