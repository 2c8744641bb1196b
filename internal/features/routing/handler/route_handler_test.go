package handler

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"checkpoint-tracker/internal/core/server"
	"checkpoint-tracker/internal/features/routing/domain"
	"checkpoint-tracker/internal/features/routing/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupApp() *fiber.App {
	svc := service.NewRouteService(domain.DefaultGraph(), func() time.Time {
		return time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	})
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("requestid", "test-ray-id")
		return c.Next()
	})
	NewRouteHandler(svc).Register(app)
	return app
}

func TestRouteHandler_GetNodes(t *testing.T) {
	app := setupApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/routes/nodes", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var nodes []domain.TransitNode
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&nodes))
	assert.Len(t, nodes, 15)
	assert.Equal(t, "DEL", nodes[0].Code)
}

func TestRouteHandler_GetGraph(t *testing.T) {
	app := setupApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/routes/graph", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var view service.GraphView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	assert.Len(t, view.Edges, 22)
	assert.Equal(t, "5h", view.Edges[0].Label)
}

func TestRouteHandler_GetOptimalRoute(t *testing.T) {
	app := setupApp()

	t.Run("Success", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/routes/optimal", strings.NewReader(`{"origin":"DEL","destination":"CHN"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var out OptimalRouteResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, "DEL", out.Route[0].LocationCode)
		assert.Equal(t, "CHN", out.Route[len(out.Route)-1].LocationCode)
		assert.InDelta(t, 46, out.TotalHours, 1e-9)
	})

	t.Run("UnknownNode", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/routes/optimal", strings.NewReader(`{"origin":"DEL","destination":"XXX"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		var errResp server.ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
		assert.Contains(t, errResp.Message, "no route found")
		assert.Equal(t, "test-ray-id", errResp.RayID)
	})

	t.Run("MissingFields", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/routes/optimal", strings.NewReader(`{"origin":"DEL"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}
