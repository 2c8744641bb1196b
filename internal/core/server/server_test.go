package server

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"checkpoint-tracker/internal/core/config"
	"checkpoint-tracker/internal/core/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(port int) *config.AppConfig {
	return &config.AppConfig{
		Environment: "test",
		ServerPort:  port,
		Store:       config.StoreConfig{Driver: config.DriverMemory},
		Ledger:      config.LedgerConfig{Driver: config.DriverStub},
		Interpreter: config.InterpreterConfig{Driver: config.DriverStub},
	}
}

// TestNew verifies that New creates a Server with the correct configuration.
func TestNew(t *testing.T) {
	cfg := testConfig(8080)

	logger.Init("development", "debug")
	srv := New(cfg)

	require.NotNil(t, srv)
	assert.NotNil(t, srv.App)
	assert.Equal(t, cfg, srv.cfg)
}

func TestServer_Health(t *testing.T) {
	logger.Init("development", "error")
	srv := New(testConfig(8080))

	resp, err := srv.App.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Ray-ID"))

	var body HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, config.DriverMemory, body.Store)
	assert.Equal(t, config.DriverStub, body.Ledger)
}

func TestServer_Metrics(t *testing.T) {
	logger.Init("development", "error")
	srv := New(testConfig(8080))

	resp, err := srv.App.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "go_goroutines")
}

func TestServer_FailIncludesRayID(t *testing.T) {
	logger.Init("development", "error")
	srv := New(testConfig(8080))
	srv.App.Get("/boom", func(c *fiber.Ctx) error {
		return Fail(c, fiber.StatusTeapot, "short and stout")
	})

	resp, err := srv.App.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "short and stout", body.Message)
	assert.Equal(t, resp.Header.Get("X-Ray-ID"), body.RayID)
}

// TestServer_Run_Error verifies that Run returns an error when binding fails (e.g., privileged port).
func TestServer_Run_Error(t *testing.T) {
	// Privileged port 1 should fail
	logger.Init("development", "error")

	srv := New(testConfig(1))

	errCh := make(chan error)
	go func() {
		errCh <- srv.Run()
	}()

	select {
	case err := <-errCh:
		assert.Error(t, err)
	case <-time.After(1 * time.Second):
		srv.Shutdown()
		t.Log("Server unexpectedly started or timed out on Error test")
	}
}
