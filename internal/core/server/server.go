package server

import (
	"fmt"

	"checkpoint-tracker/internal/core/config"
	"checkpoint-tracker/internal/core/logger"

	"github.com/gofiber/contrib/fiberzap/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	_ "checkpoint-tracker/docs/swagger"
)

// Server holds the Fiber application and configuration.
type Server struct {
	// App is the main Fiber application instance.
	App *fiber.App
	// cfg holds the application configuration.
	cfg *config.AppConfig
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status      string `json:"status"`
	Environment string `json:"environment"`
	Store       string `json:"store"`
	Ledger      string `json:"ledger"`
	Interpreter string `json:"interpreter"`
}

// New creates a new Server instance with configured middleware.
func New(cfg *config.AppConfig) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		AppName:               "checkpoint-tracker",
	})

	app.Use(requestid.New(requestid.Config{
		Header: "X-Ray-ID",
	}))

	app.Use(fiberzap.New(fiberzap.Config{
		Logger: logger.Get(),
	}))

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	s := &Server{
		App: app,
		cfg: cfg,
	}
	app.Get("/health", s.health)

	return s
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status:      "ok",
		Environment: s.cfg.Environment,
		Store:       s.cfg.Store.Driver,
		Ledger:      s.cfg.Ledger.Driver,
		Interpreter: s.cfg.Interpreter.Driver,
	})
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%d", s.cfg.ServerPort)
	logger.Get().Info("Starting server", zap.String("address", addr))
	return s.App.Listen(addr)
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown() error {
	return s.App.Shutdown()
}
