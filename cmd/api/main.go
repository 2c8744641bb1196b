package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"checkpoint-tracker/internal/core/cache"
	"checkpoint-tracker/internal/core/config"
	"checkpoint-tracker/internal/core/events"
	"checkpoint-tracker/internal/core/keylock"
	"checkpoint-tracker/internal/core/logger"
	"checkpoint-tracker/internal/core/server"
	interpretationadapters "checkpoint-tracker/internal/features/interpretation/adapters"
	interpretationports "checkpoint-tracker/internal/features/interpretation/ports"
	interpretationservice "checkpoint-tracker/internal/features/interpretation/service"
	ledgeradapters "checkpoint-tracker/internal/features/ledger/adapters"
	ledgerhandler "checkpoint-tracker/internal/features/ledger/handler"
	ledgerports "checkpoint-tracker/internal/features/ledger/ports"
	ledgerservice "checkpoint-tracker/internal/features/ledger/service"
	riskadapters "checkpoint-tracker/internal/features/risk/adapters"
	routingadapters "checkpoint-tracker/internal/features/routing/adapters"
	routingdomain "checkpoint-tracker/internal/features/routing/domain"
	routinghandler "checkpoint-tracker/internal/features/routing/handler"
	routingservice "checkpoint-tracker/internal/features/routing/service"
	shipmentadapters "checkpoint-tracker/internal/features/shipments/adapters"
	shipmenthandler "checkpoint-tracker/internal/features/shipments/handler"
	shipmentports "checkpoint-tracker/internal/features/shipments/ports"
	shipmentservice "checkpoint-tracker/internal/features/shipments/service"

	"go.uber.org/zap"
)

// @title Checkpoint Tracker API
// @version 1.0
// @description Shipment custody tracking: planned routes, checkpoint check-ins, risk anomalies and ledger-anchored document hashes.
// @contact.name API Support
// @contact.email support@checkpoint-tracker.dev
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
		zap.String("store_driver", cfg.Store.Driver),
		zap.String("ledger_driver", cfg.Ledger.Driver),
		zap.String("interpreter_driver", cfg.Interpreter.Driver),
	)

	ctx := context.Background()

	// Redis is shared by the redis store and the redis ledger
	var redisCache *cache.RedisAdapter
	if cfg.Store.Driver == config.DriverRedis || cfg.Ledger.Driver == config.DriverRedis {
		redisCache, err = cache.NewRedisAdapter(cfg.Store.RedisURL)
		if err != nil {
			l.Fatal("Failed to create redis client", zap.Error(err))
		}
		if err := redisCache.Ping(ctx); err != nil {
			l.Fatal("Redis Health Check Failed", zap.Error(err))
		}
		defer redisCache.Close()
		l.Info("Redis connection verified")
	}

	// Initialize Shipment Repository
	var repo shipmentports.ShipmentRepository
	switch cfg.Store.Driver {
	case config.DriverRedis:
		repo = shipmentadapters.NewRedisShipmentRepository(redisCache)
	case config.DriverPostgres:
		pool, err := shipmentadapters.NewPostgresPool(ctx, cfg.Store.DatabaseURL)
		if err != nil {
			l.Fatal("Failed to connect to postgres", zap.Error(err))
		}
		defer pool.Close()
		pgRepo := shipmentadapters.NewPostgresShipmentRepository(pool)
		if err := pgRepo.Migrate(ctx); err != nil {
			l.Fatal("Failed to migrate postgres schema", zap.Error(err))
		}
		repo = pgRepo
		l.Info("Postgres connection verified")
	default:
		repo = shipmentadapters.NewMemoryRepository()
	}

	// Initialize Ledger
	var ledger ledgerports.Ledger
	switch cfg.Ledger.Driver {
	case config.DriverMemory:
		ledger = ledgeradapters.NewMemoryLedger()
	case config.DriverRedis:
		ledger = ledgeradapters.NewRedisLedger(redisCache)
	case config.DriverHTTP:
		ledger = ledgeradapters.NewHTTPLedger(cfg.Ledger.URL, cfg.Ledger.APIKey, cfg.Ledger.Timeout())
	default:
		ledger = ledgeradapters.NewStubLedger()
	}
	ledgerSvc := ledgerservice.NewLedgerService(ledger, cfg.Ledger.Timeout())

	// Initialize Interpreter
	var interpreter interpretationports.Interpreter
	switch cfg.Interpreter.Driver {
	case config.DriverHTTP:
		interpreter = interpretationadapters.NewHTTPInterpreter(cfg.Interpreter.URL, cfg.Interpreter.APIKey, cfg.Interpreter.Timeout())
	default:
		interpreter = interpretationadapters.NewStubInterpreter()
	}
	interpretationSvc := interpretationservice.NewInterpretationService(interpreter, cfg.Interpreter.Timeout())

	// Initialize Domain Tables
	graph := routingdomain.DefaultGraph()
	if cfg.Domain.NetworkFile != "" {
		graph, err = routingadapters.LoadNetwork(cfg.Domain.NetworkFile)
		if err != nil {
			l.Fatal("Failed to load transit network", zap.String("path", cfg.Domain.NetworkFile), zap.Error(err))
		}
	}
	engine, err := riskadapters.NewEngine(cfg.Domain.RiskPolicyFile)
	if err != nil {
		l.Fatal("Failed to load risk policies", zap.String("path", cfg.Domain.RiskPolicyFile), zap.Error(err))
	}

	// Initialize Event Publisher
	var publisher events.Publisher = events.NopPublisher{}
	if cfg.Events.Broker != "" {
		publisher = events.NewKafkaPublisher(cfg.Events.Broker, cfg.Events.Topic)
		l.Info("Publishing events", zap.String("broker", cfg.Events.Broker), zap.String("topic", cfg.Events.Topic))
	}
	defer publisher.Close()

	// Initialize Services & Handlers
	locks := keylock.New()
	enricher := shipmentservice.NewEnricher(repo, interpretationSvc, locks, cfg.Interpreter.Concurrency)
	shipmentSvc := shipmentservice.NewShipmentService(repo, graph, interpretationSvc, ledgerSvc, publisher, locks, nil)
	checkpointSvc := shipmentservice.NewCheckpointProcessor(repo, ledgerSvc, engine, enricher, publisher, locks, nil)
	routeSvc := routingservice.NewRouteService(graph, nil)

	shipmentHdl := shipmenthandler.NewShipmentHandler(shipmentSvc)
	checkpointHdl := shipmenthandler.NewCheckpointHandler(checkpointSvc)
	routeHdl := routinghandler.NewRouteHandler(routeSvc)
	ledgerHdl := ledgerhandler.NewLedgerHandler(ledgerSvc)

	srv := server.New(cfg)

	// Register Routes
	shipmentHdl.Register(srv.App)
	checkpointHdl.Register(srv.App)
	routeHdl.Register(srv.App)
	srv.App.Get("/ledger/:shipmentId", ledgerHdl.GetEntries)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		l.Info("Shutting down")
		if err := srv.Shutdown(); err != nil {
			l.Error("Server shutdown failed", zap.Error(err))
		}
	}()

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}

	waitForEnrichment(enricher, 10*time.Second)
}

// waitForEnrichment lets pending interpretations finish, up to limit.
func waitForEnrichment(enricher *shipmentservice.Enricher, limit time.Duration) {
	done := make(chan struct{})
	go func() {
		enricher.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(limit):
		logger.Get().Warn("Pending interpretations abandoned at shutdown")
	}
}
