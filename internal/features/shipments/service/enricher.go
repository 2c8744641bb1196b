package service

import (
	"context"
	"sync"

	"checkpoint-tracker/internal/core/keylock"
	"checkpoint-tracker/internal/core/logger"
	interpretation "checkpoint-tracker/internal/features/interpretation/domain"
	interpretationsvc "checkpoint-tracker/internal/features/interpretation/service"
	"checkpoint-tracker/internal/features/shipments/domain"
	"checkpoint-tracker/internal/features/shipments/ports"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Enricher attaches interpretations to anomalies after their checkpoint has committed.
// Each anomaly is interpreted independently; a failure only affects its own record.
type Enricher struct {
	repo        ports.ShipmentRepository
	interpreter *interpretationsvc.InterpretationService
	locks       *keylock.KeyLock
	concurrency int

	wg sync.WaitGroup
}

// NewEnricher creates an Enricher running at most concurrency interpretations per batch.
// Write-backs take the shipment lock from locks so they never overwrite a concurrent resolve.
func NewEnricher(repo ports.ShipmentRepository, interpreter *interpretationsvc.InterpretationService, locks *keylock.KeyLock, concurrency int) *Enricher {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Enricher{
		repo:        repo,
		interpreter: interpreter,
		locks:       locks,
		concurrency: concurrency,
	}
}

// Enrich starts a background batch for the anomalies of one checkpoint and returns immediately.
// The batch is detached from ctx cancellation so it outlives the request that triggered it.
func (e *Enricher) Enrich(ctx context.Context, shipment *domain.Shipment, anomalies []domain.AnomalyRecord) {
	if len(anomalies) == 0 {
		return
	}

	records := make([]domain.AnomalyRecord, len(anomalies))
	copy(records, anomalies)
	category := shipment.Category()
	route := make([]string, len(shipment.Route))
	for i, n := range shipment.Route {
		route[i] = n.LocationCode
	}

	bg := context.WithoutCancel(ctx)

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()

		g, gctx := errgroup.WithContext(bg)
		g.SetLimit(e.concurrency)
		for _, record := range records {
			g.Go(func() error {
				e.enrichOne(gctx, record, category, route)
				return nil
			})
		}
		_ = g.Wait()
	}()
}

func (e *Enricher) enrichOne(ctx context.Context, record domain.AnomalyRecord, category string, route []string) {
	anomalyCtx := interpretation.AnomalyContext{
		"anomaly":          string(record.AnomalyType),
		"severity":         string(record.Severity),
		"details":          record.Details,
		"location_code":    record.LocationCode,
		"shipment_id":      record.ShipmentID,
		"product_category": category,
		"route":            route,
	}

	assessment, status := e.interpreter.Interpret(ctx, anomalyCtx, string(record.Severity))

	if err := e.store(ctx, record, assessment, status); err != nil {
		logger.ForShipment(record.ShipmentID).Error("Failed to store anomaly interpretation",
			zap.String("anomaly_id", record.ID),
			zap.Error(err),
		)
		return
	}

	logger.ForShipment(record.ShipmentID).Debug("Anomaly interpreted",
		zap.String("anomaly_id", record.ID),
		zap.String("status", status),
	)
}

// store writes the interpretation onto the current version of the record.
func (e *Enricher) store(ctx context.Context, record domain.AnomalyRecord, assessment interpretation.Assessment, status string) error {
	unlock := e.locks.Lock(record.ShipmentID)
	defer unlock()

	current, err := e.repo.GetAnomalies(ctx, record.ShipmentID)
	if err != nil {
		return err
	}
	for _, a := range current {
		if a.ID != record.ID {
			continue
		}
		a.Interpretation = &assessment
		a.InterpretationStatus = status
		return e.repo.UpdateAnomaly(ctx, a)
	}
	return domain.ErrAnomalyNotFound
}

// Wait blocks until every batch started so far has finished.
func (e *Enricher) Wait() {
	e.wg.Wait()
}
