package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"checkpoint-tracker/internal/core/events"
	"checkpoint-tracker/internal/core/keylock"
	"checkpoint-tracker/internal/core/logger"
	"checkpoint-tracker/internal/core/metrics"
	ledger "checkpoint-tracker/internal/features/ledger/domain"
	ledgersvc "checkpoint-tracker/internal/features/ledger/service"
	risk "checkpoint-tracker/internal/features/risk/domain"
	routing "checkpoint-tracker/internal/features/routing/domain"
	"checkpoint-tracker/internal/features/shipments/domain"
	"checkpoint-tracker/internal/features/shipments/ports"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const tamperMessage = "Document texts have been modified since the last checkpoint. " +
	"The document hash does not match the anchored record. " +
	"Possible tampering or unauthorized modification detected."

// CheckpointProcessor implements ports.CheckpointService.
//
// Submissions for one shipment are serialized; different shipments run in parallel.
// Ordering violations are rejected before anything is written. Once accepted, ledger and
// interpretation failures degrade into the result instead of failing the checkpoint.
type CheckpointProcessor struct {
	repo      ports.ShipmentRepository
	ledger    *ledgersvc.LedgerService
	engine    *risk.Engine
	enricher  *Enricher
	publisher events.Publisher
	locks     *keylock.KeyLock
	now       func() time.Time
}

// NewCheckpointProcessor creates a CheckpointProcessor. enricher may be nil to skip interpretation.
func NewCheckpointProcessor(
	repo ports.ShipmentRepository,
	ledgerSvc *ledgersvc.LedgerService,
	engine *risk.Engine,
	enricher *Enricher,
	publisher events.Publisher,
	locks *keylock.KeyLock,
	clock func() time.Time,
) *CheckpointProcessor {
	if clock == nil {
		clock = time.Now
	}
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &CheckpointProcessor{
		repo:      repo,
		ledger:    ledgerSvc,
		engine:    engine,
		enricher:  enricher,
		publisher: publisher,
		locks:     locks,
		now:       clock,
	}
}

// Submit records a checkpoint.
func (p *CheckpointProcessor) Submit(ctx context.Context, event domain.CheckpointEvent) (*domain.CheckpointResult, error) {
	started := time.Now()
	defer func() {
		metrics.CheckpointDuration.Observe(time.Since(started).Seconds())
	}()

	if event.ShipmentID == "" || event.LocationCode == "" {
		return nil, p.reject(event, fmt.Errorf("%w: shipment_id and location_code are required", domain.ErrInvalidCheckpoint))
	}

	unlock := p.locks.Lock(event.ShipmentID)
	defer unlock()

	shipment, err := p.repo.Get(ctx, event.ShipmentID)
	if err != nil {
		if errors.Is(err, domain.ErrShipmentNotFound) {
			return nil, p.reject(event, err)
		}
		return nil, fmt.Errorf("service: failed to get shipment: %w", err)
	}

	idx, err := shipment.CheckArrival(event.LocationCode)
	if err != nil {
		return nil, p.reject(event, err)
	}

	now := p.now().UTC()
	arrival := now
	if event.Timestamp != nil {
		arrival = event.Timestamp.UTC()
	}
	node := shipment.Route[idx]
	isFinal := idx == len(shipment.Route)-1

	// Tamper check against the latest anchor.
	currentHash := shipment.Documents.Hash()
	verification := p.ledger.Verify(ctx, shipment.ID, currentHash)
	hashCheck := domain.HashVerification{
		CurrentHash:    currentHash,
		OnChainHash:    verification.OnChainHash,
		Verified:       verification.Verified,
		Status:         verification.Status,
		TamperDetected: !verification.Verified && verification.Status == ledger.VerifyHashMismatch,
		Error:          verification.Error,
	}

	var anomalies []domain.AnomalyRecord
	if hashCheck.TamperDetected {
		details := map[string]any{
			"current_hash": currentHash.Hex(),
			"location":     event.LocationCode,
			"message":      tamperMessage,
		}
		if verification.OnChainHash != nil {
			details["expected_hash"] = verification.OnChainHash.Hex()
		}
		anomalies = append(anomalies, p.newAnomaly(shipment.ID, event.LocationCode, risk.Finding{
			Type:     risk.AnomalyDocumentTampered,
			Severity: risk.SeverityCritical,
			Details:  details,
		}, now))
	}

	delayHours := 0.0
	if node.ExpectedArrival != nil {
		if d := arrival.Sub(*node.ExpectedArrival); d > 0 {
			delayHours = d.Hours()
		}
	}

	history, err := p.repo.GetTelemetry(ctx, shipment.ID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get telemetry: %w", err)
	}
	var baseline *float64
	if len(history) > 0 {
		w := history[0].WeightKg
		baseline = &w
	}

	findings := p.engine.Evaluate(risk.Reading{
		Category:         shipment.Category(),
		Temperature:      event.Temperature,
		Humidity:         event.Humidity,
		WeightKg:         event.WeightKg,
		ExpectedWeightKg: baseline,
		DelayHours:       delayHours,
	})
	for _, f := range findings {
		anomalies = append(anomalies, p.newAnomaly(shipment.ID, event.LocationCode, f, now))
	}

	reading := domain.Telemetry{
		ID:           uuid.NewString(),
		ShipmentID:   shipment.ID,
		LocationCode: event.LocationCode,
		Temperature:  event.Temperature,
		Humidity:     event.Humidity,
		WeightKg:     event.WeightKg,
		Timestamp:    arrival,
	}

	receipt := p.ledger.Anchor(ctx, ledger.AppendRequest{
		ShipmentID:   shipment.ID,
		LocationCode: event.LocationCode,
		WeightKg:     event.WeightKg,
		DocumentHash: currentHash,
		Kind:         ledger.KindCheckpoint,
	})

	route := routing.CloneRoute(shipment.Route)
	route[idx].ActualArrival = &arrival
	if delayHours > 0 && !isFinal {
		route = routing.Propagate(route, idx, routing.HoursToDuration(delayHours))
	}

	shipment.Route = route
	if isFinal {
		shipment.Status = domain.StatusDelivered
	} else {
		shipment.Status = domain.StatusInTransit
	}
	if receipt.Anchored() {
		shipment.DocHash = currentHash
	}
	if receipt.TxRef != "" {
		shipment.LedgerTxRefs = append(shipment.LedgerTxRefs, receipt.TxRef)
	}
	shipment.UpdatedAt = now

	// The shipment update commits the checkpoint; failed writes after it go to StorageErrors.
	if err := p.repo.Update(ctx, shipment); err != nil {
		return nil, fmt.Errorf("service: failed to update shipment: %w", err)
	}

	var storageErrors []string
	if err := p.repo.AddTelemetry(ctx, reading); err != nil {
		storageErrors = append(storageErrors, fmt.Sprintf("telemetry %s not stored", reading.ID))
		p.logStorageFailure(shipment.ID, "telemetry", reading.ID, err)
	}

	stored := make([]domain.AnomalyRecord, 0, len(anomalies))
	for _, a := range anomalies {
		metrics.AnomaliesTotal.WithLabelValues(string(a.AnomalyType), string(a.Severity)).Inc()
		if err := p.repo.AddAnomaly(ctx, a); err != nil {
			storageErrors = append(storageErrors, fmt.Sprintf("anomaly %s not stored", a.ID))
			p.logStorageFailure(shipment.ID, "anomaly", a.ID, err)
			continue
		}
		stored = append(stored, a)
	}

	result := &domain.CheckpointResult{
		Status:             domain.ResolveResultStatus(isFinal, hashCheck.TamperDetected, len(anomalies) > 0),
		ShipmentID:         shipment.ID,
		NodeIndex:          idx,
		Location:           event.LocationCode,
		IsFinalDestination: isFinal,
		ShipmentStatus:     shipment.Status,
		Route:              routing.CloneRoute(shipment.Route),
		Checkpoint:         reading,
		Ledger:             receipt,
		HashVerification:   hashCheck,
		Anomalies:          anomalies,
		DelayHours:         delayHours,
		StorageErrors:      storageErrors,
	}
	if result.Anomalies == nil {
		result.Anomalies = []domain.AnomalyRecord{}
	}

	metrics.CheckpointsTotal.WithLabelValues(string(result.Status)).Inc()
	logger.ForShipment(shipment.ID).Info("Checkpoint recorded",
		zap.String("location_code", event.LocationCode),
		zap.Int("node_index", idx),
		zap.String("status", string(result.Status)),
		zap.Float64("delay_hours", delayHours),
		zap.Int("anomalies", len(anomalies)),
		zap.String("ledger_status", string(receipt.Status)),
		zap.String("verify_status", string(hashCheck.Status)),
		zap.Int("storage_errors", len(storageErrors)),
	)

	publish(ctx, p.publisher, events.CheckpointRecorded, shipment.ID, now, result)
	for _, a := range anomalies {
		publish(ctx, p.publisher, events.AnomalyDetected, shipment.ID, now, a)
	}

	if p.enricher != nil {
		p.enricher.Enrich(ctx, shipment, stored)
	}

	return result, nil
}

func (p *CheckpointProcessor) newAnomaly(shipmentID, location string, f risk.Finding, at time.Time) domain.AnomalyRecord {
	return domain.AnomalyRecord{
		ID:                   uuid.NewString(),
		ShipmentID:           shipmentID,
		AnomalyType:          f.Type,
		Severity:             f.Severity,
		Details:              f.Details,
		LocationCode:         location,
		Resolved:             false,
		CreatedAt:            at,
		InterpretationStatus: domain.InterpretationPending,
	}
}

func (p *CheckpointProcessor) logStorageFailure(shipmentID, record, recordID string, err error) {
	metrics.StorageFailuresTotal.WithLabelValues(record).Inc()
	logger.ForShipment(shipmentID).Error("Failed to store checkpoint record",
		zap.String("record", record),
		zap.String("record_id", recordID),
		zap.Error(err),
	)
}

// reject counts and logs a structural rejection and returns err unchanged.
func (p *CheckpointProcessor) reject(event domain.CheckpointEvent, err error) error {
	reason := rejectionReason(err)
	metrics.CheckpointRejectionsTotal.WithLabelValues(reason).Inc()
	logger.ForShipment(event.ShipmentID).Info("Checkpoint rejected",
		zap.String("location_code", event.LocationCode),
		zap.String("reason", reason),
		zap.Error(err),
	)
	return err
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrShipmentNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrShipmentDelivered):
		return "delivered"
	case errors.Is(err, domain.ErrNotOnRoute):
		return "not_on_route"
	case errors.Is(err, domain.ErrOutOfOrder):
		return "out_of_order"
	case errors.Is(err, domain.ErrDuplicateCheckpoint):
		return "duplicate"
	default:
		return "invalid"
	}
}
