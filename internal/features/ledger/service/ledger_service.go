package service

import (
	"context"
	"fmt"
	"time"

	"checkpoint-tracker/internal/core/logger"
	"checkpoint-tracker/internal/core/metrics"
	"checkpoint-tracker/internal/features/ledger/domain"
	"checkpoint-tracker/internal/features/ledger/ports"

	"go.uber.org/zap"
)

// LedgerService bounds every ledger call and turns adapter failures into error outcomes.
// Anchor and Verify never return a Go error: a ledger outage must not abort a checkpoint.
type LedgerService struct {
	ledger  ports.Ledger
	timeout time.Duration
}

// NewLedgerService creates a LedgerService. A non-positive timeout disables the bound.
func NewLedgerService(ledger ports.Ledger, timeout time.Duration) *LedgerService {
	return &LedgerService{
		ledger:  ledger,
		timeout: timeout,
	}
}

func (s *LedgerService) bounded(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// Anchor appends hash for the shipment at location.
func (s *LedgerService) Anchor(ctx context.Context, req domain.AppendRequest) domain.Receipt {
	ctx, cancel := s.bounded(ctx)
	defer cancel()

	receipt, err := s.ledger.Append(ctx, req)
	if err != nil {
		logger.ForShipment(req.ShipmentID).Warn("Ledger append failed",
			zap.String("location_code", req.LocationCode),
			zap.Error(err),
		)
		receipt = domain.Receipt{Status: domain.AppendError, Error: err.Error()}
	}

	metrics.LedgerOperationsTotal.WithLabelValues("append", string(receipt.Status)).Inc()
	return receipt
}

// Verify checks expected against the latest checkpoint anchor of the shipment.
func (s *LedgerService) Verify(ctx context.Context, shipmentID string, expected domain.Hash) domain.Verification {
	ctx, cancel := s.bounded(ctx)
	defer cancel()

	v, err := s.ledger.Verify(ctx, shipmentID, expected)
	if err != nil {
		logger.ForShipment(shipmentID).Warn("Ledger verify failed",
			zap.Error(err),
		)
		v = domain.Verification{Verified: false, Status: domain.VerifyError, Error: err.Error()}
	}

	metrics.LedgerOperationsTotal.WithLabelValues("verify", string(v.Status)).Inc()
	return v
}

// Entries lists the anchored entries of a shipment.
func (s *LedgerService) Entries(ctx context.Context, shipmentID string) ([]domain.Entry, error) {
	ctx, cancel := s.bounded(ctx)
	defer cancel()

	entries, err := s.ledger.Entries(ctx, shipmentID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list ledger entries: %w", err)
	}
	return entries, nil
}
