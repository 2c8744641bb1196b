package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"checkpoint-tracker/internal/core/events"
	"checkpoint-tracker/internal/core/keylock"
	"checkpoint-tracker/internal/core/logger"
	interpretation "checkpoint-tracker/internal/features/interpretation/domain"
	interpretationsvc "checkpoint-tracker/internal/features/interpretation/service"
	ledger "checkpoint-tracker/internal/features/ledger/domain"
	ledgersvc "checkpoint-tracker/internal/features/ledger/service"
	risk "checkpoint-tracker/internal/features/risk/domain"
	routing "checkpoint-tracker/internal/features/routing/domain"
	"checkpoint-tracker/internal/features/shipments/domain"
	"checkpoint-tracker/internal/features/shipments/ports"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ShipmentService implements ports.ShipmentService.
type ShipmentService struct {
	repo        ports.ShipmentRepository
	graph       *routing.Graph
	interpreter *interpretationsvc.InterpretationService
	ledger      *ledgersvc.LedgerService
	publisher   events.Publisher
	locks       *keylock.KeyLock
	now         func() time.Time
}

// NewShipmentService creates a ShipmentService. locks must be the instance shared with the
// CheckpointProcessor so document updates and checkpoints of one shipment never interleave.
func NewShipmentService(
	repo ports.ShipmentRepository,
	graph *routing.Graph,
	interpreter *interpretationsvc.InterpretationService,
	ledgerSvc *ledgersvc.LedgerService,
	publisher events.Publisher,
	locks *keylock.KeyLock,
	clock func() time.Time,
) *ShipmentService {
	if clock == nil {
		clock = time.Now
	}
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &ShipmentService{
		repo:        repo,
		graph:       graph,
		interpreter: interpreter,
		ledger:      ledgerSvc,
		publisher:   publisher,
		locks:       locks,
		now:         clock,
	}
}

// Create registers a shipment, materializes its route and anchors the genesis hash.
func (s *ShipmentService) Create(ctx context.Context, in ports.CreateShipmentInput) (*ports.CreateShipmentResult, error) {
	if in.Origin == "" || in.Destination == "" {
		return nil, fmt.Errorf("%w: origin and destination are required", domain.ErrInvalidShipment)
	}

	id := in.ID
	if id == "" {
		id = uuid.NewString()
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	if _, err := s.repo.Get(ctx, id); err == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrShipmentExists, id)
	} else if !errors.Is(err, domain.ErrShipmentNotFound) {
		return nil, fmt.Errorf("service: failed to check shipment: %w", err)
	}

	now := s.now().UTC()
	route, err := s.route(in, now)
	if err != nil {
		return nil, err
	}

	profile, classification := s.riskProfile(ctx, in)

	shipment := &domain.Shipment{
		ID:           id,
		Origin:       in.Origin,
		Destination:  in.Destination,
		Route:        route,
		RiskProfile:  profile,
		Status:       domain.StatusCreated,
		Documents:    in.Documents,
		DocHash:      in.Documents.Hash(),
		LedgerTxRefs: []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, shipment); err != nil {
		if errors.Is(err, domain.ErrShipmentExists) {
			return nil, fmt.Errorf("%w: %s", domain.ErrShipmentExists, id)
		}
		return nil, fmt.Errorf("service: failed to create shipment: %w", err)
	}

	receipt := s.ledger.Anchor(ctx, ledger.AppendRequest{
		ShipmentID:   id,
		LocationCode: in.Origin,
		WeightKg:     0,
		DocumentHash: shipment.DocHash,
		Kind:         ledger.KindGenesis,
	})
	if receipt.TxRef != "" {
		shipment.LedgerTxRefs = append(shipment.LedgerTxRefs, receipt.TxRef)
		if err := s.repo.Update(ctx, shipment); err != nil {
			return nil, fmt.Errorf("service: failed to record genesis anchor: %w", err)
		}
	}

	logger.ForShipment(id).Info("Shipment created",
		zap.String("origin", in.Origin),
		zap.String("destination", in.Destination),
		zap.Int("stops", len(route)),
		zap.String("category", shipment.Category()),
		zap.String("ledger_status", string(receipt.Status)),
	)
	publish(ctx, s.publisher, events.ShipmentCreated, id, now, shipment)

	return &ports.CreateShipmentResult{
		Shipment:       shipment,
		Classification: classification,
		Ledger:         receipt,
	}, nil
}

// route builds the supplied stop list or the fastest path between origin and destination.
func (s *ShipmentService) route(in ports.CreateShipmentInput, now time.Time) ([]routing.RouteNode, error) {
	if len(in.RouteCodes) == 0 {
		route, err := s.graph.ShortestPath(in.Origin, in.Destination, now)
		if err != nil {
			return nil, fmt.Errorf("service: %w", err)
		}
		return route, nil
	}

	if in.RouteCodes[0] != in.Origin || in.RouteCodes[len(in.RouteCodes)-1] != in.Destination {
		return nil, fmt.Errorf("%w: route must start at %s and end at %s",
			domain.ErrInvalidShipment, in.Origin, in.Destination)
	}
	seen := make(map[string]bool, len(in.RouteCodes))
	for _, code := range in.RouteCodes {
		if seen[code] {
			return nil, fmt.Errorf("%w: route visits %s twice", domain.ErrInvalidShipment, code)
		}
		seen[code] = true
	}

	route, err := s.graph.Materialize(in.RouteCodes, now)
	if err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	return route, nil
}

// riskProfile returns the supplied profile, or classifies the documents when any text is present.
// The second value is the classification, nil when none ran.
func (s *ShipmentService) riskProfile(ctx context.Context, in ports.CreateShipmentInput) (domain.RiskProfile, *domain.RiskProfile) {
	if in.RiskProfile != nil {
		p := *in.RiskProfile
		if p.ProductCategory == "" {
			p.ProductCategory = risk.DefaultCategory
		}
		return p, nil
	}

	docs := in.Documents
	if docs.PurchaseOrder == "" && docs.Invoice == "" && docs.BillOfLading == "" {
		return domain.RiskProfile{
			ProductCategory:    risk.DefaultCategory,
			RiskFlags:          []string{},
			ComplianceRequired: []string{},
		}, nil
	}

	c := s.interpreter.Classify(ctx, interpretation.Documents{
		PurchaseOrder: docs.PurchaseOrder,
		Invoice:       docs.Invoice,
		BillOfLading:  docs.BillOfLading,
	})
	p := domain.RiskProfile{
		ProductCategory:    c.ProductCategory,
		RiskFlags:          c.RiskFlags,
		HazardClass:        c.HazardClass,
		ComplianceRequired: c.ComplianceRequired,
		ConfidenceScore:    c.ConfidenceScore,
	}
	if p.ProductCategory == "" {
		p.ProductCategory = risk.DefaultCategory
	}
	classified := p.Clone()
	return p, &classified
}

// Get returns a shipment.
func (s *ShipmentService) Get(ctx context.Context, id string) (*domain.Shipment, error) {
	shipment, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, wrapRepo("failed to get shipment", err)
	}
	return shipment, nil
}

// List returns every shipment.
func (s *ShipmentService) List(ctx context.Context) ([]*domain.Shipment, error) {
	shipments, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list shipments: %w", err)
	}
	return shipments, nil
}

// UpdateDocuments replaces the given document texts. The ledger is not touched, so the
// next checkpoint compares the new texts against the last anchored hash.
func (s *ShipmentService) UpdateDocuments(ctx context.Context, id string, update ports.DocumentsUpdate) (*domain.Shipment, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	shipment, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, wrapRepo("failed to get shipment", err)
	}
	if shipment.IsDelivered() {
		return nil, fmt.Errorf("%w: %s", domain.ErrShipmentDelivered, id)
	}

	if update.PurchaseOrder != nil {
		shipment.Documents.PurchaseOrder = *update.PurchaseOrder
	}
	if update.Invoice != nil {
		shipment.Documents.Invoice = *update.Invoice
	}
	if update.BillOfLading != nil {
		shipment.Documents.BillOfLading = *update.BillOfLading
	}
	shipment.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, shipment); err != nil {
		return nil, wrapRepo("failed to update shipment", err)
	}

	logger.ForShipment(id).Info("Shipment documents updated")
	return shipment, nil
}

// Anomalies returns the anomalies of one shipment.
func (s *ShipmentService) Anomalies(ctx context.Context, id string) ([]domain.AnomalyRecord, error) {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return nil, wrapRepo("failed to get shipment", err)
	}
	records, err := s.repo.GetAnomalies(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get anomalies: %w", err)
	}
	return records, nil
}

// AllAnomalies returns the anomalies of every shipment.
func (s *ShipmentService) AllAnomalies(ctx context.Context) ([]domain.AnomalyRecord, error) {
	records, err := s.repo.AllAnomalies(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list anomalies: %w", err)
	}
	return records, nil
}

// ResolveAnomalies marks every anomaly of anomalyType on the shipment as resolved.
func (s *ShipmentService) ResolveAnomalies(ctx context.Context, id string, anomalyType risk.AnomalyType) (int, error) {
	if !anomalyType.IsValid() {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidAnomalyType, anomalyType)
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	if _, err := s.repo.Get(ctx, id); err != nil {
		return 0, wrapRepo("failed to get shipment", err)
	}

	n, err := s.repo.ResolveAnomalies(ctx, id, anomalyType)
	if err != nil {
		return 0, fmt.Errorf("service: failed to resolve anomalies: %w", err)
	}

	logger.ForShipment(id).Info("Anomalies resolved",
		zap.String("anomaly_type", string(anomalyType)),
		zap.Int("count", n),
	)
	return n, nil
}

// wrapRepo passes domain errors through unchanged and prefixes anything else.
func wrapRepo(msg string, err error) error {
	if errors.Is(err, domain.ErrShipmentNotFound) {
		return err
	}
	return fmt.Errorf("service: %s: %w", msg, err)
}
