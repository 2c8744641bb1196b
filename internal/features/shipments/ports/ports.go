package ports

import (
	"context"

	ledger "checkpoint-tracker/internal/features/ledger/domain"
	risk "checkpoint-tracker/internal/features/risk/domain"
	"checkpoint-tracker/internal/features/shipments/domain"
)

// ShipmentRepository defines the secondary port for shipment, telemetry and anomaly storage.
// Implementations return ErrShipmentNotFound, ErrShipmentExists and ErrAnomalyNotFound
// from the shipments domain.
type ShipmentRepository interface {
	Create(ctx context.Context, shipment *domain.Shipment) error
	Get(ctx context.Context, id string) (*domain.Shipment, error)
	List(ctx context.Context) ([]*domain.Shipment, error)
	Update(ctx context.Context, shipment *domain.Shipment) error

	AddTelemetry(ctx context.Context, reading domain.Telemetry) error
	// GetTelemetry returns readings in insertion order.
	GetTelemetry(ctx context.Context, shipmentID string) ([]domain.Telemetry, error)

	AddAnomaly(ctx context.Context, record domain.AnomalyRecord) error
	GetAnomalies(ctx context.Context, shipmentID string) ([]domain.AnomalyRecord, error)
	AllAnomalies(ctx context.Context) ([]domain.AnomalyRecord, error)
	UpdateAnomaly(ctx context.Context, record domain.AnomalyRecord) error
	// ResolveAnomalies marks every anomaly of the given type as resolved and returns how many changed.
	ResolveAnomalies(ctx context.Context, shipmentID string, anomalyType risk.AnomalyType) (int, error)
}

// CreateShipmentInput carries the fields accepted at creation.
type CreateShipmentInput struct {
	ID          string              `json:"shipment_id"`
	Origin      string              `json:"origin"`
	Destination string              `json:"destination"`
	Documents   domain.Documents    `json:"documents"`
	RiskProfile *domain.RiskProfile `json:"risk_profile,omitempty"`
	// RouteCodes optionally fixes the route instead of computing the fastest one.
	RouteCodes []string `json:"route,omitempty"`
}

// CreateShipmentResult is returned by ShipmentService.Create.
type CreateShipmentResult struct {
	Shipment       *domain.Shipment    `json:"shipment"`
	Classification *domain.RiskProfile `json:"classification"`
	Ledger         ledger.Receipt      `json:"blockchain_tx"`
}

// DocumentsUpdate replaces the non-nil document texts.
type DocumentsUpdate struct {
	PurchaseOrder *string `json:"po_text,omitempty"`
	Invoice       *string `json:"invoice_text,omitempty"`
	BillOfLading  *string `json:"bol_text,omitempty"`
}

// ShipmentService defines the primary port for shipment lifecycle operations.
type ShipmentService interface {
	Create(ctx context.Context, in CreateShipmentInput) (*CreateShipmentResult, error)
	Get(ctx context.Context, id string) (*domain.Shipment, error)
	List(ctx context.Context) ([]*domain.Shipment, error)
	UpdateDocuments(ctx context.Context, id string, update DocumentsUpdate) (*domain.Shipment, error)
	Anomalies(ctx context.Context, id string) ([]domain.AnomalyRecord, error)
	AllAnomalies(ctx context.Context) ([]domain.AnomalyRecord, error)
	ResolveAnomalies(ctx context.Context, id string, anomalyType risk.AnomalyType) (int, error)
}

// CheckpointService defines the primary port for checkpoint submission.
type CheckpointService interface {
	Submit(ctx context.Context, event domain.CheckpointEvent) (*domain.CheckpointResult, error)
}
