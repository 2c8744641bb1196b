package adapters

import (
	"context"
	"sort"
	"sync"

	risk "checkpoint-tracker/internal/features/risk/domain"
	"checkpoint-tracker/internal/features/shipments/domain"
)

// MemoryRepository keeps every record in process memory. Values are copied on the way
// in and out, so callers never share state with the store.
type MemoryRepository struct {
	mu        sync.RWMutex
	shipments map[string]*domain.Shipment
	telemetry map[string][]domain.Telemetry
	anomalies []domain.AnomalyRecord
}

// NewMemoryRepository creates an empty MemoryRepository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		shipments: make(map[string]*domain.Shipment),
		telemetry: make(map[string][]domain.Telemetry),
	}
}

// Create stores a new shipment.
func (r *MemoryRepository) Create(_ context.Context, shipment *domain.Shipment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.shipments[shipment.ID]; ok {
		return domain.ErrShipmentExists
	}
	r.shipments[shipment.ID] = shipment.Clone()
	return nil
}

// Get returns a copy of the shipment.
func (r *MemoryRepository) Get(_ context.Context, id string) (*domain.Shipment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.shipments[id]
	if !ok {
		return nil, domain.ErrShipmentNotFound
	}
	return s.Clone(), nil
}

// List returns every shipment, oldest first.
func (r *MemoryRepository) List(_ context.Context) ([]*domain.Shipment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Shipment, 0, len(r.shipments))
	for _, s := range r.shipments {
		out = append(out, s.Clone())
	}
	sortShipments(out)
	return out, nil
}

// Update replaces a stored shipment.
func (r *MemoryRepository) Update(_ context.Context, shipment *domain.Shipment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.shipments[shipment.ID]; !ok {
		return domain.ErrShipmentNotFound
	}
	r.shipments[shipment.ID] = shipment.Clone()
	return nil
}

// AddTelemetry appends a reading.
func (r *MemoryRepository) AddTelemetry(_ context.Context, reading domain.Telemetry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.telemetry[reading.ShipmentID] = append(r.telemetry[reading.ShipmentID], reading)
	return nil
}

// GetTelemetry returns the readings of a shipment in insertion order.
func (r *MemoryRepository) GetTelemetry(_ context.Context, shipmentID string) ([]domain.Telemetry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Telemetry, len(r.telemetry[shipmentID]))
	copy(out, r.telemetry[shipmentID])
	return out, nil
}

// AddAnomaly stores a new anomaly.
func (r *MemoryRepository) AddAnomaly(_ context.Context, record domain.AnomalyRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.anomalies = append(r.anomalies, cloneAnomaly(record))
	return nil
}

// GetAnomalies returns the anomalies of a shipment in insertion order.
func (r *MemoryRepository) GetAnomalies(_ context.Context, shipmentID string) ([]domain.AnomalyRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []domain.AnomalyRecord{}
	for _, a := range r.anomalies {
		if a.ShipmentID == shipmentID {
			out = append(out, cloneAnomaly(a))
		}
	}
	return out, nil
}

// AllAnomalies returns every anomaly in insertion order.
func (r *MemoryRepository) AllAnomalies(_ context.Context) ([]domain.AnomalyRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.AnomalyRecord, 0, len(r.anomalies))
	for _, a := range r.anomalies {
		out = append(out, cloneAnomaly(a))
	}
	return out, nil
}

// UpdateAnomaly replaces a stored anomaly matched by id.
func (r *MemoryRepository) UpdateAnomaly(_ context.Context, record domain.AnomalyRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.anomalies {
		if r.anomalies[i].ID == record.ID {
			r.anomalies[i] = cloneAnomaly(record)
			return nil
		}
	}
	return domain.ErrAnomalyNotFound
}

// ResolveAnomalies marks matching anomalies as resolved.
func (r *MemoryRepository) ResolveAnomalies(_ context.Context, shipmentID string, anomalyType risk.AnomalyType) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for i := range r.anomalies {
		a := &r.anomalies[i]
		if a.ShipmentID == shipmentID && a.AnomalyType == anomalyType && !a.Resolved {
			a.Resolved = true
			n++
		}
	}
	return n, nil
}

func cloneAnomaly(a domain.AnomalyRecord) domain.AnomalyRecord {
	if a.Details != nil {
		details := make(map[string]any, len(a.Details))
		for k, v := range a.Details {
			details[k] = v
		}
		a.Details = details
	}
	if a.Interpretation != nil {
		assessment := *a.Interpretation
		a.Interpretation = &assessment
	}
	return a
}

func sortShipments(s []*domain.Shipment) {
	sort.Slice(s, func(i, j int) bool {
		if s[i].CreatedAt.Equal(s[j].CreatedAt) {
			return s[i].ID < s[j].ID
		}
		return s[i].CreatedAt.Before(s[j].CreatedAt)
	})
}
