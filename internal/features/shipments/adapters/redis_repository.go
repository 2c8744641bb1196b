package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"checkpoint-tracker/internal/core/cache"
	risk "checkpoint-tracker/internal/features/risk/domain"
	"checkpoint-tracker/internal/features/shipments/domain"
)

const (
	shipmentKeyPrefix     = "shipment:"
	shipmentIndexKey      = "shipments"
	telemetryKeyPrefix    = "telemetry:"
	anomalyKeyPrefix      = "anomalies:"
	anomalyOrderKeyPrefix = "anomaly_order:"
	anomalyIndexKey       = "anomaly_shipments"
)

// RedisShipmentRepository implements ports.ShipmentRepository using the cache adaptation.
//
// A shipment is one JSON string; telemetry is a list; anomalies are a hash keyed by
// anomaly id plus a list keeping their insertion order.
type RedisShipmentRepository struct {
	cache cache.Cache
}

// NewRedisShipmentRepository creates a new RedisShipmentRepository.
func NewRedisShipmentRepository(c cache.Cache) *RedisShipmentRepository {
	return &RedisShipmentRepository{
		cache: c,
	}
}

// Create stores a new shipment, failing with ErrShipmentExists when the id is taken.
func (r *RedisShipmentRepository) Create(ctx context.Context, shipment *domain.Shipment) error {
	data, err := json.Marshal(shipment)
	if err != nil {
		return fmt.Errorf("failed to marshal shipment: %w", err)
	}

	stored, err := r.cache.SetNX(ctx, shipmentKeyPrefix+shipment.ID, data, 0)
	if err != nil {
		return fmt.Errorf("failed to save shipment to cache: %w", err)
	}
	if !stored {
		return domain.ErrShipmentExists
	}

	if err := r.cache.AddMember(ctx, shipmentIndexKey, shipment.ID); err != nil {
		return fmt.Errorf("failed to index shipment: %w", err)
	}
	return nil
}

// Get retrieves a shipment from the cache.
func (r *RedisShipmentRepository) Get(ctx context.Context, id string) (*domain.Shipment, error) {
	data, err := r.cache.Get(ctx, shipmentKeyPrefix+id)
	if errors.Is(err, cache.ErrNotFound) {
		return nil, domain.ErrShipmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shipment from cache: %w", err)
	}

	var shipment domain.Shipment
	if err := json.Unmarshal(data, &shipment); err != nil {
		return nil, fmt.Errorf("failed to unmarshal shipment: %w", err)
	}
	return &shipment, nil
}

// List returns every indexed shipment, oldest first.
func (r *RedisShipmentRepository) List(ctx context.Context) ([]*domain.Shipment, error) {
	ids, err := r.cache.Members(ctx, shipmentIndexKey)
	if err != nil {
		return nil, fmt.Errorf("failed to list shipments: %w", err)
	}

	out := make([]*domain.Shipment, 0, len(ids))
	for _, id := range ids {
		s, err := r.Get(ctx, id)
		if errors.Is(err, domain.ErrShipmentNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	sortShipments(out)
	return out, nil
}

// Update replaces a stored shipment.
func (r *RedisShipmentRepository) Update(ctx context.Context, shipment *domain.Shipment) error {
	key := shipmentKeyPrefix + shipment.ID
	if _, err := r.cache.Get(ctx, key); err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return domain.ErrShipmentNotFound
		}
		return fmt.Errorf("failed to get shipment from cache: %w", err)
	}

	data, err := json.Marshal(shipment)
	if err != nil {
		return fmt.Errorf("failed to marshal shipment: %w", err)
	}
	if err := r.cache.Set(ctx, key, data, 0); err != nil {
		return fmt.Errorf("failed to save shipment to cache: %w", err)
	}
	return nil
}

// AddTelemetry appends a reading to the shipment's telemetry list.
func (r *RedisShipmentRepository) AddTelemetry(ctx context.Context, reading domain.Telemetry) error {
	data, err := json.Marshal(reading)
	if err != nil {
		return fmt.Errorf("failed to marshal telemetry: %w", err)
	}
	if _, err := r.cache.Append(ctx, telemetryKeyPrefix+reading.ShipmentID, data); err != nil {
		return fmt.Errorf("failed to save telemetry: %w", err)
	}
	return nil
}

// GetTelemetry returns the readings of a shipment in insertion order.
func (r *RedisShipmentRepository) GetTelemetry(ctx context.Context, shipmentID string) ([]domain.Telemetry, error) {
	items, err := r.cache.Range(ctx, telemetryKeyPrefix+shipmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get telemetry: %w", err)
	}

	out := make([]domain.Telemetry, 0, len(items))
	for _, raw := range items {
		var t domain.Telemetry
		if err := json.Unmarshal(raw, &t); err != nil {
			return nil, fmt.Errorf("failed to unmarshal telemetry: %w", err)
		}
		out = append(out, t)
	}
	return out, nil
}

// AddAnomaly stores a new anomaly.
func (r *RedisShipmentRepository) AddAnomaly(ctx context.Context, record domain.AnomalyRecord) error {
	if err := r.putAnomaly(ctx, record); err != nil {
		return err
	}
	if _, err := r.cache.Append(ctx, anomalyOrderKeyPrefix+record.ShipmentID, []byte(record.ID)); err != nil {
		return fmt.Errorf("failed to index anomaly: %w", err)
	}
	if err := r.cache.AddMember(ctx, anomalyIndexKey, record.ShipmentID); err != nil {
		return fmt.Errorf("failed to index anomaly: %w", err)
	}
	return nil
}

// GetAnomalies returns the anomalies of a shipment in insertion order.
func (r *RedisShipmentRepository) GetAnomalies(ctx context.Context, shipmentID string) ([]domain.AnomalyRecord, error) {
	order, err := r.cache.Range(ctx, anomalyOrderKeyPrefix+shipmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get anomalies: %w", err)
	}
	fields, err := r.cache.Fields(ctx, anomalyKeyPrefix+shipmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get anomalies: %w", err)
	}

	out := make([]domain.AnomalyRecord, 0, len(order))
	for _, id := range order {
		raw, ok := fields[string(id)]
		if !ok {
			continue
		}
		var a domain.AnomalyRecord
		if err := json.Unmarshal(raw, &a); err != nil {
			return nil, fmt.Errorf("failed to unmarshal anomaly: %w", err)
		}
		out = append(out, a)
	}
	return out, nil
}

// AllAnomalies returns every anomaly ordered by creation time.
func (r *RedisShipmentRepository) AllAnomalies(ctx context.Context) ([]domain.AnomalyRecord, error) {
	shipmentIDs, err := r.cache.Members(ctx, anomalyIndexKey)
	if err != nil {
		return nil, fmt.Errorf("failed to list anomalies: %w", err)
	}
	sort.Strings(shipmentIDs)

	out := []domain.AnomalyRecord{}
	for _, id := range shipmentIDs {
		records, err := r.GetAnomalies(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, records...)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// UpdateAnomaly replaces a stored anomaly.
func (r *RedisShipmentRepository) UpdateAnomaly(ctx context.Context, record domain.AnomalyRecord) error {
	if _, err := r.cache.Field(ctx, anomalyKeyPrefix+record.ShipmentID, record.ID); err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return domain.ErrAnomalyNotFound
		}
		return fmt.Errorf("failed to get anomaly: %w", err)
	}
	return r.putAnomaly(ctx, record)
}

// ResolveAnomalies marks matching anomalies as resolved.
func (r *RedisShipmentRepository) ResolveAnomalies(ctx context.Context, shipmentID string, anomalyType risk.AnomalyType) (int, error) {
	records, err := r.GetAnomalies(ctx, shipmentID)
	if err != nil {
		return 0, err
	}

	n := 0
	for _, a := range records {
		if a.AnomalyType != anomalyType || a.Resolved {
			continue
		}
		a.Resolved = true
		if err := r.putAnomaly(ctx, a); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func (r *RedisShipmentRepository) putAnomaly(ctx context.Context, record domain.AnomalyRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal anomaly: %w", err)
	}
	if err := r.cache.SetField(ctx, anomalyKeyPrefix+record.ShipmentID, record.ID, data); err != nil {
		return fmt.Errorf("failed to save anomaly: %w", err)
	}
	return nil
}
