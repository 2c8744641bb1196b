package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	risk "checkpoint-tracker/internal/features/risk/domain"
	"checkpoint-tracker/internal/features/shipments/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS shipments (
  id         TEXT PRIMARY KEY,
  doc        JSONB NOT NULL,
  created_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS telemetry (
  seq         BIGSERIAL PRIMARY KEY,
  shipment_id TEXT NOT NULL,
  doc         JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS telemetry_shipment_idx ON telemetry (shipment_id, seq);
CREATE TABLE IF NOT EXISTS anomalies (
  seq          BIGSERIAL PRIMARY KEY,
  id           TEXT UNIQUE NOT NULL,
  shipment_id  TEXT NOT NULL,
  anomaly_type TEXT NOT NULL,
  resolved     BOOLEAN NOT NULL DEFAULT FALSE,
  doc          JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS anomalies_shipment_idx ON anomalies (shipment_id, seq);
`

// NewPostgresPool opens a connection pool for dsn.
func NewPostgresPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database url: %w", err)
	}
	cfg.MaxConns = 10
	cfg.MinConns = 1
	cfg.MaxConnLifetime = 30 * time.Minute
	cfg.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open database pool: %w", err)
	}
	return pool, nil
}

// PostgresShipmentRepository implements ports.ShipmentRepository with JSONB documents.
type PostgresShipmentRepository struct {
	db *pgxpool.Pool
}

// NewPostgresShipmentRepository creates a repository over db.
func NewPostgresShipmentRepository(db *pgxpool.Pool) *PostgresShipmentRepository {
	return &PostgresShipmentRepository{db: db}
}

// Migrate creates the tables when they do not exist.
func (r *PostgresShipmentRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Create inserts a shipment.
func (r *PostgresShipmentRepository) Create(ctx context.Context, shipment *domain.Shipment) error {
	doc, err := json.Marshal(shipment)
	if err != nil {
		return fmt.Errorf("failed to marshal shipment: %w", err)
	}

	tag, err := r.db.Exec(ctx, `
INSERT INTO shipments(id, doc, created_at)
VALUES($1, $2::jsonb, $3)
ON CONFLICT (id) DO NOTHING
`, shipment.ID, string(doc), shipment.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert shipment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrShipmentExists
	}
	return nil
}

// Get loads a shipment.
func (r *PostgresShipmentRepository) Get(ctx context.Context, id string) (*domain.Shipment, error) {
	var doc []byte
	err := r.db.QueryRow(ctx, `SELECT doc FROM shipments WHERE id=$1`, id).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrShipmentNotFound
		}
		return nil, fmt.Errorf("failed to get shipment: %w", err)
	}

	var shipment domain.Shipment
	if err := json.Unmarshal(doc, &shipment); err != nil {
		return nil, fmt.Errorf("failed to unmarshal shipment: %w", err)
	}
	return &shipment, nil
}

// List returns every shipment, oldest first.
func (r *PostgresShipmentRepository) List(ctx context.Context) ([]*domain.Shipment, error) {
	rows, err := r.db.Query(ctx, `SELECT doc FROM shipments ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list shipments: %w", err)
	}
	defer rows.Close()

	out := []*domain.Shipment{}
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("failed to scan shipment: %w", err)
		}
		var s domain.Shipment
		if err := json.Unmarshal(doc, &s); err != nil {
			return nil, fmt.Errorf("failed to unmarshal shipment: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

// Update replaces a shipment document.
func (r *PostgresShipmentRepository) Update(ctx context.Context, shipment *domain.Shipment) error {
	doc, err := json.Marshal(shipment)
	if err != nil {
		return fmt.Errorf("failed to marshal shipment: %w", err)
	}

	tag, err := r.db.Exec(ctx, `UPDATE shipments SET doc=$2::jsonb WHERE id=$1`, shipment.ID, string(doc))
	if err != nil {
		return fmt.Errorf("failed to update shipment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrShipmentNotFound
	}
	return nil
}

// AddTelemetry appends a reading.
func (r *PostgresShipmentRepository) AddTelemetry(ctx context.Context, reading domain.Telemetry) error {
	doc, err := json.Marshal(reading)
	if err != nil {
		return fmt.Errorf("failed to marshal telemetry: %w", err)
	}
	if _, err := r.db.Exec(ctx, `INSERT INTO telemetry(shipment_id, doc) VALUES($1, $2::jsonb)`, reading.ShipmentID, string(doc)); err != nil {
		return fmt.Errorf("failed to insert telemetry: %w", err)
	}
	return nil
}

// GetTelemetry returns the readings of a shipment in insertion order.
func (r *PostgresShipmentRepository) GetTelemetry(ctx context.Context, shipmentID string) ([]domain.Telemetry, error) {
	rows, err := r.db.Query(ctx, `SELECT doc FROM telemetry WHERE shipment_id=$1 ORDER BY seq`, shipmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get telemetry: %w", err)
	}
	defer rows.Close()

	out := []domain.Telemetry{}
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("failed to scan telemetry: %w", err)
		}
		var t domain.Telemetry
		if err := json.Unmarshal(doc, &t); err != nil {
			return nil, fmt.Errorf("failed to unmarshal telemetry: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// AddAnomaly inserts an anomaly.
func (r *PostgresShipmentRepository) AddAnomaly(ctx context.Context, record domain.AnomalyRecord) error {
	doc, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal anomaly: %w", err)
	}
	_, err = r.db.Exec(ctx, `
INSERT INTO anomalies(id, shipment_id, anomaly_type, resolved, doc)
VALUES($1, $2, $3, $4, $5::jsonb)
`, record.ID, record.ShipmentID, string(record.AnomalyType), record.Resolved, string(doc))
	if isUniqueViolation(err) {
		return fmt.Errorf("anomaly %s already stored: %w", record.ID, err)
	}
	if err != nil {
		return fmt.Errorf("failed to insert anomaly: %w", err)
	}
	return nil
}

// GetAnomalies returns the anomalies of a shipment in insertion order.
func (r *PostgresShipmentRepository) GetAnomalies(ctx context.Context, shipmentID string) ([]domain.AnomalyRecord, error) {
	return r.queryAnomalies(ctx, `SELECT doc FROM anomalies WHERE shipment_id=$1 ORDER BY seq`, shipmentID)
}

// AllAnomalies returns every anomaly in insertion order.
func (r *PostgresShipmentRepository) AllAnomalies(ctx context.Context) ([]domain.AnomalyRecord, error) {
	return r.queryAnomalies(ctx, `SELECT doc FROM anomalies ORDER BY seq`)
}

// UpdateAnomaly replaces an anomaly document.
func (r *PostgresShipmentRepository) UpdateAnomaly(ctx context.Context, record domain.AnomalyRecord) error {
	doc, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal anomaly: %w", err)
	}
	tag, err := r.db.Exec(ctx, `UPDATE anomalies SET doc=$2::jsonb, resolved=$3 WHERE id=$1`, record.ID, string(doc), record.Resolved)
	if err != nil {
		return fmt.Errorf("failed to update anomaly: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAnomalyNotFound
	}
	return nil
}

// ResolveAnomalies marks matching anomalies as resolved.
func (r *PostgresShipmentRepository) ResolveAnomalies(ctx context.Context, shipmentID string, anomalyType risk.AnomalyType) (int, error) {
	tag, err := r.db.Exec(ctx, `
UPDATE anomalies
SET resolved = TRUE, doc = jsonb_set(doc, '{resolved}', 'true'::jsonb)
WHERE shipment_id=$1 AND anomaly_type=$2 AND NOT resolved
`, shipmentID, string(anomalyType))
	if err != nil {
		return 0, fmt.Errorf("failed to resolve anomalies: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func (r *PostgresShipmentRepository) queryAnomalies(ctx context.Context, sql string, args ...any) ([]domain.AnomalyRecord, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query anomalies: %w", err)
	}
	defer rows.Close()

	out := []domain.AnomalyRecord{}
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("failed to scan anomaly: %w", err)
		}
		var a domain.AnomalyRecord
		if err := json.Unmarshal(doc, &a); err != nil {
			return nil, fmt.Errorf("failed to unmarshal anomaly: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// isUniqueViolation reports whether err is a postgres unique constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
