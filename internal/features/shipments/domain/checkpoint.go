package domain

import (
	"time"

	interpretation "checkpoint-tracker/internal/features/interpretation/domain"
	ledger "checkpoint-tracker/internal/features/ledger/domain"
	risk "checkpoint-tracker/internal/features/risk/domain"
	routing "checkpoint-tracker/internal/features/routing/domain"
)

// CheckpointEvent is a check-in submitted by a transit node.
type CheckpointEvent struct {
	ShipmentID   string     `json:"shipment_id"`
	LocationCode string     `json:"location_code"`
	Temperature  *float64   `json:"temperature,omitempty"`
	Humidity     *float64   `json:"humidity,omitempty"`
	WeightKg     float64    `json:"weight_kg"`
	Timestamp    *time.Time `json:"timestamp,omitempty"`
}

// Telemetry is a persisted checkpoint reading.
type Telemetry struct {
	ID           string    `json:"telemetry_id"`
	ShipmentID   string    `json:"shipment_id"`
	LocationCode string    `json:"location_code"`
	Temperature  *float64  `json:"temperature"`
	Humidity     *float64  `json:"humidity"`
	WeightKg     float64   `json:"weight_kg"`
	Timestamp    time.Time `json:"timestamp"`
}

// Interpretation status of an anomaly record.
const (
	InterpretationPending     = "pending"
	InterpretationInterpreted = "interpreted"
	InterpretationFallback    = "fallback"
)

// AnomalyRecord is a detected anomaly. Only Resolved and the interpretation fields change after creation.
type AnomalyRecord struct {
	ID                   string                     `json:"anomaly_id"`
	ShipmentID           string                     `json:"shipment_id"`
	AnomalyType          risk.AnomalyType           `json:"anomaly_type"`
	Severity             risk.Severity              `json:"severity"`
	Details              map[string]any             `json:"details"`
	LocationCode         string                     `json:"location_code"`
	Resolved             bool                       `json:"resolved"`
	CreatedAt            time.Time                  `json:"created_at"`
	Interpretation       *interpretation.Assessment `json:"interpretation,omitempty"`
	InterpretationStatus string                     `json:"interpretation_status,omitempty"`
}

// HashVerification reports the tamper check of a checkpoint.
type HashVerification struct {
	CurrentHash    ledger.Hash         `json:"current_hash"`
	OnChainHash    *ledger.Hash        `json:"on_chain_hash"`
	Verified       bool                `json:"verified"`
	Status         ledger.VerifyStatus `json:"status"`
	TamperDetected bool                `json:"tamper_detected"`
	Error          string              `json:"error,omitempty"`
}

// ResultStatus summarizes a checkpoint outcome.
type ResultStatus string

const (
	ResultDelivered       ResultStatus = "delivered"
	ResultTamperDetected  ResultStatus = "tamper_detected"
	ResultAnomalyDetected ResultStatus = "anomaly_detected"
	ResultTransferred     ResultStatus = "transferred"
)

// ResolveResultStatus picks the highest-priority condition:
// delivered, then tamper_detected, then anomaly_detected, then transferred.
func ResolveResultStatus(delivered, tampered, anomalies bool) ResultStatus {
	switch {
	case delivered:
		return ResultDelivered
	case tampered:
		return ResultTamperDetected
	case anomalies:
		return ResultAnomalyDetected
	default:
		return ResultTransferred
	}
}

// CheckpointResult is returned for every accepted checkpoint.
type CheckpointResult struct {
	Status             ResultStatus        `json:"status"`
	ShipmentID         string              `json:"shipment_id"`
	NodeIndex          int                 `json:"node_index"`
	Location           string              `json:"location"`
	IsFinalDestination bool                `json:"is_final_destination"`
	ShipmentStatus     Status              `json:"shipment_status"`
	Route              []routing.RouteNode `json:"updated_route"`
	Checkpoint         Telemetry           `json:"checkpoint"`
	Ledger             ledger.Receipt      `json:"blockchain_tx"`
	HashVerification   HashVerification    `json:"hash_verification"`
	Anomalies          []AnomalyRecord     `json:"anomalies"`
	DelayHours         float64             `json:"delay_hours"`
	// StorageErrors lists writes that failed after the checkpoint was committed.
	StorageErrors []string `json:"storage_errors,omitempty"`
}
