package adapters

import (
	"context"
	"fmt"

	"checkpoint-tracker/internal/features/interpretation/domain"
)

// StubInterpreter returns canned answers for development.
type StubInterpreter struct{}

// NewStubInterpreter creates a StubInterpreter.
func NewStubInterpreter() *StubInterpreter {
	return &StubInterpreter{}
}

// InterpretAnomaly implements ports.Interpreter.
func (s *StubInterpreter) InterpretAnomaly(_ context.Context, anomaly domain.AnomalyContext) (domain.Assessment, error) {
	return domain.Assessment{
		RiskAssessment: fmt.Sprintf("Anomaly %s detected, potential compliance violation for %s shipment.",
			lookup(anomaly, "anomaly", "UNKNOWN"), lookup(anomaly, "product_category", "unknown")),
		BusinessImpact:    "Shipment may require inspection or rerouting. Downstream delivery schedules may be affected.",
		RecommendedAction: "Hold shipment at current node for inspection. Notify quality assurance team.",
		SeverityLevel:     "HIGH",
	}, nil
}

// ClassifyShipment implements ports.Interpreter.
func (s *StubInterpreter) ClassifyShipment(_ context.Context, _ domain.Documents) (domain.Classification, error) {
	return domain.Classification{
		ProductCategory:    "pharmaceutical",
		RiskFlags:          []string{"temperature_sensitive"},
		ComplianceRequired: []string{"cold_chain"},
		ConfidenceScore:    0.91,
	}, nil
}

func lookup(m domain.AnomalyContext, key, fallback string) string {
	if v, ok := m[key]; ok && v != nil {
		return fmt.Sprint(v)
	}
	return fallback
}
