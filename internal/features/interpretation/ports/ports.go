package ports

import (
	"context"

	"checkpoint-tracker/internal/features/interpretation/domain"
)

// Interpreter is the secondary port of the natural-language interpretation service.
type Interpreter interface {
	InterpretAnomaly(ctx context.Context, anomaly domain.AnomalyContext) (domain.Assessment, error)
	ClassifyShipment(ctx context.Context, docs domain.Documents) (domain.Classification, error)
}
