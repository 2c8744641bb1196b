package adapters

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"checkpoint-tracker/internal/core/httpclient"
	"checkpoint-tracker/internal/features/interpretation/domain"
)

// HTTPInterpreter calls a JSON interpretation gateway.
//
//	POST /interpret   {"context": {...}}  -> Assessment
//	POST /classify    Documents           -> Classification
type HTTPInterpreter struct {
	client *httpclient.JSONClient
}

type interpretRequest struct {
	Context domain.AnomalyContext `json:"context"`
}

// NewHTTPInterpreter creates an HTTPInterpreter rooted at baseURL.
func NewHTTPInterpreter(baseURL, apiKey string, timeout time.Duration) *HTTPInterpreter {
	return &HTTPInterpreter{
		client: httpclient.NewJSONClient("interpreter", baseURL, apiKey, timeout),
	}
}

// InterpretAnomaly implements ports.Interpreter.
func (i *HTTPInterpreter) InterpretAnomaly(ctx context.Context, anomaly domain.AnomalyContext) (domain.Assessment, error) {
	if id, ok := anomaly["shipment_id"].(string); ok {
		ctx = httpclient.WithShipmentID(ctx, id)
	}
	var out domain.Assessment
	if err := i.client.Do(ctx, http.MethodPost, "/interpret", interpretRequest{Context: anomaly}, &out); err != nil {
		return domain.Assessment{}, fmt.Errorf("%w: %w", domain.ErrInterpreterUnavailable, err)
	}
	return out, nil
}

// ClassifyShipment implements ports.Interpreter.
func (i *HTTPInterpreter) ClassifyShipment(ctx context.Context, docs domain.Documents) (domain.Classification, error) {
	var out domain.Classification
	if err := i.client.Do(ctx, http.MethodPost, "/classify", docs, &out); err != nil {
		return domain.Classification{}, fmt.Errorf("%w: %w", domain.ErrInterpreterUnavailable, err)
	}
	if out.ProductCategory == "" {
		return domain.Classification{}, fmt.Errorf("%w: empty product category", domain.ErrInterpreterUnavailable)
	}
	return out, nil
}
