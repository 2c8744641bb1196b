package httpclient

import (
	"context"
	"net/http"
	"time"

	"checkpoint-tracker/internal/core/logger"

	"go.uber.org/zap"
)

type shipmentKey struct{}

// WithShipmentID tags the gateway calls made with ctx with the shipment they serve.
func WithShipmentID(ctx context.Context, shipmentID string) context.Context {
	return context.WithValue(ctx, shipmentKey{}, shipmentID)
}

func shipmentIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(shipmentKey{}).(string)
	return id
}

// GatewayTransport logs every call to a collaborator gateway and attaches its bearer token.
// The token is added to a clone of the request after the log fields are built, so it never
// reaches the log or the caller's request.
type GatewayTransport struct {
	// Gateway names the collaborator, e.g. "ledger" or "interpreter".
	Gateway string
	// APIKey is sent as "Authorization: Bearer <key>" when non-empty.
	APIKey string
	// Next executes the request. Defaults to http.DefaultTransport.
	Next http.RoundTripper
	// Log defaults to the global logger.
	Log *zap.Logger
}

// RoundTrip implements http.RoundTripper.
func (t *GatewayTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	log := t.Log
	if log == nil {
		log = logger.Get()
	}
	next := t.Next
	if next == nil {
		next = http.DefaultTransport
	}

	fields := []zap.Field{
		zap.String("gateway", t.Gateway),
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
	}
	if id := shipmentIDFrom(req.Context()); id != "" {
		fields = append(fields, zap.String("shipment_id", id))
	}

	out := req
	if t.APIKey != "" {
		out = req.Clone(req.Context())
		out.Header.Set("Authorization", "Bearer "+t.APIKey)
	}

	start := time.Now()
	resp, err := next.RoundTrip(out)
	fields = append(fields, zap.Duration("duration", time.Since(start)))

	if err != nil {
		log.Warn("Gateway call failed", append(fields, zap.Error(err))...)
		return nil, err
	}

	fields = append(fields, zap.Int("status_code", resp.StatusCode))
	if resp.StatusCode >= http.StatusInternalServerError {
		log.Warn("Gateway returned server error", fields...)
	} else {
		log.Debug("Gateway call completed", fields...)
	}
	return resp, nil
}

// NewGatewayClient returns an http.Client for the named gateway.
func NewGatewayClient(gateway, apiKey string, timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: &GatewayTransport{
			Gateway: gateway,
			APIKey:  apiKey,
		},
		Timeout: timeout,
	}
}
