package adapters

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"checkpoint-tracker/internal/core/httpclient"
	"checkpoint-tracker/internal/features/ledger/domain"
)

// HTTPLedger talks to a REST ledger gateway that builds, signs and submits the transactions.
//
//	POST /anchors          AppendRequest -> Receipt
//	GET  /anchors/{id}     -> {"entries": [Entry...]}
type HTTPLedger struct {
	client *httpclient.JSONClient
}

type entriesResponse struct {
	Entries []domain.Entry `json:"entries"`
}

// NewHTTPLedger creates an HTTPLedger rooted at baseURL.
func NewHTTPLedger(baseURL, apiKey string, timeout time.Duration) *HTTPLedger {
	return &HTTPLedger{
		client: httpclient.NewJSONClient("ledger", baseURL, apiKey, timeout),
	}
}

// Append implements ports.Ledger.
func (l *HTTPLedger) Append(ctx context.Context, req domain.AppendRequest) (domain.Receipt, error) {
	if req.Kind == "" {
		req.Kind = domain.KindCheckpoint
	}

	ctx = httpclient.WithShipmentID(ctx, req.ShipmentID)
	var receipt domain.Receipt
	if err := l.client.Do(ctx, http.MethodPost, "/anchors", req, &receipt); err != nil {
		return domain.Receipt{}, fmt.Errorf("%w: %w", domain.ErrLedgerUnavailable, err)
	}
	if receipt.Status == "" {
		receipt.Status = domain.AppendConfirmed
	}
	return receipt, nil
}

// Verify implements ports.Ledger.
func (l *HTTPLedger) Verify(ctx context.Context, shipmentID string, expected domain.Hash) (domain.Verification, error) {
	entries, err := l.Entries(ctx, shipmentID)
	if err != nil {
		return domain.Verification{}, err
	}
	return domain.VerifyAgainst(entries, expected), nil
}

// Entries implements ports.Ledger.
func (l *HTTPLedger) Entries(ctx context.Context, shipmentID string) ([]domain.Entry, error) {
	ctx = httpclient.WithShipmentID(ctx, shipmentID)
	var resp entriesResponse
	if err := l.client.Do(ctx, http.MethodGet, "/anchors/"+url.PathEscape(shipmentID), nil, &resp); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLedgerUnavailable, err)
	}
	if resp.Entries == nil {
		resp.Entries = []domain.Entry{}
	}
	return resp.Entries, nil
}
