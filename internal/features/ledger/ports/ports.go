package ports

import (
	"context"

	"checkpoint-tracker/internal/features/ledger/domain"
)

// Ledger is the secondary port of the append-only external ledger.
type Ledger interface {
	// Append anchors a hash for a shipment.
	Append(ctx context.Context, req domain.AppendRequest) (domain.Receipt, error)
	// Verify compares expected with the latest checkpoint anchor of the shipment.
	Verify(ctx context.Context, shipmentID string, expected domain.Hash) (domain.Verification, error)
	// Entries lists the anchored entries of a shipment in sequence order.
	Entries(ctx context.Context, shipmentID string) ([]domain.Entry, error)
}
