package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"checkpoint-tracker/internal/core/cache"
	"checkpoint-tracker/internal/features/ledger/domain"
)

const ledgerKeyPrefix = "ledger:"

// RedisLedger keeps one append-only list of JSON entries per shipment.
// List position is the entry index; the block reference is the list length after the push.
type RedisLedger struct {
	cache cache.Cache
	now   func() time.Time
}

// NewRedisLedger creates a RedisLedger over c.
func NewRedisLedger(c cache.Cache) *RedisLedger {
	return &RedisLedger{
		cache: c,
		now:   time.Now,
	}
}

// Append implements ports.Ledger.
func (l *RedisLedger) Append(ctx context.Context, req domain.AppendRequest) (domain.Receipt, error) {
	at := l.now().UTC()
	entry := newEntry(req, 0, 0, at)
	entry.TxRef = txRef(req, uint64(at.UnixNano()))

	raw, err := json.Marshal(entry)
	if err != nil {
		return domain.Receipt{}, fmt.Errorf("redis ledger: failed to encode entry: %w", err)
	}

	n, err := l.cache.Append(ctx, ledgerKeyPrefix+req.ShipmentID, raw)
	if err != nil {
		return domain.Receipt{}, fmt.Errorf("%w: %w", domain.ErrLedgerUnavailable, err)
	}

	return domain.Receipt{
		TxRef:    entry.TxRef,
		BlockRef: uint64(n),
		Status:   domain.AppendConfirmed,
	}, nil
}

// Verify implements ports.Ledger.
func (l *RedisLedger) Verify(ctx context.Context, shipmentID string, expected domain.Hash) (domain.Verification, error) {
	entries, err := l.Entries(ctx, shipmentID)
	if err != nil {
		return domain.Verification{}, err
	}
	return domain.VerifyAgainst(entries, expected), nil
}

// Entries implements ports.Ledger.
func (l *RedisLedger) Entries(ctx context.Context, shipmentID string) ([]domain.Entry, error) {
	items, err := l.cache.Range(ctx, ledgerKeyPrefix+shipmentID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLedgerUnavailable, err)
	}

	entries := make([]domain.Entry, 0, len(items))
	for i, raw := range items {
		var e domain.Entry
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, fmt.Errorf("redis ledger: corrupt entry %d of %s: %w", i, shipmentID, err)
		}
		e.Index = i
		e.BlockRef = uint64(i + 1)
		entries = append(entries, e)
	}
	return entries, nil
}
