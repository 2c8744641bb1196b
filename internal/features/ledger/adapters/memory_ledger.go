package adapters

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"sync"
	"time"

	"checkpoint-tracker/internal/features/ledger/domain"
)

// MemoryLedger is an in-process append-only chain for development.
type MemoryLedger struct {
	mu      sync.RWMutex
	entries map[string][]domain.Entry
	height  uint64
	now     func() time.Time
}

// NewMemoryLedger creates an empty MemoryLedger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		entries: make(map[string][]domain.Entry),
		now:     time.Now,
	}
}

// Append implements ports.Ledger.
func (l *MemoryLedger) Append(_ context.Context, req domain.AppendRequest) (domain.Receipt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.height++
	entry := newEntry(req, len(l.entries[req.ShipmentID]), l.height, l.now().UTC())
	l.entries[req.ShipmentID] = append(l.entries[req.ShipmentID], entry)

	return domain.Receipt{
		TxRef:    entry.TxRef,
		BlockRef: entry.BlockRef,
		Status:   domain.AppendConfirmed,
	}, nil
}

// Verify implements ports.Ledger.
func (l *MemoryLedger) Verify(_ context.Context, shipmentID string, expected domain.Hash) (domain.Verification, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return domain.VerifyAgainst(l.entries[shipmentID], expected), nil
}

// Entries implements ports.Ledger.
func (l *MemoryLedger) Entries(_ context.Context, shipmentID string) ([]domain.Entry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]domain.Entry, len(l.entries[shipmentID]))
	copy(out, l.entries[shipmentID])
	return out, nil
}

// newEntry builds the stored entry and derives its transaction reference from its content.
func newEntry(req domain.AppendRequest, index int, block uint64, at time.Time) domain.Entry {
	kind := req.Kind
	if kind == "" {
		kind = domain.KindCheckpoint
	}
	return domain.Entry{
		ShipmentID:   req.ShipmentID,
		LocationCode: req.LocationCode,
		WeightKg:     req.WeightKg,
		DocumentHash: req.DocumentHash,
		Index:        index,
		Kind:         kind,
		TxRef:        txRef(req, uint64(index)),
		BlockRef:     block,
		RecordedAt:   at,
	}
}

func txRef(req domain.AppendRequest, nonce uint64) string {
	h := sha256.New()
	h.Write([]byte(req.ShipmentID))
	h.Write([]byte{0})
	h.Write([]byte(req.LocationCode))
	h.Write([]byte{0})
	h.Write(req.DocumentHash[:])
	var seq [8]byte
	binary.BigEndian.PutUint64(seq[:], nonce)
	h.Write(seq[:])
	return "0x" + hex.EncodeToString(h.Sum(nil))
}
