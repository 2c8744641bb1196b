package adapters

import (
	"context"

	"checkpoint-tracker/internal/features/ledger/domain"
)

// StubLedger accepts every append and verifies every hash without storing anything.
type StubLedger struct{}

// NewStubLedger creates a StubLedger.
func NewStubLedger() *StubLedger {
	return &StubLedger{}
}

// Append implements ports.Ledger.
func (l *StubLedger) Append(_ context.Context, _ domain.AppendRequest) (domain.Receipt, error) {
	return domain.Receipt{
		TxRef:  domain.StubTxRef,
		Status: domain.AppendStubbed,
	}, nil
}

// Verify implements ports.Ledger.
func (l *StubLedger) Verify(_ context.Context, _ string, _ domain.Hash) (domain.Verification, error) {
	return domain.Verification{
		Verified: true,
		Status:   domain.VerifyStubbed,
	}, nil
}

// Entries implements ports.Ledger.
func (l *StubLedger) Entries(_ context.Context, _ string) ([]domain.Entry, error) {
	return []domain.Entry{}, nil
}
