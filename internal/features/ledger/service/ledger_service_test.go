package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"checkpoint-tracker/internal/core/logger"
	"checkpoint-tracker/internal/features/ledger/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockLedger is a mock implementation of ports.Ledger
type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) Append(ctx context.Context, req domain.AppendRequest) (domain.Receipt, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.Receipt), args.Error(1)
}

func (m *MockLedger) Verify(ctx context.Context, shipmentID string, expected domain.Hash) (domain.Verification, error) {
	args := m.Called(ctx, shipmentID, expected)
	return args.Get(0).(domain.Verification), args.Error(1)
}

func (m *MockLedger) Entries(ctx context.Context, shipmentID string) ([]domain.Entry, error) {
	args := m.Called(ctx, shipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Entry), args.Error(1)
}

func TestMain(m *testing.M) {
	_ = logger.Init("test", "error")
	m.Run()
}

func TestLedgerService_Anchor(t *testing.T) {
	req := domain.AppendRequest{ShipmentID: "S1", LocationCode: "DEL"}

	t.Run("Success", func(t *testing.T) {
		l := new(MockLedger)
		l.On("Append", mock.Anything, req).Return(domain.Receipt{TxRef: "0xabc", BlockRef: 7, Status: domain.AppendConfirmed}, nil).Once()

		r := NewLedgerService(l, time.Second).Anchor(context.Background(), req)
		assert.Equal(t, domain.AppendConfirmed, r.Status)
		assert.Equal(t, uint64(7), r.BlockRef)
		l.AssertExpectations(t)
	})

	t.Run("FailureDegrades", func(t *testing.T) {
		l := new(MockLedger)
		l.On("Append", mock.Anything, req).Return(domain.Receipt{}, domain.ErrLedgerUnavailable).Once()

		r := NewLedgerService(l, time.Second).Anchor(context.Background(), req)
		assert.Equal(t, domain.AppendError, r.Status)
		assert.Equal(t, "ledger unavailable", r.Error)
		assert.Empty(t, r.TxRef)
	})

	t.Run("CallIsBounded", func(t *testing.T) {
		l := new(MockLedger)
		l.On("Append", mock.Anything, req).Return(domain.Receipt{Status: domain.AppendConfirmed}, nil).Run(func(args mock.Arguments) {
			ctx := args.Get(0).(context.Context)
			_, ok := ctx.Deadline()
			assert.True(t, ok)
		}).Once()

		NewLedgerService(l, time.Second).Anchor(context.Background(), req)
		l.AssertExpectations(t)
	})
}

func TestLedgerService_Verify(t *testing.T) {
	h := domain.ComputeDocumentHash("a", "b", "c")

	t.Run("PassThrough", func(t *testing.T) {
		l := new(MockLedger)
		l.On("Verify", mock.Anything, "S1", h).Return(domain.Verification{Verified: true, Status: domain.VerifyFirstCheckpoint}, nil).Once()

		v := NewLedgerService(l, 0).Verify(context.Background(), "S1", h)
		assert.True(t, v.Verified)
		assert.Equal(t, domain.VerifyFirstCheckpoint, v.Status)
	})

	t.Run("ErrorIsNotTampering", func(t *testing.T) {
		l := new(MockLedger)
		l.On("Verify", mock.Anything, "S1", h).Return(domain.Verification{}, errors.New("timeout")).Once()

		v := NewLedgerService(l, 0).Verify(context.Background(), "S1", h)
		assert.False(t, v.Verified)
		assert.Equal(t, domain.VerifyError, v.Status)
		assert.Equal(t, "timeout", v.Error)
		assert.Nil(t, v.OnChainHash)
	})
}

func TestLedgerService_Entries(t *testing.T) {
	l := new(MockLedger)
	l.On("Entries", mock.Anything, "S1").Return([]domain.Entry{{ShipmentID: "S1"}}, nil).Once()
	l.On("Entries", mock.Anything, "S2").Return(nil, domain.ErrLedgerUnavailable).Once()

	svc := NewLedgerService(l, time.Second)

	entries, err := svc.Entries(context.Background(), "S1")
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	_, err = svc.Entries(context.Background(), "S2")
	assert.ErrorIs(t, err, domain.ErrLedgerUnavailable)
}
