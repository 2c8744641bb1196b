package domain

import (
	"errors"
	"testing"
	"time"

	routing "checkpoint-tracker/internal/features/routing/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shipmentOnRoute(visited int, codes ...string) *Shipment {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	route := make([]routing.RouteNode, len(codes))
	for i, c := range codes {
		route[i] = routing.RouteNode{LocationCode: c}
		if i < visited {
			at := now
			route[i].ActualArrival = &at
		}
	}
	return &Shipment{ID: "S1", Route: route, Status: StatusInTransit}
}

func TestShipment_CheckArrival(t *testing.T) {
	tests := []struct {
		name    string
		visited int
		code    string
		status  Status
		wantIdx int
		wantErr error
	}{
		{"First stop", 0, "A", StatusCreated, 0, nil},
		{"Next stop", 2, "C", StatusInTransit, 2, nil},
		{"Skipping a stop", 1, "C", StatusInTransit, -1, ErrOutOfOrder},
		{"Revisiting", 2, "B", StatusInTransit, -1, ErrDuplicateCheckpoint},
		{"Not on route", 1, "Z", StatusInTransit, -1, ErrNotOnRoute},
		{"Delivered", 3, "C", StatusDelivered, -1, ErrShipmentDelivered},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := shipmentOnRoute(tt.visited, "A", "B", "C")
			s.Status = tt.status

			idx, err := s.CheckArrival(tt.code)
			assert.Equal(t, tt.wantIdx, idx)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestShipment_CheckArrival_NamesBlockingNode(t *testing.T) {
	s := shipmentOnRoute(1, "A", "B", "C", "D")

	_, err := s.CheckArrival("D")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOutOfOrder))
	assert.Contains(t, err.Error(), "previous node B")
}

func TestShipment_Clone(t *testing.T) {
	hazard := "9"
	s := shipmentOnRoute(1, "A", "B")
	s.RiskProfile = RiskProfile{ProductCategory: "lithium_battery", RiskFlags: []string{"hazardous"}, HazardClass: &hazard}
	s.LedgerTxRefs = []string{"0x1"}

	c := s.Clone()
	require.Equal(t, s, c)

	c.Route[0].ActualArrival = nil
	c.RiskProfile.RiskFlags[0] = "changed"
	*c.RiskProfile.HazardClass = "1"
	c.LedgerTxRefs[0] = "0x2"

	assert.NotNil(t, s.Route[0].ActualArrival)
	assert.Equal(t, "hazardous", s.RiskProfile.RiskFlags[0])
	assert.Equal(t, "9", *s.RiskProfile.HazardClass)
	assert.Equal(t, "0x1", s.LedgerTxRefs[0])
	assert.Nil(t, (*Shipment)(nil).Clone())
}

func TestShipment_Category(t *testing.T) {
	s := &Shipment{}
	assert.Equal(t, "default", s.Category())
	s.RiskProfile.ProductCategory = "electronics"
	assert.Equal(t, "electronics", s.Category())
}

func TestDocuments_Hash(t *testing.T) {
	a := Documents{PurchaseOrder: "X", Invoice: "I", BillOfLading: "B"}
	b := a
	assert.Equal(t, a.Hash(), b.Hash())
	b.PurchaseOrder = "Y"
	assert.NotEqual(t, a.Hash(), b.Hash())
}

func TestResolveResultStatus(t *testing.T) {
	assert.Equal(t, ResultDelivered, ResolveResultStatus(true, true, true))
	assert.Equal(t, ResultTamperDetected, ResolveResultStatus(false, true, true))
	assert.Equal(t, ResultAnomalyDetected, ResolveResultStatus(false, false, true))
	assert.Equal(t, ResultTransferred, ResolveResultStatus(false, false, false))
}
