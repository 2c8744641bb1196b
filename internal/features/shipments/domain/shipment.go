package domain

import (
	"errors"
	"fmt"
	"time"

	ledger "checkpoint-tracker/internal/features/ledger/domain"
	routing "checkpoint-tracker/internal/features/routing/domain"
)

var (
	// ErrShipmentNotFound is returned when no shipment has the requested id.
	ErrShipmentNotFound = errors.New("shipment not found")
	// ErrShipmentExists is returned when creating a shipment whose id is taken.
	ErrShipmentExists = errors.New("shipment already exists")
	// ErrShipmentDelivered is returned when a delivered shipment is asked to change.
	ErrShipmentDelivered = errors.New("shipment already delivered")
	// ErrInvalidShipment is returned when creation input is incomplete or inconsistent.
	ErrInvalidShipment = errors.New("invalid shipment")
	// ErrNotOnRoute is returned when a checkpoint location is not part of the route.
	ErrNotOnRoute = errors.New("location is not on the shipment route")
	// ErrOutOfOrder is returned when an earlier route stop has not been visited yet.
	ErrOutOfOrder = errors.New("checkpoint out of order")
	// ErrDuplicateCheckpoint is returned when the route stop was already visited.
	ErrDuplicateCheckpoint = errors.New("checkpoint already recorded")
	// ErrAnomalyNotFound is returned when updating an anomaly that does not exist.
	ErrAnomalyNotFound = errors.New("anomaly not found")
	// ErrInvalidCheckpoint is returned when a checkpoint event misses its shipment or location.
	ErrInvalidCheckpoint = errors.New("invalid checkpoint")
	// ErrInvalidAnomalyType is returned for an unknown anomaly type.
	ErrInvalidAnomalyType = errors.New("invalid anomaly type")
)

// Status is the lifecycle state of a shipment. It only moves forward.
type Status string

const (
	StatusCreated   Status = "created"
	StatusInTransit Status = "in_transit"
	StatusDelivered Status = "delivered"
)

// RiskProfile is set once at creation.
type RiskProfile struct {
	ProductCategory    string   `json:"product_category"`
	RiskFlags          []string `json:"risk_flags"`
	HazardClass        *string  `json:"hazard_class,omitempty"`
	ComplianceRequired []string `json:"compliance_required"`
	ConfidenceScore    float64  `json:"confidence_score"`
}

// Clone returns a deep copy.
func (p RiskProfile) Clone() RiskProfile {
	c := p
	c.RiskFlags = cloneStrings(p.RiskFlags)
	c.ComplianceRequired = cloneStrings(p.ComplianceRequired)
	if p.HazardClass != nil {
		hc := *p.HazardClass
		c.HazardClass = &hc
	}
	return c
}

// Documents are the shipment paperwork texts covered by the document hash.
type Documents struct {
	PurchaseOrder string `json:"po_text"`
	Invoice       string `json:"invoice_text"`
	BillOfLading  string `json:"bol_text"`
}

// Hash computes the document hash of the current texts.
func (d Documents) Hash() ledger.Hash {
	return ledger.ComputeDocumentHash(d.PurchaseOrder, d.Invoice, d.BillOfLading)
}

// Shipment is a consignment travelling along a fixed route.
type Shipment struct {
	ID          string              `json:"shipment_id"`
	Origin      string              `json:"origin"`
	Destination string              `json:"destination"`
	Route       []routing.RouteNode `json:"route"`
	RiskProfile RiskProfile         `json:"risk_profile"`
	Status      Status              `json:"current_status"`
	Documents   Documents           `json:"documents"`
	// DocHash is the last document hash the ledger accepted for this shipment.
	DocHash ledger.Hash `json:"doc_hash"`
	// LedgerTxRefs lists every ledger transaction of the shipment, oldest first.
	LedgerTxRefs []string  `json:"blockchain_tx_refs"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Category returns the risk category, "default" when unset.
func (s *Shipment) Category() string {
	if s.RiskProfile.ProductCategory == "" {
		return "default"
	}
	return s.RiskProfile.ProductCategory
}

// IsDelivered reports whether the shipment reached its terminal state.
func (s *Shipment) IsDelivered() bool {
	return s.Status == StatusDelivered
}

// NodeIndex returns the route index of code, or -1.
func (s *Shipment) NodeIndex(code string) int {
	for i, n := range s.Route {
		if n.LocationCode == code {
			return i
		}
	}
	return -1
}

// CheckArrival validates that code is the next stop to check in and returns its index.
// The checks run in order: delivered, not on route, out of order, duplicate.
func (s *Shipment) CheckArrival(code string) (int, error) {
	if s.IsDelivered() {
		return -1, fmt.Errorf("%w: %s", ErrShipmentDelivered, s.ID)
	}

	idx := s.NodeIndex(code)
	if idx < 0 {
		return -1, fmt.Errorf("%w: %s", ErrNotOnRoute, code)
	}

	for i := 0; i < idx; i++ {
		if !s.Route[i].Visited() {
			return -1, fmt.Errorf("%w: cannot check in at %s, previous node %s not visited yet",
				ErrOutOfOrder, code, s.Route[i].LocationCode)
		}
	}

	if s.Route[idx].Visited() {
		return -1, fmt.Errorf("%w: %s", ErrDuplicateCheckpoint, code)
	}
	return idx, nil
}

// Clone returns a deep copy.
func (s *Shipment) Clone() *Shipment {
	if s == nil {
		return nil
	}
	c := *s
	c.Route = routing.CloneRoute(s.Route)
	c.RiskProfile = s.RiskProfile.Clone()
	c.LedgerTxRefs = cloneStrings(s.LedgerTxRefs)
	return &c
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append(make([]string, 0, len(in)), in...)
}
