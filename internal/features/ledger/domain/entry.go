package domain

import (
	"errors"
	"strings"
	"time"
)

// ErrLedgerUnavailable is returned by adapters when the ledger cannot be reached.
var ErrLedgerUnavailable = errors.New("ledger unavailable")

// StubTxRef is the transaction reference reported by the stub ledger.
var StubTxRef = "0x" + strings.Repeat("0", 64)

// EntryKind distinguishes the creation anchor from checkpoint anchors.
type EntryKind string

const (
	// KindGenesis is anchored when a shipment is created.
	KindGenesis EntryKind = "genesis"
	// KindCheckpoint is anchored for every accepted checkpoint.
	KindCheckpoint EntryKind = "checkpoint"
)

// Entry is one anchored record of a shipment, in sequence order.
type Entry struct {
	ShipmentID   string    `json:"shipment_id"`
	LocationCode string    `json:"location_code"`
	WeightKg     float64   `json:"weight_kg"`
	DocumentHash Hash      `json:"document_hash"`
	Index        int       `json:"index"`
	Kind         EntryKind `json:"kind"`
	TxRef        string    `json:"tx_hash"`
	BlockRef     uint64    `json:"block_number"`
	RecordedAt   time.Time `json:"recorded_at"`
}

// AppendRequest is the payload anchored by Append.
type AppendRequest struct {
	ShipmentID   string    `json:"shipment_id"`
	LocationCode string    `json:"location_code"`
	WeightKg     float64   `json:"weight_kg"`
	DocumentHash Hash      `json:"document_hash"`
	Kind         EntryKind `json:"kind"`
}

// AppendStatus is the outcome of an append.
type AppendStatus string

const (
	AppendConfirmed AppendStatus = "confirmed"
	AppendFailed    AppendStatus = "failed"
	AppendError     AppendStatus = "error"
	AppendStubbed   AppendStatus = "stubbed"
)

// Receipt describes an append outcome.
type Receipt struct {
	TxRef    string       `json:"tx_hash,omitempty"`
	BlockRef uint64       `json:"block_number"`
	Status   AppendStatus `json:"status"`
	Error    string       `json:"error,omitempty"`
}

// Anchored reports whether the append was accepted, for real or by the stub.
func (r Receipt) Anchored() bool {
	return r.Status == AppendConfirmed || r.Status == AppendStubbed
}

// VerifyStatus is the outcome of a hash verification.
type VerifyStatus string

const (
	VerifyFirstCheckpoint VerifyStatus = "first_checkpoint"
	VerifyVerified        VerifyStatus = "verified"
	VerifyHashMismatch    VerifyStatus = "hash_mismatch"
	VerifyStubbed         VerifyStatus = "stubbed"
	VerifyError           VerifyStatus = "error"
)

// Verification describes a verify outcome. OnChainHash is nil when nothing was compared.
type Verification struct {
	Verified    bool         `json:"verified"`
	OnChainHash *Hash        `json:"on_chain_hash"`
	Status      VerifyStatus `json:"status"`
	Error       string       `json:"error,omitempty"`
}

// LatestCheckpoint returns the most recent checkpoint entry. Genesis entries are skipped.
func LatestCheckpoint(entries []Entry) (Entry, bool) {
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].Kind == KindCheckpoint {
			return entries[i], true
		}
	}
	return Entry{}, false
}

// Genesis returns the creation anchor, if one was recorded.
func Genesis(entries []Entry) (Entry, bool) {
	for _, e := range entries {
		if e.Kind == KindGenesis {
			return e, true
		}
	}
	return Entry{}, false
}

// VerifyAgainst compares expected with the latest checkpoint anchor, or with the creation
// anchor while no checkpoint has been anchored. A match against the creation anchor reports
// first_checkpoint. With no anchors at all the check passes as first_checkpoint.
func VerifyAgainst(entries []Entry, expected Hash) Verification {
	latest, ok := LatestCheckpoint(entries)
	matched := VerifyVerified
	if !ok {
		latest, ok = Genesis(entries)
		matched = VerifyFirstCheckpoint
	}
	if !ok {
		return Verification{Verified: true, Status: VerifyFirstCheckpoint}
	}
	onChain := latest.DocumentHash
	if onChain != expected {
		return Verification{Verified: false, OnChainHash: &onChain, Status: VerifyHashMismatch}
	}
	return Verification{Verified: true, OnChainHash: &onChain, Status: matched}
}
