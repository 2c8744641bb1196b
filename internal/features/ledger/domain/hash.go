package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// HashSize is the fixed width of an anchored hash.
const HashSize = 32

// Hash is a fixed-width document hash as anchored on the ledger.
type Hash [HashSize]byte

// ComputeDocumentHash hashes the three shipment documents with stable field delimiters.
// The result depends only on the document texts.
func ComputeDocumentHash(po, invoice, bol string) Hash {
	return sha256.Sum256([]byte("PO:" + po + "|INV:" + invoice + "|BOL:" + bol))
}

// Pad32 fits b into a Hash: shorter input is right-padded with zeros, longer input is truncated.
func Pad32(b []byte) Hash {
	var h Hash
	copy(h[:], b)
	return h
}

// ParseHash decodes a hex hash, with or without a 0x prefix, through Pad32.
func ParseHash(s string) (Hash, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	raw, err := hex.DecodeString(s)
	if err != nil {
		return Hash{}, fmt.Errorf("invalid hash %q: %w", s, err)
	}
	return Pad32(raw), nil
}

// Hex returns the 0x-prefixed lowercase hex form.
func (h Hash) Hex() string {
	return "0x" + hex.EncodeToString(h[:])
}

// String implements fmt.Stringer.
func (h Hash) String() string {
	return h.Hex()
}

// IsZero reports whether every byte is zero.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// MarshalJSON encodes the hash as a hex string.
func (h Hash) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.Hex())
}

// UnmarshalJSON decodes a hex string.
func (h *Hash) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseHash(s)
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}
