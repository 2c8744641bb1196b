package domain

import (
	"crypto/sha256"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeDocumentHash(t *testing.T) {
	want := sha256.Sum256([]byte("PO:X|INV:inv-1|BOL:bol-1"))
	assert.Equal(t, Hash(want), ComputeDocumentHash("X", "inv-1", "bol-1"))

	assert.Equal(t, ComputeDocumentHash("a", "b", "c"), ComputeDocumentHash("a", "b", "c"))
	assert.NotEqual(t, ComputeDocumentHash("X", "", ""), ComputeDocumentHash("Y", "", ""))
	// Delimiters keep field boundaries apart.
	assert.NotEqual(t, ComputeDocumentHash("ab", "", ""), ComputeDocumentHash("a", "b", ""))
}

func TestPad32(t *testing.T) {
	short := Pad32([]byte{1, 2, 3})
	assert.Equal(t, byte(1), short[0])
	assert.Equal(t, byte(3), short[2])
	assert.Equal(t, byte(0), short[31])

	long := make([]byte, 40)
	for i := range long {
		long[i] = byte(i + 1)
	}
	truncated := Pad32(long)
	assert.Equal(t, byte(32), truncated[31])

	assert.True(t, Pad32(nil).IsZero())
}

func TestParseHash(t *testing.T) {
	h := ComputeDocumentHash("a", "b", "c")

	parsed, err := ParseHash(h.Hex())
	require.NoError(t, err)
	assert.Equal(t, h, parsed)

	parsed, err = ParseHash(h.Hex()[2:])
	require.NoError(t, err)
	assert.Equal(t, h, parsed)

	parsed, err = ParseHash("0xabcd")
	require.NoError(t, err)
	assert.Equal(t, Pad32([]byte{0xab, 0xcd}), parsed)

	_, err = ParseHash("0xzz")
	assert.Error(t, err)
}

func TestHash_JSON(t *testing.T) {
	h := ComputeDocumentHash("po", "inv", "bol")
	raw, err := json.Marshal(h)
	require.NoError(t, err)
	assert.Equal(t, `"`+h.Hex()+`"`, string(raw))

	var back Hash
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, h, back)

	assert.Error(t, json.Unmarshal([]byte(`12`), &back))
}

func TestVerifyAgainst(t *testing.T) {
	h1 := ComputeDocumentHash("X", "", "")
	h2 := ComputeDocumentHash("Y", "", "")

	t.Run("NoEntries", func(t *testing.T) {
		v := VerifyAgainst(nil, h1)
		assert.True(t, v.Verified)
		assert.Equal(t, VerifyFirstCheckpoint, v.Status)
		assert.Nil(t, v.OnChainHash)
	})

	t.Run("GenesisMatches", func(t *testing.T) {
		v := VerifyAgainst([]Entry{{Kind: KindGenesis, DocumentHash: h1}}, h1)
		assert.True(t, v.Verified)
		assert.Equal(t, VerifyFirstCheckpoint, v.Status)
		require.NotNil(t, v.OnChainHash)
		assert.Equal(t, h1, *v.OnChainHash)
	})

	t.Run("GenesisMismatch", func(t *testing.T) {
		v := VerifyAgainst([]Entry{{Kind: KindGenesis, DocumentHash: h1}}, h2)
		assert.False(t, v.Verified)
		assert.Equal(t, VerifyHashMismatch, v.Status)
		require.NotNil(t, v.OnChainHash)
		assert.Equal(t, h1, *v.OnChainHash)
	})

	t.Run("CheckpointSupersedesGenesis", func(t *testing.T) {
		entries := []Entry{
			{Kind: KindGenesis, DocumentHash: h1},
			{Kind: KindCheckpoint, DocumentHash: h2},
		}
		v := VerifyAgainst(entries, h2)
		assert.True(t, v.Verified)
		assert.Equal(t, VerifyVerified, v.Status)
	})

	t.Run("LatestMatches", func(t *testing.T) {
		entries := []Entry{
			{Kind: KindGenesis, DocumentHash: h1},
			{Kind: KindCheckpoint, DocumentHash: h1},
			{Kind: KindCheckpoint, DocumentHash: h2},
		}
		v := VerifyAgainst(entries, h2)
		assert.True(t, v.Verified)
		assert.Equal(t, VerifyVerified, v.Status)
		require.NotNil(t, v.OnChainHash)
		assert.Equal(t, h2, *v.OnChainHash)
	})

	t.Run("OnlyLatestCounts", func(t *testing.T) {
		entries := []Entry{
			{Kind: KindCheckpoint, DocumentHash: h1},
			{Kind: KindCheckpoint, DocumentHash: h2},
		}
		v := VerifyAgainst(entries, h1)
		assert.False(t, v.Verified)
		assert.Equal(t, VerifyHashMismatch, v.Status)
		assert.Equal(t, h2, *v.OnChainHash)
	})
}
