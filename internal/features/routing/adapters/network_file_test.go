package adapters

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"checkpoint-tracker/internal/features/routing/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleNetwork = `
nodes:
  - {code: A, name: Alpha, x: 1, y: 2}
  - {code: B, name: Bravo}
  - {code: C, name: Charlie}
edges:
  - {from: A, to: B, hours: 5}
  - {from: B, to: C, hours: 3}
`

func TestLoadNetwork(t *testing.T) {
	path := filepath.Join(t.TempDir(), "network.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleNetwork), 0o644))

	g, err := LoadNetwork(path)
	require.NoError(t, err)

	node, ok := g.Node("A")
	require.True(t, ok)
	assert.Equal(t, "Alpha", node.Name)
	assert.Equal(t, 1.0, node.X)

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	route, err := g.ShortestPath("A", "C", now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(8*time.Hour), *route[2].ETA)
}

func TestParseNetwork_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"Unknown field", "nodes:\n  - {code: A, colour: red}\n"},
		{"No nodes", "edges: []\n"},
		{"Bad edge", "nodes:\n  - {code: A}\nedges:\n  - {from: A, to: B, hours: 1}\n"},
		{"Not yaml", "::::"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseNetwork([]byte(tt.raw))
			assert.Error(t, err)
		})
	}
}

func TestParseNetwork_InvalidNetworkSentinel(t *testing.T) {
	_, err := ParseNetwork([]byte("edges: []\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidNetwork)
}

func TestLoadNetwork_MissingFile(t *testing.T) {
	_, err := LoadNetwork(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read network file")
}
