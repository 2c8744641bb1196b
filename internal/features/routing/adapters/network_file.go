package adapters

import (
	"bytes"
	"fmt"
	"os"

	"checkpoint-tracker/internal/features/routing/domain"

	"gopkg.in/yaml.v3"
)

// networkFile is the on-disk layout of a transit network.
type networkFile struct {
	Nodes []domain.TransitNode `yaml:"nodes"`
	Edges []domain.Edge        `yaml:"edges"`
}

// LoadNetwork reads a YAML transit network and builds the graph.
//
//	nodes:
//	  - {code: DEL, name: Delhi Hub, x: 350, y: 80}
//	edges:
//	  - {from: DEL, to: JAI, hours: 5}
func LoadNetwork(path string) (*domain.Graph, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read network file: %w", err)
	}
	return ParseNetwork(raw)
}

// ParseNetwork decodes a YAML transit network. Unknown fields are rejected.
func ParseNetwork(raw []byte) (*domain.Graph, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var nf networkFile
	if err := dec.Decode(&nf); err != nil {
		return nil, fmt.Errorf("failed to decode network file: %w", err)
	}
	if len(nf.Nodes) == 0 {
		return nil, fmt.Errorf("%w: no nodes defined", domain.ErrInvalidNetwork)
	}

	return domain.NewGraph(nf.Nodes, nf.Edges)
}
