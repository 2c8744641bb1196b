package service

import (
	"fmt"
	"strconv"
	"time"

	"checkpoint-tracker/internal/features/routing/domain"
)

// GraphEdge is an edge as rendered for network visualisation.
type GraphEdge struct {
	Source      string  `json:"source"`
	Target      string  `json:"target"`
	TravelHours float64 `json:"travel_hours"`
	Label       string  `json:"label"`
}

// GraphView is the full transit network for visualisation.
type GraphView struct {
	Nodes []domain.TransitNode `json:"nodes"`
	Edges []GraphEdge          `json:"edges"`
}

// RouteService exposes the transit network and route planning.
type RouteService struct {
	graph *domain.Graph
	now   func() time.Time
}

// NewRouteService creates a RouteService over graph. A nil clock defaults to time.Now.
func NewRouteService(graph *domain.Graph, clock func() time.Time) *RouteService {
	if clock == nil {
		clock = time.Now
	}
	return &RouteService{
		graph: graph,
		now:   clock,
	}
}

// Graph returns the underlying transit graph.
func (s *RouteService) Graph() *domain.Graph {
	return s.graph
}

// Nodes lists every transit node.
func (s *RouteService) Nodes() []domain.TransitNode {
	return s.graph.Nodes()
}

// View returns nodes and labelled edges.
func (s *RouteService) View() GraphView {
	edges := s.graph.Edges()
	view := GraphView{
		Nodes: s.graph.Nodes(),
		Edges: make([]GraphEdge, 0, len(edges)),
	}
	for _, e := range edges {
		view.Edges = append(view.Edges, GraphEdge{
			Source:      e.From,
			Target:      e.To,
			TravelHours: e.Hours,
			Label:       strconv.FormatFloat(e.Hours, 'f', -1, 64) + "h",
		})
	}
	return view
}

// Optimal computes the fastest route between origin and destination starting now.
func (s *RouteService) Optimal(origin, destination string) ([]domain.RouteNode, error) {
	route, err := s.graph.ShortestPath(origin, destination, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	return route, nil
}
