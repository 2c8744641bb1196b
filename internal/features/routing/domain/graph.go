package domain

import (
	"container/heap"
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	// ErrNoRouteFound is returned when an endpoint is unknown or no path connects the endpoints.
	ErrNoRouteFound = errors.New("no route found")
	// ErrUnknownNode is wrapped together with ErrNoRouteFound when an endpoint is not in the network.
	ErrUnknownNode = errors.New("unknown transit node")
	// ErrInvalidNetwork is returned when the network definition is inconsistent.
	ErrInvalidNetwork = errors.New("invalid transit network")
)

type neighbor struct {
	code  string
	hours float64
}

// Graph is the static weighted undirected transit network.
// It is immutable after NewGraph and safe for concurrent use without locking.
type Graph struct {
	nodes []TransitNode
	edges []Edge
	index map[string]int
	adj   map[string][]neighbor
}

// NewGraph validates the network and builds its adjacency lists.
func NewGraph(nodes []TransitNode, edges []Edge) (*Graph, error) {
	g := &Graph{
		nodes: make([]TransitNode, len(nodes)),
		edges: make([]Edge, len(edges)),
		index: make(map[string]int, len(nodes)),
		adj:   make(map[string][]neighbor, len(nodes)),
	}
	copy(g.nodes, nodes)
	copy(g.edges, edges)

	for i, n := range nodes {
		if n.Code == "" {
			return nil, fmt.Errorf("%w: node %d has no code", ErrInvalidNetwork, i)
		}
		if _, dup := g.index[n.Code]; dup {
			return nil, fmt.Errorf("%w: duplicate node %s", ErrInvalidNetwork, n.Code)
		}
		g.index[n.Code] = i
		g.adj[n.Code] = nil
	}

	for _, e := range edges {
		if _, ok := g.index[e.From]; !ok {
			return nil, fmt.Errorf("%w: edge references unknown node %s", ErrInvalidNetwork, e.From)
		}
		if _, ok := g.index[e.To]; !ok {
			return nil, fmt.Errorf("%w: edge references unknown node %s", ErrInvalidNetwork, e.To)
		}
		if !(e.Hours > 0) || math.IsInf(e.Hours, 0) {
			return nil, fmt.Errorf("%w: edge %s-%s has non-positive weight", ErrInvalidNetwork, e.From, e.To)
		}
		g.adj[e.From] = append(g.adj[e.From], neighbor{code: e.To, hours: e.Hours})
		g.adj[e.To] = append(g.adj[e.To], neighbor{code: e.From, hours: e.Hours})
	}

	return g, nil
}

// Nodes returns a copy of the network nodes in definition order.
func (g *Graph) Nodes() []TransitNode {
	out := make([]TransitNode, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Edges returns a copy of the network edges in definition order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// Node looks up a transit node by code.
func (g *Graph) Node(code string) (TransitNode, bool) {
	i, ok := g.index[code]
	if !ok {
		return TransitNode{}, false
	}
	return g.nodes[i], true
}

// Weight returns the cheapest direct edge weight between a and b.
func (g *Graph) Weight(a, b string) (float64, bool) {
	best, found := math.Inf(1), false
	for _, n := range g.adj[a] {
		if n.code == b && n.hours < best {
			best, found = n.hours, true
		}
	}
	return best, found
}

// ShortestPath computes the minimum travel-time route from origin to destination and
// materializes it with cumulative ETAs starting at now.
//
// Among several paths of equal total weight the one returned is unspecified.
func (g *Graph) ShortestPath(origin, destination string, now time.Time) ([]RouteNode, error) {
	if _, ok := g.index[origin]; !ok {
		return nil, fmt.Errorf("%w: %w: origin %s", ErrNoRouteFound, ErrUnknownNode, origin)
	}
	if _, ok := g.index[destination]; !ok {
		return nil, fmt.Errorf("%w: %w: destination %s", ErrNoRouteFound, ErrUnknownNode, destination)
	}

	if origin == destination {
		return []RouteNode{g.routeNode(origin, now)}, nil
	}

	dist := map[string]float64{origin: 0}
	prev := map[string]string{}
	settled := map[string]bool{}

	pq := &frontier{{code: origin, dist: 0}}
	for pq.Len() > 0 {
		cur := heap.Pop(pq).(item)
		if settled[cur.code] {
			continue
		}
		settled[cur.code] = true
		if cur.code == destination {
			break
		}
		for _, n := range g.adj[cur.code] {
			if settled[n.code] {
				continue
			}
			nd := cur.dist + n.hours
			if d, seen := dist[n.code]; !seen || nd < d {
				dist[n.code] = nd
				prev[n.code] = cur.code
				heap.Push(pq, item{code: n.code, dist: nd})
			}
		}
	}

	if !settled[destination] {
		return nil, fmt.Errorf("%w: %s is unreachable from %s", ErrNoRouteFound, destination, origin)
	}

	var path []string
	for code := destination; ; code = prev[code] {
		path = append(path, code)
		if code == origin {
			break
		}
	}

	route := make([]RouteNode, 0, len(path))
	for i := len(path) - 1; i >= 0; i-- {
		code := path[i]
		route = append(route, g.routeNode(code, now.Add(hoursToDuration(dist[code]))))
	}
	return route, nil
}

// Materialize turns an explicit stop sequence into a route with cumulative ETAs from now.
// Consecutive stops must share an edge; the cheapest edge is used.
func (g *Graph) Materialize(codes []string, now time.Time) ([]RouteNode, error) {
	if len(codes) == 0 {
		return nil, fmt.Errorf("%w: empty route", ErrNoRouteFound)
	}
	for _, code := range codes {
		if _, ok := g.index[code]; !ok {
			return nil, fmt.Errorf("%w: %w: %s", ErrNoRouteFound, ErrUnknownNode, code)
		}
	}

	route := make([]RouteNode, 0, len(codes))
	elapsed := 0.0
	route = append(route, g.routeNode(codes[0], now))
	for i := 1; i < len(codes); i++ {
		w, ok := g.Weight(codes[i-1], codes[i])
		if !ok {
			return nil, fmt.Errorf("%w: %s and %s are not connected", ErrNoRouteFound, codes[i-1], codes[i])
		}
		elapsed += w
		route = append(route, g.routeNode(codes[i], now.Add(hoursToDuration(elapsed))))
	}
	return route, nil
}

func (g *Graph) routeNode(code string, at time.Time) RouteNode {
	node, _ := g.Node(code)
	eta, expected := at, at
	return RouteNode{
		LocationCode:    code,
		Name:            node.Name,
		ExpectedArrival: &expected,
		ETA:             &eta,
	}
}

type item struct {
	code string
	dist float64
}

// frontier is a min-heap of tentative distances.
type frontier []item

func (f frontier) Len() int            { return len(f) }
func (f frontier) Less(i, j int) bool  { return f[i].dist < f[j].dist }
func (f frontier) Swap(i, j int)       { f[i], f[j] = f[j], f[i] }
func (f *frontier) Push(x interface{}) { *f = append(*f, x.(item)) }
func (f *frontier) Pop() interface{} {
	old := *f
	n := len(old)
	it := old[n-1]
	*f = old[:n-1]
	return it
}
