package domain

import "time"

// TransitNode is a hub of the transit network.
type TransitNode struct {
	// Code is the unique node key (e.g., DEL).
	Code string `json:"code" yaml:"code"`
	// Name is the display name of the hub.
	Name string `json:"name" yaml:"name"`
	// X and Y are display coordinates only.
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Edge is an undirected connection between two hubs weighted by travel time in hours.
type Edge struct {
	From  string  `json:"source" yaml:"from"`
	To    string  `json:"target" yaml:"to"`
	Hours float64 `json:"travel_hours" yaml:"hours"`
}

// RouteNode is one stop of a shipment route. It belongs to exactly one shipment.
type RouteNode struct {
	// LocationCode is the transit node code of the stop.
	LocationCode string `json:"location_code"`
	// Name is the display name of the stop.
	Name string `json:"name"`
	// ExpectedArrival is the planned arrival, shifted forward by delay propagation.
	ExpectedArrival *time.Time `json:"expected_arrival"`
	// ETA is the projected arrival, shifted forward by delay propagation.
	ETA *time.Time `json:"eta"`
	// ActualArrival is set once the stop has been checked in.
	ActualArrival *time.Time `json:"actual_arrival"`
}

// Visited reports whether a checkpoint has been recorded for the stop.
func (n RouteNode) Visited() bool {
	return n.ActualArrival != nil
}

// CloneRoute returns a deep copy of route; time pointers are not shared with the input.
func CloneRoute(route []RouteNode) []RouteNode {
	if route == nil {
		return nil
	}
	out := make([]RouteNode, len(route))
	for i, n := range route {
		out[i] = RouteNode{
			LocationCode:    n.LocationCode,
			Name:            n.Name,
			ExpectedArrival: cloneTime(n.ExpectedArrival),
			ETA:             cloneTime(n.ETA),
			ActualArrival:   cloneTime(n.ActualArrival),
		}
	}
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

// hoursToDuration converts fractional hours to a time.Duration.
func hoursToDuration(hours float64) time.Duration {
	return time.Duration(hours * float64(time.Hour))
}
