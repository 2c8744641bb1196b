package service

import (
	"testing"
	"time"

	"checkpoint-tracker/internal/features/routing/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) *RouteService {
	t.Helper()
	g, err := domain.NewGraph(
		[]domain.TransitNode{{Code: "A", Name: "Alpha"}, {Code: "B", Name: "Bravo"}, {Code: "C", Name: "Charlie"}},
		[]domain.Edge{{From: "A", To: "B", Hours: 5}, {From: "B", To: "C", Hours: 2.5}},
	)
	require.NoError(t, err)
	return NewRouteService(g, func() time.Time { return fixedNow })
}

func TestRouteService_View(t *testing.T) {
	svc := newTestService(t)

	view := svc.View()
	assert.Len(t, view.Nodes, 3)
	require.Len(t, view.Edges, 2)
	assert.Equal(t, GraphEdge{Source: "A", Target: "B", TravelHours: 5, Label: "5h"}, view.Edges[0])
	assert.Equal(t, "2.5h", view.Edges[1].Label)
}

func TestRouteService_Optimal(t *testing.T) {
	svc := newTestService(t)

	t.Run("Success", func(t *testing.T) {
		route, err := svc.Optimal("A", "C")
		require.NoError(t, err)
		require.Len(t, route, 3)
		assert.Equal(t, fixedNow, *route[0].ETA)
		assert.Equal(t, fixedNow.Add(7*time.Hour+30*time.Minute), *route[2].ETA)
	})

	t.Run("UnknownNode", func(t *testing.T) {
		_, err := svc.Optimal("A", "X")
		assert.ErrorIs(t, err, domain.ErrNoRouteFound)
		assert.ErrorIs(t, err, domain.ErrUnknownNode)
	})
}

func TestNewRouteService_DefaultClock(t *testing.T) {
	svc := NewRouteService(domain.DefaultGraph(), nil)
	before := time.Now().UTC()

	route, err := svc.Optimal("DEL", "DEL")
	require.NoError(t, err)
	assert.False(t, route[0].ETA.Before(before))
	assert.Len(t, svc.Nodes(), 15)
}
