package algo_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ni/delaygraph/algo"
	"github.com/ni/delaygraph/core"
)

func TestMaxCyclicThroughputSumsRegisteredCostOnCyclePath(t *testing.T) {
	g := core.NewGraph()
	v0 := &core.Vertex{ID: 0, IsRegistered: true, ThroughputCostIfRegistered: 5}
	v1 := &core.Vertex{ID: 1, ThroughputCostIfRegistered: 99} // not registered: contributes 0
	for _, v := range []*core.Vertex{v0, v1} {
		_, err := g.AddVertex(v)
		require.NoError(t, err)
	}
	require.NoError(t, g.AddEdge(&core.Edge{Source: 0, Target: 1, Delay: 50}))
	require.NoError(t, g.AddEdge(&core.Edge{Source: 1, Target: 0, Delay: 50, IsFeedback: true}))

	order, err := algo.TopologicalSort(g)
	require.NoError(t, err)

	sol := core.NewSolution(g)
	got := algo.MaxCyclicThroughput(order, g, sol)
	require.Equal(t, int64(5), got)
}

func TestMaxCyclicThroughputZeroWhenNoFeedback(t *testing.T) {
	g := buildLinear(t, 5)
	order, err := algo.TopologicalSort(g)
	require.NoError(t, err)

	sol := core.NewSolution(g)
	require.Equal(t, int64(0), algo.MaxCyclicThroughput(order, g, sol))
}

func TestMaxCyclicThroughputSelfCycleOriginAndCloser(t *testing.T) {
	// A vertex that is simultaneously the cycle origin and the vertex that
	// closes the cycle back onto itself records its own cost.
	g := core.NewGraph()
	v0 := &core.Vertex{ID: 0, IsRegistered: true, ThroughputCostIfRegistered: 7}
	_, err := g.AddVertex(v0)
	require.NoError(t, err)
	require.NoError(t, g.AddEdge(&core.Edge{Source: 0, Target: 0, Delay: 10, IsFeedback: true}))

	order, err := algo.TopologicalSort(g)
	require.NoError(t, err)

	sol := core.NewSolution(g)
	require.Equal(t, int64(7), algo.MaxCyclicThroughput(order, g, sol))
}
