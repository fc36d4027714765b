package algo_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ni/delaygraph/algo"
	"github.com/ni/delaygraph/core"
)

func TestMaxForwardLatencyTracksSinks(t *testing.T) {
	g := core.NewGraph()
	v0 := &core.Vertex{ID: 0}
	v1 := &core.Vertex{ID: 1, IsRegistered: true, LatencyCostIfRegistered: 3}
	v2 := &core.Vertex{ID: 2, IsRegistered: true, LatencyCostIfRegistered: 4}
	for _, v := range []*core.Vertex{v0, v1, v2} {
		_, err := g.AddVertex(v)
		require.NoError(t, err)
	}
	require.NoError(t, g.AddEdge(&core.Edge{Source: 0, Target: 1, Delay: 1}))
	require.NoError(t, g.AddEdge(&core.Edge{Source: 0, Target: 2, Delay: 1}))

	order, err := algo.TopologicalSort(g)
	require.NoError(t, err)

	sol := core.NewSolution(g)
	require.Equal(t, int64(4), algo.MaxForwardLatency(order, g, sol), "must take the max over both sink branches")
}

func TestMaxForwardLatencyZeroOnUnregisteredChain(t *testing.T) {
	g := buildLinear(t, 10)
	order, err := algo.TopologicalSort(g)
	require.NoError(t, err)

	sol := core.NewSolution(g)
	require.Equal(t, int64(0), algo.MaxForwardLatency(order, g, sol))
}
