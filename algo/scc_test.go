package algo_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ni/delaygraph/algo"
	"github.com/ni/delaygraph/core"
)

func normalizeSCCs(sccs [][]core.VertexID) [][]core.VertexID {
	out := make([][]core.VertexID, len(sccs))
	for i, scc := range sccs {
		cp := append([]core.VertexID(nil), scc...)
		sort.Slice(cp, func(a, b int) bool { return cp[a] < cp[b] })
		out[i] = cp
	}
	sort.Slice(out, func(a, b int) bool { return out[a][0] < out[b][0] })

	return out
}

func TestTarjanSCCPartitionsExactlyOnce(t *testing.T) {
	g := core.NewGraph()
	for _, id := range []core.VertexID{1, 2, 3, 4, 5} {
		_, err := g.AddVertex(&core.Vertex{ID: id})
		require.NoError(t, err)
	}
	// Cycle 1<->2<->3, plus 3->4 (forward), plus isolated 5.
	require.NoError(t, g.AddEdge(&core.Edge{Source: 1, Target: 2, Delay: 1}))
	require.NoError(t, g.AddEdge(&core.Edge{Source: 2, Target: 3, Delay: 1}))
	require.NoError(t, g.AddEdge(&core.Edge{Source: 3, Target: 1, Delay: 1, IsFeedback: true}))
	require.NoError(t, g.AddEdge(&core.Edge{Source: 3, Target: 4, Delay: 1}))

	sccs := algo.TarjanSCC(g)

	seen := make(map[core.VertexID]int)
	for _, scc := range sccs {
		for _, v := range scc {
			seen[v]++
		}
	}
	for _, id := range []core.VertexID{1, 2, 3, 4, 5} {
		require.Equal(t, 1, seen[id], "vertex %d must appear in exactly one SCC", id)
	}

	var big []core.VertexID
	for _, scc := range sccs {
		if len(scc) > 1 {
			big = scc
		}
	}
	require.NotNil(t, big, "the 1-2-3 cycle must form a non-trivial SCC")
	require.ElementsMatch(t, []core.VertexID{1, 2, 3}, big)
}

func TestTarjanSCCNoCycleIsAllSingletons(t *testing.T) {
	g := buildLinear(t, 100)
	sccs := algo.TarjanSCC(g)
	for _, scc := range sccs {
		require.Len(t, scc, 1, "an acyclic graph must decompose into singleton SCCs only")
	}
	require.Len(t, sccs, 100)
}

func TestTarjanSCCScalesPastNativeStackComfort(t *testing.T) {
	g := buildLinear(t, 50000)
	sccs := algo.TarjanSCC(g)
	require.Len(t, sccs, 50000)
}
