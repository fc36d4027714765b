package core_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ni/delaygraph/core"
)

func TestSolutionEffectivelyRegistered(t *testing.T) {
	g := core.NewGraph()
	statically := &core.Vertex{ID: 1, IsRegistered: true}
	chosen := &core.Vertex{ID: 2}
	neither := &core.Vertex{ID: 3}
	for _, v := range []*core.Vertex{statically, chosen, neither} {
		_, err := g.AddVertex(v)
		require.NoError(t, err)
	}

	sol := core.NewSolution(g)
	sol.Register(2)

	require.True(t, sol.EffectivelyRegistered(statically))
	require.True(t, sol.EffectivelyRegistered(chosen))
	require.False(t, sol.EffectivelyRegistered(neither))
	require.False(t, sol.EffectivelyRegistered(nil))
}

func TestSolutionCloneIsIndependent(t *testing.T) {
	g := core.NewGraph()
	v := &core.Vertex{ID: 1}
	_, err := g.AddVertex(v)
	require.NoError(t, err)

	sol := core.NewSolution(g)
	sol.Register(1)

	clone := sol.Clone()
	clone.Unregister(1)

	require.True(t, sol.IsRegistered(1), "mutating the clone must not affect the original")
	require.False(t, clone.IsRegistered(1))
}
