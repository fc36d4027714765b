package dot_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ni/delaygraph/core"
	"github.com/ni/delaygraph/internal/dot"
)

func TestToDOTMarksRegisteredVerticesFilled(t *testing.T) {
	g := core.NewGraph()
	_, err := g.AddVertex(&core.Vertex{ID: 0})
	require.NoError(t, err)
	_, err = g.AddVertex(&core.Vertex{ID: 1})
	require.NoError(t, err)
	require.NoError(t, g.AddEdge(&core.Edge{Source: 0, Target: 1, Delay: 40}))

	sol := core.NewSolution(g)
	sol.Register(1)

	out := dot.ToDOT(g, sol)

	require.Contains(t, out, `"n1"`)
	require.Contains(t, out, "fillcolor=lightblue")
	require.Contains(t, out, "40ps")
}

func TestToDOTMarksFeedbackEdgesDashed(t *testing.T) {
	g := core.NewGraph()
	_, err := g.AddVertex(&core.Vertex{ID: 0})
	require.NoError(t, err)
	_, err = g.AddVertex(&core.Vertex{ID: 1})
	require.NoError(t, err)
	require.NoError(t, g.AddEdge(&core.Edge{Source: 1, Target: 0, Delay: 10, IsFeedback: true}))

	out := dot.ToDOT(g, core.NewSolution(g))

	require.Contains(t, out, "style=dashed")
}
