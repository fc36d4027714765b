package core_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/ni/delaygraph/core"
)

type GraphSuite struct {
	suite.Suite
	g *core.Graph
}

func (s *GraphSuite) SetupTest() {
	s.g = core.NewGraph()
}

func (s *GraphSuite) addV(id core.VertexID) *core.Vertex {
	v := &core.Vertex{ID: id}
	_, err := s.g.AddVertex(v)
	s.Require().NoError(err)

	return v
}

func (s *GraphSuite) TestAddVertexFirstInsertionWins() {
	require := require.New(s.T())
	v1 := &core.Vertex{ID: 1, NodeType: core.Other}
	ok, err := s.g.AddVertex(v1)
	require.NoError(err)
	require.True(ok)

	v1Dup := &core.Vertex{ID: 1, NodeType: core.BorderNode}
	ok, err = s.g.AddVertex(v1Dup)
	require.NoError(err)
	require.False(ok, "duplicate id must be rejected")
	require.Equal(core.Other, s.g.Vertex(1).NodeType, "first insertion wins")
}

func (s *GraphSuite) TestAddEdgeFailsOnUnknownEndpoint() {
	require := require.New(s.T())
	s.addV(1)
	err := s.g.AddEdge(&core.Edge{Source: 1, Target: 2, Delay: 10})
	require.ErrorIs(err, core.ErrUnknownEndpoint)
	require.Empty(s.g.Edges())
}

func (s *GraphSuite) TestInsertionOrderIsStable() {
	require := require.New(s.T())
	ids := []core.VertexID{5, 1, 3, 2, 4}
	for _, id := range ids {
		s.addV(id)
	}
	got := s.g.Vertices()
	require.Len(got, len(ids))
	for i, v := range got {
		require.Equal(ids[i], v.ID, "vertex order must equal insertion order, not numeric or hashed order")
	}
}

func (s *GraphSuite) TestForwardAndFeedbackPartition() {
	require := require.New(s.T())
	s.addV(1)
	s.addV(2)
	fwd := &core.Edge{Source: 1, Target: 2, Delay: 10}
	fb := &core.Edge{Source: 2, Target: 1, Delay: 5, IsFeedback: true}
	require.NoError(s.g.AddEdge(fwd))
	require.NoError(s.g.AddEdge(fb))

	require.Equal([]*core.Edge{fwd}, s.g.ForwardOutEdges(1))
	require.Empty(s.g.FeedbackOutEdges(1))
	require.Equal([]*core.Edge{fb}, s.g.FeedbackOutEdges(2))
	require.Empty(s.g.ForwardOutEdges(2))

	require.Equal([]*core.Edge{fwd, fb}, s.g.Edges())
}

func (s *GraphSuite) TestRemoveEdgeDetachesBothSides() {
	require := require.New(s.T())
	s.addV(1)
	s.addV(2)
	e := &core.Edge{Source: 1, Target: 2, Delay: 10}
	require.NoError(s.g.AddEdge(e))
	s.g.RemoveEdge(e)
	require.Empty(s.g.OutEdges(1))
	require.Empty(s.g.InEdges(2))
	require.Empty(s.g.Edges())
}

func (s *GraphSuite) TestPruneParallelEdgesKeepsLargestDelay() {
	require := require.New(s.T())
	s.addV(1)
	s.addV(2)
	small := &core.Edge{Source: 1, Target: 2, Delay: 40}
	big := &core.Edge{Source: 1, Target: 2, Delay: 90}
	require.NoError(s.g.AddEdge(small))
	require.NoError(s.g.AddEdge(big))

	changed := s.g.PruneParallelEdges()
	require.True(changed)
	edges := s.g.OutEdges(1)
	require.Len(edges, 1)
	require.Equal(int64(90), edges[0].Delay)
}

func (s *GraphSuite) TestPruneIsIdempotent() {
	require := require.New(s.T())
	s.addV(1)
	s.addV(2)
	require.NoError(s.g.AddEdge(&core.Edge{Source: 1, Target: 2, Delay: 40}))
	require.NoError(s.g.AddEdge(&core.Edge{Source: 1, Target: 2, Delay: 90}))

	require.True(s.g.PruneParallelEdges())
	require.False(s.g.PruneParallelEdges(), "second prune must report no change")
	require.Len(s.g.OutEdges(1), 1)
}

func (s *GraphSuite) TestPruneOnlyCollapsesSameSourceTarget() {
	require := require.New(s.T())
	s.addV(1)
	s.addV(2)
	s.addV(3)
	require.NoError(s.g.AddEdge(&core.Edge{Source: 1, Target: 2, Delay: 10}))
	require.NoError(s.g.AddEdge(&core.Edge{Source: 1, Target: 3, Delay: 20}))

	require.False(s.g.PruneParallelEdges())
	require.Len(s.g.OutEdges(1), 2)
}

func TestGraphSuite(t *testing.T) {
	suite.Run(t, new(GraphSuite))
}
