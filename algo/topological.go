// File: topological.go
// Role: feedback-aware topological sort (component C2, §4.2.1).
package algo

import (
	"errors"

	"github.com/ni/delaygraph/core"
)

// VertexState is the tri-state DFS visitation mark used by TopologicalSort
// to avoid native recursion: Queued (untouched), Visiting
// (on the explicit work stack, not yet fully explored) and Visited (fully
// explored, safe to skip).
type VertexState int

const (
	Queued VertexState = iota
	Visiting
	Visited
)

// ErrBadTopologicalSeed is returned when the forward-edge subgraph is not
// a DAG. Well-formed input (feedback edges correctly marked) never trips
// this; it signals the problem is degenerate, per spec §4.2.1.
var ErrBadTopologicalSeed = errors.New("algo: unexpected bad topological seed (forward edges contain a cycle)")

// topoFrame is one explicit-stack frame for the iterative DFS: the vertex
// being explored and a cursor into its forward out-edges, so the traversal
// can suspend mid-exploration and resume exactly where it left off instead
// of recursing.
type topoFrame struct {
	id     core.VertexID
	edges  []*core.Edge
	cursor int
}

// TopologicalSort returns vertices ordered so that for every forward edge
// u→v, index(u) < index(v); feedback edges are ignored entirely. Ties are
// broken by the graph's insertion order. Returns ErrBadTopologicalSeed if
// the forward-edge subgraph contains a cycle.
//
// Iterative by construction: an explicit stack of topoFrame values stands
// in for the native call stack, so depth is bounded only by available
// heap memory, not goroutine stack size.
func TopologicalSort(g *core.Graph) ([]core.VertexID, error) {
	vertices := g.Vertices()
	state := make(map[core.VertexID]VertexState, len(vertices))
	order := make([]core.VertexID, 0, len(vertices))

	var stack []*topoFrame

	for _, root := range vertices {
		if state[root.ID] != Queued {
			continue
		}

		stack = append(stack, &topoFrame{id: root.ID, edges: g.ForwardOutEdges(root.ID)})
		state[root.ID] = Visiting

		for len(stack) > 0 {
			top := stack[len(stack)-1]

			if top.cursor >= len(top.edges) {
				// All of top's forward successors are explored: finish it.
				state[top.id] = Visited
				order = append(order, top.id)
				stack = stack[:len(stack)-1]

				continue
			}

			next := top.edges[top.cursor]
			top.cursor++

			switch state[next.Target] {
			case Visiting:
				// Back-edge on the forward-only subgraph: degenerate input.
				return nil, ErrBadTopologicalSeed
			case Visited:
				continue
			default: // Queued
				state[next.Target] = Visiting
				stack = append(stack, &topoFrame{id: next.Target, edges: g.ForwardOutEdges(next.Target)})
			}
		}
	}

	// Reverse postorder is a valid topological order for any DAG,
	// regardless of which root each subtree was discovered from.
	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}

	return order, nil
}
