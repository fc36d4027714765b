// File: scc.go
// Role: Tarjan strongly-connected-components detection over all edges,
// including feedback (component C2, §4.2.2). Used as a general cycle
// detector: any SCC of size > 1 implies a cycle through its members, and
// a self-loop (an edge v→v) makes a singleton SCC a cycle too.
package algo

import "github.com/ni/delaygraph/core"

// sccFrame is one explicit-stack frame emulating the pre-/post-order hooks
// of recursive Tarjan: cursor indexes into edges, and whenChildDone holds
// the child vertex whose lowlink must be folded into this frame's once the
// child frame pops (the "waiting-for-child" flag from the design notes,
// represented here as a pending pointer rather than a boolean, since we
// need to know *which* child to fold in).
type sccFrame struct {
	id          core.VertexID
	edges       []*core.Edge
	cursor      int
	pendingChild core.VertexID
	hasPending  bool
}

// TarjanSCC partitions all vertices of g into strongly connected
// components using every edge (forward and feedback), via an iterative
// (explicit-stack) rendition of Tarjan's algorithm. SCCs are returned in
// the order they are popped off the algorithm's internal stack; singleton
// components are included.
//
// Complexity: O(V+E) time, O(V) space.
func TarjanSCC(g *core.Graph) [][]core.VertexID {
	vertices := g.Vertices()

	index := make(map[core.VertexID]int, len(vertices))
	lowlink := make(map[core.VertexID]int, len(vertices))
	onStack := make(map[core.VertexID]bool, len(vertices))
	var tarjanStack []core.VertexID

	nextIndex := 0
	var result [][]core.VertexID

	var work []*sccFrame

	for _, root := range vertices {
		if _, seen := index[root.ID]; seen {
			continue
		}

		work = append(work, &sccFrame{id: root.ID, edges: g.OutEdges(root.ID)})
		index[root.ID] = nextIndex
		lowlink[root.ID] = nextIndex
		nextIndex++
		tarjanStack = append(tarjanStack, root.ID)
		onStack[root.ID] = true

		for len(work) > 0 {
			top := work[len(work)-1]

			// Fold in the lowlink of a child frame that just finished,
			// emulating the post-recursion step "lowlink[v] = min(lowlink[v], lowlink[w])".
			if top.hasPending {
				if lowlink[top.pendingChild] < lowlink[top.id] {
					lowlink[top.id] = lowlink[top.pendingChild]
				}
				top.hasPending = false
			}

			if top.cursor >= len(top.edges) {
				// top is fully explored: if it is its own SCC root, pop the SCC.
				if lowlink[top.id] == index[top.id] {
					var scc []core.VertexID
					for {
						w := tarjanStack[len(tarjanStack)-1]
						tarjanStack = tarjanStack[:len(tarjanStack)-1]
						onStack[w] = false
						scc = append(scc, w)
						if w == top.id {
							break
						}
					}
					result = append(result, scc)
				}

				work = work[:len(work)-1]
				if len(work) > 0 {
					parent := work[len(work)-1]
					parent.pendingChild = top.id
					parent.hasPending = true
				}

				continue
			}

			e := top.edges[top.cursor]
			top.cursor++
			w := e.Target

			if _, seen := index[w]; !seen {
				index[w] = nextIndex
				lowlink[w] = nextIndex
				nextIndex++
				tarjanStack = append(tarjanStack, w)
				onStack[w] = true
				work = append(work, &sccFrame{id: w, edges: g.OutEdges(w)})
			} else if onStack[w] {
				if index[w] < lowlink[top.id] {
					lowlink[top.id] = index[w]
				}
			}
		}
	}

	return result
}
