// File: graph.go
// Role: Graph is the stable-ordered vertex/edge container (component C1,
// "DirectedGraph" in the design). Unlike a map-backed adjacency list,
// vertices and edges are held in insertion-ordered slices with an
// id-to-index map for O(1) lookup — several algorithms downstream
// (topological sort tie-breaking, wavefront merges) depend on iteration
// order matching insertion order exactly, which Go's native map does not
// guarantee.
package core

// Graph is a mutable, append-only (plus explicit edge removal) container
// of Vertex and Edge values, indexed for O(1) lookup while preserving
// insertion order for iteration.
//
// Graphs are built once (additions only, aside from pruning, which
// removes parallel edges; cycle repair changes only the Solution, never
// the graph). There is no internal locking:
// one Graph is owned and mutated by a single goroutine at a time.
type Graph struct {
	vertices   []*Vertex
	vertexIdx  map[VertexID]int // VertexID -> index into vertices

	edges   []*Edge
	outIdx  map[VertexID][]int // VertexID -> indices into edges, insertion order
	inIdx   map[VertexID][]int
}

// NewGraph returns an empty Graph ready for AddVertex/AddEdge calls.
func NewGraph() *Graph {
	return &Graph{
		vertexIdx: make(map[VertexID]int),
		outIdx:    make(map[VertexID][]int),
		inIdx:     make(map[VertexID][]int),
	}
}

// AddVertex appends v if its ID is new. Returns false (no mutation) if a
// vertex with the same ID already exists, per spec: "first-insertion wins".
func (g *Graph) AddVertex(v *Vertex) (bool, error) {
	if v == nil {
		return false, ErrNilVertex
	}
	if _, exists := g.vertexIdx[v.ID]; exists {
		return false, nil
	}

	g.vertexIdx[v.ID] = len(g.vertices)
	g.vertices = append(g.vertices, v)

	return true, nil
}

// HasVertex reports whether id is present in the graph.
func (g *Graph) HasVertex(id VertexID) bool {
	_, ok := g.vertexIdx[id]

	return ok
}

// Vertex returns the vertex with the given id, or nil if absent.
func (g *Graph) Vertex(id VertexID) *Vertex {
	if idx, ok := g.vertexIdx[id]; ok {
		return g.vertices[idx]
	}

	return nil
}

// Vertices returns all vertices in stable insertion order. The returned
// slice is owned by the caller to read; do not mutate its length.
func (g *Graph) Vertices() []*Vertex {
	out := make([]*Vertex, len(g.vertices))
	copy(out, g.vertices)

	return out
}

// AddEdge appends e to the edge list and to both adjacency indexes. Fails
// with no mutation if either endpoint is unknown, per spec.
func (g *Graph) AddEdge(e *Edge) error {
	if e == nil {
		return ErrNilVertex
	}
	if !g.HasVertex(e.Source) || !g.HasVertex(e.Target) {
		return ErrUnknownEndpoint
	}

	idx := len(g.edges)
	g.edges = append(g.edges, e)
	g.outIdx[e.Source] = append(g.outIdx[e.Source], idx)
	g.inIdx[e.Target] = append(g.inIdx[e.Target], idx)

	return nil
}

// RemoveEdge detaches e from both adjacency lists and the edge list.
// It is a no-op if e is not present (matched by pointer identity).
func (g *Graph) RemoveEdge(e *Edge) {
	pos := -1
	for i, cur := range g.edges {
		if cur == e {
			pos = i

			break
		}
	}
	if pos < 0 {
		return
	}

	g.edges = append(g.edges[:pos], g.edges[pos+1:]...)
	g.outIdx[e.Source] = removeIndex(g.outIdx[e.Source], pos)
	g.inIdx[e.Target] = removeIndex(g.inIdx[e.Target], pos)
	shiftDown(g.outIdx, pos)
	shiftDown(g.inIdx, pos)
}

// removeIndex deletes the first occurrence of pos from idxs.
func removeIndex(idxs []int, pos int) []int {
	for i, v := range idxs {
		if v == pos {
			return append(idxs[:i], idxs[i+1:]...)
		}
	}

	return idxs
}

// shiftDown decrements every recorded edge-slice index greater than pos,
// keeping the adjacency indexes valid after a compacting removal from
// the shared g.edges slice.
func shiftDown(m map[VertexID][]int, pos int) {
	for k, idxs := range m {
		for i, v := range idxs {
			if v > pos {
				idxs[i] = v - 1
			}
		}
		m[k] = idxs
	}
}

// Edges returns all edges in stable insertion order.
func (g *Graph) Edges() []*Edge {
	out := make([]*Edge, len(g.edges))
	copy(out, g.edges)

	return out
}

// OutEdges returns v's outgoing edges (all, including feedback) in
// insertion order. Empty (not nil-panicking) if v is unknown.
func (g *Graph) OutEdges(v VertexID) []*Edge {
	return g.collect(g.outIdx[v])
}

// InEdges returns v's incoming edges (all, including feedback) in
// insertion order.
func (g *Graph) InEdges(v VertexID) []*Edge {
	return g.collect(g.inIdx[v])
}

// ForwardOutEdges returns v's outgoing edges excluding feedback edges.
func (g *Graph) ForwardOutEdges(v VertexID) []*Edge {
	return filterFeedback(g.OutEdges(v), false)
}

// ForwardInEdges returns v's incoming edges excluding feedback edges.
func (g *Graph) ForwardInEdges(v VertexID) []*Edge {
	return filterFeedback(g.InEdges(v), false)
}

// FeedbackOutEdges returns only v's feedback outgoing edges.
func (g *Graph) FeedbackOutEdges(v VertexID) []*Edge {
	return filterFeedback(g.OutEdges(v), true)
}

// FeedbackInEdges returns only v's feedback incoming edges.
func (g *Graph) FeedbackInEdges(v VertexID) []*Edge {
	return filterFeedback(g.InEdges(v), true)
}

func filterFeedback(edges []*Edge, feedback bool) []*Edge {
	out := make([]*Edge, 0, len(edges))
	for _, e := range edges {
		if e.IsFeedback == feedback {
			out = append(out, e)
		}
	}

	return out
}

func (g *Graph) collect(idxs []int) []*Edge {
	out := make([]*Edge, len(idxs))
	for i, idx := range idxs {
		out[i] = g.edges[idx]
	}

	return out
}

// PruneParallelEdges collapses, for every vertex's outgoing bucket keyed
// by target, all but the largest-delay edge. Returns whether any edge was
// removed. Idempotent: a second call on an already-pruned graph is a no-op
// and also returns false.
//
// Complexity: O(E) time to find duplicates plus O(E) per removed edge
// (RemoveEdge compacts the shared edge slice), O(E) auxiliary space for
// the per-vertex buckets.
func (g *Graph) PruneParallelEdges() bool {
	changed := false
	for _, v := range g.vertices {
		out := g.OutEdges(v.ID)
		if len(out) < 2 {
			continue
		}

		best := make(map[VertexID]*Edge, len(out))
		for _, e := range out {
			cur, ok := best[e.Target]
			if !ok || e.Delay > cur.Delay {
				best[e.Target] = e
			}
		}
		if len(best) == len(out) {
			continue // no duplicate (source,target) pairs at this vertex
		}

		// Rebuild: drop every edge from v that isn't the chosen survivor
		// for its target bucket.
		for _, e := range out {
			if best[e.Target] != e {
				g.RemoveEdge(e)
				changed = true
			}
		}
	}

	return changed
}
