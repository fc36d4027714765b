// File: period.go
// Role: PeriodEstimator (component C3, §4.3). Computes the longest
// combinational path between registers — including graph inputs/outputs
// as implicit register boundaries — and whether a combinational cycle
// remains.
package period

import "github.com/ni/delaygraph/core"

// RegisteredSet reports whether a vertex is effectively registered. A
// *core.Solution satisfies this directly.
type RegisteredSet interface {
	EffectivelyRegistered(v *core.Vertex) bool
}

type visitState int

const (
	queued visitState = iota
	visiting
	visited
)

// frame is one explicit-stack frame for the iterative forward DFS:
// pendingEdgeDelay caches the delay of the edge that caused this frame's
// still-open child to be pushed, so the contribution can be folded into
// runningMax once that child's computed delay is known.
type frame struct {
	id               core.VertexID
	edges            []*core.Edge
	cursor           int
	runningMax       int64
	pendingEdgeDelay int64
}

type estimator struct {
	g         *core.Graph
	reg       RegisteredSet
	state     map[core.VertexID]visitState
	computed  map[core.VertexID]int64
	cycleFlag bool
	maxPeriod int64
}

// Estimate computes the longest combinational delay between registers in
// g under the effectively-registered set reg, and whether a
// combinational cycle remains. The forward DFS traverses every edge
// (including feedback edges — a feedback wire still carries delay; only
// an effectively-registered vertex stops the accumulation) and is
// iterative via an explicit stack: real designs exceed native recursion
// depth on a single combinational chain.
//
// Complexity: O(V+E) time, O(V) space for state/computed-delay memoization.
func Estimate(g *core.Graph, reg RegisteredSet) (maxPeriod int64, cycleFlag bool) {
	e := &estimator{
		g:        g,
		reg:      reg,
		state:    make(map[core.VertexID]visitState, len(g.Vertices())),
		computed: make(map[core.VertexID]int64, len(g.Vertices())),
	}

	// First pass: registers and graph inputs are the natural DFS roots.
	for _, v := range g.Vertices() {
		if reg.EffectivelyRegistered(v) || len(g.InEdges(v.ID)) == 0 {
			e.run(v.ID)
		}
	}

	// Second pass: anything left Queued is part of a pure-cyclic subgraph
	// with no externally reachable boundary; force it through too.
	for _, v := range g.Vertices() {
		if e.state[v.ID] == queued {
			e.run(v.ID)
		}
	}

	return e.maxPeriod, e.cycleFlag
}

// run drives the explicit-stack DFS rooted at start, memoizing
// per-vertex computed delay and updating the running cycle flag and
// global max period as frames finish.
func (e *estimator) run(start core.VertexID) {
	if e.state[start] != queued {
		return
	}

	stack := []*frame{{id: start, edges: e.g.OutEdges(start)}}
	e.state[start] = visiting

	for len(stack) > 0 {
		top := stack[len(stack)-1]

		if top.cursor >= len(top.edges) {
			e.computed[top.id] = top.runningMax
			e.state[top.id] = visited
			if top.runningMax > e.maxPeriod {
				e.maxPeriod = top.runningMax
			}
			stack = stack[:len(stack)-1]

			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				contrib := parent.pendingEdgeDelay + top.runningMax
				if contrib > parent.runningMax {
					parent.runningMax = contrib
				}
			}

			continue
		}

		edge := top.edges[top.cursor]
		top.cursor++
		target := edge.Target
		tv := e.g.Vertex(target)

		if e.reg.EffectivelyRegistered(tv) {
			// A register stops the combinational accumulation, but the
			// edge's own delay (to reach the register) still counts.
			if edge.Delay > top.runningMax {
				top.runningMax = edge.Delay
			}

			continue
		}

		switch e.state[target] {
		case visited:
			contrib := edge.Delay + e.computed[target]
			if contrib > top.runningMax {
				top.runningMax = contrib
			}
		case visiting:
			// Combinational cycle: attribute 0 additional delay beyond
			// this edge to avoid infinite accumulation.
			e.cycleFlag = true
			if edge.Delay > top.runningMax {
				top.runningMax = edge.Delay
			}
		default: // queued
			top.pendingEdgeDelay = edge.Delay
			e.state[target] = visiting
			stack = append(stack, &frame{id: target, edges: e.g.OutEdges(target)})
		}
	}
}
