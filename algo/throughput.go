// File: throughput.go
// Role: maximum cyclic throughput cost (component C2, §4.2.3). Computes,
// over every cycle that closes through a feedback edge, the sum of
// throughput-cost contributions of effectively-registered vertices on the
// cycle's combinational path, and returns the maximum such sum.
package algo

import "github.com/ni/delaygraph/core"

// RegisteredSet reports whether a vertex is effectively registered. A
// *core.Solution satisfies this directly.
type RegisteredSet interface {
	EffectivelyRegistered(v *core.Vertex) bool
}

// wavefrontEntry is one vertex's row in the throughput wavefront table:
// per-origin accrued cost, plus a reference count equal to the number of
// forward successors still expected to read it. When the count reaches
// zero the entry is dropped, bounding peak memory to the current
// topological-sort frontier instead of O(V²).
type wavefrontEntry struct {
	data     map[core.VertexID]int64
	refCount int
}

// MaxCyclicThroughput returns the largest throughput-cost sum found over
// any cycle that closes through a feedback edge, given a forward-only
// topological order and the final effectively-registered set.
//
// Complexity: O((V+E)×F) time, where F is the number of cycle origins
// tracked (each forward in-edge merges its source's per-origin map);
// space bounded by the live wavefront frontier.
func MaxCyclicThroughput(order []core.VertexID, g *core.Graph, reg RegisteredSet) int64 {
	table := make(map[core.VertexID]*wavefrontEntry, len(order))
	var maxCycleCost int64

	for _, vid := range order {
		v := g.Vertex(vid)
		myData := make(map[core.VertexID]int64)

		// 1. Merge predecessors' dictionaries, taking the max cost per origin.
		for _, e := range g.ForwardInEdges(vid) {
			entry, ok := table[e.Source]
			if !ok {
				continue
			}
			for origin, cost := range entry.data {
				if cur, exists := myData[origin]; !exists || cost > cur {
					myData[origin] = cost
				}
			}
			entry.refCount--
			if entry.refCount <= 0 {
				delete(table, e.Source)
			}
		}

		// 2. If v is effectively registered, add its throughput cost to
		// every path currently flowing through it.
		var c int64
		if reg.EffectivelyRegistered(v) {
			c = v.ThroughputCostIfRegistered
			for origin := range myData {
				myData[origin] += c
			}
		}

		// 3. A vertex with feedback-in edges is a cycle origin: make sure
		// it tracks its own path, seeded at its own registration cost.
		if len(g.FeedbackInEdges(vid)) > 0 {
			if _, exists := myData[vid]; !exists {
				myData[vid] = c
			}
		}

		// 4. Close any cycle whose feedback edge returns to a tracked origin.
		for _, e := range g.FeedbackOutEdges(vid) {
			if cost, ok := myData[e.Target]; ok && cost > maxCycleCost {
				maxCycleCost = cost
			}
		}

		table[vid] = &wavefrontEntry{data: myData, refCount: len(g.ForwardOutEdges(vid))}
	}

	return maxCycleCost
}
