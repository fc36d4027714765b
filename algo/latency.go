// File: latency.go
// Role: maximum forward latency (component C2, §4.2.4). A simpler
// wavefront than MaxCyclicThroughput: one scalar cost per vertex rather
// than a per-origin map, since latency does not need to be attributed
// back to a cycle origin.
package algo

import "github.com/ni/delaygraph/core"

// MaxForwardLatency returns the maximum accrued latency-cost sum over any
// forward path ending at a sink (a vertex with no forward out-edges),
// given a forward-only topological order and the final effectively-
// registered set.
//
// Complexity: O(V+E) time, O(V) space.
func MaxForwardLatency(order []core.VertexID, g *core.Graph, reg RegisteredSet) int64 {
	cost := make(map[core.VertexID]int64, len(order))
	var maxLatency int64

	for _, vid := range order {
		v := g.Vertex(vid)

		var maxIn int64
		for _, e := range g.ForwardInEdges(vid) {
			if c := cost[e.Source]; c > maxIn {
				maxIn = c
			}
		}

		myCost := maxIn
		if reg.EffectivelyRegistered(v) {
			myCost += v.LatencyCostIfRegistered
		}
		cost[vid] = myCost

		if len(g.ForwardOutEdges(vid)) == 0 && myCost > maxLatency {
			maxLatency = myCost
		}
	}

	return maxLatency
}
