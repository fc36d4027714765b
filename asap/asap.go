// Package asap implements the ASAP latency assigner (component C5,
// §4.5): a forward sweep that registers a vertex as soon as either its
// local combinational pressure would exceed the target period, or a
// downstream vertex's registration cost strictly dominates its own
// (a greedy, as-soon-as-possible heuristic — hence the name).
//
// The sweep runs twice over the graph's insertion order. A single pass
// can leave a vertex's upstream delay undetermined when that upstream
// neighbor is only reachable through a feedback path processed later in
// the same pass; the second pass lets those values settle. This is a
// deliberate fixpoint approximation, not a guaranteed-convergent
// algorithm — its results are best-effort on graphs with feedback, per
// the design this engine is modeled on.
package asap

import "github.com/ni/delaygraph/core"

// Assigner implements assign.Assigner.
type Assigner struct{}

// Assign runs the two-pass ASAP sweep over g and returns the resulting
// Solution. Initially-registered vertices are left untouched; every
// other vertex is registered or not based on the §4.5 step-5 decision.
//
// Complexity: O(V+E) time per pass, two passes, O(V) auxiliary space for
// the delay map.
func (Assigner) Assign(g *core.Graph, targetPeriodPS int64) *core.Solution {
	sol := core.NewSolution(g)
	delay := make(map[core.VertexID]int64, len(g.Vertices()))

	for _, v := range g.Vertices() {
		if v.IsRegistered {
			delay[v.ID] = 0
		}
	}

	for pass := 0; pass < 2; pass++ {
		for _, v := range g.Vertices() {
			if v.IsRegistered {
				continue
			}

			maxDelayIn := maxIncomingDelay(g, delay, v.ID)
			maxDelayOut := maxOutgoingEdgeDelay(g, v.ID)
			maxThroughputOut, maxLatencyOut, maxRegisterOut := maxDownstreamCosts(g, v.ID)

			timingPressure := maxDelayIn+maxDelayOut > targetPeriodPS
			costPressure := maxDelayIn > 0 && dominatesDownstream(v, maxThroughputOut, maxLatencyOut, maxRegisterOut)

			if timingPressure || costPressure {
				delay[v.ID] = 0
				sol.Register(v.ID)
			} else {
				delay[v.ID] = maxDelayIn
				sol.Unregister(v.ID)
			}
		}
	}

	return sol
}

func maxIncomingDelay(g *core.Graph, delay map[core.VertexID]int64, v core.VertexID) int64 {
	var max int64
	for _, e := range g.InEdges(v) {
		if d := e.Delay + delay[e.Source]; d > max {
			max = d
		}
	}

	return max
}

func maxOutgoingEdgeDelay(g *core.Graph, v core.VertexID) int64 {
	var max int64
	for _, e := range g.OutEdges(v) {
		if e.Delay > max {
			max = e.Delay
		}
	}

	return max
}

func maxDownstreamCosts(g *core.Graph, v core.VertexID) (throughput, latency, register int64) {
	for _, e := range g.OutEdges(v) {
		t := g.Vertex(e.Target)
		if t.ThroughputCostIfRegistered > throughput {
			throughput = t.ThroughputCostIfRegistered
		}
		if t.LatencyCostIfRegistered > latency {
			latency = t.LatencyCostIfRegistered
		}
		if t.RegisterCostIfRegistered > register {
			register = t.RegisterCostIfRegistered
		}
	}

	return throughput, latency, register
}

// dominatesDownstream implements §4.5 step 5's lexicographic condition:
// throughput first, latency as a tiebreak, then register count.
func dominatesDownstream(v *core.Vertex, maxThroughputOut, maxLatencyOut, maxRegisterOut int64) bool {
	if maxThroughputOut != v.ThroughputCostIfRegistered {
		return maxThroughputOut > v.ThroughputCostIfRegistered
	}
	if maxLatencyOut != v.LatencyCostIfRegistered {
		return maxLatencyOut > v.LatencyCostIfRegistered
	}

	return maxRegisterOut > v.RegisterCostIfRegistered
}
