// File: evaluator.go
// Role: SolutionEvaluator (component C4, §4.4): patches a candidate
// Solution for sibling-group and combinational-cycle invariants, then
// scores it.
package evaluate

import (
	"github.com/ni/delaygraph/algo"
	"github.com/ni/delaygraph/core"
	"github.com/ni/delaygraph/period"
)

// Evaluator owns one evaluated Solution: the patched registered set, its
// ScoreCard, and the cycle/slack bookkeeping §4.4 defines. Construction
// performs the fixup and scoring pass; once built, the Solution is
// considered frozen.
type Evaluator struct {
	Name           string
	Graph          *core.Graph
	TargetPeriodPS int64
	Solution       *core.Solution
	Score          ScoreCard
}

// NewEvaluator runs sibling fixup, cycle repair and scoring over initial,
// mutating it in place, and returns the resulting Evaluator. The only
// failure mode is a degenerate forward-edge subgraph (see
// algo.ErrBadTopologicalSeed), which is not a data condition the evaluator
// can patch around.
func NewEvaluator(name string, g *core.Graph, initial *core.Solution, targetPeriodPS int64) (*Evaluator, error) {
	fixSiblingGroups(g, initial)

	p, cycleFlag := period.Estimate(g, initial)
	if cycleFlag {
		repairCombinationalCycles(g, initial)
		fixSiblingGroups(g, initial) // pull in siblings of repair-registered vertices (I2)
		p, cycleFlag = period.Estimate(g, initial)
	}
	initial.FoundComboCycle = cycleFlag
	initial.SlackPS = targetPeriodPS - p

	order, err := algo.TopologicalSort(g)
	if err != nil {
		return nil, err
	}

	score := ScoreCard{
		Throughput: algo.MaxCyclicThroughput(order, g, initial),
		Latency:    algo.MaxForwardLatency(order, g, initial),
		Registers:  registerCost(g, initial),
	}

	return &Evaluator{
		Name:           name,
		Graph:          g,
		TargetPeriodPS: targetPeriodPS,
		Solution:       initial,
		Score:          score,
	}, nil
}

// registerCost sums RegisterCostIfRegistered over every effectively
// registered vertex.
func registerCost(g *core.Graph, sol *core.Solution) int64 {
	var total int64
	for _, v := range g.Vertices() {
		if sol.EffectivelyRegistered(v) {
			total += v.RegisterCostIfRegistered
		}
	}

	return total
}

// fixSiblingGroups enforces I2: if any member of a sibling group is
// effectively registered, every other member of that group is registered
// too. DisallowRegister is deliberately not consulted here — the source
// grouping is assumed homogeneous, and honoring it literally means fixup
// can register an otherwise-disallowed sibling (see §9's note on this
// ambiguity; preserved as-is rather than silently changed).
func fixSiblingGroups(g *core.Graph, sol *core.Solution) {
	for _, group := range algo.SiblingGroups(g) {
		anyRegistered := false
		for _, id := range group {
			if sol.EffectivelyRegistered(g.Vertex(id)) {
				anyRegistered = true

				break
			}
		}
		if !anyRegistered {
			continue
		}
		for _, id := range group {
			if !sol.EffectivelyRegistered(g.Vertex(id)) {
				sol.Register(id)
			}
		}
	}
}

// repairCombinationalCycles implements §4.4 step 2: for each unregistered
// terminal vertex that is a plausible cycle-closing site (a
// FeedbackInputNode, or an output-terminal RightShiftRegister), find a
// feedback edge looping back into this vertex whose far end is reachable
// from this vertex over a purely forward, purely unregistered path, and
// register enough of the graph to break that specific cycle. The feedback
// edge itself runs next→v (a downstream stage feeding back into v); the
// forward path that closes the loop runs the other way, v→...→next.
func repairCombinationalCycles(g *core.Graph, sol *core.Solution) {
	for _, v := range g.Vertices() {
		if !v.IsTerminal() || sol.EffectivelyRegistered(v) {
			continue
		}
		if v.NodeType != core.FeedbackInputNode &&
			!(v.NodeType == core.RightShiftRegister && v.IsOutputTerminal) {
			continue
		}

		for _, fb := range g.FeedbackInEdges(v.ID) {
			next := g.Vertex(fb.Source)
			if sol.EffectivelyRegistered(next) {
				continue
			}
			if !closesForwardUnregisteredPath(g, sol, v.ID, fb.Source) {
				continue
			}

			if !v.DisallowRegister {
				sol.Register(v.ID)
			} else if v.NodeType == core.FeedbackInputNode {
				for _, in := range g.ForwardInEdges(v.ID) {
					source := g.Vertex(in.Source)
					if !source.DisallowRegister && !sol.EffectivelyRegistered(source) {
						sol.Register(source.ID)
					}
				}
			}

			break // one repair per vertex, per §4.4
		}
	}
}

// closesForwardUnregisteredPath reports whether to is reachable from
// from via forward edges that never pass through an effectively
// registered vertex — i.e. whether the feedback edge to->from would
// close an unbroken combinational cycle.
func closesForwardUnregisteredPath(g *core.Graph, sol *core.Solution, from, to core.VertexID) bool {
	if from == to {
		return true
	}

	visited := map[core.VertexID]bool{from: true}
	queue := []core.VertexID{from}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, e := range g.ForwardOutEdges(cur) {
			if e.Target == to {
				return true
			}
			if visited[e.Target] {
				continue
			}
			if sol.EffectivelyRegistered(g.Vertex(e.Target)) {
				continue
			}
			visited[e.Target] = true
			queue = append(queue, e.Target)
		}
	}

	return false
}
