// Package assign defines the shared contract implemented by the ASAP
// (asap.Assigner) and Greedy (greedy.Assigner) register-placement
// strategies, and the driver that runs an arbitrary Assigner through the
// evaluator to produce a scored result (§6, "Solve").
package assign

import (
	"github.com/ni/delaygraph/core"
	"github.com/ni/delaygraph/evaluate"
)

// Assigner produces an initial candidate Solution for g under a target
// clock period. The returned Solution need not already satisfy the
// sibling-group or cycle-free invariants — Solve runs it through the
// evaluator's fixup pass before scoring.
type Assigner interface {
	Assign(g *core.Graph, targetPeriodPS int64) *core.Solution
}

// Solve runs assigner over g, evaluates the result and returns the
// patched Solution, its ScoreCard, whether a combinational cycle
// survived repair, and the resulting slack in picoseconds (may be
// negative).
func Solve(g *core.Graph, targetPeriodPS int64, assigner Assigner) (*core.Solution, evaluate.ScoreCard, bool, int64, error) {
	g.PruneParallelEdges() // §4.1: applied once before solving

	candidate := assigner.Assign(g, targetPeriodPS)

	ev, err := evaluate.NewEvaluator("", g, candidate, targetPeriodPS)
	if err != nil {
		return nil, evaluate.ScoreCard{}, false, 0, err
	}

	return ev.Solution, ev.Score, ev.Solution.FoundComboCycle, ev.Solution.SlackPS, nil
}
