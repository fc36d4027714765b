// Package evaluate implements the SolutionEvaluator (component C4): given
// a graph, a candidate registered-terminal set and a target clock period,
// it patches the set for sibling-group (I2) and combinational-cycle (I3)
// invariants, scores the result with a three-tier ScoreCard, and exposes
// a total order (IsBetter) for arbitrating between candidate solutions.
//
// Why a patch-then-score pipeline rather than separate passes the caller
// must sequence themselves: the fixup steps are not independent of each
// other's output (cycle repair can register vertices a sibling group then
// needs to pull in), so NewEvaluator sequences them itself — sibling
// fixup, cycle repair, then sibling fixup again for whatever repair
// registered — and returns a result that is safe to compare directly
// with IsBetter.
package evaluate
