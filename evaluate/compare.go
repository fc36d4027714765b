// File: compare.go
// Role: the evaluator's total order over two evaluated candidates
// (§4.4, "Comparison (is_better)"). A cycle-free solution always beats a
// cycle-carrying one; among solutions that agree on cycle-freedom, the
// ScoreCard is compared lexicographically.
package evaluate

// IsBetter reports whether a strictly beats b under the evaluator's total
// order: cycle-free dominance first, then lexicographic ScoreCard
// comparison (throughput, then latency, then registers; lower wins).
//
// Slack sign is deliberately not part of this comparison. A
// non-negative-slack preference exists as dormant, disabled logic in the
// design this engine is modeled on; the implemented behavior is
// score-only, and that is what this function reproduces (see §9).
func IsBetter(a, b *Evaluator) bool {
	aCycle := a.Solution.FoundComboCycle
	bCycle := b.Solution.FoundComboCycle

	if aCycle != bCycle {
		return !aCycle // cycle-free (aCycle==false) beats cycle-carrying
	}

	return a.Score.Less(b.Score)
}
