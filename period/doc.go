// Package period implements the PeriodEstimator (component C3): the
// longest combinational path between registers, including graph inputs
// and outputs as implicit register boundaries, plus a cycle flag.
//
// Like algo's TopologicalSort and TarjanSCC, the forward DFS here is
// iterative with an explicit stack — real HLS graphs exceed native
// recursion depth on a single combinational chain.
package period
