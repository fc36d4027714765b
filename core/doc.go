// Package core defines the DelayGraph data model shared by every other
// package in this module: Vertex, Edge, NodeType, Graph and Solution.
//
// What:
//
//   - Graph: an insertion-order-stable, append-mostly container of Vertex
//     and Edge, with forward/feedback adjacency queries and a parallel-edge
//     pruning pass.
//   - Vertex: a synthesis-node-derived graph node carrying register-cost
//     fields and the flags (IsRegistered, DisallowRegister, terminal
//     direction, NodeUniqueID) that drive sibling-group and cycle-repair
//     logic downstream.
//   - Edge: a directed, delay-carrying connection, optionally marked as a
//     feedback (back-)edge.
//   - Solution: the registered-terminal set a latency assigner produces,
//     plus the cycle/slack bookkeeping the evaluator attaches.
//
// Why:
//
//   - Centralizing the data model lets algo, period, evaluate, asap and
//     greedy all operate on the same stable-ordered structure without
//     re-deriving iteration order (map iteration in Go is randomized;
//     several algorithms' tie-breaking is order-dependent, so this package
//     is the one place that guarantees insertion order end to end).
//
// Complexity:
//
//   - AddVertex, HasVertex, Vertex: O(1)
//   - AddEdge, OutEdges, InEdges: O(1) amortized append / O(deg(v)) to read
//   - PruneParallelEdges: O(E) time plus O(E) per removed edge, O(E)
//     auxiliary space
//
// Concurrency:
//
//   - No internal locking. A Graph (and any Solution built over it) is
//     owned and mutated by a single goroutine per solve; independent
//     solves over independent Graph instances require no coordination.
package core
