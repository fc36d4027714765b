// File: siblings.go
// Role: vertex-group discovery for sibling-group fixup (component C2,
// §4.2.5). Partitions non-initially-registered vertices by
// (NodeUniqueID, IsInputTerminal); groups of size >= 2 with a valid
// (non-negative) NodeUniqueID are kept.
package algo

import "github.com/ni/delaygraph/core"

// siblingKey groups vertices that must be registered together.
type siblingKey struct {
	nodeUniqueID    int
	isInputTerminal bool
}

// SiblingGroups returns every group of >= 2 non-initially-registered
// vertices sharing (NodeUniqueID, IsInputTerminal), with NodeUniqueID >= 0.
// Group members are listed in the graph's insertion order; groups are
// returned ordered by each group's first member's insertion position, so
// the result is deterministic.
//
// Complexity: O(V) time and space.
func SiblingGroups(g *core.Graph) [][]core.VertexID {
	order := make([]siblingKey, 0)
	seen := make(map[siblingKey]int) // key -> index into groups/order
	groups := make([][]core.VertexID, 0)

	for _, v := range g.Vertices() {
		if v.IsRegistered {
			continue
		}
		if v.NodeUniqueID < 0 {
			continue
		}

		key := siblingKey{nodeUniqueID: v.NodeUniqueID, isInputTerminal: v.IsInputTerminal}
		idx, ok := seen[key]
		if !ok {
			idx = len(groups)
			seen[key] = idx
			groups = append(groups, nil)
			order = append(order, key)
		}
		groups[idx] = append(groups[idx], v.ID)
	}

	out := make([][]core.VertexID, 0, len(groups))
	for _, grp := range groups {
		if len(grp) >= 2 {
			out = append(out, grp)
		}
	}

	return out
}
