package merge

import (
	"sort"

	"kintree/domain/core/entities"
)

// rebuildChildren recomputes every node's childrenIds from the
// authoritative parentId pointers. Per-node last-write-wins can leave a
// stale sibling list behind (one side reparented a node the other side
// still lists as its child); only a full rebuild restores the tree
// invariant.
//
// Children are appended in ascending nodeId so repeated merges of
// identical inputs produce identical output. A parentId referencing a
// node absent from the mapping leaves the child in place but unreachable
// from the root; that is reported as a warning, never dropped.
func rebuildChildren(nodes map[string]*entities.PersonNode) []Warning {
	ids := make([]string, 0, len(nodes))
	for id := range nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		nodes[id].ChildrenIDs = []string{}
	}

	var warnings []Warning
	for _, id := range ids {
		n := nodes[id]
		if n.ParentID == nil || *n.ParentID == "" {
			continue
		}
		parent, ok := nodes[*n.ParentID]
		if !ok {
			warnings = append(warnings, newDanglingParentWarning(id, *n.ParentID))
			continue
		}
		parent.ChildrenIDs = append(parent.ChildrenIDs, id)
	}
	return warnings
}
