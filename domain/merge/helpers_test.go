package merge

import (
	"time"

	"kintree/domain/core/aggregates"
	"kintree/domain/core/entities"
)

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time { return c.t }

func strPtr(s string) *string { return &s }

func person(id string, parentID *string, editedTime string) *entities.PersonNode {
	n := &entities.PersonNode{
		NodeID:      id,
		Name:        strPtr("person " + id),
		ParentID:    parentID,
		SpouseIDs:   []string{},
		ChildrenIDs: []string{},
	}
	if editedTime != "" {
		n.EditedTime = strPtr(editedTime)
		n.EditedBy = strPtr("tester")
	}
	return n
}

func doc(treeID, rootID string, nodes ...*entities.PersonNode) *aggregates.TreeDocument {
	m := make(map[string]*entities.PersonNode, len(nodes))
	for _, n := range nodes {
		m[n.NodeID] = n
	}
	return &aggregates.TreeDocument{
		SchemaVersion: 1,
		TreeID:        treeID,
		TreeName:      "Test Tree",
		VersionIndex:  1,
		Timestamp:     "2023-01-01T00:00:00.000+05:30",
		RootNodeID:    rootID,
		Nodes:         m,
		Marriages:     []entities.Marriage{},
		Summary:       []entities.ChangeLog{},
		Meta: aggregates.Meta{
			CreatedBy:   "tester",
			CreatedTime: "2023-01-01T00:00:00.000+05:30",
			NodeCount:   len(m),
		},
	}
}

// rootedDoc builds a doc where every non-root node hangs off the root,
// with childrenIds already consistent (ascending id order)
func rootedDoc(treeID string, childIDs ...string) *aggregates.TreeDocument {
	root := person("root", nil, "2023-01-01T00:00:00.000+05:30")
	nodes := []*entities.PersonNode{root}
	for _, id := range childIDs {
		nodes = append(nodes, person(id, strPtr("root"), "2023-01-01T00:00:00.000+05:30"))
		root.ChildrenIDs = append(root.ChildrenIDs, id)
	}
	return doc(treeID, "root", nodes...)
}
