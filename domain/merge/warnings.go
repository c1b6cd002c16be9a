package merge

import "fmt"

// WarningKind classifies a non-fatal structural diagnostic
type WarningKind string

const (
	// WarningDanglingParent: a node's parentId references a node that is
	// absent from the merged mapping. The node survives but is
	// unreachable from the root.
	WarningDanglingParent WarningKind = "DANGLING_PARENT"

	// WarningDanglingMarriage: a marriage member references a node that
	// is absent from the merged mapping.
	WarningDanglingMarriage WarningKind = "DANGLING_MARRIAGE"
)

// Warning is a structural diagnostic collected during a merge. Warnings
// never fail the merge; callers decide whether to surface them.
type Warning struct {
	Kind WarningKind
	// EntityID is the node or marriage the warning is about
	EntityID string
	// RefID is the missing node it references
	RefID string
}

func (w Warning) String() string {
	switch w.Kind {
	case WarningDanglingParent:
		return fmt.Sprintf("node %q has parentId %q which does not exist", w.EntityID, w.RefID)
	case WarningDanglingMarriage:
		return fmt.Sprintf("marriage %q references node %q which does not exist", w.EntityID, w.RefID)
	default:
		return fmt.Sprintf("%s: %s -> %s", w.Kind, w.EntityID, w.RefID)
	}
}

func newDanglingParentWarning(nodeID, parentID string) Warning {
	return Warning{Kind: WarningDanglingParent, EntityID: nodeID, RefID: parentID}
}

func newDanglingMarriageWarning(marriageID, nodeID string) Warning {
	return Warning{Kind: WarningDanglingMarriage, EntityID: marriageID, RefID: nodeID}
}
