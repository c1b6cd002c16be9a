package aggregates

import (
	"sort"

	"kintree/domain/core/entities"
	pkgerrors "kintree/pkg/errors"
	"kintree/pkg/utils"
)

// Meta carries snapshot provenance. NodeCount must always equal the
// size of the nodes mapping.
type Meta struct {
	CreatedBy   string `json:"createdBy"`
	CreatedTime string `json:"createdTime"`
	NodeCount   int    `json:"nodeCount"`
}

// TreeDocument is the unit of persistence and merge: one immutable,
// fully-materialized snapshot of a family tree. A new snapshot is
// produced either by a local edit or by the merge engine; existing
// snapshots are never mutated in place.
type TreeDocument struct {
	SchemaVersion int                             `json:"schemaVersion"`
	TreeID        string                          `json:"treeId" validate:"required"`
	TreeName      string                          `json:"treeName"`
	VersionIndex  int                             `json:"versionIndex"`
	Timestamp     string                          `json:"timestamp"`
	RootNodeID    string                          `json:"rootNodeId" validate:"required"`
	Nodes         map[string]*entities.PersonNode `json:"nodes" validate:"required"`
	Marriages     []entities.Marriage             `json:"marriages"`
	Summary       []entities.ChangeLog            `json:"summary"` // newest-first
	Meta          Meta                            `json:"meta"`
}

// Validate rejects a document missing required structural fields
func (d *TreeDocument) Validate() error {
	if d == nil {
		return pkgerrors.NewMalformedDocumentError("document is nil")
	}
	if err := utils.ValidateStruct(d); err != nil {
		return pkgerrors.NewMalformedDocumentError(err.Error())
	}
	return nil
}

// NodeIDs returns every node id in ascending order
func (d *TreeDocument) NodeIDs() []string {
	ids := make([]string, 0, len(d.Nodes))
	for id := range d.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// HasNode reports whether a node id exists in this snapshot
func (d *TreeDocument) HasNode(id string) bool {
	_, ok := d.Nodes[id]
	return ok
}

// Clone returns a deep copy of the snapshot
func (d *TreeDocument) Clone() *TreeDocument {
	if d == nil {
		return nil
	}
	c := *d
	c.Nodes = make(map[string]*entities.PersonNode, len(d.Nodes))
	for id, n := range d.Nodes {
		c.Nodes[id] = n.Clone()
	}
	if d.Marriages != nil {
		c.Marriages = make([]entities.Marriage, len(d.Marriages))
		copy(c.Marriages, d.Marriages)
	}
	if d.Summary != nil {
		c.Summary = make([]entities.ChangeLog, len(d.Summary))
		copy(c.Summary, d.Summary)
	}
	return &c
}
