// Package merge reconciles two independently-evolved snapshots of the
// same tree document into one consistent snapshot. It is a pure,
// synchronous computation: no I/O, no shared state, deterministic apart
// from the output timestamp.
package merge

import (
	"kintree/domain/core/aggregates"
	"kintree/domain/core/valueobjects"
	pkgerrors "kintree/pkg/errors"
)

// Result is the outcome of a merge: the new snapshot plus any non-fatal
// structural diagnostics, and the node-id-set relation between the two
// inputs (telemetry only; it never influences the merged document).
type Result struct {
	Document *aggregates.TreeDocument
	Warnings []Warning

	// LocalSuperset reports whether every remote node id was already
	// present locally; RemoteSuperset the converse. Both true means the
	// id sets were equal.
	LocalSuperset  bool
	RemoteSuperset bool
}

// Engine merges pairs of tree document snapshots
type Engine struct {
	stamper valueobjects.Stamper
}

// NewEngine creates a merge engine. The clock is only used to stamp
// merged snapshots; pass nil for the system clock.
func NewEngine(clock valueobjects.Clock) *Engine {
	return &Engine{stamper: valueobjects.NewStamper(clock)}
}

// Merge reconciles local and remote into a new snapshot.
//
// Both inputs must be structurally well-formed and belong to the same
// tree; violations fail the whole call with a typed error and no
// output. Neither input is mutated. Every node present on either side
// survives; no component of the result aliases the inputs.
//
// Fields that are not merge targets (schemaVersion, treeName,
// rootNodeId, meta provenance) are carried from local, an arbitrary but
// fixed choice of base side.
func (e *Engine) Merge(local, remote *aggregates.TreeDocument) (*Result, error) {
	if err := local.Validate(); err != nil {
		return nil, pkgerrors.Wrap(err, "local document")
	}
	if err := remote.Validate(); err != nil {
		return nil, pkgerrors.Wrap(err, "remote document")
	}
	if local.TreeID != remote.TreeID {
		return nil, pkgerrors.NewTreeMismatchError(local.TreeID, remote.TreeID)
	}

	localSuperset, remoteSuperset := compareNodeSets(local, remote)

	nodes := reconcileNodes(local.Nodes, remote.Nodes)
	warnings := rebuildChildren(nodes)

	marriages := reconcileMarriages(local.Marriages, remote.Marriages)
	warnings = append(warnings, checkMarriageEndpoints(marriages, nodes)...)

	summary := reconcileChangelog(local.Summary, remote.Summary)

	doc := &aggregates.TreeDocument{
		SchemaVersion: local.SchemaVersion,
		TreeID:        local.TreeID,
		TreeName:      local.TreeName,
		VersionIndex:  maxInt(local.VersionIndex, remote.VersionIndex) + 1,
		Timestamp:     e.stamper.Stamp(),
		RootNodeID:    local.RootNodeID,
		Nodes:         nodes,
		Marriages:     marriages,
		Summary:       summary,
		Meta: aggregates.Meta{
			CreatedBy:   local.Meta.CreatedBy,
			CreatedTime: local.Meta.CreatedTime,
			NodeCount:   len(nodes),
		},
	}

	return &Result{
		Document:       doc,
		Warnings:       warnings,
		LocalSuperset:  localSuperset,
		RemoteSuperset: remoteSuperset,
	}, nil
}

// compareNodeSets reports whether either side's node-id set contains
// the other's. Supersetness says nothing about which side holds the
// latest edits, so the full reconciliation always runs regardless.
func compareNodeSets(local, remote *aggregates.TreeDocument) (localSuperset, remoteSuperset bool) {
	localSuperset = true
	for id := range remote.Nodes {
		if !local.HasNode(id) {
			localSuperset = false
			break
		}
	}
	remoteSuperset = true
	for id := range local.Nodes {
		if !remote.HasNode(id) {
			remoteSuperset = false
			break
		}
	}
	return localSuperset, remoteSuperset
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
