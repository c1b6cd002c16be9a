package ports

import (
	"context"
	"time"

	"kintree/domain/core/aggregates"
)

// SnapshotInfo describes one stored snapshot blob
type SnapshotInfo struct {
	// ID locates the blob for Read
	ID string
	// Name is the blob's file name; names sort descending so the latest
	// snapshot is always first in a listing
	Name         string
	CreatedTime  time.Time
	ModifiedTime time.Time
}

// DocumentStore is the port to the passive blob store holding tree
// snapshots. The store offers no locking and no transactions; version
// history is append-only at the storage layer.
//
// This is a port in hexagonal architecture - the domain doesn't know
// about the implementation.
type DocumentStore interface {
	// List returns the snapshots in a folder ordered by name descending,
	// so List(...)[0] is the latest by the naming convention
	List(ctx context.Context, folderID string) ([]SnapshotInfo, error)

	// Read fetches one snapshot by id
	Read(ctx context.Context, id string) (*aggregates.TreeDocument, error)

	// Write creates a NEW named blob; it never overwrites an existing
	// one. Writing a name that already exists in the folder fails with a
	// conflict error.
	Write(ctx context.Context, folderID, name string, doc *aggregates.TreeDocument) (SnapshotInfo, error)
}
