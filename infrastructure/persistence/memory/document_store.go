package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"kintree/application/ports"
	"kintree/domain/core/aggregates"
	pkgerrors "kintree/pkg/errors"
)

// InMemoryDocumentStore provides an in-memory implementation of the
// DocumentStore port with the same append-only semantics as the real
// blob store. Used by tests and local runs.
type InMemoryDocumentStore struct {
	mu      sync.RWMutex
	folders map[string]map[string]*snapshot // folderID -> name -> snapshot
}

type snapshot struct {
	info ports.SnapshotInfo
	doc  *aggregates.TreeDocument
}

// NewInMemoryDocumentStore creates an empty in-memory store
func NewInMemoryDocumentStore() *InMemoryDocumentStore {
	return &InMemoryDocumentStore{
		folders: make(map[string]map[string]*snapshot),
	}
}

// List returns the snapshots in a folder ordered by name descending
func (s *InMemoryDocumentStore) List(ctx context.Context, folderID string) ([]ports.SnapshotInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	folder := s.folders[folderID]
	infos := make([]ports.SnapshotInfo, 0, len(folder))
	for _, snap := range folder {
		infos = append(infos, snap.info)
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name > infos[j].Name
	})
	return infos, nil
}

// Read fetches one snapshot by id
func (s *InMemoryDocumentStore) Read(ctx context.Context, id string) (*aggregates.TreeDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, folder := range s.folders {
		for _, snap := range folder {
			if snap.info.ID == id {
				// Deep copy so callers cannot mutate stored state
				return snap.doc.Clone(), nil
			}
		}
	}
	return nil, pkgerrors.NewNotFoundError(fmt.Sprintf("snapshot %q", id))
}

// Write creates a new snapshot; an existing name in the folder conflicts
func (s *InMemoryDocumentStore) Write(ctx context.Context, folderID, name string, doc *aggregates.TreeDocument) (ports.SnapshotInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	folder, ok := s.folders[folderID]
	if !ok {
		folder = make(map[string]*snapshot)
		s.folders[folderID] = folder
	}
	if _, exists := folder[name]; exists {
		return ports.SnapshotInfo{}, pkgerrors.NewConflictError(
			fmt.Sprintf("snapshot %q already exists in folder %q", name, folderID),
		).WithCode(pkgerrors.CodeSnapshotExists)
	}

	now := time.Now().UTC()
	info := ports.SnapshotInfo{
		ID:           uuid.New().String(),
		Name:         name,
		CreatedTime:  now,
		ModifiedTime: now,
	}
	folder[name] = &snapshot{info: info, doc: doc.Clone()}
	return info, nil
}
