package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"kintree/application/ports"
	"kintree/domain/core/aggregates"
	"kintree/domain/merge"
	pkgerrors "kintree/pkg/errors"
)

// DefaultMaxAttempts bounds the re-fetch-and-re-merge loop when other
// clients write into the same window
const DefaultMaxAttempts = 3

// SyncService reconciles a locally edited snapshot with the shared blob
// store. The store gives no transactional guarantee, so publishing
// follows an optimistic discipline: merge against the latest remote
// snapshot, write the result as a new blob, and on a write conflict
// re-fetch and re-merge.
type SyncService struct {
	store       ports.DocumentStore
	engine      *merge.Engine
	folderID    string
	maxAttempts int
	logger      *zap.Logger
}

// NewSyncService creates a sync service for one snapshot folder
func NewSyncService(
	store ports.DocumentStore,
	engine *merge.Engine,
	folderID string,
	logger *zap.Logger,
) *SyncService {
	return &SyncService{
		store:       store,
		engine:      engine,
		folderID:    folderID,
		maxAttempts: DefaultMaxAttempts,
		logger:      logger,
	}
}

// SetMaxAttempts overrides the publish retry bound
func (s *SyncService) SetMaxAttempts(n int) {
	if n > 0 {
		s.maxAttempts = n
	}
}

// LoadLatest fetches the most recent remote snapshot, or a not-found
// error when the folder is empty
func (s *SyncService) LoadLatest(ctx context.Context) (*aggregates.TreeDocument, *ports.SnapshotInfo, error) {
	infos, err := s.store.List(ctx, s.folderID)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(err, "listing snapshots")
	}
	if len(infos) == 0 {
		return nil, nil, pkgerrors.NewNotFoundError("snapshot")
	}

	latest := infos[0]
	doc, err := s.store.Read(ctx, latest.ID)
	if err != nil {
		return nil, nil, pkgerrors.Wrapf(err, "reading snapshot %s", latest.Name)
	}
	return doc, &latest, nil
}

// Publish merges a locally edited snapshot with the latest remote one
// and writes the result as a new blob. When the folder is empty the
// local snapshot is written as-is. Returns the merge result when a
// merge ran, nil when the local snapshot was published unmerged.
func (s *SyncService) Publish(ctx context.Context, local *aggregates.TreeDocument) (*merge.Result, ports.SnapshotInfo, error) {
	if err := local.Validate(); err != nil {
		return nil, ports.SnapshotInfo{}, err
	}

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		result, info, err := s.publishOnce(ctx, local)
		if err == nil {
			return result, info, nil
		}
		if !pkgerrors.IsConflict(err) || pkgerrors.IsTreeMismatch(err) {
			return nil, ports.SnapshotInfo{}, err
		}
		// Another client wrote in the window; re-fetch and re-merge
		s.logger.Warn("snapshot write conflicted, retrying",
			zap.String("treeId", local.TreeID),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
	}
	return nil, ports.SnapshotInfo{}, pkgerrors.NewConflictError(
		fmt.Sprintf("could not publish snapshot for tree %q after %d attempts", local.TreeID, s.maxAttempts),
	)
}

func (s *SyncService) publishOnce(ctx context.Context, local *aggregates.TreeDocument) (*merge.Result, ports.SnapshotInfo, error) {
	remote, latest, err := s.LoadLatest(ctx)
	if err != nil && !pkgerrors.IsNotFound(err) {
		return nil, ports.SnapshotInfo{}, err
	}

	// Empty folder: nothing to merge with, publish local directly
	if remote == nil {
		info, err := s.store.Write(ctx, s.folderID, SnapshotName(local.TreeName, local.VersionIndex), local)
		if err != nil {
			return nil, ports.SnapshotInfo{}, err
		}
		s.logger.Info("published initial snapshot",
			zap.String("treeId", local.TreeID),
			zap.String("name", info.Name),
			zap.Int("nodeCount", local.Meta.NodeCount),
		)
		return nil, info, nil
	}

	result, err := s.engine.Merge(local, remote)
	if err != nil {
		return nil, ports.SnapshotInfo{}, err
	}
	for _, w := range result.Warnings {
		s.logger.Warn("structural diagnostic after merge",
			zap.String("treeId", local.TreeID),
			zap.String("kind", string(w.Kind)),
			zap.String("detail", w.String()),
		)
	}

	merged := result.Document
	info, err := s.store.Write(ctx, s.folderID, SnapshotName(merged.TreeName, merged.VersionIndex), merged)
	if err != nil {
		return nil, ports.SnapshotInfo{}, err
	}

	s.logger.Info("published merged snapshot",
		zap.String("treeId", merged.TreeID),
		zap.String("name", info.Name),
		zap.String("mergedWith", latest.Name),
		zap.Int("versionIndex", merged.VersionIndex),
		zap.Int("nodeCount", merged.Meta.NodeCount),
		zap.Int("warnings", len(result.Warnings)),
		zap.Bool("localSuperset", result.LocalSuperset),
		zap.Bool("remoteSuperset", result.RemoteSuperset),
	)
	return result, info, nil
}

// SnapshotName renders the blob name for a snapshot. Zero-padding keeps
// lexicographic name order aligned with version order, which the
// name-descending listing convention depends on.
func SnapshotName(treeName string, versionIndex int) string {
	name := strings.ToLower(strings.TrimSpace(treeName))
	name = strings.ReplaceAll(name, " ", "_")
	if name == "" {
		name = "tree"
	}
	return fmt.Sprintf("%s_v%06d.json", name, versionIndex)
}
