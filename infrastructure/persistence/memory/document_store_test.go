package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kintree/domain/core/aggregates"
	"kintree/domain/core/entities"
	pkgerrors "kintree/pkg/errors"
)

func snapshotDoc(treeID string, version int) *aggregates.TreeDocument {
	return &aggregates.TreeDocument{
		SchemaVersion: 1,
		TreeID:        treeID,
		TreeName:      "Test",
		VersionIndex:  version,
		RootNodeID:    "root",
		Nodes: map[string]*entities.PersonNode{
			"root": {NodeID: "root"},
		},
		Meta: aggregates.Meta{NodeCount: 1},
	}
}

func TestInMemoryDocumentStore_WriteThenRead(t *testing.T) {
	// Arrange
	ctx := context.Background()
	store := NewInMemoryDocumentStore()
	doc := snapshotDoc("t1", 1)

	// Act
	info, err := store.Write(ctx, "folder", "tree_v000001.json", doc)

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, info.ID)
	assert.Equal(t, "tree_v000001.json", info.Name)

	got, err := store.Read(ctx, info.ID)
	require.NoError(t, err)
	assert.Equal(t, doc, got)
}

func TestInMemoryDocumentStore_ListOrdersByNameDescending(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryDocumentStore()
	for i, name := range []string{"tree_v000002.json", "tree_v000001.json", "tree_v000003.json"} {
		_, err := store.Write(ctx, "folder", name, snapshotDoc("t1", i+1))
		require.NoError(t, err)
	}

	infos, err := store.List(ctx, "folder")

	require.NoError(t, err)
	require.Len(t, infos, 3)
	assert.Equal(t, "tree_v000003.json", infos[0].Name)
	assert.Equal(t, "tree_v000002.json", infos[1].Name)
	assert.Equal(t, "tree_v000001.json", infos[2].Name)
}

func TestInMemoryDocumentStore_WriteNeverOverwrites(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryDocumentStore()
	_, err := store.Write(ctx, "folder", "tree_v000001.json", snapshotDoc("t1", 1))
	require.NoError(t, err)

	_, err = store.Write(ctx, "folder", "tree_v000001.json", snapshotDoc("t1", 1))

	require.Error(t, err)
	assert.True(t, pkgerrors.IsConflict(err))
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeSnapshotExists))
}

func TestInMemoryDocumentStore_ReadUnknownID(t *testing.T) {
	store := NewInMemoryDocumentStore()

	_, err := store.Read(context.Background(), "no-such-id")

	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestInMemoryDocumentStore_ReadReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryDocumentStore()
	info, err := store.Write(ctx, "folder", "tree_v000001.json", snapshotDoc("t1", 1))
	require.NoError(t, err)

	first, err := store.Read(ctx, info.ID)
	require.NoError(t, err)
	first.Nodes["root"].NodeID = "tampered"
	first.TreeName = "tampered"

	second, err := store.Read(ctx, info.ID)
	require.NoError(t, err)
	assert.Equal(t, "root", second.Nodes["root"].NodeID)
	assert.Equal(t, "Test", second.TreeName)
}

func TestInMemoryDocumentStore_EmptyFolderListsEmpty(t *testing.T) {
	store := NewInMemoryDocumentStore()

	infos, err := store.List(context.Background(), "missing-folder")

	require.NoError(t, err)
	assert.Empty(t, infos)
}
