package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kintree/domain/core/entities"
)

func TestRebuildChildren_FromParentPointers(t *testing.T) {
	// Arrange: stale children lists that disagree with parent pointers
	nodes := map[string]*entities.PersonNode{
		"root": person("root", nil, ""),
		"a":    person("a", strPtr("root"), ""),
		"b":    person("b", strPtr("root"), ""),
		"c":    person("c", strPtr("a"), ""),
	}
	nodes["root"].ChildrenIDs = []string{"a", "b", "c"} // c was reparented
	nodes["b"].ChildrenIDs = []string{"stale"}

	// Act
	warnings := rebuildChildren(nodes)

	// Assert
	assert.Empty(t, warnings)
	assert.Equal(t, []string{"a", "b"}, nodes["root"].ChildrenIDs)
	assert.Equal(t, []string{"c"}, nodes["a"].ChildrenIDs)
	assert.Equal(t, []string{}, nodes["b"].ChildrenIDs)
	assert.Equal(t, []string{}, nodes["c"].ChildrenIDs)
}

func TestRebuildChildren_AscendingOrderIsDeterministic(t *testing.T) {
	build := func() map[string]*entities.PersonNode {
		return map[string]*entities.PersonNode{
			"root": person("root", nil, ""),
			"z":    person("z", strPtr("root"), ""),
			"m":    person("m", strPtr("root"), ""),
			"a":    person("a", strPtr("root"), ""),
		}
	}

	for i := 0; i < 10; i++ {
		nodes := build()
		rebuildChildren(nodes)
		require.Equal(t, []string{"a", "m", "z"}, nodes["root"].ChildrenIDs)
	}
}

func TestRebuildChildren_DanglingParentReported(t *testing.T) {
	// Arrange
	nodes := map[string]*entities.PersonNode{
		"root":   person("root", nil, ""),
		"orphan": person("orphan", strPtr("gone"), ""),
	}

	// Act
	warnings := rebuildChildren(nodes)

	// Assert: the node stays, the condition is surfaced
	require.Len(t, warnings, 1)
	assert.Equal(t, WarningDanglingParent, warnings[0].Kind)
	assert.Equal(t, "orphan", warnings[0].EntityID)
	assert.Equal(t, "gone", warnings[0].RefID)
	assert.Contains(t, nodes, "orphan")
}

func TestRebuildChildren_EmptyParentIDTreatedAsRoot(t *testing.T) {
	nodes := map[string]*entities.PersonNode{
		"root": person("root", strPtr(""), ""),
	}

	warnings := rebuildChildren(nodes)

	assert.Empty(t, warnings)
	assert.Equal(t, []string{}, nodes["root"].ChildrenIDs)
}
