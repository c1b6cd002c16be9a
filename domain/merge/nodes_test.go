package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kintree/domain/core/entities"
)

func TestReconcileNodes_UnionOfKeys(t *testing.T) {
	local := map[string]*entities.PersonNode{
		"a": person("a", nil, "2023-01-01T00:00:00.000+05:30"),
		"b": person("b", strPtr("a"), "2023-01-01T00:00:00.000+05:30"),
	}
	remote := map[string]*entities.PersonNode{
		"a": person("a", nil, "2023-01-01T00:00:00.000+05:30"),
		"c": person("c", strPtr("a"), "2023-01-01T00:00:00.000+05:30"),
	}

	merged := reconcileNodes(local, remote)

	assert.Len(t, merged, 3)
	for _, id := range []string{"a", "b", "c"} {
		assert.Contains(t, merged, id)
	}
}

func TestReconcileNodes_WholeRecordWins(t *testing.T) {
	// The winner's relationship pointers supersede the loser's too
	local := map[string]*entities.PersonNode{
		"a": person("a", strPtr("p1"), "2023-01-01T00:00:00.000+05:30"),
	}
	newer := person("a", strPtr("p2"), "2023-06-01T00:00:00.000+05:30")
	remote := map[string]*entities.PersonNode{"a": newer}

	merged := reconcileNodes(local, remote)

	require.Contains(t, merged, "a")
	assert.Equal(t, "p2", *merged["a"].ParentID)
}

func TestReconcileNodes_OutputDoesNotAliasInputs(t *testing.T) {
	local := map[string]*entities.PersonNode{
		"a": person("a", nil, "2023-01-01T00:00:00.000+05:30"),
	}
	remote := map[string]*entities.PersonNode{}

	merged := reconcileNodes(local, remote)
	merged["a"].Name = strPtr("mutated")
	merged["a"].ChildrenIDs = append(merged["a"].ChildrenIDs, "x")

	assert.Equal(t, "person a", *local["a"].Name)
	assert.Empty(t, local["a"].ChildrenIDs)
}
