package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kintree/domain/core/entities"
)

func entry(by, at, changes string) entities.ChangeLog {
	return entities.ChangeLog{EditedBy: by, EditedTime: at, Changes: changes}
}

func TestReconcileChangelog_OrdersNewestFirst(t *testing.T) {
	// Arrange
	local := []entities.ChangeLog{
		entry("u1", "2020-03-01T00:00:00+05:30", "third"),
		entry("u1", "2020-01-01T00:00:00+05:30", "first"),
	}
	remote := []entities.ChangeLog{
		entry("u2", "2020-02-01T00:00:00+05:30", "second"),
		entry("u2", "2020-04-01T00:00:00+05:30", "fourth"),
	}

	// Act
	merged := reconcileChangelog(local, remote)

	// Assert
	require.Len(t, merged, 4)
	assert.Equal(t, "fourth", merged[0].Changes)
	assert.Equal(t, "third", merged[1].Changes)
	assert.Equal(t, "second", merged[2].Changes)
	assert.Equal(t, "first", merged[3].Changes)
}

func TestReconcileChangelog_DedupesExactRepeats(t *testing.T) {
	shared := entry("u1", "2020-01-01T00:00:00+05:30", "shared edit")
	local := []entities.ChangeLog{shared}
	remote := []entities.ChangeLog{shared, entry("u2", "2021-01-01T00:00:00+05:30", "later edit")}

	merged := reconcileChangelog(local, remote)

	require.Len(t, merged, 2)
	assert.Equal(t, "u2", merged[0].EditedBy)
	assert.Equal(t, "u1", merged[1].EditedBy)
}

func TestReconcileChangelog_SameTimeDifferentEditorsBothKept(t *testing.T) {
	at := "2020-01-01T00:00:00+05:30"
	local := []entities.ChangeLog{entry("u1", at, "from u1")}
	remote := []entities.ChangeLog{entry("u2", at, "from u2")}

	merged := reconcileChangelog(local, remote)

	require.Len(t, merged, 2)
	// Tie order is stable: concatenation order, local first
	assert.Equal(t, "u1", merged[0].EditedBy)
	assert.Equal(t, "u2", merged[1].EditedBy)
}

func TestReconcileChangelog_DeterministicForIdenticalInputs(t *testing.T) {
	local := []entities.ChangeLog{
		entry("u1", "2020-01-01T00:00:00+05:30", "a"),
		entry("u2", "2020-01-01T00:00:00+05:30", "b"),
		entry("u3", "2019-01-01T00:00:00+05:30", "c"),
	}
	remote := []entities.ChangeLog{
		entry("u4", "2020-01-01T00:00:00+05:30", "d"),
	}

	first := reconcileChangelog(local, remote)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, reconcileChangelog(local, remote))
	}
}

func TestReconcileChangelog_MalformedTimestampsSortLast(t *testing.T) {
	local := []entities.ChangeLog{entry("u1", "not-a-time", "broken stamp")}
	remote := []entities.ChangeLog{entry("u2", "2020-01-01T00:00:00+05:30", "good stamp")}

	merged := reconcileChangelog(local, remote)

	require.Len(t, merged, 2)
	assert.Equal(t, "good stamp", merged[0].Changes)
	assert.Equal(t, "broken stamp", merged[1].Changes)
}
