package merge

import (
	"sort"

	"kintree/domain/core/entities"
	"kintree/domain/core/valueobjects"
)

// reconcileChangelog merges two append-only change-history lists:
// concatenate, drop exact repeats (same editedTime and editedBy, first
// occurrence kept), and order newest-first. Entries sharing a timestamp
// but written by different editors are both kept; ties keep their
// concatenation order, so identical inputs always produce identical
// output.
func reconcileChangelog(local, remote []entities.ChangeLog) []entities.ChangeLog {
	merged := make([]entities.ChangeLog, 0, len(local)+len(remote))
	seen := make(map[changeKey]bool, len(local)+len(remote))

	for _, entry := range local {
		key := changeKey{editedTime: entry.EditedTime, editedBy: entry.EditedBy}
		if seen[key] {
			continue
		}
		seen[key] = true
		merged = append(merged, entry)
	}
	for _, entry := range remote {
		key := changeKey{editedTime: entry.EditedTime, editedBy: entry.EditedBy}
		if seen[key] {
			continue
		}
		seen[key] = true
		merged = append(merged, entry)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		ti := valueobjects.ParseEditTime(merged[i].EditedTime)
		tj := valueobjects.ParseEditTime(merged[j].EditedTime)
		return ti.After(tj)
	})

	return merged
}

type changeKey struct {
	editedTime string
	editedBy   string
}
