package merge

import (
	"kintree/domain/core/entities"
)

// reconcileMarriages merges two marriage lists into one with unique ids.
// Marriages carry no provenance timestamp, so there is nothing to
// arbitrate with: on an id collision the remote entry wins
// unconditionally. Note the asymmetry with node reconciliation, where a
// tie keeps local.
//
// Output order is deterministic: local-list order first, then remote-only
// entries in remote-list order.
func reconcileMarriages(local, remote []entities.Marriage) []entities.Marriage {
	remoteByID := make(map[string]entities.Marriage, len(remote))
	for _, m := range remote {
		// Later duplicates within remote itself also win
		remoteByID[m.ID] = m
	}

	seen := make(map[string]bool, len(local)+len(remote))
	merged := make([]entities.Marriage, 0, len(local)+len(remote))

	for _, m := range local {
		if seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		if rm, ok := remoteByID[m.ID]; ok {
			merged = append(merged, rm)
		} else {
			merged = append(merged, m)
		}
	}
	for _, m := range remote {
		if seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		merged = append(merged, remoteByID[m.ID])
	}

	return merged
}

// checkMarriageEndpoints reports marriages whose members are absent from
// the merged node mapping. The marriage is retained either way.
func checkMarriageEndpoints(marriages []entities.Marriage, nodes map[string]*entities.PersonNode) []Warning {
	var warnings []Warning
	for _, m := range marriages {
		if _, ok := nodes[m.A]; !ok {
			warnings = append(warnings, newDanglingMarriageWarning(m.ID, m.A))
		}
		if _, ok := nodes[m.B]; !ok {
			warnings = append(warnings, newDanglingMarriageWarning(m.ID, m.B))
		}
	}
	return warnings
}
