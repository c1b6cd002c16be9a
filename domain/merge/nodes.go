package merge

import (
	"kintree/domain/core/entities"
	"kintree/domain/core/valueobjects"
)

// reconcileNodes merges two node mappings into one covering the union
// of their keys. A record present on only one side is copied unchanged.
// A record present on both sides is resolved by whole-record
// last-write-wins on editedTime: the strictly later record supersedes
// the other in full, relationship pointers included. An exact tie keeps
// the local record.
//
// Only one timestamp exists per record, so this is deliberately not a
// per-field merge: when each side changed a different field since
// divergence, the losing side's field is discarded. Callers rely on
// exactly this behavior.
func reconcileNodes(local, remote map[string]*entities.PersonNode) map[string]*entities.PersonNode {
	merged := make(map[string]*entities.PersonNode, len(local)+len(remote))

	for id, n := range local {
		merged[id] = n.Clone()
	}
	for id, rn := range remote {
		ln, ok := local[id]
		if !ok {
			merged[id] = rn.Clone()
			continue
		}

		lt := valueobjects.ParseEditTimePtr(ln.EditedTime)
		rt := valueobjects.ParseEditTimePtr(rn.EditedTime)
		if rt.After(lt) {
			merged[id] = rn.Clone()
		}
	}

	return merged
}
