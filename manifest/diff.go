package manifest

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/slipway-dev/slipway/domain/model"
)

// Op is the kind of change recorded for a single key in a diff.
type Op string

const (
	OpAdded    Op = "Added"
	OpRemoved  Op = "Removed"
	OpModified Op = "Modified"
)

// Change describes how one document differs between two sets. Old and New
// reference documents owned by the input sets and must not be modified.
type Change struct {
	Op  Op
	Key model.Key
	// Old is the document in the old set (nil for Added).
	Old *Document
	// New is the document in the new set (nil for Removed).
	New *Document
}

// ChangeList is an ordered list of changes.
type ChangeList []Change

// Summary returns change counts like "2 added, 1 removed, 0 modified".
func (cl ChangeList) Summary() string {
	var added, removed, modified int
	for _, c := range cl {
		switch c.Op {
		case OpAdded:
			added++
		case OpRemoved:
			removed++
		case OpModified:
			modified++
		}
	}
	return fmt.Sprintf("%d added, %d removed, %d modified", added, removed, modified)
}

// Diff compares two descriptor sets and returns the ordered changes that
// turn old into new. Entries are keyed by (kind, namespace, name) and sorted
// by kind (services first), then namespace, then name, so the output is
// deterministic regardless of document order in either set. Unchanged
// documents produce no entry. Diffing a set against itself yields an empty
// list; diffing from an empty or nil set yields one Added entry per
// document. Neither input is modified.
func Diff(oldSet, newSet *Set) ChangeList {
	keys := make(map[model.Key]bool)
	if oldSet != nil {
		for k := range oldSet.byKey {
			keys[k] = true
		}
	}
	if newSet != nil {
		for k := range newSet.byKey {
			keys[k] = true
		}
	}

	ordered := make([]model.Key, 0, len(keys))
	for k := range keys {
		ordered = append(ordered, k)
	}
	sort.Slice(ordered, func(i, j int) bool { return keyLess(ordered[i], ordered[j]) })

	changes := make(ChangeList, 0, len(ordered))
	for _, k := range ordered {
		oldDoc := lookup(oldSet, k)
		newDoc := lookup(newSet, k)
		switch {
		case oldDoc == nil:
			changes = append(changes, Change{Op: OpAdded, Key: k, New: newDoc})
		case newDoc == nil:
			changes = append(changes, Change{Op: OpRemoved, Key: k, Old: oldDoc})
		default:
			if !documentsEqual(oldDoc, newDoc) {
				changes = append(changes, Change{Op: OpModified, Key: k, Old: oldDoc, New: newDoc})
			}
		}
	}
	return changes
}

func lookup(s *Set, k model.Key) *Document {
	if s == nil {
		return nil
	}
	i, ok := s.byKey[k]
	if !ok {
		return nil
	}
	return &s.docs[i]
}

// documentsEqual compares parsed descriptor content. Where a document came
// from (path, index) is not part of its identity.
func documentsEqual(a, b *Document) bool {
	return a.APIVersion == b.APIVersion && reflect.DeepEqual(a.Object, b.Object)
}

// keyLess orders keys by kind (services first), namespace, then name.
func keyLess(a, b model.Key) bool {
	if a.Kind != b.Kind {
		return kindOrder(a.Kind) < kindOrder(b.Kind)
	}
	if a.Namespace != b.Namespace {
		return a.Namespace < b.Namespace
	}
	return a.Name < b.Name
}

// kindOrder returns the sort order for a kind. Lower numbers come first.
func kindOrder(k model.Kind) int {
	switch k {
	case model.KindService:
		return 1
	case model.KindDeployment:
		return 2
	default:
		return 999
	}
}
