// Package state holds the plant records shown by Greenhouse.
//
// # Overview
//
// The Store owns two ordered collections of records, one per Section
// (Sidebar and Grouped). Records are identified by a UUID; an ItemRef pairs
// that identifier with its section so the same plant id can appear in both
// collections without colliding.
//
// # Mutation
//
//	ToggleFavorite(section, index)  flips Favorite in place (same identity)
//	RemoveRecord(section, index)    deletes; later indices shift down
//	InsertRecord(section, name)     appends a record with a fresh id
//
// Index-based mutations return ErrIndexOutOfRange when the index is not
// valid for the section. Callers that captured a row earlier should hold
// its ItemRef and call Resolve immediately before mutating:
//
//	idx, ok := store.Resolve(ref)
//	if !ok {
//		return // row vanished, nothing to do
//	}
//	store.ToggleFavorite(ref.Section, idx)
//
// Resolve is backed by an id-to-position map that is rebuilt whenever the
// shape of a collection changes.
//
// # Concurrency Model
//
// The Store has no internal locking. Greenhouse mutates it only from the
// Bubble Tea update loop, which already runs messages one at a time.
//
// # Copies
//
// Records returns a copy of the section slice. Record is a plain value, so
// callers cannot reach back into the store through it.
package state
