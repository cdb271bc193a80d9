// Package snapshot projects the item store into sectioned snapshots and
// decides how the render surface should catch up after a mutation.
//
// A Snapshot only holds item references, never records. The surface looks
// record content up in the store when it draws a row, so a snapshot can go
// stale once its rows are deleted. Reconfigure filters such rows out; Validate
// reports them.
//
// Two update paths exist:
//
//	PathReconfigure  same rows, same order; redraw the listed rows in place
//	PathApply        structure changed; move to Next using Changes
package snapshot
