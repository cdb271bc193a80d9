package snapshot

import (
	"sort"

	"github.com/five82/greenhouse/internal/state"
)

// Move records a surviving item whose position changed relative to the
// other survivors.
type Move struct {
	Item state.ItemRef
	From Position
	To   Position
}

// Changeset is the structural difference between two snapshots.
type Changeset struct {
	InsertedSections []state.Section
	RemovedSections  []state.Section
	Inserted         []state.ItemRef // in next display order
	Removed          []state.ItemRef // in previous display order
	Moved            []Move          // in next display order
}

// Structural reports whether anything other than row content differs.
func (c Changeset) Structural() bool {
	return len(c.InsertedSections) > 0 ||
		len(c.RemovedSections) > 0 ||
		len(c.Inserted) > 0 ||
		len(c.Removed) > 0 ||
		len(c.Moved) > 0
}

// Diff computes the structural changes that turn previous into next.
//
// Moves are minimal: survivors whose relative order is preserved form the
// longest increasing subsequence of their previous positions, and only the
// remainder is reported as moved.
func Diff(previous, next Snapshot) Changeset {
	var c Changeset

	for _, section := range next.sections {
		if !previous.HasSection(section) {
			c.InsertedSections = append(c.InsertedSections, section)
		}
	}
	for _, section := range previous.sections {
		if !next.HasSection(section) {
			c.RemovedSections = append(c.RemovedSections, section)
		}
	}

	prevFlat := previous.Flatten()
	prevOrdinal := make(map[state.ItemRef]int, len(prevFlat))
	for i, ref := range prevFlat {
		prevOrdinal[ref] = i
		if !next.Contains(ref) {
			c.Removed = append(c.Removed, ref)
		}
	}

	var survivors []state.ItemRef
	var ordinals []int
	for _, ref := range next.Flatten() {
		ord, ok := prevOrdinal[ref]
		if !ok {
			c.Inserted = append(c.Inserted, ref)
			continue
		}
		survivors = append(survivors, ref)
		ordinals = append(ordinals, ord)
	}

	stable := longestIncreasing(ordinals)
	for i, ref := range survivors {
		if stable[i] {
			continue
		}
		from, _ := previous.PositionOf(ref)
		to, _ := next.PositionOf(ref)
		c.Moved = append(c.Moved, Move{Item: ref, From: from, To: to})
	}
	return c
}

// longestIncreasing marks the members of one longest strictly increasing
// subsequence of values.
func longestIncreasing(values []int) []bool {
	keep := make([]bool, len(values))
	if len(values) == 0 {
		return keep
	}

	// tails[k] is the index into values of the smallest tail of an
	// increasing run of length k+1.
	tails := make([]int, 0, len(values))
	parent := make([]int, len(values))
	for i, v := range values {
		k := sort.Search(len(tails), func(j int) bool { return values[tails[j]] >= v })
		if k > 0 {
			parent[i] = tails[k-1]
		} else {
			parent[i] = -1
		}
		if k == len(tails) {
			tails = append(tails, i)
		} else {
			tails[k] = i
		}
	}

	for i := tails[len(tails)-1]; i >= 0; i = parent[i] {
		keep[i] = true
	}
	return keep
}
