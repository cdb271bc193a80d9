package snapshot

import "github.com/five82/greenhouse/internal/state"

// Path selects how the render surface is brought up to date.
type Path int

const (
	// PathReconfigure refreshes row content in place; structure is unchanged.
	PathReconfigure Path = iota
	// PathApply transitions the surface to a new snapshot.
	PathApply
)

func (p Path) String() string {
	if p == PathApply {
		return "apply"
	}
	return "reconfigure"
}

// Update describes one step for the render surface.
type Update struct {
	Path     Path
	Previous Snapshot
	// Next equals Previous on the reconfigure path.
	Next    Snapshot
	Changes Changeset
	// Reconfigure lists rows whose content must be refreshed. Every entry is
	// present in Next.
	Reconfigure []state.ItemRef
}

// Reconfigure builds a content-only update. Candidates that are no longer in
// previous are dropped silently, as are repeats.
func Reconfigure(previous Snapshot, candidates []state.ItemRef) Update {
	return Update{
		Path:        PathReconfigure,
		Previous:    previous,
		Next:        previous,
		Reconfigure: present(previous, candidates),
	}
}

// Apply projects src and builds a full-apply update from previous.
func Apply(previous Snapshot, src Source) Update {
	next := Project(src)
	return Update{
		Path:     PathApply,
		Previous: previous,
		Next:     next,
		Changes:  Diff(previous, next),
	}
}

// Plan picks the cheaper path for bringing previous up to date with src.
// When the projection has the same structure as previous only the changed
// rows are reconfigured. Otherwise a full apply is returned, still naming
// the surviving changed rows so their content is refreshed.
func Plan(previous Snapshot, src Source, changed []state.ItemRef) Update {
	u := Apply(previous, src)
	if !u.Changes.Structural() {
		return Reconfigure(previous, changed)
	}
	u.Reconfigure = present(u.Next, changed)
	return u
}

func present(s Snapshot, candidates []state.ItemRef) []state.ItemRef {
	out := make([]state.ItemRef, 0, len(candidates))
	seen := make(map[state.ItemRef]struct{}, len(candidates))
	for _, ref := range candidates {
		if !s.Contains(ref) {
			continue
		}
		if _, dup := seen[ref]; dup {
			continue
		}
		seen[ref] = struct{}{}
		out = append(out, ref)
	}
	return out
}
