package snapshot

import (
	"errors"
	"fmt"

	"github.com/five82/greenhouse/internal/state"
)

var (
	ErrDuplicateSection = errors.New("duplicate section")
	ErrDuplicateItem    = errors.New("duplicate item reference")
	ErrUnknownSection   = errors.New("section not in snapshot")
	ErrStaleReference   = errors.New("item reference does not resolve")
)

// Position locates a row inside a snapshot.
type Position struct {
	Section state.Section
	Index   int
}

func (p Position) String() string {
	return fmt.Sprintf("%s[%d]", p.Section, p.Index)
}

// Snapshot is an immutable, ordered description of sections and the item
// references displayed in each.
type Snapshot struct {
	sections []state.Section
	items    map[state.Section][]state.ItemRef
	index    map[state.ItemRef]Position
}

// Sections returns the sections in display order.
func (s Snapshot) Sections() []state.Section {
	return append([]state.Section(nil), s.sections...)
}

// Items returns the item references of section in display order.
func (s Snapshot) Items(section state.Section) []state.ItemRef {
	return append([]state.ItemRef(nil), s.items[section]...)
}

// HasSection reports whether section is part of the snapshot.
func (s Snapshot) HasSection(section state.Section) bool {
	_, ok := s.items[section]
	return ok
}

// Contains reports whether ref is displayed.
func (s Snapshot) Contains(ref state.ItemRef) bool {
	_, ok := s.index[ref]
	return ok
}

// PositionOf returns where ref is displayed.
func (s Snapshot) PositionOf(ref state.ItemRef) (Position, bool) {
	pos, ok := s.index[ref]
	return pos, ok
}

// ItemAt returns the reference displayed at pos.
func (s Snapshot) ItemAt(pos Position) (state.ItemRef, bool) {
	list := s.items[pos.Section]
	if pos.Index < 0 || pos.Index >= len(list) {
		return state.ItemRef{}, false
	}
	return list[pos.Index], true
}

// Len returns the total number of items across all sections.
func (s Snapshot) Len() int {
	return len(s.index)
}

// Flatten returns every item reference in display order, section by section.
func (s Snapshot) Flatten() []state.ItemRef {
	out := make([]state.ItemRef, 0, len(s.index))
	for _, section := range s.sections {
		out = append(out, s.items[section]...)
	}
	return out
}

// Builder assembles a Snapshot while enforcing reference uniqueness.
type Builder struct {
	snap Snapshot
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{snap: Snapshot{
		items: make(map[state.Section][]state.ItemRef),
		index: make(map[state.ItemRef]Position),
	}}
}

// AppendSections adds sections after any already present.
func (b *Builder) AppendSections(sections ...state.Section) error {
	for _, section := range sections {
		if _, ok := b.snap.items[section]; ok {
			return fmt.Errorf("append %s: %w", section, ErrDuplicateSection)
		}
		b.snap.sections = append(b.snap.sections, section)
		b.snap.items[section] = nil
	}
	return nil
}

// AppendItems adds refs to the end of section.
func (b *Builder) AppendItems(section state.Section, refs ...state.ItemRef) error {
	if _, ok := b.snap.items[section]; !ok {
		return fmt.Errorf("append items to %s: %w", section, ErrUnknownSection)
	}
	for _, ref := range refs {
		if pos, dup := b.snap.index[ref]; dup {
			return fmt.Errorf("append %s: %w (already at %s)", ref, ErrDuplicateItem, pos)
		}
		b.snap.index[ref] = Position{Section: section, Index: len(b.snap.items[section])}
		b.snap.items[section] = append(b.snap.items[section], ref)
	}
	return nil
}

// Build returns the assembled snapshot. The builder must not be reused.
func (b *Builder) Build() Snapshot {
	snap := b.snap
	b.snap = Snapshot{}
	return snap
}

// Resolver looks up whether a reference still names a live record.
type Resolver interface {
	Lookup(ref state.ItemRef) (state.Record, bool)
}

// Validate checks that every reference in s resolves through r.
func Validate(s Snapshot, r Resolver) error {
	var stale []error
	for _, ref := range s.Flatten() {
		if _, ok := r.Lookup(ref); !ok {
			stale = append(stale, fmt.Errorf("%w: %s", ErrStaleReference, ref))
		}
	}
	return errors.Join(stale...)
}
