package ui

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/five82/greenhouse/internal/dispatch"
	"github.com/five82/greenhouse/internal/snapshot"
	"github.com/five82/greenhouse/internal/state"
)

// board is the render surface. It caches drawn row content per item so a
// reconfigure touches only the rows it names, and it keeps the cursor on
// the same item across applies.
type board struct {
	store *state.Store
	log   *zap.Logger

	snap  snapshot.Snapshot
	order []state.ItemRef
	rows  map[state.ItemRef]rowContent

	cursor int
	swipe  *dispatch.Gesture
	prompt *dispatch.Prompt

	draws  int
	status string
}

var (
	_ dispatch.Surface   = (*board)(nil)
	_ dispatch.Confirmer = (*board)(nil)
)

func newBoard(store *state.Store, log *zap.Logger) *board {
	return &board{
		store: store,
		log:   log,
		rows:  make(map[state.ItemRef]rowContent),
	}
}

// Reconfigure redraws the listed rows in place. Order and cursor are kept.
func (b *board) Reconfigure(current snapshot.Snapshot, items []state.ItemRef) {
	b.snap = current
	for _, ref := range items {
		b.draw(ref)
	}
	b.status = fmt.Sprintf("reconfigured %d row%s", len(items), plural(len(items)))
	b.log.Debug("surface reconfigure", zap.Int("rows", len(items)))
}

// Apply moves the board to next. Only inserted rows are drawn; removed rows
// leave the cache.
func (b *board) Apply(previous, next snapshot.Snapshot, changes snapshot.Changeset) {
	selected, hadSelection := b.selected()

	for _, ref := range changes.Removed {
		delete(b.rows, ref)
	}
	b.snap = next
	b.order = next.Flatten()
	for _, ref := range b.order {
		if _, ok := b.rows[ref]; !ok {
			b.draw(ref)
		}
	}

	b.restoreCursor(selected, hadSelection)
	if previous.Len() > 0 || len(changes.Removed) > 0 {
		b.status = fmt.Sprintf("applied snapshot: +%d -%d ~%d",
			len(changes.Inserted), len(changes.Removed), len(changes.Moved))
	}
	b.log.Debug("surface apply", zap.Int("rows", len(b.order)))
}

// ConfirmDelete parks the prompt until the model opens the confirm modal.
func (b *board) ConfirmDelete(p *dispatch.Prompt) {
	b.prompt = p
}

func (b *board) takePrompt() *dispatch.Prompt {
	p := b.prompt
	b.prompt = nil
	return p
}

func (b *board) draw(ref state.ItemRef) {
	rec, ok := b.store.Lookup(ref)
	if !ok {
		b.log.Warn("skipping draw of stale row", zap.Stringer("item", ref))
		delete(b.rows, ref)
		return
	}
	b.rows[ref] = contentFor(rec, ref.Section)
	b.draws++
}

func (b *board) selected() (state.ItemRef, bool) {
	if b.cursor < 0 || b.cursor >= len(b.order) {
		return state.ItemRef{}, false
	}
	return b.order[b.cursor], true
}

// restoreCursor keeps the selection on the same item when it survives,
// otherwise leaves the cursor at the same index clamped to the new bounds.
func (b *board) restoreCursor(ref state.ItemRef, ok bool) {
	if len(b.order) == 0 {
		b.cursor = 0
		return
	}
	if ok {
		for i, candidate := range b.order {
			if candidate == ref {
				b.cursor = i
				return
			}
		}
	}
	if b.cursor >= len(b.order) {
		b.cursor = len(b.order) - 1
	}
	if b.cursor < 0 {
		b.cursor = 0
	}
}

func (b *board) move(delta int) {
	if len(b.order) == 0 {
		return
	}
	b.cursor += delta
	if b.cursor < 0 {
		b.cursor = 0
	}
	if b.cursor >= len(b.order) {
		b.cursor = len(b.order) - 1
	}
}

func (b *board) moveTo(idx int) {
	b.cursor = 0
	b.move(idx)
}

// selectRef puts the cursor on ref if it is displayed.
func (b *board) selectRef(ref state.ItemRef) {
	for i, candidate := range b.order {
		if candidate == ref {
			b.cursor = i
			return
		}
	}
}

func (b *board) cursorPosition() (snapshot.Position, bool) {
	ref, ok := b.selected()
	if !ok {
		return snapshot.Position{}, false
	}
	return b.snap.PositionOf(ref)
}

// cursorSection is the section new plants are added to.
func (b *board) cursorSection() state.Section {
	if ref, ok := b.selected(); ok {
		return ref.Section
	}
	return state.Sidebar
}

func (b *board) swipeOpenOn(ref state.ItemRef) bool {
	return b.swipe != nil && b.swipe.Ref() == ref
}

// completion returns the gesture callback that closes the action bar.
func (b *board) completion(name string) func(bool) {
	return func(success bool) {
		b.swipe = nil
		if !success {
			b.log.Debug("gesture closed without effect", zap.String("name", name))
		}
	}
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
