package dispatch

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/five82/greenhouse/internal/state"
)

// State is the lifecycle stage of a row gesture.
type State int

const (
	Idle State = iota
	ActionPresented
	Favorited
	DeletePending
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case ActionPresented:
		return "action-presented"
	case Favorited:
		return "favorited"
	case DeletePending:
		return "delete-pending"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Gesture is one swipe on one row. It holds the row's identity, captured
// when the gesture began; indices are resolved only when an action runs.
type Gesture struct {
	d        *Dispatcher
	ref      state.ItemRef
	state    State
	done     func(bool)
	finished bool
	queued   bool
}

// Ref returns the row the gesture targets.
func (g *Gesture) Ref() state.ItemRef { return g.ref }

// State returns the current lifecycle stage.
func (g *Gesture) State() State { return g.state }

// Favorite toggles the row's favorite flag and reconfigures only that row.
func (g *Gesture) Favorite() error {
	if err := g.claim(); err != nil {
		return err
	}
	g.d.schedule(g, g.runFavorite)
	return nil
}

// Delete asks the Confirmer to confirm removal. The row is only removed if
// the returned prompt is confirmed.
func (g *Gesture) Delete() error {
	if err := g.claim(); err != nil {
		return err
	}
	g.d.schedule(g, g.runDelete)
	return nil
}

// Dismiss closes the action bar without acting.
func (g *Gesture) Dismiss() {
	if g.state != ActionPresented || g.queued {
		return
	}
	g.transition(Idle)
	g.finish(false)
}

func (g *Gesture) claim() error {
	if g.state != ActionPresented || g.queued {
		return fmt.Errorf("%s: %w (state %s)", g.ref, ErrNotPresented, g.state)
	}
	g.queued = true
	return nil
}

func (g *Gesture) runFavorite() {
	d := g.d
	idx, ok := d.store.Resolve(g.ref)
	if !ok {
		d.log.Debug("favorite target vanished", zap.Stringer("item", g.ref))
		g.transition(Idle)
		g.finish(false)
		return
	}
	rec, err := d.store.ToggleFavorite(g.ref.Section, idx)
	if err != nil {
		// Resolve just returned idx on the same serial context.
		d.log.Error("toggle favorite failed", zap.Stringer("item", g.ref), zap.Error(err))
		g.transition(Idle)
		g.finish(false)
		return
	}
	g.transition(Favorited)
	d.log.Info("favorite toggled", zap.Stringer("item", g.ref), zap.Bool("favorite", rec.Favorite))
	d.reconfigure(g.ref)
	g.finish(true)
	g.transition(Idle)
}

func (g *Gesture) runDelete() {
	d := g.d
	if _, ok := d.store.Resolve(g.ref); !ok {
		d.log.Debug("delete target vanished before prompt", zap.Stringer("item", g.ref))
		g.transition(Idle)
		g.finish(false)
		return
	}
	g.transition(DeletePending)
	d.pending = g
	d.confirmer.ConfirmDelete(&Prompt{gesture: g})
}

func (g *Gesture) confirm() {
	d := g.d
	removed := false
	if idx, ok := d.store.Resolve(g.ref); ok {
		if _, err := d.store.RemoveRecord(g.ref.Section, idx); err != nil {
			d.log.Error("remove record failed", zap.Stringer("item", g.ref), zap.Error(err))
		} else {
			removed = true
		}
	} else {
		d.log.Debug("delete target vanished", zap.Stringer("item", g.ref))
	}
	if removed {
		d.log.Info("record deleted", zap.Stringer("item", g.ref))
		d.fullApply()
	}
	g.finish(removed)
	g.transition(Idle)
	d.settle(g)
}

func (g *Gesture) cancel() {
	g.d.log.Debug("delete cancelled", zap.Stringer("item", g.ref))
	g.finish(false)
	g.transition(Idle)
	g.d.settle(g)
}

func (g *Gesture) transition(to State) {
	from := g.state
	g.state = to
	if g.d.observe != nil {
		g.d.observe(Transition{Item: g.ref, From: from, To: to})
	}
}

func (g *Gesture) finish(success bool) {
	if g.finished {
		return
	}
	g.finished = true
	if g.done != nil {
		g.done(success)
	}
}

// Prompt is a one-shot delete confirmation. Only the first call to Confirm
// or Cancel has any effect.
type Prompt struct {
	gesture  *Gesture
	resolved bool
}

// Item returns the row awaiting confirmation.
func (p *Prompt) Item() state.ItemRef { return p.gesture.ref }

// Resolved reports whether the prompt has been answered.
func (p *Prompt) Resolved() bool { return p.resolved }

// Confirm removes the row. It returns false if the prompt was already
// answered.
func (p *Prompt) Confirm() bool {
	if p.resolved {
		return false
	}
	p.resolved = true
	p.gesture.confirm()
	return true
}

// Cancel leaves the store untouched. It returns false if the prompt was
// already answered.
func (p *Prompt) Cancel() bool {
	if p.resolved {
		return false
	}
	p.resolved = true
	p.gesture.cancel()
	return true
}
