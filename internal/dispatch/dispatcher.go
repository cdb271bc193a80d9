package dispatch

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/five82/greenhouse/internal/snapshot"
	"github.com/five82/greenhouse/internal/state"
)

// ErrNotPresented is returned when an action is requested on a gesture
// whose action bar is not open.
var ErrNotPresented = errors.New("gesture actions not presented")

// Surface renders snapshots. It computes its own visual diff from the
// changeset and keeps selection and scroll position across reconfigures.
type Surface interface {
	Reconfigure(current snapshot.Snapshot, items []state.ItemRef)
	Apply(previous, next snapshot.Snapshot, changes snapshot.Changeset)
}

// Confirmer asks the user to confirm a delete. It must eventually call
// exactly one of Prompt.Confirm or Prompt.Cancel.
type Confirmer interface {
	ConfirmDelete(p *Prompt)
}

// Transition is emitted whenever a gesture changes state.
type Transition struct {
	Item state.ItemRef
	From State
	To   State
}

// Options configure a Dispatcher.
type Options struct {
	Logger       *zap.Logger
	OnTransition func(Transition)
}

// Dispatcher turns row gestures into store mutations and surface updates.
// It is not safe for concurrent use; drive it from one serial context.
type Dispatcher struct {
	store     *state.Store
	surface   Surface
	confirmer Confirmer
	log       *zap.Logger
	observe   func(Transition)

	rendered snapshot.Snapshot
	pending  *Gesture
	deferred []deferredAction
}

type deferredAction struct {
	gesture *Gesture
	run     func()
}

// New builds a dispatcher and performs the initial full apply so the
// surface shows the store's current contents.
func New(store *state.Store, surface Surface, confirmer Confirmer, opts Options) (*Dispatcher, error) {
	if store == nil {
		return nil, fmt.Errorf("dispatcher requires a store")
	}
	if surface == nil || confirmer == nil {
		return nil, fmt.Errorf("dispatcher requires a surface and a confirmer")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	d := &Dispatcher{
		store:     store,
		surface:   surface,
		confirmer: confirmer,
		log:       logger.Named("dispatch"),
		observe:   opts.OnTransition,
	}
	d.fullApply()
	return d, nil
}

// Rendered returns the snapshot last handed to the surface.
func (d *Dispatcher) Rendered() snapshot.Snapshot {
	return d.rendered
}

// Pending returns the gesture awaiting delete confirmation, if any.
func (d *Dispatcher) Pending() *Gesture {
	return d.pending
}

// Begin opens the action bar for ref. done is called exactly once when the
// gesture finishes, with true when an action took effect.
func (d *Dispatcher) Begin(ref state.ItemRef, done func(success bool)) *Gesture {
	g := &Gesture{d: d, ref: ref, done: done}
	g.transition(ActionPresented)
	return g
}

// BeginAt resolves the row at pos in the rendered snapshot and begins a
// gesture on it. It returns nil when no row is displayed there.
func (d *Dispatcher) BeginAt(pos snapshot.Position, done func(success bool)) *Gesture {
	ref, ok := d.rendered.ItemAt(pos)
	if !ok {
		return nil
	}
	return d.Begin(ref, done)
}

// Insert appends a plant to section and applies the new snapshot.
func (d *Dispatcher) Insert(section state.Section, name string) (state.Record, error) {
	rec, err := d.store.InsertRecord(section, name)
	if err != nil {
		return state.Record{}, err
	}
	d.log.Info("record inserted", zap.Stringer("item", rec.Ref(section)), zap.String("name", rec.Name))
	d.fullApply()
	return rec, nil
}

// reconfigure redraws refs in place. If the store's structure no longer
// matches the rendered snapshot it applies the new snapshot first.
func (d *Dispatcher) reconfigure(refs ...state.ItemRef) {
	u := snapshot.Plan(d.rendered, d.store, refs)
	if u.Path == snapshot.PathApply {
		d.log.Warn("store structure drifted from rendered snapshot",
			zap.Int("inserted", len(u.Changes.Inserted)),
			zap.Int("removed", len(u.Changes.Removed)))
		d.present(u)
	}
	if len(u.Reconfigure) < len(refs) {
		d.log.Debug("dropped stale reconfigure items", zap.Int("requested", len(refs)), zap.Int("kept", len(u.Reconfigure)))
	}
	if len(u.Reconfigure) > 0 || u.Path == snapshot.PathReconfigure {
		d.surface.Reconfigure(u.Next, u.Reconfigure)
	}
}

func (d *Dispatcher) fullApply() {
	d.present(snapshot.Apply(d.rendered, d.store))
}

func (d *Dispatcher) present(u snapshot.Update) {
	if err := snapshot.Validate(u.Next, d.store); err != nil {
		d.log.Error("projected snapshot failed validation", zap.Error(err))
	}
	d.log.Debug("applying snapshot",
		zap.Int("items", u.Next.Len()),
		zap.Int("inserted", len(u.Changes.Inserted)),
		zap.Int("removed", len(u.Changes.Removed)),
		zap.Int("moved", len(u.Changes.Moved)))
	d.rendered = u.Next
	d.surface.Apply(u.Previous, u.Next, u.Changes)
}

// schedule runs fn now, or queues it behind an unresolved delete prompt.
func (d *Dispatcher) schedule(g *Gesture, fn func()) {
	if d.pending != nil && d.pending != g {
		d.log.Debug("deferring action behind pending delete",
			zap.Stringer("item", g.ref), zap.Stringer("pending", d.pending.ref))
		d.deferred = append(d.deferred, deferredAction{gesture: g, run: fn})
		return
	}
	fn()
}

func (d *Dispatcher) settle(g *Gesture) {
	if d.pending == g {
		d.pending = nil
	}
	for d.pending == nil && len(d.deferred) > 0 {
		next := d.deferred[0]
		d.deferred = d.deferred[1:]
		next.run()
	}
}
