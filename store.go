package vista

import "math"

// NavigationState is the engine's sole shared mutable state: where the camera
// is, which section is active, and whether a transition is in flight. It is
// owned by Store; every other component reads it through State or a
// subscription and writes it only through Store's action methods.
type NavigationState struct {
	Position      Position
	ActiveSection string
	Transitioning bool
}

// StateListener observes committed state mutations. Listeners are invoked
// synchronously, in subscription order, after each commit.
type StateListener func(NavigationState)

type stateListener struct {
	id uint32
	fn StateListener
}

// ListenerHandle allows removing a registered state listener. The handle is
// the listener's stable identity: callers keep it for their lifetime instead
// of re-subscribing, which is the contract that prevents re-subscription
// storms.
type ListenerHandle struct {
	id    uint32
	store *Store
}

// Remove unregisters this listener so it no longer fires.
func (h ListenerHandle) Remove() {
	if h.store == nil {
		return
	}
	s := h.store.listeners
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = stateListener{}
			h.store.listeners = s[:len(s)-1]
			return
		}
	}
}

// Store holds NavigationState and is its single writer. Every position write
// runs through Clamp before it is stored; unclamped values are never visible
// to readers.
type Store struct {
	state     NavigationState
	listeners []stateListener
	nextID    uint32

	// boundsFor returns the valid position bounds at a given scale.
	// Supplied by the engine from the section grid and viewport.
	boundsFor func(scale float64) Rect

	// report receives subscriber-fault diagnostics. Never nil.
	report func(format string, args ...any)
}

// NewStore creates a store with the given initial position, position-bounds
// function, and fault reporter. The initial position is clamped like any
// other write. A nil reporter discards diagnostics.
func NewStore(initial Position, boundsFor func(scale float64) Rect, report func(string, ...any)) *Store {
	if report == nil {
		report = func(string, ...any) {}
	}
	st := &Store{boundsFor: boundsFor, report: report}
	st.state.Position = st.clamp(initial)
	return st
}

func (st *Store) clamp(p Position) Position {
	// Bounds depend on the committed scale, so resolve the scale clamp first.
	scale := math.Max(MinScale, math.Min(p.Scale, MaxScale))
	return Clamp(p, st.boundsFor(scale))
}

// ClampPosition returns p clamped to the current bounds without committing
// it. Used by the movement controller to resolve animation targets.
func (st *Store) ClampPosition(p Position) Position {
	return st.clamp(p)
}

// State returns a snapshot of the current navigation state.
func (st *Store) State() NavigationState {
	return st.state
}

// Subscribe registers a listener for committed mutations and returns its
// removal handle. Listener identity is the handle, not the function value;
// subscribe once and keep the handle.
func (st *Store) Subscribe(fn StateListener) ListenerHandle {
	st.nextID++
	id := st.nextID
	st.listeners = append(st.listeners, stateListener{id: id, fn: fn})
	return ListenerHandle{id: id, store: st}
}

// UpdatePosition clamps p and commits it. Non-finite input is a precondition
// violation returned to the caller; the state is left untouched.
func (st *Store) UpdatePosition(p Position) error {
	if err := ValidatePosition(p); err != nil {
		return err
	}
	st.state.Position = st.clamp(p)
	st.notify()
	return nil
}

// SetActiveSection commits a new active section id.
func (st *Store) SetActiveSection(id string) {
	if st.state.ActiveSection == id {
		return
	}
	st.state.ActiveSection = id
	st.notify()
}

// SetTransitioning commits the transition flag.
func (st *Store) SetTransitioning(v bool) {
	if st.state.Transitioning == v {
		return
	}
	st.state.Transitioning = v
	st.notify()
}

// notify invokes every listener with the committed state. A panicking
// listener is recovered and reported so it cannot block later listeners or
// abort the mutation that triggered it.
func (st *Store) notify() {
	snapshot := st.state
	for _, l := range st.listeners {
		st.safeNotify(l, snapshot)
	}
}

func (st *Store) safeNotify(l stateListener, s NavigationState) {
	defer func() {
		if r := recover(); r != nil {
			st.report("state listener %d panicked: %v", l.id, r)
		}
	}()
	l.fn(s)
}

// Shutdown drops all listeners. Held handles become no-ops.
func (st *Store) Shutdown() {
	st.listeners = nil
}
