package vista

import "sort"

// FrameCallback runs once per tick with the frame duration in seconds.
type FrameCallback func(dt float64)

type schedEntry struct {
	key string
	pri Priority
	seq uint64 // registration order within a priority
	fn  FrameCallback
}

// Scheduler is the single cooperative frame loop every animated component
// registers with. Callbacks are keyed: registering an existing key replaces
// the pending callback instead of duplicating it, so an unstable caller can
// never accumulate competing copies of the same work. Within a tick,
// callbacks run in priority order (high, medium, low), and registrations
// made during a tick are deferred to the next tick rather than executed
// re-entrantly.
type Scheduler struct {
	entries  []schedEntry
	deferred []schedEntry
	nextSeq  uint64
	ticking  bool
	sorted   bool
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Register schedules fn to run every tick under the given key and priority.
// If the key is already registered (or pending), the new callback replaces
// it. During a tick the registration takes effect on the next tick.
func (sc *Scheduler) Register(key string, pri Priority, fn FrameCallback) {
	sc.nextSeq++
	e := schedEntry{key: key, pri: pri, seq: sc.nextSeq, fn: fn}

	if sc.ticking {
		// Replace a same-key deferred entry, never queue two.
		for i := range sc.deferred {
			if sc.deferred[i].key == key {
				sc.deferred[i] = e
				return
			}
		}
		sc.deferred = append(sc.deferred, e)
		return
	}
	sc.put(e)
}

func (sc *Scheduler) put(e schedEntry) {
	for i := range sc.entries {
		if sc.entries[i].key == e.key {
			sc.entries[i] = e
			return
		}
	}
	sc.entries = append(sc.entries, e)
	sc.sorted = false
}

// Unregister removes the callback for key. Removal is synchronous: a key
// unregistered mid-tick will not fire later in the same tick, so a cancelled
// animation leaves no orphaned ticks behind.
func (sc *Scheduler) Unregister(key string) {
	for i := range sc.entries {
		if sc.entries[i].key == key {
			if sc.ticking {
				// Keep slice layout stable while iterating; nil out instead.
				sc.entries[i].fn = nil
				return
			}
			sc.entries = append(sc.entries[:i], sc.entries[i+1:]...)
			return
		}
	}
	for i := range sc.deferred {
		if sc.deferred[i].key == key {
			sc.deferred = append(sc.deferred[:i], sc.deferred[i+1:]...)
			return
		}
	}
}

// Registered reports whether key currently has a live or pending callback.
func (sc *Scheduler) Registered(key string) bool {
	for i := range sc.entries {
		if sc.entries[i].key == key && sc.entries[i].fn != nil {
			return true
		}
	}
	for i := range sc.deferred {
		if sc.deferred[i].key == key {
			return true
		}
	}
	return false
}

// Len returns the number of live callbacks.
func (sc *Scheduler) Len() int {
	n := 0
	for i := range sc.entries {
		if sc.entries[i].fn != nil {
			n++
		}
	}
	return n
}

// Tick runs one frame: every registered callback once, priority-ordered.
// dt is the frame duration in seconds.
func (sc *Scheduler) Tick(dt float64) {
	if !sc.sorted {
		sort.SliceStable(sc.entries, func(i, j int) bool {
			if sc.entries[i].pri != sc.entries[j].pri {
				return sc.entries[i].pri < sc.entries[j].pri
			}
			return sc.entries[i].seq < sc.entries[j].seq
		})
		sc.sorted = true
	}

	sc.ticking = true
	for i := 0; i < len(sc.entries); i++ {
		if fn := sc.entries[i].fn; fn != nil {
			fn(dt)
		}
	}
	sc.ticking = false

	// Compact entries nilled by mid-tick Unregister.
	live := sc.entries[:0]
	for _, e := range sc.entries {
		if e.fn != nil {
			live = append(live, e)
		}
	}
	sc.entries = live

	// Promote registrations made during the tick.
	for _, e := range sc.deferred {
		sc.put(e)
	}
	sc.deferred = sc.deferred[:0]
}

// Shutdown drops every live and pending callback.
func (sc *Scheduler) Shutdown() {
	sc.entries = nil
	sc.deferred = nil
}
