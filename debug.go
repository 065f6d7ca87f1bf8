package vista

import (
	"fmt"
	"os"
	"time"
)

// debugStats collects per-tick timing for the debug overlay. The report
// channel is always live (subscriber faults are logged even in release
// mode); the periodic stats line only prints when debug is enabled.
type debugStats struct {
	enabled   bool
	tickTime  time.Duration
	callbacks int
	since     float64
}

func newDebugStats(enabled bool) *debugStats {
	return &debugStats{enabled: enabled}
}

func (d *debugStats) begin() time.Time {
	if !d.enabled {
		return time.Time{}
	}
	return time.Now()
}

func (d *debugStats) end(start time.Time, callbacks int) {
	if !d.enabled {
		return
	}
	d.tickTime = time.Since(start)
	d.callbacks = callbacks
}

// report prints a diagnostic line to stderr.
func (d *debugStats) report(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[vista] "+format+"\n", args...)
}

// debugTick prints frame stats every half second. Registered at low
// priority so it always observes the tick it reports on.
func (e *Engine) debugTick(dt float64) {
	d := e.stats
	d.since += dt
	if d.since < 0.5 {
		return
	}
	d.since = 0

	tier := e.governor.Tier()
	s := e.store.State()
	_, _ = fmt.Fprintf(os.Stderr,
		"[vista] tick: %v | callbacks: %d | fps: %.1f | tier: %s | mem delta: %d | section: %s | transitioning: %v\n",
		d.tickTime, d.callbacks, tier.SampledFPS, tier.Level, tier.SampledMemoryDelta,
		s.ActiveSection, s.Transitioning)
}
