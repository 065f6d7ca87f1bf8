package vista

import "runtime"

// Governor thresholds. A tier drops after fps stays below the floor for the
// drop window and recovers only after the hold window of healthy samples,
// which keeps borderline load from flapping between tiers.
const (
	fpsFloor          = 45.0
	tierDropWindow    = 0.5 // seconds below the floor before dropping
	tierRecoverWindow = 2.0 // seconds at/above the floor before recovering
	fpsWindowSize     = 60  // rolling frame-duration samples
	memSampleEvery    = 60  // ticks between memory readings
)

// QualityTier is a read-only snapshot of the governor's output: the discrete
// level plus the samples that produced it.
type QualityTier struct {
	Level              QualityLevel
	SampledFPS         float64
	SampledMemoryDelta int64 // heap bytes gained since the previous reading
}

// TierListener observes tier-level changes.
type TierListener func(QualityTier)

type tierListener struct {
	id uint32
	fn TierListener
}

// TierHandle allows removing a registered tier listener.
type TierHandle struct {
	id  uint32
	gov *Governor
}

// Remove unregisters this listener so it no longer fires.
func (h TierHandle) Remove() {
	if h.gov == nil {
		return
	}
	s := h.gov.listeners
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = tierListener{}
			h.gov.listeners = s[:len(s)-1]
			return
		}
	}
}

// Governor samples frame timing and memory once per tick and computes the
// quality tier consumers use to pick animation complexity. It registers at
// medium priority so camera interpolation always runs first.
type Governor struct {
	level QualityLevel

	window [fpsWindowSize]float64
	count  int
	cursor int

	belowFor   float64
	healthyFor float64

	memTicks      int
	lastHeapAlloc uint64
	memDelta      int64

	listeners []tierListener
	nextID    uint32

	// report receives listener-fault diagnostics. Never nil.
	report func(format string, args ...any)
}

// NewGovernor creates a governor seeded by the performance-mode hint. A nil
// reporter discards listener-fault diagnostics.
func NewGovernor(mode PerformanceMode, report func(string, ...any)) *Governor {
	level := QualityHigh
	switch mode {
	case PerfBalanced:
		level = QualityMedium
	case PerfLow:
		level = QualityLow
	}
	if report == nil {
		report = func(string, ...any) {}
	}
	g := &Governor{level: level, report: report}
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	g.lastHeapAlloc = ms.HeapAlloc
	return g
}

// Sample records one frame duration. Call once per tick.
func (g *Governor) Sample(dt float64) {
	if dt <= 0 {
		return
	}
	g.window[g.cursor] = dt
	g.cursor = (g.cursor + 1) % fpsWindowSize
	if g.count < fpsWindowSize {
		g.count++
	}

	g.memTicks++
	if g.memTicks >= memSampleEvery {
		g.memTicks = 0
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		g.memDelta = int64(ms.HeapAlloc) - int64(g.lastHeapAlloc)
		g.lastHeapAlloc = ms.HeapAlloc
	}

	// Hysteresis tracks per-sample fps so a sustained stall is detected
	// within the drop window; the rolling average is for reporting only.
	fps := 1.0 / dt
	if fps < fpsFloor {
		g.belowFor += dt
		g.healthyFor = 0
		if g.belowFor >= tierDropWindow && g.level > QualityLow {
			g.level--
			g.belowFor = 0
			g.fireTierChange()
		}
	} else {
		g.healthyFor += dt
		g.belowFor = 0
		if g.healthyFor >= tierRecoverWindow && g.level < QualityHigh {
			g.level++
			g.healthyFor = 0
			g.fireTierChange()
		}
	}
}

// sampledFPS returns the fps implied by the rolling window average.
func (g *Governor) sampledFPS() float64 {
	if g.count == 0 {
		return 0
	}
	var sum float64
	for i := 0; i < g.count; i++ {
		sum += g.window[i]
	}
	avg := sum / float64(g.count)
	if avg <= 0 {
		return 0
	}
	return 1.0 / avg
}

// Tier returns the current quality tier. Pure read; never recomputes.
func (g *Governor) Tier() QualityTier {
	return QualityTier{
		Level:              g.level,
		SampledFPS:         g.sampledFPS(),
		SampledMemoryDelta: g.memDelta,
	}
}

// OnTierChange registers a listener fired whenever the level changes.
func (g *Governor) OnTierChange(fn TierListener) TierHandle {
	g.nextID++
	id := g.nextID
	g.listeners = append(g.listeners, tierListener{id: id, fn: fn})
	return TierHandle{id: id, gov: g}
}

// fireTierChange invokes every tier listener. A panicking listener is
// recovered and reported so it cannot block the others or abort the sample
// that triggered the change.
func (g *Governor) fireTierChange() {
	tier := g.Tier()
	for _, l := range g.listeners {
		g.safeNotify(l, tier)
	}
}

func (g *Governor) safeNotify(l tierListener, tier QualityTier) {
	defer func() {
		if r := recover(); r != nil {
			g.report("tier listener %d panicked: %v", l.id, r)
		}
	}()
	l.fn(tier)
}

// Shutdown drops all tier listeners.
func (g *Governor) Shutdown() {
	g.listeners = nil
}
