package vista

import "fmt"

// Scheduler keys for the engine's standing callbacks.
const (
	governorTickKey = "governor.sample"
	menuTickKey     = "menu.timers"
	debugTickKey    = "debug.stats"
)

// Config describes an engine at construction. The section grid and sizes are
// immutable afterwards.
type Config struct {
	// Sections is the grid of content regions. Required, ids must be unique.
	Sections []Section
	// HomeID is the default section. Defaults to the first section.
	HomeID string
	// Viewport is the screen size in pixels. Required.
	Viewport Vec2
	// CellSize is the canvas size of one grid cell. Defaults to Viewport.
	CellSize Vec2
	// Initial overrides the starting position (defaults to the home section).
	Initial *Position
	// Mode seeds the performance governor's starting tier.
	Mode PerformanceMode
	// Debug enables frame stats on stderr.
	Debug bool
	// Announcer receives live-region text. Optional.
	Announcer Announcer
}

// TransformListener observes the CSS transform stream.
type TransformListener func(transform string)

// SectionListener observes active-section changes.
type SectionListener func(id string)

type transformListener struct {
	id uint32
	fn TransformListener
}

type sectionListener struct {
	id uint32
	fn SectionListener
}

// EngineHandle removes an engine-level output listener.
type EngineHandle struct {
	id      uint32
	engine  *Engine
	section bool
}

// Remove unregisters this listener so it no longer fires.
func (h EngineHandle) Remove() {
	if h.engine == nil {
		return
	}
	if h.section {
		s := h.engine.sectionSubs
		for i := range s {
			if s[i].id == h.id {
				h.engine.sectionSubs = append(s[:i], s[i+1:]...)
				return
			}
		}
		return
	}
	s := h.engine.transformSubs
	for i := range s {
		if s[i].id == h.id {
			h.engine.transformSubs = append(s[:i], s[i+1:]...)
			return
		}
	}
}

// Engine owns the full navigation stack: transform math, state store, frame
// scheduler, performance governor, movement controller, gesture manager, and
// radial menu. Everything runs single-threaded off Update; there is no
// background work.
type Engine struct {
	cfg      Config
	sections map[string]Section
	canvas   Rect

	store    *Store
	sched    *Scheduler
	governor *Governor
	camera   *Camera
	menu     *Menu
	gestures *Gestures

	transformSubs []transformListener
	sectionSubs   []sectionListener
	nextSubID     uint32

	pendingSection string
	lastSection    string

	inject injectQueue
	script *ScriptRunner
	stats  *debugStats
}

// NewEngine validates cfg and wires the component graph. The initial
// position is clamped like every later write.
func NewEngine(cfg Config) (*Engine, error) {
	if len(cfg.Sections) == 0 {
		return nil, fmt.Errorf("vista: config needs at least one section")
	}
	if cfg.Viewport.X <= 0 || cfg.Viewport.Y <= 0 {
		return nil, fmt.Errorf("vista: viewport %gx%g is not positive", cfg.Viewport.X, cfg.Viewport.Y)
	}
	if cfg.CellSize.X <= 0 || cfg.CellSize.Y <= 0 {
		cfg.CellSize = cfg.Viewport
	}
	if cfg.HomeID == "" {
		cfg.HomeID = cfg.Sections[0].ID
	}

	sections := make(map[string]Section, len(cfg.Sections))
	for _, s := range cfg.Sections {
		if _, dup := sections[s.ID]; dup {
			return nil, fmt.Errorf("vista: duplicate section id %q", s.ID)
		}
		sections[s.ID] = s
	}
	if _, ok := sections[cfg.HomeID]; !ok {
		return nil, fmt.Errorf("vista: home section %q not in grid", cfg.HomeID)
	}

	e := &Engine{cfg: cfg, sections: sections}
	e.canvas = CanvasBounds(cfg.Sections, cfg.CellSize)

	initial := e.gridPosition(sections[cfg.HomeID])
	if cfg.Initial != nil {
		if err := ValidatePosition(*cfg.Initial); err != nil {
			return nil, err
		}
		initial = *cfg.Initial
	}

	boundsFor := func(scale float64) Rect {
		return PositionBounds(e.canvas, cfg.Viewport, scale)
	}
	e.stats = newDebugStats(cfg.Debug)
	e.store = NewStore(initial, boundsFor, e.stats.report)
	e.sched = NewScheduler()
	e.governor = NewGovernor(cfg.Mode, e.stats.report)
	e.camera = NewCamera(e.store, e.governor, e.sched)
	e.menu = NewMenu(cfg.Sections, cfg.HomeID, cfg.Viewport, e.camera, e.SectionPosition)
	e.gestures = NewGestures(e.store, e.camera, e.menu, func() {
		_ = e.JumpToSection(cfg.HomeID, false)
	})

	e.camera.OnComplete(e.menu.MovementDone)
	e.camera.OnComplete(func(kind MovementKind) {
		if kind == MoveJumpToSection && e.pendingSection != "" {
			e.store.SetActiveSection(e.pendingSection)
			e.pendingSection = ""
		}
	})
	e.menu.SetObserver(func(_ MenuState, session *ActivationSession) {
		announceSession(cfg.Announcer, session)
	})
	e.menu.OnSelect(func(id string) {
		e.pendingSection = id
	})
	e.store.Subscribe(e.emitOutputs)

	e.sched.Register(governorTickKey, PriorityMedium, e.governor.Sample)
	e.sched.Register(menuTickKey, PriorityMedium, e.menu.Update)
	if cfg.Debug {
		e.sched.Register(debugTickKey, PriorityLow, e.debugTick)
	}

	e.store.SetActiveSection(cfg.HomeID)
	return e, nil
}

// emitOutputs forwards committed state to the engine's output streams.
// A panicking subscriber is recovered and reported so it cannot block the
// remaining subscribers or the announcement for the same commit.
func (e *Engine) emitOutputs(s NavigationState) {
	css := CSSTransform(s.Position)
	for _, l := range e.transformSubs {
		e.safeEmitTransform(l, css)
	}
	if s.ActiveSection != e.lastSection {
		e.lastSection = s.ActiveSection
		for _, l := range e.sectionSubs {
			e.safeEmitSection(l, s.ActiveSection)
		}
		announceSection(e.cfg.Announcer, s.ActiveSection)
	}
}

func (e *Engine) safeEmitTransform(l transformListener, css string) {
	defer func() {
		if r := recover(); r != nil {
			e.stats.report("transform listener %d panicked: %v", l.id, r)
		}
	}()
	l.fn(css)
}

func (e *Engine) safeEmitSection(l sectionListener, id string) {
	defer func() {
		if r := recover(); r != nil {
			e.stats.report("section listener %d panicked: %v", l.id, r)
		}
	}()
	l.fn(id)
}

// gridPosition returns the camera position framing a section's cell.
func (e *Engine) gridPosition(s Section) Position {
	return Position{
		X:     float64(s.GridX) * e.cfg.CellSize.X,
		Y:     float64(s.GridY) * e.cfg.CellSize.Y,
		Scale: 1.0,
	}
}

// SectionPosition resolves a section id to its camera position.
func (e *Engine) SectionPosition(id string) (Position, bool) {
	s, ok := e.sections[id]
	if !ok {
		return Position{}, false
	}
	return e.gridPosition(s), true
}

// JumpToSection animates to the named section. force preempts an in-flight
// movement. Unknown ids are an error; a rejected request (already animating,
// not forced) is not.
func (e *Engine) JumpToSection(id string, force bool) error {
	target, ok := e.SectionPosition(id)
	if !ok {
		return fmt.Errorf("vista: unknown section %q", id)
	}
	if e.camera.RequestMovement(target, MoveJumpToSection, force) {
		e.pendingSection = id
	}
	return nil
}

// Update runs one frame: one injected input event (if queued), the script
// runner, then every scheduled callback in priority order. dt is the frame
// duration in seconds.
func (e *Engine) Update(dt float64) {
	if e.script != nil {
		e.script.step(e)
	}
	e.inject.consume(e.gestures)
	start := e.stats.begin()
	e.sched.Tick(dt)
	e.stats.end(start, e.sched.Len())
}

// Gestures exposes the input boundary for drivers and tests.
func (e *Engine) Gestures() *Gestures {
	return e.gestures
}

// Camera exposes the movement controller.
func (e *Engine) Camera() *Camera {
	return e.camera
}

// Menu exposes the radial activation menu.
func (e *Engine) Menu() *Menu {
	return e.menu
}

// Store exposes the navigation state store.
func (e *Engine) Store() *Store {
	return e.store
}

// Governor exposes the performance governor.
func (e *Engine) Governor() *Governor {
	return e.governor
}

// State returns the current navigation state snapshot.
func (e *Engine) State() NavigationState {
	return e.store.State()
}

// Transform returns the current CSS transform string.
func (e *Engine) Transform() string {
	return CSSTransform(e.store.State().Position)
}

// OnTransform subscribes to the transform string stream, fired after every
// committed position change.
func (e *Engine) OnTransform(fn TransformListener) EngineHandle {
	e.nextSubID++
	id := e.nextSubID
	e.transformSubs = append(e.transformSubs, transformListener{id: id, fn: fn})
	return EngineHandle{id: id, engine: e}
}

// OnSectionChange subscribes to active-section change events.
func (e *Engine) OnSectionChange(fn SectionListener) EngineHandle {
	e.nextSubID++
	id := e.nextSubID
	e.sectionSubs = append(e.sectionSubs, sectionListener{id: id, fn: fn})
	return EngineHandle{id: id, engine: e, section: true}
}

// SetScript attaches a scripted input sequence stepped once per Update.
func (e *Engine) SetScript(r *ScriptRunner) {
	e.script = r
}

// Debug reports whether debug output is enabled.
func (e *Engine) Debug() bool {
	return e.cfg.Debug
}

// Shutdown cancels any in-flight animation and tears down all listeners and
// scheduled callbacks. The engine must not be used afterwards.
func (e *Engine) Shutdown() {
	e.camera.Cancel()
	e.sched.Shutdown()
	e.governor.Shutdown()
	e.store.Shutdown()
	e.transformSubs = nil
	e.sectionSubs = nil
}
