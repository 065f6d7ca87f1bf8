package vista

import "math"

// Radial menu tuning. Destinations sit on a fixed ring around the anchor;
// every visible destination keeps edgeClearance units from the viewport
// edges after repositioning.
const (
	menuRadius    = 120.0
	edgeClearance = 40.0
	destHitRadius = 30.0
	holdActivate  = 0.30 // pointer-down-and-hold, seconds
	hoverActivate = 0.80 // motionless hover, seconds
	pressActivate = 0.75 // touch long-press, seconds
	leaveGrace    = 2.0  // pointer outside the menu before cancellation
	leaveSlack    = 40.0 // how far past the ring still counts as inside
)

// MenuState is the radial menu's lifecycle state.
type MenuState uint8

const (
	MenuInactive  MenuState = iota
	MenuPending             // an activation timer is running
	MenuActive              // a session is open
	MenuSelecting           // a destination was chosen; jump in flight
)

// Destination is one section placed on the activation ring. Clipped marks a
// destination that could not be given full edge clearance in an extreme
// viewport corner; clipped destinations are never the ones nearest home.
type Destination struct {
	Section Section
	Pos     Vec2
	Clipped bool
}

// ActivationSession is the lifetime of one radial interaction, from trigger
// to selection or cancellation. At most one session exists at a time.
type ActivationSession struct {
	Anchor       Vec2
	Destinations []Destination
	Active       bool
}

// SessionObserver is notified when a session opens or closes. The session
// pointer is nil on close.
type SessionObserver func(state MenuState, session *ActivationSession)

// Menu is the gesture-gated radial selector. Activation triggers: hold a
// press for 300ms, hover without movement for 800ms, the activation key, or
// a 750ms touch long-press. A selection jumps to the chosen section with a
// forced movement and the session closes when that movement completes.
type Menu struct {
	sections []Section
	homeID   string
	viewport Vec2
	camera   *Camera

	// sectionTarget resolves a section id to its camera position.
	sectionTarget func(id string) (Position, bool)

	state   MenuState
	session *ActivationSession
	focus   int

	hold struct {
		touch   bool
		pos     Vec2
		elapsed float64
	}
	hover struct {
		armed   bool // only after a hover move; never before input arrives
		pos     Vec2
		elapsed float64
	}
	leaveFor float64
	pointer  Vec2

	observer SessionObserver
	onSelect func(sectionID string)
}

// NewMenu creates a radial menu for the given section set.
func NewMenu(sections []Section, homeID string, viewport Vec2, camera *Camera,
	sectionTarget func(id string) (Position, bool)) *Menu {
	return &Menu{
		sections:      sections,
		homeID:        homeID,
		viewport:      viewport,
		camera:        camera,
		sectionTarget: sectionTarget,
	}
}

// SetObserver registers the single session observer (announcements, URL
// mirroring). Replaces any previous observer.
func (m *Menu) SetObserver(fn SessionObserver) {
	m.observer = fn
}

// OnSelect registers a callback fired with the chosen section id once a
// selection's jump has been accepted. The engine uses it to commit the
// active section when the jump completes.
func (m *Menu) OnSelect(fn func(sectionID string)) {
	m.onSelect = fn
}

// State returns the menu's lifecycle state.
func (m *Menu) State() MenuState {
	return m.state
}

// Session returns the open session, or nil.
func (m *Menu) Session() *ActivationSession {
	return m.session
}

// FocusedDestination returns the keyboard-focused destination, or nil when
// no session is open.
func (m *Menu) FocusedDestination() *Destination {
	if m.session == nil || len(m.session.Destinations) == 0 {
		return nil
	}
	return &m.session.Destinations[m.focus]
}

// Update advances the activation and cancellation timers by dt seconds.
// Called once per frame from the engine's scheduler.
func (m *Menu) Update(dt float64) {
	switch m.state {
	case MenuPending:
		m.hold.elapsed += dt
		threshold := holdActivate
		if m.hold.touch {
			threshold = pressActivate
		}
		if m.hold.elapsed >= threshold {
			m.state = MenuInactive
			m.ActivateAt(m.hold.pos)
		}

	case MenuInactive:
		if m.hover.armed {
			m.hover.elapsed += dt
			if m.hover.elapsed >= hoverActivate {
				m.hover.armed = false
				m.hover.elapsed = 0
				m.ActivateAt(m.hover.pos)
			}
		}

	case MenuActive:
		if m.pointerOutside() {
			m.leaveFor += dt
			if m.leaveFor >= leaveGrace {
				m.Cancel()
			}
		} else {
			m.leaveFor = 0
		}
	}
}

// pointerOutside reports whether the pointer has left the menu boundary.
func (m *Menu) pointerOutside() bool {
	if m.session == nil {
		return false
	}
	dx := m.pointer.X - m.session.Anchor.X
	dy := m.pointer.Y - m.session.Anchor.Y
	limit := menuRadius + leaveSlack
	return dx*dx+dy*dy > limit*limit
}

// ActivateAt opens a session anchored at p. Returns false if a session is
// already open: concurrent activation is rejected, never queued, and the
// original session is left untouched.
func (m *Menu) ActivateAt(p Vec2) bool {
	if m.state == MenuActive || m.state == MenuSelecting {
		return false
	}
	anchor, dests := LayoutDestinations(p, m.viewport, m.sections, m.homeID)
	m.session = &ActivationSession{Anchor: anchor, Destinations: dests, Active: true}
	m.state = MenuActive
	m.focus = 0
	m.leaveFor = 0
	m.pointer = anchor
	if m.observer != nil {
		m.observer(m.state, m.session)
	}
	return true
}

// Cancel closes the open session without selecting.
func (m *Menu) Cancel() {
	if m.state != MenuActive && m.state != MenuSelecting {
		return
	}
	m.close()
}

func (m *Menu) close() {
	m.state = MenuInactive
	m.session = nil
	m.leaveFor = 0
	m.hover.elapsed = 0
	if m.observer != nil {
		m.observer(MenuInactive, nil)
	}
}

// CancelPending aborts a running activation timer (a pinch started, or the
// press turned into a drag).
func (m *Menu) CancelPending() {
	if m.state == MenuPending {
		m.state = MenuInactive
	}
	m.hover.elapsed = 0
}

// selectDestination requests the jump and holds the session open in the
// selecting state until the movement completes.
func (m *Menu) selectDestination(d Destination) {
	target, ok := m.sectionTarget(d.Section.ID)
	if !ok {
		m.close()
		return
	}
	m.state = MenuSelecting
	if m.camera.RequestMovement(target, MoveJumpToSection, true) && m.onSelect != nil {
		m.onSelect(d.Section.ID)
	}
}

// MovementDone closes a selecting session. Wired to the camera's completion
// callback by the engine.
func (m *Menu) MovementDone(kind MovementKind) {
	if m.state == MenuSelecting && kind == MoveJumpToSection {
		m.close()
	}
}

// destinationAt returns the destination under p, or nil.
func (m *Menu) destinationAt(p Vec2) *Destination {
	if m.session == nil {
		return nil
	}
	for i := range m.session.Destinations {
		d := &m.session.Destinations[i]
		dx := p.X - d.Pos.X
		dy := p.Y - d.Pos.Y
		if dx*dx+dy*dy <= destHitRadius*destHitRadius {
			return d
		}
	}
	return nil
}

// --- Input hooks (called by Gestures) ---

// PointerDown starts a hold-activation timer, or consumes the press when a
// session is already open. touch selects the long-press threshold.
func (m *Menu) PointerDown(p Vec2, touch bool) bool {
	m.pointer = p
	switch m.state {
	case MenuActive, MenuSelecting:
		return true
	case MenuInactive:
		m.state = MenuPending
		m.hold.touch = touch
		m.hold.pos = p
		m.hold.elapsed = 0
		m.hover.armed = false
		m.hover.elapsed = 0
	}
	return false
}

// PointerMove tracks the pointer. Movement beyond the dead zone aborts a
// pending hold and resets the motionless-hover timer. Returns true while a
// session consumes the pointer.
func (m *Menu) PointerMove(p Vec2) bool {
	switch m.state {
	case MenuPending:
		dx := p.X - m.hold.pos.X
		dy := p.Y - m.hold.pos.Y
		if math.Sqrt(dx*dx+dy*dy) > defaultDragDeadZone {
			m.CancelPending()
		}
		m.pointer = p
		return false

	case MenuActive, MenuSelecting:
		m.pointer = p
		if d := m.destinationAt(p); d != nil {
			for i := range m.session.Destinations {
				if &m.session.Destinations[i] == d {
					m.focus = i
				}
			}
		}
		return true
	}

	// Motionless-hover tracking.
	dx := p.X - m.hover.pos.X
	dy := p.Y - m.hover.pos.Y
	if !m.hover.armed || math.Sqrt(dx*dx+dy*dy) > defaultDragDeadZone {
		m.hover.armed = true
		m.hover.pos = p
		m.hover.elapsed = 0
	}
	m.pointer = p
	return false
}

// PointerUp selects the destination under the pointer when a session is
// open. A release elsewhere leaves the session open. Returns true when the
// release was consumed.
func (m *Menu) PointerUp(p Vec2) bool {
	m.pointer = p
	switch m.state {
	case MenuPending:
		m.CancelPending()
		return false
	case MenuActive:
		if d := m.destinationAt(p); d != nil {
			m.selectDestination(*d)
		}
		return true
	case MenuSelecting:
		return true
	}
	return false
}

// KeyPress handles keyboard control of an open session: arrows move focus,
// Enter selects, Escape cancels. Returns true when consumed.
func (m *Menu) KeyPress(k Key) bool {
	if m.state != MenuActive {
		return false
	}
	n := len(m.session.Destinations)
	switch k {
	case KeyRight, KeyDown:
		m.focus = (m.focus + 1) % n
	case KeyLeft, KeyUp:
		m.focus = (m.focus + n - 1) % n
	case KeyEnter:
		m.selectDestination(m.session.Destinations[m.focus])
	case KeyEscape:
		m.Cancel()
	default:
		return false
	}
	return true
}

// --- Layout ---

// LayoutDestinations places each section on a ring around anchor, clockwise
// from 12 o'clock, then projects the anchor inward so every destination
// keeps edgeClearance units from the viewport edges. Relative clockwise
// ordering is always preserved because only the anchor moves. When clearance
// cannot be satisfied for all destinations at once, the two nearest the home
// section keep full visibility and the rest are marked clipped. Pure
// function; returns the adjusted anchor and the placed destinations.
func LayoutDestinations(anchor Vec2, viewport Vec2, sections []Section, homeID string) (Vec2, []Destination) {
	n := len(sections)
	if n == 0 {
		return anchor, nil
	}

	offsets := make([]Vec2, n)
	for i := range sections {
		angle := -math.Pi/2 + 2*math.Pi*float64(i)/float64(n)
		offsets[i] = Vec2{X: menuRadius * math.Cos(angle), Y: menuRadius * math.Sin(angle)}
	}

	priority := homePriority(sections, homeID)

	ax := projectAxis(anchor.X, viewport.X, offsets, priority, func(o Vec2) float64 { return o.X })
	ay := projectAxis(anchor.Y, viewport.Y, offsets, priority, func(o Vec2) float64 { return o.Y })
	adjusted := Vec2{X: ax, Y: ay}

	const slop = 1e-6 // rounding from the anchor projection
	dests := make([]Destination, n)
	for i, s := range sections {
		pos := Vec2{X: adjusted.X + offsets[i].X, Y: adjusted.Y + offsets[i].Y}
		clipped := pos.X < edgeClearance-slop || pos.X > viewport.X-edgeClearance+slop ||
			pos.Y < edgeClearance-slop || pos.Y > viewport.Y-edgeClearance+slop
		dests[i] = Destination{Section: s, Pos: pos, Clipped: clipped}
	}
	return adjusted, dests
}

// projectAxis clamps one anchor axis into the interval where every offset
// keeps full clearance. If that interval is empty, only the priority
// destinations constrain the anchor.
func projectAxis(anchor, extent float64, offsets []Vec2, priority [2]int, axis func(Vec2) float64) float64 {
	lo := math.Inf(-1)
	hi := math.Inf(1)
	for _, o := range offsets {
		lo = math.Max(lo, edgeClearance-axis(o))
		hi = math.Min(hi, extent-edgeClearance-axis(o))
	}
	if lo <= hi {
		return math.Max(lo, math.Min(anchor, hi))
	}

	lo = math.Inf(-1)
	hi = math.Inf(1)
	for _, i := range priority {
		o := offsets[i]
		lo = math.Max(lo, edgeClearance-axis(o))
		hi = math.Min(hi, extent-edgeClearance-axis(o))
	}
	if lo <= hi {
		return math.Max(lo, math.Min(anchor, hi))
	}
	// Even the priority pair cannot both fit; center between their limits.
	return (lo + hi) / 2
}

// homePriority returns the indices of the two sections nearest the home
// section by grid distance. Home itself is always one of them.
func homePriority(sections []Section, homeID string) [2]int {
	var home Section
	for _, s := range sections {
		if s.ID == homeID {
			home = s
			break
		}
	}
	best := [2]int{0, 0}
	bestDist := [2]int{math.MaxInt32, math.MaxInt32}
	for i, s := range sections {
		d := abs(s.GridX-home.GridX) + abs(s.GridY-home.GridY)
		if d < bestDist[0] {
			best[1], bestDist[1] = best[0], bestDist[0]
			best[0], bestDist[0] = i, d
		} else if d < bestDist[1] {
			best[1], bestDist[1] = i, d
		}
	}
	return best
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
