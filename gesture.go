package vista

import "math"

const defaultDragDeadZone = 4.0 // units of movement before a drag starts

// pointerState tracks one pointer through a press/drag/release interaction.
type pointerState struct {
	down     bool
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
	dragging bool
}

// pinchState tracks a two-finger zoom gesture.
type pinchState struct {
	active       bool
	initialDist  float64
	initialScale float64
}

// Gestures normalizes pointer, touch, and keyboard input into movement
// intents and executes them: drags and pinches write the store directly,
// keyboard intents go through the movement controller so they get the same
// animated easing as everything else. Radial-menu triggers are forwarded to
// the menu before any pan handling; an active session consumes the pointer.
type Gestures struct {
	store  *Store
	camera *Camera
	menu   *Menu

	pointer      pointerState
	touchPan     pointerState
	pinch        pinchState
	dragDeadZone float64

	// jumpHome is invoked for Escape outside a radial session.
	jumpHome func()
}

// NewGestures creates a gesture manager. menu and jumpHome may be nil.
func NewGestures(store *Store, camera *Camera, menu *Menu, jumpHome func()) *Gestures {
	return &Gestures{
		store:        store,
		camera:       camera,
		menu:         menu,
		jumpHome:     jumpHome,
		dragDeadZone: defaultDragDeadZone,
	}
}

// SetDragDeadZone sets the minimum movement before a press becomes a drag.
func (g *Gestures) SetDragDeadZone(units float64) {
	g.dragDeadZone = units
}

// panBy applies a drag delta in screen units. Sensitivity is inversely
// proportional to scale so panning feels uniform at any zoom level.
func (g *Gestures) panBy(dx, dy float64) {
	g.dispatch(MovementIntent{Kind: MovePan, Delta: Vec2{X: dx, Y: dy}})
}

// dispatch executes one movement intent.
func (g *Gestures) dispatch(intent MovementIntent) {
	p := g.store.State().Position
	switch intent.Kind {
	case MovePan:
		p.X -= intent.Delta.X / p.Scale
		p.Y -= intent.Delta.Y / p.Scale
		_ = g.store.UpdatePosition(p)
	case MoveZoom:
		p.Scale = intent.ScaleTo
		_ = g.store.UpdatePosition(p)
	}
}

// --- Pointer (mouse) ---

// PointerDown handles a primary-button press at screen position (x, y).
func (g *Gestures) PointerDown(x, y float64) {
	if g.menu != nil && g.menu.PointerDown(Vec2{X: x, Y: y}, false) {
		return
	}
	g.pointer = pointerState{down: true, startX: x, startY: y, lastX: x, lastY: y}
}

// PointerMove handles pointer movement, pressed or hovering.
func (g *Gestures) PointerMove(x, y float64) {
	if g.menu != nil && g.menu.PointerMove(Vec2{X: x, Y: y}) {
		g.pointer.dragging = false
		g.pointer.lastX, g.pointer.lastY = x, y
		return
	}
	ps := &g.pointer
	if !ps.down {
		ps.lastX, ps.lastY = x, y
		return
	}
	if !ps.dragging {
		dx := x - ps.startX
		dy := y - ps.startY
		if math.Sqrt(dx*dx+dy*dy) > g.dragDeadZone {
			ps.dragging = true
		}
	}
	if ps.dragging {
		g.panBy(x-ps.lastX, y-ps.lastY)
	}
	ps.lastX, ps.lastY = x, y
}

// PointerUp handles a primary-button release.
func (g *Gestures) PointerUp(x, y float64) {
	if g.menu != nil {
		g.menu.PointerUp(Vec2{X: x, Y: y})
	}
	g.pointer.down = false
	g.pointer.dragging = false
}

// --- Touch ---

// Touches handles the full set of active touch points for this frame.
// One finger pans, two fingers pinch-zoom. When a second finger lands
// mid-pan, the pan state is discarded and pinch tracking starts fresh:
// last gesture wins, no blending.
func (g *Gestures) Touches(points []Vec2) {
	switch len(points) {
	case 0:
		if g.touchPan.down && g.menu != nil {
			g.menu.PointerUp(Vec2{X: g.touchPan.lastX, Y: g.touchPan.lastY})
		}
		g.touchPan = pointerState{}
		g.pinch.active = false

	case 1:
		g.pinch.active = false
		p := points[0]
		ts := &g.touchPan
		if !ts.down {
			*ts = pointerState{down: true, startX: p.X, startY: p.Y, lastX: p.X, lastY: p.Y}
			if g.menu != nil {
				g.menu.PointerDown(p, true)
			}
			return
		}
		if g.menu != nil && g.menu.PointerMove(p) {
			ts.lastX, ts.lastY = p.X, p.Y
			return
		}
		if !ts.dragging {
			dx := p.X - ts.startX
			dy := p.Y - ts.startY
			if math.Sqrt(dx*dx+dy*dy) > g.dragDeadZone {
				ts.dragging = true
			}
		}
		if ts.dragging {
			g.panBy(p.X-ts.lastX, p.Y-ts.lastY)
		}
		ts.lastX, ts.lastY = p.X, p.Y

	default:
		// Two or more fingers: the first two define the pinch.
		g.touchPan = pointerState{}
		if g.menu != nil {
			g.menu.CancelPending()
		}
		dx := points[1].X - points[0].X
		dy := points[1].Y - points[0].Y
		dist := math.Sqrt(dx*dx + dy*dy)

		if !g.pinch.active {
			g.pinch = pinchState{
				active:       true,
				initialDist:  dist,
				initialScale: g.store.State().Position.Scale,
			}
			return
		}
		if g.pinch.initialDist > 0 {
			target := g.pinch.initialScale * dist / g.pinch.initialDist
			g.dispatch(MovementIntent{Kind: MoveZoom, ScaleTo: target})
		}
	}
}

// --- Keyboard ---

// KeyPress handles one key from the engine's fixed key set. All keyboard
// movement goes through the controller so it receives the same animated
// easing as gesture navigation.
func (g *Gestures) KeyPress(k Key) {
	if g.menu != nil && g.menu.KeyPress(k) {
		return
	}

	p := g.store.State().Position
	switch k {
	case KeyLeft:
		p.X -= keyboardPanStep
		g.camera.RequestMovement(p, MovePan, false)
	case KeyRight:
		p.X += keyboardPanStep
		g.camera.RequestMovement(p, MovePan, false)
	case KeyUp:
		p.Y -= keyboardPanStep
		g.camera.RequestMovement(p, MovePan, false)
	case KeyDown:
		p.Y += keyboardPanStep
		g.camera.RequestMovement(p, MovePan, false)
	case KeyZoomIn:
		p.Scale += keyboardZoomStep
		g.camera.RequestMovement(p, MoveZoom, false)
	case KeyZoomOut:
		p.Scale -= keyboardZoomStep
		g.camera.RequestMovement(p, MoveZoom, false)
	case KeyActivate:
		if g.menu != nil {
			g.menu.ActivateAt(Vec2{X: g.pointer.lastX, Y: g.pointer.lastY})
		}
	case KeyEscape:
		if g.jumpHome != nil {
			g.jumpHome()
		}
	}
}

// WheelZoom applies a mouse-wheel zoom step. Positive dy zooms in.
func (g *Gestures) WheelZoom(dy float64) {
	if dy == 0 {
		return
	}
	p := g.store.State().Position
	p.Scale += dy * keyboardZoomStep
	g.camera.RequestMovement(p, MoveZoom, false)
}
