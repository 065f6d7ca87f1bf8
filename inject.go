package vista

// Synthetic input injection. Queued events are consumed one per frame on the
// next Update, taking the exact path real driver input takes, so scripted
// runs and tests exercise the same gesture state machines.

type injectKind uint8

const (
	injectPress injectKind = iota
	injectMove
	injectRelease
	injectKey
	injectTouches
	injectWheel
)

type syntheticEvent struct {
	kind    injectKind
	pos     Vec2
	key     Key
	touches []Vec2
	wheel   float64
}

type injectQueue struct {
	events []syntheticEvent
}

func (q *injectQueue) push(e syntheticEvent) {
	q.events = append(q.events, e)
}

// consume pops one event and feeds it to the gesture manager. Returns true
// if an event was consumed.
func (q *injectQueue) consume(g *Gestures) bool {
	if len(q.events) == 0 {
		return false
	}
	evt := q.events[0]
	copy(q.events, q.events[1:])
	q.events = q.events[:len(q.events)-1]

	switch evt.kind {
	case injectPress:
		g.PointerDown(evt.pos.X, evt.pos.Y)
	case injectMove:
		g.PointerMove(evt.pos.X, evt.pos.Y)
	case injectRelease:
		g.PointerUp(evt.pos.X, evt.pos.Y)
	case injectKey:
		g.KeyPress(evt.key)
	case injectTouches:
		g.Touches(evt.touches)
	case injectWheel:
		g.WheelZoom(evt.wheel)
	}
	return true
}

func (q *injectQueue) pending() int {
	return len(q.events)
}

// InjectPress queues a pointer press at (x, y), consumed on the next Update.
func (e *Engine) InjectPress(x, y float64) {
	e.inject.push(syntheticEvent{kind: injectPress, pos: Vec2{X: x, Y: y}})
}

// InjectMove queues a pointer move to (x, y).
func (e *Engine) InjectMove(x, y float64) {
	e.inject.push(syntheticEvent{kind: injectMove, pos: Vec2{X: x, Y: y}})
}

// InjectRelease queues a pointer release at (x, y).
func (e *Engine) InjectRelease(x, y float64) {
	e.inject.push(syntheticEvent{kind: injectRelease, pos: Vec2{X: x, Y: y}})
}

// InjectKey queues a key press.
func (e *Engine) InjectKey(k Key) {
	e.inject.push(syntheticEvent{kind: injectKey, key: k})
}

// InjectTouches queues one frame of touch state. Pass no points for a
// release.
func (e *Engine) InjectTouches(points ...Vec2) {
	e.inject.push(syntheticEvent{kind: injectTouches, touches: points})
}

// InjectWheel queues a wheel zoom step.
func (e *Engine) InjectWheel(dy float64) {
	e.inject.push(syntheticEvent{kind: injectWheel, wheel: dy})
}

// InjectDrag queues a full drag: press at (fromX, fromY), linearly
// interpolated moves over frames-2 intermediate frames, and release at
// (toX, toY). Minimum frames is 2 (press + release).
func (e *Engine) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	e.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		e.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	e.InjectRelease(toX, toY)
}
