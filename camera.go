package vista

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Scheduler key for the movement tick. One key means one animation: a
// preempting request replaces the callback instead of stacking a second loop.
const cameraTickKey = "camera.move"

// Movement durations in seconds. The low tier halves the section-jump
// duration and coarsens ticks to bound CPU cost.
const (
	panDuration        = 0.4
	zoomDuration       = 0.4
	sectionJumpTime    = 0.8
	sectionJumpTimeLow = 0.4
	matchCutTime       = 0.5
)

// moveAnim holds the active tweens for camera x, y, and scale.
type moveAnim struct {
	tweenX     *gween.Tween
	tweenY     *gween.Tween
	tweenScale *gween.Tween
	doneX      bool
	doneY      bool
	doneScale  bool
}

// Camera interpolates the store's position toward movement targets. It is a
// two-state machine, idle or animating; a request that arrives while
// animating is rejected unless it is a forced section jump, which cancels
// the current animation and restarts from the current interpolated position
// so the view never pops.
type Camera struct {
	store    *Store
	governor *Governor
	sched    *Scheduler

	anim      *moveAnim
	animating bool
	kind      MovementKind
	coarse    bool // low tier: advance every other tick at double dt
	skip      bool

	onComplete []func(MovementKind)
}

// NewCamera creates a movement controller writing through the given store.
func NewCamera(store *Store, governor *Governor, sched *Scheduler) *Camera {
	return &Camera{store: store, governor: governor, sched: sched}
}

// Animating reports whether a movement is in flight.
func (c *Camera) Animating() bool {
	return c.animating
}

// OnComplete registers a callback fired when a movement finishes (not when
// it is preempted or cancelled).
func (c *Camera) OnComplete(fn func(MovementKind)) {
	c.onComplete = append(c.onComplete, fn)
}

// durationFor returns the interpolation time for a movement kind at the
// current quality tier.
func (c *Camera) durationFor(kind MovementKind) float32 {
	low := c.governor != nil && c.governor.Tier().Level == QualityLow
	switch kind {
	case MoveJumpToSection, MoveDollyZoom:
		if low {
			return sectionJumpTimeLow
		}
		return sectionJumpTime
	case MoveMatchCut:
		if low {
			return sectionJumpTimeLow
		}
		return matchCutTime
	case MoveZoom:
		return zoomDuration
	default:
		return panDuration
	}
}

// easingFor returns the easing curve for the current tier. Everything is a
// single ease-out; the low tier falls back to linear.
func (c *Camera) easingFor() ease.TweenFunc {
	if c.governor != nil && c.governor.Tier().Level == QualityLow {
		return ease.Linear
	}
	return ease.OutQuad
}

// RequestMovement starts an animated movement to target. Returns false when
// the request is rejected: either the controller is already animating (and
// this is not a forced section jump), or the target is non-finite. A target
// outside the canvas bounds is not an error; the controller animates to the
// clamped position instead.
func (c *Camera) RequestMovement(target Position, kind MovementKind, force bool) bool {
	if err := ValidatePosition(target); err != nil {
		return false
	}
	if c.animating {
		if !(force && (kind == MoveJumpToSection || kind == MoveMatchCut || kind == MoveDollyZoom)) {
			return false
		}
		// Preempt: drop the old tweens and restart from the position the
		// previous animation last committed.
		c.sched.Unregister(cameraTickKey)
	}

	target = c.store.ClampPosition(target)
	from := c.store.State().Position
	dur := c.durationFor(kind)
	fn := c.easingFor()

	c.anim = &moveAnim{
		tweenX:     gween.New(float32(from.X), float32(target.X), dur, fn),
		tweenY:     gween.New(float32(from.Y), float32(target.Y), dur, fn),
		tweenScale: gween.New(float32(from.Scale), float32(target.Scale), dur, fn),
	}
	c.kind = kind
	c.animating = true
	c.coarse = c.governor != nil && c.governor.Tier().Level == QualityLow
	c.skip = false
	c.store.SetTransitioning(true)
	c.sched.Register(cameraTickKey, PriorityHigh, c.tick)
	return true
}

// tick advances the active tweens by dt and writes the interpolated position
// through the store. At the low tier ticks are coarsened: every other frame
// is skipped and the next one advances by the combined dt.
func (c *Camera) tick(dt float64) {
	if c.anim == nil {
		return
	}
	if c.coarse {
		c.skip = !c.skip
		if c.skip {
			return
		}
		dt *= 2
	}

	a := c.anim
	p := c.store.State().Position
	fdt := float32(dt)

	if !a.doneX {
		v, done := a.tweenX.Update(fdt)
		p.X = float64(v)
		a.doneX = done
	}
	if !a.doneY {
		v, done := a.tweenY.Update(fdt)
		p.Y = float64(v)
		a.doneY = done
	}
	if !a.doneScale {
		v, done := a.tweenScale.Update(fdt)
		p.Scale = float64(v)
		a.doneScale = done
	}

	// Interpolated frames are clamped on write like any other position.
	_ = c.store.UpdatePosition(p)

	if a.doneX && a.doneY && a.doneScale {
		kind := c.kind
		c.finish()
		for _, fn := range c.onComplete {
			fn(kind)
		}
	}
}

// Cancel stops any in-flight animation, unregistering its tick synchronously.
// No completion callbacks fire.
func (c *Camera) Cancel() {
	if !c.animating {
		return
	}
	c.finish()
}

func (c *Camera) finish() {
	c.sched.Unregister(cameraTickKey)
	c.anim = nil
	c.animating = false
	c.store.SetTransitioning(false)
}
