package vista

import (
	"math"
	"testing"
)

var testSections = []Section{
	{ID: "intro", GridX: 0, GridY: 0},
	{ID: "portraits", GridX: 1, GridY: 0},
	{ID: "landscapes", GridX: 0, GridY: 1},
	{ID: "projects", GridX: 1, GridY: 1},
	{ID: "about", GridX: 0, GridY: 2},
	{ID: "contact", GridX: 1, GridY: 2},
}

var testViewport = Vec2{X: 1280, Y: 720}

type menuRig struct {
	*cameraRig
	menu *Menu
}

func newMenuRig() *menuRig {
	r := newCameraRig(PerfHigh)
	cell := Vec2{X: 1280, Y: 720}
	target := func(id string) (Position, bool) {
		for _, s := range testSections {
			if s.ID == id {
				return Position{
					X:     float64(s.GridX) * cell.X,
					Y:     float64(s.GridY) * cell.Y,
					Scale: 1,
				}, true
			}
		}
		return Position{}, false
	}
	m := NewMenu(testSections, "intro", testViewport, r.camera, target)
	r.camera.OnComplete(m.MovementDone)
	return &menuRig{cameraRig: r, menu: m}
}

// tickMenu advances menu timers by n frames at 60fps.
func (r *menuRig) tickMenu(n int) {
	for i := 0; i < n; i++ {
		r.menu.Update(frameDt)
	}
}

func TestExclusiveActivation(t *testing.T) {
	r := newMenuRig()
	if !r.menu.ActivateAt(Vec2{X: 640, Y: 360}) {
		t.Fatal("first activation rejected")
	}
	first := r.menu.Session()

	if r.menu.ActivateAt(Vec2{X: 100, Y: 100}) {
		t.Error("second activation accepted while a session is open")
	}
	if r.menu.Session() != first {
		t.Error("original session was replaced")
	}
	if r.menu.Session().Anchor != first.Anchor {
		t.Error("original session mutated")
	}
}

func TestLayoutEdgeClearanceTopLeftCorner(t *testing.T) {
	// Anchor in the extreme top-left corner of a 1280x720 viewport: the
	// anchor must project inward until every destination clears the edges.
	_, dests := LayoutDestinations(Vec2{X: 5, Y: 5}, testViewport, testSections, "intro")

	if len(dests) != 6 {
		t.Fatalf("destinations = %d, want 6", len(dests))
	}
	for _, d := range dests {
		if d.Clipped {
			t.Errorf("%s clipped; clearance is satisfiable in a full viewport", d.Section.ID)
		}
		if d.Pos.X < edgeClearance-1e-6 || d.Pos.X > testViewport.X-edgeClearance+1e-6 ||
			d.Pos.Y < edgeClearance-1e-6 || d.Pos.Y > testViewport.Y-edgeClearance+1e-6 {
			t.Errorf("%s at %+v violates %v-unit clearance", d.Section.ID, d.Pos, edgeClearance)
		}
	}
}

func TestLayoutPreservesClockwiseOrder(t *testing.T) {
	_, dests := LayoutDestinations(Vec2{X: 10, Y: 700}, testViewport, testSections, "intro")
	anchor := averageOf(dests)

	// Walking the slice must advance the angle monotonically clockwise
	// (one wrap allowed).
	wraps := 0
	prev := math.Atan2(dests[0].Pos.Y-anchor.Y, dests[0].Pos.X-anchor.X)
	for _, d := range dests[1:] {
		a := math.Atan2(d.Pos.Y-anchor.Y, d.Pos.X-anchor.X)
		if a <= prev {
			wraps++
		}
		prev = a
	}
	if wraps > 1 {
		t.Errorf("angular order broken: %d wraps", wraps)
	}
}

func averageOf(dests []Destination) Vec2 {
	var c Vec2
	for _, d := range dests {
		c.X += d.Pos.X
		c.Y += d.Pos.Y
	}
	c.X /= float64(len(dests))
	c.Y /= float64(len(dests))
	return c
}

func TestLayoutTinyViewportPrioritizesHome(t *testing.T) {
	// A viewport too small for full clearance: the two destinations nearest
	// home keep full visibility, others may be clipped.
	vp := Vec2{X: 240, Y: 240}
	_, dests := LayoutDestinations(Vec2{X: 5, Y: 5}, vp, testSections, "intro")

	priority := homePriority(testSections, "intro")
	for _, i := range priority {
		d := dests[i]
		if d.Clipped {
			t.Errorf("priority destination %s clipped", d.Section.ID)
		}
	}
	clipped := 0
	for _, d := range dests {
		if d.Clipped {
			clipped++
		}
	}
	if clipped == 0 {
		t.Error("expected some clipped destinations in a 240x240 viewport")
	}
}

func TestHomePriorityIncludesHome(t *testing.T) {
	p := homePriority(testSections, "intro")
	if testSections[p[0]].ID != "intro" {
		t.Errorf("nearest = %s, want intro itself", testSections[p[0]].ID)
	}
	if p[0] == p[1] {
		t.Error("priority pair collapsed to one index")
	}
}

func TestHoldActivation(t *testing.T) {
	r := newMenuRig()
	r.menu.PointerDown(Vec2{X: 640, Y: 360}, false)
	if r.menu.State() != MenuPending {
		t.Fatalf("state = %v, want pending", r.menu.State())
	}

	r.tickMenu(17) // ~283ms, under the 300ms threshold
	if r.menu.State() != MenuPending {
		t.Error("activated before 300ms")
	}
	r.tickMenu(2)
	if r.menu.State() != MenuActive {
		t.Errorf("state = %v after 316ms hold, want active", r.menu.State())
	}
}

func TestHoldAbortedByDrag(t *testing.T) {
	r := newMenuRig()
	r.menu.PointerDown(Vec2{X: 640, Y: 360}, false)
	r.menu.PointerMove(Vec2{X: 660, Y: 360})
	if r.menu.State() != MenuInactive {
		t.Errorf("state = %v after drag, want inactive", r.menu.State())
	}
	r.tickMenu(30)
	if r.menu.State() != MenuInactive {
		t.Error("aborted hold still activated")
	}
}

func TestTouchLongPressThreshold(t *testing.T) {
	r := newMenuRig()
	r.menu.PointerDown(Vec2{X: 640, Y: 360}, true)

	r.tickMenu(20) // ~333ms: past the pointer threshold, under the touch one
	if r.menu.State() == MenuActive {
		t.Error("touch press activated at the pointer threshold")
	}
	r.tickMenu(26) // ~766ms total
	if r.menu.State() != MenuActive {
		t.Errorf("state = %v after 766ms long-press, want active", r.menu.State())
	}
}

func TestHoverActivation(t *testing.T) {
	r := newMenuRig()
	r.menu.PointerMove(Vec2{X: 640, Y: 360})
	r.tickMenu(47) // ~783ms
	if r.menu.State() == MenuActive {
		t.Error("activated before 800ms of stillness")
	}
	r.tickMenu(2)
	if r.menu.State() != MenuActive {
		t.Errorf("state = %v after motionless hover, want active", r.menu.State())
	}
}

func TestHoverResetByMovement(t *testing.T) {
	r := newMenuRig()
	r.menu.PointerMove(Vec2{X: 640, Y: 360})
	r.tickMenu(40)
	r.menu.PointerMove(Vec2{X: 700, Y: 360}) // beyond the dead zone: reset
	r.tickMenu(40)
	if r.menu.State() == MenuActive {
		t.Error("hover timer survived pointer movement")
	}
}

func TestLeaveCancellationAfterGrace(t *testing.T) {
	r := newMenuRig()
	r.menu.ActivateAt(Vec2{X: 640, Y: 360})
	r.menu.PointerMove(Vec2{X: 1200, Y: 50}) // outside the ring

	r.tickMenu(110) // ~1.83s: inside the grace period
	if r.menu.State() != MenuActive {
		t.Fatal("cancelled before the 2s grace period")
	}
	r.tickMenu(15)
	if r.menu.State() != MenuInactive {
		t.Errorf("state = %v after grace period, want inactive", r.menu.State())
	}
	if r.menu.Session() != nil {
		t.Error("session survived cancellation")
	}
}

func TestLeaveTimerResetOnReentry(t *testing.T) {
	r := newMenuRig()
	r.menu.ActivateAt(Vec2{X: 640, Y: 360})
	anchor := r.menu.Session().Anchor

	r.menu.PointerMove(Vec2{X: 1200, Y: 50})
	r.tickMenu(100)
	r.menu.PointerMove(anchor) // re-enter before expiry
	r.tickMenu(100)

	if r.menu.State() != MenuActive {
		t.Error("re-entry did not cancel the leave timer")
	}
}

func TestSelectionJumpsAndClosesOnCompletion(t *testing.T) {
	r := newMenuRig()
	r.menu.ActivateAt(Vec2{X: 640, Y: 360})
	dest := r.menu.Session().Destinations[1] // "portraits"

	if !r.menu.PointerUp(dest.Pos) {
		t.Fatal("release over a destination not consumed")
	}
	if r.menu.State() != MenuSelecting {
		t.Fatalf("state = %v, want selecting", r.menu.State())
	}
	if !r.camera.Animating() {
		t.Fatal("selection did not start a movement")
	}

	r.run(60) // completion fires MovementDone
	if r.menu.State() != MenuInactive {
		t.Errorf("state = %v after movement completed, want inactive", r.menu.State())
	}
	p := r.store.State().Position
	if !approxEqual(p.X, 1280, 0.5) || !approxEqual(p.Y, 0, 0.5) {
		t.Errorf("position = %+v, want the portraits cell", p)
	}
}

func TestSelectionPreemptsInFlightMovement(t *testing.T) {
	r := newMenuRig()
	r.camera.RequestMovement(Position{X: 1280, Y: 1440, Scale: 1}, MoveJumpToSection, false)
	r.run(10)

	r.menu.ActivateAt(Vec2{X: 640, Y: 360})
	dest := r.menu.Session().Destinations[1]
	r.menu.PointerUp(dest.Pos)
	r.run(60)

	p := r.store.State().Position
	if !approxEqual(p.X, 1280, 0.5) || !approxEqual(p.Y, 0, 0.5) {
		t.Errorf("position = %+v, want the selected destination, not the old target", p)
	}
}

func TestKeyboardFocusAndSelect(t *testing.T) {
	r := newMenuRig()
	r.menu.ActivateAt(Vec2{X: 640, Y: 360})

	if !r.menu.KeyPress(KeyRight) {
		t.Fatal("arrow not consumed by the open menu")
	}
	if r.menu.FocusedDestination().Section.ID != "portraits" {
		t.Errorf("focus = %s, want portraits", r.menu.FocusedDestination().Section.ID)
	}
	r.menu.KeyPress(KeyLeft)
	r.menu.KeyPress(KeyLeft)
	if r.menu.FocusedDestination().Section.ID != "contact" {
		t.Errorf("focus = %s, want contact (wrap backwards)", r.menu.FocusedDestination().Section.ID)
	}

	r.menu.KeyPress(KeyRight)
	r.menu.KeyPress(KeyEnter)
	if r.menu.State() != MenuSelecting {
		t.Errorf("state = %v after Enter, want selecting", r.menu.State())
	}
}

func TestEscapeCancelsSession(t *testing.T) {
	r := newMenuRig()
	r.menu.ActivateAt(Vec2{X: 640, Y: 360})
	if !r.menu.KeyPress(KeyEscape) {
		t.Fatal("Escape not consumed by the open menu")
	}
	if r.menu.State() != MenuInactive || r.menu.Session() != nil {
		t.Error("session survived Escape")
	}
}

func TestObserverSeesOpenAndClose(t *testing.T) {
	r := newMenuRig()
	var events []bool // true = open
	r.menu.SetObserver(func(_ MenuState, session *ActivationSession) {
		events = append(events, session != nil)
	})

	r.menu.ActivateAt(Vec2{X: 640, Y: 360})
	r.menu.Cancel()

	if len(events) != 2 || !events[0] || events[1] {
		t.Errorf("events = %v, want [open close]", events)
	}
}
