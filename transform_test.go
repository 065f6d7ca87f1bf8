package vista

import (
	"math"
	"strings"
	"testing"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func TestScrollRoundtrip(t *testing.T) {
	offsets := []ScrollOffset{
		{Left: 0, Top: 0},
		{Left: 640, Top: 480},
		{Left: -120.5, Top: 33.25},
		{Left: 99999, Top: -99999},
	}
	scales := []float64{0.5, 1.0, 1.5, 3.0}

	for _, o := range offsets {
		for _, scale := range scales {
			back := ToScrollSpace(ToCanvasSpace(o, scale))
			if !approxEqual(back.Left, o.Left, 1e-6) || !approxEqual(back.Top, o.Top, 1e-6) {
				t.Errorf("roundtrip at scale %v: got {%v, %v}, want {%v, %v}",
					scale, back.Left, back.Top, o.Left, o.Top)
			}
		}
	}
}

func TestClampIdempotent(t *testing.T) {
	bounds := Rect{X: 0, Y: 0, Width: 1280, Height: 1440}
	positions := []Position{
		{X: -500, Y: -500, Scale: 0.1},
		{X: 640, Y: 700, Scale: 1.0},
		{X: 9999, Y: 9999, Scale: 99},
		{X: 0, Y: 1440, Scale: 3.0},
	}
	for _, p := range positions {
		once := Clamp(p, bounds)
		twice := Clamp(once, bounds)
		if once != twice {
			t.Errorf("clamp not idempotent: %+v -> %+v -> %+v", p, once, twice)
		}
	}
}

func TestClampScaleBounds(t *testing.T) {
	bounds := Rect{Width: 1000, Height: 1000}
	if got := Clamp(Position{Scale: 0.01}, bounds).Scale; got != MinScale {
		t.Errorf("Scale = %v, want %v", got, MinScale)
	}
	if got := Clamp(Position{Scale: 50}, bounds).Scale; got != MaxScale {
		t.Errorf("Scale = %v, want %v", got, MaxScale)
	}
}

func TestClampCentersWhenCanvasSmaller(t *testing.T) {
	// Negative extent: the visible area is wider than the canvas.
	bounds := Rect{X: 0, Y: 0, Width: -640, Height: 200}
	p := Clamp(Position{X: 500, Y: 500, Scale: 1}, bounds)
	if !approxEqual(p.X, -320, epsilon) {
		t.Errorf("X = %v, want centered -320", p.X)
	}
	if !approxEqual(p.Y, 200, epsilon) {
		t.Errorf("Y = %v, want 200", p.Y)
	}
}

func TestValidatePosition(t *testing.T) {
	if err := ValidatePosition(Position{X: 1, Y: 2, Scale: 1}); err != nil {
		t.Errorf("finite position rejected: %v", err)
	}
	bad := []Position{
		{X: math.NaN(), Scale: 1},
		{Y: math.Inf(1), Scale: 1},
		{X: 0, Y: 0, Scale: math.Inf(-1)},
	}
	for _, p := range bad {
		if err := ValidatePosition(p); err == nil {
			t.Errorf("ValidatePosition(%+v) = nil, want error", p)
		}
	}
}

func TestCSSTransform(t *testing.T) {
	got := CSSTransform(Position{X: 100, Y: 50, Scale: 2})
	want := "translate3d(-200.00px, -100.00px, 0) scale(2.000)"
	if got != want {
		t.Errorf("CSSTransform = %q, want %q", got, want)
	}
	if !strings.HasPrefix(CSSTransform(Position{Scale: 1}), "translate3d(") {
		t.Error("transform string missing translate3d prefix")
	}
}

func TestCanvasBounds(t *testing.T) {
	sections := []Section{
		{ID: "a", GridX: 0, GridY: 0},
		{ID: "b", GridX: 1, GridY: 0},
		{ID: "c", GridX: 0, GridY: 2},
	}
	b := CanvasBounds(sections, Vec2{X: 1280, Y: 720})
	if b.Width != 2560 || b.Height != 2160 {
		t.Errorf("bounds = %vx%v, want 2560x2160", b.Width, b.Height)
	}
}

func TestPositionBoundsShrinkWithZoom(t *testing.T) {
	canvas := Rect{Width: 2560, Height: 2160}
	vp := Vec2{X: 1280, Y: 720}

	atOne := PositionBounds(canvas, vp, 1.0)
	if !approxEqual(atOne.Width, 1280, epsilon) || !approxEqual(atOne.Height, 1440, epsilon) {
		t.Errorf("bounds at scale 1 = %+v", atOne)
	}

	// Zooming in shows less canvas, so more positions are valid.
	atTwo := PositionBounds(canvas, vp, 2.0)
	if atTwo.Width <= atOne.Width {
		t.Errorf("bounds should grow with zoom: %v <= %v", atTwo.Width, atOne.Width)
	}
}
