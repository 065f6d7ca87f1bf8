package vista

import (
	"fmt"
	"math"
)

// This file is the coordinate transform engine: pure conversions between
// scroll-offset space and canvas space, bounds clamping, and CSS transform
// synthesis. Nothing here holds state.
//
// Non-finite input (NaN or ±Inf) is a precondition violation. The conversion
// functions are total over finite inputs; writers validate with
// ValidatePosition / ValidateOffset before committing and report the error
// to their caller rather than coercing.

// ValidatePosition reports a precondition violation if any component of p is
// NaN or infinite.
func ValidatePosition(p Position) error {
	if !isFinite(p.X) || !isFinite(p.Y) || !isFinite(p.Scale) {
		return fmt.Errorf("vista: non-finite position {%v, %v, scale %v}", p.X, p.Y, p.Scale)
	}
	return nil
}

// ValidateOffset reports a precondition violation if either component of o is
// NaN or infinite.
func ValidateOffset(o ScrollOffset) error {
	if !isFinite(o.Left) || !isFinite(o.Top) {
		return fmt.Errorf("vista: non-finite scroll offset {%v, %v}", o.Left, o.Top)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ToCanvasSpace converts a scroll offset to a canvas position at the given
// scale. Inverse of ToScrollSpace for any fixed scale.
func ToCanvasSpace(o ScrollOffset, scale float64) Position {
	return Position{X: o.Left / scale, Y: o.Top / scale, Scale: scale}
}

// ToScrollSpace converts a canvas position to the scroll offset a scrolling
// container would report for the same view.
func ToScrollSpace(p Position) ScrollOffset {
	return ScrollOffset{Left: p.X * p.Scale, Top: p.Y * p.Scale}
}

// CSSTransform returns the transform string to apply to the content container
// for position p. The translation is the negated scroll offset, so the
// container slides opposite to the camera.
func CSSTransform(p Position) string {
	o := ToScrollSpace(p)
	return fmt.Sprintf("translate3d(%.2fpx, %.2fpx, 0) scale(%.3f)", -o.Left, -o.Top, p.Scale)
}

// CanvasBounds returns the canvas-space rectangle covering every section
// cell. cell is the size of one grid cell in canvas units.
func CanvasBounds(sections []Section, cell Vec2) Rect {
	var maxGX, maxGY int
	for _, s := range sections {
		if s.GridX > maxGX {
			maxGX = s.GridX
		}
		if s.GridY > maxGY {
			maxGY = s.GridY
		}
	}
	return Rect{
		Width:  float64(maxGX+1) * cell.X,
		Height: float64(maxGY+1) * cell.Y,
	}
}

// PositionBounds returns the rectangle of valid camera positions for a canvas
// viewed through a viewport at the given scale. The width or height is
// negative when the canvas is smaller than the visible area; Clamp centers
// the camera in that case.
func PositionBounds(canvas Rect, viewport Vec2, scale float64) Rect {
	return Rect{
		X:      canvas.X,
		Y:      canvas.Y,
		Width:  canvas.Width - viewport.X/scale,
		Height: canvas.Height - viewport.Y/scale,
	}
}

// Clamp restricts p to the valid position bounds and the [MinScale, MaxScale]
// scale range. Clamping is idempotent and is the sole recovery mechanism for
// out-of-bounds requests; it is never an error.
func Clamp(p Position, bounds Rect) Position {
	p.Scale = math.Max(MinScale, math.Min(p.Scale, MaxScale))

	minX := bounds.X
	maxX := bounds.X + bounds.Width
	minY := bounds.Y
	maxY := bounds.Y + bounds.Height

	// If the canvas is smaller than the visible area, center the camera.
	if minX > maxX {
		p.X = bounds.X + bounds.Width/2
	} else {
		p.X = math.Max(minX, math.Min(p.X, maxX))
	}
	if minY > maxY {
		p.Y = bounds.Y + bounds.Height/2
	} else {
		p.Y = math.Max(minY, math.Min(p.Y, maxY))
	}
	return p
}
