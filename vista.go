package vista

// Vec2 is a 2D vector used for points, offsets, and sizes throughout the API.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Position is the camera state on the canvas: the canvas-space coordinate of
// the viewport's top-left corner plus the zoom scale.
type Position struct {
	X, Y  float64
	Scale float64
}

// ScrollOffset is the scroll-space twin of a Position: the pixel offset a
// scrolling container would report for the same view.
type ScrollOffset struct {
	Left, Top float64
}

// Scale bounds. Out-of-range scale requests are clamped, never rejected.
const (
	MinScale = 0.5
	MaxScale = 3.0
)

// Section maps a logical content region to a cell in a small fixed grid.
// Sections are configured once at engine construction and never mutated.
type Section struct {
	ID    string
	GridX int
	GridY int
}

// MovementKind selects the duration and easing preset for a camera movement.
// Dolly zoom and match cut share the plain interpolation mechanics; they only
// differ in their presets.
type MovementKind uint8

const (
	MovePan           MovementKind = iota // free pan to a nearby position
	MoveZoom                              // scale change around the current view
	MoveJumpToSection                     // full section-to-section transition
	MoveDollyZoom                         // zoom preset with a section-jump duration
	MoveMatchCut                          // section jump with a shortened duration
)

// QualityLevel is a discrete performance level governing animation complexity.
type QualityLevel uint8

const (
	QualityLow QualityLevel = iota
	QualityMedium
	QualityHigh
)

// String returns the lowercase tier name.
func (q QualityLevel) String() string {
	switch q {
	case QualityHigh:
		return "high"
	case QualityMedium:
		return "medium"
	default:
		return "low"
	}
}

// PerformanceMode is the construction-time hint that seeds the governor's
// starting tier.
type PerformanceMode uint8

const (
	PerfHigh     PerformanceMode = iota // start at QualityHigh
	PerfBalanced                        // start at QualityMedium
	PerfLow                             // start at QualityLow
)

// Priority orders frame callbacks within a tick. Camera interpolation runs
// before performance sampling, which runs before debug output.
type Priority uint8

const (
	PriorityHigh Priority = iota
	PriorityMedium
	PriorityLow
)

// Key identifies one of the fixed set of keyboard inputs the engine accepts.
type Key uint8

const (
	KeyNone     Key = iota
	KeyLeft         // pan left
	KeyRight        // pan right
	KeyUp           // pan up
	KeyDown         // pan down
	KeyZoomIn       // '+'
	KeyZoomOut      // '-'
	KeyEnter        // select the focused radial destination
	KeyEscape       // cancel the radial session, or jump home
	KeyActivate     // open the radial menu at the pointer position
)

// Keyboard intent magnitudes.
const (
	keyboardPanStep  = 50.0 // canvas units per arrow press
	keyboardZoomStep = 0.1  // scale delta per +/- press
)

// MovementIntent is the normalized form of one user input: a pan delta, a
// zoom delta, or a section jump. Intents are created by the gesture manager
// or the radial menu and consumed immediately by the movement controller;
// they are never persisted.
type MovementIntent struct {
	Kind      MovementKind
	Delta     Vec2    // pan: canvas-unit displacement
	ScaleTo   float64 // zoom: absolute target scale
	SectionID string  // jumpToSection: destination
	Force     bool    // preempt an in-flight animation
}
