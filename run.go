package vista

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// RunConfig configures the window and game loop created by Run.
type RunConfig struct {
	Title       string
	Width       int
	Height      int
	ShowOverlay bool // print transform, section, and tier on screen
}

// keyBindings maps the physical keys the driver listens for to the engine's
// fixed key set. KeyM is the dedicated radial-menu activation key.
var keyBindings = map[ebiten.Key]Key{
	ebiten.KeyArrowLeft:      KeyLeft,
	ebiten.KeyArrowRight:     KeyRight,
	ebiten.KeyArrowUp:        KeyUp,
	ebiten.KeyArrowDown:      KeyDown,
	ebiten.KeyEqual:          KeyZoomIn,
	ebiten.KeyNumpadAdd:      KeyZoomIn,
	ebiten.KeyMinus:          KeyZoomOut,
	ebiten.KeyNumpadSubtract: KeyZoomOut,
	ebiten.KeyEnter:          KeyEnter,
	ebiten.KeyNumpadEnter:    KeyEnter,
	ebiten.KeyEscape:         KeyEscape,
	ebiten.KeyM:              KeyActivate,
}

// game adapts an Engine to ebiten's loop: it polls mouse, touch, wheel, and
// keyboard state each frame, feeds the gesture manager, and advances the
// engine by one tick aligned to the display refresh.
type game struct {
	engine   *Engine
	cfg      RunConfig
	wasDown  bool
	hadTouch bool
	lastX    float64
	lastY    float64

	touchIDs []ebiten.TouchID
	touchBuf []Vec2
}

func (g *game) Update() error {
	dt := 1.0 / float64(ebiten.TPS())
	in := g.engine.Gestures()

	// Mouse.
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	down := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	switch {
	case down && !g.wasDown:
		in.PointerDown(x, y)
	case !down && g.wasDown:
		in.PointerUp(x, y)
	case x != g.lastX || y != g.lastY:
		in.PointerMove(x, y)
	}
	g.wasDown = down
	g.lastX, g.lastY = x, y

	// Touch.
	g.touchIDs = ebiten.AppendTouchIDs(g.touchIDs[:0])
	g.touchBuf = g.touchBuf[:0]
	for _, tid := range g.touchIDs {
		tx, ty := ebiten.TouchPosition(tid)
		g.touchBuf = append(g.touchBuf, Vec2{X: float64(tx), Y: float64(ty)})
	}
	if len(g.touchBuf) > 0 || g.hadTouch {
		in.Touches(g.touchBuf)
	}
	g.hadTouch = len(g.touchBuf) > 0

	// Wheel.
	if _, wy := ebiten.Wheel(); wy != 0 {
		in.WheelZoom(wy)
	}

	// Keyboard.
	for ek, k := range keyBindings {
		if inpututil.IsKeyJustPressed(ek) {
			in.KeyPress(k)
		}
	}

	g.engine.Update(dt)
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if !g.cfg.ShowOverlay {
		return
	}
	s := g.engine.State()
	tier := g.engine.Governor().Tier()
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"transform: %s\nsection: %s\ntier: %s (%.1f fps)",
		CSSTransform(s.Position), s.ActiveSection, tier.Level, tier.SampledFPS))
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// Run creates a window and drives the engine from ebiten's game loop.
// Blocks until the window closes.
func Run(engine *Engine, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = int(engine.cfg.Viewport.X)
	}
	if cfg.Height <= 0 {
		cfg.Height = int(engine.cfg.Viewport.Y)
	}
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	return ebiten.RunGame(&game{engine: engine, cfg: cfg})
}
