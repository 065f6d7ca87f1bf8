// Package vista is a 2D spatial navigation engine for content presentation
// surfaces: a small set of named sections laid out on a virtual canvas,
// navigated by pointer, touch, keyboard, or a gesture-activated radial
// selector.
//
// # Quick start
//
// Build an [Engine] from a section grid and drive it with [Run], which
// creates a window and frame loop for you:
//
//	engine, err := vista.NewEngine(vista.Config{
//		Sections: []vista.Section{
//			{ID: "home", GridX: 0, GridY: 0},
//			{ID: "work", GridX: 1, GridY: 0},
//		},
//		Viewport: vista.Vec2{X: 1280, Y: 720},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	vista.Run(engine, vista.RunConfig{Title: "Vista"})
//
// For full control, call [Engine.Update] yourself once per display refresh
// and feed input through [Engine.Gestures].
//
// # Outputs
//
// The engine's output boundary is a stream of CSS transform strings
// ([Engine.OnTransform]) to apply to a content container, active-section
// change events ([Engine.OnSectionChange]) for content renderers, and
// live-region text for an optional [Announcer]. Rendering the sections
// themselves is out of scope; content renderers subscribe and are otherwise
// free-standing.
//
// # Key features
//
// One shared priority [Scheduler] drives all animation (no competing
// timers), a [Governor] degrades animation fidelity under load with
// hysteretic quality tiers, the [Camera] movement controller animates every
// transition through a single eased interpolation (via [gween]), and the
// radial [Menu] places section destinations around the pointer with
// edge-aware repositioning.
//
// [gween]: https://github.com/tanema/gween
package vista
