package vista

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in a navigation script.
type scriptStep struct {
	Action string  `json:"action"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Key    string  `json:"key,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// navScript is the top-level JSON structure for a navigation script.
type navScript struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner sequences injected input events across frames for automated
// navigation runs. Attach to an engine via SetScript.
//
// Supported actions: "press", "move", "release", "drag", "key", "wheel",
// "wait" (Frames frames).
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON navigation script.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var script navScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse navigation script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse navigation script: no steps")
	}
	for _, st := range script.Steps {
		if st.Action == "key" {
			if _, ok := keyByName(st.Key); !ok {
				return nil, fmt.Errorf("parse navigation script: unknown key %q", st.Key)
			}
		}
	}
	return &ScriptRunner{steps: script.Steps}, nil
}

// Done reports whether every step has been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame. Called from Engine.Update.
func (r *ScriptRunner) step(e *Engine) {
	if r.done {
		return
	}
	// Let pending injections drain before advancing.
	if e.inject.pending() > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "press":
		e.InjectPress(st.X, st.Y)
	case "move":
		e.InjectMove(st.X, st.Y)
	case "release":
		e.InjectRelease(st.X, st.Y)
	case "drag":
		e.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "key":
		if k, ok := keyByName(st.Key); ok {
			e.InjectKey(k)
		}
	case "wheel":
		e.InjectWheel(st.Y)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames
		}
	}
}

// keyByName maps script key names to the engine key set.
func keyByName(name string) (Key, bool) {
	switch name {
	case "left":
		return KeyLeft, true
	case "right":
		return KeyRight, true
	case "up":
		return KeyUp, true
	case "down":
		return KeyDown, true
	case "+", "zoomin":
		return KeyZoomIn, true
	case "-", "zoomout":
		return KeyZoomOut, true
	case "enter":
		return KeyEnter, true
	case "escape":
		return KeyEscape, true
	case "activate":
		return KeyActivate, true
	}
	return KeyNone, false
}
