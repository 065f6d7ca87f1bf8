package vista

import "testing"

func TestLoadScriptErrors(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"invalid json", `{"steps": [`},
		{"no steps", `{"steps": []}`},
		{"unknown key", `{"steps": [{"action": "key", "key": "bogus"}]}`},
	}
	for _, c := range cases {
		if _, err := LoadScript([]byte(c.data)); err == nil {
			t.Errorf("%s: no error", c.name)
		}
	}
}

func TestKeyByName(t *testing.T) {
	cases := []struct {
		name string
		want Key
	}{
		{"left", KeyLeft},
		{"+", KeyZoomIn},
		{"zoomout", KeyZoomOut},
		{"escape", KeyEscape},
		{"activate", KeyActivate},
	}
	for _, c := range cases {
		k, ok := keyByName(c.name)
		if !ok || k != c.want {
			t.Errorf("keyByName(%q) = %v, %v", c.name, k, ok)
		}
	}
	if _, ok := keyByName("bogus"); ok {
		t.Error("bogus name resolved")
	}
}

func TestScriptRunsDragThenKey(t *testing.T) {
	e := newTestEngine(t)
	script, err := LoadScript([]byte(`{"steps": [
		{"action": "drag", "fromX": 640, "fromY": 360, "toX": 540, "toY": 360, "frames": 8},
		{"action": "wait", "frames": 5},
		{"action": "key", "key": "right"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	e.SetScript(script)

	// Drag drains over 8 frames, 5 frames of wait, then the key press and
	// its 400ms pan animation.
	runFrames(e, 45)

	if !script.Done() {
		t.Error("script not done after 45 frames")
	}
	want := 100.0*6/7 + keyboardPanStep
	if p := e.State().Position; !approxEqual(p.X, want, 0.5) {
		t.Errorf("X = %v, want %v", p.X, want)
	}
}

func TestScriptWaitDelaysNextStep(t *testing.T) {
	e := newTestEngine(t)
	script, err := LoadScript([]byte(`{"steps": [
		{"action": "wait", "frames": 10},
		{"action": "wheel", "y": 1}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	e.SetScript(script)

	runFrames(e, 8)
	if e.State().Transitioning {
		t.Error("wheel zoom started during the wait")
	}

	runFrames(e, 5)
	if !e.State().Transitioning && !approxEqual(e.State().Position.Scale, 1.1, 0.01) {
		t.Error("wheel zoom never started after the wait")
	}

	runFrames(e, 30)
	if got := e.State().Position.Scale; !approxEqual(got, 1.1, 0.01) {
		t.Errorf("scale = %v, want 1.1", got)
	}
}
