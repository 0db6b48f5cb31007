package panzoom

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	DeltaY float64 `json:"deltaY,omitempty"`
	Delta  float64 `json:"delta,omitempty"`
	Frames int     `json:"frames,omitempty"`
	// Anchor selects the zoom anchor for zoomIn/zoomOut: "lastPoint"
	// (default) or "viewCenter".
	Anchor string `json:"anchor,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

var knownActions = map[string]bool{
	"screenshot": true, "click": true, "drag": true, "wheel": true,
	"dblclick": true, "pinch": true, "wait": true, "zoomIn": true,
	"zoomOut": true, "reset": true, "fit": true, "center": true,
}

// TestRunner sequences injected input events, engine commands and
// screenshots across frames for automated visual testing. Attach to a
// Viewer via SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Viewer via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the viewer. The runner's step method
// is called from Viewer.Update before processInput each frame.
func (v *Viewer) SetTestRunner(runner *TestRunner) {
	v.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame. Called from Viewer.Update.
func (r *TestRunner) step(v *Viewer) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(v.injectQueue) > 0 {
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

	e := v.engine
	switch st.Action {
	case "screenshot":
		v.Screenshot(st.Label)
	case "click":
		v.InjectPress(st.X, st.Y)
		v.InjectRelease(st.X, st.Y)
	case "drag":
		v.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "wheel":
		v.InjectWheel(st.X, st.Y, st.DeltaY)
	case "dblclick":
		v.InjectDoubleClick(st.X, st.Y)
	case "pinch":
		v.InjectPinch(st.X, st.Y, st.Delta)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "zoomIn":
		e.ZoomIn(scriptZoomType(st.Anchor))
	case "zoomOut":
		e.ZoomOut(scriptZoomType(st.Anchor))
	case "reset":
		e.ResetView()
	case "fit":
		e.ZoomToFit(Rect{X: st.X, Y: st.Y, Width: st.Width, Height: st.Height}, DefaultDuration)
	case "center":
		e.CenterContent(DefaultDuration)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(v.injectQueue) == 0 {
		r.done = true
	}
}

func scriptZoomType(anchor string) ZoomType {
	if anchor == "viewCenter" {
		return ZoomViewCenter
	}
	return ZoomLastPoint
}
