package panzoom

import (
	"testing"
	"time"
)

func newTestViewer(t *testing.T, cfg Config) *Viewer {
	t.Helper()
	v, err := NewViewer(cfg, nil, Size{400, 300})
	if err != nil {
		t.Fatalf("NewViewer: %v", err)
	}
	v.engine.UpdateContentDimensions(2000, 2000)
	return v
}

// drainInjected runs one frame per queued event, advancing the clock the
// way Viewer.Update does.
func drainInjected(v *Viewer) {
	for len(v.injectQueue) > 0 {
		v.processInjectedInput(v.clock.Now())
		v.clock.Advance(frameDt)
	}
}

func TestInjectDragQueuesFrames(t *testing.T) {
	v := newTestViewer(t, DefaultConfig())
	v.InjectDrag(10, 10, 200, 200, 5)
	if len(v.injectQueue) != 5 {
		t.Fatalf("expected 5 queued events, got %d", len(v.injectQueue))
	}
	if !v.injectQueue[0].pressed || v.injectQueue[4].pressed {
		t.Error("drag should start with a press and end with a release")
	}
	mid := v.injectQueue[2].pos
	assertPoint(t, "midpoint", mid, Point{105, 105}, 1e-9)
}

func TestInjectDragMinimumFrames(t *testing.T) {
	v := newTestViewer(t, DefaultConfig())
	v.InjectDrag(0, 0, 10, 10, 0)
	if len(v.injectQueue) != 2 {
		t.Errorf("expected press+release, got %d events", len(v.injectQueue))
	}
}

func TestInjectDragPans(t *testing.T) {
	v := newTestViewer(t, DefaultConfig())
	v.InjectDrag(300, 200, 200, 150, 5)

	// Frame 1: press
	v.processInjectedInput(v.clock.Now())
	if len(v.injectQueue) != 4 {
		t.Fatalf("expected 4 remaining events after frame 1, got %d", len(v.injectQueue))
	}
	if !v.engine.IsDragging() {
		t.Error("press should start a drag")
	}
	v.clock.Advance(frameDt)
	for i := 0; i < 3; i++ {
		v.processInjectedInput(v.clock.Now())
		v.clock.Advance(frameDt)
	}
	// Three moves cover 3/4 of the way; the release frame does not move.
	assertPoint(t, "pan", v.engine.Base().Pan, Point{-75, -37.5}, 1e-9)

	v.processInjectedInput(v.clock.Now())
	if v.engine.IsDragging() {
		t.Error("release should end the drag")
	}
}

func TestInjectWheel(t *testing.T) {
	v := newTestViewer(t, DefaultConfig())
	v.InjectWheel(200, 150, -1)
	drainInjected(v)
	assertNear(t, "scale", v.engine.Transform().Scale, 1.08)
}

func TestInjectDoubleClick(t *testing.T) {
	v := newTestViewer(t, DefaultConfig())
	v.InjectDoubleClick(100, 100)
	drainInjected(v)
	v.clock.RunFor(time.Second, frameDt)
	assertNear(t, "ZoomLevel", v.engine.Base().ZoomLevel, 3)
}

func TestInjectPinch(t *testing.T) {
	v := newTestViewer(t, DefaultConfig())
	v.InjectPinch(200, 150, 10000)
	drainInjected(v)
	v.clock.RunFor(time.Second, frameDt)
	assertNear(t, "ZoomLevel", v.engine.Base().ZoomLevel, 3)
}

func TestProcessInjectedInputEmpty(t *testing.T) {
	v := newTestViewer(t, DefaultConfig())
	if v.processInjectedInput(0) {
		t.Error("empty queue should report no event consumed")
	}
}
