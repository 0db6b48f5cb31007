package panzoom

import (
	"errors"
	"testing"
)

func TestNewViewer(t *testing.T) {
	v := newTestViewer(t, DefaultConfig())
	if v.Engine() == nil {
		t.Fatal("Engine() should not be nil")
	}
	if v.Engine().Scheduler() != Scheduler(v.Clock()) {
		t.Error("engine should be driven by the viewer's clock")
	}
	if v.surface.Frames() == 0 {
		t.Error("surface should receive the initial transform")
	}
}

func TestNewViewerInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Easing = "nope"
	if _, err := NewViewer(cfg, nil, Size{400, 300}); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestViewerLayoutUpdatesFrame(t *testing.T) {
	v := newTestViewer(t, DefaultConfig())
	w, h := v.Layout(800, 600)
	if w != 800 || h != 600 {
		t.Errorf("Layout = %d,%d, want 800,600", w, h)
	}
	if v.engine.FrameSize() != (Size{800, 600}) {
		t.Errorf("FrameSize = %+v, want {800 600}", v.engine.FrameSize())
	}
}

func TestViewerSurfaceTracksEngine(t *testing.T) {
	v := newTestViewer(t, DefaultConfig())
	v.engine.ZoomIn(ZoomViewCenter)
	settle(v.clock)
	assertNear(t, "surface scale", v.surface.Transform().Scale, 2)
	geoM := v.surface.GeoM()
	x, y := geoM.Apply(0, 0)
	tr := v.surface.Transform()
	assertNear(t, "geoM x", x, tr.TranslateX)
	assertNear(t, "geoM y", y, tr.TranslateY)
}

func TestViewerMeasureNilImage(t *testing.T) {
	v := newTestViewer(t, DefaultConfig())
	if s := v.measureImage(); s != (Size{}) {
		t.Errorf("measureImage() = %+v, want zero", s)
	}
}
