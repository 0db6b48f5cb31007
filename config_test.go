package panzoom

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
}

func TestDefaultConfigValues(t *testing.T) {
	c := DefaultConfig()
	if c.ZoomLevels != 5 || c.NeutralZoomLevel != 2 || c.ScalePerZoomLevel != 2 {
		t.Errorf("zoom levels = %d/%g/%g, want 5/2/2", c.ZoomLevels, c.NeutralZoomLevel, c.ScalePerZoomLevel)
	}
	if c.Friction != 10 || c.HaltSpeed != 100 {
		t.Errorf("friction/haltSpeed = %g/%g, want 10/100", c.Friction, c.HaltSpeed)
	}
	if c.ZoomStepDuration != 200*time.Millisecond {
		t.Errorf("ZoomStepDuration = %v, want 200ms", c.ZoomStepDuration)
	}
	if c.KeepInBounds {
		t.Error("KeepInBounds should default to false")
	}
}

func TestMinimumAllowedZoomLevel(t *testing.T) {
	c := DefaultConfig()
	assertNear(t, "min", c.minimumAllowedZoomLevel(), 0)
	c.KeepInBounds = true
	assertNear(t, "min keepInBounds", c.minimumAllowedZoomLevel(), 2)
	assertNear(t, "max", c.maxZoomLevel(), 4)
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	data := []byte(`
zoomLevels: 8
keepInBounds: true
zoomStepDuration: 350ms
easing: outCubic
initialZoomToFit:
  x: 10
  y: 20
  width: 300
  height: 200
`)
	c, err := LoadConfig(data)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if c.ZoomLevels != 8 {
		t.Errorf("ZoomLevels = %d, want 8", c.ZoomLevels)
	}
	if !c.KeepInBounds {
		t.Error("KeepInBounds should be true")
	}
	if c.ZoomStepDuration != 350*time.Millisecond {
		t.Errorf("ZoomStepDuration = %v, want 350ms", c.ZoomStepDuration)
	}
	if c.InitialZoomToFit == nil || *c.InitialZoomToFit != (Rect{10, 20, 300, 200}) {
		t.Errorf("InitialZoomToFit = %+v", c.InitialZoomToFit)
	}
	// Untouched keys keep defaults.
	if c.Friction != 10 {
		t.Errorf("Friction = %g, want default 10", c.Friction)
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	if _, err := LoadConfig([]byte("zoomLevels: [")); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	_, err := LoadConfig([]byte("scalePerZoomLevel: 1"))
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "panzoom.yaml")
	if err := os.WriteFile(path, []byte("friction: 4.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	if c.Friction != 4.5 {
		t.Errorf("Friction = %g, want 4.5", c.Friction)
	}
	if _, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("PZTEST_FRICTION", "3")
	t.Setenv("PZTEST_KEEP_IN_BOUNDS", "true")
	t.Setenv("PZTEST_ZOOM_STEP_DURATION", "1s")
	t.Setenv("PZTEST_DRAG_MOUSE_BUTTON", "middle")

	c := DefaultConfig()
	if err := ApplyEnv("PZTEST", &c); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if c.Friction != 3 || !c.KeepInBounds || c.ZoomStepDuration != time.Second || c.DragMouseButton != "middle" {
		t.Errorf("env not applied: %+v", c)
	}
	if c.HaltSpeed != 100 {
		t.Errorf("HaltSpeed = %g, want untouched 100", c.HaltSpeed)
	}
}

func TestApplyEnvInvalid(t *testing.T) {
	t.Setenv("PZTEST_ZOOM_LEVELS", "zero")
	c := DefaultConfig()
	if err := ApplyEnv("PZTEST", &c); err == nil {
		t.Error("expected error for non-numeric env value")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zoomLevels", func(c *Config) { c.ZoomLevels = 0 }},
		{"scalePerZoomLevel zero", func(c *Config) { c.ScalePerZoomLevel = 0 }},
		{"scalePerZoomLevel one", func(c *Config) { c.ScalePerZoomLevel = 1 }},
		{"neutral above max", func(c *Config) { c.ZoomLevels = 2 }},
		{"neutral negative", func(c *Config) { c.NeutralZoomLevel = -1 }},
		{"friction negative", func(c *Config) { c.Friction = -1 }},
		{"friction zero", func(c *Config) { c.Friction = 0 }},
		{"friction flips velocity", func(c *Config) { c.Friction = 50 }},
		{"friction grows velocity", func(c *Config) { c.Friction = 150 }},
		{"haltSpeed", func(c *Config) { c.HaltSpeed = -1 }},
		{"haltSpeed zero", func(c *Config) { c.HaltSpeed = 0 }},
		{"restore force zero", func(c *Config) { c.KeepInBoundsRestoreForce = 0 }},
		{"restore force overshoots", func(c *Config) { c.KeepInBoundsRestoreForce = 1.5 }},
		{"drag pullback", func(c *Config) { c.KeepInBoundsDragPullback = -0.1 }},
		{"wheel factor", func(c *Config) { c.FreeMouseWheelFactor = 0 }},
		{"duration", func(c *Config) { c.ZoomStepDuration = -time.Second }},
		{"fit factor", func(c *Config) { c.ZoomToFitZoomLevelFactor = 1.5 }},
		{"fit rect", func(c *Config) { c.InitialZoomToFit = &Rect{Width: 0, Height: 10} }},
		{"easing", func(c *Config) { c.Easing = "bouncy" }},
		{"button", func(c *Config) { c.DragMouseButton = "fourth" }},
	}
	for _, tt := range tests {
		c := DefaultConfig()
		tt.mutate(&c)
		if err := c.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: Validate() = %v, want ErrInvalidConfig", tt.name, err)
		}
	}
}

func TestValidateBoundaries(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"neutral at max", func(c *Config) { c.ZoomLevels = 3 }},
		{"neutral at zero", func(c *Config) { c.NeutralZoomLevel = 0 }},
		{"friction just below flip", func(c *Config) { c.Friction = 49 }},
		{"restore force one", func(c *Config) { c.KeepInBoundsRestoreForce = 1 }},
		{"no pullback", func(c *Config) { c.KeepInBoundsDragPullback = 0 }},
	}
	for _, tt := range tests {
		c := DefaultConfig()
		tt.mutate(&c)
		if err := c.Validate(); err != nil {
			t.Errorf("%s: Validate() = %v, want nil", tt.name, err)
		}
	}
}

func TestLoadConfigRejectsNeutralOutOfRange(t *testing.T) {
	_, err := LoadConfig([]byte("zoomLevels: 2\nkeepInBounds: true\n"))
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestEasingLookup(t *testing.T) {
	c := DefaultConfig()
	c.Easing = "InOutQuad"
	if err := c.Validate(); err != nil {
		t.Fatalf("mixed-case easing rejected: %v", err)
	}
	fn := c.easing()
	if got := fn(0.5, 0, 1, 1); got != 0.5 {
		t.Errorf("inOutQuad(0.5) = %f, want 0.5", got)
	}
}
