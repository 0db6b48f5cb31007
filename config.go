package panzoom

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/tanema/gween/ease"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every error returned from Config.Validate.
var ErrInvalidConfig = errors.New("panzoom: invalid config")

// Config holds the engine options. Start from DefaultConfig and override
// fields directly, via LoadConfig (YAML), or via ApplyEnv (environment).
type Config struct {
	// ZoomLevels is the number of named zoom levels. Valid levels are
	// 0..ZoomLevels-1.
	ZoomLevels int `yaml:"zoomLevels" envconfig:"ZOOM_LEVELS"`
	// NeutralZoomLevel is the level rendered at scale 1.
	NeutralZoomLevel float64 `yaml:"neutralZoomLevel" envconfig:"NEUTRAL_ZOOM_LEVEL"`
	// ScalePerZoomLevel is the scale multiplier between adjacent levels.
	ScalePerZoomLevel float64 `yaml:"scalePerZoomLevel" envconfig:"SCALE_PER_ZOOM_LEVEL"`

	InitialZoomLevel float64 `yaml:"initialZoomLevel" envconfig:"INITIAL_ZOOM_LEVEL"`
	InitialPanX      float64 `yaml:"initialPanX" envconfig:"INITIAL_PAN_X"`
	InitialPanY      float64 `yaml:"initialPanY" envconfig:"INITIAL_PAN_Y"`
	// InitialZoomToFit, when set, overrides the initial level and pan with
	// the state that fits this model-space rectangle into the frame.
	InitialZoomToFit *Rect `yaml:"initialZoomToFit" ignored:"true"`

	// Friction is the kinetic deceleration rate, per second.
	Friction float64 `yaml:"friction" envconfig:"FRICTION"`
	// HaltSpeed is the speed in pixels/second below which kinetic panning stops.
	HaltSpeed float64 `yaml:"haltSpeed" envconfig:"HALT_SPEED"`

	KeepInBounds             bool    `yaml:"keepInBounds" envconfig:"KEEP_IN_BOUNDS"`
	KeepInBoundsDragPullback float64 `yaml:"keepInBoundsDragPullback" envconfig:"KEEP_IN_BOUNDS_DRAG_PULLBACK"`
	KeepInBoundsRestoreForce float64 `yaml:"keepInBoundsRestoreForce" envconfig:"KEEP_IN_BOUNDS_RESTORE_FORCE"`

	PanOnClickDrag bool `yaml:"panOnClickDrag" envconfig:"PAN_ON_CLICK_DRAG"`
	// DragMouseButton is "left", "middle" or "right".
	DragMouseButton string `yaml:"dragMouseButton" envconfig:"DRAG_MOUSE_BUTTON"`

	ZoomButtonIncrement float64 `yaml:"zoomButtonIncrement" envconfig:"ZOOM_BUTTON_INCREMENT"`
	ZoomOnDoubleClick   bool    `yaml:"zoomOnDoubleClick" envconfig:"ZOOM_ON_DOUBLE_CLICK"`
	ZoomOnMouseWheel    bool    `yaml:"zoomOnMouseWheel" envconfig:"ZOOM_ON_MOUSE_WHEEL"`
	InvertMouseWheel    bool    `yaml:"invertMouseWheel" envconfig:"INVERT_MOUSE_WHEEL"`

	// ZoomStepDuration is the default animation duration.
	ZoomStepDuration         time.Duration `yaml:"zoomStepDuration" envconfig:"ZOOM_STEP_DURATION"`
	ZoomToFitZoomLevelFactor float64       `yaml:"zoomToFitZoomLevelFactor" envconfig:"ZOOM_TO_FIT_ZOOM_LEVEL_FACTOR"`

	// FreeMouseWheel zooms continuously with the wheel instead of stepping
	// whole levels.
	FreeMouseWheel       bool    `yaml:"freeMouseWheel" envconfig:"FREE_MOUSE_WHEEL"`
	FreeMouseWheelFactor float64 `yaml:"freeMouseWheelFactor" envconfig:"FREE_MOUSE_WHEEL_FACTOR"`

	// DynamicContentDimensions re-measures the content on every frame the
	// host reports, instead of only on DetectContentDimensions.
	DynamicContentDimensions bool `yaml:"dynamicContentDimensions" envconfig:"DYNAMIC_CONTENT_DIMENSIONS"`

	// Easing names the gween easing curve applied to animations.
	Easing string `yaml:"easing" envconfig:"EASING"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		ZoomLevels:               5,
		NeutralZoomLevel:         2,
		ScalePerZoomLevel:        2.0,
		InitialZoomLevel:         2,
		Friction:                 10.0,
		HaltSpeed:                100.0,
		KeepInBoundsDragPullback: 0.7,
		KeepInBoundsRestoreForce: 0.5,
		PanOnClickDrag:           true,
		DragMouseButton:          "left",
		ZoomButtonIncrement:      1.0,
		ZoomOnDoubleClick:        true,
		ZoomOnMouseWheel:         true,
		ZoomStepDuration:         200 * time.Millisecond,
		ZoomToFitZoomLevelFactor: 0.95,
		FreeMouseWheel:           true,
		FreeMouseWheelFactor:     0.08,
		Easing:                   "linear",
	}
}

// LoadConfig parses YAML over the defaults. Keys absent from data keep their
// default values.
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigFile reads and parses a YAML config file.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return LoadConfig(data)
}

// ApplyEnv overrides cfg with environment variables named PREFIX_FIELD
// (e.g. PANZOOM_FRICTION). Unset variables leave cfg untouched.
func ApplyEnv(prefix string, cfg *Config) error {
	if err := envconfig.Process(prefix, cfg); err != nil {
		return fmt.Errorf("apply env: %w", err)
	}
	return cfg.Validate()
}

// Validate reports values the engine cannot work with.
func (c Config) Validate() error {
	switch {
	case c.ZoomLevels < 1:
		return fmt.Errorf("%w: zoomLevels must be >= 1, got %d", ErrInvalidConfig, c.ZoomLevels)
	case c.ScalePerZoomLevel <= 0 || c.ScalePerZoomLevel == 1:
		return fmt.Errorf("%w: scalePerZoomLevel must be > 0 and != 1, got %g", ErrInvalidConfig, c.ScalePerZoomLevel)
	case c.NeutralZoomLevel < 0 || c.NeutralZoomLevel > c.maxZoomLevel():
		return fmt.Errorf("%w: neutralZoomLevel must be in [0, %g], got %g", ErrInvalidConfig, c.maxZoomLevel(), c.NeutralZoomLevel)
	// Each kinetic sub-step scales velocity by 1-friction*kineticSubStep,
	// which must stay in (0, 1) for the motion to decay.
	case c.Friction <= 0 || c.Friction*kineticSubStep >= 1:
		return fmt.Errorf("%w: friction must be in (0, %g), got %g", ErrInvalidConfig, 1/kineticSubStep, c.Friction)
	case c.HaltSpeed <= 0:
		return fmt.Errorf("%w: haltSpeed must be > 0, got %g", ErrInvalidConfig, c.HaltSpeed)
	case c.KeepInBoundsRestoreForce <= 0 || c.KeepInBoundsRestoreForce > 1:
		return fmt.Errorf("%w: keepInBoundsRestoreForce must be in (0, 1], got %g", ErrInvalidConfig, c.KeepInBoundsRestoreForce)
	case c.KeepInBoundsDragPullback < 0:
		return fmt.Errorf("%w: keepInBoundsDragPullback must be >= 0, got %g", ErrInvalidConfig, c.KeepInBoundsDragPullback)
	case c.FreeMouseWheelFactor <= 0:
		return fmt.Errorf("%w: freeMouseWheelFactor must be > 0, got %g", ErrInvalidConfig, c.FreeMouseWheelFactor)
	case c.ZoomStepDuration < 0:
		return fmt.Errorf("%w: zoomStepDuration must be >= 0, got %v", ErrInvalidConfig, c.ZoomStepDuration)
	case c.ZoomToFitZoomLevelFactor <= 0 || c.ZoomToFitZoomLevelFactor > 1:
		return fmt.Errorf("%w: zoomToFitZoomLevelFactor must be in (0, 1], got %g", ErrInvalidConfig, c.ZoomToFitZoomLevelFactor)
	case c.InitialZoomToFit != nil && (c.InitialZoomToFit.Width <= 0 || c.InitialZoomToFit.Height <= 0):
		return fmt.Errorf("%w: initialZoomToFit must have a positive size", ErrInvalidConfig)
	}
	if _, ok := easings[strings.ToLower(c.Easing)]; !ok {
		return fmt.Errorf("%w: unknown easing %q", ErrInvalidConfig, c.Easing)
	}
	switch strings.ToLower(c.DragMouseButton) {
	case "left", "middle", "right":
	default:
		return fmt.Errorf("%w: unknown dragMouseButton %q", ErrInvalidConfig, c.DragMouseButton)
	}
	return nil
}

// maxZoomLevel is the highest allowed zoom level.
func (c Config) maxZoomLevel() float64 {
	return float64(c.ZoomLevels - 1)
}

// minimumAllowedZoomLevel is the lowest allowed zoom level. Keep-in-bounds
// forbids zooming out past the neutral level.
func (c Config) minimumAllowedZoomLevel() float64 {
	if c.KeepInBounds {
		return c.NeutralZoomLevel
	}
	return 0
}

func (c Config) levels() levelScale {
	return levelScale{perLevel: c.ScalePerZoomLevel, neutral: c.NeutralZoomLevel}
}

func (c Config) easing() ease.TweenFunc {
	if fn, ok := easings[strings.ToLower(c.Easing)]; ok {
		return fn
	}
	return ease.Linear
}

var easings = map[string]ease.TweenFunc{
	"":           ease.Linear,
	"linear":     ease.Linear,
	"inquad":     ease.InQuad,
	"outquad":    ease.OutQuad,
	"inoutquad":  ease.InOutQuad,
	"incubic":    ease.InCubic,
	"outcubic":   ease.OutCubic,
	"inoutcubic": ease.InOutCubic,
	"insine":     ease.InSine,
	"outsine":    ease.OutSine,
	"inoutsine":  ease.InOutSine,
	"outexpo":    ease.OutExpo,
}
