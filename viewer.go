package panzoom

import (
	"image/color"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Viewer is an ebiten.Game that shows one image under an Engine. It owns
// the frame clock driving the engine and translates ebiten input into
// gestures.
type Viewer struct {
	engine  *Engine
	clock   *FrameClock
	surface GeoMSurface
	image   *ebiten.Image
	input   inputState
	logger  *slog.Logger

	injectQueue     []syntheticEvent
	testRunner      *TestRunner
	screenshotQueue []string

	// Background fills the frame behind the content.
	Background color.Color
	// ShowFPS overlays the current FPS and TPS.
	ShowFPS bool
	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string
	// ExitWhenScriptDone ends the game loop once an attached TestRunner has
	// executed every step and the engine has settled.
	ExitWhenScriptDone bool
}

// NewViewer creates a viewer for img in a frame of the given size. img may
// be nil and set later with SetImage. The engine is always driven by the
// viewer's own FrameClock.
func NewViewer(cfg Config, img *ebiten.Image, frame Size, opts ...Option) (*Viewer, error) {
	var o engineOptions
	for _, opt := range opts {
		opt(&o)
	}

	v := &Viewer{
		clock:         NewFrameClock(),
		image:         img,
		logger:        loggerOrDefault(o.logger),
		Background:    color.RGBA{0x1e, 0x1e, 0x28, 0xff},
		ScreenshotDir: "screenshots",
	}
	opts = append(opts, WithScheduler(v.clock), WithContentMeasurer(v.measureImage))

	e, err := New(cfg, &v.surface, frame, v.measureImage(), opts...)
	if err != nil {
		return nil, err
	}
	v.engine = e
	return v, nil
}

// Engine returns the engine the viewer drives.
func (v *Viewer) Engine() *Engine {
	return v.engine
}

// Clock returns the frame clock advanced once per Update.
func (v *Viewer) Clock() *FrameClock {
	return v.clock
}

// SetImage replaces the displayed content and re-measures it.
func (v *Viewer) SetImage(img *ebiten.Image) {
	v.image = img
	v.engine.DetectContentDimensions()
}

func (v *Viewer) measureImage() Size {
	if v.image == nil {
		return Size{}
	}
	b := v.image.Bounds()
	return Size{Width: float64(b.Dx()), Height: float64(b.Dy())}
}

// Update processes input and advances the engine by one tick.
func (v *Viewer) Update() error {
	if v.testRunner != nil {
		v.testRunner.step(v)
	}
	v.processInput()
	if v.engine.Config().DynamicContentDimensions {
		v.engine.DetectContentDimensions()
	}
	v.clock.Advance(time.Second / time.Duration(ebiten.TPS()))

	if v.ExitWhenScriptDone && v.testRunner != nil && v.testRunner.Done() &&
		len(v.screenshotQueue) == 0 && v.clock.Pending() == 0 {
		return ebiten.Termination
	}
	return nil
}

// Draw renders the content with the engine's current transform.
func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(v.Background)
	if v.image != nil {
		op := &ebiten.DrawImageOptions{GeoM: v.surface.GeoM(), Filter: ebiten.FilterLinear}
		screen.DrawImage(v.image, op)
	}
	if v.ShowFPS {
		drawFPS(screen)
	}
	v.flushScreenshots(screen)
}

// Layout tracks the window size as the frame size.
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	v.engine.UpdateFrameDimensions(Size{Width: float64(outsideWidth), Height: float64(outsideHeight)})
	return outsideWidth, outsideHeight
}

// RunConfig holds window options for Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
}

// Run opens a resizable window and runs the viewer's game loop until the
// window closes or the viewer terminates.
func Run(v *Viewer, cfg RunConfig) error {
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
	}
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	v.ShowFPS = v.ShowFPS || cfg.ShowFPS
	return ebiten.RunGame(v)
}
