package panzoom

import (
	"errors"
	"fmt"
	"log/slog"
	"time"
)

var (
	// ErrNoSurface is returned by New when no Surface is bound.
	ErrNoSurface = errors.New("panzoom: no surface bound")
	// ErrInvalidFrame is returned by New for a frame without positive size.
	ErrInvalidFrame = errors.New("panzoom: frame size must be positive")
)

// DefaultDuration selects the configured ZoomStepDuration for operations
// that take a duration. A duration of 0 snaps on the next frame.
const DefaultDuration time.Duration = -1

const (
	pinchHysteresis = 100    // squared-pixel change ignored as jitter
	pinchZoomFactor = 0.0001 // zoom levels per squared pixel
)

// Option configures an Engine at construction.
type Option func(*engineOptions)

type engineOptions struct {
	sched   Scheduler
	logger  *slog.Logger
	measure func() Size
}

// WithScheduler drives the engine from s instead of an internal FrameClock.
func WithScheduler(s Scheduler) Option {
	return func(o *engineOptions) { o.sched = s }
}

// WithLogger sets the logger used for warnings and debug output.
func WithLogger(l *slog.Logger) Option {
	return func(o *engineOptions) { o.logger = l }
}

// WithContentMeasurer sets the function DetectContentDimensions uses to
// measure the content.
func WithContentMeasurer(fn func() Size) Option {
	return func(o *engineOptions) { o.measure = fn }
}

// Engine is the pan/zoom facade. It accepts semantic gestures and
// programmatic requests, and drives a Surface through a Scheduler.
//
// Engine is not safe for concurrent use; call it from the goroutine that
// advances its scheduler.
type Engine struct {
	c       *controller
	measure func() Size

	lastClick    Point
	hasLastClick bool
}

// New creates an engine for a frame of the given size showing content of the
// given size. The initial state comes from cfg.InitialZoomToFit if set,
// otherwise from the initial zoom level and pan.
func New(cfg Config, surface Surface, frame, content Size, opts ...Option) (*Engine, error) {
	if nilSurface(surface) {
		return nil, ErrNoSurface
	}
	if frame.Width <= 0 || frame.Height <= 0 {
		return nil, fmt.Errorf("%w: got %gx%g", ErrInvalidFrame, frame.Width, frame.Height)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o engineOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.sched == nil {
		o.sched = NewFrameClock()
	}
	logger := loggerOrDefault(o.logger)

	if cfg.KeepInBounds && cfg.NeutralZoomLevel != 0 {
		logger.Warn("keepInBounds limits zooming out to the neutral level",
			slog.Float64("neutralZoomLevel", cfg.NeutralZoomLevel))
	}

	e := &Engine{
		c:       newController(cfg, frame, content, surface, o.sched, logger),
		measure: o.measure,
	}
	if cfg.InitialZoomToFit != nil {
		e.c.reset(e.fitState(*cfg.InitialZoomToFit))
	} else {
		e.c.reset(State{
			ZoomLevel: e.c.clampLevel(cfg.InitialZoomLevel),
			Pan:       Point{cfg.InitialPanX, cfg.InitialPanY},
		})
	}
	e.c.emit()
	if cfg.KeepInBounds {
		e.c.requestTick()
	}
	return e, nil
}

// nilSurface reports whether s is nil, including the typed nils of this
// package's own Surface implementations.
func nilSurface(s Surface) bool {
	switch v := s.(type) {
	case nil:
		return true
	case SurfaceFunc:
		return v == nil
	case *GeoMSurface:
		return v == nil
	}
	return false
}

// Scheduler returns the scheduler driving the engine.
func (e *Engine) Scheduler() Scheduler {
	return e.c.sched
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	return e.c.cfg
}

// Model returns the currently rendered state.
func (e *Engine) Model() State {
	return e.c.model
}

// Base returns the last settled state.
func (e *Engine) Base() State {
	return e.c.base
}

// Transform returns the transform matching the rendered state.
func (e *Engine) Transform() Transform {
	return e.c.currentTransform()
}

// IsAnimating reports whether a tween is in flight.
func (e *Engine) IsAnimating() bool {
	return e.c.anim != nil
}

// IsDragging reports whether a drag gesture is active.
func (e *Engine) IsDragging() bool {
	return e.c.dragging
}

// FrameSize returns the frame dimensions.
func (e *Engine) FrameSize() Size {
	return e.c.frame
}

// ContentSize returns the cached content dimensions.
func (e *Engine) ContentSize() Size {
	return e.c.content
}

// Subscribe registers fn to receive model snapshots: once per animated frame
// and once per settled change. fn is called immediately with the current
// model.
func (e *Engine) Subscribe(fn func(State)) Subscription {
	sub := e.c.subs.add(fn)
	fn(e.c.model)
	return sub
}

// Dispose cancels any pending frame and drops subscribers. The engine
// ignores all calls afterwards.
func (e *Engine) Dispose() {
	e.c.dispose()
}

func (e *Engine) duration(d time.Duration) time.Duration {
	if d < 0 {
		return e.c.cfg.ZoomStepDuration
	}
	return d
}

// --- Coordinate conversion ---

// ViewPosition converts a model-space point to view space using the
// instantaneous transform, including any in-flight animation.
func (e *Engine) ViewPosition(model Point) Point {
	s, t := e.c.viewTransform(true)
	return toView(model, s, t)
}

// ModelPosition converts a view-space point to model space using the
// settled base transform.
func (e *Engine) ModelPosition(view Point) Point {
	s, t := e.c.viewTransform(false)
	return toModel(view, s, t)
}

// --- Zoom ---

// ChangeZoomLevel animates to level, keeping anchor (a view point) fixed on
// screen. The level is clamped to the allowed range; requests made while an
// animation runs are dropped.
func (e *Engine) ChangeZoomLevel(level float64, anchor Point) {
	e.c.changeZoomLevel(level, anchor)
}

// ZoomIn zooms in by the configured increment.
func (e *Engine) ZoomIn(zt ZoomType) {
	e.c.changeZoomLevel(e.c.base.ZoomLevel+e.c.cfg.ZoomButtonIncrement, e.zoomAnchor(zt))
}

// ZoomOut zooms out by the configured increment.
func (e *Engine) ZoomOut(zt ZoomType) {
	e.c.changeZoomLevel(e.c.base.ZoomLevel-e.c.cfg.ZoomButtonIncrement, e.zoomAnchor(zt))
}

func (e *Engine) zoomAnchor(zt ZoomType) Point {
	if zt == ZoomLastPoint && e.hasLastClick {
		return e.lastClick
	}
	return e.c.frame.Center()
}

// ZoomToFit animates so that rect (model space) fits the frame, shrunk by
// ZoomToFitZoomLevelFactor and centered.
func (e *Engine) ZoomToFit(rect Rect, d time.Duration) {
	if rect.Width <= 0 || rect.Height <= 0 {
		return
	}
	e.c.animateTo(e.fitState(rect), e.duration(d))
}

// fitState computes the state that fits rect into the frame.
func (e *Engine) fitState(rect Rect) State {
	frame := e.c.frame
	exact := min(frame.Width/rect.Width, frame.Height/rect.Height)
	level := e.c.clampLevel(e.c.levels.level(exact * e.c.cfg.ZoomToFitZoomLevelFactor))
	s := e.c.levels.scale(level)
	return State{
		ZoomLevel: level,
		Pan: Point{
			X: -rect.X*s + (frame.Width-rect.Width*s)/2,
			Y: -rect.Y*s + (frame.Height-rect.Height*s)/2,
		},
	}
}

// ResetView animates back to the initial view.
func (e *Engine) ResetView() {
	cfg := e.c.cfg
	if cfg.InitialZoomToFit != nil {
		e.ZoomToFit(*cfg.InitialZoomToFit, DefaultDuration)
		return
	}
	e.c.animateTo(State{
		ZoomLevel: cfg.InitialZoomLevel,
		Pan:       Point{cfg.InitialPanX, cfg.InitialPanY},
	}, e.duration(DefaultDuration))
}

// --- Pan ---

func (e *Engine) panTo(pan Point, d time.Duration) {
	e.c.animateTo(State{ZoomLevel: e.c.base.ZoomLevel, Pan: pan}, e.duration(d))
}

// PanDelta pans by delta in model-space pixels. Positive values move the view
// right and down over the content.
func (e *Engine) PanDelta(delta Point, d time.Duration) {
	e.panTo(e.c.base.Pan.Sub(delta.Mul(e.c.settledScale())), d)
}

// PanDeltaAbsolute pans by delta in view-space pixels, ignoring scale.
func (e *Engine) PanDeltaAbsolute(delta Point, d time.Duration) {
	e.panTo(e.c.base.Pan.Sub(delta), d)
}

// PanDeltaPercent pans by a percentage of the unscaled content size.
func (e *Engine) PanDeltaPercent(percent Point, d time.Duration) {
	s := e.c.settledScale()
	delta := Point{
		X: e.c.content.Width * (percent.X / 100) * s,
		Y: e.c.content.Height * (percent.Y / 100) * s,
	}
	e.panTo(e.c.base.Pan.Sub(delta), d)
}

// PanToPoint animates so the model-space point p sits at the frame center.
func (e *Engine) PanToPoint(p Point, d time.Duration) {
	s := e.c.settledScale()
	e.panTo(e.c.frame.Center().Sub(p.Mul(s)), d)
}

// CenterContent centers the content in the frame.
func (e *Engine) CenterContent(d time.Duration) {
	e.PanToPoint(e.c.content.Center(), d)
}

// CenterX centers the content horizontally, keeping the vertical pan.
func (e *Engine) CenterX(d time.Duration) {
	s := e.c.settledScale()
	e.panTo(Point{
		X: e.c.frame.Width/2 - e.c.content.Width/2*s,
		Y: e.c.base.Pan.Y,
	}, d)
}

// CenterY centers the content vertically, keeping the horizontal pan.
func (e *Engine) CenterY(d time.Duration) {
	s := e.c.settledScale()
	e.panTo(Point{
		X: e.c.base.Pan.X,
		Y: e.c.frame.Height/2 - e.c.content.Height/2*s,
	}, d)
}

// CenterTopLeft centers the content's top-left corner.
func (e *Engine) CenterTopLeft(d time.Duration) {
	e.PanToPoint(Point{0, 0}, d)
}

// CenterBottomLeft centers the content's bottom-left corner.
func (e *Engine) CenterBottomLeft(d time.Duration) {
	e.PanToPoint(Point{0, e.c.content.Height}, d)
}

// CenterTopRight centers the content's top-right corner.
func (e *Engine) CenterTopRight(d time.Duration) {
	e.PanToPoint(Point{e.c.content.Width, 0}, d)
}

// CenterBottomRight centers the content's bottom-right corner.
func (e *Engine) CenterBottomRight(d time.Duration) {
	e.PanToPoint(Point{e.c.content.Width, e.c.content.Height}, d)
}

// --- Dimensions ---

// UpdateContentDimensions replaces the cached content size. Non-positive
// values leave the corresponding dimension unchanged.
func (e *Engine) UpdateContentDimensions(width, height float64) {
	prev := e.c.content
	if width > 0 {
		e.c.content.Width = width
	}
	if height > 0 {
		e.c.content.Height = height
	}
	if e.c.content != prev && e.c.cfg.KeepInBounds {
		e.c.requestTick()
	}
}

// DetectContentDimensions re-measures the content with the measurer given
// to WithContentMeasurer. Without a measurer it does nothing.
func (e *Engine) DetectContentDimensions() {
	if e.measure == nil {
		return
	}
	s := e.measure()
	e.UpdateContentDimensions(s.Width, s.Height)
}

// UpdateFrameDimensions replaces the frame size, e.g. after a window resize.
// Non-positive sizes are ignored.
func (e *Engine) UpdateFrameDimensions(frame Size) {
	if frame.Width <= 0 || frame.Height <= 0 {
		return
	}
	if frame == e.c.frame {
		return
	}
	e.c.frame = frame
	if e.c.cfg.KeepInBounds {
		e.c.requestTick()
	}
}

// --- Gestures ---

// OnDragStart begins a drag at view point p. Any kinetic motion stops; an
// in-flight animation keeps running.
func (e *Engine) OnDragStart(p Point, ts time.Duration) {
	if !e.c.cfg.PanOnClickDrag {
		return
	}
	e.c.dragStart(p, ts)
}

// OnDragMove pans by the pointer movement since the previous event.
func (e *Engine) OnDragMove(p Point, ts time.Duration) {
	e.c.dragMove(p, ts)
}

// OnDragEnd releases the drag. Recent movement continues as kinetic motion.
func (e *Engine) OnDragEnd(ts time.Duration) {
	e.c.dragEnd(ts)
}

// OnWheel zooms around p. deltaY follows the browser convention: positive
// scrolls down, which zooms out unless InvertMouseWheel is set. Wheel input
// while an animation runs is dropped.
func (e *Engine) OnWheel(p Point, deltaY float64) {
	cfg := e.c.cfg
	if !cfg.ZoomOnMouseWheel || e.c.anim != nil || e.c.disposed {
		return
	}
	if !cfg.InvertMouseWheel {
		deltaY = -deltaY
	}
	e.setLastClick(p)

	if cfg.FreeMouseWheel {
		e.c.freeZoom(p, deltaY)
		return
	}
	switch {
	case deltaY > 0:
		e.c.changeZoomLevel(e.c.base.ZoomLevel+cfg.ZoomButtonIncrement, p)
	case deltaY < 0:
		e.c.changeZoomLevel(e.c.base.ZoomLevel-cfg.ZoomButtonIncrement, p)
	}
}

// OnPinch zooms around center by a change in squared finger distance. It
// returns false when no zoom started: the change was below the jitter
// threshold, an animation is running, or the level is already at its
// limit. The caller then keeps accumulating from its previous reference
// distance.
func (e *Engine) OnPinch(distanceDelta float64, center Point) bool {
	if distanceDelta > -pinchHysteresis && distanceDelta < pinchHysteresis {
		return false
	}
	e.setLastClick(center)
	return e.c.changeZoomLevel(e.c.base.ZoomLevel+distanceDelta*pinchZoomFactor, center)
}

// OnDoubleClick zooms in one increment around p.
func (e *Engine) OnDoubleClick(p Point) {
	if !e.c.cfg.ZoomOnDoubleClick {
		return
	}
	e.setLastClick(p)
	e.c.changeZoomLevel(e.c.base.ZoomLevel+e.c.cfg.ZoomButtonIncrement, p)
}

func (e *Engine) setLastClick(p Point) {
	e.lastClick = p
	e.hasLastClick = true
}

// --- Subscribers ---

type subscriber struct {
	id uint32
	fn func(State)
}

type subscriberList struct {
	entries []subscriber
	nextID  uint32
}

// Subscription allows removing a model subscriber.
type Subscription struct {
	id   uint32
	list *subscriberList
}

// Remove unregisters the subscriber so it no longer fires.
func (s Subscription) Remove() {
	if s.list == nil {
		return
	}
	s.list.remove(s.id)
}

func (l *subscriberList) add(fn func(State)) Subscription {
	l.nextID++
	l.entries = append(l.entries, subscriber{id: l.nextID, fn: fn})
	return Subscription{id: l.nextID, list: l}
}

func (l *subscriberList) remove(id uint32) {
	for i := range l.entries {
		if l.entries[i].id == id {
			copy(l.entries[i:], l.entries[i+1:])
			l.entries[len(l.entries)-1] = subscriber{}
			l.entries = l.entries[:len(l.entries)-1]
			return
		}
	}
}

func (l *subscriberList) notify(s State) {
	for _, sub := range l.entries {
		sub.fn(s)
	}
}

func (l *subscriberList) clear() {
	clear(l.entries)
	l.entries = l.entries[:0]
}
