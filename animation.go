package panzoom

import (
	"log/slog"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// zoomAnimation is one in-flight tween from the base state toward a target.
// It exists only while the tween runs.
type zoomAnimation struct {
	deltaZoomLevel float64
	step           panStep
	duration       time.Duration

	// tween runs the interpolation parameter from 0 to 1.
	tween *gween.Tween
	value float64
	done  bool
}

func newZoomAnimation(deltaZoomLevel float64, step panStep, duration time.Duration, fn ease.TweenFunc) *zoomAnimation {
	return &zoomAnimation{
		deltaZoomLevel: deltaZoomLevel,
		step:           step,
		duration:       duration,
		tween:          gween.New(0, 1, float32(duration.Seconds()), fn),
	}
}

// advance moves the tween forward by dt. A zero duration finishes on the
// first call.
func (a *zoomAnimation) advance(dt time.Duration) {
	val, finished := a.tween.Update(float32(dt.Seconds()))
	a.value = float64(val)
	a.done = finished
}

// eased returns the eased interpolation parameter. Completion is always
// exactly 1 regardless of the curve.
func (a *zoomAnimation) eased() float64 {
	if a.done {
		return 1
	}
	return a.value
}

// dragState samples the pointer while a drag is active.
type dragState struct {
	prev     Point
	lastMove time.Duration
	velocity Point // view pixels per second, from the last move
}

// controller owns the base and model states and runs the per-frame state
// machine. All mutation of base/model goes through its methods.
type controller struct {
	cfg     Config
	levels  levelScale
	frame   Size
	content Size

	base  State // settled
	model State // rendered

	anim     *zoomAnimation
	kinetic  *kineticState
	dragging bool
	drag     dragState

	sched       Scheduler
	tickHandle  TickHandle
	tickPending bool
	lastTick    time.Duration
	hasLastTick bool

	surface Surface
	subs    subscriberList

	logger   *slog.Logger
	debug    bool
	stats    episodeStats
	disposed bool
}

func newController(cfg Config, frame, content Size, surface Surface, sched Scheduler, logger *slog.Logger) *controller {
	return &controller{
		cfg:     cfg,
		levels:  cfg.levels(),
		frame:   frame,
		content: content,
		sched:   sched,
		surface: surface,
		logger:  logger,
	}
}

// reset installs s as both base and model.
func (c *controller) reset(s State) {
	c.base = s
	c.model = s
}

func (c *controller) clampLevel(level float64) float64 {
	return clamp(level, c.cfg.minimumAllowedZoomLevel(), c.cfg.maxZoomLevel())
}

// settledScale is the scale of the base state.
func (c *controller) settledScale() float64 {
	return c.levels.scale(c.base.ZoomLevel)
}

// viewTransform returns the scale and translation used for coordinate
// conversion. With current set, an in-flight animation contributes its
// instantaneous interpolated values; otherwise the settled base is used.
func (c *controller) viewTransform(current bool) (float64, Point) {
	if !current {
		return c.settledScale(), c.base.Pan
	}
	if c.anim != nil {
		e := c.anim.eased()
		z := c.base.ZoomLevel + c.anim.deltaZoomLevel*e
		return c.levels.scale(z), c.base.Pan.Add(c.anim.step.offset(c.levels, z, e))
	}
	return c.levels.scale(c.model.ZoomLevel), c.model.Pan
}

func (c *controller) bounds(current bool) bounds {
	s, t := c.viewTransform(current)
	return contentBounds(c.content, c.frame, s, t)
}

// currentTransform is the transform matching the rendered model.
func (c *controller) currentTransform() Transform {
	return ComposeTransform(c.levels.scale(c.model.ZoomLevel), c.model.Pan)
}

// updateModel recomputes the model from the base and the active animation.
// Without an animation the model is left as is.
func (c *controller) updateModel() {
	if c.anim == nil {
		return
	}
	e := c.anim.eased()
	c.model.ZoomLevel = c.base.ZoomLevel + c.anim.deltaZoomLevel*e
	c.model.Pan = c.base.Pan.Add(c.anim.step.offset(c.levels, c.model.ZoomLevel, e))
}

// syncBaseToModel copies the rendered pan and zoom into the settled state.
func (c *controller) syncBaseToModel() {
	c.base.Pan = c.model.Pan
	c.base.ZoomLevel = c.model.ZoomLevel
}

// emit pushes the current transform to the surface and the model to
// subscribers.
func (c *controller) emit() {
	c.surface.ApplyTransform(c.currentTransform())
	c.subs.notify(c.model)
}

func (c *controller) requestTick() {
	if c.tickPending || c.disposed {
		return
	}
	c.tickPending = true
	c.tickHandle = c.sched.RequestTick(c.tick)
}

func (c *controller) cancelTick() {
	if !c.tickPending {
		return
	}
	c.sched.CancelTick(c.tickHandle)
	c.tickPending = false
	c.tickHandle = 0
}

// stopKinetic drops any decelerating motion, leaving the model where it is.
func (c *controller) stopKinetic() {
	if c.kinetic == nil {
		return
	}
	c.kinetic = nil
	if c.anim == nil {
		c.syncBaseToModel()
	}
}

// animateTo starts a tween from the base state to target. Returns false if
// an animation is already running; the request is then dropped.
func (c *controller) animateTo(target State, duration time.Duration) bool {
	if c.anim != nil || c.disposed {
		return false
	}
	c.stopKinetic()

	target.ZoomLevel = c.clampLevel(target.ZoomLevel)
	c.model.Pan = c.base.Pan
	c.model.IsPanning = true
	c.startAnimation(newZoomAnimation(
		target.ZoomLevel-c.base.ZoomLevel,
		targetPanStep(c.base.Pan, target.Pan),
		duration,
		c.cfg.easing(),
	))
	return true
}

// changeZoomLevel starts a stepped zoom to level that keeps anchor (a view
// point) visually fixed. Dropped while another animation runs, and a no-op
// when the clamped level equals the current one.
func (c *controller) changeZoomLevel(level float64, anchor Point) bool {
	if c.anim != nil || c.disposed {
		return false
	}
	delta := c.clampLevel(level) - c.base.ZoomLevel
	if delta == 0 {
		return false
	}
	c.stopKinetic()

	c.startAnimation(newZoomAnimation(
		delta,
		zoomAnchoredStep(anchor, c.settledScale(), c.base.Pan),
		c.cfg.ZoomStepDuration,
		c.cfg.easing(),
	))
	return true
}

func (c *controller) startAnimation(a *zoomAnimation) {
	c.anim = a
	c.stats.begin("animation")
	c.requestTick()
}

// freeZoom scales continuously around anchor by wheelDelta, without a tween.
func (c *controller) freeZoom(anchor Point, wheelDelta float64) {
	if c.dragging || c.anim != nil || c.disposed {
		return
	}
	c.stopKinetic()

	minScale := c.levels.scale(c.cfg.minimumAllowedZoomLevel())
	maxScale := c.levels.scale(c.cfg.maxZoomLevel())

	s0 := c.levels.scale(c.model.ZoomLevel)
	s1 := clamp(s0+wheelDelta*c.cfg.FreeMouseWheelFactor*s0, minScale, maxScale)

	c.model.Pan = anchorTranslation(anchor, s0, c.model.Pan, s1)
	c.model.ZoomLevel = c.clampLevel(c.levels.level(s1))
	c.syncBaseToModel()
	c.emit()

	if c.cfg.KeepInBounds {
		c.requestTick()
	}
}

func (c *controller) dragStart(p Point, ts time.Duration) {
	if c.disposed {
		return
	}
	c.stopKinetic()
	c.dragging = true
	c.drag = dragState{prev: p, lastMove: ts}
	c.model.IsPanning = false
}

func (c *controller) dragMove(p Point, ts time.Duration) {
	if !c.dragging || c.disposed {
		return
	}
	elapsed := (ts - c.drag.lastMove).Seconds()
	c.drag.lastMove = ts

	delta := p.Sub(c.drag.prev)
	if c.cfg.KeepInBounds {
		delta = c.bounds(true).pullback(delta, c.cfg.KeepInBoundsDragPullback)
	}
	delta = Point{finiteOr0(delta.X), finiteOr0(delta.Y)}

	if c.anim != nil {
		// The tween keeps running; shift its origin so both compose.
		c.base.Pan = c.base.Pan.Add(delta)
		c.updateModel()
	} else {
		c.model.Pan = c.model.Pan.Add(delta)
		c.syncBaseToModel()
	}
	c.model.IsPanning = true

	c.drag.velocity = Point{
		X: finiteOr0(delta.X / elapsed),
		Y: finiteOr0(delta.Y / elapsed),
	}
	c.drag.prev = p
	c.emit()
}

func (c *controller) dragEnd(ts time.Duration) {
	if !c.dragging || c.disposed {
		return
	}
	c.dragging = false

	v := c.drag.velocity
	sinceLastMove := (ts - c.drag.lastMove).Seconds()
	c.drag = dragState{}
	if m := releaseDamping(sinceLastMove); m > 0 && (v.X != 0 || v.Y != 0) && c.anim == nil {
		c.kinetic = &kineticState{velocity: v.Mul(m), finishing: true}
		c.stats.begin("kinetic")
		c.requestTick()
		return
	}

	c.model.IsPanning = false
	if c.anim == nil {
		c.syncBaseToModel()
	}
	c.subs.notify(c.model)
	if c.cfg.KeepInBounds {
		c.requestTick()
	}
}

// tick advances one frame. It is only ever invoked by the scheduler.
func (c *controller) tick(now time.Duration) {
	c.tickPending = false
	c.tickHandle = 0
	if c.disposed {
		return
	}

	var dt time.Duration
	if c.hasLastTick {
		dt = now - c.lastTick
	}
	c.lastTick = now
	c.hasLastTick = true
	c.stats.frame()

	if a := c.anim; a != nil {
		a.advance(dt)
		if a.done {
			c.updateModel()
			c.anim = nil
			c.syncBaseToModel()
		}
	}

	finishing := c.kinetic != nil && c.kinetic.finishing
	if finishing {
		pan, v, halted := integrateKinetic(c.model.Pan, c.kinetic.velocity, dt.Seconds(), c.cfg.Friction, c.cfg.HaltSpeed)
		c.model.Pan = pan
		c.syncBaseToModel()
		if halted {
			c.kinetic = nil
		} else {
			c.kinetic.velocity = v
		}
	}

	restoring := false
	if (c.cfg.KeepInBounds || finishing) && !c.dragging {
		d := c.bounds(true).restore(c.cfg.KeepInBoundsRestoreForce)
		c.base.Pan = c.base.Pan.Add(d)
		if c.anim == nil {
			c.model.Pan = c.base.Pan
		}
		restoring = Length(d) > restoreEpsilon
	}

	c.updateModel()
	c.emit()

	switch {
	case c.anim != nil || c.kinetic != nil || restoring:
		c.requestTick()
	case c.dragging:
		// The pointer drives the next frame.
		c.hasLastTick = false
	default:
		c.finishEpisode()
	}
}

// finishEpisode folds the model into the base and goes idle.
func (c *controller) finishEpisode() {
	c.model.IsPanning = false
	c.syncBaseToModel()
	c.base.IsPanning = false
	c.hasLastTick = false
	c.lastTick = 0
	c.subs.notify(c.model)
	c.debugLog()
	c.stats = episodeStats{}
}

func (c *controller) dispose() {
	c.cancelTick()
	c.anim = nil
	c.kinetic = nil
	c.dragging = false
	c.subs.clear()
	c.disposed = true
}
