package panzoom

import (
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Constants ---

const (
	maxTouches          = 10
	doubleClickInterval = 300 * time.Millisecond
	doubleClickSlop     = 4.0 // pixels
)

// --- Per-pointer state ---

type pointerState struct {
	down bool
	last Point
}

// clickState remembers the previous press for double-click detection.
type clickState struct {
	valid bool
	at    time.Duration
	pos   Point
}

// --- Pinch state ---

// pinchState tracks a two-finger gesture. refDist is the squared finger
// distance the next delta is measured from; it only moves forward once the
// engine accepts a delta.
type pinchState struct {
	active  bool
	refDist float64
}

type inputState struct {
	mouse     pointerState
	lastPress clickState

	touch        pointerState
	touchIDs     []ebiten.TouchID
	touchPoints  []Point
	prevTouchIDs []ebiten.TouchID
	pinch        pinchState
}

// dragMouseButton maps the configured button name to an ebiten button.
func dragMouseButton(name string) ebiten.MouseButton {
	switch strings.ToLower(name) {
	case "middle":
		return ebiten.MouseButtonMiddle
	case "right":
		return ebiten.MouseButtonRight
	default:
		return ebiten.MouseButtonLeft
	}
}

// processInput is called from Viewer.Update to translate mouse, wheel and
// touch state into engine gestures.
func (v *Viewer) processInput() {
	now := v.clock.Now()

	// Injected events replace real mouse input for the frame.
	if !v.processInjectedInput(now) {
		v.processMousePointer(now)
	}
	v.processWheel()
	v.processTouches(v.readTouches(), now)
}

// processMousePointer handles the mouse pointer.
func (v *Viewer) processMousePointer(now time.Duration) {
	mx, my := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(dragMouseButton(v.engine.Config().DragMouseButton))
	v.processPointer(&v.input.mouse, Point{float64(mx), float64(my)}, pressed, true, now)
}

func (v *Viewer) processWheel() {
	_, yoff := ebiten.Wheel()
	if yoff == 0 {
		return
	}
	mx, my := ebiten.CursorPosition()
	// ebiten reports scrolling up as positive.
	v.engine.OnWheel(Point{float64(mx), float64(my)}, -yoff)
}

// readTouches returns the current touch positions.
func (v *Viewer) readTouches() []Point {
	v.input.touchIDs = ebiten.AppendTouchIDs(v.input.prevTouchIDs[:0])
	v.input.prevTouchIDs = v.input.touchIDs

	pts := v.input.touchPoints[:0]
	for i, tid := range v.input.touchIDs {
		if i == maxTouches {
			break
		}
		tx, ty := ebiten.TouchPosition(tid)
		pts = append(pts, Point{float64(tx), float64(ty)})
	}
	v.input.touchPoints = pts
	return pts
}

// processTouches runs the touch gestures: one finger drags, two fingers
// pinch. Adding a second finger ends the one-finger drag.
func (v *Viewer) processTouches(touches []Point, now time.Duration) {
	in := &v.input
	switch len(touches) {
	case 0:
		if in.touch.down {
			v.processPointer(&in.touch, in.touch.last, false, false, now)
		}
		in.pinch.active = false
	case 1:
		if in.pinch.active {
			// Lifting one finger of a pinch does not start a drag.
			return
		}
		v.processPointer(&in.touch, touches[0], true, false, now)
	default:
		if in.touch.down {
			v.processPointer(&in.touch, in.touch.last, false, false, now)
		}
		v.processPinch(touches[0], touches[1])
	}
}

// processPinch feeds the change in squared finger distance to the engine.
func (v *Viewer) processPinch(p0, p1 Point) {
	d := p1.Sub(p0)
	dist := d.X*d.X + d.Y*d.Y
	center := p0.Add(p1).Mul(0.5)

	if !v.input.pinch.active {
		v.input.pinch = pinchState{active: true, refDist: dist}
		return
	}
	if v.engine.OnPinch(dist-v.input.pinch.refDist, center) {
		v.input.pinch.refDist = dist
	}
}

// processPointer runs the press/move/release state machine for a single
// pointer. Double clicks are only detected for the mouse.
func (v *Viewer) processPointer(ps *pointerState, p Point, pressed, mouse bool, now time.Duration) {
	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.last = p
		if mouse && v.detectDoubleClick(p, now) {
			v.engine.OnDoubleClick(p)
		}
		v.engine.OnDragStart(p, now)
	case pressed && ps.down:
		if p != ps.last {
			v.engine.OnDragMove(p, now)
			ps.last = p
		}
	case !pressed && ps.down:
		ps.down = false
		v.engine.OnDragEnd(now)
	default:
		ps.last = p
	}
}

// detectDoubleClick records a press and reports whether it completes a
// double click.
func (v *Viewer) detectDoubleClick(p Point, now time.Duration) bool {
	prev := v.input.lastPress
	if prev.valid && now-prev.at <= doubleClickInterval && Length(p.Sub(prev.pos)) <= doubleClickSlop {
		v.input.lastPress = clickState{}
		return true
	}
	v.input.lastPress = clickState{valid: true, at: now, pos: p}
	return false
}
