package panzoom

import "time"

type syntheticKind uint8

const (
	syntheticPointer syntheticKind = iota
	syntheticWheel
	syntheticDoubleClick
	syntheticPinch
)

// syntheticEvent represents a single injected input event in frame
// coordinates, matching what a screenshot shows.
type syntheticEvent struct {
	kind    syntheticKind
	pos     Point
	pressed bool
	deltaY  float64 // wheel delta, or squared-distance delta for pinch
}

// InjectPress queues a pointer press at the given frame coordinates. The
// event is consumed on the next frame's processInput call.
func (v *Viewer) InjectPress(x, y float64) {
	v.injectQueue = append(v.injectQueue, syntheticEvent{
		kind: syntheticPointer, pos: Point{x, y}, pressed: true,
	})
}

// InjectMove queues a pointer move with the button held down. Use this
// between InjectPress and InjectRelease to simulate a drag.
func (v *Viewer) InjectMove(x, y float64) {
	v.injectQueue = append(v.injectQueue, syntheticEvent{
		kind: syntheticPointer, pos: Point{x, y}, pressed: true,
	})
}

// InjectRelease queues a pointer release at the given frame coordinates.
func (v *Viewer) InjectRelease(x, y float64) {
	v.injectQueue = append(v.injectQueue, syntheticEvent{
		kind: syntheticPointer, pos: Point{x, y},
	})
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and
// release at (toX, toY). The total sequence consumes `frames` frames.
// Minimum frames is 2 (press + release).
func (v *Viewer) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	v.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		v.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	v.InjectRelease(toX, toY)
}

// InjectWheel queues a wheel event at (x, y). deltaY follows the browser
// convention: positive scrolls down.
func (v *Viewer) InjectWheel(x, y, deltaY float64) {
	v.injectQueue = append(v.injectQueue, syntheticEvent{
		kind: syntheticWheel, pos: Point{x, y}, deltaY: deltaY,
	})
}

// InjectDoubleClick queues a double click at (x, y).
func (v *Viewer) InjectDoubleClick(x, y float64) {
	v.injectQueue = append(v.injectQueue, syntheticEvent{
		kind: syntheticDoubleClick, pos: Point{x, y},
	})
}

// InjectPinch queues a pinch centered at (x, y) that changes the squared
// finger distance by distanceDelta.
func (v *Viewer) InjectPinch(x, y, distanceDelta float64) {
	v.injectQueue = append(v.injectQueue, syntheticEvent{
		kind: syntheticPinch, pos: Point{x, y}, deltaY: distanceDelta,
	})
}

// processInjectedInput pops one event from the inject queue and feeds it to
// the engine the same way real input would be. Returns true if an event was
// consumed (real mouse input should be skipped).
func (v *Viewer) processInjectedInput(now time.Duration) bool {
	if len(v.injectQueue) == 0 {
		return false
	}
	evt := v.injectQueue[0]
	copy(v.injectQueue, v.injectQueue[1:])
	v.injectQueue = v.injectQueue[:len(v.injectQueue)-1]

	switch evt.kind {
	case syntheticPointer:
		v.processPointer(&v.input.mouse, evt.pos, evt.pressed, true, now)
	case syntheticWheel:
		v.engine.OnWheel(evt.pos, evt.deltaY)
	case syntheticDoubleClick:
		v.engine.OnDoubleClick(evt.pos)
	case syntheticPinch:
		v.engine.OnPinch(evt.deltaY, evt.pos)
	}
	return true
}
