package panzoom

import "math"

const (
	// kineticSubStep caps each integration step so long frame gaps cannot
	// overshoot.
	kineticSubStep = 0.02 // seconds

	// restoreEpsilon is the per-tick restore displacement (in view pixels)
	// below which the content counts as back in bounds.
	restoreEpsilon = 0.01
)

// kineticState tracks a released drag that is still decelerating.
type kineticState struct {
	velocity Point // view pixels per second
	// finishing is set once the pointer is released; before that the
	// velocity is only being sampled.
	finishing bool
}

// releaseDamping returns the multiplier applied to the sampled velocity on
// release. A pointer that stopped moving well before release produces a
// multiplier of zero, so stale samples do not launch a flick.
func releaseDamping(sinceLastMove float64) float64 {
	return math.Max(0, math.Pow(sinceLastMove+1, -4)-0.2)
}

// integrateKinetic advances pan by dt seconds under friction, in sub-steps of
// at most kineticSubStep. It returns the new pan, the new velocity, and
// whether the motion halted (speed dropped to haltSpeed or below).
func integrateKinetic(pan, velocity Point, dt, friction, haltSpeed float64) (Point, Point, bool) {
	for dt > 0 {
		step := math.Min(kineticSubStep, dt)
		dt -= step

		pan.X += velocity.X * step
		velocity.X *= 1 - friction*step

		pan.Y += velocity.Y * step
		velocity.Y *= 1 - friction*step

		if Length(velocity) <= haltSpeed {
			return pan, velocity, true
		}
	}
	return pan, velocity, false
}

// bounds describes where the content edges currently sit in view space
// relative to the frame.
type bounds struct {
	topLeft     Point // view position of the content's top-left corner
	bottomRight Point // view position of the content's bottom-right corner
	frame       Size
}

func contentBounds(content, frame Size, scale float64, translation Point) bounds {
	return bounds{
		topLeft:     toView(Point{}, scale, translation),
		bottomRight: toView(Point{content.Width, content.Height}, scale, translation),
		frame:       frame,
	}
}

// pullback attenuates a drag delta that would push a content edge further
// out of the frame. The resistance weakens as the excursion grows.
func (b bounds) pullback(delta Point, coefficient float64) Point {
	if b.topLeft.X > 0 && delta.X > 0 {
		delta.X *= math.Min(1, math.Pow(b.topLeft.X, -coefficient))
	}
	if b.topLeft.Y > 0 && delta.Y > 0 {
		delta.Y *= math.Min(1, math.Pow(b.topLeft.Y, -coefficient))
	}
	if b.bottomRight.X < b.frame.Width && delta.X < 0 {
		delta.X *= math.Min(1, math.Pow(b.frame.Width-b.bottomRight.X, -coefficient))
	}
	if b.bottomRight.Y < b.frame.Height && delta.Y < 0 {
		delta.Y *= math.Min(1, math.Pow(b.frame.Height-b.bottomRight.Y, -coefficient))
	}
	return delta
}

// restore returns the per-tick pan correction that nudges out-of-frame
// edges back toward the frame edges, proportional to the excursion.
func (b bounds) restore(force float64) Point {
	var d Point
	if b.topLeft.X > 0 {
		d.X -= force * b.topLeft.X
	}
	if b.topLeft.Y > 0 {
		d.Y -= force * b.topLeft.Y
	}
	if b.bottomRight.X < b.frame.Width {
		d.X -= force * (b.bottomRight.X - b.frame.Width)
	}
	if b.bottomRight.Y < b.frame.Height {
		d.Y -= force * (b.bottomRight.Y - b.frame.Height)
	}
	return d
}
