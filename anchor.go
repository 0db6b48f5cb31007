package panzoom

// anchorTranslation returns the translation t1 at scale s1 that keeps the
// view point p over the same model point it covered at (s0, t0).
//
// With p' = p*s + t held fixed for one model point:
//
//	(1/s0)(p' - t0) = (1/s1)(p' - t1)
//	t1 = p' - (s1/s0)*(p' - t0)
func anchorTranslation(p Point, s0 float64, t0 Point, s1 float64) Point {
	r := s1 / s0
	return Point{
		X: p.X - r*(p.X-t0.X),
		Y: p.Y - r*(p.Y-t0.Y),
	}
}

// stepKind distinguishes how an animation computes its pan offset.
type stepKind uint8

const (
	stepZoomAnchored stepKind = iota // keep anchor fixed while the zoom level changes
	stepTargetPan                    // interpolate linearly from start to target pan
)

// panStep describes the pan component of an animation. offset is a pure
// function of the interpolated zoom level and progress; it returns the
// displacement to add to the base pan.
type panStep struct {
	kind stepKind

	// stepZoomAnchored
	anchor Point
	scale0 float64
	pan0   Point

	// stepTargetPan
	start  Point
	target Point
}

func zoomAnchoredStep(anchor Point, scale0 float64, pan0 Point) panStep {
	return panStep{kind: stepZoomAnchored, anchor: anchor, scale0: scale0, pan0: pan0}
}

func targetPanStep(start, target Point) panStep {
	return panStep{kind: stepTargetPan, start: start, target: target}
}

// offset evaluates the step. zoomLevel is the interpolated level for this
// frame and progress the eased interpolation parameter in [0, 1].
func (s panStep) offset(ls levelScale, zoomLevel, progress float64) Point {
	switch s.kind {
	case stepZoomAnchored:
		t1 := anchorTranslation(s.anchor, s.scale0, s.pan0, ls.scale(zoomLevel))
		return t1.Sub(s.pan0)
	case stepTargetPan:
		return s.target.Sub(s.start).Mul(progress)
	default:
		return Point{}
	}
}
