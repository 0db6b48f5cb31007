package panzoom

import "math"

// toView converts a model-space point to view space:
//
//	p' = p*s + t
func toView(p Point, scale float64, translation Point) Point {
	return Point{
		X: p.X*scale + translation.X,
		Y: p.Y*scale + translation.Y,
	}
}

// toModel converts a view-space point to model space:
//
//	p = (1/s)(p' - t)
func toModel(v Point, scale float64, translation Point) Point {
	return Point{
		X: (v.X - translation.X) / scale,
		Y: (v.Y - translation.Y) / scale,
	}
}

// levelScale maps zoom levels to scale factors and back. Integer levels are
// the named steps; any real level is valid.
type levelScale struct {
	perLevel float64 // scale multiplier between adjacent levels
	neutral  float64 // level at which scale is 1
}

// scale returns perLevel^(level-neutral).
func (l levelScale) scale(level float64) float64 {
	return math.Pow(l.perLevel, level-l.neutral)
}

// level is the inverse of scale. s must be > 0.
func (l levelScale) level(s float64) float64 {
	return math.Log(s)/math.Log(l.perLevel) + l.neutral
}
