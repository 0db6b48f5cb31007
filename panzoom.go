package panzoom

import "math"

// Point is a 2D coordinate. Depending on context it is in model space
// (content pixels) or view space (frame pixels).
type Point struct {
	X, Y float64
}

// Add returns p + q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Mul returns p scaled by s.
func (p Point) Mul(s float64) Point { return Point{p.X * s, p.Y * s} }

// Length returns the euclidean length of v.
func Length(v Point) float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Size is a width/height pair used for frame and content dimensions.
type Size struct {
	Width, Height float64
}

// Center returns the midpoint of a region of this size anchored at the origin.
func (s Size) Center() Point {
	return Point{s.Width / 2, s.Height / 2}
}

// Rect is an axis-aligned rectangle in model space. The coordinate system has
// its origin at the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// State is a pan/zoom snapshot. The engine keeps two of them: the settled
// base state and the rendered model state. They are equal while idle.
type State struct {
	ZoomLevel float64 `json:"zoomLevel"`
	Pan       Point   `json:"pan"`
	// IsPanning is true only while panning is actually taking place, not
	// merely after a pointer press.
	IsPanning bool `json:"isPanning"`
}

// ZoomType selects the anchor used by ZoomIn and ZoomOut.
type ZoomType uint8

const (
	ZoomLastPoint  ZoomType = iota // anchor at the last clicked/wheeled point
	ZoomViewCenter                 // anchor at the center of the frame
)

// finiteOr0 returns v, or 0 when v is NaN or infinite.
func finiteOr0(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
