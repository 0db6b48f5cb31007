package panzoom

import "github.com/hajimehoshi/ebiten/v2"

// Surface is the visual binding the engine drives. ApplyTransform is called
// on every emitted frame with the transform the content must be drawn with.
type Surface interface {
	ApplyTransform(t Transform)
}

// SurfaceFunc adapts a plain function to the Surface interface.
type SurfaceFunc func(t Transform)

// ApplyTransform implements Surface.
func (f SurfaceFunc) ApplyTransform(t Transform) { f(t) }

// GeoMSurface keeps the most recent transform as an ebiten.GeoM, for hosts
// that draw the content image themselves.
type GeoMSurface struct {
	transform Transform
	geoM      ebiten.GeoM
	frames    int
}

// ApplyTransform implements Surface.
func (s *GeoMSurface) ApplyTransform(t Transform) {
	s.transform = t
	s.geoM = t.GeoM()
	s.frames++
}

// Transform returns the last applied transform.
func (s *GeoMSurface) Transform() Transform {
	return s.transform
}

// GeoM returns the last applied transform as an ebiten.GeoM.
func (s *GeoMSurface) GeoM() ebiten.GeoM {
	return s.geoM
}

// Frames returns how many transforms have been applied.
func (s *GeoMSurface) Frames() int {
	return s.frames
}
