package panzoom

import "github.com/hajimehoshi/ebiten/v2"

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// Transform is the value the visual surface renders each frame: a uniform
// scale about the origin followed by a translation.
type Transform struct {
	Scale      float64
	TranslateX float64
	TranslateY float64
}

// ComposeTransform returns the transform that applies scale about the origin,
// then translates by translate.
func ComposeTransform(scale float64, translate Point) Transform {
	return Transform{Scale: scale, TranslateX: translate.X, TranslateY: translate.Y}
}

// Translation returns the translation component as a Point.
func (t Transform) Translation() Point {
	return Point{t.TranslateX, t.TranslateY}
}

// Matrix returns the affine matrix [a, b, c, d, tx, ty] equivalent to t.
//
//	| s  0  tx |
//	| 0  s  ty |
//	| 0  0   1 |
func (t Transform) Matrix() [6]float64 {
	return multiplyAffine(translateMatrix(t.TranslateX, t.TranslateY), scaleMatrix(t.Scale))
}

// GeoM returns t as an ebiten.GeoM, ready to be used in DrawImageOptions.
func (t Transform) GeoM() ebiten.GeoM {
	var g ebiten.GeoM
	g.Scale(t.Scale, t.Scale)
	g.Translate(t.TranslateX, t.TranslateY)
	return g
}

// Apply maps a model-space point into view space.
func (t Transform) Apply(p Point) Point {
	x, y := transformPoint(t.Matrix(), p.X, p.Y)
	return Point{x, y}
}

// Invert maps a view-space point back into model space. A zero scale yields
// the point unchanged.
func (t Transform) Invert(p Point) Point {
	x, y := transformPoint(invertAffine(t.Matrix()), p.X, p.Y)
	return Point{x, y}
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular (determinant ≈ 0).
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// scaleMatrix returns the affine matrix for a uniform scale about the origin.
func scaleMatrix(s float64) [6]float64 {
	return [6]float64{s, 0, 0, s, 0, 0}
}

// translateMatrix returns the affine matrix for a translation.
func translateMatrix(tx, ty float64) [6]float64 {
	return [6]float64{1, 0, 0, 1, tx, ty}
}
