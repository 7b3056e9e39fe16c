package fluidcard

import "math"

// Affine is a 2D affine transform. The coefficients (a, b, c, d, e, f)
// describe the augmented matrix
//
//	| a c e |
//	| b d f |
//	| 0 0 1 |
//
// The chevron rotates with one of these, and the mask package maps card
// coordinates to pixels with another.
type Affine struct {
	N0, N1, N2, N3, N4, N5 float64
}

// Identity is the identity transform.
var Identity = Affine{1, 0, 0, 1, 0, 0}

// Scale scales x and y independently.
func Scale(x, y float64) Affine {
	return Affine{x, 0, 0, y, 0, 0}
}

func Translate(v Vec2) Affine {
	return Affine{1, 0, 0, 1, v.X, v.Y}
}

// Rotate rotates by th radians. Positive angles turn the x axis towards the
// y axis, which is clockwise on screen.
func Rotate(th float64) Affine {
	sin, cos := math.Sincos(th)
	return Affine{cos, sin, -sin, cos, 0, 0}
}

// RotateAbout rotates by th radians about center.
func RotateAbout(th float64, center Point) Affine {
	c := Vec2(center)
	return Translate(c.Negate()).ThenRotate(th).ThenTranslate(c)
}

// Mul returns the transform that applies o first and then aff.
func (aff Affine) Mul(o Affine) Affine {
	return Affine{
		aff.N0*o.N0 + aff.N2*o.N1,
		aff.N1*o.N0 + aff.N3*o.N1,
		aff.N0*o.N2 + aff.N2*o.N3,
		aff.N1*o.N2 + aff.N3*o.N3,
		aff.N0*o.N4 + aff.N2*o.N5 + aff.N4,
		aff.N1*o.N4 + aff.N3*o.N5 + aff.N5,
	}
}

func (aff Affine) ThenRotate(th float64) Affine { return Rotate(th).Mul(aff) }

func (aff Affine) ThenScale(x, y float64) Affine { return Scale(x, y).Mul(aff) }

func (aff Affine) ThenTranslate(v Vec2) Affine {
	aff.N4 += v.X
	aff.N5 += v.Y
	return aff
}

// TransformRect returns the bounding box of the transformed rectangle.
func (aff Affine) TransformRect(r Rect) Rect {
	return NewRectFromPoints(Pt(r.X0, r.Y0).Transform(aff), Pt(r.X1, r.Y1).Transform(aff)).
		UnionPoint(Pt(r.X0, r.Y1).Transform(aff)).
		UnionPoint(Pt(r.X1, r.Y0).Transform(aff))
}
