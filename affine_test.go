package fluidcard

import (
	"math"
	"testing"
)

func TestAffineBasic(t *testing.T) {
	const epsilon = 1e-9
	p := Pt(3, 4)

	assertNear(t, p.Transform(Identity), p, epsilon)
	assertNear(t, p.Transform(Scale(2, 2)), Pt(6, 8), epsilon)
	assertNear(t, p.Transform(Rotate(math.Pi/2)), Pt(-4, 3), epsilon)
	assertNear(t, p.Transform(Translate(Vec(5, 6))), Pt(8, 10), epsilon)
}

func TestAffineMul(t *testing.T) {
	const epsilon = 1e-9
	a1 := Affine{1, 2, 3, 4, 5, 6}
	a2 := Affine{0.1, 1.2, 2.3, 3.4, 4.5, 5.6}

	for _, p := range []Point{Pt(1, 0), Pt(0, 1), Pt(1, 1)} {
		assertNear(t, p.Transform(a2).Transform(a1), p.Transform(a1.Mul(a2)), epsilon)
	}
}

func TestRotateAbout(t *testing.T) {
	const epsilon = 1e-9
	// A half turn about the button center flips the chevron.
	c := Pt(10, 10)
	aff := RotateAbout(-math.Pi, c)
	assertNear(t, c.Transform(aff), c, epsilon)
	assertNear(t, Pt(16, 7).Transform(aff), Pt(4, 13), epsilon)
	assertNear(t, Pt(10, 13).Transform(aff), Pt(10, 7), epsilon)
}

func TestViewportTransform(t *testing.T) {
	const epsilon = 1e-9
	vp := Rect{-10, -5, 290, 310}
	aff := Translate(Vec(-vp.X0, -vp.Y0)).ThenScale(2, 2)
	assertNear(t, Pt(vp.X0, vp.Y0).Transform(aff), Pt(0, 0), epsilon)
	assertNear(t, Pt(vp.X1, vp.Y1).Transform(aff), Pt(600, 630), epsilon)
	diff(t, Rect{0, 0, 600, 630}, aff.TransformRect(vp), approx(epsilon))
}

func TestTransformRectRotated(t *testing.T) {
	r := Rect{0, 0, 4, 2}
	got := RotateAbout(math.Pi/2, r.Center()).TransformRect(r)
	diff(t, Rect{1, -1, 3, 3}, got, approx(1e-9))
}
