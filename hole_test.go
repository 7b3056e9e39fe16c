package fluidcard

import (
	"testing"
)

func TestSeparate(t *testing.T) {
	left := Rect{0, 0, 10, 1}
	right := Rect{12, 0, 20, 1}
	separate(&left, &right, 4)
	diff(t, Rect{0, 0, 7, 1}, left)
	diff(t, Rect{15, 0, 20, 1}, right)

	// Far enough apart already.
	left = Rect{0, 0, 10, 1}
	right = Rect{30, 0, 40, 1}
	separate(&left, &right, 4)
	diff(t, Rect{0, 0, 10, 1}, left)
	diff(t, Rect{30, 0, 40, 1}, right)
}

func checkHoleSeparation(t *testing.T, hs []Hole, minDist float64, context string) {
	t.Helper()
	const epsilon = 1e-9
	outer, inner, trailing := hs[HoleLeadingOuter].Rect, hs[HoleLeadingInner].Rect, hs[HoleTrailing].Rect
	if d := inner.X0 - outer.X1; d < 2*minDist-epsilon {
		t.Errorf("%s: leading holes only %g apart", context, d)
	}
	if d := trailing.X0 - inner.X1; d < 2*minDist-epsilon {
		t.Errorf("%s: inner and trailing hole only %g apart", context, d)
	}
	for i, h := range hs {
		if h.Rect.Y1 < h.Rect.Y0-epsilon {
			t.Errorf("%s: hole %d is inverted: %v", context, i, h.Rect)
		}
	}
}

func TestLayoutHolesSeparation(t *testing.T) {
	cfg := DefaultConfig()
	for _, width := range []float64{120, 200, 295, 600} {
		top := Rect{0, 0, width, 264}
		bottom := Rect{0, 290, width, 400}
		for i := range 11 {
			for j := range 11 {
				hole, border := float64(i)/10, float64(j)/10
				hs := layoutHoles(cfg, width, top, bottom, hole, border, 0)
				checkHoleSeparation(t, hs[:], cfg.MinHoleSeparation, "layoutHoles")
			}
		}
	}
}

func TestLayoutHolesRecess(t *testing.T) {
	cfg := DefaultConfig()
	top := Rect{0, 0, 295, 264}

	// A closed hole sits HoleRecess inside a wide seam.
	hs := layoutHoles(cfg, 295, top, Rect{0, 300, 295, 400}, 0, 0, 0)
	diff(t, 272.0, hs[HoleTrailing].Rect.Y0)
	diff(t, 292.0, hs[HoleTrailing].Rect.Y1)
	diff(t, 4.0, hs[HoleTrailing].HalfWidth)

	// A narrow seam limits the recess to half its height.
	hs = layoutHoles(cfg, 295, top, Rect{0, 268, 295, 400}, 0, 0, 0)
	diff(t, 266.0, hs[HoleTrailing].Rect.Y0)
	diff(t, 266.0, hs[HoleTrailing].Rect.Y1)

	// Overlapping panels produce flat holes on the top panel's edge.
	hs = layoutHoles(cfg, 295, Rect{0, 10, 295, 274}, Rect{0, 268, 295, 400}, 0.5, 0, 0)
	for _, h := range hs {
		diff(t, 274.0, h.Rect.Y0)
		diff(t, 274.0, h.Rect.Y1)
	}
}

func TestLayoutHolesMerge(t *testing.T) {
	cfg := DefaultConfig()
	top := Rect{0, 0, 295, 264}
	bottom := Rect{0, 311, 295, 445}
	hs := layoutHoles(cfg, 295, top, bottom, 1, 1, 1)
	for i, h := range hs {
		if h.Rect.Y0 != 264 || h.Rect.Y1 != 311 {
			t.Errorf("hole %d spans %v, want the full seam", i, h.Rect)
		}
	}
	diff(t, 14.0, hs[HoleTrailing].HalfWidth)
	diff(t, 16.0, hs[HoleLeadingOuter].HalfWidth)
}
