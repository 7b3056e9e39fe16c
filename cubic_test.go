package fluidcard

import (
	"math"
	"testing"
)

func TestCubicBezEval(t *testing.T) {
	const epsilon = 1e-12
	c := CubicBez{Pt(0, 0), Pt(0, 1), Pt(1, 1), Pt(1, 0)}
	assertNear(t, c.Eval(0), c.P0, epsilon)
	assertNear(t, c.Eval(1), c.P3, epsilon)
	assertNear(t, c.Eval(0.5), Pt(0.5, 0.75), epsilon)
}

func TestCubicBezExtrema(t *testing.T) {
	// y = x^2
	q := CubicBez{Pt(0.0, 0.0), Pt(0.0, 1.0), Pt(1.0, 1.0), Pt(1.0, 0.0)}
	extrema, n := q.Extrema()
	if n != 1 {
		t.Fatalf("got %d extrema, expected 1", n)
	}
	if want := 0.5; math.Abs(extrema[0]-want) > 1e-6 {
		t.Errorf("got extrema %v, want %v", extrema[0], want)
	}

	q = CubicBez{Pt(0.4, 0.5), Pt(0.0, 1.0), Pt(1.0, 0.0), Pt(0.5, 0.4)}
	extrema, n = q.Extrema()
	if n != 4 {
		t.Fatalf("got %d extrema, expected 4", n)
	}
}

func TestCubicBezBoundingBox(t *testing.T) {
	q := CubicBez{Pt(0.0, 0.0), Pt(0.0, 1.0), Pt(1.0, 1.0), Pt(1.0, 0.0)}
	diff(t, Rect{0, 0, 1, 0.75}, q.BoundingBox(), approx(1e-12))
}

func TestCubicBezFlatten(t *testing.T) {
	c := CubicBez{Pt(0, 0), Pt(30, 100), Pt(70, 100), Pt(100, 0)}
	const tolerance = 0.1
	pts := c.Flatten(nil, tolerance)
	if len(pts) < 2 {
		t.Fatalf("got %d points, expected more", len(pts))
	}
	diff(t, c.P3, pts[len(pts)-1])

	// Every chord midpoint stays within tolerance of the curve, checked
	// against a dense sampling of it.
	prev := c.P0
	for _, p := range pts {
		mid := prev.Midpoint(p)
		best := math.Inf(1)
		for i := range 10001 {
			best = min(best, mid.Distance(c.Eval(float64(i)/10000)))
		}
		if best > tolerance+0.01 {
			t.Errorf("chord midpoint %s is %g away from the curve", mid, best)
		}
		prev = p
	}

	line := CubicBez{Pt(0, 0), Pt(1, 1), Pt(2, 2), Pt(3, 3)}
	if n := len(line.Flatten(nil, tolerance)); n != 1 {
		t.Errorf("got %d points for a straight cubic, want 1", n)
	}
}

func TestSolveQuadratic(t *testing.T) {
	roots, n := SolveQuadratic(-6, 1, 1)
	if n != 2 {
		t.Fatalf("got %d roots, want 2", n)
	}
	diff(t, []float64{-3, 2}, roots[:n], approx(1e-12))

	roots, n = SolveQuadratic(1, -2, 0)
	diff(t, []float64{0.5}, roots[:n])
}
